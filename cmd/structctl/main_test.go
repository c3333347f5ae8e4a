package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definitionFile = "../../internal/definition/testdata/create_user.yaml"

func writeData(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer

	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun_Check(t *testing.T) {
	code, stdout, _ := runCLI("check", definitionFile)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "1 type(s) ok")

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte(`
types:
  - name: User
    props:
      - name: login
        validators: [strng]
`), 0o600))

	code, stdout, stderr := runCLI("check", broken)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, `error: [User] login: [unknown_validator] unknown validator "strng" (did you mean string?)`)
	assert.Contains(t, stderr, "1 error(s)")
}

func TestRun_Validate(t *testing.T) {
	data := writeData(t, `{"login":"superhacker","password":"secret123"}`)

	code, stdout, stderr := runCLI("validate", definitionFile, "CreateUser", data)
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"login":"superhacker","isActive":true}`, stdout)

	code, stdout, _ = runCLI("validate", "-dump", definitionFile, "CreateUser", data)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `"superhacker"`)

	invalid := writeData(t, `{"login":"super hacker"}`)

	code, _, stderr = runCLI("validate", definitionFile, "CreateUser", invalid)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `"kind": "InvalidValue"`)
	assert.Contains(t, stderr, `"password": "is required"`)

	code, _, _ = runCLI("validate", "-partial", definitionFile, "CreateUser", writeData(t, `{"login":"ada"}`))
	assert.Equal(t, 0, code)

	code, _, stderr = runCLI("validate", definitionFile, "UpdateUser", data)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `type "UpdateUser" not defined`)
}

func TestRun_Map(t *testing.T) {
	data := writeData(t, `{
		"login": "ada",
		"password": "secret123",
		"profile": {"name": " Ada "},
		"dob": "1988-08-08",
		"active": "yes"
	}`)

	code, stdout, stderr := runCLI("map", "-source", "json", definitionFile, "CreateUser", data)
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"login":"ada","name":"Ada","birthday":"1988-08-08","isActive":true}`, stdout)

	code, stdout, stderr = runCLI("map", "-source", "json", "-hydrate", "name, birthday", definitionFile, "CreateUser", data)
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"login":"ada","isActive":true}`, stdout)
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Commands:")

	code, _, stderr = runCLI("generate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "generate"`)

	code, _, stderr = runCLI("validate", definitionFile)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "expected <def.yaml> <type> <data.json>")
}
