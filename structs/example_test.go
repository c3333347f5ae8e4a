package structs_test

import (
	"encoding/json"
	"fmt"

	"github.com/acelot/struct/rule"
	"github.com/acelot/struct/schema"
	"github.com/acelot/struct/structs"
)

func Example() {
	account := structs.Define("Account", schema.MustNew(
		schema.NewProp("login").WithValidator(rule.AllOf(rule.StringType(), rule.Alnum(), rule.Length(1, 32))),
		schema.NewProp("isActive").WithValidator(rule.BoolType()).WithDefaultValue(true),
	))

	acc, err := account.New(map[string]any{"login": "superhacker"})
	if err != nil {
		fmt.Println(err)
		return
	}

	data, _ := json.Marshal(acc)
	fmt.Println(string(data))

	_, err = account.New(map[string]any{"login": "superhacker", "gender": "x"})
	fmt.Println(err)

	_, err = account.New(map[string]any{"login": "super hacker", "isActive": "yes"})
	fmt.Println(err)

	// Output:
	// {"login":"superhacker","isActive":true}
	// validation failed: gender: Property "gender" not defined in schema
	// validation failed: login: must contain only letters (a-z) and digits (0-9); isActive: must be a boolean
}
