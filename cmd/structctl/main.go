// Package main provides the structctl CLI.
//
// structctl loads struct types from a YAML definition file and runs data
// through them:
//   - check lints a definition file
//   - validate builds an instance from a JSON object and prints its projection
//   - map reads an instance from a JSON document with a source's mappers
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/samber/lo"

	"github.com/acelot/struct/errtree"
	"github.com/acelot/struct/internal/definition"
	"github.com/acelot/struct/schema"
	"github.com/acelot/struct/structs"
)

const usage = `Usage: %s <command> [flags] <args>

Commands:
  check <def.yaml>                          lint a definition file
  validate [flags] <def.yaml> <type> <data.json>
                                            build an instance from a JSON object
  map [flags] <def.yaml> <type> <data.json> map an instance with a source's mappers

Run '%s <command> -h' for the flags of a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	name := filepath.Base(os.Args[0])

	if len(args) == 0 {
		fmt.Fprintf(stderr, usage, name, name)
		return 2
	}

	var err error

	switch args[0] {
	case "check":
		err = runCheck(args[1:], stdout)
	case "validate", "map":
		err = runInstance(args[0], args[1:], stdout)
	case "help", "-h", "-help", "--help":
		fmt.Fprintf(stdout, usage, name, name)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		fmt.Fprintf(stderr, usage, name, name)

		return 2
	}

	var ve *errtree.ValidationError

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &ve):
		out, _ := json.MarshalIndent(ve, "", "  ")
		fmt.Fprintln(stderr, string(out))

		return 1
	default:
		fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return 1
	}
}

func runCheck(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return errors.New("expected <def.yaml>")
	}

	f, err := definition.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	diags := definition.Check(f, definition.NewRegistry())
	for _, d := range diags.All() {
		fmt.Fprintf(stdout, "%s: %s\n", d.Severity, d)
	}

	if diags.HasErrors() {
		return fmt.Errorf("%d error(s) in %s", len(diags.Errors), fs.Arg(0))
	}

	fmt.Fprintf(stdout, "%s: %d type(s) ok\n", fs.Arg(0), len(f.Types))

	return nil
}

func runInstance(cmd string, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)

	partial := fs.Bool("partial", false, "treat every property as optional")
	dump := fs.Bool("dump", false, "dump the instance instead of printing its projection")

	var (
		source         *string
		hydrate        *string
		hydrateMissing *bool
	)

	if cmd == "map" {
		source = fs.String("source", schema.DefaultSource, "mapper source to read with")
		hydrate = fs.String("hydrate", "", "comma-separated properties to leave hydrated")
		hydrateMissing = fs.Bool("hydrate-missing", false, "leave properties without a value hydrated")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 3 {
		return errors.New("expected <def.yaml> <type> <data.json>")
	}

	typ, err := loadType(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(fs.Arg(2))
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}

	var opts []structs.Option
	if *partial {
		opts = append(opts, structs.Partial())
	}

	var instance *structs.Struct

	if cmd == "map" {
		if names := splitList(*hydrate); len(names) > 0 {
			opts = append(opts, structs.Hydrate(names...))
		}

		if *hydrateMissing {
			opts = append(opts, structs.HydrateMissing())
		}

		instance, err = typ.MapFrom(data, *source, opts...)
	} else {
		var object map[string]any
		if err := json.Unmarshal(data, &object); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}

		instance, err = typ.New(object, opts...)
	}

	if err != nil {
		return err
	}

	if *dump {
		spew.Fdump(stdout, instance.ToMap())
		return nil
	}

	out, err := json.MarshalIndent(instance, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, string(out))

	return nil
}

func loadType(path, name string) (*structs.Type, error) {
	f, err := definition.LoadFile(path)
	if err != nil {
		return nil, err
	}

	types, err := definition.Build(f, definition.NewRegistry())
	if err != nil {
		return nil, err
	}

	typ, ok := types[name]
	if !ok {
		return nil, fmt.Errorf("type %q not defined in %s (have %s)",
			name, path, strings.Join(sortedNames(types), ", "))
	}

	return typ, nil
}

func splitList(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	}))
}

func sortedNames(types map[string]*structs.Type) []string {
	names := lo.Keys(types)
	slices.Sort(names)

	return names
}
