package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/regkey"
	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/pkg/values"
)

var getShowType bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getShowType, "type", false, "Show type information")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Get a specific registry value",
		Long: `The get command retrieves and displays a value of a key. Use "" for
the default value.

Example:
  regctl get 'HKCU\Software\App' Version
  regctl get 'HKLM\SOFTWARE\App' Data --type
  regctl get 'HKCU\Software\App' "" --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
}

type valueJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int    `json:"size"`
	Data any    `json:"data"`
}

func newValueJSON(v regkey.Value) valueJSON {
	return valueJSON{Name: v.Name, Type: v.Type.String(), Size: len(v.Data), Data: values.Native(v.Type, v.Data)}
}

func runGet(args []string) error {
	return withAPI(func(api native.API) error {
		k, err := openExisting(api, args[0], types.KEY_READ)
		if err != nil {
			return err
		}
		defer k.Close()

		v, ok := k.GetValue(args[1])
		if !ok {
			return fmt.Errorf("failed to get value %q: %w", args[1], k.LastError())
		}
		if jsonOut {
			return printJSON(newValueJSON(v))
		}
		if getShowType {
			printInfo("%s: %s\n", v.Type, values.Format(v.Type, v.Data))
			return nil
		}
		printInfo("%s\n", values.Format(v.Type, v.Data))
		return nil
	})
}

func openExisting(api native.API, path string, access types.Access) (*regkey.Key, error) {
	printVerbose("Opening key: %s\n", path)
	k, err := regkey.OpenExisting(api, path, access)
	if err != nil {
		return nil, fmt.Errorf("failed to open key: %w", err)
	}
	return k, nil
}
