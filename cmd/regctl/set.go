package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/regkey"
	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/pkg/values"
)

var setType string

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVarP(&setType, "type", "t", "REG_SZ", "Value type (REG_SZ, REG_DWORD, REG_MULTI_SZ, ...)")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <name> <value>...",
		Short: "Set a registry value",
		Long: `The set command writes a value, creating the key if needed.

Integers accept decimal or 0x hex. REG_MULTI_SZ takes one argument per
string. Binary types take hex bytes.

Example:
  regctl set 'HKCU\Software\App' Version 1.2.3
  regctl set 'HKCU\Software\App' Count 0x2a --type dword
  regctl set 'HKCU\Software\App' Paths a b c --type multi_sz
  regctl set 'HKCU\Software\App' Blob de,ad,be,ef --type binary`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
}

func runSet(args []string) error {
	typ, ok := types.ParseRegType(setType)
	if !ok {
		return types.InvalidArgument(fmt.Sprintf("unknown value type %q", setType))
	}
	data, err := values.Parse(typ, args[2:])
	if err != nil {
		return err
	}
	return withAPI(func(api native.API) error {
		k, err := regkey.OpenPath(api, args[0], types.KEY_WRITE)
		if err != nil {
			return fmt.Errorf("failed to open key: %w", err)
		}
		defer k.Close()
		if k.Created() {
			printVerbose("Created key: %s\n", k.Path())
		}
		if !k.SetValue(args[1], typ, data) {
			return fmt.Errorf("failed to set value %q: %w", args[1], k.LastError())
		}
		printInfo("Set %s\\%s (%s)\n", k.Path(), args[1], typ)
		return nil
	})
}
