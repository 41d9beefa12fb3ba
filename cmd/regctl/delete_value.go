package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newDeleteValueCmd())
}

func newDeleteValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-value <path> <name>",
		Short: "Delete a value from a key",
		Long: `The delete-value command removes one value from a key.

Example:
  regctl delete-value 'HKCU\Software\App' Version`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteValue(args)
		},
	}
}

func runDeleteValue(args []string) error {
	return withAPI(func(api native.API) error {
		k, err := openExisting(api, args[0], types.KEY_SET_VALUE)
		if err != nil {
			return err
		}
		defer k.Close()
		if !k.DeleteValue(args[1]) {
			return fmt.Errorf("failed to delete value %q: %w", args[1], k.LastError())
		}
		printInfo("Deleted %s\\%s\n", k.Path(), args[1])
		return nil
	})
}
