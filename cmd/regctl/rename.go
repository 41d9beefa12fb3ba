package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

var renameValue string

func init() {
	cmd := newRenameCmd()
	cmd.Flags().StringVar(&renameValue, "value", "", "Rename this value instead of the key")
	rootCmd.AddCommand(cmd)
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a key or one of its values",
		Long: `The rename command renames a key in place. With --value it renames a
value of the key instead.

Example:
  regctl rename 'HKCU\Software\Old' New
  regctl rename 'HKCU\Software\App' Build --value Version`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(args)
		},
	}
}

func runRename(args []string) error {
	return withAPI(func(api native.API) error {
		k, err := openExisting(api, args[0], types.KEY_READ|types.KEY_WRITE)
		if err != nil {
			return err
		}
		defer k.Close()

		if renameValue != "" {
			if !k.RenameValue(renameValue, args[1]) {
				return fmt.Errorf("failed to rename value %q: %w", renameValue, k.LastError())
			}
			printInfo("Renamed %s\\%s to %s\n", k.Path(), renameValue, args[1])
			return nil
		}

		old := k.Path()
		if !k.Rename(args[1]) {
			return fmt.Errorf("failed to rename %s: %w", old, k.LastError())
		}
		printInfo("Renamed %s to %s\n", old, k.Path())
		return nil
	})
}
