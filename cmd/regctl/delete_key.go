package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newDeleteKeyCmd())
}

func newDeleteKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-key <path>",
		Short: "Delete a key and everything below it",
		Long: `The delete-key command removes a key with all its subkeys and values.
Root keys cannot be deleted.

Example:
  regctl delete-key 'HKCU\Software\App'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteKey(args)
		},
	}
}

func runDeleteKey(args []string) error {
	return withAPI(func(api native.API) error {
		k, err := openExisting(api, args[0], types.KEY_ALL_ACCESS)
		if err != nil {
			return err
		}
		defer k.Close()
		if !k.DeleteKey() {
			return fmt.Errorf("failed to delete %s: %w", k.Path(), k.LastError())
		}
		printInfo("Deleted %s\n", k.Path())
		return nil
	})
}
