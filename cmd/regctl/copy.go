package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/regkey"
	"github.com/joshuapare/regkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newCopyCmd())
}

func newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <src> <dst>",
		Short: "Copy a key tree into another key",
		Long: `The copy command copies every subkey and value of src into dst,
creating dst if needed. Existing values in dst are overwritten.

Example:
  regctl copy 'HKCU\Software\App' 'HKCU\Software\App.bak'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(args)
		},
	}
}

func runCopy(args []string) error {
	return withAPI(func(api native.API) error {
		src, err := openExisting(api, args[0], types.KEY_READ)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := regkey.OpenPath(api, args[1], types.KEY_ALL_ACCESS)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		if !dst.CopyTree(src.Handle()) {
			return fmt.Errorf("failed to copy %s to %s: %w", src.Path(), dst.Path(), dst.LastError())
		}
		printInfo("Copied %s to %s\n", src.Path(), dst.Path())
		return nil
	})
}
