package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

var exportUTF16 bool

func init() {
	cmd := newExportCmd()
	cmd.Flags().BoolVar(&exportUTF16, "utf16", false, "Write UTF-16LE with a byte order mark, like regedit")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path> [file]",
		Short: "Export a key tree as .reg text",
		Long: `The export command writes a key and everything below it in the
Windows .reg format. Without a file the text goes to stdout.

Example:
  regctl export 'HKCU\Software\App' app.reg
  regctl export 'HKCU\Software\App' app.reg --utf16`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
}

func runExport(args []string) error {
	opts := regtext.ExportOptions{}
	if exportUTF16 {
		opts = regtext.ExportOptions{OutputEncoding: regtext.EncodingUTF16LE, WithBOM: true}
	}
	return withAPI(func(api native.API) error {
		k, err := openExisting(api, args[0], types.KEY_READ)
		if err != nil {
			return err
		}
		defer k.Close()

		var buf bytes.Buffer
		if err := regtext.Export(&buf, k, opts); err != nil {
			return err
		}
		if len(args) == 1 {
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(args[1], buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[1], err)
		}
		printInfo("Exported %s to %s\n", k.Path(), args[1])
		return nil
	})
}
