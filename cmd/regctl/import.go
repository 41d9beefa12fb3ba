package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/regkey"
	"github.com/joshuapare/regkit/pkg/types"
)

var (
	importPrefix   string
	importTarget   string
	importEncoding string
	importDryRun   bool
)

func init() {
	cmd := newImportCmd()
	cmd.Flags().StringVar(&importPrefix, "prefix", "", "Strip this key path from every section")
	cmd.Flags().StringVar(&importTarget, "target", "", "Apply stripped paths below this key (requires --prefix)")
	cmd.Flags().StringVar(&importEncoding, "encoding", "", "Input encoding: UTF-8, UTF-16LE or WINDOWS-1252 (default: detect)")
	cmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without writing")
	rootCmd.AddCommand(cmd)
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Apply a .reg file",
		Long: `The import command applies the keys and values of a .reg file. With
--prefix and --target, the file can be replayed under a different key.

Example:
  regctl import app.reg
  regctl import app.reg --prefix 'HKCU\Software\App' --target 'HKCU\Software\App2'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args)
		},
	}
}

type importJSON struct {
	Operations int      `json:"operations"`
	Applied    int      `json:"applied"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

func runImport(args []string) error {
	if (importPrefix == "") != (importTarget == "") {
		return types.InvalidArgument("--prefix and --target must be used together")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	ops, err := regtext.Parse(data, regtext.ParseOptions{InputEncoding: importEncoding, Prefix: importPrefix})
	if err != nil {
		return err
	}
	printVerbose("Parsed %d operations\n", len(ops))
	if importDryRun {
		if jsonOut {
			return printJSON(importJSON{Operations: len(ops)})
		}
		printInfo("%d operations\n", len(ops))
		return nil
	}

	return withAPI(func(api native.API) error {
		var (
			root *regkey.Key
			err  error
		)
		if importTarget != "" {
			root, err = regkey.OpenPath(api, importTarget, types.KEY_ALL_ACCESS)
		} else {
			root, err = regkey.Root(api, "HKLM")
		}
		if err != nil {
			return fmt.Errorf("failed to open target: %w", err)
		}
		defer root.Close()

		res := regtext.Apply(root, ops)
		if jsonOut {
			out := importJSON{Operations: len(ops), Applied: res.Applied, Failed: res.Failed}
			for _, e := range res.Errors {
				out.Errors = append(out.Errors, e.Error())
			}
			if err := printJSON(out); err != nil {
				return err
			}
		} else {
			printInfo("Applied %d of %d operations\n", res.Applied, len(ops))
			for _, e := range res.Errors {
				printVerbose("  %v\n", e)
			}
		}
		if res.Failed > 0 {
			return fmt.Errorf("%d operations failed: %w", res.Failed, res.Err())
		}
		return nil
	})
}
