package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/pkg/values"
)

func init() {
	rootCmd.AddCommand(newValuesCmd())
}

func newValuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "values <path>",
		Short: "List the values of a key",
		Long: `The values command lists every value of a key with its type and data.

Example:
  regctl values 'HKCU\Software\App'
  regctl values 'HKCU\Software\App' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(args)
		},
	}
}

func runValues(args []string) error {
	return withAPI(func(api native.API) error {
		k, err := openExisting(api, args[0], types.KEY_READ)
		if err != nil {
			return err
		}
		defer k.Close()

		vals, ok := k.GetValues()
		if !ok {
			return fmt.Errorf("failed to read values: %w", k.LastError())
		}
		if jsonOut {
			out := make([]valueJSON, len(vals))
			for i, v := range vals {
				out[i] = newValueJSON(v)
			}
			return printJSON(out)
		}
		if quiet {
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, v := range vals {
			name := v.Name
			if name == "" {
				name = "(Default)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, v.Type, values.Format(v.Type, v.Data))
		}
		return w.Flush()
	})
}
