package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/native/kvstore"
	"github.com/joshuapare/regkit/pkg/regkey"
	"github.com/joshuapare/regkit/pkg/types"
)

var statsMetrics bool

func init() {
	cmd := newStatsCmd()
	cmd.Flags().BoolVar(&statsMetrics, "metrics", false, "Also print store call counters in Prometheus format")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <path>",
		Short: "Summarize a key tree",
		Long: `The stats command walks a key tree and counts keys, values and data
bytes per value type.

Example:
  regctl stats HKCU
  regctl stats 'HKLM\SOFTWARE' --json
  regctl stats HKCU --metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
}

type treeStats struct {
	Keys     int            `json:"keys"`
	Values   int            `json:"values"`
	Bytes    int            `json:"bytes"`
	MaxDepth int            `json:"max_depth"`
	Types    map[string]int `json:"types"`
}

func runStats(args []string) error {
	return withAPI(func(api native.API) error {
		k, err := openExisting(api, args[0], types.KEY_READ)
		if err != nil {
			return err
		}
		defer k.Close()

		st := treeStats{Types: make(map[string]int)}
		if err := collectStats(k, 0, &st); err != nil {
			return err
		}

		if jsonOut {
			if err := printJSON(st); err != nil {
				return err
			}
		} else {
			printInfo("Keys:      %d\n", st.Keys)
			printInfo("Values:    %d\n", st.Values)
			printInfo("Data:      %d bytes\n", st.Bytes)
			printInfo("Max depth: %d\n", st.MaxDepth)
			names := make([]string, 0, len(st.Types))
			for name := range st.Types {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				printInfo("  %-28s %d\n", name, st.Types[name])
			}
		}

		if statsMetrics {
			store, ok := api.(*kvstore.Store)
			if !ok {
				return fmt.Errorf("--metrics requires the store backend")
			}
			store.Metrics().WritePrometheus(os.Stdout)
		}
		return nil
	})
}

func collectStats(k *regkey.Key, depth int, st *treeStats) error {
	st.Keys++
	st.MaxDepth = max(st.MaxDepth, depth)

	vals, ok := k.GetValues()
	if !ok {
		return fmt.Errorf("failed to read values of %s: %w", k.Path(), k.LastError())
	}
	for _, v := range vals {
		st.Values++
		st.Bytes += len(v.Data)
		st.Types[v.Type.String()]++
	}

	names := k.GetSubkeyNames()
	if !k.LastStatus().OK() {
		return fmt.Errorf("failed to list %s: %w", k.Path(), k.LastError())
	}
	for _, name := range names {
		child, ok := k.OpenSubkey(name, types.KEY_READ)
		if !ok {
			return fmt.Errorf("failed to open %s\\%s: %w", k.Path(), name, k.LastError())
		}
		err := collectStats(child, depth+1, st)
		child.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
