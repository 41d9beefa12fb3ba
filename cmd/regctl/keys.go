package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/regkey"
	"github.com/joshuapare/regkit/pkg/types"
)

var keysRecursive bool

func init() {
	cmd := newKeysCmd()
	cmd.Flags().BoolVarP(&keysRecursive, "recursive", "r", false, "List all descendants")
	rootCmd.AddCommand(cmd)
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <path>",
		Short: "List subkeys of a key",
		Long: `The keys command lists the subkeys of a key, sorted by name.

Example:
  regctl keys HKCU
  regctl keys 'HKLM\SOFTWARE' --recursive --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
}

func runKeys(args []string) error {
	return withAPI(func(api native.API) error {
		k, err := openExisting(api, args[0], types.KEY_READ)
		if err != nil {
			return err
		}
		defer k.Close()

		names, err := listKeys(k, "", keysRecursive)
		if err != nil {
			return err
		}
		if jsonOut {
			if names == nil {
				names = []string{}
			}
			return printJSON(names)
		}
		for _, name := range names {
			printInfo("%s\n", name)
		}
		return nil
	})
}

// listKeys returns the sorted subkey names of k, prefixed with prefix.
func listKeys(k *regkey.Key, prefix string, recursive bool) ([]string, error) {
	names := k.GetSubkeyNames()
	if !k.LastStatus().OK() {
		return nil, fmt.Errorf("failed to list %s: %w", k.Path(), k.LastError())
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	var out []string
	for _, name := range names {
		out = append(out, prefix+name)
		if !recursive {
			continue
		}
		child, ok := k.OpenSubkey(name, types.KEY_READ)
		if !ok {
			return nil, fmt.Errorf("failed to open %s\\%s: %w", k.Path(), name, k.LastError())
		}
		sub, err := listKeys(child, prefix+name+`\`, true)
		child.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}
