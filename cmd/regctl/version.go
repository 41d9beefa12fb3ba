package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Stamped at release time:
//
//	go build -ldflags "-X main.version=v1.2.0 -X main.commit=$(git rev-parse --short HEAD) -X main.date=$(date -u +%FT%TZ)"
//
// Unstamped builds fall back to the module and VCS data the toolchain
// embeds.
var (
	version = ""
	commit  = ""
	date    = ""
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	}
}

type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

func currentBuild() buildInfo {
	bi, _ := debug.ReadBuildInfo()
	return resolveBuild(bi)
}

// resolveBuild prefers the -ldflags values and fills the gaps from bi.
func resolveBuild(bi *debug.BuildInfo) buildInfo {
	out := buildInfo{Version: version, Commit: commit, Date: date, Go: runtime.Version()}
	if bi != nil {
		if out.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			out.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && out.Commit == "":
				out.Commit = s.Value
				if len(out.Commit) > 12 {
					out.Commit = out.Commit[:12]
				}
			case s.Key == "vcs.time" && out.Date == "":
				out.Date = s.Value
			}
		}
	}
	if out.Version == "" {
		out.Version = "dev"
	}
	if out.Commit == "" {
		out.Commit = "none"
	}
	if out.Date == "" {
		out.Date = "unknown"
	}
	return out
}

func runVersion() error {
	info := currentBuild()
	if jsonOut {
		return printJSON(info)
	}
	fmt.Printf("regctl %s\n", info.Version)
	fmt.Printf("  commit: %s\n", info.Commit)
	fmt.Printf("  built: %s\n", info.Date)
	fmt.Printf("  go: %s\n", info.Go)
	return nil
}
