package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshuapare/regkit/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Read and edit registry keys",
	Long: `regctl reads, writes, copies and exports registry keys. It works on
the native registry on Windows and on a portable regkit key store
everywhere else.

Settings can also come from REGKIT_* environment variables or a .env file,
for example REGKIT_STORE=/var/lib/regkit.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	flags.BoolVar(&jsonOut, "json", false, "Output in JSON format")
	flags.String("backend", "auto", "Key store to use: auto, native or store")
	flags.String("store", "", "Directory of the key store (default: user config dir)")
	flags.Bool("read-only", false, "Open the key store read-only")
	flags.String("hosts", "", "Remote hosts for the key store as name=dir,...")
	flags.String("log-level", "", "Log to stderr at this level (debug, info, warn, error)")
	flags.String("log-dir", "", "Write logs to a dated file in this directory instead of stderr")
}

// initConfig loads .env files and binds flags to REGKIT_* variables.
func initConfig(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("regkit")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	jsonOut = viper.GetBool("json")

	level, dir := viper.GetString("log-level"), viper.GetString("log-dir")
	if level == "" && dir == "" {
		return logger.Init(logger.Options{})
	}
	if level == "" {
		level = "info"
	}
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	return logger.Init(logger.Options{Enabled: true, LogDir: dir, Level: lvl, JSON: jsonOut})
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
