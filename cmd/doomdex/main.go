package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "doomdex",
	Short: "Browse the demon and weapon codex",
	Long: "doomdex is a handheld friendly browser for demons and weapons served by\n" +
		"a codex API. Settings come from a TOML file, DOOMDEX_ environment\n" +
		"variables and flags, in increasing order of precedence.",
	SilenceUsage: true,
	RunE:         runBrowse,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	// SDL must be driven from the main thread.
	runtime.LockOSThread()

	addConfigFlags(rootCmd)
	rootCmd.Flags().StringVar(&browseFlags.route, "route", "", "Start at a route such as weapons or demonDetail/imp")
	rootCmd.AddCommand(checkCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
