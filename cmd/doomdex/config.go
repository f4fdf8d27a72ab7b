package main

import (
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/doomdex/internal/config"
)

const defaultConfigPath = "doomdex.toml"

var configFlags struct {
	path       string
	host       string
	logLevel   string
	lang       string
	windowMode string
}

// addConfigFlags registers the flags every command shares.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&configFlags.path, "config", "", "Path to the TOML config file (default ./"+defaultConfigPath+" when present)")
	f.StringVar(&configFlags.host, "host", "", "Base URL of the codex API, e.g. http://172.18.68.39")
	f.StringVar(&configFlags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	f.StringVar(&configFlags.lang, "lang", "", "Interface language, e.g. en or es")
	f.StringVar(&configFlags.windowMode, "window-mode", "", "windowed, borderless or fullscreen")
}

// loadConfig reads the file, then the environment, then applies the flags
// that were set explicitly, and validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := configFlags.path
	if path == "" && config.Exists(defaultConfigPath) {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path, nil)
	if err != nil {
		return config.Config{}, err
	}

	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("host") {
		o.Host = &configFlags.host
	}
	if flags.Changed("log-level") {
		o.LogLevel = &configFlags.logLevel
	}
	if flags.Changed("lang") {
		o.Language = &configFlags.lang
	}
	if flags.Changed("window-mode") {
		o.WindowMode = &configFlags.windowMode
	}
	cfg.Apply(o)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
