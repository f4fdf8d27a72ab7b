package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/doomdex/internal/app"
	"github.com/BrandonKowalski/doomdex/internal/i18n"
	"github.com/BrandonKowalski/doomdex/pkg/gateway"
	"github.com/BrandonKowalski/doomdex/pkg/ui"
)

var browseFlags struct {
	route string
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.LogPath != "" {
		ui.SetLogPath(cfg.LogPath)
	}
	ui.SetRawLogLevel(cfg.LogLevel)
	logger := ui.GetLogger()

	tag, _ := cfg.LanguageTag()
	tr, err := i18n.New(tag, logger)
	if err != nil {
		return err
	}

	client, err := gateway.NewClient(gateway.Config{BaseURL: cfg.Host, Timeout: cfg.RequestTimeout}, logger)
	if err != nil {
		return err
	}

	a, err := app.New(app.Options{
		Gateway:              client,
		Images:               client,
		Translator:           tr,
		KeySource:            cfg.KeySourceValue(),
		MaxConcurrentFetches: cfg.MaxConcurrentFetches,
		Logger:               logger,
	})
	if err != nil {
		return err
	}
	// Fail on a bad route before opening a window.
	if browseFlags.route != "" {
		if _, _, err := a.Router().Resolve(browseFlags.route); err != nil {
			return err
		}
	}

	windowOptions, err := ui.ParseWindowMode(cfg.WindowMode)
	if err != nil {
		return err
	}
	accent, _ := cfg.AccentColorHex()

	if err := ui.Init(ui.Options{
		WindowTitle:     cfg.WindowTitle,
		WindowOptions:   windowOptions,
		AccentColorHex:  accent,
		IsCannoli:       cfg.Cannoli,
		FontPath:        cfg.FontPath,
		FlipFaceButtons: cfg.FlipFaceButtons,
		PowerDevice:     cfg.PowerDevice,
	}); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer ui.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("doomdex starting", "version", version, "host", cfg.Host, "lang", tag.String())
	return a.Run(ctx, browseFlags.route)
}
