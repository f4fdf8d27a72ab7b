package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/BrandonKowalski/doomdex/internal/config"
	"github.com/BrandonKowalski/doomdex/pkg/gateway"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and probe the codex API",
	Long: "check prints the effective configuration and fetches both lists once,\n" +
		"without opening a window. It exits non-zero when either fetch fails.",
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printConfig(cmd, cfg)

	client, err := gateway.NewClient(gateway.Config{BaseURL: cfg.Host, Timeout: cfg.RequestTimeout}, nil)
	if err != nil {
		return err
	}

	var demons, weapons []gateway.EntitySummary
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() (err error) {
		demons, err = client.ListDemons(ctx)
		return err
	})
	g.Go(func() (err error) {
		weapons, err = client.ListWeapons(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("probe %s: %w", cfg.Host, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "demons:                 %d\n", len(demons))
	fmt.Fprintf(out, "weapons:                %d\n", len(weapons))
	return probeFirst(cmd.Context(), client, demons, weapons)
}

// probeFirst fetches the first entry of each list so that decode problems
// surface here rather than as failed rows.
func probeFirst(ctx context.Context, client *gateway.Client, demons, weapons []gateway.EntitySummary) error {
	if len(demons) > 0 {
		if _, err := client.DemonDetail(ctx, string(demons[0])); err != nil {
			return detailCheckError("demon", demons[0], err)
		}
	}
	if len(weapons) > 0 {
		if _, err := client.WeaponDetail(ctx, string(weapons[0])); err != nil {
			return detailCheckError("weapon", weapons[0], err)
		}
	}
	return nil
}

func detailCheckError(kind string, key gateway.EntitySummary, err error) error {
	switch {
	case gateway.IsNotFound(err):
		return fmt.Errorf("%s %q is listed but its detail is missing: %w", kind, key, err)
	case gateway.IsDecodeError(err):
		return fmt.Errorf("%s %q does not match the %s record: %w", kind, key, kind, err)
	}
	return fmt.Errorf("%s %q: %w", kind, key, err)
}

func printConfig(cmd *cobra.Command, cfg config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "host:                   %s\n", cfg.Host)
	fmt.Fprintf(out, "request_timeout:        %s\n", cfg.RequestTimeout)
	fmt.Fprintf(out, "max_concurrent_fetches: %d\n", cfg.MaxConcurrentFetches)
	fmt.Fprintf(out, "key_source:             %s\n", cfg.KeySourceValue())
	fmt.Fprintf(out, "language:               %s\n", cfg.Language)
	fmt.Fprintf(out, "log_level:              %s\n", cfg.LogLevel)
}
