package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/doomdex/internal/mockapi"
)

var serveFlags struct {
	addr      string
	fixture   string
	images    string
	latency   time.Duration
	failLists bool
}

var rootCmd = &cobra.Command{
	Use:   "doomdex-mockapi",
	Short: "Serve the codex API from a YAML fixture",
	Long: "doomdex-mockapi answers /demons, /demons/{key}, /weapons and\n" +
		"/weapons/{key} from a fixture file, for development and demos.",
	SilenceUsage: true,
	RunE:         runServe,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", ":8080", "Listen address")
	f.StringVar(&serveFlags.fixture, "fixture", "", "YAML fixture (default: built-in data)")
	f.StringVar(&serveFlags.images, "images", "", "Directory served under /images (default: generated placeholders)")
	f.DurationVar(&serveFlags.latency, "latency", 0, "Delay added to every response")
	f.BoolVar(&serveFlags.failLists, "fail-lists", false, "Answer the list endpoints with 503")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	fixture, err := loadFixture()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: serveFlags.addr,
		Handler: mockapi.NewRouter(fixture, mockapi.Options{
			Latency:   serveFlags.latency,
			FailLists: serveFlags.failLists,
			ImageDir:  serveFlags.images,
			Logger:    logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", serveFlags.addr, "demons", len(fixture.Demons), "weapons", len(fixture.Weapons))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func loadFixture() (*mockapi.Fixture, error) {
	if serveFlags.fixture == "" {
		return mockapi.DefaultFixture()
	}
	return mockapi.LoadFixture(serveFlags.fixture)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
