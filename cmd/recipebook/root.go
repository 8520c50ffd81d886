package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kerbaras/recipebook/pkg/app"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	metricsAddr string
	startAt     string
)

var rootCmd = &cobra.Command{
	Use:   "recipebook",
	Short: "Browse, like and collect recipes from your terminal",
	Long:  "Browse recipe categories, search, like and save recipes, write your own and export your collection as an EPUB cookbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer e.Close()

		stop := serveMetrics(metricsAddr, e.logger)
		defer stop()

		return app.NewApp(e.ctrl, startAt).Run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.recipebook/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	rootCmd.Flags().StringVar(&startAt, "open", "/", "location to open, e.g. /activate/<token> or /search?q=pie")
}

// serveMetrics exposes /metrics until the returned func is called. An empty
// addr disables it.
func serveMetrics(addr string, logger zerolog.Logger) func() {
	if addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info().Str("addr", addr).Msg("Serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
