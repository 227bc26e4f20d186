package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/pathfinder"
	"github.com/aretw0/pathfinder/internal/cli"
	"github.com/aretw0/pathfinder/internal/logging"
	"github.com/aretw0/pathfinder/internal/presentation/tui"
	httpAdapter "github.com/aretw0/pathfinder/pkg/adapters/http"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes lookups, digests and the wall clock as a JSON API over HTTP, with Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		opts.Watch = watch

		cfg, err := cli.LoadConfig(opts)
		if err != nil {
			return err
		}
		slog.SetDefault(logging.New(logging.ParseLevel(cfg.LogLevel)))
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		var (
			hooks       domain.LifecycleHooks
			handlerOpts []httpAdapter.Option
		)
		if cfg.Server.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			hooks = observability.NewMetrics(reg).Hooks()
			handlerOpts = append(handlerOpts, httpAdapter.WithMetrics(reg))
		}

		finder, _, err := cli.NewFinder(opts, hooks)
		if err != nil {
			return err
		}
		defer finder.Close()

		if cli.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr, strings.TrimSpace(pathfinder.Version))
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           httpAdapter.NewHandler(finder, handlerOpts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			slog.Info("Starting Pathfinder Server", "address", srv.Addr, "paths", finder.FilePaths())
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			slog.Info("Start shutdown")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("Graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			slog.Info("Pathfinder Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
	serveCmd.Flags().Bool("watch", false, "Memoise lookups and invalidate them on filesystem changes")
}
