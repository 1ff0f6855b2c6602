package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/bankocr/internal/cli"
	httpAdapter "github.com/aretw0/bankocr/pkg/adapters/http"
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the bankocr JSON API over HTTP, with prometheus metrics at /metrics.
With --watch DIR, files landing in DIR are decoded too and announced on /v1/events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		watchDir, _ := cmd.Flags().GetString("watch")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if err := checkAPI(ctx, logger); err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		engine, deps, err := cli.NewEngine(ctx, cfg, logger, reg)
		if err != nil {
			return err
		}
		defer deps.Close()

		streams := httpAdapter.NewStreamManager(logger)
		handler := httpAdapter.NewHandler(engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		)

		srv := &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.HTTP.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)

		if watchDir != "" {
			w, err := cli.NewWatcher(watchDir, engine,
				cli.WithPattern(cfg.Watch.Pattern),
				cli.WithDebounce(cfg.Watch.Debounce),
				cli.WithWatchLogger(logger),
				cli.OnBatch(func(b domain.Batch) { announce(streams, b) }),
			)
			if err != nil {
				return err
			}
			g.Go(func() error { return w.Run(gctx) })
		}

		g.Go(func() error {
			logger.Info("Starting bankocr server", "address", srv.Addr, "store", cfg.Store.Driver)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("bankocr server stopped gracefully")
			return nil
		})

		return g.Wait()
	},
}

// checkAPI refuses to start when the embedded OpenAPI document is broken.
func checkAPI(ctx context.Context, logger *slog.Logger) error {
	doc, err := httpAdapter.LoadSpec(ctx)
	if err != nil {
		return err
	}
	logger.Debug("OpenAPI document loaded", "title", doc.Info.Title, "version", doc.Info.Version, "paths", doc.Paths.Len())
	return nil
}

// announce publishes a watched batch to SSE subscribers, like POST /v1/batches does.
func announce(streams *httpAdapter.StreamManager, b domain.Batch) {
	payload, err := json.Marshal(httpAdapter.BatchEvent{
		ID:      b.ID,
		Source:  b.Source,
		Entries: len(b.Entries),
		Counts:  b.Counts(),
	})
	if err != nil {
		logger.Error("Event encode failed", "error", err)
		return
	}
	streams.Broadcast(string(payload))
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides http.port)")
	serveCmd.Flags().StringP("watch", "w", "", "Also decode files landing in this directory")
}
