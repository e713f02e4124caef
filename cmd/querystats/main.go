// Command querystats consumes the query-event stream from Kafka, maintains
// in-memory rollups, and serves them over HTTP. When Postgres is reachable
// it also persists every event to the query_log table.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/minisearch/minisearch/internal/analytics"
	"github.com/minisearch/minisearch/pkg/config"
	"github.com/minisearch/minisearch/pkg/kafka"
	"github.com/minisearch/minisearch/pkg/logger"
	"github.com/minisearch/minisearch/pkg/postgres"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	port := flag.Int("port", 8081, "port for the stats endpoint")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var store *analytics.Store
	pgClient, err := postgres.New(cfg.Postgres)
	if err != nil {
		slog.Warn("postgres unavailable, query log persistence disabled", "error", err)
	} else {
		defer pgClient.Close()
		store, err = analytics.NewStore(ctx, pgClient)
		if err != nil {
			slog.Error("failed to initialise query log store", "error", err)
			os.Exit(1)
		}
		slog.Info("query log persistence enabled", "database", cfg.Postgres.Database)
	}

	aggregator := analytics.NewAggregator()
	handler := kafka.MessageHandler(aggregator.HandleMessage)
	if store != nil {
		handler = func(ctx context.Context, key, value []byte) error {
			event, err := kafka.DecodeJSON[analytics.QueryEvent](value)
			if err != nil {
				return err
			}
			aggregator.Record(event)
			if err := store.Insert(ctx, event); err != nil {
				slog.Error("failed to persist query event", "error", err)
			}
			return nil
		}
	}
	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.QueryEvents, handler)

	go func() {
		if err := consumer.Start(ctx); err != nil {
			slog.Error("consumer error", "error", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/querystats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(aggregator.Snapshot(10))
	})
	mux.HandleFunc("GET /api/v1/querystats/log", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if store == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"error": "query log persistence disabled"})
			return
		}
		top, err := store.TopQueries(r.Context(), 10)
		if err != nil {
			slog.Error("failed to read top queries", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "query log unavailable"})
			return
		}
		outcomes, err := store.OutcomeCounts(r.Context())
		if err != nil {
			slog.Error("failed to read outcome counts", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "query log unavailable"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"top_queries": top,
			"by_outcome":  outcomes,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: mux,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancelShutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("querystats listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
