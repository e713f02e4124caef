package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/minisearch/minisearch/internal/analytics"
	"github.com/minisearch/minisearch/internal/corpus"
	"github.com/minisearch/minisearch/internal/indexer"
	"github.com/minisearch/minisearch/internal/indexer/tokenizer"
	"github.com/minisearch/minisearch/internal/searcher"
	"github.com/minisearch/minisearch/internal/searcher/cache"
	"github.com/minisearch/minisearch/internal/searcher/handler"
	"github.com/minisearch/minisearch/pkg/config"
	"github.com/minisearch/minisearch/pkg/health"
	"github.com/minisearch/minisearch/pkg/kafka"
	"github.com/minisearch/minisearch/pkg/logger"
	"github.com/minisearch/minisearch/pkg/metrics"
	"github.com/minisearch/minisearch/pkg/middleware"
	pkgredis "github.com/minisearch/minisearch/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting search service", "port", cfg.Server.Port, "corpus_dir", cfg.Corpus.Dir)

	stop := tokenizer.DefaultStopwords()
	if cfg.Corpus.StopwordsFile != "" {
		stop, err = tokenizer.LoadStopwords(cfg.Corpus.StopwordsFile)
		if err != nil {
			slog.Error("failed to load stopwords", "error", err)
			os.Exit(1)
		}
		slog.Info("stopwords loaded", "path", cfg.Corpus.StopwordsFile, "count", len(stop))
	}

	var m *metrics.Metrics
	var metricsShutdown func(context.Context) error
	if cfg.Metrics.Enabled {
		m = metrics.New()
		metricsShutdown = metrics.StartServer(cfg.Metrics.Port)
	}

	engine := indexer.NewEngine(stop)
	report, err := corpus.Load(cfg.Corpus.Dir, cfg.Corpus.URLMapFile, engine)
	if err != nil {
		slog.Error("corpus load failed", "error", err)
		os.Exit(1)
	}
	stats := engine.Stats()
	slog.Info("index built",
		"documents", stats.DocumentCount,
		"vocabulary", stats.VocabularySize,
		"total_terms", stats.TotalTerms,
		"failed_documents", len(report.Failed),
	)
	if m != nil {
		m.DocsIndexedTotal.Add(float64(len(report.Indexed)))
		m.DocsFailedTotal.Add(float64(len(report.Failed)))
		m.CorpusDocuments.Set(float64(stats.DocumentCount))
		m.VocabularySize.Set(float64(stats.VocabularySize))
		m.IndexedTermsTotal.Set(float64(stats.TotalTerms))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var queryCache *cache.QueryCache
	var redisClient *pkgredis.Client
	redisClient, err = pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, query caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		queryCache = cache.New(redisClient, cfg.Redis)
		slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}

	var collector *analytics.Collector
	if cfg.Analytics.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.QueryEvents)
		defer producer.Close()
		collector = analytics.NewCollector(producer, cfg.Analytics.BufferSize)
		collector.Start(ctx)
		defer collector.Close()
		slog.Info("query analytics enabled", "topic", cfg.Kafka.Topics.QueryEvents)
	}

	checker := health.NewChecker()
	checker.Register("index", func(ctx context.Context) health.ComponentHealth {
		if n := engine.Index().DocCount(); n > 0 {
			return health.ComponentHealth{
				Status:  health.StatusUp,
				Message: fmt.Sprintf("%d documents indexed", n),
			}
		}
		return health.ComponentHealth{Status: health.StatusDown, Message: "index is empty"}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	s := searcher.New(engine)
	h := handler.New(s, engine, queryCache, collector, m, cfg.Search.DefaultLimit, cfg.Search.MaxResults)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/stats", h.Stats)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancelShutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
		if metricsShutdown != nil {
			if err := metricsShutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown error", "error", err)
			}
		}
	}()

	slog.Info("search service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("search service stopped")
}
