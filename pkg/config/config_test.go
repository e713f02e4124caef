package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Corpus.Dir != "webpages" {
		t.Errorf("Corpus.Dir = %q, want webpages", cfg.Corpus.Dir)
	}
	if cfg.Corpus.URLMapFile != "input.txt" {
		t.Errorf("Corpus.URLMapFile = %q, want input.txt", cfg.Corpus.URLMapFile)
	}
	if cfg.Search.DefaultLimit != 0 {
		t.Errorf("Search.DefaultLimit = %d, want 0", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxResults != 100 {
		t.Errorf("Search.MaxResults = %d, want 100", cfg.Search.MaxResults)
	}
	if cfg.Redis.CacheTTL != 60*time.Second {
		t.Errorf("Redis.CacheTTL = %s, want 60s", cfg.Redis.CacheTTL)
	}
	if cfg.Kafka.Topics.QueryEvents != "query-events" {
		t.Errorf("Kafka.Topics.QueryEvents = %q", cfg.Kafka.Topics.QueryEvents)
	}
	if cfg.Analytics.Enabled {
		t.Error("Analytics.Enabled defaults to true, want false")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  port: 9999
  readTimeout: 5s
corpus:
  dir: /data/pages
  stopwordsFile: stopwords.txt
search:
  defaultLimit: 25
logging:
  level: debug
  format: text
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %s, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Corpus.Dir != "/data/pages" {
		t.Errorf("Corpus.Dir = %q", cfg.Corpus.Dir)
	}
	if cfg.Corpus.StopwordsFile != "stopwords.txt" {
		t.Errorf("Corpus.StopwordsFile = %q", cfg.Corpus.StopwordsFile)
	}
	if cfg.Search.DefaultLimit != 25 {
		t.Errorf("Search.DefaultLimit = %d, want 25", cfg.Search.DefaultLimit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Values absent from the file keep their defaults.
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("Server.WriteTimeout = %s, want default 30s", cfg.Server.WriteTimeout)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want default", cfg.Redis.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a mapping"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MS_SERVER_PORT", "7070")
	t.Setenv("MS_CORPUS_DIR", "/srv/corpus")
	t.Setenv("MS_SEARCH_DEFAULT_LIMIT", "10")
	t.Setenv("MS_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("MS_ANALYTICS_ENABLED", "true")
	t.Setenv("MS_LOGGING_LEVEL", "error")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Corpus.Dir != "/srv/corpus" {
		t.Errorf("Corpus.Dir = %q", cfg.Corpus.Dir)
	}
	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("Search.DefaultLimit = %d, want 10", cfg.Search.DefaultLimit)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "k1:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
	if !cfg.Analytics.Enabled {
		t.Error("Analytics.Enabled = false, want true")
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error", cfg.Logging.Level)
	}
}

func TestEnvOverrideInvalidValueIgnored(t *testing.T) {
	t.Setenv("MS_SERVER_PORT", "not-a-number")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "svc",
		Password: "secret",
		Database: "queries",
		SSLMode:  "require",
	}
	want := "host=db.internal port=5433 user=svc password=secret dbname=queries sslmode=require"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
