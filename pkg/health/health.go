// Package health aggregates named component probes into liveness and
// readiness endpoints. Probes run concurrently; the report carries the worst
// observed status.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status is the health state of a component or of the whole process.
type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
)

// severity orders statuses for aggregation; higher is worse.
func severity(s Status) int {
	switch s {
	case StatusDown:
		return 2
	case StatusDegraded:
		return 1
	default:
		return 0
	}
}

// Check probes one dependency and reports its state.
type Check func(ctx context.Context) ComponentHealth

// ComponentHealth is the result of a single probe.
type ComponentHealth struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Report aggregates all probe results.
type Report struct {
	Status     Status                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
	Timestamp  string                     `json:"timestamp"`
}

// Checker holds the registered probes.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewChecker creates a Checker with no probes registered.
func NewChecker() *Checker {
	return &Checker{checks: make(map[string]Check)}
}

// Register adds a named probe. Registering the same name twice replaces the
// earlier probe.
func (c *Checker) Register(name string, check Check) {
	c.mu.Lock()
	c.checks[name] = check
	c.mu.Unlock()
}

type probeResult struct {
	name   string
	health ComponentHealth
}

// Run executes every probe concurrently and folds the results into a Report
// whose status is the worst component status.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	names := make([]string, 0, len(c.checks))
	probes := make([]Check, 0, len(c.checks))
	for name, check := range c.checks {
		names = append(names, name)
		probes = append(probes, check)
	}
	c.mu.RUnlock()

	results := make(chan probeResult, len(probes))
	for i := range probes {
		go func(name string, probe Check) {
			start := time.Now()
			health := probe(ctx)
			health.Latency = time.Since(start).Round(time.Millisecond).String()
			results <- probeResult{name: name, health: health}
		}(names[i], probes[i])
	}

	report := Report{
		Status:     StatusUp,
		Components: make(map[string]ComponentHealth, len(probes)),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	for range probes {
		r := <-results
		report.Components[r.name] = r.health
		if severity(r.health.Status) > severity(report.Status) {
			report.Status = r.health.Status
		}
	}
	return report
}

// LiveHandler answers liveness probes. It only proves the process is serving
// requests, so it never runs the registered checks.
func (c *Checker) LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}
}

// ReadyHandler answers readiness probes with the full aggregated report,
// returning 503 unless every component is up.
func (c *Checker) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report := c.Run(ctx)
		w.Header().Set("Content-Type", "application/json")
		if report.Status != StatusUp {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(report)
	}
}
