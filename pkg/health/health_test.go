package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRunAllUp(t *testing.T) {
	c := NewChecker()
	c.Register("index", func(ctx context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusUp, Message: "3 documents indexed"}
	})
	c.Register("redis", func(ctx context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusUp}
	})

	report := c.Run(context.Background())
	if report.Status != StatusUp {
		t.Errorf("Status = %s, want %s", report.Status, StatusUp)
	}
	if len(report.Components) != 2 {
		t.Errorf("Components = %v, want 2 entries", report.Components)
	}
	if report.Components["index"].Message != "3 documents indexed" {
		t.Errorf("index message = %q", report.Components["index"].Message)
	}
}

func TestRunWorstStatusWins(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"degraded component", []Status{StatusUp, StatusDegraded}, StatusDegraded},
		{"down component", []Status{StatusUp, StatusDegraded, StatusDown}, StatusDown},
		{"no components", nil, StatusUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker()
			for i, status := range tt.statuses {
				s := status
				c.Register(string(rune('a'+i)), func(ctx context.Context) ComponentHealth {
					return ComponentHealth{Status: s}
				})
			}
			if report := c.Run(context.Background()); report.Status != tt.want {
				t.Errorf("Status = %s, want %s", report.Status, tt.want)
			}
		})
	}
}

func TestLiveHandler(t *testing.T) {
	c := NewChecker()
	rec := httptest.NewRecorder()
	c.LiveHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestReadyHandler(t *testing.T) {
	c := NewChecker()
	c.Register("index", func(ctx context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusDown, Message: "index is empty"}
	})

	rec := httptest.NewRecorder()
	c.ReadyHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.Status != StatusDown {
		t.Errorf("report status = %s, want %s", report.Status, StatusDown)
	}
}
