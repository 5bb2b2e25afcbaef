package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := jsonContext(newEcho(), http.MethodGet, "/health", "")
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := ReadinessCheck{Name: "mongodb", Ping: func(context.Context) error { return nil }}
	down := ReadinessCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("all healthy", func(t *testing.T) {
		c, rec := jsonContext(newEcho(), http.MethodGet, "/health/ready", "")
		if err := NewHealthHandler(ok).Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		expectStatus(t, rec, http.StatusOK)
	})

	t.Run("one dependency down", func(t *testing.T) {
		c, rec := jsonContext(newEcho(), http.MethodGet, "/health/ready", "")
		if err := NewHealthHandler(ok, down).Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		expectStatus(t, rec, http.StatusServiceUnavailable)

		var resp readinessResponse
		decode(t, rec, &resp)
		if resp.Status != "degraded" || resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["mongodb"].Status != "ok" {
			t.Fatalf("unexpected body: %+v", resp)
		}
	})
}
