package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getStatus(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return rec.Code, body.Status
}

func TestHealthServer_Liveness(t *testing.T) {
	server := NewHealthServer(":0", discardLogger())

	code, status := getStatus(t, server.Handler(), "/health")
	if code != http.StatusOK || status != "ok" {
		t.Fatalf("/health = %d %q", code, status)
	}
}

func TestHealthServer_Readiness_Transition(t *testing.T) {
	server := NewHealthServer(":0", discardLogger())
	h := server.Handler()

	if code, status := getStatus(t, h, "/ready"); code != http.StatusServiceUnavailable || status != "not ready" {
		t.Fatalf("initial /ready = %d %q", code, status)
	}

	server.SetReady(true)
	if code, status := getStatus(t, h, "/ready"); code != http.StatusOK || status != "ok" {
		t.Fatalf("/ready after SetReady(true) = %d %q", code, status)
	}

	server.SetReady(false)
	if code, _ := getStatus(t, h, "/ready"); code != http.StatusServiceUnavailable {
		t.Fatalf("/ready after SetReady(false) = %d", code)
	}
	// liveness is unaffected by readiness
	if code, _ := getStatus(t, h, "/health"); code != http.StatusOK {
		t.Fatalf("/health = %d", code)
	}
}

func TestHealthServer_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthServer(":0", discardLogger()).Handler().
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health = %d", rec.Code)
	}
}

func TestHealthServer_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	server := NewHealthServer(addr, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/health")
		if err == nil {
			_ = resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("Start returned %v", err)
		}
	case <-time.After(6 * time.Second):
		t.Fatal("server did not stop")
	}
}
