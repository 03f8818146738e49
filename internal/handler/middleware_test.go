package handler

import (
	"net/http"
	"testing"
)

func TestCORSAllowsListedOrigin(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/health", "", func(r *http.Request) {
		r.Header.Set("Origin", "http://localhost:5173")
	})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/health", "", func(r *http.Request) {
		r.Header.Set("Origin", "https://evil.example.com")
	})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q for unlisted origin", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodOptions, "/auth/login", "", func(r *http.Request) {
		r.Header.Set("Origin", "http://localhost:5173")
		r.Header.Set("Access-Control-Request-Method", "POST")
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight: expected 204, got %d", w.Code)
	}
}

func TestNoRouteIsJSON(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}
