package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/infrastructure/history"
	"github.com/clipd/clipd/internal/pkg/logger"
)

func newTestServer(t *testing.T) (*Server, *history.FileStore) {
	t.Helper()
	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"), 10, 1000)
	return NewServer(store, logger.NewNop(), 0), store
}

func TestHandleHistory(t *testing.T) {
	srv, store := newTestServer(t)
	if err := store.Add("first"); err != nil {
		t.Fatal(err)
	}
	if err := store.Add("second"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=10", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if id := rec.Header().Get("X-Request-ID"); id == "" {
		t.Error("X-Request-ID header missing")
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if len(entries) != 2 || entries[0].Content != "second" {
		t.Errorf("entries = %+v, want most-recent-first", entries)
	}
}

func TestHandleHistorySearch(t *testing.T) {
	srv, store := newTestServer(t)
	if err := store.Add("kubernetes notes"); err != nil {
		t.Fatal(err)
	}
	if err := store.Add("grocery list"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/history?search=kubernetes", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.Contains(entries[0].Content, "kubernetes") {
		t.Errorf("entries = %+v, want only the matching entry", entries)
	}
}

func TestHandleHistoryBadLimit(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleClear(t *testing.T) {
	srv, store := newTestServer(t)
	if err := store.Add("to be removed"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/history", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	entries, _ := store.Entries(0, "")
	if len(entries) != 0 {
		t.Errorf("store still has %d entries after clear", len(entries))
	}
}

func TestHandleStatsAndHealth(t *testing.T) {
	srv, store := newTestServer(t)
	if err := store.Add("abc"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var stats domain.HistoryStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("stats not JSON: %v", err)
	}
	if stats.Entries != 1 || stats.TotalBytes != 3 {
		t.Errorf("stats = %+v", stats)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestHandleIndexServesHTML(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %s, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "clipd history") {
		t.Error("index page missing expected content")
	}
}
