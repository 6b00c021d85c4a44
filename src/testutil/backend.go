package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const TestAPIKey = "test-api-key"

// Document is a row served by the fake documents backend
type Document struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// Backend is a fake PostgREST documents endpoint
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	documents []Document
	failing   bool
	delay     time.Duration
	requests  atomic.Int64
}

// NewBackend starts a fake backend serving documents. It is closed on test cleanup.
func NewBackend(t *testing.T, documents ...Document) *Backend {
	t.Helper()

	b := &Backend{documents: documents}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.Server.URL
}

// Requests returns how many document queries the backend has answered
func (b *Backend) Requests() int64 {
	return b.requests.Load()
}

// SetFailing makes every subsequent query fail with a 500
func (b *Backend) SetFailing(failing bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing = failing
}

// SetDelay holds every subsequent response for d or until the request is cancelled
func (b *Backend) SetDelay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delay = d
}

func (b *Backend) SetDocuments(documents ...Document) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.documents = documents
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.requests.Add(1)

	if r.URL.Path != "/rest/v1/documents" {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("apikey") != TestAPIKey || r.Header.Get("Authorization") != "Bearer "+TestAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
		return
	}

	b.mu.Lock()
	failing := b.failing
	delay := b.delay
	documents := append([]Document(nil), b.documents...)
	b.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if failing {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"internal error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")

	query := r.URL.Query()
	if filter := query.Get("slug"); filter != "" {
		slug := strings.TrimPrefix(filter, "eq.")
		matched := []Document{}
		for _, doc := range documents {
			if doc.Slug == slug {
				matched = append(matched, doc)
			}
		}
		_ = json.NewEncoder(w).Encode(matched)
		return
	}

	if query.Get("select") == "slug" {
		rows := make([]map[string]string, 0, len(documents))
		for _, doc := range documents {
			rows = append(rows, map[string]string{"slug": doc.Slug})
		}
		_ = json.NewEncoder(w).Encode(rows)
		return
	}

	_ = json.NewEncoder(w).Encode(documents)
}
