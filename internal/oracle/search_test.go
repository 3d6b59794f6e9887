package oracle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/avoskres/aiso/internal/model"
)

func newTestSearchClient(t *testing.T, handler http.HandlerFunc) (*SearchClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewSearchClient(model.SearchConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		MaxResults: 5,
		RatePerSec: 1000, // keep tests fast
	})
	if err != nil {
		t.Fatalf("NewSearchClient: %v", err)
	}
	return client, server
}

func TestSearch_ParsesAndBoundsResults(t *testing.T) {
	client, _ := newTestSearchClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results": [
			{"title": "One", "url": "https://a.example", "snippet": "first"},
			{"title": "Two", "url": "https://b.example", "snippet": "second"},
			{"title": "Three", "url": "https://c.example", "snippet": "third"}
		]}`)
	})

	results, err := client.Search(context.Background(), "test query", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (bounded)", len(results))
	}
	if results[0].Title != "One" || results[0].URL != "https://a.example" {
		t.Errorf("first result = %+v", results[0])
	}
}

func TestSearch_CachesRepeatQueries(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestSearchClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"results": [{"title": "T", "url": "https://x.example", "snippet": "s"}]}`)
	})

	for i := 0; i < 3; i++ {
		if _, err := client.Search(context.Background(), "same query", 5); err != nil {
			t.Fatalf("Search %d: %v", i, err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("API called %d times, want 1 (cached)", got)
	}
}

func TestSearch_ServerErrorIsUnavailable(t *testing.T) {
	client, _ := newTestSearchClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), "q", 5)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestSearch_BadJSONIsMalformed(t *testing.T) {
	client, _ := newTestSearchClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	})

	_, err := client.Search(context.Background(), "q", 5)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestSearch_SkipsResultsWithoutURL(t *testing.T) {
	client, _ := newTestSearchClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [{"title": "NoURL"}, {"title": "OK", "url": "https://ok.example"}]}`)
	})

	results, err := client.Search(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Title != "OK" {
		t.Errorf("results = %+v", results)
	}
}
