package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchSendsIdentifyingHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h1>Pancakes</h1></body></html>"))
	}))
	defer server.Close()

	f := New(Config{}, zap.NewNop())
	page, err := f.Fetch(context.Background(), server.URL+"/pancakes")

	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "text/html,application/xhtml+xml", gotAccept)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.HTML, "Pancakes")
	assert.Equal(t, "text/html; charset=utf-8", page.ContentType)
	assert.Equal(t, server.URL+"/pancakes", page.FinalURL)
}

func TestFetchNon2xxIsUpstreamFailure(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := New(Config{}, zap.NewNop()).Fetch(context.Background(), server.URL)
		server.Close()

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeUpstreamFetchFailed))
		assert.Contains(t, err.Error(), fmt.Sprintf("status %d", status))
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	page, err := New(Config{}, zap.NewNop()).Fetch(context.Background(), server.URL+"/old")

	require.NoError(t, err)
	assert.Equal(t, server.URL+"/old", page.URL)
	assert.Equal(t, server.URL+"/new", page.FinalURL)
}

func TestFetchTruncatesLargeBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer server.Close()

	page, err := New(Config{MaxBodyBytes: 100}, zap.NewNop()).Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Len(t, page.HTML, 100)
}

func TestFetchTransportErrorIsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := New(Config{Timeout: time.Second}, zap.NewNop()).Fetch(context.Background(), addr)

	assert.True(t, errors.Is(err, errors.CodeUpstreamFetchFailed))
}
