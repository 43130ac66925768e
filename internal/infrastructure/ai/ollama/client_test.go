package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const page = `<html><body><article><h2>Lemonade</h2><p>1 cup sugar, 4 cups water</p></article></body></html>`

func newServer(t *testing.T, status int, content string) (*httptest.Server, *ChatRequest) {
	t.Helper()
	var captured ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			return
		}
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(ChatResponse{Model: captured.Model, Message: ChatMessage{Role: "assistant", Content: content}, Done: true})
	}))
	t.Cleanup(server.Close)
	return server, &captured
}

func TestExtract(t *testing.T) {
	server, captured := newServer(t, http.StatusOK,
		`{"name":"Lemonade","ingredients":[{"quantity":"1","unit":"cup","name":"sugar"},{"quantity":"4","unit":"cups","name":"water"}],"instructions":["Stir."]}`)
	client := NewClient(Config{BaseURL: server.URL, Model: "llama-test"}, zap.NewNop())

	got, err := client.Extract(context.Background(), "https://example.com/lemonade", page)

	require.NoError(t, err)
	assert.Equal(t, "Lemonade", got.Name)
	assert.Len(t, got.Ingredients, 2)
	assert.Equal(t, "llama-test", captured.Model)
	assert.Equal(t, "json", captured.Format)
	assert.False(t, captured.Stream)
	require.Len(t, captured.Messages, 2)
	assert.Contains(t, captured.Messages[1].Content, "https://example.com/lemonade")
	assert.Contains(t, captured.Messages[1].Content, "Lemonade")
}

func TestExtractUpstreamErrorIsExtractionFailure(t *testing.T) {
	server, _ := newServer(t, http.StatusInternalServerError, "")
	client := NewClient(Config{BaseURL: server.URL}, zap.NewNop())

	_, err := client.Extract(context.Background(), "https://example.com/lemonade", page)

	assert.True(t, errors.Is(err, errors.CodeExtractionFailed))
}

func TestExtractUnparseableOutput(t *testing.T) {
	server, _ := newServer(t, http.StatusOK, "no recipe here")
	client := NewClient(Config{BaseURL: server.URL}, zap.NewNop())

	_, err := client.Extract(context.Background(), "https://example.com/lemonade", page)

	assert.True(t, errors.Is(err, errors.CodeExtractionFailed))
}

func TestHealthCheck(t *testing.T) {
	server, _ := newServer(t, http.StatusOK, "")
	client := NewClient(Config{BaseURL: server.URL + "/"}, zap.NewNop())

	assert.NoError(t, client.HealthCheck(context.Background()))
}
