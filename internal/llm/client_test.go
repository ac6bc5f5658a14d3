package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(ClientConfig{Model: "m"})
	assert.Error(t, err, "base URL is required")

	_, err = NewClient(ClientConfig{BaseURL: "http://localhost"})
	assert.Error(t, err, "model is required")

	client, err := NewClient(ClientConfig{BaseURL: "http://localhost", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "m", client.Name(), "name defaults to the model")
}

func TestClient_Complete_Success(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Tap the plus button."}}]}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{
		Name:    "test",
		BaseURL: server.URL,
		Model:   "test-model",
		APIKey:  "secret",
	})
	require.NoError(t, err)

	reply, err := client.Complete(context.Background(), []Message{
		{Role: "system", Content: "You are a help assistant."},
		{Role: "user", Content: "How do I add a task?"},
	}, GenerationConfig{Temperature: 0.3, MaxTokens: 700})

	require.NoError(t, err)
	assert.Equal(t, "Tap the plus button.", reply)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, 700, gotReq.MaxTokens)
	assert.Len(t, gotReq.Messages, 2)
}

func TestClient_Complete_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{Name: "test", BaseURL: server.URL, Model: "m"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationConfig{})
	assert.ErrorContains(t, err, "status 429")
}

func TestClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{Name: "test", BaseURL: server.URL, Model: "m"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationConfig{})
	assert.ErrorContains(t, err, "invalid api key")
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{Name: "test", BaseURL: server.URL, Model: "m"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationConfig{})
	assert.ErrorContains(t, err, "empty choices")
}
