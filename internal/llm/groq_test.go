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

func TestGroqComplete(t *testing.T) {
	var gotRequests int
	var gotBody chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequests++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"skills\":[]}"}}]}`))
	}))
	defer server.Close()

	client := NewGroqClient("gsk-test", "").WithBaseURL(server.URL)

	reply, err := client.Complete(context.Background(), "review this resume")
	require.NoError(t, err)
	assert.Equal(t, `{"skills":[]}`, reply)

	// Exactly one round trip carrying the prompt as the single user message.
	assert.Equal(t, 1, gotRequests)
	assert.Equal(t, DefaultGroqModel, gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "review this resume", gotBody.Messages[0].Content)
}

func TestGroqCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`))
	}))
	defer server.Close()

	client := NewGroqClient("bad-key", "").WithBaseURL(server.URL)

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "groq", provErr.Provider)
	assert.Contains(t, provErr.Error(), "invalid api key")
}

func TestGroqCompleteTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewGroqClient("gsk-test", "").WithBaseURL(server.URL)

	_, err := client.Complete(context.Background(), "prompt")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
}

func TestGroqCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewGroqClient("gsk-test", "").WithBaseURL(server.URL)

	_, err := client.Complete(context.Background(), "prompt")
	assert.Error(t, err)
}
