package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOllamaClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3", body["model"])
		assert.Equal(t, "json", body["format"])
		assert.Equal(t, false, body["stream"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"[1,2]"},"done":true,"prompt_eval_count":10,"eval_count":3}`))
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL+"/v1/", "llama3", srv.Client(), zap.NewNop())
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), Request{SystemPrompt: "s", UserPrompt: "u", JSON: true})
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", out)
	assert.Equal(t, "ollama", client.Provider())
}

func TestOllamaClient_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":""},"done":true}`))
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL, "llama3", srv.Client(), zap.NewNop())
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), Request{UserPrompt: "u"})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}
