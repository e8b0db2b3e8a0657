package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exam_prep_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0.7,
		TimeoutMs:   5000,
	}
}

func TestCompleteSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		payload, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(payload, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"# 分析报告\n内容"}}]}`)
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL))
	content, err := svc.Complete(context.Background(), "system prompt", "user prompt")

	require.NoError(t, err)
	assert.Equal(t, "# 分析报告\n内容", content)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)

	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "system prompt", gotBody.Messages[0].Content)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, "user prompt", gotBody.Messages[1].Content)
	assert.Equal(t, "test-model", gotBody.Model)
	assert.False(t, gotBody.Stream)
}

func TestCompleteOmitsMaxTokensWhenZero(t *testing.T) {
	var raw map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(payload, &raw))
		io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL))
	_, err := svc.Complete(context.Background(), "s", "u")

	require.NoError(t, err)
	_, hasMaxTokens := raw["max_tokens"]
	assert.False(t, hasMaxTokens)
}

func TestCompleteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"message":"boom"}}`)
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL))
	_, err := svc.Complete(context.Background(), "s", "u")

	require.Error(t, err)
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "boom")
}

func TestCompleteMalformedResponse(t *testing.T) {
	cases := map[string]string{
		"invalid json":  `not json at all`,
		"empty choices": `{"choices":[]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			}))
			defer server.Close()

			svc := NewAIService(testAIConfig(server.URL))
			_, err := svc.Complete(context.Background(), "s", "u")
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	cfg := testAIConfig(server.URL)
	cfg.TimeoutMs = 50
	svc := NewAIService(cfg)

	start := time.Now()
	_, err := svc.Complete(context.Background(), "s", "u")
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrAITimeout)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestUpdateConfigTakesEffect(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		payload, _ := io.ReadAll(r.Body)
		json.Unmarshal(payload, &req)
		gotModel = req.Model
		io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL))

	newCfg := testAIConfig(server.URL)
	newCfg.Model = "updated-model"
	svc.UpdateConfig(newCfg)

	_, err := svc.Complete(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "updated-model", gotModel)
}
