package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kiku/entities"
)

func TestRenderPromptIncludesManual(t *testing.T) {
	p := renderPrompt(AdviceRequest{
		Question: " 葉が黄色い ",
		Manual: &entities.WorkManual{
			WorkName:        "灌水",
			Purpose:         "水分管理",
			RiskIfSkipped:   "萎れ",
			RequiredTime10a: 1.5,
		},
	})
	assert.Contains(t, p, "葉が黄色い\n")
	assert.Contains(t, p, "作業マニュアル「灌水」")
	assert.Contains(t, p, "- 目的: 水分管理")
	assert.Contains(t, p, "10aあたり 1.5 時間")
	assert.NotContains(t, p, "手順", "blank fields are left out")
}

func TestNewSelectsProvider(t *testing.T) {
	log := zap.NewNop()

	c, err := New(Config{}, log)
	require.NoError(t, err)
	assert.IsType(t, &mockClient{}, c)

	c, err = New(Config{Provider: "OpenAI", APIKey: "k"}, log)
	require.NoError(t, err)
	assert.Equal(t, defaultOpenAIModel, c.(*openAI).model)

	c, err = New(Config{Provider: "anthropic", APIKey: "k", Model: "claude-x"}, log)
	require.NoError(t, err)
	assert.Equal(t, "claude-x", c.(*anthropicClient).model)

	_, err = New(Config{Provider: "anthropic"}, log)
	assert.Error(t, err)
	_, err = New(Config{Provider: "gemini"}, log)
	assert.Error(t, err)
}

func TestMockAdvise(t *testing.T) {
	out, err := NewMock().Advise(context.Background(), AdviceRequest{
		Question: "?",
		Manual:   &entities.WorkManual{WorkName: "消灯", ActionSteps: "1. 電照を切る"},
		Image:    []byte("abc"),
	})
	require.NoError(t, err)
	assert.Contains(t, out, "「消灯」")
	assert.Contains(t, out, "1. 電照を切る")
	assert.Contains(t, out, "3 バイト")
}

func TestOpenAISendsImageAsDataURL(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":" 白さび病の初期症状です。 "},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`)
	}))
	defer srv.Close()

	c := NewOpenAI(Config{Endpoint: srv.URL + "/v1/", APIKey: "k", Model: "gpt-4o-mini"}, zap.NewNop())
	out, err := c.Advise(context.Background(), AdviceRequest{Question: "この斑点は?", Image: []byte{0xff, 0xd8}, ImageMIME: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, "白さび病の初期症状です。", out)

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	parts := msgs[1].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	img := parts[1].(map[string]any)["image_url"].(map[string]any)
	assert.Equal(t, "data:image/jpeg;base64,/9g=", img["url"])
}

func TestOpenAIFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}))
	defer srv.Close()

	c := NewOpenAI(Config{Endpoint: srv.URL, APIKey: "k", Model: "m"}, zap.NewNop())
	_, err := c.Advise(context.Background(), AdviceRequest{Question: "?"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func anthropicServer(t *testing.T, body *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("X-Api-Key"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-x","content":[{"type":"text","text":" 葉裏を確認してください。 "}],"stop_reason":"end_turn","usage":{"input_tokens":12,"output_tokens":6}}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicSendsImageBlock(t *testing.T) {
	var body map[string]any
	srv := anthropicServer(t, &body)

	c := NewAnthropic(Config{Endpoint: srv.URL + "/v1/", APIKey: "k", Model: "claude-x"}, zap.NewNop())
	out, err := c.Advise(context.Background(), AdviceRequest{Question: "この斑点は?", Image: []byte{0xff, 0xd8}, ImageMIME: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, "葉裏を確認してください。", out)

	assert.Equal(t, systemPrompt, body["system"])
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 1)
	parts := msgs[0].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	img := parts[0].(map[string]any)
	assert.Equal(t, "image", img["type"])
	src := img["source"].(map[string]any)
	assert.Equal(t, "base64", src["type"])
	assert.Equal(t, "image/jpeg", src["media_type"])
	assert.Equal(t, "/9g=", src["data"])
	assert.Equal(t, "text", parts[1].(map[string]any)["type"])
}

func TestAnthropicSkipsUnsupportedImageType(t *testing.T) {
	var body map[string]any
	srv := anthropicServer(t, &body)

	c := NewAnthropic(Config{Endpoint: srv.URL + "/v1", APIKey: "k", Model: "claude-x"}, zap.NewNop())
	_, err := c.Advise(context.Background(), AdviceRequest{Question: "?", Image: []byte("heic"), ImageMIME: "image/heic"})
	require.NoError(t, err)

	parts := body["messages"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, parts, 1)
	assert.Equal(t, "text", parts[0].(map[string]any)["type"])
}
