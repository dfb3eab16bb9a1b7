package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type openAI struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

// NewOpenAI talks to any OpenAI-compatible chat endpoint. Images are sent
// inline as data URLs.
func NewOpenAI(cfg Config, log *zap.Logger) Client {
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		cc.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}
	return &openAI{client: openai.NewClientWithConfig(cc), model: cfg.Model, log: log}
}

func (c *openAI) Advise(ctx context.Context, req AdviceRequest) (string, error) {
	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	prompt := renderPrompt(req)
	if len(req.Image) > 0 {
		mime := req.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		user.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(req.Image),
				Detail: openai.ImageURLDetailAuto,
			}},
		}
	} else {
		user.Content = prompt
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   maxAnswerTokens,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			user,
		},
	})
	if err != nil {
		c.log.Error("chat completion failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrUnavailable)
	}
	c.log.Info("chat completion",
		zap.String("model", c.model),
		zap.Bool("image", len(req.Image) > 0),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
