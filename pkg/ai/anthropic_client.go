package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// anthropicImageTypes are the media types the Messages API accepts for images.
var anthropicImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type anthropicClient struct {
	client *anthropic.Client
	model  string
	log    *zap.Logger
}

// NewAnthropic talks to the Messages API, or to cfg.Endpoint when set.
// Photos go inline as base64 image blocks.
func NewAnthropic(cfg Config, log *zap.Logger) Client {
	var opts []anthropic.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(cfg.Endpoint, "/")))
	}
	return &anthropicClient{client: anthropic.NewClient(cfg.APIKey, opts...), model: cfg.Model, log: log}
}

func (c *anthropicClient) Advise(ctx context.Context, req AdviceRequest) (string, error) {
	var content []anthropic.MessageContent
	if len(req.Image) > 0 {
		mime := req.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		if anthropicImageTypes[mime] {
			content = append(content, anthropic.NewImageMessageContent(
				anthropic.NewMessageContentSource(anthropic.MessagesContentSourceTypeBase64, mime, req.Image),
			))
		} else {
			c.log.Warn("image type not supported, sending text only", zap.String("mime", mime))
		}
	}
	content = append(content, anthropic.NewTextMessageContent(renderPrompt(req)))

	start := time.Now()
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    systemPrompt,
		MaxTokens: maxAnswerTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: content},
		},
	})
	if err != nil {
		c.log.Error("messages request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			c.log.Info("messages request",
				zap.String("model", c.model),
				zap.Bool("image", len(content) > 1),
				zap.Int("input_tokens", resp.Usage.InputTokens),
				zap.Int("output_tokens", resp.Usage.OutputTokens),
				zap.Duration("elapsed", time.Since(start)))
			return strings.TrimSpace(*block.Text), nil
		}
	}
	return "", fmt.Errorf("%w: no text in response", ErrUnavailable)
}
