// Package ai is the assistant behind the "ask about this task" button. Its
// answers are advisory; nothing else in the service depends on them.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"kiku/entities"
)

// ErrUnavailable wraps every provider failure.
var ErrUnavailable = errors.New("assistant unavailable")

type AdviceRequest struct {
	Question string
	// Manual, when set, is given to the model as context.
	Manual    *entities.WorkManual
	Image     []byte
	ImageMIME string
}

type Client interface {
	Advise(ctx context.Context, req AdviceRequest) (string, error)
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

type Config struct {
	Provider string
	Endpoint string
	APIKey   string
	Model    string
}

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
	maxAnswerTokens       = 1024
)

// New picks the provider named in cfg.
func New(cfg Config, log *zap.Logger) (Client, error) {
	log = log.Named("ai")
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		if cfg.APIKey == "" && cfg.Endpoint == "" {
			return nil, fmt.Errorf("openai provider needs LLM_API_KEY or LLM_ENDPOINT")
		}
		if cfg.Model == "" {
			cfg.Model = defaultOpenAIModel
		}
		return NewOpenAI(cfg, log), nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic provider needs LLM_API_KEY")
		}
		if cfg.Model == "" {
			cfg.Model = defaultAnthropicModel
		}
		return NewAnthropic(cfg, log), nil
	case ProviderMock, "":
		return NewMock(), nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
}

const systemPrompt = "あなたはスプレーギク栽培の現場指導員です。作業者の質問に、日本語で簡潔かつ実行可能な手順として答えてください。" +
	"写真がある場合は症状を具体的に読み取り、不確かなことは不確かと書いてください。"

func renderPrompt(req AdviceRequest) string {
	var b strings.Builder
	b.WriteString("質問:\n")
	b.WriteString(strings.TrimSpace(req.Question))
	b.WriteString("\n")
	if m := req.Manual; m != nil {
		fmt.Fprintf(&b, "\n作業マニュアル「%s」\n", m.WorkName)
		for _, kv := range []struct{ k, v string }{
			{"ステージ", m.Stage},
			{"目的", m.Purpose},
			{"時期の目安", m.TimingStandard},
			{"手順", m.ActionSteps},
			{"怠った場合のリスク", m.RiskIfSkipped},
			{"影響", m.Impact},
		} {
			if v := strings.TrimSpace(kv.v); v != "" {
				fmt.Fprintf(&b, "- %s: %s\n", kv.k, v)
			}
		}
		if m.RequiredTime10a > 0 {
			fmt.Fprintf(&b, "- 標準作業時間: 10aあたり %.1f 時間\n", m.RequiredTime10a)
		}
	}
	return b.String()
}
