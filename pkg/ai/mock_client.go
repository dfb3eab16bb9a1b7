package ai

import (
	"context"
	"fmt"
	"strings"
)

type mockClient struct{}

// NewMock answers from the manual without calling out.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Advise(ctx context.Context, req AdviceRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("(mock) ")
	if req.Manual != nil {
		fmt.Fprintf(&b, "「%s」のマニュアルを確認してください。", req.Manual.WorkName)
		if s := strings.TrimSpace(req.Manual.ActionSteps); s != "" {
			b.WriteString("\n")
			b.WriteString(s)
		}
	} else {
		b.WriteString("AIアシスタントは設定されていません。")
	}
	if len(req.Image) > 0 {
		fmt.Fprintf(&b, "\n写真 %d バイトを受け取りました。", len(req.Image))
	}
	return b.String(), nil
}
