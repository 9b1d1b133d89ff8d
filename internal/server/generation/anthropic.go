package generation

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultAnthropicModel = anthropic.ModelClaudeSonnet4_5

// AnthropicGenerator uses the Messages API. Claude has no JSON response mode,
// so FormatJSON only relies on the prompt; see FencedDecoder.
type AnthropicGenerator struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func NewAnthropic(apiKey, model string, opts ...option.RequestOption) *AnthropicGenerator {
	base := []option.RequestOption{option.WithMaxRetries(0)}
	if apiKey != "" {
		base = append(base, option.WithAPIKey(apiKey))
	}
	c := anthropic.NewClient(append(base, opts...)...)

	m := anthropic.Model(model)
	if model == "" {
		m = DefaultAnthropicModel
	}
	return &AnthropicGenerator{client: &c, model: m, maxTokens: 4096}
}

func (a *AnthropicGenerator) Name() string { return "anthropic" }

func (a *AnthropicGenerator) Model() string { return string(a.model) }

func (a *AnthropicGenerator) Generate(ctx context.Context, prompt string, _ Format) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &Error{Provider: a.Name(), StatusCode: apiErr.StatusCode, Message: parseProviderError(apiErr.StatusCode, []byte(apiErr.RawJSON()))}
		}
		return "", &Error{Provider: a.Name(), Message: friendlyNetworkError(err)}
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	if b.Len() == 0 {
		return "", &Error{Provider: a.Name(), StatusCode: http.StatusOK, Message: "response has no text"}
	}
	return b.String(), nil
}
