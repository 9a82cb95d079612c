package llm

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

// AnthropicClient completes prompts with the Anthropic Messages API.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicClient creates a client. An empty baseURL uses the public API.
// The SDK's automatic retries are disabled.
func NewAnthropicClient(apiKey, model, baseURL string, timeout time.Duration) (client *AnthropicClient) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client = &AnthropicClient{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: 4096,
	}
	return client
}

// Complete implements Completer. The kind is not sent; the Messages API has no
// equivalent field.
func (c *AnthropicClient) Complete(ctx context.Context, prompt, kind string) (text string, err error) {
	var msg *anthropic.Message
	msg, err = c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		err = errors.Wrapf(err, "anthropic %s request failed", kind)
		return text, err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text = b.String()
	if text == "" {
		err = errors.New("no content in Claude response")
		return text, err
	}

	return text, err
}
