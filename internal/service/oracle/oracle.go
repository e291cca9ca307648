// Package oracle wraps the external LLM answering service behind a small
// Ask interface. The model is an opaque, possibly-unreliable black box;
// failures are folded into a fixed taxonomy the gateways can act on.
package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// Client is the single-call contract the gateways depend on. system frames
// the arbiter role, query carries the player-facing request.
type Client interface {
	Ask(ctx context.Context, system, query string) (string, error)
}

// ArkClient implements Client over the configured Ark chat model.
type ArkClient struct {
	chain   compose.Runnable[map[string]any, *schema.Message]
	timeout time.Duration
}

// NewArkClient compiles the prompt chain once up front.
func NewArkClient(ctx context.Context, chatModel model.ChatModel, timeout time.Duration) (*ArkClient, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile oracle chain: %w", err)
	}

	return &ArkClient{chain: runnable, timeout: timeout}, nil
}

// Ask issues one non-streaming request and returns the trimmed reply text.
func (c *ArkClient) Ask(ctx context.Context, system, query string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	response, err := c.chain.Invoke(ctx, map[string]any{
		"system": system,
		"query":  query,
	})
	if err != nil {
		return "", Classify(err)
	}

	return strings.TrimSpace(response.Content), nil
}
