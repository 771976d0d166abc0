// README: Gateway contract for chat-completion providers.
package ai

import (
	"context"

	"cityscope/internal/types"
)

// LLMProvider is the gateway to the external chat-completion service.
// Implementations build the system prompt from the current booking data,
// send the transcript, and return a validated, normalized turn result.
// Failures are reported through the typed errors in errors.go; callers
// never reclassify them.
type LLMProvider interface {
	CompleteTurn(ctx context.Context, transcript []types.Turn, current types.BookingData) (*TurnResult, error)
}

// Unconfigured returns a provider whose every call fails with
// ErrNotConfigured. It stands in when no credential is present so the
// dependency stays explicit instead of a nullable global.
func Unconfigured() LLMProvider {
	return unconfiguredProvider{}
}

type unconfiguredProvider struct{}

func (unconfiguredProvider) CompleteTurn(context.Context, []types.Turn, types.BookingData) (*TurnResult, error) {
	return nil, ErrNotConfigured
}
