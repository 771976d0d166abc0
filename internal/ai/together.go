// README: Together chat-completions provider (OpenAI-compatible API).
package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"cityscope/internal/types"
)

const (
	togetherBaseURL = "https://api.together.xyz/v1"

	// DefaultTogetherModel is the fixed model identifier used when none is
	// configured.
	DefaultTogetherModel = "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"

	turnTemperature = 0.6
	turnMaxTokens   = 550
)

// TogetherProvider implements LLMProvider against Together's
// OpenAI-compatible chat-completions endpoint.
type TogetherProvider struct {
	client openai.Client
	model  string
}

// NewTogetherProvider builds a provider for the given credential and model.
// An empty model falls back to DefaultTogetherModel; an empty API key fails
// with ErrNotConfigured.
func NewTogetherProvider(apiKey, model string) (*TogetherProvider, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = DefaultTogetherModel
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(togetherBaseURL),
	)
	return &TogetherProvider{client: client, model: model}, nil
}

// CompleteTurn sends the system prompt plus the transcript and returns the
// parsed, normalized turn result.
func (p *TogetherProvider) CompleteTurn(ctx context.Context, transcript []types.Turn, current types.BookingData) (*TurnResult, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(transcript)+1)
	messages = append(messages, openai.SystemMessage(BuildSystemPrompt(current)))
	for _, turn := range transcript {
		switch turn.Role {
		case types.RoleUser:
			messages = append(messages, openai.UserMessage(turn.Content))
		case types.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		}
		// Stored system turns do not exist; anything else is dropped.
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    messages,
		Temperature: openai.Float(turnTemperature),
		MaxTokens:   openai.Int(turnMaxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, classifyCompletionError(err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion has no choices", ErrMalformed)
	}

	return parseTurnResult(completion.Choices[0].Message.Content)
}

// classifyCompletionError maps SDK and transport failures onto the gateway
// error taxonomy.
func classifyCompletionError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return &UpstreamError{StatusCode: apierr.StatusCode, Message: apierr.Message}
	}
	return classifyTransportError(err)
}

// classifyTransportError handles the network-level failure modes shared by
// all providers.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return fmt.Errorf("%w: %v", ErrUnexpected, err)
}
