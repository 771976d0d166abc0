// README: Gemini provider behind the same gateway contract.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"cityscope/internal/types"
)

const geminiModel = "gemini-2.0-flash"

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a Gemini-backed gateway. An empty API key
// fails with ErrNotConfigured.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %v", ErrUnexpected, err)
	}

	model := client.GenerativeModel(geminiModel)
	// Force JSON output so the strict parse usually succeeds on the first try.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(turnTemperature)
	model.SetMaxOutputTokens(turnMaxTokens)

	return &GeminiProvider{client: client, model: model}, nil
}

// Close cleans up the underlying client.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// CompleteTurn renders the system prompt plus the transcript into a single
// combined prompt. Gemini supports SystemInstruction, but appending the
// context directly keeps the per-request data injection in one place.
func (p *GeminiProvider) CompleteTurn(ctx context.Context, transcript []types.Turn, current types.BookingData) (*TurnResult, error) {
	var b strings.Builder
	b.WriteString(BuildSystemPrompt(current))
	b.WriteString("\n\nConversation so far:\n")
	for _, turn := range transcript {
		switch turn.Role {
		case types.RoleUser:
			b.WriteString("User: ")
		case types.RoleAssistant:
			b.WriteString("CityBot: ")
		default:
			continue
		}
		b.WriteString(turn.Content)
		b.WriteByte('\n')
	}

	resp, err := p.model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no response candidates", ErrMalformed)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	return parseTurnResult(text.String())
}

func classifyGeminiError(err error) error {
	var apierr *googleapi.Error
	if errors.As(err, &apierr) {
		return &UpstreamError{StatusCode: apierr.Code, Message: apierr.Message}
	}
	return classifyTransportError(err)
}
