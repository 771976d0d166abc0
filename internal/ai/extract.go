// README: Two-stage JSON recovery, validation, and field normalization for model output.
package ai

import (
	"encoding/json"
	"fmt"
	"regexp"

	"cityscope/internal/types"
)

// Recovery order is part of the gateway contract: a fenced code block wins
// over a bare brace-delimited object.
var (
	fencedBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")
	braceObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)
)

// extractJSONObject finds the most plausible JSON object substring in free
// text. Returns false when neither a fenced block nor a brace-delimited
// object is present.
func extractJSONObject(raw string) (string, bool) {
	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if m := braceObjectRe.FindString(raw); m != "" {
		return m, true
	}
	return "", false
}

type turnPayload struct {
	ResponseToUser *string                    `json:"response_to_user"`
	ExtractedData  map[string]json.RawMessage `json:"extracted_data"`
}

// parseTurnResult turns the raw model completion into a validated TurnResult.
// It attempts a strict parse first and falls back to substring recovery.
// Any failure is reported as ErrMalformed.
func parseTurnResult(raw string) (*TurnResult, error) {
	var payload turnPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		candidate, ok := extractJSONObject(raw)
		if !ok {
			return nil, fmt.Errorf("%w: no JSON object found in completion", ErrMalformed)
		}
		if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
			return nil, fmt.Errorf("%w: completion is not valid JSON despite extraction: %v", ErrMalformed, err)
		}
	}

	if payload.ResponseToUser == nil {
		return nil, fmt.Errorf("%w: missing response_to_user", ErrMalformed)
	}
	if payload.ExtractedData == nil {
		return nil, fmt.Errorf("%w: missing extracted_data", ErrMalformed)
	}

	return &TurnResult{
		Reply:     *payload.ResponseToUser,
		Extracted: normalizeExtracted(payload.ExtractedData),
	}, nil
}

// normalizeExtracted maps whatever object the model returned onto exactly the
// seven booking fields: string values are kept, anything else (null, numbers,
// nested objects) becomes nil, extra keys are dropped, missing keys are nil.
func normalizeExtracted(raw map[string]json.RawMessage) types.BookingData {
	var data types.BookingData
	for _, key := range types.BookingFields {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		var v *string
		if err := json.Unmarshal(msg, &v); err != nil {
			continue
		}
		data.Set(key, v)
	}
	return data
}
