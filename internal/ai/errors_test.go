package ai

import (
	"errors"
	"strings"
	"testing"

	"cityscope/internal/types"
)

func TestUpstreamError_CauseByStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{400, "invalid request"},
		{401, "authentication error"},
		{402, "payment required"},
		{403, "forbidden"},
		{404, "not found"},
		{429, "rate limit"},
		{500, "server error"},
		{503, "overloaded"},
	}
	for _, tt := range tests {
		err := &UpstreamError{StatusCode: tt.status}
		if !strings.Contains(err.Cause(), tt.want) {
			t.Errorf("status %d: cause %q does not mention %q", tt.status, err.Cause(), tt.want)
		}
	}
}

func TestUpstreamError_GenericFallbackCarriesMessage(t *testing.T) {
	err := &UpstreamError{StatusCode: 418, Message: "short and stout"}
	if !strings.Contains(err.Cause(), "short and stout") {
		t.Errorf("fallback cause lost the service message: %q", err.Cause())
	}
	if !strings.Contains(err.Error(), "418") {
		t.Errorf("error string lost the status code: %q", err.Error())
	}
}

func TestUpstreamError_MatchesSentinel(t *testing.T) {
	var err error = &UpstreamError{StatusCode: 500}
	if !errors.Is(err, ErrUpstream) {
		t.Fatal("UpstreamError does not match ErrUpstream")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != 500 {
		t.Fatal("errors.As failed to recover the status code")
	}
}

func TestUnconfiguredProvider(t *testing.T) {
	_, err := Unconfigured().CompleteTurn(t.Context(), nil, types.BookingData{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
