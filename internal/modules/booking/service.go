// README: Turn orchestrator; merges gateway extractions into session state and gates the redirect.
package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"cityscope/internal/ai"
	"cityscope/internal/types"
)

// Service runs one chat turn end to end. The LLM provider is an explicit
// dependency; an unconfigured provider surfaces ai.ErrNotConfigured on every
// turn instead of a nil check at the call site.
type Service struct {
	provider   ai.LLMProvider
	bookingURL string
	archive    *Archive
	log        *zap.Logger
}

// NewService wires the orchestrator. archive may be nil when no database is
// configured; bookingURL is the base of the booking summary page.
func NewService(provider ai.LLMProvider, bookingURL string, archive *Archive, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, bookingURL: bookingURL, archive: archive, log: log}
}

// TurnOutcome is what one processed turn hands back to the web surface.
type TurnOutcome struct {
	Reply       string
	Data        types.BookingData
	RedirectURL string // empty until all seven fields are collected
}

// ProcessTurn appends the user utterance, calls the gateway, merges the
// extraction, and gates the redirect. On gateway failure the typed error is
// propagated untouched; the user turn stays in the transcript so it is
// replayed on the next successful call, and the booking data is not modified.
func (s *Service) ProcessTurn(ctx context.Context, sess *Session, utterance string) (TurnOutcome, error) {
	sess.Transcript = append(sess.Transcript, types.Turn{Role: types.RoleUser, Content: utterance})
	sess.UpdatedAt = time.Now().UTC()

	result, err := s.provider.CompleteTurn(ctx, sess.Transcript, sess.Data)
	if err != nil {
		return TurnOutcome{}, err
	}

	// The gateway result is fully validated and normalized, so the merge is a
	// wholesale overwrite of all seven fields. An explicit null from the
	// model un-sets a previously known field.
	sess.Data.Merge(result.Extracted)

	reply := result.Reply
	var redirect string
	if sess.Data.Complete() {
		redirect = s.bookingURL + "?" + sess.Data.Query()
		if !strings.Contains(reply, "http") {
			reply += " Your trip summary link is ready: " + redirect
		}
		s.recordBooking(ctx, sess)
	}

	sess.Transcript = append(sess.Transcript, types.Turn{Role: types.RoleAssistant, Content: reply})
	sess.UpdatedAt = time.Now().UTC()

	return TurnOutcome{Reply: reply, Data: sess.Data, RedirectURL: redirect}, nil
}

// RecordFailure appends the web surface's apology as an assistant turn so the
// conversation stays coherent across failed turns.
func (s *Service) RecordFailure(sess *Session, apology string) {
	sess.Transcript = append(sess.Transcript, types.Turn{Role: types.RoleAssistant, Content: apology})
	sess.UpdatedAt = time.Now().UTC()
}

// recordBooking persists a completed booking. Best effort: the turn already
// succeeded, so an archive failure is logged and swallowed.
func (s *Service) recordBooking(ctx context.Context, sess *Session) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Record(ctx, sess.ID, sess.Data); err != nil {
		s.log.Warn("archive completed booking", zap.String("session_id", sess.ID), zap.Error(err))
	}
}
