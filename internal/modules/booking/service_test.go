package booking

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"cityscope/internal/ai"
	"cityscope/internal/types"
)

// stubProvider returns a scripted sequence of results or a fixed error.
type stubProvider struct {
	results []*ai.TurnResult
	err     error
	calls   int
	// lastTranscript and lastData capture what the orchestrator sent.
	lastTranscript []types.Turn
	lastData       types.BookingData
}

func (s *stubProvider) CompleteTurn(_ context.Context, transcript []types.Turn, current types.BookingData) (*ai.TurnResult, error) {
	s.lastTranscript = append([]types.Turn(nil), transcript...)
	s.lastData = current
	if s.err != nil {
		return nil, s.err
	}
	result := s.results[s.calls]
	s.calls++
	return result, nil
}

func str(s string) *string { return &s }

const bookingURL = "http://localhost:8080/booking"

func TestNewSession_GreetingOnly(t *testing.T) {
	sess := NewSession("abc123")

	if len(sess.Transcript) != 1 {
		t.Fatalf("expected transcript of length 1, got %d", len(sess.Transcript))
	}
	if sess.Transcript[0].Role != types.RoleAssistant || sess.Transcript[0].Content != Greeting {
		t.Fatalf("unexpected first turn: %+v", sess.Transcript[0])
	}
	for _, key := range types.BookingFields {
		if sess.Data.Get(key) != nil {
			t.Errorf("field %s not null on fresh session", key)
		}
	}
}

func TestProcessTurn_PartialExtraction(t *testing.T) {
	provider := &stubProvider{results: []*ai.TurnResult{{
		Reply:     "Great to meet you, Ana! When do you arrive in Lima?",
		Extracted: types.BookingData{Name: str("Ana"), City: str("Lima")},
	}}}
	svc := NewService(provider, bookingURL, nil, nil)
	sess := NewSession("abc123")

	outcome, err := svc.ProcessTurn(t.Context(), sess, "My name is Ana and I'm going to Lima")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	if outcome.RedirectURL != "" {
		t.Errorf("redirect issued for incomplete booking: %s", outcome.RedirectURL)
	}
	if outcome.Data.Name == nil || *outcome.Data.Name != "Ana" {
		t.Errorf("expected name Ana, got %v", outcome.Data.Name)
	}
	if outcome.Data.City == nil || *outcome.Data.City != "Lima" {
		t.Errorf("expected city Lima, got %v", outcome.Data.City)
	}
	for _, key := range types.BookingFields[2:] {
		if v := outcome.Data.Get(key); v != nil {
			t.Errorf("expected %s nil, got %q", key, *v)
		}
	}

	// greeting + user + assistant
	if len(sess.Transcript) != 3 {
		t.Fatalf("expected 3 transcript turns, got %d", len(sess.Transcript))
	}
	if last := sess.Transcript[2]; last.Role != types.RoleAssistant || last.Content != outcome.Reply {
		t.Errorf("assistant turn not appended: %+v", last)
	}

	// The gateway saw the transcript including the new user turn, and the
	// pre-merge booking data.
	if got := provider.lastTranscript[len(provider.lastTranscript)-1]; got.Role != types.RoleUser {
		t.Errorf("gateway did not receive the user turn last: %+v", got)
	}
	if provider.lastData.Name != nil {
		t.Error("gateway received post-merge data")
	}
}

func TestProcessTurn_CompletionRedirect(t *testing.T) {
	provider := &stubProvider{results: []*ai.TurnResult{{
		Reply: "Awesome, Ana! Got all your travel plans.",
		Extracted: types.BookingData{
			Name:              str("Ana"),
			City:              str("Lima"),
			ArrivalDate:       str("July 1"),
			ArrivalTime:       str("2 PM"),
			DepartureDate:     str("July 5"),
			DepartureTime:     str("10 AM"),
			ExperienceDetails: str("food tour"),
		},
	}}}
	svc := NewService(provider, bookingURL, nil, nil)
	sess := NewSession("abc123")

	outcome, err := svc.ProcessTurn(t.Context(), sess, "10 AM, and I'd love a food tour")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	if outcome.RedirectURL == "" {
		t.Fatal("expected redirect for complete booking")
	}
	if !strings.HasPrefix(outcome.RedirectURL, bookingURL+"?") {
		t.Fatalf("redirect does not point at booking page: %s", outcome.RedirectURL)
	}

	u, err := url.Parse(outcome.RedirectURL)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	q := u.Query()
	if q.Get("name") != "Ana" || q.Get("experience_details") != "food tour" {
		t.Errorf("query params wrong: %v", q)
	}

	// The reply had no link, so the orchestrator appends one.
	if !strings.Contains(outcome.Reply, outcome.RedirectURL) {
		t.Errorf("reply missing redirect link: %q", outcome.Reply)
	}
}

func TestProcessTurn_ReplyAlreadyLinked(t *testing.T) {
	reply := "All set! Your summary: http://example.com/booking?x=1"
	provider := &stubProvider{results: []*ai.TurnResult{{
		Reply: reply,
		Extracted: types.BookingData{
			Name:              str("Ana"),
			City:              str("Lima"),
			ArrivalDate:       str("July 1"),
			ArrivalTime:       str("2 PM"),
			DepartureDate:     str("July 5"),
			DepartureTime:     str("10 AM"),
			ExperienceDetails: str("food tour"),
		},
	}}}
	svc := NewService(provider, bookingURL, nil, nil)
	sess := NewSession("abc123")

	outcome, err := svc.ProcessTurn(t.Context(), sess, "done")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if outcome.Reply != reply {
		t.Fatalf("reply rewritten although it already contains a link: %q", outcome.Reply)
	}
	if outcome.RedirectURL == "" {
		t.Fatal("redirect still expected alongside a linked reply")
	}
}

func TestProcessTurn_ExplicitNullClearsField(t *testing.T) {
	provider := &stubProvider{results: []*ai.TurnResult{
		{Reply: "Lima it is!", Extracted: types.BookingData{City: str("Lima")}},
		// Next turn the model reports city as null again.
		{Reply: "Sure, which city then?", Extracted: types.BookingData{Name: str("Ana")}},
	}}
	svc := NewService(provider, bookingURL, nil, nil)
	sess := NewSession("abc123")

	if _, err := svc.ProcessTurn(t.Context(), sess, "I'm going to Lima"); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if sess.Data.City == nil {
		t.Fatal("city not set after first turn")
	}

	outcome, err := svc.ProcessTurn(t.Context(), sess, "Actually forget the city, I'm Ana")
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if outcome.Data.City != nil {
		t.Fatalf("explicit null did not clear city: %q", *outcome.Data.City)
	}
	if outcome.Data.Name == nil || *outcome.Data.Name != "Ana" {
		t.Errorf("expected name Ana, got %v", outcome.Data.Name)
	}
}

func TestProcessTurn_GatewayFailureKeepsUserTurn(t *testing.T) {
	provider := &stubProvider{err: ai.ErrTimeout}
	svc := NewService(provider, bookingURL, nil, nil)
	sess := NewSession("abc123")
	sess.Data.City = str("Lima")

	_, err := svc.ProcessTurn(t.Context(), sess, "I arrive July 1st")
	if !errors.Is(err, ai.ErrTimeout) {
		t.Fatalf("expected ErrTimeout propagated untouched, got %v", err)
	}

	// The user turn stays recorded so the next successful call replays it.
	if len(sess.Transcript) != 2 {
		t.Fatalf("expected greeting + user turn, got %d turns", len(sess.Transcript))
	}
	if last := sess.Transcript[1]; last.Role != types.RoleUser || last.Content != "I arrive July 1st" {
		t.Errorf("user turn missing after failure: %+v", last)
	}

	// Booking data is untouched on failure.
	if sess.Data.City == nil || *sess.Data.City != "Lima" {
		t.Error("booking data mutated on failed turn")
	}
	if sess.Data.ArrivalDate != nil {
		t.Error("booking data gained a field on failed turn")
	}
}

func TestRecordFailure_AppendsApology(t *testing.T) {
	svc := NewService(&stubProvider{}, bookingURL, nil, nil)
	sess := NewSession("abc123")

	svc.RecordFailure(sess, "Sorry, please try again.")

	last := sess.Transcript[len(sess.Transcript)-1]
	if last.Role != types.RoleAssistant || last.Content != "Sorry, please try again." {
		t.Fatalf("apology not recorded: %+v", last)
	}
}
