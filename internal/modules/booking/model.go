// README: Session aggregate for one booking conversation.
package booking

import (
	"errors"
	"time"

	"cityscope/internal/types"
)

// Greeting is the fixed assistant message every fresh session starts with.
const Greeting = "Welcome to Cityscope! I'm CityBot, your guide to amazing local experiences. To help you plan your trip, could I get your name?"

var ErrSessionNotFound = errors.New("session not found")

// Session owns one transcript and one booking record, scoped to a single
// user. It is loaded at turn start and saved at turn end; no concurrent
// mutation of one session is supported.
type Session struct {
	ID         string            `json:"id"`
	Transcript []types.Turn      `json:"transcript"`
	Data       types.BookingData `json:"booking_data"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewSession returns a fresh session: all booking fields null and a
// transcript holding exactly the assistant greeting.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         id,
		Transcript: []types.Turn{{Role: types.RoleAssistant, Content: Greeting}},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
