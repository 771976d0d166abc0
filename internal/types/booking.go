// README: Booking record and conversation turn value objects used across modules.
package types

import (
	"net/url"
	"strings"
)

// Booking field keys, in collection priority order.
const (
	FieldName              = "name"
	FieldCity              = "city"
	FieldArrivalDate       = "arrival_date"
	FieldArrivalTime       = "arrival_time"
	FieldDepartureDate     = "departure_date"
	FieldDepartureTime     = "departure_time"
	FieldExperienceDetails = "experience_details"
)

// BookingFields lists the seven collected fields in their fixed order.
var BookingFields = []string{
	FieldName,
	FieldCity,
	FieldArrivalDate,
	FieldArrivalTime,
	FieldDepartureDate,
	FieldDepartureTime,
	FieldExperienceDetails,
}

// BookingData is the seven-field trip record filled in over the conversation.
// A nil field means the value has not been collected yet. JSON marshalling
// always emits all seven keys, with null for missing values.
type BookingData struct {
	Name              *string `json:"name"`
	City              *string `json:"city"`
	ArrivalDate       *string `json:"arrival_date"`
	ArrivalTime       *string `json:"arrival_time"`
	DepartureDate     *string `json:"departure_date"`
	DepartureTime     *string `json:"departure_time"`
	ExperienceDetails *string `json:"experience_details"`
}

func (d *BookingData) fieldPtr(key string) **string {
	switch key {
	case FieldName:
		return &d.Name
	case FieldCity:
		return &d.City
	case FieldArrivalDate:
		return &d.ArrivalDate
	case FieldArrivalTime:
		return &d.ArrivalTime
	case FieldDepartureDate:
		return &d.DepartureDate
	case FieldDepartureTime:
		return &d.DepartureTime
	case FieldExperienceDetails:
		return &d.ExperienceDetails
	}
	return nil
}

// Get returns the value for a booking field key, or nil for unknown keys.
func (d BookingData) Get(key string) *string {
	if p := d.fieldPtr(key); p != nil {
		return *p
	}
	return nil
}

// Set assigns the value for a booking field key. Unknown keys are ignored,
// which is what keeps extraneous LLM keys from ever entering the record.
func (d *BookingData) Set(key string, value *string) {
	if p := d.fieldPtr(key); p != nil {
		*p = value
	}
}

// Merge overwrites every field with the value from other, including explicit
// nils. The gateway normalizes its result to all seven fields before the
// orchestrator merges, so an explicit null from the model un-sets a field.
func (d *BookingData) Merge(other BookingData) {
	for _, key := range BookingFields {
		d.Set(key, other.Get(key))
	}
}

// Complete reports whether all seven fields have been collected.
func (d BookingData) Complete() bool {
	for _, key := range BookingFields {
		if d.Get(key) == nil {
			return false
		}
	}
	return true
}

// Query serializes the non-nil fields as a URL-encoded query string in the
// fixed field order. url.Values is not used because it sorts keys.
func (d BookingData) Query() string {
	var b strings.Builder
	for _, key := range BookingFields {
		v := d.Get(key)
		if v == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(*v))
	}
	return b.String()
}

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one transcript entry. System turns are never persisted; the system
// prompt is rebuilt from the current BookingData on every gateway call.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
