// README: Gateway result types.
package ai

import "cityscope/internal/types"

// TurnResult is the validated output of one gateway call. Extracted always
// carries exactly the seven booking fields, nil where the model reported null
// or omitted the key.
type TurnResult struct {
	Reply     string
	Extracted types.BookingData
}
