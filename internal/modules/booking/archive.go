// README: Completed-booking archive backed by PostgreSQL.
package booking

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"cityscope/internal/types"
)

// Archive persists completed bookings for the summary page and later lookup.
type Archive struct {
	db *pgxpool.Pool
}

func NewArchive(db *pgxpool.Pool) *Archive {
	return &Archive{db: db}
}

// Record inserts one completed booking. Repeated completions for the same
// session (the user changed a detail after finishing) upsert the row.
func (a *Archive) Record(ctx context.Context, sessionID string, data types.BookingData) error {
	_, err := a.db.Exec(ctx, `
		INSERT INTO bookings (
			session_id, name, city, arrival_date, arrival_time,
			departure_date, departure_time, experience_details
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id) DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			arrival_date = EXCLUDED.arrival_date,
			arrival_time = EXCLUDED.arrival_time,
			departure_date = EXCLUDED.departure_date,
			departure_time = EXCLUDED.departure_time,
			experience_details = EXCLUDED.experience_details,
			updated_at = NOW()
	`,
		sessionID,
		data.Name, data.City,
		data.ArrivalDate, data.ArrivalTime,
		data.DepartureDate, data.DepartureTime,
		data.ExperienceDetails,
	)
	return err
}
