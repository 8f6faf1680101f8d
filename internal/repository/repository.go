package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Store aggregates the whole storage port for wiring. Callers depend on the
// narrow per-aggregate interfaces; Store exists so both backends can be
// passed around as one handle.
type Store interface {
	RoomRepository
	BookingRepository
	AdminRepository
	SettingsRepository
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
