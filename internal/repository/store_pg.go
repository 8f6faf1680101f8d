package repository

import "github.com/jackc/pgx/v5/pgxpool"

// PGStore bundles the postgres repositories into one storage handle.
type PGStore struct {
	*PGRoomRepository
	*PGBookingRepository
	*PGAdminRepository
	*PGSettingsRepository
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{
		PGRoomRepository:     NewRoomRepository(db),
		PGBookingRepository:  NewBookingRepository(db),
		PGAdminRepository:    NewAdminRepository(db),
		PGSettingsRepository: NewSettingsRepository(db),
	}
}

var _ Store = (*PGStore)(nil)
