package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListRoomBookings(ctx context.Context, roomName string) ([]domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) (bool, error)
	DeleteRoomBookings(ctx context.Context, roomName string) (int64, error)
	FindLatestBooking(ctx context.Context, roomName string, userID int64) (*domain.Booking, error)
	FindOverlap(ctx context.Context, roomName string, start, end time.Time) (*domain.Booking, error)
}

const bookingColumns = `id, room_name, user_id, username, start_time, end_time, created_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *PGBookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (room_name, user_id, username, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at`,
		booking.RoomName, booking.UserID, booking.Username, booking.StartTime, booking.EndTime).
		Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *PGBookingRepository) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) ListRoomBookings(ctx context.Context, roomName string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE room_name=$1 ORDER BY start_time`, roomName)
	if err != nil {
		return nil, fmt.Errorf("list room bookings: %w", err)
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY start_time`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGBookingRepository) DeleteRoomBookings(ctx context.Context, roomName string) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE room_name=$1`, roomName)
	if err != nil {
		return 0, fmt.Errorf("delete room bookings: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *PGBookingRepository) FindLatestBooking(ctx context.Context, roomName string, userID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE room_name=$1 AND user_id=$2
		ORDER BY start_time DESC
		LIMIT 1`, roomName, userID)
	return scanBooking(row)
}

// FindOverlap returns one booking conflicting with [start, end) for the room,
// or nil. The three-clause predicate is the booking-time conflict rule and
// must stay identical to the in-memory backend's.
func (r *PGBookingRepository) FindOverlap(ctx context.Context, roomName string, start, end time.Time) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE room_name=$1
		AND (
			(start_time < $3 AND end_time > $2)
			OR ($2 >= start_time AND $2 < end_time)
			OR ($3 > start_time AND $3 <= end_time)
		)
		LIMIT 1`, roomName, start, end)
	return scanBooking(row)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.RoomName, &b.UserID, &b.Username, &b.StartTime, &b.EndTime, &b.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.RoomName, &b.UserID, &b.Username, &b.StartTime, &b.EndTime, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
