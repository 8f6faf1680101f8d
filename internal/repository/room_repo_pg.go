package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository interface {
	AddRoom(ctx context.Context, name string, capacity int) (int64, error)
	GetRoom(ctx context.Context, name string) (*domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	DeleteRoom(ctx context.Context, name string) (bool, error)
}

type PGRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *PGRoomRepository {
	return &PGRoomRepository{db: db}
}

func (r *PGRoomRepository) AddRoom(ctx context.Context, name string, capacity int) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO rooms (name, capacity) VALUES ($1, $2) RETURNING id`, name, capacity).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrRoomExists
		}
		return 0, fmt.Errorf("add room: %w", err)
	}
	return id, nil
}

func (r *PGRoomRepository) GetRoom(ctx context.Context, name string) (*domain.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, capacity FROM rooms WHERE name=$1`, name)
	var room domain.Room
	if err := row.Scan(&room.ID, &room.Name, &room.Capacity); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

func (r *PGRoomRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, capacity FROM rooms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *PGRoomRepository) DeleteRoom(ctx context.Context, name string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE name=$1`, name)
	if err != nil {
		return false, fmt.Errorf("delete room: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

var _ RoomRepository = (*PGRoomRepository)(nil)
