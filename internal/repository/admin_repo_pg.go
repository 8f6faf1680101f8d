package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository interface {
	AddAdmin(ctx context.Context, userID int64, username string) error
	RemoveAdmin(ctx context.Context, userID int64) (bool, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
}

type PGAdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *PGAdminRepository {
	return &PGAdminRepository{db: db}
}

func (r *PGAdminRepository) AddAdmin(ctx context.Context, userID int64, username string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO admins (user_id, username, added_at) VALUES ($1, $2, now())`, userID, username)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyAdmin
		}
		return fmt.Errorf("add admin: %w", err)
	}
	return nil
}

func (r *PGAdminRepository) RemoveAdmin(ctx context.Context, userID int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM admins WHERE user_id=$1`, userID)
	if err != nil {
		return false, fmt.Errorf("remove admin: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGAdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE user_id=$1)`, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("is admin: %w", err)
	}
	return exists, nil
}

func (r *PGAdminRepository) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id, username, added_at FROM admins ORDER BY added_at, user_id`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	admins := make([]domain.Admin, 0)
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.UserID, &a.Username, &a.AddedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

var _ AdminRepository = (*PGAdminRepository)(nil)
