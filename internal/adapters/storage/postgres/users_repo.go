package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RafaelMurad/PawCare/internal/domain/accounts"
	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u accounts.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, normalized_email, password_hash, display_name,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		u.ID,
		u.Email,
		u.NormalizedEmail,
		u.PasswordHash,
		u.DisplayName,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: email taken", errs.ErrConflict)
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (accounts.User, error) {
	return r.getWhere(ctx, "id = $1", id)
}

func (r *UsersRepo) GetByNormalizedEmail(ctx context.Context, email string) (accounts.User, error) {
	return r.getWhere(ctx, "normalized_email = $1", email)
}

func (r *UsersRepo) getWhere(ctx context.Context, where, arg string) (accounts.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, normalized_email, password_hash, display_name,
			created_at, updated_at
		FROM users
		WHERE `+where, arg)

	var u accounts.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.NormalizedEmail,
		&u.PasswordHash,
		&u.DisplayName,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return accounts.User{}, errs.ErrNotFound
		}
		return accounts.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u accounts.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = $2,
			normalized_email = $3,
			password_hash = $4,
			display_name = $5,
			updated_at = $6
		WHERE id = $1
	`,
		u.ID,
		u.Email,
		u.NormalizedEmail,
		u.PasswordHash,
		u.DisplayName,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email taken", errs.ErrConflict)
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
