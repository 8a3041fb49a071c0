package postgres

import (
	"context"
	"database/sql"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/toys"
)

type ToysRepo struct {
	db *sql.DB
}

func NewToysRepo(db *sql.DB) *ToysRepo {
	return &ToysRepo{db: db}
}

const toyColumns = `id, dog_id, name, category, rating, notes, created_at, updated_at`

func (r *ToysRepo) Create(ctx context.Context, t toys.Toy) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO toys (id, dog_id, name, category, rating, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, t.ID, t.DogID, t.Name, t.Category, t.Rating, t.Notes, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *ToysRepo) GetByID(ctx context.Context, id string) (toys.Toy, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+toyColumns+` FROM toys WHERE id = $1`, id)

	var t toys.Toy
	if err := row.Scan(&t.ID, &t.DogID, &t.Name, &t.Category, &t.Rating,
		&t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return toys.Toy{}, errs.ErrNotFound
		}
		return toys.Toy{}, err
	}
	return t, nil
}

func (r *ToysRepo) Update(ctx context.Context, t toys.Toy) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE toys
		SET name = $2, category = $3, rating = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`, t.ID, t.Name, t.Category, t.Rating, t.Notes, t.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *ToysRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM toys WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *ToysRepo) ListByDog(ctx context.Context, dogID string) ([]toys.Toy, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+toyColumns+` FROM toys WHERE dog_id = $1 ORDER BY created_at ASC`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectToys(rows)
}

func (r *ToysRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]toys.Toy, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.dog_id, t.name, t.category, t.rating, t.notes, t.created_at, t.updated_at
		FROM toys t
		JOIN dogs d ON d.id = t.dog_id
		WHERE d.owner_user_id = $1
		ORDER BY t.created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectToys(rows)
}

func collectToys(rows *sql.Rows) ([]toys.Toy, error) {
	out := make([]toys.Toy, 0)
	for rows.Next() {
		var t toys.Toy
		if err := rows.Scan(&t.ID, &t.DogID, &t.Name, &t.Category, &t.Rating,
			&t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
