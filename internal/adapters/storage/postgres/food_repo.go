package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/food"
)

type FoodRepo struct {
	db *sql.DB
}

func NewFoodRepo(db *sql.DB) *FoodRepo {
	return &FoodRepo{db: db}
}

const foodColumns = `id, name, normalized_name, safety, description,
	symptoms, alternatives, created_at, updated_at`

// Seed carga la tabla de referencia si está vacía. Idempotente: el
// ON CONFLICT ignora entradas ya presentes.
func (r *FoodRepo) Seed(ctx context.Context) error {
	now := time.Now()
	for _, item := range food.SeedItems {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO food_items (
				id, name, normalized_name, safety, description,
				symptoms, alternatives, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (normalized_name) DO NOTHING
		`,
			uuid.NewString(),
			item.Name,
			food.NormalizeName(item.Name),
			item.Safety,
			item.Description,
			item.Symptoms,
			item.Alternatives,
			now,
			now,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *FoodRepo) Create(ctx context.Context, item food.FoodItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO food_items (
			id, name, normalized_name, safety, description,
			symptoms, alternatives, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		item.ID,
		item.Name,
		item.NormalizedName,
		item.Safety,
		item.Description,
		item.Symptoms,
		item.Alternatives,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return errs.ErrConflict
	}
	return err
}

func (r *FoodRepo) GetByID(ctx context.Context, id string) (food.FoodItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+foodColumns+` FROM food_items WHERE id = $1`, id)
	return scanFood(row)
}

func (r *FoodRepo) GetByNormalizedName(ctx context.Context, normalized string) (food.FoodItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+foodColumns+` FROM food_items WHERE normalized_name = $1`, normalized)
	return scanFood(row)
}

func (r *FoodRepo) List(ctx context.Context) ([]food.FoodItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+foodColumns+` FROM food_items ORDER BY normalized_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFoods(rows)
}

// SearchSubstring matchea en ambos sentidos: la entrada contiene la
// consulta, o la consulta contiene la entrada ("dark chocolate bar"
// encuentra "chocolate").
func (r *FoodRepo) SearchSubstring(ctx context.Context, normalizedQuery string) ([]food.FoodItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+foodColumns+`
		FROM food_items
		WHERE normalized_name LIKE '%' || $1 || '%'
		   OR $1 LIKE '%' || normalized_name || '%'
		ORDER BY normalized_name ASC
	`, normalizedQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFoods(rows)
}

func (r *FoodRepo) ListBySafety(ctx context.Context, levels []food.SafetyLevel) ([]food.FoodItem, error) {
	vals := make([]string, 0, len(levels))
	for _, l := range levels {
		vals = append(vals, string(l))
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+foodColumns+`
		FROM food_items
		WHERE safety = ANY($1)
		ORDER BY normalized_name ASC
	`, vals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFoods(rows)
}

func scanFood(row rowScanner) (food.FoodItem, error) {
	var item food.FoodItem
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.NormalizedName,
		&item.Safety,
		&item.Description,
		&item.Symptoms,
		&item.Alternatives,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return food.FoodItem{}, errs.ErrNotFound
		}
		return food.FoodItem{}, err
	}
	return item, nil
}

func collectFoods(rows *sql.Rows) ([]food.FoodItem, error) {
	out := make([]food.FoodItem, 0)
	for rows.Next() {
		item, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
