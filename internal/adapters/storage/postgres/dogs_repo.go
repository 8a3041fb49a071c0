package postgres

import (
	"context"
	"database/sql"

	"github.com/RafaelMurad/PawCare/internal/domain/dogs"
	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dogs (
			id, owner_user_id,
			name, breed, sex,
			birth_date, adoption_date, current_weight_kg, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		d.ID,
		d.OwnerUserID,
		d.Name,
		d.Breed,
		d.Sex,
		toNullDate(d.BirthDate),
		toNullDate(d.AdoptionDate),
		toNullFloat(d.CurrentWeightKg),
		d.Notes,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET name = $2,
			breed = $3,
			sex = $4,
			birth_date = $5,
			adoption_date = $6,
			current_weight_kg = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Breed,
		d.Sex,
		toNullDate(d.BirthDate),
		toNullDate(d.AdoptionDate),
		toNullFloat(d.CurrentWeightKg),
		d.Notes,
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete borra el perro; las FKs cascadean a hijos y dejan dog_id NULL
// en eventos (ver migrations/schema.sql).
func (r *DogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id,
			name, breed, sex,
			birth_date, adoption_date, current_weight_kg, notes,
			created_at, updated_at
		FROM dogs
		WHERE id = $1
	`, id)

	d, err := scanDog(row)
	if err == sql.ErrNoRows {
		return dogs.Dog{}, errs.ErrNotFound
	}
	return d, err
}

func (r *DogsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]dogs.Dog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id,
			name, breed, sex,
			birth_date, adoption_date, current_weight_kg, notes,
			created_at, updated_at
		FROM dogs
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDog(row rowScanner) (dogs.Dog, error) {
	var d dogs.Dog
	var bd, ad sql.NullTime
	var weight sql.NullFloat64
	if err := row.Scan(
		&d.ID,
		&d.OwnerUserID,
		&d.Name,
		&d.Breed,
		&d.Sex,
		&bd,
		&ad,
		&weight,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}
	d.BirthDate = fromNullDate(bd)
	d.AdoptionDate = fromNullDate(ad)
	if weight.Valid {
		w := weight.Float64
		d.CurrentWeightKg = &w
	}
	return d, nil
}

func (r *DogsRepo) AddAllergy(ctx context.Context, a dogs.Allergy) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dog_allergies (id, dog_id, allergen, reaction, severity, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, a.ID, a.DogID, a.Allergen, a.Reaction, a.Severity, a.CreatedAt)
	return err
}

func (r *DogsRepo) ListAllergies(ctx context.Context, dogID string) ([]dogs.Allergy, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dog_id, allergen, reaction, severity, created_at
		FROM dog_allergies
		WHERE dog_id = $1
		ORDER BY created_at ASC
	`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Allergy, 0)
	for rows.Next() {
		var a dogs.Allergy
		if err := rows.Scan(&a.ID, &a.DogID, &a.Allergen, &a.Reaction, &a.Severity, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *DogsRepo) DeleteAllergy(ctx context.Context, dogID, allergyID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM dog_allergies WHERE id = $1 AND dog_id = $2
	`, allergyID, dogID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) AddCondition(ctx context.Context, c dogs.Condition) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dog_conditions (id, dog_id, name, diagnosed_at, status, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, c.ID, c.DogID, c.Name, toNullDate(c.DiagnosedAt), c.Status, c.Notes, c.CreatedAt)
	return err
}

func (r *DogsRepo) ListConditions(ctx context.Context, dogID string) ([]dogs.Condition, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dog_id, name, diagnosed_at, status, notes, created_at
		FROM dog_conditions
		WHERE dog_id = $1
		ORDER BY created_at ASC
	`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Condition, 0)
	for rows.Next() {
		var c dogs.Condition
		var diag sql.NullTime
		if err := rows.Scan(&c.ID, &c.DogID, &c.Name, &diag, &c.Status, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.DiagnosedAt = fromNullDate(diag)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *DogsRepo) DeleteCondition(ctx context.Context, dogID, conditionID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM dog_conditions WHERE id = $1 AND dog_id = $2
	`, conditionID, dogID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) AddWeight(ctx context.Context, e dogs.WeightEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dog_weights (id, dog_id, weight_kg, recorded_at, notes)
		VALUES ($1,$2,$3,$4,$5)
	`, e.ID, e.DogID, e.WeightKg, e.RecordedAt, e.Notes)
	return err
}

func (r *DogsRepo) ListWeights(ctx context.Context, dogID string) ([]dogs.WeightEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dog_id, weight_kg, recorded_at, notes
		FROM dog_weights
		WHERE dog_id = $1
		ORDER BY recorded_at ASC
	`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.WeightEntry, 0)
	for rows.Next() {
		var e dogs.WeightEntry
		if err := rows.Scan(&e.ID, &e.DogID, &e.WeightKg, &e.RecordedAt, &e.Notes); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
