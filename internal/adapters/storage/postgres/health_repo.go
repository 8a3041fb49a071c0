package postgres

import (
	"context"
	"database/sql"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/health"
)

type HealthRepo struct {
	db *sql.DB
}

func NewHealthRepo(db *sql.DB) *HealthRepo {
	return &HealthRepo{db: db}
}

const recordColumns = `id, dog_id, record_type, title, description,
	occurred_at, vet_name, created_at, updated_at`

func (r *HealthRepo) CreateRecord(ctx context.Context, rec health.HealthRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_records (
			id, dog_id, record_type, title, description,
			occurred_at, vet_name, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, rec.ID, rec.DogID, rec.Type, rec.Title, rec.Description,
		rec.OccurredAt, rec.VetName, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *HealthRepo) GetRecordByID(ctx context.Context, id string) (health.HealthRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM health_records WHERE id = $1`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return health.HealthRecord{}, errs.ErrNotFound
	}
	return rec, err
}

func (r *HealthRepo) UpdateRecord(ctx context.Context, rec health.HealthRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE health_records
		SET record_type = $2, title = $3, description = $4,
			occurred_at = $5, vet_name = $6, updated_at = $7
		WHERE id = $1
	`, rec.ID, rec.Type, rec.Title, rec.Description,
		rec.OccurredAt, rec.VetName, rec.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *HealthRepo) DeleteRecord(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM health_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *HealthRepo) ListRecordsByDog(ctx context.Context, dogID string) ([]health.HealthRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM health_records WHERE dog_id = $1 ORDER BY occurred_at ASC`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *HealthRepo) ListRecordsByOwner(ctx context.Context, ownerUserID string) ([]health.HealthRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT h.id, h.dog_id, h.record_type, h.title, h.description,
			h.occurred_at, h.vet_name, h.created_at, h.updated_at
		FROM health_records h
		JOIN dogs d ON d.id = h.dog_id
		WHERE d.owner_user_id = $1
		ORDER BY h.occurred_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

const medicationColumns = `id, dog_id, name, dosage, frequency,
	start_date, end_date, notes, created_at, updated_at`

func (r *HealthRepo) CreateMedication(ctx context.Context, m health.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, dog_id, name, dosage, frequency,
			start_date, end_date, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, m.ID, m.DogID, m.Name, m.Dosage, m.Frequency,
		m.StartDate, toNullDate(m.EndDate), m.Notes, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *HealthRepo) GetMedicationByID(ctx context.Context, id string) (health.Medication, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+medicationColumns+` FROM medications WHERE id = $1`, id)

	m, err := scanMedication(row)
	if err == sql.ErrNoRows {
		return health.Medication{}, errs.ErrNotFound
	}
	return m, err
}

func (r *HealthRepo) UpdateMedication(ctx context.Context, m health.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET name = $2, dosage = $3, frequency = $4,
			start_date = $5, end_date = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`, m.ID, m.Name, m.Dosage, m.Frequency,
		m.StartDate, toNullDate(m.EndDate), m.Notes, m.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *HealthRepo) DeleteMedication(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *HealthRepo) ListMedicationsByDog(ctx context.Context, dogID string) ([]health.Medication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+medicationColumns+` FROM medications WHERE dog_id = $1 ORDER BY start_date ASC`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMedications(rows)
}

func (r *HealthRepo) ListMedicationsByOwner(ctx context.Context, ownerUserID string) ([]health.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.dog_id, m.name, m.dosage, m.frequency,
			m.start_date, m.end_date, m.notes, m.created_at, m.updated_at
		FROM medications m
		JOIN dogs d ON d.id = m.dog_id
		WHERE d.owner_user_id = $1
		ORDER BY m.start_date ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMedications(rows)
}

func scanRecord(row rowScanner) (health.HealthRecord, error) {
	var rec health.HealthRecord
	if err := row.Scan(
		&rec.ID,
		&rec.DogID,
		&rec.Type,
		&rec.Title,
		&rec.Description,
		&rec.OccurredAt,
		&rec.VetName,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return health.HealthRecord{}, err
	}
	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]health.HealthRecord, error) {
	out := make([]health.HealthRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanMedication(row rowScanner) (health.Medication, error) {
	var m health.Medication
	var end sql.NullTime
	if err := row.Scan(
		&m.ID,
		&m.DogID,
		&m.Name,
		&m.Dosage,
		&m.Frequency,
		&m.StartDate,
		&end,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return health.Medication{}, err
	}
	m.EndDate = fromNullDate(end)
	return m, nil
}

func collectMedications(rows *sql.Rows) ([]health.Medication, error) {
	out := make([]health.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
