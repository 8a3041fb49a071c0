package postgres

import (
	"context"
	"database/sql"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

const vaccinationColumns = `id, dog_id, vaccine_name, administered_at,
	next_due_date, reminder_sent, notes, created_at, updated_at`

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (
			id, dog_id, vaccine_name, administered_at,
			next_due_date, reminder_sent, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		v.ID,
		v.DogID,
		v.VaccineName,
		v.AdministeredAt,
		toNullDate(v.NextDueDate),
		v.ReminderSent,
		v.Notes,
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+vaccinationColumns+` FROM vaccinations WHERE id = $1`, id)

	v, err := scanVaccination(row)
	if err == sql.ErrNoRows {
		return vaccinations.Vaccination{}, errs.ErrNotFound
	}
	return v, err
}

func (r *VaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccinations
		SET vaccine_name = $2,
			administered_at = $3,
			next_due_date = $4,
			reminder_sent = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1
	`,
		v.ID,
		v.VaccineName,
		v.AdministeredAt,
		toNullDate(v.NextDueDate),
		v.ReminderSent,
		v.Notes,
		v.UpdatedAt,
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

func (r *VaccinationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccinations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) ListByDog(ctx context.Context, dogID string) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vaccinationColumns+` FROM vaccinations WHERE dog_id = $1 ORDER BY administered_at ASC`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVaccinations(rows)
}

func (r *VaccinationsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.id, v.dog_id, v.vaccine_name, v.administered_at,
			v.next_due_date, v.reminder_sent, v.notes, v.created_at, v.updated_at
		FROM vaccinations v
		JOIN dogs d ON d.id = v.dog_id
		WHERE d.owner_user_id = $1
		ORDER BY v.administered_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVaccinations(rows)
}

func (r *VaccinationsRepo) ListPendingReminder(ctx context.Context) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		WHERE reminder_sent = FALSE AND next_due_date IS NOT NULL
		ORDER BY next_due_date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVaccinations(rows)
}

func (r *VaccinationsRepo) MarkReminderSent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vaccinations SET reminder_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanVaccination(row rowScanner) (vaccinations.Vaccination, error) {
	var v vaccinations.Vaccination
	var nextDue sql.NullTime
	if err := row.Scan(
		&v.ID,
		&v.DogID,
		&v.VaccineName,
		&v.AdministeredAt,
		&nextDue,
		&v.ReminderSent,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return vaccinations.Vaccination{}, err
	}
	v.NextDueDate = fromNullDate(nextDue)
	return v, nil
}

func collectVaccinations(rows *sql.Rows) ([]vaccinations.Vaccination, error) {
	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
