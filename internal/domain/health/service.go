package health

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/events"
	"github.com/RafaelMurad/PawCare/internal/domain/schedule"
)

// DogOwnership resuelve el dueño de un perro (lo implementa dogs.Service).
type DogOwnership interface {
	OwnerOf(ctx context.Context, dogID string) (string, error)
}

type Service struct {
	repo      Repository
	dogs      DogOwnership
	companion *events.Service
	now       func() time.Time
}

func NewService(repo Repository, dogs DogOwnership, companion *events.Service) *Service {
	return &Service{
		repo:      repo,
		dogs:      dogs,
		companion: companion,
		now:       time.Now,
	}
}

// SetClock fija el reloj del servicio (tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// ---- registros clínicos ----

type CreateRecordInput struct {
	DogID       string
	Type        RecordType
	Title       string
	Description string
	OccurredAt  time.Time
	VetName     string
}

func (s *Service) CreateRecord(ctx context.Context, userID string, in CreateRecordInput) (HealthRecord, error) {
	if err := s.ownedDog(ctx, userID, in.DogID); err != nil {
		return HealthRecord{}, err
	}
	if !ValidRecordType(in.Type) {
		return HealthRecord{}, fmt.Errorf("%w: invalid record type %q", errs.ErrInvalidInput, in.Type)
	}
	if strings.TrimSpace(in.Title) == "" {
		return HealthRecord{}, fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
	}
	if in.OccurredAt.IsZero() {
		return HealthRecord{}, fmt.Errorf("%w: occurred_at is required", errs.ErrInvalidInput)
	}

	now := s.now()
	rec := HealthRecord{
		ID:          uuid.NewString(),
		DogID:       in.DogID,
		Type:        in.Type,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		OccurredAt:  schedule.DateOnly(in.OccurredAt),
		VetName:     strings.TrimSpace(in.VetName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		return HealthRecord{}, err
	}
	return rec, nil
}

type UpdateRecordInput struct {
	Type        *RecordType
	Title       *string
	Description *string
	OccurredAt  *time.Time
	VetName     *string
}

func (s *Service) UpdateRecord(ctx context.Context, userID, id string, in UpdateRecordInput) (HealthRecord, error) {
	rec, err := s.GetRecordOwned(ctx, userID, id)
	if err != nil {
		return HealthRecord{}, err
	}

	if in.Type != nil {
		if !ValidRecordType(*in.Type) {
			return HealthRecord{}, fmt.Errorf("%w: invalid record type %q", errs.ErrInvalidInput, *in.Type)
		}
		rec.Type = *in.Type
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return HealthRecord{}, fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
		}
		rec.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		rec.Description = strings.TrimSpace(*in.Description)
	}
	if in.OccurredAt != nil {
		rec.OccurredAt = schedule.DateOnly(*in.OccurredAt)
	}
	if in.VetName != nil {
		rec.VetName = strings.TrimSpace(*in.VetName)
	}

	rec.UpdatedAt = s.now()
	if err := s.repo.UpdateRecord(ctx, rec); err != nil {
		return HealthRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetRecordOwned(ctx context.Context, userID, id string) (HealthRecord, error) {
	rec, err := s.repo.GetRecordByID(ctx, id)
	if err != nil {
		return HealthRecord{}, err
	}
	if err := s.ownedDog(ctx, userID, rec.DogID); err != nil {
		return HealthRecord{}, err
	}
	return rec, nil
}

func (s *Service) DeleteRecord(ctx context.Context, userID, id string) error {
	if _, err := s.GetRecordOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.DeleteRecord(ctx, id)
}

func (s *Service) ListRecords(ctx context.Context, userID, dogID string) ([]HealthRecord, error) {
	if dogID == "" {
		return s.repo.ListRecordsByOwner(ctx, userID)
	}
	if err := s.ownedDog(ctx, userID, dogID); err != nil {
		return nil, err
	}
	return s.repo.ListRecordsByDog(ctx, dogID)
}

// ---- medicaciones ----

type CreateMedicationInput struct {
	DogID     string
	Name      string
	Dosage    string
	Frequency string
	StartDate time.Time
	EndDate   *time.Time
	Notes     string
}

func (s *Service) CreateMedication(ctx context.Context, userID string, in CreateMedicationInput) (Medication, error) {
	if err := s.ownedDog(ctx, userID, in.DogID); err != nil {
		return Medication{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}
	if in.StartDate.IsZero() {
		return Medication{}, fmt.Errorf("%w: start_date is required", errs.ErrInvalidInput)
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return Medication{}, fmt.Errorf("%w: end_date before start_date", errs.ErrInvalidInput)
	}

	now := s.now()
	m := Medication{
		ID:        uuid.NewString(),
		DogID:     in.DogID,
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: strings.TrimSpace(in.Frequency),
		StartDate: schedule.DateOnly(in.StartDate),
		EndDate:   dateOrNil(in.EndDate),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateMedication(ctx, m); err != nil {
		return Medication{}, err
	}

	s.syncCompanion(ctx, userID, m)
	return m, nil
}

type UpdateMedicationInput struct {
	Name      *string
	Dosage    *string
	Frequency *string
	StartDate *time.Time
	EndDate   *time.Time
	ClearEnd  bool
	Notes     *string
}

func (s *Service) UpdateMedication(ctx context.Context, userID, id string, in UpdateMedicationInput) (Medication, error) {
	m, err := s.GetMedicationOwned(ctx, userID, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Medication{}, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Dosage != nil {
		m.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Frequency != nil {
		m.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.StartDate != nil {
		m.StartDate = schedule.DateOnly(*in.StartDate)
	}
	if in.ClearEnd {
		m.EndDate = nil
	} else if in.EndDate != nil {
		m.EndDate = dateOrNil(in.EndDate)
	}
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return Medication{}, fmt.Errorf("%w: end_date before start_date", errs.ErrInvalidInput)
	}
	if in.Notes != nil {
		m.Notes = strings.TrimSpace(*in.Notes)
	}

	m.UpdatedAt = s.now()
	if err := s.repo.UpdateMedication(ctx, m); err != nil {
		return Medication{}, err
	}

	s.syncCompanion(ctx, userID, m)
	return m, nil
}

func (s *Service) GetMedicationOwned(ctx context.Context, userID, id string) (Medication, error) {
	m, err := s.repo.GetMedicationByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}
	if err := s.ownedDog(ctx, userID, m.DogID); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) DeleteMedication(ctx context.Context, userID, id string) error {
	m, err := s.GetMedicationOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteMedication(ctx, id); err != nil {
		return err
	}
	// el recordatorio muere con el tratamiento
	if s.companion != nil {
		_ = s.companion.RemoveCompanion(ctx, m.DogID, events.EventTypeMedication, m.ID)
	}
	return nil
}

func (s *Service) ListMedications(ctx context.Context, userID, dogID string) ([]Medication, error) {
	if dogID == "" {
		return s.repo.ListMedicationsByOwner(ctx, userID)
	}
	if err := s.ownedDog(ctx, userID, dogID); err != nil {
		return nil, err
	}
	return s.repo.ListMedicationsByDog(ctx, dogID)
}

// Summary es el resumen de salud por perro del dashboard.
type Summary struct {
	DogID             string `json:"dog_id"`
	RecordCount       int    `json:"record_count"`
	ActiveMedications int    `json:"active_medications"`
	LastVetVisit      string `json:"last_vet_visit,omitempty"` // YYYY-MM-DD
}

// DogSummary agrega registros y medicaciones vigentes de un perro.
func (s *Service) DogSummary(ctx context.Context, userID, dogID string) (Summary, error) {
	if err := s.ownedDog(ctx, userID, dogID); err != nil {
		return Summary{}, err
	}

	recs, err := s.repo.ListRecordsByDog(ctx, dogID)
	if err != nil {
		return Summary{}, err
	}
	meds, err := s.repo.ListMedicationsByDog(ctx, dogID)
	if err != nil {
		return Summary{}, err
	}

	today := schedule.DateOnly(s.now())
	sum := Summary{DogID: dogID, RecordCount: len(recs)}
	var lastVisit time.Time
	for _, rec := range recs {
		if rec.Type == RecordTypeVetVisit && rec.OccurredAt.After(lastVisit) {
			lastVisit = rec.OccurredAt
		}
	}
	if !lastVisit.IsZero() {
		sum.LastVetVisit = schedule.FormatDate(lastVisit)
	}
	for _, m := range meds {
		if m.ActiveOn(today) {
			sum.ActiveMedications++
		}
	}
	return sum, nil
}

// syncCompanion mantiene el evento recurrente de medicación: mientras el
// tratamiento tenga frecuencia se upserta con clave determinista; el aviso
// es el mismo día (lead 0) y recurre solo hasta el fin del tratamiento.
// Sin frecuencia el compañero sobra y se quita.
func (s *Service) syncCompanion(ctx context.Context, userID string, m Medication) {
	if s.companion == nil {
		return
	}
	if m.Frequency == "" {
		_ = s.companion.RemoveCompanion(ctx, m.DogID, events.EventTypeMedication, m.ID)
		return
	}
	_, _ = s.companion.UpsertCompanion(ctx, events.UpsertCompanionInput{
		UserID:             userID,
		DogID:              m.DogID,
		Type:               events.EventTypeMedication,
		SourceRecordID:     m.ID,
		Title:              fmt.Sprintf("Medication: %s", m.Name),
		EventDate:          m.StartDate,
		IsRecurring:        true,
		RecurrencePattern:  m.Frequency,
		RecurrenceUntil:    m.EndDate,
		ReminderDaysBefore: 0,
	})
}

func (s *Service) ownedDog(ctx context.Context, userID, dogID string) error {
	if strings.TrimSpace(dogID) == "" {
		return fmt.Errorf("%w: dog_id is required", errs.ErrInvalidInput)
	}
	owner, err := s.dogs.OwnerOf(ctx, dogID)
	if err != nil {
		return err
	}
	if owner != userID {
		return errs.ErrNotFound
	}
	return nil
}

func dateOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := schedule.DateOnly(*t)
	return &d
}
