package dogs

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

type Service struct {
	repo      Repository
	companion *events.Service
	now       func() time.Time
}

// NewService arma el servicio de perros. companion puede ser nil en tests
// que no ejercitan eventos compañeros.
func NewService(repo Repository, companion *events.Service) *Service {
	return &Service{
		repo:      repo,
		companion: companion,
		now:       time.Now,
	}
}

// SetClock fija el reloj del servicio (tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// SetCompanion inyecta el servicio de eventos después de construir ambos.
// dogs y events se necesitan mutuamente (eventos compañeros / ownership);
// el ciclo se rompe cableando events con la interfaz DogOwnership y
// cerrando este lado al final.
func (s *Service) SetCompanion(companion *events.Service) { s.companion = companion }

type CreateInput struct {
	Name         string
	Breed        string
	Sex          string
	BirthDate    *time.Time
	AdoptionDate *time.Time
	Notes        string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Dog, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Dog{}, errs.ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Dog{}, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}

	now := s.now()
	d := Dog{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Name:         strings.TrimSpace(in.Name),
		Breed:        strings.TrimSpace(in.Breed),
		Sex:          parseSex(in.Sex),
		BirthDate:    dateOrNil(in.BirthDate),
		AdoptionDate: dateOrNil(in.AdoptionDate),
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Dog{}, err
	}

	s.syncAnniversaries(ctx, d)
	return d, nil
}

func (s *Service) GetOwned(ctx context.Context, userID, id string) (Dog, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}
	// perro de otro usuario => not found, no se revela existencia
	if d.OwnerUserID != userID {
		return Dog{}, errs.ErrNotFound
	}
	return d, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Dog, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// OwnerOf expone el dueño de un perro. Lo consumen otros módulos
// (events, vaccinations, toys, health) para no importar este paquete
// completo ni crear ciclos.
func (s *Service) OwnerOf(ctx context.Context, dogID string) (string, error) {
	d, err := s.repo.GetByID(ctx, dogID)
	if err != nil {
		return "", err
	}
	return d.OwnerUserID, nil
}

type UpdateInput struct {
	Name         *string
	Breed        *string
	Sex          *string
	BirthDate    *time.Time
	AdoptionDate *time.Time
	ClearBirth   bool
	ClearAdopt   bool
	Notes        *string
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Dog, error) {
	d, err := s.GetOwned(ctx, userID, id)
	if err != nil {
		return Dog{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Dog{}, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
		}
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		d.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		d.Sex = parseSex(*in.Sex)
	}
	if in.ClearBirth {
		d.BirthDate = nil
	} else if in.BirthDate != nil {
		d.BirthDate = dateOrNil(in.BirthDate)
	}
	if in.ClearAdopt {
		d.AdoptionDate = nil
	} else if in.AdoptionDate != nil {
		d.AdoptionDate = dateOrNil(in.AdoptionDate)
	}
	if in.Notes != nil {
		d.Notes = strings.TrimSpace(*in.Notes)
	}

	d.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, d); err != nil {
		return Dog{}, err
	}

	s.syncAnniversaries(ctx, d)
	return d, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// syncAnniversaries materializa (upsert idempotente) los eventos anuales
// de cumpleaños y aniversario de adopción con la ocurrencia vigente.
// Solo corre en create/update del perro; no hay job que regenere
// ocurrencias pasadas.
func (s *Service) syncAnniversaries(ctx context.Context, d Dog) {
	if s.companion == nil {
		return
	}
	today := s.now()

	if d.BirthDate != nil {
		_, _ = s.companion.UpsertCompanion(ctx, events.UpsertCompanionInput{
			UserID:             d.OwnerUserID,
			DogID:              d.ID,
			Type:               events.EventTypeBirthday,
			SourceRecordID:     d.ID,
			Title:              fmt.Sprintf("%s's birthday", d.Name),
			EventDate:          schedule.NextAnniversary(*d.BirthDate, today),
			IsRecurring:        true,
			RecurrencePattern:  "yearly",
			ReminderDaysBefore: 7,
		})
	}
	if d.AdoptionDate != nil {
		_, _ = s.companion.UpsertCompanion(ctx, events.UpsertCompanionInput{
			UserID:             d.OwnerUserID,
			DogID:              d.ID,
			Type:               events.EventTypeAdoption,
			SourceRecordID:     d.ID,
			Title:              fmt.Sprintf("%s's adoption anniversary", d.Name),
			EventDate:          schedule.NextAnniversary(*d.AdoptionDate, today),
			IsRecurring:        true,
			RecurrencePattern:  "yearly",
			ReminderDaysBefore: 7,
		})
	}
}

// --- alergias ---

type AllergyInput struct {
	Allergen string
	Reaction string
	Severity string
}

func (s *Service) AddAllergy(ctx context.Context, userID, dogID string, in AllergyInput) (Allergy, error) {
	if _, err := s.GetOwned(ctx, userID, dogID); err != nil {
		return Allergy{}, err
	}
	if strings.TrimSpace(in.Allergen) == "" {
		return Allergy{}, fmt.Errorf("%w: allergen is required", errs.ErrInvalidInput)
	}

	a := Allergy{
		ID:        uuid.NewString(),
		DogID:     dogID,
		Allergen:  strings.TrimSpace(in.Allergen),
		Reaction:  strings.TrimSpace(in.Reaction),
		Severity:  strings.TrimSpace(in.Severity),
		CreatedAt: s.now(),
	}
	if err := s.repo.AddAllergy(ctx, a); err != nil {
		return Allergy{}, err
	}
	return a, nil
}

func (s *Service) ListAllergies(ctx context.Context, userID, dogID string) ([]Allergy, error) {
	if _, err := s.GetOwned(ctx, userID, dogID); err != nil {
		return nil, err
	}
	return s.repo.ListAllergies(ctx, dogID)
}

func (s *Service) DeleteAllergy(ctx context.Context, userID, dogID, allergyID string) error {
	if _, err := s.GetOwned(ctx, userID, dogID); err != nil {
		return err
	}
	return s.repo.DeleteAllergy(ctx, dogID, allergyID)
}

// --- condiciones ---

type ConditionInput struct {
	Name        string
	DiagnosedAt *time.Time
	Status      string
	Notes       string
}

func (s *Service) AddCondition(ctx context.Context, userID, dogID string, in ConditionInput) (Condition, error) {
	if _, err := s.GetOwned(ctx, userID, dogID); err != nil {
		return Condition{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Condition{}, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}

	c := Condition{
		ID:          uuid.NewString(),
		DogID:       dogID,
		Name:        strings.TrimSpace(in.Name),
		DiagnosedAt: dateOrNil(in.DiagnosedAt),
		Status:      strings.TrimSpace(in.Status),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   s.now(),
	}
	if err := s.repo.AddCondition(ctx, c); err != nil {
		return Condition{}, err
	}
	return c, nil
}

func (s *Service) ListConditions(ctx context.Context, userID, dogID string) ([]Condition, error) {
	if _, err := s.GetOwned(ctx, userID, dogID); err != nil {
		return nil, err
	}
	return s.repo.ListConditions(ctx, dogID)
}

func (s *Service) DeleteCondition(ctx context.Context, userID, dogID, conditionID string) error {
	if _, err := s.GetOwned(ctx, userID, dogID); err != nil {
		return err
	}
	return s.repo.DeleteCondition(ctx, dogID, conditionID)
}

// --- historial de peso ---

type WeightInput struct {
	WeightKg   float64
	RecordedAt *time.Time
	Notes      string
}

// AddWeight agrega al historial y refresca el peso cacheado del perro.
// Nunca pisa el historial: cada medición es una fila nueva.
func (s *Service) AddWeight(ctx context.Context, userID, dogID string, in WeightInput) (WeightEntry, error) {
	d, err := s.GetOwned(ctx, userID, dogID)
	if err != nil {
		return WeightEntry{}, err
	}
	if in.WeightKg <= 0 {
		return WeightEntry{}, fmt.Errorf("%w: weight_kg must be positive", errs.ErrInvalidInput)
	}

	recordedAt := s.now()
	if in.RecordedAt != nil {
		recordedAt = *in.RecordedAt
	}

	e := WeightEntry{
		ID:         uuid.NewString(),
		DogID:      dogID,
		WeightKg:   in.WeightKg,
		RecordedAt: schedule.DateOnly(recordedAt),
		Notes:      strings.TrimSpace(in.Notes),
	}
	if err := s.repo.AddWeight(ctx, e); err != nil {
		return WeightEntry{}, err
	}

	w := in.WeightKg
	d.CurrentWeightKg = &w
	d.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, d); err != nil {
		return WeightEntry{}, err
	}
	return e, nil
}

func (s *Service) ListWeights(ctx context.Context, userID, dogID string) ([]WeightEntry, error) {
	if _, err := s.GetOwned(ctx, userID, dogID); err != nil {
		return nil, err
	}
	return s.repo.ListWeights(ctx, dogID)
}

func parseSex(s string) Sex {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	default:
		return SexUnknown
	}
}

func dateOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := schedule.DateOnly(*t)
	return &d
}
