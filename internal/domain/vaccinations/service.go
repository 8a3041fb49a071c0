package vaccinations

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

// vetAppointmentLeadDays es el lead fijo de la cita compañera creada
// cuando una vacuna trae próxima fecha.
const vetAppointmentLeadDays = 14

// DogOwnership resuelve el dueño de un perro (lo implementa dogs.Service).
type DogOwnership interface {
	OwnerOf(ctx context.Context, dogID string) (string, error)
}

type Service struct {
	repo      Repository
	dogs      DogOwnership
	companion *events.Service
	windows   schedule.Windows
	now       func() time.Time
}

func NewService(repo Repository, dogs DogOwnership, companion *events.Service, windows schedule.Windows) *Service {
	return &Service{
		repo:      repo,
		dogs:      dogs,
		companion: companion,
		windows:   windows,
		now:       time.Now,
	}
}

// SetClock fija el reloj del servicio (tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

type CreateInput struct {
	DogID          string
	VaccineName    string
	AdministeredAt time.Time
	NextDueDate    *time.Time
	Notes          string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Vaccination, error) {
	if err := s.ownedDog(ctx, userID, in.DogID); err != nil {
		return Vaccination{}, err
	}
	if strings.TrimSpace(in.VaccineName) == "" {
		return Vaccination{}, fmt.Errorf("%w: vaccine_name is required", errs.ErrInvalidInput)
	}
	if in.AdministeredAt.IsZero() {
		return Vaccination{}, fmt.Errorf("%w: administered_at is required", errs.ErrInvalidInput)
	}

	now := s.now()
	v := Vaccination{
		ID:             uuid.NewString(),
		DogID:          in.DogID,
		VaccineName:    strings.TrimSpace(in.VaccineName),
		AdministeredAt: schedule.DateOnly(in.AdministeredAt),
		NextDueDate:    dateOrNil(in.NextDueDate),
		ReminderSent:   false,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, err
	}

	s.syncCompanion(ctx, userID, v)
	return v, nil
}

type UpdateInput struct {
	VaccineName    *string
	AdministeredAt *time.Time
	NextDueDate    *time.Time
	ClearNextDue   bool
	// ResetReminder rearma el aviso al editar la próxima fecha a mano.
	ResetReminder bool
	Notes         *string
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Vaccination, error) {
	v, err := s.GetOwned(ctx, userID, id)
	if err != nil {
		return Vaccination{}, err
	}

	if in.VaccineName != nil {
		if strings.TrimSpace(*in.VaccineName) == "" {
			return Vaccination{}, fmt.Errorf("%w: vaccine_name is required", errs.ErrInvalidInput)
		}
		v.VaccineName = strings.TrimSpace(*in.VaccineName)
	}
	if in.AdministeredAt != nil {
		v.AdministeredAt = schedule.DateOnly(*in.AdministeredAt)
	}
	if in.ClearNextDue {
		v.NextDueDate = nil
	} else if in.NextDueDate != nil {
		v.NextDueDate = dateOrNil(in.NextDueDate)
	}
	if in.ResetReminder {
		v.ReminderSent = false
	}
	if in.Notes != nil {
		v.Notes = strings.TrimSpace(*in.Notes)
	}

	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return Vaccination{}, err
	}

	s.syncCompanion(ctx, userID, v)
	return v, nil
}

func (s *Service) GetOwned(ctx context.Context, userID, id string) (Vaccination, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, err
	}
	if err := s.ownedDog(ctx, userID, v.DogID); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByDog(ctx context.Context, userID, dogID string) ([]Vaccination, error) {
	if err := s.ownedDog(ctx, userID, dogID); err != nil {
		return nil, err
	}
	return s.repo.ListByDog(ctx, dogID)
}

func (s *Service) ListByOwner(ctx context.Context, userID string) ([]Vaccination, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// ListUpcoming devuelve las vacunas del usuario con próxima fecha dentro
// de la ventana del dashboard: mismo día N meses calendario adelante
// (3 por defecto), incluyendo hoy. Es una ventana distinta a la del scan
// diario (7 días) a propósito; ambas existen en el producto.
func (s *Service) ListUpcoming(ctx context.Context, userID string) ([]Vaccination, error) {
	all, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	out := make([]Vaccination, 0)
	for _, v := range all {
		if s.windows.VaccinationUpcoming(today, v.NextDueDate) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Schedule devuelve el calendario recomendado (tabla estática).
func (s *Service) Schedule() []ScheduleEntry {
	return RecommendedSchedule
}

// syncCompanion mantiene la cita veterinaria compañera: si la vacuna tiene
// próxima fecha se upserta (clave determinista, sin duplicados); el lead
// de aviso es fijo de 14 días.
func (s *Service) syncCompanion(ctx context.Context, userID string, v Vaccination) {
	if s.companion == nil || v.NextDueDate == nil {
		return
	}
	_, _ = s.companion.UpsertCompanion(ctx, events.UpsertCompanionInput{
		UserID:             userID,
		DogID:              v.DogID,
		Type:               events.EventTypeVetAppointment,
		SourceRecordID:     v.ID,
		Title:              fmt.Sprintf("Vet: %s due", v.VaccineName),
		EventDate:          *v.NextDueDate,
		ReminderDaysBefore: vetAppointmentLeadDays,
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
