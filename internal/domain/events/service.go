package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/schedule"
)

// DogOwnership resuelve el dueño de un perro sin importar el paquete dogs
// (evita el ciclo dogs <-> events; lo implementa dogs.Service).
type DogOwnership interface {
	OwnerOf(ctx context.Context, dogID string) (string, error)
}

type Service struct {
	repo    Repository
	dogs    DogOwnership
	windows schedule.Windows
	now     func() time.Time
}

func NewService(repo Repository, dogs DogOwnership, windows schedule.Windows) *Service {
	return &Service{
		repo:    repo,
		dogs:    dogs,
		windows: windows,
		now:     time.Now,
	}
}

// SetClock fija el reloj del servicio (tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

type CreateInput struct {
	DogID              *string
	Title              string
	Type               EventType
	EventDate          time.Time
	IsRecurring        bool
	RecurrencePattern  string
	RecurrenceUntil    *time.Time
	ReminderDaysBefore int
	Notes              string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Event, error) {
	if strings.TrimSpace(userID) == "" {
		return Event{}, errs.ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Event{}, fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
	}
	if !ValidType(in.Type) {
		return Event{}, fmt.Errorf("%w: unknown event type", errs.ErrInvalidInput)
	}
	if in.EventDate.IsZero() {
		return Event{}, fmt.Errorf("%w: event_date is required", errs.ErrInvalidInput)
	}
	if in.ReminderDaysBefore < 0 {
		return Event{}, fmt.Errorf("%w: reminder_days_before must be >= 0", errs.ErrInvalidInput)
	}
	if in.RecurrenceUntil != nil && in.RecurrenceUntil.Before(in.EventDate) {
		return Event{}, fmt.Errorf("%w: recurrence_until before event_date", errs.ErrInvalidInput)
	}
	if in.DogID != nil {
		if err := s.ownedDog(ctx, userID, *in.DogID); err != nil {
			return Event{}, err
		}
	}

	now := s.now()
	e := Event{
		ID:                 uuid.NewString(),
		UserID:             userID,
		DogID:              in.DogID,
		Title:              strings.TrimSpace(in.Title),
		Type:               in.Type,
		EventDate:          schedule.DateOnly(in.EventDate),
		IsRecurring:        in.IsRecurring,
		RecurrencePattern:  strings.TrimSpace(in.RecurrencePattern),
		RecurrenceUntil:    dateOrNil(in.RecurrenceUntil),
		ReminderDaysBefore: in.ReminderDaysBefore,
		Active:             true,
		Notes:              strings.TrimSpace(in.Notes),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// UpsertCompanionInput describe un evento generado como efecto colateral
// de otro registro (perfil de perro, vacuna, medicación).
type UpsertCompanionInput struct {
	UserID             string
	DogID              string
	Type               EventType
	SourceRecordID     string
	Title              string
	EventDate          time.Time
	IsRecurring        bool
	RecurrencePattern  string
	RecurrenceUntil    *time.Time
	ReminderDaysBefore int
}

// UpsertCompanion crea o refresca el evento compañero identificado por su
// clave determinista (dog, tipo, registro origen). Repetir la operación
// no duplica eventos.
func (s *Service) UpsertCompanion(ctx context.Context, in UpsertCompanionInput) (Event, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.DogID) == "" ||
		strings.TrimSpace(in.SourceRecordID) == "" {
		return Event{}, errs.ErrInvalidInput
	}
	if !ValidType(in.Type) {
		return Event{}, fmt.Errorf("%w: unknown event type", errs.ErrInvalidInput)
	}

	now := s.now()
	dogID := in.DogID
	e := Event{
		ID:                 uuid.NewString(),
		UserID:             in.UserID,
		DogID:              &dogID,
		Title:              strings.TrimSpace(in.Title),
		Type:               in.Type,
		EventDate:          schedule.DateOnly(in.EventDate),
		IsRecurring:        in.IsRecurring,
		RecurrencePattern:  strings.TrimSpace(in.RecurrencePattern),
		RecurrenceUntil:    dateOrNil(in.RecurrenceUntil),
		ReminderDaysBefore: in.ReminderDaysBefore,
		Active:             true,
		SourceKey:          CompanionKey(in.DogID, in.Type, in.SourceRecordID),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return s.repo.UpsertBySourceKey(ctx, e)
}

// RemoveCompanion borra el evento compañero del registro origen. Se usa
// cuando el registro que lo generó se elimina o deja de necesitarlo.
func (s *Service) RemoveCompanion(ctx context.Context, dogID string, t EventType, sourceRecordID string) error {
	return s.repo.DeleteBySourceKey(ctx, CompanionKey(dogID, t, sourceRecordID))
}

func (s *Service) GetOwned(ctx context.Context, userID, id string) (Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	// propiedad ajena => not found, no se revela existencia
	if e.UserID != userID {
		return Event{}, errs.ErrNotFound
	}
	return e, nil
}

type UpdateInput struct {
	Title              *string
	EventDate          *time.Time
	IsRecurring        *bool
	RecurrencePattern  *string
	RecurrenceUntil    *time.Time
	ClearUntil         bool
	ReminderDaysBefore *int
	Active             *bool
	Notes              *string
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Event, error) {
	e, err := s.GetOwned(ctx, userID, id)
	if err != nil {
		return Event{}, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return Event{}, fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
		}
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.EventDate != nil {
		e.EventDate = schedule.DateOnly(*in.EventDate)
	}
	if in.IsRecurring != nil {
		e.IsRecurring = *in.IsRecurring
	}
	if in.RecurrencePattern != nil {
		e.RecurrencePattern = strings.TrimSpace(*in.RecurrencePattern)
	}
	if in.ClearUntil {
		e.RecurrenceUntil = nil
	} else if in.RecurrenceUntil != nil {
		e.RecurrenceUntil = dateOrNil(in.RecurrenceUntil)
	}
	if e.RecurrenceUntil != nil && e.RecurrenceUntil.Before(e.EventDate) {
		return Event{}, fmt.Errorf("%w: recurrence_until before event_date", errs.ErrInvalidInput)
	}
	if in.ReminderDaysBefore != nil {
		if *in.ReminderDaysBefore < 0 {
			return Event{}, fmt.Errorf("%w: reminder_days_before must be >= 0", errs.ErrInvalidInput)
		}
		e.ReminderDaysBefore = *in.ReminderDaysBefore
	}
	if in.Active != nil {
		e.Active = *in.Active
	}
	if in.Notes != nil {
		e.Notes = strings.TrimSpace(*in.Notes)
	}

	e.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Event, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListUpcoming devuelve los eventos activos del usuario dentro de la
// ventana del dashboard (30 días por defecto), incluyendo hoy.
func (s *Service) ListUpcoming(ctx context.Context, userID string) ([]Event, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	out := make([]Event, 0)
	for _, e := range all {
		if !e.Active {
			continue
		}
		d := e.EventDate
		if schedule.WithinWindow(today, &d, s.windows.DashboardEventsDays) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListBirthdays devuelve los eventos de cumpleaños del usuario.
func (s *Service) ListBirthdays(ctx context.Context, userID string) ([]Event, error) {
	return s.listByType(ctx, userID, EventTypeBirthday)
}

func (s *Service) ListByType(ctx context.Context, userID string, t EventType) ([]Event, error) {
	if !ValidType(t) {
		return nil, fmt.Errorf("%w: unknown event type", errs.ErrInvalidInput)
	}
	return s.listByType(ctx, userID, t)
}

func (s *Service) listByType(ctx context.Context, userID string, t EventType) ([]Event, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0)
	for _, e := range all {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out, nil
}

func dateOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := schedule.DateOnly(*t)
	return &d
}

func (s *Service) ownedDog(ctx context.Context, userID, dogID string) error {
	owner, err := s.dogs.OwnerOf(ctx, dogID)
	if err != nil {
		return err
	}
	if owner != userID {
		return errs.ErrNotFound
	}
	return nil
}
