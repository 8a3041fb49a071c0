package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/RafaelMurad/PawCare/internal/domain/dogs"
	"github.com/RafaelMurad/PawCare/internal/domain/events"
	"github.com/RafaelMurad/PawCare/internal/domain/schedule"
	"github.com/RafaelMurad/PawCare/internal/domain/vaccinations"
)

// DogDirectory resuelve perros por ID (lo satisface dogs.Repository).
type DogDirectory interface {
	GetByID(ctx context.Context, id string) (dogs.Dog, error)
}

// Stats resume una pasada del scan diario.
type Stats struct {
	VaccinationReminders int
	EventReminders       int
	Skipped              int
}

// Scheduler corre el scan diario de recordatorios con cron.
type Scheduler struct {
	cron     *cron.Cron
	logger   zerolog.Logger
	notifier Notifier

	vaccs  vaccinations.Repository
	events events.Repository
	dogs   DogDirectory

	lookaheadDays int
	now           func() time.Time
}

func New(
	vaccs vaccinations.Repository,
	evts events.Repository,
	dogDir DogDirectory,
	notifier Notifier,
	lookaheadDays int,
	logger zerolog.Logger,
) *Scheduler {
	s := &Scheduler{
		logger:        logger.With().Str("component", "scheduler").Logger(),
		notifier:      notifier,
		vaccs:         vaccs,
		events:        evts,
		dogs:          dogDir,
		lookaheadDays: lookaheadDays,
		now:           time.Now,
	}
	cronLogger := cronZerolog{s.logger}
	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLogger),
		cron.Recover(cronLogger),
	))
	return s
}

// SetClock fija el reloj del scheduler (tests).
func (s *Scheduler) SetClock(now func() time.Time) { s.now = now }

// Start programa el scan a la hora indicada, todos los días.
func (s *Scheduler) Start(hour int) error {
	spec := fmt.Sprintf("0 %d * * *", hour)
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		stats, err := s.RunOnce(ctx, s.now())
		if err != nil {
			s.logger.Error().Err(err).Msg("daily scan failed")
			return
		}
		s.logger.Info().
			Int("vaccination_reminders", stats.VaccinationReminders).
			Int("event_reminders", stats.EventReminders).
			Int("skipped", stats.Skipped).
			Msg("daily scan done")
	})
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	s.cron.Start()
	s.logger.Info().Str("spec", spec).Msg("daily scan scheduled")
	return nil
}

// Stop detiene el cron y espera los jobs en curso.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce ejecuta una pasada del scan para la fecha dada. Un registro
// defectuoso se salta y se cuenta, no tumba la pasada.
func (s *Scheduler) RunOnce(ctx context.Context, today time.Time) (Stats, error) {
	var stats Stats

	if err := s.scanVaccinations(ctx, today, &stats); err != nil {
		return stats, err
	}
	if err := s.scanEvents(ctx, today, &stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// scanVaccinations avisa las vacunas vencidas o por vencer dentro de la
// ventana y marca la bandera: el aviso sale una sola vez por registro.
func (s *Scheduler) scanVaccinations(ctx context.Context, today time.Time, stats *Stats) error {
	pending, err := s.vaccs.ListPendingReminder(ctx)
	if err != nil {
		return fmt.Errorf("scheduler: list pending vaccinations: %w", err)
	}

	for _, v := range pending {
		st, err := schedule.Classify(today, v.NextDueDate, s.lookaheadDays)
		if err != nil || st == schedule.StatusNoTarget {
			stats.Skipped++
			continue
		}
		if st == schedule.StatusNotDue {
			continue
		}

		d, err := s.dogs.GetByID(ctx, v.DogID)
		if err != nil {
			s.logger.Warn().Err(err).Str("vaccination_id", v.ID).Msg("dog lookup failed, skipping")
			stats.Skipped++
			continue
		}

		kind := "vaccination_due"
		msg := fmt.Sprintf("%s: %s vaccine due %s", d.Name, v.VaccineName, schedule.FormatDate(*v.NextDueDate))
		if st == schedule.StatusOverdue {
			kind = "vaccination_overdue"
			msg = fmt.Sprintf("%s: %s vaccine overdue since %s", d.Name, v.VaccineName, schedule.FormatDate(*v.NextDueDate))
		}
		if err := s.notifier.Notify(ctx, Notification{
			UserID:  d.OwnerUserID,
			DogID:   d.ID,
			Kind:    kind,
			Message: msg,
			DueDate: *v.NextDueDate,
		}); err != nil {
			s.logger.Warn().Err(err).Str("vaccination_id", v.ID).Msg("notify failed, skipping")
			stats.Skipped++
			continue
		}

		if err := s.vaccs.MarkReminderSent(ctx, v.ID); err != nil {
			s.logger.Warn().Err(err).Str("vaccination_id", v.ID).Msg("mark reminder failed")
		}
		stats.VaccinationReminders++
	}
	return nil
}

// scanEvents avisa los eventos activos dentro de su lead propio. No hay
// bandera: un evento dentro de la ventana se re-anuncia cada día hasta
// su fecha.
func (s *Scheduler) scanEvents(ctx context.Context, today time.Time, stats *Stats) error {
	active, err := s.events.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("scheduler: list active events: %w", err)
	}

	for _, e := range active {
		target := eventTarget(e, today)
		if !dueForReminder(today, target, e.ReminderDaysBefore) {
			continue
		}

		dogID := ""
		if e.DogID != nil {
			dogID = *e.DogID
		}
		if err := s.notifier.Notify(ctx, Notification{
			UserID:  e.UserID,
			DogID:   dogID,
			Kind:    "event_reminder",
			Message: fmt.Sprintf("%s on %s", e.Title, schedule.FormatDate(target)),
			DueDate: target,
		}); err != nil {
			s.logger.Warn().Err(err).Str("event_id", e.ID).Msg("notify failed, skipping")
			stats.Skipped++
			continue
		}
		stats.EventReminders++
	}
	return nil
}

// eventTarget resuelve la próxima ocurrencia relevante de un evento:
// los recurrentes anuales se proyectan al aniversario vigente; los de
// cadencia corta (diaria, semanal) arrancan en su fecha y cuentan como
// "hoy" hasta que recurrence_until pasa; los puntuales usan su fecha
// tal cual.
func eventTarget(e events.Event, today time.Time) time.Time {
	if e.IsRecurring {
		if strings.Contains(strings.ToLower(e.RecurrencePattern), "year") {
			return schedule.NextAnniversary(e.EventDate, today)
		}
		d := schedule.DateOnly(today)
		start := schedule.DateOnly(e.EventDate)
		if d.Before(start) {
			return start
		}
		if e.RecurrenceUntil != nil {
			until := schedule.DateOnly(*e.RecurrenceUntil)
			if d.After(until) {
				// vencido: dueForReminder descarta fechas pasadas
				return until
			}
		}
		return d
	}
	return schedule.DateOnly(e.EventDate)
}

// dueForReminder acepta lead 0 (avisar solo el mismo día); fechas
// pasadas no se re-anuncian.
func dueForReminder(today, target time.Time, leadDays int) bool {
	d := schedule.DateOnly(today)
	t := schedule.DateOnly(target)
	if t.Before(d) {
		return false
	}
	return !t.After(d.AddDate(0, 0, leadDays))
}

// cronZerolog adapta zerolog a la interfaz de log de robfig/cron.
type cronZerolog struct {
	logger zerolog.Logger
}

func (c cronZerolog) Info(msg string, keysAndValues ...any) {
	c.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronZerolog) Error(err error, msg string, keysAndValues ...any) {
	c.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
