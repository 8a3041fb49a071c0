package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RafaelMurad/PawCare/internal/adapters/storage/memory"
	"github.com/RafaelMurad/PawCare/internal/domain/dogs"
	"github.com/RafaelMurad/PawCare/internal/domain/events"
	"github.com/RafaelMurad/PawCare/internal/domain/vaccinations"
)

type recordingNotifier struct {
	sent []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestScheduler(t *testing.T) (*Scheduler, *memory.Store, *recordingNotifier) {
	t.Helper()
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	s := New(
		memory.NewVaccinationRepo(store),
		memory.NewEventRepo(store),
		memory.NewDogRepo(store),
		notifier,
		7,
		zerolog.Nop(),
	)
	return s, store, notifier
}

func seedDog(t *testing.T, store *memory.Store, ownerID string) dogs.Dog {
	t.Helper()
	d := dogs.Dog{
		ID:          uuid.NewString(),
		OwnerUserID: ownerID,
		Name:        "Rocky",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := memory.NewDogRepo(store).Create(context.Background(), d); err != nil {
		t.Fatalf("seed dog: %v", err)
	}
	return d
}

func TestRunOnceVaccinationDueWithinWindow(t *testing.T) {
	s, store, notifier := newTestScheduler(t)
	d := seedDog(t, store, "user-1")

	today := date(2025, 6, 1)
	due := date(2025, 6, 6) // hoy + 5, ventana 7
	v := vaccinations.Vaccination{
		ID:          uuid.NewString(),
		DogID:       d.ID,
		VaccineName: "Rabies",
		NextDueDate: &due,
	}
	if err := memory.NewVaccinationRepo(store).Create(context.Background(), v); err != nil {
		t.Fatalf("seed vaccination: %v", err)
	}

	stats, err := s.RunOnce(context.Background(), today)
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if stats.VaccinationReminders != 1 {
		t.Fatalf("VaccinationReminders = %d, want 1", stats.VaccinationReminders)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Kind != "vaccination_due" {
		t.Fatalf("sent = %+v, want one vaccination_due", notifier.sent)
	}
	if notifier.sent[0].UserID != "user-1" {
		t.Fatalf("UserID = %q, want user-1", notifier.sent[0].UserID)
	}
}

func TestRunOnceVaccinationReminderFiresOnce(t *testing.T) {
	s, store, notifier := newTestScheduler(t)
	d := seedDog(t, store, "user-1")

	today := date(2025, 6, 1)
	due := date(2025, 6, 3)
	v := vaccinations.Vaccination{
		ID:          uuid.NewString(),
		DogID:       d.ID,
		VaccineName: "DHPP",
		NextDueDate: &due,
	}
	if err := memory.NewVaccinationRepo(store).Create(context.Background(), v); err != nil {
		t.Fatalf("seed vaccination: %v", err)
	}

	if _, err := s.RunOnce(context.Background(), today); err != nil {
		t.Fatalf("first run: %v", err)
	}
	stats, err := s.RunOnce(context.Background(), today.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if stats.VaccinationReminders != 0 {
		t.Fatalf("second run VaccinationReminders = %d, want 0 (flag set)", stats.VaccinationReminders)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("total sent = %d, want 1", len(notifier.sent))
	}
}

func TestRunOnceVaccinationOverdue(t *testing.T) {
	s, store, notifier := newTestScheduler(t)
	d := seedDog(t, store, "user-1")

	today := date(2025, 6, 10)
	due := date(2025, 6, 1)
	v := vaccinations.Vaccination{
		ID:          uuid.NewString(),
		DogID:       d.ID,
		VaccineName: "Lepto",
		NextDueDate: &due,
	}
	if err := memory.NewVaccinationRepo(store).Create(context.Background(), v); err != nil {
		t.Fatalf("seed vaccination: %v", err)
	}

	if _, err := s.RunOnce(context.Background(), today); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Kind != "vaccination_overdue" {
		t.Fatalf("sent = %+v, want one vaccination_overdue", notifier.sent)
	}
}

func TestRunOnceEventReannouncesDaily(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	eventDate := date(2025, 6, 10)
	e := events.Event{
		ID:                 uuid.NewString(),
		UserID:             "user-1",
		Title:              "Grooming",
		Type:               events.EventTypeGrooming,
		EventDate:          eventDate,
		ReminderDaysBefore: 3,
		Active:             true,
	}
	if err := memory.NewEventRepo(store).Create(context.Background(), e); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	// Dentro de la ventana dos días seguidos: dos avisos, sin dedup.
	for _, today := range []time.Time{date(2025, 6, 8), date(2025, 6, 9)} {
		if _, err := s.RunOnce(context.Background(), today); err != nil {
			t.Fatalf("RunOnce(%s): %v", today, err)
		}
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("sent = %d, want 2 (events re-announce)", len(notifier.sent))
	}

	// Fuera de la ventana: nada.
	notifier.sent = nil
	if _, err := s.RunOnce(context.Background(), date(2025, 6, 1)); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("sent = %d, want 0 outside window", len(notifier.sent))
	}
}

func TestRunOnceRecurringYearlyEventProjectsAnniversary(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	// Cumpleaños registrado con fecha del año pasado.
	e := events.Event{
		ID:                 uuid.NewString(),
		UserID:             "user-1",
		Title:              "Rocky's birthday",
		Type:               events.EventTypeBirthday,
		EventDate:          date(2024, 6, 10),
		IsRecurring:        true,
		RecurrencePattern:  "yearly",
		ReminderDaysBefore: 7,
		Active:             true,
	}
	if err := memory.NewEventRepo(store).Create(context.Background(), e); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	if _, err := s.RunOnce(context.Background(), date(2025, 6, 5)); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(notifier.sent))
	}
	if got := notifier.sent[0].DueDate; !got.Equal(date(2025, 6, 10)) {
		t.Fatalf("DueDate = %s, want 2025-06-10", got)
	}
}

func TestRunOnceMedicationLeadZeroOnlySameDay(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	e := events.Event{
		ID:                 uuid.NewString(),
		UserID:             "user-1",
		Title:              "Medication: Apoquel",
		Type:               events.EventTypeMedication,
		EventDate:          date(2025, 6, 1),
		IsRecurring:        true,
		RecurrencePattern:  "daily",
		ReminderDaysBefore: 0,
		Active:             true,
	}
	if err := memory.NewEventRepo(store).Create(context.Background(), e); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	if _, err := s.RunOnce(context.Background(), date(2025, 6, 15)); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d, want 1 (daily recurring targets today)", len(notifier.sent))
	}
}

func TestRunOnceMedicationStopsAfterRecurrenceUntil(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	until := date(2025, 1, 31)
	e := events.Event{
		ID:                 uuid.NewString(),
		UserID:             "user-1",
		Title:              "Medication: Apoquel",
		Type:               events.EventTypeMedication,
		EventDate:          date(2025, 1, 1),
		IsRecurring:        true,
		RecurrencePattern:  "twice daily",
		RecurrenceUntil:    &until,
		ReminderDaysBefore: 0,
		Active:             true,
	}
	if err := memory.NewEventRepo(store).Create(context.Background(), e); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	// Durante el tratamiento: avisa.
	if _, err := s.RunOnce(context.Background(), date(2025, 1, 15)); err != nil {
		t.Fatalf("RunOnce during treatment: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("during treatment sent = %d, want 1", len(notifier.sent))
	}

	// El último día acotado también.
	notifier.sent = nil
	if _, err := s.RunOnce(context.Background(), until); err != nil {
		t.Fatalf("RunOnce on last day: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("last day sent = %d, want 1", len(notifier.sent))
	}

	// Meses después del fin: silencio.
	notifier.sent = nil
	if _, err := s.RunOnce(context.Background(), date(2025, 6, 15)); err != nil {
		t.Fatalf("RunOnce after end: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("after end sent = %d, want 0 (treatment over)", len(notifier.sent))
	}
}

func TestRunOnceMedicationNotStartedYetSilent(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	e := events.Event{
		ID:                 uuid.NewString(),
		UserID:             "user-1",
		Title:              "Medication: Bravecto",
		Type:               events.EventTypeMedication,
		EventDate:          date(2025, 7, 1),
		IsRecurring:        true,
		RecurrencePattern:  "daily",
		ReminderDaysBefore: 0,
		Active:             true,
	}
	if err := memory.NewEventRepo(store).Create(context.Background(), e); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	// Antes del inicio no hay nada que recordar (lead 0).
	if _, err := s.RunOnce(context.Background(), date(2025, 6, 15)); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("sent = %d, want 0 before start", len(notifier.sent))
	}

	// El día de inicio sí.
	if _, err := s.RunOnce(context.Background(), date(2025, 7, 1)); err != nil {
		t.Fatalf("RunOnce on start: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d, want 1 on start day", len(notifier.sent))
	}
}

func TestRunOnceInactiveEventIgnored(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	e := events.Event{
		ID:                 uuid.NewString(),
		UserID:             "user-1",
		Title:              "Old appointment",
		Type:               events.EventTypeCustom,
		EventDate:          date(2025, 6, 2),
		ReminderDaysBefore: 7,
		Active:             false,
	}
	if err := memory.NewEventRepo(store).Create(context.Background(), e); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	if _, err := s.RunOnce(context.Background(), date(2025, 6, 1)); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("sent = %d, want 0 for inactive event", len(notifier.sent))
	}
}
