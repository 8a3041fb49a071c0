package health_test

import (
	"context"
	"testing"
	"time"

	mem "github.com/RafaelMurad/PawCare/internal/adapters/storage/memory"
	"github.com/RafaelMurad/PawCare/internal/domain/events"
	"github.com/RafaelMurad/PawCare/internal/domain/health"
	"github.com/RafaelMurad/PawCare/internal/domain/schedule"
)

// ownerStub resuelve todos los perros al mismo dueño.
type ownerStub struct{ owner string }

func (o ownerStub) OwnerOf(context.Context, string) (string, error) { return o.owner, nil }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newHealthFixture(t *testing.T) (*health.Service, events.Repository) {
	t.Helper()
	store := mem.NewStore()
	owners := ownerStub{owner: "user-1"}
	eventSvc := events.NewService(mem.NewEventRepo(store), owners, schedule.DefaultWindows())
	svc := health.NewService(mem.NewHealthRepo(store), owners, eventSvc)
	return svc, mem.NewEventRepo(store)
}

func medicationCompanion(t *testing.T, repo events.Repository, dogID, medID string) (events.Event, bool) {
	t.Helper()
	all, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	key := events.CompanionKey(dogID, events.EventTypeMedication, medID)
	for _, e := range all {
		if e.SourceKey == key {
			return e, true
		}
	}
	return events.Event{}, false
}

func TestMedicationCompanionLifecycle(t *testing.T) {
	svc, eventRepo := newHealthFixture(t)
	ctx := context.Background()

	end := date(2025, 1, 31)
	m, err := svc.CreateMedication(ctx, "user-1", health.CreateMedicationInput{
		DogID:     "dog-1",
		Name:      "Apoquel",
		Dosage:    "16mg",
		Frequency: "twice daily",
		StartDate: date(2025, 1, 1),
		EndDate:   &end,
	})
	if err != nil {
		t.Fatalf("create medication: %v", err)
	}

	// El compañero hereda fechas y frecuencia del tratamiento.
	e, ok := medicationCompanion(t, eventRepo, m.DogID, m.ID)
	if !ok {
		t.Fatalf("no companion event for medication")
	}
	if !e.IsRecurring || e.RecurrencePattern != "twice daily" {
		t.Fatalf("companion recurrence = %v %q", e.IsRecurring, e.RecurrencePattern)
	}
	if !e.EventDate.Equal(date(2025, 1, 1)) {
		t.Fatalf("companion start = %s", e.EventDate)
	}
	if e.RecurrenceUntil == nil || !e.RecurrenceUntil.Equal(end) {
		t.Fatalf("companion until = %v, want %s", e.RecurrenceUntil, end)
	}

	// Extender el tratamiento mueve el límite, sin duplicar el evento.
	newEnd := date(2025, 3, 31)
	if _, err := svc.UpdateMedication(ctx, "user-1", m.ID, health.UpdateMedicationInput{
		EndDate: &newEnd,
	}); err != nil {
		t.Fatalf("update medication: %v", err)
	}
	e2, ok := medicationCompanion(t, eventRepo, m.DogID, m.ID)
	if !ok {
		t.Fatalf("companion lost after update")
	}
	if e2.ID != e.ID {
		t.Fatalf("companion duplicated: %s vs %s", e2.ID, e.ID)
	}
	if e2.RecurrenceUntil == nil || !e2.RecurrenceUntil.Equal(newEnd) {
		t.Fatalf("companion until = %v, want %s", e2.RecurrenceUntil, newEnd)
	}

	// Borrar la medicación retira el recordatorio.
	if err := svc.DeleteMedication(ctx, "user-1", m.ID); err != nil {
		t.Fatalf("delete medication: %v", err)
	}
	if _, ok := medicationCompanion(t, eventRepo, m.DogID, m.ID); ok {
		t.Fatalf("companion survived medication delete")
	}
}

func TestMedicationWithoutFrequencyHasNoCompanion(t *testing.T) {
	svc, eventRepo := newHealthFixture(t)
	ctx := context.Background()

	m, err := svc.CreateMedication(ctx, "user-1", health.CreateMedicationInput{
		DogID:     "dog-1",
		Name:      "Bravecto",
		StartDate: date(2025, 2, 1),
	})
	if err != nil {
		t.Fatalf("create medication: %v", err)
	}
	if _, ok := medicationCompanion(t, eventRepo, m.DogID, m.ID); ok {
		t.Fatalf("companion created without frequency")
	}

	// Darle frecuencia lo crea; quitársela lo retira.
	freq := "daily"
	if _, err := svc.UpdateMedication(ctx, "user-1", m.ID, health.UpdateMedicationInput{Frequency: &freq}); err != nil {
		t.Fatalf("set frequency: %v", err)
	}
	if _, ok := medicationCompanion(t, eventRepo, m.DogID, m.ID); !ok {
		t.Fatalf("companion missing after setting frequency")
	}

	none := ""
	if _, err := svc.UpdateMedication(ctx, "user-1", m.ID, health.UpdateMedicationInput{Frequency: &none}); err != nil {
		t.Fatalf("clear frequency: %v", err)
	}
	if _, ok := medicationCompanion(t, eventRepo, m.DogID, m.ID); ok {
		t.Fatalf("companion survived clearing frequency")
	}
}
