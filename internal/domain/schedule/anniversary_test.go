package schedule

import (
	"testing"
	"time"
)

func TestNextAnniversary_RollsForwardWhenPassed(t *testing.T) {
	// cumpleaños 10 de enero, hoy 15 de enero de 2024: ya pasó, va a 2025
	got := NextAnniversary(date(2020, 1, 10), date(2024, 1, 15))
	if !got.Equal(date(2025, 1, 10)) {
		t.Fatalf("expected 2025-01-10, got %s", FormatDate(got))
	}
}

func TestNextAnniversary_StaysInCurrentYear(t *testing.T) {
	got := NextAnniversary(date(2020, 6, 1), date(2024, 1, 15))
	if !got.Equal(date(2024, 6, 1)) {
		t.Fatalf("expected 2024-06-01, got %s", FormatDate(got))
	}
}

func TestNextAnniversary_TodayCountsAsCurrent(t *testing.T) {
	// el mismo día del aniversario no se salta al año siguiente
	got := NextAnniversary(date(2020, 1, 15), date(2024, 1, 15))
	if !got.Equal(date(2024, 1, 15)) {
		t.Fatalf("expected 2024-01-15, got %s", FormatDate(got))
	}
}

func TestNextAnniversary_LeapDayMapsToMarchFirst(t *testing.T) {
	// política fijada: 29/02 en año no bisiesto => 01/03
	got := NextAnniversary(date(2020, 2, 29), date(2025, 1, 1))
	if !got.Equal(date(2025, 3, 1)) {
		t.Fatalf("expected 2025-03-01, got %s", FormatDate(got))
	}

	// en año bisiesto se conserva el 29/02
	got = NextAnniversary(date(2020, 2, 29), date(2024, 1, 1))
	if !got.Equal(date(2024, 2, 29)) {
		t.Fatalf("expected 2024-02-29, got %s", FormatDate(got))
	}
}

func TestNextAnniversary_ResultNeverBeforeToday(t *testing.T) {
	sources := []time.Time{
		date(2018, 1, 1), date(2019, 7, 4), date(2020, 2, 29), date(2021, 12, 31),
	}
	todays := []time.Time{
		date(2024, 1, 1), date(2024, 7, 4), date(2025, 3, 1), date(2025, 12, 31),
	}
	for _, src := range sources {
		for _, today := range todays {
			got := NextAnniversary(src, today)
			if got.Before(DateOnly(today)) {
				t.Fatalf("source=%s today=%s: got %s before today",
					FormatDate(src), FormatDate(today), FormatDate(got))
			}
		}
	}
}
