package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify_YesterdayIsOverdue(t *testing.T) {
	today := date(2024, 1, 15)
	target := today.AddDate(0, 0, -1)

	st, err := Classify(today, &target, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st != StatusOverdue {
		t.Fatalf("expected overdue, got %s", st)
	}
}

func TestClassify_WindowBoundariesInclusive(t *testing.T) {
	today := date(2024, 1, 15)

	for _, w := range []int{1, 7, 30, 90} {
		// borde inferior: target == today
		lower := today
		st, err := Classify(today, &lower, w)
		if err != nil {
			t.Fatalf("w=%d unexpected error: %v", w, err)
		}
		if st != StatusDueWithinWindow {
			t.Fatalf("w=%d target=today: expected due_within_window, got %s", w, st)
		}

		// borde superior: target == today + w
		upper := today.AddDate(0, 0, w)
		st, err = Classify(today, &upper, w)
		if err != nil {
			t.Fatalf("w=%d unexpected error: %v", w, err)
		}
		if st != StatusDueWithinWindow {
			t.Fatalf("w=%d target=today+w: expected due_within_window, got %s", w, st)
		}

		// justo fuera: target == today + w + 1
		outside := today.AddDate(0, 0, w+1)
		st, err = Classify(today, &outside, w)
		if err != nil {
			t.Fatalf("w=%d unexpected error: %v", w, err)
		}
		if st != StatusNotDue {
			t.Fatalf("w=%d target=today+w+1: expected not_due, got %s", w, st)
		}
	}
}

func TestClassify_NilTargetIsNeverOverdue(t *testing.T) {
	st, err := Classify(date(2024, 1, 15), nil, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st != StatusNoTarget {
		t.Fatalf("expected no_target, got %s", st)
	}
}

func TestClassify_NonPositiveWindowIsCallerError(t *testing.T) {
	target := date(2024, 1, 20)
	for _, w := range []int{0, -1, -30} {
		if _, err := Classify(date(2024, 1, 15), &target, w); err != ErrInvalidWindow {
			t.Fatalf("w=%d: expected ErrInvalidWindow, got %v", w, err)
		}
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	// target a las 23:59 de hoy sigue siendo "hoy", no overdue
	today := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	target := time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)

	st, err := Classify(today, &target, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st != StatusDueWithinWindow {
		t.Fatalf("expected due_within_window, got %s", st)
	}

	// target a las 00:01 de ayer es overdue aunque today sea temprano
	early := time.Date(2024, 1, 15, 0, 0, 1, 0, time.UTC)
	yesterday := time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC)
	st, _ = Classify(early, &yesterday, 7)
	if st != StatusOverdue {
		t.Fatalf("expected overdue, got %s", st)
	}
}

func TestWindows_VaccinationHorizonIsCalendarMonths(t *testing.T) {
	w := DefaultWindows()

	// mismo día tres meses después, no 90 días fijos
	h := w.VaccinationHorizon(date(2024, 1, 15))
	if !h.Equal(date(2024, 4, 15)) {
		t.Fatalf("expected 2024-04-15, got %s", FormatDate(h))
	}

	in := date(2024, 4, 15)
	if !w.VaccinationUpcoming(date(2024, 1, 15), &in) {
		t.Fatalf("horizon day should be inclusive")
	}
	out := date(2024, 4, 16)
	if w.VaccinationUpcoming(date(2024, 1, 15), &out) {
		t.Fatalf("day after horizon should be excluded")
	}
	if w.VaccinationUpcoming(date(2024, 1, 15), nil) {
		t.Fatalf("nil target should never be upcoming")
	}
}
