package schedule

import (
	"errors"
	"time"
)

// Status clasifica una fecha objetivo respecto a hoy y una ventana de aviso.
type Status string

const (
	StatusOverdue         Status = "overdue"
	StatusDueWithinWindow Status = "due_within_window"
	StatusNotDue          Status = "not_due"
	StatusNoTarget        Status = "no_target"
)

// ErrInvalidWindow indica una ventana no positiva (error del caller, no del dato).
var ErrInvalidWindow = errors.New("window days must be a positive integer")

// Classify clasifica target respecto a today con una ventana inclusiva
// [today, today+windowDays]. Ambos extremos cuentan como due_within_window:
// target == today está vencido hoy y a la vez dentro de la ventana.
//
// target nil nunca se clasifica como overdue: devuelve no_target.
// Solo se comparan fechas calendario; la hora del día se descarta.
func Classify(today time.Time, target *time.Time, windowDays int) (Status, error) {
	if windowDays <= 0 {
		return "", ErrInvalidWindow
	}
	if target == nil {
		return StatusNoTarget, nil
	}

	d := DateOnly(today)
	t := DateOnly(*target)

	switch {
	case t.Before(d):
		return StatusOverdue, nil
	case !t.After(d.AddDate(0, 0, windowDays)):
		return StatusDueWithinWindow, nil
	default:
		return StatusNotDue, nil
	}
}

// WithinWindow es el atajo booleano usado por las vistas y el scan diario.
func WithinWindow(today time.Time, target *time.Time, windowDays int) bool {
	st, err := Classify(today, target, windowDays)
	if err != nil {
		return false
	}
	return st == StatusDueWithinWindow
}
