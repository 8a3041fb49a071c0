package schedule

import "time"

// Windows agrupa las ventanas de aviso del sistema en una sola superficie
// de configuración. Antes estaban duplicadas como constantes sueltas en
// cada call site (7, 30, ~90).
type Windows struct {
	// LookaheadScanDays es la ventana del scan diario de vacunas.
	LookaheadScanDays int
	// DashboardEventsDays es la ventana de la vista "próximos eventos".
	DashboardEventsDays int
	// DashboardVaccinationMonths es la ventana de la vista "próximas vacunas",
	// en meses calendario (mismo día N meses después, no 90 días fijos).
	DashboardVaccinationMonths int
}

// DefaultWindows replica los valores históricos del sistema.
func DefaultWindows() Windows {
	return Windows{
		LookaheadScanDays:          7,
		DashboardEventsDays:        30,
		DashboardVaccinationMonths: 3,
	}
}

// VaccinationHorizon devuelve el límite superior (inclusive) de la vista
// de vacunas próximas: mismo día, N meses calendario adelante.
func (w Windows) VaccinationHorizon(today time.Time) time.Time {
	months := w.DashboardVaccinationMonths
	if months <= 0 {
		months = 3
	}
	return DateOnly(today).AddDate(0, months, 0)
}

// VaccinationUpcoming indica si target cae en [today, VaccinationHorizon].
func (w Windows) VaccinationUpcoming(today time.Time, target *time.Time) bool {
	if target == nil {
		return false
	}
	d := DateOnly(today)
	t := DateOnly(*target)
	return !t.Before(d) && !t.After(w.VaccinationHorizon(today))
}
