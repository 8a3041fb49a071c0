package schedule

import "time"

// DateOnly trunca a fecha calendario en UTC.
// Todas las comparaciones "hoy vs fecha objetivo" del sistema pasan por aquí
// para evitar errores por hora del día o zona horaria.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameCalendarDate compara solo año/mes/día.
func SameCalendarDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// ParseDate parsea una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatDate devuelve YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return DateOnly(t).Format("2006-01-02")
}
