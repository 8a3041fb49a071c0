package schedule

import "time"

// NextAnniversary calcula la ocurrencia vigente de un aniversario:
// mes/día de source en el año de today, o el año siguiente si ya pasó.
// El año de source se ignora. El resultado siempre es >= today.
//
// 29 de febrero en año no bisiesto se normaliza a 1 de marzo
// (comportamiento de time.Date); la política queda fijada por test.
func NextAnniversary(source, today time.Time) time.Time {
	d := DateOnly(today)
	_, m, day := DateOnly(source).Date()

	occ := time.Date(d.Year(), m, day, 0, 0, 0, 0, time.UTC)
	if occ.Before(d) {
		occ = time.Date(d.Year()+1, m, day, 0, 0, 0, 0, time.UTC)
	}
	return occ
}
