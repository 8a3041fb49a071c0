package vaccinations

import "time"

// Vaccination registra una dosis aplicada y, opcionalmente, la próxima fecha.
type Vaccination struct {
	ID    string
	DogID string

	VaccineName    string
	AdministeredAt time.Time
	// NextDueDate se compara solo por fecha calendario.
	NextDueDate *time.Time

	// ReminderSent es una bandera de un solo sentido (false -> true).
	// Una vez emitido el aviso previo no se rearma solo; editar la
	// vacuna a mano es la única forma de reiniciar el ciclo.
	ReminderSent bool

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleEntry es una fila de la tabla de referencia de vacunación
// (calendario recomendado, estático).
type ScheduleEntry struct {
	VaccineName string `json:"vaccine_name"`
	AgeDue      string `json:"age_due"`
	Booster     string `json:"booster"`
	Core        bool   `json:"core"`
}

// RecommendedSchedule es el calendario base servido por /vaccinations/schedule.
var RecommendedSchedule = []ScheduleEntry{
	{VaccineName: "DHPP (distemper, hepatitis, parvovirus, parainfluenza)", AgeDue: "6-8 weeks", Booster: "every 3-4 weeks until 16 weeks, then yearly", Core: true},
	{VaccineName: "Rabies", AgeDue: "12-16 weeks", Booster: "1 year after first dose, then every 1-3 years", Core: true},
	{VaccineName: "Leptospirosis", AgeDue: "12 weeks", Booster: "yearly", Core: false},
	{VaccineName: "Bordetella (kennel cough)", AgeDue: "8 weeks", Booster: "every 6-12 months", Core: false},
	{VaccineName: "Canine influenza", AgeDue: "8 weeks", Booster: "yearly", Core: false},
	{VaccineName: "Lyme disease", AgeDue: "12 weeks", Booster: "yearly", Core: false},
}
