package health

import "time"

// RecordType clasifica una entrada del historial clínico.
type RecordType string

const (
	RecordTypeVetVisit  RecordType = "vet_visit"
	RecordTypeSymptom   RecordType = "symptom"
	RecordTypeProcedure RecordType = "procedure"
	RecordTypeNote      RecordType = "note"
)

func ValidRecordType(t RecordType) bool {
	switch t {
	case RecordTypeVetVisit, RecordTypeSymptom, RecordTypeProcedure, RecordTypeNote:
		return true
	}
	return false
}

// HealthRecord es una entrada puntual del historial de salud de un perro.
type HealthRecord struct {
	ID    string
	DogID string

	Type        RecordType
	Title       string
	Description string
	OccurredAt  time.Time // fecha calendario
	VetName     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Medication es un tratamiento en curso o terminado.
type Medication struct {
	ID    string
	DogID string

	Name      string
	Dosage    string
	Frequency string // p.ej. "daily", "twice daily"; vacío = ocasional
	StartDate time.Time
	EndDate   *time.Time // nil = tratamiento abierto
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveOn indica si el tratamiento está vigente en la fecha dada.
func (m Medication) ActiveOn(day time.Time) bool {
	if day.Before(m.StartDate) {
		return false
	}
	if m.EndDate != nil && day.After(*m.EndDate) {
		return false
	}
	return true
}
