package events

// EventType clasifica los eventos de agenda.
type EventType string

const (
	EventTypeBirthday       EventType = "birthday"
	EventTypeAdoption       EventType = "adoption_anniversary"
	EventTypeVetAppointment EventType = "vet_appointment"
	EventTypeGrooming       EventType = "grooming"
	EventTypeMedication     EventType = "medication"
	EventTypeCustom         EventType = "custom"
)

// ValidType valida el enum de tipos.
func ValidType(t EventType) bool {
	switch t {
	case EventTypeBirthday, EventTypeAdoption, EventTypeVetAppointment,
		EventTypeGrooming, EventTypeMedication, EventTypeCustom:
		return true
	default:
		return false
	}
}
