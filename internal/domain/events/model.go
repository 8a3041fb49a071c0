package events

import (
	"fmt"
	"time"
)

// Event representa una entrada de agenda del usuario, opcionalmente
// ligada a un perro. Los eventos recurrentes guardan una sola fecha
// concreta: la próxima ocurrencia calculada al crearlos. Nadie los
// re-materializa después; es una limitación conocida, no una garantía.
type Event struct {
	ID     string
	UserID string
	DogID  *string

	Title string
	Type  EventType

	// EventDate es fecha calendario (sin componente horario relevante).
	EventDate time.Time

	IsRecurring       bool
	RecurrencePattern string

	// RecurrenceUntil acota las recurrencias de cadencia corta (diaria,
	// semanal): pasada esta fecha el scan deja de anunciarlas. Nil =
	// sin límite. Los recurrentes anuales no la usan.
	RecurrenceUntil *time.Time

	// ReminderDaysBefore es el lead time de aviso de ESTE evento;
	// el scan diario usa este valor, no una constante global.
	ReminderDaysBefore int

	Active bool

	// SourceKey es la clave determinista de idempotencia de los eventos
	// compañeros (aniversarios, citas por vacuna, recordatorios de
	// medicación). Vacío en eventos creados a mano.
	SourceKey string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanionKey arma la clave de idempotencia de un evento compañero.
func CompanionKey(dogID string, t EventType, sourceRecordID string) string {
	return fmt.Sprintf("%s:%s:%s", dogID, t, sourceRecordID)
}
