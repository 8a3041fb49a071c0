package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Notification es un aviso producido por el scan diario.
type Notification struct {
	UserID  string
	DogID   string
	Kind    string // vaccination_due | vaccination_overdue | event_reminder
	Message string
	DueDate time.Time
}

// Notifier entrega avisos. Hoy el único sink es el log; la interfaz
// deja el hueco para email/push.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier escribe los avisos al log estructurado.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(ctx context.Context, note Notification) error {
	n.logger.Info().
		Str("user_id", note.UserID).
		Str("dog_id", note.DogID).
		Str("kind", note.Kind).
		Time("due_date", note.DueDate).
		Msg(note.Message)
	return nil
}
