package advisor

import (
	"context"
	"time"
)

// QueryLog es una consulta respondida; el historial es solo-anexar.
type QueryLog struct {
	ID       string
	UserID   string
	Kind     string // ask | food_check | breed_advice | symptom_analysis
	Question string
	Answer   string
	Provider string
	Model    string

	CreatedAt time.Time
}

type QueryLogRepository interface {
	Append(ctx context.Context, q QueryLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]QueryLog, error)
}
