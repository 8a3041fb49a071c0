package postgres

import (
	"context"
	"database/sql"

	"github.com/RafaelMurad/PawCare/internal/domain/advisor"
)

type QueryLogRepo struct {
	db *sql.DB
}

func NewQueryLogRepo(db *sql.DB) *QueryLogRepo {
	return &QueryLogRepo{db: db}
}

func (r *QueryLogRepo) Append(ctx context.Context, q advisor.QueryLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ai_queries (
			id, user_id, kind, question, answer, provider, model, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, q.ID, q.UserID, q.Kind, q.Question, q.Answer, q.Provider, q.Model, q.CreatedAt)
	return err
}

func (r *QueryLogRepo) ListByUser(ctx context.Context, userID string, limit int) ([]advisor.QueryLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, kind, question, answer, provider, model, created_at
		FROM ai_queries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]advisor.QueryLog, 0)
	for rows.Next() {
		var q advisor.QueryLog
		if err := rows.Scan(&q.ID, &q.UserID, &q.Kind, &q.Question, &q.Answer,
			&q.Provider, &q.Model, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
