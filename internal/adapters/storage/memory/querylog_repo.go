package memory

import (
	"context"

	"github.com/RafaelMurad/PawCare/internal/domain/advisor"
)

type queryLogRepo struct{ s *Store }

func NewQueryLogRepo(s *Store) advisor.QueryLogRepository { return &queryLogRepo{s: s} }

func (r *queryLogRepo) Append(ctx context.Context, q advisor.QueryLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.queries = append(r.s.queries, q)
	return nil
}

// ListByUser devuelve las últimas consultas del usuario, más recientes
// primero.
func (r *queryLogRepo) ListByUser(ctx context.Context, userID string, limit int) ([]advisor.QueryLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]advisor.QueryLog, 0)
	for i := len(r.s.queries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.queries[i].UserID == userID {
			out = append(out, r.s.queries[i])
		}
	}
	return out, nil
}
