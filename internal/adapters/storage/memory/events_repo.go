package memory

import (
	"context"
	"sort"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/events"
)

type eventRepo struct{ s *Store }

func NewEventRepo(s *Store) events.Repository { return &eventRepo{s: s} }

func (r *eventRepo) Create(ctx context.Context, e events.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.events[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return events.Event{}, errs.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) Update(ctx context.Context, e events.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[e.ID]; !ok {
		return errs.ErrNotFound
	}
	r.s.events[e.ID] = e
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}

func (r *eventRepo) ListByUser(ctx context.Context, userID string) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]events.Event, 0)
	for _, e := range r.s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EventDate.Before(out[j].EventDate)
	})
	return out, nil
}

// UpsertBySourceKey emula el ON CONFLICT (source_key) DO UPDATE de
// Postgres: conserva ID y created_at del existente.
func (r *eventRepo) UpsertBySourceKey(ctx context.Context, e events.Event) (events.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.events {
		if existing.SourceKey != "" && existing.SourceKey == e.SourceKey {
			e.ID = existing.ID
			e.CreatedAt = existing.CreatedAt
			r.s.events[e.ID] = e
			return e, nil
		}
	}
	r.s.events[e.ID] = e
	return e, nil
}

func (r *eventRepo) DeleteBySourceKey(ctx context.Context, sourceKey string) error {
	if sourceKey == "" {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, e := range r.s.events {
		if e.SourceKey == sourceKey {
			delete(r.s.events, id)
			return nil
		}
	}
	return nil
}

func (r *eventRepo) ListActive(ctx context.Context) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]events.Event, 0)
	for _, e := range r.s.events {
		if e.Active {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EventDate.Before(out[j].EventDate)
	})
	return out, nil
}
