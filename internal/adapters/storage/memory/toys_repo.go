package memory

import (
	"context"
	"sort"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/toys"
)

type toyRepo struct{ s *Store }

func NewToyRepo(s *Store) toys.Repository { return &toyRepo{s: s} }

func (r *toyRepo) Create(ctx context.Context, t toys.Toy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.toys[t.ID] = t
	return nil
}

func (r *toyRepo) GetByID(ctx context.Context, id string) (toys.Toy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.toys[id]
	if !ok {
		return toys.Toy{}, errs.ErrNotFound
	}
	return t, nil
}

func (r *toyRepo) Update(ctx context.Context, t toys.Toy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.toys[t.ID]; !ok {
		return errs.ErrNotFound
	}
	r.s.toys[t.ID] = t
	return nil
}

func (r *toyRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.toys[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.s.toys, id)
	return nil
}

func (r *toyRepo) ListByDog(ctx context.Context, dogID string) ([]toys.Toy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]toys.Toy, 0)
	for _, t := range r.s.toys {
		if t.DogID == dogID {
			out = append(out, t)
		}
	}
	sortToys(out)
	return out, nil
}

func (r *toyRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]toys.Toy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownedDogIDs(ownerUserID)
	out := make([]toys.Toy, 0)
	for _, t := range r.s.toys {
		if owned[t.DogID] {
			out = append(out, t)
		}
	}
	sortToys(out)
	return out, nil
}

func sortToys(items []toys.Toy) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
