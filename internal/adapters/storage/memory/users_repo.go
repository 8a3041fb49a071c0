package memory

import (
	"context"
	"fmt"

	"github.com/RafaelMurad/PawCare/internal/domain/accounts"
	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

type userRepo struct{ s *Store }

func NewUserRepo(s *Store) accounts.Repository { return &userRepo{s: s} }

func (r *userRepo) Create(ctx context.Context, u accounts.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.NormalizedEmail == u.NormalizedEmail {
			return fmt.Errorf("%w: email taken", errs.ErrConflict)
		}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (accounts.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return accounts.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByNormalizedEmail(ctx context.Context, email string) (accounts.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.NormalizedEmail == email {
			return u, nil
		}
	}
	return accounts.User{}, errs.ErrNotFound
}

func (r *userRepo) Update(ctx context.Context, u accounts.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return errs.ErrNotFound
	}
	r.s.users[u.ID] = u
	return nil
}
