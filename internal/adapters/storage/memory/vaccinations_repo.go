package memory

import (
	"context"
	"sort"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/vaccinations"
)

type vaccinationRepo struct{ s *Store }

func NewVaccinationRepo(s *Store) vaccinations.Repository { return &vaccinationRepo{s: s} }

func (r *vaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.vaccinations[v.ID] = v
	return nil
}

func (r *vaccinationRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vaccinations[id]
	if !ok {
		return vaccinations.Vaccination{}, errs.ErrNotFound
	}
	return v, nil
}

func (r *vaccinationRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vaccinations[v.ID]; !ok {
		return errs.ErrNotFound
	}
	r.s.vaccinations[v.ID] = v
	return nil
}

func (r *vaccinationRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vaccinations[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.s.vaccinations, id)
	return nil
}

func (r *vaccinationRepo) ListByDog(ctx context.Context, dogID string) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.s.vaccinations {
		if v.DogID == dogID {
			out = append(out, v)
		}
	}
	sortVaccinations(out)
	return out, nil
}

func (r *vaccinationRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownedDogIDs(ownerUserID)
	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.s.vaccinations {
		if owned[v.DogID] {
			out = append(out, v)
		}
	}
	sortVaccinations(out)
	return out, nil
}

func (r *vaccinationRepo) ListPendingReminder(ctx context.Context) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.s.vaccinations {
		if !v.ReminderSent && v.NextDueDate != nil {
			out = append(out, v)
		}
	}
	sortVaccinations(out)
	return out, nil
}

func (r *vaccinationRepo) MarkReminderSent(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.vaccinations[id]
	if !ok {
		return errs.ErrNotFound
	}
	v.ReminderSent = true
	r.s.vaccinations[id] = v
	return nil
}

func sortVaccinations(items []vaccinations.Vaccination) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].AdministeredAt.Before(items[j].AdministeredAt)
	})
}
