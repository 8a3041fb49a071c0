package memory

import (
	"context"
	"sort"

	"github.com/RafaelMurad/PawCare/internal/domain/dogs"
	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

type dogRepo struct{ s *Store }

func NewDogRepo(s *Store) dogs.Repository { return &dogRepo{s: s} }

func (r *dogRepo) Create(ctx context.Context, d dogs.Dog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.dogsByID[d.ID] = d
	return nil
}

func (r *dogRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.dogsByID[id]
	if !ok {
		return dogs.Dog{}, errs.ErrNotFound
	}
	return d, nil
}

func (r *dogRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.dogsByID[d.ID]; !ok {
		return errs.ErrNotFound
	}
	r.s.dogsByID[d.ID] = d
	return nil
}

// Delete borra el perro y cascadea a sus registros hijos; los eventos
// ligados quedan con DogID en nil, igual que el ON DELETE SET NULL de la
// FK en Postgres.
func (r *dogRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.dogsByID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.s.dogsByID, id)

	for aid, a := range r.s.allergies {
		if a.DogID == id {
			delete(r.s.allergies, aid)
		}
	}
	for cid, c := range r.s.conditions {
		if c.DogID == id {
			delete(r.s.conditions, cid)
		}
	}
	for wid, w := range r.s.weights {
		if w.DogID == id {
			delete(r.s.weights, wid)
		}
	}
	for vid, v := range r.s.vaccinations {
		if v.DogID == id {
			delete(r.s.vaccinations, vid)
		}
	}
	for tid, t := range r.s.toys {
		if t.DogID == id {
			delete(r.s.toys, tid)
		}
	}
	for rid, rec := range r.s.records {
		if rec.DogID == id {
			delete(r.s.records, rid)
		}
	}
	for mid, m := range r.s.medications {
		if m.DogID == id {
			delete(r.s.medications, mid)
		}
	}
	for eid, e := range r.s.events {
		if e.DogID != nil && *e.DogID == id {
			e.DogID = nil
			r.s.events[eid] = e
		}
	}
	return nil
}

func (r *dogRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]dogs.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]dogs.Dog, 0)
	for _, d := range r.s.dogsByID {
		if d.OwnerUserID == ownerUserID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *dogRepo) AddAllergy(ctx context.Context, a dogs.Allergy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.allergies[a.ID] = a
	return nil
}

func (r *dogRepo) ListAllergies(ctx context.Context, dogID string) ([]dogs.Allergy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]dogs.Allergy, 0)
	for _, a := range r.s.allergies {
		if a.DogID == dogID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *dogRepo) DeleteAllergy(ctx context.Context, dogID, allergyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.allergies[allergyID]
	if !ok || a.DogID != dogID {
		return errs.ErrNotFound
	}
	delete(r.s.allergies, allergyID)
	return nil
}

func (r *dogRepo) AddCondition(ctx context.Context, c dogs.Condition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.conditions[c.ID] = c
	return nil
}

func (r *dogRepo) ListConditions(ctx context.Context, dogID string) ([]dogs.Condition, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]dogs.Condition, 0)
	for _, c := range r.s.conditions {
		if c.DogID == dogID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *dogRepo) DeleteCondition(ctx context.Context, dogID, conditionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.conditions[conditionID]
	if !ok || c.DogID != dogID {
		return errs.ErrNotFound
	}
	delete(r.s.conditions, conditionID)
	return nil
}

func (r *dogRepo) AddWeight(ctx context.Context, e dogs.WeightEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.weights[e.ID] = e
	return nil
}

func (r *dogRepo) ListWeights(ctx context.Context, dogID string) ([]dogs.WeightEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]dogs.WeightEntry, 0)
	for _, e := range r.s.weights {
		if e.DogID == dogID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out, nil
}
