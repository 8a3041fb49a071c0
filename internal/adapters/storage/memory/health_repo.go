package memory

import (
	"context"
	"sort"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/health"
)

type healthRepo struct{ s *Store }

func NewHealthRepo(s *Store) health.Repository { return &healthRepo{s: s} }

func (r *healthRepo) CreateRecord(ctx context.Context, rec health.HealthRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.records[rec.ID] = rec
	return nil
}

func (r *healthRepo) GetRecordByID(ctx context.Context, id string) (health.HealthRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.records[id]
	if !ok {
		return health.HealthRecord{}, errs.ErrNotFound
	}
	return rec, nil
}

func (r *healthRepo) UpdateRecord(ctx context.Context, rec health.HealthRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[rec.ID]; !ok {
		return errs.ErrNotFound
	}
	r.s.records[rec.ID] = rec
	return nil
}

func (r *healthRepo) DeleteRecord(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.s.records, id)
	return nil
}

func (r *healthRepo) ListRecordsByDog(ctx context.Context, dogID string) ([]health.HealthRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]health.HealthRecord, 0)
	for _, rec := range r.s.records {
		if rec.DogID == dogID {
			out = append(out, rec)
		}
	}
	sortRecords(out)
	return out, nil
}

func (r *healthRepo) ListRecordsByOwner(ctx context.Context, ownerUserID string) ([]health.HealthRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownedDogIDs(ownerUserID)
	out := make([]health.HealthRecord, 0)
	for _, rec := range r.s.records {
		if owned[rec.DogID] {
			out = append(out, rec)
		}
	}
	sortRecords(out)
	return out, nil
}

func (r *healthRepo) CreateMedication(ctx context.Context, m health.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.medications[m.ID] = m
	return nil
}

func (r *healthRepo) GetMedicationByID(ctx context.Context, id string) (health.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.medications[id]
	if !ok {
		return health.Medication{}, errs.ErrNotFound
	}
	return m, nil
}

func (r *healthRepo) UpdateMedication(ctx context.Context, m health.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.medications[m.ID]; !ok {
		return errs.ErrNotFound
	}
	r.s.medications[m.ID] = m
	return nil
}

func (r *healthRepo) DeleteMedication(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.medications[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.s.medications, id)
	return nil
}

func (r *healthRepo) ListMedicationsByDog(ctx context.Context, dogID string) ([]health.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]health.Medication, 0)
	for _, m := range r.s.medications {
		if m.DogID == dogID {
			out = append(out, m)
		}
	}
	sortMedications(out)
	return out, nil
}

func (r *healthRepo) ListMedicationsByOwner(ctx context.Context, ownerUserID string) ([]health.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownedDogIDs(ownerUserID)
	out := make([]health.Medication, 0)
	for _, m := range r.s.medications {
		if owned[m.DogID] {
			out = append(out, m)
		}
	}
	sortMedications(out)
	return out, nil
}

func sortRecords(items []health.HealthRecord) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].OccurredAt.Before(items[j].OccurredAt)
	})
}

func sortMedications(items []health.Medication) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].StartDate.Before(items[j].StartDate)
	})
}
