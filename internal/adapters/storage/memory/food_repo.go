package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/food"
)

type foodRepo struct{ s *Store }

func NewFoodRepo(s *Store) food.Repository { return &foodRepo{s: s} }

func (r *foodRepo) Create(ctx context.Context, item food.FoodItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.foods {
		if existing.NormalizedName == item.NormalizedName {
			return errs.ErrConflict
		}
	}
	r.s.foods[item.ID] = item
	return nil
}

func (r *foodRepo) GetByID(ctx context.Context, id string) (food.FoodItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.foods[id]
	if !ok {
		return food.FoodItem{}, errs.ErrNotFound
	}
	return item, nil
}

func (r *foodRepo) GetByNormalizedName(ctx context.Context, normalized string) (food.FoodItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.foods {
		if item.NormalizedName == normalized {
			return item, nil
		}
	}
	return food.FoodItem{}, errs.ErrNotFound
}

func (r *foodRepo) List(ctx context.Context) ([]food.FoodItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]food.FoodItem, 0, len(r.s.foods))
	for _, item := range r.s.foods {
		out = append(out, item)
	}
	sortFoods(out)
	return out, nil
}

func (r *foodRepo) SearchSubstring(ctx context.Context, normalizedQuery string) ([]food.FoodItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]food.FoodItem, 0)
	for _, item := range r.s.foods {
		if strings.Contains(item.NormalizedName, normalizedQuery) ||
			strings.Contains(normalizedQuery, item.NormalizedName) {
			out = append(out, item)
		}
	}
	sortFoods(out)
	return out, nil
}

func (r *foodRepo) ListBySafety(ctx context.Context, levels []food.SafetyLevel) ([]food.FoodItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]food.FoodItem, 0)
	for _, item := range r.s.foods {
		for _, level := range levels {
			if item.Safety == level {
				out = append(out, item)
				break
			}
		}
	}
	sortFoods(out)
	return out, nil
}

func sortFoods(items []food.FoodItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].NormalizedName < items[j].NormalizedName
	})
}
