package food_test

import (
	"context"
	"errors"
	"testing"

	mem "github.com/RafaelMurad/PawCare/internal/adapters/storage/memory"
	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/food"
)

func newService() *food.Service {
	return food.NewService(mem.NewFoodRepo(mem.NewStore()))
}

func TestCreateFood(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	item, err := svc.Create(ctx, food.CreateInput{
		Name:   "  Celery ",
		Safety: food.SafetySafe,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Name != "Celery" {
		t.Fatalf("name = %q, want trimmed Celery", item.Name)
	}
	if item.NormalizedName != "celery" {
		t.Fatalf("normalized = %q, want celery", item.NormalizedName)
	}

	// Mismo nombre con otra capitalización => conflicto.
	if _, err := svc.Create(ctx, food.CreateInput{Name: "CELERY", Safety: food.SafetySafe}); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Ya viene sembrado.
	if _, err := svc.Create(ctx, food.CreateInput{Name: "chocolate", Safety: food.SafetyToxic}); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("seeded duplicate: expected ErrConflict, got %v", err)
	}

	if _, err := svc.Create(ctx, food.CreateInput{Name: "Mystery", Safety: "lethal"}); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("bad safety: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, food.CreateInput{Name: "   ", Safety: food.SafetySafe}); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("blank name: expected ErrInvalidInput, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	item, err := svc.Lookup(ctx, "  ChOcOlAtE ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if item.Safety != food.SafetyToxic {
		t.Fatalf("safety = %s, want toxic", item.Safety)
	}

	if _, err := svc.Lookup(ctx, "plutonium"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Lookup(ctx, ""); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	t.Run("direct substring", func(t *testing.T) {
		items, err := svc.Search(ctx, "grape")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(items) == 0 {
			t.Fatalf("no results for grape")
		}
		if items[0].Name != "Grapes" {
			t.Fatalf("first = %s, want Grapes", items[0].Name)
		}
	})

	t.Run("token fallback for phrases", func(t *testing.T) {
		items, err := svc.Search(ctx, "my dog licked some dark chocolate")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		found := false
		for _, it := range items {
			if it.Name == "Chocolate" {
				found = true
			}
		}
		if !found {
			t.Fatalf("phrase search missed Chocolate, got %v", names(items))
		}
	})

	t.Run("tokens do not duplicate entries", func(t *testing.T) {
		items, err := svc.Search(ctx, "grapes and more grapes")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		seen := map[string]int{}
		for _, it := range items {
			seen[it.ID]++
			if seen[it.ID] > 1 {
				t.Fatalf("duplicate entry %s in results", it.Name)
			}
		}
	})

	t.Run("no match", func(t *testing.T) {
		items, err := svc.Search(ctx, "kryptonite pebbles")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected empty, got %v", names(items))
		}
	})

	t.Run("blank query", func(t *testing.T) {
		if _, err := svc.Search(ctx, "   "); !errors.Is(err, errs.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestSafetyLists(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	safe, err := svc.ListSafe(ctx)
	if err != nil {
		t.Fatalf("list safe: %v", err)
	}
	harmful, err := svc.ListHarmful(ctx)
	if err != nil {
		t.Fatalf("list harmful: %v", err)
	}
	if len(safe) == 0 || len(harmful) == 0 {
		t.Fatalf("seed should populate both lists: safe=%d harmful=%d", len(safe), len(harmful))
	}
	for _, it := range safe {
		if it.Safety != food.SafetySafe && it.Safety != food.SafetyModeration {
			t.Fatalf("%s in safe list with safety %s", it.Name, it.Safety)
		}
	}
	for _, it := range harmful {
		if it.Safety != food.SafetyToxic && it.Safety != food.SafetyDangerous {
			t.Fatalf("%s in harmful list with safety %s", it.Name, it.Safety)
		}
	}
}

func names(items []food.FoodItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}
