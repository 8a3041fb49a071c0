package food

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Name         string
	Safety       SafetyLevel
	Description  string
	Symptoms     string
	Alternatives string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (FoodItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return FoodItem{}, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}
	if !ValidSafetyLevel(in.Safety) {
		return FoodItem{}, fmt.Errorf("%w: invalid safety level %q", errs.ErrInvalidInput, in.Safety)
	}

	normalized := NormalizeName(in.Name)
	if _, err := s.repo.GetByNormalizedName(ctx, normalized); err == nil {
		return FoodItem{}, fmt.Errorf("%w: food %q already exists", errs.ErrConflict, normalized)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return FoodItem{}, err
	}

	now := s.now()
	item := FoodItem{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		NormalizedName: normalized,
		Safety:         in.Safety,
		Description:    strings.TrimSpace(in.Description),
		Symptoms:       strings.TrimSpace(in.Symptoms),
		Alternatives:   strings.TrimSpace(in.Alternatives),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return FoodItem{}, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (FoodItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]FoodItem, error) {
	return s.repo.List(ctx)
}

// ListSafe devuelve lo que un perro puede comer, con y sin moderación.
func (s *Service) ListSafe(ctx context.Context) ([]FoodItem, error) {
	return s.repo.ListBySafety(ctx, []SafetyLevel{SafetySafe, SafetyModeration})
}

// ListHarmful devuelve las entradas tóxicas y peligrosas.
func (s *Service) ListHarmful(ctx context.Context) ([]FoodItem, error) {
	return s.repo.ListBySafety(ctx, []SafetyLevel{SafetyToxic, SafetyDangerous})
}

// Categories enumera los niveles de seguridad válidos.
func (s *Service) Categories() []SafetyLevel {
	return []SafetyLevel{SafetySafe, SafetyModeration, SafetyToxic, SafetyDangerous, SafetyVaries}
}

// Lookup busca una entrada por nombre exacto normalizado.
func (s *Service) Lookup(ctx context.Context, name string) (FoodItem, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return FoodItem{}, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}
	return s.repo.GetByNormalizedName(ctx, normalized)
}

// Search busca por subcadena sobre la consulta completa; si no hay
// resultados reintenta token por token. Entradas repetidas entre tokens
// se deduplican quedándose con la última aparición.
func (s *Service) Search(ctx context.Context, query string) ([]FoodItem, error) {
	normalized := NormalizeName(query)
	if normalized == "" {
		return nil, fmt.Errorf("%w: query is required", errs.ErrInvalidInput)
	}

	items, err := s.repo.SearchSubstring(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}

	// Fallback por token: "dark chocolate bar" encuentra "chocolate".
	byID := make(map[string]int)
	var merged []FoodItem
	for _, tok := range strings.Fields(normalized) {
		found, err := s.repo.SearchSubstring(ctx, tok)
		if err != nil {
			return nil, err
		}
		for _, item := range found {
			if idx, seen := byID[item.ID]; seen {
				merged[idx] = item
				continue
			}
			byID[item.ID] = len(merged)
			merged = append(merged, item)
		}
	}
	return merged, nil
}
