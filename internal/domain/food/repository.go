package food

import "context"

type Repository interface {
	Create(ctx context.Context, item FoodItem) error
	GetByID(ctx context.Context, id string) (FoodItem, error)
	GetByNormalizedName(ctx context.Context, normalized string) (FoodItem, error)
	List(ctx context.Context) ([]FoodItem, error)

	// SearchSubstring devuelve entradas cuyo nombre normalizado contiene la
	// consulta normalizada.
	SearchSubstring(ctx context.Context, normalizedQuery string) ([]FoodItem, error)

	ListBySafety(ctx context.Context, levels []SafetyLevel) ([]FoodItem, error)
}
