package dogs

import "context"

type Repository interface {
	Create(ctx context.Context, d Dog) error
	GetByID(ctx context.Context, id string) (Dog, error)
	Update(ctx context.Context, d Dog) error
	// Delete elimina el perro y cascadea a sus registros hijos;
	// los eventos ligados quedan con dog_id en NULL (los maneja el storage).
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerUserID string) ([]Dog, error)

	AddAllergy(ctx context.Context, a Allergy) error
	ListAllergies(ctx context.Context, dogID string) ([]Allergy, error)
	DeleteAllergy(ctx context.Context, dogID, allergyID string) error

	AddCondition(ctx context.Context, c Condition) error
	ListConditions(ctx context.Context, dogID string) ([]Condition, error)
	DeleteCondition(ctx context.Context, dogID, conditionID string) error

	AddWeight(ctx context.Context, e WeightEntry) error
	ListWeights(ctx context.Context, dogID string) ([]WeightEntry, error)
}
