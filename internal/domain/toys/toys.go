package toys

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

// Toy es un juguete registrado para un perro.
type Toy struct {
	ID    string
	DogID string

	Name     string
	Category string // chew | fetch | puzzle | plush | other
	Rating   int    // 0-5, 0 = sin calificar
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, t Toy) error
	GetByID(ctx context.Context, id string) (Toy, error)
	Update(ctx context.Context, t Toy) error
	Delete(ctx context.Context, id string) error
	ListByDog(ctx context.Context, dogID string) ([]Toy, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Toy, error)
}

// DogOwnership resuelve el dueño de un perro (lo implementa dogs.Service).
type DogOwnership interface {
	OwnerOf(ctx context.Context, dogID string) (string, error)
}

type Service struct {
	repo Repository
	dogs DogOwnership
	now  func() time.Time
}

func NewService(repo Repository, dogs DogOwnership) *Service {
	return &Service{
		repo: repo,
		dogs: dogs,
		now:  time.Now,
	}
}

type CreateInput struct {
	DogID    string
	Name     string
	Category string
	Rating   int
	Notes    string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Toy, error) {
	if err := s.ownedDog(ctx, userID, in.DogID); err != nil {
		return Toy{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Toy{}, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}
	if in.Rating < 0 || in.Rating > 5 {
		return Toy{}, fmt.Errorf("%w: rating must be 0-5", errs.ErrInvalidInput)
	}

	now := s.now()
	t := Toy{
		ID:        uuid.NewString(),
		DogID:     in.DogID,
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Rating:    in.Rating,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Toy{}, err
	}
	return t, nil
}

type UpdateInput struct {
	Name     *string
	Category *string
	Rating   *int
	Notes    *string
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Toy, error) {
	t, err := s.GetOwned(ctx, userID, id)
	if err != nil {
		return Toy{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Toy{}, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
		}
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		t.Category = strings.TrimSpace(*in.Category)
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return Toy{}, fmt.Errorf("%w: rating must be 0-5", errs.ErrInvalidInput)
		}
		t.Rating = *in.Rating
	}
	if in.Notes != nil {
		t.Notes = strings.TrimSpace(*in.Notes)
	}

	t.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, t); err != nil {
		return Toy{}, err
	}
	return t, nil
}

func (s *Service) GetOwned(ctx context.Context, userID, id string) (Toy, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Toy{}, err
	}
	if err := s.ownedDog(ctx, userID, t.DogID); err != nil {
		return Toy{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByDog(ctx context.Context, userID, dogID string) ([]Toy, error) {
	if err := s.ownedDog(ctx, userID, dogID); err != nil {
		return nil, err
	}
	return s.repo.ListByDog(ctx, dogID)
}

func (s *Service) ListByOwner(ctx context.Context, userID string) ([]Toy, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *Service) ownedDog(ctx context.Context, userID, dogID string) error {
	if strings.TrimSpace(dogID) == "" {
		return fmt.Errorf("%w: dog_id is required", errs.ErrInvalidInput)
	}
	owner, err := s.dogs.OwnerOf(ctx, dogID)
	if err != nil {
		return err
	}
	if owner != userID {
		return errs.ErrNotFound
	}
	return nil
}
