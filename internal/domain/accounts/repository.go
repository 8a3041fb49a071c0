package accounts

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByNormalizedEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
}
