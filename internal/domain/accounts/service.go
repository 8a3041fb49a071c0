package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

// TokenIssuer emite el token de sesión tras login/registro.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type Service struct {
	repo   Repository
	issuer TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, issuer TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// NormalizeEmail es la clave de unicidad de cuentas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, "", fmt.Errorf("%w: valid email is required", errs.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return User{}, "", fmt.Errorf("%w: password must be at least 8 characters", errs.ErrInvalidInput)
	}

	if _, err := s.repo.GetByNormalizedEmail(ctx, email); err == nil {
		return User{}, "", fmt.Errorf("%w: email already registered", errs.ErrConflict)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	now := s.now()
	u := User{
		ID:              uuid.NewString(),
		Email:           strings.TrimSpace(in.Email),
		NormalizedEmail: email,
		PasswordHash:    string(hash),
		DisplayName:     strings.TrimSpace(in.DisplayName),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, "", err
	}

	token, err := s.issuer.Issue(u.ID, u.Email)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.repo.GetByNormalizedEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// mismo mensaje que password incorrecto: no filtrar existencia
			return User{}, "", fmt.Errorf("%w: invalid credentials", errs.ErrInvalidInput)
		}
		return User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, "", fmt.Errorf("%w: invalid credentials", errs.ErrInvalidInput)
	}

	token, err := s.issuer.Issue(u.ID, u.Email)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

type UpdateProfileInput struct {
	DisplayName *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if in.DisplayName != nil {
		u.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}
