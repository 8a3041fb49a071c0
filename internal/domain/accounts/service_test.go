package accounts_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	mem "github.com/RafaelMurad/PawCare/internal/adapters/storage/memory"
	"github.com/RafaelMurad/PawCare/internal/domain/accounts"
	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

type staticIssuer struct{}

func (staticIssuer) Issue(userID, _ string) (string, error) {
	return "token-for-" + userID, nil
}

func newService() *accounts.Service {
	return accounts.NewService(mem.NewUserRepo(mem.NewStore()), staticIssuer{})
}

func TestRegister(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, token, err := svc.Register(ctx, accounts.RegisterInput{
		Email:       "  Ana@Example.COM ",
		Password:    "supersecret",
		DisplayName: " Ana ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token != "token-for-"+u.ID {
		t.Fatalf("token = %q", token)
	}
	if u.NormalizedEmail != "ana@example.com" {
		t.Fatalf("normalized email = %q", u.NormalizedEmail)
	}
	if u.DisplayName != "Ana" {
		t.Fatalf("display name = %q, want trimmed", u.DisplayName)
	}
	if u.PasswordHash == "supersecret" || u.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("supersecret")) != nil {
		t.Fatalf("hash does not verify against the password")
	}

	// Unicidad por email normalizado.
	if _, _, err := svc.Register(ctx, accounts.RegisterInput{
		Email:    "ANA@example.com",
		Password: "otherpassword",
	}); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("duplicate: expected ErrConflict, got %v", err)
	}

	if _, _, err := svc.Register(ctx, accounts.RegisterInput{Email: "not-an-email", Password: "supersecret"}); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("bad email: expected ErrInvalidInput, got %v", err)
	}
	if _, _, err := svc.Register(ctx, accounts.RegisterInput{Email: "b@example.com", Password: "short"}); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("short password: expected ErrInvalidInput, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, _, err := svc.Register(ctx, accounts.RegisterInput{
		Email:    "ana@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	u, token, err := svc.Login(ctx, "ANA@example.com", "supersecret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != created.ID || token == "" {
		t.Fatalf("login returned wrong user or empty token")
	}

	// Password incorrecto y cuenta inexistente fallan igual.
	_, _, badPass := svc.Login(ctx, "ana@example.com", "wrongpassword")
	_, _, noUser := svc.Login(ctx, "ghost@example.com", "supersecret")
	if !errors.Is(badPass, errs.ErrInvalidInput) || !errors.Is(noUser, errs.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for both, got %v / %v", badPass, noUser)
	}
	if badPass.Error() != noUser.Error() {
		t.Fatalf("login errors leak account existence: %q vs %q", badPass, noUser)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, accounts.RegisterInput{
		Email:    "ana@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	name := "Ana María"
	updated, err := svc.UpdateProfile(ctx, u.ID, accounts.UpdateProfileInput{DisplayName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DisplayName != "Ana María" {
		t.Fatalf("display name = %q", updated.DisplayName)
	}

	// Sin campos no toca el nombre.
	same, err := svc.UpdateProfile(ctx, u.ID, accounts.UpdateProfileInput{})
	if err != nil {
		t.Fatalf("noop update: %v", err)
	}
	if same.DisplayName != "Ana María" {
		t.Fatalf("noop update changed display name to %q", same.DisplayName)
	}

	if _, err := svc.UpdateProfile(ctx, "missing", accounts.UpdateProfileInput{}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
