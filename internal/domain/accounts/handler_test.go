package accounts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	mem "github.com/RafaelMurad/PawCare/internal/adapters/storage/memory"
	"github.com/RafaelMurad/PawCare/internal/domain/accounts"
)

// failingUserRepo simula un almacén caído.
type failingUserRepo struct{}

var errStoreDown = errors.New("connection refused")

func (failingUserRepo) Create(context.Context, accounts.User) error { return errStoreDown }
func (failingUserRepo) GetByID(context.Context, string) (accounts.User, error) {
	return accounts.User{}, errStoreDown
}
func (failingUserRepo) GetByNormalizedEmail(context.Context, string) (accounts.User, error) {
	return accounts.User{}, errStoreDown
}
func (failingUserRepo) Update(context.Context, accounts.User) error { return errStoreDown }

func postLogin(t *testing.T, ts *httptest.Server, email, password string) int {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(ts.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestLoginHandlerDistinguishesStoreFailures(t *testing.T) {
	// Credenciales malas => 401.
	svc := accounts.NewService(mem.NewUserRepo(mem.NewStore()), staticIssuer{})
	if _, _, err := svc.Register(context.Background(), accounts.RegisterInput{
		Email:    "ana@example.com",
		Password: "supersecret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	r := chi.NewRouter()
	accounts.RegisterRoutes(r, svc)
	ts := httptest.NewServer(r)
	defer ts.Close()

	if st := postLogin(t, ts, "ana@example.com", "wrongpassword"); st != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", st)
	}
	if st := postLogin(t, ts, "ghost@example.com", "supersecret"); st != http.StatusUnauthorized {
		t.Fatalf("unknown account: expected 401, got %d", st)
	}

	// Almacén caído => 500, no 401.
	broken := chi.NewRouter()
	accounts.RegisterRoutes(broken, accounts.NewService(failingUserRepo{}, staticIssuer{}))
	bts := httptest.NewServer(broken)
	defer bts.Close()

	if st := postLogin(t, bts, "ana@example.com", "supersecret"); st != http.StatusInternalServerError {
		t.Fatalf("store failure: expected 500, got %d", st)
	}
}
