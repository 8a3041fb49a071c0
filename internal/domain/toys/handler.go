package toys

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RafaelMurad/PawCare/internal/middleware"
	"github.com/RafaelMurad/PawCare/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/toys", func(tr chi.Router) {
		tr.Post("/", createToyHandler(svc))
		tr.Get("/", listToysHandler(svc))
		tr.Get("/{toyID}", getToyHandler(svc))
		tr.Put("/{toyID}", updateToyHandler(svc))
		tr.Delete("/{toyID}", deleteToyHandler(svc))
	})
}

type toyRequest struct {
	DogID    string `json:"dog_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
	Notes    string `json:"notes"`
}

type updateToyRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Rating   *int    `json:"rating"`
	Notes    *string `json:"notes"`
}

type toyResponse struct {
	ID        string    `json:"id"`
	DogID     string    `json:"dog_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Rating    int       `json:"rating"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req toyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			DogID:    req.DogID,
			Name:     req.Name,
			Category: req.Category,
			Rating:   req.Rating,
			Notes:    req.Notes,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toToyResponse(t))
	}
}

func listToysHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var (
			items []Toy
			err   error
		)
		if dogID := r.URL.Query().Get("dog_id"); dogID != "" {
			items, err = svc.ListByDog(r.Context(), claims.UserID, dogID)
		} else {
			items, err = svc.ListByOwner(r.Context(), claims.UserID)
		}
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]toyResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toToyResponse(t))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		t, err := svc.GetOwned(r.Context(), claims.UserID, chi.URLParam(r, "toyID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toToyResponse(t))
	}
}

func updateToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateToyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "toyID"), UpdateInput{
			Name:     req.Name,
			Category: req.Category,
			Rating:   req.Rating,
			Notes:    req.Notes,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toToyResponse(t))
	}
}

func deleteToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "toyID")); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toToyResponse(t Toy) toyResponse {
	return toyResponse{
		ID:        t.ID,
		DogID:     t.DogID,
		Name:      t.Name,
		Category:  t.Category,
		Rating:    t.Rating,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
