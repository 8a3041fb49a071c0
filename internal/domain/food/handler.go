package food

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/platform/httpx"
)

// RegisterPublicRoutes monta la consulta de la tabla de alimentos
// (lectura sin autenticación).
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Route("/food", func(fr chi.Router) {
		fr.Get("/", listFoodsHandler(svc))
		fr.Get("/search", searchFoodsHandler(svc))
		fr.Get("/safe", listSafeHandler(svc))
		fr.Get("/toxic", listToxicHandler(svc))
		fr.Get("/categories/list", categoriesHandler(svc))
		fr.Get("/{foodID}", getFoodHandler(svc))
	})
}

// RegisterProtectedRoutes monta el alta de entradas (requiere sesión).
func RegisterProtectedRoutes(r chi.Router, svc *Service) {
	r.Post("/food", createFoodHandler(svc))
}

type foodRequest struct {
	Name         string `json:"name"`
	Safety       string `json:"safety"`
	Description  string `json:"description"`
	Symptoms     string `json:"symptoms"`
	Alternatives string `json:"alternatives"`
}

type foodResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Safety       string    `json:"safety"`
	Description  string    `json:"description,omitempty"`
	Symptoms     string    `json:"symptoms,omitempty"`
	Alternatives string    `json:"alternatives,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// searchFoodsHandler godoc
// @Summary Buscar alimentos por nombre
// @Description Subcadena sobre la consulta completa; si no hay resultados, token por token.
// @Router /api/food/search [get]
func searchFoodsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		items, err := svc.Search(r.Context(), q)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toFoodResponses(items))
	}
}

func listFoodsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toFoodResponses(items))
	}
}

func listSafeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListSafe(r.Context())
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toFoodResponses(items))
	}
}

func listToxicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListHarmful(r.Context())
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toFoodResponses(items))
	}
}

func categoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, svc.Categories())
	}
}

// getFoodHandler acepta el ID o directamente el nombre del alimento.
func getFoodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "foodID")
		item, err := svc.Get(r.Context(), key)
		if errors.Is(err, errs.ErrNotFound) {
			item, err = svc.Lookup(r.Context(), key)
		}
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toFoodResponse(item))
	}
}

// createFoodHandler godoc
// @Summary Agregar entrada a la tabla de alimentos
// @Description El nombre normalizado es único; repetirlo devuelve 409.
// @Router /api/food [post]
func createFoodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req foodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		item, err := svc.Create(r.Context(), CreateInput{
			Name:         req.Name,
			Safety:       SafetyLevel(req.Safety),
			Description:  req.Description,
			Symptoms:     req.Symptoms,
			Alternatives: req.Alternatives,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toFoodResponse(item))
	}
}

func toFoodResponse(item FoodItem) foodResponse {
	return foodResponse{
		ID:           item.ID,
		Name:         item.Name,
		Safety:       string(item.Safety),
		Description:  item.Description,
		Symptoms:     item.Symptoms,
		Alternatives: item.Alternatives,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func toFoodResponses(items []FoodItem) []foodResponse {
	out := make([]foodResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toFoodResponse(item))
	}
	return out
}
