package advisor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RafaelMurad/PawCare/internal/middleware"
	"github.com/RafaelMurad/PawCare/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/ai", func(ar chi.Router) {
		ar.Post("/ask", askHandler(svc))
		ar.Get("/food-check/{food}", foodCheckHandler(svc))
		ar.Post("/breed-advice", breedAdviceHandler(svc))
		ar.Post("/analyze-symptoms", analyzeSymptomsHandler(svc))
		ar.Get("/providers", providersHandler(svc))
		ar.Get("/history", historyHandler(svc))
	})
}

type askRequest struct {
	Question string `json:"question"`
	DogID    string `json:"dog_id"`
	Provider string `json:"provider"`
}

// askHandler godoc
// @Summary Pregunta libre al asesor
// @Description Preguntas de comida reciben la tabla de alimentos como contexto citable.
// @Router /api/ai/ask [post]
func askHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		resp, err := svc.Ask(r.Context(), claims.UserID, AskInput{
			Question: req.Question,
			DogID:    req.DogID,
			Provider: req.Provider,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

func foodCheckHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		resp, err := svc.FoodCheck(r.Context(), claims.UserID,
			chi.URLParam(r, "food"), r.URL.Query().Get("provider"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

type breedAdviceRequest struct {
	DogID    string `json:"dog_id"`
	Provider string `json:"provider"`
}

func breedAdviceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req breedAdviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		resp, err := svc.BreedAdvice(r.Context(), claims.UserID, req.DogID, req.Provider)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

type analyzeSymptomsRequest struct {
	DogID    string `json:"dog_id"`
	Symptoms string `json:"symptoms"`
	Provider string `json:"provider"`
}

func analyzeSymptomsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req analyzeSymptomsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		resp, err := svc.AnalyzeSymptoms(r.Context(), claims.UserID, AnalyzeInput{
			DogID:    req.DogID,
			Symptoms: req.Symptoms,
			Provider: req.Provider,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

func providersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, svc.Providers())
	}
}

type historyEntry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err := svc.History(r.Context(), claims.UserID, limit)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]historyEntry, 0, len(items))
		for _, q := range items {
			out = append(out, historyEntry{
				ID:        q.ID,
				Kind:      q.Kind,
				Question:  q.Question,
				Answer:    q.Answer,
				Provider:  q.Provider,
				Model:     q.Model,
				CreatedAt: q.CreatedAt,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
