package dogs

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RafaelMurad/PawCare/internal/domain/schedule"
	"github.com/RafaelMurad/PawCare/internal/middleware"
	"github.com/RafaelMurad/PawCare/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Post("/", createDogHandler(svc))
		dr.Get("/", listDogsHandler(svc))

		dr.Route("/{dogID}", func(one chi.Router) {
			one.Get("/", getDogHandler(svc))
			one.Put("/", updateDogHandler(svc))
			one.Delete("/", deleteDogHandler(svc))

			one.Post("/allergies", addAllergyHandler(svc))
			one.Get("/allergies", listAllergiesHandler(svc))
			one.Delete("/allergies/{allergyID}", deleteAllergyHandler(svc))

			one.Post("/conditions", addConditionHandler(svc))
			one.Get("/conditions", listConditionsHandler(svc))
			one.Delete("/conditions/{conditionID}", deleteConditionHandler(svc))

			one.Post("/weight", addWeightHandler(svc))
			one.Get("/weight", listWeightsHandler(svc))
		})
	})
}

type createDogRequest struct {
	Name         string `json:"name"`
	Breed        string `json:"breed"`
	Sex          string `json:"sex"`
	BirthDate    string `json:"birth_date"`    // YYYY-MM-DD opcional
	AdoptionDate string `json:"adoption_date"` // YYYY-MM-DD opcional
	Notes        string `json:"notes"`
}

type updateDogRequest struct {
	Name         *string `json:"name"`
	Breed        *string `json:"breed"`
	Sex          *string `json:"sex"`
	BirthDate    *string `json:"birth_date"`    // null = limpiar
	AdoptionDate *string `json:"adoption_date"` // null = limpiar
	Notes        *string `json:"notes"`
}

type dogResponse struct {
	ID              string    `json:"id"`
	OwnerUserID     string    `json:"owner_user_id"`
	Name            string    `json:"name"`
	Breed           string    `json:"breed"`
	Sex             Sex       `json:"sex"`
	BirthDate       *string   `json:"birth_date,omitempty"`
	AdoptionDate    *string   `json:"adoption_date,omitempty"`
	CurrentWeightKg *float64  `json:"current_weight_kg,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type allergyRequest struct {
	Allergen string `json:"allergen"`
	Reaction string `json:"reaction"`
	Severity string `json:"severity"`
}

type allergyResponse struct {
	ID       string `json:"id"`
	DogID    string `json:"dog_id"`
	Allergen string `json:"allergen"`
	Reaction string `json:"reaction,omitempty"`
	Severity string `json:"severity,omitempty"`
}

type conditionRequest struct {
	Name        string `json:"name"`
	DiagnosedAt string `json:"diagnosed_at"` // YYYY-MM-DD opcional
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

type conditionResponse struct {
	ID          string  `json:"id"`
	DogID       string  `json:"dog_id"`
	Name        string  `json:"name"`
	DiagnosedAt *string `json:"diagnosed_at,omitempty"`
	Status      string  `json:"status,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

type weightRequest struct {
	WeightKg   float64 `json:"weight_kg"`
	RecordedAt string  `json:"recorded_at"` // YYYY-MM-DD opcional, default hoy
	Notes      string  `json:"notes"`
}

type weightResponse struct {
	ID         string  `json:"id"`
	DogID      string  `json:"dog_id"`
	WeightKg   float64 `json:"weight_kg"`
	RecordedAt string  `json:"recorded_at"`
	Notes      string  `json:"notes,omitempty"`
}

// createDogHandler godoc
// @Summary Crear perfil de perro
// @Description Si trae birth_date o adoption_date se materializa el evento anual correspondiente.
// @Router /api/dogs [post]
func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		bd, ok := parseOptionalDate(w, req.BirthDate, "birth_date")
		if !ok {
			return
		}
		ad, ok := parseOptionalDate(w, req.AdoptionDate, "adoption_date")
		if !ok {
			return
		}

		d, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			Breed:        req.Breed,
			Sex:          req.Sex,
			BirthDate:    bd,
			AdoptionDate: ad,
			Notes:        req.Notes,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		d, err := svc.GetOwned(r.Context(), claims.UserID, chi.URLParam(r, "dogID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func updateDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		// Decodificar a map primero para distinguir "campo ausente"
		// de "campo: null" en las fechas.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		var req updateDogRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		in := UpdateInput{
			Name:  req.Name,
			Breed: req.Breed,
			Sex:   req.Sex,
			Notes: req.Notes,
		}

		if v, exists := raw["birth_date"]; exists {
			if string(v) == "null" {
				in.ClearBirth = true
			} else if req.BirthDate != nil {
				d, err := schedule.ParseDate(*req.BirthDate)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD or null")
					return
				}
				in.BirthDate = &d
			}
		}
		if v, exists := raw["adoption_date"]; exists {
			if string(v) == "null" {
				in.ClearAdopt = true
			} else if req.AdoptionDate != nil {
				d, err := schedule.ParseDate(*req.AdoptionDate)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "adoption_date must be YYYY-MM-DD or null")
					return
				}
				in.AdoptionDate = &d
			}
		}

		d, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "dogID"), in)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "dogID")); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addAllergyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req allergyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.AddAllergy(r.Context(), claims.UserID, chi.URLParam(r, "dogID"), AllergyInput{
			Allergen: req.Allergen,
			Reaction: req.Reaction,
			Severity: req.Severity,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toAllergyResponse(a))
	}
}

func listAllergiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListAllergies(r.Context(), claims.UserID, chi.URLParam(r, "dogID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]allergyResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAllergyResponse(a))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func deleteAllergyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		err := svc.DeleteAllergy(r.Context(), claims.UserID,
			chi.URLParam(r, "dogID"), chi.URLParam(r, "allergyID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addConditionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req conditionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		diag, ok := parseOptionalDate(w, req.DiagnosedAt, "diagnosed_at")
		if !ok {
			return
		}

		c, err := svc.AddCondition(r.Context(), claims.UserID, chi.URLParam(r, "dogID"), ConditionInput{
			Name:        req.Name,
			DiagnosedAt: diag,
			Status:      req.Status,
			Notes:       req.Notes,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toConditionResponse(c))
	}
}

func listConditionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListConditions(r.Context(), claims.UserID, chi.URLParam(r, "dogID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]conditionResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toConditionResponse(c))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func deleteConditionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		err := svc.DeleteCondition(r.Context(), claims.UserID,
			chi.URLParam(r, "dogID"), chi.URLParam(r, "conditionID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addWeightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req weightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		recorded, ok := parseOptionalDate(w, req.RecordedAt, "recorded_at")
		if !ok {
			return
		}

		e, err := svc.AddWeight(r.Context(), claims.UserID, chi.URLParam(r, "dogID"), WeightInput{
			WeightKg:   req.WeightKg,
			RecordedAt: recorded,
			Notes:      req.Notes,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toWeightResponse(e))
	}
}

func listWeightsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListWeights(r.Context(), claims.UserID, chi.URLParam(r, "dogID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]weightResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toWeightResponse(e))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// parseOptionalDate responde 400 y devuelve ok=false si el valor viene
// y no es YYYY-MM-DD.
func parseOptionalDate(w http.ResponseWriter, s, field string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	d, err := schedule.ParseDate(s)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, field+" must be YYYY-MM-DD")
		return nil, false
	}
	return &d, true
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{
		ID:              d.ID,
		OwnerUserID:     d.OwnerUserID,
		Name:            d.Name,
		Breed:           d.Breed,
		Sex:             d.Sex,
		BirthDate:       formatDatePtr(d.BirthDate),
		AdoptionDate:    formatDatePtr(d.AdoptionDate),
		CurrentWeightKg: d.CurrentWeightKg,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toAllergyResponse(a Allergy) allergyResponse {
	return allergyResponse{
		ID:       a.ID,
		DogID:    a.DogID,
		Allergen: a.Allergen,
		Reaction: a.Reaction,
		Severity: a.Severity,
	}
}

func toConditionResponse(c Condition) conditionResponse {
	return conditionResponse{
		ID:          c.ID,
		DogID:       c.DogID,
		Name:        c.Name,
		DiagnosedAt: formatDatePtr(c.DiagnosedAt),
		Status:      c.Status,
		Notes:       c.Notes,
	}
}

func toWeightResponse(e WeightEntry) weightResponse {
	return weightResponse{
		ID:         e.ID,
		DogID:      e.DogID,
		WeightKg:   e.WeightKg,
		RecordedAt: schedule.FormatDate(e.RecordedAt),
		Notes:      e.Notes,
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := schedule.FormatDate(*t)
	return &s
}
