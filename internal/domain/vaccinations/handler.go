package vaccinations

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
	r.Route("/vaccinations", func(vr chi.Router) {
		vr.Post("/", createVaccinationHandler(svc))
		vr.Get("/", listVaccinationsHandler(svc))
		vr.Get("/upcoming", listUpcomingHandler(svc))
		vr.Get("/schedule", scheduleHandler(svc))

		vr.Get("/{vaccinationID}", getVaccinationHandler(svc))
		vr.Put("/{vaccinationID}", updateVaccinationHandler(svc))
		vr.Delete("/{vaccinationID}", deleteVaccinationHandler(svc))
	})
}

type createVaccinationRequest struct {
	DogID          string `json:"dog_id"`
	VaccineName    string `json:"vaccine_name"`
	AdministeredAt string `json:"administered_at"` // YYYY-MM-DD
	NextDueDate    string `json:"next_due_date"`   // YYYY-MM-DD opcional
	Notes          string `json:"notes"`
}

type updateVaccinationRequest struct {
	VaccineName    *string `json:"vaccine_name"`
	AdministeredAt *string `json:"administered_at"`
	NextDueDate    *string `json:"next_due_date"` // null = limpiar
	ResetReminder  bool    `json:"reset_reminder"`
	Notes          *string `json:"notes"`
}

type vaccinationResponse struct {
	ID             string    `json:"id"`
	DogID          string    `json:"dog_id"`
	VaccineName    string    `json:"vaccine_name"`
	AdministeredAt string    `json:"administered_at"`
	NextDueDate    *string   `json:"next_due_date,omitempty"`
	ReminderSent   bool      `json:"reminder_sent"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// createVaccinationHandler godoc
// @Summary Registrar dosis de vacuna
// @Description Si trae next_due_date se crea/actualiza la cita veterinaria compañera (lead fijo de 14 días).
// @Router /api/vaccinations [post]
func createVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createVaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		administered, err := schedule.ParseDate(req.AdministeredAt)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "administered_at must be YYYY-MM-DD")
			return
		}

		var nextDue *time.Time
		if req.NextDueDate != "" {
			d, err := schedule.ParseDate(req.NextDueDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "next_due_date must be YYYY-MM-DD")
				return
			}
			nextDue = &d
		}

		v, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			DogID:          req.DogID,
			VaccineName:    req.VaccineName,
			AdministeredAt: administered,
			NextDueDate:    nextDue,
			Notes:          req.Notes,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toVaccinationResponse(v))
	}
}

// listVaccinationsHandler lista por perro (?dog_id=) o todas las del usuario.
func listVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var (
			items []Vaccination
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
		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponses(items))
	}
}

// listUpcomingHandler godoc
// @Summary Vacunas próximas (ventana de 3 meses calendario)
// @Router /api/vaccinations/upcoming [get]
func listUpcomingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListUpcoming(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponses(items))
	}
}

func scheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, svc.Schedule())
	}
}

func getVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		v, err := svc.GetOwned(r.Context(), claims.UserID, chi.URLParam(r, "vaccinationID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponse(v))
	}
}

func updateVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		var req updateVaccinationRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		in := UpdateInput{
			VaccineName:   req.VaccineName,
			ResetReminder: req.ResetReminder,
			Notes:         req.Notes,
		}
		if req.AdministeredAt != nil {
			d, err := schedule.ParseDate(*req.AdministeredAt)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "administered_at must be YYYY-MM-DD")
				return
			}
			in.AdministeredAt = &d
		}
		if v, exists := raw["next_due_date"]; exists {
			if string(v) == "null" {
				in.ClearNextDue = true
			} else if req.NextDueDate != nil {
				d, err := schedule.ParseDate(*req.NextDueDate)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "next_due_date must be YYYY-MM-DD or null")
					return
				}
				in.NextDueDate = &d
			}
		}

		v, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "vaccinationID"), in)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponse(v))
	}
}

func deleteVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "vaccinationID")); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	var nextDue *string
	if v.NextDueDate != nil {
		s := schedule.FormatDate(*v.NextDueDate)
		nextDue = &s
	}
	return vaccinationResponse{
		ID:             v.ID,
		DogID:          v.DogID,
		VaccineName:    v.VaccineName,
		AdministeredAt: schedule.FormatDate(v.AdministeredAt),
		NextDueDate:    nextDue,
		ReminderSent:   v.ReminderSent,
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func toVaccinationResponses(items []Vaccination) []vaccinationResponse {
	out := make([]vaccinationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toVaccinationResponse(v))
	}
	return out
}
