package events

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
	r.Route("/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc))
		er.Get("/", listEventsHandler(svc))
		er.Get("/upcoming", listUpcomingHandler(svc))
		er.Get("/birthdays", listBirthdaysHandler(svc))
		er.Get("/type/{eventType}", listByTypeHandler(svc))

		er.Get("/{eventID}", getEventHandler(svc))
		er.Put("/{eventID}", updateEventHandler(svc))
		er.Delete("/{eventID}", deleteEventHandler(svc))
	})
}

type createEventRequest struct {
	DogID              *string `json:"dog_id"`
	Title              string  `json:"title"`
	Type               string  `json:"type" enums:"birthday,adoption_anniversary,vet_appointment,grooming,medication,custom"`
	EventDate          string  `json:"event_date"` // YYYY-MM-DD
	IsRecurring        bool    `json:"is_recurring"`
	RecurrencePattern  string  `json:"recurrence_pattern"`
	RecurrenceUntil    string  `json:"recurrence_until"` // YYYY-MM-DD opcional
	ReminderDaysBefore int     `json:"reminder_days_before"`
	Notes              string  `json:"notes"`
}

type updateEventRequest struct {
	// Punteros para PUT parcial: nil = no tocar.
	Title              *string `json:"title"`
	EventDate          *string `json:"event_date"`
	IsRecurring        *bool   `json:"is_recurring"`
	RecurrencePattern  *string `json:"recurrence_pattern"`
	RecurrenceUntil    *string `json:"recurrence_until"` // "" = limpiar
	ReminderDaysBefore *int    `json:"reminder_days_before"`
	Active             *bool   `json:"active"`
	Notes              *string `json:"notes"`
}

type eventResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	DogID              *string   `json:"dog_id,omitempty"`
	Title              string    `json:"title"`
	Type               EventType `json:"type"`
	EventDate          string    `json:"event_date"`
	IsRecurring        bool      `json:"is_recurring"`
	RecurrencePattern  string    `json:"recurrence_pattern,omitempty"`
	RecurrenceUntil    string    `json:"recurrence_until,omitempty"`
	ReminderDaysBefore int       `json:"reminder_days_before"`
	Active             bool      `json:"active"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// createEventHandler godoc
// @Summary Crear evento
// @Router /api/events [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		d, err := schedule.ParseDate(req.EventDate)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "event_date must be YYYY-MM-DD")
			return
		}

		in := CreateInput{
			DogID:              req.DogID,
			Title:              req.Title,
			Type:               EventType(req.Type),
			EventDate:          d,
			IsRecurring:        req.IsRecurring,
			RecurrencePattern:  req.RecurrencePattern,
			ReminderDaysBefore: req.ReminderDaysBefore,
			Notes:              req.Notes,
		}
		if req.RecurrenceUntil != "" {
			u, err := schedule.ParseDate(req.RecurrenceUntil)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "recurrence_until must be YYYY-MM-DD")
				return
			}
			in.RecurrenceUntil = &u
		}

		e, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponses(items))
	}
}

// listUpcomingHandler godoc
// @Summary Eventos próximos (ventana de 30 días)
// @Router /api/events/upcoming [get]
func listUpcomingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListUpcoming(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponses(items))
	}
}

func listBirthdaysHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListBirthdays(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponses(items))
	}
}

func listByTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListByType(r.Context(), claims.UserID, EventType(chi.URLParam(r, "eventType")))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponses(items))
	}
}

func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		e, err := svc.GetOwned(r.Context(), claims.UserID, chi.URLParam(r, "eventID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponse(e))
	}
}

func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		in := UpdateInput{
			Title:              req.Title,
			IsRecurring:        req.IsRecurring,
			RecurrencePattern:  req.RecurrencePattern,
			ReminderDaysBefore: req.ReminderDaysBefore,
			Active:             req.Active,
			Notes:              req.Notes,
		}
		if req.EventDate != nil {
			d, err := schedule.ParseDate(*req.EventDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "event_date must be YYYY-MM-DD")
				return
			}
			in.EventDate = &d
		}
		if req.RecurrenceUntil != nil {
			if *req.RecurrenceUntil == "" {
				in.ClearUntil = true
			} else {
				u, err := schedule.ParseDate(*req.RecurrenceUntil)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "recurrence_until must be YYYY-MM-DD")
					return
				}
				in.RecurrenceUntil = &u
			}
		}

		e, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "eventID"), in)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponse(e))
	}
}

func deleteEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "eventID")); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:                 e.ID,
		UserID:             e.UserID,
		DogID:              e.DogID,
		Title:              e.Title,
		Type:               e.Type,
		EventDate:          schedule.FormatDate(e.EventDate),
		IsRecurring:        e.IsRecurring,
		RecurrencePattern:  e.RecurrencePattern,
		RecurrenceUntil:    formatDateOrEmpty(e.RecurrenceUntil),
		ReminderDaysBefore: e.ReminderDaysBefore,
		Active:             e.Active,
		Notes:              e.Notes,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func formatDateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return schedule.FormatDate(*t)
}

func toEventResponses(items []Event) []eventResponse {
	out := make([]eventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEventResponse(e))
	}
	return out
}
