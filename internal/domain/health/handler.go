package health

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
	r.Route("/health", func(hr chi.Router) {
		hr.Route("/records", func(rr chi.Router) {
			rr.Post("/", createRecordHandler(svc))
			rr.Get("/", listRecordsHandler(svc))
			rr.Get("/{recordID}", getRecordHandler(svc))
			rr.Put("/{recordID}", updateRecordHandler(svc))
			rr.Delete("/{recordID}", deleteRecordHandler(svc))
		})
		hr.Route("/medications", func(mr chi.Router) {
			mr.Post("/", createMedicationHandler(svc))
			mr.Get("/", listMedicationsHandler(svc))
			mr.Get("/{medicationID}", getMedicationHandler(svc))
			mr.Put("/{medicationID}", updateMedicationHandler(svc))
			mr.Delete("/{medicationID}", deleteMedicationHandler(svc))
		})
		hr.Get("/summary", summaryHandler(svc))
	})
}

type recordRequest struct {
	DogID       string `json:"dog_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OccurredAt  string `json:"occurred_at"` // YYYY-MM-DD
	VetName     string `json:"vet_name"`
}

type updateRecordRequest struct {
	Type        *string `json:"type"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	OccurredAt  *string `json:"occurred_at"`
	VetName     *string `json:"vet_name"`
}

type recordResponse struct {
	ID          string    `json:"id"`
	DogID       string    `json:"dog_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OccurredAt  string    `json:"occurred_at"`
	VetName     string    `json:"vet_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createRecordHandler godoc
// @Summary Crear entrada del historial clínico
// @Router /api/health/records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		occurred, err := schedule.ParseDate(req.OccurredAt)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "occurred_at must be YYYY-MM-DD")
			return
		}

		rec, err := svc.CreateRecord(r.Context(), claims.UserID, CreateRecordInput{
			DogID:       req.DogID,
			Type:        RecordType(req.Type),
			Title:       req.Title,
			Description: req.Description,
			OccurredAt:  occurred,
			VetName:     req.VetName,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListRecords(r.Context(), claims.UserID, r.URL.Query().Get("dog_id"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		rec, err := svc.GetRecordOwned(r.Context(), claims.UserID, chi.URLParam(r, "recordID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		in := UpdateRecordInput{
			Title:       req.Title,
			Description: req.Description,
			VetName:     req.VetName,
		}
		if req.Type != nil {
			t := RecordType(*req.Type)
			in.Type = &t
		}
		if req.OccurredAt != nil {
			d, err := schedule.ParseDate(*req.OccurredAt)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "occurred_at must be YYYY-MM-DD")
				return
			}
			in.OccurredAt = &d
		}

		rec, err := svc.UpdateRecord(r.Context(), claims.UserID, chi.URLParam(r, "recordID"), in)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.DeleteRecord(r.Context(), claims.UserID, chi.URLParam(r, "recordID")); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type medicationRequest struct {
	DogID     string `json:"dog_id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD opcional
	Notes     string `json:"notes"`
}

type updateMedicationRequest struct {
	Name      *string `json:"name"`
	Dosage    *string `json:"dosage"`
	Frequency *string `json:"frequency"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"` // null = tratamiento abierto
	Notes     *string `json:"notes"`
}

type medicationResponse struct {
	ID        string    `json:"id"`
	DogID     string    `json:"dog_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage,omitempty"`
	Frequency string    `json:"frequency,omitempty"`
	StartDate string    `json:"start_date"`
	EndDate   *string   `json:"end_date,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createMedicationHandler godoc
// @Summary Registrar medicación
// @Description Si trae frecuencia se crea el evento recurrente compañero del mismo día.
// @Router /api/health/medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		start, err := schedule.ParseDate(req.StartDate)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		var end *time.Time
		if req.EndDate != "" {
			d, err := schedule.ParseDate(req.EndDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
				return
			}
			end = &d
		}

		m, err := svc.CreateMedication(r.Context(), claims.UserID, CreateMedicationInput{
			DogID:     req.DogID,
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			StartDate: start,
			EndDate:   end,
			Notes:     req.Notes,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListMedications(r.Context(), claims.UserID, r.URL.Query().Get("dog_id"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		m, err := svc.GetMedicationOwned(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		var req updateMedicationRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		in := UpdateMedicationInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			Notes:     req.Notes,
		}
		if req.StartDate != nil {
			d, err := schedule.ParseDate(*req.StartDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
				return
			}
			in.StartDate = &d
		}
		if v, exists := raw["end_date"]; exists {
			if string(v) == "null" {
				in.ClearEnd = true
			} else if req.EndDate != nil {
				d, err := schedule.ParseDate(*req.EndDate)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD or null")
					return
				}
				in.EndDate = &d
			}
		}

		m, err := svc.UpdateMedication(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"), in)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.DeleteMedication(r.Context(), claims.UserID, chi.URLParam(r, "medicationID")); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// summaryHandler godoc
// @Summary Resumen de salud de un perro
// @Router /api/health/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		sum, err := svc.DogSummary(r.Context(), claims.UserID, r.URL.Query().Get("dog_id"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, sum)
	}
}

func toRecordResponse(rec HealthRecord) recordResponse {
	return recordResponse{
		ID:          rec.ID,
		DogID:       rec.DogID,
		Type:        string(rec.Type),
		Title:       rec.Title,
		Description: rec.Description,
		OccurredAt:  schedule.FormatDate(rec.OccurredAt),
		VetName:     rec.VetName,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func toMedicationResponse(m Medication) medicationResponse {
	var end *string
	if m.EndDate != nil {
		s := schedule.FormatDate(*m.EndDate)
		end = &s
	}
	return medicationResponse{
		ID:        m.ID,
		DogID:     m.DogID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		StartDate: schedule.FormatDate(m.StartDate),
		EndDate:   end,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
