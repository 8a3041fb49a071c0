package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/RafaelMurad/PawCare/internal/adapters/auth/jwtauth"
	"github.com/RafaelMurad/PawCare/internal/domain/schedule"
	"github.com/RafaelMurad/PawCare/internal/router"
)

func newDevServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil, // modo dev: X-Debug-User-ID
		TokenIssuer:  jwtauth.NewIssuer("test-secret", time.Hour),
		Stores:       router.MemoryStores(),
		Windows:      schedule.DefaultWindows(),
		Logger:       zerolog.Nop(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_AuthFlow(t *testing.T) {
	issuer := jwtauth.NewIssuer("test-secret", time.Hour)
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: jwtauth.NewVerifier("test-secret"),
		TokenIssuer:  issuer,
		Stores:       router.MemoryStores(),
		Windows:      schedule.DefaultWindows(),
		Logger:       zerolog.Nop(),
	}))
	defer ts.Close()

	// Registro
	st, body := doReq(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"email":        "ana@example.com",
		"password":     "supersecret",
		"display_name": "Ana",
	})
	if st != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body=%s", st, body)
	}
	var session struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	_ = json.Unmarshal(body, &session)
	if session.Token == "" || session.User.ID == "" {
		t.Fatalf("register: missing token or user body=%s", body)
	}

	// Email repetido => 409
	st, _ = doReq(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"email":    "ANA@example.com",
		"password": "supersecret",
	})
	if st != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", st)
	}

	// Password incorrecto => 401
	st, _ = doReq(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "wrongpassword",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", st)
	}

	// Login correcto
	st, body = doReq(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "supersecret",
	})
	if st != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", st, body)
	}
	_ = json.Unmarshal(body, &session)

	// /me sin token => 401
	st, _ = doBearer(t, ts.URL, "GET", "/api/auth/me", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", st)
	}

	// /me con token => 200
	st, body = doBearer(t, ts.URL, "GET", "/api/auth/me", session.Token, nil)
	if st != http.StatusOK {
		t.Fatalf("me: expected 200, got %d body=%s", st, body)
	}

	// Rutas protegidas exigen token también
	st, _ = doBearer(t, ts.URL, "GET", "/api/dogs", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("dogs without token: expected 401, got %d", st)
	}
	st, _ = doBearer(t, ts.URL, "GET", "/api/dogs", session.Token, nil)
	if st != http.StatusOK {
		t.Fatalf("dogs with token: expected 200, got %d", st)
	}
}

func TestHTTP_DogAdoptionCreatesAnniversaryEvent(t *testing.T) {
	ts := newDevServer(t)
	userID := "user-1"

	createDog(t, ts.URL, userID, map[string]any{
		"name":          "Rocky",
		"breed":         "beagle",
		"sex":           "male",
		"adoption_date": "2020-03-15",
	})

	st, body := doReq(t, ts.URL, "GET", "/api/events", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("list events: expected 200, got %d body=%s", st, body)
	}

	var events []struct {
		Type      string `json:"type"`
		EventDate string `json:"event_date"`
		Recurring bool   `json:"is_recurring"`
	}
	_ = json.Unmarshal(body, &events)

	count := 0
	for _, e := range events {
		if e.Type != "adoption_anniversary" {
			continue
		}
		count++
		d, err := time.Parse("2006-01-02", e.EventDate)
		if err != nil {
			t.Fatalf("event_date %q: %v", e.EventDate, err)
		}
		if d.Month() != time.March || d.Day() != 15 {
			t.Fatalf("anniversary on %s, want March 15", e.EventDate)
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if d.Before(today) {
			t.Fatalf("anniversary %s is in the past", e.EventDate)
		}
		if !e.Recurring {
			t.Fatalf("anniversary should be recurring")
		}
	}
	if count != 1 {
		t.Fatalf("adoption_anniversary count = %d, want exactly 1", count)
	}
}

func TestHTTP_DogUpdateDoesNotDuplicateAnniversary(t *testing.T) {
	ts := newDevServer(t)
	userID := "user-1"

	dogID := createDog(t, ts.URL, userID, map[string]any{
		"name":       "Luna",
		"birth_date": "2021-07-01",
	})

	// Dos updates que re-sincronizan el cumpleaños
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "PUT", "/api/dogs/"+dogID, userID, map[string]any{
			"notes": "updated",
		})
		if st != http.StatusOK {
			t.Fatalf("update dog: expected 200, got %d body=%s", st, body)
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/api/events/birthdays", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("list birthdays: expected 200, got %d body=%s", st, body)
	}
	var events []json.RawMessage
	_ = json.Unmarshal(body, &events)
	if len(events) != 1 {
		t.Fatalf("birthday events = %d, want 1 (companion key dedups)", len(events))
	}
}

func TestHTTP_VaccinationCompanionAndUpcoming(t *testing.T) {
	ts := newDevServer(t)
	userID := "user-1"

	dogID := createDog(t, ts.URL, userID, map[string]any{"name": "Max"})

	due := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	st, body := doReq(t, ts.URL, "POST", "/api/vaccinations", userID, map[string]any{
		"dog_id":          dogID,
		"vaccine_name":    "Rabies",
		"administered_at": "2025-01-10",
		"next_due_date":   due,
	})
	if st != http.StatusCreated {
		t.Fatalf("create vaccination: expected 201, got %d body=%s", st, body)
	}
	var vacc struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &vacc)

	// Aparece en upcoming (un mes < horizonte de 3 meses)
	st, body = doReq(t, ts.URL, "GET", "/api/vaccinations/upcoming", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("upcoming: expected 200, got %d body=%s", st, body)
	}
	var upcoming []json.RawMessage
	_ = json.Unmarshal(body, &upcoming)
	if len(upcoming) != 1 {
		t.Fatalf("upcoming = %d, want 1", len(upcoming))
	}

	// Se materializó la cita veterinaria compañera
	st, body = doReq(t, ts.URL, "GET", "/api/events/type/vet_appointment", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("list vet events: expected 200, got %d body=%s", st, body)
	}
	var vetEvents []struct {
		EventDate string `json:"event_date"`
	}
	_ = json.Unmarshal(body, &vetEvents)
	if len(vetEvents) != 1 {
		t.Fatalf("vet_appointment events = %d, want 1", len(vetEvents))
	}
	if vetEvents[0].EventDate != due {
		t.Fatalf("companion date = %s, want %s", vetEvents[0].EventDate, due)
	}

	// Editar la fecha actualiza la cita en lugar de duplicarla
	newDue := time.Now().UTC().AddDate(0, 2, 0).Format("2006-01-02")
	st, body = doReq(t, ts.URL, "PUT", "/api/vaccinations/"+vacc.ID, userID, map[string]any{
		"next_due_date": newDue,
	})
	if st != http.StatusOK {
		t.Fatalf("update vaccination: expected 200, got %d body=%s", st, body)
	}
	st, body = doReq(t, ts.URL, "GET", "/api/events/type/vet_appointment", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("list vet events: expected 200, got %d", st)
	}
	vetEvents = nil
	_ = json.Unmarshal(body, &vetEvents)
	if len(vetEvents) != 1 {
		t.Fatalf("after update vet_appointment events = %d, want 1", len(vetEvents))
	}
	if vetEvents[0].EventDate != newDue {
		t.Fatalf("after update companion date = %s, want %s", vetEvents[0].EventDate, newDue)
	}
}

func TestHTTP_FoodReferencePublicAndProtected(t *testing.T) {
	ts := newDevServer(t)

	// Búsqueda pública, case-insensitive
	st, body := doReq(t, ts.URL, "GET", "/api/food/search?q=CHOCOLATE", "", nil)
	if st != http.StatusOK {
		t.Fatalf("search: expected 200, got %d body=%s", st, body)
	}
	var found []struct {
		Name   string `json:"name"`
		Safety string `json:"safety"`
	}
	_ = json.Unmarshal(body, &found)
	if len(found) == 0 {
		t.Fatalf("search CHOCOLATE: no results")
	}
	if found[0].Safety != "toxic" {
		t.Fatalf("chocolate safety = %s, want toxic", found[0].Safety)
	}

	// Frase completa con fallback por token
	st, body = doReq(t, ts.URL, "GET", "/api/food/search?q=dark+chocolate+bar", "", nil)
	if st != http.StatusOK {
		t.Fatalf("phrase search: expected 200, got %d", st)
	}
	found = nil
	_ = json.Unmarshal(body, &found)
	if len(found) == 0 {
		t.Fatalf("phrase search: no results, want chocolate via token fallback")
	}

	// Alta sin sesión => 401
	st, _ = doReq(t, ts.URL, "POST", "/api/food", "", map[string]any{
		"name": "Celery", "safety": "safe",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("create food unauthenticated: expected 401, got %d", st)
	}

	// Alta autenticada, luego duplicado => 409
	st, body = doReq(t, ts.URL, "POST", "/api/food", "user-1", map[string]any{
		"name": "Celery", "safety": "safe",
	})
	if st != http.StatusCreated {
		t.Fatalf("create food: expected 201, got %d body=%s", st, body)
	}
	st, _ = doReq(t, ts.URL, "POST", "/api/food", "user-1", map[string]any{
		"name": "  celery ", "safety": "safe",
	})
	if st != http.StatusConflict {
		t.Fatalf("duplicate food: expected 409, got %d", st)
	}

	// Categorías públicas
	st, body = doReq(t, ts.URL, "GET", "/api/food/categories/list", "", nil)
	if st != http.StatusOK {
		t.Fatalf("categories: expected 200, got %d body=%s", st, body)
	}
	var categories []string
	_ = json.Unmarshal(body, &categories)
	if len(categories) == 0 {
		t.Fatalf("categories: empty list")
	}
}

func TestHTTP_HealthSummaryByQueryParam(t *testing.T) {
	ts := newDevServer(t)
	userID := "user-1"

	dogID := createDog(t, ts.URL, userID, map[string]any{"name": "Kira"})

	st, body := doReq(t, ts.URL, "POST", "/api/health/records", userID, map[string]any{
		"dog_id":      dogID,
		"type":        "vet_visit",
		"title":       "Annual checkup",
		"occurred_at": "2025-03-01",
	})
	if st != http.StatusCreated {
		t.Fatalf("create record: expected 201, got %d body=%s", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/api/health/summary?dog_id="+dogID, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d body=%s", st, body)
	}
	var sum struct {
		DogID        string `json:"dog_id"`
		RecordCount  int    `json:"record_count"`
		LastVetVisit string `json:"last_vet_visit"`
	}
	_ = json.Unmarshal(body, &sum)
	if sum.DogID != dogID || sum.RecordCount != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.LastVetVisit != "2025-03-01" {
		t.Fatalf("last_vet_visit = %q, want 2025-03-01", sum.LastVetVisit)
	}

	// Sin dog_id => 400
	st, _ = doReq(t, ts.URL, "GET", "/api/health/summary", userID, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("summary without dog_id: expected 400, got %d", st)
	}
}

func TestHTTP_OwnershipHidesForeignRecords(t *testing.T) {
	ts := newDevServer(t)

	dogID := createDog(t, ts.URL, "owner-1", map[string]any{"name": "Toby"})

	// Otro usuario no ve el perro: 404, nunca 403
	st, _ := doReq(t, ts.URL, "GET", "/api/dogs/"+dogID, "intruder", nil)
	if st != http.StatusNotFound {
		t.Fatalf("foreign dog: expected 404, got %d", st)
	}

	// Tampoco puede colgarle registros
	st, _ = doReq(t, ts.URL, "POST", "/api/vaccinations", "intruder", map[string]any{
		"dog_id":          dogID,
		"vaccine_name":    "Rabies",
		"administered_at": "2025-01-10",
	})
	if st != http.StatusNotFound {
		t.Fatalf("foreign vaccination: expected 404, got %d", st)
	}

	// El dueño sí
	st, _ = doReq(t, ts.URL, "GET", "/api/dogs/"+dogID, "owner-1", nil)
	if st != http.StatusOK {
		t.Fatalf("own dog: expected 200, got %d", st)
	}
}

func TestHTTP_DogDeleteCascadesAndOrphansEvents(t *testing.T) {
	ts := newDevServer(t)
	userID := "user-1"

	dogID := createDog(t, ts.URL, userID, map[string]any{
		"name":       "Nina",
		"birth_date": "2022-05-20",
	})

	st, body := doReq(t, ts.URL, "POST", "/api/vaccinations", userID, map[string]any{
		"dog_id":          dogID,
		"vaccine_name":    "DHPP",
		"administered_at": "2025-02-01",
	})
	if st != http.StatusCreated {
		t.Fatalf("create vaccination: expected 201, got %d body=%s", st, body)
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/api/dogs/"+dogID, userID, nil)
	if st != http.StatusNoContent {
		t.Fatalf("delete dog: expected 204, got %d", st)
	}

	// Vacunas del perro desaparecen
	st, body = doReq(t, ts.URL, "GET", "/api/vaccinations", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("list vaccinations: expected 200, got %d", st)
	}
	var vaccs []json.RawMessage
	_ = json.Unmarshal(body, &vaccs)
	if len(vaccs) != 0 {
		t.Fatalf("vaccinations after delete = %d, want 0 (cascade)", len(vaccs))
	}

	// El evento de cumpleaños sobrevive, sin perro
	st, body = doReq(t, ts.URL, "GET", "/api/events", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("list events: expected 200, got %d", st)
	}
	var events []struct {
		Type  string  `json:"type"`
		DogID *string `json:"dog_id"`
	}
	_ = json.Unmarshal(body, &events)
	if len(events) != 1 {
		t.Fatalf("events after delete = %d, want 1 (orphaned)", len(events))
	}
	if events[0].DogID != nil {
		t.Fatalf("orphaned event still has dog_id %q", *events[0].DogID)
	}
}

func TestHTTP_AdvisorWithoutProviders(t *testing.T) {
	ts := newDevServer(t)

	// Sin proveedores configurados: descubrimiento vacío y ask => 502
	st, body := doReq(t, ts.URL, "GET", "/api/ai/providers", "user-1", nil)
	if st != http.StatusOK {
		t.Fatalf("providers: expected 200, got %d body=%s", st, body)
	}
	st, _ = doReq(t, ts.URL, "POST", "/api/ai/ask", "user-1", map[string]any{
		"question": "can dogs eat chocolate?",
	})
	if st != http.StatusBadGateway {
		t.Fatalf("ask without providers: expected 502, got %d", st)
	}
}

func createDog(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/dogs", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create dog: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func doBearer(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}
