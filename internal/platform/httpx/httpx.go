package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

// WriteJSON serializa v con el status indicado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteError emite {"error": msg}. Mensajes cortos, sin detalles internos.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// WriteDomainError mapea los sentinels de dominio a HTTP.
// Cualquier error no clasificado es fallo de persistencia => 500 genérico.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, errs.ErrConflict):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrNoProvider), errors.Is(err, errs.ErrUpstream):
		WriteError(w, http.StatusBadGateway, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
