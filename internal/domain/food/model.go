package food

import (
	"strings"
	"time"
)

// SafetyLevel indica qué tan seguro es un alimento para perros.
type SafetyLevel string

const (
	SafetySafe       SafetyLevel = "safe"
	SafetyModeration SafetyLevel = "safe_in_moderation"
	SafetyToxic      SafetyLevel = "toxic"
	SafetyDangerous  SafetyLevel = "dangerous"
	SafetyVaries     SafetyLevel = "varies"
)

func ValidSafetyLevel(l SafetyLevel) bool {
	switch l {
	case SafetySafe, SafetyModeration, SafetyToxic, SafetyDangerous, SafetyVaries:
		return true
	}
	return false
}

// FoodItem es una entrada de la tabla de referencia de alimentos.
type FoodItem struct {
	ID string

	Name           string
	NormalizedName string // minúsculas + trim, única
	Safety         SafetyLevel
	Description    string
	Symptoms       string // síntomas si es tóxico/peligroso
	Alternatives   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeName produce la clave de unicidad y búsqueda.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
