package dogs

import "time"

// Sex define el sexo del perro.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Dog representa el perfil de un perro registrado por un usuario.
// CurrentWeightKg es un cache del último registro del historial de peso;
// nunca se pisa a mano, se refresca al agregar un registro.
type Dog struct {
	ID          string
	OwnerUserID string

	Name  string
	Breed string
	Sex   Sex

	BirthDate    *time.Time
	AdoptionDate *time.Time

	CurrentWeightKg *float64

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Allergy es una alergia conocida del perro.
type Allergy struct {
	ID       string
	DogID    string
	Allergen string
	Reaction string
	Severity string // mild | moderate | severe

	CreatedAt time.Time
}

// Condition es una condición médica diagnosticada.
type Condition struct {
	ID          string
	DogID       string
	Name        string
	DiagnosedAt *time.Time
	Status      string // active | managed | resolved
	Notes       string

	CreatedAt time.Time
}

// WeightEntry es una medición del historial de peso.
type WeightEntry struct {
	ID         string
	DogID      string
	WeightKg   float64
	RecordedAt time.Time
	Notes      string
}
