package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RafaelMurad/PawCare/internal/domain/accounts"
	"github.com/RafaelMurad/PawCare/internal/domain/advisor"
	"github.com/RafaelMurad/PawCare/internal/domain/dogs"
	"github.com/RafaelMurad/PawCare/internal/domain/events"
	"github.com/RafaelMurad/PawCare/internal/domain/food"
	"github.com/RafaelMurad/PawCare/internal/domain/health"
	"github.com/RafaelMurad/PawCare/internal/domain/toys"
	"github.com/RafaelMurad/PawCare/internal/domain/vaccinations"
)

// Store es el almacenamiento en memoria para dev y tests. Todas las
// "tablas" comparten un mutex para que el borrado de un perro cascadee
// igual que las FKs de Postgres.
type Store struct {
	mu sync.RWMutex

	users        map[string]accounts.User
	dogsByID     map[string]dogs.Dog
	allergies    map[string]dogs.Allergy
	conditions   map[string]dogs.Condition
	weights      map[string]dogs.WeightEntry
	vaccinations map[string]vaccinations.Vaccination
	events       map[string]events.Event
	toys         map[string]toys.Toy
	records      map[string]health.HealthRecord
	medications  map[string]health.Medication
	foods        map[string]food.FoodItem
	queries      []advisor.QueryLog
}

// NewStore crea el almacenamiento vacío y carga la tabla de alimentos.
func NewStore() *Store {
	s := &Store{
		users:        make(map[string]accounts.User),
		dogsByID:     make(map[string]dogs.Dog),
		allergies:    make(map[string]dogs.Allergy),
		conditions:   make(map[string]dogs.Condition),
		weights:      make(map[string]dogs.WeightEntry),
		vaccinations: make(map[string]vaccinations.Vaccination),
		events:       make(map[string]events.Event),
		toys:         make(map[string]toys.Toy),
		records:      make(map[string]health.HealthRecord),
		medications:  make(map[string]health.Medication),
		foods:        make(map[string]food.FoodItem),
	}
	s.seedFoods()
	return s
}

func (s *Store) seedFoods() {
	now := time.Now()
	for _, item := range food.SeedItems {
		item.ID = uuid.NewString()
		item.NormalizedName = food.NormalizeName(item.Name)
		item.CreatedAt = now
		item.UpdatedAt = now
		s.foods[item.ID] = item
	}
}

// ownedDogIDs devuelve los IDs de los perros del usuario. Caller debe
// tener el lock tomado.
func (s *Store) ownedDogIDs(ownerUserID string) map[string]bool {
	out := make(map[string]bool)
	for id, d := range s.dogsByID {
		if d.OwnerUserID == ownerUserID {
			out[id] = true
		}
	}
	return out
}
