package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	mem "github.com/RafaelMurad/PawCare/internal/adapters/storage/memory"
	pg "github.com/RafaelMurad/PawCare/internal/adapters/storage/postgres"
	"github.com/RafaelMurad/PawCare/internal/domain/accounts"
	"github.com/RafaelMurad/PawCare/internal/domain/advisor"
	"github.com/RafaelMurad/PawCare/internal/domain/dogs"
	"github.com/RafaelMurad/PawCare/internal/domain/events"
	"github.com/RafaelMurad/PawCare/internal/domain/food"
	"github.com/RafaelMurad/PawCare/internal/domain/health"
	"github.com/RafaelMurad/PawCare/internal/domain/schedule"
	"github.com/RafaelMurad/PawCare/internal/domain/toys"
	"github.com/RafaelMurad/PawCare/internal/domain/vaccinations"
	"github.com/RafaelMurad/PawCare/internal/middleware"
	"github.com/RafaelMurad/PawCare/internal/ports/auth"
)

// Stores agrupa los repositorios de todos los módulos, ya sea sobre
// memoria (dev/tests) o Postgres.
type Stores struct {
	Users        accounts.Repository
	Dogs         dogs.Repository
	Vaccinations vaccinations.Repository
	Events       events.Repository
	Toys         toys.Repository
	Health       health.Repository
	Foods        food.Repository
	Queries      advisor.QueryLogRepository
}

// MemoryStores arma todos los repos sobre un único Store en memoria,
// con la tabla de alimentos ya cargada.
func MemoryStores() Stores {
	s := mem.NewStore()
	return Stores{
		Users:        mem.NewUserRepo(s),
		Dogs:         mem.NewDogRepo(s),
		Vaccinations: mem.NewVaccinationRepo(s),
		Events:       mem.NewEventRepo(s),
		Toys:         mem.NewToyRepo(s),
		Health:       mem.NewHealthRepo(s),
		Foods:        mem.NewFoodRepo(s),
		Queries:      mem.NewQueryLogRepo(s),
	}
}

// PostgresStores arma todos los repos sobre la conexión dada.
func PostgresStores(db *sql.DB) Stores {
	return Stores{
		Users:        pg.NewUsersRepo(db),
		Dogs:         pg.NewDogsRepo(db),
		Vaccinations: pg.NewVaccinationsRepo(db),
		Events:       pg.NewEventsRepo(db),
		Toys:         pg.NewToysRepo(db),
		Health:       pg.NewHealthRepo(db),
		Foods:        pg.NewFoodRepo(db),
		Queries:      pg.NewQueryLogRepo(db),
	}
}

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)
	TokenIssuer  accounts.TokenIssuer

	Stores   Stores
	Windows  schedule.Windows
	Registry *advisor.Registry

	Logger zerolog.Logger
}

// NewRouter arma el árbol de rutas completo bajo /api.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	st := opts.Stores
	registry := opts.Registry
	if registry == nil {
		registry = advisor.NewRegistry("")
	}

	// Services por módulo. dogs y events se referencian mutuamente:
	// events valida dueño vía dogs, dogs sincroniza aniversarios vía
	// events; el setter rompe el ciclo de construcción.
	accountsSvc := accounts.NewService(st.Users, opts.TokenIssuer)
	dogsSvc := dogs.NewService(st.Dogs, nil)
	eventsSvc := events.NewService(st.Events, dogsSvc, opts.Windows)
	dogsSvc.SetCompanion(eventsSvc)

	vaccsSvc := vaccinations.NewService(st.Vaccinations, dogsSvc, eventsSvc, opts.Windows)
	toysSvc := toys.NewService(st.Toys, dogsSvc)
	healthSvc := health.NewService(st.Health, dogsSvc, eventsSvc)
	foodSvc := food.NewService(st.Foods)
	advisorSvc := advisor.NewService(registry, foodSvc, dogsSvc, st.Queries, opts.Logger)

	r.Route("/api", func(api chi.Router) {
		// Públicas: cuenta y consulta de la tabla de alimentos.
		accounts.RegisterRoutes(api, accountsSvc)
		food.RegisterPublicRoutes(api, foodSvc)

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)

			dogs.RegisterRoutes(protected, dogsSvc)
			vaccinations.RegisterRoutes(protected, vaccsSvc)
			events.RegisterRoutes(protected, eventsSvc)
			toys.RegisterRoutes(protected, toysSvc)
			health.RegisterRoutes(protected, healthSvc)
			food.RegisterProtectedRoutes(protected, foodSvc)
			advisor.RegisterRoutes(protected, advisorSvc)
		})
	})

	return r
}
