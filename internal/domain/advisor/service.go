package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RafaelMurad/PawCare/internal/domain/dogs"
	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/food"
)

const systemPreamble = "You are a careful canine care assistant. " +
	"Answer briefly, recommend a veterinarian for anything urgent, " +
	"and never invent food safety facts.\n\n"

// maxContextFoods limita cuántas entradas de la tabla se inyectan al prompt.
const maxContextFoods = 5

const historyDefaultLimit = 20

// DogContext expone lo que el asesor necesita saber de un perro
// (lo implementa dogs.Service).
type DogContext interface {
	GetOwned(ctx context.Context, userID, dogID string) (dogs.Dog, error)
	ListAllergies(ctx context.Context, userID, dogID string) ([]dogs.Allergy, error)
	ListConditions(ctx context.Context, userID, dogID string) ([]dogs.Condition, error)
}

// Response es la respuesta final del asesor, con las fuentes de la tabla
// de alimentos que respaldan lo dicho.
type Response struct {
	Answer   string   `json:"answer"`
	Provider string   `json:"provider"`
	Model    string   `json:"model,omitempty"`
	Sources  []Source `json:"sources,omitempty"`
}

type Service struct {
	registry *Registry
	foods    *food.Service
	dogs     DogContext
	log      QueryLogRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(registry *Registry, foods *food.Service, dogCtx DogContext, log QueryLogRepository, logger zerolog.Logger) *Service {
	return &Service{
		registry: registry,
		foods:    foods,
		dogs:     dogCtx,
		log:      log,
		logger:   logger.With().Str("component", "advisor").Logger(),
		now:      time.Now,
	}
}

// SetClock fija el reloj del servicio (tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

type AskInput struct {
	Question string
	DogID    string
	Provider string
}

// Ask responde una pregunta libre. Si la pregunta parece de comida se
// inyecta la tabla de alimentos como contexto citable; si trae dog_id se
// antepone el perfil del perro.
func (s *Service) Ask(ctx context.Context, userID string, in AskInput) (Response, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return Response{}, fmt.Errorf("%w: question is required", errs.ErrInvalidInput)
	}

	var b strings.Builder
	b.WriteString(systemPreamble)

	var sources []Source
	if looksLikeFoodQuestion(question) {
		items, err := s.foods.Search(ctx, question)
		if err != nil && !errors.Is(err, errs.ErrInvalidInput) {
			return Response{}, err
		}
		if len(items) > maxContextFoods {
			items = items[:maxContextFoods]
		}
		block, src := foodContextBlock(items)
		b.WriteString(block)
		sources = src
	}
	if in.DogID != "" {
		block, err := s.dogBlock(ctx, userID, in.DogID)
		if err != nil {
			return Response{}, err
		}
		b.WriteString(block)
	}
	b.WriteString("Question: " + question)

	return s.complete(ctx, userID, "ask", question, in.Provider, b.String(), sources)
}

// FoodCheck consulta un alimento puntual: primero la tabla, luego el
// proveedor con ese contexto.
func (s *Service) FoodCheck(ctx context.Context, userID, foodName, provider string) (Response, error) {
	foodName = strings.TrimSpace(foodName)
	if foodName == "" {
		return Response{}, fmt.Errorf("%w: food name is required", errs.ErrInvalidInput)
	}

	items, err := s.foods.Search(ctx, foodName)
	if err != nil {
		return Response{}, err
	}
	if len(items) > maxContextFoods {
		items = items[:maxContextFoods]
	}
	block, sources := foodContextBlock(items)

	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString(block)
	b.WriteString(fmt.Sprintf("Question: can dogs eat %s? Give a clear verdict first.", foodName))

	return s.complete(ctx, userID, "food_check", foodName, provider, b.String(), sources)
}

// BreedAdvice pide consejos de cuidado específicos para el perro.
func (s *Service) BreedAdvice(ctx context.Context, userID, dogID, provider string) (Response, error) {
	d, err := s.dogs.GetOwned(ctx, userID, dogID)
	if err != nil {
		return Response{}, err
	}
	block, err := s.dogBlock(ctx, userID, dogID)
	if err != nil {
		return Response{}, err
	}

	breed := d.Breed
	if breed == "" {
		breed = "mixed breed"
	}
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString(block)
	b.WriteString(fmt.Sprintf("Question: what should I know about caring for a %s? Cover exercise, grooming and common health issues.", breed))

	return s.complete(ctx, userID, "breed_advice", "breed advice: "+breed, provider, b.String(), nil)
}

type AnalyzeInput struct {
	DogID    string
	Symptoms string
	Provider string
}

// AnalyzeSymptoms describe síntomas y pide una lectura orientativa.
// No es diagnóstico; el prompt lo deja claro.
func (s *Service) AnalyzeSymptoms(ctx context.Context, userID string, in AnalyzeInput) (Response, error) {
	symptoms := strings.TrimSpace(in.Symptoms)
	if symptoms == "" {
		return Response{}, fmt.Errorf("%w: symptoms are required", errs.ErrInvalidInput)
	}

	var b strings.Builder
	b.WriteString(systemPreamble)
	if in.DogID != "" {
		block, err := s.dogBlock(ctx, userID, in.DogID)
		if err != nil {
			return Response{}, err
		}
		b.WriteString(block)
	}
	b.WriteString("The dog is showing these symptoms: " + symptoms + "\n")
	b.WriteString("List possible non-diagnostic explanations and say when to see a vet urgently.")

	return s.complete(ctx, userID, "symptom_analysis", symptoms, in.Provider, b.String(), nil)
}

// ProviderInfo describe el gateway para el endpoint de descubrimiento.
type ProviderInfo struct {
	Providers []string `json:"providers"`
	Default   string   `json:"default,omitempty"`
}

func (s *Service) Providers() ProviderInfo {
	return ProviderInfo{
		Providers: s.registry.Names(),
		Default:   s.registry.DefaultName(),
	}
}

func (s *Service) History(ctx context.Context, userID string, limit int) ([]QueryLog, error) {
	if limit <= 0 {
		limit = historyDefaultLimit
	}
	return s.log.ListByUser(ctx, userID, limit)
}

// complete ejecuta el proveedor, filtra las fuentes citadas y anexa la
// consulta al historial. Un fallo al anexar no tumba la respuesta.
func (s *Service) complete(ctx context.Context, userID, kind, question, providerName, prompt string, sources []Source) (Response, error) {
	p, err := s.registry.Select(providerName)
	if err != nil {
		return Response{}, err
	}

	ans, err := p.Ask(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", p.Name()).Msg("provider call failed")
		return Response{}, fmt.Errorf("%w: %s", errs.ErrUpstream, p.Name())
	}

	resp := Response{
		Answer:   ans.Text,
		Provider: p.Name(),
		Model:    ans.Model,
		Sources:  citedSources(ans.Text, sources),
	}

	if err := s.log.Append(ctx, QueryLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Question:  question,
		Answer:    ans.Text,
		Provider:  p.Name(),
		Model:     ans.Model,
		CreatedAt: s.now(),
	}); err != nil {
		s.logger.Warn().Err(err).Msg("query log append failed")
	}
	return resp, nil
}

func (s *Service) dogBlock(ctx context.Context, userID, dogID string) (string, error) {
	d, err := s.dogs.GetOwned(ctx, userID, dogID)
	if err != nil {
		return "", err
	}
	allergies, err := s.dogs.ListAllergies(ctx, userID, dogID)
	if err != nil {
		return "", err
	}
	conditions, err := s.dogs.ListConditions(ctx, userID, dogID)
	if err != nil {
		return "", err
	}
	return dogContextBlock(d, allergies, conditions), nil
}
