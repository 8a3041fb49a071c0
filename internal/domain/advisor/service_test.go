package advisor_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	mem "github.com/RafaelMurad/PawCare/internal/adapters/storage/memory"
	"github.com/RafaelMurad/PawCare/internal/domain/advisor"
	"github.com/RafaelMurad/PawCare/internal/domain/dogs"
	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/food"
)

type fakeProvider struct {
	name       string
	answer     advisor.Answer
	err        error
	lastPrompt string
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Ask(_ context.Context, prompt string) (advisor.Answer, error) {
	p.lastPrompt = prompt
	if p.err != nil {
		return advisor.Answer{}, p.err
	}
	return p.answer, nil
}

type fakeDogContext struct {
	dog dogs.Dog
}

func (f *fakeDogContext) GetOwned(_ context.Context, _, _ string) (dogs.Dog, error) {
	return f.dog, nil
}

func (f *fakeDogContext) ListAllergies(_ context.Context, _, _ string) ([]dogs.Allergy, error) {
	return []dogs.Allergy{{Allergen: "chicken"}}, nil
}

func (f *fakeDogContext) ListConditions(_ context.Context, _, _ string) ([]dogs.Condition, error) {
	return nil, nil
}

func newService(t *testing.T, registry *advisor.Registry) (*advisor.Service, advisor.QueryLogRepository) {
	t.Helper()
	store := mem.NewStore()
	foodSvc := food.NewService(mem.NewFoodRepo(store))
	queries := mem.NewQueryLogRepo(store)
	svc := advisor.NewService(
		registry,
		foodSvc,
		&fakeDogContext{dog: dogs.Dog{ID: "dog-1", Name: "Rocky", Breed: "beagle"}},
		queries,
		zerolog.Nop(),
	)
	return svc, queries
}

func TestRegistrySelect(t *testing.T) {
	first := &fakeProvider{name: "openai"}
	second := &fakeProvider{name: "anthropic"}

	t.Run("empty registry", func(t *testing.T) {
		r := advisor.NewRegistry("")
		if _, err := r.Select(""); !errors.Is(err, errs.ErrNoProvider) {
			t.Fatalf("expected ErrNoProvider, got %v", err)
		}
	})

	t.Run("explicit name wins", func(t *testing.T) {
		r := advisor.NewRegistry("openai")
		r.Register(first)
		r.Register(second)
		p, err := r.Select("Anthropic")
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if p.Name() != "anthropic" {
			t.Fatalf("selected %s, want anthropic", p.Name())
		}
	})

	t.Run("unknown explicit name is caller error", func(t *testing.T) {
		r := advisor.NewRegistry("")
		r.Register(first)
		if _, err := r.Select("gemini"); !errors.Is(err, errs.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("default beats registration order", func(t *testing.T) {
		r := advisor.NewRegistry("anthropic")
		r.Register(first)
		r.Register(second)
		p, err := r.Select("")
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if p.Name() != "anthropic" {
			t.Fatalf("selected %s, want anthropic", p.Name())
		}
	})

	t.Run("falls back to first registered", func(t *testing.T) {
		r := advisor.NewRegistry("missing")
		r.Register(first)
		r.Register(second)
		p, err := r.Select("")
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if p.Name() != "openai" {
			t.Fatalf("selected %s, want openai", p.Name())
		}
	})
}

func TestAskInjectsFoodContext(t *testing.T) {
	p := &fakeProvider{name: "fake", answer: advisor.Answer{Text: "No, chocolate is toxic [1].", Model: "fake-1"}}
	registry := advisor.NewRegistry("")
	registry.Register(p)
	svc, _ := newService(t, registry)

	resp, err := svc.Ask(context.Background(), "user-1", advisor.AskInput{
		Question: "can dogs eat chocolate?",
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	if !strings.Contains(p.lastPrompt, "Known food safety facts") {
		t.Fatalf("prompt missing food context:\n%s", p.lastPrompt)
	}
	if !strings.Contains(p.lastPrompt, "Chocolate") {
		t.Fatalf("prompt missing chocolate entry:\n%s", p.lastPrompt)
	}
	if !strings.Contains(p.lastPrompt, "Question: can dogs eat chocolate?") {
		t.Fatalf("prompt missing question:\n%s", p.lastPrompt)
	}

	// La respuesta cita [1]: las fuentes se filtran a esa entrada.
	if len(resp.Sources) != 1 {
		t.Fatalf("sources = %d, want 1", len(resp.Sources))
	}
	if resp.Sources[0].Name != "Chocolate" || resp.Sources[0].Safety != "toxic" {
		t.Fatalf("unexpected source %+v", resp.Sources[0])
	}
	if resp.Provider != "fake" || resp.Model != "fake-1" {
		t.Fatalf("unexpected provenance %q/%q", resp.Provider, resp.Model)
	}
}

func TestAskNonFoodQuestionSkipsContext(t *testing.T) {
	p := &fakeProvider{name: "fake", answer: advisor.Answer{Text: "Twice a day."}}
	registry := advisor.NewRegistry("")
	registry.Register(p)
	svc, _ := newService(t, registry)

	resp, err := svc.Ask(context.Background(), "user-1", advisor.AskInput{
		Question: "how often should I walk my puppy?",
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if strings.Contains(p.lastPrompt, "Known food safety facts") {
		t.Fatalf("non-food question got food context:\n%s", p.lastPrompt)
	}
	if len(resp.Sources) != 0 {
		t.Fatalf("sources = %d, want 0", len(resp.Sources))
	}
}

func TestAskUncitedAnswerKeepsAllSources(t *testing.T) {
	p := &fakeProvider{name: "fake", answer: advisor.Answer{Text: "Chocolate is bad for dogs."}}
	registry := advisor.NewRegistry("")
	registry.Register(p)
	svc, _ := newService(t, registry)

	resp, err := svc.Ask(context.Background(), "user-1", advisor.AskInput{
		Question: "is chocolate safe for dogs?",
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if len(resp.Sources) == 0 {
		t.Fatalf("uncited answer should keep the injected sources")
	}
}

func TestAskWithDogInjectsProfile(t *testing.T) {
	p := &fakeProvider{name: "fake", answer: advisor.Answer{Text: "ok"}}
	registry := advisor.NewRegistry("")
	registry.Register(p)
	svc, _ := newService(t, registry)

	if _, err := svc.Ask(context.Background(), "user-1", advisor.AskInput{
		Question: "how much exercise does he need?",
		DogID:    "dog-1",
	}); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(p.lastPrompt, "Name: Rocky") {
		t.Fatalf("prompt missing dog profile:\n%s", p.lastPrompt)
	}
	if !strings.Contains(p.lastPrompt, "Known allergies: chicken") {
		t.Fatalf("prompt missing allergies:\n%s", p.lastPrompt)
	}
}

func TestAskValidationAndFailures(t *testing.T) {
	t.Run("empty question", func(t *testing.T) {
		registry := advisor.NewRegistry("")
		registry.Register(&fakeProvider{name: "fake"})
		svc, _ := newService(t, registry)
		if _, err := svc.Ask(context.Background(), "user-1", advisor.AskInput{Question: "   "}); !errors.Is(err, errs.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("provider failure maps to upstream", func(t *testing.T) {
		registry := advisor.NewRegistry("")
		registry.Register(&fakeProvider{name: "fake", err: errors.New("boom")})
		svc, queries := newService(t, registry)
		if _, err := svc.Ask(context.Background(), "user-1", advisor.AskInput{Question: "hello there"}); !errors.Is(err, errs.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
		logs, err := queries.ListByUser(context.Background(), "user-1", 10)
		if err != nil {
			t.Fatalf("list logs: %v", err)
		}
		if len(logs) != 0 {
			t.Fatalf("failed call should not be logged, got %d entries", len(logs))
		}
	})
}

func TestAskAppendsQueryLog(t *testing.T) {
	p := &fakeProvider{name: "fake", answer: advisor.Answer{Text: "yes", Model: "fake-1"}}
	registry := advisor.NewRegistry("")
	registry.Register(p)
	svc, _ := newService(t, registry)

	if _, err := svc.Ask(context.Background(), "user-1", advisor.AskInput{Question: "first question here"}); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if _, err := svc.FoodCheck(context.Background(), "user-1", "grapes", ""); err != nil {
		t.Fatalf("food check: %v", err)
	}

	history, err := svc.History(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d entries, want 2", len(history))
	}
	// Más reciente primero.
	if history[0].Kind != "food_check" || history[1].Kind != "ask" {
		t.Fatalf("unexpected order: %s, %s", history[0].Kind, history[1].Kind)
	}
	if history[0].Question != "grapes" {
		t.Fatalf("question = %q, want grapes", history[0].Question)
	}

	// El historial es por usuario.
	other, err := svc.History(context.Background(), "user-2", 0)
	if err != nil {
		t.Fatalf("history other user: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("other user history = %d, want 0", len(other))
	}
}

func TestFoodCheckPromptIncludesVerdictRequest(t *testing.T) {
	p := &fakeProvider{name: "fake", answer: advisor.Answer{Text: "Toxic, never [1]."}}
	registry := advisor.NewRegistry("")
	registry.Register(p)
	svc, _ := newService(t, registry)

	resp, err := svc.FoodCheck(context.Background(), "user-1", "xylitol", "")
	if err != nil {
		t.Fatalf("food check: %v", err)
	}
	if !strings.Contains(p.lastPrompt, "can dogs eat xylitol?") {
		t.Fatalf("prompt missing verdict question:\n%s", p.lastPrompt)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Safety != "dangerous" {
		t.Fatalf("unexpected sources %+v", resp.Sources)
	}
}

func TestBreedAdviceUsesProfileBreed(t *testing.T) {
	p := &fakeProvider{name: "fake", answer: advisor.Answer{Text: "ok"}}
	registry := advisor.NewRegistry("")
	registry.Register(p)
	svc, _ := newService(t, registry)

	if _, err := svc.BreedAdvice(context.Background(), "user-1", "dog-1", ""); err != nil {
		t.Fatalf("breed advice: %v", err)
	}
	if !strings.Contains(p.lastPrompt, "caring for a beagle") {
		t.Fatalf("prompt missing breed:\n%s", p.lastPrompt)
	}
}
