package advisor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/RafaelMurad/PawCare/internal/domain/dogs"
	"github.com/RafaelMurad/PawCare/internal/domain/food"
	"github.com/RafaelMurad/PawCare/internal/domain/schedule"
)

// foodTriggers dispara la inyección de la tabla de alimentos cuando la
// pregunta parece tratar de comida.
var foodTriggers = []string{
	"food", "eat", "feed", "safe", "toxic",
	"can dogs", "give my dog", "snack", "treat",
}

func looksLikeFoodQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, t := range foodTriggers {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// Source referencia una entrada de la tabla de alimentos citada en la
// respuesta.
type Source struct {
	Ref    int    `json:"ref"`
	Name   string `json:"name"`
	Safety string `json:"safety"`
}

// foodContextBlock arma el bloque numerado que se antepone al prompt.
// Devuelve el bloque y las fuentes en el mismo orden, para resolver las
// citas [n] de la respuesta.
func foodContextBlock(items []food.FoodItem) (string, []Source) {
	if len(items) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString("Known food safety facts for dogs:\n")
	sources := make([]Source, 0, len(items))
	for i, item := range items {
		ref := i + 1
		b.WriteString(fmt.Sprintf("[%d] %s: %s.", ref, item.Name, item.Safety))
		if item.Description != "" {
			b.WriteString(" " + item.Description)
		}
		if item.Symptoms != "" {
			b.WriteString(" Symptoms: " + item.Symptoms)
		}
		b.WriteString("\n")
		sources = append(sources, Source{Ref: ref, Name: item.Name, Safety: string(item.Safety)})
	}
	b.WriteString("Cite these facts as [n] when you rely on them.\n\n")
	return b.String(), sources
}

// dogContextBlock describe el perro para que la respuesta sea específica.
func dogContextBlock(d dogs.Dog, allergies []dogs.Allergy, conditions []dogs.Condition) string {
	var b strings.Builder
	b.WriteString("About the dog:\n")
	b.WriteString("- Name: " + d.Name + "\n")
	if d.Breed != "" {
		b.WriteString("- Breed: " + d.Breed + "\n")
	}
	if d.BirthDate != nil {
		b.WriteString("- Born: " + schedule.FormatDate(*d.BirthDate) + "\n")
	}
	if d.CurrentWeightKg != nil {
		b.WriteString(fmt.Sprintf("- Weight: %.1f kg\n", *d.CurrentWeightKg))
	}
	if len(allergies) > 0 {
		names := make([]string, 0, len(allergies))
		for _, a := range allergies {
			names = append(names, a.Allergen)
		}
		b.WriteString("- Known allergies: " + strings.Join(names, ", ") + "\n")
	}
	if len(conditions) > 0 {
		names := make([]string, 0, len(conditions))
		for _, c := range conditions {
			names = append(names, c.Name)
		}
		b.WriteString("- Medical conditions: " + strings.Join(names, ", ") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

var citationRe = regexp.MustCompile(`\[(\d+)\]`)

// citedSources filtra las fuentes realmente citadas como [n] en el texto.
// Si la respuesta no cita ninguna se devuelven todas, para no esconder de
// dónde salió el contexto.
func citedSources(text string, sources []Source) []Source {
	if len(sources) == 0 {
		return nil
	}
	cited := make(map[int]bool)
	for _, m := range citationRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			cited[n] = true
		}
	}
	if len(cited) == 0 {
		return sources
	}
	out := make([]Source, 0, len(cited))
	for _, s := range sources {
		if cited[s.Ref] {
			out = append(out, s)
		}
	}
	return out
}
