package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
)

// Answer es la respuesta cruda de un proveedor de lenguaje.
type Answer struct {
	Text  string
	Model string
}

// Provider es un backend de lenguaje intercambiable.
type Provider interface {
	Name() string
	Ask(ctx context.Context, prompt string) (Answer, error)
}

// Registry mantiene los proveedores registrados en orden de registro.
type Registry struct {
	providers   []Provider
	defaultName string
}

func NewRegistry(defaultName string) *Registry {
	return &Registry{defaultName: strings.ToLower(strings.TrimSpace(defaultName))}
}

func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// Names devuelve los nombres registrados en orden.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p.Name())
	}
	return out
}

func (r *Registry) DefaultName() string { return r.defaultName }

// Select resuelve el proveedor a usar: el pedido explícito, si no el
// configurado por defecto, si no el primero registrado. Un nombre
// explícito desconocido es error del caller; sin proveedores es
// ErrNoProvider.
func (r *Registry) Select(name string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" {
		if p := r.find(name); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("%w: unknown provider %q", errs.ErrInvalidInput, name)
	}
	if r.defaultName != "" {
		if p := r.find(r.defaultName); p != nil {
			return p, nil
		}
	}
	if len(r.providers) > 0 {
		return r.providers[0], nil
	}
	return nil, errs.ErrNoProvider
}

func (r *Registry) find(name string) Provider {
	for _, p := range r.providers {
		if strings.ToLower(p.Name()) == name {
			return p
		}
	}
	return nil
}
