package events

import "context"

type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]Event, error)

	// UpsertBySourceKey inserta o, si ya existe un evento con ese
	// source_key, actualiza fecha/título/estado conservando el ID.
	UpsertBySourceKey(ctx context.Context, e Event) (Event, error)

	// DeleteBySourceKey borra el evento compañero con esa clave.
	// Sin efecto si no existe.
	DeleteBySourceKey(ctx context.Context, sourceKey string) error

	// ListActive devuelve los eventos activos de todos los usuarios
	// (consumido por el scan diario).
	ListActive(ctx context.Context) ([]Event, error)
}
