package vaccinations

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccination) error
	GetByID(ctx context.Context, id string) (Vaccination, error)
	Update(ctx context.Context, v Vaccination) error
	Delete(ctx context.Context, id string) error
	ListByDog(ctx context.Context, dogID string) ([]Vaccination, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Vaccination, error)

	// ListPendingReminder devuelve las vacunas de todos los usuarios con
	// reminder_sent = false y next_due_date presente (consumo del scan).
	ListPendingReminder(ctx context.Context) ([]Vaccination, error)

	// MarkReminderSent fija la bandera (un solo sentido).
	MarkReminderSent(ctx context.Context, id string) error
}
