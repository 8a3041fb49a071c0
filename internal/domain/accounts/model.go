package accounts

import "time"

// User representa una cuenta del sistema.
type User struct {
	ID              string
	Email           string
	NormalizedEmail string
	PasswordHash    string
	DisplayName     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
