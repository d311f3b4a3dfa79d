package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an API account. Role is either "user" or "admin"; admins may mutate
// the catalog, regular users may only read it.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
