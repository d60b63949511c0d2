package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	Bio          *string   `json:"bio"`
	ProfileImage *string   `json:"profile_image"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Patch carries the base account fields an ingestion may overwrite. Nil means untouched.
type Patch struct {
	Name         *string
	Bio          *string
	ProfileImage *string
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Bio == nil && p.ProfileImage == nil
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
