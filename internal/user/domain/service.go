package domain

import (
	"context"
	"errors"

	"github.com/noreyni/webhook-api/pkg/paging"
)

type CreateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// UpdateRequest applies partial-update semantics: nil fields leave the stored
// value unchanged.
type UpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
	Active    *bool   `json:"active"`
}

type Service interface {
	List(ctx context.Context, page paging.Request) ([]ListView, paging.Meta, error)
	FindByID(ctx context.Context, id string) (DetailView, error)
	Create(ctx context.Context, req CreateRequest, actorID string) (DetailView, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string) (DetailView, error)
	Delete(ctx context.Context, id string, actorID string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Stats(ctx context.Context) (Stats, error)
}

var (
	ErrNotFound         = errors.New("user not found")
	ErrInvalidID        = errors.New("invalid user id format")
	ErrEmailTaken       = errors.New("a user already exists with this email")
	ErrInvalidEmail     = errors.New("a valid email is required")
	ErrInvalidFirstName = errors.New("first name is required")
	ErrInvalidLastName  = errors.New("last name is required")
	ErrInvalidPassword  = errors.New("a password of at least 8 characters is required")
	ErrInvalidRole      = errors.New("invalid role")
)
