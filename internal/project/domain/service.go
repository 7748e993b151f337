package domain

import (
	"context"
	"errors"

	"github.com/noreyni/webhook-api/pkg/paging"
)

type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Visibility  string `json:"visibility"`
	AvatarURL   string `json:"avatarUrl"`
}

// UpdateRequest applies partial-update semantics: nil fields leave the stored
// value unchanged.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Status      *string `json:"status"`
	Visibility  *string `json:"visibility"`
	AvatarURL   *string `json:"avatarUrl"`
}

// SearchRequest carries the raw search criteria from the API boundary.
// Filters are conjunctive; blank values are omitted from the predicate.
type SearchRequest struct {
	Name          string
	Status        string
	Visibility    string
	Type          string
	OwnerID       string
	Page          paging.Request
	SortBy        string
	SortDirection string
}

type Service interface {
	Search(ctx context.Context, req SearchRequest) ([]ListView, paging.Meta, error)
	FindByID(ctx context.Context, id string) (DetailView, error)
	Create(ctx context.Context, req CreateRequest, actorID string) (DetailView, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string) (DetailView, error)
	ChangeStatus(ctx context.Context, id string, status string, actorID string) (DetailView, error)
	Delete(ctx context.Context, id string, actorID string) error
	FindByOwner(ctx context.Context, ownerID string) ([]ListView, error)
	FindAccessible(ctx context.Context, userID string) ([]ListView, error)
	FindRecentByOwner(ctx context.Context, ownerID string, limit int) ([]ListView, error)
	Stats(ctx context.Context, ownerID string) (Stats, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

var (
	ErrNotFound          = errors.New("project not found")
	ErrInvalidID         = errors.New("invalid project id format")
	ErrNameTaken         = errors.New("a project already exists with this name")
	ErrNotOwner          = errors.New("only the project owner may perform this operation")
	ErrInvalidName       = errors.New("project name is required")
	ErrInvalidStatus     = errors.New("invalid project status")
	ErrInvalidVisibility = errors.New("invalid project visibility")
	ErrInvalidType       = errors.New("invalid project type")
)
