package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SearchFilter is the typed predicate for project search. Nil or blank
// criteria are omitted from the query entirely: an absent filter matches
// everything, not "field is empty".
type SearchFilter struct {
	Name       string
	Status     *Status
	Visibility *Visibility
	Type       *Type
	OwnerID    string
}

// SearchOptions carries sorting and offset pagination. Page is 0-based here.
type SearchOptions struct {
	Page          int
	Size          int
	SortBy        string
	SortDirection string
}

type Repository interface {
	Insert(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id bson.ObjectID) (*Project, error)
	Search(ctx context.Context, filter SearchFilter, opts SearchOptions) ([]Project, error)
	CountSearch(ctx context.Context, filter SearchFilter) (int64, error)
	FindByOwner(ctx context.Context, ownerID string) ([]Project, error)
	FindAccessible(ctx context.Context, userID string) ([]Project, error)
	// FindRecentByOwner returns the owner's newest projects, created_at
	// descending, capped at limit.
	FindRecentByOwner(ctx context.Context, ownerID string, limit int64) ([]Project, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByNameExcluding(ctx context.Context, name string, excludeID bson.ObjectID) (bool, error)
	StatsByOwner(ctx context.Context, ownerID string) (Stats, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
}
