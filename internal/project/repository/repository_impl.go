package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/noreyni/webhook-api/internal/project/domain"
	"github.com/noreyni/webhook-api/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// sortFields maps API sort keys to document field names. Unknown keys fall
// back to sorting by name.
var sortFields = map[string]string{
	"name":       "name",
	"status":     "status",
	"visibility": "visibility",
	"type":       "type",
	"ownerId":    "owner_id",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// searchFilterQuery builds a conjunctive query from the filter. Name matching
// is a case-sensitive substring match with regex metacharacters escaped, so
// user input can never change the shape of the query.
func searchFilterQuery(f domain.SearchFilter) bson.D {
	query := bson.D{}
	if name := strings.TrimSpace(f.Name); name != "" {
		query = append(query, bson.E{Key: "name", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(name)},
		}})
	}
	if f.Status != nil {
		query = append(query, bson.E{Key: "status", Value: *f.Status})
	}
	if f.Visibility != nil {
		query = append(query, bson.E{Key: "visibility", Value: *f.Visibility})
	}
	if f.Type != nil {
		query = append(query, bson.E{Key: "type", Value: *f.Type})
	}
	if owner := strings.TrimSpace(f.OwnerID); owner != "" {
		query = append(query, bson.E{Key: "owner_id", Value: owner})
	}
	return query
}

func searchSort(sortBy, direction string) bson.D {
	field, ok := sortFields[sortBy]
	if !ok {
		field = "name"
	}
	order := 1
	if strings.EqualFold(direction, "desc") {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

// accessibleQuery matches projects the user owns, is a member of, or that
// are publicly visible.
func accessibleQuery(userID string) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "owner_id", Value: userID}},
		bson.D{{Key: "member_ids", Value: userID}},
		bson.D{{Key: "visibility", Value: domain.VisibilityPublic}},
	}}}
}

type repo struct {
	col *mongo.Collection
}

func Provide(db *mongo.Database) domain.Repository {
	return &repo{col: db.Collection(store.CollectionProjects)}
}

func (r *repo) Insert(ctx context.Context, project *domain.Project) error {
	res, err := r.col.InsertOne(ctx, project)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrNameTaken
		}
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		project.ID = id
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, id bson.ObjectID) (*domain.Project, error) {
	var project domain.Project
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *repo) Search(ctx context.Context, filter domain.SearchFilter, opts domain.SearchOptions) ([]domain.Project, error) {
	findOpts := options.Find().
		SetSkip(int64(opts.Page) * int64(opts.Size)).
		SetLimit(int64(opts.Size)).
		SetSort(searchSort(opts.SortBy, opts.SortDirection))

	cursor, err := r.col.Find(ctx, searchFilterQuery(filter), findOpts)
	if err != nil {
		return nil, err
	}
	var projects []domain.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repo) CountSearch(ctx context.Context, filter domain.SearchFilter) (int64, error) {
	return r.col.CountDocuments(ctx, searchFilterQuery(filter))
}

func (r *repo) FindByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return r.findAll(ctx, bson.D{{Key: "owner_id", Value: ownerID}}, nil)
}

func (r *repo) FindAccessible(ctx context.Context, userID string) ([]domain.Project, error) {
	return r.findAll(ctx, accessibleQuery(userID), nil)
}

func (r *repo) FindRecentByOwner(ctx context.Context, ownerID string, limit int64) ([]domain.Project, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return r.findAll(ctx, bson.D{{Key: "owner_id", Value: ownerID}}, opts)
}

func (r *repo) ExistsByName(ctx context.Context, name string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) ExistsByNameExcluding(ctx context.Context, name string, excludeID bson.ObjectID) (bool, error) {
	filter := bson.D{
		{Key: "name", Value: name},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: excludeID}}},
	}
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// StatsByOwner loads the owner's projects and counts them in memory. Cost is
// linear in projects owned; fine at this scale, no caching.
func (r *repo) StatsByOwner(ctx context.Context, ownerID string) (domain.Stats, error) {
	projects, err := r.FindByOwner(ctx, ownerID)
	if err != nil {
		return domain.Stats{}, err
	}
	return foldStats(projects), nil
}

// foldStats counts per status. Archived projects count toward the total but
// have no dedicated bucket.
func foldStats(projects []domain.Project) domain.Stats {
	var stats domain.Stats
	for _, p := range projects {
		stats.TotalProjects++
		switch p.Status {
		case domain.StatusActive:
			stats.ActiveProjects++
		case domain.StatusDraft:
			stats.DraftProjects++
		case domain.StatusCompleted:
			stats.CompletedProjects++
		}
	}
	return stats
}

func (r *repo) Update(ctx context.Context, project *domain.Project) error {
	_, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: project.ID}}, project)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrNameTaken
	}
	return err
}

func (r *repo) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *repo) findAll(ctx context.Context, filter bson.D, opts *options.FindOptionsBuilder) ([]domain.Project, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.col.Find(ctx, filter, opts)
	} else {
		cursor, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	var projects []domain.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
