package repository

import (
	"context"
	"errors"
	"time"

	"github.com/noreyni/webhook-api/internal/invitation/domain"
	"github.com/noreyni/webhook-api/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type repo struct {
	col *mongo.Collection
}

func Provide(db *mongo.Database) domain.Repository {
	return &repo{col: db.Collection(store.CollectionInvitations)}
}

func (r *repo) Insert(ctx context.Context, invitation *domain.Invitation) error {
	res, err := r.col.InsertOne(ctx, invitation)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		invitation.ID = id
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, id bson.ObjectID) (*domain.Invitation, error) {
	var invitation domain.Invitation
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&invitation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *repo) FindByProject(ctx context.Context, projectID string) ([]domain.Invitation, error) {
	return r.findAll(ctx, bson.D{{Key: "project_id", Value: projectID}})
}

func (r *repo) FindByInvitee(ctx context.Context, inviteeID string) ([]domain.Invitation, error) {
	return r.findAll(ctx, bson.D{{Key: "invitee_id", Value: inviteeID}})
}

func (r *repo) HasPending(ctx context.Context, projectID, inviteeID string, now time.Time) (bool, error) {
	filter := bson.D{
		{Key: "project_id", Value: projectID},
		{Key: "invitee_id", Value: inviteeID},
		{Key: "status", Value: domain.StatusPending},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: now}}},
	}
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Update(ctx context.Context, invitation *domain.Invitation) error {
	_, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: invitation.ID}}, invitation)
	return err
}

func (r *repo) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.D{{Key: "project_id", Value: projectID}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *repo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.D{
		{Key: "status", Value: domain.StatusPending},
		{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: now}}},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: domain.StatusExpired},
		{Key: "updated_at", Value: now},
	}}}
	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *repo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.D{{Key: "status", Value: domain.StatusExpired}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *repo) findAll(ctx context.Context, filter bson.D) ([]domain.Invitation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var invitations []domain.Invitation
	if err := cursor.All(ctx, &invitations); err != nil {
		return nil, err
	}
	return invitations, nil
}
