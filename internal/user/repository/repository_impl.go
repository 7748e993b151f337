package repository

import (
	"context"
	"errors"

	"github.com/noreyni/webhook-api/internal/store"
	"github.com/noreyni/webhook-api/internal/user/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type repo struct {
	col *mongo.Collection
}

func Provide(db *mongo.Database) domain.Repository {
	return &repo{col: db.Collection(store.CollectionUsers)}
}

func (r *repo) Insert(ctx context.Context, user *domain.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, offset, limit int64) ([]domain.User, error) {
	opts := options.Find().
		SetSkip(offset).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.D{})
}

func (r *repo) CountActive(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.D{{Key: "active", Value: true}})
}

func (r *repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) ExistsByEmailExcluding(ctx context.Context, email string, excludeID bson.ObjectID) (bool, error) {
	filter := bson.D{
		{Key: "email", Value: email},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: excludeID}}},
	}
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Update(ctx context.Context, user *domain.User) error {
	_, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrEmailTaken
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
