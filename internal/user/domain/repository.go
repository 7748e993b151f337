package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Repository interface {
	Insert(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int64) ([]User, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcluding(ctx context.Context, email string, excludeID bson.ObjectID) (bool, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
}
