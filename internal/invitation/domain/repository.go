package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Repository interface {
	Insert(ctx context.Context, invitation *Invitation) error
	FindByID(ctx context.Context, id bson.ObjectID) (*Invitation, error)
	FindByProject(ctx context.Context, projectID string) ([]Invitation, error)
	FindByInvitee(ctx context.Context, inviteeID string) ([]Invitation, error)
	// HasPending reports whether a PENDING invitation for (project, invitee)
	// exists whose deadline is still ahead of now. Rows past their deadline
	// do not count even before the sweep flips them to EXPIRED.
	HasPending(ctx context.Context, projectID, inviteeID string, now time.Time) (bool, error)
	Update(ctx context.Context, invitation *Invitation) error
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
	// MarkExpired flips every PENDING invitation whose deadline is before
	// now to EXPIRED and returns how many were updated.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
	// DeleteExpired removes EXPIRED records outright.
	DeleteExpired(ctx context.Context) (int64, error)
}
