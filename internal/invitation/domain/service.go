package domain

import (
	"context"
	"errors"
	"time"
)

// InviteRequest invites one or more users to a project. ExpiresAt is
// optional; when zero the invitation expires DefaultTTL after being sent.
type InviteRequest struct {
	ProjectID  string    `json:"projectId"`
	InviteeIDs []string  `json:"inviteeIds"`
	Message    string    `json:"message"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type Service interface {
	Invite(ctx context.Context, req InviteRequest, actorID string) ([]View, error)
	ListByProject(ctx context.Context, projectID string, actorID string) ([]View, error)
	ListMine(ctx context.Context, actorID string) ([]View, error)
	Accept(ctx context.Context, id string, actorID string) (View, error)
	Reject(ctx context.Context, id string, actorID string) (View, error)
	Stats(ctx context.Context, projectID string, actorID string) (Stats, error)
	SweepExpired(ctx context.Context) (int64, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

var (
	ErrNotFound       = errors.New("invitation not found")
	ErrInvalidID      = errors.New("invalid invitation id format")
	ErrInvalidStatus  = errors.New("invalid invitation status")
	ErrNoInvitees     = errors.New("at least one invitee is required")
	ErrNotInvitee     = errors.New("only the invited user may respond to this invitation")
	ErrNotPending     = errors.New("invitation has already been resolved")
	ErrExpired        = errors.New("invitation has expired")
	ErrAlreadyInvited = errors.New("user already has a pending invitation to this project")
	ErrAlreadyMember  = errors.New("user is already a member of this project")
)
