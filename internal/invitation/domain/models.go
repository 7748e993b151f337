package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusExpired  Status = "EXPIRED"
)

func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	case StatusExpired:
		return StatusExpired, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
}

// DefaultTTL is how long an invitation stays answerable after being sent.
const DefaultTTL = 7 * 24 * time.Hour

// Invitation is a single pending-or-resolved invite of one user to one
// project. Inviting several users at once produces one record per invitee.
type Invitation struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID string        `bson:"project_id" json:"projectId"`
	InviterID string        `bson:"inviter_id" json:"inviterId"`
	InviteeID string        `bson:"invitee_id" json:"inviteeId"`
	Status    Status        `bson:"status" json:"status"`
	Message   string        `bson:"message,omitempty" json:"message,omitempty"`
	SentAt    time.Time     `bson:"sent_at" json:"sentAt"`
	ExpiresAt time.Time     `bson:"expires_at" json:"expiresAt"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Expired reports whether the deadline has passed, regardless of the stored
// status. Records are flipped to EXPIRED lazily.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func (i *Invitation) Stamp(now time.Time) {
	i.CreatedAt = now
	i.UpdatedAt = now
}

func (i *Invitation) Touch(now time.Time) {
	i.UpdatedAt = now
}
