package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusArchived  Status = "ARCHIVED"
)

func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusActive:
		return StatusActive, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusArchived:
		return StatusArchived, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
}

type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityPublic  Visibility = "PUBLIC"
)

func ParseVisibility(value string) (Visibility, error) {
	switch Visibility(strings.ToUpper(strings.TrimSpace(value))) {
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	case VisibilityPublic:
		return VisibilityPublic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidVisibility, value)
	}
}

type Type string

const (
	TypeSoftware    Type = "SOFTWARE"
	TypeBusiness    Type = "BUSINESS"
	TypeServiceDesk Type = "SERVICE_DESK"
	TypeOperations  Type = "OPERATIONS"
	TypeMarketing   Type = "MARKETING"
	TypeHR          Type = "HR"
	TypeFinance     Type = "FINANCE"
	TypeLegal       Type = "LEGAL"
	TypeOther       Type = "OTHER"
)

func ParseType(value string) (Type, error) {
	switch Type(strings.ToUpper(strings.TrimSpace(value))) {
	case TypeSoftware:
		return TypeSoftware, nil
	case TypeBusiness:
		return TypeBusiness, nil
	case TypeServiceDesk:
		return TypeServiceDesk, nil
	case TypeOperations:
		return TypeOperations, nil
	case TypeMarketing:
		return TypeMarketing, nil
	case TypeHR:
		return TypeHR, nil
	case TypeFinance:
		return TypeFinance, nil
	case TypeLegal:
		return TypeLegal, nil
	case TypeOther:
		return TypeOther, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, value)
	}
}

// Project is the persisted project record. Member and invited-user sets hold
// user ids; membership is unique and insertion order carries no meaning.
type Project struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string        `bson:"name" json:"name"`
	Description    string        `bson:"description,omitempty" json:"description,omitempty"`
	AvatarURL      string        `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	Status         Status        `bson:"status" json:"status"`
	Visibility     Visibility    `bson:"visibility" json:"visibility"`
	Type           Type          `bson:"type" json:"type"`
	OwnerID        string        `bson:"owner_id" json:"ownerId"`
	MemberIDs      []string      `bson:"member_ids" json:"memberIds"`
	InvitedUserIDs []string      `bson:"invited_user_ids" json:"invitedUserIds"`
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updatedAt"`
	CreatedBy      string        `bson:"created_by" json:"createdBy,omitempty"`
	UpdatedBy      string        `bson:"updated_by" json:"updatedBy,omitempty"`
}

func (p *Project) Stamp(actorID string, now time.Time) {
	p.CreatedAt = now
	p.UpdatedAt = now
	p.CreatedBy = actorID
	p.UpdatedBy = actorID
}

func (p *Project) Touch(actorID string, now time.Time) {
	p.UpdatedAt = now
	p.UpdatedBy = actorID
}

func (p *Project) HasMember(userID string) bool {
	return contains(p.MemberIDs, userID)
}

func (p *Project) IsInvited(userID string) bool {
	return contains(p.InvitedUserIDs, userID)
}

func (p *Project) AddInvited(userID string) {
	if !contains(p.InvitedUserIDs, userID) {
		p.InvitedUserIDs = append(p.InvitedUserIDs, userID)
	}
}

func (p *Project) AddMember(userID string) {
	if !contains(p.MemberIDs, userID) {
		p.MemberIDs = append(p.MemberIDs, userID)
	}
}

func (p *Project) RemoveInvited(userID string) {
	p.InvitedUserIDs = remove(p.InvitedUserIDs, userID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
