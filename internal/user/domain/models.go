package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// ParseRole parses a role token, case-insensitively.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, value)
	}
}

// User is the persisted account record. The password field holds a bcrypt
// hash and is never serialized.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string        `bson:"first_name" json:"firstName"`
	LastName  string        `bson:"last_name" json:"lastName"`
	Email     string        `bson:"email" json:"email"`
	Password  string        `bson:"password" json:"-"`
	Role      Role          `bson:"role" json:"role"`
	Active    bool          `bson:"active" json:"active"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
	CreatedBy string        `bson:"created_by" json:"createdBy,omitempty"`
	UpdatedBy string        `bson:"updated_by" json:"updatedBy,omitempty"`
}

// Stamp sets the audit fields for a new record.
func (u *User) Stamp(actorID string, now time.Time) {
	u.CreatedAt = now
	u.UpdatedAt = now
	u.CreatedBy = actorID
	u.UpdatedBy = actorID
}

// Touch refreshes the audit fields on mutation.
func (u *User) Touch(actorID string, now time.Time) {
	u.UpdatedAt = now
	u.UpdatedBy = actorID
}
