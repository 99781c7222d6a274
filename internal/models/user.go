package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleParticipant = "participant"
	RoleAdmin       = "admin"
)

// User represents an authenticated identity and its role. Participants are
// created on first login; admins are seeded out of band.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role" json:"role"`
	// PasswordHash is set only for admin accounts (bcrypt).
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
