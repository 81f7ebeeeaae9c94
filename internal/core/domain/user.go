package domain

import (
	"time"

	"github.com/google/uuid"
)

// User models an authenticated actor in the system. Roles are persisted
// alongside the record and snapshotted into session tokens at issuance.
type User struct {
	ID           uuid.UUID `json:"id" bson:"id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Roles        []Role    `json:"roles" bson:"roles"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// HasRole reports whether the user holds exactly the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
