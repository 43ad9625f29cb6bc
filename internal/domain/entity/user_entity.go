package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password field and are stripped
// before a user ever reaches a response.
type User struct {
	ID        string    `bson:"_id,omitempty"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password,omitempty"`
	Name      string    `bson:"name"`
	IsAdmin   bool      `bson:"isAdmin"`
	AvatarURL string    `bson:"avatarUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
