package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account holder. PasswordHash and RefreshTokenHash are
// argon2 encoded and never leave the service; a nil RefreshTokenHash means
// the user is logged out.
type User struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	FirstName        string        `bson:"first_name"`
	LastName         string        `bson:"last_name"`
	Email            string        `bson:"email"`
	PasswordHash     string        `bson:"password_hash"`
	RefreshTokenHash *string       `bson:"refresh_token_hash"`
	CreatedAt        time.Time     `bson:"created_at"`
	UpdatedAt        time.Time     `bson:"updated_at"`
}
