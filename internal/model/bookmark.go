package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Bookmark represents a saved link owned by a single user. UserID is set at
// creation and never changes afterwards.
type Bookmark struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	UserID      bson.ObjectID `bson:"user_id"`
	Title       string        `bson:"title"`
	Description *string       `bson:"description,omitempty"`
	Link        string        `bson:"link"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
