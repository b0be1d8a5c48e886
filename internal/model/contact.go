package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a directed edge in the contact graph: Owner may message
// Contact. Adding a contact always creates both directions, so the
// relation stays symmetric; only the sender→receiver direction is
// checked when authorizing a message.
type Contact struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Owner     primitive.ObjectID `json:"user" bson:"owner"`
	Contact   primitive.ObjectID `json:"contact" bson:"contact"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}
