package repo

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoDocument is returned when a lookup matches nothing. Services
// translate it into their own not-found error.
var ErrNoDocument = errors.New("document not found")

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocument
	}
	return err
}
