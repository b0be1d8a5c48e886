package db

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterBuilder(t *testing.T) {
	filter := NewFilter().
		Eq("email", "alice@example.com").
		Ne("is_deleted_for", "viewer").
		In("provider", []string{"local", "google"}).
		Build()

	require.Equal(t, bson.M{
		"email":          "alice@example.com",
		"is_deleted_for": bson.M{"$ne": "viewer"},
		"provider":       bson.M{"$in": []string{"local", "google"}},
	}, filter)
}

func TestFilterBuilderOr(t *testing.T) {
	filter := NewFilter().
		Or(bson.M{"a": 1}, bson.M{"b": 2}).
		Build()
	require.Equal(t, bson.M{"$or": []bson.M{{"a": 1}, {"b": 2}}}, filter)

	// empty Or adds nothing
	require.Equal(t, bson.M{}, NewFilter().Or().Build())
}

func TestConversationPair(t *testing.T) {
	filter := ConversationPair("sender_id", "receiver_id", "alice", "bob")
	require.Equal(t, bson.M{"$or": []bson.M{
		{"sender_id": "alice", "receiver_id": "bob"},
		{"sender_id": "bob", "receiver_id": "alice"},
	}}, filter)
}
