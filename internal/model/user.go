package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth providers accepted at signup/login.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents a user document in MongoDB. ExternalID is the
// human-shareable id (e.g. "SGH-15A-456987") used to add contacts;
// the Mongo ObjectID stays internal.
type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	ExternalID   string               `json:"userId" bson:"user_id"`
	Email        string               `json:"email" bson:"email"`
	FullName     string               `json:"fullName" bson:"full_name"`
	About        string               `json:"about" bson:"about"`
	PasswordHash string               `json:"-" bson:"password_hash,omitempty"`
	ProfilePic   string               `json:"profilePic" bson:"profile_pic"`
	BlockedUsers []primitive.ObjectID `json:"blockedUsers" bson:"blocked_users"`
	DeletedFor   []primitive.ObjectID `json:"isDeletedFor" bson:"is_deleted_for"`
	Provider     string               `json:"provider" bson:"provider"`
}

// PublicUser is the field set exposed to other users (sidebar, hidden
// list, add-contact response). Never includes the password hash.
type PublicUser struct {
	ID         primitive.ObjectID `json:"id"`
	ExternalID string             `json:"userId"`
	Email      string             `json:"email"`
	FullName   string             `json:"fullName"`
	About      string             `json:"about"`
	ProfilePic string             `json:"profilePic"`
}

// Public projects a User onto its shareable subset.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		FullName:   u.FullName,
		About:      u.About,
		ProfilePic: u.ProfilePic,
	}
}

// HasBlocked reports whether id is in the user's block list.
func (u *User) HasBlocked(id primitive.ObjectID) bool {
	for _, b := range u.BlockedUsers {
		if b == id {
			return true
		}
	}
	return false
}

// HasDeleted reports whether id is in the user's deleted-for-me list.
func (u *User) HasDeleted(id primitive.ObjectID) bool {
	for _, d := range u.DeletedFor {
		if d == id {
			return true
		}
	}
	return false
}
