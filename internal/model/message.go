package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment classifications, derived from the declared content type.
const (
	FileTypeImage    = "image"
	FileTypeAudio    = "audio"
	FileTypeDocument = "document"
)

// DeletedText replaces the body of a message deleted for everyone. The
// row survives so ids and ordering stay stable; the content does not.
const DeletedText = "🛇 This message was deleted"

// Message is a direct message between two users. A message belongs to
// exactly one conversation, identified by the unordered {sender,
// receiver} pair.
type Message struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	SenderID   primitive.ObjectID   `json:"senderId" bson:"sender_id"`
	ReceiverID primitive.ObjectID   `json:"receiverId" bson:"receiver_id"`
	Text       string               `json:"text" bson:"text"`
	FileName   string               `json:"fileName" bson:"file_name"`
	FileURL    string               `json:"fileUrl" bson:"file_url"`
	FileType   string               `json:"fileType" bson:"file_type"`
	IsEdited   bool                 `json:"isEdited" bson:"is_edited"`
	DeletedFor []primitive.ObjectID `json:"isDeletedFor" bson:"is_deleted_for"`
	ReplyTo    *ReplySnapshot       `json:"replyTo" bson:"reply_to,omitempty"`
	Reactions  []Reaction           `json:"reactions" bson:"reactions"`
	SeenBy     []primitive.ObjectID `json:"seenBy" bson:"seen_by"`
	CreatedAt  time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updated_at"`
}

// ReplySnapshot is a copy of the quoted message's content at reply
// time, not a live reference; later edits or deletes of the original
// do not rewrite it.
type ReplySnapshot struct {
	Text     string `json:"text" bson:"text"`
	FileURL  string `json:"fileUrl" bson:"file_url"`
	FileType string `json:"fileType" bson:"file_type"`
	FileName string `json:"fileName" bson:"file_name"`
}

// Reaction is one user's emoji on a message. A user has at most one
// reaction per message; re-reacting overwrites the emoji.
type Reaction struct {
	UserID primitive.ObjectID `json:"user" bson:"user_id"`
	Emoji  string             `json:"emoji" bson:"emoji"`
}

// DeletedForViewer reports whether the viewer has hidden this message.
func (m *Message) DeletedForViewer(viewer primitive.ObjectID) bool {
	for _, id := range m.DeletedFor {
		if id == viewer {
			return true
		}
	}
	return false
}

// SeenByUser reports whether the user appears in the seen set.
func (m *Message) SeenByUser(user primitive.ObjectID) bool {
	for _, id := range m.SeenBy {
		if id == user {
			return true
		}
	}
	return false
}
