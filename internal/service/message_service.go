package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/event"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/metrics"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/repo"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/upload"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PresenceChecker answers whether a user currently holds a live
// connection. The answer is a best-effort snapshot.
type PresenceChecker interface {
	IsOnline(userID string) bool
}

// Pusher delivers an event to a user's live connection, dropping it
// silently if the user is offline.
type Pusher interface {
	Push(userID string, name string, payload any) bool
}

// FileAttachment describes an already-uploaded file handed over by the
// upload layer: a public URL, the declared content type, and the
// display name. The upload layer has already enforced the allow-list.
type FileAttachment struct {
	URL         string
	ContentType string
	Name        string
}

// SendInput carries everything a new message may contain. At least one
// of Text and File must be present; both together mean a captioned
// file.
type SendInput struct {
	ReceiverID string
	Text       string
	File       *FileAttachment
	ReplyTo    *model.ReplySnapshot
}

// MessageService drives the per-message lifecycle: create, edit,
// delete (for me / for everyone), reactions, seen state, and the
// real-time notifications each transition emits.
type MessageService interface {
	Send(ctx context.Context, senderID string, in SendInput) (*model.Message, error)
	Edit(ctx context.Context, actingAs, messageID, newText string) (*model.Message, error)
	DeleteForEveryone(ctx context.Context, actingAs, messageID string) (*model.Message, error)
	DeleteForMe(ctx context.Context, callerID, messageID string) error
	RestoreForMe(ctx context.Context, callerID, messageID string) error
	React(ctx context.Context, callerID, messageID, emoji string) (*model.Message, error)
	ListConversation(ctx context.Context, viewerID, counterpartID string) ([]model.Message, error)
	MarkSeen(ctx context.Context, readerID, counterpartID string) error
	ClearChat(ctx context.Context, userID, counterpartID string) error
}

type messageService struct {
	messages repo.MessageRepository
	contacts repo.ContactRepository
	presence PresenceChecker
	pusher   Pusher
	logger   *zap.Logger
}

func NewMessageService(
	messages repo.MessageRepository,
	contacts repo.ContactRepository,
	presence PresenceChecker,
	pusher Pusher,
	logger *zap.Logger,
) MessageService {
	return &messageService{
		messages: messages,
		contacts: contacts,
		presence: presence,
		pusher:   pusher,
		logger:   logger,
	}
}

func (s *messageService) Send(ctx context.Context, senderID string, in SendInput) (*model.Message, error) {
	sender, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad sender id", ErrValidation)
	}
	receiver, err := primitive.ObjectIDFromHex(in.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad receiver id", ErrValidation)
	}

	if in.Text == "" && in.File == nil {
		return nil, fmt.Errorf("%w: message needs text or a file", ErrValidation)
	}

	friends, err := s.contacts.Exists(ctx, sender, receiver)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, ErrNotFriends
	}

	now := time.Now().UTC()
	msg := &model.Message{
		SenderID:   sender,
		ReceiverID: receiver,
		Text:       in.Text,
		ReplyTo:    in.ReplyTo,
		DeletedFor: []primitive.ObjectID{},
		Reactions:  []model.Reaction{},
		SeenBy:     []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if in.File != nil {
		msg.FileURL = in.File.URL
		msg.FileName = in.File.Name
		msg.FileType = upload.Classify(in.File.ContentType)
	}

	// Delivered-immediately approximation: the receiver is marked as
	// having seen the message iff they are online at this instant.
	if s.presence.IsOnline(in.ReceiverID) {
		msg.SeenBy = []primitive.ObjectID{receiver}
	}

	msg, err = s.messages.Insert(ctx, msg)
	if err != nil {
		return nil, err
	}
	metrics.MessagesSentTotal.Inc()

	if !s.pusher.Push(in.ReceiverID, event.EventNewMessage, msg) {
		metrics.PushesDroppedTotal.Inc()
	}
	return msg, nil
}

func (s *messageService) Edit(ctx context.Context, actingAs, messageID, newText string) (*model.Message, error) {
	if newText == "" {
		return nil, fmt.Errorf("%w: new text cannot be empty", ErrValidation)
	}

	msg, err := s.findOwned(ctx, actingAs, messageID)
	if err != nil {
		return nil, err
	}

	updated, err := s.messages.ApplyReturning(ctx, messageID, bson.M{"$set": bson.M{
		"text":       newText,
		"is_edited":  true,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return nil, s.mapRepoErr(err)
	}

	s.pusher.Push(msg.ReceiverID.Hex(), event.EventEditedMessage, updated)
	return updated, nil
}

func (s *messageService) DeleteForEveryone(ctx context.Context, actingAs, messageID string) (*model.Message, error) {
	msg, err := s.findOwned(ctx, actingAs, messageID)
	if err != nil {
		return nil, err
	}

	// Destructive content overwrite. The row stays so ids and ordering
	// remain stable; original text, file and reply snapshot are gone.
	updated, err := s.messages.ApplyReturning(ctx, messageID, bson.M{
		"$set": bson.M{
			"text":       model.DeletedText,
			"is_edited":  false,
			"file_url":   "",
			"file_type":  "",
			"file_name":  "",
			"updated_at": time.Now().UTC(),
		},
		"$unset": bson.M{"reply_to": ""},
	})
	if err != nil {
		return nil, s.mapRepoErr(err)
	}

	s.pusher.Push(msg.ReceiverID.Hex(), event.EventDeletedForEveryone, updated)
	return updated, nil
}

func (s *messageService) DeleteForMe(ctx context.Context, callerID, messageID string) error {
	caller, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrValidation)
	}

	// idempotent: $addToSet makes a second call a no-op, and no event
	// is pushed since only the caller's view changes
	_, err = s.messages.ApplyReturning(ctx, messageID, bson.M{
		"$addToSet": bson.M{"is_deleted_for": caller},
	})
	return s.mapRepoErr(err)
}

func (s *messageService) RestoreForMe(ctx context.Context, callerID, messageID string) error {
	caller, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrValidation)
	}

	_, err = s.messages.ApplyReturning(ctx, messageID, bson.M{
		"$pull": bson.M{"is_deleted_for": caller},
	})
	return s.mapRepoErr(err)
}

func (s *messageService) React(ctx context.Context, callerID, messageID, emoji string) (*model.Message, error) {
	caller, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrValidation)
	}
	if emoji == "" {
		return nil, fmt.Errorf("%w: emoji required", ErrValidation)
	}

	// one reaction per user, last write wins: drop any previous
	// reaction by this user, then append the new one
	_, err = s.messages.ApplyReturning(ctx, messageID, bson.M{
		"$pull": bson.M{"reactions": bson.M{"user_id": caller}},
	})
	if err != nil {
		return nil, s.mapRepoErr(err)
	}

	updated, err := s.messages.ApplyReturning(ctx, messageID, bson.M{
		"$push": bson.M{"reactions": model.Reaction{UserID: caller, Emoji: emoji}},
	})
	if err != nil {
		return nil, s.mapRepoErr(err)
	}
	return updated, nil
}

func (s *messageService) ListConversation(ctx context.Context, viewerID, counterpartID string) ([]model.Message, error) {
	viewer, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrValidation)
	}
	counterpart, err := primitive.ObjectIDFromHex(counterpartID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrValidation)
	}

	return s.messages.ListConversation(ctx, viewer, counterpart, viewer)
}

func (s *messageService) MarkSeen(ctx context.Context, readerID, counterpartID string) error {
	reader, err := primitive.ObjectIDFromHex(readerID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrValidation)
	}
	counterpart, err := primitive.ObjectIDFromHex(counterpartID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrValidation)
	}

	// seen state is pull-only: the sender observes it on their next
	// conversation fetch, no push is emitted
	return s.messages.MarkSeen(ctx, reader, counterpart)
}

func (s *messageService) ClearChat(ctx context.Context, userID, counterpartID string) error {
	user, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrValidation)
	}
	counterpart, err := primitive.ObjectIDFromHex(counterpartID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrValidation)
	}

	matched, err := s.messages.HideAllFor(ctx, user, counterpart)
	if err != nil {
		return err
	}
	if matched == 0 {
		return fmt.Errorf("%w: no messages in conversation", ErrNotFound)
	}
	return nil
}

// findOwned loads a message and enforces that actingAs is its sender.
// Edit and delete-for-everyone are sender-only operations.
func (s *messageService) findOwned(ctx context.Context, actingAs, messageID string) (*model.Message, error) {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, s.mapRepoErr(err)
	}
	if msg.SenderID.Hex() != actingAs {
		return nil, ErrForbidden
	}
	return msg, nil
}

func (s *messageService) mapRepoErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repo.ErrNoDocument) {
		return fmt.Errorf("%w: message not found", ErrNotFound)
	}
	return err
}
