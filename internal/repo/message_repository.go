package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/db"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	defaultWriteTimeout = 5 * time.Second
	defaultReadTimeout  = 30 * time.Second

	maxRetries     = 3
	baseRetryDelay = 100 * time.Millisecond
	maxRetryDelay  = 2 * time.Second
)

var ErrInvalidMessage = errors.New("invalid message: message cannot be nil")

type MessageRepository interface {
	Insert(ctx context.Context, msg *model.Message) (*model.Message, error)
	FindByID(ctx context.Context, id string) (*model.Message, error)
	// ApplyReturning runs the update document verbatim against one
	// message and returns the post-update document.
	ApplyReturning(ctx context.Context, id string, update bson.M) (*model.Message, error)
	ListConversation(ctx context.Context, a, b, viewer primitive.ObjectID) ([]model.Message, error)
	MarkSeen(ctx context.Context, reader, counterpart primitive.ObjectID) error
	HideAllFor(ctx context.Context, user, counterpart primitive.ObjectID) (int64, error)
	CountConversation(ctx context.Context, a, b primitive.ObjectID) (int64, error)
}

type messageRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Message]
	logger    *zap.Logger
}

func NewMessageRepository(con *mongo.Database, repo *db.Repository[model.Message], logger *zap.Logger) MessageRepository {
	return &messageRepository{
		con:       con,
		mongoRepo: repo,
		logger:    logger,
	}
}

// -----------------------------------------------------------------------------
// Insert
// -----------------------------------------------------------------------------

func (m *messageRepository) Insert(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if msg == nil {
		return nil, ErrInvalidMessage
	}

	ctx, cancel := m.ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			if err := m.waitForRetry(ctx, attempt); err != nil {
				return nil, err
			}
		}

		result, err := m.mongoRepo.Create(ctx, *msg)
		if err == nil {
			if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
				msg.ID = oid
			}

			m.logger.Info("message inserted",
				zap.String("message_id", msg.ID.Hex()),
				zap.String("sender_id", msg.SenderID.Hex()),
				zap.String("receiver_id", msg.ReceiverID.Hex()),
				zap.Int("attempt", attempt+1),
			)
			return msg, nil
		}

		lastErr = err

		if !m.isRetryableError(err) {
			break
		}

		m.logger.Warn("insert attempt failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxRetries),
		)
	}

	m.logger.Error("failed to insert message after all retries", zap.Error(lastErr))
	return nil, fmt.Errorf("insert message failed: %w", lastErr)
}

// -----------------------------------------------------------------------------
// Lookups and single-message updates
// -----------------------------------------------------------------------------

func (m *messageRepository) FindByID(ctx context.Context, id string) (*model.Message, error) {
	ctx, cancel := m.ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	msg, err := m.mongoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return msg, nil
}

func (m *messageRepository) ApplyReturning(ctx context.Context, id string, update bson.M) (*model.Message, error) {
	ctx, cancel := m.ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	msg, err := m.mongoRepo.FindOneAndUpdateByID(ctx, id, update)
	if err != nil {
		return nil, translate(err)
	}
	return msg, nil
}

// -----------------------------------------------------------------------------
// Conversation-scoped operations
// -----------------------------------------------------------------------------

func (m *messageRepository) ListConversation(ctx context.Context, a, b, viewer primitive.ObjectID) ([]model.Message, error) {
	ctx, cancel := m.ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.ConversationPair("sender_id", "receiver_id", a, b)
	filter["is_deleted_for"] = bson.M{"$ne": viewer}

	sort := bson.D{{Key: "created_at", Value: 1}}
	msgs, err := m.mongoRepo.FindAllSorted(ctx, filter, sort)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	return msgs, nil
}

func (m *messageRepository) MarkSeen(ctx context.Context, reader, counterpart primitive.ObjectID) error {
	ctx, cancel := m.ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.ConversationPair("sender_id", "receiver_id", reader, counterpart)
	filter["seen_by"] = bson.M{"$ne": reader}

	_, err := m.mongoRepo.UpdateManyRaw(ctx, filter, bson.M{"$push": bson.M{"seen_by": reader}})
	if err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}

func (m *messageRepository) HideAllFor(ctx context.Context, user, counterpart primitive.ObjectID) (int64, error) {
	ctx, cancel := m.ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.ConversationPair("sender_id", "receiver_id", user, counterpart)

	result, err := m.mongoRepo.UpdateManyRaw(ctx, filter, bson.M{"$addToSet": bson.M{"is_deleted_for": user}})
	if err != nil {
		return 0, fmt.Errorf("hide conversation: %w", err)
	}
	return result.MatchedCount, nil
}

func (m *messageRepository) CountConversation(ctx context.Context, a, b primitive.ObjectID) (int64, error) {
	ctx, cancel := m.ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return m.mongoRepo.Count(ctx, db.ConversationPair("sender_id", "receiver_id", a, b))
}

// -----------------------------------------------------------------------------
// Private helpers
// -----------------------------------------------------------------------------

func (m *messageRepository) ensureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hadDeadline := ctx.Deadline(); hadDeadline {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (m *messageRepository) waitForRetry(ctx context.Context, attempt int) error {
	delay := time.Duration(1<<uint(attempt)) * baseRetryDelay
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("retry wait cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (m *messageRepository) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	return mongo.IsTimeout(err) || mongo.IsNetworkError(err)
}
