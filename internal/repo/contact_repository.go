package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/db"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const contactOpTimeout = 5 * time.Second

type ContactRepository interface {
	// CreateMutual inserts both directed edges of a contact pair
	// inside a single transaction, so a crash cannot leave a
	// half-created mutual link.
	CreateMutual(ctx context.Context, owner, target primitive.ObjectID) error
	Exists(ctx context.Context, owner, target primitive.ObjectID) (bool, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]model.Contact, error)
}

type contactRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Contact]
	logger    *zap.Logger
}

func NewContactRepository(con *mongo.Database, repo *db.Repository[model.Contact], logger *zap.Logger) ContactRepository {
	return &contactRepository{
		con:       con,
		mongoRepo: repo,
		logger:    logger,
	}
}

func (r *contactRepository) CreateMutual(ctx context.Context, owner, target primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, contactOpTimeout)
	defer cancel()

	session, err := r.con.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	now := time.Now().UTC()
	edges := []model.Contact{
		{Owner: owner, Contact: target, CreatedAt: now},
		{Owner: target, Contact: owner, CreatedAt: now},
	}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.mongoRepo.CreateMany(sc, edges)
	})
	if err != nil {
		r.logger.Error("mutual contact insert failed",
			zap.String("owner", owner.Hex()),
			zap.String("target", target.Hex()),
			zap.Error(err),
		)
		return fmt.Errorf("create mutual contact: %w", err)
	}

	r.logger.Info("mutual contact created",
		zap.String("owner", owner.Hex()),
		zap.String("target", target.Hex()),
	)
	return nil
}

func (r *contactRepository) Exists(ctx context.Context, owner, target primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, contactOpTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("owner", owner).Eq("contact", target).Build()
	return r.mongoRepo.Exists(ctx, filter)
}

func (r *contactRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]model.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, contactOpTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("owner", owner).Build()
	sort := bson.D{{Key: "created_at", Value: -1}}
	return r.mongoRepo.FindAllSorted(ctx, filter, sort)
}
