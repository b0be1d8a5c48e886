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
)

const userOpTimeout = 5 * time.Second

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	ExternalIDExists(ctx context.Context, externalID string) (bool, error)
	FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)
	SetProfile(ctx context.Context, id string, fields bson.M) (*model.User, error)
	AddBlocked(ctx context.Context, id string, target primitive.ObjectID) (*model.User, error)
	RemoveBlocked(ctx context.Context, id string, target primitive.ObjectID) (*model.User, error)
	AddDeletedFor(ctx context.Context, id string, target primitive.ObjectID) (*model.User, error)
	RemoveDeletedFor(ctx context.Context, id string, target primitive.ObjectID) (*model.User, error)
}

type userRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.User]
}

func NewUserRepository(con *mongo.Database, repo *db.Repository[model.User]) UserRepository {
	return &userRepository{
		con:       con,
		mongoRepo: repo,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, userOpTimeout)
	defer cancel()

	result, err := r.mongoRepo.Create(ctx, *user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("create user: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("create user: unexpected inserted id type %T", result.InsertedID)
	}
	return oid, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, userOpTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, userOpTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOne(ctx, db.NewFilter().Eq("email", email).Build())
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *userRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, userOpTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOne(ctx, db.NewFilter().Eq("user_id", externalID).Build())
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *userRepository) ExternalIDExists(ctx context.Context, externalID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, userOpTimeout)
	defer cancel()

	return r.mongoRepo.Exists(ctx, db.NewFilter().Eq("user_id", externalID).Build())
}

func (r *userRepository) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, userOpTimeout)
	defer cancel()

	return r.mongoRepo.FindAll(ctx, db.NewFilter().In("_id", ids).Build())
}

func (r *userRepository) SetProfile(ctx context.Context, id string, fields bson.M) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, userOpTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOneAndUpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *userRepository) AddBlocked(ctx context.Context, id string, target primitive.ObjectID) (*model.User, error) {
	return r.applyArrayOp(ctx, id, bson.M{"$addToSet": bson.M{"blocked_users": target}})
}

func (r *userRepository) RemoveBlocked(ctx context.Context, id string, target primitive.ObjectID) (*model.User, error) {
	return r.applyArrayOp(ctx, id, bson.M{"$pull": bson.M{"blocked_users": target}})
}

func (r *userRepository) AddDeletedFor(ctx context.Context, id string, target primitive.ObjectID) (*model.User, error) {
	return r.applyArrayOp(ctx, id, bson.M{"$addToSet": bson.M{"is_deleted_for": target}})
}

func (r *userRepository) RemoveDeletedFor(ctx context.Context, id string, target primitive.ObjectID) (*model.User, error) {
	return r.applyArrayOp(ctx, id, bson.M{"$pull": bson.M{"is_deleted_for": target}})
}

func (r *userRepository) applyArrayOp(ctx context.Context, id string, update bson.M) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, userOpTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOneAndUpdateByID(ctx, id, update)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}
