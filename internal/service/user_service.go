package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService covers profile updates and the per-viewer user state:
// block lists and the reversible delete-for-me hiding that mirrors the
// message-level one.
type UserService interface {
	Get(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id, fullName, about, profilePic string) (*model.User, error)
	Block(ctx context.Context, callerID, targetID string) (*model.User, error)
	Unblock(ctx context.Context, callerID, targetID string) (*model.User, error)
	DeleteForMe(ctx context.Context, callerID, targetID string) error
	Restore(ctx context.Context, callerID, targetID string) error
	// HiddenUsers returns the union of blocked and deleted-for-me
	// users, for the restore sidebar.
	HiddenUsers(ctx context.Context, callerID string) ([]model.PublicUser, error)
}

type userService struct {
	users repo.UserRepository
}

func NewUserService(users repo.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoDocument) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id, fullName, about, profilePic string) (*model.User, error) {
	fields := bson.M{
		"full_name": fullName,
		"about":     about,
	}
	if profilePic != "" {
		fields["profile_pic"] = profilePic
	}

	user, err := s.users.SetProfile(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repo.ErrNoDocument) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Block(ctx context.Context, callerID, targetID string) (*model.User, error) {
	target, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrValidation)
	}
	if callerID == targetID {
		return nil, ErrSelfReference
	}

	if _, err := s.Get(ctx, targetID); err != nil {
		return nil, err
	}

	caller, err := s.Get(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.HasBlocked(target) {
		return nil, ErrAlreadyBlocked
	}

	return s.users.AddBlocked(ctx, callerID, target)
}

func (s *userService) Unblock(ctx context.Context, callerID, targetID string) (*model.User, error) {
	target, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrValidation)
	}

	caller, err := s.Get(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.HasBlocked(target) {
		return nil, ErrNotBlocked
	}

	return s.users.RemoveBlocked(ctx, callerID, target)
}

func (s *userService) DeleteForMe(ctx context.Context, callerID, targetID string) error {
	target, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrValidation)
	}

	// $addToSet keeps this idempotent
	if _, err := s.users.AddDeletedFor(ctx, callerID, target); err != nil {
		if errors.Is(err, repo.ErrNoDocument) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *userService) Restore(ctx context.Context, callerID, targetID string) error {
	target, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return fmt.Errorf("%w: bad user id", ErrValidation)
	}

	caller, err := s.Get(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.HasDeleted(target) {
		return ErrNotDeleted
	}

	if _, err := s.users.RemoveDeletedFor(ctx, callerID, target); err != nil {
		return err
	}
	return nil
}

func (s *userService) HiddenUsers(ctx context.Context, callerID string) ([]model.PublicUser, error) {
	caller, err := s.Get(ctx, callerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, id := range append(append([]primitive.ObjectID{}, caller.BlockedUsers...), caller.DeletedFor...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	users, err := s.users.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
