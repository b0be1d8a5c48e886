package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ContactService maintains the symmetric friend relation that gates
// who may message whom.
type ContactService interface {
	// AddContact links the owner and the user addressed by the
	// shareable external id, in both directions.
	AddContact(ctx context.Context, ownerID, targetExternalID string) (*model.PublicUser, error)
	// AreContacts checks the directed a→b edge only.
	AreContacts(ctx context.Context, a, b string) (bool, error)
	// ListContacts returns the owner's contacts, most recently added
	// first, minus anyone in the owner's deleted-for-me set.
	ListContacts(ctx context.Context, ownerID string) ([]model.PublicUser, error)
}

type contactService struct {
	contacts repo.ContactRepository
	users    repo.UserRepository
	logger   *zap.Logger
}

func NewContactService(contacts repo.ContactRepository, users repo.UserRepository, logger *zap.Logger) ContactService {
	return &contactService{
		contacts: contacts,
		users:    users,
		logger:   logger,
	}
}

func (s *contactService) AddContact(ctx context.Context, ownerID, targetExternalID string) (*model.PublicUser, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad owner id", ErrValidation)
	}

	target, err := s.users.FindByExternalID(ctx, targetExternalID)
	if err != nil {
		if errors.Is(err, repo.ErrNoDocument) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if target.ID == owner {
		return nil, ErrSelfReference
	}

	exists, err := s.contacts.Exists(ctx, owner, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateContact
	}

	if err := s.contacts.CreateMutual(ctx, owner, target.ID); err != nil {
		return nil, err
	}

	pub := target.Public()
	return &pub, nil
}

func (s *contactService) AreContacts(ctx context.Context, a, b string) (bool, error) {
	ownerOID, err := primitive.ObjectIDFromHex(a)
	if err != nil {
		return false, fmt.Errorf("%w: bad user id", ErrValidation)
	}
	targetOID, err := primitive.ObjectIDFromHex(b)
	if err != nil {
		return false, fmt.Errorf("%w: bad user id", ErrValidation)
	}
	return s.contacts.Exists(ctx, ownerOID, targetOID)
}

func (s *contactService) ListContacts(ctx context.Context, ownerID string) ([]model.PublicUser, error) {
	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad owner id", ErrValidation)
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNoDocument) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	edges, err := s.contacts.ListByOwner(ctx, ownerOID)
	if err != nil {
		return nil, err
	}

	wanted := make([]primitive.ObjectID, 0, len(edges))
	for _, e := range edges {
		if owner.HasDeleted(e.Contact) {
			continue
		}
		wanted = append(wanted, e.Contact)
	}

	users, err := s.users.FindManyByIDs(ctx, wanted)
	if err != nil {
		return nil, err
	}

	// preserve edge order: most recently added contact first
	byID := make(map[primitive.ObjectID]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]model.PublicUser, 0, len(wanted))
	for _, id := range wanted {
		if u, ok := byID[id]; ok {
			out = append(out, u.Public())
		}
	}
	return out, nil
}
