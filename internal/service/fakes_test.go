package service

import (
	"context"
	"sort"
	"time"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo-backed repositories. They mimic
// the exact update-operator semantics the services rely on.

// ---------------------------------------------------------------------
// users
// ---------------------------------------------------------------------

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) add(u model.User) *model.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID.Hex()] = &u
	return &u
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) (primitive.ObjectID, error) {
	stored := f.add(*user)
	return stored.ID, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNoDocument
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNoDocument
}

func (f *fakeUserRepo) FindByExternalID(_ context.Context, externalID string) (*model.User, error) {
	for _, u := range f.users {
		if u.ExternalID == externalID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNoDocument
}

func (f *fakeUserRepo) ExternalIDExists(_ context.Context, externalID string) (bool, error) {
	for _, u := range f.users {
		if u.ExternalID == externalID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := f.users[id.Hex()]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetProfile(_ context.Context, id string, fields bson.M) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNoDocument
	}
	if v, ok := fields["full_name"].(string); ok {
		u.FullName = v
	}
	if v, ok := fields["about"].(string); ok {
		u.About = v
	}
	if v, ok := fields["profile_pic"].(string); ok {
		u.ProfilePic = v
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) AddBlocked(_ context.Context, id string, target primitive.ObjectID) (*model.User, error) {
	return f.mutate(id, func(u *model.User) {
		u.BlockedUsers = addToSet(u.BlockedUsers, target)
	})
}

func (f *fakeUserRepo) RemoveBlocked(_ context.Context, id string, target primitive.ObjectID) (*model.User, error) {
	return f.mutate(id, func(u *model.User) {
		u.BlockedUsers = pull(u.BlockedUsers, target)
	})
}

func (f *fakeUserRepo) AddDeletedFor(_ context.Context, id string, target primitive.ObjectID) (*model.User, error) {
	return f.mutate(id, func(u *model.User) {
		u.DeletedFor = addToSet(u.DeletedFor, target)
	})
}

func (f *fakeUserRepo) RemoveDeletedFor(_ context.Context, id string, target primitive.ObjectID) (*model.User, error) {
	return f.mutate(id, func(u *model.User) {
		u.DeletedFor = pull(u.DeletedFor, target)
	})
}

func (f *fakeUserRepo) mutate(id string, fn func(*model.User)) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNoDocument
	}
	fn(u)
	cp := *u
	return &cp, nil
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range set {
		if v == id {
			return set
		}
	}
	return append(set, id)
}

func pull(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ---------------------------------------------------------------------
// contacts
// ---------------------------------------------------------------------

type contactEdge struct {
	owner, contact primitive.ObjectID
	createdAt      time.Time
}

type fakeContactRepo struct {
	edges []contactEdge
	seq   int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{}
}

func (f *fakeContactRepo) CreateMutual(_ context.Context, owner, target primitive.ObjectID) error {
	f.seq++
	at := time.Unix(int64(f.seq), 0)
	f.edges = append(f.edges,
		contactEdge{owner: owner, contact: target, createdAt: at},
		contactEdge{owner: target, contact: owner, createdAt: at},
	)
	return nil
}

func (f *fakeContactRepo) Exists(_ context.Context, owner, target primitive.ObjectID) (bool, error) {
	for _, e := range f.edges {
		if e.owner == owner && e.contact == target {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeContactRepo) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]model.Contact, error) {
	var out []model.Contact
	for _, e := range f.edges {
		if e.owner == owner {
			out = append(out, model.Contact{Owner: e.owner, Contact: e.contact, CreatedAt: e.createdAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ---------------------------------------------------------------------
// messages
// ---------------------------------------------------------------------

type fakeMessageRepo struct {
	msgs map[string]*model.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{msgs: make(map[string]*model.Message)}
}

func (f *fakeMessageRepo) Insert(_ context.Context, msg *model.Message) (*model.Message, error) {
	cp := *msg
	cp.ID = primitive.NewObjectID()
	f.msgs[cp.ID.Hex()] = &cp
	out := cp
	return &out, nil
}

func (f *fakeMessageRepo) FindByID(_ context.Context, id string) (*model.Message, error) {
	m, ok := f.msgs[id]
	if !ok {
		return nil, repo.ErrNoDocument
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMessageRepo) ApplyReturning(_ context.Context, id string, update bson.M) (*model.Message, error) {
	m, ok := f.msgs[id]
	if !ok {
		return nil, repo.ErrNoDocument
	}
	applyUpdate(m, update)
	cp := *m
	return &cp, nil
}

func (f *fakeMessageRepo) ListConversation(_ context.Context, a, b, viewer primitive.ObjectID) ([]model.Message, error) {
	var out []model.Message
	for _, m := range f.msgs {
		if !inPair(m, a, b) || m.DeletedForViewer(viewer) {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMessageRepo) MarkSeen(_ context.Context, reader, counterpart primitive.ObjectID) error {
	for _, m := range f.msgs {
		if inPair(m, reader, counterpart) && !m.SeenByUser(reader) {
			m.SeenBy = append(m.SeenBy, reader)
		}
	}
	return nil
}

func (f *fakeMessageRepo) HideAllFor(_ context.Context, user, counterpart primitive.ObjectID) (int64, error) {
	var matched int64
	for _, m := range f.msgs {
		if !inPair(m, user, counterpart) {
			continue
		}
		matched++
		m.DeletedFor = addToSet(m.DeletedFor, user)
	}
	return matched, nil
}

func (f *fakeMessageRepo) CountConversation(_ context.Context, a, b primitive.ObjectID) (int64, error) {
	var n int64
	for _, m := range f.msgs {
		if inPair(m, a, b) {
			n++
		}
	}
	return n, nil
}

func inPair(m *model.Message, a, b primitive.ObjectID) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

// applyUpdate interprets the operator subset the message service uses.
func applyUpdate(m *model.Message, update bson.M) {
	if set, ok := update["$set"].(bson.M); ok {
		if v, ok := set["text"].(string); ok {
			m.Text = v
		}
		if v, ok := set["is_edited"].(bool); ok {
			m.IsEdited = v
		}
		if v, ok := set["file_url"].(string); ok {
			m.FileURL = v
		}
		if v, ok := set["file_type"].(string); ok {
			m.FileType = v
		}
		if v, ok := set["file_name"].(string); ok {
			m.FileName = v
		}
		if v, ok := set["updated_at"].(time.Time); ok {
			m.UpdatedAt = v
		}
	}
	if unset, ok := update["$unset"].(bson.M); ok {
		if _, ok := unset["reply_to"]; ok {
			m.ReplyTo = nil
		}
	}
	if add, ok := update["$addToSet"].(bson.M); ok {
		if v, ok := add["is_deleted_for"].(primitive.ObjectID); ok {
			m.DeletedFor = addToSet(m.DeletedFor, v)
		}
	}
	if pl, ok := update["$pull"].(bson.M); ok {
		if v, ok := pl["is_deleted_for"].(primitive.ObjectID); ok {
			m.DeletedFor = pull(m.DeletedFor, v)
		}
		if cond, ok := pl["reactions"].(bson.M); ok {
			if user, ok := cond["user_id"].(primitive.ObjectID); ok {
				kept := m.Reactions[:0]
				for _, r := range m.Reactions {
					if r.UserID != user {
						kept = append(kept, r)
					}
				}
				m.Reactions = kept
			}
		}
	}
	if push, ok := update["$push"].(bson.M); ok {
		if r, ok := push["reactions"].(model.Reaction); ok {
			m.Reactions = append(m.Reactions, r)
		}
		if v, ok := push["seen_by"].(primitive.ObjectID); ok {
			m.SeenBy = append(m.SeenBy, v)
		}
	}
}

// ---------------------------------------------------------------------
// presence + push
// ---------------------------------------------------------------------

type fakePresence struct {
	online map[string]bool
}

func newFakePresence(ids ...string) *fakePresence {
	p := &fakePresence{online: make(map[string]bool)}
	for _, id := range ids {
		p.online[id] = true
	}
	return p
}

func (f *fakePresence) IsOnline(userID string) bool { return f.online[userID] }

type pushedEvent struct {
	userID  string
	name    string
	payload any
}

type fakePusher struct {
	online map[string]bool
	pushed []pushedEvent
}

func newFakePusher(online *fakePresence) *fakePusher {
	return &fakePusher{online: online.online}
}

func (f *fakePusher) Push(userID, name string, payload any) bool {
	if !f.online[userID] {
		return false
	}
	f.pushed = append(f.pushed, pushedEvent{userID: userID, name: name, payload: payload})
	return true
}

func (f *fakePusher) lastFor(userID string) *pushedEvent {
	for i := len(f.pushed) - 1; i >= 0; i-- {
		if f.pushed[i].userID == userID {
			return &f.pushed[i]
		}
	}
	return nil
}
