package service

import (
	"context"
	"testing"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"

	"github.com/stretchr/testify/require"
)

type userFixture struct {
	users *fakeUserRepo
	svc   UserService

	alice *model.User
	bob   *model.User
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	f := &userFixture{users: newFakeUserRepo()}
	f.alice = f.users.add(model.User{ExternalID: "AAA-11A-111111", Email: "alice@example.com", FullName: "Alice"})
	f.bob = f.users.add(model.User{ExternalID: "BBB-22B-222222", Email: "bob@example.com", FullName: "Bob"})
	f.svc = NewUserService(f.users)
	return f
}

func TestUpdateProfile(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	updated, err := f.svc.UpdateProfile(ctx, f.alice.ID.Hex(), "Alice B", "busy", "")
	require.NoError(t, err)
	require.Equal(t, "Alice B", updated.FullName)
	require.Equal(t, "busy", updated.About)
	require.Empty(t, updated.ProfilePic, "empty picture must not clear the field")

	updated, err = f.svc.UpdateProfile(ctx, f.alice.ID.Hex(), "Alice B", "busy", "/uploads/a.png")
	require.NoError(t, err)
	require.Equal(t, "/uploads/a.png", updated.ProfilePic)
}

func TestBlockUnblock(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	t.Run("self", func(t *testing.T) {
		_, err := f.svc.Block(ctx, f.alice.ID.Hex(), f.alice.ID.Hex())
		require.ErrorIs(t, err, ErrSelfReference)
	})

	updated, err := f.svc.Block(ctx, f.alice.ID.Hex(), f.bob.ID.Hex())
	require.NoError(t, err)
	require.True(t, updated.HasBlocked(f.bob.ID))

	t.Run("double block", func(t *testing.T) {
		_, err := f.svc.Block(ctx, f.alice.ID.Hex(), f.bob.ID.Hex())
		require.ErrorIs(t, err, ErrAlreadyBlocked)
	})

	updated, err = f.svc.Unblock(ctx, f.alice.ID.Hex(), f.bob.ID.Hex())
	require.NoError(t, err)
	require.False(t, updated.HasBlocked(f.bob.ID))

	t.Run("unblock without block", func(t *testing.T) {
		_, err := f.svc.Unblock(ctx, f.alice.ID.Hex(), f.bob.ID.Hex())
		require.ErrorIs(t, err, ErrNotBlocked)
	})
}

func TestUserDeleteAndRestore(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteForMe(ctx, f.alice.ID.Hex(), f.bob.ID.Hex()))
	// idempotent
	require.NoError(t, f.svc.DeleteForMe(ctx, f.alice.ID.Hex(), f.bob.ID.Hex()))

	caller, err := f.svc.Get(ctx, f.alice.ID.Hex())
	require.NoError(t, err)
	require.Len(t, caller.DeletedFor, 1)

	require.NoError(t, f.svc.Restore(ctx, f.alice.ID.Hex(), f.bob.ID.Hex()))
	require.ErrorIs(t, f.svc.Restore(ctx, f.alice.ID.Hex(), f.bob.ID.Hex()), ErrNotDeleted)
}

func TestHiddenUsers(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	carol := f.users.add(model.User{ExternalID: "CCC-33C-333333", Email: "carol@example.com", FullName: "Carol"})

	_, err := f.svc.Block(ctx, f.alice.ID.Hex(), f.bob.ID.Hex())
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteForMe(ctx, f.alice.ID.Hex(), carol.ID.Hex()))
	// blocked and deleted must not double-count
	require.NoError(t, f.svc.DeleteForMe(ctx, f.alice.ID.Hex(), f.bob.ID.Hex()))

	hidden, err := f.svc.HiddenUsers(ctx, f.alice.ID.Hex())
	require.NoError(t, err)
	require.Len(t, hidden, 2)

	names := []string{hidden[0].FullName, hidden[1].FullName}
	require.ElementsMatch(t, []string{"Bob", "Carol"}, names)
}
