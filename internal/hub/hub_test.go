package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/event"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// drain pops every buffered event off a client's egress channel.
func drain(c *Client) []event.WsEvent {
	var out []event.WsEvent
	for {
		select {
		case ev := <-c.egress:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestRegisterBroadcastsOnlineSnapshot(t *testing.T) {
	h := NewHub(NewPresence(), zap.NewNop(), nil)

	alice := newTestClient(t, h, "alice")
	h.register(alice)

	evs := drain(alice)
	require.Len(t, evs, 1)
	require.Equal(t, event.EventOnlineUsers, evs[0].Event)

	var ids []string
	require.NoError(t, json.Unmarshal(evs[0].Payload, &ids))
	require.Equal(t, []string{"alice"}, ids)

	bob := newTestClient(t, h, "bob")
	h.register(bob)

	// both connections see the updated snapshot
	for _, c := range []*Client{alice, bob} {
		evs := drain(c)
		require.Len(t, evs, 1)

		var ids []string
		require.NoError(t, json.Unmarshal(evs[0].Payload, &ids))
		require.ElementsMatch(t, []string{"alice", "bob"}, ids)
	}
}

func TestUnregisterBroadcastsToRemaining(t *testing.T) {
	h := NewHub(NewPresence(), zap.NewNop(), nil)

	alice := newTestClient(t, h, "alice")
	bob := newTestClient(t, h, "bob")
	h.register(alice)
	h.register(bob)
	drain(alice)
	drain(bob)

	h.unregister(bob)
	require.False(t, h.IsOnline("bob"))

	evs := drain(alice)
	require.Len(t, evs, 1)

	var ids []string
	require.NoError(t, json.Unmarshal(evs[0].Payload, &ids))
	require.Equal(t, []string{"alice"}, ids)
}

func TestReconnectDisplacesOldConnection(t *testing.T) {
	h := NewHub(NewPresence(), zap.NewNop(), nil)

	old := newTestClient(t, h, "alice")
	h.register(old)
	drain(old)

	fresh := newTestClient(t, h, "alice")
	h.register(fresh)

	require.True(t, old.IsClosed())
	require.False(t, fresh.IsClosed())
	require.True(t, h.IsOnline("alice"))

	// a late disconnect of the displaced handle keeps the user online
	h.unregister(old)
	require.True(t, h.IsOnline("alice"))
}

func TestPush(t *testing.T) {
	h := NewHub(NewPresence(), zap.NewNop(), nil)

	alice := newTestClient(t, h, "alice")
	h.register(alice)
	drain(alice)

	require.False(t, h.Push("bob", event.EventNewMessage, map[string]string{"text": "hi"}),
		"offline receiver is a silent skip")

	require.True(t, h.Push("alice", event.EventNewMessage, map[string]string{"text": "hi"}))

	select {
	case ev := <-alice.egress:
		require.Equal(t, event.EventNewMessage, ev.Event)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(ev.Payload, &payload))
		require.Equal(t, "hi", payload["text"])
	case <-time.After(time.Second):
		t.Fatal("expected a delivered event")
	}
}

func TestPushToClosedClient(t *testing.T) {
	h := NewHub(NewPresence(), zap.NewNop(), nil)

	alice := newTestClient(t, h, "alice")
	h.register(alice)
	alice.Close()

	require.False(t, h.Push("alice", event.EventNewMessage, map[string]string{"text": "hi"}))
}
