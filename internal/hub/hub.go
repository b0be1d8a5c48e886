package hub

import (
	"net/http"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/event"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/metrics"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub owns the presence table and routes server pushes to live
// connections. Delivery is at-most-once and best effort: an offline
// receiver is a silent no-op, durable state lives in the message
// store and is pulled on the next history fetch.
type Hub struct {
	presence *Presence
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewHub(presence *Presence, logger *zap.Logger, allowedOrigins []string) *Hub {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &Hub{
		presence: presence,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return origins[r.Header.Get("Origin")]
			},
		},
	}
}

// ServeWS upgrades the request and registers a connection for userID.
// The caller has already authenticated the user.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(userID, conn, h, h.logger)
	h.register(c)

	go c.readPump()
	go c.writePump()
}

func (h *Hub) register(c *Client) {
	if replaced := h.presence.Set(c.UserID, c); replaced != nil {
		// same user connected again; only the newest handle receives pushes
		replaced.Close()
	} else {
		metrics.WsConnections.Inc()
	}

	h.logger.Info("client connected",
		zap.String("client_id", c.ID),
		zap.String("user_id", c.UserID),
	)
	h.broadcastOnline()
}

func (h *Hub) unregister(c *Client) {
	if !h.presence.Remove(c.UserID, c) {
		// already displaced by a newer connection
		return
	}
	metrics.WsConnections.Dec()

	h.logger.Info("client disconnected",
		zap.String("client_id", c.ID),
		zap.String("user_id", c.UserID),
	)
	h.broadcastOnline()
}

// IsOnline reports whether the user holds a live connection.
func (h *Hub) IsOnline(userID string) bool {
	return h.presence.IsOnline(userID)
}

// Push delivers an event to the user's live connection. Offline users
// are silently skipped; this is the expected non-error outcome, not a
// failure.
func (h *Hub) Push(userID string, name string, payload any) bool {
	c := h.presence.Get(userID)
	if c == nil {
		return false
	}

	ev, err := event.New(name, payload)
	if err != nil {
		h.logger.Error("marshal push payload", zap.String("event", name), zap.Error(err))
		return false
	}

	if !c.SafeSend(ev, sendTimeout) {
		h.logger.Warn("push dropped, egress full or client closed",
			zap.String("user_id", userID),
			zap.String("event", name),
		)
		return false
	}
	return true
}

// broadcastOnline sends the full set of online user ids to every live
// connection. A snapshot of both the id list and the client list is
// taken first so no table lock is held during the fan-out.
func (h *Hub) broadcastOnline() {
	ids := h.presence.OnlineIDs()
	ev, err := event.New(event.EventOnlineUsers, ids)
	if err != nil {
		h.logger.Error("marshal online snapshot", zap.Error(err))
		return
	}

	for _, c := range h.presence.All() {
		c.SafeSend(ev, sendTimeout)
	}
}

// Stop closes every live connection; used during graceful shutdown.
func (h *Hub) Stop() {
	for _, c := range h.presence.All() {
		c.Close()
	}
}
