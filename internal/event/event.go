package event

import "encoding/json"

// Event names pushed to clients over the socket. Names are part of the
// client contract; do not rename casually.
const (
	EventNewMessage         = "newMessage"
	EventEditedMessage      = "editedMessage"
	EventDeletedForEveryone = "deletedForEveryone"
	EventOnlineUsers        = "getOnlineUsers"
)

// WsEvent is the envelope for every payload written to a websocket
// connection.
type WsEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// New marshals payload into a WsEvent envelope.
func New(name string, payload any) (WsEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return WsEvent{}, err
	}
	return WsEvent{Event: name, Payload: raw}, nil
}
