package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin = "join"
	InboundTypeMsg  = "message"

	OutboundTypeInit       = "init"
	OutboundTypeSystem     = "system"
	OutboundTypeMsg        = "message"
	OutboundTypeUserUpdate = "user:update"
	OutboundTypeError      = "error"
)

// JoinData requests room entry, optionally claiming a registered profile.
type JoinData struct {
	UserID string `json:"userId,omitempty"`
}

// MsgData is a chat message from the client.
type MsgData struct {
	UserID string `json:"userId,omitempty"`
	Text   string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// User mirrors a stored profile on the wire. Avatar is null when absent.
type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// InitData is the snapshot sent once to a newly joined session.
type InitData struct {
	Users []User `json:"users"`
}

// SystemData carries a room-wide notice.
type SystemData struct {
	Text string `json:"text"`
}

// MessageData is a relayed chat message. TS is unix milliseconds.
type MessageData struct {
	ID   string `json:"id"`
	User User   `json:"user"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
