package core

// CommandKind describes what a connected client wants to do. Disconnects are
// not commands; they go straight to the registry from the transport.
type CommandKind int

const (
	// CommandJoin enters the session into the broadcast room.
	CommandJoin CommandKind = iota
	// CommandSendMessage relays a chat message to all room members.
	CommandSendMessage
)

// Command represents an action requested by a client. ProfileID is the
// client's claimed identity for this action and may be empty or unknown.
type Command struct {
	Kind      CommandKind
	ProfileID string
	Text      string
}
