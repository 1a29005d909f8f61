package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/relaychat/relaychat-server/internal/proto"
)

func TestWebSocketJoinAndBroadcast(t *testing.T) {
	ts := startTestServer(t)
	ana := registerUser(t, ts, "Ana")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	before := time.Now().UnixMilli()

	sendInbound(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{UserID: ana.ID})

	var init proto.InitData
	if err := json.Unmarshal(readUntil(t, ctx, connA, proto.OutboundTypeInit), &init); err != nil {
		t.Fatalf("unmarshal init: %v", err)
	}
	if len(init.Users) != 1 || init.Users[0].Name != "Ana" {
		t.Fatalf("unexpected init snapshot: %+v", init.Users)
	}

	// Second session joins anonymously; wait for its snapshot so it is in
	// the room before the message goes out.
	sendInbound(t, ctx, connB, proto.InboundTypeJoin, proto.JoinData{})
	readUntil(t, ctx, connB, proto.OutboundTypeInit)

	// The already-present session is told someone arrived.
	var system proto.SystemData
	if err := json.Unmarshal(readUntil(t, ctx, connA, proto.OutboundTypeSystem), &system); err != nil {
		t.Fatalf("unmarshal system: %v", err)
	}
	if system.Text != "A user joined" {
		t.Fatalf("unexpected system text: %q", system.Text)
	}

	sendInbound(t, ctx, connA, proto.InboundTypeMsg, proto.MsgData{UserID: ana.ID, Text: "hi"})

	// Both sessions receive the message, sender included.
	checkMessage := func(name string, raw json.RawMessage) {
		var msg proto.MessageData
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("%s: unmarshal message: %v", name, err)
		}
		if msg.User.Name != "Ana" || msg.Text != "hi" {
			t.Fatalf("%s: unexpected message: %+v", name, msg)
		}
		if msg.ID == "" || msg.TS < before {
			t.Fatalf("%s: missing id or bad timestamp: %+v", name, msg)
		}
	}
	checkMessage("A", readUntil(t, ctx, connA, proto.OutboundTypeMsg))
	checkMessage("B", readUntil(t, ctx, connB, proto.OutboundTypeMsg))
}

func TestWebSocketAnonymousSender(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	sendInbound(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{UserID: "ghost"})
	readUntil(t, ctx, conn, proto.OutboundTypeInit)

	sendInbound(t, ctx, conn, proto.InboundTypeMsg, proto.MsgData{UserID: "ghost", Text: "boo"})

	var msg proto.MessageData
	if err := json.Unmarshal(readUntil(t, ctx, conn, proto.OutboundTypeMsg), &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if msg.User.Name != "Anonymous" || msg.User.ID != "" || msg.User.Avatar != nil {
		t.Fatalf("expected anonymous author, got %+v", msg.User)
	}
}

func TestWebSocketProfileUpdatePushedToAllConnections(t *testing.T) {
	ts := startTestServer(t)
	ana := registerUser(t, ts, "Ana")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	member := dialWS(t, ctx, ts)
	sendInbound(t, ctx, member, proto.InboundTypeJoin, proto.JoinData{UserID: ana.ID})
	readUntil(t, ctx, member, proto.OutboundTypeInit)

	// Connected but never joined the room. Round-trip a bogus frame so the
	// server has definitely registered the session before the update.
	lurker := dialWS(t, ctx, ts)
	sendInbound(t, ctx, lurker, "ping", struct{}{})
	readUntil(t, ctx, lurker, proto.OutboundTypeError)

	status, body := postJSON(t, ts, "/update", `{"id":"`+ana.ID+`","avatar":"http://a/b.png"}`)
	if status != 200 {
		t.Fatalf("update failed: %d (%s)", status, body)
	}

	for name, conn := range map[string]*websocket.Conn{"member": member, "lurker": lurker} {
		var user proto.User
		if err := json.Unmarshal(readUntil(t, ctx, conn, proto.OutboundTypeUserUpdate), &user); err != nil {
			t.Fatalf("%s: unmarshal user update: %v", name, err)
		}
		if user.ID != ana.ID || user.Avatar == nil || *user.Avatar != "http://a/b.png" {
			t.Fatalf("%s: unexpected user update: %+v", name, user)
		}
	}
}

func TestWebSocketUnknownTypeReturnsError(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	sendInbound(t, ctx, conn, "dance", struct{}{})

	var perr proto.Error
	if err := json.Unmarshal(readUntil(t, ctx, conn, proto.OutboundTypeError), &perr); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if perr.Code != "invalid_message" {
		t.Fatalf("unexpected error code: %q", perr.Code)
	}
}
