package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/relaychat/relaychat-server/internal/config"
	"github.com/relaychat/relaychat-server/internal/core"
	"github.com/relaychat/relaychat-server/internal/proto"
	"github.com/relaychat/relaychat-server/internal/service/profiles"
	"github.com/relaychat/relaychat-server/internal/store/memory"
)

// startTestServer spins up the full stack: store, registry, hub, profile
// service, and the HTTP server on an ephemeral port.
func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	st := memory.New()
	registry := core.NewRegistry(32, &logger)
	hub := core.NewHub(registry, st, &logger)
	svc := profiles.New(st, hub, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := NewServer(hub, registry, svc, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body string) (int, []byte) {
	t.Helper()

	resp, err := ts.Client().Post(ts.URL+path, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp.StatusCode, buf.Bytes()
}

func registerUser(t *testing.T, ts *httptest.Server, name string) proto.User {
	t.Helper()

	status, body := postJSON(t, ts, "/register", `{"name":"`+name+`"}`)
	if status != 200 {
		t.Fatalf("register %q: status %d, body %s", name, status, body)
	}
	var out UserResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal register response: %v", err)
	}
	return out.User
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

// readUntil reads outbound envelopes, discarding any that are not of the
// wanted type, and returns the first match's raw data.
func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string) json.RawMessage {
	t.Helper()

	for {
		var outbound struct {
			Type  string          `json:"type"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			t.Fatalf("read outbound waiting for %q: %v", typ, err)
		}
		if outbound.Type == typ {
			if typ == proto.OutboundTypeError {
				raw, _ := json.Marshal(outbound.Error)
				return raw
			}
			return outbound.Data
		}
	}
}
