package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/gamebox/internal/games/racer"
	"github.com/vovakirdan/gamebox/internal/multiplayer"
)

type memorySaver struct {
	mu      sync.Mutex
	results []multiplayer.MatchResultData
}

func (m *memorySaver) SaveMatchResult(r multiplayer.MatchResultData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *memorySaver) all() []multiplayer.MatchResultData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]multiplayer.MatchResultData(nil), m.results...)
}

// newTestServer uses an arena only as wide as one obstacle, so every
// obstacle spawns in the car's path and a solo round ends quickly.
func newTestServer(t *testing.T) (*httptest.Server, *memorySaver) {
	t.Helper()
	params := racer.DefaultParams()
	params.ArenaW = params.ObstacleW

	saver := &memorySaver{}
	srv := NewServer(Config{
		Interval: time.Millisecond,
		Seed:     7,
		Params:   params,
		Tiers: map[racer.Difficulty]racer.Tier{
			racer.Normal: {Speed: 20, SpawnRate: 1, Step: 5},
		},
	}, saver, log.New(io.Discard))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, saver
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) failed: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("WriteMessage() failed: %v", err)
	}
}

func readJSON(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}
	if kind != websocket.TextMessage {
		t.Fatalf("message type = %d, expected text", kind)
	}
	var msg ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal(%s) failed: %v", data, err)
	}
	return msg
}

// readResult reads frames until the round's result arrives.
func readResult(t *testing.T, conn *websocket.Conn) (ServerMessage, int) {
	t.Helper()
	frames := 0
	for {
		msg := readJSON(t, conn)
		switch msg.Type {
		case TypeFrame:
			frames++
		case TypeResult:
			return msg, frames
		default:
			t.Fatalf("unexpected %+v", msg)
		}
	}
}

func TestRoundStreamsFramesAndResult(t *testing.T) {
	ts, saver := newTestServer(t)
	conn := dial(t, ts, "")

	hello := readJSON(t, conn)
	if hello.Type != TypeFrame || hello.Snapshot == nil || hello.Snapshot.Phase != racer.PhaseMenu {
		t.Fatalf("first message = %+v, expected a menu frame", hello)
	}

	sendJSON(t, conn, `{"type":"start","mode":1,"difficulty":"normal"}`)
	first, frames := readResult(t, conn)
	if frames == 0 {
		t.Error("expected frames before the result")
	}
	if first.Result.Outcome != string(racer.OutcomeGameOver) || first.Result.Difficulty != "normal" {
		t.Errorf("result = %+v", first.Result)
	}

	sendJSON(t, conn, `{"type":"restart"}`)
	second, _ := readResult(t, conn)
	if second.Result.MatchID == "" || second.Result.MatchID == first.Result.MatchID {
		t.Errorf("restart should be a new match, got %q after %q", second.Result.MatchID, first.Result.MatchID)
	}

	saved := saver.all()
	if len(saved) != 2 {
		t.Fatalf("saved %d results, expected 2", len(saved))
	}
	for _, r := range saved {
		if r.GameID != "racer" || r.Mode != "solo" || r.Tier != "normal" || r.Outcome != "GAME_OVER" {
			t.Errorf("saved %+v", r)
		}
	}
}

func TestMenuAndTierSendFrames(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts, "")
	readJSON(t, conn)

	sendJSON(t, conn, `{"type":"tier","difficulty":"hard"}`)
	if msg := readJSON(t, conn); msg.Snapshot == nil || msg.Snapshot.Difficulty != racer.Hard {
		t.Errorf("after tier: %+v", msg)
	}

	sendJSON(t, conn, `{"type":"start","mode":1,"difficulty":"normal"}`)
	readResult(t, conn)
	sendJSON(t, conn, `{"type":"menu"}`)
	if msg := readJSON(t, conn); msg.Snapshot == nil || msg.Snapshot.Phase != racer.PhaseMenu {
		t.Errorf("after menu: %+v", msg)
	}
}

func TestInvalidMessagesGetErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts, "")
	readJSON(t, conn)

	tests := []struct {
		name string
		msg  string
	}{
		{"bad mode", `{"type":"start","mode":3,"difficulty":"easy"}`},
		{"bad tier", `{"type":"start","mode":1,"difficulty":"insane"}`},
		{"bad key", `{"type":"key","code":"KeyZ","down":true}`},
		{"bad zone", `{"type":"tap","zone":"middle"}`},
		{"unknown type", `{"type":"dance"}`},
		{"not json", `hello`},
	}

	for _, tt := range tests {
		sendJSON(t, conn, tt.msg)
		msg := readJSON(t, conn)
		if msg.Type != TypeError || msg.Error == "" {
			t.Errorf("%s: got %+v, expected an error", tt.name, msg)
		}
	}

	// The connection survives bad input.
	sendJSON(t, conn, `{"type":"tier","difficulty":"easy"}`)
	if msg := readJSON(t, conn); msg.Type != TypeFrame {
		t.Errorf("after errors: %+v", msg)
	}
}

func TestMsgpackCodec(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts, "?codec=msgpack")

	read := func() ServerMessage {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage() failed: %v", err)
		}
		if kind != websocket.BinaryMessage {
			t.Fatalf("message type = %d, expected binary", kind)
		}
		var msg ServerMessage
		if err := msgpack.Unmarshal(data, &msg); err != nil {
			t.Fatalf("msgpack.Unmarshal() failed: %v", err)
		}
		return msg
	}

	if msg := read(); msg.Type != TypeFrame || msg.Snapshot.Phase != racer.PhaseMenu {
		t.Fatalf("first message = %+v", msg)
	}

	data, err := msgpack.Marshal(ClientMessage{Type: TypeTier, Difficulty: "easy"})
	if err != nil {
		t.Fatalf("msgpack.Marshal() failed: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatalf("WriteMessage() failed: %v", err)
	}
	if msg := read(); msg.Snapshot == nil || msg.Snapshot.Difficulty != racer.Easy {
		t.Errorf("after tier: %+v", msg)
	}
}

func TestUnknownCodecRejected(t *testing.T) {
	ts, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?codec=xml"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("Dial() should fail for an unknown codec")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("response = %v, expected 400", resp)
	}
}

func TestCodecFor(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "json", false},
		{"json", "json", false},
		{"msgpack", "msgpack", false},
		{"protobuf", "", true},
	}
	for _, tt := range tests {
		c, err := CodecFor(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("CodecFor(%q) error = %v", tt.name, err)
			continue
		}
		if err == nil && c.Name() != tt.want {
			t.Errorf("CodecFor(%q) = %s, expected %s", tt.name, c.Name(), tt.want)
		}
	}
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
