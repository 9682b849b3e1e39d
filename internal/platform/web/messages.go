package web

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gamebox/internal/games/racer"
)

// Client message types.
const (
	TypeStart   = "start"
	TypeKey     = "key"
	TypeTap     = "tap"
	TypeTier    = "tier"
	TypeMenu    = "menu"
	TypeRestart = "restart"
)

// Server message types.
const (
	TypeFrame  = "frame"
	TypeResult = "result"
	TypeError  = "error"
)

// ErrUnknownMessage is returned for a message type the server does not handle.
var ErrUnknownMessage = errors.New("unknown message type")

// ClientMessage is anything a browser sends. Only the fields of its Type
// are meaningful.
type ClientMessage struct {
	Type       string `json:"type" msgpack:"type"`
	Mode       int    `json:"mode,omitempty" msgpack:"mode,omitempty"`
	Difficulty string `json:"difficulty,omitempty" msgpack:"difficulty,omitempty"`
	Code       string `json:"code,omitempty" msgpack:"code,omitempty"`
	Down       bool   `json:"down,omitempty" msgpack:"down,omitempty"`
	Zone       string `json:"zone,omitempty" msgpack:"zone,omitempty"`
}

// ResultView is the end-of-round summary sent once per round.
type ResultView struct {
	MatchID    string `json:"matchId,omitempty" msgpack:"matchId,omitempty"`
	Outcome    string `json:"outcome" msgpack:"outcome"`
	Score      int    `json:"score" msgpack:"score"`
	Mode       int    `json:"mode" msgpack:"mode"`
	Difficulty string `json:"difficulty" msgpack:"difficulty"`
	Ticks      uint64 `json:"ticks" msgpack:"ticks"`
}

// ServerMessage is anything the server sends.
type ServerMessage struct {
	Type     string          `json:"type" msgpack:"type"`
	Snapshot *racer.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Result   *ResultView     `json:"result,omitempty" msgpack:"result,omitempty"`
	Error    string          `json:"error,omitempty" msgpack:"error,omitempty"`
}

func frameMessage(snap racer.Snapshot) ServerMessage {
	return ServerMessage{Type: TypeFrame, Snapshot: &snap}
}

func resultMessage(matchID string, res racer.Result) ServerMessage {
	return ServerMessage{Type: TypeResult, Result: &ResultView{
		MatchID:    matchID,
		Outcome:    string(res.Outcome),
		Score:      res.Score,
		Mode:       int(res.Mode),
		Difficulty: string(res.Difficulty),
		Ticks:      res.Ticks,
	}}
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: TypeError, Error: err.Error()}
}

// apply performs msg on the machine. It reports whether a new round began.
func apply(m *racer.Machine, msg ClientMessage) (bool, error) {
	switch msg.Type {
	case TypeStart:
		before := m.Phase()
		err := m.Start(racer.Command{Mode: racer.Mode(msg.Mode), Difficulty: racer.Difficulty(msg.Difficulty)})
		return err == nil && before == racer.PhaseMenu, err
	case TypeRestart:
		before := m.Phase()
		m.Restart()
		return before == racer.PhaseGameOver, nil
	case TypeMenu:
		m.Menu()
		return false, nil
	case TypeTier:
		return false, m.SelectTier(racer.Difficulty(msg.Difficulty))
	case TypeKey:
		k, err := racer.ParseKey(msg.Code)
		if err != nil {
			return false, err
		}
		if msg.Down {
			m.KeyDown(k)
		} else {
			m.KeyUp(k)
		}
		return false, nil
	case TypeTap:
		z, err := racer.ParseZone(msg.Zone)
		if err != nil {
			return false, err
		}
		m.Tap(z)
		return false, nil
	default:
		return false, fmt.Errorf("web: %q: %w", msg.Type, ErrUnknownMessage)
	}
}
