// Package multiplayer provides match identity and result bookkeeping.
// Two-player games are local: both seats share one keyboard or one browser tab.
package multiplayer

import (
	"github.com/google/uuid"
)

// SessionID identifies one connection (terminal, SSH session or websocket).
type SessionID string

// MatchID uniquely identifies a game match.
type MatchID string

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// NewMatchID returns a random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines how a game match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single-player game.
	MatchModeSolo MatchMode = iota

	// MatchModeLocalVersus puts two players on the same device.
	MatchModeLocalVersus
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeLocalVersus:
		return "Local Versus"
	default:
		return "Unknown"
	}
}

// MatchResultSaver is an interface for saving match results.
// This allows the platforms to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID    string
	GameID     string
	Mode       string
	Tier       string
	Outcome    string
	Score      int
	DurationMS int64
}
