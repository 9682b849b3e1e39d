package multiplayer

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gamebox/internal/core"
)

// Key returns the lowercase name stored with match results.
func (m MatchMode) Key() string {
	if m == MatchModeLocalVersus {
		return "versus"
	}
	return "solo"
}

// ParseDetail splits a GameState.Detail of the form "mode/tier". A missing
// or unknown mode means solo.
func ParseDetail(detail string) (MatchMode, string) {
	mode, tier, _ := strings.Cut(detail, "/")
	if mode == "versus" {
		return MatchModeLocalVersus, tier
	}
	return MatchModeSolo, tier
}

// Match is one round of one game.
type Match struct {
	id        MatchID
	gameID    string
	startedAt time.Time

	// SessionIDs tracks which sessions are part of this match.
	SessionIDs []SessionID
}

// NewMatch creates a new match with a fresh ID.
func NewMatch(gameID string, startedAt time.Time, sessions ...SessionID) *Match {
	return &Match{
		id:         NewMatchID(),
		gameID:     gameID,
		startedAt:  startedAt,
		SessionIDs: sessions,
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// GameID returns the game being played.
func (m *Match) GameID() string {
	return m.gameID
}

// StartedAt returns when the round began.
func (m *Match) StartedAt() time.Time {
	return m.startedAt
}

// Result builds the persisted record of a finished round.
func (m *Match) Result(st core.GameState, endedAt time.Time) MatchResultData {
	mode, tier := ParseDetail(st.Detail)
	return MatchResultData{
		MatchID:    string(m.id),
		GameID:     m.gameID,
		Mode:       mode.Key(),
		Tier:       tier,
		Outcome:    st.Outcome,
		Score:      st.Score,
		DurationMS: endedAt.Sub(m.startedAt).Milliseconds(),
	}
}

// Recorder watches the state of one running game and saves exactly one
// result each time a round ends. A nil saver only logs.
type Recorder struct {
	gameID  string
	session SessionID
	saver   MatchResultSaver
	logger  *log.Logger
	now     func() time.Time

	match   *Match
	wasOver bool
	idle    bool
}

// NewRecorder creates a recorder for gameID. The first round starts now, or
// when the game first leaves an idle state.
func NewRecorder(gameID string, session SessionID, saver MatchResultSaver, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	r := &Recorder{
		gameID:  gameID,
		session: session,
		saver:   saver,
		logger:  logger,
		now:     time.Now,
	}
	r.match = NewMatch(gameID, r.now(), session)
	return r
}

// Match returns the round in progress.
func (r *Recorder) Match() *Match {
	return r.match
}

// Begin starts a new round now, for callers that know exactly when a round
// begins rather than inferring it from state.
func (r *Recorder) Begin() {
	r.wasOver = false
	r.match = NewMatch(r.gameID, r.now(), r.session)
}

// Observe is called with the game state after every tick. It returns the
// result when the round has just ended. Time spent idle is not part of any
// round.
func (r *Recorder) Observe(st core.GameState) (MatchResultData, bool) {
	if st.Idle {
		r.idle = true
		r.wasOver = false
		return MatchResultData{}, false
	}
	if r.idle {
		r.idle = false
		r.Begin()
		r.logger.Debug("round started", "game", r.gameID, "match", r.match.ID())
	}

	switch {
	case st.GameOver && !r.wasOver:
		r.wasOver = true
		res := r.match.Result(st, r.now())
		r.logger.Info("round ended", "game", r.gameID, "outcome", res.Outcome, "score", res.Score, "mode", res.Mode, "tier", res.Tier)
		if r.saver != nil {
			if err := r.saver.SaveMatchResult(res); err != nil {
				r.logger.Warn("result not saved", "game", r.gameID, "err", err)
			}
		}
		return res, true
	case !st.GameOver && r.wasOver:
		r.wasOver = false
		r.match = NewMatch(r.gameID, r.now(), r.session)
		r.logger.Debug("round started", "game", r.gameID, "match", r.match.ID())
	}
	return MatchResultData{}, false
}
