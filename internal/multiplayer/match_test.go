package multiplayer

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gamebox/internal/core"
)

type memorySaver struct {
	saved []MatchResultData
	err   error
}

func (m *memorySaver) SaveMatchResult(r MatchResultData) error {
	m.saved = append(m.saved, r)
	return m.err
}

func TestParseDetail(t *testing.T) {
	tests := []struct {
		detail string
		mode   MatchMode
		tier   string
	}{
		{"versus/hard", MatchModeLocalVersus, "hard"},
		{"single/easy", MatchModeSolo, "easy"},
		{"versus", MatchModeLocalVersus, ""},
		{"", MatchModeSolo, ""},
	}

	for _, tt := range tests {
		mode, tier := ParseDetail(tt.detail)
		if mode != tt.mode || tier != tt.tier {
			t.Errorf("ParseDetail(%q) = %v, %q, expected %v, %q", tt.detail, mode, tier, tt.mode, tt.tier)
		}
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	if NewMatchID() == NewMatchID() {
		t.Error("NewMatchID() returned the same ID twice")
	}
	if NewSessionID() == "" {
		t.Error("NewSessionID() returned an empty ID")
	}
}

func TestRecorderSavesOncePerRound(t *testing.T) {
	saver := &memorySaver{}
	r := NewRecorder("racer", NewSessionID(), saver, log.New(io.Discard))

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	r.match = NewMatch("racer", clock)
	first := r.Match().ID()

	playing := core.GameState{Score: 10, Detail: "versus/hard"}
	over := core.GameState{Score: 40, GameOver: true, Outcome: "P2", Detail: "versus/hard"}

	if _, ended := r.Observe(playing); ended {
		t.Fatal("a running round has no result")
	}
	clock = clock.Add(1500 * time.Millisecond)
	res, ended := r.Observe(over)
	if !ended {
		t.Fatal("expected the round to end")
	}
	want := MatchResultData{
		MatchID:    string(first),
		GameID:     "racer",
		Mode:       "versus",
		Tier:       "hard",
		Outcome:    "P2",
		Score:      40,
		DurationMS: 1500,
	}
	if res != want {
		t.Errorf("Observe() = %+v, expected %+v", res, want)
	}

	r.Observe(over)
	r.Observe(over)
	if len(saver.saved) != 1 {
		t.Errorf("saved %d results, expected 1", len(saver.saved))
	}

	r.Observe(playing)
	if r.Match().ID() == first {
		t.Error("a new round should get a new match ID")
	}
	r.Observe(over)
	if len(saver.saved) != 2 {
		t.Errorf("saved %d results, expected 2", len(saver.saved))
	}
}

func TestRecorderSurvivesSaveErrors(t *testing.T) {
	saver := &memorySaver{err: errors.New("disk full")}
	r := NewRecorder("snake", NewSessionID(), saver, log.New(io.Discard))

	if _, ended := r.Observe(core.GameState{GameOver: true, Outcome: "GAME_OVER"}); !ended {
		t.Error("a failed save still ends the round")
	}
}

func TestRecorderWithoutSaver(t *testing.T) {
	r := NewRecorder("memory", "", nil, log.New(io.Discard))
	res, ended := r.Observe(core.GameState{GameOver: true, Outcome: "WON", Score: 100})
	if !ended || res.Mode != "solo" || res.Score != 100 {
		t.Errorf("Observe() = %+v, %v", res, ended)
	}
}

func TestRecorderBeginRestartsTheClock(t *testing.T) {
	saver := &memorySaver{}
	r := NewRecorder("racer", NewSessionID(), saver, log.New(io.Discard))

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	r.Observe(core.GameState{GameOver: true})
	first := r.Match().ID()

	clock = clock.Add(time.Minute)
	r.Begin()
	if r.Match().ID() == first {
		t.Error("Begin() should start a new match")
	}
	clock = clock.Add(2 * time.Second)
	res, ended := r.Observe(core.GameState{GameOver: true, Outcome: "GAME_OVER"})
	if !ended || res.DurationMS != 2000 {
		t.Errorf("Observe() = %+v, %v, expected 2000ms after Begin", res, ended)
	}
}

func TestRecorderSkipsIdleTime(t *testing.T) {
	saver := &memorySaver{}
	r := NewRecorder("racer", NewSessionID(), saver, log.New(io.Discard))

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	r.match = NewMatch("racer", clock)

	menu := core.GameState{Idle: true}
	playing := core.GameState{Detail: "single/normal"}
	over := core.GameState{GameOver: true, Outcome: "GAME_OVER", Detail: "single/normal"}

	tests := []struct {
		name  string
		idle  time.Duration
		round time.Duration
	}{
		{"first round", 30 * time.Second, 3 * time.Second},
		{"after returning to the menu", time.Minute, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		r.Observe(menu)
		clock = clock.Add(tt.idle)
		r.Observe(menu)
		r.Observe(playing)
		clock = clock.Add(tt.round)
		res, ended := r.Observe(over)
		if !ended || res.DurationMS != tt.round.Milliseconds() {
			t.Errorf("%s: Observe() = %+v, %v, expected %dms", tt.name, res, ended, tt.round.Milliseconds())
		}
	}
	if len(saver.saved) != 2 {
		t.Errorf("saved %d results, expected 2", len(saver.saved))
	}
}
