package memory

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/gamebox/internal/config"
	"github.com/vovakirdan/gamebox/internal/core"
	"github.com/vovakirdan/gamebox/internal/registry"
)

// pairs returns the indexes of both cards of every symbol.
func pairs(s State) map[string][]int {
	out := make(map[string][]int)
	for i, c := range s.Cards {
		out[c.Symbol] = append(out[c.Symbol], i)
	}
	return out
}

// mismatch returns two indexes holding different symbols.
func mismatch(s State) (int, int) {
	for i := 1; i < len(s.Cards); i++ {
		if s.Cards[i].Symbol != s.Cards[0].Symbol {
			return 0, i
		}
	}
	return 0, 0
}

func TestShuffleDealsPairs(t *testing.T) {
	s := Shuffle(DefaultParams(), rand.New(rand.NewSource(1)))
	if len(s.Cards) != 16 {
		t.Fatalf("len(Cards) = %d, expected 16", len(s.Cards))
	}
	for sym, idx := range pairs(s) {
		if len(idx) != 2 {
			t.Errorf("symbol %s dealt %d times", sym, len(idx))
		}
	}
	if s.First != -1 || s.Second != -1 {
		t.Error("nothing should be chosen on a fresh table")
	}

	again := Shuffle(DefaultParams(), rand.New(rand.NewSource(1)))
	if !reflect.DeepEqual(s.Cards, again.Cards) {
		t.Error("equal seeds should deal equal tables")
	}
}

func TestChooseMatch(t *testing.T) {
	s := Shuffle(DefaultParams(), rand.New(rand.NewSource(2)))
	idx := pairs(s)[s.Cards[0].Symbol]

	s = Choose(s, idx[0])
	s = Choose(s, idx[1])
	if !s.Cards[idx[0]].Matched || !s.Cards[idx[1]].Matched {
		t.Error("equal symbols should be matched")
	}
	if s.Turns != 1 || s.Score != 20 || s.Locked() {
		t.Errorf("Turns = %d, Score = %d, Locked = %v", s.Turns, s.Score, s.Locked())
	}
	if got := Choose(s, idx[0]); !reflect.DeepEqual(got, s) {
		t.Error("choosing a matched card should be ignored")
	}
}

func TestChooseMismatchLocks(t *testing.T) {
	s := Shuffle(DefaultParams(), rand.New(rand.NewSource(3)))
	a, b := mismatch(s)

	s = Choose(s, a)
	if got := Choose(s, a); !reflect.DeepEqual(got, s) {
		t.Error("choosing the first card again should be ignored")
	}
	s = Choose(s, b)
	if !s.Locked() || s.Turns != 1 || s.Score != 0 {
		t.Fatalf("Locked = %v, Turns = %d, Score = %d", s.Locked(), s.Turns, s.Score)
	}
	if !s.FaceUp(a) || !s.FaceUp(b) {
		t.Error("a mismatched pair stays face up while locked")
	}

	other := 0
	for other == a || other == b {
		other++
	}
	if got := Choose(s, other); !reflect.DeepEqual(got, s) {
		t.Error("choices while locked should be ignored")
	}

	for i := 0; i < 47; i++ {
		s = Tick(s)
	}
	if !s.Locked() {
		t.Fatal("lock released early")
	}
	s = Tick(s)
	if s.Locked() || s.FaceUp(a) || s.FaceUp(b) {
		t.Error("the pair should flip back after 48 ticks")
	}
}

func TestScoreNeverNegative(t *testing.T) {
	s := Shuffle(DefaultParams(), rand.New(rand.NewSource(4)))
	a, b := mismatch(s)

	for i := 0; i < 3; i++ {
		s = Choose(s, a)
		s = Choose(s, b)
		for s.Locked() {
			s = Tick(s)
		}
	}
	if s.Score != 0 || s.Turns != 3 {
		t.Errorf("Score = %d, Turns = %d, expected 0, 3", s.Score, s.Turns)
	}
}

func TestAllMatchedWins(t *testing.T) {
	s := Shuffle(DefaultParams(), rand.New(rand.NewSource(5)))
	for _, idx := range pairs(s) {
		s = Choose(s, idx[0])
		s = Choose(s, idx[1])
	}
	if !s.Won || s.Turns != 8 || s.Score != 160 {
		t.Errorf("Won = %v, Turns = %d, Score = %d", s.Won, s.Turns, s.Score)
	}
	if got := Choose(s, 0); !reflect.DeepEqual(got, s) {
		t.Error("a won table ignores choices")
	}
}

func TestParamsFromConfig(t *testing.T) {
	p := ParamsFromConfig(config.DefaultMemoryConfig(), 60)
	if p.LockTicks != 48 || len(p.Symbols) != 8 || p.MatchPoints != 20 || p.MissPenalty != 5 {
		t.Errorf("ParamsFromConfig() = %+v", p)
	}
	if p := ParamsFromConfig(config.DefaultMemoryConfig(), 30); p.LockTicks != 24 {
		t.Errorf("LockTicks at 30Hz = %d, expected 24", p.LockTicks)
	}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9})
	return g
}

func TestGameClicks(t *testing.T) {
	if !registry.Exists("memory") {
		t.Fatal("memory should be registered")
	}
	g := newTestGame(t)

	click := func(i int) {
		r := g.cardRect(i)
		in := core.NewInputFrame()
		in.Click(r.X+1, r.Y+1)
		g.Step(in)
	}

	var res core.StepResult
	for _, idx := range pairs(g.Table()) {
		click(idx[0])
		click(idx[1])
	}
	res = g.Step(core.NewInputFrame())
	if !res.State.GameOver || res.State.Outcome != "WON" || res.State.Score != 160 {
		t.Fatalf("State = %+v", res.State)
	}
	if g.Best() != 160 {
		t.Errorf("Best() = %d, expected 160", g.Best())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)
	if g.Table().Won || g.Table().Matched() != 0 {
		t.Error("restart should reshuffle")
	}
}

func TestGameCursor(t *testing.T) {
	g := newTestGame(t)

	steps := []struct {
		action core.Action
		want   int
	}{
		{core.ActionLeft, 15},
		{core.ActionDown, 3},
		{core.ActionRight, 4},
		{core.ActionUp, 0},
	}
	for _, st := range steps {
		in := core.NewInputFrame()
		in.Set(st.action)
		g.Step(in)
		if g.cursor != st.want {
			t.Errorf("after %v cursor = %d, expected %d", st.action, g.cursor, st.want)
		}
	}

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)
	if g.Table().First != 0 {
		t.Errorf("First = %d, expected 0", g.Table().First)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "MEMORY MATCH") {
		t.Error("title should be drawn")
	}
}
