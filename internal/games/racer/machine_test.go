package racer

import (
	"errors"
	"testing"
)

// crashRand keeps dropping rocks onto the centre lane.
func crashRand() Rand {
	return &cycleRand{vals: []float64{0.0, 0.5, 0.9}}
}

func playUntilOver(t *testing.T, m *Machine) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if !m.Advance() {
			return
		}
	}
	t.Fatal("round did not end")
}

func TestMachineStart(t *testing.T) {
	m := NewMachine(DefaultParams(), nil, noSpawn)
	if m.Phase() != PhaseMenu {
		t.Fatalf("Phase() = %s, expected menu", m.Phase())
	}

	if err := m.Start(Command{Mode: ModeVersus, Difficulty: Hard}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if m.Phase() != PhasePlaying {
		t.Errorf("Phase() = %s, expected playing", m.Phase())
	}
	if m.State().Speed != 6 || m.State().Mode != ModeVersus {
		t.Errorf("state = %+v, expected hard versus", m.State().Snapshot())
	}
}

func TestMachineStartRejectsMalformed(t *testing.T) {
	m := NewMachine(DefaultParams(), nil, noSpawn)

	err := m.Start(Command{Mode: 3, Difficulty: Easy})
	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Start(mode 3) error = %v, expected ErrInvalidMode", err)
	}
	err = m.Start(Command{Mode: ModeSingle, Difficulty: "nightmare"})
	if !errors.Is(err, ErrInvalidTier) {
		t.Errorf("Start(nightmare) error = %v, expected ErrInvalidTier", err)
	}
	if m.Phase() != PhaseMenu {
		t.Error("a rejected start must stay in the menu")
	}
}

func TestMachineStartWhilePlayingIsIgnored(t *testing.T) {
	m := NewMachine(DefaultParams(), nil, noSpawn)
	_ = m.Start(Command{Mode: ModeSingle, Difficulty: Easy})
	m.Advance()
	m.Advance()

	if err := m.Start(Command{Mode: ModeVersus, Difficulty: Hard}); err != nil {
		t.Fatalf("Start() while playing returned %v", err)
	}
	if m.State().Ticks != 2 || m.Mode() != ModeSingle {
		t.Errorf("Start while playing reset the round: ticks %d mode %s", m.State().Ticks, m.Mode())
	}
}

func TestMachineSelectTierOnlyFromMenu(t *testing.T) {
	m := NewMachine(DefaultParams(), nil, noSpawn)
	if m.Difficulty() != Normal {
		t.Fatalf("default difficulty = %s, expected normal", m.Difficulty())
	}
	if err := m.SelectTier(Easy); err != nil || m.Difficulty() != Easy {
		t.Fatalf("SelectTier(easy) = %v, difficulty %s", err, m.Difficulty())
	}
	if err := m.SelectTier("extreme"); !errors.Is(err, ErrInvalidTier) {
		t.Errorf("SelectTier(extreme) error = %v, expected ErrInvalidTier", err)
	}

	_ = m.Start(Command{Mode: ModeSingle, Difficulty: Easy})
	_ = m.SelectTier(Hard)
	if m.Difficulty() != Easy {
		t.Error("tier changed while playing")
	}
}

func TestMachineRoundLifecycle(t *testing.T) {
	m := NewMachine(DefaultParams(), nil, crashRand())
	_ = m.Start(Command{Mode: ModeSingle, Difficulty: Easy})

	// A non-terminal command cannot leave playing.
	m.Menu()
	m.Restart()
	if m.Phase() != PhasePlaying {
		t.Fatalf("Phase() = %s, expected playing", m.Phase())
	}

	playUntilOver(t, m)
	if m.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %s, expected gameover", m.Phase())
	}

	res, ok := m.Result()
	if !ok || res.Outcome != OutcomeGameOver {
		t.Errorf("Result() = %+v, %v, expected GAME_OVER", res, ok)
	}
	if res.Score != m.State().Score || m.Best() != res.Score {
		t.Errorf("best %d, result %+v, state score %d", m.Best(), res, m.State().Score)
	}
	if m.Advance() {
		t.Error("Advance after game over should report stopped")
	}

	m.Restart()
	if m.Phase() != PhasePlaying || m.State().Ticks != 0 || m.State().Score != 0 {
		t.Errorf("restart did not rebuild the round: %+v", m.Snapshot())
	}
	if _, ok := m.Result(); ok {
		t.Error("Result should be cleared while playing")
	}

	playUntilOver(t, m)
	m.Menu()
	if m.Phase() != PhaseMenu {
		t.Errorf("Phase() = %s, expected menu", m.Phase())
	}
}

func TestMachineInputOnlyWhilePlaying(t *testing.T) {
	m := NewMachine(DefaultParams(), nil, noSpawn)
	m.KeyDown(KeyA)
	m.Tap(ZoneP1Left)

	_ = m.Start(Command{Mode: ModeSingle, Difficulty: Normal})
	m.Advance()
	if m.State().Players[0].X != 165 {
		t.Errorf("input queued in the menu leaked into the round: X = %v", m.State().Players[0].X)
	}

	m.KeyDown(KeyA)
	m.Advance()
	m.Advance()
	m.KeyUp(KeyA)
	m.Advance()
	if m.State().Players[0].X != 155 {
		t.Errorf("X = %v, expected 155 after two held ticks", m.State().Players[0].X)
	}
}

func TestMachineRestartDropsHeldKeys(t *testing.T) {
	m := NewMachine(DefaultParams(), nil, noSpawn)
	_ = m.Start(Command{Mode: ModeSingle, Difficulty: Easy})
	m.KeyDown(KeyD)
	m.Advance()

	// The car drifts right at 4 per tick; this rock still covers it next tick.
	m.state.Obstacles = []Obstacle{{X: 164, Y: 438, W: 40, H: 40, Kind: KindRock}}
	if m.Advance() {
		t.Fatal("expected the rock to end the round")
	}

	m.Restart()
	m.Advance()
	if m.State().Held != 0 {
		t.Errorf("held keys survived a restart: %v", m.State().Held.Keys())
	}
	if m.State().Players[0].X != 165 {
		t.Errorf("X = %v, expected the start position", m.State().Players[0].X)
	}
}

func TestMachineBestKeepsMaximum(t *testing.T) {
	m := NewMachine(DefaultParams(), nil, noSpawn)
	_ = m.Start(Command{Mode: ModeSingle, Difficulty: Easy})

	// Force an ending with a known score.
	m.state.Score = 120
	m.state.Obstacles = []Obstacle{{X: 160, Y: 438, W: 40, H: 40, Kind: KindRock}}
	m.Advance()
	if m.Best() != 120 {
		t.Fatalf("Best() = %d, expected 120", m.Best())
	}

	m.Restart()
	m.state.Obstacles = []Obstacle{{X: 160, Y: 438, W: 40, H: 40, Kind: KindRock}}
	m.Advance()
	if m.Best() != 120 {
		t.Errorf("Best() = %d, a lower score must not replace it", m.Best())
	}
	if snap := m.Snapshot(); snap.Best != 120 || snap.Phase != PhaseGameOver {
		t.Errorf("Snapshot() = %+v", snap)
	}
}

func TestParseHelpers(t *testing.T) {
	if m, err := ParseMode("2"); err != nil || m != ModeVersus {
		t.Errorf("ParseMode(2) = %v, %v", m, err)
	}
	if _, err := ParseMode("3"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("ParseMode(3) error = %v", err)
	}
	if d, err := ParseTier("Hard"); err != nil || d != Hard {
		t.Errorf("ParseTier(Hard) = %v, %v", d, err)
	}
	if k, err := ParseKey("ArrowLeft"); err != nil || k != KeyArrowLeft {
		t.Errorf("ParseKey(ArrowLeft) = %v, %v", k, err)
	}
	if _, err := ParseKey("KeyW"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("ParseKey(KeyW) error = %v", err)
	}
	if z, err := ParseZone("p2-right"); err != nil || z != ZoneP2Right {
		t.Errorf("ParseZone(p2-right) = %v, %v", z, err)
	}
	if _, err := ParseZone("p3-left"); !errors.Is(err, ErrUnknownZone) {
		t.Errorf("ParseZone(p3-left) error = %v", err)
	}
}

func TestKeySet(t *testing.T) {
	var ks KeySet
	ks = ks.With(KeyA).With(KeyArrowRight).With(Key("KeyQ"))
	if !ks.Has(KeyA) || !ks.Has(KeyArrowRight) || ks.Has(KeyD) {
		t.Errorf("Keys() = %v", ks.Keys())
	}
	if ks.Has(Key("KeyQ")) {
		t.Error("unknown keys must never be held")
	}
	ks = ks.Without(KeyA)
	if got := ks.Keys(); len(got) != 1 || got[0] != KeyArrowRight {
		t.Errorf("Keys() = %v, expected [ArrowRight]", got)
	}
}
