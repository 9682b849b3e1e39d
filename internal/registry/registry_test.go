package registry

import (
	"testing"
	"time"

	"github.com/vovakirdan/gamebox/internal/core"
)

type stubGame struct {
	id       string
	interval time.Duration
}

func (s *stubGame) ID() string { return s.id }
func (s *stubGame) Title() string { return "Stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig) {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen) {}
func (s *stubGame) State() core.GameState { return core.GameState{} }

type pacedGame struct{ stubGame }

func (p *pacedGame) TickInterval() time.Duration { return p.interval }

func TestRegisterListCreate(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	posA, posB := -1, -1
	for i, id := range ids {
		switch id {
		case "zz_stub_a":
			posA = i
		case "zz_stub_b":
			posB = i
		}
	}
	if posA < 0 || posB < 0 || posA > posB {
		t.Errorf("List() = %v, expected both stubs sorted by ID", ids)
	}

	g, err := Create("zz_stub_a")
	if err != nil || g.Title() != "Stub zz_stub_a" {
		t.Errorf("Create() = %v, %v", g, err)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for an unknown game")
	}
	if !Exists("zz_stub_b") || Exists("missing") {
		t.Error("Exists() returned the wrong answer")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_stub_dup", func() Game { return &stubGame{id: "zz_stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	Register("zz_stub_dup", func() Game { return &stubGame{id: "zz_stub_dup"} })
}

func TestTickInterval(t *testing.T) {
	fallback := time.Second / 60

	if got := TickInterval(&stubGame{}, fallback); got != fallback {
		t.Errorf("TickInterval(plain) = %v, expected fallback", got)
	}
	paced := &pacedGame{stubGame{interval: 150 * time.Millisecond}}
	if got := TickInterval(paced, fallback); got != 150*time.Millisecond {
		t.Errorf("TickInterval(paced) = %v, expected 150ms", got)
	}
}
