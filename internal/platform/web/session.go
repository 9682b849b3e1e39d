package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/gamebox/internal/core"
	"github.com/vovakirdan/gamebox/internal/games/racer"
	"github.com/vovakirdan/gamebox/internal/loop"
	"github.com/vovakirdan/gamebox/internal/multiplayer"
)

// session is one browser connection playing the racer.
//
// The reader goroutine applies client messages to the machine and the
// round's task advances it; mu serializes the two. Each round gets a new
// Task, and the previous one is stopped before the next begins.
type session struct {
	id       multiplayer.SessionID
	conn     *websocket.Conn
	codec    Codec
	cfg      Config
	logger   *log.Logger
	recorder *multiplayer.Recorder

	mu      sync.Mutex
	machine *racer.Machine

	// task is only touched by the reader goroutine.
	task *loop.Task

	writeMu sync.Mutex
}

func (s *session) run() {
	defer s.stopRound()

	s.conn.SetReadLimit(s.cfg.ReadLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.ping(done)

	s.mu.Lock()
	snap := s.machine.Snapshot()
	s.mu.Unlock()
	if err := s.send(frameMessage(snap)); err != nil {
		return
	}

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("read failed", "err", err)
			}
			return
		}

		var msg ClientMessage
		if err := s.codec.Unmarshal(data, &msg); err != nil {
			if s.send(errorMessage(fmt.Errorf("web: malformed message: %w", err))) != nil {
				return
			}
			continue
		}
		if err := s.handle(msg); err != nil {
			return
		}
	}
}

// handle applies one message. Only write failures are returned.
func (s *session) handle(msg ClientMessage) error {
	s.mu.Lock()
	began, err := apply(s.machine, msg)
	snap := s.machine.Snapshot()
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("message rejected", "type", msg.Type, "err", err)
		return s.send(errorMessage(err))
	}
	if began {
		return s.startRound()
	}
	if msg.Type == TypeMenu || msg.Type == TypeTier {
		return s.send(frameMessage(snap))
	}
	return nil
}

func (s *session) startRound() error {
	s.stopRound()
	s.recorder.Begin()

	s.task = loop.NewTask(s.cfg.Interval)
	if err := s.task.Start(s.tick); err != nil {
		return fmt.Errorf("web: start round: %w", err)
	}
	s.logger.Debug("round started", "match", s.recorder.Match().ID())
	return nil
}

func (s *session) stopRound() {
	if s.task != nil {
		s.task.Stop()
		s.task = nil
	}
}

// tick advances the round once and streams the frame. A failed write ends
// the round; the reader notices the broken connection on its own.
func (s *session) tick(time.Time) bool {
	s.mu.Lock()
	playing := s.machine.Advance()
	snap := s.machine.Snapshot()
	res, over := s.machine.Result()
	s.mu.Unlock()

	if err := s.send(frameMessage(snap)); err != nil {
		s.logger.Debug("frame not sent", "err", err)
		return false
	}
	if playing {
		return true
	}
	if over {
		s.finish(res)
	}
	return false
}

func (s *session) finish(res racer.Result) {
	data, _ := s.recorder.Observe(core.GameState{
		GameOver: true,
		Score:    res.Score,
		Outcome:  string(res.Outcome),
		Detail:   fmt.Sprintf("%s/%s", res.Mode, res.Difficulty),
	})
	if err := s.send(resultMessage(data.MatchID, res)); err != nil {
		s.logger.Debug("result not sent", "err", err)
	}
}

// send writes one message with a bounded deadline.
func (s *session) send(msg ServerMessage) error {
	data, err := s.codec.Marshal(msg)
	if err != nil {
		return fmt.Errorf("web: encode %s: %w", msg.Type, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	return s.conn.WriteMessage(s.codec.FrameType(), data)
}

// ping keeps idle connections alive between rounds.
func (s *session) ping(done <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.cfg.WriteTimeout)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
