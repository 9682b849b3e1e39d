// Package web serves the racer to browsers over WebSocket.
//
// Each connection owns one racer.Machine. Clients send start, key, tap,
// tier, menu and restart messages; the server streams a frame message per
// tick while a round runs and one result message when it ends. Messages are
// JSON text frames unless the client connects with ?codec=msgpack.
package web

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/gamebox/internal/games/racer"
	"github.com/vovakirdan/gamebox/internal/loop"
	"github.com/vovakirdan/gamebox/internal/multiplayer"
)

// Config holds the web server settings.
type Config struct {
	// Address is the host:port to listen on.
	Address string

	// Interval is the simulation tick interval of every round.
	Interval time.Duration

	// Seed seeds the first connection; later connections add their index.
	// Zero seeds from the clock.
	Seed int64

	Params racer.Params
	Tiers  map[racer.Difficulty]racer.Tier

	ReadLimit    int64
	PongWait     time.Duration
	PingPeriod   time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns a server on :8080 ticking at 60Hz with the built-in
// racer parameters.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		Interval:     loop.RateInterval(60),
		Params:       racer.DefaultParams(),
		Tiers:        racer.DefaultTiers(),
		ReadLimit:    1 << 20,
		PongWait:     60 * time.Second,
		PingPeriod:   25 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.Params == (racer.Params{}) {
		c.Params = d.Params
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = d.ReadLimit
	}
	if c.PongWait <= 0 {
		c.PongWait = d.PongWait
	}
	if c.PingPeriod <= 0 || c.PingPeriod >= c.PongWait {
		c.PingPeriod = c.PongWait * 9 / 10
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	return c
}

// Server accepts browser connections.
type Server struct {
	cfg      Config
	saver    multiplayer.MatchResultSaver
	logger   *log.Logger
	upgrader websocket.Upgrader

	conns atomic.Int64

	mu       sync.Mutex
	sessions map[*session]struct{}
}

// NewServer creates a server. A nil saver records nothing.
func NewServer(cfg Config, saver multiplayer.MatchResultSaver, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg.withDefaults(),
		saver:  saver,
		logger: logger,
		upgrader: websocket.Upgrader{
			// The game carries no credentials, so any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sessions: make(map[*session]struct{}),
	}
}

// Handler returns the HTTP routes: /ws for the game and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	codec, err := CodecFor(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	n := s.conns.Add(1)
	seed := s.cfg.Seed + n - 1
	if s.cfg.Seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := multiplayer.NewSessionID()
	logger := s.logger.With("session", id, "remote", r.RemoteAddr)
	sess := &session{
		id:       id,
		conn:     conn,
		codec:    codec,
		cfg:      s.cfg,
		logger:   logger,
		recorder: multiplayer.NewRecorder("racer", id, s.saver, logger),
		machine:  racer.NewMachine(s.cfg.Params, s.cfg.Tiers, rand.New(rand.NewSource(seed))),
	}

	s.track(sess, true)
	defer s.track(sess, false)

	start := time.Now()
	logger.Info("connected", "codec", codec.Name())
	sess.run()
	logger.Info("disconnected", "duration", time.Since(start).Round(time.Second))
}

func (s *Server) track(sess *session, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.sessions[sess] = struct{}{}
	} else {
		delete(s.sessions, sess)
	}
}

// closeSessions drops every live connection. Their readers fail and stop
// their rounds.
func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sess := range s.sessions {
		_ = sess.conn.Close()
	}
}

// Sessions returns the number of open connections.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address, "ws", "/ws")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.closeSessions()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
