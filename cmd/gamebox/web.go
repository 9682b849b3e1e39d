package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gamebox/internal/config"
	"github.com/vovakirdan/gamebox/internal/games/racer"
	"github.com/vovakirdan/gamebox/internal/loop"
	"github.com/vovakirdan/gamebox/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the racer to browsers over WebSocket",
	Long: `Start an HTTP server with a WebSocket endpoint at /ws.

Every connection plays its own racer session. Clients send JSON
messages such as {"type":"start","mode":2,"difficulty":"hard"} and
receive a frame per tick plus a result when the round ends.
Connect with ?codec=msgpack for binary msgpack frames instead.

Examples:
  gamebox web
  gamebox web --addr :9000 --config ./racer.toml
  gamebox web --db ./scores.db --log-level debug`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom racer config (YAML or TOML)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	racerCfg, err := config.LoadRacer(flagConfig)
	if err != nil {
		return err
	}
	params, tiers := racer.ParamsFromConfig(racerCfg)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.Interval = loop.RateInterval(flagFPS)
	cfg.Seed = flagSeed
	cfg.Params = params
	cfg.Tiers = tiers

	var srv *web.Server
	if store != nil {
		srv = web.NewServer(cfg, store, logger)
	} else {
		srv = web.NewServer(cfg, nil, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("WebSocket endpoint: ws://localhost:%s/ws\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")
	return srv.ListenAndServe(ctx)
}
