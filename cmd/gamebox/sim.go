package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gamebox/internal/config"
	"github.com/vovakirdan/gamebox/internal/games/racer"
	"github.com/vovakirdan/gamebox/internal/games/snake"
	"github.com/vovakirdan/gamebox/internal/loop"
)

var (
	flagTicks    int
	flagRealtime bool
	flagSimMode  int
	flagSimDiff  string
)

var simCmd = &cobra.Command{
	Use:   "sim racer|snake",
	Short: "Run a headless round and print the result",
	Long: `Run one round without a display. The racer runs without input until a
crash; the snake steers itself toward the food. Equal seeds give equal
results.

With --realtime the round is paced at the game's tick rate instead of
running as fast as possible.

Examples:
  gamebox sim racer --seed 42 --difficulty hard
  gamebox sim racer --mode 2 --ticks 5000
  gamebox sim snake --seed 7 --realtime`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"racer", "snake"},
	RunE:      runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 100000, "Maximum number of ticks")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at the game's rate")
	simCmd.Flags().IntVar(&flagSimMode, "mode", 1, "Racer players: 1 or 2")
	simCmd.Flags().StringVar(&flagSimDiff, "difficulty", "normal", "Racer tier: easy, normal, hard")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
}

func runSim(_ *cobra.Command, args []string) error {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch args[0] {
	case "racer":
		cfg, err := config.LoadRacer(flagConfig)
		if err != nil {
			return err
		}
		interval := time.Duration(0)
		if flagRealtime {
			interval = loop.RateInterval(flagFPS)
		}
		res, finished, err := simRacer(cfg, racer.Command{Mode: racer.Mode(flagSimMode), Difficulty: racer.Difficulty(flagSimDiff)}, seed, flagTicks, interval)
		if err != nil {
			return err
		}
		if !finished {
			fmt.Printf("racer: still running after %d ticks, score %d\n", res.Ticks, res.Score)
			return nil
		}
		fmt.Printf("racer: %s score %d after %d ticks (%s/%s, seed %d)\n",
			res.Outcome, res.Score, res.Ticks, res.Mode, res.Difficulty, seed)
		return nil

	case "snake":
		cfg, err := config.LoadSnake(flagConfig)
		if err != nil {
			return err
		}
		params := snake.ParamsFromConfig(cfg)
		interval := time.Duration(0)
		if flagRealtime {
			interval = params.Interval
		}
		st := simSnake(params, seed, flagTicks, interval)
		fmt.Printf("snake: %s won=%t score %d length %d after %d ticks (seed %d)\n",
			st.Status, st.Won, st.Score, len(st.Body), st.Ticks, seed)
		return nil

	default:
		return fmt.Errorf("sim supports racer and snake, not %q", args[0])
	}
}

// pace runs step until it returns false or maxTicks is reached. A zero
// interval runs flat out on the calling goroutine; otherwise a Task ticks
// at that interval and pace waits for it to end.
func pace(interval time.Duration, maxTicks int, step func() bool) {
	if interval <= 0 {
		for i := 0; i < maxTicks; i++ {
			if !step() {
				return
			}
		}
		return
	}

	n := 0
	task := loop.NewTask(interval)
	if err := task.Start(func(time.Time) bool {
		n++
		return step() && n < maxTicks
	}); err != nil {
		return
	}
	<-task.Done()
}

// simRacer plays one racer round with no input. The bool reports whether
// the round ended within maxTicks.
func simRacer(cfg config.RacerConfig, cmd racer.Command, seed int64, maxTicks int, interval time.Duration) (racer.Result, bool, error) {
	params, tiers := racer.ParamsFromConfig(cfg)
	m := racer.NewMachine(params, tiers, rand.New(rand.NewSource(seed)))
	if err := m.Start(cmd); err != nil {
		return racer.Result{}, false, err
	}

	pace(interval, maxTicks, m.Advance)

	if res, ok := m.Result(); ok {
		return res, true, nil
	}
	st := m.State()
	return racer.Result{Score: st.Score, Mode: m.Mode(), Difficulty: m.Difficulty(), Ticks: st.Ticks}, false, nil
}

// simSnake plays one snake round steered by steer.
func simSnake(p snake.Params, seed int64, maxTicks int, interval time.Duration) snake.State {
	rng := rand.New(rand.NewSource(seed))
	st := snake.NewState(p)

	pace(interval, maxTicks, func() bool {
		st = snake.Tick(snake.Turn(st, steer(st)), rng)
		return st.Status != snake.StatusOver
	})
	return st
}

// steer picks a direction toward the food that does not hit a wall or the
// body on the next move, preferring the axis with the larger gap.
func steer(s snake.State) snake.Point {
	head := s.Head()
	dx, dy := s.Food.X-head.X, s.Food.Y-head.Y

	var prefs []snake.Point
	horizontal := func() {
		if dx > 0 {
			prefs = append(prefs, snake.DirRight)
		} else if dx < 0 {
			prefs = append(prefs, snake.DirLeft)
		}
	}
	vertical := func() {
		if dy > 0 {
			prefs = append(prefs, snake.DirDown)
		} else if dy < 0 {
			prefs = append(prefs, snake.DirUp)
		}
	}
	if abs(dx) >= abs(dy) {
		horizontal()
		vertical()
	} else {
		vertical()
		horizontal()
	}
	prefs = append(prefs, s.Dir, snake.DirUp, snake.DirRight, snake.DirDown, snake.DirLeft)

	reverse := snake.Point{X: -s.Dir.X, Y: -s.Dir.Y}
	for _, d := range prefs {
		if d == snake.DirNone || (s.Dir != snake.DirNone && d == reverse) {
			continue
		}
		next := head.Add(d)
		if next.X < 0 || next.X >= s.Params.Width || next.Y < 0 || next.Y >= s.Params.Height {
			continue
		}
		if s.Occupies(next) {
			continue
		}
		return d
	}
	if s.Dir != snake.DirNone {
		return s.Dir
	}
	return snake.DirRight
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
