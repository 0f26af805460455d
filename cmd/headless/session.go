package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"swarmarena/game"
)

// result summarizes one finished session
type result struct {
	Seed     string        `yaml:"seed"`
	Run      string        `yaml:"run"`
	Frames   int           `yaml:"frames"`
	Wave     int           `yaml:"wave"`
	Kills    int           `yaml:"kills"`
	Score    int           `yaml:"score"`
	Pickups  int           `yaml:"pickups"`
	Defeated bool          `yaml:"defeated"`
	Elapsed  time.Duration `yaml:"elapsed"`
}

// sessionStats counts simulation events for one session
type sessionStats struct {
	game.NopListener
	pickups  int
	defeated bool
}

func (s *sessionStats) PickupCollected(game.PickupKind) { s.pickups++ }
func (s *sessionStats) PlayerDefeated(game.HUD)         { s.defeated = true }

// runSession steps one game at a fixed tick until defeat, the frame limit or
// cancellation
func runSession(ctx context.Context, cfg game.Config, input game.InputProvider, frames int, profiler *game.Profiler, log *zap.Logger) (result, error) {
	stats := &sessionStats{}
	g := game.New(cfg, game.Options{Logger: log, Listener: stats})
	log = log.With(zap.Stringer("run", g.RunID()), zap.String("seed", cfg.Seed))

	start := time.Now()
	dt := 1.0 / tickRate

	for frame := 0; frame < frames; frame++ {
		if frame%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return result{}, err
			}
		}

		tick := time.Now()
		g.Step(dt, input.Poll(g))
		if profiler != nil {
			profiler.Observe(time.Since(tick))
		}

		if g.State() == game.StateGameOver {
			break
		}
	}

	hud := g.HUD()
	r := result{
		Seed:     cfg.Seed,
		Run:      g.RunID().String(),
		Frames:   int(g.Frame()),
		Wave:     hud.Wave,
		Kills:    hud.Kills,
		Score:    hud.Score,
		Pickups:  stats.pickups,
		Defeated: stats.defeated,
		Elapsed:  time.Since(start),
	}
	log.Info("session finished",
		zap.Int("frames", r.Frames),
		zap.Int("wave", r.Wave),
		zap.Int("kills", r.Kills),
		zap.Int("score", r.Score),
		zap.Int("pickups", r.Pickups),
		zap.Bool("defeated", r.Defeated),
		zap.Duration("elapsed", r.Elapsed))
	return r, nil
}
