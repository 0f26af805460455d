package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"swarmarena/game"
)

const tickRate = 60.0

func main() {
	configPath := flag.String("config", "", "Path to a config file (yaml, toml or json)")
	sessions := flag.Int("sessions", 4, "Number of sessions to run in parallel")
	frames := flag.Int("frames", 60*60*5, "Frame limit per session")
	seed := flag.String("seed", "seed", "Base seed; session i uses <seed>-<i>")
	scriptPath := flag.String("script", "", "JavaScript pilot defining decide(ctx); empty uses the built-in autopilot")
	scriptEvery := flag.Int("script-every", 1, "Run the pilot script once per this many frames")
	profileDir := flag.String("profile-dir", "", "Write CPU profiles and traces here when a frame is slow")
	reportPath := flag.String("report", "", "Write per-session results as YAML to this path")
	frameBudget := flag.Duration("frame-budget", 4*time.Millisecond, "Frame time that triggers a profile capture")
	flag.Parse()

	config := game.DefaultConfig()
	if *configPath != "" {
		loaded, err := game.LoadConfig(*configPath)
		if err != nil {
			bootstrap, _ := zap.NewProduction()
			bootstrap.Fatal("failed to load config", zap.Error(err))
		}
		config = loaded
	}

	logger, err := game.NewLogger(config.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var script string
	if *scriptPath != "" {
		code, err := os.ReadFile(*scriptPath)
		if err != nil {
			logger.Fatal("failed to read pilot script", zap.String("path", *scriptPath), zap.Error(err))
		}
		script = string(code)
	}

	var profiler *game.Profiler
	if *profileDir != "" {
		profiler, err = game.NewProfiler(*profileDir, *frameBudget, logger)
		if err != nil {
			logger.Fatal("failed to create profiler", zap.Error(err))
		}
		defer profiler.Wait()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := make([]result, *sessions)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for i := 0; i < *sessions; i++ {
		eg.Go(func() error {
			cfg := config
			cfg.Seed = fmt.Sprintf("%s-%d", *seed, i)

			input, err := newPilot(script, *scriptEvery, logger)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}

			r, err := runSession(ctx, cfg, input, *frames, profiler, logger.With(zap.Int("session", i)))
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		logger.Fatal("soak run failed", zap.Error(err))
	}

	if *reportPath != "" {
		if err := writeReport(*reportPath, results); err != nil {
			logger.Error("failed to write report", zap.Error(err))
		}
	}

	var frameTotal, killTotal int
	for _, r := range results {
		frameTotal += r.Frames
		killTotal += r.Kills
	}
	logger.Info("soak run complete",
		zap.Int("sessions", len(results)),
		zap.Int("frames", frameTotal),
		zap.Int("kills", killTotal))
}

// newPilot returns the input provider for one session. Each session gets its
// own goja runtime since runtimes are not safe for concurrent use.
func newPilot(script string, every int, logger *zap.Logger) (game.InputProvider, error) {
	if script == "" {
		return game.NewAutopilot(), nil
	}
	pilot, err := game.NewScriptPilot(script, logger)
	if err != nil {
		return nil, err
	}
	pilot.Every = every
	return pilot, nil
}

// writeReport stores session results as a YAML document
func writeReport(path string, results []result) error {
	data, err := yaml.Marshal(struct {
		Sessions []result `yaml:"sessions"`
	}{results})
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
