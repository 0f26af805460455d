package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"swarmarena/game"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (yaml, toml or json)")
	seed := flag.String("seed", "", "Seed override; empty keeps the config seed")
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
	if *seed != "" {
		config.Seed = *seed
	}

	logger, err := game.NewLogger(config.Log)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	app := NewApp(config, logger)

	ebiten.SetWindowSize(config.Screen.Width, config.Screen.Height)
	ebiten.SetWindowTitle("Swarm Arena")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(app); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}
