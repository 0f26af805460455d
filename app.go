package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"swarmarena/game"
)

// App is the ebiten shell around the simulation. It polls input, steps the
// game once per tick and draws whatever the game exposes through its views.
type App struct {
	game      *game.Game
	world     *game.World
	input     game.InputProvider
	camera    *Camera
	renderer  *Renderer
	particles *ParticleSystem
	log       *zap.Logger

	views    []game.View
	showGrid bool
}

var (
	_ ebiten.Game   = (*App)(nil)
	_ game.Listener = (*App)(nil)
)

// NewApp creates the shell and its simulation
func NewApp(config game.Config, log *zap.Logger) *App {
	camera := NewCamera(float64(config.Screen.Width), float64(config.Screen.Height))
	world := game.NewWorld(config.Sanitize().Arena)

	a := &App{
		world:     world,
		input:     &keyboardInput{camera: camera},
		camera:    camera,
		renderer:  NewRenderer(camera),
		particles: NewParticleSystem(512),
		log:       log,
		views:     make([]game.View, 0, 256),
	}
	a.game = game.New(config, game.Options{
		Logger:   log,
		Index:    world,
		Listener: a,
	})
	camera.Snap(a.game.Player().Pos)

	log.Info("session started",
		zap.Stringer("run", a.game.RunID()),
		zap.String("seed", config.Seed))
	return a
}

// Update advances the simulation by one tick
func (a *App) Update() error {
	a.handleShellKeys()

	dt := 1.0 / float64(ebiten.TPS())
	before := a.game.RunID()
	a.game.Step(dt, a.input.Poll(a.game))
	if a.game.RunID() != before {
		a.particles.Clear()
		a.camera.Snap(a.game.Player().Pos)
	}

	if a.game.State() == game.StatePlaying {
		a.particles.Update(dt)
		a.camera.Follow(a.game.Player().Pos, dt)
	}
	return nil
}

// Draw renders the current frame
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if a.showGrid {
		a.renderer.RenderGrid(screen, a.world)
	}

	a.views = a.game.Views(a.views[:0])
	a.renderer.Render(screen, a.game.Bounds(), a.views)
	a.particles.Draw(screen, a.camera)
	drawOffscreenIndicators(screen, a.camera, a.game.Player().Pos, a.views)

	hud := a.game.HUD()
	drawHUD(screen, hud)
	drawStateOverlay(screen, hud)
}

// Layout keeps the logical screen equal to the window size
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.camera.Width = float64(outsideWidth)
	a.camera.Height = float64(outsideHeight)
	return outsideWidth, outsideHeight
}

func (a *App) WaveDispatched(wave int, item bool, spawned int) {}

func (a *App) EnemyKilled(h game.Handle, points int) {
	if e, ok := a.game.Registry().Enemy(h); ok {
		a.particles.Burst(e.Pos, killBurstParticles, colorKillSpark)
	}
}

func (a *App) PickupCollected(kind game.PickupKind) {
	if int(kind) < len(pickupColors) {
		a.particles.Burst(a.game.Player().Pos, killBurstParticles/2, pickupColors[kind])
	}
}

func (a *App) PlayerDefeated(hud game.HUD) {}
