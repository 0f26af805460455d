package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"swarmarena/game"
)

// keyboardInput maps keyboard and mouse state onto game.Input.
// Pause and restart are edge triggered; movement and fire are level triggered.
type keyboardInput struct {
	camera *Camera
}

var _ game.InputProvider = (*keyboardInput)(nil)

func (k *keyboardInput) Poll(g *game.Game) game.Input {
	var move game.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		move.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		move.Y--
	}

	cx, cy := ebiten.CursorPosition()

	return game.Input{
		Move:         move,
		Fire:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace),
		RapidFire:    ebiten.IsKeyPressed(ebiten.KeyShift),
		AimTarget:    k.camera.ScreenToWorld(float64(cx), float64(cy)),
		HasAimTarget: true,
		Pause:        inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP),
		Restart:      inpututil.IsKeyJustPressed(ebiten.KeyR) && g.State() != game.StatePlaying,
	}
}

// handleShellKeys processes window-level keys that never reach the simulation
func (a *App) handleShellKeys() {
	// Alt+Enter toggles fullscreen
	altPressed := ebiten.IsKeyPressed(ebiten.KeyAlt)
	if altPressed && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if !fullscreen {
			// Back to windowed at a reasonable fraction of the monitor
			monitorWidth, monitorHeight := ebiten.ScreenSizeInFullscreen()
			ebiten.SetWindowSize(int(float64(monitorWidth)*windowedSizeRatio), int(float64(monitorHeight)*windowedSizeRatio))
		}
	}

	// F3 toggles the spatial grid overlay
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.showGrid = !a.showGrid
	}
}
