package main

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"swarmarena/game"
)

// Camera represents the viewport into the world. World Y points up and
// screen Y points down, so the camera flips the vertical axis.
type Camera struct {
	X, Y   float64 // Camera position in world coordinates
	Zoom   float64 // Zoom level
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a new camera
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(p game.Vec2) (float64, float64) {
	sx := (p.X-c.X)*c.Zoom + c.Width/2
	sy := -(p.Y-c.Y)*c.Zoom + c.Height/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) game.Vec2 {
	return game.Vec2{
		X: (sx-c.Width/2)/c.Zoom + c.X,
		Y: -(sy-c.Height/2)/c.Zoom + c.Y,
	}
}

// Follow eases the camera toward target
func (c *Camera) Follow(target game.Vec2, dt float64) {
	t := 1 - math.Exp(-cameraFollowRate*dt)
	c.X += (target.X - c.X) * t
	c.Y += (target.Y - c.Y) * t
}

// Snap centers the camera on target immediately
func (c *Camera) Snap(target game.Vec2) {
	c.X, c.Y = target.X, target.Y
}

// OnScreen reports whether a screen point lies within margin of the viewport
func (c *Camera) OnScreen(sx, sy, margin float64) bool {
	return sx >= -margin && sx <= c.Width+margin && sy >= -margin && sy <= c.Height+margin
}

// Renderer handles rendering of game entities
type Renderer struct {
	camera *Camera
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera) *Renderer {
	return &Renderer{
		camera: camera,
	}
}

// SortByDepth orders views back to front. Entities higher up the arena are
// further away and drawn first.
func SortByDepth(views []game.View) {
	slices.SortStableFunc(views, func(a, b game.View) int {
		return cmp.Compare(b.Pos.Y, a.Pos.Y)
	})
}

// Render draws the arena border then every view in depth order
func (r *Renderer) Render(screen *ebiten.Image, bounds game.Rect, views []game.View) {
	r.renderBounds(screen, bounds)

	SortByDepth(views)
	for i := range views {
		r.RenderEntity(screen, &views[i])
	}
}

func (r *Renderer) renderBounds(screen *ebiten.Image, bounds game.Rect) {
	x0, y0 := r.camera.WorldToScreen(game.Vec2{X: bounds.Min.X, Y: bounds.Max.Y})
	x1, y1 := r.camera.WorldToScreen(game.Vec2{X: bounds.Max.X, Y: bounds.Min.Y})
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, colorArenaBorder, true)
}

// RenderEntity renders a single entity
func (r *Renderer) RenderEntity(screen *ebiten.Image, v *game.View) {
	sx, sy := r.camera.WorldToScreen(v.Pos)

	// Skip if outside screen bounds (with margin)
	if !r.camera.OnScreen(sx, sy, 100) {
		return
	}

	var clr color.Color
	switch v.Type {
	case game.EntityTypePlayer:
		clr = colorPlayer
	case game.EntityTypeEnemy:
		clr = colorEnemy
	case game.EntityTypeBullet:
		clr = colorBullet
	case game.EntityTypePickup:
		clr = pickupColor(v.PickupKind)
	default:
		clr = color.White
	}

	radius := math.Max(v.Radius*r.camera.Zoom, 1)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)

	// Direction indicator
	if v.Type == game.EntityTypePlayer || v.Type == game.EntityTypeEnemy {
		dirLength := radius * 1.5
		endX := sx + v.Facing.X*dirLength
		endY := sy - v.Facing.Y*dirLength
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(endX), float32(endY), 2, clr, true)
	}

	// Health bar for damaged entities
	if v.MaxHealth > 0 && v.Health < v.MaxHealth {
		barWidth := radius * 2
		barHeight := healthBarHeight * r.camera.Zoom
		barX := sx - barWidth/2
		barY := sy - radius - barHeight - 2

		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), colorHealthBack, true)

		healthPercent := math.Max(v.Health, 0) / v.MaxHealth
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth*healthPercent), float32(barHeight), colorHealthFront, true)
	}
}

// RenderGrid draws the spatial grid with occupied cells highlighted and
// their collider counts printed
func (r *Renderer) RenderGrid(screen *ebiten.Image, world *game.World) {
	size := world.Config.CellSize
	origin := game.Vec2{X: -world.Config.Width / 2, Y: -world.Config.Height / 2}

	for x, column := range world.Cells {
		for y, cell := range column {
			minCorner := origin.Add(game.Vec2{X: float64(x) * size, Y: float64(y+1) * size})
			sx, sy := r.camera.WorldToScreen(minCorner)
			w := size * r.camera.Zoom
			if !r.camera.OnScreen(sx, sy, w) {
				continue
			}

			clr := colorGrid
			if cell.Count > 0 {
				clr = colorGridOccupied
				ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", cell.Count), int(sx)+2, int(sy)+2)
			}
			vector.StrokeRect(screen, float32(sx), float32(sy), float32(w), float32(w), 1, clr, false)
		}
	}
}

func pickupColor(kind game.PickupKind) color.Color {
	if kind < 0 || int(kind) >= len(pickupColors) {
		return color.White
	}
	return pickupColors[kind]
}
