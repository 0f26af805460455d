package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"swarmarena/game"
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s with its top-left corner at x, y
func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = hudLineHeight
	text.Draw(screen, s, hudFace, op)
}

// drawTextCentered draws s centered on x, y
func drawTextCentered(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	w, h := text.Measure(s, hudFace, hudLineHeight)
	drawText(screen, s, x-w/2, y-h/2, clr)
}

// drawHUD draws score, health, wave and kill counters
func drawHUD(screen *ebiten.Image, hud game.HUD) {
	lines := fmt.Sprintf("Score: %d\nHealth: %.0f / %.0f\nWave: %d\nKills: %d",
		hud.Score, math.Max(hud.Health, 0), hud.MaxHealth, hud.Wave, hud.Kills)
	drawText(screen, lines, hudMargin, hudMargin, colorHUDText)

	// Health bar under the counters
	barWidth := 160.0
	barY := float64(hudMargin + 4*hudLineHeight + 4)
	vector.DrawFilledRect(screen, hudMargin, float32(barY), float32(barWidth), healthBarHeight*2, colorHealthBack, false)
	if hud.MaxHealth > 0 {
		fill := math.Max(hud.Health, 0) / hud.MaxHealth
		vector.DrawFilledRect(screen, hudMargin, float32(barY), float32(barWidth*math.Min(fill, 1)), healthBarHeight*2, colorHealthFront, false)
	}
}

// drawStateOverlay dims the screen and explains how to continue when the
// session is paused or over
func drawStateOverlay(screen *ebiten.Image, hud game.HUD) {
	var title, hint string
	switch hud.State {
	case game.StatePaused:
		title, hint = "PAUSED", "Esc/P to resume, R to restart"
	case game.StateGameOver:
		title = "GAME OVER"
		hint = fmt.Sprintf("Score %d, wave %d, kills %d. R to restart", hud.Score, hud.Wave, hud.Kills)
	default:
		return
	}

	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), colorOverlay, false)
	drawTextCentered(screen, title, w/2, h/2-hudLineHeight, colorHUDText)
	drawTextCentered(screen, hint, w/2, h/2+hudLineHeight, colorHUDText)
}

// drawOffscreenIndicators draws edge-of-screen markers for enemies outside
// the viewport. Enemies that pile into the same corner share one marker.
func drawOffscreenIndicators(screen *ebiten.Image, camera *Camera, player game.Vec2, views []game.View) {
	width, height := camera.Width, camera.Height
	minX, maxX := indicatorMargin, width-indicatorMargin
	minY, maxY := indicatorMargin, height-indicatorMargin

	type cornerStat struct {
		count   int
		minDist float64
		dir     game.Vec2
		pos     game.Vec2
	}
	corners := map[[2]bool]*cornerStat{}

	drawIndicator := func(pos, dir game.Vec2, dist float64, count int) {
		tip := pos.Add(dir.Scale(indicatorArrowLen * 0.6))
		tail := pos.Sub(dir.Scale(indicatorArrowLen * 0.4))
		ebitenutil.DrawLine(screen, tail.X, tail.Y, tip.X, tip.Y, colorEnemy)

		wingLen := indicatorArrowLen * 0.5
		left := dir.Rotate(math.Pi / 6).Scale(wingLen)
		right := dir.Rotate(-math.Pi / 6).Scale(wingLen)
		ebitenutil.DrawLine(screen, tip.X, tip.Y, tip.X-left.X, tip.Y-left.Y, colorEnemy)
		ebitenutil.DrawLine(screen, tip.X, tip.Y, tip.X-right.X, tip.Y-right.Y, colorEnemy)

		label := fmt.Sprintf("%.0f", dist)
		if count > 1 {
			label = fmt.Sprintf("%.0f (x%d)", dist, count)
		}
		labelX := math.Max(4, math.Min(pos.X+indicatorLabelX, width-hudLabelMarginX))
		labelY := math.Max(4, math.Min(pos.Y-indicatorLabelY, height-hudLabelMarginY))
		ebitenutil.DebugPrintAt(screen, label, int(labelX), int(labelY))
	}

	center := game.Vec2{X: width / 2, Y: height / 2}
	for i := range views {
		v := &views[i]
		if v.Type != game.EntityTypeEnemy {
			continue
		}

		sx, sy := camera.WorldToScreen(v.Pos)
		if camera.OnScreen(sx, sy, 0) {
			continue
		}

		dist := v.Pos.Dist(player)
		dir := game.Vec2{X: sx, Y: sy}.Sub(center).Normalize()
		if dir.IsZero() {
			continue
		}

		clamped := game.Vec2{
			X: math.Min(math.Max(sx, minX), maxX),
			Y: math.Min(math.Max(sy, minY), maxY),
		}

		isCorner := (clamped.X == minX || clamped.X == maxX) && (clamped.Y == minY || clamped.Y == maxY)
		if !isCorner {
			drawIndicator(clamped, dir, dist, 1)
			continue
		}

		key := [2]bool{clamped.X == minX, clamped.Y == minY}
		if stat, ok := corners[key]; ok {
			stat.count++
			if dist < stat.minDist {
				stat.minDist, stat.dir, stat.pos = dist, dir, clamped
			}
		} else {
			corners[key] = &cornerStat{count: 1, minDist: dist, dir: dir, pos: clamped}
		}
	}

	for _, stat := range corners {
		drawIndicator(stat.pos, stat.dir, stat.minDist, stat.count)
	}
}
