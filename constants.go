package main

import "image/color"

// Color constants
var (
	colorBackground   = color.NRGBA{R: 3, G: 5, B: 16, A: 255}
	colorArenaBorder  = color.NRGBA{R: 24, G: 48, B: 96, A: 255}
	colorGrid         = color.NRGBA{R: 20, G: 28, B: 52, A: 255}
	colorGridOccupied = color.NRGBA{R: 40, G: 70, B: 130, A: 255}
	colorPlayer       = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	colorEnemy        = color.NRGBA{R: 255, G: 60, B: 40, A: 255}
	colorBullet       = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	colorHealthBack   = color.NRGBA{R: 100, G: 0, B: 0, A: 255}
	colorHealthFront  = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	colorHUDText      = color.NRGBA{R: 220, G: 230, B: 255, A: 255}
	colorOverlay      = color.NRGBA{R: 0, G: 0, B: 0, A: 160}
	colorKillSpark    = color.NRGBA{R: 255, G: 140, B: 40, A: 255}
)

// pickupColors is indexed by game.PickupKind
var pickupColors = [...]color.NRGBA{
	{R: 255, G: 80, B: 160, A: 255},  // max health
	{R: 255, G: 120, B: 0, A: 255},   // damage
	{R: 80, G: 200, B: 255, A: 255},  // shot speed
	{R: 200, G: 120, B: 255, A: 255}, // fire rate
}

// UI constants
const (
	hudMargin          = 8
	hudLineHeight      = 16
	hudLabelMarginX    = 64
	hudLabelMarginY    = 12
	indicatorMargin    = 18.0
	indicatorArrowLen  = 18.0
	indicatorLabelX    = 8
	indicatorLabelY    = 8
	healthBarHeight    = 4.0
	cameraFollowRate   = 6.0 // 1/s, exponential follow toward the player
	windowedSizeRatio  = 0.9
	killBurstParticles = 14
)
