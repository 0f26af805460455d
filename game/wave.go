package game

import (
	"math"

	"go.uber.org/zap"
)

// updateWaves dispatches the next wave once the arena holds no enemies and
// no pickups. While anything remains it does nothing.
func (g *Game) updateWaves() {
	if g.registry.EnemyCount() > 0 || g.registry.PickupCount() > 0 {
		return
	}

	cfg := g.config.Wave
	item := g.wave%cfg.ItemEvery == 0
	spawned := 0

	if item {
		kind := PickupKind(g.rng.IntN(int(PickupKindCount)))
		g.spawnPickup(&Pickup{
			Kind:   kind,
			Pos:    g.bounds.Clamp(cfg.PickupSpawn),
			Radius: g.config.Pickup.Radius,
		})
		spawned = 1
	} else {
		count := g.wave + cfg.BaseEnemies
		for i := 0; i < count; i++ {
			g.spawnEnemy(NewEnemy(g.config.Enemy, g.enemySpawnPoint(), g.randomUnit()))
		}
		spawned = count
	}

	g.log.Debug("wave dispatched",
		zap.Stringer("run", g.runID),
		zap.Int("wave", g.wave),
		zap.Bool("item", item),
		zap.Int("spawned", spawned))
	g.listener.WaveDispatched(g.wave, item, spawned)

	g.wave++
}

// enemySpawnPoint draws a point uniformly from the disk scaled to the arena
// half-extent, retrying a few times to keep clear of the player
func (g *Game) enemySpawnPoint() Vec2 {
	cfg := g.config.Wave
	half := g.config.Arena.HalfExtent()

	var p Vec2
	for attempt := 0; attempt < cfg.SpawnAttempts; attempt++ {
		r := math.Sqrt(g.rng.Float64())
		angle := g.rng.Float64() * 2 * math.Pi
		p = g.bounds.Clamp(Vec2{
			X: math.Cos(angle) * r * half.X,
			Y: math.Sin(angle) * r * half.Y,
		})
		if p.Dist(g.player.Pos) >= cfg.SpawnClearance {
			break
		}
	}
	return p
}
