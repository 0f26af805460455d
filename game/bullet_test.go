package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulletWaitsOneFrameBeforeMoving(t *testing.T) {
	g, _ := newTestGame(t)
	g.frame = 1
	g.player.FireClock = 1

	g.updatePlayer(testDT, Input{Fire: true, AimDir: Vec2{1, 0}})
	h := g.registry.Bullets()[0]
	b, _ := g.registry.Bullet(h)
	start := b.Pos

	g.updateBullets(testDT)
	assert.Equal(t, start, b.Pos, "bullet fired this frame must not move")

	g.frame++
	g.updateBullets(testDT)
	assert.InDelta(t, start.X+800*testDT, b.Pos.X, 1e-9)
}

func TestThreeHitsKillEnemyOnce(t *testing.T) {
	g, rec := newTestGame(t)
	eh, e := placeEnemy(g, Vec2{300, 0})

	want := []float64{60, 20}
	for i, health := range want {
		placeBullet(g, e.Pos, 40, 3)
		g.updateBullets(testDT)
		g.updateEnemies(testDT)
		g.registry.Flush()

		require.True(t, g.registry.Alive(eh), "hit %d", i+1)
		assert.InDelta(t, health, e.Health, 1e-9, "hit %d", i+1)
		assert.Equal(t, 0, g.Kills())
	}

	placeBullet(g, e.Pos, 40, 3)
	g.updateBullets(testDT)
	assert.Equal(t, 1, g.Kills())
	assert.Equal(t, 10, g.player.Score)

	g.updateEnemies(testDT)
	g.registry.Flush()
	assert.False(t, g.registry.Alive(eh))

	// Leftover bullets sitting on the corpse change nothing
	g.frame++
	g.updateBullets(testDT)
	assert.Equal(t, 1, g.Kills())
	assert.Equal(t, 10, g.player.Score)
	assert.Equal(t, 1, rec.kills)
	assert.Equal(t, 10, rec.points)
}

func TestPiercingBulletHitsEachEnemyOnce(t *testing.T) {
	g, _ := newTestGame(t)
	_, e := placeEnemy(g, Vec2{300, 0})
	e.Radius = 80

	bh, b := placeBullet(g, Vec2{300, 0}, 10, 2)
	for i := 0; i < 5; i++ {
		g.updateBullets(testDT)
		g.frame++
	}

	assert.InDelta(t, 90, e.Health, 1e-9)
	assert.Equal(t, 1, b.Piercing)
	assert.True(t, g.registry.Alive(bh))
	assert.Len(t, b.Hits, 1)
}

func TestPiercingSpentAcrossEnemies(t *testing.T) {
	g, _ := newTestGame(t)
	_, first := placeEnemy(g, Vec2{300, 0})
	_, second := placeEnemy(g, Vec2{305, 0})
	_, third := placeEnemy(g, Vec2{310, 0})

	bh, b := placeBullet(g, Vec2{305, 0}, 10, 2)
	g.updateBullets(testDT)

	// Results come back in slot order, so the first two spawned take the hits
	assert.InDelta(t, 90, first.Health, 1e-9)
	assert.InDelta(t, 90, second.Health, 1e-9)
	assert.InDelta(t, 100, third.Health, 1e-9)
	assert.Equal(t, 0, b.Piercing)
	assert.False(t, g.registry.Alive(bh))
}

func TestZeroPiercingBulletIsConsumedOnHit(t *testing.T) {
	g, _ := newTestGame(t)
	_, e := placeEnemy(g, Vec2{300, 0})

	bh, b := placeBullet(g, e.Pos, 10, 0)
	g.updateBullets(testDT)

	assert.InDelta(t, 90, e.Health, 1e-9)
	assert.Equal(t, 0, b.Piercing, "clamped, never negative")
	assert.False(t, g.registry.Alive(bh))
}

func TestDeadEnemyAbsorbsNothing(t *testing.T) {
	g, _ := newTestGame(t)
	_, e := placeEnemy(g, Vec2{300, 0})
	e.Health = 0

	bh, b := placeBullet(g, e.Pos, 10, 1)
	g.updateBullets(testDT)

	assert.Equal(t, 1, b.Piercing)
	assert.True(t, g.registry.Alive(bh))
	assert.Equal(t, 0, g.Kills())
}

func TestBulletPushesEnemyAlongItsFlight(t *testing.T) {
	g, _ := newTestGame(t)
	_, e := placeEnemy(g, Vec2{300, 0})

	_, b := placeBullet(g, e.Pos, 10, 1)
	b.Vel = Vec2{0, 100}
	g.updateBullets(0)

	assert.Equal(t, Vec2{0, 1}, e.Dir)
}

func TestBulletLifetime(t *testing.T) {
	g, _ := newTestGame(t, func(c *Config) { c.Bullet.Lifetime = 0.05 })

	bh, b := placeBullet(g, Vec2{0, 300}, 10, 1)
	b.Vel = Vec2{100, 0}

	for i := 0; i < 2; i++ {
		g.updateBullets(testDT)
		g.frame++
	}
	assert.True(t, g.registry.Alive(bh))

	for i := 0; i < 2; i++ {
		g.updateBullets(testDT)
		g.frame++
	}
	assert.False(t, g.registry.Alive(bh))
}

func TestBulletNeverHitsItsShooter(t *testing.T) {
	g, _ := newTestGame(t)

	_, b := placeBullet(g, g.player.Pos, 25, 1)
	b.HitsPlayer = true
	g.updateBullets(testDT)
	assert.Equal(t, 100.0, g.player.Health)

	stray, _ := placeBullet(g, g.player.Pos, 25, 1)
	sb, _ := g.registry.Bullet(stray)
	sb.Shooter = Handle{}
	sb.Faction = FactionEnemy
	g.updateBullets(testDT)
	assert.Equal(t, 75.0, g.player.Health)
	assert.False(t, g.registry.Alive(stray))
}
