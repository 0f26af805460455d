package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeparationIsSymmetric(t *testing.T) {
	g, _ := newTestGame(t)
	a, _ := placeEnemy(g, Vec2{300, 5})
	b, _ := placeEnemy(g, Vec2{300, -5})
	placeEnemy(g, Vec2{-300, 0})

	g.computeSeparation([]Handle{a, b})
	require.Len(t, g.repulsion, 2)

	assert.Equal(t, Vec2{0, 10}, g.repulsion[0])
	assert.Equal(t, Vec2{0, -10}, g.repulsion[1])
}

func TestSeparationDoesNotDependOnOrder(t *testing.T) {
	g, _ := newTestGame(t)
	a, _ := placeEnemy(g, Vec2{300, 0})
	b, _ := placeEnemy(g, Vec2{310, 4})
	c, _ := placeEnemy(g, Vec2{295, -8})

	g.computeSeparation([]Handle{a, b, c})
	forward := append([]Vec2(nil), g.repulsion...)

	g.computeSeparation([]Handle{c, b, a})
	assert.Equal(t, forward[0], g.repulsion[2])
	assert.Equal(t, forward[1], g.repulsion[1])
	assert.Equal(t, forward[2], g.repulsion[0])
}

func TestEnemiesHomeInWhenClose(t *testing.T) {
	g, _ := newTestGame(t)
	h, e := placeEnemy(g, Vec2{100, 0})
	e.Speed = 1.5
	e.Dir = Vec2{-1, 0}

	g.updateEnemies(testDT)

	assert.True(t, g.registry.Alive(h))
	assert.Less(t, e.Pos.X, 100.0)
	assert.InDelta(t, 1, e.Dir.Len(), 1e-9)
	assert.True(t, e.FlipX)
}

func TestEnemiesStayInBounds(t *testing.T) {
	g, _ := newTestGame(t)
	_, e := placeEnemy(g, g.bounds.Max)
	e.Speed = 50
	e.Dir = Vec2{1, 1}.Normalize()

	for i := 0; i < 100; i++ {
		g.updateEnemies(testDT)
		require.True(t, g.bounds.Contains(e.Pos))
	}
}

func TestDeadEnemyLeavesBeforeActing(t *testing.T) {
	g, _ := newTestGame(t)
	h, e := placeEnemy(g, g.player.Pos)
	e.Health = -5
	e.HitClock = 10
	e.Speed = 3

	g.updateEnemies(testDT)

	assert.Equal(t, g.player.Pos, e.Pos)
	assert.Equal(t, 100.0, g.player.Health)
	assert.False(t, g.registry.Alive(h))
}

func TestContactDamageOncePerInterval(t *testing.T) {
	g, _ := newTestGame(t)
	placeEnemy(g, g.player.Pos)

	// 0.125 is exact in binary, so the clock crosses 0.5 on the 5th frame
	for i := 0; i < 20; i++ {
		g.updateEnemies(0.125)
	}
	assert.Equal(t, 60.0, g.player.Health)
}

func TestContactDamageNeedsOverlap(t *testing.T) {
	g, _ := newTestGame(t)
	placeEnemy(g, Vec2{g.player.Radius + 12, 0})

	for i := 0; i < 20; i++ {
		g.updateEnemies(0.125)
	}
	assert.Equal(t, 100.0, g.player.Health)
}

func TestDefeatFiresOnceAndFreezesThePlayer(t *testing.T) {
	g, rec := newTestGame(t)
	blockWaves(g)
	placeEnemy(g, g.player.Pos)
	g.player.Health = 5
	handle := g.PlayerHandle()

	for i := 0; i < 40; i++ {
		g.Step(0.125, Input{Move: Vec2{1, 0}, Fire: true})
	}

	assert.Equal(t, StateGameOver, g.State())
	assert.Equal(t, 1, rec.defeats)
	assert.LessOrEqual(t, rec.lastHUD.Health, 0.0)

	// Nothing moves or fires once defeated
	pos := g.player.Pos
	bullets := g.registry.BulletCount()
	for i := 0; i < 10; i++ {
		g.Step(0.125, Input{Move: Vec2{1, 0}, Fire: true})
	}
	assert.Equal(t, pos, g.player.Pos)
	assert.Equal(t, bullets, g.registry.BulletCount())
	assert.Equal(t, 1, rec.defeats)

	g.Step(testDT, Input{Restart: true})
	assert.Equal(t, StatePlaying, g.State())
	assert.Equal(t, handle, g.PlayerHandle())
	assert.Equal(t, 100.0, g.player.Health)
	assert.Equal(t, 0, g.registry.EnemyCount())
}

func TestWanderSampling(t *testing.T) {
	for _, mode := range []string{WanderAngular, WanderSquare} {
		t.Run(mode, func(t *testing.T) {
			g, _ := newTestGame(t, func(c *Config) { c.Enemy.WanderSampling = mode })
			for i := 0; i < 100; i++ {
				v := g.randomUnit()
				require.InDelta(t, 1, v.Len(), 1e-9)
				require.False(t, math.IsNaN(v.X))
			}
		})
	}
}
