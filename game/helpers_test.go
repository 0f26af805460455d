package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 60.0

// recorder counts listener events
type recorder struct {
	waves   []int
	kills   int
	points  int
	pickups []PickupKind
	defeats int
	lastHUD HUD
}

func (r *recorder) WaveDispatched(wave int, item bool, spawned int) { r.waves = append(r.waves, wave) }
func (r *recorder) EnemyKilled(h Handle, points int)                { r.kills++; r.points += points }
func (r *recorder) PickupCollected(kind PickupKind)                 { r.pickups = append(r.pickups, kind) }
func (r *recorder) PlayerDefeated(hud HUD)                          { r.defeats++; r.lastHUD = hud }

// newTestGame builds a seeded game. Options may be tweaked through mutate.
func newTestGame(t *testing.T, mutate ...func(*Config)) (*Game, *recorder) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Seed = "test"
	for _, m := range mutate {
		m(&cfg)
	}

	rec := &recorder{}
	g := New(cfg, Options{Listener: rec})
	require.NotNil(t, g.Player())
	return g, rec
}

// placeEnemy spawns a default enemy at pos that does not move on its own
func placeEnemy(g *Game, pos Vec2) (Handle, *Enemy) {
	e := NewEnemy(g.config.Enemy, pos, Vec2{1, 0})
	e.Speed = 0
	return g.spawnEnemy(e), e
}

// placeBullet spawns a stationary player bullet at pos that is ready to act
// on the next updateBullets
func placeBullet(g *Game, pos Vec2, damage float64, piercing int) (Handle, *Bullet) {
	b := &Bullet{
		Shooter:  g.playerHandle,
		Faction:  FactionPlayer,
		Pos:      pos,
		Damage:   damage,
		Radius:   5,
		Piercing: piercing,
	}
	h := g.spawnBullet(b)
	g.frame++
	return h, b
}

// blockWaves parks a pickup in a far corner so the wave director stays idle
func blockWaves(g *Game) Handle {
	return g.spawnPickup(&Pickup{
		Kind:   PickupDamageUp,
		Pos:    g.bounds.Max,
		Radius: 1,
	})
}
