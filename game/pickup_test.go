package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickupEffect(t *testing.T) {
	cfg := DefaultConfig().Pickup

	tests := []struct {
		kind PickupKind
		want StatDelta
	}{
		{PickupMaxHealthUp, StatDelta{Stat: StatMaxHealth, Add: 20, Heal: 20}},
		{PickupDamageUp, StatDelta{Stat: StatDamage, Multiply: 0.1}},
		{PickupShotSpeedUp, StatDelta{Stat: StatShotSpeed, Multiply: 0.1}},
		{PickupFireRateUp, StatDelta{Stat: StatFireInterval, Multiply: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, PickupEffect(tt.kind, cfg))
			assert.Equal(t, tt.want, PickupEffect(tt.kind, cfg), "effect must be pure")
		})
	}
}

func TestFireRatePickupAppliesOnce(t *testing.T) {
	g, rec := newTestGame(t)
	h := g.spawnPickup(&Pickup{Kind: PickupFireRateUp, Pos: g.player.Pos, Radius: 20})

	g.updatePickups()
	assert.InDelta(t, 0.9, g.player.Stats.FireInterval.Multiply, 1e-12)
	assert.False(t, g.registry.Alive(h))

	// A second pass before the flush cannot see the pickup again
	g.updatePickups()
	assert.InDelta(t, 0.9, g.player.Stats.FireInterval.Multiply, 1e-12)

	g.registry.Flush()
	assert.Equal(t, 0, g.registry.PickupCount())
	assert.Equal(t, []PickupKind{PickupFireRateUp}, rec.pickups)
}

func TestMaxHealthPickupHeals(t *testing.T) {
	g, _ := newTestGame(t)
	g.player.Health = 50

	ApplyPickup(g.player, PickupMaxHealthUp, g.config.Pickup)

	assert.Equal(t, 120.0, g.player.Stats.MaxHealthValue())
	assert.Equal(t, 70.0, g.player.Health)
}

func TestPickupOutOfReachStays(t *testing.T) {
	g, rec := newTestGame(t)
	h := g.spawnPickup(&Pickup{Kind: PickupDamageUp, Pos: Vec2{200, 0}, Radius: 20})

	g.updatePickups()
	g.registry.Flush()

	assert.True(t, g.registry.Alive(h))
	assert.Equal(t, 1.0, g.player.Stats.Damage.Multiply)
	assert.Empty(t, rec.pickups)
}

func TestPickupThroughStep(t *testing.T) {
	g, _ := newTestGame(t)
	placeEnemy(g, Vec2{-400, 300})
	g.spawnPickup(&Pickup{Kind: PickupShotSpeedUp, Pos: Vec2{10, 0}, Radius: 20})

	g.Step(testDT, Input{})

	require.Equal(t, 0, g.registry.PickupCount())
	assert.InDelta(t, 880, g.player.Stats.ShotSpeedValue(), 1e-9)
}

func TestUnknownPickupKindIsIgnored(t *testing.T) {
	g, _ := newTestGame(t)
	before := g.player.Stats

	ApplyPickup(g.player, PickupKindCount, g.config.Pickup)
	assert.Equal(t, before, g.player.Stats)
	assert.Equal(t, "unknown", PickupKindCount.String())
}
