package game

import "go.uber.org/zap"

// PickupKind enumerates the stat upgrades
type PickupKind int

const (
	PickupMaxHealthUp PickupKind = iota
	PickupDamageUp
	PickupShotSpeedUp
	PickupFireRateUp
	PickupKindCount // Total number of pickup kinds
)

func (k PickupKind) String() string {
	switch k {
	case PickupMaxHealthUp:
		return "max_health_up"
	case PickupDamageUp:
		return "damage_up"
	case PickupShotSpeedUp:
		return "shot_speed_up"
	case PickupFireRateUp:
		return "fire_rate_up"
	default:
		return "unknown"
	}
}

// PickupEffect returns the stat change a pickup of the given kind grants.
// It is pure; Stats.Apply performs the mutation.
func PickupEffect(kind PickupKind, cfg PickupConfig) StatDelta {
	switch kind {
	case PickupMaxHealthUp:
		return StatDelta{Stat: StatMaxHealth, Add: cfg.HealthBonus, Heal: cfg.HealthBonus}
	case PickupDamageUp:
		return StatDelta{Stat: StatDamage, Multiply: cfg.DamageBonus}
	case PickupShotSpeedUp:
		return StatDelta{Stat: StatShotSpeed, Multiply: cfg.ShotSpeedBonus}
	case PickupFireRateUp:
		// A smaller interval multiplier means faster shooting
		return StatDelta{Stat: StatFireInterval, Multiply: -cfg.FireRateBonus}
	default:
		return StatDelta{Stat: -1}
	}
}

// ApplyPickup applies the effect of kind to the player
func ApplyPickup(p *Player, kind PickupKind, cfg PickupConfig) {
	delta := PickupEffect(kind, cfg)
	if !p.Stats.Apply(delta) {
		return
	}
	if delta.Heal != 0 {
		p.Health += delta.Heal
	}
}

// updatePickups applies and consumes every pickup the player touches. The
// despawn is issued immediately, so a pickup can never apply twice.
func (g *Game) updatePickups() {
	for _, h := range g.registry.Pickups() {
		pk, ok := g.registry.Pickup(h)
		if !ok {
			continue
		}

		for _, other := range g.query(Circle{Center: pk.Pos, Radius: pk.Radius}) {
			if other != g.playerHandle {
				continue
			}
			ApplyPickup(g.player, pk.Kind, g.config.Pickup)
			g.registry.Despawn(h)
			g.log.Debug("pickup collected",
				zap.Stringer("kind", pk.Kind),
				zap.Stringer("run", g.runID))
			g.listener.PickupCollected(pk.Kind)
			break
		}
	}
}
