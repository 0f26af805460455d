package game

import (
	"math"

	"go.uber.org/zap"
)

// updatePlayer runs the player controller. It returns false once the player
// is defeated, which ends all simulation work for the frame.
func (g *Game) updatePlayer(dt float64, in Input) bool {
	p := g.player

	if p.Health <= 0 {
		g.defeat()
		return false
	}

	p.FireClock += dt

	// Facing follows the aim; degenerate aim keeps the last good facing
	var aim Vec2
	if in.HasAimTarget {
		aim = in.AimTarget.Sub(p.Pos)
	} else {
		aim = in.AimDir
	}
	if dir := aim.Normalize(); !dir.IsZero() {
		p.Facing = dir
	}

	g.integratePlayer(dt, in.Move.Normalize())

	if in.Fire {
		interval := p.Stats.FireIntervalValue()
		if in.RapidFire {
			interval = math.Max(interval/g.config.Player.RapidFireMultiplier, g.config.Player.MinFireInterval)
		}
		if p.FireClock >= interval {
			g.fire()
			p.FireClock = 0
		}
	}

	return true
}

// integratePlayer applies acceleration then quadratic drag, moves the player
// by the resulting momentum and clamps it into the arena
func (g *Game) integratePlayer(dt float64, move Vec2) {
	p := g.player

	accel := p.Stats.SpeedValue() / p.Stats.MassValue()
	m := p.Momentum.Add(move.Scale(accel * dt))

	// drag = k * normalize(m) * |m|^2 * dt, never larger than m itself
	speed := m.Len()
	drag := g.config.Player.Drag * speed * speed * dt
	if drag >= speed {
		m = Vec2{}
	} else {
		m = m.Sub(m.Normalize().Scale(drag))
	}
	if !m.IsFinite() {
		m = Vec2{}
	}

	next := p.Pos.Add(m)
	clamped := g.bounds.Clamp(next)

	// Walls absorb the momentum pushing into them
	if clamped.X != next.X {
		m.X = 0
	}
	if clamped.Y != next.Y {
		m.Y = 0
	}

	p.Momentum = m
	p.Pos = clamped
	g.index.Update(g.playerHandle, g.playerCollider())
}

// fire spawns a bullet from the player along its facing
func (g *Game) fire() Handle {
	p := g.player
	return g.spawnBullet(&Bullet{
		Shooter:  g.playerHandle,
		Faction:  FactionPlayer,
		Pos:      p.Pos,
		Vel:      p.Facing.Scale(p.Stats.ShotSpeedValue()),
		Damage:   p.Stats.DamageValue(),
		Radius:   p.Stats.ShotSizeValue(),
		Piercing: p.Stats.PiercingValue(),
		Hits:     make([]Handle, 0, 2),
	})
}

// defeat moves the session to game over exactly once
func (g *Game) defeat() {
	if g.state == StateGameOver {
		return
	}
	g.state = StateGameOver
	hud := g.HUD()
	g.log.Info("player defeated",
		zap.Stringer("run", g.runID),
		zap.Int("score", hud.Score),
		zap.Int("wave", hud.Wave),
		zap.Int("kills", hud.Kills))
	g.listener.PlayerDefeated(hud)
}
