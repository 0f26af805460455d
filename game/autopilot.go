package game

import "math"

// Autopilot is a scripted InputProvider used by the headless runner and tests.
// It kites away from the nearest enemy, walks onto pickups when the arena is
// quiet, and always fires with a predictive lead.
type Autopilot struct {
	// KiteDistance is how close an enemy may get before the autopilot backs off
	KiteDistance float64

	// TickRate converts enemy per-frame speed into per-second velocity
	TickRate float64

	// RapidFire holds the rapid-fire modifier
	RapidFire bool
}

var _ InputProvider = (*Autopilot)(nil)

// NewAutopilot creates an autopilot with default tuning
func NewAutopilot() *Autopilot {
	return &Autopilot{
		KiteDistance: 250.0,
		TickRate:     60.0,
	}
}

// Poll computes the next frame's input from the current game state
func (a *Autopilot) Poll(g *Game) Input {
	in := Input{Fire: true, RapidFire: a.RapidFire}
	p := g.Player()

	target, ok := a.nearestEnemy(g)
	if !ok {
		if pk, ok := firstPickup(g); ok {
			in.Move = pk.Pos.Sub(p.Pos).Normalize()
		}
		return in
	}

	vel := target.Dir.Scale(target.Speed * a.TickRate)
	in.AimTarget = PredictiveAim(p.Pos, target.Pos, vel, p.Stats.ShotSpeedValue())
	in.HasAimTarget = true

	away := p.Pos.Sub(target.Pos)
	if away.Len() < a.KiteDistance {
		in.Move = away.Normalize()
		// Slide along walls instead of pinning against them
		if next := p.Pos.Add(in.Move.Scale(p.Radius * 2)); !g.Bounds().Contains(next) {
			in.Move = in.Move.Rotate(math.Pi / 2)
		}
	}
	return in
}

func (a *Autopilot) nearestEnemy(g *Game) (*Enemy, bool) {
	r := g.Registry()
	pos := g.Player().Pos

	var best *Enemy
	bestDist := math.Inf(1)
	for _, h := range r.Enemies() {
		e, ok := r.Enemy(h)
		if !ok || e.Health <= 0 {
			continue
		}
		if d := e.Pos.Sub(pos).LenSq(); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best != nil
}

func firstPickup(g *Game) (*Pickup, bool) {
	r := g.Registry()
	for _, h := range r.Pickups() {
		if pk, ok := r.Pickup(h); ok {
			return pk, true
		}
	}
	return nil, false
}

// PredictiveAim returns the point to aim at so a projectile of the given
// speed fired from shooter meets a target moving at constant velocity.
// Slow or very close targets are aimed at directly.
func PredictiveAim(shooter, target, targetVel Vec2, projectileSpeed float64) Vec2 {
	if math.Abs(targetVel.X) < 0.1 && math.Abs(targetVel.Y) < 0.1 {
		return target
	}

	distance := target.Dist(shooter)
	if distance < 1.0 || projectileSpeed <= 0 {
		return target
	}

	// Solve |target + vel*t - shooter| = speed*t by fixed-point iteration,
	// starting from the time to reach the current position
	t := distance / projectileSpeed
	for i := 0; i < 5; i++ {
		predicted := target.Add(targetVel.Scale(t))
		d := predicted.Dist(shooter)
		if d <= 0 {
			break
		}
		newT := d / projectileSpeed
		if math.Abs(newT-t) < 0.001 {
			break
		}
		t = newT
	}

	return target.Add(targetVel.Scale(t))
}
