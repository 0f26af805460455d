package game

import "math"

// updateEnemies runs the enemy system in two passes. Separation forces are
// computed from positions nobody has moved yet; only then do enemies act.
func (g *Game) updateEnemies(dt float64) {
	enemies := g.registry.Enemies()
	g.computeSeparation(enemies)

	for i, h := range enemies {
		e, ok := g.registry.Enemy(h)
		if !ok {
			continue
		}

		// Dead enemies leave before acting
		if e.Health <= 0 {
			g.registry.Despawn(h)
			continue
		}

		g.steer(e, g.repulsion[i])
		g.index.Update(h, Circle{Center: e.Pos, Radius: e.Radius})
		g.contactDamage(e, dt)
	}
}

// computeSeparation fills g.repulsion with one push-away vector per enemy,
// indexed like enemies. It does not mutate any entity.
func (g *Game) computeSeparation(enemies []Handle) {
	g.repulsion = g.repulsion[:0]
	weight := g.config.Enemy.Separation

	for _, h := range enemies {
		var push Vec2
		if e, ok := g.registry.Enemy(h); ok {
			for _, other := range g.query(Circle{Center: e.Pos, Radius: e.Radius}) {
				if other == h {
					continue
				}
				o, ok := g.registry.Enemy(other)
				if !ok {
					continue
				}
				push = push.Add(e.Pos.Sub(o.Pos).Normalize().Scale(weight))
			}
		}
		g.repulsion = append(g.repulsion, push)
	}
}

// steer blends inertia, wander, attraction and separation into a new heading
// and moves the enemy along it. Far enemies wander; near ones home in.
func (g *Game) steer(e *Enemy, repulsion Vec2) {
	cfg := g.config.Enemy

	toPlayer := g.player.Pos.Sub(e.Pos)
	dist := toPlayer.Len()
	t := math.Min(dist/cfg.Awareness, 1)

	heading := e.Dir.Scale(cfg.Inertia).
		Add(g.randomUnit().Scale(t * cfg.Wander)).
		Add(toPlayer.Normalize().Scale((1 - t) * cfg.Attraction)).
		Add(repulsion)
	if dir := heading.Normalize(); !dir.IsZero() {
		e.Dir = dir
	}

	e.Pos = g.bounds.Clamp(e.Pos.Add(e.Dir.Scale(e.Speed)))
	e.FlipX = e.Dir.X < 0
}

// contactDamage hurts the player at most once per hit interval while the
// enemy overlaps it
func (g *Game) contactDamage(e *Enemy, dt float64) {
	e.HitClock += dt
	if e.HitClock <= e.HitInterval {
		return
	}

	for _, other := range g.query(Circle{Center: e.Pos, Radius: e.Radius}) {
		if other != g.playerHandle {
			continue
		}
		g.player.Health -= e.ContactDamage
		e.HitClock = 0
		return
	}
}

// randomUnit samples a wander direction. Angular sampling is uniform in
// heading; square sampling draws x and y independently then normalizes,
// which favours the diagonals.
func (g *Game) randomUnit() Vec2 {
	if g.config.Enemy.WanderSampling == WanderSquare {
		for {
			v := Vec2{g.rng.Float64()*2 - 1, g.rng.Float64()*2 - 1}
			if n := v.Normalize(); !n.IsZero() {
				return n
			}
		}
	}
	angle := g.rng.Float64() * 2 * math.Pi
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// Wander sampling modes for EnemyConfig.WanderSampling
const (
	WanderAngular = "angular"
	WanderSquare  = "square"
)
