package game

// updateBullets moves every bullet and resolves its hits.
// Bullets fired this frame wait until the next frame to move.
func (g *Game) updateBullets(dt float64) {
	lifetime := g.config.Bullet.Lifetime

	for _, h := range g.registry.Bullets() {
		b, ok := g.registry.Bullet(h)
		if !ok || b.Born == g.frame {
			continue
		}

		b.Age += dt
		if lifetime > 0 && b.Age >= lifetime {
			g.registry.Despawn(h)
			continue
		}

		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		collider := Circle{Center: b.Pos, Radius: b.Radius}
		g.index.Update(h, collider)

		for _, other := range g.query(collider) {
			if other == b.Shooter || b.hasHit(other) {
				continue
			}

			var hit bool
			switch g.registry.Kind(other) {
			case EntityTypeEnemy:
				if b.Faction.Targets(EntityTypeEnemy) {
					hit = g.hitEnemy(b, other)
				}
			case EntityTypePlayer:
				if b.HitsPlayer || b.Faction.Targets(EntityTypePlayer) {
					g.player.Health -= b.Damage
					hit = true
				}
			}
			if !hit {
				continue
			}

			b.Piercing--
			if b.Piercing <= 0 {
				b.Piercing = 0
				g.registry.Despawn(h)
				break
			}
			b.Hits = append(b.Hits, other)
		}
	}
}

// hitEnemy applies a bullet to an enemy and awards the kill on the blow that
// takes its health to zero. Enemies already dead this frame absorb nothing.
func (g *Game) hitEnemy(b *Bullet, h Handle) bool {
	e, ok := g.registry.Enemy(h)
	if !ok || e.Health <= 0 {
		return false
	}

	if dir := b.Vel.Normalize(); !dir.IsZero() {
		e.Dir = dir
	}
	e.Health -= b.Damage

	if e.Health <= 0 {
		g.kills++
		g.player.Score += e.Points
		g.listener.EnemyKilled(h, e.Points)
	}
	return true
}
