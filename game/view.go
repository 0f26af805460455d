package game

// View is the read-only render data for one entity
type View struct {
	Handle     Handle
	Type       EntityType
	PickupKind PickupKind

	Pos    Vec2
	Facing Vec2
	Radius float64
	FlipX  bool

	Health    float64
	MaxHealth float64
}

// HUD is the read-only heads-up data
type HUD struct {
	Score     int
	Health    float64
	MaxHealth float64
	Wave      int
	Kills     int
	State     State
}

// HUD returns the current heads-up data
func (g *Game) HUD() HUD {
	return HUD{
		Score:     g.player.Score,
		Health:    g.player.Health,
		MaxHealth: g.player.Stats.MaxHealthValue(),
		Wave:      g.wave,
		Kills:     g.kills,
		State:     g.state,
	}
}

// Views appends a view of every live entity to buf: pickups, enemies,
// bullets, then the player.
func (g *Game) Views(buf []View) []View {
	r := g.registry

	for _, h := range r.Pickups() {
		if p, ok := r.Pickup(h); ok {
			buf = append(buf, View{
				Handle:     h,
				Type:       EntityTypePickup,
				PickupKind: p.Kind,
				Pos:        p.Pos,
				Radius:     p.Radius,
			})
		}
	}
	for _, h := range r.Enemies() {
		if e, ok := r.Enemy(h); ok {
			buf = append(buf, View{
				Handle:    h,
				Type:      EntityTypeEnemy,
				Pos:       e.Pos,
				Facing:    e.Dir,
				Radius:    e.Radius,
				FlipX:     e.FlipX,
				Health:    e.Health,
				MaxHealth: e.MaxHealth,
			})
		}
	}
	for _, h := range r.Bullets() {
		if b, ok := r.Bullet(h); ok {
			buf = append(buf, View{
				Handle: h,
				Type:   EntityTypeBullet,
				Pos:    b.Pos,
				Facing: b.Vel.Normalize(),
				Radius: b.Radius,
			})
		}
	}

	p := g.player
	buf = append(buf, View{
		Handle:    g.playerHandle,
		Type:      EntityTypePlayer,
		Pos:       p.Pos,
		Facing:    p.Facing,
		Radius:    p.Radius,
		FlipX:     p.Facing.X < 0,
		Health:    p.Health,
		MaxHealth: p.Stats.MaxHealthValue(),
	})

	return buf
}
