package game

// EntityType identifies the type of entity
type EntityType int

const (
	EntityTypeNone EntityType = iota
	EntityTypePlayer
	EntityTypeEnemy
	EntityTypeBullet
	EntityTypePickup
)

func (t EntityType) String() string {
	switch t {
	case EntityTypePlayer:
		return "player"
	case EntityTypeEnemy:
		return "enemy"
	case EntityTypeBullet:
		return "bullet"
	case EntityTypePickup:
		return "pickup"
	default:
		return "none"
	}
}

// Handle is a stable reference to a registry slot. The generation makes a
// handle to a despawned entity resolve as "not found" even after its slot is
// reused. The zero Handle never resolves.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the empty handle
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// Player is the singleton player entity
type Player struct {
	Pos      Vec2
	Facing   Vec2
	Momentum Vec2
	Radius   float64

	Health    float64
	Score     int
	FireClock float64

	Stats Stats
}

// Enemy is a homing melee enemy
type Enemy struct {
	Pos    Vec2
	Dir    Vec2
	Radius float64

	Health    float64
	MaxHealth float64

	ContactDamage float64
	Points        int
	Speed         float64

	// HitClock bounds how often this enemy can damage the player
	HitClock    float64
	HitInterval float64

	// FlipX mirrors the sprite when the enemy heads west
	FlipX bool
}

// Bullet is a projectile. Shooter may be the zero handle for sourceless bullets.
type Bullet struct {
	Shooter    Handle
	Faction    Faction
	HitsPlayer bool

	Pos      Vec2
	Vel      Vec2
	Damage   float64
	Radius   float64
	Piercing int

	// Hits lists enemies this bullet already damaged
	Hits []Handle

	Age  float64
	Born uint64
}

// hasHit reports whether h is already in the hit list
func (b *Bullet) hasHit(h Handle) bool {
	for _, hit := range b.Hits {
		if hit == h {
			return true
		}
	}
	return false
}

// Pickup is a stat upgrade lying in the arena
type Pickup struct {
	Kind   PickupKind
	Pos    Vec2
	Radius float64
}
