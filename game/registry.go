package game

// slot holds one entity record. Exactly one of the typed pointers is set
// while the slot is live.
type slot struct {
	gen    uint32
	kind   EntityType
	doomed bool

	player *Player
	enemy  *Enemy
	bullet *Bullet
	pickup *Pickup
}

// Registry owns every entity record and hands out generational handles.
// Despawns are buffered and applied by Flush so systems never iterate a
// list that shrinks under them.
type Registry struct {
	slots []slot
	free  []uint32

	// Typed lists in spawn order, used for iteration
	enemies []Handle
	bullets []Handle
	pickups []Handle

	pending []Handle

	// OnRemove is called for every entity that leaves the registry
	OnRemove func(h Handle)
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		slots:   make([]slot, 0, 256),
		enemies: make([]Handle, 0, 64),
		bullets: make([]Handle, 0, 128),
		pickups: make([]Handle, 0, 4),
	}
}

func (r *Registry) alloc(kind EntityType) (Handle, *slot) {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		idx = uint32(len(r.slots) - 1)
	}

	s := &r.slots[idx]
	if s.gen == 0 {
		s.gen = 1
	}
	s.kind = kind
	s.doomed = false
	return Handle{index: idx, gen: s.gen}, s
}

// SpawnPlayer registers the player record
func (r *Registry) SpawnPlayer(p *Player) Handle {
	h, s := r.alloc(EntityTypePlayer)
	s.player = p
	return h
}

// SpawnEnemy registers an enemy record
func (r *Registry) SpawnEnemy(e *Enemy) Handle {
	h, s := r.alloc(EntityTypeEnemy)
	s.enemy = e
	r.enemies = append(r.enemies, h)
	return h
}

// SpawnBullet registers a bullet record
func (r *Registry) SpawnBullet(b *Bullet) Handle {
	h, s := r.alloc(EntityTypeBullet)
	s.bullet = b
	r.bullets = append(r.bullets, h)
	return h
}

// SpawnPickup registers a pickup record
func (r *Registry) SpawnPickup(p *Pickup) Handle {
	h, s := r.alloc(EntityTypePickup)
	s.pickup = p
	r.pickups = append(r.pickups, h)
	return h
}

// resolve returns the slot for h if it is live and not awaiting despawn
func (r *Registry) resolve(h Handle) *slot {
	if h.gen == 0 || int(h.index) >= len(r.slots) {
		return nil
	}
	s := &r.slots[h.index]
	if s.gen != h.gen || s.kind == EntityTypeNone || s.doomed {
		return nil
	}
	return s
}

// Alive reports whether h refers to a live entity not pending despawn
func (r *Registry) Alive(h Handle) bool {
	return r.resolve(h) != nil
}

// Kind returns the type of a live entity, or EntityTypeNone
func (r *Registry) Kind(h Handle) EntityType {
	if s := r.resolve(h); s != nil {
		return s.kind
	}
	return EntityTypeNone
}

// Player resolves a player handle
func (r *Registry) Player(h Handle) (*Player, bool) {
	if s := r.resolve(h); s != nil && s.player != nil {
		return s.player, true
	}
	return nil, false
}

// Enemy resolves an enemy handle
func (r *Registry) Enemy(h Handle) (*Enemy, bool) {
	if s := r.resolve(h); s != nil && s.enemy != nil {
		return s.enemy, true
	}
	return nil, false
}

// Bullet resolves a bullet handle
func (r *Registry) Bullet(h Handle) (*Bullet, bool) {
	if s := r.resolve(h); s != nil && s.bullet != nil {
		return s.bullet, true
	}
	return nil, false
}

// Pickup resolves a pickup handle
func (r *Registry) Pickup(h Handle) (*Pickup, bool) {
	if s := r.resolve(h); s != nil && s.pickup != nil {
		return s.pickup, true
	}
	return nil, false
}

// Enemies returns enemy handles in spawn order. The slice is owned by the
// registry and stays valid until the next spawn or Flush.
func (r *Registry) Enemies() []Handle { return r.enemies }

// Bullets returns bullet handles in spawn order
func (r *Registry) Bullets() []Handle { return r.bullets }

// Pickups returns pickup handles in spawn order
func (r *Registry) Pickups() []Handle { return r.pickups }

// EnemyCount returns the number of live enemies
func (r *Registry) EnemyCount() int { return r.countLive(r.enemies) }

// BulletCount returns the number of live bullets
func (r *Registry) BulletCount() int { return r.countLive(r.bullets) }

// PickupCount returns the number of live pickups
func (r *Registry) PickupCount() int { return r.countLive(r.pickups) }

func (r *Registry) countLive(handles []Handle) int {
	n := 0
	for _, h := range handles {
		if r.Alive(h) {
			n++
		}
	}
	return n
}

// Despawn marks h for removal at the next Flush. Despawning a stale or
// already doomed handle is a no-op.
func (r *Registry) Despawn(h Handle) {
	s := r.resolve(h)
	if s == nil {
		return
	}
	s.doomed = true
	r.pending = append(r.pending, h)
}

// Pending returns the number of despawns waiting for Flush
func (r *Registry) Pending() int {
	return len(r.pending)
}

// Flush applies all buffered despawns
func (r *Registry) Flush() {
	if len(r.pending) == 0 {
		return
	}
	for _, h := range r.pending {
		r.release(h)
	}
	r.pending = r.pending[:0]

	r.enemies = r.compact(r.enemies)
	r.bullets = r.compact(r.bullets)
	r.pickups = r.compact(r.pickups)
}

// Clear removes every enemy, bullet and pickup immediately. The player is kept.
func (r *Registry) Clear() {
	for _, list := range [][]Handle{r.enemies, r.bullets, r.pickups} {
		for _, h := range list {
			r.release(h)
		}
	}
	r.enemies = r.enemies[:0]
	r.bullets = r.bullets[:0]
	r.pickups = r.pickups[:0]
	r.pending = r.pending[:0]
}

func (r *Registry) release(h Handle) {
	if h.gen == 0 || int(h.index) >= len(r.slots) {
		return
	}
	s := &r.slots[h.index]
	if s.gen != h.gen || s.kind == EntityTypeNone {
		return
	}

	if r.OnRemove != nil {
		r.OnRemove(h)
	}

	gen := s.gen + 1
	if gen == 0 {
		gen = 1
	}
	*s = slot{gen: gen}
	r.free = append(r.free, h.index)
}

// compact drops handles that no longer resolve, keeping order
func (r *Registry) compact(handles []Handle) []Handle {
	out := handles[:0]
	for _, h := range handles {
		if r.Alive(h) {
			out = append(out, h)
		}
	}
	for i := len(out); i < len(handles); i++ {
		handles[i] = Handle{}
	}
	return out
}
