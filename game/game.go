package game

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the session state
type State int

const (
	StatePlaying State = iota
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// maxDeltaTime caps a single step to prevent large jumps after stalls
const maxDeltaTime = 0.1

// Listener receives simulation events. Calls happen synchronously inside Step.
type Listener interface {
	WaveDispatched(wave int, item bool, spawned int)
	EnemyKilled(h Handle, points int)
	PickupCollected(kind PickupKind)
	PlayerDefeated(hud HUD)
}

// NopListener ignores every event
type NopListener struct{}

func (NopListener) WaveDispatched(int, bool, int) {}
func (NopListener) EnemyKilled(Handle, int)       {}
func (NopListener) PickupCollected(PickupKind)    {}
func (NopListener) PlayerDefeated(HUD)            {}

// Options carries optional collaborators for New
type Options struct {
	// Logger defaults to a no-op logger
	Logger *zap.Logger

	// Index defaults to a World grid over the arena
	Index SpatialIndex

	// Listener defaults to NopListener
	Listener Listener

	// Rand overrides the RNG derived from Config.Seed
	Rand *rand.Rand
}

// Game is the simulation context. Every system reads and writes through it;
// there is no package-level state.
type Game struct {
	config   Config
	bounds   Rect
	log      *zap.Logger
	listener Listener
	rng      *rand.Rand

	registry *Registry
	index    SpatialIndex

	playerHandle Handle
	player       *Player

	wave  int
	kills int
	frame uint64
	state State
	runID uuid.UUID

	// Scratch buffers reused across frames
	queryBuf  []Handle
	repulsion []Vec2
}

// NewGame creates a game with default collaborators
func NewGame(config Config) *Game {
	return New(config, Options{})
}

// New creates a new game instance with the player spawned and no enemies
func New(config Config, opts Options) *Game {
	config = config.Sanitize()

	g := &Game{
		config:   config,
		bounds:   config.Arena.Bounds(),
		log:      opts.Logger,
		listener: opts.Listener,
		rng:      opts.Rand,
		registry: NewRegistry(),
		index:    opts.Index,
		queryBuf: make([]Handle, 0, 64),
		runID:    uuid.New(),
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	if g.listener == nil {
		g.listener = NopListener{}
	}
	if g.rng == nil {
		g.rng = NewRand(config.Seed)
	}
	if g.index == nil {
		g.index = NewWorld(config.Arena)
	}
	g.registry.OnRemove = g.index.Remove

	g.createPlayer()
	g.log.Debug("session created",
		zap.Stringer("run", g.runID),
		zap.String("seed", config.Seed))

	return g
}

// NewRand derives a deterministic PCG source from a seed string. An empty
// seed is replaced by the current time.
func NewRand(seed string) *rand.Rand {
	if seed == "" {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>1|1))
	}
	hi := xxhash.Sum64String(seed)
	lo := xxhash.Sum64String(seed + "#stream")
	return rand.New(rand.NewPCG(hi, lo))
}

// createPlayer creates the player entity
func (g *Game) createPlayer() {
	g.player = &Player{}
	g.resetPlayer()
	g.playerHandle = g.registry.SpawnPlayer(g.player)
	g.index.Insert(g.playerHandle, g.playerCollider())
}

// resetPlayer restores default stats while keeping the record's identity
func (g *Game) resetPlayer() {
	cfg := g.config.Player
	stats := NewStats(cfg)
	*g.player = Player{
		Pos:    g.bounds.Clamp(cfg.Start),
		Facing: Vec2{1, 0},
		Radius: cfg.Radius,
		Health: stats.MaxHealthValue(),
		Stats:  stats,
	}
}

func (g *Game) playerCollider() Circle {
	return Circle{Center: g.player.Pos, Radius: g.player.Radius}
}

// Step advances the simulation by dt seconds using in.
// A defeated player ends the frame before anything else runs. Otherwise the
// order is waves, player, bullets, enemies, pickups, then buffered despawns.
func (g *Game) Step(dt float64, in Input) {
	if in.Restart {
		g.Reset()
		return
	}
	if in.Pause {
		switch g.state {
		case StatePlaying:
			g.state = StatePaused
		case StatePaused:
			g.state = StatePlaying
		}
	}
	if g.state != StatePlaying {
		return
	}

	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	if dt > maxDeltaTime {
		dt = maxDeltaTime
	}

	g.frame++

	// A defeated player freezes the arena before the director can dispatch
	if g.player.Health <= 0 {
		g.defeat()
		g.registry.Flush()
		return
	}

	g.updateWaves()
	if g.updatePlayer(dt, in) {
		g.updateBullets(dt)
		g.updateEnemies(dt)
		g.updatePickups()
	}
	g.registry.Flush()
}

// Reset clears every enemy, bullet and pickup, restores the player and
// zeroes the counters. The player handle stays valid.
func (g *Game) Reset() {
	g.registry.Clear()
	g.resetPlayer()
	g.index.Update(g.playerHandle, g.playerCollider())

	g.wave = 0
	g.kills = 0
	g.state = StatePlaying
	g.runID = uuid.New()

	g.log.Debug("session reset", zap.Stringer("run", g.runID))
}

// Config returns the sanitized configuration in use
func (g *Game) Config() Config { return g.config }

// Bounds returns the rectangle positions are clamped into
func (g *Game) Bounds() Rect { return g.bounds }

// State returns the session state
func (g *Game) State() State { return g.state }

// Wave returns the number of waves dispatched so far
func (g *Game) Wave() int { return g.wave }

// Kills returns the number of enemies killed this session
func (g *Game) Kills() int { return g.kills }

// Frame returns the number of simulated frames
func (g *Game) Frame() uint64 { return g.frame }

// RunID identifies the current session; it changes on Reset
func (g *Game) RunID() uuid.UUID { return g.runID }

// Player returns the player record. Collaborators must treat it as read-only.
func (g *Game) Player() *Player { return g.player }

// PlayerHandle returns the player's stable handle
func (g *Game) PlayerHandle() Handle { return g.playerHandle }

// Registry exposes the entity registry for read-only iteration
func (g *Game) Registry() *Registry { return g.registry }

// spawnEnemy registers an enemy and its collider
func (g *Game) spawnEnemy(e *Enemy) Handle {
	h := g.registry.SpawnEnemy(e)
	g.index.Insert(h, Circle{Center: e.Pos, Radius: e.Radius})
	return h
}

// spawnBullet registers a bullet and its collider
func (g *Game) spawnBullet(b *Bullet) Handle {
	b.Born = g.frame
	h := g.registry.SpawnBullet(b)
	g.index.Insert(h, Circle{Center: b.Pos, Radius: b.Radius})
	return h
}

// spawnPickup registers a pickup and its collider
func (g *Game) spawnPickup(p *Pickup) Handle {
	h := g.registry.SpawnPickup(p)
	g.index.Insert(h, Circle{Center: p.Pos, Radius: p.Radius})
	return h
}

// query returns live entities overlapping shape. The result aliases a
// scratch buffer and is only valid until the next query.
func (g *Game) query(shape Circle) []Handle {
	hits := g.index.Query(shape, g.queryBuf[:0])
	live := hits[:0]
	for _, h := range hits {
		if g.registry.Alive(h) {
			live = append(live, h)
		}
	}
	g.queryBuf = hits
	return live
}
