package main

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"swarmarena/game"
)

// Particle represents a single cosmetic particle
type Particle struct {
	pos      game.Vec2 // world position
	vel      game.Vec2 // world units per second
	age      float64
	lifetime float64
	color    color.NRGBA
	size     float64
}

// IsAlive returns true if the particle is still alive
func (p *Particle) IsAlive() bool {
	return p.age < p.lifetime
}

// ParticleSystem holds short-lived bursts spawned by simulation events.
// It is purely visual and never feeds back into the simulation.
type ParticleSystem struct {
	particles    []Particle
	maxParticles int
	rng          *rand.Rand

	velocityMin, velocityMax float64
	lifetimeMin, lifetimeMax float64
	sizeMin, sizeMax         float64
}

// NewParticleSystem creates an empty particle system
func NewParticleSystem(maxParticles int) *ParticleSystem {
	return &ParticleSystem{
		particles:    make([]Particle, 0, maxParticles),
		maxParticles: maxParticles,
		rng:          rand.New(rand.NewPCG(1, 2)),
		velocityMin:  60,
		velocityMax:  220,
		lifetimeMin:  0.25,
		lifetimeMax:  0.6,
		sizeMin:      1.5,
		sizeMax:      3.5,
	}
}

// Burst emits count particles in all directions from pos
func (ps *ParticleSystem) Burst(pos game.Vec2, count int, clr color.NRGBA) {
	for i := 0; i < count && len(ps.particles) < ps.maxParticles; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.velocityMin + ps.rng.Float64()*(ps.velocityMax-ps.velocityMin)
		ps.particles = append(ps.particles, Particle{
			pos:      pos,
			vel:      game.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			lifetime: ps.lifetimeMin + ps.rng.Float64()*(ps.lifetimeMax-ps.lifetimeMin),
			color:    clr,
			size:     ps.sizeMin + ps.rng.Float64()*(ps.sizeMax-ps.sizeMin),
		})
	}
}

// Update ages and moves particles, dropping dead ones in place
func (ps *ParticleSystem) Update(dt float64) {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.age += dt
		p.pos = p.pos.Add(p.vel.Scale(dt))
		if p.IsAlive() {
			alive = append(alive, p)
		}
	}
	ps.particles = alive
}

// Clear drops every particle
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}

// Draw renders every particle, fading it out over its lifetime
func (ps *ParticleSystem) Draw(screen *ebiten.Image, camera *Camera) {
	for i := range ps.particles {
		p := &ps.particles[i]
		sx, sy := camera.WorldToScreen(p.pos)

		clr := p.color
		clr.A = uint8(float64(clr.A) * (1 - p.age/p.lifetime))
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(p.size*camera.Zoom), clr, true)
	}
}
