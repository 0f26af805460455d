package game

import "math"

// Stat is a numeric attribute resolved as Base*Multiply + Add
type Stat struct {
	Base     float64
	Multiply float64
	Add      float64
}

// NewStat creates a stat with neutral modifiers
func NewStat(base float64) Stat {
	return Stat{Base: base, Multiply: 1.0, Add: 0.0}
}

// Value returns the resolved stat value
func (s Stat) Value() float64 {
	return s.Base*s.Multiply + s.Add
}

// ApplyMultiply shifts the multiplier by delta
func (s *Stat) ApplyMultiply(delta float64) {
	s.Multiply += delta
}

// ApplyAdd shifts the flat bonus by delta
func (s *Stat) ApplyAdd(delta float64) {
	s.Add += delta
}

// StatID names one stat in the Stats bundle
type StatID int

const (
	StatDamage StatID = iota
	StatSpeed
	StatMaxHealth
	StatShotSpeed
	StatShotSize
	StatFireInterval
	StatPiercing
	StatMass
)

// StatDelta is a single modification to one stat. Heal is applied to the
// owner's current health alongside the stat change.
type StatDelta struct {
	Stat     StatID
	Multiply float64
	Add      float64
	Heal     float64
}

// Stats is the player's attribute bundle
type Stats struct {
	Damage       Stat
	Speed        Stat
	MaxHealth    Stat
	ShotSpeed    Stat
	ShotSize     Stat
	FireInterval Stat
	Piercing     Stat
	Mass         Stat

	minFireInterval float64
}

// NewStats builds the default bundle from player tuning
func NewStats(cfg PlayerConfig) Stats {
	return Stats{
		Damage:          NewStat(cfg.Damage),
		Speed:           NewStat(cfg.Speed),
		MaxHealth:       NewStat(cfg.MaxHealth),
		ShotSpeed:       NewStat(cfg.ShotSpeed),
		ShotSize:        NewStat(cfg.ShotSize),
		FireInterval:    NewStat(cfg.FireInterval),
		Piercing:        NewStat(cfg.Piercing),
		Mass:            NewStat(cfg.Mass),
		minFireInterval: cfg.MinFireInterval,
	}
}

// Get returns the stat addressed by id, or nil for an unknown id
func (s *Stats) Get(id StatID) *Stat {
	switch id {
	case StatDamage:
		return &s.Damage
	case StatSpeed:
		return &s.Speed
	case StatMaxHealth:
		return &s.MaxHealth
	case StatShotSpeed:
		return &s.ShotSpeed
	case StatShotSize:
		return &s.ShotSize
	case StatFireInterval:
		return &s.FireInterval
	case StatPiercing:
		return &s.Piercing
	case StatMass:
		return &s.Mass
	default:
		return nil
	}
}

// Apply applies a delta's modifiers. It reports false for an unknown stat.
func (s *Stats) Apply(d StatDelta) bool {
	stat := s.Get(d.Stat)
	if stat == nil {
		return false
	}
	if d.Multiply != 0 {
		stat.ApplyMultiply(d.Multiply)
	}
	if d.Add != 0 {
		stat.ApplyAdd(d.Add)
	}
	return true
}

// FireIntervalValue returns the shot interval, floored at a small positive epsilon
func (s *Stats) FireIntervalValue() float64 {
	floor := s.minFireInterval
	if floor <= 0 {
		floor = 0.01
	}
	return math.Max(s.FireInterval.Value(), floor)
}

// DamageValue, SpeedValue, ShotSpeedValue and ShotSizeValue floor at zero so
// stacked negative modifiers can never flip their meaning.

func (s *Stats) DamageValue() float64 {
	return math.Max(s.Damage.Value(), 0)
}

func (s *Stats) SpeedValue() float64 {
	return math.Max(s.Speed.Value(), 0)
}

func (s *Stats) ShotSpeedValue() float64 {
	return math.Max(s.ShotSpeed.Value(), 0)
}

func (s *Stats) ShotSizeValue() float64 {
	return math.Max(s.ShotSize.Value(), minRadius)
}

// MassValue never returns less than a small positive mass
func (s *Stats) MassValue() float64 {
	return math.Max(s.Mass.Value(), 0.01)
}

// PiercingValue rounds the piercing stat to a whole, non-negative count
func (s *Stats) PiercingValue() int {
	return int(math.Max(math.Round(s.Piercing.Value()), 0))
}

// MaxHealthValue returns the health cap
func (s *Stats) MaxHealthValue() float64 {
	return math.Max(s.MaxHealth.Value(), 1)
}
