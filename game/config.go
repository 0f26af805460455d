package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// Config holds arena geometry and combat tuning
type Config struct {
	// Seed is hashed into the simulation RNG; empty means time-based
	Seed string `mapstructure:"seed"`

	Arena  ArenaConfig  `mapstructure:"arena"`
	Player PlayerConfig `mapstructure:"player"`
	Enemy  EnemyConfig  `mapstructure:"enemy"`
	Bullet BulletConfig `mapstructure:"bullet"`
	Pickup PickupConfig `mapstructure:"pickup"`
	Wave   WaveConfig   `mapstructure:"wave"`
	Log    LogConfig    `mapstructure:"log"`
	Screen ScreenConfig `mapstructure:"screen"`
}

// ArenaConfig describes the playfield. The clamp divisors bound positions to
// [-Width/ClampLeft, Width/ClampRight] x [-Height/ClampBottom, Height/ClampTop].
type ArenaConfig struct {
	Width       float64 `mapstructure:"width"`
	Height      float64 `mapstructure:"height"`
	ClampLeft   float64 `mapstructure:"clamp_left"`
	ClampRight  float64 `mapstructure:"clamp_right"`
	ClampBottom float64 `mapstructure:"clamp_bottom"`
	ClampTop    float64 `mapstructure:"clamp_top"`

	// CellSize is the size of each spatial partition cell in world units
	CellSize float64 `mapstructure:"cell_size"`
}

// PlayerConfig holds the player's base stats and movement tuning
type PlayerConfig struct {
	Start  Vec2    `mapstructure:"start"`
	Radius float64 `mapstructure:"radius"`

	// Drag is the quadratic drag coefficient k
	Drag                float64 `mapstructure:"drag"`
	RapidFireMultiplier float64 `mapstructure:"rapid_fire_multiplier"`
	MinFireInterval     float64 `mapstructure:"min_fire_interval"`

	Damage       float64 `mapstructure:"damage"`
	Speed        float64 `mapstructure:"speed"`
	MaxHealth    float64 `mapstructure:"max_health"`
	ShotSpeed    float64 `mapstructure:"shot_speed"`
	ShotSize     float64 `mapstructure:"shot_size"`
	FireInterval float64 `mapstructure:"fire_interval"`
	Piercing     float64 `mapstructure:"piercing"`
	Mass         float64 `mapstructure:"mass"`
}

// EnemyConfig holds default enemy combat stats and steering weights
type EnemyConfig struct {
	Radius        float64 `mapstructure:"radius"`
	Health        float64 `mapstructure:"health"`
	ContactDamage float64 `mapstructure:"contact_damage"`
	Points        int     `mapstructure:"points"`
	Speed         float64 `mapstructure:"speed"`
	HitInterval   float64 `mapstructure:"hit_interval"`

	Inertia    float64 `mapstructure:"inertia"`
	Wander     float64 `mapstructure:"wander"`
	Attraction float64 `mapstructure:"attraction"`
	Separation float64 `mapstructure:"separation"`
	Awareness  float64 `mapstructure:"awareness"`

	// WanderSampling is "angular" (uniform heading) or "square" (uniform x/y, normalized)
	WanderSampling string `mapstructure:"wander_sampling"`
}

// BulletConfig holds projectile settings
type BulletConfig struct {
	// Lifetime in seconds; 0 keeps bullets alive until piercing is spent
	Lifetime float64 `mapstructure:"lifetime"`
}

// PickupConfig holds pickup size and effect magnitudes
type PickupConfig struct {
	Radius         float64 `mapstructure:"radius"`
	HealthBonus    float64 `mapstructure:"health_bonus"`
	DamageBonus    float64 `mapstructure:"damage_bonus"`
	ShotSpeedBonus float64 `mapstructure:"shot_speed_bonus"`
	FireRateBonus  float64 `mapstructure:"fire_rate_bonus"`
}

// WaveConfig controls the wave director
type WaveConfig struct {
	// ItemEvery makes every wave divisible by it an item wave
	ItemEvery      int     `mapstructure:"item_every"`
	BaseEnemies    int     `mapstructure:"base_enemies"`
	PickupSpawn    Vec2    `mapstructure:"pickup_spawn"`
	SpawnClearance float64 `mapstructure:"spawn_clearance"`
	SpawnAttempts  int     `mapstructure:"spawn_attempts"`
}

// LogConfig selects the zap logger flavour
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ScreenConfig is the window size used by the ebiten shell
type ScreenConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Arena: ArenaConfig{
			Width:       1200.0,
			Height:      800.0,
			ClampLeft:   2.2,
			ClampRight:  2.2,
			ClampBottom: 2.5,
			ClampTop:    2.3,
			CellSize:    64.0,
		},
		Player: PlayerConfig{
			Radius:              15.0,
			Drag:                0.75,
			RapidFireMultiplier: 2.0,
			MinFireInterval:     0.01,
			Damage:              40.0,
			Speed:               30.0,
			MaxHealth:           100.0,
			ShotSpeed:           800.0,
			ShotSize:            5.0,
			FireInterval:        0.25,
			Piercing:            1.0,
			Mass:                1.0,
		},
		Enemy: EnemyConfig{
			Radius:         12.0,
			Health:         100.0,
			ContactDamage:  10.0,
			Points:         10,
			Speed:          1.5,
			HitInterval:    0.5,
			Inertia:        25.5,
			Wander:         10.5,
			Attraction:     5.25,
			Separation:     10.0,
			Awareness:      700.0,
			WanderSampling: WanderAngular,
		},
		Bullet: BulletConfig{
			Lifetime: 3.0,
		},
		Pickup: PickupConfig{
			Radius:         20.0,
			HealthBonus:    20.0,
			DamageBonus:    0.1,
			ShotSpeedBonus: 0.1,
			FireRateBonus:  0.1,
		},
		Wave: WaveConfig{
			ItemEvery:      2,
			BaseEnemies:    5,
			SpawnClearance: 150.0,
			SpawnAttempts:  8,
		},
		Log: LogConfig{
			Level: "info",
		},
		Screen: ScreenConfig{
			Width:  1200,
			Height: 800,
		},
	}
}

// LoadConfig reads a config file on top of DefaultConfig.
// Environment variables prefixed with SWARMARENA_ override file values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("SWARMARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	return cfg.Sanitize(), nil
}

// Bounds returns the rectangle positions are clamped into
func (a ArenaConfig) Bounds() Rect {
	return Rect{
		Min: Vec2{-a.Width / a.ClampLeft, -a.Height / a.ClampBottom},
		Max: Vec2{a.Width / a.ClampRight, a.Height / a.ClampTop},
	}
}

// HalfExtent returns half the arena size on each axis
func (a ArenaConfig) HalfExtent() Vec2 {
	return Vec2{a.Width / 2, a.Height / 2}
}

// Sanitize clamps values that would break the simulation to safe minimums.
// A live simulation has no notion of an invalid config, so nothing here fails.
func (c Config) Sanitize() Config {
	d := DefaultConfig()

	c.Arena.Width = atLeast(c.Arena.Width, 1)
	c.Arena.Height = atLeast(c.Arena.Height, 1)
	c.Arena.ClampLeft = positiveOr(c.Arena.ClampLeft, d.Arena.ClampLeft)
	c.Arena.ClampRight = positiveOr(c.Arena.ClampRight, d.Arena.ClampRight)
	c.Arena.ClampBottom = positiveOr(c.Arena.ClampBottom, d.Arena.ClampBottom)
	c.Arena.ClampTop = positiveOr(c.Arena.ClampTop, d.Arena.ClampTop)
	c.Arena.CellSize = positiveOr(c.Arena.CellSize, d.Arena.CellSize)

	c.Player.Radius = atLeast(c.Player.Radius, minRadius)
	c.Player.Drag = atLeast(c.Player.Drag, 0)
	c.Player.RapidFireMultiplier = atLeast(c.Player.RapidFireMultiplier, 1)
	c.Player.MinFireInterval = positiveOr(c.Player.MinFireInterval, d.Player.MinFireInterval)
	c.Player.FireInterval = atLeast(c.Player.FireInterval, c.Player.MinFireInterval)
	c.Player.MaxHealth = atLeast(c.Player.MaxHealth, 1)
	c.Player.ShotSize = atLeast(c.Player.ShotSize, minRadius)
	c.Player.Mass = positiveOr(c.Player.Mass, d.Player.Mass)
	c.Player.Piercing = atLeast(c.Player.Piercing, 0)

	c.Enemy.Radius = atLeast(c.Enemy.Radius, minRadius)
	c.Enemy.Health = atLeast(c.Enemy.Health, 1)
	c.Enemy.Speed = atLeast(c.Enemy.Speed, 0)
	c.Enemy.HitInterval = atLeast(c.Enemy.HitInterval, 0)
	c.Enemy.Awareness = positiveOr(c.Enemy.Awareness, d.Enemy.Awareness)
	if c.Enemy.WanderSampling != WanderSquare {
		c.Enemy.WanderSampling = WanderAngular
	}

	c.Bullet.Lifetime = atLeast(c.Bullet.Lifetime, 0)
	c.Pickup.Radius = atLeast(c.Pickup.Radius, minRadius)

	if c.Wave.ItemEvery < 1 {
		c.Wave.ItemEvery = d.Wave.ItemEvery
	}
	if c.Wave.BaseEnemies < 0 {
		c.Wave.BaseEnemies = 0
	}
	if c.Wave.SpawnAttempts < 1 {
		c.Wave.SpawnAttempts = 1
	}
	c.Wave.SpawnClearance = atLeast(c.Wave.SpawnClearance, 0)

	return c
}

const minRadius = 0.5

func atLeast(v, lo float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	return v
}

func positiveOr(v, fallback float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return fallback
	}
	return v
}
