package game

// NewEnemy creates an enemy at pos with default combat stats from cfg
func NewEnemy(cfg EnemyConfig, pos, dir Vec2) *Enemy {
	return &Enemy{
		Pos:           pos,
		Dir:           dir.Normalize(),
		Radius:        cfg.Radius,
		Health:        cfg.Health,
		MaxHealth:     cfg.Health,
		ContactDamage: cfg.ContactDamage,
		Points:        cfg.Points,
		Speed:         cfg.Speed,
		HitInterval:   cfg.HitInterval,
		FlipX:         dir.X < 0,
	}
}
