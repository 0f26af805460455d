package game

// Faction represents which side fired a bullet
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

// Targets reports whether bullets of this faction damage entities of type t
func (f Faction) Targets(t EntityType) bool {
	switch f {
	case FactionPlayer:
		return t == EntityTypeEnemy
	case FactionEnemy:
		return t == EntityTypePlayer
	default:
		return false
	}
}
