package game

// Input is the raw per-frame input injected by a collaborator
type Input struct {
	// Move holds the two signed movement axes, each in [-1, 1]
	Move Vec2

	// Fire is true while the fire button is held
	Fire bool

	// RapidFire divides the fire interval while held
	RapidFire bool

	// AimTarget is a world-space point to face, used when HasAimTarget is set.
	// Otherwise AimDir is used; a zero AimDir keeps the last facing.
	AimTarget    Vec2
	HasAimTarget bool
	AimDir       Vec2

	// Pause toggles the paused state; Restart resets the session
	Pause   bool
	Restart bool
}

// InputProvider defines the interface for player input sources
type InputProvider interface {
	// Poll returns the input for the next frame. The game is read-only.
	Poll(g *Game) Input
}

// InputFunc adapts a function to InputProvider
type InputFunc func(g *Game) Input

// Poll calls f(g)
func (f InputFunc) Poll(g *Game) Input {
	return f(g)
}
