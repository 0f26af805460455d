package game

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// PilotContext is passed to pilot scripts as the argument of decide
type PilotContext struct {
	PlayerX      float64 `json:"playerX"`
	PlayerY      float64 `json:"playerY"`
	PlayerHealth float64 `json:"playerHealth"`
	PlayerMaxHP  float64 `json:"playerMaxHP"`
	ShotSpeed    float64 `json:"shotSpeed"`

	Wave  int     `json:"wave"`
	Score int     `json:"score"`
	Frame uint64  `json:"frame"`
	MinX  float64 `json:"minX"`
	MinY  float64 `json:"minY"`
	MaxX  float64 `json:"maxX"`
	MaxY  float64 `json:"maxY"`

	Enemies []PilotEntity `json:"enemies"`
	Pickups []PilotEntity `json:"pickups"`
}

// PilotEntity describes one nearby entity
type PilotEntity struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	DirX     float64 `json:"dirX"`
	DirY     float64 `json:"dirY"`
	Health   float64 `json:"health"`
	Distance float64 `json:"distance"`
	Kind     string  `json:"kind,omitempty"`
}

// PilotDecision is returned from decide
type PilotDecision struct {
	// Movement direction (-1 to 1 for each axis)
	MoveX float64 `json:"moveX"`
	MoveY float64 `json:"moveY"`

	// Aim at a world point when set
	AimX *float64 `json:"aimX,omitempty"`
	AimY *float64 `json:"aimY,omitempty"`

	Fire      bool `json:"fire"`
	RapidFire bool `json:"rapidFire"`
}

// ScriptPilot is an InputProvider driven by a JavaScript decide(ctx) function
// running in goja. A failing script yields empty input and is logged once.
type ScriptPilot struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	decide goja.Callable
	log    *zap.Logger

	// Every reruns decide once per this many polls and replays the cached
	// decision in between. Values below 1 run it every poll.
	Every int

	polls        int
	lastDecision PilotDecision
	lastErr      error
}

var _ InputProvider = (*ScriptPilot)(nil)

// NewScriptPilot compiles code and checks that it defines decide
func NewScriptPilot(code string, log *zap.Logger) (*ScriptPilot, error) {
	if log == nil {
		log = zap.NewNop()
	}

	vm := goja.New()
	if _, err := vm.RunString(code); err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}

	fn := vm.Get("decide")
	if fn == nil || goja.IsUndefined(fn) {
		return nil, fmt.Errorf("script must define a 'decide' function")
	}
	decide, ok := goja.AssertFunction(fn)
	if !ok {
		return nil, fmt.Errorf("'decide' must be a function")
	}

	return &ScriptPilot{vm: vm, decide: decide, log: log}, nil
}

// Poll runs decide against the current game state
func (s *ScriptPilot) Poll(g *Game) Input {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Every < 1 || s.polls%s.Every == 0 {
		decision, err := s.run(BuildPilotContext(g))
		if err != nil {
			if s.lastErr == nil {
				s.log.Warn("pilot script failed", zap.Error(err))
			}
			s.lastErr = err
			decision = PilotDecision{}
		} else {
			s.lastErr = nil
		}
		s.lastDecision = decision
	}
	s.polls++
	decision := s.lastDecision

	in := Input{
		Move:      Vec2{decision.MoveX, decision.MoveY},
		Fire:      decision.Fire,
		RapidFire: decision.RapidFire,
	}
	if decision.AimX != nil && decision.AimY != nil {
		in.AimTarget = Vec2{*decision.AimX, *decision.AimY}
		in.HasAimTarget = true
	}
	return in
}

// Err returns the error from the most recent Poll, if any
func (s *ScriptPilot) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *ScriptPilot) run(ctx PilotContext) (PilotDecision, error) {
	ctxJSON, err := json.Marshal(ctx)
	if err != nil {
		return PilotDecision{}, fmt.Errorf("failed to serialize context: %w", err)
	}
	ctxObj, err := s.vm.RunString(fmt.Sprintf("(%s)", ctxJSON))
	if err != nil {
		return PilotDecision{}, fmt.Errorf("failed to parse context: %w", err)
	}

	result, err := s.decide(goja.Undefined(), ctxObj)
	if err != nil {
		return PilotDecision{}, fmt.Errorf("decide function failed: %w", err)
	}

	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return PilotDecision{}, fmt.Errorf("failed to serialize result: %w", err)
	}
	var decision PilotDecision
	if err := json.Unmarshal(resultJSON, &decision); err != nil {
		return PilotDecision{}, fmt.Errorf("failed to parse script result: %w (result: %s)", err, resultJSON)
	}
	return decision, nil
}

// BuildPilotContext snapshots the state a pilot script sees
func BuildPilotContext(g *Game) PilotContext {
	p := g.Player()
	hud := g.HUD()
	bounds := g.Bounds()

	ctx := PilotContext{
		PlayerX:      p.Pos.X,
		PlayerY:      p.Pos.Y,
		PlayerHealth: p.Health,
		PlayerMaxHP:  hud.MaxHealth,
		ShotSpeed:    p.Stats.ShotSpeedValue(),
		Wave:         hud.Wave,
		Score:        hud.Score,
		Frame:        g.Frame(),
		MinX:         bounds.Min.X,
		MinY:         bounds.Min.Y,
		MaxX:         bounds.Max.X,
		MaxY:         bounds.Max.Y,
		Enemies:      []PilotEntity{},
		Pickups:      []PilotEntity{},
	}

	r := g.Registry()
	for _, h := range r.Enemies() {
		e, ok := r.Enemy(h)
		if !ok {
			continue
		}
		ctx.Enemies = append(ctx.Enemies, PilotEntity{
			X:        e.Pos.X,
			Y:        e.Pos.Y,
			DirX:     e.Dir.X,
			DirY:     e.Dir.Y,
			Health:   e.Health,
			Distance: e.Pos.Dist(p.Pos),
		})
	}
	for _, h := range r.Pickups() {
		pk, ok := r.Pickup(h)
		if !ok {
			continue
		}
		ctx.Pickups = append(ctx.Pickups, PilotEntity{
			X:        pk.Pos.X,
			Y:        pk.Pos.Y,
			Distance: pk.Pos.Dist(p.Pos),
			Kind:     pk.Kind.String(),
		})
	}
	return ctx
}
