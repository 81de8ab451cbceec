package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/config"
	"tactics-server/internal/domain"
	"tactics-server/internal/systems"
	"tactics-server/pkg/logger"
)

var (
	ErrBusy         = errors.New("another unit is executing a path")
	ErrNotActive    = errors.New("unit is not the active unit")
	ErrNoCombat     = errors.New("no combat in progress")
	ErrInvalidInput = errors.New("invalid input")
	ErrOutOfRange   = errors.New("target out of range")
	ErrExhausted    = errors.New("not enough AP or too much fatigue")
)

// fatigueRecovery is shed by every unit at round start.
const fatigueRecovery = 15

// Override flag names accepted by SetOverride.
const (
	OverrideIgnoreAPs       = "ignoreAPs"
	OverrideIgnoreFatigue   = "ignoreFatigue"
	OverrideIgnoreMoveOrder = "ignoreMoveOrder"
)

// Ruleset wires the rule systems and the turn scheduler together and is the
// only thing that mutates board state. It is not safe for concurrent use
// apart from the executing-path slot.
type Ruleset struct {
	grid      domain.Grid
	rules     config.Rules
	overrides config.Overrides
	rng       systems.Source

	// presentation receives every hook after the ruleset's own bookkeeping.
	presentation *domain.Hooks
	core         *domain.Hooks

	units []*domain.Unit
	byID  map[domain.UnitID]*domain.Unit
	turns *TurnManager

	// mu guards the executing-path slot.
	mu        sync.Mutex
	busy      bool
	executing *domain.Unit
}

// NewRuleset creates a ruleset over grid. hooks may be nil.
func NewRuleset(grid domain.Grid, rules config.Rules, rng systems.Source, hooks *domain.Hooks) *Ruleset {
	if hooks == nil {
		hooks = &domain.Hooks{}
	}
	r := &Ruleset{
		grid:         grid,
		rules:        rules,
		rng:          rng,
		presentation: hooks,
		byID:         make(map[domain.UnitID]*domain.Unit),
	}
	r.core = &domain.Hooks{
		RoundStart:   r.onRoundStart,
		TurnStart:    r.onTurnStart,
		TurnEnd:      hooks.FireTurnEnd,
		Attacked:     hooks.FireAttacked,
		Hit:          hooks.FireHit,
		Died:         hooks.FireDied,
		Step:         hooks.FireStep,
		MoveComplete: hooks.FireMoveComplete,
	}
	r.turns = NewTurnManager(r.Units, r.core)
	r.turns.onRoundStart = r.resetOverrides
	return r
}

func (r *Ruleset) onRoundStart(units []*domain.Unit) {
	for _, u := range units {
		u.SetStat(domain.StatFAT, max(0, u.Get(domain.StatFAT)-fatigueRecovery))
	}
	r.presentation.FireRoundStart(units)
}

func (r *Ruleset) onTurnStart(u *domain.Unit) {
	u.SetStat(domain.StatAP, u.Base(domain.StatAP))
	systems.SetActiveMark(u, true)
	r.presentation.FireTurnStart(u)
}

func (r *Ruleset) resetOverrides() {
	r.overrides = config.Overrides{}
}

// Env is the evaluation environment for the current moment: file rules with
// runtime overrides folded in, and the active unit.
func (r *Ruleset) Env() systems.Env {
	return systems.Env{
		Grid:   r.grid,
		Rules:  r.rules.WithOverrides(r.overrides),
		Rng:    r.rng,
		Hooks:  r.core,
		Active: r.turns.Active(),
	}
}

func (r *Ruleset) Grid() domain.Grid                  { return r.grid }
func (r *Ruleset) Turns() *TurnManager                { return r.turns }
func (r *Ruleset) Overrides() config.Overrides        { return r.overrides }
func (r *Ruleset) Unit(id domain.UnitID) *domain.Unit { return r.byID[id] }

// Units lists every unit in the order it was added, dead ones included.
func (r *Ruleset) Units() []*domain.Unit {
	out := make([]*domain.Unit, len(r.units))
	copy(out, r.units)
	return out
}

// AddUnit places u on the cell at `at` and projects its influence.
func (r *Ruleset) AddUnit(u *domain.Unit, at domain.Axial) error {
	if u == nil {
		return fmt.Errorf("add unit: %w", ErrInvalidInput)
	}
	if _, dup := r.byID[u.ID]; dup {
		return fmt.Errorf("add unit %d: duplicate id: %w", u.ID, ErrInvalidInput)
	}
	cell := r.cellAt(at)
	if cell == nil {
		return fmt.Errorf("add unit %d: no cell at %s: %w", u.ID, at, ErrInvalidInput)
	}
	if cell.IsOccupied() {
		return fmt.Errorf("add unit %d: cell %s is occupied: %w", u.ID, at, ErrInvalidInput)
	}

	domain.Place(u, cell)
	systems.ProjectInfluence(r.Env(), u, cell)
	r.units = append(r.units, u)
	r.byID[u.ID] = u

	logger.Component("ruleset").WithFields(logrus.Fields{
		"unit_id": u.ID,
		"team":    u.Team,
		"at":      at,
	}).Debug("Unit added.")
	return nil
}

func (r *Ruleset) cellAt(a domain.Axial) *domain.Cell {
	if r.grid == nil {
		return nil
	}
	return r.grid.CellAt(a)
}

// StartCombat opens round 1.
func (r *Ruleset) StartCombat() error {
	if r.turns.State() == StateRoundActive {
		return nil
	}
	r.turns.StartNewRound()
	if r.turns.State() != StateRoundActive {
		return fmt.Errorf("start combat: %w", ErrNoCombat)
	}
	return nil
}

// EndCombat stops the scheduler and wipes every preview.
func (r *Ruleset) EndCombat() {
	env := r.Env()
	for _, u := range r.units {
		systems.ClearAoA(env, u)
	}
	r.turns.EndCombat()
}

// SetOverride flips one runtime switch until the next round starts.
func (r *Ruleset) SetOverride(flag string, on bool) error {
	switch flag {
	case OverrideIgnoreAPs:
		r.overrides.IgnoreAPs = on
	case OverrideIgnoreFatigue:
		r.overrides.IgnoreFatigue = on
	case OverrideIgnoreMoveOrder:
		r.overrides.IgnoreMoveOrder = on
	default:
		return fmt.Errorf("override %q: %w", flag, ErrInvalidInput)
	}
	logger.Component("ruleset").WithFields(logrus.Fields{
		"flag":    flag,
		"enabled": on,
	}).Info("Override changed.")
	return nil
}

// actor resolves id and enforces the move-order rule.
func (r *Ruleset) actor(id domain.UnitID, env systems.Env) (*domain.Unit, error) {
	if r.turns.State() != StateRoundActive {
		return nil, ErrNoCombat
	}
	u := r.byID[id]
	if u == nil || !u.IsAlive() || u.Cell() == nil {
		return nil, fmt.Errorf("unit %d: %w", id, ErrInvalidInput)
	}
	if !env.Rules.IgnoreMoveOrder && u != r.turns.Active() {
		return nil, fmt.Errorf("unit %d: %w", id, ErrNotActive)
	}
	return u, nil
}

// activeOnly is for actions that only make sense on the unit holding the turn.
func (r *Ruleset) activeOnly(id domain.UnitID) (*domain.Unit, error) {
	if r.turns.State() != StateRoundActive {
		return nil, ErrNoCombat
	}
	u := r.turns.Active()
	if u == nil || u.ID != id {
		return nil, fmt.Errorf("unit %d: %w", id, ErrNotActive)
	}
	return u, nil
}

func (r *Ruleset) isExecuting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Executing returns the unit currently walking a path, if any.
func (r *Ruleset) Executing() *domain.Unit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.executing
}

func (r *Ruleset) claim(u *domain.Unit) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy {
		return false
	}
	r.busy = true
	r.executing = u
	return true
}

func (r *Ruleset) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy = false
	r.executing = nil
}

func (r *Ruleset) resolvePath(path []domain.Axial) ([]*domain.Cell, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path: %w", ErrInvalidInput)
	}
	cells := make([]*domain.Cell, len(path))
	for i, a := range path {
		c := r.cellAt(a)
		if c == nil {
			return nil, fmt.Errorf("path step %d: no cell at %s: %w", i, a, ErrInvalidInput)
		}
		cells[i] = c
	}
	return cells, nil
}

// pathTarget returns the enemy standing on the last path cell, if any.
func pathTarget(u *domain.Unit, cells []*domain.Cell) *domain.Unit {
	if len(cells) == 0 {
		return nil
	}
	other := cells[len(cells)-1].OtherOccupant(u)
	if other == nil || !u.IsEnemy(other) || !other.IsAlive() {
		return nil
	}
	return other
}

// PreviewPath shows where unitID would stop on path and what it could hit
// from there. The AoA preview stays on the board until CancelPreview or the
// unit acts.
func (r *Ruleset) PreviewPath(id domain.UnitID, path []domain.Axial) (domain.PathPreview, error) {
	env := r.Env()
	u, err := r.actor(id, env)
	if err != nil {
		return domain.PathPreview{}, fmt.Errorf("preview: %w", err)
	}
	cells, err := r.resolvePath(path)
	if err != nil {
		return domain.PathPreview{}, fmt.Errorf("preview: %w", err)
	}

	target := cells[len(cells)-1]
	stop := systems.MoveStopIndex(env, u, cells, target)
	p := domain.PathPreview{
		Unit:      u,
		Path:      cells,
		StopIndex: stop,
		Target:    pathTarget(u, cells),
	}
	p.Stop = u.Cell()
	if stop > 0 {
		p.Stop = cells[stop-1]
	}
	// Never preview standing on the enemy itself.
	if p.Target != nil && p.Stop == p.Target.Cell() {
		p.Stop = u.Cell()
		if stop > 1 {
			p.Stop = cells[stop-2]
		}
	}

	systems.ShowAoA(env, u, p.Stop)
	if p.Target != nil {
		p.Hits = systems.PotentialHits(env, u, p.Target, p.Stop)
	}
	return p, nil
}

// CancelPreview removes unitID's AoA preview wherever it was drawn.
func (r *Ruleset) CancelPreview(id domain.UnitID) error {
	u := r.byID[id]
	if u == nil {
		return fmt.Errorf("cancel preview: unit %d: %w", id, ErrInvalidInput)
	}
	systems.ClearAoA(r.Env(), u)
	return nil
}

// Attack makes attackerID strike targetID from where it stands.
func (r *Ruleset) Attack(attackerID, targetID domain.UnitID) (domain.AttackResult, error) {
	if r.isExecuting() {
		return domain.AttackResult{}, fmt.Errorf("attack: %w", ErrBusy)
	}
	env := r.Env()
	attacker, err := r.actor(attackerID, env)
	if err != nil {
		return domain.AttackResult{}, fmt.Errorf("attack: %w", err)
	}
	target := r.byID[targetID]
	if target == nil {
		return domain.AttackResult{}, fmt.Errorf("attack: target %d: %w", targetID, ErrInvalidInput)
	}
	return r.attack(env, attacker, target)
}

func (r *Ruleset) attack(env systems.Env, attacker, target *domain.Unit) (domain.AttackResult, error) {
	if v := systems.ValidateAttack(env, attacker, target); !v.Valid {
		return domain.AttackResult{}, fmt.Errorf("attack: %s: %w", v.Message, ErrOutOfRange)
	}
	if !canAfford(env, attacker) {
		return domain.AttackResult{}, fmt.Errorf("attack: %w", ErrExhausted)
	}

	systems.ClearAoA(env, attacker)
	res := systems.ResolveAttack(env, attacker, target)

	if !env.Rules.IgnoreAPs {
		attacker.SetStat(domain.StatAP, 0)
	}
	if !env.Rules.IgnoreFatigue {
		attacker.SetStat(domain.StatFAT, attacker.Get(domain.StatFAT)+attacker.Get(domain.StatAFAT))
	}
	return res, nil
}

// canAfford is the attack budget: some AP left and room for AFAT fatigue.
func canAfford(env systems.Env, u *domain.Unit) bool {
	if !env.Rules.IgnoreAPs && u.Get(domain.StatAP) <= 0 {
		return false
	}
	if !env.Rules.IgnoreFatigue && u.Get(domain.StatFAT)+u.Get(domain.StatAFAT) > u.Base(domain.StatFAT) {
		return false
	}
	return true
}

// Wait defers the active unit's turn.
func (r *Ruleset) Wait(id domain.UnitID) error {
	if r.isExecuting() {
		return fmt.Errorf("wait: %w", ErrBusy)
	}
	u, err := r.activeOnly(id)
	if err != nil {
		return fmt.Errorf("wait: %w", err)
	}
	systems.ClearAoA(r.Env(), u)
	r.turns.WaitTurn()
	return nil
}

// EndTurn passes the turn on.
func (r *Ruleset) EndTurn(id domain.UnitID) error {
	if r.isExecuting() {
		return fmt.Errorf("end turn: %w", ErrBusy)
	}
	u, err := r.activeOnly(id)
	if err != nil {
		return fmt.Errorf("end turn: %w", err)
	}
	systems.ClearAoA(r.Env(), u)
	r.turns.AdvanceTurn()
	return nil
}
