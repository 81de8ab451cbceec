package engine

import (
	"container/heap"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/internal/systems"
	"tactics-server/pkg/logger"
)

// waitPenalty pushes units that waited behind everyone who has not.
const waitPenalty = 100

// RoundState is the scheduler state.
type RoundState uint8

const (
	StateIdle RoundState = iota
	StateRoundActive
)

func (s RoundState) String() string {
	if s == StateRoundActive {
		return "ROUND_ACTIVE"
	}
	return "IDLE"
}

// TurnManager owns round and turn order. The active unit is held apart from
// the queue, so the queue never contains it.
type TurnManager struct {
	roster func() []*domain.Unit
	hooks  *domain.Hooks
	// onRoundStart runs before the round-start hook; the ruleset resets
	// runtime overrides here.
	onRoundStart func()

	state  RoundState
	round  int
	queue  TurnQueue
	seq    int
	active *domain.Unit
	waited map[domain.UnitID]struct{}
}

// NewTurnManager creates an idle scheduler. roster lists every unit in
// discovery order; it is read at each round start.
func NewTurnManager(roster func() []*domain.Unit, hooks *domain.Hooks) *TurnManager {
	return &TurnManager{
		roster: roster,
		hooks:  hooks,
		queue:  make(TurnQueue, 0),
		waited: make(map[domain.UnitID]struct{}),
	}
}

func (tm *TurnManager) State() RoundState    { return tm.state }
func (tm *TurnManager) Round() int           { return tm.round }
func (tm *TurnManager) Active() *domain.Unit { return tm.active }
func (tm *TurnManager) Len() int             { return tm.queue.Len() }

// HasWaited reports whether id already used its wait this round.
func (tm *TurnManager) HasWaited(id domain.UnitID) bool {
	_, ok := tm.waited[id]
	return ok
}

// StartNewRound begins a round and hands the turn to its first unit.
func (tm *TurnManager) StartNewRound() {
	if !tm.beginRound() {
		return
	}
	tm.AdvanceTurn()
}

// beginRound rebuilds the queue. It returns false and goes idle when there
// is nobody left to act.
func (tm *TurnManager) beginRound() bool {
	tm.round++
	clear(tm.waited)
	if tm.onRoundStart != nil {
		tm.onRoundStart()
	}

	var units []*domain.Unit
	if tm.roster != nil {
		for _, u := range tm.roster() {
			if u.IsAlive() && u.Enabled {
				units = append(units, u)
			}
		}
	}

	roundLogger := logger.Component("turn_manager").WithFields(logrus.Fields{
		"round": tm.round,
		"units": len(units),
	})

	if len(units) == 0 {
		tm.state = StateIdle
		tm.queue = tm.queue[:0]
		roundLogger.Warn("No units left to act, scheduler idle.")
		return false
	}

	tm.hooks.FireRoundStart(units)

	tm.queue = make(TurnQueue, 0, len(units))
	tm.seq = 0
	for _, u := range units {
		tm.push(u, u.TurnPriority())
	}
	heap.Init(&tm.queue)
	tm.state = StateRoundActive

	roundLogger.Info("Round started.")
	roundLogger.WithField("queue", tm.DebugDump()).Debug("Round order.")
	return true
}

func (tm *TurnManager) push(u *domain.Unit, priority int) {
	tm.queue = append(tm.queue, &TurnItem{Value: u, Priority: priority, Seq: tm.seq, Index: len(tm.queue)})
	tm.seq++
}

// AdvanceTurn ends the active turn and activates the next living unit.
// An exhausted queue rolls into a new round; a round with nobody in it
// leaves the scheduler idle.
func (tm *TurnManager) AdvanceTurn() {
	for {
		if tm.active != nil {
			prev := tm.active
			systems.SetActiveMark(prev, false)
			tm.active = nil
			tm.hooks.FireTurnEnd(prev)
		}

		tm.dropDead()

		if tm.queue.Len() == 0 {
			if !tm.beginRound() {
				return
			}
			continue
		}

		item := heap.Pop(&tm.queue).(*TurnItem)
		tm.active = item.Value
		tm.hooks.FireTurnStart(tm.active)

		logger.Component("turn_manager").WithFields(logrus.Fields{
			"round":   tm.round,
			"unit_id": tm.active.ID,
		}).Debug("Turn started.")
		return
	}
}

func (tm *TurnManager) dropDead() {
	alive := tm.queue[:0]
	for _, it := range tm.queue {
		if it.Value.IsAlive() {
			alive = append(alive, it)
		}
	}
	for i := len(alive); i < len(tm.queue); i++ {
		tm.queue[i] = nil
	}
	tm.queue = alive
	for i, it := range tm.queue {
		it.Index = i
	}
	heap.Init(&tm.queue)
}

// WaitTurn defers the active unit to the back of the round. A second wait in
// the same round does not re-queue: the unit simply ends its turn.
func (tm *TurnManager) WaitTurn() {
	u := tm.active
	if u == nil {
		return
	}
	if tm.HasWaited(u.ID) {
		logger.Component("turn_manager").WithField("unit_id", u.ID).Debug("Second wait, turn forfeited.")
		tm.AdvanceTurn()
		return
	}

	tm.waited[u.ID] = struct{}{}

	// Re-sort everything in current order with the waiter appended.
	ordered := tm.queue.Ordered()
	tm.queue = make(TurnQueue, 0, len(ordered)+1)
	tm.seq = 0
	for _, it := range ordered {
		tm.push(it.Value, tm.sortPriority(it.Value))
	}
	tm.push(u, tm.sortPriority(u))
	heap.Init(&tm.queue)

	systems.SetActiveMark(u, false)
	tm.active = nil
	tm.AdvanceTurn()
}

func (tm *TurnManager) sortPriority(u *domain.Unit) int {
	p := u.TurnPriority()
	if tm.HasWaited(u.ID) {
		p -= waitPenalty
	}
	return p
}

// EndCombat drops all round state and goes idle.
func (tm *TurnManager) EndCombat() {
	systems.SetActiveMark(tm.active, false)
	tm.active = nil
	tm.queue = tm.queue[:0]
	clear(tm.waited)
	tm.round = 0
	tm.state = StateIdle
	logger.Component("turn_manager").Info("Combat ended.")
}

// QueueEntry is one row of a scheduler snapshot.
type QueueEntry struct {
	UnitID   domain.UnitID `json:"unitId"`
	Name     string        `json:"name"`
	Team     int           `json:"team"`
	Priority int           `json:"priority"`
	Waited   bool          `json:"waited"`
}

// Snapshot is a read-only view of the scheduler.
type Snapshot struct {
	State  string       `json:"state"`
	Round  int          `json:"round"`
	Active *QueueEntry  `json:"active,omitempty"`
	Queue  []QueueEntry `json:"queue"`
}

// Snapshot lists the queue in the order units will act.
func (tm *TurnManager) Snapshot() Snapshot {
	snap := Snapshot{
		State: tm.state.String(),
		Round: tm.round,
		Queue: make([]QueueEntry, 0, tm.queue.Len()),
	}
	if tm.active != nil {
		e := tm.entry(tm.active, tm.active.TurnPriority())
		snap.Active = &e
	}
	for _, it := range tm.queue.Ordered() {
		snap.Queue = append(snap.Queue, tm.entry(it.Value, it.Priority))
	}
	return snap
}

func (tm *TurnManager) entry(u *domain.Unit, priority int) QueueEntry {
	return QueueEntry{
		UnitID:   u.ID,
		Name:     u.Name,
		Team:     u.Team,
		Priority: priority,
		Waited:   tm.HasWaited(u.ID),
	}
}

// DebugDump is Snapshot flattened for ad-hoc JSON dumps.
func (tm *TurnManager) DebugDump() []map[string]interface{} {
	// An empty slice, not nil, so JSON renders "[]".
	result := make([]map[string]interface{}, 0)
	for i, e := range tm.Snapshot().Queue {
		result = append(result, map[string]interface{}{
			"id":       e.UnitID,
			"name":     e.Name,
			"priority": e.Priority,
			"index":    i,
			"waited":   e.Waited,
		})
	}
	return result
}
