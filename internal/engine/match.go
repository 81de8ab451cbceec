package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/internal/engine/handlers/actions"
	"tactics-server/internal/engine/handlers/admin"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
	"tactics-server/pkg/utils"
)

const commandBuffer = 100

// Publisher delivers events to presentation clients.
// network.Broadcaster implements it.
type Publisher interface {
	Broadcast(ev api.Event)
	SendTo(session string, ev api.Event)
}

// Match is one running battle. Every command goes through the single
// goroutine started by Run, so the ruleset only ever has one writer.
type Match struct {
	ID      string
	Seed    uint64
	Ruleset *Ruleset

	CommandChan chan domain.InternalCommand
	inspectChan chan func(*Ruleset)

	handlers  map[domain.ActionType]handlers.HandlerFunc
	publisher Publisher
	stepDelay time.Duration

	// ctx is the context of the command being executed; hooks read it.
	ctx context.Context
	seq int

	Logs    []api.LogEntry
	Journal *domain.Journal
}

// NewMatch creates a match over grid. Units are added through
// m.Ruleset.AddUnit before Start. pub may be nil.
func NewMatch(cfg Config, grid domain.Grid, pub Publisher) *Match {
	if cfg.ID == "" {
		cfg.ID = utils.GenerateID()
	}
	m := &Match{
		ID:          cfg.ID,
		Seed:        cfg.Seed,
		CommandChan: make(chan domain.InternalCommand, commandBuffer),
		inspectChan: make(chan func(*Ruleset)),
		publisher:   pub,
		stepDelay:   cfg.StepDelay,
		ctx:         context.Background(),
		Logs:        []api.LogEntry{},
		Journal: &domain.Journal{
			MatchID:   cfg.ID,
			Seed:      cfg.Seed,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.JournalAction, 0),
		},
	}
	m.Ruleset = NewRuleset(grid, cfg.Rules, utils.NewRand(cfg.Seed), m.presentationHooks())
	m.registerHandlers()
	return m
}

func (m *Match) registerHandlers() {
	m.handlers = map[domain.ActionType]handlers.HandlerFunc{
		domain.ActionInit:          handlers.WithEmptyPayload(actions.HandleInit),
		domain.ActionMovePath:      handlers.WithPayload(actions.HandleMovePath),
		domain.ActionPreview:       handlers.WithPayload(actions.HandlePreview),
		domain.ActionCancelPreview: handlers.WithEmptyPayload(actions.HandleCancelPreview),
		domain.ActionAttack:        handlers.WithPayload(actions.HandleAttack),
		domain.ActionWait:          handlers.WithEmptyPayload(actions.HandleWait),
		domain.ActionEndTurn:       handlers.WithEmptyPayload(actions.HandleEndTurn),
		domain.ActionCheat:         handlers.WithPayload(admin.HandleCheat),
	}
}

func (m *Match) logger() *logrus.Entry {
	return logger.Component("match").WithField("match_id", m.ID)
}

// Start opens the first round.
func (m *Match) Start() error {
	if err := m.Ruleset.StartCombat(); err != nil {
		return err
	}
	m.logger().WithField("units", len(m.Ruleset.Units())).Info("Combat started.")
	return nil
}

// Run is the match loop. It returns when ctx is done.
func (m *Match) Run(ctx context.Context) {
	m.logger().Info("Match loop started")

	for {
		select {
		case <-ctx.Done():
			m.logger().Info("Match loop stopped")
			return

		case cmd := <-m.CommandChan:
			_, _ = m.Execute(ctx, cmd)

		case fn := <-m.inspectChan:
			fn(m.Ruleset)
		}
	}
}

// Submit queues a command for the loop. It reports false when the queue is
// full and the command was dropped.
func (m *Match) Submit(cmd domain.InternalCommand) bool {
	select {
	case m.CommandChan <- cmd:
		return true
	default:
		m.logger().WithField("action", cmd.Action).Warn("Command queue full, command dropped.")
		return false
	}
}

// Inspect runs fn on the loop goroutine and waits for it. fn must not keep
// references to ruleset state after returning.
func (m *Match) Inspect(ctx context.Context, fn func(*Ruleset)) error {
	done := make(chan struct{})
	wrapped := func(r *Ruleset) {
		defer close(done)
		fn(r)
	}
	select {
	case m.inspectChan <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Execute runs one command synchronously. Rejected commands are answered
// with a REJECTED event to the sender; accepted state changes are journaled.
func (m *Match) Execute(ctx context.Context, cmd domain.InternalCommand) (handlers.Result, error) {
	handler, ok := m.handlers[cmd.Action]
	if !ok {
		err := fmt.Errorf("unknown action %q: %w", cmd.Action, ErrInvalidInput)
		m.reject(cmd, err)
		return handlers.Result{}, err
	}

	m.ctx = ctx
	defer func() { m.ctx = context.Background() }()

	round := m.Ruleset.Turns().Round()
	res, err := handler(handlers.Context{Ctx: ctx, Rules: m.Ruleset, Actor: cmd.Unit}, cmd.Payload)
	if err != nil {
		if res.Journal != nil && cmd.Action.Mutates() {
			partial := cmd
			partial.Payload = res.Journal
			m.recordAction(partial, round)
		}
		m.reject(cmd, err)
		return res, err
	}

	if cmd.Action.Mutates() {
		m.recordAction(cmd, round)
	}
	if res.Msg != "" {
		m.AddLog(res.Msg, res.MsgType)
	}

	switch res.ReplyType {
	case domain.EventUnknown:
	case domain.EventState:
		m.reply(cmd.Session, domain.EventState, m.State())
	default:
		m.reply(cmd.Session, res.ReplyType, res.Reply)
	}
	return res, nil
}

func (m *Match) reject(cmd domain.InternalCommand, err error) {
	entry := m.logger().WithFields(logrus.Fields{
		"action":  cmd.Action,
		"unit_id": cmd.Unit,
		"session": cmd.Session,
	}).WithError(err)
	if errors.Is(err, context.Canceled) {
		entry.Info("Command cancelled.")
	} else {
		entry.Warn("Command rejected.")
	}
	m.reply(cmd.Session, domain.EventRejected, api.RejectedView{
		Action: cmd.Action.String(),
		Reason: err.Error(),
	})
}

func (m *Match) recordAction(cmd domain.InternalCommand, round int) {
	m.Journal.Actions = append(m.Journal.Actions, domain.JournalAction{
		Round:   round,
		Unit:    cmd.Unit,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}

func (m *Match) event(t domain.EventType, payload any) api.Event {
	m.seq++
	ev := api.Event{
		Type:    t.String(),
		Seq:     m.seq,
		Round:   m.Ruleset.Turns().Round(),
		Payload: payload,
	}
	if a := m.Ruleset.Turns().Active(); a != nil {
		ev.ActiveUnitID = int(a.ID)
	}
	return ev
}

func (m *Match) broadcast(t domain.EventType, payload any) {
	if m.publisher == nil {
		return
	}
	m.publisher.Broadcast(m.event(t, payload))
}

func (m *Match) reply(session string, t domain.EventType, payload any) {
	if m.publisher == nil || session == "" {
		return
	}
	m.publisher.SendTo(session, m.event(t, payload))
}

// presentationHooks turn rule callbacks into client events.
func (m *Match) presentationHooks() *domain.Hooks {
	return &domain.Hooks{
		RoundStart: func(units []*domain.Unit) {
			view := api.RoundView{Units: make([]api.UnitRef, len(units))}
			for i, u := range units {
				view.Units[i] = handlers.UnitRef(u)
			}
			m.broadcast(domain.EventRoundStart, view)
		},
		TurnStart: func(u *domain.Unit) {
			m.broadcast(domain.EventTurnStart, handlers.UnitRef(u))
		},
		TurnEnd: func(u *domain.Unit) {
			m.broadcast(domain.EventTurnEnd, handlers.UnitRef(u))
		},
		Attacked: func(a, t *domain.Unit) {
			m.broadcast(domain.EventAttacked, api.AttackView{AttackerID: int(a.ID), TargetID: int(t.ID)})
		},
		Hit: func(a, t *domain.Unit, dmg int) {
			v := api.AttackView{TargetID: int(t.ID), Damage: dmg}
			if a != nil {
				v.AttackerID = int(a.ID)
			}
			m.broadcast(domain.EventHit, v)
		},
		Died: func(u *domain.Unit) {
			m.broadcast(domain.EventDied, handlers.UnitRef(u))
		},
		Step: func(u *domain.Unit, from, to *domain.Cell) {
			m.broadcast(domain.EventStep, api.StepView{
				UnitID: int(u.ID),
				From:   handlers.Coord(from.Coord),
				To:     handlers.Coord(to.Coord),
			})
			m.pace()
		},
		MoveComplete: func(u *domain.Unit, v domain.MoveVerdict) {
			m.broadcast(domain.EventMoveComplete, handlers.MoveComplete(u, v))
		},
	}
}

// pace blocks for one step of animation or until the command is cancelled.
func (m *Match) pace() {
	if m.stepDelay <= 0 {
		return
	}
	t := time.NewTimer(m.stepDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-m.ctx.Done():
	}
}

// State renders the whole board for a client.
func (m *Match) State() api.StateView {
	view := api.StateView{MatchID: m.ID, Cells: []api.CellView{}, Units: []api.UnitView{}}
	if g := m.Ruleset.Grid(); g != nil {
		for _, c := range g.Cells() {
			view.Cells = append(view.Cells, handlers.CellView(c))
		}
	}
	for _, u := range m.Ruleset.Units() {
		view.Units = append(view.Units, handlers.UnitView(u))
	}
	return view
}
