package engine

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-server/internal/config"
	"tactics-server/internal/domain"
	"tactics-server/internal/grid"
	"tactics-server/pkg/api"
)

type recordingPublisher struct {
	mu        sync.Mutex
	broadcast []api.Event
	direct    map[string][]api.Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{direct: make(map[string][]api.Event)}
}

func (p *recordingPublisher) Broadcast(ev api.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.broadcast = append(p.broadcast, ev)
}

func (p *recordingPublisher) SendTo(session string, ev api.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.direct[session] = append(p.direct[session], ev)
}

func (p *recordingPublisher) sent(session string) []api.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]api.Event(nil), p.direct[session]...)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.broadcast))
	for i, ev := range p.broadcast {
		out[i] = ev.Type
	}
	return out
}

func newTestMatch(t *testing.T, seed uint64, pub Publisher) *Match {
	t.Helper()
	m := NewMatch(Config{ID: "test", Seed: seed, Rules: config.DefaultRules()}, grid.NewHexagon(4), pub)
	fighter := map[string]int{domain.StatMAT: 50, domain.StatMDF: 10, domain.StatDMIN: 2, domain.StatDMAX: 8}

	a := domain.NewUnit(1, 0, "alpha", unitStats(fighter))
	a.SetBaseStat(domain.StatINI, 50)
	b := domain.NewUnit(2, 1, "bravo", unitStats(fighter))
	require.NoError(t, m.Ruleset.AddUnit(a, domain.Axial{Q: 0, R: 0}))
	require.NoError(t, m.Ruleset.AddUnit(b, domain.Axial{Q: 1, R: 0}))
	require.NoError(t, m.Start())
	return m
}

func command(action domain.ActionType, unit domain.UnitID, payload any) domain.InternalCommand {
	cmd := domain.InternalCommand{Action: action, Unit: unit, Session: "s1"}
	if payload != nil {
		raw, _ := json.Marshal(payload)
		cmd.Payload = raw
	}
	return cmd
}

func TestMatch_StartBroadcastsRound(t *testing.T) {
	pub := newRecordingPublisher()
	newTestMatch(t, 1, pub)

	assert.Equal(t, []string{"ROUND_START", "TURN_START"}, pub.types())
}

func TestMatch_InitRepliesWithState(t *testing.T) {
	pub := newRecordingPublisher()
	m := newTestMatch(t, 1, pub)

	_, err := m.Execute(context.Background(), command(domain.ActionInit, 0, nil))
	require.NoError(t, err)

	sent := pub.sent("s1")
	require.Len(t, sent, 1)
	assert.Equal(t, "STATE", sent[0].Type)
	state, ok := sent[0].Payload.(api.StateView)
	require.True(t, ok)
	assert.Len(t, state.Units, 2)
	assert.Len(t, state.Cells, 61)
	assert.Empty(t, m.Journal.Actions)
}

func TestMatch_RejectsAndDoesNotJournal(t *testing.T) {
	pub := newRecordingPublisher()
	m := newTestMatch(t, 1, pub)

	_, err := m.Execute(context.Background(), command(domain.ActionAttack, 2, api.AttackPayload{TargetID: 1}))
	assert.ErrorIs(t, err, ErrNotActive)

	_, err = m.Execute(context.Background(), command(domain.ActionUnknown, 1, nil))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Execute(context.Background(), command(domain.ActionMovePath, 1, api.PathPayload{}))
	assert.Error(t, err)

	sent := pub.sent("s1")
	require.Len(t, sent, 3)
	for _, ev := range sent {
		assert.Equal(t, "REJECTED", ev.Type)
	}
	assert.Empty(t, m.Journal.Actions)
}

func TestMatch_JournalsAcceptedCommands(t *testing.T) {
	pub := newRecordingPublisher()
	m := newTestMatch(t, 1, pub)
	ctx := context.Background()

	_, err := m.Execute(ctx, command(domain.ActionCheat, 1, api.CheatPayload{Flag: OverrideIgnoreAPs, Enabled: true}))
	require.NoError(t, err)
	_, err = m.Execute(ctx, command(domain.ActionEndTurn, 1, nil))
	require.NoError(t, err)

	require.Len(t, m.Journal.Actions, 2)
	assert.Equal(t, domain.ActionCheat, m.Journal.Actions[0].Action)
	assert.Equal(t, domain.ActionEndTurn, m.Journal.Actions[1].Action)
	assert.Equal(t, 1, m.Journal.Actions[1].Round)
	assert.Len(t, m.Logs, 2)
	assert.Contains(t, pub.types(), "LOG")
}

func TestMatch_MoveEmitsStepsAndCompletion(t *testing.T) {
	pub := newRecordingPublisher()
	m := newTestMatch(t, 1, pub)
	// No attack of opportunity on the way out.
	m.Ruleset.Unit(2).SetStat(domain.StatMAT, 0)

	_, err := m.Execute(context.Background(), command(domain.ActionMovePath, 1, api.PathPayload{
		Path: []api.CoordView{{Q: -1, R: 0}, {Q: -2, R: 0}},
	}))
	require.NoError(t, err)

	steps := 0
	for _, typ := range pub.types() {
		if typ == "STEP" {
			steps++
		}
	}
	assert.Equal(t, 2, steps)
	assert.Contains(t, pub.types(), "MOVE_COMPLETE")
	assert.Equal(t, domain.Axial{Q: -2, R: 0}, m.Ruleset.Unit(1).Cell().Coord)
}

func TestMatch_ReplayReproducesBattle(t *testing.T) {
	const seed = 42
	script := []domain.InternalCommand{
		command(domain.ActionAttack, 1, api.AttackPayload{TargetID: 2}),
		command(domain.ActionEndTurn, 1, nil),
		command(domain.ActionAttack, 2, api.AttackPayload{TargetID: 1}),
		command(domain.ActionEndTurn, 2, nil),
		command(domain.ActionAttack, 1, api.AttackPayload{TargetID: 2}),
		command(domain.ActionWait, 1, nil),
		command(domain.ActionAttack, 2, api.AttackPayload{TargetID: 1}),
	}

	original := newTestMatch(t, seed, nil)
	for _, cmd := range script {
		_, err := original.Execute(context.Background(), cmd)
		require.NoError(t, err, cmd.Action.String())
	}
	require.Len(t, original.Journal.Actions, len(script))

	replayed := newTestMatch(t, seed, nil)
	require.NoError(t, replayed.Replay(context.Background(), original.Journal))

	for _, id := range []domain.UnitID{1, 2} {
		assert.Equal(t, original.Ruleset.Unit(id).Stats(), replayed.Ruleset.Unit(id).Stats())
	}
	assert.Equal(t, original.Ruleset.Turns().Round(), replayed.Ruleset.Turns().Round())
	assert.Same(t, replayed.Ruleset.Unit(2), replayed.Ruleset.Turns().Active())
}

// cancelOnStep cancels the running command once the first step is shown.
type cancelOnStep struct {
	*recordingPublisher
	cancel context.CancelFunc
}

func (p *cancelOnStep) Broadcast(ev api.Event) {
	p.recordingPublisher.Broadcast(ev)
	if ev.Type == "STEP" {
		p.cancel()
	}
}

func TestMatch_CancelledWalkIsJournaledAndReplays(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pub := &cancelOnStep{recordingPublisher: newRecordingPublisher(), cancel: cancel}
	m := newTestMatch(t, 3, pub)
	m.Ruleset.Unit(2).SetStat(domain.StatMAT, 0)

	_, err := m.Execute(ctx, command(domain.ActionMovePath, 1, api.PathPayload{
		Path: []api.CoordView{{Q: -1, R: 0}, {Q: -2, R: 0}},
	}))
	require.ErrorIs(t, err, context.Canceled)

	moved := m.Ruleset.Unit(1)
	assert.Equal(t, domain.Axial{Q: -1, R: 0}, moved.Cell().Coord)
	require.Len(t, m.Journal.Actions, 1)
	var recorded api.PathPayload
	require.NoError(t, json.Unmarshal(m.Journal.Actions[0].Payload, &recorded))
	assert.Equal(t, 1, recorded.Limit)
	assert.Len(t, recorded.Path, 2)
	assert.Equal(t, "REJECTED", pub.sent("s1")[0].Type)

	replayed := newTestMatch(t, 3, nil)
	replayed.Ruleset.Unit(2).SetStat(domain.StatMAT, 0)
	require.NoError(t, replayed.Replay(context.Background(), m.Journal))

	again := replayed.Ruleset.Unit(1)
	assert.Equal(t, moved.Cell().Coord, again.Cell().Coord)
	assert.Equal(t, moved.Stats(), again.Stats())
}

func TestMatch_ReplayRejectsOtherSeed(t *testing.T) {
	m := newTestMatch(t, 7, nil)
	err := m.Replay(context.Background(), &domain.Journal{Seed: 8})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatch_RunServesSubmitAndInspect(t *testing.T) {
	pub := newRecordingPublisher()
	m := newTestMatch(t, 1, pub)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	require.True(t, m.Submit(command(domain.ActionEndTurn, 1, nil)))

	assert.Eventually(t, func() bool {
		var active domain.UnitID
		err := m.Inspect(ctx, func(r *Ruleset) {
			if a := r.Turns().Active(); a != nil {
				active = a.ID
			}
		})
		return err == nil && active == 2
	}, time.Second, 10*time.Millisecond)
}

func TestMatch_InspectHonoursContext(t *testing.T) {
	m := newTestMatch(t, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Inspect(ctx, func(*Ruleset) {})
	assert.ErrorIs(t, err, context.Canceled)
}
