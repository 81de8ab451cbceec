package engine

import (
	"context"
	"fmt"

	"tactics-server/internal/domain"
)

// Replay feeds a journal through m. m must have been built from the same
// scenario and seed as the journaled match, and already started.
func (m *Match) Replay(ctx context.Context, j *domain.Journal) error {
	if j.Seed != m.Seed {
		return fmt.Errorf("replay: journal seed %d, match seed %d: %w", j.Seed, m.Seed, ErrInvalidInput)
	}
	for i, act := range j.Actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd := domain.InternalCommand{
			Action:  act.Action,
			Unit:    act.Unit,
			Payload: act.Payload,
		}
		if _, err := m.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("replay action %d (%s, round %d): %w", i, act.Action, act.Round, err)
		}
	}
	m.logger().WithField("actions", len(j.Actions)).Info("Journal replayed.")
	return nil
}
