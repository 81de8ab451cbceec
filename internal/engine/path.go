package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/internal/systems"
	"tactics-server/pkg/logger"
)

// ExecutePath walks unitID along path one cell at a time. Each step fires the
// Step hook, which may block while presentation animates; ctx is checked
// between steps. Settled state is only final once the MoveComplete hook has
// fired. A walk that ends next to an enemy standing on the last path cell
// attacks it.
//
// Only one path may execute at a time; a second call returns ErrBusy.
// A walk cancelled through ctx after some steps returns the partial outcome
// together with the error.
func (r *Ruleset) ExecutePath(ctx context.Context, id domain.UnitID, path []domain.Axial) (domain.MoveOutcome, error) {
	return r.ExecutePathLimit(ctx, id, path, 0)
}

// ExecutePathLimit is ExecutePath stopping after at most limit steps
// (0 means no limit). A walk cut short by the limit does not attack.
// Replays use it to reproduce walks that were cancelled midway.
func (r *Ruleset) ExecutePathLimit(ctx context.Context, id domain.UnitID, path []domain.Axial, limit int) (domain.MoveOutcome, error) {
	if !r.claim(r.byID[id]) {
		return domain.MoveOutcome{}, fmt.Errorf("execute path: %w", ErrBusy)
	}
	defer r.release()

	env := r.Env()
	u, err := r.actor(id, env)
	if err != nil {
		return domain.MoveOutcome{}, fmt.Errorf("execute path: %w", err)
	}
	cells, err := r.resolvePath(path)
	if err != nil {
		return domain.MoveOutcome{}, fmt.Errorf("execute path: %w", err)
	}

	moveLogger := logger.Component("ruleset").WithFields(logrus.Fields{
		"unit_id": u.ID,
		"path":    len(cells),
	})

	systems.ClearAoA(env, u)

	last := cells[len(cells)-1]
	target := pathTarget(u, cells)
	stop := systems.MoveStopIndex(env, u, cells, last)
	out := domain.MoveOutcome{Unit: u, Verdict: domain.Allowed()}
	capped := false

	for i := 0; i < stop; i++ {
		if limit > 0 && out.Steps >= limit {
			capped = true
			break
		}
		if err := ctx.Err(); err != nil {
			moveLogger.WithField("steps", out.Steps).Warn("Path execution cancelled.")
			env.Hooks.FireMoveComplete(u, out.Verdict)
			return out, fmt.Errorf("execute path: %w", err)
		}

		from, next := u.Cell(), cells[i]
		if other := next.OtherOccupant(u); other != nil && u.IsEnemy(other) {
			break
		}

		out.Verdict = systems.TryMoveStep(env, u, from, next, last)
		if !out.Verdict.OK() {
			break
		}
		systems.PerformMove(env, u, from, next)
		out.Steps++
		env.Hooks.FireStep(u, from, next)
	}

	if out.Verdict.OK() && !capped && target != nil && u.IsAlive() {
		if res, err := r.attack(env, u, target); err == nil {
			out.Attack = &res
		} else {
			moveLogger.WithError(err).Debug("No attack at the end of the path.")
		}
	}

	moveLogger.WithFields(logrus.Fields{
		"steps":   out.Steps,
		"verdict": out.Verdict.String(),
		"capped":  capped,
	}).Info("Path executed.")

	env.Hooks.FireMoveComplete(u, out.Verdict)

	// A unit cut down on the way loses the rest of its turn.
	if !u.IsAlive() && r.turns.Active() == u {
		r.turns.AdvanceTurn()
	}
	return out, nil
}
