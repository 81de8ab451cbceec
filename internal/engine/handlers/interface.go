package handlers

import (
	"context"
	"encoding/json"

	"tactics-server/internal/domain"
)

// Rules is the part of the ruleset a command handler may drive.
// engine.Ruleset implements it.
type Rules interface {
	PreviewPath(unit domain.UnitID, path []domain.Axial) (domain.PathPreview, error)
	CancelPreview(unit domain.UnitID) error
	ExecutePathLimit(ctx context.Context, unit domain.UnitID, path []domain.Axial, limit int) (domain.MoveOutcome, error)
	Attack(attacker, target domain.UnitID) (domain.AttackResult, error)
	Wait(unit domain.UnitID) error
	EndTurn(unit domain.UnitID) error
	SetOverride(flag string, on bool) error
}

// Context hands the handler what it needs to act.
type Context struct {
	Ctx   context.Context
	Rules Rules
	Actor domain.UnitID
}

// Result is what a handler returns. Handlers never publish or log to the
// match directly.
type Result struct {
	Msg     string // match log line
	MsgType string // INFO, MOVE, COMBAT
	// Reply is sent back to the requesting session only.
	Reply     any
	ReplyType domain.EventType
	// Journal, when set on a failed command, is journaled in place of the
	// command's payload: the command changed state before failing.
	Journal json.RawMessage
}

// HandlerFunc is the contract for every command (MOVE_PATH, ATTACK, ...).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult is a successful result with nothing to report.
func EmptyResult() Result {
	return Result{}
}
