package api

import (
	"encoding/json"
)

// --- SERVER -> CLIENT ---

// Event is one frame pushed to presentation clients. Events produced by the
// rules hooks go to every subscriber; replies to a command (PREVIEW,
// REJECTED, STATE) only to the session that sent it.
type Event struct {
	// Type is one of the domain event names: ROUND_START, TURN_START,
	// TURN_END, ATTACKED, HIT, DIED, STEP, MOVE_COMPLETE, PREVIEW,
	// REJECTED, STATE, LOG.
	Type string `json:"type"`

	// Seq increases by one for every event a match emits.
	Seq int `json:"seq"`

	// Round is the round the event happened in.
	Round int `json:"round"`

	// ActiveUnitID is the unit holding the turn, 0 when nobody does.
	ActiveUnitID int `json:"activeUnitId,omitempty"`

	// Payload depends on Type.
	Payload any `json:"payload,omitempty"`
}

// CoordView is an axial hex coordinate.
type CoordView struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// UnitRef names a unit in turn and death events.
type UnitRef struct {
	UnitID int    `json:"unitId"`
	Name   string `json:"name,omitempty"`
	Team   int    `json:"team"`
}

// RoundView is the ROUND_START payload.
type RoundView struct {
	Units []UnitRef `json:"units"`
}

// AttackView is the ATTACKED and HIT payload.
type AttackView struct {
	AttackerID int `json:"attackerId"`
	TargetID   int `json:"targetId"`
	Damage     int `json:"damage,omitempty"`
}

// StepView is the STEP payload.
type StepView struct {
	UnitID int       `json:"unitId"`
	From   CoordView `json:"from"`
	To     CoordView `json:"to"`
}

// MoveCompleteView is the MOVE_COMPLETE payload.
type MoveCompleteView struct {
	UnitID int    `json:"unitId"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	// AttackerID is set when an attack of opportunity stopped the walk.
	AttackerID int `json:"attackerId,omitempty"`
}

// HitBucketView is one row of an outcome table.
type HitBucketView struct {
	TargetID   int     `json:"targetId"`
	Category   string  `json:"category"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	DamageMult float64 `json:"damageMult"`
}

// PreviewView is the PREVIEW payload.
type PreviewView struct {
	UnitID    int             `json:"unitId"`
	StopIndex int             `json:"stopIndex"`
	Stop      *CoordView      `json:"stop,omitempty"`
	TargetID  int             `json:"targetId,omitempty"`
	Hits      []HitBucketView `json:"hits,omitempty"`
}

// RejectedView is the REJECTED payload.
type RejectedView struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// UnitView is a unit in a STATE payload.
type UnitView struct {
	ID    int            `json:"id"`
	Team  int            `json:"team"`
	Name  string         `json:"name"`
	Alive bool           `json:"alive"`
	Pos   *CoordView     `json:"pos,omitempty"`
	Stats map[string]int `json:"stats"`
}

// CellView is a cell in a STATE payload.
type CellView struct {
	Q         int      `json:"q"`
	R         int      `json:"r"`
	Elevation float64  `json:"elevation"`
	Terrain   string   `json:"terrain"`
	Marks     []string `json:"marks,omitempty"`
}

// StateView is the full board, sent on INIT.
type StateView struct {
	MatchID string     `json:"matchId"`
	Cells   []CellView `json:"cells"`
	Units   []UnitView `json:"units"`
}

// LogEntry is one line of the match log.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, MOVE, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- CLIENT -> SERVER ---

// ClientCommand is the root object of every client message.
type ClientCommand struct {
	// UnitID is the unit the command is issued for.
	UnitID int `json:"unitId"`

	// Action names the command: INIT, MOVE_PATH, PREVIEW, CANCEL_PREVIEW,
	// ATTACK, WAIT, END_TURN, CHEAT.
	Action string `json:"action"`

	// Payload depends on Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// PathPayload is used by MOVE_PATH and PREVIEW. Path excludes the unit's own
// cell and ends on the destination.
type PathPayload struct {
	Path []CoordView `json:"path"`
	// Limit caps the steps walked; 0 walks the whole path. Set on journaled
	// walks that were cancelled midway.
	Limit int `json:"limit,omitempty"`
}

// AttackPayload targets another unit.
type AttackPayload struct {
	TargetID int `json:"targetId"`
}

// CheatPayload toggles a runtime override for the rest of the round.
type CheatPayload struct {
	Flag    string `json:"flag"`
	Enabled bool   `json:"enabled"`
}
