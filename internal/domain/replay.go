package domain

import "encoding/json"

// JournalAction is one accepted command.
type JournalAction struct {
	Round   int             `json:"round"`
	Unit    UnitID          `json:"unit"`
	Action  ActionType      `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// Journal is the full command record of a match. Seed plus scenario plus
// actions reproduce the battle.
type Journal struct {
	MatchID   string          `json:"matchId"`
	Seed      uint64          `json:"seed"`
	Timestamp int64           `json:"timestamp"`
	Actions   []JournalAction `json:"actions"`
}
