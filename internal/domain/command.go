package domain

import "encoding/json"

// InternalCommand is a client command after the action name was resolved.
type InternalCommand struct {
	Action  ActionType
	Unit    UnitID          // acting unit
	Session string          // client session that sent it, empty for replays
	Payload json.RawMessage // decoded by the handler
}
