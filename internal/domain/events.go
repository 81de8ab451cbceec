package domain

import "strings"

// EventType identifies an outgoing notification produced by a hook.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventRoundStart
	EventTurnStart
	EventTurnEnd
	EventAttacked
	EventHit
	EventDied
	EventStep
	EventMoveComplete
	EventPreview
	EventRejected
	EventState
	EventLog
)

var eventStringToType = map[string]EventType{
	"ROUND_START":   EventRoundStart,
	"TURN_START":    EventTurnStart,
	"TURN_END":      EventTurnEnd,
	"ATTACKED":      EventAttacked,
	"HIT":           EventHit,
	"DIED":          EventDied,
	"STEP":          EventStep,
	"MOVE_COMPLETE": EventMoveComplete,
	"PREVIEW":       EventPreview,
	"REJECTED":      EventRejected,
	"STATE":         EventState,
	"LOG":           EventLog,
}

var eventTypeToString = map[EventType]string{}

func init() {
	for s, e := range eventStringToType {
		eventTypeToString[e] = s
	}
}

// ParseEvent converts a wire name into an EventType.
func ParseEvent(s string) EventType {
	if val, ok := eventStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}
