package domain

// MoveFailure is the reason a step was refused.
type MoveFailure uint8

const (
	MoveOK MoveFailure = iota
	MoveInvalidInput
	MoveUnreachable
	MoveInsufficientAP
	MoveInsufficientFatigue
	MoveStoppedByAttackOfOpportunity
)

var moveFailureText = map[MoveFailure]string{
	MoveOK:                           "OK",
	MoveInvalidInput:                 "Invalid input",
	MoveUnreachable:                  "Unreachable",
	MoveInsufficientAP:               "Not enough AP",
	MoveInsufficientFatigue:          "Too much fatigue",
	MoveStoppedByAttackOfOpportunity: "Stopped by Attack of Opportunity",
}

func (f MoveFailure) String() string {
	if s, ok := moveFailureText[f]; ok {
		return s
	}
	return "Unknown"
}

// MoveVerdict is the outcome of a per-step legality check.
type MoveVerdict struct {
	Reason MoveFailure
	// Attacker is set when the step was stopped by an attack of opportunity.
	Attacker *Unit
}

// Allowed is the successful verdict.
func Allowed() MoveVerdict {
	return MoveVerdict{Reason: MoveOK}
}

// Refused builds a failed verdict.
func Refused(reason MoveFailure) MoveVerdict {
	return MoveVerdict{Reason: reason}
}

// OK reports success.
func (v MoveVerdict) OK() bool {
	return v.Reason == MoveOK
}

func (v MoveVerdict) String() string {
	return v.Reason.String()
}
