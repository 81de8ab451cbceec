package domain

// Hooks are the callbacks the rules core fires for presentation and for the
// orchestrator itself. Every field is optional.
type Hooks struct {
	RoundStart   func(units []*Unit)
	TurnStart    func(u *Unit)
	TurnEnd      func(u *Unit)
	Attacked     func(attacker, target *Unit)
	Hit          func(attacker, target *Unit, damage int)
	Died         func(u *Unit)
	Step         func(u *Unit, from, to *Cell)
	MoveComplete func(u *Unit, verdict MoveVerdict)
}

func (h *Hooks) FireRoundStart(units []*Unit) {
	if h != nil && h.RoundStart != nil {
		h.RoundStart(units)
	}
}

func (h *Hooks) FireTurnStart(u *Unit) {
	if h != nil && h.TurnStart != nil {
		h.TurnStart(u)
	}
}

func (h *Hooks) FireTurnEnd(u *Unit) {
	if h != nil && h.TurnEnd != nil {
		h.TurnEnd(u)
	}
}

func (h *Hooks) FireAttacked(attacker, target *Unit) {
	if h != nil && h.Attacked != nil {
		h.Attacked(attacker, target)
	}
}

func (h *Hooks) FireHit(attacker, target *Unit, damage int) {
	if h != nil && h.Hit != nil {
		h.Hit(attacker, target, damage)
	}
}

func (h *Hooks) FireDied(u *Unit) {
	if h != nil && h.Died != nil {
		h.Died(u)
	}
}

func (h *Hooks) FireStep(u *Unit, from, to *Cell) {
	if h != nil && h.Step != nil {
		h.Step(u, from, to)
	}
}

func (h *Hooks) FireMoveComplete(u *Unit, v MoveVerdict) {
	if h != nil && h.MoveComplete != nil {
		h.MoveComplete(u, v)
	}
}
