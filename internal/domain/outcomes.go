package domain

// HitResult captures the stat deltas of one applied hit.
type HitResult struct {
	RawDamage   float64 `json:"rawDamage"`
	ArmorBefore int     `json:"armorBefore"`
	ArmorAfter  int     `json:"armorAfter"`
	HPBefore    int     `json:"hpBefore"`
	HPAfter     int     `json:"hpAfter"`
	HPDamage    int     `json:"hpDamage"`
	Killed      bool    `json:"killed"`
}

// AttackResult describes one resolved attack.
type AttackResult struct {
	Attacker *Unit
	Target   *Unit
	Roll     float64
	// Bucket is nil on a clean miss.
	Bucket *PotentialHit
	Victim *Unit
	Hit    HitResult
}

// Landed reports whether anybody took the hit.
func (r AttackResult) Landed() bool {
	return r.Bucket != nil
}

// PathPreview is what a unit would do if it walked path now.
type PathPreview struct {
	Unit      *Unit
	Path      []*Cell
	StopIndex int
	// Stop is the cell the unit would end on, nil for an empty walk.
	Stop *Cell
	// Target is the enemy standing on the last path cell, if any.
	Target *Unit
	Hits   []PotentialHit
}

// MoveOutcome reports how an executed path went.
type MoveOutcome struct {
	Unit    *Unit
	Steps   int
	Verdict MoveVerdict
	// Attack is set when the walk ended with an attack on the path target.
	Attack *AttackResult
}
