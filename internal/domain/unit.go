package domain

import "strconv"

// UnitID is unique across a battle.
type UnitID int

func (id UnitID) String() string {
	return strconv.Itoa(int(id))
}

// Unit is a combatant. Stats are kept as two maps keyed by the short stat
// names in stats.go: base values and current values.
type Unit struct {
	ID      UnitID `json:"id"`
	Team    int    `json:"team"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`

	base    map[string]int
	current map[string]int

	// cell mirrors the occupant set of the cell the unit stands on.
	// Only Place and Unplace write it.
	cell *Cell
	dead bool
}

// NewUnit creates an enabled unit. Current stats start equal to base stats,
// except fatigue: base FAT is the cap and a fresh unit starts at 0.
func NewUnit(id UnitID, team int, name string, base map[string]int) *Unit {
	u := &Unit{
		ID:      id,
		Team:    team,
		Name:    name,
		Enabled: true,
		base:    make(map[string]int, len(base)),
		current: make(map[string]int, len(base)),
	}
	for k, v := range base {
		u.base[k] = v
		u.current[k] = v
	}
	if _, ok := u.current[StatFAT]; ok {
		u.current[StatFAT] = 0
	}
	return u
}

// Owner is the mark owner for this unit.
func (u *Unit) Owner() Owner {
	return Owner{Team: u.Team, Unit: u.ID}
}

// Stat returns the current value of key, or def when the unit lacks it.
func (u *Unit) Stat(key string, def int) int {
	if v, ok := u.current[key]; ok {
		return v
	}
	return def
}

// BaseStat returns the base value of key, or def when the unit lacks it.
func (u *Unit) BaseStat(key string, def int) int {
	if v, ok := u.base[key]; ok {
		return v
	}
	return def
}

// SetStat overwrites the current value of key.
func (u *Unit) SetStat(key string, v int) {
	if u.current == nil {
		u.current = make(map[string]int)
	}
	u.current[key] = v
}

// SetBaseStat overwrites the base value of key.
func (u *Unit) SetBaseStat(key string, v int) {
	if u.base == nil {
		u.base = make(map[string]int)
	}
	u.base[key] = v
}

// Get is Stat with the package default.
func (u *Unit) Get(key string) int {
	return u.Stat(key, StatDefault(key))
}

// Base is BaseStat with the package default.
func (u *Unit) Base(key string) int {
	return u.BaseStat(key, StatDefault(key))
}

// Stats returns a copy of the current values.
func (u *Unit) Stats() map[string]int {
	out := make(map[string]int, len(u.current))
	for k, v := range u.current {
		out[k] = v
	}
	return out
}

// Cell returns the cell the unit stands on, nil when off the board.
func (u *Unit) Cell() *Cell {
	return u.cell
}

// IsAlive is false once the unit has been destroyed.
func (u *Unit) IsAlive() bool {
	return !u.dead
}

// MarkDead flips the unit to destroyed. Returns false when it already was.
func (u *Unit) MarkDead() bool {
	if u.dead {
		return false
	}
	u.dead = true
	return true
}

// IsEnemy reports whether other fights for a different team.
func (u *Unit) IsEnemy(other *Unit) bool {
	return other != nil && other.Team != u.Team
}

// CanMelee reports whether the unit projects a zone of control.
func (u *Unit) CanMelee() bool {
	return u.Get(StatMAT) > 0
}

// PrefersMelee is true when melee is the unit's stronger attack. Ties go to melee.
func (u *Unit) PrefersMelee() bool {
	return u.Get(StatMAT) >= u.Get(StatRAT)
}

// TurnPriority is base initiative minus current fatigue.
func (u *Unit) TurnPriority() int {
	return u.Base(StatINI) - u.Get(StatFAT)
}
