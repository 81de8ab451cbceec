package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MarkKind is the semantic part of a cell mark.
type MarkKind uint8

const (
	MarkOccupied MarkKind = iota
	MarkZoC
	MarkAoA
	MarkActive
)

var markKindToString = map[MarkKind]string{
	MarkOccupied: "Occupied",
	MarkZoC:      "ZoC",
	MarkAoA:      "AoA",
	MarkActive:   "Active",
}

// Token prefixes. None of them is a prefix of another.
var markPrefixes = []MarkKind{MarkOccupied, MarkActive, MarkZoC, MarkAoA}

func (k MarkKind) String() string {
	if s, ok := markKindToString[k]; ok {
		return s
	}
	return "Unknown"
}

// Owner identifies the unit that projected a mark.
type Owner struct {
	Team int    `json:"team"`
	Unit UnitID `json:"unit"`
}

// Mark is a single (kind, owner) pair on a cell.
type Mark struct {
	Kind  MarkKind
	Owner Owner
}

// String renders the legacy editor token: "ZoC0_17", "Occupied1_3", "Active".
func (m Mark) String() string {
	if m.Kind == MarkActive {
		return m.Kind.String()
	}
	return fmt.Sprintf("%s%d_%d", m.Kind, m.Owner.Team, m.Owner.Unit)
}

// ParseMark reads a legacy token. A token with a known prefix but a broken
// team/unit part returns ok=false and is meant to be skipped by the caller.
// "Active" carries no owner in token form.
func ParseMark(token string) (Mark, bool) {
	for _, kind := range markPrefixes {
		prefix := kind.String()
		if !strings.HasPrefix(token, prefix) {
			continue
		}
		rest := token[len(prefix):]
		if kind == MarkActive {
			return Mark{Kind: kind}, rest == ""
		}
		teamPart, unitPart, found := strings.Cut(rest, "_")
		if !found {
			return Mark{}, false
		}
		team, err := strconv.Atoi(teamPart)
		if err != nil {
			return Mark{}, false
		}
		unit, err := strconv.Atoi(unitPart)
		if err != nil {
			return Mark{}, false
		}
		return Mark{Kind: kind, Owner: Owner{Team: team, Unit: UnitID(unit)}}, true
	}
	return Mark{}, false
}

// MarkSet is the per-cell record of who projects what onto it.
// The zero value is ready to use.
type MarkSet struct {
	byKind map[MarkKind]map[Owner]struct{}
}

// Add is idempotent.
func (s *MarkSet) Add(kind MarkKind, o Owner) {
	if s.byKind == nil {
		s.byKind = make(map[MarkKind]map[Owner]struct{})
	}
	owners, ok := s.byKind[kind]
	if !ok {
		owners = make(map[Owner]struct{})
		s.byKind[kind] = owners
	}
	owners[o] = struct{}{}
}

// Remove retracts exactly the given owner's mark of that kind.
func (s *MarkSet) Remove(kind MarkKind, o Owner) {
	owners, ok := s.byKind[kind]
	if !ok {
		return
	}
	delete(owners, o)
	if len(owners) == 0 {
		delete(s.byKind, kind)
	}
}

// RemoveOwner retracts every mark the owner holds on this cell.
func (s *MarkSet) RemoveOwner(o Owner) {
	for kind := range s.byKind {
		s.Remove(kind, o)
	}
}

// Has reports whether the owner holds a mark of that kind here.
func (s *MarkSet) Has(kind MarkKind, o Owner) bool {
	_, ok := s.byKind[kind][o]
	return ok
}

// Any reports whether any owner holds a mark of that kind here.
func (s *MarkSet) Any(kind MarkKind) bool {
	return len(s.byKind[kind]) > 0
}

// Owners returns the owners of a kind sorted by (team, unit).
func (s *MarkSet) Owners(kind MarkKind) []Owner {
	owners := s.byKind[kind]
	out := make([]Owner, 0, len(owners))
	for o := range owners {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}

// HasEnemy reports whether a team other than team holds a mark of that kind.
func (s *MarkSet) HasEnemy(kind MarkKind, team int) bool {
	for o := range s.byKind[kind] {
		if o.Team != team {
			return true
		}
	}
	return false
}

// Tokens renders the set in legacy token form, sorted, for dumps and logs.
func (s *MarkSet) Tokens() []string {
	out := make([]string, 0)
	for kind := range s.byKind {
		for _, o := range s.Owners(kind) {
			out = append(out, Mark{Kind: kind, Owner: o}.String())
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of (kind, owner) pairs.
func (s *MarkSet) Len() int {
	n := 0
	for _, owners := range s.byKind {
		n += len(owners)
	}
	return n
}
