package scenario

import (
	"tactics-server/internal/domain"
)

// UnitTemplate is a named stat block units can be spawned from.
type UnitTemplate struct {
	Name  string
	Stats map[string]int
}

// Spawn creates a unit from the template. extra overrides template stats.
func (t UnitTemplate) Spawn(id domain.UnitID, team int, name string, extra map[string]int) *domain.Unit {
	stats := make(map[string]int, len(t.Stats)+len(extra))
	for k, v := range t.Stats {
		stats[k] = v
	}
	for k, v := range extra {
		stats[k] = v
	}
	if name == "" {
		name = t.Name
	}
	return domain.NewUnit(id, team, name, stats)
}

var Swordsman = UnitTemplate{
	Name: "Swordsman",
	Stats: map[string]int{
		domain.StatAP: 9, domain.StatFAT: 100, domain.StatHP: 60, domain.StatARM: 40,
		domain.StatMAT: 60, domain.StatMDF: 15, domain.StatRDF: 10, domain.StatRNG: 1,
		domain.StatDMIN: 25, domain.StatDMAX: 35, domain.StatABY: 20, domain.StatADM: 90,
		domain.StatINI: 100, domain.StatAFAT: 15,
	},
}

var Spearman = UnitTemplate{
	Name: "Spearman",
	Stats: map[string]int{
		domain.StatAP: 9, domain.StatFAT: 100, domain.StatHP: 55, domain.StatARM: 30,
		domain.StatMAT: 55, domain.StatMDF: 20, domain.StatRDF: 5, domain.StatRNG: 2,
		domain.StatDMIN: 30, domain.StatDMAX: 40, domain.StatABY: 25, domain.StatADM: 100,
		domain.StatINI: 90, domain.StatAFAT: 15,
	},
}

var Archer = UnitTemplate{
	Name: "Archer",
	Stats: map[string]int{
		domain.StatAP: 9, domain.StatFAT: 100, domain.StatHP: 45, domain.StatARM: 10,
		domain.StatMAT: 20, domain.StatRAT: 65, domain.StatMDF: 5, domain.StatRDF: 10,
		domain.StatRNG: 6, domain.StatDMIN: 20, domain.StatDMAX: 30, domain.StatABY: 35,
		domain.StatADM: 60, domain.StatINI: 110, domain.StatAFAT: 20,
	},
}

// Templates by scenario name.
var Templates = map[string]UnitTemplate{
	"swordsman": Swordsman,
	"spearman":  Spearman,
	"archer":    Archer,
}
