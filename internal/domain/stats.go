package domain

// Stat keys understood by the rules.
const (
	StatAP   = "AP"   // action points
	StatFAT  = "FAT"  // fatigue; the base value is the fatigue cap
	StatHP   = "HP"   // hit points
	StatARM  = "ARM"  // armor points
	StatMAT  = "MAT"  // melee attack
	StatRAT  = "RAT"  // ranged attack
	StatMDF  = "MDF"  // melee defense
	StatRDF  = "RDF"  // ranged defense
	StatRNG  = "RNG"  // attack range in cells
	StatDMIN = "DMIN" // damage roll lower bound
	StatDMAX = "DMAX" // damage roll upper bound
	StatABY  = "ABY"  // percent of raw damage that bypasses armor
	StatADM  = "ADM"  // percent of raw damage dealt to armor
	StatINI  = "INI"  // initiative
	StatAFAT = "AFAT" // fatigue spent per attack
)

// StatDefaults are used when a unit does not define a key.
var StatDefaults = map[string]int{
	StatAP:   0,
	StatFAT:  0,
	StatHP:   0,
	StatARM:  0,
	StatMAT:  0,
	StatRAT:  0,
	StatMDF:  0,
	StatRDF:  0,
	StatRNG:  1,
	StatDMIN: 0,
	StatDMAX: 0,
	StatABY:  0,
	StatADM:  100,
	StatINI:  0,
	StatAFAT: 0,
}

// StatDefault returns the default for key, or 0 for unknown keys.
func StatDefault(key string) int {
	return StatDefaults[key]
}
