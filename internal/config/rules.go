// Package config holds the rule knobs and the process configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tactics-server/internal/domain"
)

// Combat is the modifier set used by hit chance and outcome tables.
// Ground, surround, reach and distance values are in percentage points;
// cover and scatter values are fractions of 1.
type Combat struct {
	MeleeHighGroundBonus       float64 `yaml:"meleeHighGroundBonus" json:"meleeHighGroundBonus"`
	MeleeLowGroundPenalty      float64 `yaml:"meleeLowGroundPenalty" json:"meleeLowGroundPenalty"`
	SurroundBonus              float64 `yaml:"surroundBonus" json:"surroundBonus"`
	LongWeaponProximityPenalty float64 `yaml:"longWeaponProximityPenalty" json:"longWeaponProximityPenalty"`
	RangedHighGroundBonus      float64 `yaml:"rangedHighGroundBonus" json:"rangedHighGroundBonus"`
	RangedLowGroundPenalty     float64 `yaml:"rangedLowGroundPenalty" json:"rangedLowGroundPenalty"`
	RangedDistancePenalty      float64 `yaml:"rangedDistancePenalty" json:"rangedDistancePenalty"`
	CoverMissChance            float64 `yaml:"coverMissChance" json:"coverMissChance"`
	ScatterHitPenalty          float64 `yaml:"scatterHitPenalty" json:"scatterHitPenalty"`
	ScatterDamagePenalty       float64 `yaml:"scatterDamagePenalty" json:"scatterDamagePenalty"`
}

// Rules is every knob the rules core reads. It is passed by value into each
// rule evaluation, so a resolution only depends on (state, Rules).
type Rules struct {
	IgnoreAPs       bool `yaml:"ignoreAPs" json:"ignoreAPs"`
	IgnoreFatigue   bool `yaml:"ignoreFatigue" json:"ignoreFatigue"`
	IgnoreMoveOrder bool `yaml:"ignoreMoveOrder" json:"ignoreMoveOrder"`

	TerrainCosts map[domain.Terrain]float64 `yaml:"-" json:"terrainCosts"`

	MaxElevationDelta float64 `yaml:"maxElevationDelta" json:"maxElevationDelta"`
	UphillPenalty     float64 `yaml:"uphillPenalty" json:"uphillPenalty"`
	ZoCPenalty        float64 `yaml:"zocPenalty" json:"zocPenalty"`

	Combat Combat `yaml:"combat" json:"combat"`
}

// Overrides are the runtime bypass switches. They are folded into Rules by
// the orchestrator and reset at every round start.
type Overrides struct {
	IgnoreAPs       bool `json:"ignoreAPs"`
	IgnoreFatigue   bool `json:"ignoreFatigue"`
	IgnoreMoveOrder bool `json:"ignoreMoveOrder"`
}

// DefaultRules returns a fresh copy of the stock ruleset.
func DefaultRules() Rules {
	return Rules{
		TerrainCosts: map[domain.Terrain]float64{
			domain.TerrainRoad:   1,
			domain.TerrainPlains: 2,
			domain.TerrainForest: 3,
			domain.TerrainRough:  3,
			domain.TerrainSwamp:  4,
			domain.TerrainWater:  6,
		},
		MaxElevationDelta: 1,
		UphillPenalty:     1,
		ZoCPenalty:        2,
		Combat: Combat{
			MeleeHighGroundBonus:       10,
			MeleeLowGroundPenalty:      10,
			SurroundBonus:              5,
			LongWeaponProximityPenalty: 15,
			RangedHighGroundBonus:      10,
			RangedLowGroundPenalty:     10,
			RangedDistancePenalty:      2,
			CoverMissChance:            0.25,
			ScatterHitPenalty:          0.15,
			ScatterDamagePenalty:       0.5,
		},
	}
}

// TerrainCost returns the table entry for t. Terrain missing from the table
// costs 1.
func (r Rules) TerrainCost(t domain.Terrain) float64 {
	if c, ok := r.TerrainCosts[t]; ok {
		return c
	}
	return 1
}

// WithOverrides returns a copy with the runtime switches OR-ed in.
func (r Rules) WithOverrides(o Overrides) Rules {
	r.IgnoreAPs = r.IgnoreAPs || o.IgnoreAPs
	r.IgnoreFatigue = r.IgnoreFatigue || o.IgnoreFatigue
	r.IgnoreMoveOrder = r.IgnoreMoveOrder || o.IgnoreMoveOrder
	return r
}

// Validate rejects values the formulas cannot work with.
func (r Rules) Validate() error {
	var errs []error
	for t, c := range r.TerrainCosts {
		if c < 0 {
			errs = append(errs, fmt.Errorf("terrain %s: negative cost %v", t, c))
		}
	}
	if r.MaxElevationDelta < 0 {
		errs = append(errs, errors.New("maxElevationDelta must be >= 0"))
	}
	if r.UphillPenalty < 0 || r.ZoCPenalty < 0 {
		errs = append(errs, errors.New("movement penalties must be >= 0"))
	}
	for name, v := range map[string]float64{
		"coverMissChance":      r.Combat.CoverMissChance,
		"scatterHitPenalty":    r.Combat.ScatterHitPenalty,
		"scatterDamagePenalty": r.Combat.ScatterDamagePenalty,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", name, v))
		}
	}
	return errors.Join(errs...)
}

type rulesFile struct {
	Rules        `yaml:",inline"`
	TerrainCosts map[string]float64 `yaml:"terrainCosts"`
}

// ParseRules decodes YAML on top of DefaultRules.
func ParseRules(data []byte) (Rules, error) {
	file := rulesFile{Rules: DefaultRules()}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	rules := file.Rules
	for name, cost := range file.TerrainCosts {
		t, err := domain.ParseTerrain(name)
		if err != nil {
			return Rules{}, fmt.Errorf("terrainCosts: %w", err)
		}
		rules.TerrainCosts[t] = cost
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}

// LoadRules reads a rules file. An empty path yields DefaultRules.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	return ParseRules(data)
}
