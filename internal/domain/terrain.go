package domain

import (
	"fmt"
	"strings"
)

// Terrain is the movement category of a cell.
type Terrain uint8

const (
	TerrainPlains Terrain = iota
	TerrainRoad
	TerrainForest
	TerrainRough
	TerrainSwamp
	TerrainWater
)

var terrainStringToType = map[string]Terrain{
	"plains": TerrainPlains,
	"road":   TerrainRoad,
	"forest": TerrainForest,
	"rough":  TerrainRough,
	"swamp":  TerrainSwamp,
	"water":  TerrainWater,
}

var terrainTypeToString = map[Terrain]string{
	TerrainPlains: "plains",
	TerrainRoad:   "road",
	TerrainForest: "forest",
	TerrainRough:  "rough",
	TerrainSwamp:  "swamp",
	TerrainWater:  "water",
}

// ParseTerrain converts a config/scenario name into a Terrain. Case-insensitive.
func ParseTerrain(s string) (Terrain, error) {
	if t, ok := terrainStringToType[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return TerrainPlains, fmt.Errorf("unknown terrain %q", s)
}

func (t Terrain) String() string {
	if s, ok := terrainTypeToString[t]; ok {
		return s
	}
	return "unknown"
}

// MarshalText lets Terrain be used as a JSON/YAML map key.
func (t Terrain) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (t *Terrain) UnmarshalText(b []byte) error {
	parsed, err := ParseTerrain(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
