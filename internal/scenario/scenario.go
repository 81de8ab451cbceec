// Package scenario loads a board and its roster from YAML.
package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"tactics-server/internal/domain"
	"tactics-server/internal/grid"
	"tactics-server/pkg/logger"
)

// CellSpec is one cell entry of a scenario file.
type CellSpec struct {
	Q         int      `yaml:"q"`
	R         int      `yaml:"r"`
	Elevation float64  `yaml:"elevation"`
	Terrain   string   `yaml:"terrain"`
	Marks     []string `yaml:"marks"`
}

// UnitSpec is one roster entry. Stats override the template's.
type UnitSpec struct {
	ID       int            `yaml:"id"`
	Team     int            `yaml:"team"`
	Name     string         `yaml:"name"`
	Template string         `yaml:"template"`
	Q        int            `yaml:"q"`
	R        int            `yaml:"r"`
	Enabled  *bool          `yaml:"enabled"`
	Stats    map[string]int `yaml:"stats"`
}

// File is the on-disk layout. Radius > 0 lays a plains hexagon first,
// Generate then scatters terrain over it, and Cells add or replace
// individual cells last.
type File struct {
	Name     string     `yaml:"name"`
	Radius   int        `yaml:"radius"`
	Generate *GenSpec   `yaml:"generate"`
	Cells    []CellSpec `yaml:"cells"`
	Units    []UnitSpec `yaml:"units"`
}

// Placement is a unit and where it starts.
type Placement struct {
	Unit *domain.Unit
	At   domain.Axial
}

// Scenario is a loaded board with its roster, not yet in play.
type Scenario struct {
	Name  string
	Grid  *grid.HexGrid
	Units []Placement

	// marks read from the file, checked against the roster by Populate.
	marks map[domain.Axial][]domain.Mark
}

// UnitAdder receives the roster. engine.Ruleset implements it.
type UnitAdder interface {
	AddUnit(u *domain.Unit, at domain.Axial) error
}

// Load reads and builds a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a scenario from YAML.
func Parse(data []byte) (*Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return Build(f)
}

// Build turns a decoded file into a board and roster.
func Build(f File) (*Scenario, error) {
	log := logger.Component("scenario").WithField("scenario", f.Name)

	marks := make(map[domain.Axial][]domain.Mark)
	g := grid.New()
	if f.Radius > 0 {
		g = grid.NewHexagon(f.Radius)
	}
	if f.Generate != nil {
		Generate(g, *f.Generate, f.Name)
	}
	for i, spec := range f.Cells {
		terrain := domain.TerrainPlains
		if spec.Terrain != "" {
			t, err := domain.ParseTerrain(spec.Terrain)
			if err != nil {
				return nil, fmt.Errorf("cell %d (%d,%d): %w", i, spec.Q, spec.R, err)
			}
			terrain = t
		}
		cell := domain.NewCell(domain.Axial{Q: spec.Q, R: spec.R}, spec.Elevation, terrain)
		marks[cell.Coord] = applyMarks(log, cell, spec.Marks)
		g.Add(cell)
	}
	if len(g.Cells()) == 0 {
		return nil, fmt.Errorf("scenario %q has no cells", f.Name)
	}

	s := &Scenario{Name: f.Name, Grid: g, marks: marks}
	seen := make(map[int]struct{}, len(f.Units))
	for i, spec := range f.Units {
		if spec.ID <= 0 {
			return nil, fmt.Errorf("unit %d: id must be positive", i)
		}
		if _, dup := seen[spec.ID]; dup {
			return nil, fmt.Errorf("unit %d: duplicate id %d", i, spec.ID)
		}
		seen[spec.ID] = struct{}{}

		tmpl := UnitTemplate{}
		if spec.Template != "" {
			t, ok := Templates[strings.ToLower(spec.Template)]
			if !ok {
				return nil, fmt.Errorf("unit %d: unknown template %q", spec.ID, spec.Template)
			}
			tmpl = t
		}
		for key := range spec.Stats {
			if _, known := domain.StatDefaults[key]; !known {
				log.WithFields(logrus.Fields{"unit_id": spec.ID, "stat": key}).Warn("Unknown stat key kept.")
			}
		}

		u := tmpl.Spawn(domain.UnitID(spec.ID), spec.Team, spec.Name, spec.Stats)
		if u.Name == "" {
			u.Name = fmt.Sprintf("Unit %d", spec.ID)
		}
		if spec.Enabled != nil {
			u.Enabled = *spec.Enabled
		}
		s.Units = append(s.Units, Placement{Unit: u, At: domain.Axial{Q: spec.Q, R: spec.R}})
	}

	log.WithFields(logrus.Fields{
		"cells": len(g.Cells()),
		"units": len(s.Units),
	}).Info("Scenario loaded.")
	return s, nil
}

// applyMarks copies exported tokens onto the cell and returns what it
// applied. Malformed tokens are skipped; Active is turn state and is never
// loaded.
func applyMarks(log *logrus.Entry, cell *domain.Cell, tokens []string) []domain.Mark {
	var applied []domain.Mark
	for _, token := range tokens {
		m, ok := domain.ParseMark(token)
		if !ok {
			log.WithFields(logrus.Fields{"cell": cell.Coord, "mark": token}).Warn("Malformed mark skipped.")
			continue
		}
		if m.Kind == domain.MarkActive {
			continue
		}
		cell.Marks.Add(m.Kind, m.Owner)
		applied = append(applied, m)
	}
	return applied
}

// Populate adds the roster to r in file order. Marks loaded from the file
// are retracted first and the roster projects its own; a loaded mark the
// roster does not reproduce is reported and stays dropped.
func (s *Scenario) Populate(r UnitAdder) error {
	for coord, loaded := range s.marks {
		cell := s.Grid.CellAt(coord)
		if cell == nil {
			continue
		}
		for _, m := range loaded {
			cell.Marks.RemoveOwner(m.Owner)
		}
	}

	for _, p := range s.Units {
		if err := r.AddUnit(p.Unit, p.At); err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}

	log := logger.Component("scenario").WithField("scenario", s.Name)
	for _, stale := range s.staleMarks() {
		log.WithField("mark", stale).Warn("Mark does not match the roster, dropped.")
	}
	return nil
}

// staleMarks lists loaded marks, as "token@coord", that the placed roster
// does not project.
func (s *Scenario) staleMarks() []string {
	var out []string
	for coord, loaded := range s.marks {
		cell := s.Grid.CellAt(coord)
		for _, m := range loaded {
			if cell == nil || !cell.Marks.Has(m.Kind, m.Owner) {
				out = append(out, fmt.Sprintf("%s@%s", m, coord))
			}
		}
	}
	sort.Strings(out)
	return out
}

// Default is a small skirmish on a radius-4 hexagon with a hill and a wood.
func Default() *Scenario {
	g := grid.NewHexagon(4)
	for _, a := range []domain.Axial{{Q: 0, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1}} {
		g.Add(domain.NewCell(a, 1, domain.TerrainRough))
	}
	for _, a := range []domain.Axial{{Q: -2, R: 2}, {Q: -1, R: 2}, {Q: -2, R: 3}} {
		g.Add(domain.NewCell(a, 0, domain.TerrainForest))
	}
	g.Add(domain.NewCell(domain.Axial{Q: 3, R: 0}, 0, domain.TerrainSwamp))

	return &Scenario{
		Name: "skirmish",
		Grid: g,
		Units: []Placement{
			{Unit: Swordsman.Spawn(1, 0, "", nil), At: domain.Axial{Q: -3, R: 1}},
			{Unit: Spearman.Spawn(2, 0, "", nil), At: domain.Axial{Q: -3, R: 2}},
			{Unit: Archer.Spawn(3, 0, "", nil), At: domain.Axial{Q: -4, R: 2}},
			{Unit: Swordsman.Spawn(4, 1, "", nil), At: domain.Axial{Q: 3, R: -2}},
			{Unit: Spearman.Spawn(5, 1, "", nil), At: domain.Axial{Q: 3, R: -1}},
			{Unit: Archer.Spawn(6, 1, "", nil), At: domain.Axial{Q: 4, R: -2}},
		},
	}
}
