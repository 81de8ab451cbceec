package handlers

import (
	"tactics-server/internal/domain"
	"tactics-server/pkg/api"
)

// Coord converts an axial coordinate to its wire form.
func Coord(a domain.Axial) api.CoordView {
	return api.CoordView{Q: a.Q, R: a.R}
}

// Axials converts a wire path to axial coordinates.
func Axials(path []api.CoordView) []domain.Axial {
	out := make([]domain.Axial, len(path))
	for i, c := range path {
		out[i] = domain.Axial{Q: c.Q, R: c.R}
	}
	return out
}

func UnitRef(u *domain.Unit) api.UnitRef {
	return api.UnitRef{UnitID: int(u.ID), Name: u.Name, Team: u.Team}
}

func HitBuckets(hits []domain.PotentialHit) []api.HitBucketView {
	if len(hits) == 0 {
		return nil
	}
	out := make([]api.HitBucketView, len(hits))
	for i, h := range hits {
		out[i] = api.HitBucketView{
			TargetID:   int(h.TargetID),
			Category:   string(h.Category),
			Start:      h.Start,
			End:        h.End,
			DamageMult: h.DamageMult,
		}
	}
	return out
}

func Preview(p domain.PathPreview) api.PreviewView {
	v := api.PreviewView{
		UnitID:    int(p.Unit.ID),
		StopIndex: p.StopIndex,
		Hits:      HitBuckets(p.Hits),
	}
	if p.Stop != nil {
		c := Coord(p.Stop.Coord)
		v.Stop = &c
	}
	if p.Target != nil {
		v.TargetID = int(p.Target.ID)
	}
	return v
}

func MoveComplete(u *domain.Unit, verdict domain.MoveVerdict) api.MoveCompleteView {
	v := api.MoveCompleteView{UnitID: int(u.ID), OK: verdict.OK()}
	if !verdict.OK() {
		v.Reason = verdict.String()
	}
	if verdict.Attacker != nil {
		v.AttackerID = int(verdict.Attacker.ID)
	}
	return v
}

func UnitView(u *domain.Unit) api.UnitView {
	v := api.UnitView{
		ID:    int(u.ID),
		Team:  u.Team,
		Name:  u.Name,
		Alive: u.IsAlive(),
		Stats: u.Stats(),
	}
	if c := u.Cell(); c != nil {
		pos := Coord(c.Coord)
		v.Pos = &pos
	}
	return v
}

func CellView(c *domain.Cell) api.CellView {
	return api.CellView{
		Q:         c.Coord.Q,
		R:         c.Coord.R,
		Elevation: c.Elevation,
		Terrain:   c.Terrain.String(),
		Marks:     c.Marks.Tokens(),
	}
}
