package domain

// HitCategory labels a bucket of the outcome table.
type HitCategory string

const (
	HitMelee  HitCategory = "Melee"
	HitTarget HitCategory = "Target"
	HitCover  HitCategory = "Cover"
	HitStray  HitCategory = "Stray"
)

// PotentialHit is one bucket of an attack's outcome table: a draw r in
// [Start, End) lands on Target with damage scaled by DamageMult.
type PotentialHit struct {
	Target     *Unit       `json:"-"`
	TargetID   UnitID      `json:"targetId"`
	Start      float64     `json:"start"`
	End        float64     `json:"end"`
	DamageMult float64     `json:"damageMult"`
	Category   HitCategory `json:"category"`
}

// Width is the probability mass of the bucket.
func (h PotentialHit) Width() float64 {
	return h.End - h.Start
}

// Contains reports whether r falls in the bucket.
func (h PotentialHit) Contains(r float64) bool {
	return r >= h.Start && r < h.End
}

// TotalWidth sums the bucket widths. The remainder up to 1 is a clean miss.
func TotalWidth(hits []PotentialHit) float64 {
	total := 0.0
	for _, h := range hits {
		total += h.Width()
	}
	return total
}
