package systems

import (
	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"
)

// HitChance is the probability in [0,1] that attacker hits target from its
// current cell. The formula follows whichever of MAT/RAT is larger.
func HitChance(env Env, attacker, target *domain.Unit) float64 {
	if attacker == nil {
		return 0
	}
	return hitChanceFrom(env, attacker, attacker.Cell(), target)
}

func hitChanceFrom(env Env, attacker *domain.Unit, from *domain.Cell, target *domain.Unit) float64 {
	if attacker == nil || target == nil {
		return 0
	}
	if attacker.PrefersMelee() {
		return meleeChance(env, attacker, from, target)
	}
	return rangedChance(env, attacker, from, target)
}

func meleeChance(env Env, attacker *domain.Unit, from *domain.Cell, target *domain.Unit) float64 {
	m := env.Rules.Combat
	to := target.Cell()

	score := float64(attacker.Get(domain.StatMAT) - target.Get(domain.StatMDF))
	score += elevationTerm(from, to, m.MeleeHighGroundBonus, m.MeleeLowGroundPenalty)
	// Reach weapons are clumsy at point-blank.
	if attacker.Get(domain.StatRNG) == 2 && env.distance(from, to) == 1 {
		score -= m.LongWeaponProximityPenalty
	}
	score += m.SurroundBonus * float64(engagedAllies(attacker, to))
	return clamp01(score / 100)
}

func rangedChance(env Env, attacker *domain.Unit, from *domain.Cell, target *domain.Unit) float64 {
	m := env.Rules.Combat
	to := target.Cell()

	score := float64(attacker.Get(domain.StatRAT) - target.Get(domain.StatRDF))
	score += elevationTerm(from, to, m.RangedHighGroundBonus, m.RangedLowGroundPenalty)
	score -= float64(env.distance(from, to)) * m.RangedDistancePenalty
	return clamp01(score / 100)
}

func elevationTerm(from, to *domain.Cell, bonus, penalty float64) float64 {
	if from == nil || to == nil {
		return 0
	}
	switch {
	case from.Elevation > to.Elevation:
		return bonus
	case from.Elevation < to.Elevation:
		return -penalty
	}
	return 0
}

// engagedAllies counts attacker's team zones of control on the target cell,
// not counting the attacker's own.
func engagedAllies(attacker *domain.Unit, targetCell *domain.Cell) int {
	if targetCell == nil {
		return 0
	}
	n := 0
	for _, o := range targetCell.Marks.Owners(domain.MarkZoC) {
		if o.Team != attacker.Team {
			continue
		}
		n++
		if o.Unit == attacker.ID {
			n--
		}
	}
	return n
}

// PotentialHits builds the outcome table of attacker striking target from
// `from` (nil: the attacker's cell). Out of range yields nil. Buckets are laid
// out back to back from 0; whatever is left up to 1 is a clean miss.
func PotentialHits(env Env, attacker, target *domain.Unit, from *domain.Cell) []domain.PotentialHit {
	if attacker == nil || target == nil || target.Cell() == nil {
		return nil
	}
	if from == nil {
		from = attacker.Cell()
	}
	if from == nil {
		return nil
	}
	dist := env.distance(from, target.Cell())
	if dist > attacker.Get(domain.StatRNG) {
		return nil
	}

	table := &hitTable{}
	if attacker.PrefersMelee() {
		table.add(target, meleeChance(env, attacker, from, target), 1, domain.HitMelee)
		return table.hits
	}

	m := env.Rules.Combat
	coverMiss := clamp01(m.CoverMissChance)
	scatterMult := clamp01(1 - m.ScatterDamagePenalty)
	base := rangedChance(env, attacker, from, target)

	var covers, strays []*domain.Unit
	if dist >= 3 {
		covers = coverUnits(env, attacker, from, target, dist)
		strays = strayUnits(env, attacker, from, target, dist)
	}
	hasCover := len(covers) > 0

	primary := base
	if hasCover {
		primary = base * (1 - coverMiss)
	}
	table.add(target, primary, 1, domain.HitTarget)

	if hasCover {
		share := coverMiss / float64(len(covers))
		for _, c := range covers {
			w := clamp01(rangedChance(env, attacker, from, c)-m.ScatterHitPenalty) * share
			table.add(c, w, scatterMult, domain.HitCover)
		}
	}

	if len(strays) > 0 {
		remaining := 1 - primary
		if hasCover {
			remaining -= coverMiss
		}
		remaining = max(0, remaining)
		share := remaining / float64(len(strays))
		for _, s := range strays {
			w := clamp01(rangedChance(env, attacker, from, s)-m.ScatterHitPenalty) * share
			table.add(s, w, scatterMult, domain.HitStray)
		}
	}
	return table.hits
}

type hitTable struct {
	hits   []domain.PotentialHit
	cursor float64
}

// add appends a bucket. The primary bucket is always kept so callers can read
// the chance even when it is 0; empty side buckets are dropped.
func (t *hitTable) add(u *domain.Unit, width, mult float64, cat domain.HitCategory) {
	if width <= 0 && len(t.hits) > 0 {
		return
	}
	width = max(0, width)
	end := min(1, t.cursor+width)
	t.hits = append(t.hits, domain.PotentialHit{
		Target:     u,
		TargetID:   u.ID,
		Start:      t.cursor,
		End:        end,
		DamageMult: mult,
		Category:   cat,
	})
	t.cursor = end
}

// coverUnits are units next to the target, at most one elevation step off,
// and closer to the attacker than the target is.
func coverUnits(env Env, attacker *domain.Unit, from *domain.Cell, target *domain.Unit, dist int) []*domain.Unit {
	tc := target.Cell()
	var out []*domain.Unit
	for _, n := range env.neighbors(tc) {
		if domain.ElevationDelta(n, tc) > 1 || env.distance(from, n) >= dist {
			continue
		}
		out = appendBystanders(out, n, attacker, target)
	}
	return out
}

// strayUnits are units behind the target: at range 3 only the cell straight
// behind on the line of fire, from range 4 any qualifying neighbor farther
// from the attacker.
func strayUnits(env Env, attacker *domain.Unit, from *domain.Cell, target *domain.Unit, dist int) []*domain.Unit {
	tc := target.Cell()
	var out []*domain.Unit
	if dist == 3 {
		if env.Grid == nil {
			return nil
		}
		behind := env.Grid.CellAt(domain.Extend(from.Coord, tc.Coord, 1))
		if behind != nil && domain.ElevationDelta(behind, tc) <= 1 {
			out = appendBystanders(out, behind, attacker, target)
		}
		return out
	}
	for _, n := range env.neighbors(tc) {
		if domain.ElevationDelta(n, tc) > 1 || env.distance(from, n) <= dist {
			continue
		}
		out = appendBystanders(out, n, attacker, target)
	}
	return out
}

func appendBystanders(out []*domain.Unit, c *domain.Cell, attacker, target *domain.Unit) []*domain.Unit {
	for _, o := range c.Occupants() {
		if o == attacker || o == target || !o.IsAlive() {
			continue
		}
		out = append(out, o)
	}
	return out
}

// RollDamage draws uniformly from [DMIN, DMAX].
func RollDamage(env Env, attacker *domain.Unit) int {
	if attacker == nil {
		return 0
	}
	lo := attacker.Get(domain.StatDMIN)
	hi := attacker.Get(domain.StatDMAX)
	if hi < lo {
		hi = lo
	}
	return lo + env.intN(hi-lo+1)
}

// ResolveAttack rolls once against the outcome table and applies damage to
// whoever the roll lands on: the target, a cover unit, or a stray.
func ResolveAttack(env Env, attacker, target *domain.Unit) domain.AttackResult {
	res := domain.AttackResult{Attacker: attacker, Target: target}
	if attacker == nil || target == nil {
		return res
	}

	combatLogger := logger.Component("combat_system").WithFields(logrus.Fields{
		"attacker_id": attacker.ID,
		"target_id":   target.ID,
	})

	hits := PotentialHits(env, attacker, target, nil)
	env.Hooks.FireAttacked(attacker, target)
	res.Roll = env.roll()

	for i := range hits {
		if !hits[i].Contains(res.Roll) {
			continue
		}
		bucket := hits[i]
		res.Bucket = &bucket
		res.Victim = bucket.Target
		raw := float64(RollDamage(env, attacker)) * bucket.DamageMult
		res.Hit = ApplyHit(env, attacker, bucket.Target, raw)
		break
	}

	if res.Bucket == nil {
		combatLogger.WithField("roll", res.Roll).Info("Attack missed.")
		return res
	}
	combatLogger.WithFields(logrus.Fields{
		"roll":      res.Roll,
		"category":  res.Bucket.Category,
		"victim_id": res.Victim.ID,
		"hp_damage": res.Hit.HPDamage,
		"killed":    res.Hit.Killed,
	}).Info("Attack resolved.")
	return res
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
