package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"
)

// MoveCost is the price of stepping from -> to while searching toward target.
// +Inf means the step is forbidden. Nil cells are never enterable.
func MoveCost(env Env, u *domain.Unit, from, to, target *domain.Cell) float64 {
	inf := math.Inf(1)
	if u == nil || from == nil || to == nil {
		return inf
	}
	maxDelta := env.Rules.MaxElevationDelta

	// 1. Ending the path on somebody: attack-move on an enemy, never on a friend.
	if to == target {
		if occupant := to.OtherOccupant(u); occupant != nil {
			if u.IsEnemy(occupant) && u.CanMelee() && domain.ElevationDelta(from, to) <= maxDelta {
				return 0
			}
			return inf
		}
	}

	// 2. Cliff.
	if domain.ElevationDelta(from, to) > maxDelta {
		return inf
	}

	// 3. Occupation marks.
	self := u.Owner()
	occupiedByTeammate := false
	for _, o := range to.Marks.Owners(domain.MarkOccupied) {
		if o == self {
			continue
		}
		if o.Team != u.Team {
			return inf
		}
		occupiedByTeammate = true
		if to == target {
			return inf
		}
	}

	// 4. Terrain and climbing.
	cost := env.Rules.TerrainCost(to.Terrain)
	if to.Elevation > from.Elevation {
		cost += env.Rules.UphillPenalty
	}

	// 5. Enemy zone of control, charged once. Passing through a friend's cell is exempt.
	if !occupiedByTeammate && to.Marks.HasEnemy(domain.MarkZoC, u.Team) {
		cost += env.Rules.ZoCPenalty
	}
	return cost
}

// TryMoveStep checks whether u may take one step. It has a side effect: an
// attack of opportunity triggered by leaving from is rolled and applied.
func TryMoveStep(env Env, u *domain.Unit, from, to, target *domain.Cell) domain.MoveVerdict {
	if u == nil || from == nil || to == nil {
		return domain.Refused(domain.MoveInvalidInput)
	}

	cost := MoveCost(env, u, from, to, target)
	if math.IsInf(cost, 1) {
		return domain.Refused(domain.MoveUnreachable)
	}
	if !env.Rules.IgnoreAPs && float64(u.Get(domain.StatAP)) < cost {
		return domain.Refused(domain.MoveInsufficientAP)
	}
	if !env.Rules.IgnoreFatigue && float64(u.Get(domain.StatFAT))+cost > float64(u.Base(domain.StatFAT)) {
		return domain.Refused(domain.MoveInsufficientFatigue)
	}

	if attacker := attackOfOpportunity(env, u, from); attacker != nil {
		return domain.MoveVerdict{Reason: domain.MoveStoppedByAttackOfOpportunity, Attacker: attacker}
	}
	return domain.Allowed()
}

// attackOfOpportunity lets adjacent enemies strike u as it leaves from.
// Neighbors are scanned in grid order; the first hit ends the scan, a miss
// lets the next enemy try.
func attackOfOpportunity(env Env, u *domain.Unit, from *domain.Cell) *domain.Unit {
	if !from.Marks.HasEnemy(domain.MarkZoC, u.Team) {
		return nil
	}
	for _, n := range env.neighbors(from) {
		for _, enemy := range n.Occupants() {
			if !u.IsEnemy(enemy) || !enemy.IsAlive() || !enemy.CanMelee() {
				continue
			}
			chance := HitChance(env, enemy, u)
			env.Hooks.FireAttacked(enemy, u)
			r := env.roll()

			entry := logger.Component("movement_system").WithFields(logrus.Fields{
				"mover_id":    u.ID,
				"attacker_id": enemy.ID,
				"chance":      chance,
				"roll":        r,
			})
			if r < chance {
				res := ApplyHit(env, enemy, u, float64(RollDamage(env, enemy)))
				entry.WithField("hp_damage", res.HPDamage).Info("Attack of opportunity hit.")
				return enemy
			}
			entry.Debug("Attack of opportunity missed.")
		}
	}
	return nil
}

// MoveStopIndex returns how many cells of path u will actually walk
// (path excludes u's current cell). The walk is cut where the summed cost
// exceeds AP, then pulled back to the last cell u could stand on. At least 1
// is always returned for a non-empty path.
func MoveStopIndex(env Env, u *domain.Unit, path []*domain.Cell, target *domain.Cell) int {
	if u == nil || len(path) == 0 {
		return 0
	}

	reach := len(path) - 1
	if !env.Rules.IgnoreAPs {
		ap := float64(u.Get(domain.StatAP))
		total := 0.0
		prev := u.Cell()
		reach = -1
		for i, c := range path {
			total += MoveCost(env, u, prev, c, target)
			if total > ap {
				break
			}
			reach = i
			prev = c
		}
	}

	for i := reach; i >= 0; i-- {
		if path[i].IsFreeFor(u) {
			return i + 1
		}
	}
	// Nothing free on the way back: still advance one cell.
	return 1
}

// PerformMove relocates u from -> to, pays the rounded step cost and
// re-projects u's influence. Validation is TryMoveStep's job.
func PerformMove(env Env, u *domain.Unit, from, to *domain.Cell) {
	if u == nil || to == nil {
		return
	}
	cost := MoveCost(env, u, from, to, nil)
	if math.IsInf(cost, 1) {
		cost = 0
	}
	spent := int(math.Round(cost))

	if from != nil {
		RetractInfluence(env, u, from)
	}
	domain.Unplace(u)

	if !env.Rules.IgnoreAPs {
		u.SetStat(domain.StatAP, u.Get(domain.StatAP)-spent)
	}
	if !env.Rules.IgnoreFatigue {
		u.SetStat(domain.StatFAT, u.Get(domain.StatFAT)+spent)
	}

	domain.Place(u, to)
	ProjectInfluence(env, u, to)

	logger.Component("movement_system").WithFields(logrus.Fields{
		"unit_id": u.ID,
		"to":      to.Coord,
		"spent":   spent,
	}).Debug("Unit moved.")
}
