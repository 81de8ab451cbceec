package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"
)

// armorDamping is how much each remaining armor point shaves off direct HP damage.
const armorDamping = 0.1

// ApplyHit deals rawDamage from attacker to target. Against armor, ADM% of
// the raw damage wears armor down and ABY% goes straight to HP, damped by the
// armor left; armor damage the plates could not soak spills into HP. Without
// armor the raw damage hits HP whole.
func ApplyHit(env Env, attacker, target *domain.Unit, rawDamage float64) domain.HitResult {
	res := domain.HitResult{RawDamage: rawDamage}
	if target == nil || !target.IsAlive() {
		return res
	}
	rawDamage = max(0, rawDamage)

	adm, aby := domain.StatDefault(domain.StatADM), domain.StatDefault(domain.StatABY)
	if attacker != nil {
		adm = attacker.Get(domain.StatADM)
		aby = attacker.Get(domain.StatABY)
	}

	res.ArmorBefore = target.Get(domain.StatARM)
	res.HPBefore = target.Get(domain.StatHP)
	armor := res.ArmorBefore

	if armor > 0 {
		armDmg := int(math.Round(rawDamage * float64(adm) / 100))
		directHPDmg := int(math.Round(rawDamage * float64(aby) / 100))

		absorbed := min(armor, armDmg)
		armor -= absorbed
		reduction := float64(armor) * armorDamping
		res.HPDamage = max(0, int(math.Round(float64(directHPDmg)-reduction)))
		if armDmg > absorbed {
			res.HPDamage += armDmg - absorbed
		}
		target.SetStat(domain.StatARM, armor)
	} else {
		res.HPDamage = int(math.Round(rawDamage))
	}
	res.ArmorAfter = armor

	hp := res.HPBefore - res.HPDamage
	if hp < 0 {
		hp = 0
	}
	target.SetStat(domain.StatHP, hp)
	res.HPAfter = hp

	env.Hooks.FireHit(attacker, target, res.HPDamage)

	logger.Component("combat_system").WithFields(logrus.Fields{
		"target_id":    target.ID,
		"raw_damage":   rawDamage,
		"armor_before": res.ArmorBefore,
		"armor_after":  res.ArmorAfter,
		"hp_before":    res.HPBefore,
		"hp_after":     res.HPAfter,
	}).Debug("Hit applied.")

	if hp <= 0 {
		res.Killed = Kill(env, target)
	}
	return res
}

// Kill destroys u: it leaves its cell, its marks and preview are retracted,
// and the died hook fires. Only the first call does anything.
func Kill(env Env, u *domain.Unit) bool {
	if u == nil || !u.MarkDead() {
		return false
	}
	if c := u.Cell(); c != nil {
		RetractInfluence(env, u, c)
		domain.Unplace(u)
	}
	ClearAoA(env, u)
	env.Hooks.FireDied(u)

	logger.Component("combat_system").WithField("unit_id", u.ID).Info("Unit destroyed.")
	return true
}
