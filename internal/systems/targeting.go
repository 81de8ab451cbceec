package systems

import (
	"tactics-server/internal/domain"
)

// ValidationResult is the verdict on an attack request.
type ValidationResult struct {
	Valid   bool
	Message string
}

// ValidateAttack checks that attacker may strike target from its current
// cell: both alive and placed, different teams, target within RNG, and for
// melee the elevation step is within the movement limit.
func ValidateAttack(env Env, attacker, target *domain.Unit) ValidationResult {
	if attacker == nil || target == nil {
		return ValidationResult{Message: "Target not found."}
	}
	if !attacker.IsAlive() || attacker.Cell() == nil {
		return ValidationResult{Message: "Attacker is not on the board."}
	}
	if !target.IsAlive() || target.Cell() == nil {
		return ValidationResult{Message: "Target is not on the board."}
	}
	if !attacker.IsEnemy(target) {
		return ValidationResult{Message: "Cannot attack a teammate."}
	}

	from, to := attacker.Cell(), target.Cell()
	if env.distance(from, to) > attacker.Get(domain.StatRNG) {
		return ValidationResult{Message: "Target is out of range."}
	}
	if attacker.PrefersMelee() && domain.ElevationDelta(from, to) > env.Rules.MaxElevationDelta {
		return ValidationResult{Message: "Target is too far above or below."}
	}
	return ValidationResult{Valid: true}
}
