package actions

import (
	"fmt"

	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

func HandleAttack(ctx handlers.Context, p api.AttackPayload) (handlers.Result, error) {
	res, err := ctx.Rules.Attack(ctx.Actor, domain.UnitID(p.TargetID))
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: describeAttack(res), MsgType: "COMBAT"}, nil
}

func describeAttack(res domain.AttackResult) string {
	if !res.Landed() {
		return fmt.Sprintf("%s attacks %s and misses.", res.Attacker.Name, res.Target.Name)
	}
	msg := fmt.Sprintf("%s attacks %s", res.Attacker.Name, res.Target.Name)
	if res.Victim != res.Target {
		msg += fmt.Sprintf(", the shot hits %s (%s)", res.Victim.Name, res.Bucket.Category)
	}
	msg += fmt.Sprintf(" for %d damage.", res.Hit.HPDamage)
	if res.Hit.Killed {
		msg += fmt.Sprintf(" %s falls.", res.Victim.Name)
	}
	return msg
}
