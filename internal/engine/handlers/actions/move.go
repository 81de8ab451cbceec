package actions

import (
	"encoding/json"
	"fmt"

	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

func HandleMovePath(ctx handlers.Context, p api.PathPayload) (handlers.Result, error) {
	out, err := ctx.Rules.ExecutePathLimit(ctx.Ctx, ctx.Actor, handlers.Axials(p.Path), p.Limit)
	if err != nil {
		if out.Steps == 0 {
			return handlers.Result{}, err
		}
		partial, mErr := json.Marshal(api.PathPayload{Path: p.Path, Limit: out.Steps})
		if mErr != nil {
			return handlers.Result{}, err
		}
		return handlers.Result{Journal: partial}, err
	}

	msg := fmt.Sprintf("%s moves %d cell(s).", out.Unit.Name, out.Steps)
	if !out.Verdict.OK() {
		msg = fmt.Sprintf("%s moves %d cell(s): %s.", out.Unit.Name, out.Steps, out.Verdict)
	}
	if out.Attack != nil {
		return handlers.Result{Msg: msg + " " + describeAttack(*out.Attack), MsgType: "COMBAT"}, nil
	}
	return handlers.Result{Msg: msg, MsgType: "MOVE"}, nil
}
