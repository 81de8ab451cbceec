package actions

import (
	"tactics-server/internal/engine/handlers"
)

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Rules.Wait(ctx.Actor); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: "Unit " + ctx.Actor.String() + " waits.", MsgType: "INFO"}, nil
}

func HandleEndTurn(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Rules.EndTurn(ctx.Actor); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: "Unit " + ctx.Actor.String() + " ends its turn.", MsgType: "INFO"}, nil
}
