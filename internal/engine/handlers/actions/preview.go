package actions

import (
	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

func HandlePreview(ctx handlers.Context, p api.PathPayload) (handlers.Result, error) {
	preview, err := ctx.Rules.PreviewPath(ctx.Actor, handlers.Axials(p.Path))
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{
		Reply:     handlers.Preview(preview),
		ReplyType: domain.EventPreview,
	}, nil
}

func HandleCancelPreview(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Rules.CancelPreview(ctx.Actor); err != nil {
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}
