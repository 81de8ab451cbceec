package actions

import (
	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
)

// HandleInit only asks for the board; the match answers with a STATE reply.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{ReplyType: domain.EventState}, nil
}
