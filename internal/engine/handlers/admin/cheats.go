package admin

import (
	"fmt"

	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

// HandleCheat flips a runtime override until the next round starts.
// { "flag": "ignoreAPs", "enabled": true }
func HandleCheat(ctx handlers.Context, p api.CheatPayload) (handlers.Result, error) {
	if err := ctx.Rules.SetOverride(p.Flag, p.Enabled); err != nil {
		return handlers.Result{}, err
	}
	status := "OFF"
	if p.Enabled {
		status = "ON"
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Override %s toggled %s until the next round.", p.Flag, status),
		MsgType: "INFO",
	}, nil
}
