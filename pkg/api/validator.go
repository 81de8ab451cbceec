package api

import (
	"errors"
	"fmt"
)

// maxPathLength bounds a single MOVE_PATH request.
const maxPathLength = 64

// Validator is implemented by payloads that can check themselves.
type Validator interface {
	Validate() error
}

func (p PathPayload) Validate() error {
	if len(p.Path) == 0 {
		return errors.New("path cannot be empty")
	}
	if len(p.Path) > maxPathLength {
		return fmt.Errorf("path longer than %d steps", maxPathLength)
	}
	if p.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return nil
}

func (p AttackPayload) Validate() error {
	if p.TargetID <= 0 {
		return errors.New("targetId is required")
	}
	return nil
}

func (p CheatPayload) Validate() error {
	switch p.Flag {
	case "ignoreAPs", "ignoreFatigue", "ignoreMoveOrder":
		return nil
	case "":
		return errors.New("flag is required")
	}
	return fmt.Errorf("unknown flag %q", p.Flag)
}
