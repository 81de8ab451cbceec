package engine

import (
	"time"

	"tactics-server/internal/config"
	"tactics-server/pkg/utils"
)

// Config holds the parameters a match starts with.
type Config struct {
	ID string
	// Seed drives every roll of the match. Same seed, scenario and journal
	// give the same battle.
	Seed  uint64
	Rules config.Rules
	// StepDelay paces path execution so clients can animate each step.
	// Zero disables pacing.
	StepDelay time.Duration
}

// NewConfig returns a config with a fresh id, a clock seed and stock rules.
func NewConfig() Config {
	return Config{
		ID:    utils.GenerateID(),
		Seed:  utils.NewSeed(),
		Rules: config.DefaultRules(),
	}
}
