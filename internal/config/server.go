package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server is the process configuration read from the environment.
type Server struct {
	Port         string `env:"TACTICS_PORT" envDefault:"8080"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	RulesPath    string `env:"TACTICS_RULES"`
	ScenarioPath string `env:"TACTICS_SCENARIO"`
	JournalDir   string `env:"TACTICS_JOURNAL_DIR" envDefault:"journals"`
	// Seed 0 means "pick one from the clock".
	Seed uint64 `env:"TACTICS_SEED"`
	// StepDelay paces path execution for animating clients.
	StepDelay time.Duration `env:"TACTICS_STEP_DELAY" envDefault:"150ms"`
}

// LoadServer parses the environment.
func LoadServer() (Server, error) {
	var s Server
	if err := env.Parse(&s); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
