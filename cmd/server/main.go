package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/config"
	"tactics-server/internal/engine"
	"tactics-server/internal/infrastructure/storage"
	"tactics-server/internal/network"
	"tactics-server/internal/scenario"
	"tactics-server/internal/server"
	"tactics-server/internal/version"
	"tactics-server/pkg/logger"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to read configuration")
	}

	var seed uint64
	var replayPath, scenarioPath string
	flag.Uint64Var(&seed, "seed", cfg.Seed, "Match seed (0 for random)")
	flag.StringVar(&replayPath, "replay", "", "Path to a .tcjl journal to re-run")
	flag.StringVar(&scenarioPath, "scenario", cfg.ScenarioPath, "Path to a scenario YAML file")
	flag.Parse()

	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Log.Info("Starting tactics server...")
	logger.Log.Info(version.String())

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load rules")
	}

	sc := scenario.Default()
	if scenarioPath != "" {
		if sc, err = scenario.Load(scenarioPath); err != nil {
			logger.Log.WithError(err).Fatal("Failed to load scenario")
		}
	}

	matchCfg := engine.NewConfig()
	matchCfg.Rules = rules

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if replayPath != "" {
		replay(ctx, matchCfg, sc, replayPath)
		return
	}

	if seed != 0 {
		matchCfg.Seed = seed
		logger.Log.Infof("Using explicit seed: %d", seed)
	} else {
		logger.Log.Infof("Using random seed: %d", matchCfg.Seed)
	}
	matchCfg.StepDelay = cfg.StepDelay

	hub := network.NewBroadcaster()
	m := engine.NewMatch(matchCfg, sc.Grid, hub)
	if err := sc.Populate(m.Ruleset); err != nil {
		logger.Log.WithError(err).Fatal("Failed to place units")
	}
	if err := m.Start(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to start combat")
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		m.Run(ctx)
	}()

	srv := server.New(m, hub, cfg.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server stopped")
		stop()
	}
	<-loopDone

	logger.Log.Info("Shutting down...")

	journals, err := storage.NewJournalService(cfg.JournalDir)
	if err != nil {
		logger.Log.WithError(err).Error("Journal directory unavailable")
		return
	}
	path, err := journals.Save(m.Journal)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save journal")
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"path":    path,
		"actions": len(m.Journal.Actions),
	}).Info("Journal saved.")
	logger.Log.Info("Done.")
}

// replay re-runs a journal without a network and logs the final roster.
func replay(ctx context.Context, cfg engine.Config, sc *scenario.Scenario, path string) {
	logger.Log.Info("Mode: journal replay")

	j, err := storage.LoadFile(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load journal")
	}
	cfg.ID = j.MatchID
	cfg.Seed = j.Seed

	m := engine.NewMatch(cfg, sc.Grid, nil)
	if err := sc.Populate(m.Ruleset); err != nil {
		logger.Log.WithError(err).Fatal("Failed to place units")
	}
	if err := m.Start(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to start combat")
	}
	if err := m.Replay(ctx, j); err != nil {
		logger.Log.WithError(err).Fatal("Replay diverged")
	}

	for _, u := range m.Ruleset.Units() {
		logger.Log.WithFields(logrus.Fields{
			"unit_id": u.ID,
			"team":    u.Team,
			"alive":   u.IsAlive(),
			"stats":   u.Stats(),
		}).Info("Final state.")
	}
}
