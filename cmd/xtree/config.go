package main

import (
	"errors"
	"slices"
	"time"

	"github.com/spf13/pflag"
)

const (
	scenarioBasic      = "basic"
	scenarioDuplicates = "duplicates"
	scenarioRandom     = "random"
	scenarioStress     = "stress"
	scenarioAll        = "all"
)

var (
	errUnknownScenario = errors.New("[xtree] unknown scenario")
	errInvalidFlag     = errors.New("[xtree] invalid flag value")
)

type config struct {
	Scenario        string
	Count           int
	Seed            uint64
	Workers         int
	ArenaLimit      int64
	LogLevel        string
	LogEncoder      string
	Metrics         string
	MetricsInterval time.Duration
}

// scenarios expands "all" in the run order.
func (cfg *config) scenarios() []string {
	if cfg.Scenario == scenarioAll {
		return []string{scenarioBasic, scenarioDuplicates, scenarioRandom, scenarioStress}
	}
	return []string{cfg.Scenario}
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{}
	fs := pflag.NewFlagSet("xtree", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Scenario, "scenario", "s", scenarioAll, "basic, duplicates, random, stress or all")
	fs.IntVarP(&cfg.Count, "count", "n", 1000, "values inserted per tree by the random and stress scenarios")
	fs.Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "seed of the random values")
	fs.IntVarP(&cfg.Workers, "workers", "w", 8, "trees built concurrently by the stress scenario")
	fs.Int64Var(&cfg.ArenaLimit, "arena-limit", 0, "node slots of every tree arena, 0 is unbounded")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR, XLOG_LVL if empty")
	fs.StringVar(&cfg.LogEncoder, "log-encoder", "json", "json or plaintext")
	fs.StringVar(&cfg.Metrics, "metrics", "none", "none, console or prometheus")
	fs.DurationVar(&cfg.MetricsInterval, "metrics-interval", 5*time.Second, "export interval of the console metrics")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if !slices.Contains([]string{
		scenarioBasic, scenarioDuplicates, scenarioRandom, scenarioStress, scenarioAll,
	}, cfg.Scenario) {
		return nil, errUnknownScenario
	}
	if cfg.Count <= 0 || cfg.Workers <= 0 || cfg.ArenaLimit < 0 {
		return nil, errInvalidFlag
	}
	return cfg, nil
}
