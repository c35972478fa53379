// Package furrow provides a high-level façade over the planning engine:
// it assembles a model backend, a schema-aware decomposer, a SQL generator
// and a general planner from configuration. Most applications interact with
// this package by:
//  1. Creating a Furrow via New() with a config (YAML or Default())
//  2. Running an objective through Plan() or driving the agents directly
//
// The façade delegates all orchestration semantics to the agent and runner
// packages while keeping setup ergonomics concise. Defaults are safe for
// local development: a mock backend and no database.
package furrow

import (
	"context"
	"fmt"

	"github.com/furrowlabs/furrow/agent"
	"github.com/furrowlabs/furrow/config"
	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/database"
	"github.com/furrowlabs/furrow/logging"
	"github.com/furrowlabs/furrow/model"
	"github.com/furrowlabs/furrow/model/anthropic"
	"github.com/furrowlabs/furrow/model/openai"
	"github.com/furrowlabs/furrow/runner"
)

// Options configures the Furrow instance beyond what the config file
// carries.
type Options struct {
	// Backend overrides the model built from config (useful for tests).
	Backend model.Model
	// Database overrides the schema loaded from the configured SQLite path.
	Database *database.Database
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Furrow aggregates the planning agents built from one configuration.
type Furrow struct {
	backend    model.Model
	db         *database.Database
	planner    *agent.Planner
	decomposer *agent.Decomposer
	logger     logging.Logger
}

// New assembles the agent team for the given configuration. Any unset
// service falls back to a sensible default.
func New(cfg *config.Config, optFns ...func(o *Options)) (*Furrow, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	backend := opts.Backend
	if backend == nil {
		var err error
		backend, err = buildBackend(cfg.Model)
		if err != nil {
			return nil, err
		}
	}

	db := opts.Database
	if db == nil && cfg.Database.Path != "" {
		var err error
		db, err = database.FromSQLite(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("load database schema: %w", err)
		}
	}

	genCfg := cfg.Model.GenerationConfig()
	decomposer := agent.NewDecomposer(backend, db, nil, func(o *agent.DecomposerOptions) {
		o.Config = genCfg
		o.TerminationToken = cfg.Planner.TerminationToken
		o.Logger = opts.Logger
	})
	planner := agent.NewPlanner([]core.Agent{decomposer}, backend, func(o *agent.PlannerOptions) {
		o.Config = genCfg
		o.TerminationToken = cfg.Planner.TerminationToken
		o.Logger = opts.Logger
	})

	return &Furrow{
		backend:    backend,
		db:         db,
		planner:    planner,
		decomposer: decomposer,
		logger:     opts.Logger,
	}, nil
}

// Planner returns the general planning agent.
func (f *Furrow) Planner() *agent.Planner { return f.planner }

// Decomposer returns the SQL decomposition agent.
func (f *Furrow) Decomposer() *agent.Decomposer { return f.decomposer }

// Backend returns the model backend the agents call.
func (f *Furrow) Backend() model.Model { return f.backend }

// Plan runs one objective through the general planner and dispatches the
// resulting sub-tasks.
func (f *Furrow) Plan(ctx context.Context, objective string) (*runner.Result, error) {
	r, err := runner.New(f.planner, func(o *runner.Options) { o.Logger = f.logger })
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, objective)
}

// buildBackend constructs the configured provider adapter.
func buildBackend(cfg config.ModelConfig) (model.Model, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Name != "" {
				o.Model = cfg.Name
			}
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Name != "" {
				o.Model = cfg.Name
			}
		}), nil
	case "mock", "":
		name := cfg.Name
		if name == "" {
			name = "mock-model"
		}
		return model.NewMockModel(name), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
