package agent

import (
	"context"
	"fmt"

	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/database"
	"github.com/furrowlabs/furrow/logging"
	"github.com/furrowlabs/furrow/model"
)

// DefaultSQLGeneratorPrompt instructs the backend to answer one instruction
// with one SQL query.
const DefaultSQLGeneratorPrompt = `You are a SQL generator. Given an instruction from the user, output a single SQL query that satisfies it. Use standard SQL against the schema below and output only the query.

Below is the data schema the user is working with.
%s`

// SQLGeneratorOptions configures a SQLGenerator.
type SQLGeneratorOptions struct {
	Name         string
	Description  string
	SystemPrompt string // format string receiving the serialized schema
	Model        string
	Config       model.GenerationConfig
	Executors    []core.Executor
	Logger       logging.Logger
}

// SQLGenerator is the worker agent decomposer sub-tasks are addressed to:
// it turns one instruction into one SQL query. It carries executors whose
// attempt counters the decomposer resets on dispatch.
type SQLGenerator struct {
	BaseAgent

	backend   model.Model
	db        *database.Database
	modelID   string
	config    model.GenerationConfig
	prompt    string
	executors []core.Executor
}

var (
	_ core.Agent          = (*SQLGenerator)(nil)
	_ core.ExecutorBearer = (*SQLGenerator)(nil)
)

// NewSQLGenerator creates a SQL generator over the given backend and schema.
func NewSQLGenerator(backend model.Model, db *database.Database, optFns ...func(o *SQLGeneratorOptions)) *SQLGenerator {
	opts := SQLGeneratorOptions{
		Name:         "SQLGenerator",
		Description:  "Generates a single SQL query based on the given user instruction.",
		SystemPrompt: DefaultSQLGeneratorPrompt,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &SQLGenerator{
		BaseAgent: NewBaseAgent(opts.Name, opts.Description, opts.Logger),
		backend:   backend,
		db:        db,
		modelID:   opts.Model,
		config:    opts.Config,
		prompt:    opts.SystemPrompt,
		executors: opts.Executors,
	}
}

// Executors returns the generator's executors.
func (g *SQLGenerator) Executors() []core.Executor { return g.executors }

// SystemMessage renders the generation prompt with the serialized schema.
func (g *SQLGenerator) SystemMessage() string {
	var schema string
	if g.db != nil {
		schema = database.SerializeAsList(g.db.Tables)
	}
	return fmt.Sprintf(g.prompt, schema)
}

// Send records message under recipient and delivers it synchronously.
func (g *SQLGenerator) Send(ctx context.Context, message *core.Message, recipient core.Agent) error {
	return deliver(ctx, g, g.History(), g.Logger(), message, recipient)
}

// Receive records the incoming instruction, generates a reply and sends it
// straight back.
func (g *SQLGenerator) Receive(ctx context.Context, message *core.Message, sender core.Agent) error {
	g.History().AddMessage(sender, core.RoleUser, message)

	reply, err := g.GenerateReply(ctx, g.History().GetMessages(sender), sender)
	if err != nil {
		return err
	}
	return g.Send(ctx, reply, sender)
}

// GenerateReply asks the backend for the SQL query answering the latest
// instruction.
func (g *SQLGenerator) GenerateReply(ctx context.Context, messages []*core.Message, _ core.Agent) (*core.Message, error) {
	if g.backend == nil {
		return nil, fmt.Errorf("sql generator %q has no model backend", g.Name())
	}
	req := model.Request{
		Model:    g.modelID,
		Messages: chatMessages(g.SystemMessage(), messages),
		Config:   g.config,
	}
	resp, err := g.backend.Chat(ctx, req)
	if err != nil {
		return nil, err
	}

	reply := core.NewMessage(core.RoleAssistant, resp.Text())
	reply.SendingAgent = g.Name()
	return reply, nil
}
