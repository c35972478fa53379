package agent

import (
	"context"
	"fmt"

	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/database"
	"github.com/furrowlabs/furrow/logging"
	"github.com/furrowlabs/furrow/model"
	"github.com/furrowlabs/furrow/plan"
)

// DefaultDecomposerPrompt asks the backend for a minimal sequence of SQL
// generation instructions in the bracketed instruction-tag dialect.
const DefaultDecomposerPrompt = `The user wants to answer an analytics question in SQL.

Based on the following question provided by the user, please make a plan consisting of a minimal sequence of SQL queries using the SQL Generator agent. The SQL Generator generates a single SQL query based on the given user instructions.

For each SQL in the sequence, generate a text instruction for the SQL Generator to follow. To reference a past step (e.g. to reference step 2, please use the phrase ` + "`sql2`" + ` in the instruction). When generating a plan, please use the following tag format to specify the plan.

<instruction1>...</instruction1>
<instruction2>...</instruction2>
...

Below is the data schema the user is working with.
%s

Please keep the plan simple and use as few steps as possible. The last instruction should specifically say what the final attributes are. The last instruction tag should end with a sentence starting with "The final attributes should be"... and then provide the attributes.`

// DecomposerOptions configures a Decomposer.
type DecomposerOptions struct {
	Name             string
	Description      string
	SystemPrompt     string // format string receiving the serialized schema
	GeneratorAgent   string // name the parsed instructions are addressed to
	Model            string
	Config           model.GenerationConfig
	TerminationToken string
	Logger           logging.Logger
}

// Decomposer breaks a complex SQL question into a consume-once queue of
// sub-tasks, one per generated instruction, each addressed to a designated
// SQL generator agent.
//
// Unlike the Planner's indexable plan, the queue supports only "pop front":
// sub-tasks are meant to be delegated forward-only, and popping one resets
// the attempt counters of the target agent's executors so a fresh sub-task
// never inherits retry exhaustion from an earlier, unrelated one.
type Decomposer struct {
	BaseAgent

	availableAgents  map[string]core.Agent
	backend          model.Model // nil enables single-agent passthrough mode
	db               *database.Database
	modelID          string
	config           model.GenerationConfig
	systemPrompt     string
	generatorAgent   string
	terminationToken string

	queue []*core.SubTask
}

var (
	_ core.Agent   = (*Decomposer)(nil)
	_ core.Planner = (*Decomposer)(nil)
)

// NewDecomposer creates a decomposer. backend may be nil, in which case the
// decomposer degenerates to a single-agent passthrough; availableAgents may
// be nil, in which case a default SQLGenerator over the same backend and
// database is created.
func NewDecomposer(backend model.Model, db *database.Database, availableAgents []core.Agent, optFns ...func(o *DecomposerOptions)) *Decomposer {
	opts := DecomposerOptions{
		Name:             "SQLDecomposer",
		Description:      "For heavily complex SQL questions that require multiple CTE expressions, this agent decomposes the question into simpler sub-queries that get joined together. Use it instead of the plain SQLGenerator only when the question is heavily complex.",
		SystemPrompt:     DefaultDecomposerPrompt,
		GeneratorAgent:   "SQLGenerator",
		TerminationToken: core.TerminationToken,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if availableAgents == nil {
		availableAgents = []core.Agent{
			NewSQLGenerator(backend, db, func(o *SQLGeneratorOptions) {
				o.Logger = opts.Logger
			}),
		}
	}
	agents := make(map[string]core.Agent, len(availableAgents))
	for _, a := range availableAgents {
		agents[a.Name()] = a
	}

	return &Decomposer{
		BaseAgent:        NewBaseAgent(opts.Name, opts.Description, opts.Logger),
		availableAgents:  agents,
		backend:          backend,
		db:               db,
		modelID:          opts.Model,
		config:           opts.Config,
		systemPrompt:     opts.SystemPrompt,
		generatorAgent:   opts.GeneratorAgent,
		terminationToken: opts.TerminationToken,
	}
}

// AvailableAgents returns the agents sub-tasks can be addressed to.
func (d *Decomposer) AvailableAgents() map[string]core.Agent { return d.availableAgents }

// QueueLen returns the number of sub-tasks still waiting for dispatch.
func (d *Decomposer) QueueLen() int { return len(d.queue) }

// SystemMessage renders the decomposition prompt with the serialized schema.
func (d *Decomposer) SystemMessage() string {
	var schema string
	if d.db != nil {
		schema = database.SerializeAsList(d.db.Tables)
	}
	return fmt.Sprintf(d.systemPrompt, schema)
}

// MoveToNextAgent pops the front sub-task of the queue. An empty queue is a
// normal "no task" result, not an error. Popping resets the attempt counter
// of every executor of the popped sub-task's target agent.
func (d *Decomposer) MoveToNextAgent() (*core.SubTask, error) {
	if len(d.queue) == 0 {
		return nil, nil
	}
	subTask := d.queue[0]
	d.queue = d.queue[1:]

	for _, ex := range core.ExecutorsOf(subTask.Agent) {
		ex.ResetAttempts()
	}
	return subTask, nil
}

// Send records message under recipient and delivers it synchronously.
func (d *Decomposer) Send(ctx context.Context, message *core.Message, recipient core.Agent) error {
	return deliver(ctx, d, d.History(), d.Logger(), message, recipient)
}

// Receive records the incoming message, generates a reply and sends it
// straight back to the sender.
func (d *Decomposer) Receive(ctx context.Context, message *core.Message, sender core.Agent) error {
	d.History().AddMessage(sender, core.RoleUser, message)

	reply, err := d.GenerateReply(ctx, d.History().GetMessages(sender), sender)
	if err != nil {
		return err
	}
	return d.Send(ctx, reply, sender)
}

// GenerateReply has two modes. With a backend attached it prompts it with
// the serialized schema, detects termination, parses the decomposition
// dialects and enqueues one sub-task per instruction. Without a backend
// exactly one available agent must exist and the user instruction is
// enqueued verbatim, acknowledged as a one-step serialized plan.
func (d *Decomposer) GenerateReply(ctx context.Context, messages []*core.Message, _ core.Agent) (*core.Message, error) {
	if d.backend == nil {
		return d.passthroughReply(messages)
	}

	req := model.Request{
		Model:    d.modelID,
		Messages: chatMessages(d.SystemMessage(), messages),
		Config:   d.config,
	}
	resp, err := d.backend.Chat(ctx, req)
	if err != nil {
		return nil, err
	}
	content := resp.Text()

	reply := core.NewMessage(core.RoleAssistant, content)
	reply.SendingAgent = d.Name()

	if core.HasTermination(content, d.terminationToken) {
		reply.IsTermination = true
		return reply, nil
	}

	instructions, err := plan.ParseDecomposition(content)
	if err != nil {
		d.Logger().Warn("failed to parse decomposition", "error", err, "content", content)
		return nil, err
	}

	// A single-step decomposition means the split was unnecessary; keep the
	// user's original, unparaphrased request instead of the model's rewrite.
	if len(instructions) == 1 && len(messages) > 0 {
		instructions[0] = messages[len(messages)-1].Content
	}

	target, ok := d.availableAgents[d.generatorAgent]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, d.generatorAgent)
	}
	for _, instruction := range instructions {
		d.queue = append(d.queue, &core.SubTask{Agent: target, Prompt: instruction})
	}

	reply.DisplayContent = content
	return reply, nil
}

// passthroughReply handles the degenerate no-backend mode: the single user
// instruction becomes one sub-task for the single available agent.
func (d *Decomposer) passthroughReply(messages []*core.Message) (*core.Message, error) {
	if len(d.availableAgents) > 1 {
		return nil, ErrAmbiguousAgents
	}
	var target core.Agent
	for _, a := range d.availableAgents {
		target = a
	}
	if target == nil {
		return nil, fmt.Errorf("%w: no available agents", ErrUnknownAgent)
	}

	var raw string
	if len(messages) > 0 {
		raw = messages[len(messages)-1].Content
	}
	d.queue = append(d.queue, &core.SubTask{Agent: target, Prompt: raw})

	reply := core.NewMessage(core.RoleAssistant, plan.SerializeSingleStep(target.Name(), raw))
	reply.SendingAgent = d.Name()
	return reply, nil
}
