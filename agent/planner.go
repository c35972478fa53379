package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/logging"
	"github.com/furrowlabs/furrow/model"
	"github.com/furrowlabs/furrow/plan"
)

// DefaultPlannerPrompt is the system prompt of the general planner. The tag
// format it dictates is a bit-exact wire contract with plan.ParseSteps.
const DefaultPlannerPrompt = `Based on the following objective provided by the user, please break down the objective into a sequence of sub-tasks that can be solved by one of the following agents. For each sub-task in the sequence, indicate which agent should perform the task and generate a detailed instruction for the agent to follow. The user may also provide suggestions to the plan that you should take into account when generating the plan. When generating a plan, please use the following tag format to specify the plan.

<steps>
<step1>
<agent>...</agent>
<instruction>...</instruction>
</step1>
<step2>
...
</step2>
...
</steps>

Once the user is satisfied with the plan, please output %[1]s tag instead of a plan.

Below are the agents you have access to.

<agents>
%[2]s
</agents>
`

// PlannerOptions configures a Planner.
type PlannerOptions struct {
	Name             string
	Description      string
	SystemPrompt     string // format string receiving sentinel and agent list
	Model            string // backend model id override
	Config           model.GenerationConfig
	TerminationToken string
	Logger           logging.Logger
}

// Planner builds a linear plan from a user objective once per planning turn
// and hands out sub-tasks one at a time through a monotonic cursor.
//
// State machine: the first message from a sender is recorded as an
// objective, later ones as feedback; every non-terminal backend reply
// replaces the current plan and resets the cursor to before the first
// element, so a re-plan always restarts enumeration from the beginning.
type Planner struct {
	BaseAgent

	availableAgents  map[string]core.Agent
	backend          model.Model
	modelID          string
	config           model.GenerationConfig
	systemPrompt     string
	terminationToken string

	steps  []plan.Step
	cursor int // -1 before the first advance
}

var (
	_ core.Agent   = (*Planner)(nil)
	_ core.Planner = (*Planner)(nil)
)

// NewPlanner creates a planner over the given available agents and backend.
func NewPlanner(availableAgents []core.Agent, backend model.Model, optFns ...func(o *PlannerOptions)) *Planner {
	opts := PlannerOptions{
		Name:             "Planner",
		Description:      "Plans the task.",
		SystemPrompt:     DefaultPlannerPrompt,
		TerminationToken: core.TerminationToken,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	agents := make(map[string]core.Agent, len(availableAgents))
	for _, a := range availableAgents {
		agents[a.Name()] = a
	}

	return &Planner{
		BaseAgent:        NewBaseAgent(opts.Name, opts.Description, opts.Logger),
		availableAgents:  agents,
		backend:          backend,
		modelID:          opts.Model,
		config:           opts.Config,
		systemPrompt:     opts.SystemPrompt,
		terminationToken: opts.TerminationToken,
		cursor:           -1,
	}
}

// AvailableAgents returns the agents sub-tasks can be addressed to.
func (p *Planner) AvailableAgents() map[string]core.Agent { return p.availableAgents }

// HasPlan reports whether a plan has been built for the current turn.
func (p *Planner) HasPlan() bool { return len(p.steps) > 0 }

// SystemMessage renders the system prompt advertising every available
// agent's name and description plus the termination sentinel.
func (p *Planner) SystemMessage() string {
	names := make([]string, 0, len(p.availableAgents))
	for name := range p.availableAgents {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		a := p.availableAgents[name]
		lines = append(lines, fmt.Sprintf("<agent>\n%s: %s\n</agent>", a.Name(), a.Description()))
	}
	return fmt.Sprintf(p.systemPrompt, p.terminationToken, strings.Join(lines, "\n"))
}

// MoveToNextAgent advances the cursor and returns the sub-task at the new
// position with its target agent resolved by name. It fails with
// ErrPlanExhausted past the end of the plan and with ErrUnknownAgent when
// the plan references an agent that does not exist.
func (p *Planner) MoveToNextAgent() (*core.SubTask, error) {
	p.cursor++
	if p.cursor >= len(p.steps) {
		return nil, ErrPlanExhausted
	}
	step := p.steps[p.cursor]
	target, ok := p.availableAgents[step.Agent]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, step.Agent)
	}
	return &core.SubTask{Agent: target, Prompt: step.Instruction, Index: p.cursor}, nil
}

// Send records message under recipient and delivers it synchronously.
func (p *Planner) Send(ctx context.Context, message *core.Message, recipient core.Agent) error {
	return deliver(ctx, p, p.History(), p.Logger(), message, recipient)
}

// Receive records the incoming message, wrapped as objective on the first
// turn from this sender and as feedback afterwards, then generates a reply and
// sends it straight back.
func (p *Planner) Receive(ctx context.Context, message *core.Message, sender core.Agent) error {
	if p.History().Len(sender) == 0 {
		message.Content = fmt.Sprintf("<objective>%s</objective>", message.Content)
	} else {
		message.Content = fmt.Sprintf("<feedback>%s</feedback>", message.Content)
	}
	p.History().AddMessage(sender, core.RoleUser, message)

	reply, err := p.GenerateReply(ctx, p.History().GetMessages(sender), sender)
	if err != nil {
		return err
	}
	return p.Send(ctx, reply, sender)
}

// GenerateReply calls the backend with the full dyad history. A terminal
// response yields a reply flagged as termination and leaves the plan alone;
// anything else must parse as a tag-enveloped plan, which replaces the
// current plan and rewinds the cursor. A present-but-malformed envelope is
// logged and degrades to an empty plan; a missing envelope is fatal.
func (p *Planner) GenerateReply(ctx context.Context, messages []*core.Message, _ core.Agent) (*core.Message, error) {
	req := model.Request{
		Model:    p.modelID,
		Messages: chatMessages(p.SystemMessage(), messages),
		Config:   p.config,
	}
	resp, err := p.backend.Chat(ctx, req)
	if err != nil {
		return nil, err
	}
	content := resp.Text()

	reply := core.NewMessage(core.RoleAssistant, content)
	reply.SendingAgent = p.Name()

	if core.HasTermination(content, p.terminationToken) {
		reply.IsTermination = true
		return reply, nil
	}

	steps, err := plan.ParseSteps(content)
	if err != nil {
		var malformed *plan.MalformedEnvelopeError
		if !errors.As(err, &malformed) {
			return nil, err
		}
		p.Logger().Error("failed to parse plan envelope", "error", err, "content", content)
		steps = nil
	}
	p.steps = steps
	p.cursor = -1
	return reply, nil
}

// chatMessages flattens the system prompt and dyad history into the ordered
// role/content list a backend expects.
func chatMessages(system string, messages []*core.Message) []model.Message {
	out := make([]model.Message, 0, len(messages)+1)
	out = append(out, model.Message{Role: core.RoleSystem, Content: system})
	for _, m := range messages {
		out = append(out, model.Message{Role: m.Role, Content: m.Content})
	}
	return out
}
