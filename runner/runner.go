package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/furrowlabs/furrow/agent"
	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/logging"
)

// Options holds configuration overrides passed to New().
type Options struct {
	// Logger receives dispatch decisions; defaults to NoOp.
	Logger logging.Logger
	// MaxSubTasks caps how many sub-tasks a single run may dispatch.
	MaxSubTasks int
}

// Result captures the outcome of a run: the planner's reply to the
// objective and the replies produced by each dispatched sub-task in order.
type Result struct {
	PlannerReply   *core.Message
	SubTaskReplies []*core.Message
	Terminated     bool
}

// Runner executes one objective against a planning-capable agent.
type Runner struct {
	planner     core.Planner
	user        *agent.UserProxy
	logger      logging.Logger
	maxSubTasks int
}

// New constructs a Runner over a planning-capable agent. It returns an error
// if the agent does not expose the planning capability.
func New(planningAgent core.Agent, optFns ...func(o *Options)) (*Runner, error) {
	opts := Options{
		Logger:      logging.NoOpLogger{},
		MaxSubTasks: 100,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	planner := core.PlannerOf(planningAgent)
	if planner == nil {
		return nil, fmt.Errorf("agent %q has no planning capability", planningAgent.Name())
	}

	return &Runner{
		planner:     planner,
		user:        agent.NewUserProxy(opts.Logger),
		logger:      opts.Logger,
		maxSubTasks: opts.MaxSubTasks,
	}, nil
}

// Run sends the objective to the planner, then dispatches every sub-task of
// the resulting plan in order. Planner exhaustion and an empty queue both
// end the loop normally; every other failure aborts the run.
func (r *Runner) Run(ctx context.Context, objective string) (*Result, error) {
	msg := core.NewMessage(core.RoleUser, objective)
	if err := r.user.Send(ctx, msg, r.planner); err != nil {
		return nil, fmt.Errorf("send objective: %w", err)
	}

	result := &Result{PlannerReply: r.user.LastReply()}
	if result.PlannerReply != nil && result.PlannerReply.IsTermination {
		result.Terminated = true
		return result, nil
	}

	for i := 0; i < r.maxSubTasks; i++ {
		subTask, err := r.planner.MoveToNextAgent()
		if errors.Is(err, agent.ErrPlanExhausted) {
			return result, nil
		}
		if err != nil {
			return result, err
		}
		if subTask == nil { // queue planners signal "no task" this way
			return result, nil
		}

		r.logger.Info("dispatching sub-task",
			"agent", subTask.Agent.Name(), "index", subTask.Index)

		prompt := core.NewMessage(core.RoleUser, subTask.Prompt)
		if err := r.user.Send(ctx, prompt, subTask.Agent); err != nil {
			return result, fmt.Errorf("dispatch to %s: %w", subTask.Agent.Name(), err)
		}
		result.SubTaskReplies = append(result.SubTaskReplies, r.user.LastReply())
	}
	return result, fmt.Errorf("run exceeded %d sub-tasks", r.maxSubTasks)
}
