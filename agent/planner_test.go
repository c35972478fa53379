package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/model"
	"github.com/furrowlabs/furrow/plan"
)

const twoStepPlan = "<steps>" +
	"<step1><agent>Worker</agent><instruction>do the first thing</instruction></step1>" +
	"<step2><agent>Worker</agent><instruction>do the second thing</instruction></step2>" +
	"</steps>"

func newTestPlanner(backend model.Model, agents ...core.Agent) *Planner {
	if agents == nil {
		agents = []core.Agent{newStubAgent("Worker", "Does the work.", "done")}
	}
	return NewPlanner(agents, backend)
}

func TestPlanner_BuildsPlanAndWalksCursor(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script(twoStepPlan)
	p := newTestPlanner(backend)
	user := NewUserProxy(nil)

	err := user.Send(context.Background(), core.NewMessage(core.RoleUser, "get it done"), p)
	require.NoError(t, err)
	require.True(t, p.HasPlan())

	reply := user.LastReply()
	require.NotNil(t, reply)
	assert.False(t, reply.IsTermination)
	assert.Equal(t, twoStepPlan, reply.Content)

	first, err := p.MoveToNextAgent()
	require.NoError(t, err)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "Worker", first.Agent.Name())
	assert.Equal(t, "do the first thing", first.Prompt)

	second, err := p.MoveToNextAgent()
	require.NoError(t, err)
	assert.Equal(t, 1, second.Index)
	assert.Equal(t, "do the second thing", second.Prompt)

	_, err = p.MoveToNextAgent()
	assert.ErrorIs(t, err, ErrPlanExhausted)
}

func TestPlanner_ObjectiveThenFeedbackWrapping(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script(twoStepPlan, twoStepPlan)
	p := newTestPlanner(backend)
	user := NewUserProxy(nil)
	ctx := context.Background()

	require.NoError(t, user.Send(ctx, core.NewMessage(core.RoleUser, "first ask"), p))
	require.NoError(t, user.Send(ctx, core.NewMessage(core.RoleUser, "tweak it"), p))

	reqs := backend.Requests()
	require.Len(t, reqs, 2)

	// Every request starts with the system message advertising the agents.
	require.NotEmpty(t, reqs[0].Messages)
	assert.Equal(t, core.RoleSystem, reqs[0].Messages[0].Role)
	assert.Contains(t, reqs[0].Messages[0].Content, "Worker: Does the work.")

	assert.Equal(t, "<objective>first ask</objective>", reqs[0].Messages[1].Content)
	last := reqs[1].Messages[len(reqs[1].Messages)-1]
	assert.Equal(t, "<feedback>tweak it</feedback>", last.Content)
}

func TestPlanner_ReplanResetsCursor(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script(twoStepPlan, twoStepPlan)
	p := newTestPlanner(backend)
	user := NewUserProxy(nil)
	ctx := context.Background()

	require.NoError(t, user.Send(ctx, core.NewMessage(core.RoleUser, "objective"), p))
	first, err := p.MoveToNextAgent()
	require.NoError(t, err)
	assert.Equal(t, 0, first.Index)

	// Re-planning replaces the plan and restarts enumeration.
	require.NoError(t, user.Send(ctx, core.NewMessage(core.RoleUser, "feedback"), p))
	again, err := p.MoveToNextAgent()
	require.NoError(t, err)
	assert.Equal(t, 0, again.Index)
	assert.Equal(t, "do the first thing", again.Prompt)
}

func TestPlanner_UnknownAgentIsFatal(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("<steps><step1><agent>Ghost</agent><instruction>boo</instruction></step1></steps>")
	p := newTestPlanner(backend)
	user := NewUserProxy(nil)

	require.NoError(t, user.Send(context.Background(), core.NewMessage(core.RoleUser, "objective"), p))

	_, err := p.MoveToNextAgent()
	assert.ErrorIs(t, err, ErrUnknownAgent)
	assert.ErrorContains(t, err, "Ghost")
}

func TestPlanner_TerminationSkipsPlanning(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("All settled then. <exit>")
	p := newTestPlanner(backend)
	user := NewUserProxy(nil)

	require.NoError(t, user.Send(context.Background(), core.NewMessage(core.RoleUser, "objective"), p))

	reply := user.LastReply()
	require.NotNil(t, reply)
	assert.True(t, reply.IsTermination)
	assert.False(t, p.HasPlan())
}

func TestPlanner_NoEnvelopeIsFatal(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("I cannot plan this.")
	p := newTestPlanner(backend)
	user := NewUserProxy(nil)

	err := user.Send(context.Background(), core.NewMessage(core.RoleUser, "objective"), p)
	assert.ErrorIs(t, err, plan.ErrNoPlanFound)
}

func TestPlanner_MalformedEnvelopeDegradesToEmptyPlan(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("<steps><step1><agent>Worker</agent>")
	p := newTestPlanner(backend)
	user := NewUserProxy(nil)

	// The turn itself succeeds; the plan is just empty.
	require.NoError(t, user.Send(context.Background(), core.NewMessage(core.RoleUser, "objective"), p))
	assert.False(t, p.HasPlan())

	_, err := p.MoveToNextAgent()
	assert.ErrorIs(t, err, ErrPlanExhausted)
}

func TestPlanner_SendEmptyMessage(t *testing.T) {
	p := newTestPlanner(model.NewMockModel("m"))
	err := p.Send(context.Background(), nil, NewUserProxy(nil))
	assert.ErrorIs(t, err, core.ErrEmptyMessage)
}

func TestPlanner_SystemMessageListsAgentsAndSentinel(t *testing.T) {
	a := newStubAgent("Alpha", "First helper.", "")
	b := newStubAgent("Beta", "Second helper.", "")
	p := NewPlanner([]core.Agent{b, a}, model.NewMockModel("m"))

	system := p.SystemMessage()
	assert.Contains(t, system, "<agent>\nAlpha: First helper.\n</agent>")
	assert.Contains(t, system, "<agent>\nBeta: Second helper.\n</agent>")
	assert.Contains(t, system, core.TerminationToken)
}
