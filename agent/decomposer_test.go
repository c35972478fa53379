package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/database"
	"github.com/furrowlabs/furrow/model"
	"github.com/furrowlabs/furrow/plan"
)

var testSchema = &database.Database{
	Name: "shop",
	Tables: []database.Table{
		{Name: "orders", Columns: []database.Column{
			{Name: "id", Type: "INTEGER", PrimaryKey: true},
			{Name: "amount", Type: "REAL"},
		}},
	},
}

func okExecutor(name string) *AttemptExecutor {
	return NewAttemptExecutor(name, func(_ context.Context, _ []*core.Message) (*core.Message, error) {
		return core.NewMessage(core.RoleAssistant, "valid"), nil
	})
}

func TestDecomposer_EnqueuesParsedInstructions(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("<instruction1>compute sql1</instruction1><instruction2>join sql1. The final attributes should be region, revenue</instruction2>")
	d := NewDecomposer(backend, testSchema, nil)
	user := NewUserProxy(nil)

	require.NoError(t, user.Send(context.Background(), core.NewMessage(core.RoleUser, "revenue per region?"), d))
	require.Equal(t, 2, d.QueueLen())

	first, err := d.MoveToNextAgent()
	require.NoError(t, err)
	assert.Equal(t, "SQLGenerator", first.Agent.Name())
	assert.Equal(t, "compute sql1", first.Prompt)

	second, err := d.MoveToNextAgent()
	require.NoError(t, err)
	assert.Equal(t, "join sql1. The final attributes should be region, revenue", second.Prompt)

	// Empty queue is a normal "no task" result, not an error.
	none, err := d.MoveToNextAgent()
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDecomposer_SystemMessageEmbedsSchema(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("<instruction1>anything</instruction1>")
	d := NewDecomposer(backend, testSchema, nil)
	user := NewUserProxy(nil)

	require.NoError(t, user.Send(context.Background(), core.NewMessage(core.RoleUser, "question"), d))

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, core.RoleSystem, reqs[0].Messages[0].Role)
	assert.Contains(t, reqs[0].Messages[0].Content, "Table: orders")
	assert.Contains(t, reqs[0].Messages[0].Content, "- amount (REAL)")
}

func TestDecomposer_SingleStepCollapseKeepsOriginalRequest(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("<instruction1>Return everything</instruction1>")
	d := NewDecomposer(backend, testSchema, nil)
	user := NewUserProxy(nil)

	require.NoError(t, user.Send(context.Background(), core.NewMessage(core.RoleUser, "What is total revenue?"), d))

	subTask, err := d.MoveToNextAgent()
	require.NoError(t, err)
	require.NotNil(t, subTask)
	assert.Equal(t, "What is total revenue?", subTask.Prompt)
}

func TestDecomposer_NumberedDialect(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("1. Compute total sales\n2. The final attributes should be total_sales")
	d := NewDecomposer(backend, testSchema, nil)
	user := NewUserProxy(nil)

	require.NoError(t, user.Send(context.Background(), core.NewMessage(core.RoleUser, "total sales?"), d))
	assert.Equal(t, 2, d.QueueLen())
}

func TestDecomposer_UnparsableDecompositionIsFatal(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("I would rather chat about the weather.")
	d := NewDecomposer(backend, testSchema, nil)
	user := NewUserProxy(nil)

	err := user.Send(context.Background(), core.NewMessage(core.RoleUser, "question"), d)
	assert.ErrorIs(t, err, plan.ErrNoStepsFound)
}

func TestDecomposer_Termination(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("<exit>")
	d := NewDecomposer(backend, testSchema, nil)
	user := NewUserProxy(nil)

	require.NoError(t, user.Send(context.Background(), core.NewMessage(core.RoleUser, "question"), d))
	reply := user.LastReply()
	require.NotNil(t, reply)
	assert.True(t, reply.IsTermination)
	assert.Equal(t, 0, d.QueueLen())
}

func TestDecomposer_PopResetsOnlyTargetExecutors(t *testing.T) {
	backend := model.NewMockModel("m")
	backend.Script("<instruction1>step for A</instruction1><instruction2>another for A</instruction2>")

	exA := okExecutor("ValidatorA")
	exB := okExecutor("ValidatorB")
	genA := NewSQLGenerator(backend, testSchema, func(o *SQLGeneratorOptions) {
		o.Name = "GenA"
		o.Executors = []core.Executor{exA}
	})
	genB := NewSQLGenerator(backend, testSchema, func(o *SQLGeneratorOptions) {
		o.Name = "GenB"
		o.Executors = []core.Executor{exB}
	})

	d := NewDecomposer(backend, testSchema, []core.Agent{genA, genB}, func(o *DecomposerOptions) {
		o.GeneratorAgent = "GenA"
	})
	user := NewUserProxy(nil)
	ctx := context.Background()
	require.NoError(t, user.Send(ctx, core.NewMessage(core.RoleUser, "question"), d))

	// Burn attempts on both executors.
	for i := 0; i < 2; i++ {
		_, err := exA.GenerateReply(ctx, nil, user)
		require.NoError(t, err)
		_, err = exB.GenerateReply(ctx, nil, user)
		require.NoError(t, err)
	}
	require.Equal(t, 2, exA.Attempts())
	require.Equal(t, 2, exB.Attempts())

	subTask, err := d.MoveToNextAgent()
	require.NoError(t, err)
	require.Equal(t, "GenA", subTask.Agent.Name())

	assert.Equal(t, 0, exA.Attempts(), "popped target's executors must be reset")
	assert.Equal(t, 2, exB.Attempts(), "unrelated agent's executors must be untouched")
}

func TestDecomposer_PassthroughWithoutBackend(t *testing.T) {
	gen := NewSQLGenerator(nil, testSchema)
	d := NewDecomposer(nil, testSchema, []core.Agent{gen})
	user := NewUserProxy(nil)

	require.NoError(t, user.Send(context.Background(), core.NewMessage(core.RoleUser, "Get all users"), d))

	reply := user.LastReply()
	require.NotNil(t, reply)
	assert.Equal(t,
		"<steps><step1><agent>SQLGenerator</agent><instruction>Get all users</instruction></step1></steps>",
		reply.Content)

	subTask, err := d.MoveToNextAgent()
	require.NoError(t, err)
	require.NotNil(t, subTask)
	assert.Equal(t, "SQLGenerator", subTask.Agent.Name())
	assert.Equal(t, "Get all users", subTask.Prompt)
}

func TestDecomposer_PassthroughAmbiguousAgents(t *testing.T) {
	agents := []core.Agent{
		newStubAgent("One", "first", ""),
		newStubAgent("Two", "second", ""),
	}
	d := NewDecomposer(nil, testSchema, agents)
	user := NewUserProxy(nil)

	err := user.Send(context.Background(), core.NewMessage(core.RoleUser, "anything"), d)
	assert.ErrorIs(t, err, ErrAmbiguousAgents)
}

func TestDecomposer_DefaultGeneratorCreated(t *testing.T) {
	d := NewDecomposer(model.NewMockModel("m"), testSchema, nil)
	agents := d.AvailableAgents()
	require.Len(t, agents, 1)
	_, ok := agents["SQLGenerator"]
	assert.True(t, ok)
}
