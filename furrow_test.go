package furrow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furrowlabs/furrow/config"
	"github.com/furrowlabs/furrow/database"
	"github.com/furrowlabs/furrow/model"
)

func TestNew_Defaults(t *testing.T) {
	f, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, "mock", f.Backend().Info().Provider)
	require.NotNil(t, f.Planner())
	require.NotNil(t, f.Decomposer())

	// The decomposer is registered as the planner's only worker.
	agents := f.Planner().AvailableAgents()
	require.Len(t, agents, 1)
	_, ok := agents["SQLDecomposer"]
	assert.True(t, ok)
}

func TestNew_UnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Model.Provider = "cohere"
	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cohere")
}

func TestPlan_EndToEnd(t *testing.T) {
	backend := model.NewMockModel("scripted")
	backend.Script(
		"<steps><step1><agent>SQLDecomposer</agent><instruction>answer the revenue question</instruction></step1></steps>",
		"<instruction1>compute revenue per region</instruction1><instruction2>order by revenue. The final attributes should be region, revenue</instruction2>",
	)

	db := &database.Database{
		Name: "shop",
		Tables: []database.Table{
			{Name: "orders", Columns: []database.Column{
				{Name: "region", Type: "TEXT"},
				{Name: "amount", Type: "REAL"},
			}},
		},
	}

	f, err := New(nil, func(o *Options) {
		o.Backend = backend
		o.Database = db
	})
	require.NoError(t, err)

	result, err := f.Plan(context.Background(), "Revenue per region, highest first?")
	require.NoError(t, err)
	assert.False(t, result.Terminated)

	// The planner's lone sub-task is answered by the decomposer, which only
	// enqueues; its own queue is drained separately.
	require.Len(t, result.SubTaskReplies, 1)
	assert.Equal(t, 2, f.Decomposer().QueueLen())

	first, err := f.Decomposer().MoveToNextAgent()
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "SQLGenerator", first.Agent.Name())
	assert.Equal(t, "compute revenue per region", first.Prompt)
}
