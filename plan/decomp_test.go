package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstructionTags(t *testing.T) {
	input := `Sure, here is the plan:
<instruction1>
Compute revenue per customer as sql1
</instruction1>
<instruction2>Join sql1 with customers. The final attributes should be region, revenue</instruction2>
Some trailing commentary the model added.`

	got := ParseInstructionTags(input)
	require.Len(t, got, 2)
	assert.Equal(t, "Compute revenue per customer as sql1", got[0])
	assert.Equal(t, "Join sql1 with customers. The final attributes should be region, revenue", got[1])
}

func TestParseInstructionTags_UnnumberedTags(t *testing.T) {
	got := ParseInstructionTags("<instruction>only step</instruction>")
	require.Len(t, got, 1)
	assert.Equal(t, "only step", got[0])
}

func TestParseInstructionTags_NoMatches(t *testing.T) {
	assert.Empty(t, ParseInstructionTags("no tags here"))
}

func TestParseNumberedSteps(t *testing.T) {
	input := "1. Compute total sales\n2. The final attributes should be total_sales"

	got, err := ParseNumberedSteps(input)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Compute total sales", got[0])
	assert.Equal(t, "The final attributes should be total_sales", got[1])
}

func TestParseNumberedSteps_MissingMarkerIsFatal(t *testing.T) {
	_, err := ParseNumberedSteps("- Compute total sales\n- Report it")
	assert.ErrorIs(t, err, ErrNoStepsFound)
}

func TestParseNumberedSteps_NumbersAreAuthoritative(t *testing.T) {
	// Items out of discovery order are re-emitted ascending by number.
	input := "1. first step\n3. third step\n2. second step"

	got, err := ParseNumberedSteps(input)
	require.NoError(t, err)
	require.Equal(t, []string{"first step", "second step", "third step"}, got)
}

func TestParseNumberedSteps_StripsEmphasisAndTrims(t *testing.T) {
	input := "Plan:\n1.  **Compute** the totals  \n2. Report **them**"

	got, err := ParseNumberedSteps(input)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Compute the totals", got[0])
	assert.Equal(t, "Report them", got[1])
}

func TestParseNumberedSteps_MultilineItems(t *testing.T) {
	input := "1. Compute totals\nacross all regions\n2. Report the result"

	got, err := ParseNumberedSteps(input)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Compute totals\nacross all regions", got[0])
}

func TestParseDecomposition_Dispatch(t *testing.T) {
	tagged, err := ParseDecomposition("<instruction1>a</instruction1>")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tagged)

	numbered, err := ParseDecomposition("1. a\n2. b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, numbered)

	_, err = ParseDecomposition("neither dialect")
	assert.ErrorIs(t, err, ErrNoStepsFound)
}
