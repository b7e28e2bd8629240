package review

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessBrandSafety_PoliticalClear(t *testing.T) {
	results, err := ProcessBrandSafety(DefaultRubric(), "Political: none detected. Severity: low.\n\n")
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "political", got.Criteria)
	assert.True(t, got.Passed)
	assert.Nil(t, got.Severity)
	assert.Nil(t, got.Suggestions)
	assert.Equal(t, "none detected. Severity: low.", got.Feedback)
}

func TestProcessBrandSafety_HarassmentFlagged(t *testing.T) {
	response := "Harassment: contains personal attack language. Severity: high. Suggestions: - Remove insult"

	results, err := ProcessBrandSafety(DefaultRubric(), response)
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "harassment", got.Criteria)
	assert.False(t, got.Passed)
	require.NotNil(t, got.Severity)
	assert.Equal(t, SeverityHigh, *got.Severity)
	assert.Equal(t, []string{"Remove insult"}, got.Suggestions)
}

func TestProcessBrandSafety_AllCategoriesInOrder(t *testing.T) {
	response := `Misinformation: None found.

Adult Content: None found.

Political: The script takes a controversial stance on elections.
Severity: High
Suggestions:
1. Remove the election segment

Harassment: None found.`

	results, err := ProcessBrandSafety(DefaultRubric(), response)
	require.NoError(t, err)
	require.Len(t, results, 4)

	var criteria []string
	for _, r := range results {
		criteria = append(criteria, r.Criteria)
	}
	assert.Equal(t, []string{"adult content", "political", "harassment", "misinformation"}, criteria)

	political := results[1]
	assert.False(t, political.Passed)
	assert.Equal(t, SeverityHigh, *political.Severity)
	assert.Equal(t, []string{"Remove the election segment"}, political.Suggestions)
	for _, i := range []int{0, 2, 3} {
		assert.True(t, results[i].Passed, results[i].Criteria)
	}
}

func TestProcessBrandSafety_DefaultSeverity(t *testing.T) {
	results, err := ProcessBrandSafety(DefaultRubric(), "Misinformation: repeats a conspiracy theory")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, SeverityMedium, *results[0].Severity)
	assert.NotNil(t, results[0].Suggestions)
	assert.Empty(t, results[0].Suggestions)
}

func TestProcessCoreRequirements(t *testing.T) {
	r := DefaultRubric()

	t.Run("both sections pass", func(t *testing.T) {
		response := "Introduction: The creator calls Milanote a tool for organizing creative projects.\n\n" +
			"Product Description: An online canvas for planning with team members."
		results, err := ProcessCoreRequirements(r, response)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "introduction", results[0].Criteria)
		assert.True(t, results[0].Passed)
		assert.Nil(t, results[0].Suggestions)
		assert.Equal(t, "product_description", results[1].Criteria)
		assert.True(t, results[1].Passed)
	})

	t.Run("keyword groups span introduction and description", func(t *testing.T) {
		response := "Introduction: A tool for organizing creative projects with your team members.\n\n" +
			"Product Description: A canvas for brainstorming."
		results, err := ProcessCoreRequirements(r, response)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.True(t, results[1].Passed)
	})

	t.Run("missing collaboration fails", func(t *testing.T) {
		response := "Introduction: A tool for organizing creative projects.\n\n" +
			"Product Description: An online canvas for planning.\nSuggestions:\n- Mention sharing with teammates"
		results, err := ProcessCoreRequirements(r, response)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.False(t, results[1].Passed)
		assert.Equal(t, []string{"Mention sharing with teammates"}, results[1].Suggestions)
	})

	t.Run("missing group without suggestions still yields a slice", func(t *testing.T) {
		results, err := ProcessCoreRequirements(r, "Product Description: a canvas for planning")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.NotNil(t, results[0].Suggestions)
	})

	t.Run("description alone uses empty introduction", func(t *testing.T) {
		results, err := ProcessCoreRequirements(r, "Product Description: a workspace for planning with collaborators")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "product_description", results[0].Criteria)
		assert.True(t, results[0].Passed)
	})

	t.Run("introduction mentioned without message", func(t *testing.T) {
		results, err := ProcessCoreRequirements(r, "The introduction is weak and vague")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "is weak and vague", results[0].Feedback)
	})

	t.Run("no headers", func(t *testing.T) {
		results, err := ProcessCoreRequirements(r, "Nothing useful here.")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestProcessScriptFlow(t *testing.T) {
	response := `Introduction: The script introduces the tool and its creative purpose.

Personal Usage: Missing. The creator never shows how they work.
Suggestions:
- Show a real example

Feature Descriptions: Mentions templates and how to collaborate.

Audience Benefits: Perfect for students and teams.

Call to Action: Sign up for free with the link in the description.`

	results, err := ProcessScriptFlow(DefaultRubric(), response)
	require.NoError(t, err)
	require.Len(t, results, 5)

	want := []struct {
		criteria string
		passed   bool
	}{
		{"introduction", true},
		{"personal usage", false},
		{"feature descriptions", true},
		{"audience benefits", true},
		{"Call to Action", true},
	}
	for i, w := range want {
		assert.Equal(t, w.criteria, results[i].Criteria)
		assert.Equal(t, w.passed, results[i].Passed, w.criteria)
		assert.Nil(t, results[i].Severity)
	}
	assert.Equal(t, []string{"Show a real example"}, results[1].Suggestions)
	assert.Nil(t, results[0].Suggestions)
}

func TestProcessScriptFlow_SkipsMissingSections(t *testing.T) {
	results, err := ProcessScriptFlow(DefaultRubric(), "Audience Benefits: designed for teachers")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "audience benefits", results[0].Criteria)
	assert.True(t, results[0].Passed)
}

func TestProcessAvoidedElements(t *testing.T) {
	response := `Content Problems: Incorrect description of the sharing feature.
Suggestions:
- Describe real-time sharing accurately

Tone: Authentic and friendly throughout.`

	results, err := ProcessAvoidedElements(DefaultRubric(), response)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "content problems", results[0].Criteria)
	assert.False(t, results[0].Passed)
	assert.Nil(t, results[0].Severity)
	assert.Equal(t, []string{"Describe real-time sharing accurately"}, results[0].Suggestions)

	assert.Equal(t, "tone", results[1].Criteria)
	assert.True(t, results[1].Passed)
	assert.Nil(t, results[1].Suggestions)
}

func TestProcessors_NilRubric(t *testing.T) {
	for _, c := range Categories() {
		p, ok := ProcessorFor(c)
		require.True(t, ok)
		_, err := p(nil, "Political: x")
		assert.ErrorIs(t, err, ErrNilRubric, c.String())
	}
	_, ok := ProcessorFor(Category(42))
	assert.False(t, ok)
}

func TestErrorResults(t *testing.T) {
	got := ErrorResults(ScriptFlow, errors.New("boom"))
	require.Len(t, got, 1)
	assert.Equal(t, CriteriaError, got[0].Criteria)
	assert.False(t, got[0].Passed)
	assert.Equal(t, "Error processing flow analysis: boom", got[0].Feedback)
	assert.Equal(t, []string{"Please review the script flow manually"}, got[0].Suggestions)
	assert.Nil(t, got[0].Severity)

	got = ErrorResults(BrandSafety, errors.New("bad"))
	assert.Equal(t, "Error processing brand safety analysis: bad", got[0].Feedback)
	assert.Equal(t, []string{"Please review script for brand safety manually"}, got[0].Suggestions)
}
