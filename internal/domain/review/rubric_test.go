package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRubric(t *testing.T) {
	r := DefaultRubric()

	assert.Equal(t, []string{"political", "polarizing", "controversial"}, r.Phrases(Political))
	assert.Equal(t, []string{"collab", "team work", "members"}, r.Group(GroupCollaboration))
	assert.Empty(t, r.Phrases(CoreProductDescription))
}

func TestNewRubric_NormalizesPhrases(t *testing.T) {
	doc := DefaultDocument()
	doc.Checks["adult_content"] = []string{"  EXPLICIT ", "", "Inappropriate"}

	r, err := NewRubric(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"explicit", "inappropriate"}, r.Phrases(AdultContent))
	assert.True(t, r.Matches(AdultContent, "Contains EXPLICIT themes"))
}

func TestNewRubric_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RubricDocument)
	}{
		{"unknown check", func(d *RubricDocument) { d.Checks["weather"] = []string{"rain"} }},
		{"empty check", func(d *RubricDocument) { d.Checks["tone"] = []string{" "} }},
		{"missing check", func(d *RubricDocument) { delete(d.Checks, "political") }},
		{"product description as check", func(d *RubricDocument) { d.Checks["core_product_description"] = []string{"canvas"} }},
		{"unknown group", func(d *RubricDocument) {
			d.ProductGroups = append(d.ProductGroups, KeywordGroup{Name: "pricing", Phrases: []string{"free"}})
		}},
		{"missing group", func(d *RubricDocument) { d.ProductGroups = d.ProductGroups[:2] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := DefaultDocument()
			tt.mutate(&doc)
			_, err := NewRubric(doc)
			assert.ErrorIs(t, err, ErrInvalidRubric)
		})
	}
}

func TestRubric_DocumentRoundTrip(t *testing.T) {
	r := DefaultRubric()
	again, err := NewRubric(r.Document())
	require.NoError(t, err)
	for _, chk := range AllChecks() {
		assert.Equal(t, r.Phrases(chk), again.Phrases(chk), chk.String())
	}
}

func TestChecks(t *testing.T) {
	chk, ok := ParseCheck("call_to_action")
	require.True(t, ok)
	assert.Equal(t, FlowCallToAction, chk)
	assert.Equal(t, "Call to Action", chk.Criteria())
	assert.Equal(t, ScriptFlow, chk.Category())

	_, ok = ParseCheck("nope")
	assert.False(t, ok)

	assert.Equal(t, []Check{AdultContent, Political, Harassment, Misinformation}, ChecksIn(BrandSafety))
	assert.Equal(t, "product_description", CoreProductDescription.Criteria())
	assert.Equal(t, "product description", CoreProductDescription.Header())
	assert.Equal(t, "unknown", Check(99).String())
}

func TestCheckSectionRequirements(t *testing.T) {
	r := DefaultRubric()

	assert.True(t, CheckSectionRequirements(r, FlowPersonalUsage, "I keep my project BOARD open"))
	assert.False(t, CheckSectionRequirements(r, FlowPersonalUsage, "nothing relevant"))
	assert.True(t, CheckSectionRequirements(r, FlowCallToAction, "Sign up today"))
	assert.True(t, CheckSectionRequirements(r, Political, "no requirements apply"))
	assert.True(t, CheckSectionRequirements(r, Check(99), "unknown section"))
}
