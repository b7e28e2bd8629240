package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSection(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		section string
		want    string
	}{
		{"upper case header", "INTRODUCTION:\nfoo\n\n", "introduction", "foo"},
		{"exact header", "tone: calm and honest\n\nnext", "tone", "calm and honest"},
		{"stops at blank line", "Tone: first\nsecond\n\nThird: no", "tone", "first\nsecond"},
		{"header without colon", "Tone is fine today", "tone", "is fine today"},
		{"colon variants win over bare ones", "tone\nbare\n\nTone: colon", "tone", "colon"},
		{"title case of every word", "Call To Action: sign up free", "Call to Action", "sign up free"},
		{"missing section", "nothing to see", "political", ""},
		{"empty text", "", "political", ""},
		{"empty name", "Political: yes", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSection(tt.text, tt.section))
		})
	}
}

func TestExtractSection_Idempotent(t *testing.T) {
	text := "Political: none detected.\n\nHarassment: none."
	first := ExtractSection(text, "political")
	assert.Equal(t, first, ExtractSection(text, "political"))
	assert.Equal(t, "none detected.", first)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Adult Content", titleCase("adult content"))
	assert.Equal(t, "Call To Action", titleCase("Call to Action"))
	assert.Equal(t, "Product_Description", titleCase("PRODUCT_DESCRIPTION"))
}

func TestExtractFeedback(t *testing.T) {
	assert.Equal(t, "Looks good", ExtractFeedback("Feedback: Looks good\nSuggestions: none"))
	assert.Equal(t, "upper", ExtractFeedback("FEEDBACK:   upper\nmore"))
	assert.Equal(t, "plain text", ExtractFeedback("  plain text  "))
	assert.Equal(t, "", ExtractFeedback("feedback:"))
	assert.Equal(t, "", ExtractFeedback(""))
}

func TestExtractSuggestions(t *testing.T) {
	t.Run("strips bullets and numbering", func(t *testing.T) {
		got := ExtractSuggestions("suggestions:\n1. Add a title\n- Fix pacing\n")
		assert.Equal(t, []string{"Add a title", "Fix pacing"}, got)
	})

	t.Run("mixed bullets and repeated label", func(t *testing.T) {
		got := ExtractSuggestions("Suggestions:\n• Keep it short\n* Mention free plan\nSuggestions:\n3) Link it")
		assert.Equal(t, []string{"Keep it short", "Mention free plan", "Link it"}, got)
	})

	t.Run("same line", func(t *testing.T) {
		assert.Equal(t, []string{"Remove insult"}, ExtractSuggestions("Suggestions: - Remove insult"))
	})

	t.Run("bullet only lines are dropped", func(t *testing.T) {
		got := ExtractSuggestions("Suggestions:\n---\n\n")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("no marker", func(t *testing.T) {
		got := ExtractSuggestions("nothing here")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestExtractSeverity(t *testing.T) {
	tests := []struct {
		text string
		want Severity
	}{
		{"no marker at all", SeverityMedium},
		{"Severity: High", SeverityHigh},
		{"severity: low.", SeverityLow},
		{"severity: critical", SeverityMedium},
		{"Severity: high. Suggestions: - Remove insult", SeverityHigh},
		{"Severity:\nhigh", SeverityMedium},
		{"SEVERITY: medium\nSeverity: low", SeverityMedium},
		{"", SeverityMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractSeverity(tt.text), tt.text)
	}
}

func TestIndexFold(t *testing.T) {
	assert.Equal(t, 4, indexFold("abc Feedback: x", "feedback:"))
	assert.Equal(t, -1, indexFold("short", "feedback:"))
	assert.Equal(t, 5, indexFold("İİ Severity: low", "severity:"))
}
