package review

import (
	"strings"
	"time"
)

// Category is one of the four top-level rubric dimensions.
type Category int

const (
	BrandSafety Category = iota
	CoreRequirements
	ScriptFlow
	AvoidedElements
)

var categoryLabels = [...]string{
	BrandSafety:      "brand safety",
	CoreRequirements: "core requirements",
	ScriptFlow:       "script flow",
	AvoidedElements:  "avoided elements",
}

// Categories returns every category in report order.
func Categories() []Category {
	return []Category{BrandSafety, CoreRequirements, ScriptFlow, AvoidedElements}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryLabels) {
		return "unknown"
	}
	return categoryLabels[c]
}

// Severity enum
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity reports whether s names a known severity level.
func ParseSeverity(s string) (Severity, bool) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return sev, true
	default:
		return "", false
	}
}

// Status enum
type Status string

const (
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Result is one evaluated criterion. Suggestions and Severity stay nil unless
// the processor produced them.
type Result struct {
	Criteria    string    `json:"criteria"`
	Passed      bool      `json:"passed"`
	Feedback    string    `json:"feedback"`
	Suggestions []string  `json:"suggestions"`
	Severity    *Severity `json:"severity"`
}

// Report groups results per category. Field order is the serialized key order.
type Report struct {
	BrandSafety      []Result `json:"brand safety"`
	CoreRequirements []Result `json:"core requirements"`
	ScriptFlow       []Result `json:"script flow"`
	AvoidedElements  []Result `json:"avoided elements"`
}

// Results returns the results recorded for c.
func (r *Report) Results(c Category) []Result {
	if slot := r.slot(c); slot != nil {
		return *slot
	}
	return nil
}

// Set replaces the results recorded for c.
func (r *Report) Set(c Category, results []Result) {
	if slot := r.slot(c); slot != nil {
		*slot = results
	}
}

func (r *Report) slot(c Category) *[]Result {
	switch c {
	case BrandSafety:
		return &r.BrandSafety
	case CoreRequirements:
		return &r.CoreRequirements
	case ScriptFlow:
		return &r.ScriptFlow
	case AvoidedElements:
		return &r.AvoidedElements
	default:
		return nil
	}
}

// Verdict derives the overall status: any failed brand-safety result rejects
// the whole submission, nothing else does.
func Verdict(r Report) Status {
	for _, res := range r.BrandSafety {
		if !res.Passed {
			return StatusRejected
		}
	}
	return StatusApproved
}

// Analysis is the orchestrator output.
type Analysis struct {
	Status  Status `json:"status"`
	Details Report `json:"details"`
}

// Submission is a script under review. It is never persisted.
type Submission struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	CreatorName string    `json:"creator_name"`
	BriefType   string    `json:"brief_type,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}
