package review

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilRubric is returned by processors called without a rubric.
var ErrNilRubric = errors.New("rubric is nil")

// Processor interprets one free-text model response for a category.
type Processor func(r *Rubric, response string) ([]Result, error)

// ProcessorFor returns the built-in processor of a category.
func ProcessorFor(c Category) (Processor, bool) {
	switch c {
	case BrandSafety:
		return ProcessBrandSafety, true
	case CoreRequirements:
		return ProcessCoreRequirements, true
	case ScriptFlow:
		return ProcessScriptFlow, true
	case AvoidedElements:
		return ProcessAvoidedElements, true
	default:
		return nil, false
	}
}

// ProcessBrandSafety fails a brand-safety check as soon as any of its phrases
// shows up in its section. Failing checks carry severity and suggestions.
func ProcessBrandSafety(r *Rubric, response string) ([]Result, error) {
	if r == nil {
		return nil, ErrNilRubric
	}
	results := []Result{}
	for _, chk := range ChecksIn(BrandSafety) {
		section := ExtractSection(response, chk.Header())
		if section == "" {
			continue
		}
		res := Result{
			Criteria: chk.Criteria(),
			Passed:   !r.Matches(chk, section),
			Feedback: ExtractFeedback(section),
		}
		if !res.Passed {
			sev := ExtractSeverity(section)
			res.Severity = &sev
			res.Suggestions = ExtractSuggestions(section)
		}
		results = append(results, res)
	}
	return results, nil
}

// ProcessCoreRequirements inspects the introduction and product description.
// Each is evaluated only when its header appears somewhere in the response.
// The product description is satisfied when every keyword group matches in
// either the description or the introduction text.
func ProcessCoreRequirements(r *Rubric, response string) ([]Result, error) {
	if r == nil {
		return nil, ErrNilRubric
	}
	results := []Result{}
	lower := strings.ToLower(response)

	intro := ""
	if strings.Contains(lower, CoreIntroduction.Header()) {
		intro = ExtractSection(response, CoreIntroduction.Header())
		results = append(results, buildResult(CoreIntroduction, r.Matches(CoreIntroduction, intro), intro))
	}

	if strings.Contains(lower, CoreProductDescription.Header()) {
		desc := ExtractSection(response, CoreProductDescription.Header())
		combined := strings.ToLower(desc + "\n" + intro)
		passed := true
		for _, name := range productGroups {
			if !containsAny(combined, r.groups[name]) {
				passed = false
				break
			}
		}
		results = append(results, buildResult(CoreProductDescription, passed, desc))
	}
	return results, nil
}

// ProcessScriptFlow validates each narrative section against its requirements.
func ProcessScriptFlow(r *Rubric, response string) ([]Result, error) {
	if r == nil {
		return nil, ErrNilRubric
	}
	results := []Result{}
	for _, chk := range ChecksIn(ScriptFlow) {
		section := ExtractSection(response, chk.Header())
		if section == "" {
			continue
		}
		results = append(results, buildResult(chk, CheckSectionRequirements(r, chk, section), section))
	}
	return results, nil
}

// ProcessAvoidedElements applies the fail-on-any-phrase rule without severity.
func ProcessAvoidedElements(r *Rubric, response string) ([]Result, error) {
	if r == nil {
		return nil, ErrNilRubric
	}
	results := []Result{}
	for _, chk := range ChecksIn(AvoidedElements) {
		section := ExtractSection(response, chk.Header())
		if section == "" {
			continue
		}
		results = append(results, buildResult(chk, !r.Matches(chk, section), section))
	}
	return results, nil
}

func buildResult(chk Check, passed bool, section string) Result {
	res := Result{
		Criteria: chk.Criteria(),
		Passed:   passed,
		Feedback: ExtractFeedback(section),
	}
	if !passed {
		res.Suggestions = ExtractSuggestions(section)
	}
	return res
}

// CriteriaError is the criteria label of a synthetic failure result.
const CriteriaError = "error"

var errorText = map[Category]struct{ subject, suggestion string }{
	BrandSafety:      {"brand safety analysis", "Please review script for brand safety manually"},
	CoreRequirements: {"core requirements analysis", "Please review the presence of core requirements manually"},
	ScriptFlow:       {"flow analysis", "Please review the script flow manually"},
	AvoidedElements:  {"avoided elements analysis", "Please review the presence of elements to be avoided manually"},
}

// ErrorResults replaces the output of a category whose processor failed.
func ErrorResults(c Category, err error) []Result {
	text, ok := errorText[c]
	if !ok {
		text.subject = c.String() + " analysis"
		text.suggestion = "Please review the script manually"
	}
	return []Result{{
		Criteria:    CriteriaError,
		Passed:      false,
		Feedback:    fmt.Sprintf("Error processing %s: %v", text.subject, err),
		Suggestions: []string{text.suggestion},
	}}
}
