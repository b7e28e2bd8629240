package review

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRubric is returned when a rubric document cannot be compiled.
var ErrInvalidRubric = errors.New("invalid rubric")

// Check identifies a single sub-check inside a category.
type Check int

const (
	AdultContent Check = iota
	Political
	Harassment
	Misinformation
	CoreIntroduction
	CoreProductDescription
	FlowIntroduction
	FlowPersonalUsage
	FlowFeatureDescriptions
	FlowAudienceBenefits
	FlowCallToAction
	ContentProblems
	Tone
)

type checkInfo struct {
	slug     string
	criteria string
	header   string
	category Category
}

var checks = [...]checkInfo{
	AdultContent:            {"adult_content", "adult content", "adult content", BrandSafety},
	Political:               {"political", "political", "political", BrandSafety},
	Harassment:              {"harassment", "harassment", "harassment", BrandSafety},
	Misinformation:          {"misinformation", "misinformation", "misinformation", BrandSafety},
	CoreIntroduction:        {"core_introduction", "introduction", "introduction", CoreRequirements},
	CoreProductDescription:  {"core_product_description", "product_description", "product description", CoreRequirements},
	FlowIntroduction:        {"introduction", "introduction", "introduction", ScriptFlow},
	FlowPersonalUsage:       {"personal_usage", "personal usage", "personal usage", ScriptFlow},
	FlowFeatureDescriptions: {"feature_descriptions", "feature descriptions", "feature descriptions", ScriptFlow},
	FlowAudienceBenefits:    {"audience_benefits", "audience benefits", "audience benefits", ScriptFlow},
	FlowCallToAction:        {"call_to_action", "Call to Action", "Call to Action", ScriptFlow},
	ContentProblems:         {"content_problems", "content problems", "content problems", AvoidedElements},
	Tone:                    {"tone", "tone", "tone", AvoidedElements},
}

// AllChecks returns every check in rubric order.
func AllChecks() []Check {
	out := make([]Check, len(checks))
	for i := range checks {
		out[i] = Check(i)
	}
	return out
}

// ChecksIn returns the checks of a category in evaluation order.
func ChecksIn(c Category) []Check {
	var out []Check
	for _, chk := range AllChecks() {
		if checks[chk].category == c {
			out = append(out, chk)
		}
	}
	return out
}

// ParseCheck resolves a slug such as "call_to_action".
func ParseCheck(slug string) (Check, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for i, info := range checks {
		if info.slug == slug {
			return Check(i), true
		}
	}
	return 0, false
}

func (c Check) valid() bool { return c >= 0 && int(c) < len(checks) }

// String returns the slug used in rubric documents.
func (c Check) String() string {
	if !c.valid() {
		return "unknown"
	}
	return checks[c].slug
}

// Criteria is the label reported in results.
func (c Check) Criteria() string {
	if !c.valid() {
		return ""
	}
	return checks[c].criteria
}

// Header is the section name searched for in the model response.
func (c Check) Header() string {
	if !c.valid() {
		return ""
	}
	return checks[c].header
}

// Category returns the category the check belongs to.
func (c Check) Category() Category {
	if !c.valid() {
		return -1
	}
	return checks[c].category
}

// Product description keyword groups. All three must match.
const (
	GroupCanvas        = "canvas"
	GroupPlanning      = "planning"
	GroupCollaboration = "collaboration"
)

var productGroups = []string{GroupCanvas, GroupPlanning, GroupCollaboration}

// RubricDocument is the serialized form of a rubric. Checks maps a check slug
// to its ordered trigger phrases.
type RubricDocument struct {
	Checks        map[string][]string `yaml:"checks" json:"checks"`
	ProductGroups []KeywordGroup      `yaml:"product_groups" json:"product_groups"`
}

// KeywordGroup is a named set of phrases of which any one satisfies the group.
type KeywordGroup struct {
	Name    string   `yaml:"name" json:"name"`
	Phrases []string `yaml:"phrases" json:"phrases"`
}

// Rubric is the compiled, read-only lookup used by the processors.
type Rubric struct {
	phrases map[Check][]string
	groups  map[string][]string
}

// NewRubric validates doc and compiles it. Phrases are lower-cased.
func NewRubric(doc RubricDocument) (*Rubric, error) {
	r := &Rubric{
		phrases: make(map[Check][]string, len(checks)),
		groups:  make(map[string][]string, len(productGroups)),
	}
	for slug, list := range doc.Checks {
		chk, ok := ParseCheck(slug)
		if !ok {
			return nil, fmt.Errorf("%w: unknown check %q", ErrInvalidRubric, slug)
		}
		if chk == CoreProductDescription {
			return nil, fmt.Errorf("%w: %q is configured through product_groups", ErrInvalidRubric, slug)
		}
		r.phrases[chk] = normalizePhrases(list)
	}
	for _, chk := range AllChecks() {
		if chk == CoreProductDescription {
			continue
		}
		if len(r.phrases[chk]) == 0 {
			return nil, fmt.Errorf("%w: check %q has no phrases", ErrInvalidRubric, chk)
		}
	}

	for _, g := range doc.ProductGroups {
		name := strings.ToLower(strings.TrimSpace(g.Name))
		if !isProductGroup(name) {
			return nil, fmt.Errorf("%w: unknown product group %q", ErrInvalidRubric, g.Name)
		}
		r.groups[name] = normalizePhrases(g.Phrases)
	}
	for _, name := range productGroups {
		if len(r.groups[name]) == 0 {
			return nil, fmt.Errorf("%w: product group %q has no phrases", ErrInvalidRubric, name)
		}
	}
	return r, nil
}

// DefaultRubric compiles DefaultDocument.
func DefaultRubric() *Rubric {
	r, err := NewRubric(DefaultDocument())
	if err != nil {
		panic(err)
	}
	return r
}

// Phrases returns the trigger phrases for chk.
func (r *Rubric) Phrases(chk Check) []string {
	return append([]string(nil), r.phrases[chk]...)
}

// Group returns the phrases of a product-description group.
func (r *Rubric) Group(name string) []string {
	return append([]string(nil), r.groups[name]...)
}

// Matches reports whether any phrase of chk occurs in text, ignoring case.
func (r *Rubric) Matches(chk Check, text string) bool {
	return containsAny(strings.ToLower(text), r.phrases[chk])
}

// Document converts the rubric back into its serialized form.
func (r *Rubric) Document() RubricDocument {
	doc := RubricDocument{Checks: make(map[string][]string, len(r.phrases))}
	for chk, list := range r.phrases {
		doc.Checks[chk.String()] = append([]string(nil), list...)
	}
	for _, name := range productGroups {
		doc.ProductGroups = append(doc.ProductGroups, KeywordGroup{Name: name, Phrases: r.Group(name)})
	}
	return doc
}

// CheckSectionRequirements reports whether a narrative-flow section mentions
// at least one of its required phrases. Sections without requirements pass.
func CheckSectionRequirements(r *Rubric, section Check, text string) bool {
	if section.Category() != ScriptFlow {
		return true
	}
	list, ok := r.phrases[section]
	if !ok || len(list) == 0 {
		return true
	}
	return containsAny(strings.ToLower(text), list)
}

// DefaultDocument is the built-in rubric.
func DefaultDocument() RubricDocument {
	return RubricDocument{
		Checks: map[string][]string{
			"adult_content":        {"explicit", "inappropriate"},
			"political":            {"political", "polarizing", "controversial"},
			"harassment":           {"personal attack", "discriminatory"},
			"misinformation":       {"unverified", "conspiracy", "misleading"},
			"core_introduction":    {"tool for organizing", "creative organization", "organize creative", "creative projects"},
			"introduction":         {"tool", "creative", "projects"},
			"personal_usage":       {"using", "project", "board"},
			"feature_descriptions": {"template", "collaborate", "organize"},
			"audience_benefits":    {"can use", "perfect for", "designed for"},
			"call_to_action":       {"free", "sign up", "description"},
			"content_problems":     {"missing", "incorrect", "confusing"},
			"tone":                 {"promotional", "inauthentic", "technical"},
		},
		ProductGroups: []KeywordGroup{
			{Name: GroupCanvas, Phrases: []string{"canvas", "workspace", "mind map", "plan"}},
			{Name: GroupPlanning, Phrases: []string{"planning", "brainstorming", "organizing"}},
			{Name: GroupCollaboration, Phrases: []string{"collab", "team work", "members"}},
		},
	}
}

func isProductGroup(name string) bool {
	for _, g := range productGroups {
		if g == name {
			return true
		}
	}
	return false
}

func normalizePhrases(list []string) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// containsAny expects lower-cased input on both sides.
func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
