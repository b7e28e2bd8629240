package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/bryanwahyu/scriptguard/internal/domain/review"
)

// DefaultBrand is the sponsor named in prompts when none is configured.
const DefaultBrand = "Milanote"

const formatRules = `
Format rules:
- Start each category with its header on its own line followed by a colon, exactly as named above.
- Keep every category in one paragraph and separate categories with a blank line.
- Inside a category use "Feedback:", "Severity:" and "Suggestions:" labels where they apply, with one suggestion per line.`

var templates = map[review.Category]string{
	review.BrandSafety: `Analyze the following script for brand safety concerns. This is critical as {{.Brand}} has strict content guidelines.

Check for ANY presence of:
1. Adult Content:
   - Explicit themes
   - Adult language
   - Inappropriate imagery references
   - Suggestive content

2. Political:
   - Politically polarizing topics
   - Controversial political statements
   - Political bias or advocacy
   - Divisive political commentary

3. Harassment:
   - Personal attacks
   - Targeted harassment
   - Negative comments about individuals/groups
   - Discriminatory language

4. Misinformation:
   - Unverified theories presented as facts
   - Conspiracy theories
   - Unsubstantiated claims
   - Misleading information

Script:
{{.Content}}

For each category:
1. Flag ANY presence of problematic content (even subtle references)
2. Mark severity (Low/Medium/High)
3. Quote specific problematic phrases or references
4. Indicate if the content is completely brand-safe or needs modification

This is a zero-tolerance check: any presence of these elements should result in immediate flagging.
` + formatRules,

	review.CoreRequirements: `Analyze the following script for how it introduces and describes {{.Brand}}.

Key aspects to evaluate:
1. Introduction:
   - Look for descriptions that convey {{.Brand}} is a tool for organizing creative projects
   - Accept variations that capture the same meaning (e.g. "platform for organizing creative work", "creative organization tool")
   - The core message should emphasize both "organizing" and "creative projects"

2. Product Description:
   - Should describe {{.Brand}} as an online canvas or workspace
   - Should cover planning and brainstorming, and collaboration with team members
   - Can be described in the creator's own words and style

Note: the script might not contain explicit screen direction cues like "[Screen: Show Logo]". Focus on the spoken narration.

Script:
{{.Content}}

Provide analysis of:
1. How effectively the script introduces {{.Brand}} (quote the relevant text)
2. Whether the core message is conveyed, even if using different phrasing
3. Explicitly state which key aspects are present or not
` + formatRules,

	review.ScriptFlow: `Analyze the following script for content flow and narrative structure.
Note: the script might not contain explicit screen directions. Focus on the narrative content.

Expected content elements (can be in any natural order):
1. Introduction
   - Should introduce the tool and its purpose

2. Personal Usage
   - Should describe how the creator uses {{.Brand}}
   - Should mention specific use cases or projects
   - Visual elements like board demonstrations may be implied in the narrative

3. Feature Descriptions
   - Should mention key features (templates, collaboration, etc.)
   - Should explain benefits in the creator's own style

4. Audience Benefits
   - Should explain how viewers can use {{.Brand}}
   - May highlight existing templates for different kinds of projects
   - Should mention different use cases or user types
   - Should mention how teams can collaborate and share work

5. Call to Action
   - Must encourage the audience to use {{.Brand}}
   - Must mention it's free
   - Must reference the sign-up process (not download)

Script:
{{.Content}}

Analyze:
1. Whether each key element is present in the narrative
2. How naturally the elements flow together
3. Whether the script feels authentic to the creator while covering key points
4. Any missing essential information
` + formatRules,

	review.AvoidedElements: `Review the following script for problematic elements, focusing on the actual content rather than formatting or screen directions.

Check for these issues while allowing for natural variation in expression:

1. Content Problems:
   - Too focused on YouTube-specific content
   - Missing essential information about {{.Brand}}
   - Incorrect feature descriptions
   - Confusing or misleading explanations

2. Tone:
   - Overly promotional language
   - Inauthentic or forced delivery
   - Too technical or complicated explanation

Script:
{{.Content}}

Provide:
1. Any identified issues that would hurt the effectiveness of the sponsorship
2. Whether the script maintains authenticity while meeting requirements
3. Suggestions for improvement that preserve the creator's voice
` + formatRules,
}

// Renderer builds category prompts. Templates are parsed once in New.
type Renderer struct {
	brand     string
	templates map[review.Category]*template.Template
}

// New parses every category template for brand.
func New(brand string) (*Renderer, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		brand = DefaultBrand
	}
	r := &Renderer{brand: brand, templates: make(map[review.Category]*template.Template, len(templates))}
	for c, text := range templates {
		tmpl, err := template.New(c.String()).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s prompt: %w", c, err)
		}
		r.templates[c] = tmpl
	}
	return r, nil
}

// Render implements review.Prompter. The script content is embedded verbatim.
func (r *Renderer) Render(c review.Category, content string) (string, error) {
	tmpl, ok := r.templates[c]
	if !ok {
		return "", fmt.Errorf("no prompt for category %q", c)
	}
	var b strings.Builder
	data := struct{ Brand, Content string }{Brand: r.brand, Content: content}
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", c, err)
	}
	return b.String(), nil
}
