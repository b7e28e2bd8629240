package review

import "context"

// Prompter renders the instruction sent for one category.
type Prompter interface {
	Render(c Category, content string) (string, error)
}

// RubricSource loads a rubric document from wherever it is kept.
type RubricSource interface {
	Load(ctx context.Context) (RubricDocument, error)
}
