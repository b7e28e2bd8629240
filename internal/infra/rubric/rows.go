package rubric

import (
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
)

// GroupPrefix marks product-group rows in a phrase table.
const GroupPrefix = "group:"

// Row is one phrase of a tabular rubric, such as the rubric_phrases table.
type Row struct {
	Key      string
	Phrase   string
	Position int
}

// FromRows assembles a document from rows already sorted by key and position.
func FromRows(rows []Row) (domain.RubricDocument, error) {
	doc := domain.RubricDocument{Checks: map[string][]string{}}
	groupIndex := map[string]int{}

	for _, row := range rows {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			return doc, fmt.Errorf("%w: row with empty key", domain.ErrInvalidRubric)
		}
		if name, ok := strings.CutPrefix(key, GroupPrefix); ok {
			i, seen := groupIndex[name]
			if !seen {
				i = len(doc.ProductGroups)
				groupIndex[name] = i
				doc.ProductGroups = append(doc.ProductGroups, domain.KeywordGroup{Name: name})
			}
			doc.ProductGroups[i].Phrases = append(doc.ProductGroups[i].Phrases, row.Phrase)
			continue
		}
		doc.Checks[key] = append(doc.Checks[key], row.Phrase)
	}
	return doc, nil
}

// ToRows flattens doc in a stable order: checks in evaluation order, then
// product groups.
func ToRows(doc domain.RubricDocument) []Row {
	var rows []Row
	for _, chk := range domain.AllChecks() {
		for i, p := range doc.Checks[chk.String()] {
			rows = append(rows, Row{Key: chk.String(), Phrase: p, Position: i})
		}
	}
	for _, g := range doc.ProductGroups {
		for i, p := range g.Phrases {
			rows = append(rows, Row{Key: GroupPrefix + g.Name, Phrase: p, Position: i})
		}
	}
	return rows
}
