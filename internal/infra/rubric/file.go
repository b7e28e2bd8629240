// Package rubric reads and writes rubric documents as YAML.
package rubric

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
)

// Decode parses a YAML rubric document. Unknown fields are rejected.
func Decode(r io.Reader) (domain.RubricDocument, error) {
	var doc domain.RubricDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return doc, fmt.Errorf("%w: empty document", domain.ErrInvalidRubric)
		}
		return doc, fmt.Errorf("decode rubric: %w", err)
	}
	return doc, nil
}

// Encode writes doc as YAML.
func Encode(w io.Writer, doc domain.RubricDocument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode rubric: %w", err)
	}
	return enc.Close()
}

// Marshal is Encode into a byte slice.
func Marshal(doc domain.RubricDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileSource loads a rubric from a local YAML file.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (domain.RubricDocument, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return domain.RubricDocument{}, fmt.Errorf("open rubric: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// DefaultSource serves the built-in rubric.
type DefaultSource struct{}

func (DefaultSource) Load(context.Context) (domain.RubricDocument, error) {
	return domain.DefaultDocument(), nil
}

// Compile loads a document from src and validates it.
func Compile(ctx context.Context, src domain.RubricSource) (*domain.Rubric, error) {
	doc, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewRubric(doc)
}
