package middleware

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Submission limits.
const (
	MaxContentBytes    = 50_000
	MaxCreatorLength   = 128
	MaxBriefTypeLength = 64
)

var (
	// ErrMissingField is returned when content or creator name is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrFieldTooLong is returned when a field exceeds its limit.
	ErrFieldTooLong = errors.New("field too long")
	// ErrInvalidField is returned for fields with a malformed value.
	ErrInvalidField = errors.New("invalid field")
)

var briefTypePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// SubmissionInput is the raw, client-supplied part of a review request.
type SubmissionInput struct {
	Content     string
	CreatorName string
	BriefType   string
}

// ValidateSubmission sanitizes in and checks the required fields and limits.
// The returned value is the sanitized input.
func ValidateSubmission(in SubmissionInput) (SubmissionInput, error) {
	out := SubmissionInput{
		Content:     SanitizeString(in.Content),
		CreatorName: SanitizeString(in.CreatorName),
		BriefType:   SanitizeString(in.BriefType),
	}

	if out.Content == "" || out.CreatorName == "" {
		return out, ErrMissingField
	}
	if len(out.Content) > MaxContentBytes {
		return out, fmt.Errorf("%w: content exceeds %d bytes", ErrFieldTooLong, MaxContentBytes)
	}
	if utf8.RuneCountInString(out.CreatorName) > MaxCreatorLength {
		return out, fmt.Errorf("%w: creator name exceeds %d characters", ErrFieldTooLong, MaxCreatorLength)
	}
	if err := ValidateBriefType(out.BriefType); err != nil {
		return out, err
	}
	return out, nil
}

// ValidateBriefType accepts an empty value or a short slug.
func ValidateBriefType(briefType string) error {
	if briefType == "" {
		return nil
	}
	if len(briefType) > MaxBriefTypeLength || !briefTypePattern.MatchString(briefType) {
		return fmt.Errorf("%w: brief type must be alphanumeric, dash or underscore (max %d chars)", ErrInvalidField, MaxBriefTypeLength)
	}
	return nil
}

// SanitizeString drops control characters other than tab and newline and
// trims surrounding whitespace. Carriage returns are removed so CRLF scripts
// read the same as LF ones.
func SanitizeString(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r == utf8.RuneError {
			continue
		}
		if (r >= 32 && r != 0x7f) || r == '\t' || r == '\n' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
