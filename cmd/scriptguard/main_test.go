package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/scriptguard/internal/config"
	"github.com/bryanwahyu/scriptguard/internal/domain/ai"
	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
	"github.com/bryanwahyu/scriptguard/internal/infra/rubric"
)

// scriptedCompleter answers by the category named in the prompt.
type scriptedCompleter struct{ brand string }

func (s scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Adult Content"):
		return s.brand, nil
	case strings.Contains(prompt, "Product Description"):
		return "Introduction: a tool for organizing creative projects.", nil
	case strings.Contains(prompt, "Call to Action"):
		return "Call to Action: sign up for free.", nil
	default:
		return "Tone: Friendly.", nil
	}
}

func runCLI(t *testing.T, brand string, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0o600))

	ctx := newCommandContext()
	ctx.newCompleter = func(config.OpenAIConfig) ai.Completer { return scriptedCompleter{brand: brand} }

	var out bytes.Buffer
	cmd := newRootCommand(ctx)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hey folks, this video is sponsored by Milanote."), 0o600))
	return path
}

func TestAnalyze_ApprovedTable(t *testing.T) {
	out, err := runCLI(t, "Political: None found.", "analyze", writeScript(t), "--creator", "ani")
	require.NoError(t, err)

	assert.Contains(t, out, "APPROVED: Script passed all checks and is approved for use.")
	assert.Contains(t, out, "brand safety")
	assert.Contains(t, out, "Call to Action")
}

func TestAnalyze_RejectedJSON(t *testing.T) {
	out, err := runCLI(t, "Political: polarizing remarks. Severity: medium.", "analyze", writeScript(t), "--creator", "ani", "--json")
	assert.ErrorIs(t, err, errRejected)

	var env struct {
		StatusCode int `json:"statusCode"`
		Body       struct {
			Status  string        `json:"status"`
			Details domain.Report `json:"details"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, 200, env.StatusCode)
	assert.Equal(t, "REJECTED", env.Body.Status)
	require.Len(t, env.Body.Details.BrandSafety, 1)
	assert.Equal(t, "political", env.Body.Details.BrandSafety[0].Criteria)
}

func TestAnalyze_MissingCreatorFlag(t *testing.T) {
	_, err := runCLI(t, "", "analyze", writeScript(t))
	assert.ErrorContains(t, err, "creator")
}

func TestRubricExport(t *testing.T) {
	out, err := runCLI(t, "", "rubric", "export")
	require.NoError(t, err)

	doc, err := rubric.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRubric().Document(), doc)

	target := filepath.Join(t.TempDir(), "rubric.yaml")
	out, err = runCLI(t, "", "rubric", "export", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote rubric to")
	_, err = os.Stat(target)
	assert.NoError(t, err)
}

func TestRubricPush_UnknownTarget(t *testing.T) {
	_, err := runCLI(t, "", "rubric", "push", "--target", "s3")
	assert.ErrorContains(t, err, "unknown push target")
}
