package rubric

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
)

func TestEncodeDecode_DefaultDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, domain.DefaultDocument()))
	assert.Contains(t, buf.String(), "product_groups:")
	assert.Contains(t, buf.String(), "call_to_action:")

	doc, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDocument(), doc)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidRubric)

	_, err = Decode(strings.NewReader("checks: {}\nextra: true\n"))
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	raw, err := Marshal(domain.DefaultDocument())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	r, err := Compile(context.Background(), FileSource{Path: path})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRubric().Document(), r.Document())

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompile_RejectsIncompleteRubric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checks:\n  tone: [promotional]\n"), 0o600))

	_, err := Compile(context.Background(), FileSource{Path: path})
	assert.ErrorIs(t, err, domain.ErrInvalidRubric)
}

func TestDefaultSource(t *testing.T) {
	r, err := Compile(context.Background(), DefaultSource{})
	require.NoError(t, err)
	assert.Equal(t, []string{"free", "sign up", "description"}, r.Phrases(domain.FlowCallToAction))
}
