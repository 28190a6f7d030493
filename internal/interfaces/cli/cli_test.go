package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtractCommandJSON(t *testing.T) {
	out, err := runCommand(t, "",
		"extract", "My name is John Smith and I need $2000 for rent", "--json")
	require.NoError(t, err)

	var result intake.ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	name, ok := result.ContactName.Get()
	require.True(t, ok)
	assert.Equal(t, "John Smith", name)
	amount, ok := result.GoalAmount.Get()
	require.True(t, ok)
	assert.Equal(t, 2000, amount)
	category, ok := result.Category.Get()
	require.True(t, ok)
	assert.Equal(t, intake.CategoryHousing, category)
}

func TestExtractCommandTextOutput(t *testing.T) {
	out, err := runCommand(t, "",
		"extract", "I need $500 for my daughter's medication")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal:")
	assert.Contains(t, out, "$500")
	assert.Contains(t, out, "Urgency:")
	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "(not found)")
}

func TestExtractCommandReadsStdin(t *testing.T) {
	out, err := runCommand(t, "I am asking for $800 to cover the electric bill",
		"extract", "--json")
	require.NoError(t, err)

	var result intake.ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	amount, ok := result.GoalAmount.Get()
	require.True(t, ok)
	assert.Equal(t, 800, amount)
}

func TestExtractCommandHint(t *testing.T) {
	out, err := runCommand(t, "",
		"extract", "please help us out", "--hint", "UTILITIES", "--json")
	require.NoError(t, err)

	var result intake.ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	category, ok := result.Category.Get()
	require.True(t, ok)
	assert.Equal(t, intake.CategoryUtilities, category)
	assert.Equal(t, intake.SourceManual, result.Category.Source)
}

func TestExtractCommandRejectsUnknownHint(t *testing.T) {
	_, err := runCommand(t, "", "extract", "help", "--hint", "GARDENING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category hint")
}

func TestExtractCommandWithRulesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: cli-test\n"), 0o644))

	out, err := runCommand(t, "", "extract", "hello there", "--rules", path, "--json")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = runCommand(t, "", "extract", "hello", "--rules",
		filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRulesCheckCommand(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid overlay", func(t *testing.T) {
		path := filepath.Join(dir, "good.yaml")
		require.NoError(t, os.WriteFile(path,
			[]byte("version: check-1\n"), 0o644))
		out, err := runCommand(t, "", "rules", "check", path)
		require.NoError(t, err)
		assert.Contains(t, out, "ok:")
		assert.Contains(t, out, "check-1")
	})

	t.Run("invalid overlay", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path,
			[]byte("urgency:\n  critical_threshold: 42\n"), 0o644))
		_, err := runCommand(t, "", "rules", "check", path)
		require.Error(t, err)
	})
}
