package extraction

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
)

func writeRules(t *testing.T, path, version string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path,
		[]byte("version: "+version+"\n"), 0o644))
}

func TestRulesWatcherAppliesValidOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	writeRules(t, path, "v1")

	engine, err := NewEngine(Options{})
	require.NoError(t, err)

	w, err := NewRulesWatcher(engine, path, logging.NewNopLogger())
	require.NoError(t, err)
	defer w.Close()

	writeRules(t, path, "v2")
	require.Eventually(t, func() bool {
		return engine.RulesVersion() == "v2"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestRulesWatcherKeepsSnapshotOnBrokenOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	writeRules(t, path, "v1")

	engine, err := NewEngine(Options{})
	require.NoError(t, err)
	require.NoError(t, engine.SwapRules(mustLoad(t, path)))
	require.Equal(t, "v1", engine.RulesVersion())

	w, err := NewRulesWatcher(engine, path, logging.NewNopLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path,
		[]byte("urgency:\n  critical_threshold: 42\n"), 0o644))

	// Give the watcher time to see the event; the serving snapshot must
	// survive the broken overlay.
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, "v1", engine.RulesVersion())
}

func mustLoad(t *testing.T, path string) *RuleSet {
	t.Helper()
	rs, err := LoadRulesFile(path)
	require.NoError(t, err)
	return rs
}
