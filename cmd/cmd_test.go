package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("VERBIZ_DB", "")
	t.Chdir(t.TempDir())

	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = prev })

	return filepath.Join(t.TempDir(), "verbiz.db")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { resetFlags(rootCmd) })

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so commands do not leak
// state between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "verbiz")
}

func TestDatasets(t *testing.T) {
	db := isolate(t)
	out, err := execute(t, "datasets", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "verbs")
	assert.Contains(t, out, "embedded")

	_, err = os.Stat(db)
	assert.NoError(t, err, "database file is created")
}

func TestSettingsSetAndList(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, "settings", "set", "dailyGoal", "25", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "dailyGoal = 25")

	out, err = execute(t, "settings", "--db", db)
	require.NoError(t, err)
	assert.Regexp(t, `dailyGoal\s+25`, out)

	_, err = execute(t, "settings", "set", "dailyGoal", "many", "--db", db)
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	db := isolate(t)
	out, err := execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Level 1, 0 XP")
	assert.Contains(t, out, "verbs")
}

func TestResetFlagValidation(t *testing.T) {
	db := isolate(t)

	_, err := execute(t, "reset", "--db", db)
	assert.ErrorContains(t, err, "--dataset NAME or --all")

	resetFlags(rootCmd)
	_, err = execute(t, "reset", "--all", "--dataset", "verbs", "--db", db)
	assert.ErrorContains(t, err, "not both")

	resetFlags(rootCmd)
	_, err = execute(t, "reset", "--dataset", "nope", "--db", db)
	assert.Error(t, err)

	resetFlags(rootCmd)
	out, err := execute(t, "reset", "--all", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "All progress reset.")
}

func TestExportImport(t *testing.T) {
	db := isolate(t)
	backup := filepath.Join(t.TempDir(), "backup.json")

	_, err := execute(t, "settings", "set", "dailyGoal", "30", "--db", db)
	require.NoError(t, err)
	resetFlags(rootCmd)

	_, err = execute(t, "export", "-o", backup, "--db", db)
	require.NoError(t, err)
	resetFlags(rootCmd)

	fresh := filepath.Join(t.TempDir(), "fresh.db")
	out, err := execute(t, "import", backup, "--db", fresh)
	require.NoError(t, err)
	assert.Contains(t, out, "snapshot backup")
	resetFlags(rootCmd)

	out, err = execute(t, "settings", "--db", fresh)
	require.NoError(t, err)
	assert.Regexp(t, `dailyGoal\s+30`, out)
}
