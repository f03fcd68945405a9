package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/helixml/csvsplit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// setupEnv points the CLI at a temporary data directory with quiet logging.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("DB_URL", "")
	t.Setenv("DISABLE_HISTORY", "false")
	t.Setenv("DEFAULT_NUM_LINES", "10")
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_FORMAT", "json")
	return dir
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSplitCommand_Text(t *testing.T) {
	dir := setupEnv(t)
	src := writeSource(t, dir, "data.csv", "h\n1\n2\n3\n")

	out, err := execute(t, "split", src, "--lines", "2", "--header")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	assert.Equal(t, "h\n1\n2\n", readFile(t, filepath.Join(dir, "data-1.csv")))
	assert.Equal(t, "h\n3\n", readFile(t, filepath.Join(dir, "data-2.csv")))
}

func TestSplitCommand_HeaderLinesOverridesHeader(t *testing.T) {
	dir := setupEnv(t)
	src := writeSource(t, dir, "data.csv", "a\nb\n1\n2\n")

	_, err := execute(t, "split", src, "-n", "5", "--header", "--header-lines", "2")
	require.NoError(t, err)

	assert.Equal(t, "a\nb\n1\n2\n", readFile(t, filepath.Join(dir, "data-1.csv")))
}

func TestSplitCommand_JSON(t *testing.T) {
	dir := setupEnv(t)
	src := writeSource(t, dir, "rows.csv", "1\n2\n3\n")

	out, err := execute(t, "split", src, "-n", "1", "-o", "json")
	require.NoError(t, err)

	var got splitOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Files)
	assert.Equal(t, 3, got.DataLines)
	assert.Equal(t, 0, got.HeaderLines)
	assert.Len(t, got.Paths, 3)
}

func TestSplitCommand_YAML(t *testing.T) {
	dir := setupEnv(t)
	src := writeSource(t, dir, "rows.csv", "1\n2\n")

	out, err := execute(t, "split", src, "-n", "5", "-o", "yaml")
	require.NoError(t, err)

	var got splitOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Files)
	assert.Equal(t, 2, got.DataLines)
}

func TestSplitCommand_RemembersLastChunkSize(t *testing.T) {
	dir := setupEnv(t)
	src := writeSource(t, dir, "data.csv", "1\n2\n3\n4\n")

	_, err := execute(t, "split", src, "-n", "3")
	require.NoError(t, err)

	out, err := execute(t, "split", src)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestSplitCommand_DefaultChunkSize(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("DEFAULT_NUM_LINES", "2")
	src := writeSource(t, dir, "data.csv", "1\n2\n3\n4\n5\n")

	out, err := execute(t, "split", src)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestSplitCommand_WithoutHistory(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("DISABLE_HISTORY", "true")
	src := writeSource(t, dir, "data.csv", "1\n2\n")

	out, err := execute(t, "split", src, "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	_, err = os.Stat(filepath.Join(dir, "data", config.DefaultDatabaseFile))
	assert.True(t, os.IsNotExist(err))
}

func TestSplitCommand_Errors(t *testing.T) {
	dir := setupEnv(t)

	t.Run("missing source", func(t *testing.T) {
		_, err := execute(t, "split", filepath.Join(dir, "missing.csv"), "-n", "2")
		require.Error(t, err)
	})

	t.Run("invalid chunk size", func(t *testing.T) {
		src := writeSource(t, dir, "data.csv", "1\n")
		_, err := execute(t, "split", src, "-n", "0")
		require.Error(t, err)
	})

	t.Run("unknown output format", func(t *testing.T) {
		src := writeSource(t, dir, "data.csv", "1\n")
		_, err := execute(t, "split", src, "-n", "2", "-o", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := execute(t, "split")
		require.Error(t, err)
	})
}

func TestHistoryCommand(t *testing.T) {
	dir := setupEnv(t)
	src := writeSource(t, dir, "data.csv", "h\n1\n2\n")

	_, err := execute(t, "split", src, "-n", "1", "--header")
	require.NoError(t, err)
	_, err = execute(t, "split", filepath.Join(dir, "missing.csv"), "-n", "1")
	require.Error(t, err)

	out, err := execute(t, "history", "-o", "json")
	require.NoError(t, err)

	var runs []runOutput
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "failed", runs[0].State)
	assert.NotEmpty(t, runs[0].Error)
	assert.Equal(t, "completed", runs[1].State)
	assert.Equal(t, 2, runs[1].Files)
	assert.Equal(t, 1, runs[1].HeaderLines)

	out, err = execute(t, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "missing.csv")
	assert.NotContains(t, out, "data.csv")
}

func TestHistoryCommand_Disabled(t *testing.T) {
	setupEnv(t)
	t.Setenv("DISABLE_HISTORY", "true")

	_, err := execute(t, "history")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "csvsplit version dev")
	assert.Contains(t, out, "commit: unknown")
}

func TestApplyServeOverrides(t *testing.T) {
	cfg := config.NewAppConfig()

	got := applyServeOverrides(cfg, "", 0)
	assert.Equal(t, cfg.Addr(), got.Addr())

	got = applyServeOverrides(cfg, "0.0.0.0", 9090)
	assert.Equal(t, "0.0.0.0:9090", got.Addr())
}

func TestStorageOptions(t *testing.T) {
	assert.Len(t, storageOptions(config.NewAppConfigWithOptions(config.WithDisableHistory(true))), 1)
	assert.Len(t, storageOptions(config.NewAppConfigWithOptions(config.WithDBURL(""))), 0)
	assert.Len(t, storageOptions(config.NewAppConfigWithOptions(config.WithDBURL("sqlite:////tmp/x.db"))), 1)
	assert.Len(t, storageOptions(config.NewAppConfigWithOptions(config.WithDBURL("postgresql://u:p@localhost/db"))), 1)
}
