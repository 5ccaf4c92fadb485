package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/savings-projector/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeExamplePlan(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	out, err := run(t, "example", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Example plan written to")
	return path
}

func useSQLiteStore(t *testing.T) {
	t.Setenv("PROJECTOR_ADDR", ":8080")
	t.Setenv("PROJECTOR_STORE", "sqlite")
	t.Setenv("PROJECTOR_DB_PATH", filepath.Join(t.TempDir(), "scenarios.db"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestExample_Stdout(t *testing.T) {
	out, err := run(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "scenarios:")
	assert.Contains(t, out, "name: Baseline")
}

func TestProject_Console(t *testing.T) {
	plan := writeExamplePlan(t)

	out, err := run(t, "project", "-i", plan)
	require.NoError(t, err)
	assert.Contains(t, out, "SAVINGS PROJECTION: NOMINAL vs REAL")
	assert.Contains(t, out, "Baseline")
	assert.Contains(t, out, "RECOMMENDED:")
}

func TestProject_JSONToFile(t *testing.T) {
	plan := writeExamplePlan(t)
	target := filepath.Join(t.TempDir(), "report.json")

	_, err := run(t, "project", "-i", plan, "-f", "json", "-o", target, "--timeline")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var results domain.ScenarioComparison
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results.Scenarios, 4)
	assert.NotEmpty(t, results.BestScenario)
	assert.NotEmpty(t, results.Scenarios[0].Timeline)
}

func TestProject_AllFormatsToDirectory(t *testing.T) {
	plan := writeExamplePlan(t)
	dir := filepath.Join(t.TempDir(), "reports")

	out, err := run(t, "project", "-i", plan, "-f", "all", "--out-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Report written to"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestProject_Errors(t *testing.T) {
	_, err := run(t, "project")
	assert.Error(t, err, "input is required")

	_, err = run(t, "project", "-i", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load plan")

	plan := writeExamplePlan(t)
	_, err = run(t, "project", "-i", plan, "-f", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Try one of:")
}

func TestPresets(t *testing.T) {
	out, err := run(t, "presets")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "conservative")
	assert.Contains(t, lines[1], "6.0%")
	assert.Contains(t, lines[3], "aggressive")
	assert.Contains(t, lines[3], "10.0%")
}

func TestSensitivity(t *testing.T) {
	plan := writeExamplePlan(t)

	out, err := run(t, "sensitivity", "-i", plan, "--param", "nominal_return")
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY: Nominal annual portfolio return (Baseline)")

	out, err = run(t, "sensitivity", "-i", plan, "-s", "retire at 70", "--param", "monthly_contribution",
		"--min", "1000", "--max", "3000", "--steps", "3", "-f", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "Retire at 70,monthly_contribution,1000"))

	_, err = run(t, "sensitivity", "-i", plan, "--param", "volatility")
	assert.Error(t, err)

	_, err = run(t, "sensitivity", "-i", plan, "--min", "9", "--max", "3")
	assert.Error(t, err)

	_, err = run(t, "sensitivity", "-i", plan, "-s", "nope")
	assert.Error(t, err)
}

func TestScenarioCommands(t *testing.T) {
	useSQLiteStore(t)
	plan := writeExamplePlan(t)

	out, err := run(t, "scenario", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios stored")

	out, err = run(t, "scenario", "save", "-i", plan, "-s", "Baseline")
	require.NoError(t, err)
	id, name, ok := strings.Cut(strings.TrimSpace(out), "\t")
	require.True(t, ok)
	assert.Equal(t, "Baseline", name)

	out, err = run(t, "scenario", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Baseline")

	out, err = run(t, "scenario", "project", id)
	require.NoError(t, err)
	assert.Contains(t, out, "SAVINGS PROJECTION SUMMARY")
	assert.Contains(t, out, "Recommended: Baseline")

	_, err = run(t, "scenario", "project", "unknown-id")
	assert.Error(t, err)
}

func TestScenarioCommands_InvalidStoreConfig(t *testing.T) {
	t.Setenv("PROJECTOR_STORE", "remote")
	t.Setenv("PROJECTOR_REMOTE_URL", "")

	_, err := run(t, "scenario", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote URL is required")
}
