package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kydenul/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qabot/internal/config"
	"qabot/internal/logger"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func runQabot(t *testing.T, env map[string]string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, envMap(env), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const sunDataset = `[{"question": "What is the sun?", "answer": "A star."}]`

func TestRun_MalformedDatasetFails(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")
	data := writeFile(t, dir, "bad.json", `[{"question": "a?"}]`)

	code, stdout, stderr := runQabot(t, nil, "-config", cfgPath, "-dataset", data, "-ask", "a?")

	assert.NotEqual(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `missing field "answer"`)
}

func TestRun_AskPrintsOnlyTheAnswer(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")
	data := writeFile(t, dir, "qa.json", sunDataset)

	code, stdout, stderr := runQabot(t, nil, "-config", cfgPath, "-dataset", data, "-ask", "what is the sun")

	assert.Equal(t, 0, code)
	assert.Equal(t, "A star.\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_AskWithFileLoggingKeepsStreamsClean(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	data := writeFile(t, dir, "qa.json", sunDataset)
	cfgPath := writeFile(t, dir, "config.yaml", "log:\n  level: debug\n  directory: "+logDir+"\n")

	code, stdout, stderr := runQabot(t, nil, "-config", cfgPath, "-dataset", data, "-ask", "what is the sun")

	assert.Equal(t, 0, code)
	assert.Equal(t, "A star.\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_FallbackAnswer(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")
	data := writeFile(t, dir, "qa.json", sunDataset)

	code, stdout, _ := runQabot(t, map[string]string{config.EnvFallback: "No idea."},
		"-config", cfgPath, "-dataset", data, "-ask", "bananas")

	assert.Equal(t, 0, code)
	assert.Equal(t, "No idea.\n", stdout)
}

func TestRun_DatasetFlagOverridesEnvironment(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")
	data := writeFile(t, dir, "qa.json", sunDataset)
	env := map[string]string{config.EnvDataset: filepath.Join(dir, "missing.json")}

	code, stdout, stderr := runQabot(t, env, "-config", cfgPath, "-dataset", data, "-ask", "what is the sun")
	assert.Equal(t, 0, code)
	assert.Equal(t, "A star.\n", stdout)
	assert.Empty(t, stderr)

	code, stdout, stderr = runQabot(t, env, "-config", cfgPath, "-ask", "what is the sun")
	assert.NotEqual(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "missing.json")
}

func TestRun_InvalidEnvironment(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")
	data := writeFile(t, dir, "qa.json", sunDataset)

	code, _, stderr := runQabot(t, map[string]string{config.EnvThreshold: "high"},
		"-config", cfgPath, "-dataset", data, "-ask", "sun")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, config.EnvThreshold)
}

func TestRun_UnknownFlag(t *testing.T) {
	code, stdout, stderr := runQabot(t, nil, "-nope")

	assert.Equal(t, 2, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "-nope")
}

func TestNewLogger_DisabledByDefault(t *testing.T) {
	lg, err := newLogger(config.LogConfig{Level: "info"})
	require.NoError(t, err)
	assert.IsType(t, logger.Discard{}, lg)
}

func TestNewLogger_WritesToConfiguredDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	lg, err := newLogger(config.LogConfig{Level: "info", Directory: dir})
	require.NoError(t, err)
	fileLog, ok := lg.(*log.Log)
	require.True(t, ok)

	fileLog.Infof("Corpus index built, entries: %d", 1)
	fileLog.Sync()

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, files)
}

func TestNewLogger_MissingOptionsFile(t *testing.T) {
	_, err := newLogger(config.LogConfig{Level: "info", ConfigFile: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}
