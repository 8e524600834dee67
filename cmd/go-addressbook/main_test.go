package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

// testEnv writes a settings file pointing data and logs into a temp dir.
func testEnv(t *testing.T) (cfgPath, dataPath string) {
	t.Helper()
	dir := t.TempDir()
	dataPath = filepath.Join(dir, "book.vcf")
	cfgPath = filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("data_file: %s\nlog:\n  file: %s\n", dataPath, filepath.Join(dir, "logs", "app.log"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	return cfgPath, dataPath
}

// execute runs the CLI once with the given stdin and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	root := a.rootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if a.logCloser != nil {
		t.Cleanup(func() { _ = a.logCloser.Close() })
	}
	return out.String(), err
}

func TestInteractiveSessionPersists(t *testing.T) {
	cfg, data := testEnv(t)

	out, err := execute(t, "add Ann 0501234567\nadd-birthday Ann 12.03.1990\nexit\n", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Contact added.")
	assert.Contains(t, out, "Good bye!")

	book, err := storage.NewFileStore(data).Load()
	require.NoError(t, err)
	rec, ok := book.Find("ann")
	require.True(t, ok)
	assert.Equal(t, "0501234567", rec.PhoneList())
}

func TestDataFlagOverridesSettings(t *testing.T) {
	cfg, _ := testEnv(t)
	other := filepath.Join(t.TempDir(), "other.vcf")

	_, err := execute(t, "add Bob 0501234567\n", "--config", cfg, "--data", other)
	require.NoError(t, err)
	assert.FileExists(t, other)
}

func TestBirthdaysCommand(t *testing.T) {
	cfg, _ := testEnv(t)
	_, err := execute(t, "add Ann 0501234567\nadd-birthday Ann 12.03.1990\nclose\n", "--config", cfg)
	require.NoError(t, err)

	// A full-year window always contains the next occurrence.
	out, err := execute(t, "", "--config", cfg, "birthdays", "--days", "366")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann: ")

	_, err = execute(t, "", "--config", cfg, "birthdays", "--days", "400")
	assert.Error(t, err)
}

func TestExportCalendarCommand(t *testing.T) {
	cfg, _ := testEnv(t)
	_, err := execute(t, "add Ann 0501234567\nadd-birthday Ann 12.03.1990\nclose\n", "--config", cfg)
	require.NoError(t, err)

	ics := filepath.Join(t.TempDir(), "out.ics")
	out, err := execute(t, "", "--config", cfg, "export-calendar", "--out", ics, "--days", "366")
	require.NoError(t, err)
	assert.Contains(t, out, "1 birthday(s) exported")

	body, err := os.ReadFile(ics)
	require.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VEVENT")
	assert.Contains(t, string(body), "Ann")
}

func TestMissingConfigFails(t *testing.T) {
	testEnv(t)
	_, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
