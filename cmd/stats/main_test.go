package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/collision-explorer/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_Fixture(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), filepath.Join("..", "..", "data", "mock", "collisions_sample.csv"),
		&out, discardLogger(), observability.NewMetricsForTesting())
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ANOVA for Hypothesis (Time): p-value = 0."), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "ANOVA for Hypothesis (Day): p-value = "), lines[1])
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), filepath.Join(t.TempDir(), "absent.csv"),
		&out, discardLogger(), observability.NewMetricsForTesting())
	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())
}

func TestCLI_StdoutHoldsOnlyResults(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")

	var stdout, stderr bytes.Buffer
	code := cli([]string{"-data", filepath.Join("..", "..", "data", "mock", "collisions_sample.csv")},
		&stdout, &stderr, observability.NewMetricsForTesting())
	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 2, stdout.String())
	assert.True(t, strings.HasPrefix(lines[0], "ANOVA for Hypothesis (Time): p-value = "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "ANOVA for Hypothesis (Day): p-value = "), lines[1])
	assert.Contains(t, stderr.String(), "dataset loaded")
}

func TestCLI_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-nope"}, &stdout, &stderr, observability.NewMetricsForTesting())
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout.String())
}
