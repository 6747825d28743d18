package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brume-cli/brume/internal/core/domain"
)

func TestSyncCmd_Use(t *testing.T) {
	assert.Equal(t, "sync", syncCmd.Use)
}

func TestSyncCmd_ReportsTotals(t *testing.T) {
	restore := setTestDeps(&mockSyncService{summary: domain.SyncSummary{Listed: 5, Created: 2, Updated: 1, Skipped: 2}}, nil)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sync"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "listed 5, created 2, updated 1, skipped 2")
}

func TestSyncCmd_PropagatesError(t *testing.T) {
	restore := setTestDeps(&mockSyncService{err: errors.New("remote unreachable")}, nil)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sync"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote unreachable")
}

func TestReindexCmd_Use(t *testing.T) {
	assert.Equal(t, "reindex", reindexCmd.Use)
}

func TestReindexCmd_ReportsCount(t *testing.T) {
	restore := setTestDeps(&mockSyncService{summary: domain.SyncSummary{Listed: 9}}, nil)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reindex"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "reindexed 9 documents")
}
