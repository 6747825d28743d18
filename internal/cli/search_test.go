package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brume-cli/brume/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	restore := setTestDeps(nil, &mockSearchService{results: []domain.SearchResult{
		{DocID: "doc-1", Title: "Standup notes", Date: "2026-08-01", Score: 0.9},
	}})
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "standup"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Standup notes")
}

func TestSearchCmd_SemanticFlagRoutesToSemanticSearch(t *testing.T) {
	mock := &mockSearchService{results: []domain.SearchResult{{DocID: "doc-2", Title: "Roadmap"}}}
	restore := setTestDeps(nil, mock)
	defer restore()
	defer func() { searchSemantic = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--semantic", "plans for next quarter"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "semantic", mock.called)
	assert.Contains(t, buf.String(), "Roadmap")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	restore := setTestDeps(nil, &mockSearchService{results: []domain.SearchResult{
		{DocID: "doc-3", Title: "Retro", Score: 0.5},
	}})
	defer restore()
	defer func() { searchJSON = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "retro"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"DocID\"")
	assert.Contains(t, buf.String(), "\"Title\"")
}

func TestSearchCmd_NoResults(t *testing.T) {
	restore := setTestDeps(nil, &mockSearchService{results: nil})
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "nothing matches this"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no results")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	restore := setTestDeps(nil, &mockSearchService{err: errors.New("index unavailable")})
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "test"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index unavailable")
}

func TestOutputSearchTable_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputSearchTable(rootCmd, nil)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no results")
}
