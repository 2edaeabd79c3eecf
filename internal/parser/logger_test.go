package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encomendas/internal/domain"
	"encomendas/internal/parser"
)

func TestLogger_CollectsEntriesInOrder(t *testing.T) {
	l := parser.NewLogger(false)
	l.Info("Start", "processing")
	l.Warn("Validation", "duplicate code")
	l.Error("Extract", "no text")
	l.Debug("Parse", "details")

	entries := l.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, domain.LogLevelInfo, entries[0].Level)
	assert.Equal(t, "Start", entries[0].Stage)
	assert.Equal(t, "processing", entries[0].Message)

	assert.Equal(t, []string{"duplicate code"}, l.Warnings())
	assert.Equal(t, []string{"no text"}, l.Errors())
}

func TestLogger_EntriesReturnsCopy(t *testing.T) {
	l := parser.NewLogger(false)
	l.Info("Start", "one")

	entries := l.Entries()
	entries[0].Message = "mutated"

	assert.Equal(t, "one", l.Entries()[0].Message)
}
