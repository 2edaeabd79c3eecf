package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"encomendas/internal/parser"
)

func TestNormalizeLines_MergesWrappedRecipient(t *testing.T) {
	text := "1 03/12/2025 PCM - 433 AN235172298BR EDIANE\nRODRIGUES DA SILVA"

	lines := parser.NormalizeLines(text)

	assert.Equal(t, []string{
		"1 03/12/2025 PCM - 433 AN235172298BR EDIANE RODRIGUES DA SILVA",
	}, lines)
}

func TestNormalizeLines_MergesAcrossMultipleWraps(t *testing.T) {
	text := "1 03/12/2025 PCM - 433 AN235172298BR MARIA\nJOSE\nDA SILVA"

	lines := parser.NormalizeLines(text)

	assert.Equal(t, []string{
		"1 03/12/2025 PCM - 433 AN235172298BR MARIA JOSE DA SILVA",
	}, lines)
}

func TestNormalizeLines_KeepsSeparateRecords(t *testing.T) {
	text := "1 03/12/2025 PCM - 433 AN235172298BR EDIANE RODRIGUES\n" +
		"2 08/12/2025 AAF - 50 QB123456789BR EDUARDO SCHLOSSER"

	lines := parser.NormalizeLines(text)

	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "AN235172298BR")
	assert.Contains(t, lines[1], "QB123456789BR")
}

func TestNormalizeLines_NoMergeWhenNextLineHasCode(t *testing.T) {
	// The continuation candidate carries its own tracking code, so it must
	// stay a separate line even without a leading record number.
	text := "1 03/12/2025 PCM - 433 AN235172298BR EDIANE\nQB123456789BR JOAO PEDRO"

	lines := parser.NormalizeLines(text)

	assert.Len(t, lines, 2)
}

func TestNormalizeLines_DropsBlankLinesAndTrims(t *testing.T) {
	text := "  ENCOMENDAS AGUARDANDO RETIRADA  \n\n\n  Total de objetos: 5  \n"

	lines := parser.NormalizeLines(text)

	assert.Equal(t, []string{
		"ENCOMENDAS AGUARDANDO RETIRADA",
		"Total de objetos: 5",
	}, lines)
}

func TestNormalizeLines_EmptyInput(t *testing.T) {
	assert.Empty(t, parser.NormalizeLines(""))
	assert.Empty(t, parser.NormalizeLines("\n\n  \n"))
}
