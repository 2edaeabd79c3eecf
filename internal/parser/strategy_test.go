package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encomendas/internal/domain"
	"encomendas/internal/parser"
)

func strategyByName(t *testing.T, name string) parser.Strategy {
	t.Helper()
	for _, s := range parser.Strategies() {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("unknown strategy %q", name)
	return parser.Strategy{}
}

func inputFromText(text string) parser.ExtractInput {
	return parser.ExtractInput{
		Text:  text,
		Lines: parser.NormalizeLines(text),
	}
}

func TestStrategies_PriorityOrder(t *testing.T) {
	var names []string
	for _, s := range parser.Strategies() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		domain.StrategyTable,
		domain.StrategyLDILayout,
		domain.StrategyLineScan,
		domain.StrategyCodesOnly,
	}, names)
}

func TestExtractTable(t *testing.T) {
	text := "| Grupo | Data | Posição | Objeto | Destinatário |\n" +
		"| 1 | 03/12/2025 | PCM - 433 | AN235172298BR | EDUARDO RHAINE SCHLOSSER |\n" +
		"| 2 | 08/12/2025 | AAF - 50 | QB123456789BR | JESSE GOMES DA SILVA |"
	s := strategyByName(t, domain.StrategyTable)

	packages := s.Extract(inputFromText(text), parser.NewLogger(false))

	require.Len(t, packages, 2)
	assert.Equal(t, 1, packages[0].LineNumber)
	assert.Equal(t, "AN235172298BR", packages[0].TrackingCode)
	assert.Equal(t, "Eduardo Rhaine Schlosser", packages[0].Recipient)
	assert.Equal(t, "PCM - 433", packages[0].Position)
	assert.Equal(t, "03/12/2025", packages[0].Date)
	assert.Equal(t, "2025-12-03", packages[0].DateISO)
	assert.Equal(t, 1.0, packages[0].Confidence)
	assert.Equal(t, "Jesse Gomes da Silva", packages[1].Recipient)
}

func TestExtractLDILayout_SlicesRecipientBetweenAnchors(t *testing.T) {
	text := "1 03/12/2025 PCM - 433 AN235172298BR EDIANE RODRIGUES DA SILVA\n" +
		"2 08/12/2025 AAF - 50 QB123456789BR EDUARDO RHAINE SCHLOSSER :RUA DAS ACACIAS 120"
	s := strategyByName(t, domain.StrategyLDILayout)

	packages := s.Extract(inputFromText(text), parser.NewLogger(false))

	require.Len(t, packages, 2)
	assert.Equal(t, "Ediane Rodrigues da Silva", packages[0].Recipient)
	// The address tail after the colon never leaks into the name.
	assert.Equal(t, "Eduardo Rhaine Schlosser", packages[1].Recipient)
	assert.Equal(t, "AAF - 50", packages[1].Position)
	assert.Equal(t, 2, packages[1].LineNumber)
}

func TestExtractLDILayout_DeduplicatesByTrackingCode(t *testing.T) {
	text := "1 03/12/2025 PCM - 433 AN235172298BR EDIANE RODRIGUES DA SILVA\n" +
		"2 03/12/2025 PCM - 433 AN235172298BR EDIANE RODRIGUES DA SILVA"
	s := strategyByName(t, domain.StrategyLDILayout)
	logger := parser.NewLogger(false)

	packages := s.Extract(inputFromText(text), logger)

	require.Len(t, packages, 1)
	warnings := logger.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "duplicate tracking code AN235172298BR")
}

func TestExtractLineScan_NameOnFollowingLine(t *testing.T) {
	s := strategyByName(t, domain.StrategyLineScan)
	in := parser.ExtractInput{
		Lines: []string{
			"Objeto AN235172298BR",
			"Mariana Costa Lima",
		},
		DefaultDate: "15/12/2025",
	}

	packages := s.Extract(in, parser.NewLogger(false))

	require.Len(t, packages, 1)
	assert.Equal(t, "Mariana Costa Lima", packages[0].Recipient)
	assert.Equal(t, "15/12/2025", packages[0].Date)
	assert.Equal(t, "2025-12-15", packages[0].DateISO)
}

func TestExtractLineScan_SentinelGetsLowerConfidence(t *testing.T) {
	s := strategyByName(t, domain.StrategyLineScan)
	in := parser.ExtractInput{
		Lines: []string{
			"1 03/12/2025 PCM - 433 AN235172298BR EDIANE RODRIGUES DA SILVA",
			"QB123456789BR",
		},
	}

	packages := s.Extract(in, parser.NewLogger(false))

	require.Len(t, packages, 2)
	assert.Equal(t, "Ediane Rodrigues da Silva", packages[0].Recipient)
	assert.Equal(t, domain.SentinelRecipient, packages[1].Recipient)
	assert.Less(t, packages[1].Confidence, packages[0].Confidence)
}

func TestExtractCodesOnly_NeverDropsAValidCode(t *testing.T) {
	text := "pagina corrompida AN235172298BR lixo QB123456789BR fim"
	s := strategyByName(t, domain.StrategyCodesOnly)
	in := parser.ExtractInput{Text: text, DefaultDate: "15/12/2025"}

	packages := s.Extract(in, parser.NewLogger(false))

	require.Len(t, packages, 2)
	for _, p := range packages {
		assert.Equal(t, domain.SentinelRecipient, p.Recipient)
		assert.Equal(t, "15/12/2025", p.Date)
	}
	assert.Equal(t, "AN235172298BR", packages[0].TrackingCode)
	assert.Equal(t, "QB123456789BR", packages[1].TrackingCode)
}

func TestRunStrategies_FirstAcceptableWins(t *testing.T) {
	text := "1 03/12/2025 PCM - 433 AN235172298BR EDIANE RODRIGUES DA SILVA"
	in := inputFromText(text)

	packages, strategy := parser.RunStrategies(in, 0, parser.NewLogger(false))

	assert.Equal(t, domain.StrategyLDILayout, strategy)
	require.Len(t, packages, 1)
	assert.Equal(t, "Ediane Rodrigues da Silva", packages[0].Recipient)
}

func TestRunStrategies_ExactTotalRequiredWhenDeclared(t *testing.T) {
	text := "1 03/12/2025 PCM - 433 AN235172298BR EDIANE RODRIGUES DA SILVA\n" +
		"2 08/12/2025 AAF - 50 QB123456789BR EDUARDO RHAINE SCHLOSSER"
	in := inputFromText(text)

	packages, strategy := parser.RunStrategies(in, 2, parser.NewLogger(false))

	assert.Equal(t, domain.StrategyLDILayout, strategy)
	assert.Len(t, packages, 2)
}

func TestRunStrategies_FallsBackToBestOnCountMismatch(t *testing.T) {
	text := "1 03/12/2025 PCM - 433 AN235172298BR EDIANE RODRIGUES DA SILVA\n" +
		"2 08/12/2025 AAF - 50 QB123456789BR EDUARDO RHAINE SCHLOSSER"
	in := inputFromText(text)
	logger := parser.NewLogger(false)

	packages, strategy := parser.RunStrategies(in, 9, logger)

	// The declared total can never be satisfied but the records are kept.
	assert.Equal(t, domain.StrategyLDILayout, strategy)
	assert.Len(t, packages, 2)
	found := false
	for _, w := range logger.Warnings() {
		if strings.Contains(w, "no strategy matched the declared total 9") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRunStrategies_NothingExtractable(t *testing.T) {
	in := inputFromText("relatorio sem encomendas")

	packages, strategy := parser.RunStrategies(in, 0, parser.NewLogger(false))

	assert.Empty(t, packages)
	assert.Equal(t, domain.StrategyNone, strategy)
}
