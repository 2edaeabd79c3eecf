package xlsxexport_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"encomendas/internal/domain"
	"encomendas/internal/xlsxexport"
)

func TestWrite_HeaderAndRows(t *testing.T) {
	result := &domain.ParseResult{
		Success:       true,
		TotalPackages: 2,
		Packages: []domain.Package{
			{
				LineNumber:   1,
				TrackingCode: "AN235172298BR",
				Recipient:    "Ediane Rodrigues da Silva",
				Position:     "PCM - 433",
				Date:         "03/12/2025",
				DateISO:      "2025-12-03",
				Confidence:   0.9,
			},
			{
				LineNumber:   2,
				TrackingCode: "QB123456789BR",
				Recipient:    domain.SentinelRecipient,
				Confidence:   0.4,
			},
		},
	}

	data, err := xlsxexport.Write(result)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Encomendas", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Linha", header)

	code, err := f.GetCellValue("Encomendas", "B2")
	require.NoError(t, err)
	assert.Equal(t, "AN235172298BR", code)

	recipient, err := f.GetCellValue("Encomendas", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Ediane Rodrigues da Silva", recipient)

	sentinel, err := f.GetCellValue("Encomendas", "C3")
	require.NoError(t, err)
	assert.Equal(t, domain.SentinelRecipient, sentinel)

	rows, err := f.GetRows("Encomendas")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestWrite_EmptyResultStillHasHeader(t *testing.T) {
	data, err := xlsxexport.Write(&domain.ParseResult{Packages: []domain.Package{}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Encomendas")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Código de Rastreio", rows[0][1])
}
