package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"encomendas/internal/domain"
)

func TestClassifyExtractError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"encrypted", errors.New("pdf: file is encrypted"), domain.ErrPasswordProtected},
		{"password", errors.New("password required to open document"), domain.ErrPasswordProtected},
		{"corrupt", errors.New("corrupt object stream"), domain.ErrCorruptedFile},
		{"malformed", errors.New("malformed xref table"), domain.ErrCorruptedFile},
		{"invalid structure", errors.New("invalid pdf structure"), domain.ErrCorruptedFile},
		{"not a pdf", errors.New("input is not a pdf"), domain.ErrCorruptedFile},
		{"no text", errors.New("no text layer found"), domain.ErrNoTextContent},
		{"missing", errors.New("open x.pdf: no such file or directory"), domain.ErrFileNotFound},
		{"unknown", errors.New("something odd happened"), domain.ErrExtractionFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.ClassifyExtractError(tc.in))
		})
	}
}

func TestClassifyExtractError_PreservesDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", domain.ErrFileTooLarge)
	assert.ErrorIs(t, domain.ClassifyExtractError(wrapped), domain.ErrFileTooLarge)
}
