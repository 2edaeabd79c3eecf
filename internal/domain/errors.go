package domain

import (
	"errors"
	"strings"
)

var (
	ErrFileNotFound      = errors.New("pdf file not found")
	ErrFileTooLarge      = errors.New("pdf file exceeds maximum allowed size")
	ErrCorruptedFile     = errors.New("pdf file is corrupted or damaged")
	ErrPasswordProtected = errors.New("pdf file is password protected")
	ErrNoTextContent     = errors.New("pdf contains no extractable text")
	ErrExtractionFailed  = errors.New("pdf data extraction failed")
	ErrCacheUnavailable  = errors.New("result cache unavailable")
)

// ClassifyExtractError maps a raw extraction failure onto the domain error
// taxonomy. Scanned LDI lists come from many sources, so the underlying
// library errors are matched loosely on message text.
func ClassifyExtractError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrFileNotFound),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrNoTextContent):
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "password") || strings.Contains(msg, "encrypted"):
		return ErrPasswordProtected
	case strings.Contains(msg, "corrupt") || strings.Contains(msg, "malformed") ||
		strings.Contains(msg, "invalid pdf") || strings.Contains(msg, "not a pdf"):
		return ErrCorruptedFile
	case strings.Contains(msg, "no text") || strings.Contains(msg, "empty"):
		return ErrNoTextContent
	case strings.Contains(msg, "no such file") || strings.Contains(msg, "not found"):
		return ErrFileNotFound
	}
	return ErrExtractionFailed
}
