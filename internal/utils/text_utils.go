package utils

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// TruncationMarker is appended to text cut short for an LLM prompt
const TruncationMarker = "\n[... Content truncated due to size limits ...]"

// TextProcessor provides utilities for processing text at the input boundary
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText cuts text to at most maxSize bytes without splitting a
// multi-byte character. A maxSize of zero or less disables the cap
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	cut := maxSize
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	truncated := text[:cut]

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated
}

// TruncateForPrompt truncates text like TruncateText and marks the cut
func (tp *TextProcessor) TruncateForPrompt(text string, maxSize int) string {
	truncated := tp.TruncateText(text, maxSize)
	if len(truncated) == len(text) {
		return text
	}
	return truncated + TruncationMarker
}

// SanitizeUTF8 drops invalid UTF-8 bytes from text
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// ProcessText truncates and sanitizes text in one operation
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.SanitizeUTF8(tp.TruncateText(text, maxSize))
}
