// Package tokenizer estimates how many model tokens a prompt document occupies.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model and the name it resolved to.
// Models without a known tiktoken encoding fall back to cl100k_base.
func NewCounter(model string) (Counter, string, error) {
	resolvedModel := strings.ToLower(strings.TrimSpace(model))
	if resolvedModel == "" {
		resolvedModel = defaultModel
	}
	if encoding, err := tiktoken.EncodingForModel(resolvedModel); err == nil && encoding != nil {
		return tiktokenCounter{encoding: encoding, name: resolvedModel}, resolvedModel, nil
	}
	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackErr)
	}
	return tiktokenCounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

// CountDocument estimates the tokens of a whole document.
func CountDocument(counter Counter, document string) (int, error) {
	if counter == nil {
		return 0, errors.New("nil tokenizer counter")
	}
	tokens, err := counter.CountString(document)
	if err != nil {
		return 0, fmt.Errorf("count tokens with %s: %w", counter.Name(), err)
	}
	return tokens, nil
}

type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter tiktokenCounter) Name() string { return counter.name }

// CountString encodes input treating special-token text as ordinary text.
func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoding")
	}
	return len(counter.encoding.EncodeOrdinary(input)), nil
}
