package share

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// Encode serializes the share projection of ws into a token.
func Encode(ws *worksheet.Worksheet) (string, error) {
	if len(ws.Questions) == 0 {
		return "", ErrDecodeEmpty
	}
	return EncodeProjection(Project(ws))
}

// EncodeProjection serializes p into a token.
func EncodeProjection(p *Projection) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toWire(p)); err != nil {
		return "", fmt.Errorf("marshal projection: %w", err)
	}
	text := string(bytes.TrimRight(buf.Bytes(), "\n"))
	return encodeToken(text)
}

// Decode reconstructs a projection from a token. It performs no I/O and is
// safe to call repeatedly. Errors wrap ErrDecodeMalformed or ErrDecodeEmpty.
func Decode(tok string) (*Projection, error) {
	candidates, err := decodeToken(tok)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, text := range candidates {
		p, err := parseProjection(text)
		if err == nil {
			return p, nil
		}
		if errors.Is(err, ErrDecodeEmpty) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func parseProjection(text string) (*Projection, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeMalformed, err)
	}
	if hasNoQuestions(doc) {
		return nil, ErrDecodeEmpty
	}
	if err := validateWire(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeMalformed, err)
	}

	var w wireProjection
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeMalformed, err)
	}
	if len(w.Questions) == 0 {
		return nil, ErrDecodeEmpty
	}
	return fromWire(w), nil
}

// hasNoQuestions reports whether doc is null or an object whose question
// list is missing, null or empty.
func hasNoQuestions(doc any) bool {
	if doc == nil {
		return true
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	qs, present := obj["q"]
	if !present || qs == nil {
		return true
	}
	list, ok := qs.([]any)
	return ok && len(list) == 0
}
