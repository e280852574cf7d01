package share

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEncodeUnrepresentable means no token strategy could carry the text
	// back unchanged.
	ErrEncodeUnrepresentable = errors.New("share: text cannot be represented in a token")

	// ErrDecodeMalformed means a token was present but does not decode to a
	// valid projection.
	ErrDecodeMalformed = errors.New("share: malformed token")

	// ErrDecodeEmpty means there was no token, or it held no questions.
	ErrDecodeEmpty = errors.New("share: empty worksheet")
)

// tokenEncoder turns text into a URL-fragment-safe token.
type tokenEncoder struct {
	name   string
	encode func(text string) (string, error)
}

// tokenEncoders are tried in order. The first is the browser-compatible
// format; the second carries raw bytes.
var tokenEncoders = []tokenEncoder{
	{name: "escaped", encode: encodeEscaped},
	{name: "raw", encode: encodeRaw},
}

// encodeToken encodes text with the first strategy whose token decodes back
// to exactly the same text.
func encodeToken(text string) (string, error) {
	var lastErr error
	for _, enc := range tokenEncoders {
		tok, err := enc.encode(text)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", enc.name, err)
			continue
		}
		if !roundTrips(tok, text) {
			lastErr = fmt.Errorf("%s: token does not decode to its input", enc.name)
			continue
		}
		return tok, nil
	}
	return "", fmt.Errorf("%w: %v", ErrEncodeUnrepresentable, lastErr)
}

func roundTrips(tok, text string) bool {
	candidates, err := decodeToken(tok)
	if err != nil || len(candidates) == 0 {
		return false
	}
	return candidates[0] == text
}

// encodeEscaped percent-escapes text like a browser's encodeURIComponent
// and wraps the ASCII result in standard base64.
func encodeEscaped(text string) (string, error) {
	escaped, err := escapeComponent(text)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(escaped)), nil
}

// encodeRaw wraps the UTF-8 bytes of text in standard base64.
func encodeRaw(text string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(text)), nil
}

// decodeToken reverses the base64 layer and returns the candidate texts in
// the order they should be tried: the unescaped text first when the payload
// is a valid escape sequence, then the raw bytes.
func decodeToken(tok string) ([]string, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return nil, ErrDecodeEmpty
	}
	raw, err := decodeBase64(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeMalformed, err)
	}

	var candidates []string
	if isEscapedForm(raw) {
		if s, err := url.PathUnescape(string(raw)); err == nil && utf8.ValidString(s) {
			candidates = append(candidates, s)
		}
	}
	candidates = append(candidates, string(raw))
	return candidates, nil
}

// decodeBase64 accepts standard and URL-safe alphabets, padded or not.
// Chat apps and URL shorteners sometimes rewrite or strip the padding.
func decodeBase64(tok string) ([]byte, error) {
	trimmed := strings.TrimRight(tok, "=")
	if b, err := base64.RawStdEncoding.DecodeString(trimmed); err == nil {
		return b, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// component characters left unescaped by escapeComponent.
func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

const upperhex = "0123456789ABCDEF"

// escapeComponent percent-escapes every byte outside the unreserved set.
// Text that is not valid UTF-8 is rejected, since a browser cannot unescape
// it on the other end.
func escapeComponent(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", errors.New("invalid UTF-8 sequence")
	}
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String(), nil
}

// isEscapedForm reports whether every byte could have been produced by
// escapeComponent. Serialized JSON always contains '{' or '"', so raw
// payloads never pass.
func isEscapedForm(b []byte) bool {
	for _, c := range b {
		if c != '%' && !isUnreserved(c) {
			return false
		}
	}
	return true
}
