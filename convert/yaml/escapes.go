package yaml

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-yaml/token"
)

// ErrInvalidEscape is returned for a malformed escape sequence in a double-quoted scalar.
var ErrInvalidEscape = errors.New("invalid escape sequence")

// simpleEscapes are the single-character escapes of double-quoted scalars.
// Escaped line breaks are folded by the scanner and need no check.
const simpleEscapes = "0abtnvfre \"/\\N_LP\t\n\r"

// checkEscapes validates every double-quoted scalar of src. The scanner
// decodes \x, \u and \U escapes without checking their digits, so they are
// re-read from the source at each token position.
func checkEscapes(src []rune, tokens token.Tokens) error {
	lineStarts := lineOffsets(src)

	for _, tk := range tokens {
		if tk == nil || tk.Type != token.DoubleQuoteType || tk.Position == nil {
			continue
		}

		start, ok := quoteIndex(src, lineStarts, tk.Position)
		if !ok {
			continue
		}

		err := checkQuoted(src, start)
		if err != nil {
			return fmt.Errorf("%w at line %d, column %d", err, tk.Position.Line, tk.Position.Column)
		}
	}

	return nil
}

func lineOffsets(src []rune) []int {
	offsets := []int{0}

	for i, r := range src {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// quoteIndex finds the opening quote of the token at pos.
func quoteIndex(src []rune, lineStarts []int, pos *token.Position) (int, bool) {
	if pos.Line < 1 || pos.Line > len(lineStarts) {
		return 0, false
	}

	lineEnd := len(src)
	if pos.Line < len(lineStarts) {
		lineEnd = lineStarts[pos.Line]
	}

	from := max(lineStarts[pos.Line-1]+pos.Column-1, lineStarts[pos.Line-1])
	for i := from; i < lineEnd; i++ {
		if src[i] == '"' {
			return i, true
		}
	}

	return 0, false
}

// checkQuoted reads the double-quoted scalar that opens at src[start].
func checkQuoted(src []rune, start int) error {
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '"':
			return nil
		case '\\':
			next, err := checkEscape(src, i+1)
			if err != nil {
				return err
			}

			i = next - 1
		}
	}

	return nil
}

// checkEscape validates the escape whose indicator follows the backslash at src[at-1]
// and returns the index just after it.
func checkEscape(src []rune, at int) (int, error) {
	if at >= len(src) {
		return at, fmt.Errorf("%w: backslash at end of input", ErrInvalidEscape)
	}

	indicator := src[at]

	var digits int

	switch indicator {
	case 'x':
		digits = 2
	case 'u':
		digits = 4
	case 'U':
		digits = 8
	default:
		if strings.ContainsRune(simpleEscapes, indicator) {
			return at + 1, nil
		}

		return at, fmt.Errorf("%w %q", ErrInvalidEscape, "\\"+string(indicator))
	}

	code, ok := hexValue(src, at+1, digits)
	if !ok {
		end := min(at+1+digits, len(src))

		return at, fmt.Errorf("%w %q", ErrInvalidEscape, "\\"+string(src[at:end]))
	}

	next := at + 1 + digits

	switch {
	case indicator == 'u' && code >= 0xD800 && code <= 0xDBFF:
		// a high surrogate must be followed by an escaped low surrogate
		if next+1 < len(src) && src[next] == '\\' && src[next+1] == 'u' {
			low, ok := hexValue(src, next+2, 4)
			if ok && low >= 0xDC00 && low <= 0xDFFF {
				return next + 6, nil
			}
		}

		return at, fmt.Errorf("%w: unpaired surrogate \\u%04X", ErrInvalidEscape, code)
	case indicator != 'x' && !utf8.ValidRune(rune(code)):
		return at, fmt.Errorf("%w: \\%c%0*X is not a valid code point", ErrInvalidEscape, indicator, digits, code)
	}

	return next, nil
}

func hexValue(src []rune, from, digits int) (uint32, bool) {
	if from+digits > len(src) {
		return 0, false
	}

	var code uint32

	for _, r := range src[from : from+digits] {
		var digit rune

		switch {
		case r >= '0' && r <= '9':
			digit = r - '0'
		case r >= 'a' && r <= 'f':
			digit = r - 'a' + 10
		case r >= 'A' && r <= 'F':
			digit = r - 'A' + 10
		default:
			return 0, false
		}

		code = code<<4 | uint32(digit)
	}

	return code, true
}
