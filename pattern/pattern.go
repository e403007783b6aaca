// Package pattern represents byte signatures with per-byte wildcards, the
// form used to locate code and data whose address shifts between builds.
package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Default mask symbols. 'x' marks a byte that must match exactly, '?'
// marks a byte that matches anything.
const (
	MatchSymbol    = 'x'
	WildcardSymbol = '?'
)

// ErrLengthMismatch is returned when the byte sequence and mask differ in length.
var ErrLengthMismatch = errors.New("pattern and mask must be of the same length")

// ErrEmptyPattern is returned when a pattern would contain no elements.
var ErrEmptyPattern = errors.New("empty pattern")

// InvalidMaskSymbolError reports a mask character that is neither the
// match symbol nor the wildcard symbol.
type InvalidMaskSymbolError struct {
	Position int
	Symbol   byte
}

func (e *InvalidMaskSymbolError) Error() string {
	return fmt.Sprintf("invalid mask symbol %q at position %d", e.Symbol, e.Position)
}

// InvalidByteTokenError reports a hex-string token that is neither a
// wildcard nor a two-digit hex byte.
type InvalidByteTokenError struct {
	Position int
	Token    string
}

func (e *InvalidByteTokenError) Error() string {
	return fmt.Sprintf("invalid byte token %q at position %d", e.Token, e.Position)
}

// Pattern is an immutable sequence of exact-byte and wildcard elements,
// safe to reuse across any number of scans.
type Pattern struct {
	bytes []byte
	wild  []bool
}

// Parse builds a Pattern from a byte sequence and a mask using the default
// symbols: 'x' requires an exact match, '?' matches any byte.
func Parse(pattern []byte, mask string) (Pattern, error) {
	return ParseWithSymbols(pattern, mask, MatchSymbol, WildcardSymbol)
}

// ParseWithSymbols is Parse with caller-chosen match and wildcard symbols.
// The mask must be exactly as long as the byte sequence and every mask
// character must be one of the two symbols.
func ParseWithSymbols(pattern []byte, mask string, match, wildcard byte) (Pattern, error) {
	if len(pattern) != len(mask) {
		return Pattern{}, fmt.Errorf("%d pattern bytes, %d mask symbols: %w", len(pattern), len(mask), ErrLengthMismatch)
	}
	if len(pattern) == 0 {
		return Pattern{}, ErrEmptyPattern
	}

	p := Pattern{
		bytes: make([]byte, len(pattern)),
		wild:  make([]bool, len(pattern)),
	}
	copy(p.bytes, pattern)

	for i := 0; i < len(mask); i++ {
		switch mask[i] {
		case match:
		case wildcard:
			p.wild[i] = true
			p.bytes[i] = 0
		default:
			return Pattern{}, &InvalidMaskSymbolError{Position: i, Symbol: mask[i]}
		}
	}
	return p, nil
}

// Exact builds a Pattern that matches the given bytes with no wildcards.
func Exact(pattern []byte) (Pattern, error) {
	return Parse(pattern, strings.Repeat(string(rune(MatchSymbol)), len(pattern)))
}

// ParseString builds a Pattern from the conventional signature notation:
// whitespace-separated tokens where "?" or "??" is a wildcard and any
// other token is a two-digit hex byte, e.g. "48 8B 05 ?? ?? ?? ?? C3".
func ParseString(s string) (Pattern, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Pattern{}, ErrEmptyPattern
	}

	p := Pattern{
		bytes: make([]byte, len(fields)),
		wild:  make([]bool, len(fields)),
	}
	for i, tok := range fields {
		if tok == "?" || tok == "??" {
			p.wild[i] = true
			continue
		}
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return Pattern{}, &InvalidByteTokenError{Position: i, Token: tok}
		}
		p.bytes[i] = byte(v)
	}
	return p, nil
}

// Len returns the number of elements in the pattern.
func (p Pattern) Len() int {
	return len(p.bytes)
}

// IsWildcard reports whether element i matches any byte.
func (p Pattern) IsWildcard(i int) bool {
	return p.wild[i]
}

// Byte returns the exact byte required at element i; zero for wildcards.
func (p Pattern) Byte(i int) byte {
	return p.bytes[i]
}

// Match reports whether the pattern matches at the start of window. The
// window must hold at least Len bytes; a shorter window never matches.
func (p Pattern) Match(window []byte) bool {
	if len(window) < len(p.bytes) {
		return false
	}
	for i, b := range p.bytes {
		if !p.wild[i] && window[i] != b {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	var sb strings.Builder
	for i, b := range p.bytes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if p.wild[i] {
			sb.WriteString("??")
		} else {
			fmt.Fprintf(&sb, "%02X", b)
		}
	}
	return sb.String()
}
