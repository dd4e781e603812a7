package hostval

import (
	"fmt"
)

const (
	// MaxSymbolLen is the longest legal symbol.
	MaxSymbolLen = 32

	// MaxSmallSymbolLen is the longest symbol stored inline.
	MaxSmallSymbolLen = 9

	symbolCodeBits = 6
)

// SymbolAlphabet lists the legal symbol characters in ascending order.
const SymbolAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// symbolCode maps a character to its 6-bit code, 0 if illegal.
// Codes ascend with the character so packed symbols order like strings.
func symbolCode(ch byte) uint64 {
	switch {
	case ch >= '0' && ch <= '9':
		return uint64(ch-'0') + 1
	case ch >= 'A' && ch <= 'Z':
		return uint64(ch-'A') + 11
	case ch == '_':
		return 37
	case ch >= 'a' && ch <= 'z':
		return uint64(ch-'a') + 38
	}
	return 0
}

// ValidateSymbol checks a symbol's length and characters.
func ValidateSymbol(s string) error {
	if len(s) > MaxSymbolLen {
		return &ShapeError{Type: ScvSymbolType, Reason: fmt.Sprintf("length %d exceeds %d", len(s), MaxSymbolLen)}
	}
	for i := 0; i < len(s); i++ {
		if symbolCode(s[i]) == 0 {
			return &ShapeError{Type: ScvSymbolType, Reason: fmt.Sprintf("illegal character %q at %d", s[i], i)}
		}
	}
	return nil
}

// encodeSmallSymbol packs a valid symbol of at most MaxSmallSymbolLen
// characters, first character most significant.
func encodeSmallSymbol(s string) uint64 {
	var body uint64
	for i := 0; i < MaxSmallSymbolLen; i++ {
		body <<= symbolCodeBits
		if i < len(s) {
			body |= symbolCode(s[i])
		}
	}
	return body
}

// decodeSmallSymbol unpacks an inline symbol body.
func decodeSmallSymbol(body uint64) (string, error) {
	if body>>(symbolCodeBits*MaxSmallSymbolLen) != 0 {
		return "", &InvalidTagError{Tag: TagSymbolSmall, Want: "a 54-bit body"}
	}
	buf := make([]byte, 0, MaxSmallSymbolLen)
	ended := false
	for i := MaxSmallSymbolLen - 1; i >= 0; i-- {
		code := (body >> (symbolCodeBits * uint(i))) & (1<<symbolCodeBits - 1)
		if code == 0 {
			ended = true
			continue
		}
		if ended {
			return "", &InvalidTagError{Tag: TagSymbolSmall, Want: "zero padding only after the last character"}
		}
		buf = append(buf, SymbolAlphabet[code-1])
	}
	return string(buf), nil
}

// SmallSymbol returns an inline symbol value without an environment.
// The symbol must be valid and at most MaxSmallSymbolLen long.
func SmallSymbol(s string) (Val, error) {
	if err := ValidateSymbol(s); err != nil {
		return 0, err
	}
	if len(s) > MaxSmallSymbolLen {
		return 0, ErrOverflow
	}
	return fromBody(TagSymbolSmall, encodeSmallSymbol(s)), nil
}
