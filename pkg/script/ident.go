package script

import (
	"fmt"
	"strings"
)

// Sanitize converts an arbitrary display name into a valid code identifier.
//
// Names that are already valid identifiers pass through unchanged. Every
// other printable character is escaped as "_x" followed by two uppercase
// hex digits, and a leading digit is escaped the same way so the result
// never starts with a digit. An empty name becomes "_".
//
// Known limitation: a name that itself contains a literal substring of the
// escape form ("_x" plus two hex digits) will not survive Unsanitize. Such
// names do not occur in host documents; the mapper is best-effort by design.
func Sanitize(name string) string {
	if name == "" {
		return "_"
	}

	var b strings.Builder
	for i, r := range name {
		switch {
		case isIdentRune(r) && !(i == 0 && isDigit(r)):
			b.WriteRune(r)
		case r < 0x80:
			fmt.Fprintf(&b, "_x%02X", r)
		default:
			// Non-ASCII runes escape each UTF-8 byte.
			for _, c := range []byte(string(r)) {
				fmt.Fprintf(&b, "_x%02X", c)
			}
		}
	}
	return b.String()
}

// Unsanitize is the best-effort inverse of Sanitize. Escape sequences of
// the form "_xNN" are decoded back to their original characters; anything
// else passes through unchanged, including malformed escapes.
func Unsanitize(ident string) string {
	if !strings.Contains(ident, "_x") {
		return ident
	}

	var raw []byte
	for i := 0; i < len(ident); {
		if ident[i] == '_' && i+3 < len(ident) && ident[i+1] == 'x' && isHex(ident[i+2]) && isHex(ident[i+3]) {
			raw = append(raw, hexVal(ident[i+2])<<4|hexVal(ident[i+3]))
			i += 4
			continue
		}
		raw = append(raw, ident[i])
		i++
	}
	return string(raw)
}

// IsValidIdentifier reports whether name is already a legal identifier:
// a letter or underscore followed by letters, digits, or underscores.
func IsValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if !isIdentRune(r) || (i == 0 && isDigit(r)) {
			return false
		}
	}
	return true
}

func isIdentRune(r rune) bool {
	return r == '_' || isDigit(r) ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
