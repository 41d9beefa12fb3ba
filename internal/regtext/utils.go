package regtext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

// unescapeRegString undoes the \\ and \" escapes of a quoted .reg string.
func unescapeRegString(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, Backslash, EscapedBackslash)
	return strings.ReplaceAll(s, Quote, EscapedQuote)
}

// findClosingQuote returns the index of the quote that closes the one at
// position 0, skipping quotes preceded by an odd number of backslashes.
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		n := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			n++
		}
		if n%2 == 0 {
			return i
		}
	}
	return -1
}

// parseHexType reads the type of a "hex:" or "hex(n):" payload. The number
// in parentheses is hexadecimal, so hex(b) is REG_QWORD.
func parseHexType(payload string) (types.RegType, string, error) {
	if rest, ok := strings.CutPrefix(payload, HexPrefix); ok {
		return types.REG_BINARY, rest, nil
	}
	inner, rest, ok := strings.Cut(strings.TrimPrefix(payload, "hex("), "):")
	if !ok || !strings.HasPrefix(payload, "hex(") {
		return 0, "", fmt.Errorf("malformed hex payload %q", payload)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(inner), 16, 32)
	if err != nil {
		return 0, "", fmt.Errorf("invalid hex type %q", inner)
	}
	return types.RegType(n), rest, nil
}

// parseHexBytes decodes comma separated hex bytes. Whitespace and the
// backslashes left over from continuation lines are skipped, and a single
// digit is read as a whole byte.
func parseHexBytes(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)/3+1)
	for _, part := range strings.Split(s, HexByteSeparator) {
		part = strings.Map(func(r rune) rune {
			switch r {
			case ' ', '\t', '\r', '\n', '\\':
				return -1
			}
			return r
		}, part)
		if part == "" {
			continue
		}
		if len(part) > 2 {
			return nil, fmt.Errorf("invalid hex byte %q", part)
		}
		b, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q", part)
		}
		out = append(out, byte(b))
	}
	return out, nil
}

var errMissingHeader = errors.New("regtext: missing header")
