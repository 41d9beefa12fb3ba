package regtext

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/pkg/values"
)

// Op is a single edit parsed from .reg text.
type Op interface{ isOp() }

// OpCreateKey opens or creates Path.
type OpCreateKey struct {
	Path string
}

// OpDeleteKey removes Path and everything below it.
type OpDeleteKey struct {
	Path string
}

// OpSetValue writes one value under Path, creating the key if needed.
type OpSetValue struct {
	Path string
	Name string
	Type types.RegType
	Data []byte
}

// OpDeleteValue removes one value under Path.
type OpDeleteValue struct {
	Path string
	Name string
}

func (OpCreateKey) isOp()   {}
func (OpDeleteKey) isOp()   {}
func (OpSetValue) isOp()    {}
func (OpDeleteValue) isOp() {}

// ParseOptions controls Parse.
type ParseOptions struct {
	// InputEncoding declares the text encoding ("UTF-8", "UTF-16LE",
	// "WINDOWS-1252"). A byte order mark overrides it.
	InputEncoding string

	// Prefix is stripped from every key path, which makes the resulting
	// paths relative. Sections outside the prefix are an error.
	Prefix string
}

// Parse converts .reg text into edit operations, in file order.
func Parse(data []byte, opts ParseOptions) ([]Op, error) {
	text, err := decodeInput(data, opts.InputEncoding)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxLineSize)

	var (
		ops        []Op
		current    string
		inSection  bool
		seenHeader bool
		pending    strings.Builder
		lineNo     int
	)
	for scanner.Scan() {
		lineNo++
		trim := strings.TrimSpace(strings.TrimRight(scanner.Text(), CR))
		if pending.Len() == 0 && (trim == "" || strings.HasPrefix(trim, CommentPrefix)) {
			continue
		}
		if !seenHeader {
			if trim != RegFileHeader && trim != RegFileHeaderV4 {
				return nil, errMissingHeader
			}
			seenHeader = true
			continue
		}
		if !strings.HasPrefix(trim, KeyOpenBracket) || pending.Len() > 0 {
			if cont, ok := strings.CutSuffix(trim, Backslash); ok && continues(pending.String()+cont) {
				pending.WriteString(cont)
				continue
			}
		}
		line := trim
		if pending.Len() > 0 {
			pending.WriteString(trim)
			line = pending.String()
			pending.Reset()
		}

		if strings.HasPrefix(line, KeyOpenBracket) {
			if !strings.HasSuffix(line, KeyCloseBracket) {
				return nil, fmt.Errorf("regtext: line %d: malformed section %q", lineNo, line)
			}
			section := strings.TrimSpace(line[1 : len(line)-1])
			del := strings.HasPrefix(section, DeleteKeyPrefix)
			if del {
				section = strings.TrimSpace(section[1:])
			}
			path, err := stripPrefix(section, opts.Prefix)
			if err != nil {
				return nil, fmt.Errorf("regtext: line %d: %w", lineNo, err)
			}
			if del {
				ops = append(ops, OpDeleteKey{Path: path})
				inSection = false
				continue
			}
			ops = append(ops, OpCreateKey{Path: path})
			current, inSection = path, true
			continue
		}
		if !inSection {
			return nil, fmt.Errorf("regtext: line %d: value without section", lineNo)
		}
		op, err := parseValueLine(current, line)
		if err != nil {
			return nil, fmt.Errorf("regtext: line %d: %w", lineNo, err)
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("regtext: scanning: %w", err)
	}
	if !seenHeader {
		return nil, errMissingHeader
	}
	if pending.Len() > 0 {
		return nil, fmt.Errorf("regtext: line %d: dangling continuation", lineNo)
	}
	return ops, nil
}

// continues reports whether a line that ended in a backslash is an
// unfinished hex payload rather than a complete value.
func continues(line string) bool {
	_, payload, ok := splitValueLine(line)
	return ok && strings.HasPrefix(strings.TrimSpace(payload), "hex")
}

// splitValueLine separates `"name"=payload` or `@=payload`.
func splitValueLine(line string) (string, string, bool) {
	if rest, ok := strings.CutPrefix(line, DefaultValuePrefix); ok {
		return "", rest, true
	}
	if !strings.HasPrefix(line, Quote) {
		return "", "", false
	}
	end := findClosingQuote(line)
	if end < 0 {
		return "", "", false
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(line[end+1:]), ValueAssignment)
	if !ok {
		return "", "", false
	}
	return unescapeRegString(line[1:end]), rest, true
}

func parseValueLine(path, line string) (Op, error) {
	name, payload, ok := splitValueLine(line)
	if !ok {
		return nil, fmt.Errorf("malformed value line %q", line)
	}
	payload = strings.TrimSpace(payload)
	switch {
	case payload == DeleteValueToken:
		return OpDeleteValue{Path: path, Name: name}, nil

	case strings.HasPrefix(payload, Quote):
		if len(payload) < 2 || findClosingQuote(payload) != len(payload)-1 {
			return nil, fmt.Errorf("unterminated string %q", payload)
		}
		s := unescapeRegString(payload[1 : len(payload)-1])
		return OpSetValue{Path: path, Name: name, Type: types.REG_SZ, Data: values.EncodeString(s)}, nil

	case strings.HasPrefix(payload, DWORDPrefix):
		digits := payload[len(DWORDPrefix):]
		if digits == "" || len(digits) > DWORDHexMaxLen {
			return nil, fmt.Errorf("invalid dword %q", payload)
		}
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid dword %q", payload)
		}
		return OpSetValue{Path: path, Name: name, Type: types.REG_DWORD, Data: values.EncodeDWORD(uint32(n), types.REG_DWORD)}, nil

	case strings.HasPrefix(payload, "hex"):
		typ, body, err := parseHexType(payload)
		if err != nil {
			return nil, err
		}
		data, err := parseHexBytes(body)
		if err != nil {
			return nil, err
		}
		return OpSetValue{Path: path, Name: name, Type: typ, Data: data}, nil
	}
	return nil, fmt.Errorf("unsupported value %q", payload)
}

// stripPrefix removes prefix from a section path, case-insensitively and
// on a segment boundary.
func stripPrefix(path, prefix string) (string, error) {
	path = strings.Trim(strings.ReplaceAll(path, "/", Backslash), Backslash)
	prefix = strings.Trim(strings.ReplaceAll(prefix, "/", Backslash), Backslash)
	if prefix == "" {
		return path, nil
	}
	if len(path) < len(prefix) || !strings.EqualFold(path[:len(prefix)], prefix) {
		return "", fmt.Errorf("key %q is outside %q", path, prefix)
	}
	rest := path[len(prefix):]
	if rest != "" && rest[0] != '\\' {
		return "", fmt.Errorf("key %q is outside %q", path, prefix)
	}
	return strings.TrimLeft(rest, Backslash), nil
}
