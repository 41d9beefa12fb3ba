package regtext

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var errUnsupportedEncoding = errors.New("regtext: unsupported encoding")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeInput converts .reg bytes to UTF-8 text. A byte order mark wins
// over the declared encoding. Undeclared input that is not valid UTF-8 is
// read as Windows-1252, which is what ANSI exports contain.
func decodeInput(data []byte, enc string) (string, error) {
	switch {
	case bytes.HasPrefix(data, UTF16LEBOM):
		return decodeWith(utf16le, data[len(UTF16LEBOM):])
	case bytes.HasPrefix(data, UTF8BOM):
		return string(data[len(UTF8BOM):]), nil
	}
	switch strings.ToUpper(enc) {
	case "":
		if utf8.Valid(data) {
			return string(data), nil
		}
		return decodeWith(charmap.Windows1252, data)
	case EncodingUTF8:
		return string(data), nil
	case EncodingUTF16LE:
		return decodeWith(utf16le, data)
	case EncodingWindows1252:
		return decodeWith(charmap.Windows1252, data)
	default:
		return "", errUnsupportedEncoding
	}
}

func decodeWith(e encoding.Encoding, data []byte) (string, error) {
	out, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encodeOutput converts exported text to the requested encoding.
func encodeOutput(text string, enc string, withBOM bool) ([]byte, error) {
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		if withBOM {
			return append(append([]byte{}, UTF8BOM...), text...), nil
		}
		return []byte(text), nil
	case EncodingUTF16LE:
		body, err := utf16le.NewEncoder().String(text)
		if err != nil {
			return nil, err
		}
		if withBOM {
			return append(append([]byte{}, UTF16LEBOM...), body...), nil
		}
		return []byte(body), nil
	default:
		return nil, errUnsupportedEncoding
	}
}
