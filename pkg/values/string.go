package values

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

const utf16Unit = 2

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeUTF16 converts UTF-16LE bytes to UTF-8. A trailing odd byte is
// dropped; unpaired surrogates become U+FFFD.
func decodeUTF16(data []byte) string {
	if len(data)%utf16Unit == 1 {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		return ""
	}
	if isASCII16(data) {
		b := make([]byte, len(data)/utf16Unit)
		for i := range b {
			b[i] = data[i*utf16Unit]
		}
		return string(b)
	}
	out, err := utf16le.NewDecoder().Bytes(data)
	if err != nil {
		return ""
	}
	return string(out)
}

// encodeUTF16 converts s to UTF-16LE without a terminator.
func encodeUTF16(s string) []byte {
	out, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return out
}

func isASCII16(data []byte) bool {
	for i := 0; i+1 < len(data); i += utf16Unit {
		if data[i+1] != 0 || data[i] >= 0x80 {
			return false
		}
	}
	return true
}

// indexNUL returns the unit offset of the first NUL code unit at or after
// from, or -1.
func indexNUL(data []byte, from int) int {
	for i := from * utf16Unit; i+1 < len(data); i += utf16Unit {
		if binary.LittleEndian.Uint16(data[i:]) == 0 {
			return i / utf16Unit
		}
	}
	return -1
}

// DecodeString decodes a REG_SZ-style payload, stopping at the first NUL.
// Payloads without a terminator decode to their full length.
func DecodeString(data []byte) string {
	if n := indexNUL(data, 0); n >= 0 {
		data = data[:n*utf16Unit]
	}
	return decodeUTF16(data)
}

// EncodeString encodes s as UTF-16LE followed by a NUL terminator.
func EncodeString(s string) []byte {
	enc := encodeUTF16(s)
	buf := make([]byte, len(enc)+utf16Unit)
	copy(buf, enc)
	return buf
}

// DecodeMultiString splits a REG_MULTI_SZ payload. Each string ends at its
// NUL; the list ends where only the final terminator remains, or at the end
// of the buffer. Empty strings before the final terminator are kept, so
// ["a", "bb", ""] survives an encode/decode round trip.
func DecodeMultiString(data []byte) []string {
	units := len(data) / utf16Unit
	list := []string{}
	for pos := 0; pos < units; {
		if pos == units-1 && binary.LittleEndian.Uint16(data[pos*utf16Unit:]) == 0 {
			break
		}
		end := indexNUL(data, pos)
		if end < 0 {
			end = units
		}
		list = append(list, decodeUTF16(data[pos*utf16Unit:end*utf16Unit]))
		pos = end + 1
	}
	return list
}

// EncodeMultiString packs list as NUL-terminated strings plus one trailing
// NUL. The buffer is sized once: sum(len+1)+1 code units.
func EncodeMultiString(list []string) []byte {
	encoded := make([][]byte, len(list))
	size := utf16Unit
	for i, s := range list {
		encoded[i] = encodeUTF16(s)
		size += len(encoded[i]) + utf16Unit
	}
	buf := make([]byte, size)
	off := 0
	for _, e := range encoded {
		off += copy(buf[off:], e) + utf16Unit
	}
	return buf
}
