package regtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/pkg/values"
)

func TestParse(t *testing.T) {
	input := "Windows Registry Editor Version 5.00\r\n" +
		"\r\n" +
		"; comment\r\n" +
		"[HKEY_CURRENT_USER\\Software\\App]\r\n" +
		"@=\"default\"\r\n" +
		"\"Path\"=\"C:\\\\Program Files\\\\\"\r\n" +
		"\"Say \\\"hi\\\"\"=\"x\"\r\n" +
		"\"Count\"=dword:0000002a\r\n" +
		"\"Blob\"=hex:de,ad,be,ef\r\n" +
		"\"Expand\"=hex(2):25,00,00,00\r\n" +
		"\"Big\"=hex(b):01,00,00,00,00,00,00,00\r\n" +
		"\"Gone\"=-\r\n" +
		"\r\n" +
		"[-HKEY_CURRENT_USER\\Software\\Old]\r\n"

	ops, err := Parse([]byte(input), ParseOptions{})
	require.NoError(t, err)

	const path = `HKEY_CURRENT_USER\Software\App`
	want := []Op{
		OpCreateKey{Path: path},
		OpSetValue{Path: path, Name: "", Type: types.REG_SZ, Data: values.EncodeString("default")},
		OpSetValue{Path: path, Name: "Path", Type: types.REG_SZ, Data: values.EncodeString(`C:\Program Files\`)},
		OpSetValue{Path: path, Name: `Say "hi"`, Type: types.REG_SZ, Data: values.EncodeString("x")},
		OpSetValue{Path: path, Name: "Count", Type: types.REG_DWORD, Data: []byte{0x2a, 0, 0, 0}},
		OpSetValue{Path: path, Name: "Blob", Type: types.REG_BINARY, Data: []byte{0xde, 0xad, 0xbe, 0xef}},
		OpSetValue{Path: path, Name: "Expand", Type: types.REG_EXPAND_SZ, Data: []byte{0x25, 0, 0, 0}},
		OpSetValue{Path: path, Name: "Big", Type: types.REG_QWORD, Data: []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		OpDeleteValue{Path: path, Name: "Gone"},
		OpDeleteKey{Path: `HKEY_CURRENT_USER\Software\Old`},
	}
	assert.Equal(t, want, ops)
}

func TestParse_Continuation(t *testing.T) {
	input := "Windows Registry Editor Version 5.00\n\n" +
		"[HKLM\\A]\n" +
		"\"bin\"=hex:01,02,\\\n" +
		"  03,04,\\\n" +
		"  05\n" +
		"\"after\"=dword:1\n"

	ops, err := Parse([]byte(input), ParseOptions{})
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, OpSetValue{Path: `HKLM\A`, Name: "bin", Type: types.REG_BINARY, Data: []byte{1, 2, 3, 4, 5}}, ops[1])
	assert.Equal(t, OpSetValue{Path: `HKLM\A`, Name: "after", Type: types.REG_DWORD, Data: []byte{1, 0, 0, 0}}, ops[2])
}

func TestParse_Encodings(t *testing.T) {
	text := RegFileHeader + CRLF + CRLF + `[HKCU\Caf` + "\u00e9" + `]` + CRLF + `"k"="v"` + CRLF

	utf16, err := encodeOutput(text, EncodingUTF16LE, true)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		enc  string
	}{
		{name: "utf-8", data: []byte(text)},
		{name: "utf-8 bom", data: append(append([]byte{}, UTF8BOM...), text...)},
		{name: "utf-16le bom", data: utf16},
		{name: "utf-16le declared", data: utf16[len(UTF16LEBOM):], enc: EncodingUTF16LE},
		{name: "windows-1252 fallback", data: []byte(RegFileHeader + CRLF + CRLF + "[HKCU\\Caf\xe9]" + CRLF + `"k"="v"` + CRLF)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := Parse(tt.data, ParseOptions{InputEncoding: tt.enc})
			require.NoError(t, err)
			require.Len(t, ops, 2)
			assert.Equal(t, OpCreateKey{Path: "HKCU\\Caf\u00e9"}, ops[0])
		})
	}
}

func TestParse_Prefix(t *testing.T) {
	input := RegFileHeader + "\n[HKEY_LOCAL_MACHINE\\SOFTWARE]\n[hkey_local_machine\\software\\Vendor\\App]\n"

	ops, err := Parse([]byte(input), ParseOptions{Prefix: `HKEY_LOCAL_MACHINE\SOFTWARE`})
	require.NoError(t, err)
	assert.Equal(t, []Op{OpCreateKey{Path: ""}, OpCreateKey{Path: `Vendor\App`}}, ops)

	_, err = Parse([]byte(input), ParseOptions{Prefix: `HKEY_LOCAL_MACHINE\SOFT`})
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing header", input: "[HKCU\\A]\n"},
		{name: "empty", input: ""},
		{name: "value without section", input: RegFileHeader + "\n\"a\"=\"b\"\n"},
		{name: "malformed section", input: RegFileHeader + "\n[HKCU\\A\n"},
		{name: "unterminated string", input: RegFileHeader + "\n[HKCU\\A]\n\"a\"=\"b\n"},
		{name: "bad dword", input: RegFileHeader + "\n[HKCU\\A]\n\"a\"=dword:123456789\n"},
		{name: "bad hex", input: RegFileHeader + "\n[HKCU\\A]\n\"a\"=hex:zz\n"},
		{name: "bad hex type", input: RegFileHeader + "\n[HKCU\\A]\n\"a\"=hex(q):00\n"},
		{name: "unsupported payload", input: RegFileHeader + "\n[HKCU\\A]\n\"a\"=qword:1\n"},
		{name: "dangling continuation", input: RegFileHeader + "\n[HKCU\\A]\n\"a\"=hex:00,\\\n"},
		{name: "unsupported encoding", input: RegFileHeader + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ParseOptions{}
			if tt.name == "unsupported encoding" {
				opts.InputEncoding = "EBCDIC"
			}
			_, err := Parse([]byte(tt.input), opts)
			assert.Error(t, err)
		})
	}
}

func TestParse_LegacyHeader(t *testing.T) {
	ops, err := Parse([]byte("REGEDIT4\r\n\r\n[HKCU\\A]\r\n\"n\"=dword:00000001\r\n"), ParseOptions{})
	require.NoError(t, err)
	assert.Len(t, ops, 2)
}

func TestUnescapeRegString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, `plain`},
		{`C:\\`, `C:\`},
		{`\\\\`, `\\`},
		{`a\"b`, `a"b`},
		{`C:\Windows`, `C:\Windows`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unescapeRegString(tt.in), tt.in)
		if tt.in != `C:\Windows` {
			assert.Equal(t, tt.in, escapeString(tt.want))
		}
	}
}

func TestFindClosingQuote(t *testing.T) {
	assert.Equal(t, 5, findClosingQuote(`"C:\\"=x`))
	assert.Equal(t, 7, findClosingQuote(`"Te\"st"=x`))
	assert.Equal(t, -1, findClosingQuote(`"open`))
}
