// Package regtext reads and writes Windows .reg text and applies it to keys.
package regtext

const (
	// RegFileHeader is the required first line of a version 5 .reg file.
	RegFileHeader = "Windows Registry Editor Version 5.00"

	// RegFileHeaderV4 is the legacy ANSI header. The body syntax is the same.
	RegFileHeaderV4 = "REGEDIT4"

	KeyOpenBracket     = "["
	KeyCloseBracket    = "]"
	DeleteKeyPrefix    = "-"
	ValueAssignment    = "="
	DefaultValuePrefix = "@="
	CommentPrefix      = ";"
	DeleteValueToken   = "-"

	Quote            = "\""
	Backslash        = "\\"
	EscapedQuote     = "\\\""
	EscapedBackslash = "\\\\"

	CRLF = "\r\n"
	CR   = "\r"

	DWORDPrefix   = "dword:"
	HexPrefix     = "hex:"
	HexTypeFormat = "hex(%x):"

	EncodingUTF8        = "UTF-8"
	EncodingUTF16LE     = "UTF-16LE"
	EncodingWindows1252 = "WINDOWS-1252"

	HexByteSeparator = ","
	DWORDHexFormat   = "%08x"
	DWORDHexMaxLen   = 8

	// hexLineWidth is where exported hex data wraps onto a continuation line.
	hexLineWidth = 76

	// hexContinuationIndent starts every wrapped hex line.
	hexContinuationIndent = "  "

	ScannerInitialBufferSize = 64 * 1024
	ScannerMaxLineSize       = 16 * 1024 * 1024
)

var (
	// UTF16LEBOM is the byte order mark for UTF-16 little-endian.
	UTF16LEBOM = []byte{0xFF, 0xFE}

	// UTF8BOM is the byte order mark for UTF-8.
	UTF8BOM = []byte{0xEF, 0xBB, 0xBF}
)
