package regtext

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/joshuapare/regkit/pkg/regkey"
	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/pkg/values"
)

// ExportOptions controls Export.
type ExportOptions struct {
	// OutputEncoding is "UTF-8" (default) or "UTF-16LE", which is what
	// regedit writes.
	OutputEncoding string
	WithBOM        bool
}

// Export writes k and its whole subtree as .reg text. Values and subkeys
// are sorted case-insensitively so the output is stable.
func Export(w io.Writer, k *regkey.Key, opts ExportOptions) error {
	if k.Path() == "" {
		return types.InvalidArgument("regtext: export needs a key with a known path")
	}
	var buf bytes.Buffer
	buf.WriteString(RegFileHeader + CRLF + CRLF)
	if err := exportKey(&buf, k); err != nil {
		return err
	}
	out, err := encodeOutput(buf.String(), opts.OutputEncoding, opts.WithBOM)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func exportKey(buf *bytes.Buffer, k *regkey.Key) error {
	buf.WriteString(KeyOpenBracket + k.Path() + KeyCloseBracket + CRLF)

	vals, ok := k.GetValues()
	if !ok {
		return fmt.Errorf("regtext: export %s: %w", k.Path(), k.LastError())
	}
	slices.SortFunc(vals, func(a, b regkey.Value) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	for _, v := range vals {
		emitValue(buf, v)
	}
	buf.WriteString(CRLF)

	names := k.GetSubkeyNames()
	if !k.LastStatus().OK() {
		return fmt.Errorf("regtext: export %s: %w", k.Path(), k.LastError())
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	for _, name := range names {
		child, ok := k.OpenSubkey(name, types.KEY_READ)
		if !ok {
			return fmt.Errorf("regtext: export %s\\%s: %w", k.Path(), name, k.LastError())
		}
		err := exportKey(buf, child)
		child.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func emitValue(buf *bytes.Buffer, v regkey.Value) {
	start := buf.Len()
	if v.Name == "" {
		buf.WriteString(DefaultValuePrefix)
	} else {
		buf.WriteString(Quote + escapeString(v.Name) + Quote + ValueAssignment)
	}

	switch v.Type {
	case types.REG_SZ:
		// Only payloads that survive a round trip are written as text.
		if s := values.DecodeString(v.Data); bytes.Equal(values.EncodeString(s), v.Data) {
			buf.WriteString(Quote + escapeString(s) + Quote + CRLF)
			return
		}
	case types.REG_DWORD:
		if n, err := values.DWORD(v.Type, v.Data); err == nil {
			fmt.Fprintf(buf, DWORDPrefix+DWORDHexFormat+CRLF, n)
			return
		}
	}

	if v.Type == types.REG_BINARY {
		buf.WriteString(HexPrefix)
	} else {
		fmt.Fprintf(buf, HexTypeFormat, uint32(v.Type))
	}
	writeHex(buf, v.Data, buf.Len()-start)
	buf.WriteString(CRLF)
}

// writeHex writes comma separated bytes, wrapping long data onto indented
// continuation lines the way regedit does.
func writeHex(buf *bytes.Buffer, data []byte, col int) {
	for i, b := range data {
		fmt.Fprintf(buf, "%02x", b)
		col += 2
		if i == len(data)-1 {
			break
		}
		buf.WriteString(HexByteSeparator)
		col++
		if col >= hexLineWidth {
			buf.WriteString(Backslash + CRLF + hexContinuationIndent)
			col = len(hexContinuationIndent)
		}
	}
}
