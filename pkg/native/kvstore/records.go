package kvstore

import (
	"encoding/binary"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/joshuapare/regkit/pkg/native"
)

const (
	prefixNode  = 'n'
	prefixChild = 'c'
	prefixValue = 'v'
	sep         = '|'
)

var seqKey = []byte("s|node")

// firstDynamicID leaves room below it for the predefined roots.
const firstDynamicID = 1 << 8

var rootIDs = map[native.Handle]uint64{
	native.HKEY_CLASSES_ROOT:        1,
	native.HKEY_CURRENT_USER:        2,
	native.HKEY_LOCAL_MACHINE:       3,
	native.HKEY_USERS:               4,
	native.HKEY_PERFORMANCE_DATA:    5,
	native.HKEY_CURRENT_CONFIG:      6,
	native.HKEY_PERFORMANCE_TEXT:    7,
	native.HKEY_PERFORMANCE_NLSTEXT: 8,
}

func isRootID(id uint64) bool { return id > 0 && id < firstDynamicID }

type nodeRecord struct {
	ID        uint64 `msgpack:"id"`
	Parent    uint64 `msgpack:"p"`
	Name      string `msgpack:"n"`
	Depth     int    `msgpack:"d"`
	LastWrite int64  `msgpack:"t"`
}

type childRecord struct {
	ID   uint64 `msgpack:"id"`
	Name string `msgpack:"n"`
}

type valueRecord struct {
	Name string `msgpack:"n"`
	Type uint32 `msgpack:"t"`
	Data []byte `msgpack:"d"`
}

func (n nodeRecord) lastWrite() time.Time {
	if n.LastWrite == 0 {
		return time.Time{}
	}
	return time.Unix(0, n.LastWrite).UTC()
}

func fold(name string) string { return strings.ToLower(name) }

func appendID(b []byte, id uint64) []byte {
	return binary.BigEndian.AppendUint64(b, id)
}

func nodeKey(id uint64) []byte {
	return appendID([]byte{prefixNode, sep}, id)
}

func childPrefix(parent uint64) []byte {
	return append(appendID([]byte{prefixChild, sep}, parent), sep)
}

func childKey(parent uint64, name string) []byte {
	return append(childPrefix(parent), fold(name)...)
}

func valuePrefix(id uint64) []byte {
	return append(appendID([]byte{prefixValue, sep}, id), sep)
}

func valueKey(id uint64, name string) []byte {
	return append(valuePrefix(id), fold(name)...)
}

func encode(v any) ([]byte, error) { return msgpack.Marshal(v) }

func decode(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// utf16Len counts UTF-16 code units, the unit registry name limits use.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// splitPath breaks a relative key path into segments. Both separators are
// accepted and empty segments are dropped.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '\\' || r == '/' })
}

func validName(name string) bool {
	return name != "" && utf8.ValidString(name) && !strings.ContainsAny(name, `\/`)
}
