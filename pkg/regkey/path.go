package regkey

import (
	"fmt"
	"strings"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// rootTable resolves every accepted root spelling. Keys are upper case.
var rootTable = func() map[string]native.Handle {
	short := map[native.Handle]string{
		native.HKEY_CLASSES_ROOT:        "HKCR",
		native.HKEY_CURRENT_USER:        "HKCU",
		native.HKEY_LOCAL_MACHINE:       "HKLM",
		native.HKEY_USERS:               "HKU",
		native.HKEY_CURRENT_CONFIG:      "HKCC",
		native.HKEY_PERFORMANCE_DATA:    "HKPD",
		native.HKEY_PERFORMANCE_TEXT:    "HKPT",
		native.HKEY_PERFORMANCE_NLSTEXT: "HKPN",
	}
	m := make(map[string]native.Handle, 2*len(short))
	for h, abbr := range short {
		m[h.RootName()] = h
		m[abbr] = h
	}
	return m
}()

// ParseRoot resolves a root name such as "HKLM" or "hkey_current_user".
func ParseRoot(name string) (native.Handle, bool) {
	h, ok := rootTable[strings.ToUpper(strings.TrimSpace(name))]
	return h, ok
}

// Path is a parsed `[\\host\]ROOT[\sub\path]` string.
type Path struct {
	Host   string
	Root   native.Handle
	Subkey string
}

// ParsePath splits a full key path. Forward slashes are accepted as
// separators and empty segments are dropped.
func ParsePath(p string) (Path, error) {
	norm := strings.ReplaceAll(p, "/", `\`)
	var host string
	if rest, ok := strings.CutPrefix(norm, `\\`); ok {
		host, norm, _ = strings.Cut(rest, `\`)
		if host == "" {
			return Path{}, types.InvalidArgument(fmt.Sprintf("missing host in %q", p))
		}
	}
	segs := splitSegments(norm)
	if len(segs) == 0 {
		return Path{}, types.InvalidArgument(fmt.Sprintf("missing root key in %q", p))
	}
	root, ok := ParseRoot(segs[0])
	if !ok {
		return Path{}, types.InvalidArgument(fmt.Sprintf("unknown root key %q", segs[0]))
	}
	return Path{Host: host, Root: root, Subkey: strings.Join(segs[1:], `\`)}, nil
}

// String renders the canonical long form.
func (p Path) String() string {
	return joinPath(hostPrefix(p.Host)+p.Root.RootName(), p.Subkey)
}

func splitSegments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '\\' || r == '/' })
}

// NormalizePath converts separators to `\` and drops empty segments.
func NormalizePath(p string) string {
	return strings.Join(splitSegments(p), `\`)
}

// joinPath appends rel to base. An unknown base ("") stays unknown.
func joinPath(base, rel string) string {
	rel = NormalizePath(rel)
	switch {
	case base == "":
		return ""
	case rel == "":
		return base
	}
	return base + `\` + rel
}

func parentPath(p string) string {
	if i := strings.LastIndexByte(p, '\\'); i >= 0 {
		return p[:i]
	}
	return ""
}

func hostPrefix(host string) string {
	host = strings.TrimLeft(host, `\`)
	if host == "" {
		return ""
	}
	return `\\` + host + `\`
}
