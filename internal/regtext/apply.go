package regtext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/pkg/regkey"
	"github.com/joshuapare/regkit/pkg/types"
)

// Result summarizes an Apply run.
type Result struct {
	Applied int
	Failed  int
	Errors  []error
}

// Err joins every failure, or returns nil when all operations applied.
func (r Result) Err() error { return errors.Join(r.Errors...) }

// Apply runs ops in order against root. Paths that start with a root key
// name ("HKLM\...") are opened through root's store; any other path is
// relative to root. A failing operation is recorded and the rest still
// run. Deleting something that does not exist counts as applied.
func Apply(root *regkey.Key, ops []Op) Result {
	var res Result
	for _, op := range ops {
		err := applyOne(root, op)
		if err != nil && isDelete(op) && errors.Is(err, types.ErrNotFound) {
			err = nil
		}
		if err != nil {
			logger.Debug("regtext: apply failed", "op", fmt.Sprintf("%T", op), "err", err)
			res.Failed++
			res.Errors = append(res.Errors, err)
			continue
		}
		res.Applied++
	}
	return res
}

func isDelete(op Op) bool {
	switch op.(type) {
	case OpDeleteKey, OpDeleteValue:
		return true
	}
	return false
}

func applyOne(root *regkey.Key, op Op) error {
	switch op := op.(type) {
	case OpCreateKey:
		return withKey(root, op.Path, true, func(*regkey.Key) bool { return true })
	case OpSetValue:
		return withKey(root, op.Path, true, func(k *regkey.Key) bool {
			return k.SetValue(op.Name, op.Type, op.Data)
		})
	case OpDeleteValue:
		return withKey(root, op.Path, false, func(k *regkey.Key) bool {
			return k.DeleteValue(op.Name)
		})
	case OpDeleteKey:
		parent, name := splitLast(op.Path)
		if name == "" {
			return fmt.Errorf("delete %q: %w", op.Path, types.StatusError(types.StatusAccessDenied))
		}
		return withKey(root, parent, false, func(k *regkey.Key) bool {
			return k.DeleteSubkey(name)
		})
	}
	return types.InvalidArgument(fmt.Sprintf("regtext: unknown op %T", op))
}

// withKey opens path, runs fn on it and closes it again. fn reports
// failure through the key's status.
func withKey(root *regkey.Key, path string, create bool, fn func(*regkey.Key) bool) error {
	if _, err := regkey.ParsePath(path); err == nil {
		open := regkey.OpenExisting
		if create {
			open = regkey.OpenPath
		}
		k, err := open(root.API(), path, 0)
		if err != nil {
			return err
		}
		defer k.Close()
		return run(k, path, fn)
	}

	path = regkey.NormalizePath(path)
	if path == "" {
		return run(root, root.Path(), fn)
	}
	var (
		k  *regkey.Key
		ok bool
	)
	if create {
		k, ok = root.CreateSubkey(path, 0)
	} else {
		k, ok = root.OpenSubkey(path, 0)
	}
	if !ok {
		return fmt.Errorf("open %s: %w", path, root.LastError())
	}
	defer k.Close()
	return run(k, k.Path(), fn)
}

func run(k *regkey.Key, path string, fn func(*regkey.Key) bool) error {
	if !fn(k) {
		return fmt.Errorf("%s: %w", path, k.LastError())
	}
	return nil
}

// splitLast separates the final segment of a path. A bare root such as
// "HKLM" yields no name, since roots cannot be deleted.
func splitLast(path string) (string, string) {
	if p, err := regkey.ParsePath(path); err == nil {
		if p.Subkey == "" {
			return path, ""
		}
		i := strings.LastIndexByte(p.Subkey, '\\')
		parent := regkey.Path{Host: p.Host, Root: p.Root, Subkey: p.Subkey[:max(i, 0)]}
		return parent.String(), p.Subkey[i+1:]
	}
	path = regkey.NormalizePath(path)
	i := strings.LastIndexByte(path, '\\')
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
