package kvstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
	"github.com/dgraph-io/badger/v4"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// Options configures a Store.
type Options struct {
	// Dir holds the local database. Ignored when InMemory is set.
	Dir string
	// InMemory keeps every database (local and remote) in memory.
	InMemory bool
	// ReadOnly refuses every mutation with StatusAccessDenied.
	ReadOnly bool
	// SyncWrites fsyncs every committed transaction.
	SyncWrites bool
	// Hosts maps remote host names to database directories. An empty
	// directory opens an in-memory database for that host.
	Hosts map[string]string
	// Limits bounds names, payloads and depth. Zero means DefaultLimits.
	Limits types.Limits
	// Metrics receives call counters. Nil creates a private set.
	Metrics *metrics.Set
}

// Store is a badger-backed native.API. It is safe for concurrent use.
type Store struct {
	opts    Options
	limits  types.Limits
	metrics *metrics.Set

	local *database

	mu    sync.Mutex
	hosts map[string]*database

	handles *xsync.MapOf[native.Handle, *openKey]
	next    atomic.Uint64
}

var _ native.API = (*Store)(nil)

type database struct {
	host     string
	db       *badger.DB
	seq      *badger.Sequence
	readOnly bool

	// writeMu serializes read-write transactions so concurrent callers on
	// the same key queue instead of failing with a badger conflict.
	writeMu sync.Mutex
}

type openKey struct {
	db     *database
	id     uint64
	access types.Access
}

// firstHandle keeps dynamic handles clear of InvalidHandle and the
// predefined range.
const firstHandle = 0x1000

// Open opens the local database and prepares remote hosts for lazy opening.
func Open(opts Options) (*Store, error) {
	s := &Store{
		opts:    opts,
		limits:  opts.Limits,
		metrics: opts.Metrics,
		hosts:   make(map[string]*database),
		handles: xsync.NewMapOf[native.Handle, *openKey](),
	}
	if s.limits == (types.Limits{}) {
		s.limits = types.DefaultLimits()
	}
	if s.metrics == nil {
		s.metrics = metrics.NewSet()
	}
	s.next.Store(firstHandle)

	if !opts.InMemory && opts.Dir == "" {
		return nil, types.InvalidArgument("kvstore: Dir is required unless InMemory is set")
	}
	local, err := s.openDatabase("", opts.Dir)
	if err != nil {
		return nil, err
	}
	s.local = local
	logger.Debug("kvstore opened", "dir", opts.Dir, "inMemory", opts.InMemory, "readOnly", opts.ReadOnly)
	return s, nil
}

func (s *Store) openDatabase(host, dir string) (*database, error) {
	inMemory := s.opts.InMemory || dir == ""
	bopts := badger.DefaultOptions(dir)
	if inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts = bopts.WithSyncWrites(s.opts.SyncWrites)
	if s.opts.ReadOnly && !inMemory {
		bopts = bopts.WithReadOnly(true)
	}
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindStore, Msg: fmt.Sprintf("kvstore: open %q", dir), Err: err}
	}
	d := &database{host: host, db: db, readOnly: s.opts.ReadOnly}
	if !s.opts.ReadOnly {
		seq, err := db.GetSequence(seqKey, 128)
		if err != nil {
			_ = db.Close()
			return nil, &types.Error{Kind: types.ErrKindStore, Msg: "kvstore: node sequence", Err: err}
		}
		d.seq = seq
	}
	return d, nil
}

// Close releases every database. Open handles become invalid.
func (s *Store) Close() error {
	s.handles.Clear()

	s.mu.Lock()
	dbs := []*database{s.local}
	for _, d := range s.hosts {
		dbs = append(dbs, d)
	}
	s.hosts = make(map[string]*database)
	s.mu.Unlock()

	var errs []error
	for _, d := range dbs {
		if d == nil {
			continue
		}
		if d.seq != nil {
			errs = append(errs, d.seq.Release())
		}
		errs = append(errs, d.db.Close())
	}
	return errors.Join(errs...)
}

// Metrics returns the set holding the call counters.
func (s *Store) Metrics() *metrics.Set { return s.metrics }

// OpenHandles reports how many non-predefined handles are open.
func (s *Store) OpenHandles() int { return s.handles.Size() }

// record counts a call and passes its status through.
func (s *Store) record(op string, st types.Status) types.Status {
	s.metrics.GetOrCreateCounter(fmt.Sprintf(`regkit_native_calls_total{op=%q,status="%d"}`, op, uint32(st))).Inc()
	return st
}

func (s *Store) defaultAccess(d *database) types.Access {
	if d.readOnly {
		return types.KEY_READ
	}
	return types.KEY_ALL_ACCESS
}

// resolve maps a handle to its open key. Predefined handles resolve to the
// local roots with full default access.
func (s *Store) resolve(h native.Handle) (*openKey, types.Status) {
	if id, ok := rootIDs[h]; ok {
		return &openKey{db: s.local, id: id, access: s.defaultAccess(s.local)}, types.StatusSuccess
	}
	if h == native.InvalidHandle {
		return nil, types.StatusInvalidHandle
	}
	k, ok := s.handles.Load(h)
	if !ok {
		return nil, types.StatusInvalidHandle
	}
	return k, types.StatusSuccess
}

// resolveWith also checks that the handle was opened with want.
func (s *Store) resolveWith(h native.Handle, want types.Access) (*openKey, types.Status) {
	k, st := s.resolve(h)
	if !st.OK() {
		return nil, st
	}
	if !k.access.Has(want) {
		return nil, types.StatusAccessDenied
	}
	return k, types.StatusSuccess
}

func (s *Store) register(d *database, id uint64, access types.Access) native.Handle {
	h := native.Handle(s.next.Add(4))
	s.handles.Store(h, &openKey{db: d, id: id, access: access})
	return h
}

// grant resolves the access a new handle receives.
func (s *Store) grant(d *database, access types.Access) (types.Access, types.Status) {
	if access == types.DefaultAccess {
		return s.defaultAccess(d), types.StatusSuccess
	}
	if d.readOnly && access.Writes() {
		return 0, types.StatusAccessDenied
	}
	return access, types.StatusSuccess
}

func (s *Store) host(name string) (*database, types.Status) {
	name = strings.ToLower(strings.TrimLeft(name, `\`))
	if name == "" {
		return s.local, types.StatusSuccess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.hosts[name]; ok {
		return d, types.StatusSuccess
	}
	var (
		dir   string
		found bool
	)
	for h, hdir := range s.opts.Hosts {
		if strings.EqualFold(h, name) {
			dir, found = hdir, true
			break
		}
	}
	if !found {
		return nil, types.StatusBadNetPath
	}
	d, err := s.openDatabase(name, dir)
	if err != nil {
		logger.Warn("kvstore: remote host unavailable", "host", name, "err", err)
		return nil, types.StatusBadNetPath
	}
	s.hosts[name] = d
	return d, types.StatusSuccess
}
