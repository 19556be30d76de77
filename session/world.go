package session

import (
	"context"
	"sync"

	"github.com/tidwall/btree"

	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/log"
	"github.com/mwantia/vshell/metrics"
	"github.com/mwantia/vshell/snapshot"
	"github.com/mwantia/vshell/tree"
)

const (
	DefaultRootHost = "localhost"
	DefaultRootUser = "admin"
)

// World is the registry of every known host, ordered by label. Exactly
// one host is the root host the shell starts in.
type World struct {
	mu  sync.RWMutex
	log *log.Logger

	hosts *btree.Map[string, *Context]
	root  *Context

	store snapshot.Store
	slot  string
}

// NewWorld creates a world with a single root host owning an empty tree.
func NewWorld(logger *log.Logger, user, host string) (*World, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if user == "" {
		user = DefaultRootUser
	}
	if host == "" {
		host = DefaultRootHost
	}

	root, err := NewContext(user, host, nil)
	if err != nil {
		return nil, err
	}

	w := &World{
		log:   logger,
		hosts: btree.NewMap[string, *Context](0),
		root:  root,
		slot:  snapshot.DefaultSlot,
	}
	w.hosts.Set(host, root)
	return w, nil
}

// Attach sets the store and slot used by Save and Load.
func (w *World) Attach(store snapshot.Store, slot string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.store = store
	if slot != "" {
		w.slot = slot
	}
}

// Slot returns the snapshot slot used by Save and Load.
func (w *World) Slot() string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.slot
}

// Root returns the context of the root host.
func (w *World) Root() *Context {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.root
}

// Lookup returns the context registered under host.
func (w *World) Lookup(host string) (*Context, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.hosts.Get(host)
}

// Create registers a new host with a fresh single-root tree.
func (w *World) Create(user, host string) (*Context, error) {
	if host == "" {
		return nil, errors.InvalidName(nil, host)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.hosts.Get(host); exists {
		return nil, errors.HostExist(nil, host)
	}

	c, err := NewContext(user, host, nil)
	if err != nil {
		return nil, err
	}

	w.hosts.Set(host, c)
	w.log.Debug("Created host '%s@%s' (%s)", user, host, c.ID)
	return c, nil
}

// Rename changes the host label of c, rejecting labels already in use.
func (w *World) Rename(c *Context, host string) error {
	if host == "" {
		return errors.InvalidName(nil, host)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if host == c.Host {
		return nil
	}
	if _, exists := w.hosts.Get(host); exists {
		return errors.HostExist(nil, host)
	}

	w.hosts.Delete(c.Host)
	w.log.Debug("Renamed host '%s' to '%s'", c.Host, host)
	c.Host = host
	w.hosts.Set(host, c)
	return nil
}

// Hosts returns all contexts ordered by host label.
func (w *World) Hosts() []*Context {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.hosts.Values()
}

// Save writes every host into the attached store as a single snapshot.
func (w *World) Save(ctx context.Context) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.store == nil {
		return 0, data.ErrNoStore
	}

	rec := &snapshot.Record{
		Name: w.root.User,
	}
	var flushErr error
	w.hosts.Scan(func(host string, c *Context) bool {
		if err := c.config.Flush(); err != nil {
			flushErr = err
			return false
		}
		rec.Hosts = append(rec.Hosts, snapshot.Host{
			User:  c.User,
			Label: host,
			Tree:  c.tree,
		})
		return true
	})
	if flushErr != nil {
		return 0, flushErr
	}

	size, err := snapshot.Save(ctx, w.store, w.slot, rec)
	metrics.RecordSnapshot("save", size, err)
	if err != nil {
		return 0, err
	}

	w.log.Info("Saved %d hosts into slot '%s' (%d bytes)", len(rec.Hosts), w.slot, size)
	return size, nil
}

// Load reads the attached snapshot and merges it into the world. Hosts in
// the snapshot replace hosts with the same label, all other hosts stay.
// Live contexts keep their identity and environment and receive the
// loaded tree. Nothing is changed when the snapshot cannot be decoded.
func (w *World) Load(ctx context.Context) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.store == nil {
		return 0, data.ErrNoStore
	}

	rec, size, err := snapshot.Load(ctx, w.store, w.slot)
	metrics.RecordSnapshot("load", size, err)
	if err != nil {
		return 0, err
	}

	type pending struct {
		host   snapshot.Host
		config *Config
	}
	prepared := make([]pending, 0, len(rec.Hosts))
	for _, host := range rec.Hosts {
		config, err := loadConfig(host.Tree)
		if err != nil {
			return 0, err
		}
		prepared = append(prepared, pending{host: host, config: config})
	}

	for _, p := range prepared {
		if c, exists := w.hosts.Get(p.host.Label); exists {
			c.User = p.host.User
			c.replace(p.host.Tree, p.config)
			continue
		}

		w.hosts.Set(p.host.Label, newContext(p.host.User, p.host.Label, p.host.Tree, p.config))
	}

	w.log.Info("Loaded %d hosts from slot '%s' (%d bytes)", len(rec.Hosts), w.slot, size)
	return size, nil
}

// Seed fills the tree of c with nodes created by fn when the tree holds
// nothing but its root and configuration.
func Seed(c *Context, fn func(t *tree.Tree) error) error {
	if c.Nodes() > 1 {
		return nil
	}
	return fn(c.tree)
}
