package session

import (
	"maps"
	"slices"

	json "github.com/goccy/go-json"

	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/tree"
)

// ConfigName is the reserved name of the configuration node below the root.
const ConfigName = ".config"

// Well-known configuration keys.
const (
	ConfigPrompt = "prompt"
	ConfigMotd   = "motd"
)

// Config is a key/value mapping backed by the .config node of a tree.
// Changes stay in memory until Flush writes them back into the node.
type Config struct {
	tree   *tree.Tree
	id     tree.NodeID
	values map[string]any
}

func loadConfig(t *tree.Tree) (*Config, error) {
	c := &Config{
		tree:   t,
		id:     tree.InvalidNode,
		values: make(map[string]any),
	}

	id, ok := t.Lookup(t.Root(), ConfigName)
	if !ok {
		id, err := t.Add(t.Root(), ConfigName, data.KindBinary, []byte("{}"))
		if err != nil {
			return nil, err
		}
		t.SetFlags(id, data.NodeFlags{Readable: true, Writable: true})
		c.id = id
		return c, nil
	}

	info, _ := t.Node(id)
	if info.Kind != data.KindBinary {
		return nil, errors.NodeWrongKind(nil, ConfigName, data.KindBinary)
	}
	if len(info.Data) > 0 {
		if err := json.Unmarshal(info.Data, &c.values); err != nil {
			return nil, errors.CorruptSnapshot(err, "invalid %s", ConfigName)
		}
		if c.values == nil {
			c.values = make(map[string]any)
		}
	}

	c.id = id
	return c, nil
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// String returns the value under key if it is a string.
func (c *Config) String(key string) string {
	if v, ok := c.values[key].(string); ok {
		return v
	}
	return ""
}

func (c *Config) Set(key string, value any) {
	c.values[key] = value
}

func (c *Config) Delete(key string) bool {
	_, ok := c.values[key]
	delete(c.values, key)
	return ok
}

// Keys returns all keys in sorted order.
func (c *Config) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Flush encodes the mapping back into the .config node, recreating the
// node if it was removed in the meantime.
func (c *Config) Flush() error {
	encoded, err := json.Marshal(c.values)
	if err != nil {
		return err
	}

	id, ok := c.tree.Lookup(c.tree.Root(), ConfigName)
	if !ok {
		id, err = c.tree.Add(c.tree.Root(), ConfigName, data.KindBinary, encoded)
		if err != nil {
			return err
		}
		c.tree.SetFlags(id, data.NodeFlags{Readable: true, Writable: true})
		c.id = id
		return nil
	}

	if kind, _ := c.tree.Kind(id); kind != data.KindBinary {
		return errors.NodeWrongKind(nil, ConfigName, data.KindBinary)
	}
	c.id = id
	return c.tree.SetData(id, encoded)
}
