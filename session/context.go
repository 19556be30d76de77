package session

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/tree"
)

const (
	// Separator splits path components.
	Separator = "/"
	// Home refers to the root directory, alone or as a leading component.
	Home = "~"
	// CurrentRef is the path component referring to the current directory.
	CurrentRef = "."
)

// Context is the shell state of one connected host: identity, working
// path, environment and the tree it operates on.
type Context struct {
	ID   uuid.UUID
	User string
	Host string

	tree   *tree.Tree
	path   []string
	env    map[string]any
	config *Config
}

// NewContext creates a context positioned at the root of t. The .config
// node of t is located or created while doing so.
func NewContext(user, host string, t *tree.Tree) (*Context, error) {
	if t == nil {
		t = tree.New(tree.DefaultRootName)
	}

	config, err := loadConfig(t)
	if err != nil {
		return nil, err
	}

	return newContext(user, host, t, config), nil
}

func newContext(user, host string, t *tree.Tree, config *Config) *Context {
	c := &Context{
		ID:     uuid.Must(uuid.NewV7()),
		User:   user,
		Host:   host,
		tree:   t,
		env:    make(map[string]any),
		config: config,
	}
	c.path = []string{c.rootName()}
	return c
}

// Tree returns the tree this context operates on.
func (c *Context) Tree() *tree.Tree {
	return c.tree
}

// Config returns the per-host configuration stored inside the tree.
func (c *Context) Config() *Config {
	return c.config
}

// Path returns a copy of the working path. The first component is always
// the name of the root directory.
func (c *Context) Path() []string {
	return slices.Clone(c.path)
}

// Relative returns the working path without the root component.
func (c *Context) Relative() []string {
	return slices.Clone(c.path[1:])
}

// Pwd returns the working path in its printable form.
func (c *Context) Pwd() string {
	return Separator + strings.Join(c.path, Separator)
}

// Cwd returns the node of the working directory. A working path that no
// longer resolves is reset to the root first.
func (c *Context) Cwd() tree.NodeID {
	id, ok := c.tree.FindDir(c.tree.Root(), c.path[1:])
	if !ok {
		c.path = []string{c.rootName()}
		return c.tree.Root()
	}
	return id
}

// Resolve builds the working path that navigating to p would produce.
// The result must name an existing directory.
func (c *Context) Resolve(p string) ([]string, error) {
	p = strings.TrimSpace(p)
	if p == Home {
		return []string{c.rootName()}, nil
	}

	components := c.components(p)
	id, err := c.find(p, components)
	if err != nil {
		return nil, err
	}
	if kind, _ := c.tree.Kind(id); !kind.IsDir() {
		return nil, errors.NodeNotDirectory(nil, p)
	}

	return append([]string{c.rootName()}, components...), nil
}

// Chdir changes the working path. On error the working path is unchanged.
func (c *Context) Chdir(p string) error {
	path, err := c.Resolve(p)
	if err != nil {
		return err
	}
	c.path = path
	return nil
}

// Lookup resolves p to a node of any kind.
func (c *Context) Lookup(p string) (tree.NodeID, error) {
	if strings.TrimSpace(p) == Home {
		return c.tree.Root(), nil
	}
	return c.find(p, c.components(p))
}

// Parent resolves everything but the last component of p to a directory
// and returns it together with that last component. It is used by
// operations creating new nodes.
func (c *Context) Parent(p string) (tree.NodeID, string, error) {
	p = strings.TrimRight(strings.TrimSpace(p), Separator)
	dir, name := "", p
	if i := strings.LastIndex(p, Separator); i >= 0 {
		dir, name = p[:i+1], p[i+1:]
	}
	if !tree.ValidName(name) || name == Home {
		return tree.InvalidNode, "", errors.InvalidName(nil, name)
	}

	if dir == "" {
		return c.Cwd(), name, nil
	}

	id, err := c.Lookup(dir)
	if err != nil {
		return tree.InvalidNode, "", err
	}
	if kind, _ := c.tree.Kind(id); !kind.IsDir() {
		return tree.InvalidNode, "", errors.NodeNotDirectory(nil, dir)
	}
	return id, name, nil
}

// Get returns an environment variable.
func (c *Context) Get(name string) (any, bool) {
	v, ok := c.env[name]
	return v, ok
}

// Set stores an environment variable.
func (c *Context) Set(name string, value any) {
	c.env[name] = value
}

// Env returns the sorted names of all environment variables.
func (c *Context) Env() []string {
	return slices.Sorted(maps.Keys(c.env))
}

// components applies p to the working path and returns the result
// without the root component.
func (c *Context) components(p string) []string {
	var out []string
	if !strings.HasPrefix(p, Separator) {
		out = c.Relative()
	}

	for _, component := range strings.Split(p, Separator) {
		switch component {
		case "", CurrentRef:
		case Home:
			out = nil
		case tree.ParentRef:
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, component)
		}
	}
	return out
}

func (c *Context) find(p string, components []string) (tree.NodeID, error) {
	id, ok := c.tree.Find(c.tree.Root(), components)
	if !ok {
		return tree.InvalidNode, errors.NodeNotExist(nil, p)
	}
	// Find stops early on a leaf in the middle of the path
	if len(c.tree.Path(id)) != len(components)+1 {
		return tree.InvalidNode, errors.NodeNotDirectory(nil, p)
	}
	return id, nil
}

// replace swaps in a new tree and its configuration. The working path is
// kept when it still names a directory in the new tree.
func (c *Context) replace(t *tree.Tree, config *Config) {
	relative := c.Relative()

	c.tree = t
	c.config = config
	c.path = []string{c.rootName()}
	if _, ok := t.FindDir(t.Root(), relative); ok {
		c.path = append(c.path, relative...)
	}
}

func (c *Context) rootName() string {
	info, _ := c.tree.Node(c.tree.Root())
	return info.Name
}

// Nodes returns the number of nodes in the tree, excluding the hidden
// configuration node.
func (c *Context) Nodes() int {
	n := c.tree.Len()
	if _, ok := c.tree.Lookup(c.tree.Root(), ConfigName); ok {
		n--
	}
	return n
}
