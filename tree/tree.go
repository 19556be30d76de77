package tree

import (
	"bytes"
	"strings"

	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
)

// NodeID addresses a node slot inside a Tree.
type NodeID int

// InvalidNode is returned wherever no node could be resolved.
const InvalidNode NodeID = -1

// DefaultRootName is the conventional name of every tree root.
const DefaultRootName = "root"

// Tree is an arena-backed virtual filesystem.
//
// All nodes live in a single slice of slots and reference each other by
// NodeID, so the parent back-reference never forms an ownership cycle.
// Every directory keeps an ordered child sequence plus a name index; both
// are only ever changed together by attach and detach.
type Tree struct {
	slots []node
	free  []NodeID
	root  NodeID
	live  int
}

type node struct {
	name  string
	kind  data.NodeKind
	data  []byte
	flags data.NodeFlags

	parent   NodeID
	children []NodeID
	index    map[string]NodeID

	used bool
}

// Info is a read-only view of a single node.
type Info struct {
	ID       NodeID
	Name     string
	Kind     data.NodeKind
	Data     []byte
	Flags    data.NodeFlags
	Parent   NodeID
	Size     int64
	Children int
}

// IsDir returns true if the node is a directory.
func (i Info) IsDir() bool {
	return i.Kind.IsDir()
}

// New creates a tree holding only a root directory with the given name.
func New(rootName string) *Tree {
	if rootName == "" {
		rootName = DefaultRootName
	}

	t := &Tree{}
	t.root = t.alloc(rootName, data.KindDirectory, nil)
	t.slots[t.root].parent = InvalidNode
	return t
}

// Root returns the id of the root directory.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of live nodes including the root.
func (t *Tree) Len() int {
	return t.live
}

// ValidName reports whether name may be used for a child node.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.Contains(name, "/")
}

// Add creates a new node under parent. The parent must be a directory and
// must not already own a child with the same name; on failure the parent
// is left unchanged.
func (t *Tree) Add(parent NodeID, name string, kind data.NodeKind, payload []byte) (NodeID, error) {
	p, err := t.get(parent)
	if err != nil {
		return InvalidNode, err
	}
	if !p.kind.IsDir() {
		return InvalidNode, errors.NodeNotDirectory(nil, p.name)
	}
	if !ValidName(name) {
		return InvalidNode, errors.InvalidName(nil, name)
	}
	if !kind.Valid() {
		return InvalidNode, data.ErrInvalid
	}
	if _, exists := p.index[name]; exists {
		return InvalidNode, errors.NodeExist(nil, name)
	}

	if kind.IsDir() {
		payload = nil
	}

	id := t.alloc(name, kind, payload)
	t.attach(parent, id)
	return id, nil
}

// Lookup returns the direct child of parent with the given name.
func (t *Tree) Lookup(parent NodeID, name string) (NodeID, bool) {
	p, err := t.get(parent)
	if err != nil {
		return InvalidNode, false
	}
	id, ok := p.index[name]
	return id, ok
}

// Exists reports whether id addresses a live node.
func (t *Tree) Exists(id NodeID) bool {
	_, err := t.get(id)
	return err == nil
}

// Node returns a snapshot of the node's fields.
func (t *Tree) Node(id NodeID) (Info, bool) {
	n, err := t.get(id)
	if err != nil {
		return Info{ID: InvalidNode}, false
	}

	return Info{
		ID:       id,
		Name:     n.name,
		Kind:     n.kind,
		Data:     bytes.Clone(n.data),
		Flags:    n.flags,
		Parent:   n.parent,
		Size:     int64(len(n.data)),
		Children: len(n.children),
	}, true
}

// Kind returns the kind of a node, or false if it does not exist.
func (t *Tree) Kind(id NodeID) (data.NodeKind, bool) {
	n, err := t.get(id)
	if err != nil {
		return 0, false
	}
	return n.kind, true
}

// Parent returns the parent of id. The root has no parent.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	n, err := t.get(id)
	if err != nil || n.parent == InvalidNode {
		return InvalidNode, false
	}
	return n.parent, true
}

// Children returns the child ids of a directory in insertion order.
func (t *Tree) Children(id NodeID) []NodeID {
	n, err := t.get(id)
	if err != nil {
		return nil
	}

	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// Names returns the child names of a directory in insertion order.
func (t *Tree) Names(id NodeID) []string {
	n, err := t.get(id)
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(n.children))
	for _, child := range n.children {
		out = append(out, t.slots[child].name)
	}
	return out
}

// SetData replaces the payload of a leaf node.
func (t *Tree) SetData(id NodeID, payload []byte) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.kind.IsDir() {
		return errors.NodeIsDirectory(nil, n.name)
	}

	n.data = payload
	return nil
}

// SetKind changes the kind of a leaf node. Nodes can never change into or
// out of the directory kind.
func (t *Tree) SetKind(id NodeID, kind data.NodeKind) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.kind.IsDir() {
		return errors.NodeIsDirectory(nil, n.name)
	}
	if kind.IsDir() || !kind.Valid() {
		return data.ErrInvalid
	}

	n.kind = kind
	return nil
}

// SetFlags replaces the flag quad of a node.
func (t *Tree) SetFlags(id NodeID, flags data.NodeFlags) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}

	n.flags = flags
	return nil
}

// Remove detaches a node from its parent and frees it together with all
// descendants. Directories are only removed when recursive is set.
func (t *Tree) Remove(id NodeID, recursive bool) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if id == t.root {
		return data.ErrRootRemoval
	}
	if n.kind.IsDir() && !recursive {
		return errors.NodeIsDirectory(nil, n.name)
	}

	t.detach(id)
	t.release(id)
	return nil
}

// Path returns the names from the root down to id, including both.
func (t *Tree) Path(id NodeID) []string {
	if _, err := t.get(id); err != nil {
		return nil
	}

	var out []string
	for cur := id; cur != InvalidNode; cur = t.slots[cur].parent {
		out = append(out, t.slots[cur].name)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// IsAncestor reports whether ancestor lies on the path from the root to id.
// A node counts as its own ancestor.
func (t *Tree) IsAncestor(ancestor, id NodeID) bool {
	if !t.Exists(ancestor) || !t.Exists(id) {
		return false
	}
	for cur := id; cur != InvalidNode; cur = t.slots[cur].parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Walk visits id and all of its descendants in depth-first pre-order.
// Returning an error from fn stops the walk.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) error) error {
	if _, err := t.get(id); err != nil {
		return err
	}
	return t.walk(id, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) error) error {
	if err := fn(id, depth); err != nil {
		return err
	}
	for _, child := range t.slots[id].children {
		if err := t.walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) get(id NodeID) (*node, error) {
	if id < 0 || int(id) >= len(t.slots) || !t.slots[id].used {
		return nil, data.ErrNotExist
	}
	return &t.slots[id], nil
}

func (t *Tree) alloc(name string, kind data.NodeKind, payload []byte) NodeID {
	n := node{
		name:   name,
		kind:   kind,
		data:   payload,
		parent: InvalidNode,
		used:   true,
	}
	if kind.IsDir() {
		n.index = make(map[string]NodeID)
	}

	t.live++
	if len(t.free) > 0 {
		id := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.slots[id] = n
		return id
	}

	t.slots = append(t.slots, n)
	return NodeID(len(t.slots) - 1)
}

func (t *Tree) attach(parent, id NodeID) {
	p := &t.slots[parent]
	p.children = append(p.children, id)
	p.index[t.slots[id].name] = id
	t.slots[id].parent = parent
}

func (t *Tree) detach(id NodeID) {
	n := &t.slots[id]
	p := &t.slots[n.parent]

	for i, child := range p.children {
		if child == id {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	delete(p.index, n.name)
	n.parent = InvalidNode
}

func (t *Tree) release(id NodeID) {
	for _, child := range t.slots[id].children {
		t.release(child)
	}

	t.slots[id] = node{}
	t.free = append(t.free, id)
	t.live--
}
