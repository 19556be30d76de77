package tree

import "slices"

// ParentRef is the path component stepping to the parent directory.
const ParentRef = ".."

// Find resolves components one by one starting at from.
//
// ".." steps to the parent and is a no-op at the root. Any other component
// is looked up by name. When a non-final component names a leaf, resolution
// stops there and that leaf is returned, so callers must check the kind of
// the result. A missing component yields false. An empty path resolves to
// from itself.
func (t *Tree) Find(from NodeID, components []string) (NodeID, bool) {
	if !t.Exists(from) {
		return InvalidNode, false
	}

	cur := from
	for _, component := range components {
		if !t.slots[cur].kind.IsDir() {
			return cur, true
		}

		if component == ParentRef {
			if parent := t.slots[cur].parent; parent != InvalidNode {
				cur = parent
			}
			continue
		}

		next, ok := t.slots[cur].index[component]
		if !ok {
			return InvalidNode, false
		}
		cur = next
	}

	return cur, true
}

// FindDir resolves components like Find but only succeeds when the result
// is a directory.
func (t *Tree) FindDir(from NodeID, components []string) (NodeID, bool) {
	id, ok := t.Find(from, components)
	if !ok || !t.slots[id].kind.IsDir() {
		return InvalidNode, false
	}
	return id, true
}

// Sorted returns the children of a directory ordered by kind and then by
// name. Equal keys keep their insertion order.
func (t *Tree) Sorted(id NodeID) []Info {
	children := t.Children(id)

	out := make([]Info, 0, len(children))
	for _, child := range children {
		info, _ := t.Node(child)
		out = append(out, info)
	}

	slices.SortStableFunc(out, compareInfo)
	return out
}

func compareInfo(a, b Info) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch {
	case a.Name < b.Name:
		return -1
	case a.Name > b.Name:
		return 1
	}
	return 0
}
