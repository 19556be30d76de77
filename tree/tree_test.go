package tree_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/tree"
)

// assertInSync verifies that every directory's index matches its child
// sequence in both directions. Names in removed must not resolve in any
// directory that does not list them.
func assertInSync(t *testing.T, tr *tree.Tree, removed ...string) {
	t.Helper()

	err := tr.Walk(tr.Root(), func(id tree.NodeID, depth int) error {
		info, _ := tr.Node(id)
		if !info.IsDir() {
			if len(tr.Children(id)) != 0 {
				t.Errorf("leaf %q owns children", info.Name)
			}
			return nil
		}

		names := tr.Names(id)
		for _, name := range names {
			child, ok := tr.Lookup(id, name)
			if !ok {
				t.Errorf("child %q of %q missing from index", name, info.Name)
				continue
			}
			if parent, _ := tr.Parent(child); parent != id {
				t.Errorf("child %q has parent %d, expected %d", name, parent, id)
			}
		}
		if len(names) != info.Children {
			t.Errorf("directory %q reports %d children, found %d", info.Name, info.Children, len(names))
		}
		for _, name := range removed {
			if slices.Contains(names, name) {
				continue
			}
			if _, ok := tr.Lookup(id, name); ok {
				t.Errorf("stale name %q still indexed in %q", name, info.Name)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
}

func TestTree_AddRejectsDuplicateNames(t *testing.T) {
	tr := tree.New("root")

	if _, err := tr.Add(tr.Root(), "x", data.KindDirectory, nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	_, err := tr.Add(tr.Root(), "x", data.KindText, []byte("hi"))
	if !errors.Is(err, data.ErrExist) {
		t.Fatalf("Expected ErrExist, got %v", err)
	}

	if names := tr.Names(tr.Root()); !slices.Equal(names, []string{"x"}) {
		t.Errorf("Expected exactly one child 'x', got %v", names)
	}
	if kind, _ := tr.Kind(tr.Children(tr.Root())[0]); kind != data.KindDirectory {
		t.Errorf("Existing child was overwritten, kind is %v", kind)
	}
	assertInSync(t, tr)
}

func TestTree_AddValidation(t *testing.T) {
	tr := tree.New("")
	file, err := tr.Add(tr.Root(), "a.txt", data.KindText, []byte("hi"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if info, _ := tr.Node(tr.Root()); info.Name != tree.DefaultRootName {
		t.Errorf("Expected default root name, got %q", info.Name)
	}

	if _, err := tr.Add(file, "child", data.KindText, nil); !errors.Is(err, data.ErrNotDirectory) {
		t.Errorf("Expected ErrNotDirectory when adding under a leaf, got %v", err)
	}

	for _, name := range []string{"", ".", "..", "a/b"} {
		if _, err := tr.Add(tr.Root(), name, data.KindText, nil); !errors.Is(err, data.ErrInvalid) {
			t.Errorf("Expected ErrInvalid for name %q, got %v", name, err)
		}
	}

	if _, err := tr.Add(tree.NodeID(99), "x", data.KindText, nil); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected ErrNotExist for unknown parent, got %v", err)
	}

	assertInSync(t, tr)
}

func TestTree_InsertionOrderAndSorting(t *testing.T) {
	tr := tree.New("root")
	root := tr.Root()

	for _, entry := range []struct {
		name string
		kind data.NodeKind
	}{
		{"zeta.txt", data.KindText},
		{"lib", data.KindDirectory},
		{"alpha.txt", data.KindText},
		{"run.sh", data.KindExecutable},
		{"data", data.KindDirectory},
	} {
		if _, err := tr.Add(root, entry.name, entry.kind, nil); err != nil {
			t.Fatalf("Add %s failed: %v", entry.name, err)
		}
	}

	expected := []string{"zeta.txt", "lib", "alpha.txt", "run.sh", "data"}
	if names := tr.Names(root); !slices.Equal(names, expected) {
		t.Errorf("Expected insertion order %v, got %v", expected, names)
	}

	var sorted []string
	for _, info := range tr.Sorted(root) {
		sorted = append(sorted, info.Name)
	}
	expected = []string{"data", "lib", "alpha.txt", "zeta.txt", "run.sh"}
	if !slices.Equal(sorted, expected) {
		t.Errorf("Expected sorted order %v, got %v", expected, sorted)
	}
}

func TestTree_Find(t *testing.T) {
	tr := tree.New("root")
	root := tr.Root()
	lib, _ := tr.Add(root, "lib", data.KindDirectory, nil)
	sub, _ := tr.Add(lib, "sub", data.KindDirectory, nil)
	file, _ := tr.Add(lib, "v1.sh", data.KindExecutable, []byte("v1"))

	tests := []struct {
		name       string
		from       tree.NodeID
		components []string
		expected   tree.NodeID
		found      bool
	}{
		{"empty path", root, nil, root, true},
		{"child", root, []string{"lib"}, lib, true},
		{"nested", root, []string{"lib", "sub"}, sub, true},
		{"parent", sub, []string{".."}, lib, true},
		{"parent at root", root, []string{"..", "..", "lib"}, lib, true},
		{"missing", root, []string{"nope"}, tree.InvalidNode, false},
		{"missing nested", root, []string{"lib", "nope"}, tree.InvalidNode, false},
		{"leaf", root, []string{"lib", "v1.sh"}, file, true},
		{"through leaf stops early", root, []string{"lib", "v1.sh", "more"}, file, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, found := tr.Find(tc.from, tc.components)
			if found != tc.found || id != tc.expected {
				t.Errorf("Find(%v) = (%d, %v), expected (%d, %v)", tc.components, id, found, tc.expected, tc.found)
			}
		})
	}

	if _, ok := tr.FindDir(root, []string{"lib", "v1.sh", "more"}); ok {
		t.Error("FindDir must reject paths landing on a leaf")
	}
}

func TestTree_RemoveGuards(t *testing.T) {
	tr := tree.New("root")
	root := tr.Root()
	lib, _ := tr.Add(root, "lib", data.KindDirectory, nil)
	sub, _ := tr.Add(lib, "sub", data.KindDirectory, nil)
	deep, _ := tr.Add(sub, "deep.txt", data.KindText, []byte("deep"))
	other, _ := tr.Add(root, "other.txt", data.KindText, []byte("other"))

	if err := tr.Remove(root, true); !errors.Is(err, data.ErrRootRemoval) {
		t.Errorf("Expected ErrRootRemoval, got %v", err)
	}

	before := tr.Len()
	if err := tr.Remove(lib, false); !errors.Is(err, data.ErrIsDirectory) {
		t.Fatalf("Expected ErrIsDirectory, got %v", err)
	}
	if tr.Len() != before {
		t.Errorf("Tree changed after rejected removal")
	}
	if _, ok := tr.Find(root, []string{"lib", "sub", "deep.txt"}); !ok {
		t.Errorf("Descendant lost after rejected removal")
	}

	if err := tr.Remove(lib, true); err != nil {
		t.Fatalf("Recursive remove failed: %v", err)
	}
	if _, ok := tr.Lookup(root, "lib"); ok {
		t.Error("Removed directory still reachable from root")
	}
	for _, id := range []tree.NodeID{lib, sub, deep} {
		if tr.Exists(id) {
			t.Errorf("Node %d still alive after recursive removal", id)
		}
	}
	if tr.Len() != 2 {
		t.Errorf("Expected 2 live nodes, got %d", tr.Len())
	}

	if err := tr.Remove(other, false); err != nil {
		t.Fatalf("Remove leaf failed: %v", err)
	}
	if names := tr.Names(root); len(names) != 0 {
		t.Errorf("Expected empty root, got %v", names)
	}
	assertInSync(t, tr, "lib", "sub", "deep.txt", "other.txt")

	// Freed slots are reused without breaking the index.
	relib, err := tr.Add(root, "lib", data.KindDirectory, nil)
	if err != nil {
		t.Fatalf("Add after remove failed: %v", err)
	}
	if _, err := tr.Add(relib, "fresh.txt", data.KindText, nil); err != nil {
		t.Fatalf("Add below reused slot failed: %v", err)
	}
	assertInSync(t, tr, "sub", "deep.txt", "other.txt")
}

func TestTree_SetDataAndKind(t *testing.T) {
	tr := tree.New("root")
	dir, _ := tr.Add(tr.Root(), "dir", data.KindDirectory, nil)
	file, _ := tr.Add(tr.Root(), "out", data.KindText, []byte("1"))

	if err := tr.SetData(dir, []byte("x")); !errors.Is(err, data.ErrIsDirectory) {
		t.Errorf("Expected ErrIsDirectory, got %v", err)
	}
	if err := tr.SetKind(file, data.KindDirectory); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}

	if err := tr.SetKind(file, data.KindBinary); err != nil {
		t.Fatalf("SetKind failed: %v", err)
	}
	if err := tr.SetData(file, []byte("42")); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}

	info, _ := tr.Node(file)
	if info.Kind != data.KindBinary || string(info.Data) != "42" || info.Size != 2 {
		t.Errorf("Unexpected node state: %+v", info)
	}

	if path := tr.Path(file); !slices.Equal(path, []string{"root", "out"}) {
		t.Errorf("Unexpected path %v", path)
	}
	if !tr.IsAncestor(tr.Root(), file) || tr.IsAncestor(dir, file) {
		t.Error("IsAncestor returned unexpected result")
	}
}
