package session_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/session"
	"github.com/mwantia/vshell/snapshot/backend/memory"
	"github.com/mwantia/vshell/tree"
)

func newTestContext(t *testing.T) *session.Context {
	t.Helper()

	tr := tree.New(tree.DefaultRootName)
	a, _ := tr.Add(tr.Root(), "a", data.KindDirectory, nil)
	b, _ := tr.Add(a, "b", data.KindDirectory, nil)
	tr.Add(b, "note.txt", data.KindText, []byte("hi"))
	tr.Add(tr.Root(), "file.txt", data.KindText, []byte("top"))
	x, _ := tr.Add(tr.Root(), "x", data.KindDirectory, nil)
	tr.Add(x, "y", data.KindDirectory, nil)

	c, err := session.NewContext("admin", "localhost", tr)
	if err != nil {
		t.Fatalf("Failed to create context: %v", err)
	}
	return c
}

// TestContext_Chdir verifies the path resolution rules of cd.
func TestContext_Chdir(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		target   string
		expected []string
	}{
		{"parent", "/a/b", "..", []string{"root", "a"}},
		{"parent at root", "~", "..", []string{"root"}},
		{"absolute", "/a/b", "/x/y", []string{"root", "x", "y"}},
		{"home", "/a/b", "~", []string{"root"}},
		{"relative", "~", "a/b", []string{"root", "a", "b"}},
		{"current", "/a", "./b", []string{"root", "a", "b"}},
		{"mixed", "/a/b", "../../x", []string{"root", "x"}},
		{"empty components", "~", "a//b/", []string{"root", "a", "b"}},
		{"home prefix", "/x/y", "~/a/b", []string{"root", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			if err := c.Chdir(tt.start); err != nil {
				t.Fatalf("Failed to change into %q: %v", tt.start, err)
			}
			if err := c.Chdir(tt.target); err != nil {
				t.Fatalf("Failed to change into %q: %v", tt.target, err)
			}
			if !slices.Equal(c.Path(), tt.expected) {
				t.Errorf("Expected path %v, got %v", tt.expected, c.Path())
			}
		})
	}
}

// TestContext_ChdirRejected verifies that failed navigation leaves the path unchanged.
func TestContext_ChdirRejected(t *testing.T) {
	c := newTestContext(t)
	if err := c.Chdir("/a"); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	tests := []struct {
		target   string
		expected error
	}{
		{"missing", data.ErrNotExist},
		{"/file.txt", data.ErrNotDirectory},
		{"b/note.txt", data.ErrNotDirectory},
		{"/file.txt/x", data.ErrNotDirectory},
	}

	for _, tt := range tests {
		if err := c.Chdir(tt.target); !errors.Is(err, tt.expected) {
			t.Errorf("%q: expected %v, got %v", tt.target, tt.expected, err)
		}
		if c.Pwd() != "/root/a" {
			t.Errorf("%q: expected working path to stay /root/a, got %s", tt.target, c.Pwd())
		}
	}
}

// TestContext_RelativeAbsolute verifies that absolute navigation ignores the previous working path.
func TestContext_RelativeAbsolute(t *testing.T) {
	c := newTestContext(t)
	if err := c.Chdir("/a/b"); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	if err := c.Chdir("/x/y"); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	if rel := c.Relative(); !slices.Equal(rel, []string{"x", "y"}) {
		t.Errorf("Expected relative path [x y], got %v", rel)
	}
}

// TestContext_Lookup verifies lookups of any kind relative to the working path.
func TestContext_Lookup(t *testing.T) {
	c := newTestContext(t)
	if err := c.Chdir("a"); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	id, err := c.Lookup("b/note.txt")
	if err != nil {
		t.Fatalf("Failed to look up file: %v", err)
	}
	info, _ := c.Tree().Node(id)
	if string(info.Data) != "hi" {
		t.Errorf("Expected payload 'hi', got %q", info.Data)
	}

	if _, err := c.Lookup("../file.txt"); err != nil {
		t.Errorf("Failed to look up parent file: %v", err)
	}
	if _, err := c.Lookup("nothing"); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}

// TestContext_Parent verifies splitting of creation paths.
func TestContext_Parent(t *testing.T) {
	c := newTestContext(t)

	dir, name, err := c.Parent("/a/b/new.txt")
	if err != nil {
		t.Fatalf("Failed to resolve parent: %v", err)
	}
	if name != "new.txt" || c.Tree().Path(dir)[2] != "b" {
		t.Errorf("Unexpected parent %v and name %q", c.Tree().Path(dir), name)
	}

	if dir, name, err := c.Parent("plain"); err != nil || dir != c.Cwd() || name != "plain" {
		t.Errorf("Expected working directory and 'plain', got %d %q %v", dir, name, err)
	}
	if _, _, err := c.Parent("/file.txt/x"); !errors.Is(err, data.ErrNotDirectory) {
		t.Errorf("Expected ErrNotDirectory, got %v", err)
	}
	if _, _, err := c.Parent("a/.."); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

// TestContext_Environment verifies the session environment.
func TestContext_Environment(t *testing.T) {
	c := newTestContext(t)
	c.Set("b", int64(2))
	c.Set("a", "text")

	if v, ok := c.Get("b"); !ok || v != int64(2) {
		t.Errorf("Expected 2, got %v", v)
	}
	if names := c.Env(); !slices.Equal(names, []string{"a", "b"}) {
		t.Errorf("Expected sorted names, got %v", names)
	}
}

// TestConfig_Flush verifies that configuration survives inside the tree.
func TestConfig_Flush(t *testing.T) {
	c := newTestContext(t)

	id, ok := c.Tree().Lookup(c.Tree().Root(), session.ConfigName)
	if !ok {
		t.Fatal("Expected .config node to be created")
	}
	if kind, _ := c.Tree().Kind(id); kind != data.KindBinary {
		t.Errorf("Expected binary .config node, got %s", kind)
	}

	c.Config().Set(session.ConfigMotd, "welcome")
	c.Config().Set("depth", 3)
	if err := c.Config().Flush(); err != nil {
		t.Fatalf("Failed to flush config: %v", err)
	}

	reloaded, err := session.NewContext("admin", "localhost", c.Tree())
	if err != nil {
		t.Fatalf("Failed to create context: %v", err)
	}
	if motd := reloaded.Config().String(session.ConfigMotd); motd != "welcome" {
		t.Errorf("Expected motd 'welcome', got %q", motd)
	}
	if keys := reloaded.Config().Keys(); !slices.Equal(keys, []string{"depth", session.ConfigMotd}) {
		t.Errorf("Unexpected keys %v", keys)
	}
}

// TestConfig_Corrupt verifies that an unreadable .config is reported.
func TestConfig_Corrupt(t *testing.T) {
	tr := tree.New(tree.DefaultRootName)
	tr.Add(tr.Root(), session.ConfigName, data.KindBinary, []byte("{broken"))

	if _, err := session.NewContext("admin", "localhost", tr); !errors.Is(err, data.ErrCorruptSnapshot) {
		t.Errorf("Expected ErrCorruptSnapshot, got %v", err)
	}
}

// TestWorld_Hosts verifies host creation, collision and renaming.
func TestWorld_Hosts(t *testing.T) {
	w, err := session.NewWorld(nil, "", "")
	if err != nil {
		t.Fatalf("Failed to create world: %v", err)
	}

	if w.Root().Host != session.DefaultRootHost || w.Root().User != session.DefaultRootUser {
		t.Errorf("Unexpected root identity %s@%s", w.Root().User, w.Root().Host)
	}

	if _, err := w.Create("guest", "server1"); err != nil {
		t.Fatalf("Failed to create host: %v", err)
	}
	if _, err := w.Create("guest", "server1"); !errors.Is(err, data.ErrHostExist) {
		t.Errorf("Expected ErrHostExist, got %v", err)
	}

	if err := w.Rename(w.Root(), "server1"); !errors.Is(err, data.ErrHostExist) {
		t.Errorf("Expected ErrHostExist, got %v", err)
	}
	if err := w.Rename(w.Root(), "alpha"); err != nil {
		t.Fatalf("Failed to rename host: %v", err)
	}
	if _, ok := w.Lookup(session.DefaultRootHost); ok {
		t.Error("Expected old label to be released")
	}

	var labels []string
	for _, c := range w.Hosts() {
		labels = append(labels, c.Host)
	}
	if !slices.Equal(labels, []string{"alpha", "server1"}) {
		t.Errorf("Expected ordered labels, got %v", labels)
	}
}

// TestWorld_SaveLoad verifies that a reloaded world reproduces every host tree.
func TestWorld_SaveLoad(t *testing.T) {
	ctx := t.Context()
	store := memory.NewMemoryStore()

	w, err := session.NewWorld(nil, "", "")
	if err != nil {
		t.Fatalf("Failed to create world: %v", err)
	}
	if _, err := w.Save(ctx); !errors.Is(err, data.ErrNoStore) {
		t.Errorf("Expected ErrNoStore, got %v", err)
	}
	w.Attach(store, "")

	root := w.Root()
	lib, _ := root.Tree().Add(root.Tree().Root(), "lib", data.KindDirectory, nil)
	root.Tree().Add(lib, "a.txt", data.KindText, []byte("hi"))
	remote, _ := w.Create("guest", "server1")
	remote.Config().Set(session.ConfigPrompt, "$ ")

	if _, err := w.Save(ctx); err != nil {
		t.Fatalf("Failed to save world: %v", err)
	}

	fresh, err := session.NewWorld(nil, "", "")
	if err != nil {
		t.Fatalf("Failed to create world: %v", err)
	}
	fresh.Attach(store, "")
	if _, err := fresh.Load(ctx); err != nil {
		t.Fatalf("Failed to load world: %v", err)
	}

	if err := fresh.Root().Chdir("/lib"); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	id, err := fresh.Root().Lookup("a.txt")
	if err != nil {
		t.Fatalf("Failed to look up file: %v", err)
	}
	if info, _ := fresh.Root().Tree().Node(id); string(info.Data) != "hi" {
		t.Errorf("Expected 'hi', got %q", info.Data)
	}

	loaded, ok := fresh.Lookup("server1")
	if !ok {
		t.Fatal("Expected server1 to be loaded")
	}
	if loaded.User != "guest" || loaded.Config().String(session.ConfigPrompt) != "$ " {
		t.Errorf("Unexpected host %s with prompt %q", loaded.User, loaded.Config().String(session.ConfigPrompt))
	}
}

// TestWorld_LoadKeepsPath verifies that live contexts keep a still valid working path.
func TestWorld_LoadKeepsPath(t *testing.T) {
	ctx := t.Context()

	w, _ := session.NewWorld(nil, "", "")
	w.Attach(memory.NewMemoryStore(), "slot")

	root := w.Root()
	root.Tree().Add(root.Tree().Root(), "lib", data.KindDirectory, nil)
	root.Tree().Add(root.Tree().Root(), "tmp", data.KindDirectory, nil)
	if _, err := w.Save(ctx); err != nil {
		t.Fatalf("Failed to save world: %v", err)
	}

	root.Set("x", int64(1))
	if err := root.Chdir("/lib"); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	if _, err := w.Load(ctx); err != nil {
		t.Fatalf("Failed to load world: %v", err)
	}
	if root.Pwd() != "/root/lib" {
		t.Errorf("Expected /root/lib, got %s", root.Pwd())
	}
	if _, ok := root.Get("x"); !ok {
		t.Error("Expected environment to survive a load")
	}

	// A directory created after saving disappears with the load
	root.Tree().Add(root.Tree().Root(), "later", data.KindDirectory, nil)
	root.Chdir("/later")
	if _, err := w.Load(ctx); err != nil {
		t.Fatalf("Failed to load world: %v", err)
	}
	if root.Pwd() != "/root" {
		t.Errorf("Expected /root, got %s", root.Pwd())
	}
}
