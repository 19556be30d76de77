package builtin_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/cmd/builtin"
	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/session"
	"github.com/mwantia/vshell/snapshot"
	"github.com/mwantia/vshell/snapshot/backend/memory"
)

type testPrompter struct {
	answer bool
	asked  int
}

func (tp *testPrompter) Confirm(question string) (bool, error) {
	tp.asked++
	return tp.answer, nil
}

type scriptReader struct {
	lines []string
}

func (sr *scriptReader) ReadLine(prompt string) (string, error) {
	if len(sr.lines) == 0 {
		return "", io.EOF
	}
	line := sr.lines[0]
	sr.lines = sr.lines[1:]
	return line, nil
}

type testShell struct {
	world      *session.World
	dispatcher *cmd.Dispatcher
	prompter   *testPrompter
	out        *bytes.Buffer
}

func newTestShell(t *testing.T, store snapshot.Store) *testShell {
	t.Helper()

	world, err := session.NewWorld(nil, "", "")
	if err != nil {
		t.Fatalf("Failed to create world: %v", err)
	}
	if store != nil {
		world.Attach(store, "")
	}

	registry, err := builtin.NewRegistry()
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	ts := &testShell{
		world:    world,
		prompter: &testPrompter{answer: true},
		out:      &bytes.Buffer{},
	}
	ts.dispatcher = cmd.NewDispatcher(registry, world, cmd.WithOutput(ts.out), cmd.WithPrompter(ts.prompter))
	return ts
}

// exec dispatches a single line against the root session.
func (ts *testShell) exec(t *testing.T, line string) (cmd.Result, error) {
	t.Helper()

	ts.out.Reset()
	return ts.dispatcher.Dispatch(t.Context(), ts.world.Root(), nil, line)
}

// must dispatches a line that is expected to succeed and returns its output.
func (ts *testShell) must(t *testing.T, line string) string {
	t.Helper()

	if _, err := ts.exec(t, line); err != nil {
		t.Fatalf("Failed to run %q: %v", line, err)
	}
	return ts.out.String()
}

// TestScenario_SaveReloadOpen creates a file, saves, reloads into a fresh shell and reads it back.
func TestScenario_SaveReloadOpen(t *testing.T) {
	store := memory.NewMemoryStore()

	first := newTestShell(t, store)
	first.must(t, "mkdir /lib")
	first.must(t, "write /lib/a.txt hi")
	first.must(t, "save")

	second := newTestShell(t, store)
	second.must(t, "load")
	second.must(t, "cd /lib")
	if out := second.must(t, "open a.txt"); out != "hi\n" {
		t.Errorf("Expected 'hi', got %q", out)
	}
}

// TestScenario_MkdirTwice verifies the already-exists error of a repeated mkdir.
func TestScenario_MkdirTwice(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.must(t, "mkdir x")

	if _, err := ts.exec(t, "mkdir x"); !errors.Is(err, data.ErrExist) {
		t.Errorf("Expected ErrExist, got %v", err)
	}

	root := ts.world.Root()
	count := 0
	for _, name := range root.Tree().Names(root.Tree().Root()) {
		if name == "x" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one child named x, got %d", count)
	}
}

// TestScenario_SshCreateExit verifies that leaving a created host returns to the root session.
func TestScenario_SshCreateExit(t *testing.T) {
	ts := newTestShell(t, nil)
	reader := &scriptReader{lines: []string{
		"ssh newhost -c",
		"pwd",
		"mkdir remote-only",
		"exit",
		"hostname",
		"ls",
		"exit",
	}}

	controller := cmd.NewController(ts.dispatcher, reader)
	if err := controller.Run(t.Context(), ts.world.Root()); err != nil {
		t.Fatalf("Failed to run controller: %v", err)
	}

	created, ok := ts.world.Lookup("newhost")
	if !ok {
		t.Fatal("Expected newhost to be registered")
	}
	if created.User != session.DefaultRootUser {
		t.Errorf("Expected user to be inherited, got %q", created.User)
	}
	if _, err := created.Lookup("remote-only"); err != nil {
		t.Errorf("Expected directory on newhost: %v", err)
	}

	out := ts.out.String()
	if !strings.Contains(out, "/root\nlocalhost\n") {
		t.Errorf("Expected root session to resume, got %q", out)
	}
	if strings.Contains(out, "remote-only") {
		t.Error("Expected root tree to be unaffected by the nested session")
	}
	if ts.prompter.asked != 2 {
		t.Errorf("Expected two confirmations, got %d", ts.prompter.asked)
	}
	if controller.State() != cmd.StateTerminated {
		t.Errorf("Expected terminated controller, got %s", controller.State())
	}
}

// TestSsh verifies the host lookup rules of ssh.
func TestSsh(t *testing.T) {
	ts := newTestShell(t, nil)

	if _, err := ts.exec(t, "ssh unknown"); !errors.Is(err, data.ErrHostNotExist) {
		t.Errorf("Expected ErrHostNotExist, got %v", err)
	}
	if _, err := ts.exec(t, "ssh localhost -c"); !errors.Is(err, data.ErrHostExist) {
		t.Errorf("Expected ErrHostExist, got %v", err)
	}

	result, err := ts.exec(t, "ssh server1 -c -u guest")
	if err != nil {
		t.Fatalf("Failed to create host: %v", err)
	}
	if result.Signal != cmd.SignalNest || result.Target.User != "guest" || result.Target.Host != "server1" {
		t.Errorf("Unexpected result %+v", result)
	}
	if result.Target.Nodes() != 1 {
		t.Errorf("Expected a fresh single-root tree, got %d nodes", result.Target.Nodes())
	}
}

// TestExit verifies that a declined exit keeps the session alive.
func TestExit(t *testing.T) {
	ts := newTestShell(t, nil)

	ts.prompter.answer = false
	if result, err := ts.exec(t, "exit"); err != nil || result.Signal != cmd.SignalContinue {
		t.Errorf("Expected continue, got %s (%v)", result.Signal, err)
	}

	ts.prompter.answer = true
	if result, err := ts.exec(t, "quit"); err != nil || result.Signal != cmd.SignalTerminate {
		t.Errorf("Expected terminate, got %s (%v)", result.Signal, err)
	}
	if result, _ := ts.exec(t, "exit -y"); result.Signal != cmd.SignalTerminate || ts.prompter.asked != 2 {
		t.Errorf("Expected -y to skip the confirmation")
	}
}

// TestCd verifies navigation through the command surface.
func TestCd(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.must(t, "mkdir a")
	ts.must(t, "mkdir a/b")
	ts.must(t, "write a/file.txt text")

	steps := []struct {
		line     string
		expected string
		err      error
	}{
		{"cd a/b", "/root/a/b", nil},
		{"cd ..", "/root/a", nil},
		{"cd file.txt", "/root/a", data.ErrNotDirectory},
		{"cd missing", "/root/a", data.ErrNotExist},
		{"cd ~", "/root", nil},
		{"cd ..", "/root", nil},
		{"cd /a/b", "/root/a/b", nil},
		{"cd", "/root", nil},
	}

	for _, step := range steps {
		if _, err := ts.exec(t, step.line); !errors.Is(err, step.err) {
			t.Errorf("%q: expected %v, got %v", step.line, step.err, err)
		}
		if pwd := ts.must(t, "pwd"); pwd != step.expected+"\n" {
			t.Errorf("%q: expected %s, got %q", step.line, step.expected, pwd)
		}
	}
}

// TestRm verifies the removal guards.
func TestRm(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.must(t, "mkdir dir")
	ts.must(t, "mkdir dir/sub")
	ts.must(t, "write dir/sub/deep.txt x")
	ts.must(t, "write top.txt x")

	root := ts.world.Root()
	before := root.Tree().Len()

	if _, err := ts.exec(t, "rm dir"); !errors.Is(err, data.ErrIsDirectory) {
		t.Errorf("Expected ErrIsDirectory, got %v", err)
	}
	if root.Tree().Len() != before {
		t.Error("Expected tree to be unchanged")
	}

	if _, err := ts.exec(t, "rm /"); !errors.Is(err, data.ErrRootRemoval) {
		t.Errorf("Expected ErrRootRemoval, got %v", err)
	}

	ts.must(t, "cd dir/sub")
	if _, err := ts.exec(t, "rm -r /dir"); !errors.Is(err, data.ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}
	ts.must(t, "cd ~")

	ts.must(t, "rm top.txt")
	ts.must(t, "rm -r dir")
	if _, err := root.Lookup("dir/sub/deep.txt"); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected descendants to be unreachable, got %v", err)
	}
	if root.Tree().Len() != before-4 {
		t.Errorf("Expected %d nodes, got %d", before-4, root.Tree().Len())
	}
}

// TestLs verifies short and long listings.
func TestLs(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.must(t, "write b.txt hello")
	ts.must(t, "mkdir z")
	ts.must(t, "write a.txt hi")

	if out := ts.must(t, "ls"); out != "z     a.txt     b.txt\n" {
		t.Errorf("Unexpected listing %q", out)
	}
	if out := ts.must(t, "ls -a"); !strings.Contains(out, session.ConfigName) {
		t.Errorf("Expected hidden config node with -a, got %q", out)
	}

	out := ts.must(t, "ls -l")
	for _, expected := range []string{"Kind", "dir", "txt", "5 B", "rw-v", "0 items"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected long listing to contain %q, got %q", expected, out)
		}
	}

	if out := ts.must(t, "ls a.txt"); out != "a.txt\n" {
		t.Errorf("Unexpected file listing %q", out)
	}

	if out := ts.must(t, "ls "+session.ConfigName); out != session.ConfigName+"\n" {
		t.Errorf("Expected named hidden node to be listed, got %q", out)
	}
	out = ts.must(t, "ls -l "+session.ConfigName)
	for _, expected := range []string{session.ConfigName, "bin"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected long listing of hidden node to contain %q, got %q", expected, out)
		}
	}
}

// TestOpenWrite verifies text and binary payload handling.
func TestOpenWrite(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.must(t, "write note.txt 'first line'")
	ts.must(t, "write -a note.txt ' and more'")

	if out := ts.must(t, "cat note.txt"); out != "first line and more\n" {
		t.Errorf("Unexpected content %q", out)
	}

	ts.must(t, "exp 6*7 -f answer.bin")
	if _, err := ts.exec(t, "write answer.bin text"); !errors.Is(err, data.ErrWrongKind) {
		t.Errorf("Expected ErrWrongKind, got %v", err)
	}
	if out := ts.must(t, "open answer.bin"); out != "42\n" {
		t.Errorf("Expected decoded binary payload, got %q", out)
	}

	ts.must(t, "mkdir dir")
	if _, err := ts.exec(t, "open dir"); !errors.Is(err, data.ErrIsDirectory) {
		t.Errorf("Expected ErrIsDirectory, got %v", err)
	}
}

// TestExp verifies evaluation against the session environment.
func TestExp(t *testing.T) {
	ts := newTestShell(t, nil)

	if out := ts.must(t, "exp '1 + 2' -o x"); out != "3\n" {
		t.Errorf("Expected 3, got %q", out)
	}
	if out := ts.must(t, "exp 'x / 2'"); out != "1.5\n" {
		t.Errorf("Expected 1.5, got %q", out)
	}
	if out := ts.must(t, "exp -1+x"); out != "2\n" {
		t.Errorf("Expected 2, got %q", out)
	}
	if out := ts.must(t, "env"); out != "x=3\n" {
		t.Errorf("Unexpected environment %q", out)
	}

	ts.must(t, "write result.txt old")
	ts.must(t, "exp '\"a\" + \"b\"' -f result.txt")
	root := ts.world.Root()
	id, _ := root.Lookup("result.txt")
	if info, _ := root.Tree().Node(id); info.Kind != data.KindBinary || string(info.Data) != `"ab"` {
		t.Errorf("Expected overwritten binary file, got %s %q", info.Kind, info.Data)
	}

	if _, err := ts.exec(t, "exp 'undefined_name'"); !errors.Is(err, data.ErrCommandFailed) {
		t.Errorf("Expected ErrCommandFailed, got %v", err)
	}
}

// TestHostname verifies renaming with collision checks.
func TestHostname(t *testing.T) {
	ts := newTestShell(t, nil)
	if _, err := ts.world.Create("guest", "server1"); err != nil {
		t.Fatalf("Failed to create host: %v", err)
	}

	if _, err := ts.exec(t, "hostname server1"); !errors.Is(err, data.ErrHostExist) {
		t.Errorf("Expected ErrHostExist, got %v", err)
	}
	ts.must(t, "hostname workstation")
	if out := ts.must(t, "hostname"); out != "workstation\n" {
		t.Errorf("Expected new hostname, got %q", out)
	}
	if _, ok := ts.world.Lookup("workstation"); !ok {
		t.Error("Expected world to know the new label")
	}

	out := ts.must(t, "hosts")
	if !strings.Contains(out, "server1") || !strings.Contains(out, "current") {
		t.Errorf("Unexpected host table %q", out)
	}
}

// TestConfig verifies settings stored in the .config node.
func TestConfig(t *testing.T) {
	ts := newTestShell(t, nil)

	ts.must(t, "config motd 'hello there'")
	ts.must(t, "config depth 3")
	if out := ts.must(t, "config"); out != "depth=3\nmotd=hello there\n" {
		t.Errorf("Unexpected settings %q", out)
	}
	if out := ts.must(t, "config motd"); out != "hello there\n" {
		t.Errorf("Unexpected value %q", out)
	}

	ts.must(t, "config -d depth")
	if _, err := ts.exec(t, "config depth"); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
	if out := ts.must(t, "open .config"); !strings.Contains(out, `"motd": "hello there"`) {
		t.Errorf("Expected config node to hold the settings, got %q", out)
	}
}

// TestHelp verifies that every builtin is listed.
func TestHelp(t *testing.T) {
	ts := newTestShell(t, nil)

	out := ts.must(t, "help")
	for _, c := range builtin.Commands() {
		if !strings.Contains(out, c.Name()) {
			t.Errorf("Expected help to list %q", c.Name())
		}
	}

	out = ts.must(t, "help rm")
	if !strings.Contains(out, "-r, --recursive") || !strings.Contains(out, "<path>") {
		t.Errorf("Unexpected command help %q", out)
	}
	if _, err := ts.exec(t, "help nothing"); !errors.Is(err, data.ErrUnknownCommand) {
		t.Errorf("Expected ErrUnknownCommand, got %v", err)
	}
}

// TestSaveWithoutStore verifies that persistence failures are surfaced.
func TestSaveWithoutStore(t *testing.T) {
	ts := newTestShell(t, nil)

	if _, err := ts.exec(t, "save"); !errors.Is(err, data.ErrNoStore) {
		t.Errorf("Expected ErrNoStore, got %v", err)
	}

	ts = newTestShell(t, memory.NewMemoryStore())
	if _, err := ts.exec(t, "load"); !errors.Is(err, data.ErrSnapshotNotExist) {
		t.Errorf("Expected ErrSnapshotNotExist, got %v", err)
	}
}
