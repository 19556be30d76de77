package vshell

import (
	"strings"

	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/tree"
)

type seedNode struct {
	path string
	kind data.NodeKind
	data string
}

var demoNodes = []seedNode{
	{"lib", data.KindDirectory, ""},
	{"lib/v1.sh", data.KindExecutable, "v1"},
	{"lib/v2.sh", data.KindExecutable, "v2"},
	{"lib/v3.bin", data.KindBinary, `"v3"`},
	{"user.txt", data.KindText, "文本"},
	{"data", data.KindDirectory, ""},
	{"data/img", data.KindDirectory, ""},
	{"data/img/xxx.png", data.KindImage, ""},
	{"data/img/01au3.jpg", data.KindImage, ""},
}

// SeedDemo fills t with the layout new installations start with.
// Parents must precede their children in demoNodes.
func SeedDemo(t *tree.Tree) error {
	for _, n := range demoNodes {
		parent := t.Root()
		parts := strings.Split(n.path, "/")
		for _, name := range parts[:len(parts)-1] {
			id, ok := t.Lookup(parent, name)
			if !ok {
				return errors.NodeNotExist(nil, n.path)
			}
			parent = id
		}

		var payload []byte
		if n.data != "" {
			payload = []byte(n.data)
		}
		id, err := t.Add(parent, parts[len(parts)-1], n.kind, payload)
		if err != nil {
			return err
		}

		flags := data.NodeFlags{Readable: true, Writable: true, Visible: true}
		if n.kind == data.KindDirectory || n.kind == data.KindExecutable {
			flags.Executable = true
		}
		if err := t.SetFlags(id, flags); err != nil {
			return err
		}
	}
	return nil
}
