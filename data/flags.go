package data

// NodeFlags carries the informational permission quad of a node.
// Nothing in the shell enforces these flags.
type NodeFlags struct {
	Readable   bool `json:"readable"`
	Writable   bool `json:"writable"`
	Executable bool `json:"executable"`
	Visible    bool `json:"visible"`
}

// AllFlags returns a flag quad with every bit set.
func AllFlags() NodeFlags {
	return NodeFlags{Readable: true, Writable: true, Executable: true, Visible: true}
}

// String returns the flags in "rwxv" form, using '-' for unset bits.
func (f NodeFlags) String() string {
	buf := []byte("----")
	if f.Readable {
		buf[0] = 'r'
	}
	if f.Writable {
		buf[1] = 'w'
	}
	if f.Executable {
		buf[2] = 'x'
	}
	if f.Visible {
		buf[3] = 'v'
	}
	return string(buf)
}
