package data

import "strings"

// NodeKind identifies the type of a node in the virtual filesystem.
// The declaration order is also the listing order.
type NodeKind int

const (
	KindDirectory  NodeKind = iota // Directory owning child nodes
	KindText                       // UTF-8 text
	KindImage                      // Opaque image bytes
	KindExecutable                 // Symbolic reference to a program
	KindBinary                     // Structured (JSON) payload
	KindEncrypted                  // Opaque encrypted bytes
)

var kindNames = [...]string{"dir", "txt", "img", "exe", "bin", "enc"}

// String returns the short kind name used by listings.
func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k NodeKind) Valid() bool {
	return k >= KindDirectory && k <= KindEncrypted
}

// IsDir reports whether k describes a directory.
func (k NodeKind) IsDir() bool {
	return k == KindDirectory
}

// ParseKind converts a short or long kind name into a NodeKind.
func ParseKind(name string) (NodeKind, error) {
	switch strings.ToLower(name) {
	case "dir", "directory":
		return KindDirectory, nil
	case "txt", "text":
		return KindText, nil
	case "img", "image":
		return KindImage, nil
	case "exe", "executable":
		return KindExecutable, nil
	case "bin", "binary":
		return KindBinary, nil
	case "enc", "encrypted":
		return KindEncrypted, nil
	}
	return 0, ErrInvalid
}
