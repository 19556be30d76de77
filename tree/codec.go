package tree

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
)

// Wire field numbers of a serialized node.
const (
	fieldName       protowire.Number = 1
	fieldKind       protowire.Number = 2
	fieldData       protowire.Number = 3
	fieldChildren   protowire.Number = 4
	fieldReadable   protowire.Number = 5
	fieldWritable   protowire.Number = 6
	fieldExecutable protowire.Number = 7
	fieldVisible    protowire.Number = 8
)

// MaxDepth bounds the nesting accepted while decoding.
const MaxDepth = 512

// MarshalBinary encodes the tree depth-first in pre-order using the
// protobuf wire format. Children keep their insertion order.
func (t *Tree) MarshalBinary() ([]byte, error) {
	return t.appendNode(nil, t.root), nil
}

func (t *Tree) appendNode(b []byte, id NodeID) []byte {
	n := &t.slots[id]

	b = protowire.AppendTag(b, fieldName, protowire.BytesType)
	b = protowire.AppendString(b, n.name)

	if n.kind != data.KindDirectory {
		b = protowire.AppendTag(b, fieldKind, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n.kind))
	}

	// An empty but present payload is kept apart from an absent one.
	if n.data != nil {
		b = protowire.AppendTag(b, fieldData, protowire.BytesType)
		b = protowire.AppendBytes(b, n.data)
	}

	for _, child := range n.children {
		b = protowire.AppendTag(b, fieldChildren, protowire.BytesType)
		b = protowire.AppendBytes(b, t.appendNode(nil, child))
	}

	b = appendBool(b, fieldReadable, n.flags.Readable)
	b = appendBool(b, fieldWritable, n.flags.Writable)
	b = appendBool(b, fieldExecutable, n.flags.Executable)
	b = appendBool(b, fieldVisible, n.flags.Visible)
	return b
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

// UnmarshalBinary replaces the content of t with a decoded tree.
// Both the child sequence and the name index of every directory are
// rebuilt through the regular add path.
func (t *Tree) UnmarshalBinary(b []byte) error {
	decoded, err := Decode(b)
	if err != nil {
		return err
	}

	*t = *decoded
	return nil
}

// Decode parses a tree previously produced by MarshalBinary.
func Decode(b []byte) (*Tree, error) {
	root, err := decodeNode(b)
	if err != nil {
		return nil, err
	}
	if root.kind != data.KindDirectory {
		return nil, errors.CorruptSnapshot(nil, "root '%s' is not a directory", root.name)
	}
	if root.name == "" {
		return nil, errors.CorruptSnapshot(nil, "root without name")
	}

	t := New(root.name)
	t.slots[t.root].flags = root.flags
	if err := t.build(t.root, root, 1); err != nil {
		return nil, err
	}
	return t, nil
}

type rawNode struct {
	name     string
	kind     data.NodeKind
	data     []byte
	flags    data.NodeFlags
	children [][]byte
}

func (t *Tree) build(parent NodeID, raw *rawNode, depth int) error {
	if depth > MaxDepth {
		return errors.CorruptSnapshot(nil, "nesting deeper than %d", MaxDepth)
	}
	if len(raw.children) > 0 && !raw.kind.IsDir() {
		return errors.CorruptSnapshot(nil, "leaf '%s' owns children", raw.name)
	}

	for _, b := range raw.children {
		child, err := decodeNode(b)
		if err != nil {
			return err
		}

		id, err := t.Add(parent, child.name, child.kind, child.data)
		if err != nil {
			return errors.CorruptSnapshot(err, "node '%s'", child.name)
		}
		t.slots[id].flags = child.flags

		if err := t.build(id, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func decodeNode(b []byte) (*rawNode, error) {
	raw := &rawNode{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid tag")
		}
		b = b[n:]

		switch {
		case num == fieldName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid name")
			}
			raw.name = v
			b = b[n:]

		case num == fieldData && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid data")
			}
			raw.data = append([]byte{}, v...)
			b = b[n:]

		case num == fieldChildren && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid child")
			}
			raw.children = append(raw.children, v)
			b = b[n:]

		case typ == protowire.VarintType && num >= fieldKind && num <= fieldVisible:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid varint")
			}
			b = b[n:]

			if err := raw.setVarint(num, v); err != nil {
				return nil, err
			}

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid field %d", num)
			}
			b = b[n:]
		}
	}

	return raw, nil
}

func (r *rawNode) setVarint(num protowire.Number, v uint64) error {
	switch num {
	case fieldKind:
		kind := data.NodeKind(v)
		if v > uint64(data.KindEncrypted) || !kind.Valid() {
			return errors.CorruptSnapshot(nil, "unknown kind %d", v)
		}
		r.kind = kind
	case fieldReadable:
		r.flags.Readable = protowire.DecodeBool(v)
	case fieldWritable:
		r.flags.Writable = protowire.DecodeBool(v)
	case fieldExecutable:
		r.flags.Executable = protowire.DecodeBool(v)
	case fieldVisible:
		r.flags.Visible = protowire.DecodeBool(v)
	default:
		// fieldData and fieldChildren with a varint wire type
		return errors.CorruptSnapshot(nil, "field %d has wrong wire type", num)
	}
	return nil
}
