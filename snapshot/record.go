package snapshot

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/tree"
)

// DefaultSlot names the snapshot used when nothing else is configured.
const DefaultSlot = "001"

// Record is the persisted state of every known host.
type Record struct {
	Name  string
	Hosts []Host
}

// Host is a single persisted session identity together with its tree.
type Host struct {
	User  string
	Label string
	Tree  *tree.Tree
}

const (
	fieldRecordName  protowire.Number = 1
	fieldRecordHosts protowire.Number = 2

	fieldHostUser  protowire.Number = 1
	fieldHostLabel protowire.Number = 2
	fieldHostTree  protowire.Number = 3
)

// Marshal encodes the record. Hosts keep their order.
func (r *Record) Marshal() ([]byte, error) {
	var b []byte

	b = protowire.AppendTag(b, fieldRecordName, protowire.BytesType)
	b = protowire.AppendString(b, r.Name)

	for _, host := range r.Hosts {
		encoded, err := host.marshal()
		if err != nil {
			return nil, err
		}
		b = protowire.AppendTag(b, fieldRecordHosts, protowire.BytesType)
		b = protowire.AppendBytes(b, encoded)
	}

	return b, nil
}

func (h *Host) marshal() ([]byte, error) {
	var b []byte

	b = protowire.AppendTag(b, fieldHostUser, protowire.BytesType)
	b = protowire.AppendString(b, h.User)
	b = protowire.AppendTag(b, fieldHostLabel, protowire.BytesType)
	b = protowire.AppendString(b, h.Label)

	t := h.Tree
	if t == nil {
		t = tree.New(tree.DefaultRootName)
	}
	encoded, err := t.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, fieldHostTree, protowire.BytesType)
	b = protowire.AppendBytes(b, encoded)
	return b, nil
}

// Unmarshal decodes a record produced by Marshal. Duplicate host labels
// are rejected.
func Unmarshal(b []byte) (*Record, error) {
	r := &Record{}
	seen := make(map[string]bool)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid tag")
		}
		b = b[n:]

		if typ != protowire.BytesType || (num != fieldRecordName && num != fieldRecordHosts) {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid field %d", num)
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid field %d", num)
		}
		b = b[n:]

		if num == fieldRecordName {
			r.Name = string(v)
			continue
		}

		host, err := unmarshalHost(v)
		if err != nil {
			return nil, err
		}
		if seen[host.Label] {
			return nil, errors.CorruptSnapshot(nil, "duplicate host '%s'", host.Label)
		}
		seen[host.Label] = true
		r.Hosts = append(r.Hosts, *host)
	}

	return r, nil
}

func unmarshalHost(b []byte) (*Host, error) {
	h := &Host{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid host tag")
		}
		b = b[n:]

		if typ != protowire.BytesType {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid host field %d", num)
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, errors.CorruptSnapshot(protowire.ParseError(n), "invalid host field %d", num)
		}
		b = b[n:]

		switch num {
		case fieldHostUser:
			h.User = string(v)
		case fieldHostLabel:
			h.Label = string(v)
		case fieldHostTree:
			t, err := tree.Decode(v)
			if err != nil {
				return nil, err
			}
			h.Tree = t
		}
	}

	if h.Label == "" {
		return nil, errors.CorruptSnapshot(nil, "host without label")
	}
	if h.Tree == nil {
		h.Tree = tree.New(tree.DefaultRootName)
	}
	return h, nil
}
