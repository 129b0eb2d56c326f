package cssparse

import "fmt"

// KeyTable is the parser's output: a compact, heap-resident array of
// fixed-size entries built once by Parse and immutable thereafter
// (spec.md §3's CssKeyArray). It holds a non-owning reference to the
// String it was parsed from; every StringAt/Bytes call dereferences
// that buffer, so the caller must keep it alive (and un-Closed) for
// the table's lifetime, exactly as spec.md §5's Shared Resources
// section requires.
//
// Grounded on tree.go's tree/NodeID API shape (flat slice storage
// addressed by small integer handles), adapted from a recursive
// node+children shape to CSS's already-linked flat table.
type KeyTable struct {
	buf     *String
	entries []KeyField
}

// KeyNode is an opaque, read-only handle to one KeyTable entry
// (spec.md §4.3's node_at return value).
type KeyNode struct {
	table *KeyTable
	index int
}

// Index returns this node's position within its table.
func (n KeyNode) Index() int { return n.index }

// Type returns the entry's tag.
func (n KeyNode) Type() KeyType { return n.table.entries[n.index].Type() }

// Flags returns the entry's flag bitset.
func (n KeyNode) Flags() Flags { return n.table.entries[n.index].Flags() }

// OffsetLength returns the byte offset and length of this entry's
// slice into the owning String.
func (n KeyNode) OffsetLength() (offset, length int) {
	return n.table.entries[n.index].OffsetLength()
}

// IsSelector reports whether this entry is a class/id/wildcard
// selector.
func (n KeyNode) IsSelector() bool { return n.table.entries[n.index].IsSelector() }

// Link returns the table index of the associated block-group sentinel
// for a selector entry, and whether it is set.
func (n KeyNode) Link() (index int, ok bool) { return n.table.entries[n.index].Link() }

// Bytes returns this entry's slice into the retained input buffer.
// Never copies.
func (n KeyNode) Bytes() ([]byte, error) { return n.table.StringAt(n.OffsetLength()) }

// Size returns the table's entry count.
func (t *KeyTable) Size() int { return len(t.entries) }

// Used returns the table's entry count. Identical to Size in this
// implementation, which never pre-allocates unused capacity beyond
// what append grows, but kept distinct per spec.md §4.3's header
// contract (capacity vs used count).
func (t *KeyTable) Used() int { return len(t.entries) }

// At returns the entry at index, or (zero, false) when out of range.
func (t *KeyTable) At(index int) (KeyNode, bool) {
	if index < 0 || index >= len(t.entries) {
		return KeyNode{}, false
	}
	return KeyNode{table: t, index: index}, true
}

// StringAt returns the byte range [offset, offset+length) of the
// retained input buffer. It never copies. Returns an error if the
// buffer has been closed.
func (t *KeyTable) StringAt(offset, length int) ([]byte, error) {
	if err := t.buf.checkLive(); err != nil {
		return nil, err
	}
	if offset < 0 || length < 0 || offset+length > t.buf.Len() {
		return nil, newParseError(ErrKindIO, offset, "string_at out of range")
	}
	return t.buf.data[offset : offset+length], nil
}

// FlagsToText renders a human-readable, |-separated representation of
// the set bits in f, low-bit-first (spec.md §9's resolved Open
// Question). Unknown set bits are rendered as their explicit decimal
// value.
func FlagsToText(f Flags) string {
	if f == 0 {
		return ""
	}
	parts := make([]string, 0, len(flagNames))
	remaining := f
	for _, nf := range flagNames {
		if f&nf.bit != 0 {
			parts = append(parts, nf.name)
			remaining &^= nf.bit
		}
	}
	for bit := Flags(1); bit != 0; bit <<= 1 {
		if remaining&bit != 0 {
			parts = append(parts, fmt.Sprintf("%d", bit))
		}
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "|" + p
	}
	return out
}

// QueryClass scans all entries of the given selector type and returns
// those whose name (the bytes after the leading '.'/'#', or the empty
// name for '*') equal name, in table order, capped at 32 matches
// (spec.md §4.3/§9). This is the idiomatic-Go rendering of the growable
// collection spec.md's Open Questions explicitly permit as an
// alternative to the fixed out[32] caller buffer.
func (t *KeyTable) QueryClass(typ KeyType, name []byte) ([]KeyNode, error) {
	var out [32]KeyNode
	n, err := t.QueryClassInto(typ, name, out[:])
	if err != nil {
		return nil, err
	}
	return append([]KeyNode(nil), out[:n]...), nil
}

// QueryClassInto fills out (capacity must be >= 1) with up to len(out)
// matches and returns the count written. This keeps the 32-slot
// caller-buffer convention named in spec.md's API surface available
// verbatim alongside the slice-returning QueryClass.
func (t *KeyTable) QueryClassInto(typ KeyType, name []byte, out []KeyNode) (int, error) {
	count := 0
	prefixLen := 0
	switch typ {
	case KeyTypeClass, KeyTypeID:
		prefixLen = 1
	case KeyTypeAsterisk:
		prefixLen = 1 // the '*' byte itself; the wildcard's "name" is empty
	}
	for i, e := range t.entries {
		if count >= len(out) {
			break
		}
		if e.Type() != typ {
			continue
		}
		offset, length := e.OffsetLength()
		b, err := t.StringAt(offset+prefixLen, length-prefixLen)
		if err != nil {
			return count, err
		}
		if bytesEqual(b, name) {
			out[count] = KeyNode{table: t, index: i}
			count++
		}
	}
	return count, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
