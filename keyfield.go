package cssparse

// KeyField is a tagged slice into a String with auxiliary metadata
// (spec.md §3's CssKeyField). Stored unpacked rather than as true
// bitfields, per spec.md §9's explicit license: the widths below are
// contracts on maximum size, enforced by newKeyField, not a wire
// layout. Grounded on tree.go's node struct, which stores its own
// logical fields unpacked in a flat slice for the same reason.
type KeyField struct {
	typ    KeyType
	flags  Flags
	offset int // < 2^20
	length int // < 2^8
	link   int // < 2^12, or invalidLink
}

// newKeyField validates the offset/length contracts from spec.md §6
// before constructing an entry. Both checks apply to every entry,
// including a zero-length block-group sentinel.
func newKeyField(typ KeyType, offset, length int) (KeyField, error) {
	if length >= maxTokenLength {
		return KeyField{}, newParseError(ErrKindTokenTooLong, offset,
			"token exceeds maximum length of 255 bytes")
	}
	if offset >= maxInputSize {
		return KeyField{}, newParseError(ErrKindInputTooLarge, offset,
			"offset exceeds maximum input size")
	}
	return KeyField{typ: typ, offset: offset, length: length, link: invalidLink}, nil
}

// Type returns the entry's tag.
func (f KeyField) Type() KeyType { return f.typ }

// Flags returns the entry's flag bitset (only ever non-zero for
// selector entries that have had ApplyDeclaredFlags run over them).
func (f KeyField) Flags() Flags { return f.flags }

// OffsetLength returns the byte offset and length of this entry's
// slice into the owning String.
func (f KeyField) OffsetLength() (offset, length int) { return f.offset, f.length }

// IsSelector reports whether this entry is a class/id/wildcard
// selector.
func (f KeyField) IsSelector() bool { return f.typ.IsSelector() }

// Link returns the table index of the associated block-group sentinel
// for a selector entry, and whether it is set (not the invalid
// sentinel 4095).
func (f KeyField) Link() (index int, ok bool) {
	if f.link == invalidLink {
		return 0, false
	}
	return f.link, true
}

// isSentinel reports whether this is a synthetic block-group marker:
// type none, zero length.
func (f KeyField) isSentinel() bool {
	return f.typ == KeyTypeNone && f.length == 0
}
