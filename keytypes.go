package cssparse

// KeyType identifies what a KeyField represents within a parsed
// declaration table.
type KeyType int

const (
	// KeyTypeNone marks a synthetic block-group sentinel: a zero-length
	// entry whose table index is the join point between a selector (or
	// group of selectors) and the declarations that follow it.
	KeyTypeNone KeyType = 0

	// KeyTypeKey and KeyTypeValue mark the two halves of a declaration,
	// always emitted as an adjacent pair in source order.
	KeyTypeKey   KeyType = 1
	KeyTypeValue KeyType = 2

	// Selector types keep the original header's ASCII-codepoint values
	// for their leading punctuation.
	KeyTypeClass    KeyType = '.' // 46
	KeyTypeID       KeyType = '#' // 35
	KeyTypeAsterisk KeyType = '*' // 42
)

func (t KeyType) String() string {
	switch t {
	case KeyTypeNone:
		return "none"
	case KeyTypeKey:
		return "key"
	case KeyTypeValue:
		return "value"
	case KeyTypeClass:
		return "class"
	case KeyTypeID:
		return "id"
	case KeyTypeAsterisk:
		return "asterisk"
	default:
		return "unknown"
	}
}

// IsSelector reports whether t identifies one of the three selector
// kinds (class, id, wildcard) as opposed to a key/value/sentinel entry.
func (t KeyType) IsSelector() bool {
	return t == KeyTypeClass || t == KeyTypeID || t == KeyTypeAsterisk
}

// Flags is a 16-bit OR-combinable bitset of named UI-state bits.
type Flags uint16

const (
	FlagReadonly Flags = 1 << iota
	FlagHidden
	FlagHilight
	FlagPickup
	FlagDragging
	FlagDeleting
	FlagFault
	FlagFlash
	FlagZoomin
	FlagZoomout
	FlagPanning
)

// flagNames lists the named bits low-bit-first; this order is also the
// order FlagsToText renders them in (spec's resolved Open Question).
var flagNames = []struct {
	bit  Flags
	name string
}{
	{FlagReadonly, "readonly"},
	{FlagHidden, "hidden"},
	{FlagHilight, "hilight"},
	{FlagPickup, "pickup"},
	{FlagDragging, "dragging"},
	{FlagDeleting, "deleting"},
	{FlagFault, "fault"},
	{FlagFlash, "flash"},
	{FlagZoomin, "zoomin"},
	{FlagZoomout, "zoomout"},
	{FlagPanning, "panning"},
}

// flagByName resolves one of the named flag identifiers recognized by
// the flag-declaration extension in the grammar (spec.md §4.2).
func flagByName(name string) (Flags, bool) {
	for _, f := range flagNames {
		if f.name == name {
			return f.bit, true
		}
	}
	return 0, false
}

// Hard size bounds from spec.md §6, bit-exact and observable at the
// public API.
const (
	maxInputSize   = 1 << 20 // input bytes must be strictly less than this
	maxEntries     = 1 << 12 // entries must be strictly less than this
	invalidLink    = 0xFFF   // 4095: reserved "no link" sentinel
	maxTokenLength = 1 << 8  // per-token length must be strictly less than this
)
