package cssparse

import "strconv"

// ApplyDeclaredFlags implements the flag-declaration extension from
// spec.md §4.2: a key named by one of the flag vocabulary identifiers,
// with a value that is either the identifier itself or the decimal
// literal matching its bit, is an ordinary key/value pair at parse
// time. This is the opt-in "downstream call" spec.md describes that
// ORs the corresponding bits into the enclosing selector's flags.
//
// Because a KeyTable is immutable once Parse returns (spec.md §3's
// Lifecycle), this returns a new table with the same buffer and a
// copied, updated entry slice rather than mutating t in place.
func ApplyDeclaredFlags(t *KeyTable) (*KeyTable, error) {
	entries := make([]KeyField, len(t.entries))
	copy(entries, t.entries)

	for i := range entries {
		if !entries[i].IsSelector() {
			continue
		}
		linkIdx, ok := entries[i].Link()
		if !ok {
			continue
		}

		var bits Flags
		for j := linkIdx + 1; j+1 < len(entries) && entries[j].Type() == KeyTypeKey; j += 2 {
			keyOff, keyLen := entries[j].OffsetLength()
			key, err := t.StringAt(keyOff, keyLen)
			if err != nil {
				return nil, err
			}
			bit, ok := flagByName(string(key))
			if !ok {
				continue
			}

			valOff, valLen := entries[j+1].OffsetLength()
			val, err := t.StringAt(valOff, valLen)
			if err != nil {
				return nil, err
			}
			if matchesFlagValue(string(val), string(key), bit) {
				bits |= bit
			}
		}
		entries[i].flags |= bits
	}

	return &KeyTable{buf: t.buf, entries: entries}, nil
}

func matchesFlagValue(val, name string, bit Flags) bool {
	if val == name {
		return true
	}
	n, err := strconv.Atoi(val)
	return err == nil && n == int(bit)
}
