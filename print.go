package cssparse

import (
	"bytes"
	"io"
)

// Print writes a canonical reformatted CSS text to w, built only from
// the public KeyTable/KeyNode accessors (spec.md §4.3). It round-trips
// through Parse up to whitespace and declaration ordering (spec.md §8,
// property 4).
func (t *KeyTable) Print(w io.Writer) error {
	bw := &bufferedWriter{w: w}

	i := 0
	for i < len(t.entries) {
		node, _ := t.At(i)
		if !node.IsSelector() {
			// Not reachable from a table Parse actually produces; an
			// entry that is not a selector at this point is skipped.
			i++
			continue
		}

		var selectors []KeyNode
		for i < len(t.entries) {
			n, _ := t.At(i)
			if !n.IsSelector() {
				break
			}
			selectors = append(selectors, n)
			i++
		}

		for idx, sel := range selectors {
			if idx > 0 {
				bw.writeString(", ")
			}
			name, err := sel.Bytes()
			if err != nil {
				return err
			}
			bw.write(name)
		}

		if i >= len(t.entries) {
			bw.writeString(" {}\n\n")
			break
		}

		sentinel, _ := t.At(i)
		if sentinel.Type() != KeyTypeNone {
			// No block-group sentinel (e.g. a synthetic, detached
			// table); render as an empty block rather than fail.
			bw.writeString(" {}\n\n")
			continue
		}
		i++

		bw.writeString(" {\n")
		for i+1 < len(t.entries) {
			keyNode, _ := t.At(i)
			if keyNode.Type() != KeyTypeKey {
				break
			}
			valNode, _ := t.At(i + 1)

			key, err := keyNode.Bytes()
			if err != nil {
				return err
			}
			val, err := valNode.Bytes()
			if err != nil {
				return err
			}

			bw.writeString("  ")
			bw.write(key)
			bw.writeString(": ")
			bw.write(quoteValueIfNeeded(val))
			bw.writeString(";\n")
			i += 2
		}
		bw.writeString("}\n\n")
	}

	return bw.err
}

// quoteValueIfNeeded wraps val in double quotes when printing it bare
// would not parse back to the same bytes: when it contains ';' or '}'
// (which would terminate the declaration early), starts or ends with
// whitespace (which the unquoted path trims), or starts with "//" or
// "/*" (which would be read as a comment). The grammar has no escape
// mechanism inside a quoted value, so this is a literal wrap, not Go
// string quoting.
func quoteValueIfNeeded(val []byte) []byte {
	edgeSpace := len(val) > 0 && (isSpace(val[0]) || isSpace(val[len(val)-1]))
	commentStart := bytes.HasPrefix(val, []byte("//")) || bytes.HasPrefix(val, []byte("/*"))
	if !bytes.ContainsAny(val, ";}") && !edgeSpace && !commentStart {
		return val
	}
	out := make([]byte, 0, len(val)+2)
	out = append(out, '"')
	out = append(out, val...)
	out = append(out, '"')
	return out
}

// bufferedWriter collapses the repeated "if err != nil { return err }"
// dance across a sequence of small Write calls, the way
// tree_printer.go's treePrinter accumulates into a strings.Builder.
type bufferedWriter struct {
	w   io.Writer
	err error
}

func (bw *bufferedWriter) write(p []byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write(p)
}

func (bw *bufferedWriter) writeString(s string) {
	bw.write([]byte(s))
}
