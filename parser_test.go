package cssparse

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *KeyTable {
	t.Helper()
	s, err := NewString([]byte(src))
	require.NoError(t, err)
	table, err := Parse(s)
	require.NoError(t, err)
	return table
}

func nodeText(t *testing.T, table *KeyTable, i int) string {
	t.Helper()
	node, ok := table.At(i)
	require.True(t, ok)
	b, err := node.Bytes()
	require.NoError(t, err)
	return string(b)
}

// Scenario table straight from spec.md §8's "End-to-end scenarios".
func TestParse_EndToEndScenarios(t *testing.T) {
	t.Run("single class selector with two declarations", func(t *testing.T) {
		table := mustParse(t, ".road { color:red; width:2; }")
		require.Equal(t, 6, table.Size()) // class, sentinel, key, value, key, value

		sel, ok := table.At(0)
		require.True(t, ok)
		assert.Equal(t, KeyTypeClass, sel.Type())
		assert.Equal(t, ".road", nodeText(t, table, 0))

		link, ok := sel.Link()
		require.True(t, ok)
		assert.Equal(t, 1, link)

		sentinel, _ := table.At(1)
		assert.Equal(t, KeyTypeNone, sentinel.Type())
		_, length := sentinel.OffsetLength()
		assert.Equal(t, 0, length)

		assert.Equal(t, "color", nodeText(t, table, 2))
		assert.Equal(t, "red", nodeText(t, table, 3))
		assert.Equal(t, "width", nodeText(t, table, 4))
		assert.Equal(t, "2", nodeText(t, table, 5))
	})

	t.Run("grouped id selectors share one block", func(t *testing.T) {
		table := mustParse(t, "#n1, #n2 { hidden: 1; }")
		require.Equal(t, 5, table.Size()) // id, id, sentinel, key, value

		n1, _ := table.At(0)
		n2, _ := table.At(1)
		link1, ok1 := n1.Link()
		link2, ok2 := n2.Link()
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, link1, link2)
		assert.Equal(t, 2, link1)

		assert.Equal(t, "#n1", nodeText(t, table, 0))
		assert.Equal(t, "#n2", nodeText(t, table, 1))
		assert.Equal(t, "hidden", nodeText(t, table, 3))
		assert.Equal(t, "1", nodeText(t, table, 4))
	})

	t.Run("wildcard selector", func(t *testing.T) {
		table := mustParse(t, "* { readonly: 1; }")
		require.Equal(t, 4, table.Size())
		sel, _ := table.At(0)
		assert.Equal(t, KeyTypeAsterisk, sel.Type())
		_, length := sel.OffsetLength()
		assert.Equal(t, 1, length)
	})

	t.Run("empty block", func(t *testing.T) {
		table := mustParse(t, ".a {}")
		require.Equal(t, 2, table.Size()) // class, sentinel
		sel, _ := table.At(0)
		link, ok := sel.Link()
		require.True(t, ok)
		sentinel, _ := table.At(link)
		assert.Equal(t, KeyTypeNone, sentinel.Type())
	})

	t.Run("quoted value preserves embedded semicolon", func(t *testing.T) {
		table := mustParse(t, `.a { k: "a; b"; }`)
		require.Equal(t, 4, table.Size())
		assert.Equal(t, "k", nodeText(t, table, 2))
		assert.Equal(t, "a; b", nodeText(t, table, 3))
	})

	t.Run("missing trailing semicolon is an error", func(t *testing.T) {
		_, err := parseErr(t, ".a { k: v }")
		assertKind(t, err, ErrKindExpectedSemicolon)
	})
}

func parseErr(t *testing.T, src string) (*KeyTable, error) {
	t.Helper()
	s, err := NewString([]byte(src))
	require.NoError(t, err)
	return Parse(s)
}

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, kind, pe.Kind())
}

func TestParse_WhitespaceAndComments(t *testing.T) {
	src := `
		// a line comment
		.a /* inline */ {
			/* block
			   comment */
			color: blue; // trailing
		}
	`
	table := mustParse(t, src)
	require.Equal(t, 4, table.Size())
	assert.Equal(t, "color", nodeText(t, table, 2))
	assert.Equal(t, "blue", nodeText(t, table, 3))
}

func TestParse_CRLineCommentTermination(t *testing.T) {
	src := ".a { k: v; // comment\r k2: v2; }"
	table := mustParse(t, src)
	require.Equal(t, 6, table.Size())
	assert.Equal(t, "k2", nodeText(t, table, 4))
}

func TestParse_DuplicateKeysPreserved(t *testing.T) {
	table := mustParse(t, ".a { k: 1; k: 2; }")
	require.Equal(t, 6, table.Size())
	assert.Equal(t, "k", nodeText(t, table, 2))
	assert.Equal(t, "1", nodeText(t, table, 3))
	assert.Equal(t, "k", nodeText(t, table, 4))
	assert.Equal(t, "2", nodeText(t, table, 5))
}

func TestParse_UnexpectedCharAtTop(t *testing.T) {
	_, err := parseErr(t, "@media { }")
	assertKind(t, err, ErrKindUnexpectedChar)
}

func TestParse_UnterminatedBlock(t *testing.T) {
	_, err := parseErr(t, ".a { k: v;")
	assertKind(t, err, ErrKindUnterminatedBlock)
}

func TestParse_UnterminatedString(t *testing.T) {
	_, err := parseErr(t, `.a { k: "v; }`)
	assertKind(t, err, ErrKindUnterminatedString)
}

func TestParse_ExpectedColon(t *testing.T) {
	_, err := parseErr(t, ".a { k v; }")
	assertKind(t, err, ErrKindExpectedColon)
}

func TestParse_ExpectedBraceOpen(t *testing.T) {
	_, err := parseErr(t, ".a k: v; }")
	assertKind(t, err, ErrKindExpectedBraceOpen)
}

func TestParse_TokenTooLong(t *testing.T) {
	longName := bytes.Repeat([]byte("a"), maxTokenLength) // 256 bytes, one over the cap
	src := append([]byte{'.'}, longName...)
	src = append(src, []byte(" { k: v; }")...)
	_, err := parseErr(t, string(src))
	assertKind(t, err, ErrKindTokenTooLong)
}

func TestParse_TokenAtBoundaryIsAccepted(t *testing.T) {
	name := bytes.Repeat([]byte("a"), maxTokenLength-2) // name total with '.' is 255 bytes
	src := append([]byte{'.'}, name...)
	src = append(src, []byte(" { k: v; }")...)
	table, err := parseErr(t, string(src))
	require.NoError(t, err)
	_, length := func() (int, int) {
		n, _ := table.At(0)
		return n.OffsetLength()
	}()
	assert.Equal(t, maxTokenLength-1, length)
}

func TestParse_TooManyKeys(t *testing.T) {
	var buf bytes.Buffer
	// Each selector contributes a class entry + sentinel = 2 entries.
	// invalidLink (4095) is the usable-entry budget; push one rule past it.
	for i := 0; i < invalidLink/2+1; i++ {
		fmt.Fprintf(&buf, ".c%d {}", i)
	}
	_, err := parseErr(t, buf.String())
	assertKind(t, err, ErrKindTooManyKeys)
}

func TestParse_NilOrClosedBuffer(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)

	s, err := NewString([]byte(".a {}"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	_, err = Parse(s)
	require.Error(t, err)
}

func TestParse_ErrorCarriesLineAndOffset(t *testing.T) {
	src := ".a {\n  k v;\n}"
	_, err := parseErr(t, src)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrKindExpectedColon, pe.Kind())
	assert.Equal(t, 9, pe.Offset) // the 'v' where ':' was expected
	assert.Contains(t, err.Error(), "2:")
}
