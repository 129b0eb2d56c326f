package cssparse

import "fmt"

// parser is a single-pass byte scanner that walks a String's payload,
// appending entries to a growing []KeyField and, at each block open,
// resolving the pending selectors' links in one step (spec.md §9's
// "Two-pass linkage": buffer pending selector indices between Top and
// the next '{', then write their Link at block-open time, instead of
// patching already-emitted entries).
//
// Grounded on parser.go/base_parser.go's cursor discipline
// (Peek/Any/line tracking), narrowed from a rune-oriented backtracking
// PEG interpreter to a byte-oriented single-pass state machine: this
// grammar never backtracks, so there is no predicate stack, no
// furthest-failure-position tracking, and no Choice operator.
type parser struct {
	buf     *String
	pos     int
	entries []KeyField
}

// Parse is the sole entry point (spec.md §4.2). It consumes buf in
// full and returns an immutable KeyTable, or the first error
// encountered; no partial table is ever returned (spec.md §7's
// propagation policy).
func Parse(buf *String) (*KeyTable, error) {
	if buf == nil {
		return nil, newParseError(ErrKindIO, 0, "nil input buffer")
	}
	if err := buf.checkLive(); err != nil {
		return nil, err
	}

	p := &parser{buf: buf, entries: make([]KeyField, 0, 64)}

	for {
		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if p.atEOF() {
			break // Top state with cursor at EOF: the only valid terminal state.
		}

		switch p.peek() {
		case '.', '#', '*':
			if err := p.parseRule(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errAt(ErrKindUnexpectedChar, fmt.Sprintf("unexpected byte %q at top level", p.peek()))
		}
	}

	return &KeyTable{buf: p.buf, entries: p.entries}, nil
}

// parseRule reads one selector-list, the '{' that opens its block, and
// the block's declarations up to and including the matching '}'.
func (p *parser) parseRule() error {
	selectorIdxs, err := p.parseSelectorList()
	if err != nil {
		return err
	}

	if err := p.skipSpaceAndComments(); err != nil {
		return err
	}
	if p.atEOF() {
		return p.errAt(ErrKindExpectedBraceOpen, "expected '{' before end of input")
	}
	if p.peek() != '{' {
		return p.errAt(ErrKindExpectedBraceOpen, fmt.Sprintf("expected '{' but found %q", p.peek()))
	}
	p.advance()

	sentinelIdx, err := p.emit(KeyTypeNone, p.pos, 0)
	if err != nil {
		return err
	}
	for _, si := range selectorIdxs {
		p.entries[si].link = sentinelIdx
	}

	return p.parseDeclarations()
}

// parseSelectorList reads "selector { ',' selector }" and returns the
// table indices of the emitted selector entries, in source order
// (spec.md §4.2's "Selector grouping").
func (p *parser) parseSelectorList() ([]int, error) {
	var idxs []int
	for {
		idx, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		idxs = append(idxs, idx)

		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if p.atEOF() || p.peek() != ',' {
			return idxs, nil
		}
		p.advance()
		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}
	}
}

// parseSelector reads one of '.'NAME, '#'NAME or '*'.
func (p *parser) parseSelector() (int, error) {
	switch p.peek() {
	case '.':
		return p.parseNamedSelector(KeyTypeClass)
	case '#':
		return p.parseNamedSelector(KeyTypeID)
	case '*':
		start := p.pos
		p.advance()
		return p.emit(KeyTypeAsterisk, start, 1)
	default:
		return 0, p.errAt(ErrKindUnexpectedChar, fmt.Sprintf("unexpected byte %q, expected a selector", p.peek()))
	}
}

// parseNamedSelector reads '.'/'#' followed by a mandatory name; the
// emitted entry's offset/length spans the leading punctuation too.
func (p *parser) parseNamedSelector(typ KeyType) (int, error) {
	start := p.pos
	p.advance() // consume '.' or '#'
	if !isNameStartByte(p.peek()) {
		return 0, p.errAt(ErrKindUnexpectedChar, fmt.Sprintf("expected a name after %q", p.buf.byteAt(start)))
	}
	for isNameByte(p.peek()) {
		p.advance()
	}
	length := p.pos - start
	if length >= maxTokenLength {
		return 0, p.errorAtOffset(ErrKindTokenTooLong, start, "selector name exceeds 255 bytes")
	}
	return p.emit(typ, start, length)
}

// parseDeclarations reads zero or more "key : value ;" declarations up
// to and including the block's closing '}'.
func (p *parser) parseDeclarations() error {
	for {
		if err := p.skipSpaceAndComments(); err != nil {
			return err
		}
		if p.atEOF() {
			return p.errAt(ErrKindUnterminatedBlock, "end of input inside a declaration block")
		}
		if p.peek() == '}' {
			p.advance()
			return nil
		}
		if err := p.parseDeclaration(); err != nil {
			return err
		}
	}
}

// parseDeclaration reads one "key : value ;" triple.
func (p *parser) parseDeclaration() error {
	keyStart := p.pos
	if !isNameStartByte(p.peek()) {
		return p.errAt(ErrKindUnexpectedChar, fmt.Sprintf("unexpected byte %q, expected a key name", p.peek()))
	}
	for isNameByte(p.peek()) {
		p.advance()
	}
	keyLen := p.pos - keyStart
	if keyLen >= maxTokenLength {
		return p.errorAtOffset(ErrKindTokenTooLong, keyStart, "key name exceeds 255 bytes")
	}
	if _, err := p.emit(KeyTypeKey, keyStart, keyLen); err != nil {
		return err
	}

	if err := p.skipSpaceAndComments(); err != nil {
		return err
	}
	if p.atEOF() {
		return p.errAt(ErrKindExpectedColon, "expected ':' before end of input")
	}
	if p.peek() != ':' {
		return p.errAt(ErrKindExpectedColon, fmt.Sprintf("expected ':' but found %q", p.peek()))
	}
	p.advance()

	if err := p.skipSpaceAndComments(); err != nil {
		return err
	}

	valStart, valLen, err := p.parseValue()
	if err != nil {
		return err
	}
	if valLen >= maxTokenLength {
		return p.errorAtOffset(ErrKindTokenTooLong, valStart, "value exceeds 255 bytes")
	}
	_, err = p.emit(KeyTypeValue, valStart, valLen)
	return err
}

// parseValue reads a declaration's value, quoted or unquoted, and
// consumes the terminating ';'. The quoted sub-state strips the
// surrounding double quotes from the emitted bounds; the unquoted path
// trims trailing whitespace (leading whitespace was already consumed
// by the caller).
func (p *parser) parseValue() (start, length int, err error) {
	if p.peek() == '"' {
		p.advance()
		start = p.pos
		for {
			if p.atEOF() {
				return 0, 0, p.errAt(ErrKindUnterminatedString, "missing closing '\"'")
			}
			if p.peek() == '"' {
				break
			}
			p.advance()
		}
		length = p.pos - start
		p.advance() // consume closing quote

		if err := p.skipSpaceAndComments(); err != nil {
			return 0, 0, err
		}
		if p.atEOF() {
			return 0, 0, p.errAt(ErrKindExpectedSemicolon, "expected ';' before end of input")
		}
		if p.peek() != ';' {
			return 0, 0, p.errAt(ErrKindExpectedSemicolon, fmt.Sprintf("expected ';' but found %q", p.peek()))
		}
		p.advance()
		return start, length, nil
	}

	start = p.pos
	for {
		if p.atEOF() {
			return 0, 0, p.errAt(ErrKindUnterminatedBlock, "end of input inside a declaration value")
		}
		c := p.peek()
		if c == ';' {
			break
		}
		if c == '}' {
			return 0, 0, p.errAt(ErrKindExpectedSemicolon, "missing ';' before '}'")
		}
		p.advance()
	}
	end := p.pos
	for end > start && isSpace(p.buf.byteAt(end-1)) {
		end--
	}
	p.advance() // consume ';'
	return start, end - start, nil
}

// emit appends a validated entry and returns its table index, failing
// with too_many_keys once the 4095-usable-index budget is exhausted
// (index 4095 stays reserved as the invalid-link sentinel).
func (p *parser) emit(typ KeyType, offset, length int) (int, error) {
	if len(p.entries) >= invalidLink {
		return 0, p.errAt(ErrKindTooManyKeys, "parsed entry count would exceed 4095")
	}
	field, err := newKeyField(typ, offset, length)
	if err != nil {
		return 0, err
	}
	p.entries = append(p.entries, field)
	return len(p.entries) - 1, nil
}

// skipSpaceAndComments consumes whitespace, "// ..." line comments and
// "/* ... */" block comments between tokens. Nested block comments are
// not recognized, matching spec.md §4.2. An unterminated block comment
// simply runs to end-of-input rather than erroring: Top with the
// cursor at EOF is a valid terminal state, so a dangling "/*" at the
// very end of a file behaves like trailing whitespace.
func (p *parser) skipSpaceAndComments() error {
	for {
		c := p.peek()
		switch {
		case isSpace(c):
			p.advance()
		case c == '/' && p.peekAt(1) == '/':
			p.advance()
			p.advance()
			for !p.atEOF() && p.peek() != '\n' && p.peek() != '\r' {
				p.advance()
			}
		case c == '/' && p.peekAt(1) == '*':
			p.advance()
			p.advance()
			for !p.atEOF() {
				if p.peek() == '*' && p.peekAt(1) == '/' {
					p.advance()
					p.advance()
					break
				}
				p.advance()
			}
		default:
			return nil
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isNameStartByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isNameByte(c byte) bool {
	return isNameStartByte(c) || (c >= '0' && c <= '9') || c == '-'
}

func (p *parser) peek() byte  { return p.peekAt(0) }
func (p *parser) atEOF() bool { return p.pos >= p.buf.Len() }
func (p *parser) advance()    { p.pos++ }

func (p *parser) peekAt(n int) byte {
	idx := p.pos + n
	if idx < 0 || idx >= len(p.buf.data) {
		return 0
	}
	return p.buf.data[idx]
}

func (p *parser) errAt(kind ErrorKind, msg string) error {
	return p.errorAtOffset(kind, p.pos, msg)
}

func (p *parser) errorAtOffset(kind ErrorKind, offset int, msg string) error {
	e := newParseError(kind, offset, msg)
	loc := newByteLineIndex(p.buf.Bytes()).locationAt(offset)
	e.loc = &loc
	return e
}
