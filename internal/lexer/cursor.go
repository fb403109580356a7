package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"typedlint/internal/source"
)

// Cursor walks the bytes of one file. Content is UTF-8; ASCII is read
// byte-wise and everything else through PeekRune.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte or 0 at the end.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte n positions ahead or 0.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Peek2 returns the current and next byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// PeekRune decodes the rune at the cursor. size is 0 at the end and 1 for
// an invalid byte, which comes back as utf8.RuneError.
func (c *Cursor) PeekRune() (r rune, size uint32) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.File.Content[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, n := utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
	return r, uint32(n) // #nosec G115 -- rune size is at most 4
}

// Bump consumes one byte and returns it, 0 at the end.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// BumpRune consumes one rune.
func (c *Cursor) BumpRune() rune {
	r, size := c.PeekRune()
	c.Off += size
	return r
}

// LineTerminator reports the length of the ECMAScript line terminator at
// the cursor: \n, \r, \r\n, U+2028 or U+2029. 0 means none.
func (c *Cursor) LineTerminator() uint32 {
	switch c.Peek() {
	case '\n':
		return 1
	case '\r':
		if c.PeekAt(1) == '\n' {
			return 2
		}
		return 1
	case 0xE2:
		if r, size := c.PeekRune(); r == '\u2028' || r == '\u2029' {
			return size
		}
	}
	return 0
}

// Mark is a saved offset used to build spans.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom returns the span from m to the current offset.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset moves the cursor back to m.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// Eat consumes the next byte if it is b.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() == b && !c.EOF() {
		c.Off++
		return true
	}
	return false
}

// EatString consumes s if the input continues with it. Operators are
// matched longest first with this.
func (c *Cursor) EatString(s string) bool {
	n := uint32(len(s)) // #nosec G115 -- operator literals are short
	if c.Off+n > c.Limit || !strings.HasPrefix(string(c.File.Content[c.Off:c.Off+n]), s) {
		return false
	}
	c.Off += n
	return true
}
