package refl

import (
	"encoding/binary"
	"strings"
)

// TextWriter accumulates the textual form of a value, tracking the pretty-
// print indentation depth so nested aggregates/containers can lay themselves
// out consistently.
type TextWriter struct {
	b    strings.Builder
	opts ToStringOptions
}

// NewTextWriter creates a writer using opts for the outermost value.
func NewTextWriter(opts ToStringOptions) *TextWriter {
	return &TextWriter{opts: opts}
}

// Options returns the writer's current layout options.
func (w *TextWriter) Options() ToStringOptions { return w.opts }

// Enter temporarily switches the writer's layout options (typically to
// opts.nested()) for the duration of writing one nested value into the same
// buffer, returning a function that restores the previous options.
func (w *TextWriter) Enter(childOpts ToStringOptions) func() {
	prev := w.opts
	w.opts = childOpts
	return func() { w.opts = prev }
}

// WriteString appends s verbatim.
func (w *TextWriter) WriteString(s string) { w.b.WriteString(s) }

// WriteByte appends a single byte.
func (w *TextWriter) WriteByte(c byte) { w.b.WriteByte(c) }

// NewlineIndent, in pretty mode, writes a newline followed by ExtraIndent
// spaces. It is a no-op in compact mode.
func (w *TextWriter) NewlineIndent() {
	if !w.opts.Pretty {
		return
	}
	w.b.WriteByte('\n')
	w.b.WriteString(strings.Repeat(" ", w.opts.ExtraIndent))
}

// Nested returns the options a child value should be written with.
func (w *TextWriter) Nested() ToStringOptions { return w.opts.nested() }

// String returns everything written so far.
func (w *TextWriter) String() string { return w.b.String() }

// TextReader walks a textual value, tracking row/column for error
// reporting. It skips only internal whitespace — the caller is responsible
// for trimming the whole-value leading/trailing whitespace and comments.
type TextReader struct {
	data string
	pos  int
}

// NewTextReader wraps s for parsing from the start.
func NewTextReader(s string) *TextReader { return &TextReader{data: s} }

func (r *TextReader) position() (row, col int) {
	row, col = 1, 1
	for i := 0; i < r.pos && i < len(r.data); i++ {
		if r.data[i] == '\n' {
			row++
			col = 1
		} else {
			col++
		}
	}
	return row, col
}

// Pos returns the current byte offset into the input.
func (r *TextReader) Pos() int { return r.pos }

// Done reports whether the reader has consumed the entire input.
func (r *TextReader) Done() bool { return r.pos >= len(r.data) }

// Peek returns the next byte without consuming it, and false at EOF.
func (r *TextReader) Peek() (byte, bool) {
	if r.pos >= len(r.data) {
		return 0, false
	}
	return r.data[r.pos], true
}

// PeekAt returns the byte offset bytes ahead of the cursor, and false if
// that position is past EOF.
func (r *TextReader) PeekAt(offset int) (byte, bool) {
	i := r.pos + offset
	if i >= len(r.data) {
		return 0, false
	}
	return r.data[i], true
}

// Advance consumes n bytes.
func (r *TextReader) Advance(n int) { r.pos += n }

// SkipWS skips whitespace and // line / * block */ comments, matching the
// grammar's WS production.
func (r *TextReader) SkipWS() {
	for {
		c, ok := r.Peek()
		if !ok {
			return
		}
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			r.pos++
		case c == '/' && r.peekIs(1, '/'):
			for {
				c, ok := r.Peek()
				if !ok || c == '\n' {
					break
				}
				r.pos++
			}
		case c == '/' && r.peekIs(1, '*'):
			r.pos += 2
			for {
				if r.pos >= len(r.data) {
					break
				}
				if r.data[r.pos] == '*' && r.peekIs(1, '/') {
					r.pos += 2
					break
				}
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *TextReader) peekIs(offset int, want byte) bool {
	c, ok := r.PeekAt(offset)
	return ok && c == want
}

// Expect consumes s if the input matches it at the current position, else
// returns a *ParseError naming what was expected.
func (r *TextReader) Expect(s string) error {
	if r.pos+len(s) > len(r.data) || r.data[r.pos:r.pos+len(s)] != s {
		return wrapText(r, "expected "+strconv_Quote(s), nil)
	}
	r.pos += len(s)
	return nil
}

// ReadWhile consumes and returns the longest run of bytes satisfying pred.
func (r *TextReader) ReadWhile(pred func(byte) bool) string {
	start := r.pos
	for r.pos < len(r.data) && pred(r.data[r.pos]) {
		r.pos++
	}
	return r.data[start:r.pos]
}

// PeekIdent returns the identifier starting at the current position
// without consuming it, used when a caller needs to dispatch on a name
// before handing the reader to a sub-parser that expects to read the name
// itself (e.g. polymorphic handles delegating to the aggregate codec).
func (r *TextReader) PeekIdent() string {
	start := r.pos
	s := r.ReadWhile(isIdentByte)
	r.pos = start
	return s
}

func strconv_Quote(s string) string { return "\"" + s + "\"" }

// BinaryWriter accumulates the little-endian binary form of a value.
type BinaryWriter struct {
	buf []byte
}

// NewBinaryWriter creates an empty writer.
func NewBinaryWriter() *BinaryWriter { return &BinaryWriter{} }

func (w *BinaryWriter) WriteU8(v uint8) { w.buf = append(w.buf, v) }

func (w *BinaryWriter) WriteU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *BinaryWriter) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *BinaryWriter) WriteU64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *BinaryWriter) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

// Bytes returns everything written so far.
func (w *BinaryWriter) Bytes() []byte { return w.buf }

// BinaryReader walks a binary value, tracking the byte offset for error
// reporting.
type BinaryReader struct {
	data []byte
	pos  int
}

// NewBinaryReader wraps data for parsing from the start.
func NewBinaryReader(data []byte) *BinaryReader { return &BinaryReader{data: data} }

// Remaining reports how many unread bytes are left.
func (r *BinaryReader) Remaining() int { return len(r.data) - r.pos }

// Pos returns the current byte offset.
func (r *BinaryReader) Pos() int { return r.pos }

func (r *BinaryReader) require(n int) error {
	if r.Remaining() < n {
		return wrapBinary(r, "premature end of stream", nil)
	}
	return nil
}

func (r *BinaryReader) ReadU8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *BinaryReader) ReadU16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *BinaryReader) ReadU32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *BinaryReader) ReadU64() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *BinaryReader) ReadBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}
