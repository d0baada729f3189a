package tsort

import "bytes"

// Line is one physical line of input.
//
// buf may extend past the visible content with zero padding; n is the
// logical length and the only thing the writer emits. Content read from
// input ends at its first zero byte, so padding can never become visible.
type Line struct {
	buf []byte
	n   int
}

// newLine takes ownership of content.
func newLine(content []byte) Line {
	n := bytes.IndexByte(content, 0)
	if n < 0 {
		n = len(content)
	}
	return Line{buf: content, n: n}
}

// placeholderLine returns an empty line whose zero buffer is one byte longer
// than the sort column, so a key can always be taken from it.
func placeholderLine(sortColumn int) Line {
	return Line{buf: make([]byte, sortColumn+1)}
}

// Bytes returns the visible content of the line, without terminator or
// padding. The slice aliases the line's buffer.
func (l Line) Bytes() []byte {
	return l.buf[:l.n]
}

// Len returns the visible length.
func (l Line) Len() int {
	return l.n
}

// padTo zero-extends the buffer to width bytes. It never truncates and
// returns the number of bytes added.
func (l *Line) padTo(width int) int {
	grow := width - len(l.buf)
	if grow <= 0 {
		return 0
	}
	l.buf = append(l.buf, make([]byte, grow)...)
	return grow
}

// keyAt returns the visible bytes from col to the end of the content, or an
// empty slice when the content is shorter than col.
func (l Line) keyAt(col int) []byte {
	if col >= l.n {
		return l.buf[:0]
	}
	return l.buf[col:l.n]
}

// footprint is what the line is charged against a Budget.
func (l Line) footprint() int {
	return cap(l.buf) + lineOverhead
}
