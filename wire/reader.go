package wire

import (
	"fmt"
)

// Reader is a bounds-checked cursor over an immutable byte range.
//
// A Reader borrows its backing bytes: spans and byte slices it hands out
// point into them, so the caller must keep the bytes alive and unmodified
// for as long as the Reader or any of those results are in use. A Reader is
// not safe for concurrent use.
type Reader struct {
	buf []byte
	pos int
	end int
}

// NewReader creates a Reader over all of data.
func NewReader(data []byte) *Reader {
	return &Reader{
		buf: data,
		pos: 0,
		end: len(data),
	}
}

// NewReaderRange creates a Reader over data[offset:offset+length]. It panics
// if the range does not lie within data: that is a caller bug, not malformed
// input.
func NewReaderRange(data []byte, offset, length int) *Reader {
	checkRange(len(data), offset, length)
	return &Reader{
		buf: data,
		pos: offset,
		end: offset + length,
	}
}

func checkRange(size, offset, length int) {
	if offset < 0 || length < 0 || offset > size || length > size-offset {
		panic(fmt.Sprintf("wire: range [%d:+%d] out of bounds for %d bytes", offset, length, size))
	}
}

// Reset moves the cursor to offset, keeping the current end. It panics if
// offset lies outside [0, End()].
func (r *Reader) Reset(offset int) {
	if offset < 0 || offset > r.end {
		panic(fmt.Sprintf("wire: reset offset %d outside [0:%d]", offset, r.end))
	}
	r.pos = offset
}

// ResetRange re-scopes the Reader to [offset, offset+length) of the same
// backing bytes, typically to decode a nested message in place.
func (r *Reader) ResetRange(offset, length int) {
	checkRange(len(r.buf), offset, length)
	r.pos = offset
	r.end = offset + length
}

// Offset returns the absolute position of the next byte to be read.
func (r *Reader) Offset() int { return r.pos }

// End returns the absolute offset the Reader stops at.
func (r *Reader) End() int { return r.end }

// Remaining returns the number of unread bytes in range.
func (r *Reader) Remaining() int { return r.end - r.pos }

// HasMore reports whether unread bytes remain in range.
func (r *Reader) HasMore() bool {
	return r.pos < r.end
}

// ReadByte returns the next byte and advances past it.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= r.end {
		return 0, truncated("byte", 1, 0)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadFieldHeader reads a tag and splits it into wire type and field number.
func (r *Reader) ReadFieldHeader() (WireType, FieldNumber, error) {
	start := r.pos
	tag, err := r.ReadVarint()
	if err != nil {
		return 0, 0, fmt.Errorf("field tag at offset %d: %w", start, err)
	}

	wireType, err := WireTypeFromCode(tag & 0x7)
	if err != nil {
		return 0, 0, fmt.Errorf("field tag at offset %d: %w", start, err)
	}

	num := tag >> 3
	if num < uint64(MinFieldNumber) || num > uint64(MaxFieldNumber) {
		return 0, 0, fmt.Errorf("field tag at offset %d: %w: %d", start, ErrInvalidFieldNumber, num)
	}
	return wireType, FieldNumber(num), nil
}

// NextFieldHeader is the loop primitive for decoders: ok is false once the
// input is exhausted, which is not an error.
func (r *Reader) NextFieldHeader() (wireType WireType, num FieldNumber, ok bool, err error) {
	if !r.HasMore() {
		return 0, 0, false, nil
	}
	wireType, num, err = r.ReadFieldHeader()
	if err != nil {
		return 0, 0, false, err
	}
	return wireType, num, true, nil
}

// SubReader reads a length-delimited payload and returns a fresh Reader
// scoped to it over the same backing bytes.
func (r *Reader) SubReader() (*Reader, error) {
	span, err := r.ReadLengthDelimited()
	if err != nil {
		return nil, err
	}
	return &Reader{buf: r.buf, pos: span.Offset, end: span.End()}, nil
}
