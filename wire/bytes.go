package wire

import (
	"fmt"
)

// DECODER METHODS

// ReadLengthDelimited reads a varint length L and returns a reference to the
// following L bytes without copying them.
func (r *Reader) ReadLengthDelimited() (Span, error) {
	length, err := r.ReadVarint()
	if err != nil {
		return Span{}, fmt.Errorf("length prefix: %w", err)
	}

	if length > uint64(r.end-r.pos) {
		return Span{}, fmt.Errorf("%w: payload needs %d bytes, have %d", ErrPrematureEndOfInput, length, r.end-r.pos)
	}

	span := Span{Offset: r.pos, Length: int(length)}
	r.pos += span.Length
	return span, nil
}

// Bytes returns the backing bytes referenced by s. The result aliases the
// Reader's input and is clipped so appends cannot overwrite what follows.
func (r *Reader) Bytes(s Span) []byte {
	checkRange(len(r.buf), s.Offset, s.Length)
	return r.buf[s.Offset:s.End():s.End()]
}

// ReadBytes reads a length-delimited payload and returns it without
// copying. The result shares the Reader's input.
func (r *Reader) ReadBytes() ([]byte, error) {
	span, err := r.ReadLengthDelimited()
	if err != nil {
		return nil, err
	}
	return r.buf[span.Offset:span.End():span.End()], nil
}

// ReadString reads a length-delimited payload as a string. The string owns
// a copy of the bytes and so outlives the input.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ENCODER METHODS

// WriteLengthDelimited writes len(data) as a varint followed by data.
func (w *Writer) WriteLengthDelimited(data []byte) {
	w.grow(BytesSize(data))
	w.WriteVarint(uint64(len(data)))
	w.buf = append(w.buf, data...)
}

// WriteString writes s as a length-delimited payload.
func (w *Writer) WriteString(s string) {
	w.grow(StringSize(s))
	w.WriteVarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteBytesField writes a length-delimited field header followed by data.
func (w *Writer) WriteBytesField(num FieldNumber, data []byte) {
	w.WriteFieldHeader(num, WireBytes)
	w.WriteLengthDelimited(data)
}

// WriteStringField writes a string field.
func (w *Writer) WriteStringField(num FieldNumber, s string) {
	w.WriteFieldHeader(num, WireBytes)
	w.WriteString(s)
}

// UTILITY FUNCTIONS

// BytesSize returns the size needed to encode the given bytes
func BytesSize(data []byte) int {
	return VarintSize(uint64(len(data))) + len(data)
}

// StringSize returns the size needed to encode the given string
func StringSize(s string) int {
	return VarintSize(uint64(len(s))) + len(s)
}
