package wire

import (
	"fmt"
)

// MaxVarintLen is the longest legal encoding of a 64-bit varint.
const MaxVarintLen = 10

// DECODER METHODS

// ReadVarint decodes a base-128 varint. At most MaxVarintLen bytes are
// consumed; the last of them may only carry bit 63, so anything longer or
// wider fails with ErrVarintOverflow instead of silently wrapping.
func (r *Reader) ReadVarint() (uint64, error) {
	// Single-byte fast path: tags and small lengths.
	if r.pos < r.end && r.buf[r.pos] < 0x80 {
		v := uint64(r.buf[r.pos])
		r.pos++
		return v, nil
	}

	start := r.pos
	var result uint64
	for shift := uint(0); shift < 63; shift += 7 {
		if r.pos >= r.end {
			return 0, fmt.Errorf("%w: varint at offset %d", ErrPrematureEndOfInput, start)
		}
		b := r.buf[r.pos]
		r.pos++

		result |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return result, nil
		}
	}

	// Tenth byte: only bit 63 is left to fill.
	if r.pos >= r.end {
		return 0, fmt.Errorf("%w: varint at offset %d", ErrPrematureEndOfInput, start)
	}
	b := r.buf[r.pos]
	r.pos++
	if b > 1 {
		return 0, fmt.Errorf("%w: at offset %d", ErrVarintOverflow, start)
	}
	return result | uint64(b)<<63, nil
}

// ReadInt32 decodes a varint as int32
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadVarint()
	return int32(v), err
}

// ReadInt64 decodes a varint as int64
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadVarint()
	return int64(v), err
}

// ReadUint32 decodes a varint as uint32
func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.ReadVarint()
	return uint32(v), err
}

// ReadUint64 decodes a varint as uint64
func (r *Reader) ReadUint64() (uint64, error) {
	return r.ReadVarint()
}

// ReadSint32 decodes a zigzag-encoded signed varint as int32
func (r *Reader) ReadSint32() (int32, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag32(v), nil
}

// ReadSint64 decodes a zigzag-encoded signed varint as int64
func (r *Reader) ReadSint64() (int64, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag64(v), nil
}

// ReadBool decodes a varint as bool
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadVarint()
	return v != 0, err
}

// ReadEnum decodes a varint as enum value
func (r *Reader) ReadEnum() (int32, error) {
	return r.ReadInt32()
}

// ENCODER METHODS

// WriteVarint encodes v as a base-128 varint. Zero still takes one byte.
func (w *Writer) WriteVarint(v uint64) {
	w.grow(VarintSize(v))
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// WriteInt32 encodes an int32 as varint. Negative values take ten bytes.
func (w *Writer) WriteInt32(v int32) { w.WriteVarint(uint64(v)) }

// WriteInt64 encodes an int64 as varint
func (w *Writer) WriteInt64(v int64) { w.WriteVarint(uint64(v)) }

// WriteUint32 encodes a uint32 as varint
func (w *Writer) WriteUint32(v uint32) { w.WriteVarint(uint64(v)) }

// WriteUint64 encodes a uint64 as a varint
func (w *Writer) WriteUint64(v uint64) { w.WriteVarint(v) }

// WriteSint32 encodes a signed int32 with zigzag encoding
func (w *Writer) WriteSint32(v int32) { w.WriteVarint(EncodeZigZag32(v)) }

// WriteSint64 encodes a signed int64 with zigzag encoding
func (w *Writer) WriteSint64(v int64) { w.WriteVarint(EncodeZigZag64(v)) }

// WriteBool encodes a bool as varint
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteVarint(1)
	} else {
		w.WriteVarint(0)
	}
}

// WriteEnum encodes an enum value as varint
func (w *Writer) WriteEnum(v int32) { w.WriteVarint(uint64(v)) }

// WriteVarintField writes a varint field header followed by v.
func (w *Writer) WriteVarintField(num FieldNumber, v uint64) {
	w.WriteFieldHeader(num, WireVarint)
	w.WriteVarint(v)
}

// WriteInt32Field writes an int32 field.
func (w *Writer) WriteInt32Field(num FieldNumber, v int32) {
	w.WriteVarintField(num, uint64(v))
}

// WriteInt64Field writes an int64 field.
func (w *Writer) WriteInt64Field(num FieldNumber, v int64) {
	w.WriteVarintField(num, uint64(v))
}

// WriteSint64Field writes a zigzag-encoded sint64 field.
func (w *Writer) WriteSint64Field(num FieldNumber, v int64) {
	w.WriteVarintField(num, EncodeZigZag64(v))
}

// WriteBoolField writes a bool field.
func (w *Writer) WriteBoolField(num FieldNumber, v bool) {
	w.WriteFieldHeader(num, WireVarint)
	w.WriteBool(v)
}

// UTILITY FUNCTIONS

// DecodeZigZag32 decodes a zigzag-encoded 32-bit integer
func DecodeZigZag32(encoded uint64) int32 {
	return int32((uint32(encoded) >> 1) ^ uint32(-int32(encoded&1)))
}

// DecodeZigZag64 decodes a zigzag-encoded 64-bit integer
func DecodeZigZag64(encoded uint64) int64 {
	return int64((encoded >> 1) ^ uint64(-int64(encoded&1)))
}

// EncodeZigZag32 encodes a signed 32-bit integer using zigzag encoding
func EncodeZigZag32(v int32) uint64 {
	return uint64((uint32(v) << 1) ^ uint32(v>>31))
}

// EncodeZigZag64 encodes a signed 64-bit integer using zigzag encoding
func EncodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// VarintSize returns the number of bytes needed to encode the given varint
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}

// TagSize returns the encoded size of the tag for num.
func TagSize(num FieldNumber) int {
	return VarintSize(uint64(MakeTag(num, WireVarint)))
}
