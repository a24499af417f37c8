package wire

import (
	"encoding/binary"
	"math"
)

// DECODER METHODS

// ReadFixed32 decodes a 32-bit little-endian value
func (r *Reader) ReadFixed32() (uint32, error) {
	if r.end-r.pos < 4 {
		return 0, truncated("fixed32", 4, r.end-r.pos)
	}

	value := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return value, nil
}

// ReadFixed64 decodes a 64-bit little-endian value
func (r *Reader) ReadFixed64() (uint64, error) {
	if r.end-r.pos < 8 {
		return 0, truncated("fixed64", 8, r.end-r.pos)
	}

	value := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return value, nil
}

// ReadSfixed32 decodes a signed 32-bit fixed-width value
func (r *Reader) ReadSfixed32() (int32, error) {
	v, err := r.ReadFixed32()
	return int32(v), err
}

// ReadSfixed64 decodes a signed 64-bit fixed-width value
func (r *Reader) ReadSfixed64() (int64, error) {
	v, err := r.ReadFixed64()
	return int64(v), err
}

// ReadFloat decodes a 32-bit float from fixed32 data
func (r *Reader) ReadFloat() (float32, error) {
	v, err := r.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadDouble decodes a 64-bit float from fixed64 data
func (r *Reader) ReadDouble() (float64, error) {
	v, err := r.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ENCODER METHODS

// WriteFixed32 encodes v in exactly four little-endian bytes
func (w *Writer) WriteFixed32(v uint32) {
	w.grow(4)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteFixed64 encodes v in exactly eight little-endian bytes
func (w *Writer) WriteFixed64(v uint64) {
	w.grow(8)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// WriteSfixed32 encodes a signed 32-bit fixed-width value
func (w *Writer) WriteSfixed32(v int32) { w.WriteFixed32(uint32(v)) }

// WriteSfixed64 encodes a signed 64-bit fixed-width value
func (w *Writer) WriteSfixed64(v int64) { w.WriteFixed64(uint64(v)) }

// WriteFloat encodes a 32-bit float as fixed32
func (w *Writer) WriteFloat(v float32) { w.WriteFixed32(math.Float32bits(v)) }

// WriteDouble encodes a 64-bit float as fixed64
func (w *Writer) WriteDouble(v float64) { w.WriteFixed64(math.Float64bits(v)) }

// WriteFixed32Field writes a fixed32 field header followed by v.
func (w *Writer) WriteFixed32Field(num FieldNumber, v uint32) {
	w.WriteFieldHeader(num, WireFixed32)
	w.WriteFixed32(v)
}

// WriteFixed64Field writes a fixed64 field header followed by v.
func (w *Writer) WriteFixed64Field(num FieldNumber, v uint64) {
	w.WriteFieldHeader(num, WireFixed64)
	w.WriteFixed64(v)
}

// WriteFloatField writes a float field.
func (w *Writer) WriteFloatField(num FieldNumber, v float32) {
	w.WriteFixed32Field(num, math.Float32bits(v))
}

// WriteDoubleField writes a double field.
func (w *Writer) WriteDoubleField(num FieldNumber, v float64) {
	w.WriteFixed64Field(num, math.Float64bits(v))
}

// UTILITY FUNCTIONS

// Fixed32Size returns the size of a fixed32 value (always 4 bytes)
func Fixed32Size() int {
	return 4
}

// Fixed64Size returns the size of a fixed64 value (always 8 bytes)
func Fixed64Size() int {
	return 8
}
