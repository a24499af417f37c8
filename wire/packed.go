package wire

import (
	"encoding/binary"
	"fmt"
)

// Packed repeated scalars: one length-delimited payload holding the
// concatenated values. Empty slices write nothing, matching proto3.

// WritePackedVarints writes vs as a packed varint field.
func (w *Writer) WritePackedVarints(num FieldNumber, vs []uint64) {
	if len(vs) == 0 {
		return
	}
	size := 0
	for _, v := range vs {
		size += VarintSize(v)
	}
	w.WriteFieldHeader(num, WireBytes)
	w.grow(VarintSize(uint64(size)) + size)
	w.WriteVarint(uint64(size))
	for _, v := range vs {
		w.WriteVarint(v)
	}
}

// WritePackedFixed32 writes vs as a packed fixed32 field.
func (w *Writer) WritePackedFixed32(num FieldNumber, vs []uint32) {
	if len(vs) == 0 {
		return
	}
	size := len(vs) * 4
	w.WriteFieldHeader(num, WireBytes)
	w.grow(VarintSize(uint64(size)) + size)
	w.WriteVarint(uint64(size))
	for _, v := range vs {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	}
}

// WritePackedFixed64 writes vs as a packed fixed64 field.
func (w *Writer) WritePackedFixed64(num FieldNumber, vs []uint64) {
	if len(vs) == 0 {
		return
	}
	size := len(vs) * 8
	w.WriteFieldHeader(num, WireBytes)
	w.grow(VarintSize(uint64(size)) + size)
	w.WriteVarint(uint64(size))
	for _, v := range vs {
		w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	}
}

// ReadPackedVarints reads one packed payload and appends its values to dst.
func (r *Reader) ReadPackedVarints(dst []uint64) ([]uint64, error) {
	sub, err := r.SubReader()
	if err != nil {
		return dst, err
	}
	for sub.HasMore() {
		v, err := sub.ReadVarint()
		if err != nil {
			return dst, fmt.Errorf("packed varint: %w", err)
		}
		dst = append(dst, v)
	}
	return dst, nil
}

// ReadPackedFixed32 reads one packed payload and appends its values to dst.
// A payload whose length is not a multiple of four is truncated input.
func (r *Reader) ReadPackedFixed32(dst []uint32) ([]uint32, error) {
	span, err := r.ReadLengthDelimited()
	if err != nil {
		return dst, err
	}
	if span.Length%4 != 0 {
		return dst, truncated("packed fixed32", span.Length+4-span.Length%4, span.Length)
	}
	for off := span.Offset; off < span.End(); off += 4 {
		dst = append(dst, binary.LittleEndian.Uint32(r.buf[off:]))
	}
	return dst, nil
}

// ReadPackedFixed64 reads one packed payload and appends its values to dst.
// A payload whose length is not a multiple of eight is truncated input.
func (r *Reader) ReadPackedFixed64(dst []uint64) ([]uint64, error) {
	span, err := r.ReadLengthDelimited()
	if err != nil {
		return dst, err
	}
	if span.Length%8 != 0 {
		return dst, truncated("packed fixed64", span.Length+8-span.Length%8, span.Length)
	}
	for off := span.Offset; off < span.End(); off += 8 {
		dst = append(dst, binary.LittleEndian.Uint64(r.buf[off:]))
	}
	return dst, nil
}
