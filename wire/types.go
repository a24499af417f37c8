package wire

import "fmt"

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int8

const (
	WireVarint  WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64 WireType = 1 // fixed64, sfixed64, double
	WireBytes   WireType = 2 // string, bytes, embedded messages, packed repeated fields
	WireFixed32 WireType = 5 // fixed32, sfixed32, float
)

// Group start/end (3, 4) and the unassigned codes 6, 7 are rejected.
var wireTypeByCode = [8]bool{0: true, 1: true, 2: true, 5: true}

// WireTypeFromCode maps the low three bits of a tag to a WireType.
func WireTypeFromCode(code uint64) (WireType, error) {
	if code > 7 || !wireTypeByCode[code] {
		return 0, fmt.Errorf("%w: %d", ErrIllegalWireType, code)
	}
	return WireType(code), nil
}

// Valid reports whether t is one of the four supported wire types.
func (t WireType) Valid() bool {
	return t >= 0 && t <= 7 && wireTypeByCode[t]
}

func (t WireType) String() string {
	switch t {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "bytes"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("WireType(%d)", int8(t))
	}
}

// FieldNumber represents a protobuf field number
type FieldNumber int32

const (
	MinFieldNumber FieldNumber = 1
	MaxFieldNumber FieldNumber = 1<<29 - 1
)

// IsValid reports whether n can appear in a field tag.
func (n FieldNumber) IsValid() bool {
	return n >= MinFieldNumber && n <= MaxFieldNumber
}

// Tag represents a protobuf field tag (field number + wire type)
type Tag uint64

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType))
}

// ParseTag parses a tag into field number and wire type. It does not
// validate either half; see Reader.ReadFieldHeader for the checked form.
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}

// Span references Length bytes starting at Offset inside the buffer a
// Reader was created over. It is only meaningful together with that buffer.
type Span struct {
	Offset int
	Length int
}

// End returns the offset one past the last byte of the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Value is a decoded field payload. Varint values keep their raw 64-bit
// pattern; zig-zag decoding is left to the caller.
type Value struct {
	typ  WireType
	bits uint64
	span Span
}

// VarintValue wraps a varint payload.
func VarintValue(v uint64) Value { return Value{typ: WireVarint, bits: v} }

// Fixed64Value wraps an 8-byte little-endian payload.
func Fixed64Value(v uint64) Value { return Value{typ: WireFixed64, bits: v} }

// Fixed32Value wraps a 4-byte little-endian payload.
func Fixed32Value(v uint32) Value { return Value{typ: WireFixed32, bits: uint64(v)} }

// BytesValue wraps a length-delimited payload.
func BytesValue(s Span) Value { return Value{typ: WireBytes, span: s} }

// Type returns the wire type the value was read with.
func (v Value) Type() WireType { return v.typ }

// Uint64 returns the bit pattern of a varint, fixed64 or fixed32 value.
// It is zero for length-delimited values.
func (v Value) Uint64() uint64 { return v.bits }

// Fixed32 returns the low 32 bits of the payload.
func (v Value) Fixed32() uint32 { return uint32(v.bits) }

// Span returns the referenced range of a length-delimited value.
func (v Value) Span() Span { return v.span }

func (v Value) String() string {
	switch v.typ {
	case WireBytes:
		return fmt.Sprintf("bytes[%d:%d]", v.span.Offset, v.span.End())
	case WireFixed32:
		return fmt.Sprintf("fixed32(%#08x)", uint32(v.bits))
	case WireFixed64:
		return fmt.Sprintf("fixed64(%#016x)", v.bits)
	default:
		return fmt.Sprintf("varint(%d)", v.bits)
	}
}

// Field is a single (field number, payload) pair produced by Reader.Fields.
type Field struct {
	Number FieldNumber
	Value  Value
}
