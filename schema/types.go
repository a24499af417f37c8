package schema

// Message represents a protobuf message definition
type Message struct {
	Name     string   `json:"name"`      // "Person"
	FullName string   `json:"full_name"` // "example.people.Person"
	Fields   []*Field `json:"fields"`    // message fields, oneof members included
	MapEntry bool     `json:"map_entry"` // is this a synthetic map entry?

	byNumber map[int32]*Field
}

// BuildIndex indexes Fields by number. Call it again after changing Fields.
func (m *Message) BuildIndex() {
	m.byNumber = make(map[int32]*Field, len(m.Fields))
	for _, f := range m.Fields {
		m.byNumber[f.Number] = f
	}
}

// FieldByNumber returns the field declared with number n, or nil.
func (m *Message) FieldByNumber(n int32) *Field {
	if m.byNumber == nil {
		m.BuildIndex()
	}
	return m.byNumber[n]
}

// Field represents a message field
type Field struct {
	Name   string     `json:"name"`   // "user_name"
	Number int32      `json:"number"` // 1
	Label  FieldLabel `json:"label"`  // optional, required, repeated
	Type   FieldType  `json:"type"`   // field type information
	Oneof  string     `json:"oneof"`  // enclosing oneof, if any
}

// FieldLabel represents field labels
type FieldLabel string

const (
	LabelOptional FieldLabel = "optional"
	LabelRequired FieldLabel = "required"
	LabelRepeated FieldLabel = "repeated"
)

// FieldType represents field type information
type FieldType struct {
	Kind          TypeKind      `json:"kind"`                     // primitive, message, enum, map
	PrimitiveType PrimitiveType `json:"primitive_type,omitempty"` // for primitive types
	MessageType   string        `json:"message_type,omitempty"`   // resolved full name, for messages and maps
	EnumType      string        `json:"enum_type,omitempty"`      // resolved full name, for enums
}

// TypeKind represents the kind of field type
type TypeKind string

const (
	KindPrimitive TypeKind = "primitive"
	KindMessage   TypeKind = "message"
	KindEnum      TypeKind = "enum"
	KindMap       TypeKind = "map"
)

// PrimitiveType represents protobuf primitive types
type PrimitiveType string

const (
	TypeDouble   PrimitiveType = "double"
	TypeFloat    PrimitiveType = "float"
	TypeInt64    PrimitiveType = "int64"
	TypeUint64   PrimitiveType = "uint64"
	TypeInt32    PrimitiveType = "int32"
	TypeFixed64  PrimitiveType = "fixed64"
	TypeFixed32  PrimitiveType = "fixed32"
	TypeBool     PrimitiveType = "bool"
	TypeString   PrimitiveType = "string"
	TypeBytes    PrimitiveType = "bytes"
	TypeUint32   PrimitiveType = "uint32"
	TypeSfixed32 PrimitiveType = "sfixed32"
	TypeSfixed64 PrimitiveType = "sfixed64"
	TypeSint32   PrimitiveType = "sint32"
	TypeSint64   PrimitiveType = "sint64"
)

var primitives = map[PrimitiveType]struct{}{
	TypeDouble: {}, TypeFloat: {}, TypeInt64: {}, TypeUint64: {}, TypeInt32: {},
	TypeFixed64: {}, TypeFixed32: {}, TypeBool: {}, TypeString: {}, TypeBytes: {},
	TypeUint32: {}, TypeSfixed32: {}, TypeSfixed64: {}, TypeSint32: {}, TypeSint64: {},
}

// LookupPrimitive reports whether name is a scalar type keyword.
func LookupPrimitive(name string) (PrimitiveType, bool) {
	_, ok := primitives[PrimitiveType(name)]
	return PrimitiveType(name), ok
}

// IsPackedType checks and returns if the Primitive type is packed for repeated label
func IsPackedType(t PrimitiveType) bool {
	_, ok := primitives[t]
	return ok && t != TypeString && t != TypeBytes
}

// Enum represents an enum definition
type Enum struct {
	Name     string       `json:"name"`      // "Status"
	FullName string       `json:"full_name"` // "example.people.Person.Status"
	Values   []*EnumValue `json:"values"`    // enum values
}

// ValueName returns the name declared for number, or "".
func (e *Enum) ValueName(number int32) string {
	for _, v := range e.Values {
		if v.Number == number {
			return v.Name
		}
	}
	return ""
}

// EnumValue represents an enum value
type EnumValue struct {
	Name   string `json:"name"`   // "ACTIVE"
	Number int32  `json:"number"` // 1
}
