package wire

// Marshaler is implemented by generated message types. MarshalWire writes
// each set field as a (tag, payload) pair; it cannot fail.
type Marshaler interface {
	MarshalWire(w *Writer)
}

// Unmarshaler is implemented by generated message types. UnmarshalWire loops
// on NextFieldHeader until the Reader is exhausted, skipping unknown field
// numbers and mismatched wire types with SkipField, and returns the first
// decode error unchanged or wrapped with WrapFieldError.
type Unmarshaler interface {
	UnmarshalWire(r *Reader) error
}

// Marshal encodes m with the package default mode (see Config).
func Marshal(m Marshaler) []byte {
	c := CurrentConfig()
	w := NewWriterSize(c.DefaultMode, c.SizeHint)
	m.MarshalWire(w)
	return w.Contents()
}

// MarshalMode encodes m with a Writer of the given mode.
func MarshalMode(m Marshaler, mode Mode) []byte {
	w := NewWriter(mode)
	m.MarshalWire(w)
	return w.Contents()
}

// Unmarshal decodes data into m. On error m may hold a partial result and
// must be discarded.
func Unmarshal(data []byte, m Unmarshaler) error {
	return m.UnmarshalWire(NewReader(data))
}

// Decode decodes data into a new T. On error it returns nil, so no partially
// decoded value escapes.
func Decode[T any, PT interface {
	*T
	Unmarshaler
}](data []byte) (*T, error) {
	m := PT(new(T))
	if err := m.UnmarshalWire(NewReader(data)); err != nil {
		return nil, err
	}
	return (*T)(m), nil
}

// WriteMessage writes m as a nested, length-delimited field. The nested
// content is encoded into a scratch Writer first because its length prefix
// precedes it.
func (w *Writer) WriteMessage(num FieldNumber, m Marshaler) {
	nested := w.scratch()
	m.MarshalWire(nested)
	w.WriteFieldHeader(num, WireBytes)
	w.WriteLengthDelimited(nested.Contents())
}

// ReadMessage reads a length-delimited payload and decodes it into m with a
// Reader scoped to that payload.
func (r *Reader) ReadMessage(m Unmarshaler) error {
	sub, err := r.SubReader()
	if err != nil {
		return err
	}
	return m.UnmarshalWire(sub)
}
