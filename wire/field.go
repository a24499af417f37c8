package wire

import (
	"fmt"
	"iter"
)

// ReadField reads the payload that follows a header of the given wire type.
func (r *Reader) ReadField(wireType WireType) (Value, error) {
	switch wireType {
	case WireVarint:
		v, err := r.ReadVarint()
		if err != nil {
			return Value{}, err
		}
		return VarintValue(v), nil
	case WireFixed64:
		v, err := r.ReadFixed64()
		if err != nil {
			return Value{}, err
		}
		return Fixed64Value(v), nil
	case WireBytes:
		s, err := r.ReadLengthDelimited()
		if err != nil {
			return Value{}, err
		}
		return BytesValue(s), nil
	case WireFixed32:
		v, err := r.ReadFixed32()
		if err != nil {
			return Value{}, err
		}
		return Fixed32Value(v), nil
	default:
		return Value{}, fmt.Errorf("%w: %d", ErrIllegalWireType, wireType)
	}
}

// SkipField discards the payload of a field the caller does not recognise
// or whose wire type does not match what it expected.
func (r *Reader) SkipField(wireType WireType) error {
	_, err := r.ReadField(wireType)
	return err
}

// FieldIterator walks the remaining fields of a Reader one at a time. It is
// single-pass: once Next returns false it stays false.
//
//	it := r.Fields()
//	for it.Next() {
//		f := it.Field()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type FieldIterator struct {
	r    *Reader
	cur  Field
	err  error
	done bool
}

// Fields returns an iterator over the Reader's remaining (number, payload)
// pairs. It is meant for inspection and debugging; generated decoders loop
// on NextFieldHeader instead.
func (r *Reader) Fields() *FieldIterator {
	return &FieldIterator{r: r}
}

// Next advances to the next field.
func (it *FieldIterator) Next() bool {
	if it.done {
		return false
	}

	wireType, num, ok, err := it.r.NextFieldHeader()
	if err != nil || !ok {
		it.err = err
		it.done = true
		return false
	}

	v, err := it.r.ReadField(wireType)
	if err != nil {
		it.err = fmt.Errorf("field %d (%s): %w", num, wireType, err)
		it.done = true
		return false
	}

	it.cur = Field{Number: num, Value: v}
	return true
}

// Field returns the field Next moved to.
func (it *FieldIterator) Field() Field { return it.cur }

// Err returns the error that stopped iteration, or nil at clean end of input.
func (it *FieldIterator) Err() error { return it.err }

// All adapts the remaining fields to a range-over-func sequence. A decode
// failure is yielded once, with a zero Field, and ends the sequence.
func (r *Reader) All() iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		it := r.Fields()
		for it.Next() {
			if !yield(it.Field(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(Field{}, err)
		}
	}
}

// ToList reads every remaining field. Nothing is returned on failure.
func (r *Reader) ToList() ([]Field, error) {
	var fields []Field
	it := r.Fields()
	for it.Next() {
		fields = append(fields, it.Field())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return fields, nil
}
