package wire

import (
	"fmt"
)

// Map fields travel as repeated nested messages with the key in field 1 and
// the value in field 2. These helpers spare generated code the framing.

// MapEntryFunc decodes one half of a map entry given the wire type it was
// written with.
type MapEntryFunc func(r *Reader, wireType WireType) error

// WriteMapEntry writes one entry of map field num. writeKey and writeValue
// must each write a complete field (header included) numbered 1 and 2.
func (w *Writer) WriteMapEntry(num FieldNumber, writeKey, writeValue func(*Writer)) {
	entry := w.scratch()
	writeKey(entry)
	writeValue(entry)
	w.WriteFieldHeader(num, WireBytes)
	w.WriteLengthDelimited(entry.Contents())
}

// ReadMapEntry reads one length-delimited map entry, handing field 1 to
// readKey and field 2 to readValue. Other fields are skipped; a missing key
// or value leaves the caller's zero value in place.
func (r *Reader) ReadMapEntry(readKey, readValue MapEntryFunc) error {
	entry, err := r.SubReader()
	if err != nil {
		return err
	}

	for {
		wireType, num, ok, err := entry.NextFieldHeader()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		switch num {
		case 1: // Key field
			if err := readKey(entry, wireType); err != nil {
				return fmt.Errorf("failed to decode map key: %w", err)
			}
		case 2: // Value field
			if err := readValue(entry, wireType); err != nil {
				return fmt.Errorf("failed to decode map value: %w", err)
			}
		default:
			if err := entry.SkipField(wireType); err != nil {
				return err
			}
		}
	}
}
