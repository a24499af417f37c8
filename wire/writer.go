package wire

import (
	"fmt"
	"strings"
)

// Mode selects how a Writer sizes its buffer.
type Mode uint8

const (
	// Balanced starts at a moderate capacity and doubles on overflow.
	Balanced Mode = iota
	// Speed pre-allocates generously and quadruples on overflow, trading
	// unused capacity for fewer copies.
	Speed
	// Space starts empty and grows to exactly the size required, trading
	// copies for zero unused capacity.
	Space
)

type sizing struct {
	initial int
	factor  int // 0 means exact fit
}

var sizings = [...]sizing{
	Balanced: {initial: 256, factor: 2},
	Speed:    {initial: 4096, factor: 4},
	Space:    {initial: 0, factor: 0},
}

var modeNames = [...]string{
	Balanced: "balanced",
	Speed:    "speed",
	Space:    "space",
}

// Modes lists every Writer mode.
var Modes = []Mode{Balanced, Speed, Space}

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown writer mode %q (want balanced, speed or space)", s)
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string { return "mode" }

func (m Mode) sizing() sizing {
	if int(m) < len(sizings) {
		return sizings[m]
	}
	return sizings[Balanced]
}

// Writer accumulates an encoded message in a buffer it owns.
//
// Bytes already returned by Contents are never modified by later writes;
// only Reset hands the storage back for reuse. A Writer is not safe for
// concurrent use.
type Writer struct {
	buf   []byte
	mode  Mode
	grows int
}

// NewWriter creates a Writer sized for mode.
func NewWriter(mode Mode) *Writer {
	return NewWriterSize(mode, 0)
}

// NewWriterSize creates a Writer whose initial capacity is hint when hint
// is positive, or the mode's default otherwise.
func NewWriterSize(mode Mode, hint int) *Writer {
	size := mode.sizing().initial
	if hint > 0 {
		size = hint
	}
	return &Writer{
		buf:  make([]byte, 0, size),
		mode: mode,
	}
}

// scratch returns a Writer for a nested payload. It grows like w but starts
// no larger than a Balanced Writer, so deep or repeated nesting in Speed mode
// does not allocate a full Speed buffer per level.
func (w *Writer) scratch() *Writer {
	return NewWriterSize(w.mode, min(w.mode.sizing().initial, sizings[Balanced].initial))
}

// Mode returns the sizing mode the Writer was created with.
func (w *Writer) Mode() Mode { return w.mode }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

// Contents returns exactly the bytes written so far. The slice is clipped to
// its length so appending to it never touches the Writer's spare capacity.
func (w *Writer) Contents() []byte {
	return w.buf[:len(w.buf):len(w.buf)]
}

// UnusedSpace returns allocated capacity beyond the written bytes.
func (w *Writer) UnusedSpace() int {
	return cap(w.buf) - len(w.buf)
}

// Grows returns how many times the buffer has been reallocated.
func (w *Writer) Grows() int { return w.grows }

// Reset empties the Writer while keeping its allocation. Slices previously
// returned by Contents must not be used afterwards.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// grow makes room for n more bytes without changing the written prefix.
func (w *Writer) grow(n int) {
	need := len(w.buf) + n
	if need <= cap(w.buf) {
		return
	}

	s := w.mode.sizing()
	newCap := need
	if s.factor > 0 {
		newCap = cap(w.buf)
		if newCap < s.initial {
			newCap = s.initial
		}
		if newCap == 0 {
			newCap = 1
		}
		for newCap < need {
			newCap *= s.factor
		}
	}

	buf := make([]byte, len(w.buf), newCap)
	copy(buf, w.buf)
	w.buf = buf
	w.grows++
}

// WriteFieldHeader writes the tag for (num, wireType). It panics on a field
// number outside [MinFieldNumber, MaxFieldNumber] or an unsupported wire
// type, both of which are bugs in the calling encoder.
func (w *Writer) WriteFieldHeader(num FieldNumber, wireType WireType) {
	if !num.IsValid() {
		panic(fmt.Sprintf("wire: invalid field number %d", num))
	}
	if !wireType.Valid() {
		panic(fmt.Sprintf("wire: invalid wire type %d", wireType))
	}
	w.WriteVarint(uint64(MakeTag(num, wireType)))
}
