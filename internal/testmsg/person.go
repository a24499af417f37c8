// Package testmsg holds message types with hand-written codecs in the shape
// the code generator emits. Tests and benchmarks use them to drive the wire
// package the way real generated code does.
package testmsg

import (
	"math"

	"github.com/anirudhraja/pbcodec/wire"
)

// Address mirrors testdata/person.proto.
type Address struct {
	Street string
	City   string
	Zip    uint32
}

// Person mirrors testdata/person.proto.
type Person struct {
	Name     string
	ID       int32
	Email    *string
	Scores   []int64
	Tags     []string
	Home     *Address
	Ratio    float64
	Flags    uint32
	Balance  int64
	Checksum uint64
	Weights  []float32
	Active   bool
	Labels   map[string]int64
	Friends  []*Person
	Raw      []byte
	Temp     float32
}

// MarshalWire implements wire.Marshaler.
func (a *Address) MarshalWire(w *wire.Writer) {
	if a.Street != "" {
		w.WriteStringField(1, a.Street)
	}
	if a.City != "" {
		w.WriteStringField(2, a.City)
	}
	if a.Zip != 0 {
		w.WriteVarintField(3, uint64(a.Zip))
	}
}

// UnmarshalWire implements wire.Unmarshaler.
func (a *Address) UnmarshalWire(r *wire.Reader) error {
	for {
		wt, num, ok, err := r.NextFieldHeader()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch {
		case num == 1 && wt == wire.WireBytes:
			a.Street, err = r.ReadString()
		case num == 2 && wt == wire.WireBytes:
			a.City, err = r.ReadString()
		case num == 3 && wt == wire.WireVarint:
			a.Zip, err = r.ReadUint32()
		default:
			err = r.SkipField(wt)
		}
		if err != nil {
			return err
		}
	}
}

// MarshalWire implements wire.Marshaler. Fields go out in declaration
// order; Scores and Weights use packed encoding.
func (p *Person) MarshalWire(w *wire.Writer) {
	if p.Name != "" {
		w.WriteStringField(1, p.Name)
	}
	if p.ID != 0 {
		w.WriteInt32Field(2, p.ID)
	}
	if p.Email != nil {
		w.WriteStringField(3, *p.Email)
	}
	if len(p.Scores) > 0 {
		vs := make([]uint64, len(p.Scores))
		for i, s := range p.Scores {
			vs[i] = uint64(s)
		}
		w.WritePackedVarints(4, vs)
	}
	for _, t := range p.Tags {
		w.WriteStringField(5, t)
	}
	if p.Home != nil {
		w.WriteMessage(6, p.Home)
	}
	if p.Ratio != 0 {
		w.WriteDoubleField(7, p.Ratio)
	}
	if p.Flags != 0 {
		w.WriteFixed32Field(8, p.Flags)
	}
	if p.Balance != 0 {
		w.WriteSint64Field(9, p.Balance)
	}
	if p.Checksum != 0 {
		w.WriteFixed64Field(10, p.Checksum)
	}
	if len(p.Weights) > 0 {
		vs := make([]uint32, len(p.Weights))
		for i, f := range p.Weights {
			vs[i] = math.Float32bits(f)
		}
		w.WritePackedFixed32(11, vs)
	}
	if p.Active {
		w.WriteBoolField(12, true)
	}
	for _, k := range sortedKeys(p.Labels) {
		v := p.Labels[k]
		w.WriteMapEntry(13,
			func(e *wire.Writer) { e.WriteStringField(1, k) },
			func(e *wire.Writer) { e.WriteInt64Field(2, v) },
		)
	}
	for _, f := range p.Friends {
		w.WriteMessage(14, f)
	}
	if len(p.Raw) > 0 {
		w.WriteBytesField(15, p.Raw)
	}
	if p.Temp != 0 {
		w.WriteFloatField(16, p.Temp)
	}
}

// UnmarshalWire implements wire.Unmarshaler. Scores and Weights accept both
// packed and unpacked encodings.
func (p *Person) UnmarshalWire(r *wire.Reader) error {
	for {
		wt, num, ok, err := r.NextFieldHeader()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := p.decodeField(r, num, wt); err != nil {
			return err
		}
	}
}

func (p *Person) decodeField(r *wire.Reader, num wire.FieldNumber, wt wire.WireType) error {
	var err error
	switch {
	case num == 1 && wt == wire.WireBytes:
		p.Name, err = r.ReadString()
	case num == 2 && wt == wire.WireVarint:
		p.ID, err = r.ReadInt32()
	case num == 3 && wt == wire.WireBytes:
		var s string
		if s, err = r.ReadString(); err == nil {
			p.Email = &s
		}
	case num == 4 && wt == wire.WireBytes:
		var vs []uint64
		if vs, err = r.ReadPackedVarints(nil); err == nil {
			for _, v := range vs {
				p.Scores = append(p.Scores, int64(v))
			}
		}
	case num == 4 && wt == wire.WireVarint:
		var v int64
		if v, err = r.ReadInt64(); err == nil {
			p.Scores = append(p.Scores, v)
		}
	case num == 5 && wt == wire.WireBytes:
		var s string
		if s, err = r.ReadString(); err == nil {
			p.Tags = append(p.Tags, s)
		}
	case num == 6 && wt == wire.WireBytes:
		if p.Home == nil {
			p.Home = &Address{}
		}
		err = wire.WrapFieldError(r.ReadMessage(p.Home), "home")
	case num == 7 && wt == wire.WireFixed64:
		p.Ratio, err = r.ReadDouble()
	case num == 8 && wt == wire.WireFixed32:
		p.Flags, err = r.ReadFixed32()
	case num == 9 && wt == wire.WireVarint:
		p.Balance, err = r.ReadSint64()
	case num == 10 && wt == wire.WireFixed64:
		p.Checksum, err = r.ReadFixed64()
	case num == 11 && wt == wire.WireBytes:
		var vs []uint32
		if vs, err = r.ReadPackedFixed32(nil); err == nil {
			for _, v := range vs {
				p.Weights = append(p.Weights, math.Float32frombits(v))
			}
		}
	case num == 11 && wt == wire.WireFixed32:
		var f float32
		if f, err = r.ReadFloat(); err == nil {
			p.Weights = append(p.Weights, f)
		}
	case num == 12 && wt == wire.WireVarint:
		p.Active, err = r.ReadBool()
	case num == 13 && wt == wire.WireBytes:
		err = p.decodeLabel(r)
	case num == 14 && wt == wire.WireBytes:
		friend := &Person{}
		if err = r.ReadMessage(friend); err == nil {
			p.Friends = append(p.Friends, friend)
		}
		err = wire.WrapFieldError(err, "friends")
	case num == 15 && wt == wire.WireBytes:
		var b []byte
		if b, err = r.ReadBytes(); err == nil {
			p.Raw = append([]byte(nil), b...)
		}
	case num == 16 && wt == wire.WireFixed32:
		p.Temp, err = r.ReadFloat()
	default:
		err = r.SkipField(wt)
	}
	return err
}

func (p *Person) decodeLabel(r *wire.Reader) error {
	var (
		key   string
		value int64
	)
	err := r.ReadMapEntry(
		func(e *wire.Reader, wt wire.WireType) error {
			if wt != wire.WireBytes {
				return e.SkipField(wt)
			}
			var err error
			key, err = e.ReadString()
			return err
		},
		func(e *wire.Reader, wt wire.WireType) error {
			if wt != wire.WireVarint {
				return e.SkipField(wt)
			}
			var err error
			value, err = e.ReadInt64()
			return err
		},
	)
	if err != nil {
		return wire.WrapFieldError(err, "labels")
	}
	if p.Labels == nil {
		p.Labels = make(map[string]int64)
	}
	p.Labels[key] = value
	return nil
}
