package pbcodec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anirudhraja/pbcodec/schema"
	"github.com/anirudhraja/pbcodec/wire"
)

// Node is one field of an inspected message. Nested messages carry their
// fields in Children; everything else has a rendered Value.
type Node struct {
	Number   wire.FieldNumber
	Name     string // declared field name, empty if unknown
	WireType wire.WireType
	TypeName string    // declared type, empty if unknown
	Value    string    // rendered payload for non-message nodes
	Span     wire.Span // payload location for length-delimited fields
	Message  bool      // payload was expanded into Children
	Children []*Node
}

// Lookup follows field numbers down the tree, taking the first match at
// each level. It returns nil when the path does not exist.
func (n *Node) Lookup(path ...wire.FieldNumber) *Node {
	cur := n
	for _, num := range path {
		var next *Node
		for _, c := range cur.Children {
			if c.Number == num {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func (p *Inspector) inspectMessage(data []byte, r *wire.Reader, msg *schema.Message, depth int) ([]*Node, error) {
	var nodes []*Node
	it := r.Fields()
	for it.Next() {
		node, err := p.inspectField(data, it.Field(), msg, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (p *Inspector) inspectField(data []byte, f wire.Field, msg *schema.Message, depth int) (*Node, error) {
	wt := f.Value.Type()
	node := &Node{Number: f.Number, WireType: wt}
	if wt == wire.WireBytes {
		node.Span = f.Value.Span()
	}

	var field *schema.Field
	if msg != nil {
		field = msg.FieldByNumber(int32(f.Number))
	}
	if field == nil {
		p.renderRaw(data, node, f.Value, depth)
		return node, nil
	}
	node.Name = field.Name

	switch field.Type.Kind {
	case schema.KindPrimitive:
		pt := field.Type.PrimitiveType
		node.TypeName = string(pt)
		switch {
		case expectedWireType(pt) == wt:
			node.Value = renderScalar(pt, f.Value, data)
		case wt == wire.WireBytes && field.Label == schema.LabelRepeated && schema.IsPackedType(pt):
			value, err := renderPacked(data, node.Span, pt, nil)
			if err != nil {
				return nil, wire.WrapFieldError(err, field.Name)
			}
			node.TypeName = "packed " + node.TypeName
			node.Value = value
		default:
			p.mismatch(data, node, f.Value, depth)
		}

	case schema.KindEnum:
		node.TypeName = field.Type.EnumType
		enum, _ := p.registry.GetEnum(field.Type.EnumType)
		switch {
		case wt == wire.WireVarint:
			node.Value = renderEnum(enum, f.Value.Uint64())
		case wt == wire.WireBytes && field.Label == schema.LabelRepeated:
			value, err := renderPacked(data, node.Span, schema.TypeInt32, enum)
			if err != nil {
				return nil, wire.WrapFieldError(err, field.Name)
			}
			node.TypeName = "packed " + node.TypeName
			node.Value = value
		default:
			p.mismatch(data, node, f.Value, depth)
		}

	case schema.KindMessage, schema.KindMap:
		node.TypeName = field.Type.MessageType
		if wt != wire.WireBytes {
			p.mismatch(data, node, f.Value, depth)
			break
		}
		if depth >= p.maxDepth {
			node.Value = fmt.Sprintf("<%d bytes, depth limit>", node.Span.Length)
			break
		}
		// Well-known types are not in the registry; expand them without labels.
		nested, _ := p.registry.GetMessage(field.Type.MessageType)
		r := wire.NewReaderRange(data, node.Span.Offset, node.Span.Length)
		children, err := p.inspectMessage(data, r, nested, depth+1)
		if err != nil {
			return nil, wire.WrapFieldError(err, field.Name)
		}
		node.Message = true
		node.Children = children
	}
	return node, nil
}

func (p *Inspector) mismatch(data []byte, node *Node, v wire.Value, depth int) {
	node.TypeName += " (wire type mismatch)"
	p.renderRaw(data, node, v, depth)
}

// renderRaw renders a payload without type information. Length-delimited
// payloads are shown as text when printable, as a nested message when they
// parse as one, and as hex otherwise.
func (p *Inspector) renderRaw(data []byte, node *Node, v wire.Value, depth int) {
	switch v.Type() {
	case wire.WireVarint:
		node.Value = strconv.FormatUint(v.Uint64(), 10)
	case wire.WireFixed32:
		node.Value = fmt.Sprintf("0x%08x", v.Fixed32())
	case wire.WireFixed64:
		node.Value = fmt.Sprintf("0x%016x", v.Uint64())
	case wire.WireBytes:
		span := v.Span()
		payload := data[span.Offset:span.End()]
		if isPrintable(payload) {
			node.Value = strconv.Quote(string(payload))
			return
		}
		if len(payload) > 0 && depth < p.maxDepth {
			r := wire.NewReaderRange(data, span.Offset, span.Length)
			if children, err := p.inspectMessage(data, r, nil, depth+1); err == nil {
				node.Message = true
				node.Children = children
				return
			}
		}
		node.Value = fmt.Sprintf("0x%x", payload)
	}
}

func isPrintable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) && r != '\n' && r != '\t' {
			return false
		}
	}
	return true
}

func expectedWireType(pt schema.PrimitiveType) wire.WireType {
	switch pt {
	case schema.TypeDouble, schema.TypeFixed64, schema.TypeSfixed64:
		return wire.WireFixed64
	case schema.TypeFloat, schema.TypeFixed32, schema.TypeSfixed32:
		return wire.WireFixed32
	case schema.TypeString, schema.TypeBytes:
		return wire.WireBytes
	default:
		return wire.WireVarint
	}
}

func renderScalar(pt schema.PrimitiveType, v wire.Value, data []byte) string {
	bits := v.Uint64()
	switch pt {
	case schema.TypeInt32:
		return strconv.FormatInt(int64(int32(bits)), 10)
	case schema.TypeInt64, schema.TypeSfixed64:
		return strconv.FormatInt(int64(bits), 10)
	case schema.TypeUint32, schema.TypeFixed32:
		return strconv.FormatUint(uint64(uint32(bits)), 10)
	case schema.TypeUint64, schema.TypeFixed64:
		return strconv.FormatUint(bits, 10)
	case schema.TypeSint32:
		return strconv.FormatInt(int64(wire.DecodeZigZag32(bits)), 10)
	case schema.TypeSint64:
		return strconv.FormatInt(wire.DecodeZigZag64(bits), 10)
	case schema.TypeSfixed32:
		return strconv.FormatInt(int64(int32(uint32(bits))), 10)
	case schema.TypeBool:
		return strconv.FormatBool(bits != 0)
	case schema.TypeFloat:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(bits))), 'g', -1, 32)
	case schema.TypeDouble:
		return strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64)
	case schema.TypeString:
		span := v.Span()
		return strconv.Quote(string(data[span.Offset:span.End()]))
	case schema.TypeBytes:
		span := v.Span()
		return fmt.Sprintf("0x%x", data[span.Offset:span.End()])
	default:
		return strconv.FormatUint(bits, 10)
	}
}

func renderEnum(enum *schema.Enum, bits uint64) string {
	n := int32(bits)
	if enum != nil {
		if name := enum.ValueName(n); name != "" {
			return name
		}
	}
	return strconv.FormatInt(int64(n), 10)
}

// renderPacked decodes a packed payload of pt elements. enum, when set,
// names the elements.
func renderPacked(data []byte, span wire.Span, pt schema.PrimitiveType, enum *schema.Enum) (string, error) {
	r := wire.NewReaderRange(data, span.Offset, span.Length)
	var parts []string
	for r.HasMore() {
		var v wire.Value
		switch expectedWireType(pt) {
		case wire.WireFixed32:
			bits, err := r.ReadFixed32()
			if err != nil {
				return "", fmt.Errorf("packed %s: %w", pt, err)
			}
			v = wire.Fixed32Value(bits)
		case wire.WireFixed64:
			bits, err := r.ReadFixed64()
			if err != nil {
				return "", fmt.Errorf("packed %s: %w", pt, err)
			}
			v = wire.Fixed64Value(bits)
		default:
			bits, err := r.ReadVarint()
			if err != nil {
				return "", fmt.Errorf("packed %s: %w", pt, err)
			}
			v = wire.VarintValue(bits)
		}
		if enum != nil {
			parts = append(parts, renderEnum(enum, v.Uint64()))
		} else {
			parts = append(parts, renderScalar(pt, v, data))
		}
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}
