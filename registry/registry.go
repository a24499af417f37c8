package registry

import (
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	protoparser "github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/anirudhraja/pbcodec/schema"
	"github.com/anirudhraja/pbcodec/wire"
)

// Registry allows us to store the schema of the protobuf messages. We look
// this up when we need to label the fields of an encoded message.
type Registry struct {
	// ProtoDirectories are searched, in order, for imported files.
	ProtoDirectories []string

	parsedProtoBody map[string]*protoparser.Proto // file path -> parsed body
	messages        map[string]*schema.Message    // fully qualified name -> message
	enums           map[string]*schema.Enum       // fully qualified name -> enum
	pending         []typeRef
}

// typeRef is a field whose type name still has to be resolved against every
// loaded file.
type typeRef struct {
	field *schema.Field
	name  string
	scope string
}

// NewRegistry creates an empty registry searching protoDirs for imports.
func NewRegistry(protoDirs ...string) *Registry {
	return &Registry{
		ProtoDirectories: protoDirs,
		parsedProtoBody:  make(map[string]*protoparser.Proto),
		messages:         make(map[string]*schema.Message),
		enums:            make(map[string]*schema.Enum),
	}
}

// LoadSchema loads a .proto file together with its imports, or every .proto
// file below a directory, and resolves all field types. A failed load leaves
// the registry as it was before the call.
func (r *Registry) LoadSchema(protoPath string) (err error) {
	saved := r.snapshot()
	defer func() {
		if err != nil {
			r.restore(saved)
		}
	}()

	info, err := os.Stat(protoPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	var files []string
	if !info.IsDir() {
		if !strings.HasSuffix(protoPath, ".proto") {
			return fmt.Errorf("file %s is not a .proto file", protoPath)
		}
		r.addDirectory(filepath.Dir(protoPath))
		if files, err = r.getAllProtoInfo(filepath.Base(protoPath)); err != nil {
			return fmt.Errorf("failed to load proto file: %w", err)
		}
	} else {
		r.addDirectory(protoPath)
		err = filepath.WalkDir(protoPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".proto") {
				return nil
			}
			rel, err := filepath.Rel(protoPath, path)
			if err != nil {
				return err
			}
			loaded, err := r.getAllProtoInfo(rel)
			if err != nil {
				return fmt.Errorf("failed to load proto file %s: %w", path, err)
			}
			files = append(files, loaded...)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to walk directory: %w", err)
		}
	}

	for _, f := range files {
		if err := r.registerFile(r.parsedProtoBody[f]); err != nil {
			return fmt.Errorf("failed to register %s: %w", f, err)
		}
	}
	if err := r.resolvePending(); err != nil {
		return fmt.Errorf("failed to build symbol table: %w", err)
	}
	for _, msg := range r.messages {
		msg.BuildIndex()
	}
	return nil
}

type registryState struct {
	dirs     []string
	parsed   map[string]*protoparser.Proto
	messages map[string]*schema.Message
	enums    map[string]*schema.Enum
}

func (r *Registry) snapshot() registryState {
	return registryState{
		dirs:     slices.Clone(r.ProtoDirectories),
		parsed:   maps.Clone(r.parsedProtoBody),
		messages: maps.Clone(r.messages),
		enums:    maps.Clone(r.enums),
	}
}

func (r *Registry) restore(s registryState) {
	r.ProtoDirectories = s.dirs
	r.parsedProtoBody = s.parsed
	r.messages = s.messages
	r.enums = s.enums
	r.pending = nil
}

func (r *Registry) addDirectory(dir string) {
	if !slices.Contains(r.ProtoDirectories, dir) {
		r.ProtoDirectories = append(r.ProtoDirectories, dir)
	}
}

// registerFile registers every message and enum of one parsed file.
func (r *Registry) registerFile(proto *protoparser.Proto) error {
	pkg := ""
	for _, body := range proto.ProtoBody {
		if p, ok := body.(*protoparser.Package); ok {
			pkg = p.Name
		}
	}
	return r.registerBody(pkg, proto.ProtoBody)
}

func (r *Registry) registerBody(scope string, body []protoparser.Visitee) error {
	for _, v := range body {
		var err error
		switch b := v.(type) {
		case *protoparser.Message:
			err = r.registerMessage(scope, b)
		case *protoparser.Enum:
			err = r.registerEnum(scope, b)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) registerMessage(scope string, m *protoparser.Message) error {
	fullName := getFullName(scope, m.MessageName)
	msg := &schema.Message{Name: m.MessageName, FullName: fullName}
	r.messages[fullName] = msg

	for _, v := range m.MessageBody {
		var err error
		switch b := v.(type) {
		case *protoparser.Field:
			label := schema.LabelOptional
			switch {
			case b.IsRepeated:
				label = schema.LabelRepeated
			case b.IsRequired:
				label = schema.LabelRequired
			}
			err = r.addField(msg, b.FieldName, b.FieldNumber, label, b.Type, "")
		case *protoparser.MapField:
			err = r.addMapField(msg, b)
		case *protoparser.Oneof:
			for _, of := range b.OneofFields {
				if err = r.addField(msg, of.FieldName, of.FieldNumber, schema.LabelOptional, of.Type, b.OneofName); err != nil {
					break
				}
			}
		case *protoparser.Message:
			err = r.registerMessage(fullName, b)
		case *protoparser.Enum:
			err = r.registerEnum(fullName, b)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// fieldNumber parses a field number and checks it against the range the
// wire format can carry.
func fieldNumber(msg *schema.Message, name, number string) (int32, error) {
	n, err := parseFieldNumber(number)
	if err != nil {
		return 0, fmt.Errorf("field %s.%s: %w", msg.FullName, name, err)
	}
	if !wire.FieldNumber(n).IsValid() {
		return 0, fmt.Errorf("field %s.%s: number %d out of range [%d, %d]",
			msg.FullName, name, n, wire.MinFieldNumber, wire.MaxFieldNumber)
	}
	return n, nil
}

func (r *Registry) addField(msg *schema.Message, name, number string, label schema.FieldLabel, typeName, oneof string) error {
	n, err := fieldNumber(msg, name, number)
	if err != nil {
		return err
	}
	f := &schema.Field{
		Name:   name,
		Number: n,
		Label:  label,
		Oneof:  oneof,
	}
	msg.Fields = append(msg.Fields, f)

	if p, ok := schema.LookupPrimitive(typeName); ok {
		f.Type = schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: p}
		return nil
	}
	r.pending = append(r.pending, typeRef{field: f, name: typeName, scope: msg.FullName})
	return nil
}

// addMapField registers the synthetic <Name>Entry message protoc generates
// for a map field and points the field at it.
func (r *Registry) addMapField(msg *schema.Message, m *protoparser.MapField) error {
	n, err := fieldNumber(msg, m.MapName, m.FieldNumber)
	if err != nil {
		return err
	}
	entryName := toCamel(m.MapName) + "Entry"
	entry := &schema.Message{
		Name:     entryName,
		FullName: getFullName(msg.FullName, entryName),
		MapEntry: true,
	}
	r.messages[entry.FullName] = entry
	if err := r.addField(entry, "key", "1", schema.LabelOptional, m.KeyType, ""); err != nil {
		return err
	}
	if err := r.addField(entry, "value", "2", schema.LabelOptional, m.Type, ""); err != nil {
		return err
	}

	msg.Fields = append(msg.Fields, &schema.Field{
		Name:   m.MapName,
		Number: n,
		Label:  schema.LabelRepeated,
		Type:   schema.FieldType{Kind: schema.KindMap, MessageType: entry.FullName},
	})
	return nil
}

func (r *Registry) registerEnum(scope string, e *protoparser.Enum) error {
	fullName := getFullName(scope, e.EnumName)
	enum := &schema.Enum{Name: e.EnumName, FullName: fullName}
	for _, v := range e.EnumBody {
		if ef, ok := v.(*protoparser.EnumField); ok {
			n, err := parseFieldNumber(ef.Number)
			if err != nil {
				return fmt.Errorf("enum value %s.%s: %w", fullName, ef.Ident, err)
			}
			enum.Values = append(enum.Values, &schema.EnumValue{Name: ef.Ident, Number: n})
		}
	}
	r.enums[fullName] = enum
	return nil
}

// resolvePending resolves every queued type name now that all files are
// registered.
func (r *Registry) resolvePending() error {
	all := make(map[string]struct{}, len(r.messages)+len(r.enums))
	for name := range r.messages {
		all[name] = struct{}{}
	}
	for name := range r.enums {
		all[name] = struct{}{}
	}

	for _, ref := range r.pending {
		name, err := getReferencedType(ref.name, ref.scope, all)
		if err != nil {
			// Well-known types are not loaded; keep them as opaque messages.
			if wkt := strings.TrimPrefix(ref.name, "."); strings.HasPrefix(wkt, "google.protobuf.") {
				ref.field.Type = schema.FieldType{Kind: schema.KindMessage, MessageType: wkt}
				continue
			}
			return fmt.Errorf("field %s.%s: %w", ref.scope, ref.field.Name, err)
		}
		if _, ok := r.enums[name]; ok {
			ref.field.Type = schema.FieldType{Kind: schema.KindEnum, EnumType: name}
		} else {
			ref.field.Type = schema.FieldType{Kind: schema.KindMessage, MessageType: name}
		}
	}
	r.pending = nil
	return nil
}

func getFullName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// GetMessage retrieves a message definition by its fully qualified name or
// by a suffix that matches exactly one registered message.
func (r *Registry) GetMessage(name string) (*schema.Message, error) {
	if msg, exists := r.messages[name]; exists {
		return msg, nil
	}

	// Try without package prefix
	var matches []string
	for _, fullName := range r.ListMessages() {
		if strings.HasSuffix(fullName, "."+name) {
			matches = append(matches, fullName)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("message type not found: %s", name)
	case 1:
		return r.messages[matches[0]], nil
	default:
		return nil, fmt.Errorf("ambiguous message name %s: matches %s", name, strings.Join(matches, ", "))
	}
}

// GetEnum retrieves an enum definition by name
func (r *Registry) GetEnum(name string) (*schema.Enum, error) {
	if enum, exists := r.enums[name]; exists {
		return enum, nil
	}
	return nil, fmt.Errorf("enum not found: %s", name)
}

// ListMessages returns all registered message names, sorted
func (r *Registry) ListMessages() []string {
	names := make([]string, 0, len(r.messages))
	for name := range r.messages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ListEnums returns all registered enum names, sorted
func (r *Registry) ListEnums() []string {
	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
