package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/anirudhraja/pbcodec/schema"
)

func writeProto(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if len(registry.ListMessages()) != 0 {
		t.Errorf("Expected no messages initially, got %v", registry.ListMessages())
	}
	if len(registry.ListEnums()) != 0 {
		t.Errorf("Expected no enums initially, got %v", registry.ListEnums())
	}
}

func TestLoadSchema_NonExistentPath(t *testing.T) {
	registry := NewRegistry()

	err := registry.LoadSchema("/nonexistent/path")
	if err == nil {
		t.Fatal("Expected error for non-existent path")
	}
	if !strings.Contains(err.Error(), "path does not exist") {
		t.Errorf("Expected 'path does not exist' error, got: %v", err)
	}
}

func TestLoadSchema_NonProtoFile(t *testing.T) {
	path := writeProto(t, t.TempDir(), "notes.txt", "hello")

	err := NewRegistry().LoadSchema(path)
	if err == nil {
		t.Fatal("Expected error for non-proto file")
	}
	if !strings.Contains(err.Error(), "is not a .proto file") {
		t.Errorf("Expected 'is not a .proto file' error, got: %v", err)
	}
}

func TestLoadSchema_WithImports(t *testing.T) {
	registry := NewRegistry()
	if err := registry.LoadSchema("../testdata/person.proto"); err != nil {
		t.Fatalf("Failed to load schema: %v", err)
	}

	want := []string{
		"example.people.Person",
		"example.people.Person.LabelsEntry",
		"example.people.Person.Pager",
		"example.places.Address",
	}
	if diff := cmp.Diff(want, registry.ListMessages()); diff != "" {
		t.Errorf("ListMessages() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"example.people.Person.Kind"}, registry.ListEnums()); diff != "" {
		t.Errorf("ListEnums() mismatch (-want +got):\n%s", diff)
	}

	person, err := registry.GetMessage("Person")
	if err != nil {
		t.Fatalf("GetMessage(Person): %v", err)
	}

	tests := []struct {
		number int32
		name   string
		label  schema.FieldLabel
		typ    schema.FieldType
		oneof  string
	}{
		{1, "name", schema.LabelOptional, schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: schema.TypeString}, ""},
		{4, "scores", schema.LabelRepeated, schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: schema.TypeInt64}, ""},
		{6, "home", schema.LabelOptional, schema.FieldType{Kind: schema.KindMessage, MessageType: "example.places.Address"}, ""},
		{9, "balance", schema.LabelOptional, schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: schema.TypeSint64}, ""},
		{13, "labels", schema.LabelRepeated, schema.FieldType{Kind: schema.KindMap, MessageType: "example.people.Person.LabelsEntry"}, ""},
		{14, "friends", schema.LabelRepeated, schema.FieldType{Kind: schema.KindMessage, MessageType: "example.people.Person"}, ""},
		{17, "phone", schema.LabelOptional, schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: schema.TypeString}, "contact"},
		{18, "pager", schema.LabelOptional, schema.FieldType{Kind: schema.KindMessage, MessageType: "example.people.Person.Pager"}, "contact"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := person.FieldByNumber(tt.number)
			if f == nil {
				t.Fatalf("field %d not found", tt.number)
			}
			if f.Name != tt.name || f.Label != tt.label || f.Oneof != tt.oneof {
				t.Errorf("got %s/%s/%q, want %s/%s/%q", f.Name, f.Label, f.Oneof, tt.name, tt.label, tt.oneof)
			}
			if diff := cmp.Diff(tt.typ, f.Type); diff != "" {
				t.Errorf("type mismatch (-want +got):\n%s", diff)
			}
		})
	}

	pager, err := registry.GetMessage("example.people.Person.Pager")
	if err != nil {
		t.Fatalf("GetMessage(Pager): %v", err)
	}
	if got := pager.FieldByNumber(2).Type; got.Kind != schema.KindEnum || got.EnumType != "example.people.Person.Kind" {
		t.Errorf("pager.kind resolved to %+v", got)
	}

	entry, err := registry.GetMessage("example.people.Person.LabelsEntry")
	if err != nil {
		t.Fatalf("GetMessage(LabelsEntry): %v", err)
	}
	if !entry.MapEntry || entry.FieldByNumber(2).Type.PrimitiveType != schema.TypeInt64 {
		t.Errorf("unexpected map entry %+v", entry)
	}

	kind, err := registry.GetEnum("example.people.Person.Kind")
	if err != nil {
		t.Fatalf("GetEnum: %v", err)
	}
	if got := kind.ValueName(1); got != "KIND_NUMERIC" {
		t.Errorf("ValueName(1) = %q, want KIND_NUMERIC", got)
	}
}

func TestLoadSchema_Directory(t *testing.T) {
	dir := t.TempDir()
	writeProto(t, dir, "a.proto", `syntax = "proto3";
package pkg.a;
message A { pkg.b.B b = 1; }
`)
	writeProto(t, dir, "b.proto", `syntax = "proto3";
package pkg.b;
message B { int32 x = 1; }
`)

	registry := NewRegistry()
	if err := registry.LoadSchema(dir); err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}
	a, err := registry.GetMessage("pkg.a.A")
	if err != nil {
		t.Fatal(err)
	}
	if got := a.FieldByNumber(1).Type.MessageType; got != "pkg.b.B" {
		t.Errorf("A.b resolved to %q, want pkg.b.B", got)
	}
}

func TestLoadSchema_UnresolvedType(t *testing.T) {
	path := writeProto(t, t.TempDir(), "bad.proto", `syntax = "proto3";
message Broken { Missing m = 1; }
`)
	err := NewRegistry().LoadSchema(path)
	if err == nil {
		t.Fatal("Expected error for unresolved type")
	}
	if !strings.Contains(err.Error(), "unable to resolve type name: Missing") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadSchema_MissingImport(t *testing.T) {
	dir := t.TempDir()
	path := writeProto(t, dir, "orphan.proto", `syntax = "proto3";
import "nowhere.proto";
message Orphan { Found f = 1; }
`)
	registry := NewRegistry()
	if err := registry.LoadSchema(path); err == nil {
		t.Fatal("Expected error for missing import")
	}

	writeProto(t, dir, "nowhere.proto", `syntax = "proto3";
message Found {}
`)
	if err := registry.LoadSchema(path); err != nil {
		t.Fatalf("reload once the import exists: %v", err)
	}
	if diff := cmp.Diff([]string{"Found", "Orphan"}, registry.ListMessages()); diff != "" {
		t.Errorf("ListMessages() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetReferencedType(t *testing.T) {
	all := map[string]struct{}{
		"a.b.Outer":       {},
		"a.b.Outer.Inner": {},
		"a.Top":           {},
		"c.Other":         {},
	}
	tests := []struct {
		typeName string
		scope    string
		want     string
		wantErr  bool
	}{
		{"Inner", "a.b.Outer", "a.b.Outer.Inner", false},
		{"Outer.Inner", "a.b.Outer.Inner", "a.b.Outer.Inner", false},
		{"Top", "a.b.Outer", "a.Top", false},
		{"c.Other", "a.b.Outer", "c.Other", false},
		{".a.Top", "c", "a.Top", false},
		{".Top", "a", "", true},
		{"Nope", "a.b", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.typeName+"@"+tt.scope, func(t *testing.T) {
			got, err := getReferencedType(tt.typeName, tt.scope, all)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToCamel(t *testing.T) {
	for in, want := range map[string]string{
		"labels":         "Labels",
		"string_to_int":  "StringToInt",
		"already_Camel_": "AlreadyCamel",
	} {
		if got := toCamel(in); got != want {
			t.Errorf("toCamel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadSchema_FailureLeavesRegistryUnchanged(t *testing.T) {
	dir := t.TempDir()
	bad := writeProto(t, dir, "bad.proto", `syntax = "proto3";
package bad;
message Bad { Missing m = 1; }
`)
	good := writeProto(t, dir, "good.proto", `syntax = "proto3";
package good;
message Good { int32 x = 1; }
`)

	registry := NewRegistry()
	if err := registry.LoadSchema(bad); err == nil {
		t.Fatal("Expected error for unresolved type")
	}
	if names := registry.ListMessages(); len(names) != 0 {
		t.Errorf("failed load left messages behind: %v", names)
	}
	if _, err := registry.GetMessage("Bad"); err == nil {
		t.Error("GetMessage(Bad) succeeded after a failed load")
	}

	if err := registry.LoadSchema(good); err != nil {
		t.Fatalf("valid schema rejected after earlier failure: %v", err)
	}
	if diff := cmp.Diff([]string{"good.Good"}, registry.ListMessages()); diff != "" {
		t.Errorf("ListMessages() mismatch (-want +got):\n%s", diff)
	}

	// The broken file is parsed again rather than remembered, so fixing it
	// on disk makes it loadable.
	writeProto(t, dir, "bad.proto", `syntax = "proto3";
package bad;
import "good.proto";
message Bad { good.Good m = 1; }
`)
	if err := registry.LoadSchema(bad); err != nil {
		t.Fatalf("reload after fix: %v", err)
	}
	msg, err := registry.GetMessage("bad.Bad")
	if err != nil {
		t.Fatal(err)
	}
	if got := msg.FieldByNumber(1).Type.MessageType; got != "good.Good" {
		t.Errorf("Bad.m resolved to %q, want good.Good", got)
	}
}

func TestLoadSchema_FailureKeepsEarlierSchema(t *testing.T) {
	dir := t.TempDir()
	writeProto(t, dir, "base.proto", `syntax = "proto3";
package base;
message Base { int32 x = 1; }
`)
	broken := writeProto(t, dir, "broken.proto", `syntax = "proto3";
package base;
import "base.proto";
message Base { string y = 2; }
message Broken { Nowhere n = 1; }
`)

	registry := NewRegistry()
	if err := registry.LoadSchema(filepath.Join(dir, "base.proto")); err != nil {
		t.Fatal(err)
	}
	if err := registry.LoadSchema(broken); err == nil {
		t.Fatal("Expected error for unresolved type")
	}

	base, err := registry.GetMessage("base.Base")
	if err != nil {
		t.Fatal(err)
	}
	if f := base.FieldByNumber(1); f == nil || f.Name != "x" {
		t.Errorf("earlier definition was replaced: %+v", base.Fields)
	}
	if _, err := registry.GetMessage("base.Broken"); err == nil {
		t.Error("GetMessage(base.Broken) succeeded after a failed load")
	}
}

func TestGetMessage_ShortNames(t *testing.T) {
	path := writeProto(t, t.TempDir(), "items.proto", `syntax = "proto3";
package a;
message Item { int32 id = 1; }
message Outer {
  message Item { string name = 1; }
  Item item = 1;
}
message Order { int32 id = 1; }
`)
	registry := NewRegistry()
	if err := registry.LoadSchema(path); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		want    string
		wantErr string
	}{
		{"a.Item", "a.Item", ""},
		{"a.Outer.Item", "a.Outer.Item", ""},
		{"Outer.Item", "a.Outer.Item", ""},
		{"Order", "a.Order", ""},
		{"Item", "", "ambiguous message name Item: matches a.Item, a.Outer.Item"},
		{"Nope", "", "message type not found: Nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := registry.GetMessage(tt.name)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("GetMessage(%q) error = %v, want %q", tt.name, err, tt.wantErr)
				}
				if msg != nil {
					t.Errorf("GetMessage(%q) returned %s alongside an error", tt.name, msg.FullName)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetMessage(%q): %v", tt.name, err)
			}
			if msg.FullName != tt.want {
				t.Errorf("GetMessage(%q) = %s, want %s", tt.name, msg.FullName, tt.want)
			}
		})
	}
}

func TestLoadSchema_InvalidFieldNumbers(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"zero", "message M { int32 x = 0; }", "field M.x: number 0 out of range"},
		{"above max", "message M { int32 x = 536870912; }", "field M.x: number 536870912 out of range"},
		{"overflows int32", "message M { int32 x = 4294967296; }", `field M.x: invalid field number "4294967296"`},
		{"oneof", "message M { oneof o { string s = 0; } }", "field M.s: number 0 out of range"},
		{"map", "message M { map<string, int32> m = 0; }", "field M.m: number 0 out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProto(t, t.TempDir(), "m.proto", "syntax = \"proto3\";\n"+tt.body+"\n")
			registry := NewRegistry()
			err := registry.LoadSchema(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("LoadSchema() error = %v, want %q", err, tt.wantErr)
			}
			if names := registry.ListMessages(); len(names) != 0 {
				t.Errorf("failed load left messages behind: %v", names)
			}
		})
	}
}
