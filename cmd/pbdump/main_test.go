package main

import (
	"bytes"
	"encoding/hex"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/anirudhraja/pbcodec/internal/testmsg"
	"github.com/anirudhraja/pbcodec/wire"
)

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDump(t *testing.T) {
	data := wire.MarshalMode(&testmsg.Address{Street: "Main", Zip: 12345}, wire.Balanced)

	tests := []struct {
		name  string
		stdin []byte
		args  []string
		want  string
	}{
		{
			name:  "raw",
			stdin: data,
			args:  []string{"dump", "-"},
			want:  "message {\n  1 [bytes] = \"Main\"\n  3 [varint] = 12345\n}\n",
		},
		{
			name:  "with schema",
			stdin: data,
			args:  []string{"dump", "-", "--proto", "../../testdata/address.proto", "--type", "Address"},
			want:  "example.places.Address {\n  1 street (string) = \"Main\"\n  3 zip (uint32) = 12345\n}\n",
		},
		{
			name:  "hex input",
			stdin: []byte(hex.EncodeToString(data[:6]) + "\n" + hex.EncodeToString(data[6:])),
			args:  []string{"dump", "--hex", "-"},
			want:  "message {\n  1 [bytes] = \"Main\"\n  3 [varint] = 12345\n}\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := run(t, test.stdin, test.args...)
			if err != nil {
				t.Fatalf("dump failed: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDump_Errors(t *testing.T) {
	if _, err := run(t, []byte{0x0a, 0x05}, "dump", "-"); err == nil {
		t.Error("expected error for truncated input")
	}
	if _, err := run(t, []byte("zz"), "dump", "--hex", "-"); err == nil || !strings.Contains(err.Error(), "invalid hex") {
		t.Errorf("got %v, want invalid hex error", err)
	}
	if _, err := run(t, nil, "dump", "-", "--log-level", "loud"); err == nil {
		t.Error("expected error for bad log level")
	}
}

func TestReencode(t *testing.T) {
	person := testmsg.RandomPerson(newRand(), 2)
	data := wire.MarshalMode(person, wire.Speed)
	outPath := filepath.Join(t.TempDir(), "out.bin")

	got, err := run(t, data, "reencode", "-", "--compare", "--mode", "space", "--out", outPath)
	if err != nil {
		t.Fatalf("reencode failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != len(wire.Modes) {
		t.Fatalf("expected one line per mode, got %q", got)
	}
	if !strings.HasPrefix(lines[2], "space") || !strings.Contains(lines[2], "unused=0") {
		t.Errorf("space line = %q", lines[2])
	}

	written, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(written, data) {
		t.Error("re-encoded output differs from input")
	}

	if _, err := run(t, data, "reencode", "-", "--mode", "fast"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestReencode_Function(t *testing.T) {
	w := wire.NewWriter(wire.Space)
	w.WriteVarintField(1, 1<<40)
	w.WriteFixed32Field(2, 3)
	w.WriteFixed64Field(3, 4)
	w.WriteStringField(4, "x")
	for _, mode := range wire.Modes {
		got, err := reencode(w.Contents(), mode)
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if diff := cmp.Diff(w.Contents(), got.Contents()); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", mode, diff)
		}
	}
	if _, err := reencode([]byte{0x0b}, wire.Balanced); err == nil {
		t.Error("expected error for group wire type")
	}
}

func TestVersion(t *testing.T) {
	got, err := run(t, nil, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if got != version+"\n" {
		t.Errorf("version = %q", got)
	}
}

func newRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }
