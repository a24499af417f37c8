package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// readInput reads path, or stdin for "-". With asHex the content is hex text,
// whitespace allowed.
func readInput(stdin io.Reader, path string, asHex bool) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if !asHex {
		return data, nil
	}

	compact := bytes.Join(bytes.Fields(data), nil)
	out := make([]byte, hex.DecodedLen(len(compact)))
	if _, err := hex.Decode(out, compact); err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return out, nil
}
