package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var docJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const documentIndent = "  "

// readDocument decodes the JSON file at path into dst.
func readDocument(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := docJSON.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %q: %w", path, err)
	}
	return nil
}

// writeDocument overwrites path with the 2-space indented encoding of v.
// The write is not atomic.
func writeDocument(path string, v any) error {
	b, err := docJSON.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	// models encode themselves, and jsoniter does not indent marshaler output
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", documentIndent); err != nil {
		return fmt.Errorf("indent %q: %w", path, err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
