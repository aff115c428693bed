package models

import (
	"bytes"
	"maps"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var modelJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Extra keeps the members of a stored object that have no field of their own,
// so loading and saving a document never drops them.
type Extra map[string]jsoniter.RawMessage

// decodeWithExtra decodes data into fields and returns the members whose keys do
// not match any of known (compared case-insensitively, as field matching is).
func decodeWithExtra(data []byte, fields any, known ...string) (Extra, error) {
	if err := modelJSON.Unmarshal(data, fields); err != nil {
		return nil, err
	}
	var members map[string]jsoniter.RawMessage
	if err := modelJSON.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	for key := range members {
		if slices.ContainsFunc(known, func(k string) bool { return strings.EqualFold(k, key) }) {
			delete(members, key)
		}
	}
	if len(members) == 0 {
		return nil, nil
	}
	return members, nil
}

// encodeWithExtra encodes fields and appends the extra members after them in key order.
func encodeWithExtra(fields any, extra Extra) ([]byte, error) {
	b, err := modelJSON.Marshal(fields)
	if err != nil || len(extra) == 0 {
		return b, err
	}

	var buf bytes.Buffer
	buf.Write(b[:len(b)-1]) // drop the closing brace
	first := bytes.Equal(bytes.TrimSpace(b), []byte("{}"))
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := modelJSON.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(extra[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
