// Package jsonc edits JSON documents that may carry comments and
// trailing commas, such as editor and agent settings files.
//
// Edits go through a parsed tree, so comments and the formatting of
// untouched values survive.
package jsonc

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/thoreinstein/airules/internal/errors"
)

// ErrInvalid indicates input that is not JSON even with comments allowed,
// or whose top level is not an object.
var ErrInvalid = errors.New("invalid JSON")

// Standardize strips comments and trailing commas. data is not modified.
func Standardize(data []byte) ([]byte, error) {
	std, err := hujson.Standardize(append([]byte(nil), data...))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing JSON"), ErrInvalid)
	}
	return std, nil
}

// SetKey sets key at the top level of the object in existing to value
// and returns the new document. Empty input starts a new object.
func SetKey(existing []byte, key string, value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling %s", key)
	}

	if len(bytes.TrimSpace(existing)) == 0 {
		existing = []byte("{}")
	}
	v, err := hujson.Parse(existing)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing JSON"), ErrInvalid)
	}
	if _, ok := v.Value.(*hujson.Object); !ok {
		return nil, errors.Wrap(ErrInvalid, "top level is not an object")
	}

	patch, err := json.Marshal([]patchOp{{Op: "add", Path: "/" + escapePointer(key), Value: raw}})
	if err != nil {
		return nil, errors.Wrap(err, "building patch")
	}
	if err := v.Patch(patch); err != nil {
		return nil, errors.Wrapf(err, "setting %s", key)
	}

	v.Format()
	out := v.Pack()
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

// Object decodes the top level of data. Empty input yields nil.
func Object(data []byte) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	std, err := Standardize(data)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(std, &obj); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "top level is not an object"), ErrInvalid)
	}
	return obj, nil
}

// HasKey reports whether the top-level object in data has key.
func HasKey(data []byte, key string) (bool, error) {
	obj, err := Object(data)
	if err != nil {
		return false, err
	}
	_, ok := obj[key]
	return ok, nil
}

// Entries returns the members of the object stored under key. A missing
// or null key returns nil.
func Entries(data []byte, key string) (map[string]json.RawMessage, error) {
	obj, err := Object(data)
	if err != nil {
		return nil, err
	}
	raw, ok := obj[key]
	if !ok || string(raw) == "null" {
		return nil, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "%s is not an object", key), ErrInvalid)
	}
	return entries, nil
}

type patchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// escapePointer escapes a key for use as a JSON Pointer token.
func escapePointer(key string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
}
