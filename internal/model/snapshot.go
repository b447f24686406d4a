package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Value is an opaque JSON payload returned by the Mist API: a tree of
// map[string]any, []any, json.Number, string, bool and nil.
type Value = any

// Snapshot holds the decoded results of one run across all resource kinds.
// Iteration and JSON encoding follow the canonical kind order.
type Snapshot struct {
	values  [len(allKinds)]Value
	present [len(allKinds)]bool

	// FetchedAt is set by the aggregator and is not part of the JSON form.
	FetchedAt time.Time
}

// NewSnapshot returns an empty Snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Set stores v under k. Unknown kinds are rejected.
func (s *Snapshot) Set(k ResourceKind, v Value) error {
	i := k.index()
	if i < 0 {
		return fmt.Errorf("unknown resource kind %q", string(k))
	}
	s.values[i] = v
	s.present[i] = true
	return nil
}

// Get returns the value stored for k and whether it is present.
func (s *Snapshot) Get(k ResourceKind) (Value, bool) {
	i := k.index()
	if i < 0 || !s.present[i] {
		return nil, false
	}
	return s.values[i], true
}

// Kinds returns the kinds present in the snapshot, in canonical order.
func (s *Snapshot) Kinds() []ResourceKind {
	var out []ResourceKind
	for i, k := range allKinds {
		if s.present[i] {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of kinds present.
func (s *Snapshot) Len() int {
	n := 0
	for _, p := range s.present {
		if p {
			n++
		}
	}
	return n
}

// Complete reports whether every resource kind is present.
func (s *Snapshot) Complete() bool {
	return s.Len() == len(allKinds)
}

// MarshalJSON encodes the snapshot as an object whose keys appear in
// canonical kind order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for i, k := range allKinds {
		if !s.present[i] {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, _ := json.Marshal(string(k))
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalValue(s.values[i])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by kind names. Numbers are kept as
// json.Number. Unknown keys are an error.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Snapshot
	for key, msg := range raw {
		k, err := ParseResourceKind(key)
		if err != nil {
			return err
		}
		v, err := DecodeValue(bytes.NewReader(msg))
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		_ = out.Set(k, v)
	}
	out.FetchedAt = s.FetchedAt
	*s = out
	return nil
}

// DecodeValue decodes exactly one JSON document from r into a Value.
// Trailing non-whitespace data is an error.
func DecodeValue(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v Value
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

// marshalValue encodes v without escaping HTML characters, so payload
// strings are written as the API returned them.
func marshalValue(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ItemCount returns the number of records in a collection payload: the
// length of an array, 0 for null, and 1 for any other value.
func ItemCount(v Value) int {
	switch t := v.(type) {
	case nil:
		return 0
	case []any:
		return len(t)
	default:
		return 1
	}
}
