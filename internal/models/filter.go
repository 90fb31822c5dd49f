package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilterValue is returned when a filter value is neither a string
// nor an array of strings.
var ErrInvalidFilterValue = errors.New("filter value must be a string or an array of strings")

// FilterValue is either a single text value or an ordered list of values.
type FilterValue struct {
	text  string
	items []string
	list  bool
}

// Single returns a FilterValue holding one string.
func Single(s string) FilterValue {
	return FilterValue{text: s}
}

// List returns a FilterValue holding an ordered list of strings.
func List(items ...string) FilterValue {
	return FilterValue{items: cloneStrings(items), list: true}
}

func (v FilterValue) IsList() bool { return v.list }

// Values returns the value as a list. A single value becomes a one-element
// list.
func (v FilterValue) Values() []string {
	if v.list {
		return cloneStrings(v.items)
	}
	return []string{v.text}
}

// String joins list values with ", ".
func (v FilterValue) String() string {
	if v.list {
		return strings.Join(v.items, ", ")
	}
	return v.text
}

func (v FilterValue) Equal(o FilterValue) bool {
	if v.list != o.list {
		return false
	}
	if !v.list {
		return v.text == o.text
	}
	if len(v.items) != len(o.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

func (v FilterValue) clone() FilterValue {
	return FilterValue{text: v.text, items: cloneStrings(v.items), list: v.list}
}

func (v FilterValue) MarshalJSON() ([]byte, error) {
	if v.list {
		if v.items == nil {
			return []byte("[]"), nil
		}
		return marshalNoEscape(v.items)
	}
	return marshalNoEscape(v.text)
}

func (v *FilterValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidFilterValue
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFilterValue, err)
		}
		*v = Single(s)
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFilterValue, err)
		}
		if items == nil {
			items = []string{}
		}
		*v = FilterValue{items: items, list: true}
	default:
		return ErrInvalidFilterValue
	}
	return nil
}

// FilterEntry is one prospecting filter dimension, e.g. "company_size_range".
type FilterEntry struct {
	Name  string
	Value FilterValue
}

// FilterLogic maps filter dimensions to values. It serializes as a JSON
// object and keeps the insertion order of its keys in both directions.
type FilterLogic []FilterEntry

// Get returns the value stored under name.
func (f FilterLogic) Get(name string) (FilterValue, bool) {
	for _, e := range f {
		if e.Name == name {
			return e.Value, true
		}
	}
	return FilterValue{}, false
}

// Set replaces the value under name, or appends it when absent.
func (f *FilterLogic) Set(name string, value FilterValue) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, FilterEntry{Name: name, Value: value})
}

func (f FilterLogic) Names() []string {
	names := make([]string, len(f))
	for i, e := range f {
		names[i] = e.Name
	}
	return names
}

func (f FilterLogic) Clone() FilterLogic {
	if f == nil {
		return nil
	}
	out := make(FilterLogic, len(f))
	for i, e := range f {
		out[i] = FilterEntry{Name: e.Name, Value: e.Value.clone()}
	}
	return out
}

func (f FilterLogic) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", e.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *FilterLogic) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("filter logic: %w", err)
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("filter logic: expected object, got %v", tok)
	}

	out := FilterLogic{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("filter logic: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("filter logic: expected key, got %v", tok)
		}
		var value FilterValue
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("filter %q: %w", name, err)
		}
		out.Set(name, value)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("filter logic: %w", err)
	}

	*f = out
	return nil
}

func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
