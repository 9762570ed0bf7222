package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/mcncl/jsonorder/internal/errors"
)

// Value is any JSON value: nil, bool, json.Number, string, *Object or Array.
type Value interface{}

// Array is a JSON array.
type Array []Value

// Member is a single name/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object that remembers the order of its members.
// An Object is not modified once built; the normalizer always creates new ones.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject builds an Object from members in the given order.
// A repeated key keeps its first position and takes the last value.
func NewObject(members ...Member) *Object {
	obj := &Object{
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		obj.set(m.Key, m.Value)
	}
	return obj
}

func (o *Object) set(key string, value Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Keys returns the member names in order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for _, m := range o.Members() {
		keys = append(keys, m.Key)
	}
	return keys
}

// Members returns a copy of the members in order.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	out := make([]Member, len(o.members))
	copy(out, o.members)
	return out
}

// Get looks up a member value by name.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// MarshalJSON encodes the object with its members in order. HTML characters
// are left unescaped; the caller's encoder decides whether to escape them.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.Members() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, m.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, m.Value); err != nil {
			return nil, fmt.Errorf("member %q: %w", m.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes the array. A nil Array encodes as [].
func (a Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, v); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	if KindOf(v) == KindInvalid {
		return fmt.Errorf("%w: %T", errors.ErrUnsupportedType, v)
	}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Kind identifies the variant of a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "boolean",
	KindNumber:  "number",
	KindString:  "string",
	KindObject:  "object",
	KindArray:   "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsScalar reports whether values of this kind can take part in value-based sorting.
func (k Kind) IsScalar() bool {
	return k == KindString || k == KindNumber
}

// KindOf classifies a Value. Types outside the union report KindInvalid.
func KindOf(v Value) Kind {
	switch v := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number:
		return KindNumber
	case string:
		return KindString
	case *Object:
		if v == nil {
			return KindNull
		}
		return KindObject
	case Array:
		return KindArray
	default:
		return KindInvalid
	}
}

// ParseNumber returns the exact rational value of a JSON number literal.
func ParseNumber(n json.Number) (*big.Rat, bool) {
	return new(big.Rat).SetString(string(n))
}

// CompareNumbers orders two JSON numbers by value. Literals whose exponent is
// too large for big.Rat are compared as big.Float instead, so -1e99999999
// still sorts before -3. Literals that parse as neither sort after all
// others, by their text.
func CompareNumbers(a, b json.Number) int {
	ra, okA := ParseNumber(a)
	rb, okB := ParseNumber(b)
	if okA && okB {
		return ra.Cmp(rb)
	}

	fa, okA := parseFloat(a)
	fb, okB := parseFloat(b)
	switch {
	case okA && okB:
		return fa.Cmp(fb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(string(a), string(b))
	}
}

func parseFloat(n json.Number) (*big.Float, bool) {
	return new(big.Float).SetPrec(128).SetString(string(n))
}

// Document is a parsed JSON input.
type Document struct {
	Root     Value
	RootKind Kind
}
