// Package jsonvalue provides a loosely-typed view over a JSON document.
//
// Lookups never fail: asking for a missing key, an out-of-range index, or a
// key on a non-object yields a Value of kind Invalid, which behaves like null
// when stringified.
package jsonvalue

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Kind is the JSON type held by a Value
type Kind int

const (
	// Invalid marks an absent value, e.g. the result of looking up a missing key
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// Placeholder is the text rendered for null and absent values
const Placeholder = "null"

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrEmpty is returned by Parse when the input holds no JSON value at all
var ErrEmpty = errors.New("invalid JSON: empty document")

// Value is a node of a parsed JSON document
type Value struct {
	node jsoniter.Any
}

// Parse validates data as a single JSON document and returns its root.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, ErrEmpty
	}
	// Unmarshal into an interface fully validates the document, including trailing
	// bytes, which the lazy iterator behind Get does not.
	var probe interface{}
	if err := api.Unmarshal(data, &probe); err != nil {
		return Value{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return Value{node: api.Get(data)}, nil
}

// Kind returns the JSON type of the value
func (v Value) Kind() Kind {
	if v.node == nil {
		return Invalid
	}
	switch v.node.ValueType() {
	case jsoniter.NilValue:
		return Null
	case jsoniter.BoolValue:
		return Bool
	case jsoniter.NumberValue:
		return Number
	case jsoniter.StringValue:
		return String
	case jsoniter.ArrayValue:
		return Array
	case jsoniter.ObjectValue:
		return Object
	default:
		return Invalid
	}
}

// IsNull reports whether the value is JSON null or absent
func (v Value) IsNull() bool {
	k := v.Kind()
	return k == Null || k == Invalid
}

// IsArray reports whether the value is a JSON array
func (v Value) IsArray() bool {
	return v.Kind() == Array
}

// Get returns the member named key. It yields an Invalid value when v is not
// an object or has no such member.
func (v Value) Get(key string) Value {
	if v.Kind() != Object {
		return Value{}
	}
	return Value{node: v.node.Get(key)}
}

// Index returns the i-th array element, or an Invalid value when v is not an
// array or i is out of range.
func (v Value) Index(i int) Value {
	if v.Kind() != Array || i < 0 || i >= v.node.Size() {
		return Value{}
	}
	return Value{node: v.node.Get(i)}
}

// Len returns the number of elements of an array or members of an object, and 0 otherwise
func (v Value) Len() int {
	switch v.Kind() {
	case Array, Object:
		return v.node.Size()
	default:
		return 0
	}
}

// Each calls fn for every element of an array in order. It does nothing for other kinds.
func (v Value) Each(fn func(i int, elem Value)) {
	if v.Kind() != Array {
		return
	}
	iter := api.BorrowIterator(nil)
	defer api.ReturnIterator(iter)

	i := 0
	// ToString on an array returns its source text, which is re-read element by element
	iter.ResetBytes([]byte(v.node.ToString()))
	iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		fn(i, Value{node: it.ReadAny()})
		i++
		return true
	})
}

// String renders the value as text: strings verbatim, numbers and literals as
// written in the source, arrays and objects as JSON, and null or absent values
// as Placeholder.
func (v Value) String() string {
	switch v.Kind() {
	case Invalid, Null:
		return Placeholder
	default:
		return v.node.ToString()
	}
}
