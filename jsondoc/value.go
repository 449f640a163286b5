// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package jsondoc holds an in-memory JSON document as a tree of tagged values. Unlike decoding into
// map[string]any, objects keep their members in document order, so a document can be read, edited in place and
// written back without reordering keys or rewriting numbers.
package jsondoc

import "encoding/json"

// Kind identifies which of the JSON value types a Value holds.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Value is a node in a JSON document. Only the field matching kind is meaningful. A Value exclusively owns its
// children; JSON has no sharing or cycles.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	str     string
	elems   []*Value
	members []Member
}

func Null() *Value {
	return &Value{kind: NullKind}
}

func Bool(b bool) *Value {
	return &Value{kind: BoolKind, boolean: b}
}

// Number creates a number value from its literal text, e.g. "1", "-2.5e10".
func Number(n json.Number) *Value {
	return &Value{kind: NumberKind, number: n}
}

func String(s string) *Value {
	return &Value{kind: StringKind, str: s}
}

func Array(elems ...*Value) *Value {
	if elems == nil {
		elems = []*Value{}
	}
	return &Value{kind: ArrayKind, elems: elems}
}

func Object(members ...Member) *Value {
	if members == nil {
		members = []Member{}
	}
	return &Value{kind: ObjectKind, members: members}
}

// Kind returns the type of the value. A nil Value reports NullKind.
func (v *Value) Kind() Kind {
	if v == nil {
		return NullKind
	}
	return v.kind
}

// Str returns the string held by v, and whether v is a string at all.
func (v *Value) Str() (string, bool) {
	if v.Kind() != StringKind {
		return "", false
	}
	return v.str, true
}

// SetString turns v into a string value holding s.
func (v *Value) SetString(s string) {
	*v = Value{kind: StringKind, str: s}
}

func (v *Value) BoolValue() (bool, bool) {
	if v.Kind() != BoolKind {
		return false, false
	}
	return v.boolean, true
}

func (v *Value) NumberValue() (json.Number, bool) {
	if v.Kind() != NumberKind {
		return "", false
	}
	return v.number, true
}

// Elements returns the elements of an array, or nil for any other kind. The returned slice aliases the array, so
// editing an element edits the document.
func (v *Value) Elements() []*Value {
	if v.Kind() != ArrayKind {
		return nil
	}
	return v.elems
}

// Members returns the members of an object in document order, or nil for any other kind. The returned slice
// aliases the object.
func (v *Value) Members() []Member {
	if v.Kind() != ObjectKind {
		return nil
	}
	return v.members
}

// Get returns the value of the first member named key.
func (v *Value) Get(key string) (*Value, bool) {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Append adds a member to the end of an object. It is a no-op on other kinds.
func (v *Value) Append(key string, val *Value) {
	if v.Kind() != ObjectKind {
		return
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Push adds an element to the end of an array. It is a no-op on other kinds.
func (v *Value) Push(val *Value) {
	if v.Kind() != ArrayKind {
		return
	}
	v.elems = append(v.elems, val)
}
