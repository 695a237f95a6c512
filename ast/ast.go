// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a syntax tree for JSON values, and a parser that
// constructs syntax trees from JSON source.
package ast

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// A Node is a parsed JSON value. The concrete type of a Node is one of
// Value, *Array, or *Object.
type Node interface {
	// Equal reports whether the receiver is structurally equal to n.
	// Arrays and objects compare element by element in order.
	Equal(n Node) bool

	String() string

	isNode()
}

// Equal reports whether a and b are structurally equal. Two nil nodes are
// equal; a nil node is not equal to any non-nil node.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// A Value is a scalar leaf: null, a Boolean, an integer, or a string.
// The zero Value is null.
type Value struct {
	v any // nil, bool, int64, or string
}

// Null is the null value.
var Null Value

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{v: b} }

// Int returns an integer value.
func Int(z int64) Value { return Value{v: z} }

// String returns a string value.
func String(s string) Value { return Value{v: s} }

func (Value) isNode() {}

// Equal satisfies the Node interface.
func (v Value) Equal(n Node) bool {
	w, ok := n.(Value)
	return ok && v.v == w.v
}

// Scalar returns the underlying value of v: nil, bool, int64, or string.
func (v Value) Scalar() any { return v.v }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.v == nil }

// Bool reports the Boolean value of v, and whether v is a Boolean.
func (v Value) Bool() (bool, bool) { b, ok := v.v.(bool); return b, ok }

// Int reports the integer value of v, and whether v is an integer.
func (v Value) Int() (int64, bool) { z, ok := v.v.(int64); return z, ok }

// Text reports the string value of v, and whether v is a string.
func (v Value) Text() (string, bool) { s, ok := v.v.(string); return s, ok }

func (v Value) String() string {
	switch t := v.v.(type) {
	case nil:
		return "Value(null)"
	case string:
		return "Value(" + strconv.Quote(t) + ")"
	default:
		return fmt.Sprintf("Value(%v)", t)
	}
}

// An Array is an ordered sequence of values.
type Array struct {
	elems []Node
}

// NewArray returns an array containing the given elements in order.
func NewArray(elems ...Node) *Array { return &Array{elems: slices.Clone(elems)} }

func (*Array) isNode() {}

// Append adds v to the end of a.
func (a *Array) Append(v Node) { a.elems = append(a.elems, v) }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.elems) }

// At returns the element of a at index i. It panics if i is out of range.
func (a *Array) At(i int) Node { return a.elems[i] }

// All returns an iterator over the index and value of each element of a.
func (a *Array) All() iter.Seq2[int, Node] { return slices.All(a.elems) }

// Equal satisfies the Node interface.
func (a *Array) Equal(n Node) bool {
	b, ok := n.(*Array)
	if !ok || a == nil || b == nil {
		return ok && a == b
	}
	return slices.EqualFunc(a.elems, b.elems, Equal)
}

func (a *Array) String() string {
	ss := make([]string, len(a.elems))
	for i, e := range a.elems {
		ss[i] = e.String()
	}
	return "Array([" + strings.Join(ss, ", ") + "])"
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Node
}

// Field constructs an object member with the given key and value.
func Field(key string, value Node) Member { return Member{Key: key, Value: value} }

// An Object is a collection of key-value members, ordered by first insertion
// of each key. Keys are unique.
type Object struct {
	members []Member
	index   map[string]int // key → offset in members
}

// NewObject returns an object containing the given members. Members are added
// in order as if by Set, so a later member replaces an earlier one with the
// same key.
func NewObject(members ...Member) *Object {
	o := new(Object)
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

func (*Object) isNode() {}

// Set sets the value of key in o to v. If key is already present, its value
// is replaced in place and its position is unchanged; otherwise the key is
// added at the end.
func (o *Object) Set(key string, v Node) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Get returns the value of key in o, and reports whether it was present.
func (o *Object) Get(key string) (Node, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Find returns the member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	if i, ok := o.index[key]; ok {
		return &o.members[i]
	}
	return nil
}

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.members) }

// At returns the member of o at offset i. It panics if i is out of range.
func (o *Object) At(i int) Member { return o.members[i] }

// Keys returns the keys of o in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// All returns an iterator over the key and value of each member of o.
func (o *Object) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Equal satisfies the Node interface. Objects are equal only if they have the
// same keys in the same order, with equal values.
func (o *Object) Equal(n Node) bool {
	p, ok := n.(*Object)
	if !ok || o == nil || p == nil {
		return ok && o == p
	}
	return slices.EqualFunc(o.members, p.members, func(a, b Member) bool {
		return a.Key == b.Key && Equal(a.Value, b.Value)
	})
}

func (o *Object) String() string {
	ss := make([]string, len(o.members))
	for i, m := range o.members {
		ss[i] = strconv.Quote(m.Key) + ": " + m.Value.String()
	}
	return "Object({" + strings.Join(ss, ", ") + "})"
}
