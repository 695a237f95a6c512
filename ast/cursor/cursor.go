// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over a parsed JSON value.
package cursor

import (
	"fmt"

	"github.com/creachadair/jsonp/ast"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method, and returns the node reached
// as a value of type T.
func Path[T ast.Node](v ast.Node, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// A Cursor is a pointer that navigates into the structure of an ast.Node.
type Cursor struct {
	org ast.Node
	stk []ast.Node
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Node) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin node of c.
func (c *Cursor) Origin() ast.Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current node under the cursor.
func (c *Cursor) Value() ast.Node {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of nodes from the origin to the current
// location in c.
func (c *Cursor) Path() []ast.Node {
	return append([]ast.Node{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current node, where path elements are strings (object keys), integers
// (offsets into arrays or objects), functions (see below), or nil.  If the
// path cannot be completely consumed, traversal stops at the last node
// reached and an error is recorded. Use Err to recover the error.
//
// A string element requires an object, and selects the value of the member
// with that key.
//
// An integer element requires an array or object, and selects the element
// (or member value) at that offset. Negative offsets count backward from the
// end (-1 is last, -2 second last).
//
// A function element must have the signature
//
//	func(ast.Node) (ast.Node, error)
//
// Its result becomes the next node in the sequence. If it reports an error,
// traversal stops and the error is recorded.
//
// A nil element is ignored.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(*ast.Object)
			if !ok {
				return c.setErrorf("cannot traverse %T with %q", cur, t)
			}
			v, ok := obj.Get(t)
			if !ok {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(v)

		case int:
			switch e := cur.(type) {
			case *ast.Array:
				i, ok := fixArrayBound(e.Len(), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", t, e.Len())
				}
				cur = c.push(e.At(i))
			case *ast.Object:
				i, ok := fixArrayBound(e.Len(), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", t, e.Len())
				}
				cur = c.push(e.At(i).Value)
			default:
				return c.setErrorf("cannot traverse %T with %v", cur, t)
			}

		case func(ast.Node) (ast.Node, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case nil:
			// Do nothing.

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v ast.Node) ast.Node { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
