// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import "fmt"

// Path traverses a sequential path into the structure of v, where path
// elements are strings (denoting object keys), integers (denoting offsets
// into arrays or objects), functions (see below), or nil. If the path is
// valid, the element reached is returned. Otherwise, Path reports an error
// describing the first element that could not be resolved.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves the first member with that name. If this is the last
// element of the path, the member is returned; otherwise, subsequent path
// elements continue from the value of that member. Use a nil path element to
// resolve the value of an object member at the end of a path.
//
// If a path element is an integer, the corresponding value must be an array or
// object, and the integer resolves to an index in the array or object.
// Negative indices count backward from the end (-1 is last, -2 second last).
//
// If a path element is a function, it must have the signature
//
//	func(Value) (Value, error)
//
// and its result becomes the next value in the sequence. If the function
// reports an error, traversal stops and the error is returned.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for _, elt := range path {
		// If the previous step ended on an object member, interpret the next
		// path element relative to the value of that member.
		if m, ok := cur.(*Member); ok {
			cur = m.Value
		}

		switch t := elt.(type) {
		case string:
			obj, ok := cur.(Object)
			if !ok {
				return nil, fmt.Errorf("cannot traverse %T with %q", cur, t)
			}
			m := obj.Find(t)
			if m == nil {
				return nil, fmt.Errorf("key %q not found", t)
			}
			cur = m

		case int:
			switch e := cur.(type) {
			case Array:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return nil, fmt.Errorf("array index %d out of bounds (n=%d)", t, len(e))
				}
				cur = e[i]
			case Object:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return nil, fmt.Errorf("object index %d out of bounds (n=%d)", t, len(e))
				}
				cur = e[i]
			default:
				return nil, fmt.Errorf("cannot traverse %T with %v", cur, t)
			}

		case func(Value) (Value, error):
			next, err := t(cur)
			if err != nil {
				return nil, err
			}
			cur = next

		case nil:
			// Do nothing. This case supports indirecting through a member at the
			// end of the path.

		default:
			return nil, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
