/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package sexpr

import (
	"fmt"
	"strings"
)

// Type is the type of a Sexp.
type Type uint8

const (
	// NilType is the empty value, written ().
	NilType Type = iota
	// AtomType is a symbol, keyword or string.
	AtomType
	// NumberType is an integer or float.
	NumberType
	// BoolType is #t or #f.
	BoolType
	// PairType is a cons cell, written (car . cdr).
	PairType
	// ListType is a proper, flat sequence.
	ListType
)

func (t Type) String() string {
	switch t {
	case NilType:
		return "nil"
	case AtomType:
		return "atom"
	case NumberType:
		return "number"
	case BoolType:
		return "bool"
	case PairType:
		return "pair"
	case ListType:
		return "list"
	default:
		return fmt.Sprintf("<unknown type %v>", uint8(t))
	}
}

// A Sexp is a node in an S-expression tree.
//
// The two slots of a pair are pointers, and a nil pointer means the slot is
// absent. An absent slot is not the same thing as a slot holding a Nil node,
// though both display as (). Sexp values are never modified once built;
// operations that "change" a list return a new one, and subtrees may be
// shared between trees.
type Sexp struct {
	typ  Type
	atom Atom
	num  Number
	b    bool
	car  *Sexp
	cdr  *Sexp
	list []*Sexp
}

// NewNil returns a Nil node.
func NewNil() *Sexp {
	return &Sexp{typ: NilType}
}

// NewAtom returns an atom node.
func NewAtom(a Atom) *Sexp {
	return &Sexp{typ: AtomType, atom: a}
}

// NewSymbol returns a symbol atom node.
func NewSymbol(text string) *Sexp {
	return NewAtom(NewSymbolAtom(text))
}

// NewKeyword returns a keyword atom node.
func NewKeyword(text string) *Sexp {
	return NewAtom(NewKeywordAtom(text))
}

// NewString returns a string atom node.
func NewString(text string) *Sexp {
	return NewAtom(NewStringAtom(text))
}

// NewNumber returns a number node.
func NewNumber(n Number) *Sexp {
	return &Sexp{typ: NumberType, num: n}
}

// NewInt returns a number node holding i.
func NewInt(i int64) *Sexp {
	return NewNumber(NumberFromInt64(i))
}

// NewUint returns a number node holding u.
func NewUint(u uint64) *Sexp {
	return NewNumber(NumberFromUint64(u))
}

// NewFloat returns a number node holding f, or a Nil node if f is not finite.
func NewFloat(f float64) *Sexp {
	n, ok := NumberFromFloat64(f)
	if !ok {
		return NewNil()
	}
	return NewNumber(n)
}

// NewBool returns a boolean node.
func NewBool(b bool) *Sexp {
	return &Sexp{typ: BoolType, b: b}
}

// NewList returns a list of the given elements. A nil element is stored as a
// Nil node.
func NewList(elems ...*Sexp) *Sexp {
	list := make([]*Sexp, len(elems))
	for i, e := range elems {
		if e == nil {
			e = NewNil()
		}
		list[i] = e
	}
	return &Sexp{typ: ListType, list: list}
}

// NewCons returns a pair with exactly the given slots; either may be nil
// (absent).
func NewCons(car, cdr *Sexp) *Sexp {
	return &Sexp{typ: PairType, car: car, cdr: cdr}
}

// NewPair returns the pair (car . cdr). When cdr is an empty list the cdr
// slot is left absent, so a nil-terminated chain ends in (x) rather than
// (x . ()). A nil car is stored as a Nil node.
func NewPair(car, cdr *Sexp) *Sexp {
	if car == nil {
		car = NewNil()
	}
	if cdr != nil && cdr.typ == ListType && len(cdr.list) == 0 {
		cdr = nil
	}
	return NewCons(car, cdr)
}

// Type returns the type of this node.
func (s *Sexp) Type() Type {
	return s.typ
}

// IsNil returns true for a Nil node.
func (s *Sexp) IsNil() bool {
	return s.typ == NilType
}

// Atom returns the atom held by an atom node.
func (s *Sexp) Atom() (Atom, bool) {
	return s.atom, s.typ == AtomType
}

// Number returns the number held by a number node.
func (s *Sexp) Number() (Number, bool) {
	return s.num, s.typ == NumberType
}

// Bool returns the value of a boolean node.
func (s *Sexp) Bool() (bool, bool) {
	return s.b, s.typ == BoolType
}

// List returns the elements of a list node. The returned slice is a copy;
// the elements are not.
func (s *Sexp) List() ([]*Sexp, bool) {
	if s.typ != ListType {
		return nil, false
	}
	return append([]*Sexp(nil), s.list...), true
}

// Len returns the number of elements in a list node, or zero.
func (s *Sexp) Len() int {
	return len(s.list)
}

// Index returns the i'th element of a list node, or nil if there is none.
func (s *Sexp) Index(i int) *Sexp {
	if s.typ != ListType || i < 0 || i >= len(s.list) {
		return nil
	}
	return s.list[i]
}

// Car returns the car slot of a pair, or the first element of a non-empty
// list. It returns nil if the slot is absent or s is neither.
func (s *Sexp) Car() *Sexp {
	switch s.typ {
	case PairType:
		return s.car
	case ListType:
		if len(s.list) > 0 {
			return s.list[0]
		}
	}
	return nil
}

// Cdr returns the cdr slot of a pair, or a new list of all but the first
// element of a non-empty list. It returns nil if the slot is absent or s is
// neither.
func (s *Sexp) Cdr() *Sexp {
	switch s.typ {
	case PairType:
		return s.cdr
	case ListType:
		if len(s.list) > 0 {
			return &Sexp{typ: ListType, list: s.list[1:len(s.list):len(s.list)]}
		}
	}
	return nil
}

// Get looks key up in an association list. Entries may be pairs, whose cdr
// is the value, or lists, whose second element (or remaining elements, if
// there are more than one) is the value. Get returns nil if s is not a list
// or no entry has the key.
func (s *Sexp) Get(key string) *Sexp {
	if s.typ != ListType {
		return nil
	}
	for _, e := range s.list {
		k, v, ok := entry(e)
		if ok && k.keyString() == key {
			return v
		}
	}
	return nil
}

// entry splits an alist element into its key and value.
func entry(e *Sexp) (*Sexp, *Sexp, bool) {
	switch e.typ {
	case PairType:
		if e.car == nil {
			return nil, nil, false
		}
		if e.cdr == nil {
			return e.car, NewNil(), true
		}
		return e.car, e.cdr, true
	case ListType:
		switch len(e.list) {
		case 0:
			return nil, nil, false
		case 1:
			return e.list[0], NewNil(), true
		case 2:
			return e.list[0], e.list[1], true
		default:
			return e.list[0], e.Cdr(), true
		}
	}
	return nil, nil, false
}

// keyString returns the primitive string form of a node, used to compare
// alist keys.
func (s *Sexp) keyString() string {
	switch s.typ {
	case AtomType:
		return s.atom.text
	case NumberType:
		return s.num.String()
	case BoolType:
		if s.b {
			return "#t"
		}
		return "#f"
	}
	return s.String()
}

// Equal compares two trees structurally. Atoms must agree in both text and
// variant; absent pair slots are only equal to absent slots.
func (s *Sexp) Equal(o *Sexp) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.typ != o.typ {
		return false
	}

	switch s.typ {
	case NilType:
		return true
	case AtomType:
		return s.atom.Equal(o.atom)
	case NumberType:
		return s.num == o.num
	case BoolType:
		return s.b == o.b
	case PairType:
		return s.car.Equal(o.car) && s.cdr.Equal(o.cdr)
	case ListType:
		if len(s.list) != len(o.list) {
			return false
		}
		for i := range s.list {
			if !s.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of the tree.
func (s *Sexp) Clone() *Sexp {
	if s == nil {
		return nil
	}
	c := *s
	c.car = s.car.Clone()
	c.cdr = s.cdr.Clone()
	if s.list != nil {
		c.list = make([]*Sexp, len(s.list))
		for i, e := range s.list {
			c.list[i] = e.Clone()
		}
	}
	return &c
}

// String displays the tree. String atoms are quoted but not escaped; use
// Marshal for text that is guaranteed to parse back.
func (s *Sexp) String() string {
	sb := strings.Builder{}
	s.display(&sb)
	return sb.String()
}

func (s *Sexp) display(sb *strings.Builder) {
	switch s.typ {
	case NilType:
		sb.WriteString("()")

	case AtomType:
		sb.WriteString(s.atom.String())

	case NumberType:
		sb.WriteString(s.num.String())

	case BoolType:
		if s.b {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}

	case PairType:
		sb.WriteByte('(')
		switch {
		case s.car != nil && s.cdr != nil:
			s.car.display(sb)
			sb.WriteString(" . ")
			s.cdr.display(sb)
		case s.car != nil:
			s.car.display(sb)
		case s.cdr != nil:
			sb.WriteString("() . ")
			s.cdr.display(sb)
		default:
			sb.WriteString("()")
		}
		sb.WriteByte(')')

	case ListType:
		sb.WriteByte('(')
		for i, e := range s.list {
			if i > 0 {
				sb.WriteByte(' ')
			}
			e.display(sb)
		}
		sb.WriteByte(')')
	}
}

// MarshalSexp writes the tree to w.
func (s *Sexp) MarshalSexp(w Writer) error {
	switch s.typ {
	case NilType:
		return w.WriteNil()

	case AtomType:
		switch s.atom.kind {
		case KeywordAtom:
			return w.WriteKeyword(s.atom.text)
		case StringAtom:
			return w.WriteString(s.atom.text)
		default:
			return w.WriteSymbol(s.atom.text)
		}

	case NumberType:
		return s.num.writeTo(w)

	case BoolType:
		return w.WriteBool(s.b)

	case PairType:
		if err := w.BeginPair(); err != nil {
			return err
		}
		if s.car != nil {
			if err := s.car.MarshalSexp(w); err != nil {
				return err
			}
		} else if s.cdr != nil {
			if err := w.WriteNil(); err != nil {
				return err
			}
		}
		if s.cdr != nil {
			if err := s.cdr.MarshalSexp(w); err != nil {
				return err
			}
		}
		return w.EndPair()

	case ListType:
		if err := w.BeginList(); err != nil {
			return err
		}
		for _, e := range s.list {
			if err := e.MarshalSexp(w); err != nil {
				return err
			}
		}
		return w.EndList()
	}

	return &UsageError{"Sexp.MarshalSexp", fmt.Sprintf("unknown type %v", s.typ)}
}

// UnmarshalSexp replaces s with a deep copy of src.
func (s *Sexp) UnmarshalSexp(src *Sexp) error {
	*s = *src.Clone()
	return nil
}
