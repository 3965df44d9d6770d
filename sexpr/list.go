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
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

func (s *Sexp) expectList(op string) error {
	if s.typ != ListType {
		return &TypeError{Op: op, Expecting: ListType, Have: s.typ}
	}
	return nil
}

// Delq returns a new list without any element equal to x.
func (s *Sexp) Delq(x *Sexp) (*Sexp, error) {
	if err := s.expectList("Delq"); err != nil {
		return nil, err
	}

	list := make([]*Sexp, 0, len(s.list))
	for _, e := range s.list {
		if !e.Equal(x) {
			list = append(list, e)
		}
	}
	return &Sexp{typ: ListType, list: list}, nil
}

// Member returns the first element for which pred returns true.
func (s *Sexp) Member(pred func(*Sexp) bool) (*Sexp, error) {
	if err := s.expectList("Member"); err != nil {
		return nil, err
	}

	for _, e := range s.list {
		if pred(e) {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

// MemqIndex returns the position of the first element equal to x.
func (s *Sexp) MemqIndex(x *Sexp) (int, error) {
	if err := s.expectList("MemqIndex"); err != nil {
		return -1, err
	}

	for i, e := range s.list {
		if e.Equal(x) {
			return i, nil
		}
	}
	return -1, ErrNotFound
}

// Remove returns a new list without the first element equal to x.
func (s *Sexp) Remove(x *Sexp) (*Sexp, error) {
	i, err := s.MemqIndex(x)
	if err != nil {
		return nil, err
	}
	return s.without(i), nil
}

// RemoveKey returns a new list without the first key/value entry whose key
// has the text name. Entries are pairs or non-empty lists.
func (s *Sexp) RemoveKey(name string) (*Sexp, error) {
	if err := s.expectList("RemoveKey"); err != nil {
		return nil, err
	}

	for i, e := range s.list {
		if k, _, ok := entry(e); ok && k.keyString() == name {
			return s.without(i), nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "key %q", name)
}

func (s *Sexp) without(i int) *Sexp {
	list := make([]*Sexp, 0, len(s.list)-1)
	list = append(list, s.list[:i]...)
	list = append(list, s.list[i+1:]...)
	return &Sexp{typ: ListType, list: list}
}

// A Map is a string-keyed map that remembers insertion order.
type Map struct {
	m *orderedmap.OrderedMap
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{m: orderedmap.New()}
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (*Sexp, bool) {
	v, ok := m.m.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*Sexp), true
}

// Set stores v under key, keeping key's original position if it was
// already present.
func (m *Map) Set(key string, v *Sexp) {
	m.m.Set(key, v)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	return m.m.Keys()
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.m.Keys())
}

// IntoMap interprets a list of pairs as an association list. Each pair's car
// is stringified to give the key and its cdr (Nil when absent) is the value.
func (s *Sexp) IntoMap() (*Map, error) {
	if s.typ != ListType {
		return nil, ErrContainerNotList
	}

	m := NewMap()
	for i, e := range s.list {
		if e.typ != PairType || e.car == nil {
			return nil, errors.Wrapf(ErrKeyValueMustBePair, "entry %v is %v", i, e)
		}

		key := e.car.keyString()
		if _, ok := m.Get(key); ok {
			return nil, &DuplicateKeyError{Key: key}
		}

		v := e.cdr
		if v == nil {
			v = NewNil()
		}
		m.Set(key, v)
	}
	return m, nil
}
