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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Sexp {
	t.Helper()
	v, err := ParseString(text)
	require.NoError(t, err)
	return v
}

func TestDelq(t *testing.T) {
	l := mustParse(t, "(a b a c)")

	v, err := l.Delq(sym("a"))
	require.NoError(t, err)
	assertSexpEqual(t, mustParse(t, "(b c)"), v)

	// The original is untouched.
	assertSexpEqual(t, mustParse(t, "(a b a c)"), l)

	v, err = l.Delq(str("a"))
	require.NoError(t, err)
	assertSexpEqual(t, l, v)

	_, err = sym("a").Delq(sym("a"))
	var te *TypeError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, ListType, te.Expecting)
	assert.Equal(t, AtomType, te.Have)
}

func TestMember(t *testing.T) {
	l := mustParse(t, `(a "b" 3 4)`)

	isNumber := func(s *Sexp) bool {
		return s.Type() == NumberType
	}
	v, err := l.Member(isNumber)
	require.NoError(t, err)
	assertSexpEqual(t, num(3), v)

	_, err = l.Member(func(s *Sexp) bool { return s.Type() == PairType })
	assert.Equal(t, ErrNotFound, err)

	_, err = NewPair(sym("a"), sym("b")).Member(isNumber)
	assert.Error(t, err)
}

func TestMemqIndex(t *testing.T) {
	l := mustParse(t, "(a (b) c (b))")

	i, err := l.MemqIndex(NewList(sym("b")))
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = l.MemqIndex(sym("d"))
	assert.Equal(t, -1, i)
	assert.Equal(t, ErrNotFound, err)
}

func TestRemove(t *testing.T) {
	l := mustParse(t, "(a b a c)")

	v, err := l.Remove(sym("a"))
	require.NoError(t, err)
	assertSexpEqual(t, mustParse(t, "(b a c)"), v)

	v, err = l.Remove(sym("c"))
	require.NoError(t, err)
	assertSexpEqual(t, mustParse(t, "(a b a)"), v)

	_, err = l.Remove(sym("d"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRemoveKey(t *testing.T) {
	l := mustParse(t, "((a . 1) (b 2) (c . 3) (b . 4))")

	v, err := l.RemoveKey("b")
	require.NoError(t, err)
	assertSexpEqual(t, mustParse(t, "((a . 1) (c . 3) (b . 4))"), v)

	v, err = l.RemoveKey("a")
	require.NoError(t, err)
	assertSexpEqual(t, mustParse(t, "((b 2) (c . 3) (b . 4))"), v)

	_, err = l.RemoveKey("z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), `"z"`)

	_, err = num(1).RemoveKey("a")
	assert.Error(t, err)
}

func TestIntoMap(t *testing.T) {
	l := mustParse(t, `((b . 2) (a . "x") (c . (1 2)) (d . ()) (3 . three))`)

	m, err := l.IntoMap()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c", "d", "3"}, m.Keys())
	assert.Equal(t, 5, m.Len())

	v, ok := m.Get("a")
	require.True(t, ok)
	assertSexpEqual(t, str("x"), v)

	v, ok = m.Get("c")
	require.True(t, ok)
	assertSexpEqual(t, NewList(num(1), num(2)), v)

	v, ok = m.Get("d")
	require.True(t, ok)
	assert.True(t, v.IsNil())

	v, ok = m.Get("3")
	require.True(t, ok)
	assertSexpEqual(t, sym("three"), v)

	_, ok = m.Get("z")
	assert.False(t, ok)
}

func TestIntoMapErrors(t *testing.T) {
	_, err := sym("a").IntoMap()
	assert.Equal(t, ErrContainerNotList, err)

	_, err = NewPair(sym("a"), sym("b")).IntoMap()
	assert.Equal(t, ErrContainerNotList, err)

	_, err = mustParse(t, "((a . 1) b)").IntoMap()
	assert.True(t, errors.Is(err, ErrKeyValueMustBePair))

	_, err = mustParse(t, "((a . 1) (b 2))").IntoMap()
	assert.True(t, errors.Is(err, ErrKeyValueMustBePair))

	_, err = NewList(NewCons(nil, num(1))).IntoMap()
	assert.True(t, errors.Is(err, ErrKeyValueMustBePair))

	_, err = mustParse(t, "((a . 1) (b . 2) (a . 3))").IntoMap()
	var de *DuplicateKeyError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "a", de.Key)
}

func TestMapSet(t *testing.T) {
	m := NewMap()
	m.Set("x", num(1))
	m.Set("y", num(2))
	m.Set("x", num(3))

	assert.Equal(t, []string{"x", "y"}, m.Keys())
	v, _ := m.Get("x")
	assertSexpEqual(t, num(3), v)
}
