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
	"math"
	"math/big"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalBool(t *testing.T) {
	test := func(str string, eval bool) {
		t.Run(str, func(t *testing.T) {
			var val bool
			require.NoError(t, UnmarshalString(str, &val))

			assert.Equal(t, eval, val)
		})
	}

	test("()", false)
	test("#t", true)
	test("#f", false)
}

func TestUnmarshalBoolPtr(t *testing.T) {
	var bval bool
	val := &bval
	require.NoError(t, UnmarshalString("()", &val))
	assert.Nil(t, val)

	require.NoError(t, UnmarshalString("#t", &val))
	require.NotNil(t, val)
	assert.True(t, *val)
}

func TestUnmarshalInt(t *testing.T) {
	test := func(str string, zero, eval interface{}) {
		t.Run(str, func(t *testing.T) {
			ptr := newPtrTo(zero)
			require.NoError(t, UnmarshalString(str, ptr.Interface()))
			assert.Equal(t, eval, ptr.Elem().Interface())
		})
	}

	test("0", int8(0), int8(0))
	test("127", int8(0), int8(127))
	test("-128", int8(0), int8(-128))
	test("#xff", uint8(0), uint8(255))
	test("-1", 0, -1)
	test("9223372036854775807", int64(0), int64(math.MaxInt64))
	test("-9223372036854775808", int64(0), int64(math.MinInt64))
	test("18446744073709551615", uint64(0), uint64(math.MaxUint64))
	test("()", 0, 0)
}

func TestUnmarshalIntErrors(t *testing.T) {
	test := func(str string, zero interface{}) {
		t.Run(str, func(t *testing.T) {
			ptr := newPtrTo(zero)
			err := UnmarshalString(str, ptr.Interface())

			var ute *UnmarshalTypeError
			require.True(t, errors.As(err, &ute), "expected an UnmarshalTypeError, got %v", err)
		})
	}

	test("128", int8(0))
	test("-129", int8(0))
	test("256", uint8(0))
	test("-1", uint(0))
	test("9223372036854775808", int64(0))
	test("1.5", 0)
	test("a", 0)
	test("(1)", 0)
	test("#t", 0)
}

func TestUnmarshalFloat(t *testing.T) {
	var f float64
	require.NoError(t, UnmarshalString("1.5", &f))
	assert.Equal(t, 1.5, f)

	require.NoError(t, UnmarshalString("-3", &f))
	assert.Equal(t, -3.0, f)

	var f32 float32
	require.NoError(t, UnmarshalString("0.25", &f32))
	assert.Equal(t, float32(0.25), f32)

	err := UnmarshalString("1000000000000000000000000000000000000000000.0", &f32)
	assert.Error(t, err)
}

func TestUnmarshalBigInt(t *testing.T) {
	var b big.Int
	require.NoError(t, UnmarshalString("-5", &b))
	assert.Equal(t, int64(-5), b.Int64())

	var bp *big.Int
	require.NoError(t, UnmarshalString("18446744073709551615", &bp))
	require.NotNil(t, bp)
	assert.Equal(t, "18446744073709551615", bp.String())

	assert.Error(t, UnmarshalString("1.5", &b))
}

func TestUnmarshalDecimal(t *testing.T) {
	test := func(str, eval string) {
		t.Run(str, func(t *testing.T) {
			var d decimal.Decimal
			require.NoError(t, UnmarshalString(str, &d))
			assert.Equal(t, eval, d.String())
		})
	}

	test("12", "12")
	test("-3", "-3")
	test("1.25", "1.25")
	test("18446744073709551615", "18446744073709551615")
}

func TestUnmarshalString(t *testing.T) {
	test := func(str, eval string) {
		t.Run(str, func(t *testing.T) {
			var val string
			require.NoError(t, UnmarshalString(str, &val))
			assert.Equal(t, eval, val)
		})
	}

	test(`"hello\tworld"`, "hello\tworld")
	test("sym", "sym")
	test("#:kw", "kw")
	test("()", "")

	var val string
	assert.Error(t, UnmarshalString("1", &val))
}

func TestUnmarshalAtom(t *testing.T) {
	var a Atom
	require.NoError(t, UnmarshalString("#:kw", &a))
	assert.True(t, a.Equal(NewKeywordAtom("kw")))

	var n Number
	require.NoError(t, UnmarshalString("-4", &n))
	assert.Equal(t, NumberFromInt64(-4), n)

	assert.Error(t, UnmarshalString("(a)", &a))
}

func TestUnmarshalSlices(t *testing.T) {
	var ints []int
	require.NoError(t, UnmarshalString("(1 2 3)", &ints))
	assert.Equal(t, []int{1, 2, 3}, ints)

	require.NoError(t, UnmarshalString("()", &ints))
	assert.NotNil(t, ints)
	assert.Empty(t, ints)

	var strs []string
	require.NoError(t, UnmarshalString(`(a "b" #:c)`, &strs))
	assert.Equal(t, []string{"a", "b", "c"}, strs)

	var nested [][]int
	require.NoError(t, UnmarshalString("((1) () (2 3))", &nested))
	assert.Equal(t, [][]int{{1}, {}, {2, 3}}, nested)

	var bs []byte
	require.NoError(t, UnmarshalString("(104 105)", &bs))
	assert.Equal(t, []byte("hi"), bs)
}

func TestUnmarshalArrays(t *testing.T) {
	var arr [2]int
	require.NoError(t, UnmarshalString("(1 2)", &arr))
	assert.Equal(t, [2]int{1, 2}, arr)

	err := UnmarshalString("(1 2 3)", &arr)
	var le *LengthError
	require.True(t, errors.As(err, &le), "expected a LengthError, got %v", err)
	assert.Equal(t, 2, le.Want)
	assert.Equal(t, 3, le.Have)

	err = UnmarshalString("(1)", &arr)
	require.True(t, errors.As(err, &le), "expected a LengthError, got %v", err)
	assert.Equal(t, 2, le.Want)
	assert.Equal(t, 1, le.Have)

	err = UnmarshalString("()", &arr)
	require.True(t, errors.As(err, &le), "expected a LengthError, got %v", err)

	var empty [0]int
	require.NoError(t, UnmarshalString("()", &empty))
}

func TestUnmarshalPairs(t *testing.T) {
	var arr [2]string
	require.NoError(t, UnmarshalString("(a . b)", &arr))
	assert.Equal(t, [2]string{"a", "b"}, arr)

	var strs []string
	require.NoError(t, UnmarshalString(`(a . "b")`, &strs))
	assert.Equal(t, []string{"a", "b"}, strs)

	m := map[string]string{}
	require.NoError(t, UnmarshalString("(a . b)", &m))
	assert.Equal(t, map[string]string{"a": "b"}, m)

	var val interface{}
	require.NoError(t, UnmarshalString("(a . 1)", &val))
	assert.Equal(t, []interface{}{"a", uint64(1)}, val)

	var s struct{ A string }
	err := UnmarshalString("(a . b)", &s)
	var use *UnsupportedShapeError
	require.True(t, errors.As(err, &use), "expected an UnsupportedShapeError, got %v", err)

	var i int
	assert.Error(t, UnmarshalString("(a . b)", &i))
}

func TestUnmarshalMaps(t *testing.T) {
	var m map[string]int
	require.NoError(t, UnmarshalString(`(("a" . 1) (b 2) (c . 3))`, &m))
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, m)

	var im map[int]string
	require.NoError(t, UnmarshalString(`((2 . "x") (10 . "y"))`, &im))
	assert.Equal(t, map[int]string{2: "x", 10: "y"}, im)

	var lm map[string][]int
	require.NoError(t, UnmarshalString(`((a 1 2) (b . (3)) (c))`, &lm))
	assert.Equal(t, map[string][]int{"a": {1, 2}, "b": {3}, "c": nil}, lm)

	require.NoError(t, UnmarshalString("()", &m))
	assert.Nil(t, m)

	assert.Error(t, UnmarshalString("(a b)", &m))
	assert.Error(t, UnmarshalString(`((a . x))`, &m))
}

type person struct {
	Name    string            `sexp:"name,required"`
	Age     int               `sexp:"age"`
	Email   *string           `sexp:"email"`
	Tags    []string          `sexp:"tags,symbol"`
	Attrs   map[string]string `sexp:"attrs,omitempty"`
	Skipped int               `sexp:"-"`
	Inner
}

func TestUnmarshalStruct(t *testing.T) {
	var p person
	text := `((name "bob") (AGE 42) (email . "bob@example.com") (tags a b c) (x 7) (unknown 1) (skipped 3))`
	require.NoError(t, UnmarshalString(text, &p))

	assert.Equal(t, "bob", p.Name)
	assert.Equal(t, 42, p.Age)
	require.NotNil(t, p.Email)
	assert.Equal(t, "bob@example.com", *p.Email)
	assert.Equal(t, []string{"a", "b", "c"}, p.Tags)
	assert.Equal(t, 7, p.X)
	assert.Equal(t, 0, p.Skipped)
}

func TestUnmarshalStructErrors(t *testing.T) {
	var p person
	err := UnmarshalString("((age 3))", &p)
	var mfe *MissingFieldError
	require.True(t, errors.As(err, &mfe), "expected a MissingFieldError, got %v", err)
	assert.Equal(t, "name", mfe.Field)

	err = UnmarshalString(`((name "a") (age "old"))`, &p)
	var ute *UnmarshalTypeError
	require.True(t, errors.As(err, &ute), "expected an UnmarshalTypeError, got %v", err)
	assert.Contains(t, err.Error(), "field age")

	err = UnmarshalString(`((name "a") ((x) 1))`, &p)
	var use *UnsupportedShapeError
	require.True(t, errors.As(err, &use), "expected an UnsupportedShapeError, got %v", err)

	assert.Error(t, UnmarshalString("(a b)", &p))
}

func TestUnmarshalEmbeddedPointer(t *testing.T) {
	var v struct {
		*Inner
		Y int `sexp:"y"`
	}
	require.NoError(t, UnmarshalString("((x 1) (y 2))", &v))
	require.NotNil(t, v.Inner)
	assert.Equal(t, 1, v.X)
	assert.Equal(t, 2, v.Y)
}

func TestUnmarshalDuplicateFieldNames(t *testing.T) {
	var v struct {
		Inner
		X int `sexp:"x"`
	}
	require.NoError(t, UnmarshalString("((x 5))", &v))
	assert.Equal(t, 5, v.X)
	assert.Equal(t, 0, v.Inner.X)

	var tie struct {
		A int `sexp:"a"`
		B int `sexp:"a"`
		C int `sexp:"c"`
	}
	require.NoError(t, UnmarshalString("((a 1) (c 3))", &tie))
	assert.Equal(t, 0, tie.A)
	assert.Equal(t, 0, tie.B)
	assert.Equal(t, 3, tie.C)
}

func TestUnmarshalSexp(t *testing.T) {
	var s Sexp
	require.NoError(t, UnmarshalString("(a . (b c))", &s))
	assertSexpEqual(t, NewPair(sym("a"), NewList(sym("b"), sym("c"))), &s)

	var sp *Sexp
	require.NoError(t, UnmarshalString("(1 2)", &sp))
	assertSexpEqual(t, NewList(num(1), num(2)), sp)

	var v struct {
		Name string `sexp:"name"`
		Body *Sexp  `sexp:"body"`
	}
	require.NoError(t, UnmarshalString("((name f) (body (+ x 1)))", &v))
	assert.Equal(t, "f", v.Name)
	assertSexpEqual(t, NewList(sym("+"), sym("x"), num(1)), v.Body)
}

type lowered string

func (l *lowered) UnmarshalSexp(s *Sexp) error {
	a, ok := s.Atom()
	if !ok {
		return errors.New("not an atom")
	}
	*l = lowered(strings.ToLower(a.Text()))
	return nil
}

func TestUnmarshaler(t *testing.T) {
	var l lowered
	require.NoError(t, UnmarshalString(`"HeLLo"`, &l))
	assert.Equal(t, lowered("hello"), l)

	var ls []lowered
	require.NoError(t, UnmarshalString(`("A" "B")`, &ls))
	assert.Equal(t, []lowered{"a", "b"}, ls)

	assert.Error(t, UnmarshalString("(1)", &l))
}

func TestUnmarshalVariants(t *testing.T) {
	var p point
	require.NoError(t, UnmarshalString(`"Point"`, &p))

	err := UnmarshalString(`"Circle"`, &p)
	var uve *UnknownVariantError
	require.True(t, errors.As(err, &uve), "expected an UnknownVariantError, got %v", err)
	assert.Equal(t, "Circle", uve.Variant)
	assert.Equal(t, []string{"Point"}, uve.Expected)

	var c circle
	require.NoError(t, UnmarshalString(`((variant "Circle") (radius 1.5))`, &c))
	assert.Equal(t, circle{1.5}, c)

	err = UnmarshalString(`((variant "Square") (side 1.5))`, &c)
	require.True(t, errors.As(err, &uve), "expected an UnknownVariantError, got %v", err)

	err = UnmarshalString(`((radius 1.5))`, &c)
	var use *UnsupportedShapeError
	require.True(t, errors.As(err, &use), "expected an UnsupportedShapeError, got %v", err)

	var poly polygon
	require.NoError(t, UnmarshalString(`((variant "Polygon") 1.0 2.5)`, &poly))
	assert.Equal(t, polygon{1, 2.5}, poly)

	var sq square
	require.NoError(t, UnmarshalString(`((variant "Square") (side 2.0))`, &sq))
	assert.Equal(t, square{2}, sq)

	var m meters
	require.NoError(t, UnmarshalString(`((variant "Meters") 3.5)`, &m))
	assert.Equal(t, meters(3.5), m)

	err = UnmarshalString(`((variant "Meters") 3.5 4.5)`, &m)
	var le *LengthError
	require.True(t, errors.As(err, &le), "expected a LengthError, got %v", err)

	err = UnmarshalString(`((variant "Meters"))`, &m)
	require.True(t, errors.As(err, &le), "expected a LengthError, got %v", err)

	var tg tags
	require.NoError(t, UnmarshalString(`((variant "Tags") (("a" . 1) (b . 2)))`, &tg))
	assert.Equal(t, tags{"a": 1, "b": 2}, tg)
}

func TestDecodeInterfaceVariants(t *testing.T) {
	d := NewTextDecoder(strings.NewReader(`("Point" ((variant "Circle") (radius 2.0)) ((variant "Square") (side 1.0)))`))
	d.RegisterVariants(point{}, circle{}, &square{}, meters(0))

	var shapes []shape
	require.NoError(t, d.DecodeTo(&shapes))
	require.Len(t, shapes, 3)
	assert.Equal(t, point{}, shapes[0])
	assert.Equal(t, circle{2}, shapes[1])
	assert.Equal(t, &square{1}, shapes[2])

	d = NewTextDecoder(strings.NewReader(`"Triangle" ((variant "Meters") 1.0)`))
	d.RegisterVariants(point{}, circle{}, meters(0))

	var s shape
	err := d.DecodeTo(&s)
	var uve *UnknownVariantError
	require.True(t, errors.As(err, &uve), "expected an UnknownVariantError, got %v", err)
	assert.Equal(t, "Triangle", uve.Variant)
	assert.Equal(t, []string{"Circle", "Point"}, uve.Expected)

	// Registered, but not a shape.
	err = d.DecodeTo(&s)
	require.True(t, errors.As(err, &uve), "expected an UnknownVariantError, got %v", err)
	assert.Equal(t, "Meters", uve.Variant)

	// Without registration there is nothing to choose from.
	err = UnmarshalString(`"Point"`, &s)
	require.True(t, errors.As(err, &uve), "expected an UnknownVariantError, got %v", err)
	assert.Empty(t, uve.Expected)
}

func TestVariantRoundTrip(t *testing.T) {
	in := []shape{point{}, circle{1.5}, polygon{1, 2}, &square{3}}

	data, err := Marshal(in)
	require.NoError(t, err)

	d := NewTextDecoder(strings.NewReader(string(data)))
	d.RegisterVariants(point{}, circle{}, polygon{}, &square{})

	var out []shape
	require.NoError(t, d.DecodeTo(&out))
	assert.Equal(t, in, out)
}

func TestDecode(t *testing.T) {
	test := func(str string, eval interface{}) {
		t.Run(str, func(t *testing.T) {
			d := NewTextDecoder(strings.NewReader(str))
			val, err := d.Decode()
			require.NoError(t, err)
			assert.Equal(t, eval, val)

			_, err = d.Decode()
			assert.Equal(t, ErrNoInput, err)
		})
	}

	test("()", []interface{}{})
	test("#t", true)
	test("1", uint64(1))
	test("-1", int64(-1))
	test("1.5", 1.5)
	test("Sym", "sym")
	test(`"Str"`, "Str")
	test("#:kw", "kw")
	test("(1 -2 1.5 a #t ())", []interface{}{uint64(1), int64(-2), 1.5, "a", true, []interface{}{}})
	test("(a . b)", []interface{}{"a", "b"})
	test("((a . b) (c))", []interface{}{[]interface{}{"a", "b"}, []interface{}{"c"}})
}

func TestDecodeAbsentSlots(t *testing.T) {
	d := Decoder{}

	v, err := d.DecodeValue(NewCons(sym("a"), nil))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a"}, v)

	v, err = d.DecodeValue(NewCons(nil, sym("b")))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{nil, "b"}, v)

	v, err = d.DecodeValue(NewCons(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, v)
}

func TestDecoderStream(t *testing.T) {
	d := NewTextDecoder(strings.NewReader(`1 (a b) "c" ; end`))

	var i int
	require.NoError(t, d.DecodeTo(&i))
	assert.Equal(t, 1, i)

	var strs []string
	require.NoError(t, d.DecodeTo(&strs))
	assert.Equal(t, []string{"a", "b"}, strs)

	var s string
	require.NoError(t, d.DecodeTo(&s))
	assert.Equal(t, "c", s)

	assert.Equal(t, ErrNoInput, d.DecodeTo(&s))
}

func TestDecodeToErrors(t *testing.T) {
	var i int
	assert.Error(t, UnmarshalString("1", i))
	assert.Error(t, UnmarshalString("1", (*int)(nil)))
	assert.Equal(t, ErrNoInput, UnmarshalString("  ; nothing", &i))

	err := UnmarshalString("(1", &i)
	var se *SyntaxError
	require.True(t, errors.As(err, &se), "expected a SyntaxError, got %v", err)

	assert.Equal(t, ErrNoInput, FromValue(nil, &i))
}

func TestUnmarshalTrailing(t *testing.T) {
	var i int
	err := UnmarshalString("1 ) (((garbage", &i)
	assertSyntaxError(t, err, TrailingCharacters)

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 3, se.Col)

	assert.NoError(t, UnmarshalString(" 2 ; two\n", &i))
	assert.Equal(t, 2, i)

	// A Decoder reads the same input as a stream.
	d := NewTextDecoder(strings.NewReader("1 2"))
	require.NoError(t, d.DecodeTo(&i))
	assert.Equal(t, 1, i)
	require.NoError(t, d.DecodeTo(&i))
	assert.Equal(t, 2, i)
}

func TestUnmarshalTypeErrorTruncates(t *testing.T) {
	var i int
	err := FromValue(NewString(strings.Repeat("é", 50)), &i)

	var ute *UnmarshalTypeError
	require.True(t, errors.As(err, &ute), "expected an UnmarshalTypeError, got %v", err)
	assert.True(t, utf8.ValidString(ute.Value), ute.Value)
	assert.True(t, strings.HasSuffix(ute.Value, "..."), ute.Value)
}

func TestUnmarshalConfig(t *testing.T) {
	cfg := Standard()
	cfg.CaseSensitiveAtoms = true

	var strs []string
	require.NoError(t, UnmarshalConfig([]byte("(Foo Bar)"), cfg, &strs))
	assert.Equal(t, []string{"Foo", "Bar"}, strs)

	require.NoError(t, Unmarshal([]byte("(Foo Bar)"), &strs))
	assert.Equal(t, []string{"foo", "bar"}, strs)
}

func TestFromValue(t *testing.T) {
	tree := NewList(
		NewList(sym("name"), str("ann")),
		NewList(sym("age"), num(30)),
	)

	var p person
	require.NoError(t, FromValue(tree, &p))
	assert.Equal(t, "ann", p.Name)
	assert.Equal(t, 30, p.Age)
}

func TestRoundTrip(t *testing.T) {
	email := "x@example.com"
	in := person{
		Name:  "Ann Lee",
		Age:   30,
		Email: &email,
		Tags:  []string{"admin", "ops"},
		Attrs: map[string]string{"team": "infra", "Site": "EU"},
		Inner: Inner{X: -1},
	}

	data, err := Marshal(in)
	require.NoError(t, err)

	var out person
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, in, out)

	tree, err := ToValue(in)
	require.NoError(t, err)

	var out2 person
	require.NoError(t, FromValue(tree, &out2))
	assert.Equal(t, in, out2)
}

func TestDecodeTooDeep(t *testing.T) {
	tree := NewList()
	for i := 0; i < DefaultMaxDepth+10; i++ {
		tree = NewList(tree)
	}

	var v interface{}
	assert.Equal(t, ErrTooDeeplyNested, FromValue(tree, &v))
}

func newPtrTo(zero interface{}) reflect.Value {
	return reflect.New(reflect.TypeOf(zero))
}
