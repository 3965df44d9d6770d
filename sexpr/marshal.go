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
	"bytes"
	"io"
	"math/big"
	"reflect"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// EncoderOpts holds bit-flag options for an Encoder.
type EncoderOpts uint

const (
	// EncodeSortMaps instructs the encoder to write map keys in sorted order.
	EncodeSortMaps EncoderOpts = 1
)

// Marshaler is the interface implemented by types that can marshal themselves
// to S-expressions.
type Marshaler interface {
	MarshalSexp(w Writer) error
}

// Variant is implemented by the alternatives of a sum type. A Variant with
// no payload (an empty struct) is written as its quoted name; any other is
// written as ((variant "Name") ...) followed by its struct fields, its
// elements, or its single value.
type Variant interface {
	SexpVariant() string
}

var (
	marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()
	variantType   = reflect.TypeOf((*Variant)(nil)).Elem()
	sexpType      = reflect.TypeOf(Sexp{})
	atomType      = reflect.TypeOf(Atom{})
	numberType    = reflect.TypeOf(Number{})
	bigIntType    = reflect.TypeOf(big.Int{})
	decimalType   = reflect.TypeOf(decimal.Decimal{})
)

// Marshal marshals a value to text.
//
//	type point struct {
//		X int `sexp:"x"`
//		Y int `sexp:"y"`
//	}
//
//	val, err := Marshal(point{1, 2})
//	if err != nil {
//		return err
//	}
//	fmt.Println(string(val)) // prints out: ((x 1) (y 2))
//
// Go values map onto S-expressions as follows:
//
//	Go value                           S-expression
//	--------------------------         ---------------
//	nil, nil pointer, struct{}         ()
//	bool                               #t / #f
//	ints, uints, big.Int               integer
//	floats, decimal.Decimal            number (non-finite floats become ())
//	string                             "string" (or symbol/keyword by tag)
//	slice, array                       (e1 e2 ...)
//	map                                (("k1" . v1) ("k2" . v2) ...)
//	struct                             ((name1 v1) (name2 v2) ...)
//	Variant                            "Name" or ((variant "Name") ...)
//	Sexp, Atom, Number                 themselves
func Marshal(v interface{}) ([]byte, error) {
	return marshalText(v, TextWriterQuietFinish)
}

// MarshalIndent is like Marshal but puts each list element after the first
// on its own indented line.
func MarshalIndent(v interface{}) ([]byte, error) {
	return marshalText(v, TextWriterQuietFinish|TextWriterPretty)
}

func marshalText(v interface{}, opts TextWriterOpts) ([]byte, error) {
	buf := bytes.Buffer{}
	w := NewTextWriterOpts(&buf, opts)
	e := Encoder{
		w:    w,
		opts: EncodeSortMaps,
	}

	if err := e.Encode(v); err != nil {
		return nil, err
	}
	if err := e.Finish(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalTo marshals the given value to the given writer. It does
// not call Finish, so is suitable for encoding values inside of
// a partially-constructed value.
func MarshalTo(w Writer, v interface{}) error {
	e := Encoder{
		w: w,
	}
	return e.Encode(v)
}

// ToValue converts a Go value to a Sexp tree, following the same rules as
// Marshal.
func ToValue(v interface{}) (*Sexp, error) {
	w := NewTreeWriter()
	e := Encoder{
		w:    w,
		opts: EncodeSortMaps,
	}

	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return w.Value()
}

// An Encoder writes Go values to a Writer.
type Encoder struct {
	w    Writer
	opts EncoderOpts
}

// NewEncoder creates a new encoder.
func NewEncoder(w Writer) *Encoder {
	return NewEncoderOpts(w, 0)
}

// NewEncoderOpts creates a new encoder with the specified options.
func NewEncoderOpts(w Writer, opts EncoderOpts) *Encoder {
	return &Encoder{
		w:    w,
		opts: opts,
	}
}

// NewTextEncoder creates a new text Encoder.
func NewTextEncoder(w io.Writer) *Encoder {
	return NewEncoder(NewTextWriter(w))
}

// Encode marshals the given value, writing it to the underlying writer.
func (m *Encoder) Encode(v interface{}) error {
	return m.encodeValue(reflect.ValueOf(v), hintNone, 0)
}

// Finish finishes writing the current stream of values.
func (m *Encoder) Finish() error {
	return m.w.Finish()
}

// encodeValue recursively encodes a value.
func (m *Encoder) encodeValue(v reflect.Value, h hint, depth int) error {
	if !v.IsValid() {
		return m.w.WriteNil()
	}
	if depth > DefaultMaxDepth {
		return ErrTooDeeplyNested
	}

	t := v.Type()
	if (t.Kind() == reflect.Ptr || t.Kind() == reflect.Interface) && v.IsNil() {
		return m.w.WriteNil()
	}

	switch t {
	case sexpType:
		s := v.Interface().(Sexp)
		return s.MarshalSexp(m.w)
	case atomType:
		return m.encodeAtom(v.Interface().(Atom))
	case numberType:
		return v.Interface().(Number).writeTo(m.w)
	case bigIntType:
		return m.encodeBigInt(v)
	case decimalType:
		return m.encodeDecimal(v.Interface().(decimal.Decimal))
	}

	if t.Kind() != reflect.Ptr && v.CanAddr() && reflect.PtrTo(t).Implements(marshalerType) {
		return v.Addr().Interface().(Marshaler).MarshalSexp(m.w)
	}
	if t.Implements(marshalerType) {
		return v.Interface().(Marshaler).MarshalSexp(m.w)
	}

	if t.Kind() != reflect.Ptr && t.Kind() != reflect.Interface {
		if t.Implements(variantType) {
			return m.encodeVariant(v, v.Interface().(Variant).SexpVariant(), depth)
		}
		if v.CanAddr() && reflect.PtrTo(t).Implements(variantType) {
			return m.encodeVariant(v, v.Addr().Interface().(Variant).SexpVariant(), depth)
		}
	}

	return m.encodeKind(v, h, depth)
}

// encodeKind encodes a value according to its reflect.Kind.
func (m *Encoder) encodeKind(v reflect.Value, h hint, depth int) error {
	switch v.Kind() {
	case reflect.Bool:
		return m.w.WriteBool(v.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return m.w.WriteInt(v.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return m.w.WriteUint(v.Uint())

	case reflect.Float32, reflect.Float64:
		return m.w.WriteFloat(v.Float())

	case reflect.String:
		switch h {
		case hintSymbol:
			return m.w.WriteSymbol(v.String())
		case hintKeyword:
			return m.w.WriteKeyword(v.String())
		}
		return m.w.WriteString(v.String())

	case reflect.Interface, reflect.Ptr:
		return m.encodeValue(v.Elem(), h, depth+1)

	case reflect.Struct:
		return m.encodeStruct(v, depth)

	case reflect.Map:
		return m.encodeMap(v, h, depth)

	case reflect.Slice:
		if v.IsNil() {
			return m.w.WriteNil()
		}
		return m.encodeArray(v, h, depth)

	case reflect.Array:
		return m.encodeArray(v, h, depth)

	default:
		return &UnsupportedTypeError{v.Type()}
	}
}

func (m *Encoder) encodeAtom(a Atom) error {
	switch a.kind {
	case KeywordAtom:
		return m.w.WriteKeyword(a.text)
	case StringAtom:
		return m.w.WriteString(a.text)
	default:
		return m.w.WriteSymbol(a.text)
	}
}

// encodeBigInt encodes a math/big.Int that fits in 64 bits.
func (m *Encoder) encodeBigInt(v reflect.Value) error {
	var b *big.Int
	if v.CanAddr() {
		b = v.Addr().Interface().(*big.Int)
	} else {
		bv := v.Interface().(big.Int)
		b = &bv
	}

	switch {
	case b.IsInt64():
		return m.w.WriteInt(b.Int64())
	case b.IsUint64():
		return m.w.WriteUint(b.Uint64())
	}
	return errors.Errorf("sexpr: integer %v does not fit in 64 bits", b)
}

// encodeDecimal encodes a decimal as an integer when it has no fractional
// part, and as a float otherwise.
func (m *Encoder) encodeDecimal(d decimal.Decimal) error {
	if i := d.IntPart(); d.Equal(decimal.New(i, 0)) {
		return m.w.WriteInt(i)
	}
	f, _ := d.Float64()
	return m.w.WriteFloat(f)
}

// encodeStruct encodes a struct as a list of (name value) entries. A struct
// with no fields is the unit value ().
func (m *Encoder) encodeStruct(v reflect.Value, depth int) error {
	fields := fieldsFor(v.Type())
	if len(fields) == 0 {
		return m.w.WriteNil()
	}

	if err := m.w.BeginList(); err != nil {
		return err
	}
	if err := m.encodeFields(v, fields, depth); err != nil {
		return err
	}
	return m.w.EndList()
}

// encodeFields writes one (name value) list per field.
func (m *Encoder) encodeFields(v reflect.Value, fields []field, depth int) error {
FieldLoop:
	for i := range fields {
		f := &fields[i]

		fv := v
		for _, i := range f.path {
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					continue FieldLoop
				}
				fv = fv.Elem()
			}
			fv = fv.Field(i)
		}

		if f.omitEmpty && emptyValue(fv) {
			continue
		}

		if err := m.w.BeginList(); err != nil {
			return err
		}
		if err := m.w.WriteSymbol(f.name); err != nil {
			return err
		}
		if err := m.encodeValue(fv, f.hint, depth+1); err != nil {
			return err
		}
		if err := m.w.EndList(); err != nil {
			return err
		}
	}
	return nil
}

// encodeVariant encodes one alternative of a sum type.
func (m *Encoder) encodeVariant(v reflect.Value, name string, depth int) error {
	var fields []field
	if v.Kind() == reflect.Struct {
		fields = fieldsFor(v.Type())
		if len(fields) == 0 {
			return m.w.WriteString(name)
		}
	}

	if err := m.w.BeginList(); err != nil {
		return err
	}
	if err := m.w.BeginList(); err != nil {
		return err
	}
	if err := m.w.WriteSymbol("variant"); err != nil {
		return err
	}
	if err := m.w.WriteString(name); err != nil {
		return err
	}
	if err := m.w.EndList(); err != nil {
		return err
	}

	switch v.Kind() {
	case reflect.Struct:
		if err := m.encodeFields(v, fields, depth); err != nil {
			return err
		}
	case reflect.Slice, reflect.Array:
		if err := m.encodeElems(v, hintNone, depth); err != nil {
			return err
		}
	default:
		if err := m.encodeKind(v, hintNone, depth+1); err != nil {
			return err
		}
	}

	return m.w.EndList()
}

// encodeMap encodes a map as a list of (key . value) pairs.
func (m *Encoder) encodeMap(v reflect.Value, h hint, depth int) error {
	if v.IsNil() {
		return m.w.WriteNil()
	}

	keys, err := keysFor(v)
	if err != nil {
		return err
	}
	if m.opts&EncodeSortMaps != 0 {
		sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	}

	if err := m.w.BeginList(); err != nil {
		return err
	}
	for _, key := range keys {
		if err := m.w.BeginPair(); err != nil {
			return err
		}
		if err := key.writeTo(m.w); err != nil {
			return err
		}
		if err := m.encodeValue(v.MapIndex(key.v), h, depth+1); err != nil {
			return err
		}
		if err := m.w.EndPair(); err != nil {
			return err
		}
	}
	return m.w.EndList()
}

// A mapkey holds the reflective map key value as well as its stringified form.
type mapkey struct {
	v reflect.Value
	s string
}

func (k mapkey) less(o mapkey) bool {
	switch k.v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return k.v.Int() < o.v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return k.v.Uint() < o.v.Uint()
	}
	return k.s < o.s
}

func (k mapkey) writeTo(w Writer) error {
	switch k.v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return w.WriteInt(k.v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return w.WriteUint(k.v.Uint())
	}
	return w.WriteString(k.s)
}

// keysFor returns the stringified keys for the given map. Only string and
// integer keys are supported.
func keysFor(v reflect.Value) ([]mapkey, error) {
	keys := v.MapKeys()
	res := make([]mapkey, len(keys))

	for i, key := range keys {
		var s string
		switch key.Kind() {
		case reflect.String:
			s = key.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			s = strconv.FormatInt(key.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			s = strconv.FormatUint(key.Uint(), 10)
		default:
			return nil, &UnsupportedTypeError{v.Type()}
		}
		res[i] = mapkey{v: key, s: s}
	}

	return res, nil
}

// encodeArray encodes a slice or array as a list.
func (m *Encoder) encodeArray(v reflect.Value, h hint, depth int) error {
	if err := m.w.BeginList(); err != nil {
		return err
	}
	if err := m.encodeElems(v, h, depth); err != nil {
		return err
	}
	return m.w.EndList()
}

func (m *Encoder) encodeElems(v reflect.Value, h hint, depth int) error {
	for i := 0; i < v.Len(); i++ {
		if err := m.encodeValue(v.Index(i), h, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// emptyValue returns true if the given value is the empty value for its type.
func emptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
