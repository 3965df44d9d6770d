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
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Unmarshaler is the interface implemented by types that can unmarshal
// themselves from a Sexp tree.
type Unmarshaler interface {
	UnmarshalSexp(s *Sexp) error
}

var unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()

// Unmarshal parses the single value in data, in the Standard dialect, and
// stores it in the value pointed to by v. Anything but whitespace and
// comments after the value is a TrailingCharacters error; use a Decoder to
// read a stream of values.
//
//	var p struct {
//		X int `sexp:"x"`
//		Y int `sexp:"y"`
//	}
//	err := UnmarshalString("((x 1) (y 2))", &p)
//	if err != nil {
//		return err
//	}
//	fmt.Println(p) // prints out: {1 2}
//
// Decoding is driven by the Go type of the target:
//
//	Go target                          accepted S-expression
//	--------------------------         ---------------
//	pointer, slice, map                () sets nil
//	bool                               #t / #f
//	ints, uints, big.Int               integer that fits
//	floats, decimal.Decimal            any number
//	string                             any atom
//	slice                              list
//	array                              list of exactly the same length
//	map                                list of (key . value) or (key value)
//	struct                             list of (name value) or (name . value)
//	Variant                            "Name" or ((variant "Name") ...)
//	interface{}                        anything, see Decoder.Decode
//	Sexp, *Sexp                        anything, copied
func Unmarshal(data []byte, v interface{}) error {
	return UnmarshalConfig(data, Standard(), v)
}

// UnmarshalString is Unmarshal for a string.
func UnmarshalString(data string, v interface{}) error {
	return Unmarshal([]byte(data), v)
}

// UnmarshalConfig is Unmarshal for a given dialect.
func UnmarshalConfig(data []byte, cfg ParseConfig, v interface{}) error {
	d := NewDecoder(bytes.NewReader(data), cfg)
	s, err := d.next()
	if err != nil {
		return err
	}
	if err := d.p.end(); err != nil {
		return err
	}
	return d.DecodeValueTo(s, v)
}

// FromValue stores the Go form of the tree s in the value pointed to by v.
func FromValue(s *Sexp, v interface{}) error {
	d := Decoder{}
	return d.DecodeValueTo(s, v)
}

// A Decoder decodes Go values from S-expressions.
type Decoder struct {
	p        *Parser
	variants map[string]reflect.Type
}

// NewDecoder creates a decoder that parses in with the given dialect.
func NewDecoder(in io.Reader, cfg ParseConfig) *Decoder {
	return &Decoder{p: NewParser(in, cfg)}
}

// NewTextDecoder creates a decoder that parses in in the Standard dialect.
func NewTextDecoder(in io.Reader) *Decoder {
	return NewDecoder(in, Standard())
}

// RegisterVariants teaches the decoder the alternatives it may store in a
// non-empty interface target. Each is looked up by its SexpVariant name and
// must implement the target interface; pass pointers to register pointer
// alternatives.
func (d *Decoder) RegisterVariants(vs ...Variant) {
	if d.variants == nil {
		d.variants = map[string]reflect.Type{}
	}
	for _, v := range vs {
		d.variants[v.SexpVariant()] = reflect.TypeOf(v)
	}
}

func (d *Decoder) next() (*Sexp, error) {
	if d.p == nil {
		return nil, ErrNoInput
	}
	s, err := d.p.Next()
	if err == io.EOF {
		return nil, ErrNoInput
	}
	return s, err
}

// Decode decodes the next value without any expectations about what it's
// going to get. Nil becomes nil, booleans bool, numbers uint64, int64
// (negative integers only) or float64, atoms string, and lists and pairs
// []interface{}.
func (d *Decoder) Decode() (interface{}, error) {
	s, err := d.next()
	if err != nil {
		return nil, err
	}
	return d.decode(s, 0)
}

// DecodeValue is Decode for a tree that has already been parsed.
func (d *Decoder) DecodeValue(s *Sexp) (interface{}, error) {
	return d.decode(s, 0)
}

func (d *Decoder) decode(s *Sexp, depth int) (interface{}, error) {
	if depth > DefaultMaxDepth {
		return nil, ErrTooDeeplyNested
	}

	switch s.typ {
	case NilType:
		return nil, nil

	case BoolType:
		return s.b, nil

	case NumberType:
		return decodeNumber(s.num), nil

	case AtomType:
		return s.atom.text, nil

	case PairType:
		res := make([]interface{}, 0, 2)
		if s.car != nil || s.cdr != nil {
			car, err := d.decodeSlot(s.car, depth)
			if err != nil {
				return nil, err
			}
			res = append(res, car)
		}
		if s.cdr != nil {
			cdr, err := d.decode(s.cdr, depth+1)
			if err != nil {
				return nil, err
			}
			res = append(res, cdr)
		}
		return res, nil

	case ListType:
		res := make([]interface{}, 0, len(s.list))
		for _, e := range s.list {
			val, err := d.decode(e, depth+1)
			if err != nil {
				return nil, err
			}
			res = append(res, val)
		}
		return res, nil
	}

	return nil, errors.Errorf("sexpr: cannot recognize type %v", s.typ)
}

func (d *Decoder) decodeSlot(s *Sexp, depth int) (interface{}, error) {
	if s == nil {
		return nil, nil
	}
	return d.decode(s, depth+1)
}

func decodeNumber(n Number) interface{} {
	switch n.kind {
	case posInt:
		return n.u
	case negInt:
		return n.i
	}
	return n.f
}

// DecodeTo decodes the next value into the value pointed to by v.
func (d *Decoder) DecodeTo(v interface{}) error {
	s, err := d.next()
	if err != nil {
		return err
	}
	return d.DecodeValueTo(s, v)
}

// DecodeValueTo decodes an already-parsed tree into the value pointed to by v.
func (d *Decoder) DecodeValueTo(s *Sexp, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return errors.New("sexpr: v must be a pointer")
	}
	if rv.IsNil() {
		return errors.New("sexpr: v must not be nil")
	}
	if s == nil {
		return ErrNoInput
	}

	return d.decodeTo(s, rv, 0)
}

// isNullish returns true for the values that decode to a zero value: Nil
// and the empty list, both written ().
func isNullish(s *Sexp) bool {
	return s.typ == NilType || (s.typ == ListType && len(s.list) == 0)
}

var sexpPtrType = reflect.PtrTo(sexpType)

func (d *Decoder) decodeTo(s *Sexp, v reflect.Value, depth int) error {
	if !v.IsValid() {
		// Don't actually have anywhere to put this value; skip it.
		return nil
	}
	if depth > DefaultMaxDepth {
		return ErrTooDeeplyNested
	}

	if v.CanSet() {
		switch v.Type() {
		case sexpType:
			v.Set(reflect.ValueOf(*s.Clone()))
			return nil
		case sexpPtrType:
			v.Set(reflect.ValueOf(s.Clone()))
			return nil
		}
	}

	isNull := isNullish(s)
	v = indirect(v, isNull)

	t := v.Type()
	if t.Kind() != reflect.Ptr && v.CanAddr() && reflect.PtrTo(t).Implements(unmarshalerType) {
		return v.Addr().Interface().(Unmarshaler).UnmarshalSexp(s)
	}
	if t == sexpType {
		v.Set(reflect.ValueOf(*s.Clone()))
		return nil
	}

	if isNull {
		if t.Kind() == reflect.Array && t.Len() != 0 {
			return &LengthError{Want: t.Len(), Have: 0}
		}
		if s.typ == ListType && t.Kind() == reflect.Slice {
			v.Set(reflect.MakeSlice(t, 0, 0))
			return nil
		}
		v.Set(reflect.Zero(t))
		return nil
	}

	switch s.typ {
	case BoolType:
		return d.decodeBoolTo(s, v)

	case NumberType:
		return d.decodeNumberTo(s, v)

	case AtomType:
		return d.decodeAtomTo(s, v)

	case ListType:
		return d.decodeListTo(s, v, depth)

	case PairType:
		return d.decodePairTo(s, v, depth)
	}

	return errors.Errorf("sexpr: cannot recognize type %v", s.typ)
}

// setAny stores the generic form of s in an empty interface. It reports
// false if v is not an empty interface.
func (d *Decoder) setAny(s *Sexp, v reflect.Value, depth int) (bool, error) {
	if v.Kind() != reflect.Interface || v.NumMethod() != 0 {
		return false, nil
	}
	val, err := d.decode(s, depth)
	if err != nil {
		return true, err
	}
	if val == nil {
		v.Set(reflect.Zero(v.Type()))
	} else {
		v.Set(reflect.ValueOf(val))
	}
	return true, nil
}

func (d *Decoder) decodeBoolTo(s *Sexp, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		v.SetBool(s.b)
		return nil

	case reflect.Interface:
		if v.NumMethod() == 0 {
			v.Set(reflect.ValueOf(s.b))
			return nil
		}
	}
	return typeError(s, v)
}

func (d *Decoder) decodeNumberTo(s *Sexp, v reflect.Value) error {
	n := s.num

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := n.Int64()
		if !ok || v.OverflowInt(i) {
			return typeError(s, v)
		}
		v.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, ok := n.Uint64()
		if !ok || v.OverflowUint(u) {
			return typeError(s, v)
		}
		v.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f := n.Float64()
		if v.OverflowFloat(f) {
			return typeError(s, v)
		}
		v.SetFloat(f)
		return nil

	case reflect.Struct:
		switch v.Type() {
		case numberType:
			v.Set(reflect.ValueOf(n))
			return nil

		case bigIntType:
			b := big.Int{}
			switch n.kind {
			case posInt:
				b.SetUint64(n.u)
			case negInt:
				b.SetInt64(n.i)
			default:
				return typeError(s, v)
			}
			v.Set(reflect.ValueOf(b))
			return nil

		case decimalType:
			var dec decimal.Decimal
			switch n.kind {
			case posInt:
				dec = decimal.NewFromBigInt(new(big.Int).SetUint64(n.u), 0)
			case negInt:
				dec = decimal.New(n.i, 0)
			default:
				dec = decimal.NewFromFloat(n.f)
			}
			v.Set(reflect.ValueOf(dec))
			return nil
		}

	case reflect.Interface:
		if v.NumMethod() == 0 {
			v.Set(reflect.ValueOf(decodeNumber(n)))
			return nil
		}
	}
	return typeError(s, v)
}

func (d *Decoder) decodeAtomTo(s *Sexp, v reflect.Value) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s.atom.text)
		return nil

	case reflect.Struct:
		if v.Type() == atomType {
			v.Set(reflect.ValueOf(s.atom))
			return nil
		}

	case reflect.Interface:
		if v.NumMethod() == 0 {
			v.Set(reflect.ValueOf(s.atom.text))
			return nil
		}
		return d.decodeInterfaceVariant(s, v, 0)
	}

	if _, ok := variantName(v); ok {
		return d.decodeVariantTo(s, v, 0)
	}
	return typeError(s, v)
}

func (d *Decoder) decodeListTo(s *Sexp, v reflect.Value, depth int) error {
	if _, ok := variantName(v); ok {
		return d.decodeVariantTo(s, v, depth)
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return d.decodeElemsTo(s.list, v, depth)

	case reflect.Map:
		return d.decodeEntriesTo(s.list, v, depth)

	case reflect.Struct:
		switch v.Type() {
		case atomType, numberType, bigIntType, decimalType:
			return typeError(s, v)
		}
		return d.decodeFieldsTo(s.list, v, depth)

	case reflect.Interface:
		if ok, err := d.setAny(s, v, depth); ok {
			return err
		}
		return d.decodeInterfaceVariant(s, v, depth)
	}
	return typeError(s, v)
}

// decodePairTo decodes a pair as the sequence of its present slots, or as a
// single map entry.
func (d *Decoder) decodePairTo(s *Sexp, v reflect.Value, depth int) error {
	var elems []*Sexp
	if s.car != nil || s.cdr != nil {
		car := s.car
		if car == nil {
			car = NewNil()
		}
		elems = append(elems, car)
	}
	if s.cdr != nil {
		elems = append(elems, s.cdr)
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return d.decodeElemsTo(elems, v, depth)

	case reflect.Map:
		return d.decodeEntriesTo([]*Sexp{s}, v, depth)

	case reflect.Interface:
		if ok, err := d.setAny(s, v, depth); ok {
			return err
		}
	}
	return &UnsupportedShapeError{Shape: "pair " + s.String(), Type: v.Type()}
}

// A seqAccess hands out the elements of a list one at a time, and checks
// at the end that the visitor took all of them.
type seqAccess struct {
	elems []*Sexp
	i     int
}

func (a *seqAccess) next() (*Sexp, bool) {
	if a.i >= len(a.elems) {
		return nil, false
	}
	e := a.elems[a.i]
	a.i++
	return e, true
}

func (a *seqAccess) remaining() int {
	return len(a.elems) - a.i
}

// end fails if elements remain unconsumed.
func (a *seqAccess) end() error {
	if n := a.remaining(); n != 0 {
		return &LengthError{Want: a.i, Have: len(a.elems)}
	}
	return nil
}

// decodeElemsTo decodes a sequence into a slice or array. Arrays take
// exactly as many elements as they have slots.
func (d *Decoder) decodeElemsTo(elems []*Sexp, v reflect.Value, depth int) error {
	seq := seqAccess{elems: elems}

	if v.Kind() == reflect.Array {
		if len(elems) < v.Len() {
			return &LengthError{Want: v.Len(), Have: len(elems)}
		}
		for i := 0; i < v.Len(); i++ {
			e, _ := seq.next()
			if err := d.decodeTo(e, v.Index(i), depth+1); err != nil {
				return err
			}
		}
		return seq.end()
	}

	res := reflect.MakeSlice(v.Type(), len(elems), len(elems))
	for i := 0; ; i++ {
		e, ok := seq.next()
		if !ok {
			break
		}
		if err := d.decodeTo(e, res.Index(i), depth+1); err != nil {
			return err
		}
	}
	if err := seq.end(); err != nil {
		return err
	}

	v.Set(res)
	return nil
}

// decodeEntriesTo decodes an association list into a map.
func (d *Decoder) decodeEntriesTo(elems []*Sexp, v reflect.Value, depth int) error {
	t := v.Type()
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(t, len(elems)))
	}

	for _, e := range elems {
		k, val, ok := entry(e)
		if !ok {
			return &UnsupportedShapeError{Shape: "map entry " + e.String(), Type: t}
		}

		key := reflect.New(t.Key()).Elem()
		if err := d.decodeTo(k, key, depth+1); err != nil {
			return err
		}
		elem := reflect.New(t.Elem()).Elem()
		if err := d.decodeTo(val, elem, depth+1); err != nil {
			return err
		}
		v.SetMapIndex(key, elem)
	}
	return nil
}

// decodeFieldsTo decodes a list of (name value) entries into a struct.
// Unknown names are ignored.
func (d *Decoder) decodeFieldsTo(elems []*Sexp, v reflect.Value, depth int) error {
	fields := fieldsFor(v.Type())
	seen := map[string]bool{}

	for _, e := range elems {
		k, val, ok := entry(e)
		if !ok || k.typ != AtomType {
			return &UnsupportedShapeError{Shape: "struct field " + e.String(), Type: v.Type()}
		}

		f := findField(fields, k.atom.text)
		if f == nil {
			continue
		}
		seen[f.name] = true

		subv, err := findSubvalue(v, f)
		if err != nil {
			return err
		}
		if err := d.decodeTo(val, subv, depth+1); err != nil {
			return errors.Wrapf(err, "field %v", f.name)
		}
	}

	for i := range fields {
		if fields[i].required && !seen[fields[i].name] {
			return &MissingFieldError{Field: fields[i].name, Type: v.Type()}
		}
	}
	return nil
}

// findSubvalue returns the settable value of f within v, allocating any
// nil embedded struct pointers along the way.
func findSubvalue(v reflect.Value, f *field) (reflect.Value, error) {
	for _, i := range f.path {
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, errors.Errorf("sexpr: cannot set embedded pointer to unexported struct %v", v.Type().Elem())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v, nil
}

// variantName returns the SexpVariant name of v's type, if it has one.
func variantName(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		return "", false
	}
	if v.Type().Implements(variantType) {
		return v.Interface().(Variant).SexpVariant(), true
	}
	if v.CanAddr() && reflect.PtrTo(v.Type()).Implements(variantType) {
		return v.Addr().Interface().(Variant).SexpVariant(), true
	}
	return "", false
}

// variantHeader splits ((variant "Name") payload...) into its name and payload.
func variantHeader(s *Sexp) (string, []*Sexp, bool) {
	if s.typ != ListType || len(s.list) == 0 {
		return "", nil, false
	}
	h := s.list[0]
	if h.typ != ListType || len(h.list) != 2 {
		return "", nil, false
	}
	tag, name := h.list[0], h.list[1]
	if tag.typ != AtomType || tag.atom.text != "variant" || name.typ != AtomType {
		return "", nil, false
	}
	return name.atom.text, s.list[1:], true
}

// decodeVariantTo decodes one alternative of a sum type into its concrete type.
func (d *Decoder) decodeVariantTo(s *Sexp, v reflect.Value, depth int) error {
	want, _ := variantName(v)

	if s.typ == AtomType {
		if s.atom.text != want {
			return &UnknownVariantError{Variant: s.atom.text, Expected: []string{want}}
		}
		if v.Kind() == reflect.Struct && len(fieldsFor(v.Type())) == 0 {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		return &UnsupportedShapeError{Shape: "unit variant " + want, Type: v.Type()}
	}

	name, payload, ok := variantHeader(s)
	if !ok {
		return &UnsupportedShapeError{Shape: "variant " + s.String(), Type: v.Type()}
	}
	if name != want {
		return &UnknownVariantError{Variant: name, Expected: []string{want}}
	}

	switch v.Kind() {
	case reflect.Struct:
		return d.decodeFieldsTo(payload, v, depth)
	case reflect.Slice, reflect.Array:
		return d.decodeElemsTo(payload, v, depth)
	}

	seq := seqAccess{elems: payload}
	e, ok := seq.next()
	if !ok {
		return &LengthError{Want: 1, Have: 0}
	}

	var err error
	if v.Kind() == reflect.Map && e.typ == ListType {
		// Decoding through v.Addr() would find the variant again.
		err = d.decodeEntriesTo(e.list, v, depth+1)
	} else {
		err = d.decodeTo(e, v.Addr(), depth+1)
	}
	if err != nil {
		return err
	}
	return seq.end()
}

// decodeInterfaceVariant picks a registered alternative for a non-empty
// interface target by variant name.
func (d *Decoder) decodeInterfaceVariant(s *Sexp, v reflect.Value, depth int) error {
	var name string
	switch {
	case s.typ == AtomType:
		name = s.atom.text
	default:
		n, _, ok := variantHeader(s)
		if !ok {
			return typeError(s, v)
		}
		name = n
	}

	t, ok := d.variants[name]
	if !ok || !t.Implements(v.Type()) {
		return &UnknownVariantError{Variant: name, Expected: d.variantsFor(v.Type())}
	}

	if t.Kind() == reflect.Ptr {
		pv := reflect.New(t.Elem())
		if err := d.decodeVariantTo(s, pv.Elem(), depth); err != nil {
			return err
		}
		v.Set(pv)
		return nil
	}

	nv := reflect.New(t).Elem()
	if err := d.decodeVariantTo(s, nv, depth); err != nil {
		return err
	}
	v.Set(nv)
	return nil
}

// variantsFor lists the registered variant names that implement iface.
func (d *Decoder) variantsFor(iface reflect.Type) []string {
	var names []string
	for name, t := range d.variants {
		if t.Implements(iface) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func typeError(s *Sexp, v reflect.Value) error {
	str := s.String()
	if utf8.RuneCountInString(str) > 40 {
		str = string([]rune(str)[:37]) + "..."
	}
	return &UnmarshalTypeError{Value: s.typ.String() + " " + str, Type: v.Type()}
}

// indirect walks down v allocating pointers as needed, until it gets to a
// non-pointer. If wantPtr is set, it stops at the last pointer so a null
// can set it to nil.
func indirect(v reflect.Value, wantPtr bool) reflect.Value {
	for {
		if v.Kind() == reflect.Interface && !v.IsNil() {
			e := v.Elem()
			if e.Kind() == reflect.Ptr && !e.IsNil() && (!wantPtr || e.Elem().Kind() == reflect.Ptr) {
				v = e
				continue
			}
		}

		if v.Kind() != reflect.Ptr {
			break
		}

		if v.Elem().Kind() != reflect.Ptr && wantPtr && v.CanSet() {
			break
		}

		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}

		v = v.Elem()
	}

	return v
}
