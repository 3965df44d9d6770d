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
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNoInput is returned when there is no input to decode.
	ErrNoInput = errors.New("sexpr: no input to decode")

	// ErrNotFound is returned by the list searches when nothing matches.
	ErrNotFound = errors.New("sexpr: not found")

	// ErrContainerNotList is returned by IntoMap when called on anything but a list.
	ErrContainerNotList = errors.New("sexpr: container sexp is not a list")

	// ErrKeyValueMustBePair is returned by IntoMap when an alist entry is not
	// a pair with a present car.
	ErrKeyValueMustBePair = errors.New("sexpr: key/value entry must be a pair")

	// ErrTooDeeplyNested is returned by the Encoder and Decoder when a value
	// nests deeper than they are willing to follow.
	ErrTooDeeplyNested = errors.New("sexpr: value too deeply nested")
)

// An ErrorCode identifies the kind of a SyntaxError.
type ErrorCode uint8

const (
	// InvalidSyntax is a token that cannot start or continue a value.
	InvalidSyntax ErrorCode = iota + 1
	// InvalidAtom is an empty atom or keyword.
	InvalidAtom
	// InvalidNumber is a malformed or out of range numeric literal.
	InvalidNumber
	// InvalidEscape is an unknown backslash escape inside a string.
	InvalidEscape
	// MissingCloseParen is a dotted list with other than one value after the dot.
	MissingCloseParen
	// UnbalancedClosingParen is a close bracket of the wrong kind.
	UnbalancedClosingParen
	// UnrecognizedBase64 is a pipe-delimited region that is not valid base64.
	UnrecognizedBase64
	// UnrecognizedHex is an unknown radix marker after '#'.
	UnrecognizedHex
	// UnexpectedEndOfHexEscape is a radix marker with no digits after it.
	UnexpectedEndOfHexEscape
	// UnexpectedEndOfList is a close bracket with no list open.
	UnexpectedEndOfList
	// EOFWhileParsingAtom is end of input in the middle of an atom.
	EOFWhileParsingAtom
	// EOFWhileParsingList is end of input before a list was closed.
	EOFWhileParsingList
	// EOFWhileParsingValue is end of input where a value was expected.
	EOFWhileParsingValue
	// EOFWhileParsingNumeric is end of input in the middle of a number.
	EOFWhileParsingNumeric
	// EOFWhileParsingString is end of input before a string was closed.
	EOFWhileParsingString
	// ControlCharacterInString is a raw control character inside a string.
	ControlCharacterInString
	// TrailingCharacters is input left over after a complete value.
	TrailingCharacters
	// TooDeeplyNested is nesting beyond ParseConfig.MaxDepth.
	TooDeeplyNested
)

func (c ErrorCode) String() string {
	switch c {
	case InvalidSyntax:
		return "invalid syntax"
	case InvalidAtom:
		return "invalid atom"
	case InvalidNumber:
		return "invalid number"
	case InvalidEscape:
		return "invalid escape"
	case MissingCloseParen:
		return "missing close paren"
	case UnbalancedClosingParen:
		return "unbalanced closing paren"
	case UnrecognizedBase64:
		return "unrecognized base64"
	case UnrecognizedHex:
		return "unrecognized hex"
	case UnexpectedEndOfHexEscape:
		return "unexpected end of hex escape"
	case UnexpectedEndOfList:
		return "unexpected end of list"
	case EOFWhileParsingAtom:
		return "EOF while parsing atom"
	case EOFWhileParsingList:
		return "EOF while parsing list"
	case EOFWhileParsingValue:
		return "EOF while parsing value"
	case EOFWhileParsingNumeric:
		return "EOF while parsing numeric"
	case EOFWhileParsingString:
		return "EOF while parsing string"
	case ControlCharacterInString:
		return "control character in string"
	case TrailingCharacters:
		return "trailing characters"
	case TooDeeplyNested:
		return "too deeply nested"
	default:
		return fmt.Sprintf("<unknown error code %v>", uint8(c))
	}
}

// A SyntaxError is returned when a Parser encounters invalid input. Line and
// Col are 1-based and point at the offending character.
type SyntaxError struct {
	Code ErrorCode
	Line int
	Col  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sexpr: syntax error: %v (line %v, column %v)", e.Code, e.Line, e.Col)
}

// A UsageError is returned when you use a Writer in an inappropriate way.
type UsageError struct {
	API string
	Msg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("sexpr: usage error in %v: %v", e.API, e.Msg)
}

// An IOError is returned when there is an error reading from or writing to an
// underlying io.Reader or io.Writer.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("sexpr: i/o error: %v", e.Err)
}

// Unwrap returns the underlying i/o error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// A TypeError is returned when an operation is applied to a Sexp of the wrong type.
type TypeError struct {
	Op        string
	Expecting Type
	Have      Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("sexpr: %v: expecting %v, have %v", e.Op, e.Expecting, e.Have)
}

// A DuplicateKeyError is returned by IntoMap when two entries share a key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("sexpr: duplicate key %q", e.Key)
}

// An UnmarshalTypeError is returned when a Sexp cannot be decoded into the
// requested Go type.
type UnmarshalTypeError struct {
	Value string
	Type  reflect.Type
}

func (e *UnmarshalTypeError) Error() string {
	return fmt.Sprintf("sexpr: cannot decode %v to %v", e.Value, e.Type)
}

// An UnsupportedTypeError is returned when the Encoder meets a Go type it has
// no rendering for.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("sexpr: unsupported type: %v", e.Type)
}

// An UnsupportedShapeError is returned when a Sexp has a shape the Decoder
// cannot map onto the requested Go type, e.g. a dotted chain into a struct.
type UnsupportedShapeError struct {
	Shape string
	Type  reflect.Type
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("sexpr: unsupported shape %v for %v", e.Shape, e.Type)
}

// A LengthError is returned when a fixed-arity target is decoded from a list
// of a different length.
type LengthError struct {
	Want int
	Have int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("sexpr: invalid length %v, expected %v", e.Have, e.Want)
}

// A MissingFieldError is returned when a struct field tagged required is
// absent from the decoded field list.
type MissingFieldError struct {
	Field string
	Type  reflect.Type
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("sexpr: missing field %q decoding %v", e.Field, e.Type)
}

// An UnknownVariantError is returned when a variant name does not match any
// variant the target type accepts.
type UnknownVariantError struct {
	Variant  string
	Expected []string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("sexpr: unknown variant %q, expected one of [%v]", e.Variant, strings.Join(e.Expected, " "))
}
