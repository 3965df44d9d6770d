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

import "fmt"

// A Writer writes a stream of S-expression values.
//
// The various Write methods write atomic values to the current output stream. The
// Begin methods begin writing a list or a pair. Subsequent calls to Write will
// write values inside of the container until a matching End method is called.
//
//	var w Writer
//	w.BeginList()
//	{
//		w.WriteSymbol("+")
//		w.WriteInt(1)
//		w.WriteInt(1)
//	}
//	w.EndList()
//
// A pair holds at most two values, its car and its cdr:
//
//	w.BeginPair()
//	{
//		w.WriteSymbol("name")
//		w.WriteString("value")
//	}
//	w.EndPair()
//
// When you're done writing values, you should call Finish to ensure everything has
// been flushed. While individual methods all return an error on failure,
// implementations will remember any errors, no-op subsequent calls, and return
// the previous error. This lets you keep code a bit cleaner by only checking
// the return value of the final method call (generally Finish).
type Writer interface {
	// WriteNil writes the empty value ().
	WriteNil() error

	// WriteBool writes a boolean value.
	WriteBool(val bool) error

	// WriteInt writes an integer value.
	WriteInt(val int64) error

	// WriteUint writes an unsigned integer value.
	WriteUint(val uint64) error

	// WriteFloat writes a floating-point value. Non-finite values are written as ().
	WriteFloat(val float64) error

	// WriteString writes a string atom.
	WriteString(val string) error

	// WriteSymbol writes a symbol atom.
	WriteSymbol(val string) error

	// WriteKeyword writes a keyword atom.
	WriteKeyword(val string) error

	// BeginList begins writing a list value.
	BeginList() error

	// EndList finishes writing a list value.
	EndList() error

	// BeginPair begins writing a dotted pair.
	BeginPair() error

	// EndPair finishes writing a dotted pair.
	EndPair() error

	// Finish finishes writing values and flushes any buffered data.
	Finish() error
}

// A writer holds shared stuff for all writers.
type writer struct {
	ctx ctxstack
	err error
}

// checkSlot returns an error if the current container cannot take another value.
func (w *writer) checkSlot(api string) error {
	if w.ctx.peek() == ctxInPair && w.ctx.count() >= 2 {
		return &UsageError{api, "pair already holds two values"}
	}
	return nil
}

// checkEnd returns an error if the current container is not a c.
func (w *writer) checkEnd(api string, c ctx) error {
	if w.ctx.peek() != c {
		return &UsageError{api, fmt.Sprintf("not in a %v", c)}
	}
	return nil
}

// checkFinish returns an error if a container is still open.
func (w *writer) checkFinish(api string) error {
	if w.ctx.peek() != ctxAtTopLevel {
		return &UsageError{api, "not at top level"}
	}
	return nil
}
