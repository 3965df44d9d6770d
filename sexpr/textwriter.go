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
	"io"
	"math"
	"strconv"
	"strings"
)

// TextWriterOpts defines a set of bit flag options for text writers.
type TextWriterOpts uint8

const (
	// TextWriterQuietFinish disables emiting a newline in Finish(). Convenient if you
	// know you're only emiting one value; dangerous if there's a chance you're going
	// to emit another value using the same Writer.
	TextWriterQuietFinish TextWriterOpts = 1

	// TextWriterPretty enables pretty-printing mode: list elements after the
	// first go on their own indented line.
	TextWriterPretty TextWriterOpts = 2
)

// textWriter is a writer that writes human-readable text
type textWriter struct {
	writer
	out            io.Writer
	opts           TextWriterOpts
	needsSeparator bool
	emptyStream    bool
}

// NewTextWriter returns a new text writer.
func NewTextWriter(out io.Writer) Writer {
	return NewTextWriterOpts(out, 0)
}

// NewTextWriterOpts returns a new text writer with the given options.
func NewTextWriterOpts(out io.Writer, opts TextWriterOpts) Writer {
	return &textWriter{
		out:         out,
		opts:        opts,
		emptyStream: true,
	}
}

// WriteNil writes ().
func (w *textWriter) WriteNil() error {
	return w.writeValue("Writer.WriteNil", "()")
}

// WriteBool writes #t or #f.
func (w *textWriter) WriteBool(val bool) error {
	str := "#f"
	if val {
		str = "#t"
	}
	return w.writeValue("Writer.WriteBool", str)
}

// WriteInt writes an integer value.
func (w *textWriter) WriteInt(val int64) error {
	return w.writeValue("Writer.WriteInt", strconv.FormatInt(val, 10))
}

// WriteUint writes an unsigned integer value.
func (w *textWriter) WriteUint(val uint64) error {
	return w.writeValue("Writer.WriteUint", strconv.FormatUint(val, 10))
}

// WriteFloat writes a floating-point value.
func (w *textWriter) WriteFloat(val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return w.writeValue("Writer.WriteFloat", "()")
	}
	return w.writeValue("Writer.WriteFloat", formatFloat(val))
}

// WriteString writes a string.
func (w *textWriter) WriteString(val string) error {
	if w.err != nil {
		return w.err
	}
	if w.err = w.beginValue("Writer.WriteString"); w.err != nil {
		return w.err
	}
	if w.err = writeQuotedString(val, w.out); w.err != nil {
		return w.err
	}

	w.endValue()
	return nil
}

// WriteSymbol writes a symbol.
func (w *textWriter) WriteSymbol(val string) error {
	if w.err != nil {
		return w.err
	}
	if w.err = w.beginValue("Writer.WriteSymbol"); w.err != nil {
		return w.err
	}
	if w.err = writeSymbol(val, w.out); w.err != nil {
		return w.err
	}

	w.endValue()
	return nil
}

// WriteKeyword writes a keyword as #:name. The name must read back as a
// single token.
func (w *textWriter) WriteKeyword(val string) error {
	if w.err != nil {
		return w.err
	}
	if breaksToken(val) {
		w.err = &UsageError{"Writer.WriteKeyword", fmt.Sprintf("keyword %q is not a single token", val)}
		return w.err
	}
	if w.err = w.beginValue("Writer.WriteKeyword"); w.err != nil {
		return w.err
	}
	if w.err = writeRawString(KeywordPrefix, w.out); w.err != nil {
		return w.err
	}
	if w.err = writeRawString(val, w.out); w.err != nil {
		return w.err
	}

	w.endValue()
	return nil
}

// BeginList begins writing a list.
func (w *textWriter) BeginList() error {
	if w.err == nil {
		w.err = w.begin("Writer.BeginList", ctxInList)
	}
	return w.err
}

// EndList finishes writing a list.
func (w *textWriter) EndList() error {
	if w.err == nil {
		w.err = w.end("Writer.EndList", ctxInList)
	}
	return w.err
}

// BeginPair begins writing a pair.
func (w *textWriter) BeginPair() error {
	if w.err == nil {
		w.err = w.begin("Writer.BeginPair", ctxInPair)
	}
	return w.err
}

// EndPair finishes writing a pair. An empty pair is written (()).
func (w *textWriter) EndPair() error {
	if w.err == nil {
		w.err = w.end("Writer.EndPair", ctxInPair)
	}
	return w.err
}

// Finish finishes writing the current stream of values.
func (w *textWriter) Finish() error {
	if w.err != nil {
		return w.err
	}
	if err := w.checkFinish("Writer.Finish"); err != nil {
		return err
	}

	if !w.emptyStream && w.opts&TextWriterQuietFinish == 0 {
		if w.err = writeRawChar('\n', w.out); w.err != nil {
			return w.err
		}
	}
	w.needsSeparator = false
	w.emptyStream = true
	return nil
}

// pretty returns true if we're pretty-printing.
func (w *textWriter) pretty() bool {
	return w.opts&TextWriterPretty == TextWriterPretty
}

// writeValue writes a preformatted value to the output stream.
func (w *textWriter) writeValue(api string, val string) error {
	if w.err != nil {
		return w.err
	}
	if w.err = w.beginValue(api); w.err != nil {
		return w.err
	}
	if w.err = writeRawString(val, w.out); w.err != nil {
		return w.err
	}

	w.endValue()
	return nil
}

// beginValue writes out whatever has to come between the previous value
// and this one.
func (w *textWriter) beginValue(api string) error {
	if err := w.checkSlot(api); err != nil {
		return err
	}

	if w.ctx.peek() == ctxInPair {
		if w.ctx.count() == 1 {
			return writeRawString(" . ", w.out)
		}
		return nil
	}

	if w.needsSeparator {
		return w.writeSeparator()
	}
	return nil
}

// endValue bookkeeps after a value is written.
func (w *textWriter) endValue() {
	w.ctx.incr()
	w.needsSeparator = true
	w.emptyStream = false
}

// writeSeparator writes out the character or characters that separate values.
func (w *textWriter) writeSeparator() error {
	if w.ctx.peek() == ctxAtTopLevel {
		return writeRawChar('\n', w.out)
	}
	if w.pretty() {
		return writeRawString("\n"+strings.Repeat("  ", w.ctx.depth()), w.out)
	}
	return writeRawChar(' ', w.out)
}

// begin starts writing a container.
func (w *textWriter) begin(api string, c ctx) error {
	if err := w.beginValue(api); err != nil {
		return err
	}
	if err := writeRawChar('(', w.out); err != nil {
		return err
	}

	w.ctx.push(c)
	w.needsSeparator = false
	return nil
}

// end finishes writing a container.
func (w *textWriter) end(api string, c ctx) error {
	if err := w.checkEnd(api, c); err != nil {
		return err
	}
	if c == ctxInPair && w.ctx.count() == 0 {
		if err := writeRawString("()", w.out); err != nil {
			return err
		}
	}
	w.ctx.pop()

	if err := writeRawChar(')', w.out); err != nil {
		return err
	}

	w.endValue()
	return nil
}
