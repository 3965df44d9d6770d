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

// A TreeWriter is a Writer that builds Sexp trees in memory.
type TreeWriter struct {
	writer
	elems [][]*Sexp
	vals  []*Sexp
}

// NewTreeWriter returns an empty TreeWriter.
func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

// Values returns every complete top-level value written so far.
func (w *TreeWriter) Values() []*Sexp {
	return w.vals
}

// Value returns the most recent complete top-level value.
func (w *TreeWriter) Value() (*Sexp, error) {
	if w.err != nil {
		return nil, w.err
	}
	if err := w.checkFinish("TreeWriter.Value"); err != nil {
		return nil, err
	}
	if len(w.vals) == 0 {
		return nil, &UsageError{"TreeWriter.Value", "no value written"}
	}
	return w.vals[len(w.vals)-1], nil
}

// WriteNil writes a Nil node.
func (w *TreeWriter) WriteNil() error {
	return w.add("Writer.WriteNil", NewNil())
}

// WriteBool writes a boolean node.
func (w *TreeWriter) WriteBool(val bool) error {
	return w.add("Writer.WriteBool", NewBool(val))
}

// WriteInt writes a number node.
func (w *TreeWriter) WriteInt(val int64) error {
	return w.add("Writer.WriteInt", NewInt(val))
}

// WriteUint writes a number node.
func (w *TreeWriter) WriteUint(val uint64) error {
	return w.add("Writer.WriteUint", NewUint(val))
}

// WriteFloat writes a number node, or a Nil node for a non-finite value.
func (w *TreeWriter) WriteFloat(val float64) error {
	return w.add("Writer.WriteFloat", NewFloat(val))
}

// WriteString writes a string atom.
func (w *TreeWriter) WriteString(val string) error {
	return w.add("Writer.WriteString", NewString(val))
}

// WriteSymbol writes a symbol atom.
func (w *TreeWriter) WriteSymbol(val string) error {
	return w.add("Writer.WriteSymbol", NewSymbol(val))
}

// WriteKeyword writes a keyword atom.
func (w *TreeWriter) WriteKeyword(val string) error {
	return w.add("Writer.WriteKeyword", NewKeyword(val))
}

// BeginList begins writing a list.
func (w *TreeWriter) BeginList() error {
	return w.begin("Writer.BeginList", ctxInList)
}

// EndList finishes writing a list.
func (w *TreeWriter) EndList() error {
	elems, err := w.end("Writer.EndList", ctxInList)
	if err != nil {
		return err
	}
	return w.add("Writer.EndList", &Sexp{typ: ListType, list: elems})
}

// BeginPair begins writing a pair.
func (w *TreeWriter) BeginPair() error {
	return w.begin("Writer.BeginPair", ctxInPair)
}

// EndPair finishes writing a pair. Nil values and an empty-list cdr become
// absent slots.
func (w *TreeWriter) EndPair() error {
	elems, err := w.end("Writer.EndPair", ctxInPair)
	if err != nil {
		return err
	}

	var car, cdr *Sexp
	if len(elems) > 0 {
		car = slot(elems[0])
	}
	if len(elems) > 1 {
		cdr = slot(elems[1])
		if cdr != nil && cdr.typ == ListType && len(cdr.list) == 0 {
			cdr = nil
		}
	}
	return w.add("Writer.EndPair", NewCons(car, cdr))
}

func slot(v *Sexp) *Sexp {
	if v.typ == NilType {
		return nil
	}
	return v
}

// Finish checks that no container is left open.
func (w *TreeWriter) Finish() error {
	if w.err != nil {
		return w.err
	}
	return w.checkFinish("Writer.Finish")
}

func (w *TreeWriter) begin(api string, c ctx) error {
	if w.err != nil {
		return w.err
	}
	if w.err = w.checkSlot(api); w.err != nil {
		return w.err
	}

	w.ctx.push(c)
	w.elems = append(w.elems, nil)
	return nil
}

func (w *TreeWriter) end(api string, c ctx) ([]*Sexp, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.err = w.checkEnd(api, c); w.err != nil {
		return nil, w.err
	}

	w.ctx.pop()
	top := len(w.elems) - 1
	elems := w.elems[top]
	w.elems = w.elems[:top]
	if elems == nil {
		elems = []*Sexp{}
	}
	return elems, nil
}

// add places a finished value in the current container.
func (w *TreeWriter) add(api string, v *Sexp) error {
	if w.err != nil {
		return w.err
	}
	if w.err = w.checkSlot(api); w.err != nil {
		return w.err
	}

	if w.ctx.peek() == ctxAtTopLevel {
		w.vals = append(w.vals, v)
		return nil
	}

	top := len(w.elems) - 1
	w.elems[top] = append(w.elems[top], v)
	w.ctx.incr()
	return nil
}
