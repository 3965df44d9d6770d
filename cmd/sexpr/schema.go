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

package main

import (
	"fmt"

	"github.com/sexpr-go/sexpr/sexpr"
)

type errortype uint8

const (
	read errortype = iota
	write
	state
)

func (e errortype) String() string {
	switch e {
	case read:
		return "READ"
	case write:
		return "WRITE"
	case state:
		return "STATE"
	default:
		panic(fmt.Sprintf("unknown errortype %d", e))
	}
}

func (e errortype) MarshalSexp(w sexpr.Writer) error {
	return w.WriteSymbol(e.String())
}

// errordescription describes an error during processing. Line and Col are
// only set for syntax errors.
type errordescription struct {
	ErrorType errortype `sexp:"error_type"`
	Message   string    `sexp:"message"`
	Location  string    `sexp:"location"`
	Index     int       `sexp:"value_index"`
	Line      int       `sexp:"line,omitempty"`
	Col       int       `sexp:"col,omitempty"`
}
