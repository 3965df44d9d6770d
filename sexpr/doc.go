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

/*
Package sexpr reads and writes S-expressions and converts them to and from Go
values.

# Parsing

A Parser turns text into Sexp trees. What it accepts is controlled by a
ParseConfig; Standard returns the usual dialect, and a dialect is changed by
copying the value and setting fields.

	cfg := sexpr.Standard()
	cfg.CaseSensitiveAtoms = true

	v, err := sexpr.Parse("(define (sq x) (* x x))", cfg)
	if err != nil {
		panic(err)
	}
	fmt.Println(v.Index(0)) // prints out: define

Syntax errors are returned as *SyntaxError, carrying an ErrorCode and the
1-based line and column of the offending character.

# Data model

A Sexp is Nil, an Atom (symbol, keyword or string), a Number (unsigned,
negative or float), a boolean, a Pair or a List. The slots of a Pair may be
absent; NewPair leaves the cdr absent when given an empty list, so that
(a . ()) and (a) build the same tree.

Lists used as association lists support Get, Delq, Member, MemqIndex,
Remove, RemoveKey and IntoMap.

# Marshaling

Marshal and ToValue offer a Go value to a Writer, which either renders text
or builds a tree. Unmarshal and FromValue go the other way; see their
documentation for the mapping between Go types and S-expressions.

	type point struct {
		X int `sexp:"x"`
		Y int `sexp:"y"`
	}

	b, _ := sexpr.Marshal(point{1, 2}) // ((x 1) (y 2))

	var p point
	err := sexpr.Unmarshal(b, &p)
*/
package sexpr
