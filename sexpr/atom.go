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
	"strings"
)

// KeywordPrefix marks a keyword in its textual form.
const KeywordPrefix = "#:"

// AtomKind is the variant of an Atom.
type AtomKind uint8

const (
	// SymbolAtom is a bare identifier.
	SymbolAtom AtomKind = iota
	// KeywordAtom is a keyword, written #:name or :name.
	KeywordAtom
	// StringAtom is quoted text.
	StringAtom
)

func (k AtomKind) String() string {
	switch k {
	case SymbolAtom:
		return "symbol"
	case KeywordAtom:
		return "keyword"
	case StringAtom:
		return "string"
	default:
		return fmt.Sprintf("<unknown atom kind %v>", uint8(k))
	}
}

// An Atom is an indivisible token: a symbol, keyword or string. The zero
// Atom is the empty symbol.
type Atom struct {
	kind AtomKind
	text string
}

// NewSymbolAtom returns a symbol atom.
func NewSymbolAtom(text string) Atom {
	return Atom{kind: SymbolAtom, text: text}
}

// NewKeywordAtom returns a keyword atom. text excludes any keyword prefix.
func NewKeywordAtom(text string) Atom {
	return Atom{kind: KeywordAtom, text: text}
}

// NewStringAtom returns a string atom. text is unquoted and unescaped.
func NewStringAtom(text string) Atom {
	return Atom{kind: StringAtom, text: text}
}

// Discriminate classifies raw token text. A "#:" prefix makes a keyword; text
// wrapped in matching double or single quotes makes a string; anything else
// is a symbol. Prefixes and quotes are stripped.
func Discriminate(text string) Atom {
	if strings.HasPrefix(text, KeywordPrefix) {
		return NewKeywordAtom(text[len(KeywordPrefix):])
	}
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' || first == '\'') && first == last {
			return NewStringAtom(text[1 : len(text)-1])
		}
	}
	return NewSymbolAtom(text)
}

// Kind returns the variant of this atom.
func (a Atom) Kind() AtomKind {
	return a.kind
}

// Text returns the atom's text, without keyword prefix or quotes.
func (a Atom) Text() string {
	return a.text
}

// IsSymbol returns true if this is a symbol atom.
func (a Atom) IsSymbol() bool {
	return a.kind == SymbolAtom
}

// IsKeyword returns true if this is a keyword atom.
func (a Atom) IsKeyword() bool {
	return a.kind == KeywordAtom
}

// IsString returns true if this is a string atom.
func (a Atom) IsString() bool {
	return a.kind == StringAtom
}

// Equal compares both the text and the variant of two atoms.
func (a Atom) Equal(o Atom) bool {
	return a.kind == o.kind && a.text == o.text
}

// CompareAtoms orders atoms by text, breaking ties by variant.
func CompareAtoms(a, b Atom) int {
	if c := strings.Compare(a.text, b.text); c != 0 {
		return c
	}
	switch {
	case a.kind < b.kind:
		return -1
	case a.kind > b.kind:
		return 1
	}
	return 0
}

// String displays the atom. Strings are quoted but not escaped.
func (a Atom) String() string {
	switch a.kind {
	case KeywordAtom:
		return KeywordPrefix + a.text
	case StringAtom:
		return `"` + a.text + `"`
	default:
		return a.text
	}
}
