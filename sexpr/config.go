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

// DefaultMaxDepth is the nesting limit used when ParseConfig.MaxDepth is zero.
const DefaultMaxDepth = 1000

// PipeAction says how a Parser treats |...| regions.
type PipeAction uint8

const (
	// PipeNone treats '|' as an ordinary atom character.
	PipeNone PipeAction = iota
	// PipeQuoteInterior reads the interior verbatim as a symbol.
	PipeQuoteInterior
	// PipeBase64Interior decodes the interior as base64 into a string atom.
	PipeBase64Interior
)

func (p PipeAction) String() string {
	switch p {
	case PipeNone:
		return "none"
	case PipeQuoteInterior:
		return "quote"
	case PipeBase64Interior:
		return "base64"
	default:
		return fmt.Sprintf("<unknown pipe action %v>", uint8(p))
	}
}

// UnmarshalText parses the names returned by String.
func (p *PipeAction) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "none":
		*p = PipeNone
	case "quote":
		*p = PipeQuoteInterior
	case "base64":
		*p = PipeBase64Interior
	default:
		return fmt.Errorf("sexpr: unknown pipe action %q", text)
	}
	return nil
}

// MarshalText returns the name of the pipe action.
func (p PipeAction) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParseConfig selects the dialect a Parser accepts. It is a plain value:
// copy it and change fields to derive a new dialect.
type ParseConfig struct {
	// SemiComments treats ';' as the start of a comment running to end of line.
	SemiComments bool `yaml:"semi_comments"`
	// CaseSensitiveAtoms keeps symbol and keyword case; otherwise they are
	// folded to lower case.
	CaseSensitiveAtoms bool `yaml:"case_sensitive_atoms"`
	// SquareBrackets accepts [...] as a list that must close with ']'.
	SquareBrackets bool `yaml:"square_brackets"`
	// PipeAction says how |...| regions are read.
	PipeAction PipeAction `yaml:"pipe_action"`
	// HexEscapes enables #x hexadecimal literals.
	HexEscapes bool `yaml:"hex_escapes"`
	// RadixEscape enables #b binary, #o octal and #d decimal literals.
	RadixEscape bool `yaml:"radix_escape"`
	// ColonKeywords reads :name as a keyword.
	ColonKeywords bool `yaml:"colon_keywords"`
	// MaxDepth bounds list nesting. Zero means DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth"`
}

// Standard returns the default dialect.
func Standard() ParseConfig {
	return ParseConfig{
		SemiComments:       true,
		CaseSensitiveAtoms: false,
		SquareBrackets:     true,
		PipeAction:         PipeNone,
		HexEscapes:         true,
		RadixEscape:        false,
		ColonKeywords:      true,
	}
}

func (c ParseConfig) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}
