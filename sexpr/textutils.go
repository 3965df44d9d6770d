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
	"strconv"
	"strings"
)

// Is this whitespace that separates tokens?
func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// Is this a digit?
func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// digitValue returns the value of c as a digit in any radix up to 36, or -1.
func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// formatFloat formats a finite float in plain decimal, adding ".0" when
// there is no fractional part so the text reads back as a float.
func formatFloat(val float64) string {
	str := strconv.FormatFloat(val, 'f', -1, 64)
	if !strings.ContainsRune(str, '.') {
		str += ".0"
	}
	return str
}

// Would this text fail to read back as one bare token?
func breaksToken(text string) bool {
	if text == "" {
		return true
	}
	for _, c := range text {
		if isWhitespace(c) || c < 0x20 || c == 0x7F {
			return true
		}
		switch c {
		case '(', ')', '[', ']', ';':
			return true
		}
	}
	return false
}

// Would this symbol read back as something else, or not at all? Such
// symbols are written as string literals instead.
func symbolNeedsQuoting(sym string) bool {
	if breaksToken(sym) || sym == "." {
		return true
	}

	c := sym[0]
	switch {
	case isDigit(rune(c)), c == '-' && len(sym) > 1 && isDigit(rune(sym[1])):
		// A number.
		return true
	case c == '#', c == ':', c == '"', c == '|':
		return true
	case c == '\'' && len(sym) > 1 && sym[len(sym)-1] == '\'':
		// A single-quoted string.
		return true
	}
	return false
}

// Write the given string out, escaping any characters that need escaping.
func writeEscapedString(str string, out io.Writer) error {
	start := 0
	for i := 0; i < len(str); i++ {
		c := str[i]
		if c < 0x20 || c == 0x7F || c == '\\' || c == '"' {
			if start < i {
				if err := writeRawString(str[start:i], out); err != nil {
					return err
				}
			}
			if err := writeEscapedChar(c, out); err != nil {
				return err
			}
			start = i + 1
		}
	}
	if start < len(str) {
		return writeRawString(str[start:], out)
	}
	return nil
}

// Write out the given character in escaped form.
func writeEscapedChar(c byte, out io.Writer) error {
	switch c {
	case '"':
		return writeRawString(`\"`, out)
	case '\\':
		return writeRawString(`\\`, out)
	case '\b':
		return writeRawString(`\b`, out)
	case '\t':
		return writeRawString(`\t`, out)
	case '\n':
		return writeRawString(`\n`, out)
	case '\f':
		return writeRawString(`\f`, out)
	case '\r':
		return writeRawString(`\r`, out)
	default:
		return writeRawString(fmt.Sprintf(`\u%04x`, c), out)
	}
}

// Write the given string out as a string literal.
func writeQuotedString(str string, out io.Writer) error {
	if err := writeRawChar('"', out); err != nil {
		return err
	}
	if err := writeEscapedString(str, out); err != nil {
		return err
	}
	return writeRawChar('"', out)
}

// Write the given symbol out, as a string literal if a bare symbol would not
// read back.
func writeSymbol(sym string, out io.Writer) error {
	if symbolNeedsQuoting(sym) {
		return writeQuotedString(sym, out)
	}
	return writeRawString(sym, out)
}

// Write a raw string out, wrapping errors as IOErrors.
func writeRawString(s string, out io.Writer) error {
	if _, err := io.WriteString(out, s); err != nil {
		return &IOError{err}
	}
	return nil
}

// Write a raw character out.
func writeRawChar(c byte, out io.Writer) error {
	if _, err := out.Write([]byte{c}); err != nil {
		return &IOError{err}
	}
	return nil
}
