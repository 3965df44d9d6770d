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
	"bufio"
	"encoding/base64"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// A Parser reads S-expressions from a stream of text in a given dialect.
//
//	p := NewParser(strings.NewReader("(a . b) (c d)"), Standard())
//	for {
//		v, err := p.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		fmt.Println(v)
//	}
//
// A Parser does not recover from errors: once Next has returned an error
// other than io.EOF the rest of the stream is abandoned.
type Parser struct {
	in  *bufio.Reader
	cfg ParseConfig

	c    rune
	eof  bool
	line int
	col  int

	depth int
	ioErr error
	err   error
}

// NewParser returns a Parser reading from in.
func NewParser(in io.Reader, cfg ParseConfig) *Parser {
	p := &Parser{
		in:   bufio.NewReader(in),
		cfg:  cfg,
		line: 1,
		col:  1,
	}
	p.read()
	p.skipComment()
	return p
}

// Parse parses exactly one value from text. Anything but whitespace and
// comments after the value is a TrailingCharacters error.
func Parse(text string, cfg ParseConfig) (*Sexp, error) {
	return parseOne(NewParser(strings.NewReader(text), cfg))
}

// ParseString parses exactly one value from text in the Standard dialect.
func ParseString(text string) (*Sexp, error) {
	return Parse(text, Standard())
}

// ParseAll parses every value in the stream.
func ParseAll(in io.Reader, cfg ParseConfig) ([]*Sexp, error) {
	p := NewParser(in, cfg)

	var vals []*Sexp
	for {
		v, err := p.Next()
		if err == io.EOF {
			return vals, nil
		}
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
}

func parseOne(p *Parser) (*Sexp, error) {
	v, err := p.parseValue()
	if err != nil {
		return nil, p.fail(err)
	}
	if err := p.end(); err != nil {
		return nil, err
	}
	return v, nil
}

// end fails with TrailingCharacters unless only whitespace and comments
// remain in the stream.
func (p *Parser) end() error {
	if p.err != nil {
		return p.err
	}
	p.skipWhitespace()
	if !p.eof {
		return p.fail(p.error(TrailingCharacters))
	}
	if p.ioErr != nil {
		return p.fail(p.ioErr)
	}
	return nil
}

// Next parses the next value in the stream. It returns io.EOF when only
// whitespace and comments remain.
func (p *Parser) Next() (*Sexp, error) {
	if p.err != nil {
		return nil, p.err
	}

	p.skipWhitespace()
	if p.eof {
		if p.ioErr != nil {
			return nil, p.fail(p.ioErr)
		}
		return nil, io.EOF
	}

	v, err := p.parseValue()
	if err != nil {
		return nil, p.fail(err)
	}
	return v, nil
}

// Pos returns the 1-based line and column of the next character.
func (p *Parser) Pos() (int, int) {
	return p.line, p.col
}

// fail makes err sticky, preferring an underlying i/o error over the
// syntax error it caused.
func (p *Parser) fail(err error) error {
	if p.ioErr != nil {
		err = p.ioErr
	}
	p.err = err
	return err
}

func (p *Parser) error(code ErrorCode) error {
	return &SyntaxError{Code: code, Line: p.line, Col: p.col}
}

// read loads the next rune into the lookahead.
func (p *Parser) read() {
	c, _, err := p.in.ReadRune()
	if err != nil {
		if err != io.EOF {
			p.ioErr = &IOError{err}
		}
		p.c = 0
		p.eof = true
		return
	}
	p.c = c
}

// peek returns the rune after the lookahead, or -1 at end of input.
func (p *Parser) peek() rune {
	if p.eof {
		return -1
	}
	c, _, err := p.in.ReadRune()
	if err != nil {
		return -1
	}
	_ = p.in.UnreadRune()
	return c
}

// bumpRaw advances past the lookahead, tracking line and column.
func (p *Parser) bumpRaw() {
	if p.eof {
		return
	}
	if p.c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.read()
}

// bump advances past the lookahead and any comment that follows it.
func (p *Parser) bump() {
	p.bumpRaw()
	p.skipComment()
}

func (p *Parser) skipComment() {
	if !p.cfg.SemiComments {
		return
	}
	for !p.eof && p.c == ';' {
		for !p.eof && p.c != '\n' {
			p.bumpRaw()
		}
	}
}

func (p *Parser) skipWhitespace() {
	for !p.eof && isWhitespace(p.c) {
		p.bump()
	}
}

func (p *Parser) isOpen(c rune) bool {
	return c == '(' || (c == '[' && p.cfg.SquareBrackets)
}

func (p *Parser) isClose(c rune) bool {
	return c == ')' || (c == ']' && p.cfg.SquareBrackets)
}

// Does this character end an atom or number?
func (p *Parser) isDelimiter(c rune) bool {
	return isWhitespace(c) || p.isOpen(c) || p.isClose(c)
}

func (p *Parser) parseValue() (*Sexp, error) {
	p.skipWhitespace()
	if p.eof {
		return nil, p.error(EOFWhileParsingValue)
	}

	c := p.c
	switch {
	case c == '(':
		return p.parseList(')')

	case c == '[' && p.cfg.SquareBrackets:
		return p.parseList(']')

	case p.isClose(c):
		return nil, p.error(UnexpectedEndOfList)

	case isDigit(c):
		return p.parseNumber()

	case c == '-' && isDigit(p.peek()):
		return p.parseNumber()

	case c == '"':
		return p.parseString()

	case c == '#':
		return p.parseHash()

	case c == ':' && p.cfg.ColonKeywords:
		p.bump()
		return p.parseKeyword()

	case c == '|' && p.cfg.PipeAction != PipeNone:
		return p.parsePipe()

	default:
		return p.parseAtom()
	}
}

func (p *Parser) parseList(close rune) (*Sexp, error) {
	if p.depth >= p.cfg.maxDepth() {
		return nil, p.error(TooDeeplyNested)
	}
	p.depth++
	defer func() { p.depth-- }()

	// Skip the opening bracket.
	p.bump()

	var elems []*Sexp
	for {
		p.skipWhitespace()
		if p.eof {
			return nil, p.error(EOFWhileParsingList)
		}

		switch {
		case p.isClose(p.c):
			if p.c != close {
				return nil, p.error(UnbalancedClosingParen)
			}
			p.bump()
			return NewList(elems...), nil

		case p.c == '.' && p.dotFollows():
			if len(elems) == 0 {
				return nil, p.error(InvalidSyntax)
			}
			return p.parseDottedTail(elems, close)

		default:
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
	}
}

// dotFollows returns true if the '.' lookahead stands alone.
func (p *Parser) dotFollows() bool {
	n := p.peek()
	return n < 0 || p.isDelimiter(n) || (n == ';' && p.cfg.SemiComments)
}

// parseDottedTail reads the single value after a dot and the close bracket,
// and folds the preceding elements onto it: (a b . c) is (a . (b . c)).
func (p *Parser) parseDottedTail(elems []*Sexp, close rune) (*Sexp, error) {
	// Skip the dot.
	p.bump()

	p.skipWhitespace()
	if p.eof {
		return nil, p.error(EOFWhileParsingList)
	}
	if p.isClose(p.c) {
		return nil, p.error(MissingCloseParen)
	}

	// Folding nests the tail one level deeper per element after the first.
	extra := len(elems) - 1
	if p.depth+extra > p.cfg.maxDepth() {
		return nil, p.error(TooDeeplyNested)
	}
	p.depth += extra
	tail, err := p.parseValue()
	p.depth -= extra
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()
	if p.eof {
		return nil, p.error(EOFWhileParsingList)
	}
	if !p.isClose(p.c) {
		return nil, p.error(MissingCloseParen)
	}
	if p.c != close {
		return nil, p.error(UnbalancedClosingParen)
	}
	p.bump()

	for i := len(elems) - 1; i >= 0; i-- {
		tail = NewPair(elems[i], tail)
	}
	return tail, nil
}

func (p *Parser) parseNumber() (*Sexp, error) {
	sb := strings.Builder{}
	if p.c == '-' {
		sb.WriteRune(p.c)
		p.bump()
	}

	isFloat := false
	for !p.eof && !p.isDelimiter(p.c) {
		switch {
		case isDigit(p.c):
		case p.c == '.' && !isFloat:
			isFloat = true
		default:
			return nil, p.error(InvalidNumber)
		}
		sb.WriteRune(p.c)
		p.bump()
	}
	if p.eof && p.depth > 0 {
		return nil, p.error(EOFWhileParsingNumeric)
	}

	text := sb.String()
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsInf(f, 0) {
			return nil, p.error(InvalidNumber)
		}
		return NewFloat(f), nil
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return NewInt(i), nil
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return NewUint(u), nil
	}
	return nil, p.error(InvalidNumber)
}

func (p *Parser) parseString() (*Sexp, error) {
	// Skip the opening quote; comments do not start inside strings.
	p.bumpRaw()

	sb := strings.Builder{}
	for {
		if p.eof {
			return nil, p.error(EOFWhileParsingString)
		}

		switch c := p.c; {
		case c == '"':
			p.bump()
			return NewString(sb.String()), nil

		case c == '\\':
			p.bumpRaw()
			r, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			sb.WriteRune(r)

		case c < 0x20:
			return nil, p.error(ControlCharacterInString)

		default:
			sb.WriteRune(c)
			p.bumpRaw()
		}
	}
}

// parseEscape reads the character after a backslash.
func (p *Parser) parseEscape() (rune, error) {
	if p.eof {
		return 0, p.error(EOFWhileParsingString)
	}

	c := p.c
	switch c {
	case '"', '\\', '/':
	case 'b':
		c = '\b'
	case 'f':
		c = '\f'
	case 'n':
		c = '\n'
	case 'r':
		c = '\r'
	case 't':
		c = '\t'
	case 'u':
		p.bumpRaw()
		return p.parseUnicodeEscape()
	default:
		return 0, p.error(InvalidEscape)
	}

	p.bumpRaw()
	return c, nil
}

// parseUnicodeEscape reads the four hex digits of a \u escape, and a
// second escape if the first is a leading surrogate.
func (p *Parser) parseUnicodeEscape() (rune, error) {
	r, err := p.parseHex4()
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(r) || p.eof || p.c != '\\' || p.peek() != 'u' {
		return r, nil
	}

	p.bumpRaw()
	p.bumpRaw()
	r2, err := p.parseHex4()
	if err != nil {
		return 0, err
	}
	return utf16.DecodeRune(r, r2), nil
}

func (p *Parser) parseHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		if p.eof {
			return 0, p.error(EOFWhileParsingString)
		}
		d := digitValue(p.c)
		if d < 0 || d >= 16 {
			return 0, p.error(InvalidEscape)
		}
		r = r*16 + rune(d)
		p.bumpRaw()
	}
	return r, nil
}

// readToken accumulates characters up to the next delimiter.
func (p *Parser) readToken() string {
	sb := strings.Builder{}
	for !p.eof && !p.isDelimiter(p.c) {
		sb.WriteRune(p.c)
		p.bump()
	}
	return sb.String()
}

func (p *Parser) foldCase(text string) string {
	if p.cfg.CaseSensitiveAtoms {
		return text
	}
	return strings.ToLower(text)
}

func (p *Parser) parseAtom() (*Sexp, error) {
	text := p.readToken()
	if p.eof && p.depth > 0 {
		return nil, p.error(EOFWhileParsingAtom)
	}
	if text == "" {
		return nil, p.error(InvalidAtom)
	}

	a := Discriminate(text)
	if !a.IsString() {
		a.text = p.foldCase(a.text)
	}
	return NewAtom(a), nil
}

func (p *Parser) parseKeyword() (*Sexp, error) {
	text := p.readToken()
	if p.eof && p.depth > 0 {
		return nil, p.error(EOFWhileParsingAtom)
	}
	if text == "" {
		return nil, p.error(InvalidAtom)
	}
	return NewKeyword(p.foldCase(text)), nil
}

// parseHash reads the forms introduced by '#': booleans, #:keywords and,
// when enabled, radix-prefixed integers.
func (p *Parser) parseHash() (*Sexp, error) {
	// Skip the '#'.
	p.bump()
	if p.eof {
		if p.depth > 0 {
			return nil, p.error(EOFWhileParsingAtom)
		}
		return nil, p.error(InvalidAtom)
	}

	if p.c == ':' {
		p.bump()
		return p.parseKeyword()
	}

	if radix := p.radixFor(p.c); radix != 0 {
		p.bump()
		return p.parseRadix(radix)
	}

	text := p.readToken()
	if p.eof && p.depth > 0 {
		return nil, p.error(EOFWhileParsingAtom)
	}
	switch text {
	case "t":
		return NewBool(true), nil
	case "f":
		return NewBool(false), nil
	}

	if p.cfg.HexEscapes {
		return nil, p.error(UnrecognizedHex)
	}
	return NewSymbol(p.foldCase("#" + text)), nil
}

// radixFor returns the radix introduced by marker, or zero.
func (p *Parser) radixFor(marker rune) uint64 {
	switch marker {
	case 'x', 'X':
		if p.cfg.HexEscapes {
			return 16
		}
	case 'b', 'B':
		if p.cfg.RadixEscape {
			return 2
		}
	case 'o', 'O':
		if p.cfg.RadixEscape {
			return 8
		}
	case 'd', 'D':
		if p.cfg.RadixEscape {
			return 10
		}
	}
	return 0
}

func (p *Parser) parseRadix(radix uint64) (*Sexp, error) {
	var acc uint64
	n := 0
	for !p.eof && !p.isDelimiter(p.c) {
		d := digitValue(p.c)
		if d < 0 || uint64(d) >= radix {
			return nil, p.error(InvalidNumber)
		}
		if acc > (math.MaxUint64-uint64(d))/radix {
			return nil, p.error(InvalidNumber)
		}
		acc = acc*radix + uint64(d)
		n++
		p.bump()
	}

	if p.eof && p.depth > 0 {
		return nil, p.error(EOFWhileParsingNumeric)
	}
	if n == 0 {
		return nil, p.error(UnexpectedEndOfHexEscape)
	}
	return NewUint(acc), nil
}

// parsePipe reads a |...| region according to the configured PipeAction.
func (p *Parser) parsePipe() (*Sexp, error) {
	// Skip the opening pipe; the interior is taken verbatim.
	p.bumpRaw()

	sb := strings.Builder{}
	for !p.eof && p.c != '|' {
		sb.WriteRune(p.c)
		p.bumpRaw()
	}
	if p.eof {
		return nil, p.error(EOFWhileParsingAtom)
	}
	p.bump()

	if p.cfg.PipeAction == PipeQuoteInterior {
		return NewSymbol(sb.String()), nil
	}

	bs, err := base64.StdEncoding.DecodeString(strings.TrimSpace(sb.String()))
	if err != nil {
		return nil, p.error(UnrecognizedBase64)
	}
	return NewString(string(bs)), nil
}
