/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package lexer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/token"
)

// Lexer produces a stream of tokens from a Source. Comments are skipped. After the end of the
// source has been reached, the lexer keeps returning the same EOF token.
type Lexer struct {
	source *token.Source
	body   []byte

	// Current offset into the body
	pos uint

	// The currently focused token
	current token.Token

	// The token after current if it has been lexed by Lookahead
	next    token.Token
	hasNext bool
}

// New initializes a Lexer for given Source object. The initial token is of kind SOF.
func New(source *token.Source) *Lexer {
	return &Lexer{
		source:  source,
		body:    source.Body(),
		current: token.Token{Kind: token.KindSOF},
	}
}

// Source returns the source being lexed.
func (lexer *Lexer) Source() *token.Source {
	return lexer.source
}

// Token returns the current token.
func (lexer *Lexer) Token() token.Token {
	return lexer.current
}

// Advance moves the token stream to the next non-comment token and returns it.
func (lexer *Lexer) Advance() (token.Token, error) {
	next, err := lexer.Lookahead()
	if err != nil {
		return token.Token{}, err
	}
	lexer.current, lexer.hasNext = next, false
	return next, nil
}

// Lookahead returns the token after the current one without advancing.
func (lexer *Lexer) Lookahead() (token.Token, error) {
	if lexer.current.Kind == token.KindEOF {
		return lexer.current, nil
	}
	if !lexer.hasNext {
		for {
			tok, err := lexer.lex()
			if err != nil {
				return token.Token{}, err
			}
			if tok.Kind != token.KindComment {
				lexer.next, lexer.hasNext = tok, true
				break
			}
		}
	}
	return lexer.next, nil
}

func (lexer *Lexer) size() uint {
	return uint(len(lexer.body))
}

func (lexer *Lexer) peek() byte {
	return lexer.source.At(lexer.pos)
}

func (lexer *Lexer) peekAt(offset uint) byte {
	return lexer.source.At(lexer.pos + offset)
}

func (lexer *Lexer) location(pos uint) token.SourceLocation {
	return lexer.source.LocationFromPos(pos)
}

func (lexer *Lexer) tokenFrom(kind token.Kind, start uint, value string) token.Token {
	return token.Token{
		Kind:     kind,
		Location: lexer.location(start),
		Length:   lexer.pos - start,
		Value:    value,
	}
}

func (lexer *Lexer) syntaxError(pos uint, format string, args ...interface{}) error {
	return graphql.NewSyntaxError(lexer.source, lexer.location(pos), fmt.Sprintf(format, args...))
}

// describeChar prints the character at pos for use in error messages.
func (lexer *Lexer) describeChar(pos uint) string {
	if pos >= lexer.size() {
		return "<EOF>"
	}
	r, _ := utf8.DecodeRune(lexer.body[pos:])
	if r >= 0x20 && r < 0x7F {
		return fmt.Sprintf(`"%c"`, r)
	}
	return fmt.Sprintf(`"\u%04X"`, r)
}

var byteOrderMark = []byte("\xEF\xBB\xBF")

// skipIgnored consumes whitespace, commas, line terminators and the unicode BOM.
func (lexer *Lexer) skipIgnored() {
	if lexer.pos == 0 && bytes.HasPrefix(lexer.body, byteOrderMark) {
		lexer.pos = 3
	}
	for lexer.pos < lexer.size() {
		switch lexer.body[lexer.pos] {
		case '\t', ' ', ',', '\n', '\r':
			lexer.pos++
		default:
			return
		}
	}
}

var punctuators = map[byte]token.Kind{
	'!': token.KindBang,
	'$': token.KindDollar,
	'(': token.KindLeftParen,
	')': token.KindRightParen,
	':': token.KindColon,
	'=': token.KindEquals,
	'@': token.KindAt,
	'[': token.KindLeftBracket,
	']': token.KindRightBracket,
	'{': token.KindLeftBrace,
	'}': token.KindRightBrace,
}

// lex reads the next token starting at the current position.
func (lexer *Lexer) lex() (token.Token, error) {
	lexer.skipIgnored()

	start := lexer.pos
	if start >= lexer.size() {
		return lexer.tokenFrom(token.KindEOF, start, ""), nil
	}

	char := lexer.body[start]
	if kind, ok := punctuators[char]; ok {
		lexer.pos++
		return lexer.tokenFrom(kind, start, ""), nil
	}

	switch {
	case char == '#':
		return lexer.lexComment(), nil

	case char == '.':
		if lexer.peekAt(1) == '.' && lexer.peekAt(2) == '.' {
			lexer.pos += 3
			return lexer.tokenFrom(token.KindSpread, start, ""), nil
		}
		return token.Token{}, lexer.unexpectedCharacter(start)

	case isNameStart(char):
		return lexer.lexName(), nil

	case char == '-' || isDigit(char):
		return lexer.lexNumber()

	case char == '"':
		if lexer.peekAt(1) == '"' && lexer.peekAt(2) == '"' {
			return lexer.lexBlockString()
		}
		return lexer.lexString()
	}

	return token.Token{}, lexer.unexpectedCharacter(start)
}

func (lexer *Lexer) unexpectedCharacter(pos uint) error {
	char := lexer.source.At(pos)
	switch {
	case char < 0x20 && char != '\t' && char != '\n' && char != '\r':
		return lexer.syntaxError(pos, "Cannot contain the invalid character %s.", lexer.describeChar(pos))
	case char == '\'':
		return lexer.syntaxError(pos,
			"Unexpected single quote character ('), did you mean to use a double quote (\")?")
	}
	return lexer.syntaxError(pos, "Cannot parse the unexpected character %s.", lexer.describeChar(pos))
}

func isNameStart(char byte) bool {
	return char == '_' || (char >= 'A' && char <= 'Z') || (char >= 'a' && char <= 'z')
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

// lexComment reads a comment token from the source file.
//
//	Comment ::
//		# CommentCharlistopt
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Comments
func (lexer *Lexer) lexComment() token.Token {
	start := lexer.pos
	lexer.pos++
	for lexer.pos < lexer.size() {
		char := lexer.body[lexer.pos]
		if char <= 0x1F && char != '\t' {
			break
		}
		lexer.pos++
	}
	return lexer.tokenFrom(token.KindComment, start, "")
}

// lexName lexes a Name token from source.
//
//	Name ::
//		/[_A-Za-z][_0-9A-Za-z]*/
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Names
func (lexer *Lexer) lexName() token.Token {
	start := lexer.pos
	lexer.pos++
	for lexer.pos < lexer.size() {
		char := lexer.body[lexer.pos]
		if !isNameStart(char) && !isDigit(char) {
			break
		}
		lexer.pos++
	}
	return lexer.tokenFrom(token.KindName, start, string(lexer.body[start:lexer.pos]))
}

func (lexer *Lexer) skipDigits() {
	for isDigit(lexer.peek()) {
		lexer.pos++
	}
}

// expectDigits consumes one or more digits.
func (lexer *Lexer) expectDigits(what string) error {
	if !isDigit(lexer.peek()) {
		return lexer.syntaxError(lexer.pos, "Invalid number, expected digit %sbut got: %s.",
			what, lexer.describeChar(lexer.pos))
	}
	lexer.skipDigits()
	return nil
}

// lexNumber reads a number token from the source file, either a float [0] or an int [1] depending
// on whether a fractional part or an exponent appears.
//
// [0]: https://facebook.github.io/graphql/June2018/#sec-Float-Value
// [1]: https://facebook.github.io/graphql/June2018/#sec-Int-Value
func (lexer *Lexer) lexNumber() (token.Token, error) {
	start := lexer.pos
	kind := token.KindInt

	if lexer.peek() == '-' {
		lexer.pos++
		if !isDigit(lexer.peek()) {
			return token.Token{}, lexer.syntaxError(lexer.pos,
				"Invalid number, expected digit after '-' but got: %s.", lexer.describeChar(lexer.pos))
		}
	}

	if lexer.peek() == '0' {
		lexer.pos++
		if isDigit(lexer.peek()) {
			return token.Token{}, lexer.syntaxError(lexer.pos,
				"Invalid number, unexpected digit after 0: %s.", lexer.describeChar(lexer.pos))
		}
	} else {
		lexer.skipDigits()
	}

	if lexer.peek() == '.' {
		kind = token.KindFloat
		lexer.pos++
		if err := lexer.expectDigits("after decimal point ('.') "); err != nil {
			return token.Token{}, err
		}
	}

	if char := lexer.peek(); char == 'e' || char == 'E' {
		kind = token.KindFloat
		lexer.pos++
		if char := lexer.peek(); char == '+' || char == '-' {
			lexer.pos++
		}
		if err := lexer.expectDigits(""); err != nil {
			return token.Token{}, err
		}
	}

	return lexer.tokenFrom(kind, start, string(lexer.body[start:lexer.pos])), nil
}

var escapedCharacters = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// lexString reads a string token from the source file.
//
//	StringCharacter ::
//		SourceCharacter but not " or \ or LineTerminator
//		\u EscapedUnicode
//		\ EscapedCharacter
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-String-Value
func (lexer *Lexer) lexString() (token.Token, error) {
	start := lexer.pos
	// Opening quote
	lexer.pos++

	var value strings.Builder
	for lexer.pos < lexer.size() {
		char := lexer.body[lexer.pos]
		switch {
		case char == '\n' || char == '\r':
			return token.Token{}, lexer.syntaxError(lexer.pos, "Unterminated string.")

		case char == '"':
			lexer.pos++
			return lexer.tokenFrom(token.KindString, start, value.String()), nil

		case char < 0x20 && char != '\t':
			return token.Token{}, lexer.syntaxError(lexer.pos,
				"Invalid character within String: %s.", lexer.describeChar(lexer.pos))

		case char != '\\':
			value.WriteByte(char)
			lexer.pos++

		default:
			escape := lexer.peekAt(1)
			if escaped, ok := escapedCharacters[escape]; ok {
				value.WriteByte(escaped)
				lexer.pos += 2
				continue
			}
			if escape != 'u' {
				return token.Token{}, lexer.syntaxError(lexer.pos,
					"Invalid character escape sequence: \\%c.", escape)
			}

			end := lexer.pos + 6
			if end > lexer.size() {
				end = lexer.size()
			}
			code := rune(-1)
			if end-lexer.pos == 6 {
				code = hexCode(lexer.body[lexer.pos+2 : end])
			}
			if code < 0 {
				return token.Token{}, lexer.syntaxError(lexer.pos,
					"Invalid character escape sequence: \\u%s.", string(lexer.body[lexer.pos+2:end]))
			}
			value.WriteRune(code)
			lexer.pos = end
		}
	}

	return token.Token{}, lexer.syntaxError(lexer.pos, "Unterminated string.")
}

// hexCode converts four hexadecimal chars to the integer that they represent. Return -1 if any of
// them is not a hexadecimal digit.
func hexCode(digits []byte) rune {
	var code rune
	for _, digit := range digits {
		var value rune
		switch {
		case digit >= '0' && digit <= '9':
			value = rune(digit - '0')
		case digit >= 'A' && digit <= 'F':
			value = rune(digit-'A') + 10
		case digit >= 'a' && digit <= 'f':
			value = rune(digit-'a') + 10
		default:
			return -1
		}
		code = code<<4 | value
	}
	return code
}

var (
	tripleQuote        = []byte(`"""`)
	escapedTripleQuote = []byte(`\"""`)
)

// lexBlockString reads a block string token from the source file.
//
//	BlockStringCharacter ::
//		SourceCharacter but not """ or \"""
//		\"""
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-String-Value
func (lexer *Lexer) lexBlockString() (token.Token, error) {
	start := lexer.pos
	// Opening triple-quote
	lexer.pos += 3

	var raw strings.Builder
	for lexer.pos < lexer.size() {
		rest := lexer.body[lexer.pos:]
		switch {
		case bytes.HasPrefix(rest, tripleQuote):
			lexer.pos += 3
			return lexer.tokenFrom(token.KindBlockString, start, BlockStringValue(raw.String())), nil

		case bytes.HasPrefix(rest, escapedTripleQuote):
			raw.WriteString(`"""`)
			lexer.pos += 4

		default:
			char := rest[0]
			if char < 0x20 && char != '\t' && char != '\n' && char != '\r' {
				return token.Token{}, lexer.syntaxError(lexer.pos,
					"Invalid character within String: %s.", lexer.describeChar(lexer.pos))
			}
			raw.WriteByte(char)
			lexer.pos++
		}
	}

	return token.Token{}, lexer.syntaxError(lexer.pos, "Unterminated string.")
}
