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

package lexer_test

import (
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/lexer"
	"github.com/botobag/relgraph/graphql/token"
	. "github.com/botobag/relgraph/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gstruct"
	"github.com/onsi/gomega/types"
)

func lexOne(body string) (token.Token, error) {
	return lexer.New(token.NewSourceFromString(body)).Advance()
}

func matchToken(kind token.Kind, location token.SourceLocation, length uint, value string) types.GomegaMatcher {
	return gstruct.MatchAllFields(gstruct.Fields{
		"Kind":     Equal(kind),
		"Location": Equal(location),
		"Length":   Equal(length),
		"Value":    Equal(value),
	})
}

func expectSyntaxError(body string, message string, line uint, column uint) {
	_, err := lexOne(body)
	Expect(err).Should(MatchGraphQLError(
		MessageEqual("Syntax Error: "+message),
		LocationEqual(graphql.ErrorLocation{Line: line, Column: column}),
		KindIs(graphql.ErrKindSyntax),
	), "body: %q", body)
}

var _ = Describe("Lexer", func() {
	It("starts with SOF and keeps returning EOF", func() {
		l := lexer.New(token.NewSourceFromString(""))
		Expect(l.Token().Kind).Should(Equal(token.KindSOF))

		for i := 0; i < 2; i++ {
			tok, err := l.Advance()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(tok.Kind).Should(Equal(token.KindEOF))
		}
	})

	It("skips the BOM, whitespace, commas and comments", func() {
		tok, err := lexOne("\ufeff ,\t\r\n # comment\n  foo  ")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok).Should(matchToken(token.KindName, 22, 3, "foo"))
	})

	It("peeks at the next token without advancing", func() {
		l := lexer.New(token.NewSourceFromString("a b"))
		next, err := l.Lookahead()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(next.Value).Should(Equal("a"))
		Expect(l.Token().Kind).Should(Equal(token.KindSOF))

		tok, err := l.Advance()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok).Should(Equal(next))
	})

	It("lexes punctuation", func() {
		l := lexer.New(token.NewSourceFromString("! $ ( ) ... : = @ [ ] { }"))
		var kinds []token.Kind
		for {
			tok, err := l.Advance()
			Expect(err).ShouldNot(HaveOccurred())
			if tok.Kind == token.KindEOF {
				break
			}
			kinds = append(kinds, tok.Kind)
		}
		Expect(kinds).Should(Equal([]token.Kind{
			token.KindBang,
			token.KindDollar,
			token.KindLeftParen,
			token.KindRightParen,
			token.KindSpread,
			token.KindColon,
			token.KindEquals,
			token.KindAt,
			token.KindLeftBracket,
			token.KindRightBracket,
			token.KindLeftBrace,
			token.KindRightBrace,
		}))
	})

	It("lexes strings", func() {
		tok, err := lexOne(`"simple"`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok).Should(matchToken(token.KindString, 1, 8, "simple"))

		tok, err = lexOne(`"escaped \n\r\b\t\f \"quoted\" \\ \/"`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Value).Should(Equal("escaped \n\r\b\t\f \"quoted\" \\ /"))

		tok, err = lexOne(`"unicode \u1234\u5678\u90AB\uCDEF"`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Value).Should(Equal("unicode \u1234\u5678\u90AB\uCDEF"))
	})

	It("reports string errors", func() {
		expectSyntaxError(`"`, "Unterminated string.", 1, 2)
		expectSyntaxError(`"no end`, "Unterminated string.", 1, 8)
		expectSyntaxError("\"multi\nline\"", "Unterminated string.", 1, 7)
		expectSyntaxError("\"contains \u0007\"", `Invalid character within String: "\u0007".`, 1, 11)
		expectSyntaxError(`"bad \z esc"`, `Invalid character escape sequence: \z.`, 1, 6)
		expectSyntaxError(`"bad \u1 esc"`, `Invalid character escape sequence: \u1 es.`, 1, 6)
		expectSyntaxError(`'single'`, `Unexpected single quote character ('), did you mean to use a double quote (")?`, 1, 1)
	})

	It("lexes block strings", func() {
		tok, err := lexOne(`"""simple"""`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok).Should(matchToken(token.KindBlockString, 1, 12, "simple"))

		tok, err = lexOne(`"""contains \""" triple quote"""`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Value).Should(Equal(`contains """ triple quote`))

		tok, err = lexOne("\"\"\"\n\n    spans\n      multiple\n    lines\n\n\"\"\"")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Value).Should(Equal("spans\n  multiple\nlines"))

		expectSyntaxError(`"""no end`, "Unterminated string.", 1, 10)
	})

	It("lexes numbers", func() {
		for _, c := range []struct {
			body string
			kind token.Kind
		}{
			{"4", token.KindInt},
			{"-4", token.KindInt},
			{"0", token.KindInt},
			{"9007199254740993", token.KindInt},
			{"4.123", token.KindFloat},
			{"-0.123", token.KindFloat},
			{"123e4", token.KindFloat},
			{"1.5E-3", token.KindFloat},
			{"-1.123e+4", token.KindFloat},
		} {
			tok, err := lexOne(c.body)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(tok).Should(matchToken(c.kind, 1, uint(len(c.body)), c.body))
		}
	})

	It("reports number errors", func() {
		expectSyntaxError("00", `Invalid number, unexpected digit after 0: "0".`, 1, 2)
		expectSyntaxError("-", "Invalid number, expected digit after '-' but got: <EOF>.", 1, 2)
		expectSyntaxError("1.", "Invalid number, expected digit after decimal point ('.') but got: <EOF>.", 1, 3)
		expectSyntaxError("1.A", `Invalid number, expected digit after decimal point ('.') but got: "A".`, 1, 3)
		expectSyntaxError("1.0e", "Invalid number, expected digit but got: <EOF>.", 1, 5)
	})

	It("reports unexpected characters", func() {
		expectSyntaxError("..", `Cannot parse the unexpected character ".".`, 1, 1)
		expectSyntaxError("?", `Cannot parse the unexpected character "?".`, 1, 1)
		expectSyntaxError("\u0007", `Cannot contain the invalid character "\u0007".`, 1, 1)
		expectSyntaxError("\n\n   ?\n", `Cannot parse the unexpected character "?".`, 3, 4)
	})
})

var _ = Describe("BlockStringValue", func() {
	It("removes common indentation", func() {
		Expect(lexer.BlockStringValue("\n    Hello,\n      World!\n\n    Yours,\n      GraphQL.")).Should(
			Equal("Hello,\n  World!\n\nYours,\n  GraphQL."))
	})

	It("keeps the indentation of the first line", func() {
		Expect(lexer.BlockStringValue("  first\n    second")).Should(Equal("  first\nsecond"))
	})

	It("removes leading and trailing blank lines", func() {
		Expect(lexer.BlockStringValue("\n\n  \n  text\n  \n\n")).Should(Equal("text"))
	})
})
