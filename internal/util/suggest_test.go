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

package util_test

import (
	"github.com/botobag/relgraph/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SuggestionList", func() {
	It("returns results when input is empty", func() {
		Expect(util.SuggestionList("", []string{"a"})).Should(Equal([]string{"a"}))
	})

	It("returns empty list when there are no options", func() {
		Expect(util.SuggestionList("input", []string{""})).Should(BeEmpty())
		Expect(util.SuggestionList("input", nil)).Should(BeEmpty())
	})

	It("returns options sorted based on similarity", func() {
		Expect(util.SuggestionList("abc", []string{"a", "ab", "abc"})).Should(Equal([]string{"abc", "ab"}))
	})

	It("considers case changes as a single edit", func() {
		Expect(util.SuggestionList("abc", []string{"a", "ABC"})).Should(Equal([]string{"ABC"}))
	})

	It("considers a swap of two adjacent characters as a single edit", func() {
		Expect(util.SuggestionList("abcd", []string{"badc", "ab"})).Should(Equal([]string{"badc", "ab"}))
	})

	It("suggests field names for typos", func() {
		Expect(util.SuggestionList("titel", []string{"id", "title", "genre", "author", "reviews"})).
			Should(Equal([]string{"title"}))
	})
})

var _ = Describe("DidYouMean", func() {
	It("returns empty string without suggestions", func() {
		Expect(util.DidYouMean(nil)).Should(BeEmpty())
	})

	It("formats one suggestion", func() {
		Expect(util.DidYouMean([]string{"title"})).Should(Equal(` Did you mean "title"?`))
	})

	It("formats two suggestions", func() {
		Expect(util.DidYouMean([]string{"a", "b"})).Should(Equal(` Did you mean "a" or "b"?`))
	})

	It("formats a list of suggestions", func() {
		Expect(util.DidYouMean([]string{"a", "b", "c"})).Should(Equal(` Did you mean "a", "b", or "c"?`))
	})

	It("limits the number of suggestions", func() {
		Expect(util.DidYouMean([]string{"a", "b", "c", "d", "e", "f"})).
			Should(Equal(` Did you mean "a", "b", "c", "d", or "e"?`))
	})
})
