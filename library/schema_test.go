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

package library_test

import (
	"bytes"
	"context"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/executor"
	"github.com/botobag/relgraph/graphql/parser"
	"github.com/botobag/relgraph/graphql/token"
	"github.com/botobag/relgraph/library"
	"github.com/botobag/relgraph/store"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func execute(schema *graphql.Schema, query string, variables map[string]interface{}) string {
	source := token.NewSourceFromString(query)
	document, err := parser.Parse(source)
	Expect(err).ShouldNot(HaveOccurred())

	operation, errs := executor.Prepare(executor.PrepareParams{
		Schema:   schema,
		Document: document,
		Source:   source,
	})
	if errs.HaveOccurred() {
		result := executor.ExecutionResult{Errors: errs}
		return marshalResult(&result)
	}

	result := operation.ExecuteSync(context.Background(), executor.ExecuteParams{
		VariableValues: variables,
	})
	return marshalResult(&result)
}

func marshalResult(result *executor.ExecutionResult) string {
	var buf bytes.Buffer
	Expect(result.MarshalJSONTo(&buf)).Should(Succeed())
	return buf.String()
}

var _ = Describe("Schema", func() {
	for _, useIndex := range []bool{false, true} {
		useIndex := useIndex

		Context(map[bool]string{false: "with scan", true: "with owner index"}[useIndex], func() {
			var (
				lib    *library.Library
				schema *graphql.Schema
			)

			BeforeEach(func() {
				var err error
				lib, err = library.New(store.NewDB(), library.Options{UseIndex: useIndex})
				Expect(err).ShouldNot(HaveOccurred())
				schema, err = library.Schema(lib)
				Expect(err).ShouldNot(HaveOccurred())
			})

			It("serves an empty library", func() {
				Expect(execute(schema, `{ authors { id } books { id } reviews { id } }`, nil)).Should(MatchJSON(`{
					"data": {"authors": [], "books": [], "reviews": []}
				}`))
			})

			It("adds an author and a book and lists the books of the author", func() {
				Expect(execute(schema, `mutation { addAuthor(name: "Ada") { id name } }`, nil)).Should(MatchJSON(`{
					"data": {"addAuthor": {"id": "1", "name": "Ada"}}
				}`))

				Expect(execute(schema, `
					mutation AddBook($author: ID!) {
						addBook(title: "Book1", genre: "Fiction", authorId: $author) {
							id
							author { id }
						}
					}`, map[string]interface{}{"author": "1"})).Should(MatchJSON(`{
					"data": {"addBook": {"id": "1", "author": {"id": "1"}}}
				}`))

				Expect(execute(schema, `{ authors { name books { title genre } } }`, nil)).Should(MatchJSON(`{
					"data": {"authors": [{"name": "Ada", "books": [{"title": "Book1", "genre": "Fiction"}]}]}
				}`))
			})

			It("reports a missing author as a field error", func() {
				Expect(execute(schema, `mutation { addBook(title: "X", genre: "G", authorId: 999) { id } }`, nil)).Should(MatchJSON(`{
					"errors": [{
						"message": "Author not found: 999",
						"locations": [{"line": 1, "column": 12}],
						"path": ["addBook"],
						"extensions": {"code": "REFERENCE_NOT_FOUND", "kind": "Author", "id": "999"}
					}],
					"data": {"addBook": null}
				}`))

				Expect(execute(schema, `{ books { id } }`, nil)).Should(MatchJSON(`{"data": {"books": []}}`))
			})

			It("walks from a review back to the author", func() {
				lib.AddAuthor("A")
				_, err := lib.AddBook("B", "Fiction", 1)
				Expect(err).ShouldNot(HaveOccurred())

				Expect(execute(schema, `
					mutation {
						addReview(rating: 5, bookId: "1") {
							id
							rating
							comment
							book { title author { id name } }
						}
					}`, nil)).Should(MatchJSON(`{
					"data": {
						"addReview": {
							"id": "1",
							"rating": 5,
							"comment": null,
							"book": {"title": "B", "author": {"id": "1", "name": "A"}}
						}
					}
				}`))
			})

			It("runs mutation fields in order", func() {
				Expect(execute(schema, `
					mutation {
						first: addAuthor(name: "A") { id }
						book: addBook(title: "T", genre: "G", authorId: 1) { id }
						review: addReview(rating: 3, comment: "ok", bookId: 1) { comment book { reviews { rating } } }
					}`, nil)).Should(MatchJSON(`{
					"data": {
						"first": {"id": "1"},
						"book": {"id": "1"},
						"review": {"comment": "ok", "book": {"reviews": [{"rating": 3}]}}
					}
				}`))
			})

			It("rejects malformed IDs before running resolvers", func() {
				result := execute(schema, `mutation { addBook(title: "X", genre: "G", authorId: "abc") { id } }`, nil)
				Expect(result).Should(ContainSubstring(`"errors"`))
				Expect(result).ShouldNot(ContainSubstring(`"data"`))

				result = execute(schema, `mutation ($id: ID!) { addReview(rating: 1, bookId: $id) { id } }`,
					map[string]interface{}{"id": -4})
				Expect(result).Should(ContainSubstring(`Variable \"$id\" got invalid value -4`))
				Expect(result).ShouldNot(ContainSubstring(`"data"`))

				Expect(lib.Books()).Should(BeEmpty())
				Expect(lib.Reviews()).Should(BeEmpty())
			})

			It("rejects variables of other types in ID positions", func() {
				lib.AddAuthor("A")

				Expect(execute(schema, `
					mutation M($a: Int!) {
						addBook(title: "X", genre: "G", authorId: $a) { id }
					}`, map[string]interface{}{"a": 1})).Should(MatchJSON(`{
					"errors": [{
						"message": "Variable \"$a\" of type \"Int!\" used in position expecting type \"ID!\".",
						"locations": [{"line": 2, "column": 17}, {"line": 3, "column": 49}]
					}]
				}`))

				Expect(lib.Books()).Should(BeEmpty())
			})
		})
	}
})
