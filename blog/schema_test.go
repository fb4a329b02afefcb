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

package blog_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/botobag/relgraph/blog"
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/executor"
	"github.com/botobag/relgraph/graphql/parser"
	"github.com/botobag/relgraph/graphql/token"
	"github.com/botobag/relgraph/store"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func execute(schema *graphql.Schema, query string) string {
	source := token.NewSourceFromString(query)
	document, err := parser.Parse(source)
	Expect(err).ShouldNot(HaveOccurred())

	operation, errs := executor.Prepare(executor.PrepareParams{
		Schema:   schema,
		Document: document,
		Source:   source,
	})
	Expect(errs.HaveOccurred()).Should(BeFalse(), "%v", errs)

	result := operation.ExecuteSync(context.Background(), executor.ExecuteParams{})
	var buf bytes.Buffer
	Expect(result.MarshalJSONTo(&buf)).Should(Succeed())
	return buf.String()
}

var _ = Describe("Schema", func() {
	var schema *graphql.Schema

	for _, useIndex := range []bool{false, true} {
		options := blog.Options{UseIndex: useIndex}

		Context(fmt.Sprintf("UseIndex=%v", useIndex), func() {
			BeforeEach(func() {
				b, err := blog.New(store.NewDB(), options)
				Expect(err).ShouldNot(HaveOccurred())
				schema, err = blog.Schema(b)
				Expect(err).ShouldNot(HaveOccurred())
			})

			It("serves users, posts and comments", func() {
				Expect(execute(schema, `
					mutation {
						alice: addUser(name: "Alice", email: "a@example.com") { id }
						bob: addUser(name: "Bob", email: "b@example.com") { id }
						addPost(title: "Hello", content: "World", authorId: 1) { id author { name } }
						addComment(text: "Nice", authorId: 2, postId: 1) {
							id
							author { name }
							post { title author { email } }
						}
					}`)).Should(MatchJSON(`{
					"data": {
						"alice": {"id": "1"},
						"bob": {"id": "2"},
						"addPost": {"id": "1", "author": {"name": "Alice"}},
						"addComment": {
							"id": "1",
							"author": {"name": "Bob"},
							"post": {"title": "Hello", "author": {"email": "a@example.com"}}
						}
					}
				}`))

				Expect(execute(schema, `
					{
						users {
							name
							posts { title comments { text } }
							comments { text post { title } }
						}
					}`)).Should(MatchJSON(`{
					"data": {
						"users": [
							{
								"name": "Alice",
								"posts": [{"title": "Hello", "comments": [{"text": "Nice"}]}],
								"comments": []
							},
							{
								"name": "Bob",
								"posts": [],
								"comments": [{"text": "Nice", "post": {"title": "Hello"}}]
							}
						]
					}
				}`))
			})

			It("names the missing owner of a comment", func() {
				Expect(execute(schema, `
					mutation {
						addUser(name: "Alice", email: "a@example.com") { id }
						addComment(text: "x", authorId: 1, postId: 7) { id }
					}`)).Should(MatchJSON(`{
					"errors": [{
						"message": "Post not found: 7",
						"locations": [{"line": 4, "column": 7}],
						"path": ["addComment"],
						"extensions": {"code": "REFERENCE_NOT_FOUND", "kind": "Post", "id": "7"}
					}],
					"data": {"addUser": {"id": "1"}, "addComment": null}
				}`))

				Expect(execute(schema, `{ comments { id } }`)).Should(MatchJSON(`{"data": {"comments": []}}`))
			})
		})
	}
})
