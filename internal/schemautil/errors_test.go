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

package schemautil_test

import (
	"context"
	"errors"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/internal/schemautil"
	. "github.com/botobag/relgraph/internal/testutil"
	"github.com/botobag/relgraph/store"
	"github.com/json-iterator/go"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("FieldError", func() {
	It("passes nil and unrelated errors through", func() {
		Expect(schemautil.FieldError(nil)).Should(BeNil())

		err := errors.New("disk full")
		Expect(schemautil.FieldError(err)).Should(BeIdenticalTo(err))
	})

	It("attaches code, kind and id to reference errors", func() {
		err := schemautil.FieldError(store.NewReferenceNotFoundError("Author", 999))
		Expect(err).Should(MatchGraphQLError(
			MessageEqual("Author not found: 999"),
			KindIs(graphql.ErrKindExecution),
		))
		Expect(err.(*graphql.Error).Extensions).Should(Equal(graphql.ErrorExtensions{
			"code": schemautil.CodeReferenceNotFound,
			"kind": "Author",
			"id":   "999",
		}))
	})

	It("serializes reference errors with their extensions", func() {
		err := schemautil.FieldError(store.NewReferenceNotFoundError("Author", 999))
		data, e := jsoniter.Marshal(err)
		Expect(e).ShouldNot(HaveOccurred())
		Expect(data).Should(MatchJSON(`{
			"message": "Author not found: 999",
			"extensions": {"code": "REFERENCE_NOT_FOUND", "kind": "Author", "id": "999"}
		}`))
	})
})

var _ = Describe("Resolver", func() {
	It("returns the result of the function", func() {
		resolver := schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			return source, nil
		})
		Expect(resolver.Resolve(context.Background(), "value", nil)).Should(Equal("value"))
	})

	It("converts the error of the function", func() {
		resolver := schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			return nil, store.NewReferenceNotFoundError("Post", 3)
		})
		result, err := resolver.Resolve(context.Background(), nil, nil)
		Expect(result).Should(BeNil())
		Expect(err).Should(MatchGraphQLError(
			MessageEqual("Post not found: 3"),
			ExtensionsHaveKeyWithValue("code", "REFERENCE_NOT_FOUND"),
		))
	})
})
