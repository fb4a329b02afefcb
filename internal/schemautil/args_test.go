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
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/internal/schemautil"
	. "github.com/botobag/relgraph/internal/testutil"
	"github.com/botobag/relgraph/store"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// argsInfo provides only the argument values of a field.
type argsInfo struct {
	graphql.ResolveInfo
	args map[string]interface{}
}

func (info argsInfo) Args() graphql.ArgumentValues {
	return graphql.NewArgumentValues(info.args)
}

var _ = Describe("ArgID", func() {
	It("returns coerced ID", func() {
		id, err := schemautil.ArgID(argsInfo{args: map[string]interface{}{"authorId": store.ID(3)}}, "authorId")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(id).Should(Equal(store.ID(3)))
	})

	It("rejects values that were not coerced by the ID scalar", func() {
		_, err := schemautil.ArgID(argsInfo{args: map[string]interface{}{"authorId": 1}}, "authorId")
		Expect(err).Should(MatchGraphQLError(
			MessageEqual(`argument "authorId" holds int 1 instead of an ID`),
			KindIs(graphql.ErrKindInternal),
		))

		_, err = schemautil.ArgID(argsInfo{args: map[string]interface{}{"authorId": "1"}}, "authorId")
		Expect(err).Should(MatchGraphQLError(
			MessageEqual(`argument "authorId" holds string 1 instead of an ID`),
		))
	})

	It("rejects missing and zero ID", func() {
		_, err := schemautil.ArgID(argsInfo{}, "postId")
		Expect(err).Should(MatchGraphQLError(
			MessageEqual(`argument "postId" holds <nil> <nil> instead of an ID`),
		))

		_, err = schemautil.ArgID(argsInfo{args: map[string]interface{}{"postId": store.NoID}}, "postId")
		Expect(err).Should(HaveOccurred())
	})
})
