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

package executor_test

import (
	"github.com/botobag/relgraph/graphql"
	. "github.com/botobag/relgraph/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Validate", func() {
	var (
		counter int
		schema  *graphql.Schema
	)

	BeforeEach(func() {
		schema = newDroidSchema(&counter)
	})

	expectError := func(query string, matchers ...ErrorFieldsMatcher) {
		operation, errs := prepare(schema, query, "")
		Expect(operation).Should(BeNil())
		Expect(errs).Should(ConsistOfGraphQLErrors(
			MatchGraphQLError(append(matchers, KindIs(graphql.ErrKindValidation))...)))
	}

	It("accepts valid operation", func() {
		operation, errs := prepare(schema, `
			query ($id: ID!, $withFriends: Boolean = true) {
				droid(id: $id) {
					...Names
					friends @include(if: $withFriends) { ...Names }
				}
			}
			fragment Names on Droid { __typename name }
		`, "")
		Expect(errs.HaveOccurred()).Should(BeFalse())
		Expect(operation).ShouldNot(BeNil())
		Expect(operation.RootType().Name()).Should(Equal("Query"))
		Expect(operation.VariableDefinitions()).Should(HaveLen(2))
	})

	It("rejects unknown fields with suggestions", func() {
		expectError(`{ hero { nam } }`,
			MessageEqual(`Cannot query field "nam" on type "Droid". Did you mean "name"?`),
			LocationEqual(graphql.ErrorLocation{Line: 1, Column: 10}))
	})

	It("rejects unknown fields without suggestions", func() {
		expectError(`{ starship }`,
			MessageEqual(`Cannot query field "starship" on type "Query".`))
	})

	It("requires selection on object field", func() {
		expectError(`{ hero }`,
			MessageEqual(`Field "hero" of type "Droid" must have a selection of subfields. Did you mean "hero { ... }"?`),
			LocationEqual(graphql.ErrorLocation{Line: 1, Column: 3}))
	})

	It("rejects selection on leaf field", func() {
		expectError(`{ greet { length } }`,
			MessageEqual(`Field "greet" must not have a selection since type "String" has no subfields.`))
	})

	It("rejects selection on __typename", func() {
		expectError(`{ __typename { name } }`,
			MessageEqual(`Field "__typename" must not have a selection since type "String!" has no subfields.`))
	})

	It("requires non-null arguments", func() {
		expectError(`{ droid { name } }`,
			MessageEqual(`Field "droid" argument "id" of type "ID!" is required, but it was not provided.`))
	})

	It("rejects null for non-null argument", func() {
		_, errs := prepare(schema, `{ droid(id: null) { name } }`, "")
		Expect(errs.Errors).Should(ContainElement(MatchGraphQLError(
			MessageEqual(`Argument "id" of non-null type "ID!" must not be null.`),
			LocationEqual(graphql.ErrorLocation{Line: 1, Column: 13}),
		)))
	})

	It("rejects unknown arguments", func() {
		expectError(`{ greet(nme: "Luke") }`,
			MessageEqual(`Unknown argument "nme" on field "Query.greet". Did you mean "name"?`),
			LocationEqual(graphql.ErrorLocation{Line: 1, Column: 9}))
	})

	It("rejects duplicate arguments", func() {
		expectError(`{ greet(name: "a", name: "b") }`,
			MessageEqual(`There can be only one argument named "name".`))
	})

	It("rejects invalid literal for argument", func() {
		expectError(`{ greet(name: 1) }`,
			MessageContainSubstring(`Argument "name" has invalid value 1;`),
			LocationEqual(graphql.ErrorLocation{Line: 1, Column: 15}))
	})

	It("rejects unknown fragments", func() {
		expectError(`{ hero { ...Missing } }`,
			MessageEqual(`Unknown fragment "Missing".`))
	})

	It("rejects fragment cycles", func() {
		expectError(`
			{ hero { ...A } }
			fragment A on Droid { name ...A }
		`, MessageEqual(`Cannot spread fragment "A" within itself.`))
	})

	It("rejects fragments on unknown types", func() {
		expectError(`{ hero { ... on Starship { name } } }`,
			MessageEqual(`Unknown type "Starship".`))
	})

	It("rejects fragments spread on mismatched type", func() {
		expectError(`{ hero { ... on Query { greet } } }`,
			MessageEqual(`Fragment cannot be spread here as objects of type "Droid" can never be of type "Query".`))
		expectError(`
			{ hero { ...Q } }
			fragment Q on Query { greet }
		`, MessageEqual(`Fragment "Q" cannot be spread here as objects of type "Droid" can never be of type "Query".`))
	})

	It("rejects undefined variables", func() {
		expectError(`{ greet(name: $who) }`,
			MessageEqual(`Variable "$who" is not defined.`),
			LocationEqual(graphql.ErrorLocation{Line: 1, Column: 15}))
		expectError(`query Q { greet(name: $who) }`,
			MessageEqual(`Variable "$who" is not defined by operation "Q".`))
	})

	It("rejects duplicate variables", func() {
		expectError(`query ($a: String, $a: String) { greet(name: $a) }`,
			MessageEqual(`There can be only one variable named "a".`))
	})

	It("rejects variables used in positions their types do not allow", func() {
		expectError(`query ($a: Int!) { droid(id: $a) { name } }`,
			MessageEqual(`Variable "$a" of type "Int!" used in position expecting type "ID!".`))
		expectError(`query ($id: ID) { droid(id: $id) { name } }`,
			MessageEqual(`Variable "$id" of type "ID" used in position expecting type "ID!".`))
		expectError(`query ($skip: String!) { greet @skip(if: $skip) }`,
			MessageEqual(`Variable "$skip" of type "String!" used in position expecting type "Boolean!".`))

		_, errs := prepare(schema, `query ($a: Int!) { droid(id: $a) { name } }`, "")
		Expect(errs.Errors).Should(HaveLen(1))
		Expect(errs.Errors[0].Locations).Should(Equal([]graphql.ErrorLocation{
			{Line: 1, Column: 8},
			{Line: 1, Column: 30},
		}))
	})

	It("accepts nullable variables with default in non-null positions", func() {
		operation, errs := prepare(schema, `query ($id: ID = 2000, $name: String) {
			droid(id: $id) { name }
			greet(name: $name)
		}`, "")
		Expect(errs.HaveOccurred()).Should(BeFalse())
		Expect(operation).ShouldNot(BeNil())
	})

	It("rejects variables of non-input type", func() {
		expectError(`query ($d: Droid) { greet }`,
			MessageEqual(`Variable "$d" cannot be non-input type "Droid".`))
	})

	It("rejects unknown directives", func() {
		expectError(`{ greet @deprecated }`,
			MessageEqual(`Unknown directive "deprecated".`))
	})

	It("requires the if argument in @skip and @include", func() {
		expectError(`{ greet @skip }`,
			MessageEqual(`Directive "skip" argument "if" of type "Boolean!" is required, but it was not provided.`))
		expectError(`{ greet @include(if: "yes") }`,
			MessageEqual(`Argument "if" has invalid value "yes"; Expected type "Boolean!".`))
	})

	It("reports every error found in the operation", func() {
		_, errs := prepare(schema, `{ hero { nam } starship greet(nme: "x") }`, "")
		Expect(errs).Should(ConsistOfGraphQLErrors(
			MatchGraphQLError(MessageEqual(`Cannot query field "nam" on type "Droid". Did you mean "name"?`)),
			MatchGraphQLError(MessageEqual(`Cannot query field "starship" on type "Query".`)),
			MatchGraphQLError(MessageEqual(`Unknown argument "nme" on field "Query.greet". Did you mean "name"?`)),
		))
	})
})
