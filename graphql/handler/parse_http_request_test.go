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

package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/botobag/relgraph/graphql/handler"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseHTTPRequest", func() {
	options := &handler.ParseHTTPRequestOptions{
		MaxBodySize: 1024,
	}

	post := func(contentType string, body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
		if len(contentType) > 0 {
			r.Header.Set("Content-Type", contentType)
		}
		return r
	}

	Context("GET", func() {
		It("reads parameters from URL", func() {
			values := url.Values{}
			values.Set("query", "query Q($n: String) { greet(name: $n) }")
			values.Set("operationName", "Q")
			values.Set("variables", `{"n": "Luke"}`)

			r := httptest.NewRequest(http.MethodGet, "/graphql?"+values.Encode(), nil)
			req, err := handler.ParseHTTPRequest(r, options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req).Should(Equal(&handler.HTTPRequest{
				Query:         "query Q($n: String) { greet(name: $n) }",
				OperationName: "Q",
				Variables: map[string]interface{}{
					"n": "Luke",
				},
			}))
		})

		It("uses the populated form", func() {
			r := httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bignored%7D", nil)
			r.Form = url.Values{
				"query": {"{ greet }"},
			}
			req, err := handler.ParseHTTPRequest(r, options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req.Query).Should(Equal("{ greet }"))
		})

		It("rejects multiple values for a parameter", func() {
			r := httptest.NewRequest(http.MethodGet, "/graphql?query=a&query=b", nil)
			_, err := handler.ParseHTTPRequest(r, options)
			Expect(err).Should(MatchError(`multiple values are provided to "query", but only one expected`))
			Expect(err).Should(BeAssignableToTypeOf(&handler.HTTPRequestParseError{}))
		})

		It("rejects variables that are not an object", func() {
			r := httptest.NewRequest(http.MethodGet, "/graphql?query=x&variables=%5B1%5D", nil)
			_, err := handler.ParseHTTPRequest(r, options)
			Expect(err).Should(MatchError("variables must be an object, got []interface {}"))
		})
	})

	Context("POST", func() {
		It("decodes JSON body", func() {
			req, err := handler.ParseHTTPRequest(post("application/json", `{
				"query": "{ greet(name: $n) }",
				"operationName": "",
				"variables": { "n": "Leia" }
			}`), options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req).Should(Equal(&handler.HTTPRequest{
				Query: "{ greet(name: $n) }",
				Variables: map[string]interface{}{
					"n": "Leia",
				},
			}))
		})

		It("decodes JSON body with charset and without content type", func() {
			req, err := handler.ParseHTTPRequest(post("application/json; charset=utf-8", `{"query": "{ a }"}`), options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req.Query).Should(Equal("{ a }"))

			req, err = handler.ParseHTTPRequest(post("", `{"query": "{ b }"}`), options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req.Query).Should(Equal("{ b }"))
		})

		It("accepts variables encoded as string", func() {
			req, err := handler.ParseHTTPRequest(post("application/json", `{
				"query": "{ a }",
				"variables": "{\"n\": 1}"
			}`), options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req.Variables).Should(Equal(map[string]interface{}{
				"n": float64(1),
			}))
		})

		It("treats null and empty variables as none", func() {
			req, err := handler.ParseHTTPRequest(post("application/json", `{"query": "{ a }", "variables": null}`), options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req.Variables).Should(BeNil())

			req, err = handler.ParseHTTPRequest(post("application/json", `{"query": "{ a }", "variables": ""}`), options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req.Variables).Should(BeNil())
		})

		It("reads application/graphql body as query", func() {
			req, err := handler.ParseHTTPRequest(post("application/graphql", `{ greet }`), options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req).Should(Equal(&handler.HTTPRequest{
				Query: "{ greet }",
			}))
		})

		It("decodes form body", func() {
			values := url.Values{}
			values.Set("query", "{ greet }")
			values.Set("variables", `{"x": true}`)
			req, err := handler.ParseHTTPRequest(post("application/x-www-form-urlencoded", values.Encode()), options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req).Should(Equal(&handler.HTTPRequest{
				Query: "{ greet }",
				Variables: map[string]interface{}{
					"x": true,
				},
			}))
		})

		It("returns empty request for unsupported content type", func() {
			req, err := handler.ParseHTTPRequest(post("text/plain", `{ greet }`), options)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(req).Should(Equal(&handler.HTTPRequest{}))
		})

		It("rejects malformed JSON", func() {
			_, err := handler.ParseHTTPRequest(post("application/json", `{"query":`), options)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(HavePrefix("decode request body"))
		})

		It("rejects body exceeding the limit", func() {
			_, err := handler.ParseHTTPRequest(post("application/graphql", strings.Repeat(" ", 1025)), options)
			Expect(err).Should(MatchError("request body is too large"))
		})
	})

	It("rejects unsupported methods", func() {
		r := httptest.NewRequest(http.MethodPut, "/graphql", nil)
		_, err := handler.ParseHTTPRequest(r, options)
		Expect(err).Should(MatchError("unsupported method PUT"))
	})
})
