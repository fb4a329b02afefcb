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
	"sync"

	"github.com/botobag/relgraph/concurrent"
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/handler"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type recordingObserver struct {
	mutex        sync.Mutex
	observations []handler.Observation
}

func (o *recordingObserver) ObserveRequest(observation *handler.Observation) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.observations = append(o.observations, *observation)
}

func (o *recordingObserver) outcomes() []handler.Outcome {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	outcomes := make([]handler.Outcome, len(o.observations))
	for i, observation := range o.observations {
		outcomes[i] = observation.Outcome
	}
	return outcomes
}

var _ = Describe("HTTP Handler", func() {
	var (
		counter int
		schema  *graphql.Schema
	)

	BeforeEach(func() {
		counter = 0
		schema = newCounterSchema(&counter)
	})

	serve := func(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	get := func(query string) *http.Request {
		return httptest.NewRequest(http.MethodGet, "/graphql?"+url.Values{"query": {query}}.Encode(), nil)
	}

	postJSON := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		return r
	}

	It("requires a schema", func() {
		_, err := handler.New(nil)
		Expect(err).Should(MatchError("relgraph/handler: must specify a schema"))
	})

	It("serves query from GET request", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, get("{ greet }"))
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).Should(Equal("application/json"))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"data": { "greet": "Hello, World" }
		}`))
	})

	It("serves query from POST request with variables", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{
			"query": "query Greet($name: String) { greet(name: $name) }",
			"variables": { "name": "Luke" }
		}`))
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"data": { "greet": "Hello, Luke" }
		}`))
	})

	It("responds 400 to empty query", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{}`))
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"errors": [{ "message": "Must provide query string." }]
		}`))
	})

	It("responds 400 to malformed request", func() {
		h, err := handler.New(schema, handler.MaxBodySize(8))
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{"query": "{ greet }"}`))
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"errors": [{ "message": "request body is too large" }]
		}`))
	})

	It("responds 400 to syntax error", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, get("{"))
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"errors": [{
				"message": "Syntax Error: Expected Name, found <EOF>",
				"locations": [{ "line": 1, "column": 2 }]
			}]
		}`))
	})

	It("responds 200 to validation error without data", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, get("{ nope }"))
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"errors": [{
				"message": "Cannot query field \"nope\" on type \"Query\".",
				"locations": [{ "line": 1, "column": 3 }]
			}]
		}`))
	})

	It("responds 200 to field errors with partial data", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, get("{ greet fail }"))
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"errors": [{
				"message": "failed",
				"locations": [{ "line": 1, "column": 9 }],
				"path": ["fail"]
			}],
			"data": { "greet": "Hello, World", "fail": null }
		}`))
	})

	It("caches prepared operations by query and operation name", func() {
		cache, err := handler.NewLRUOperationCache(8)
		Expect(err).ShouldNot(HaveOccurred())

		h, err := handler.New(schema, handler.OverrideOperationCache(cache))
		Expect(err).ShouldNot(HaveOccurred())

		const document = `query A { a: greet(name: "A") } query B { b: greet(name: "B") }`
		request := func(operationName string) *http.Request {
			values := url.Values{}
			values.Set("query", document)
			values.Set("operationName", operationName)
			return httptest.NewRequest(http.MethodGet, "/graphql?"+values.Encode(), nil)
		}

		Expect(serve(h, request("A")).Body.String()).Should(MatchJSON(`{"data": {"a": "Hello, A"}}`))
		Expect(cache.Len()).Should(Equal(1))
		Expect(serve(h, request("A")).Body.String()).Should(MatchJSON(`{"data": {"a": "Hello, A"}}`))
		Expect(cache.Len()).Should(Equal(1))
		Expect(serve(h, request("B")).Body.String()).Should(MatchJSON(`{"data": {"b": "Hello, B"}}`))
		Expect(cache.Len()).Should(Equal(2))
	})

	It("evicts the least recently used operations", func() {
		cache, err := handler.NewLRUOperationCache(1)
		Expect(err).ShouldNot(HaveOccurred())

		h, err := handler.New(schema, handler.OverrideOperationCache(cache))
		Expect(err).ShouldNot(HaveOccurred())

		serve(h, get("{ a: greet }"))
		serve(h, get("{ b: greet }"))
		Expect(cache.Len()).Should(Equal(1))
		_, ok := cache.Get("\x00{ a: greet }")
		Expect(ok).Should(BeFalse())
		_, ok = cache.Get("\x00{ b: greet }")
		Expect(ok).Should(BeTrue())
	})

	It("works without operation cache", func() {
		h, err := handler.New(schema, handler.OverrideOperationCache(handler.NopOperationCache{}))
		Expect(err).ShouldNot(HaveOccurred())

		Expect(serve(h, get("{ greet }")).Body.String()).Should(MatchJSON(`{"data": {"greet": "Hello, World"}}`))
		Expect(serve(h, get("{ greet }")).Body.String()).Should(MatchJSON(`{"data": {"greet": "Hello, World"}}`))
	})

	It("runs mutations on the mutation runner", func() {
		runner := concurrent.NewSerialExecutor(4)
		defer func() {
			terminated, err := runner.Shutdown()
			Expect(err).ShouldNot(HaveOccurred())
			Eventually(terminated).Should(BeClosed())
		}()

		h, err := handler.New(schema, handler.MutationRunner(runner))
		Expect(err).ShouldNot(HaveOccurred())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				w := serve(h, postJSON(`{"query": "mutation { increment }"}`))
				Expect(w.Code).Should(Equal(http.StatusOK))
			}()
		}
		wg.Wait()

		Expect(counter).Should(Equal(8))
		Expect(serve(h, postJSON(`{"query": "mutation { increment }"}`)).Body.String()).Should(MatchJSON(`{
			"data": { "increment": 9 }
		}`))
	})

	It("notifies observer", func() {
		observer := &recordingObserver{}
		h, err := handler.New(schema, handler.WithObserver(observer))
		Expect(err).ShouldNot(HaveOccurred())

		serve(h, get("{ greet }"))
		serve(h, get("{ fail }"))
		serve(h, get("{ nope }"))
		serve(h, postJSON(`{"query": "mutation { increment }"}`))

		Expect(observer.outcomes()).Should(Equal([]handler.Outcome{
			handler.OutcomeSuccess,
			handler.OutcomeFieldError,
			handler.OutcomeRejected,
			handler.OutcomeSuccess,
		}))
		Expect(observer.observations[0].OperationType()).Should(Equal("query"))
		Expect(observer.observations[2].OperationType()).Should(Equal("unknown"))
		Expect(observer.observations[3].OperationType()).Should(Equal("mutation"))
	})

	Describe("middlewares", func() {
		It("modifies request before execution", func() {
			h, err := handler.New(schema, handler.Middlewares(
				handler.RequestMiddlewareFunc(func(request *handler.Request, next *handler.RequestMiddlewareNext) {
					request.Params.RootValue = map[string]interface{}{
						"root": "from middleware",
					}
					next.Next(request)
				}),
			))
			Expect(err).ShouldNot(HaveOccurred())

			Expect(serve(h, get("{ root }")).Body.String()).Should(MatchJSON(`{
				"data": { "root": "from middleware" }
			}`))
		})

		It("short-circuits with an error", func() {
			h, err := handler.New(schema, handler.Middlewares(
				handler.RequestMiddlewareFunc(func(request *handler.Request, next *handler.RequestMiddlewareNext) {
					next.NextError(graphql.NewError("access denied").(*graphql.Error))
				}),
				handler.RequestMiddlewareFunc(func(request *handler.Request, next *handler.RequestMiddlewareNext) {
					Fail("should not be called")
				}),
			))
			Expect(err).ShouldNot(HaveOccurred())

			w := serve(h, get("{ greet }"))
			Expect(w.Code).Should(Equal(http.StatusOK))
			Expect(w.Body.String()).Should(MatchJSON(`{
				"errors": [{ "message": "access denied" }]
			}`))
		})
	})
})
