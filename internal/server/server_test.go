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

package server_test

import (
	"context"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/json-iterator/go"

	"github.com/botobag/relgraph/internal/config"
	"github.com/botobag/relgraph/internal/server"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type response struct {
	code   int
	header http.Header
	body   string
}

func do(h http.Handler, r *http.Request) response {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return response{
		code:   w.Code,
		header: w.Header(),
		body:   w.Body.String(),
	}
}

func postGraphQL(h http.Handler, path string, query string, variables map[string]interface{}) response {
	body, err := jsoniter.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	Expect(err).ShouldNot(HaveOccurred())

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(body)))
	r.Header.Set("Content-Type", "application/json")
	return do(h, r)
}

var _ = Describe("Server", func() {
	var (
		cfg *config.Config
		s   *server.Server
	)

	BeforeEach(func() {
		cfg = config.Default()
	})

	JustBeforeEach(func() {
		var err error
		s, err = server.New(cfg)
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		Expect(s.Shutdown(ctx)).Should(Succeed())
	})

	It("rejects invalid configuration", func() {
		invalid := config.Default()
		invalid.ListenAddr = ""
		_, err := server.New(invalid)
		Expect(err).Should(MatchError("invalid config: ListenAddr must not be empty"))
	})

	It("answers health check", func() {
		resp := do(s.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		Expect(resp.code).Should(Equal(http.StatusOK))
		Expect(resp.body).Should(Equal("ok\n"))

		resp = do(s.Handler(), httptest.NewRequest(http.MethodPost, "/healthz", nil))
		Expect(resp.code).Should(Equal(http.StatusMethodNotAllowed))

		resp = do(s.Handler(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		Expect(resp.code).Should(Equal(http.StatusNotFound))
	})

	It("reports unhealthy when an owner index diverges from its table", func() {
		s.Library().AddAuthor("A")
		s.Library().AddAuthor("B")
		book, err := s.Library().AddBook("T", "G", 1)
		Expect(err).ShouldNot(HaveOccurred())

		resp := do(s.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		Expect(resp.code).Should(Equal(http.StatusOK))

		book.AuthorID = 2
		resp = do(s.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		Expect(resp.code).Should(Equal(http.StatusServiceUnavailable))
		Expect(resp.body).Should(HavePrefix("library: "))
	})

	It("assigns request IDs", func() {
		resp := do(s.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		_, err := uuid.Parse(resp.header.Get(server.RequestIDHeader))
		Expect(err).ShouldNot(HaveOccurred())

		r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		r.Header.Set(server.RequestIDHeader, "client-chosen")
		resp = do(s.Handler(), r)
		Expect(resp.header.Get(server.RequestIDHeader)).Should(Equal("client-chosen"))
	})

	Describe("library endpoint", func() {
		It("adds an author and a book and lists the books of the author", func() {
			h := s.Handler()

			resp := postGraphQL(h, "/graphql", `mutation { addAuthor(name: "Ada") { id } }`, nil)
			Expect(resp.code).Should(Equal(http.StatusOK))
			Expect(resp.body).Should(MatchJSON(`{"data": {"addAuthor": {"id": "1"}}}`))

			resp = postGraphQL(h, "/graphql", `mutation ($a: ID!) { addBook(title: "Book1", genre: "Fiction", authorId: $a) { id } }`,
				map[string]interface{}{"a": "1"})
			Expect(resp.body).Should(MatchJSON(`{"data": {"addBook": {"id": "1"}}}`))

			resp = do(h, httptest.NewRequest(http.MethodGet, "/graphql?query="+
				"%7B%20authors%20%7B%20name%20books%20%7B%20title%20%7D%20%7D%20%7D", nil))
			Expect(resp.code).Should(Equal(http.StatusOK))
			Expect(resp.body).Should(MatchJSON(`{"data": {"authors": [{"name": "Ada", "books": [{"title": "Book1"}]}]}}`))

			Expect(s.Library().Books()).Should(HaveLen(1))
		})

		It("reports a missing author", func() {
			resp := postGraphQL(s.Handler(), "/graphql", `mutation { addBook(title: "X", genre: "G", authorId: 999) { id } }`, nil)
			Expect(resp.code).Should(Equal(http.StatusOK))
			Expect(resp.body).Should(MatchJSON(`{
				"errors": [{
					"message": "Author not found: 999",
					"locations": [{"line": 1, "column": 12}],
					"path": ["addBook"],
					"extensions": {"code": "REFERENCE_NOT_FOUND", "kind": "Author", "id": "999"}
				}],
				"data": {"addBook": null}
			}`))
			Expect(s.Library().Books()).Should(BeEmpty())
		})

		It("walks from a review back to the author", func() {
			h := s.Handler()
			resp := postGraphQL(h, "/graphql", `
				mutation {
					addAuthor(name: "A") { id }
					addBook(title: "B", genre: "Fiction", authorId: 1) { id }
					addReview(rating: 5, bookId: 1) { book { title author { name } } }
				}`, nil)
			Expect(resp.body).Should(MatchJSON(`{
				"data": {
					"addAuthor": {"id": "1"},
					"addBook": {"id": "1"},
					"addReview": {"book": {"title": "B", "author": {"name": "A"}}}
				}
			}`))
		})

		It("rejects malformed requests", func() {
			resp := postGraphQL(s.Handler(), "/graphql", "", nil)
			Expect(resp.code).Should(Equal(http.StatusBadRequest))
			Expect(resp.body).Should(MatchJSON(`{"errors": [{"message": "Must provide query string."}]}`))

			resp = postGraphQL(s.Handler(), "/graphql", "{ authors {", nil)
			Expect(resp.code).Should(Equal(http.StatusBadRequest))
		})
	})

	Describe("blog endpoint", func() {
		It("serves the blog family", func() {
			h := s.Handler()
			resp := postGraphQL(h, "/blog/graphql", `
				mutation {
					addUser(name: "Alice", email: "a@example.com") { id }
					addPost(title: "Hello", content: "World", authorId: 1) { id }
					addComment(text: "Nice", authorId: 1, postId: 1) { id }
				}`, nil)
			Expect(resp.body).Should(MatchJSON(`{
				"data": {
					"addUser": {"id": "1"},
					"addPost": {"id": "1"},
					"addComment": {"id": "1"}
				}
			}`))

			resp = postGraphQL(h, "/blog/graphql", `{ users { name comments { text post { title } } } }`, nil)
			Expect(resp.body).Should(MatchJSON(`{
				"data": {
					"users": [{"name": "Alice", "comments": [{"text": "Nice", "post": {"title": "Hello"}}]}]
				}
			}`))

			// The library endpoint has its own store.
			resp = postGraphQL(h, "/graphql", `{ authors { id } }`, nil)
			Expect(resp.body).Should(MatchJSON(`{"data": {"authors": []}}`))
		})
	})

	Context("when blog is disabled", func() {
		BeforeEach(func() {
			cfg.Blog.Disabled = true
		})

		It("does not mount the blog endpoint", func() {
			Expect(s.Blog()).Should(BeNil())
			Expect(s.Library()).ShouldNot(BeNil())

			resp := postGraphQL(s.Handler(), "/blog/graphql", `{ users { id } }`, nil)
			Expect(resp.code).Should(Equal(http.StatusNotFound))
		})
	})

	Describe("metrics", func() {
		It("exports request counters and entity counts", func() {
			h := s.Handler()
			postGraphQL(h, "/graphql", `mutation { addAuthor(name: "Ada") { id } }`, nil)
			postGraphQL(h, "/graphql", `{ nope }`, nil)

			resp := do(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			Expect(resp.code).Should(Equal(http.StatusOK))
			Expect(resp.body).Should(ContainSubstring(
				`relgraph_graphql_requests_total{endpoint="library",operation="mutation",outcome="success"} 1`))
			Expect(resp.body).Should(ContainSubstring(
				`relgraph_graphql_requests_total{endpoint="library",operation="unknown",outcome="rejected"} 1`))
			Expect(resp.body).Should(ContainSubstring(`relgraph_entities{endpoint="library",kind="Author"} 1`))
			Expect(resp.body).Should(ContainSubstring(`relgraph_entities{endpoint="blog",kind="User"} 0`))
			Expect(resp.body).Should(ContainSubstring("relgraph_graphql_request_duration_seconds_bucket"))
		})
	})

	Context("with CORS origins", func() {
		BeforeEach(func() {
			cfg.CORSOrigins = []string{"http://example.com"}
		})

		It("allows requests from configured origins", func() {
			r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			r.Header.Set("Origin", "http://example.com")
			resp := do(s.Handler(), r)
			Expect(resp.code).Should(Equal(http.StatusOK))
			Expect(resp.header.Get("Access-Control-Allow-Origin")).Should(Equal("http://example.com"))

			r = httptest.NewRequest(http.MethodGet, "/healthz", nil)
			r.Header.Set("Origin", "http://evil.example")
			resp = do(s.Handler(), r)
			Expect(resp.header.Get("Access-Control-Allow-Origin")).Should(BeEmpty())
		})
	})

	It("serves on a listener until shut down", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ShouldNot(HaveOccurred())

		served := make(chan error, 1)
		go func() {
			served <- s.Serve(listener)
		}()

		var resp *http.Response
		Eventually(func() error {
			resp, err = http.Get("http://" + listener.Addr().String() + "/healthz")
			return err
		}).Should(Succeed())
		body, err := ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(body)).Should(Equal("ok\n"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		Expect(s.Shutdown(ctx)).Should(Succeed())
		Eventually(served).Should(Receive(BeNil()))
	})

	It("does not serve after an early shutdown", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		Expect(s.Shutdown(ctx)).Should(Succeed())

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ShouldNot(HaveOccurred())
		defer listener.Close()

		served := make(chan error, 1)
		go func() {
			served <- s.Serve(listener)
		}()
		Eventually(served).Should(Receive(BeNil()))
	})
})
