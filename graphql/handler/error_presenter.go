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

package handler

import (
	"net/http"
	"strings"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
	"github.com/botobag/relgraph/graphql/executor"
	"github.com/botobag/relgraph/internal/log"
)

// ErrorPresenter presents an error to a http.ResponseWriter.
type ErrorPresenter interface {
	// Write sends the given error to w.
	Write(w http.ResponseWriter, r *http.Request, err error)
}

// Errors by DefaultRequestBuilder.Build

// ErrEmptyQuery describes an error when an empty query is not allowed.
type ErrEmptyQuery struct {
	Request *http.Request
}

// Error implements Go's error interface.
func (err ErrEmptyQuery) Error() string {
	return "Must provide query string."
}

// ErrParseQuery describes an invalid GraphQL query document that failed parsing.
type ErrParseQuery struct {
	Request       *http.Request
	ParsedRequest *HTTPRequest
	Err           error
}

// Error implements Go's error interface.
func (err *ErrParseQuery) Error() string {
	return "invalid query: " + err.Err.Error()
}

// ErrPrepare indicates a failure in prepare a PreparedOperation for execution for a query.
type ErrPrepare struct {
	Request       *http.Request
	ParsedRequest *HTTPRequest
	Document      ast.Document
	Errs          graphql.Errors
}

// Error implements Go's error interface.
func (err *ErrPrepare) Error() string {
	var buf strings.Builder
	buf.WriteString("cannot prepare executable operation for query because of following error(s):")
	for _, e := range err.Errs.Errors {
		buf.WriteString("\n\t")
		buf.WriteString(e.Error())
	}
	return buf.String()
}

// DefaultErrorPresenter implements an ErrorPresenter which is default used by HTTP handler when no
// error presenter is provided. Every error is written as a GraphQL response with "errors" only.
// Malformed requests and syntax errors are answered with 400 Bad Request. Errors found when
// preparing the operation are sent with 200 OK.
type DefaultErrorPresenter struct{}

var _ ErrorPresenter = DefaultErrorPresenter{}

// Write implements ErrorPresenter.
func (DefaultErrorPresenter) Write(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status = http.StatusBadRequest
		errs   graphql.Errors
	)

	switch err := err.(type) {
	case ErrEmptyQuery, *HTTPRequestParseError:
		errs.Emplace(err.Error())

	case *ErrParseQuery:
		errs.Append(err.Err)

	case *ErrPrepare:
		status = http.StatusOK
		errs = err.Errs

	default:
		log.WithError(err).WithField("path", r.URL.Path).Error("unexpected error serving GraphQL request")
		status = http.StatusInternalServerError
		errs.Emplace("Internal server error", graphql.ErrKindInternal)
	}

	log.WithFields(log.Fields{
		"path":   r.URL.Path,
		"status": status,
	}).WithError(err).Debug("reject GraphQL request")

	writeResult(w, status, &executor.ExecutionResult{
		Errors: errs,
	})
}

// writeResult serializes result as the JSON response body.
func writeResult(w http.ResponseWriter, status int, result *executor.ExecutionResult) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if err := result.MarshalJSONTo(w); err != nil {
		log.WithError(err).Warn("failed to write GraphQL response")
	}
}
