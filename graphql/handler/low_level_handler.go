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
	"context"
	"errors"
	"fmt"

	"github.com/botobag/relgraph/concurrent"
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
	"github.com/botobag/relgraph/graphql/executor"
)

// LLHandler creates a handler that is suit for serving GraphQL queries against a schema in a
// long-running process. It is useful as a low-level building block for building GraphQL services
// such as GraphQL web services.
type LLHandler struct {
	// Schema served by this handler
	schema *graphql.Schema

	// Cache for the parsed query; Could be nil (when the handler was created
	// with config.OperationCache set to NopOperationCache) to disable cache.
	cache OperationCache

	// Middlewares to be applied before executing a Request
	middlewares []RequestMiddleware

	// Executor that runs mutation operations; nil runs them in the serving goroutine.
	mutationRunner concurrent.Executor
}

// LLConfig contains configuration to set up a LLHandler.
type LLConfig struct {
	// Schema to be working on
	Schema *graphql.Schema

	// OperationCache caches graphql.PreparedOperation created from a query to save parsing efforts.
	OperationCache OperationCache

	// OperationCacheSize specifies the capacity of the default LRU cache when OperationCache is not
	// given. Zero selects 512.
	OperationCacheSize int

	// Middlewares to be applied before executing a Request
	Middlewares []RequestMiddleware

	// MutationRunner executes mutation operations. Submitting every mutation to a
	// concurrent.SerialExecutor makes them run one at a time in arrival order.
	MutationRunner concurrent.Executor
}

var errMissingSchema = errors.New("relgraph/handler: must specify a schema")

// NewLLHandler creates a LLHandler from given configuration.
func NewLLHandler(config *LLConfig) (*LLHandler, error) {
	// schema is required.
	schema := config.Schema
	if schema == nil {
		return nil, errMissingSchema
	}

	cache := config.OperationCache
	if cache == nil {
		size := config.OperationCacheSize
		if size <= 0 {
			size = 512
		}
		var err error
		cache, err = NewLRUOperationCache(size)
		if err != nil {
			return nil, err
		}
	} else if _, isNop := cache.(NopOperationCache); isNop {
		cache = nil
	}

	return &LLHandler{
		schema:         schema,
		cache:          cache,
		middlewares:    config.Middlewares,
		mutationRunner: config.MutationRunner,
	}, nil
}

// Schema returns handler.schema.
func (handler *LLHandler) Schema() *graphql.Schema {
	return handler.schema
}

// OperationCache returns handler.cache.
func (handler *LLHandler) OperationCache() OperationCache {
	if handler.cache == nil {
		return NopOperationCache{}
	}
	return handler.cache
}

// Request contains parameter required by Serve.
type Request struct {
	Ctx       context.Context
	Operation *executor.PreparedOperation
	Params    executor.ExecuteParams
}

// RequestMiddleware applies changes on Request before its operation gets executed. It can be used
// to modify ExecuteParams in Request such as setting root values and/or supplied app-specific
// context.
type RequestMiddleware interface {
	// Apply modifies request. next specifies the next action to do after applying the middleware.
	Apply(request *Request, next *RequestMiddlewareNext)
}

// RequestMiddlewareFunc is an adapter to allow the use of ordinary functions as RequestMiddleware.
type RequestMiddlewareFunc func(request *Request, next *RequestMiddlewareNext)

// Apply calls f(request, next).
func (f RequestMiddlewareFunc) Apply(request *Request, next *RequestMiddlewareNext) {
	f(request, next)
}

// RequestMiddlewareNext is provided to a RequestMiddleware to specify the next action to do.
type RequestMiddlewareNext struct {
	middlewares []RequestMiddleware

	// The index of middleware to be applied when Next is called.
	nextIndex int

	// The result after applying middlewares
	result interface{} /* Should be either *Request or *executor.ExecutionResult */
}

// Next continues applying the next middleware in the chain.
func (next *RequestMiddlewareNext) Next(request *Request) {
	switch next.result.(type) {
	case *Request:
		panic("calling Next multiple times is not allowed")
	case *executor.ExecutionResult:
		panic("cannot call Next after one of NextError or NextResult is called")
	case nil:
		/* Apply next middleware or return */
	default:
		panic(fmt.Errorf("unexpected result type: %T", next.result))
	}

	middlewares := next.middlewares
	if next.nextIndex >= len(middlewares) {
		// All middlewares has been applied.
		next.result = request
		return
	}

	nextMiddleware := middlewares[next.nextIndex]
	next.nextIndex++
	nextMiddleware.Apply(request, next)

	if next.result == nil {
		panic(fmt.Errorf(`"%T" must end with one of Next, NextError or NextResult on return`,
			nextMiddleware))
	}
}

// NextError stops applying rest middlewares in the chain and sends an ExecutionResult that includes
// given error.
func (next *RequestMiddlewareNext) NextError(err *graphql.Error) {
	next.NextResult(&executor.ExecutionResult{
		Errors: graphql.ErrorsOf(err),
	})
}

// NextResult stops applying rest middlewares in the chain and sends the result.
func (next *RequestMiddlewareNext) NextResult(result *executor.ExecutionResult) {
	switch next.result.(type) {
	case *Request:
		panic("calling NextError or NextResult is not allowed on returning from Next")
	case *executor.ExecutionResult:
		panic("calling NextError or NextResult multiple times is not allowed")
	case nil:
		next.result = result
	default:
		panic(fmt.Errorf("unexpected result type: %T", next.result))
	}
}

// Serve executes the operation with given context and parameters. The given request object must not
// be nil. Mutations are handed to the configured mutation runner.
func (handler *LLHandler) Serve(request *Request) <-chan executor.ExecutionResult {
	if len(handler.middlewares) > 0 {
		next := RequestMiddlewareNext{
			middlewares: handler.middlewares,
		}
		next.Next(request)

		switch result := next.result.(type) {
		case *Request:
			request = result

		case *executor.ExecutionResult:
			ch := make(chan executor.ExecutionResult, 1)
			ch <- *result
			return ch

		default:
			panic(fmt.Errorf("unexpected result type: %T", next.result))
		}
	}

	params := request.Params
	if request.Operation.Type() == ast.OperationTypeMutation {
		params.Runner = handler.mutationRunner
	}

	return request.Operation.Execute(request.Ctx, params)
}
