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
	"github.com/botobag/relgraph/graphql/executor"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// OperationCache caches executor.PreparedOperation created from a query to save parsing efforts.
type OperationCache interface {
	// Get looks up operation for the given query.
	Get(query string) (operation *executor.PreparedOperation, ok bool)

	// Add adds an operation that associated with the query to the cache.
	Add(query string, operation *executor.PreparedOperation)
}

// LRUOperationCache is a thread-safe LRU cache that implements OperationCache. It serves as default
// operation cache for LLHandler.
type LRUOperationCache struct {
	cache *lru.Cache
}

var _ OperationCache = (*LRUOperationCache)(nil)

// NewLRUOperationCache creates a new LRUOperationCache that holds up to maxEntries operations.
func NewLRUOperationCache(maxEntries int) (*LRUOperationCache, error) {
	cache, err := lru.New(maxEntries)
	if err != nil {
		return nil, errors.Wrap(err, "create operation cache")
	}
	return &LRUOperationCache{cache}, nil
}

// Get implements OperationCache.
func (c *LRUOperationCache) Get(query string) (*executor.PreparedOperation, bool) {
	operation, ok := c.cache.Get(query)
	if !ok {
		return nil, false
	}
	return operation.(*executor.PreparedOperation), true
}

// Add implements OperationCache.
func (c *LRUOperationCache) Add(query string, operation *executor.PreparedOperation) {
	c.cache.Add(query, operation)
}

// Len returns the number of operations in the cache.
func (c *LRUOperationCache) Len() int {
	return c.cache.Len()
}

// NopOperationCache does nothing.
type NopOperationCache struct{}

var _ OperationCache = NopOperationCache{}

// Get implements OperationCache.
func (NopOperationCache) Get(query string) (operation *executor.PreparedOperation, ok bool) {
	return
}

// Add implements OperationCache.
func (NopOperationCache) Add(query string, operation *executor.PreparedOperation) {}
