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

// Package store implements an in-memory relational store for entity graphs.
//
// Entities of one kind live in a Table in creation order. Each entity is identified by an ID equal
// to the number of entities of its kind at the time it was appended, plus one. Relationships are
// expressed by storing the typed ID of the owner in the owned entity. The "children of an owner"
// view is served from an owner index that is written by the same Table.Append call that writes
// the row, so it always agrees with a scan over the flat table.
//
// A DB groups the tables of one family and carries the lock that serializes writers against
// readers. Tables themselves are not safe for concurrent use; access them inside DB.View or
// DB.Update.
package store
