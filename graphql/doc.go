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

// Package graphql provides the foundation to build a GraphQL type schema and to serve queries
// against it. It covers the executable subset of the language: scalars, objects, lists and
// non-null wrappers with field arguments.
//
// TypeDefinition Design
//
// Fields reference their types through TypeDefinition rather than Type. An *ObjectConfig is a
// TypeDefinition, so object types that depend on each other (or on themselves) can be described
// with plain struct literals that point at each other. NewSchema walks the definitions from the
// root types and creates at most one Object for each *ObjectConfig it meets.
package graphql
