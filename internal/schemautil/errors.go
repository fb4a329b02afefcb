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

package schemautil

import (
	"context"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/store"
)

// CodeReferenceNotFound is the "code" extension of errors caused by a dangling reference.
const CodeReferenceNotFound = "REFERENCE_NOT_FOUND"

// FieldError converts an error returned by a family to the error reported for the field. A
// store.ReferenceNotFoundError carries its code, kind and ID in the extensions.
func FieldError(err error) error {
	if err == nil {
		return nil
	}
	if ref, ok := store.AsReferenceNotFound(err); ok {
		return graphql.NewError(err.Error(), err, graphql.ErrKindExecution, graphql.ErrorExtensions{
			"code": CodeReferenceNotFound,
			"kind": ref.Kind.String(),
			"id":   ref.ID.String(),
		})
	}
	return err
}

// Resolver adapts a function that returns a family error to a graphql.FieldResolver.
func Resolver(resolve func(source interface{}, info graphql.ResolveInfo) (interface{}, error)) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		result, err := resolve(source, info)
		if err != nil {
			return nil, FieldError(err)
		}
		return result, nil
	})
}
