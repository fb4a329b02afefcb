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

package executor

import (
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
)

// resolveInfo implements graphql.ResolveInfo.
type resolveInfo struct {
	ctx        *executionContext
	parentType *graphql.Object
	field      *graphql.Field
	fieldNodes []*ast.Field
	path       graphql.ResponsePath
	args       graphql.ArgumentValues
}

var _ graphql.ResolveInfo = (*resolveInfo)(nil)

// Schema implements graphql.ResolveInfo.
func (info *resolveInfo) Schema() *graphql.Schema {
	return info.ctx.operation.schema
}

// ParentType implements graphql.ResolveInfo.
func (info *resolveInfo) ParentType() *graphql.Object {
	return info.parentType
}

// Field implements graphql.ResolveInfo.
func (info *resolveInfo) Field() *graphql.Field {
	return info.field
}

// FieldNodes implements graphql.ResolveInfo.
func (info *resolveInfo) FieldNodes() []*ast.Field {
	return info.fieldNodes
}

// Path implements graphql.ResolveInfo.
func (info *resolveInfo) Path() graphql.ResponsePath {
	return info.path
}

// Args implements graphql.ResolveInfo.
func (info *resolveInfo) Args() graphql.ArgumentValues {
	return info.args
}

// VariableValues implements graphql.ResolveInfo.
func (info *resolveInfo) VariableValues() graphql.VariableValues {
	return info.ctx.variableValues
}

// RootValue implements graphql.ResolveInfo.
func (info *resolveInfo) RootValue() interface{} {
	return info.ctx.rootValue
}

// AppContext implements graphql.ResolveInfo.
func (info *resolveInfo) AppContext() interface{} {
	return info.ctx.appContext
}
