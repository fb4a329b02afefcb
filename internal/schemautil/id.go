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

// Package schemautil contains the pieces shared by the GraphQL schemas of entity families.
package schemautil

import (
	"math"
	"strconv"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
	"github.com/botobag/relgraph/store"
)

// idCoercer maps the ID scalar to store.ID. Input accepts decimal strings and integers; anything
// that is not a positive integer is rejected before resolvers run. Output is a decimal string.
type idCoercer struct{}

var (
	_ graphql.ScalarResultCoercer = idCoercer{}
	_ graphql.ScalarInputCoercer  = idCoercer{}
)

func invalidID(value interface{}) error {
	if s, ok := value.(string); ok {
		value = strconv.Quote(s)
	}
	return graphql.NewCoercionError("ID cannot represent value %v: not a positive integer", value)
}

func (idCoercer) coerce(value interface{}) (store.ID, error) {
	var id store.ID
	switch v := value.(type) {
	case store.ID:
		id = v
	case string:
		parsed, err := store.ParseID(v)
		if err != nil {
			return store.NoID, invalidID(value)
		}
		id = parsed
	case int:
		id = store.ID(v)
	case int32:
		id = store.ID(v)
	case int64:
		id = store.ID(v)
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 {
			return store.NoID, invalidID(value)
		}
		id = store.ID(v)
	default:
		return store.NoID, invalidID(value)
	}

	if !id.IsValid() {
		return store.NoID, invalidID(value)
	}
	return id, nil
}

func (coercer idCoercer) CoerceResultValue(value interface{}) (interface{}, error) {
	id, err := coercer.coerce(value)
	if err != nil {
		return nil, err
	}
	return id.String(), nil
}

func (coercer idCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	return coercer.coerce(value)
}

func (coercer idCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	switch v := value.(type) {
	case ast.StringValue:
		return coercer.coerce(v.Value())
	case ast.IntValue:
		return coercer.coerce(v.Token.Value)
	}
	return nil, invalidID(value.Interface())
}

var idType = graphql.MustNewScalar(&graphql.ScalarConfig{
	Name: "ID",
	Description: "The `ID` scalar type identifies an entity within its kind. It appears in a JSON " +
		"response as a String and accepts a positive integer given as String or Int.",
	ResultCoercer: idCoercer{},
	InputCoercer:  idCoercer{},
})

// ID returns the ID scalar whose internal value is store.ID. It replaces the built-in ID in the
// schemas that use it.
func ID() *graphql.Scalar {
	return idType
}
