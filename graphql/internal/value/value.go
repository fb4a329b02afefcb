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

package value

import (
	"fmt"
	"reflect"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
	"github.com/botobag/relgraph/graphql/token"
)

// Locator converts a source location into an ErrorLocation list for error reporting.
type Locator func(location token.SourceLocation) []graphql.ErrorLocation

// SourceLocator returns a Locator that resolves locations in the given source.
func SourceLocator(source *token.Source) Locator {
	return func(location token.SourceLocation) []graphql.ErrorLocation {
		return graphql.LocationsOf(source, location)
	}
}

// TypeFromAST finds the schema type for the type reference in AST. Returns nil if the named type
// doesn't exist in the schema.
func TypeFromAST(schema *graphql.Schema, t ast.Type) graphql.Type {
	switch t := t.(type) {
	case *ast.NamedType:
		namedType := schema.TypeFromName(t.Name.Value())
		if namedType == nil {
			return nil
		}
		return namedType

	case *ast.ListType:
		elementType := TypeFromAST(schema, t.ItemType)
		if elementType == nil {
			return nil
		}
		return graphql.NewListOf(elementType)

	case *ast.NonNullType:
		innerType := TypeFromAST(schema, t.Type)
		if innerType == nil {
			return nil
		}
		nonNull, err := graphql.NewNonNullOf(innerType)
		if err != nil {
			return nil
		}
		return nonNull
	}
	return nil
}

// CoerceValue coerces a Go value (typically decoded from JSON variables) given a GraphQL input
// type.
func CoerceValue(value interface{}, t graphql.Type) (interface{}, error) {
	return coerceValue(value, t, "value")
}

func coerceValue(value interface{}, t graphql.Type, path string) (interface{}, error) {
	if nonNull, ok := t.(*graphql.NonNull); ok {
		if value == nil {
			return nil, graphql.NewCoercionError("Expected non-nullable type %s not to be null at %s",
				t, path)
		}
		return coerceValue(value, nonNull.InnerType(), path)
	}

	if value == nil {
		return nil, nil
	}

	switch t := t.(type) {
	case *graphql.Scalar:
		coerced, err := t.CoerceVariableValue(value)
		if err != nil {
			return nil, graphql.NewError(fmt.Sprintf("Expected type %s at %s; %s", t, path, err.Error()),
				graphql.ErrKindCoercion, err)
		}
		return coerced, nil

	case *graphql.List:
		reflectValue := reflect.ValueOf(value)
		if kind := reflectValue.Kind(); kind != reflect.Slice && kind != reflect.Array {
			// A single value is coerced into a list of one element.
			coerced, err := coerceValue(value, t.ElementType(), path)
			if err != nil {
				return nil, err
			}
			return []interface{}{coerced}, nil
		}

		coerced := make([]interface{}, reflectValue.Len())
		for i := range coerced {
			element, err := coerceValue(
				reflectValue.Index(i).Interface(), t.ElementType(), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			coerced[i] = element
		}
		return coerced, nil
	}

	return nil, graphql.NewCoercionError("Expected type %s to be an input type", t)
}

// CoerceFromAST produces a Go value given a GraphQL value AST. Variables are looked up in the
// given variable values.
func CoerceFromAST(node ast.Value, t graphql.Type, variables graphql.VariableValues) (interface{}, error) {
	if variable, ok := node.(*ast.Variable); ok {
		value, exists := variables.Lookup(variable.Name.Value())
		if !exists || value == nil {
			if _, isNonNull := t.(*graphql.NonNull); isNonNull {
				return nil, graphql.NewCoercionError(
					`Variable "$%s" of non-null type "%s" was not provided a value.`, variable.Name.Value(), t)
			}
			return nil, nil
		}
		// Variables are coerced already when preparing the operation.
		return value, nil
	}

	if nonNull, ok := t.(*graphql.NonNull); ok {
		if _, isNull := node.(ast.NullValue); isNull {
			return nil, graphql.NewCoercionError("Expected non-nullable type %s not to be null", t)
		}
		return CoerceFromAST(node, nonNull.InnerType(), variables)
	}

	if _, isNull := node.(ast.NullValue); isNull {
		return nil, nil
	}

	switch t := t.(type) {
	case *graphql.Scalar:
		return t.CoerceLiteralValue(node)

	case *graphql.List:
		list, ok := node.(*ast.ListValue)
		if !ok {
			coerced, err := CoerceFromAST(node, t.ElementType(), variables)
			if err != nil {
				return nil, err
			}
			return []interface{}{coerced}, nil
		}

		coerced := make([]interface{}, len(list.Values))
		for i, element := range list.Values {
			value, err := CoerceFromAST(element, t.ElementType(), variables)
			if err != nil {
				return nil, err
			}
			coerced[i] = value
		}
		return coerced, nil
	}

	return nil, graphql.NewCoercionError("Expected type %s to be an input type", t)
}
