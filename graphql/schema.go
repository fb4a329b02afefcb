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

package graphql

import (
	"fmt"
)

// SchemaConfig contains configuration to define a GraphQL schema.
type SchemaConfig struct {
	// Query is the root type for query operation; Must be provided.
	Query *ObjectConfig

	// Mutation is the root type for mutation operation (optional).
	Mutation *ObjectConfig
}

// A Schema is created by supplying the root types of each type of operation, query and mutation
// (optional). The types reachable from the root types are collected into the type map along with
// the built-in scalars.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Schema
type Schema struct {
	query    *Object
	mutation *Object
	typeMap  map[string]TypeWithName
}

// NewSchema initializes a Schema from the given config.
func NewSchema(config *SchemaConfig) (*Schema, error) {
	if config.Query == nil {
		return nil, NewError("Schema query must be Object Type but got: nil.")
	}

	r := newTypeResolver()
	schema := &Schema{
		typeMap: map[string]TypeWithName{},
	}

	query, err := r.object(config.Query)
	if err != nil {
		return nil, err
	}
	schema.query = query

	if config.Mutation != nil {
		mutation, err := r.object(config.Mutation)
		if err != nil {
			return nil, err
		}
		schema.mutation = mutation
	}

	if err := schema.collectTypes(query); err != nil {
		return nil, err
	}
	if schema.mutation != nil {
		if err := schema.collectTypes(schema.mutation); err != nil {
			return nil, err
		}
	}

	// Custom scalars with the same name replace the built-in ones.
	for _, scalar := range builtinScalars() {
		if _, exists := schema.typeMap[scalar.Name()]; !exists {
			schema.typeMap[scalar.Name()] = scalar
		}
	}

	return schema, nil
}

// MustNewSchema is a panic-on-fail version of NewSchema.
func MustNewSchema(config *SchemaConfig) *Schema {
	schema, err := NewSchema(config)
	if err != nil {
		panic(err)
	}
	return schema
}

// collectTypes adds t and every named type reachable from it to the type map.
func (schema *Schema) collectTypes(t Type) error {
	namedType := NamedTypeOf(t)
	if namedType == nil {
		return nil
	}

	name := namedType.Name()
	if existing, exists := schema.typeMap[name]; exists {
		if existing != namedType {
			return NewError(fmt.Sprintf(
				`Schema must contain unique named types but contains multiple types named "%s".`, name))
		}
		return nil
	}
	schema.typeMap[name] = namedType

	if object, ok := namedType.(*Object); ok {
		for _, field := range object.Fields() {
			if err := schema.collectTypes(field.Type()); err != nil {
				return err
			}
			for _, arg := range field.Args() {
				if err := schema.collectTypes(arg.Type()); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Query returns the root type of query operation.
func (schema *Schema) Query() *Object {
	return schema.query
}

// Mutation returns the root type of mutation operation. It returns nil if the schema doesn't
// support mutations.
func (schema *Schema) Mutation() *Object {
	return schema.mutation
}

// TypeMap returns the named types in the schema keyed by name.
func (schema *Schema) TypeMap() map[string]TypeWithName {
	return schema.typeMap
}

// TypeFromName finds the named type or returns nil.
func (schema *Schema) TypeFromName(name string) TypeWithName {
	return schema.typeMap[name]
}
