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

// Type is the interface that all GraphQL types implement.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Types
type Type interface {
	TypeDefinition

	// String returns the type in its GraphQL notation (e.g., "[Book!]!").
	String() string

	// graphqlType is a special mark to indicate a Type.
	graphqlType()
}

// TypeWithName is implemented by Scalar and Object.
type TypeWithName interface {
	Type

	// Name of the type
	Name() string

	// Description of the type
	Description() string
}

var (
	_ TypeWithName = (*Scalar)(nil)
	_ TypeWithName = (*Object)(nil)
	_ Type         = (*List)(nil)
	_ Type         = (*NonNull)(nil)
)

// TypeDefinition describes a type to be created when building a Schema. Every Type is also a
// TypeDefinition of itself. *ObjectConfig defines an object type whose fields may refer back to
// the object being defined.
type TypeDefinition interface {
	resolveType(r *typeResolver) (Type, error)
}

//===----------------------------------------------------------------------------------------====//
// List
//===----------------------------------------------------------------------------------------====//

// List is a wrapping type which points to another type. Lists are often created within the
// context of defining the fields of an object type.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Type-System.List
type List struct {
	elementType Type
}

// NewListOf returns the list type of the given element type.
func NewListOf(elementType Type) *List {
	return &List{elementType}
}

// ElementType returns the type of the list elements.
func (l *List) ElementType() Type {
	return l.elementType
}

func (l *List) String() string {
	return fmt.Sprintf("[%s]", l.elementType)
}

func (*List) graphqlType() {}

func (l *List) resolveType(*typeResolver) (Type, error) {
	return l, nil
}

// ListOf defines a list type whose element type is given by a TypeDefinition.
func ListOf(elementTypeDef TypeDefinition) TypeDefinition {
	return listDefinition{elementTypeDef}
}

type listDefinition struct {
	elementTypeDef TypeDefinition
}

func (def listDefinition) resolveType(r *typeResolver) (Type, error) {
	elementType, err := def.elementTypeDef.resolveType(r)
	if err != nil {
		return nil, err
	}
	return NewListOf(elementType), nil
}

//===----------------------------------------------------------------------------------------====//
// NonNull
//===----------------------------------------------------------------------------------------====//

// NonNull is a wrapping type which points to another type. A non-null field raises an error if
// its resolver returns null, and a non-null argument must be provided.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Type-System.Non-Null
type NonNull struct {
	innerType Type
}

// NewNonNullOf returns the non-null type of the given type. The inner type cannot be a non-null
// type.
func NewNonNullOf(innerType Type) (*NonNull, error) {
	if _, ok := innerType.(*NonNull); ok {
		return nil, NewError(fmt.Sprintf("Expected %s to be a GraphQL nullable type.", innerType))
	}
	return &NonNull{innerType}, nil
}

// InnerType returns the wrapped type.
func (n *NonNull) InnerType() Type {
	return n.innerType
}

func (n *NonNull) String() string {
	return fmt.Sprintf("%s!", n.innerType)
}

func (*NonNull) graphqlType() {}

func (n *NonNull) resolveType(*typeResolver) (Type, error) {
	return n, nil
}

// NonNullOf defines a non-null type whose inner type is given by a TypeDefinition.
func NonNullOf(innerTypeDef TypeDefinition) TypeDefinition {
	return nonNullDefinition{innerTypeDef}
}

// NonNullListOfNonNull is a shorthand of NonNullOf(ListOf(NonNullOf(elementTypeDef))).
func NonNullListOfNonNull(elementTypeDef TypeDefinition) TypeDefinition {
	return NonNullOf(ListOf(NonNullOf(elementTypeDef)))
}

type nonNullDefinition struct {
	innerTypeDef TypeDefinition
}

func (def nonNullDefinition) resolveType(r *typeResolver) (Type, error) {
	innerType, err := def.innerTypeDef.resolveType(r)
	if err != nil {
		return nil, err
	}
	t, err := NewNonNullOf(innerType)
	if err != nil {
		return nil, err
	}
	return t, nil
}

//===----------------------------------------------------------------------------------------====//
// Predicates
//===----------------------------------------------------------------------------------------====//

// IsLeafType returns true if the given type is a Scalar.
func IsLeafType(t Type) bool {
	_, ok := t.(*Scalar)
	return ok
}

// IsCompositeType returns true if the given type is an Object.
func IsCompositeType(t Type) bool {
	_, ok := t.(*Object)
	return ok
}

// IsNullableType returns true if the type accepts null value.
func IsNullableType(t Type) bool {
	_, ok := t.(*NonNull)
	return !ok
}

// IsInputType returns true if the type can be used as the type of arguments and variables.
func IsInputType(t Type) bool {
	return IsLeafType(NamedTypeOf(t))
}

// NullableTypeOf strips the non-null wrapper if any.
func NullableTypeOf(t Type) Type {
	if nonNull, ok := t.(*NonNull); ok {
		return nonNull.InnerType()
	}
	return t
}

// NamedTypeOf unwraps all of the wrapping types and returns the named type.
func NamedTypeOf(t Type) TypeWithName {
	for {
		switch ttype := t.(type) {
		case *List:
			t = ttype.ElementType()
		case *NonNull:
			t = ttype.InnerType()
		case TypeWithName:
			return ttype
		default:
			return nil
		}
	}
}
