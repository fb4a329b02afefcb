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

	"github.com/botobag/relgraph/graphql/ast"
)

// ScalarResultCoercer serializes an internal value into its GraphQL representation for output.
type ScalarResultCoercer interface {
	// CoerceResultValue coerces the given value to be returned as result of field with the scalar
	// type.
	//
	// Reference: https://facebook.github.io/graphql/June2018/#sec-Scalars.Result-Coercion
	CoerceResultValue(value interface{}) (interface{}, error)
}

// ScalarResultCoercerFunc is an adapter to allow the use of ordinary functions as
// ScalarResultCoercer.
type ScalarResultCoercerFunc func(value interface{}) (interface{}, error)

// CoerceResultValue calls f(value).
func (f ScalarResultCoercerFunc) CoerceResultValue(value interface{}) (interface{}, error) {
	return f(value)
}

// ScalarInputCoercer parses input values given as variables or literals in the document.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Scalars.Input-Coercion
type ScalarInputCoercer interface {
	// CoerceVariableValue coerces a value decoded from the JSON variables.
	CoerceVariableValue(value interface{}) (interface{}, error)

	// CoerceLiteralValue coerces a literal value in the document.
	CoerceLiteralValue(value ast.Value) (interface{}, error)
}

// ScalarConfig provides specification to define a scalar type.
type ScalarConfig struct {
	// Name of the scalar type
	Name string

	// Description of the scalar type
	Description string

	// ResultCoercer serializes value for return in execution result
	ResultCoercer ScalarResultCoercer

	// InputCoercer parses input value given to the scalar (optional); A scalar without
	// InputCoercer cannot be used as an input type.
	InputCoercer ScalarInputCoercer
}

// Scalar represents a leaf value in a GraphQL type system.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Scalars
type Scalar struct {
	name          string
	description   string
	resultCoercer ScalarResultCoercer
	inputCoercer  ScalarInputCoercer
}

// NewScalar creates a Scalar from a ScalarConfig.
func NewScalar(config *ScalarConfig) (*Scalar, error) {
	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for Scalar.")
	}
	if config.ResultCoercer == nil {
		return nil, NewError(fmt.Sprintf(
			`%s must provide ResultCoercer. If this custom Scalar is also used as an input type, `+
				`ensure InputCoercer is also provided.`, config.Name))
	}
	return &Scalar{
		name:          config.Name,
		description:   config.Description,
		resultCoercer: config.ResultCoercer,
		inputCoercer:  config.InputCoercer,
	}, nil
}

// MustNewScalar is a panic-on-fail version of NewScalar.
func MustNewScalar(config *ScalarConfig) *Scalar {
	scalar, err := NewScalar(config)
	if err != nil {
		panic(err)
	}
	return scalar
}

// Name implements TypeWithName.
func (scalar *Scalar) Name() string {
	return scalar.name
}

// Description implements TypeWithName.
func (scalar *Scalar) Description() string {
	return scalar.description
}

func (scalar *Scalar) String() string {
	return scalar.name
}

func (*Scalar) graphqlType() {}

func (scalar *Scalar) resolveType(*typeResolver) (Type, error) {
	return scalar, nil
}

// CoerceResultValue serializes value for output.
func (scalar *Scalar) CoerceResultValue(value interface{}) (interface{}, error) {
	return scalar.resultCoercer.CoerceResultValue(value)
}

// CoerceVariableValue coerces a variable value for the scalar.
func (scalar *Scalar) CoerceVariableValue(value interface{}) (interface{}, error) {
	if scalar.inputCoercer == nil {
		return nil, NewCoercionError("%s cannot be used as an input type", scalar.name)
	}
	return scalar.inputCoercer.CoerceVariableValue(value)
}

// CoerceLiteralValue coerces a literal value for the scalar.
func (scalar *Scalar) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	if scalar.inputCoercer == nil {
		return nil, NewCoercionError("%s cannot be used as an input type", scalar.name)
	}
	return scalar.inputCoercer.CoerceLiteralValue(value)
}

// NewCoercionError creates an Error of kind ErrKindCoercion with a formatted message.
func NewCoercionError(format string, a ...interface{}) error {
	return NewError(fmt.Sprintf(format, a...), ErrKindCoercion)
}
