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
	"math"
	"strconv"

	"github.com/botobag/relgraph/graphql/ast"
)

// The "type of internal value" for each built-in scalar are listed as follows,
//
// +--------------+---------------------------------+
// | GraphQL Type | Go Type ("internal value type") |
// +--------------+---------------------------------+
// | Int          | int                             |
// | Float        | float64                         |
// | String       | string                          |
// | Boolean      | bool                            |
// | ID           | string                          |
// +--------------+---------------------------------+
//
// That is, the type of underlying value behind the interface{} returned by CoerceLiteralValue and
// CoerceVariableValue are fixed to the one given in the table for each type.

// Reasons for the error when coercing built-in scalar types
const (
	coercionErrorNonInteger      = "not an integer"
	coercionErrorIntegerTooLarge = "value too large for 32-bit signed integer"
	coercionErrorIntegerTooSmall = "value too small for 32-bit signed integer"
	coercionErrorNonNumeric      = "not a numeric value"
	coercionErrorNonBoolean      = "not a boolean value"
	coercionErrorNonString       = "not a string value"
	coercionErrorNonID           = "not a string or an integer"
)

func newScalarCoercionError(typeName string, value interface{}, reason string) error {
	if v, ok := value.(string); ok {
		value = strconv.Quote(v)
	}
	return NewCoercionError("%s cannot represent %v: %s", typeName, value, reason)
}

// toFloat64 converts numeric Go values to float64. The second return value is false if the value
// is not numeric.
func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// toInt64 converts integral Go values (including float with no fractional part) to int64.
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uint64ToInt64(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return uint64ToInt64(v)
	case float32, float64:
		f, _ := toFloat64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f ||
			f > math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func uint64ToInt64(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

//===-----------------------------------------------------------------------------------------===//
// Int
//===-----------------------------------------------------------------------------------------===//
// The Int scalar type represents a signed 32‐bit numeric non‐fractional value.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Int

type intCoercer struct{}

func (intCoercer) coerce(value interface{}) (interface{}, error) {
	i, ok := toInt64(value)
	if !ok {
		return nil, newScalarCoercionError("Int", value, coercionErrorNonInteger)
	}
	if i > math.MaxInt32 {
		return nil, newScalarCoercionError("Int", value, coercionErrorIntegerTooLarge)
	} else if i < math.MinInt32 {
		return nil, newScalarCoercionError("Int", value, coercionErrorIntegerTooSmall)
	}
	return int(i), nil
}

func (coercer intCoercer) CoerceResultValue(value interface{}) (interface{}, error) {
	if b, ok := value.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	return coercer.coerce(value)
}

func (coercer intCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	return coercer.coerce(value)
}

func (coercer intCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	if v, ok := value.(ast.IntValue); ok {
		return coercer.coerce(v.Interface())
	}
	return nil, newScalarCoercionError("Int", value.Interface(), coercionErrorNonInteger)
}

//===-----------------------------------------------------------------------------------------===//
// Float
//===-----------------------------------------------------------------------------------------===//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Float

type floatCoercer struct{}

func (floatCoercer) coerce(value interface{}) (interface{}, error) {
	f, ok := toFloat64(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, newScalarCoercionError("Float", value, coercionErrorNonNumeric)
	}
	return f, nil
}

func (coercer floatCoercer) CoerceResultValue(value interface{}) (interface{}, error) {
	if b, ok := value.(bool); ok {
		if b {
			return 1.0, nil
		}
		return 0.0, nil
	}
	return coercer.coerce(value)
}

func (coercer floatCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	return coercer.coerce(value)
}

func (coercer floatCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	switch v := value.(type) {
	case ast.IntValue, ast.FloatValue:
		return coercer.coerce(v.Interface())
	}
	return nil, newScalarCoercionError("Float", value.Interface(), coercionErrorNonNumeric)
}

//===-----------------------------------------------------------------------------------------===//
// String
//===-----------------------------------------------------------------------------------------===//
// Reference: https://facebook.github.io/graphql/June2018/#sec-String

type stringCoercer struct{}

func (stringCoercer) CoerceResultValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	if i, ok := toInt64(value); ok {
		return strconv.FormatInt(i, 10), nil
	}
	if f, ok := toFloat64(value); ok {
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return nil, newScalarCoercionError("String", value, coercionErrorNonString)
}

func (stringCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return nil, newScalarCoercionError("String", value, coercionErrorNonString)
}

func (stringCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	if v, ok := value.(ast.StringValue); ok {
		return v.Value(), nil
	}
	return nil, newScalarCoercionError("String", value.Interface(), coercionErrorNonString)
}

//===-----------------------------------------------------------------------------------------===//
// Boolean
//===-----------------------------------------------------------------------------------------===//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Boolean

type booleanCoercer struct{}

func (booleanCoercer) CoerceResultValue(value interface{}) (interface{}, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	if f, ok := toFloat64(value); ok {
		return f != 0, nil
	}
	return nil, newScalarCoercionError("Boolean", value, coercionErrorNonBoolean)
}

func (booleanCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return nil, newScalarCoercionError("Boolean", value, coercionErrorNonBoolean)
}

func (booleanCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	if v, ok := value.(ast.BooleanValue); ok {
		return v.Value(), nil
	}
	return nil, newScalarCoercionError("Boolean", value.Interface(), coercionErrorNonBoolean)
}

//===-----------------------------------------------------------------------------------------===//
// ID
//===-----------------------------------------------------------------------------------------===//
// The ID scalar type represents a unique identifier. It is serialized in the same way as a String
// but accepts both string and integer input.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-ID

type idCoercer struct{}

func (idCoercer) coerce(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	if i, ok := toInt64(value); ok {
		return strconv.FormatInt(i, 10), nil
	}
	return nil, newScalarCoercionError("ID", value, coercionErrorNonID)
}

func (coercer idCoercer) CoerceResultValue(value interface{}) (interface{}, error) {
	return coercer.coerce(value)
}

func (coercer idCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	return coercer.coerce(value)
}

func (coercer idCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	switch v := value.(type) {
	case ast.StringValue:
		return v.Value(), nil
	case ast.IntValue:
		return v.Token.Value, nil
	}
	return nil, newScalarCoercionError("ID", value.Interface(), coercionErrorNonID)
}

//===-----------------------------------------------------------------------------------------===//
// Built-in Scalars
//===-----------------------------------------------------------------------------------------===//

var (
	intType = MustNewScalar(&ScalarConfig{
		Name: "Int",
		Description: "The `Int` scalar type represents non-fractional signed whole numeric values. " +
			"Int can represent values between -(2^31) and 2^31 - 1. ",
		ResultCoercer: intCoercer{},
		InputCoercer:  intCoercer{},
	})

	floatType = MustNewScalar(&ScalarConfig{
		Name: "Float",
		Description: "The `Float` scalar type represents signed double-precision fractional values as " +
			"specified by [IEEE 754](https://en.wikipedia.org/wiki/IEEE_floating_point). ",
		ResultCoercer: floatCoercer{},
		InputCoercer:  floatCoercer{},
	})

	stringType = MustNewScalar(&ScalarConfig{
		Name: "String",
		Description: "The `String` scalar type represents textual data, represented as UTF-8 " +
			"character sequences. The String type is most often used by GraphQL to represent " +
			"free-form human-readable text.",
		ResultCoercer: stringCoercer{},
		InputCoercer:  stringCoercer{},
	})

	booleanType = MustNewScalar(&ScalarConfig{
		Name:          "Boolean",
		Description:   "The `Boolean` scalar type represents `true` or `false`.",
		ResultCoercer: booleanCoercer{},
		InputCoercer:  booleanCoercer{},
	})

	idType = MustNewScalar(&ScalarConfig{
		Name: "ID",
		Description: "The `ID` scalar type represents a unique identifier, often used to refetch an " +
			"object or as key for a cache. The ID type appears in a JSON response as a String.",
		ResultCoercer: idCoercer{},
		InputCoercer:  idCoercer{},
	})
)

// Int returns the built-in Int scalar.
func Int() *Scalar {
	return intType
}

// Float returns the built-in Float scalar.
func Float() *Scalar {
	return floatType
}

// String returns the built-in String scalar.
func String() *Scalar {
	return stringType
}

// Boolean returns the built-in Boolean scalar.
func Boolean() *Scalar {
	return booleanType
}

// ID returns the built-in ID scalar.
func ID() *Scalar {
	return idType
}

// builtinScalars lists the scalars that are always available in a Schema.
func builtinScalars() []*Scalar {
	return []*Scalar{intType, floatType, stringType, booleanType, idType}
}
