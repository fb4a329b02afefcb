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

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
)

// CoerceVariableValues prepares the values of variables of the correct type based on the provided
// variable definitions and arbitrary input.
func CoerceVariableValues(
	schema *graphql.Schema,
	definitions []*ast.VariableDefinition,
	inputs map[string]interface{},
	locate Locator) (graphql.VariableValues, graphql.Errors) {

	var errs graphql.Errors
	coerced := map[string]interface{}{}

	for _, definition := range definitions {
		name := definition.Variable.Name.Value()
		varType := TypeFromAST(schema, definition.Type)
		locations := locate(definition.Location())

		if varType == nil || !graphql.IsInputType(varType) {
			errs.Emplace(fmt.Sprintf(`Variable "$%s" expected value of type "%s" which cannot be used `+
				`as an input type.`, name, typeNameOf(definition.Type)), locations, graphql.ErrKindValidation)
			continue
		}

		input, hasInput := inputs[name]
		_, isNonNull := varType.(*graphql.NonNull)

		switch {
		case !hasInput && definition.DefaultValue != nil:
			value, err := CoerceFromAST(definition.DefaultValue, varType, graphql.NoVariableValues())
			if err != nil {
				errs.Emplace(fmt.Sprintf(`Variable "$%s" has invalid default value: %s`, name, err.Error()),
					locations, err)
				continue
			}
			coerced[name] = value

		case !hasInput && isNonNull:
			errs.Emplace(fmt.Sprintf(`Variable "$%s" of required type "%s" was not provided.`,
				name, varType), locations, graphql.ErrKindCoercion)

		case hasInput && input == nil && isNonNull:
			errs.Emplace(fmt.Sprintf(`Variable "$%s" of non-null type "%s" must not be null.`,
				name, varType), locations, graphql.ErrKindCoercion)

		case hasInput:
			value, err := CoerceValue(input, varType)
			if err != nil {
				errs.Emplace(fmt.Sprintf(`Variable "$%s" got invalid value %s; %s`,
					name, inspect(input), err.Error()), locations, err)
				continue
			}
			coerced[name] = value
		}
	}

	if errs.HaveOccurred() {
		return graphql.NoVariableValues(), errs
	}
	return graphql.NewVariableValues(coerced), errs
}

// ArgumentValues prepares the argument values of a field given its definition and the argument
// nodes in the selection.
func ArgumentValues(
	field *graphql.Field,
	node *ast.Field,
	variables graphql.VariableValues,
	locate Locator) (graphql.ArgumentValues, error) {

	if len(field.Args()) == 0 {
		return graphql.NoArgumentValues(), nil
	}

	coerced := make(map[string]interface{}, len(field.Args()))
	for _, arg := range field.Args() {
		name := arg.Name()
		argType := arg.Type()
		argNode := node.Arguments.Get(name)
		_, isNonNull := argType.(*graphql.NonNull)

		hasValue := argNode != nil
		var variable *ast.Variable
		if hasValue {
			variable, _ = argNode.Value.(*ast.Variable)
			if variable != nil {
				_, hasValue = variables.Lookup(variable.Name.Value())
			}
		}

		switch {
		case !hasValue && arg.HasDefaultValue():
			coerced[name] = arg.DefaultValue()

		case !hasValue && isNonNull && variable != nil:
			return graphql.NoArgumentValues(), graphql.NewError(
				fmt.Sprintf(`Argument "%s" of required type "%s" was provided the variable "$%s" which was `+
					`not provided a runtime value.`, name, argType, variable.Name.Value()),
				locate(argNode.Location()), graphql.ErrKindCoercion)

		case !hasValue && isNonNull:
			return graphql.NoArgumentValues(), graphql.NewError(
				fmt.Sprintf(`Argument "%s" of required type "%s" was not provided.`, name, argType),
				locate(node.Location()), graphql.ErrKindCoercion)

		case hasValue:
			value, err := CoerceFromAST(argNode.Value, argType, variables)
			if err != nil {
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" has invalid value %s; %s`,
						name, inspect(argNode.Value.Interface()), err.Error()),
					locate(argNode.Value.Location()), err)
			}
			coerced[name] = value
		}
	}

	return graphql.NewArgumentValues(coerced), nil
}

// DirectiveBool evaluates the "if" argument of a directive. It returns (false, false) when the
// directive has no usable "if" argument.
func DirectiveBool(directive *ast.Directive, variables graphql.VariableValues) (value bool, ok bool) {
	arg := directive.Arguments.Get("if")
	if arg == nil {
		return false, false
	}
	coerced, err := CoerceFromAST(arg.Value, graphql.Boolean(), variables)
	if err != nil || coerced == nil {
		return false, false
	}
	return coerced.(bool), true
}

func typeNameOf(t ast.Type) string {
	switch t := t.(type) {
	case *ast.NamedType:
		return t.Name.Value()
	case *ast.ListType:
		return "[" + typeNameOf(t.ItemType) + "]"
	case *ast.NonNullType:
		return typeNameOf(t.Type) + "!"
	}
	return ""
}

func inspect(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	}
	return fmt.Sprintf("%v", value)
}
