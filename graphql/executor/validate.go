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
	"fmt"
	"sort"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
	"github.com/botobag/relgraph/graphql/internal/value"
	"github.com/botobag/relgraph/internal/util"
)

// validator checks the selections of an operation against the schema before it is executed. It
// covers the checks that execution depends on:
//
//	* Fields must be defined on the selecting type
//	* Leaf fields cannot have selections and composite fields must have one
//	* Arguments must be known, required arguments must be given and literals must be valid
//	* Fragments must exist, apply to the selecting type and cannot form cycles
//	* Variables must be defined, have input types and be used in positions their types allow
//	* Only @skip and @include directives are allowed
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Validation
type validator struct {
	operation *PreparedOperation
	variables map[string]*ast.VariableDefinition
	errs      graphql.Errors

	// Fragments that are being validated; Used to detect cycles.
	visiting map[string]bool
}

func validateOperation(operation *PreparedOperation) graphql.Errors {
	v := &validator{
		operation: operation,
		variables: map[string]*ast.VariableDefinition{},
		visiting:  map[string]bool{},
	}

	for _, definition := range operation.definition.VariableDefinitions {
		name := definition.Variable.Name.Value()
		if _, exists := v.variables[name]; exists {
			v.report(fmt.Sprintf(`There can be only one variable named "%s".`, name), definition)
			continue
		}
		v.variables[name] = definition

		if t := value.TypeFromAST(operation.schema, definition.Type); t == nil || !graphql.IsInputType(t) {
			v.report(fmt.Sprintf(`Variable "$%s" cannot be non-input type "%s".`,
				name, typeNameOf(definition.Type)), definition.Type)
		}
	}

	v.checkDirectives(operation.definition.Directives)
	v.checkSelectionSet(operation.rootType, operation.definition.SelectionSet)
	return v.errs
}

func (v *validator) report(message string, node ast.Node) {
	v.errs.Emplace(message, v.operation.locate(node.Location()), graphql.ErrKindValidation)
}

func (v *validator) checkSelectionSet(parentType *graphql.Object, selectionSet ast.SelectionSet) {
	for _, selection := range selectionSet {
		v.checkDirectives(selection.GetDirectives())

		switch selection := selection.(type) {
		case *ast.Field:
			v.checkField(parentType, selection)

		case *ast.InlineFragment:
			if selection.TypeCondition != nil && !v.checkTypeCondition(parentType, selection.TypeCondition, "") {
				continue
			}
			v.checkSelectionSet(parentType, selection.SelectionSet)

		case *ast.FragmentSpread:
			name := selection.Name.Value()
			fragment := v.operation.fragmentMap[name]
			if fragment == nil {
				v.report(fmt.Sprintf(`Unknown fragment "%s".`, name), selection)
				continue
			}
			if v.visiting[name] {
				v.report(fmt.Sprintf(`Cannot spread fragment "%s" within itself.`, name), selection)
				continue
			}
			if !v.checkTypeCondition(parentType, fragment.TypeCondition, name) {
				continue
			}
			v.visiting[name] = true
			v.checkSelectionSet(parentType, fragment.SelectionSet)
			delete(v.visiting, name)
		}
	}
}

// checkTypeCondition returns true if a fragment with the type condition can be spread in the
// parent type. Since the schema consists of object types only, the condition must name the parent
// type.
func (v *validator) checkTypeCondition(parentType *graphql.Object, condition *ast.NamedType, fragmentName string) bool {
	typeName := condition.Name.Value()
	if v.operation.schema.TypeFromName(typeName) == nil {
		v.report(fmt.Sprintf(`Unknown type "%s".`, typeName), condition)
		return false
	}
	if typeName == parentType.Name() {
		return true
	}
	if len(fragmentName) > 0 {
		v.report(fmt.Sprintf(`Fragment "%s" cannot be spread here as objects of type "%s" can never be `+
			`of type "%s".`, fragmentName, parentType.Name(), typeName), condition)
	} else {
		v.report(fmt.Sprintf(`Fragment cannot be spread here as objects of type "%s" can never be of `+
			`type "%s".`, parentType.Name(), typeName), condition)
	}
	return false
}

func (v *validator) checkField(parentType *graphql.Object, node *ast.Field) {
	name := node.Name.Value()

	if name == typeNameFieldName {
		if len(node.SelectionSet) > 0 {
			v.report(fmt.Sprintf(`Field "%s" must not have a selection since type "String!" has no `+
				`subfields.`, name), node.SelectionSet[0])
		}
		return
	}

	field := parentType.Field(name)
	if field == nil {
		v.report(fmt.Sprintf(`Cannot query field "%s" on type "%s".%s`, name, parentType.Name(),
			util.DidYouMean(util.SuggestionList(name, fieldNames(parentType)))), node)
		return
	}

	v.checkArguments(parentType, field, node)

	namedType := graphql.NamedTypeOf(field.Type())
	if object, isObject := namedType.(*graphql.Object); isObject {
		if len(node.SelectionSet) == 0 {
			v.report(fmt.Sprintf(`Field "%s" of type "%s" must have a selection of subfields. Did you `+
				`mean "%s { ... }"?`, name, field.Type(), name), node)
			return
		}
		v.checkSelectionSet(object, node.SelectionSet)
	} else if len(node.SelectionSet) > 0 {
		v.report(fmt.Sprintf(`Field "%s" must not have a selection since type "%s" has no subfields.`,
			name, field.Type()), node.SelectionSet[0])
	}
}

func (v *validator) checkArguments(parentType *graphql.Object, field *graphql.Field, node *ast.Field) {
	seen := map[string]bool{}
	for _, argNode := range node.Arguments {
		argName := argNode.Name.Value()
		if seen[argName] {
			v.report(fmt.Sprintf(`There can be only one argument named "%s".`, argName), argNode)
			continue
		}
		seen[argName] = true

		arg := field.Arg(argName)
		if arg == nil {
			v.report(fmt.Sprintf(`Unknown argument "%s" on field "%s.%s".%s`,
				argName, parentType.Name(), field.Name(),
				util.DidYouMean(util.SuggestionList(argName, argumentNames(field)))), argNode)
			continue
		}

		if !v.checkVariables(argNode.Value) {
			continue
		}
		if containsVariable(argNode.Value) {
			v.checkVariablePositions(argNode.Value, arg.Type(), arg.HasDefaultValue())
		} else {
			if _, err := value.CoerceFromAST(argNode.Value, arg.Type(), graphql.NoVariableValues()); err != nil {
				v.errs.Emplace(fmt.Sprintf(`Argument "%s" has invalid value %s; %s`,
					argName, inspectLiteral(argNode.Value), err.Error()),
					v.operation.locate(argNode.Value.Location()), graphql.ErrKindValidation, err)
			}
		}
	}

	for _, arg := range field.Args() {
		if _, isNonNull := arg.Type().(*graphql.NonNull); !isNonNull || arg.HasDefaultValue() {
			continue
		}
		if argNode := node.Arguments.Get(arg.Name()); argNode == nil {
			v.report(fmt.Sprintf(`Field "%s" argument "%s" of type "%s" is required, but it was not `+
				`provided.`, field.Name(), arg.Name(), arg.Type()), node)
		} else if _, isNull := argNode.Value.(ast.NullValue); isNull {
			v.report(fmt.Sprintf(`Argument "%s" of non-null type "%s" must not be null.`,
				arg.Name(), arg.Type()), argNode.Value)
		}
	}
}

// checkVariables reports variables in the value that are not defined by the operation. Return
// false if any was found.
func (v *validator) checkVariables(node ast.Value) bool {
	switch node := node.(type) {
	case *ast.Variable:
		if _, defined := v.variables[node.Name.Value()]; !defined {
			name := node.Name.Value()
			if operationName := v.operation.Name(); len(operationName) > 0 {
				v.report(fmt.Sprintf(`Variable "$%s" is not defined by operation "%s".`, name, operationName), node)
			} else {
				v.report(fmt.Sprintf(`Variable "$%s" is not defined.`, name), node)
			}
			return false
		}

	case *ast.ListValue:
		ok := true
		for _, element := range node.Values {
			ok = v.checkVariables(element) && ok
		}
		return ok

	case *ast.ObjectValue:
		ok := true
		for _, field := range node.Fields {
			ok = v.checkVariables(field.Value) && ok
		}
		return ok
	}
	return true
}

func (v *validator) checkDirectives(directives ast.Directives) {
	for _, directive := range directives {
		name := directive.Name.Value()
		if name != "skip" && name != "include" {
			v.report(fmt.Sprintf(`Unknown directive "%s".`, name), directive)
			continue
		}

		ifArg := directive.Arguments.Get("if")
		if ifArg == nil {
			v.report(fmt.Sprintf(`Directive "%s" argument "if" of type "Boolean!" is required, but it was `+
				`not provided.`, name), directive)
			continue
		}
		if !v.checkVariables(ifArg.Value) {
			continue
		}
		if containsVariable(ifArg.Value) {
			v.checkVariablePositions(ifArg.Value, nonNullBoolean, false)
		} else if _, ok := ifArg.Value.(ast.BooleanValue); !ok {
			v.report(fmt.Sprintf(`Argument "if" has invalid value %s; Expected type "Boolean!".`,
				inspectLiteral(ifArg.Value)), ifArg.Value)
		}
	}
}

// Type of the "if" argument of @skip and @include
var nonNullBoolean graphql.Type = func() graphql.Type {
	t, err := graphql.NewNonNullOf(graphql.Boolean())
	if err != nil {
		panic(err)
	}
	return t
}()

// checkVariablePositions reports variables in the value whose types cannot be used where a value of
// locationType is expected. Variables in the value must have been checked by checkVariables.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-All-Variable-Usages-are-Allowed
func (v *validator) checkVariablePositions(node ast.Value, locationType graphql.Type, hasLocationDefault bool) {
	switch node := node.(type) {
	case *ast.Variable:
		name := node.Name.Value()
		definition := v.variables[name]
		varType := value.TypeFromAST(v.operation.schema, definition.Type)
		if varType == nil {
			// Already reported as non-input type.
			return
		}
		if !isVariableUsageAllowed(definition, varType, locationType, hasLocationDefault) {
			locations := append(v.operation.locate(definition.Location()), v.operation.locate(node.Location())...)
			v.errs.Emplace(fmt.Sprintf(`Variable "$%s" of type "%s" used in position expecting type "%s".`,
				name, varType, locationType), locations, graphql.ErrKindValidation)
		}

	case *ast.ListValue:
		if list, isList := graphql.NullableTypeOf(locationType).(*graphql.List); isList {
			for _, element := range node.Values {
				v.checkVariablePositions(element, list.ElementType(), false)
			}
		}
	}
}

func isVariableUsageAllowed(
	definition *ast.VariableDefinition,
	varType graphql.Type,
	locationType graphql.Type,
	hasLocationDefault bool) bool {

	if nonNullLocationType, isNonNull := locationType.(*graphql.NonNull); isNonNull && graphql.IsNullableType(varType) {
		_, nullDefault := definition.DefaultValue.(ast.NullValue)
		hasNonNullVariableDefault := definition.DefaultValue != nil && !nullDefault
		if !hasNonNullVariableDefault && !hasLocationDefault {
			return false
		}
		return isTypeSubTypeOf(varType, nonNullLocationType.InnerType())
	}
	return isTypeSubTypeOf(varType, locationType)
}

// isTypeSubTypeOf returns true if a value of maybeSubType can be provided where superType is
// expected. The schema has no abstract types so named types must match.
func isTypeSubTypeOf(maybeSubType graphql.Type, superType graphql.Type) bool {
	if superNonNull, isNonNull := superType.(*graphql.NonNull); isNonNull {
		if subNonNull, isNonNull := maybeSubType.(*graphql.NonNull); isNonNull {
			return isTypeSubTypeOf(subNonNull.InnerType(), superNonNull.InnerType())
		}
		return false
	}
	if subNonNull, isNonNull := maybeSubType.(*graphql.NonNull); isNonNull {
		return isTypeSubTypeOf(subNonNull.InnerType(), superType)
	}

	if superList, isList := superType.(*graphql.List); isList {
		if subList, isList := maybeSubType.(*graphql.List); isList {
			return isTypeSubTypeOf(subList.ElementType(), superList.ElementType())
		}
		return false
	}
	if _, isList := maybeSubType.(*graphql.List); isList {
		return false
	}

	subNamed, ok := maybeSubType.(graphql.TypeWithName)
	if !ok {
		return false
	}
	superNamed, ok := superType.(graphql.TypeWithName)
	return ok && subNamed.Name() == superNamed.Name()
}

func containsVariable(node ast.Value) bool {
	switch node := node.(type) {
	case *ast.Variable:
		return true
	case *ast.ListValue:
		for _, element := range node.Values {
			if containsVariable(element) {
				return true
			}
		}
	case *ast.ObjectValue:
		for _, field := range node.Fields {
			if containsVariable(field.Value) {
				return true
			}
		}
	}
	return false
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

func inspectLiteral(node ast.Value) string {
	switch node := node.(type) {
	case ast.StringValue:
		return fmt.Sprintf("%q", node.Value())
	case ast.NullValue:
		return "null"
	}
	return fmt.Sprintf("%v", node.Interface())
}

// fieldNames returns the names of fields in object in alphabetical order.
func fieldNames(object *graphql.Object) []string {
	names := make([]string, 0, len(object.Fields()))
	for name := range object.Fields() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// argumentNames returns the names of arguments accepted by field.
func argumentNames(field *graphql.Field) []string {
	args := field.Args()
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = arg.Name()
	}
	return names
}
