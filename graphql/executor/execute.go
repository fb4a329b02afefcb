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
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
	"github.com/botobag/relgraph/graphql/internal/value"
)

// typeNameFieldName is the name of the meta field that every object type provides implicitly.
const typeNameFieldName = "__typename"

// errNullPropagated is returned from value completion when a null has to be propagated to the
// parent field. The error that triggered the propagation has been recorded already.
var errNullPropagated = errors.New("null propagated to parent")

// executionContext contains data required to execute an operation.
type executionContext struct {
	ctx            context.Context
	operation      *PreparedOperation
	rootValue      interface{}
	appContext     interface{}
	variableValues graphql.VariableValues
	errs           graphql.Errors
}

// fieldSelections groups the field nodes by response key in the order they first appear.
type fieldSelections struct {
	keys  []string
	nodes map[string][]*ast.Field
}

func (selections *fieldSelections) add(field *ast.Field) {
	key := field.ResponseKey()
	if _, exists := selections.nodes[key]; !exists {
		selections.keys = append(selections.keys, key)
	}
	selections.nodes[key] = append(selections.nodes[key], field)
}

func (operation *PreparedOperation) execute(ctx context.Context, params *ExecuteParams) ExecutionResult {
	variableValues, errs := value.CoerceVariableValues(
		operation.schema,
		operation.definition.VariableDefinitions,
		params.VariableValues,
		value.SourceLocator(operation.source))
	if errs.HaveOccurred() {
		return ExecutionResult{Errors: errs}
	}

	c := &executionContext{
		ctx:            ctx,
		operation:      operation,
		rootValue:      params.RootValue,
		appContext:     params.AppContext,
		variableValues: variableValues,
	}

	selections := c.collectFields(operation.rootType, operation.definition.SelectionSet, nil, map[string]bool{})
	data, err := c.executeFields(operation.rootType, params.RootValue, graphql.ResponsePath{}, selections)
	if err != nil {
		data = nil
	}

	return ExecutionResult{
		Data:   data,
		Errors: c.errs,
	}
}

// collectFields collects the fields in the selection set that apply to the object type, expanding
// fragments and evaluating @skip and @include.
//
// Reference: https://facebook.github.io/graphql/June2018/#CollectFields()
func (c *executionContext) collectFields(
	objectType *graphql.Object,
	selectionSet ast.SelectionSet,
	selections *fieldSelections,
	visitedFragments map[string]bool) *fieldSelections {

	if selections == nil {
		selections = &fieldSelections{
			nodes: map[string][]*ast.Field{},
		}
	}

	for _, selection := range selectionSet {
		if !c.shouldIncludeNode(selection.GetDirectives()) {
			continue
		}

		switch selection := selection.(type) {
		case *ast.Field:
			selections.add(selection)

		case *ast.InlineFragment:
			if selection.TypeCondition != nil && selection.TypeCondition.Name.Value() != objectType.Name() {
				continue
			}
			c.collectFields(objectType, selection.SelectionSet, selections, visitedFragments)

		case *ast.FragmentSpread:
			name := selection.Name.Value()
			if visitedFragments[name] {
				continue
			}
			visitedFragments[name] = true

			fragment := c.operation.fragmentMap[name]
			if fragment == nil || fragment.TypeCondition.Name.Value() != objectType.Name() {
				continue
			}
			c.collectFields(objectType, fragment.SelectionSet, selections, visitedFragments)
		}
	}

	return selections
}

// shouldIncludeNode determines if a field should be included based on the @include and @skip
// directives, where @skip has higher precedence than @include.
func (c *executionContext) shouldIncludeNode(directives ast.Directives) bool {
	if skip := directives.Get("skip"); skip != nil {
		if skipped, ok := value.DirectiveBool(skip, c.variableValues); ok && skipped {
			return false
		}
	}
	if include := directives.Get("include"); include != nil {
		if included, ok := value.DirectiveBool(include, c.variableValues); ok && !included {
			return false
		}
	}
	return true
}

// executeFields executes the collected fields in order and builds the result map. The fields are
// resolved one after another which also satisfies the serial execution required by mutations.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Mutation
func (c *executionContext) executeFields(
	parentType *graphql.Object,
	source interface{},
	path graphql.ResponsePath,
	selections *fieldSelections) (*ResultMap, error) {

	result := newResultMap(len(selections.keys))
	for _, key := range selections.keys {
		fieldNodes := selections.nodes[key]
		fieldPath := path.WithFieldName(key)

		if fieldNodes[0].Name.Value() == typeNameFieldName {
			result.set(key, parentType.Name())
			continue
		}

		field := parentType.Field(fieldNodes[0].Name.Value())
		if field == nil {
			// Checked by validator.
			continue
		}

		fieldValue, err := c.executeField(parentType, source, field, fieldNodes, fieldPath)
		if err != nil {
			return nil, err
		}
		result.set(key, fieldValue)
	}

	return result, nil
}

// executeField resolves the field on the given source and completes the value.
//
// Reference: https://facebook.github.io/graphql/June2018/#ExecuteField()
func (c *executionContext) executeField(
	parentType *graphql.Object,
	source interface{},
	field *graphql.Field,
	fieldNodes []*ast.Field,
	path graphql.ResponsePath) (interface{}, error) {

	info := &resolveInfo{
		ctx:        c,
		parentType: parentType,
		field:      field,
		fieldNodes: fieldNodes,
		path:       path,
	}

	args, err := value.ArgumentValues(field, fieldNodes[0], c.variableValues, c.operation.locate)
	if err != nil {
		return c.handleFieldError(err, field.Type(), fieldNodes, path)
	}
	info.args = args

	resolved, err := c.resolveField(source, info)
	if err != nil {
		return c.handleFieldError(err, field.Type(), fieldNodes, path)
	}

	return c.completeValueCatchingError(field.Type(), info, path, resolved)
}

// resolveField calls the field resolver and recovers from panics.
func (c *executionContext) resolveField(source interface{}, info *resolveInfo) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = graphql.NewError(fmt.Sprintf("%v", r), graphql.ErrKindInternal)
		}
	}()

	if err := c.ctx.Err(); err != nil {
		return nil, graphql.NewError(err.Error(), err, graphql.ErrKindExecution)
	}

	resolver := info.field.Resolver()
	if resolver == nil {
		resolver = c.operation.defaultFieldResolver
	}
	return resolver.Resolve(c.ctx, source, info)
}

// handleFieldError records a field error and decides whether null has to be propagated.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Errors-and-Non-Nullability
func (c *executionContext) handleFieldError(
	err error,
	returnType graphql.Type,
	fieldNodes []*ast.Field,
	path graphql.ResponsePath) (interface{}, error) {

	if err != errNullPropagated {
		message := err.Error()
		if e, ok := err.(*graphql.Error); ok {
			message = e.Message
		}

		var locations []graphql.ErrorLocation
		for _, node := range fieldNodes {
			locations = append(locations, c.operation.locate(node.Location())...)
		}
		c.errs.Append(graphql.NewError(message, locations, path, err))
	}

	if _, isNonNull := returnType.(*graphql.NonNull); isNonNull {
		return nil, errNullPropagated
	}
	return nil, nil
}

func (c *executionContext) completeValueCatchingError(
	returnType graphql.Type,
	info *resolveInfo,
	path graphql.ResponsePath,
	result interface{}) (interface{}, error) {

	completed, err := c.completeValue(returnType, info, path, result)
	if err != nil {
		return c.handleFieldError(err, returnType, info.fieldNodes, path)
	}
	return completed, nil
}

// completeValue implements "Value Completion" of GraphQL execution.
//
// Reference: https://facebook.github.io/graphql/June2018/#CompleteValue()
func (c *executionContext) completeValue(
	returnType graphql.Type,
	info *resolveInfo,
	path graphql.ResponsePath,
	result interface{}) (interface{}, error) {

	if nonNull, ok := returnType.(*graphql.NonNull); ok {
		completed, err := c.completeValue(nonNull.InnerType(), info, path, result)
		if err != nil {
			return nil, err
		}
		if completed == nil {
			return nil, graphql.NewError(fmt.Sprintf("Cannot return null for non-nullable field %s.%s.",
				info.parentType.Name(), info.field.Name()), graphql.ErrKindExecution)
		}
		return completed, nil
	}

	if isNullish(result) {
		return nil, nil
	}

	switch returnType := returnType.(type) {
	case *graphql.Scalar:
		coerced, err := returnType.CoerceResultValue(indirect(result))
		if err != nil {
			return nil, graphql.NewError(
				fmt.Sprintf("Expected a value of type %s but received: %v", returnType, indirect(result)),
				graphql.ErrKindCoercion, err)
		}
		return coerced, nil

	case *graphql.List:
		return c.completeListValue(returnType, info, path, result)

	case *graphql.Object:
		selections := &fieldSelections{
			nodes: map[string][]*ast.Field{},
		}
		visitedFragments := map[string]bool{}
		for _, node := range info.fieldNodes {
			c.collectFields(returnType, node.SelectionSet, selections, visitedFragments)
		}
		return c.executeFields(returnType, result, path, selections)
	}

	return nil, graphql.NewError(fmt.Sprintf(`Cannot complete value of unexpected type "%s".`, returnType),
		graphql.ErrKindInternal)
}

func (c *executionContext) completeListValue(
	returnType *graphql.List,
	info *resolveInfo,
	path graphql.ResponsePath,
	result interface{}) (interface{}, error) {

	list := reflect.ValueOf(result)
	if kind := list.Kind(); kind != reflect.Slice && kind != reflect.Array {
		return nil, graphql.NewError(fmt.Sprintf("Expected Iterable, but did not find one for field %s.%s.",
			info.parentType.Name(), info.field.Name()), graphql.ErrKindExecution)
	}

	elementType := returnType.ElementType()
	completed := make([]interface{}, list.Len())
	for i := range completed {
		element, err := c.completeValueCatchingError(elementType, info, path.WithIndex(i), list.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		completed[i] = element
	}
	return completed, nil
}

// isNullish returns true for nil and nil pointers, maps, slices and interfaces.
func isNullish(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// indirect dereferences pointers to scalar values (e.g., *string for a nullable String field).
func indirect(value interface{}) interface{} {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		// Keep values that know how to print themselves.
		if _, ok := v.Interface().(fmt.Stringer); ok {
			break
		}
		v = v.Elem()
	}
	return v.Interface()
}
