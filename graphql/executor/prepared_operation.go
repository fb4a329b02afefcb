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
	"fmt"

	"github.com/botobag/relgraph/concurrent"
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
	"github.com/botobag/relgraph/graphql/internal/value"
	"github.com/botobag/relgraph/graphql/token"
)

// PreparedOperation is like "prepared statement" in conventional DBMS. In GraphQL, an Operation [0]
// is an executable definition [1] in GraphQL Document [2]. Before executing an operation, executor
// needs to make some "preparations" such as selecting the operation and checking its selections
// against the schema. PreparedOperation allows you to perform these static tasks in advance to
// save the overheads for subsequent repeatedly execution.
//
// [0]: https://facebook.github.io/graphql/June2018/#sec-Language.Operations
// [1]: https://facebook.github.io/graphql/June2018/#ExecutableDefinition
// [2]: https://facebook.github.io/graphql/June2018/#sec-Language.Document
type PreparedOperation struct {
	// Schema of the type system that is currently executing
	schema *graphql.Schema

	// Document that contains definitions for this operation
	document ast.Document

	// Source of the document for locating errors
	source *token.Source

	// Definition of this operation
	definition *ast.OperationDefinition

	// rootType extracts the root type corresponding to the operation in the schema.
	rootType *graphql.Object

	// fragmentMap maps name to the fragment definition in the document.
	fragmentMap map[string]*ast.FragmentDefinition

	// Resolver to be used for resolving field value when the field doesn't provide one.
	defaultFieldResolver graphql.FieldResolver
}

// PrepareParams specifies parameters to Prepare. All data are required except OperationName and
// DefaultFieldResolver.
type PrepareParams struct {
	// Schema of the type system that this operation is executing on
	Schema *graphql.Schema

	// Document that contains operations to be prepared for execution
	Document ast.Document

	// Source that was parsed into Document
	Source *token.Source

	// The name of the Operation in the Document to execute.
	OperationName string

	// Resolver to be used to fields without providing custom resolvers.
	DefaultFieldResolver graphql.FieldResolver
}

// Prepare prepares an operation for execution. It selects the operation from document and checks
// its selections against the schema.
func Prepare(params PrepareParams) (*PreparedOperation, graphql.Errors) {
	var (
		operation     *ast.OperationDefinition
		operationName = params.OperationName
		fragmentMap   = map[string]*ast.FragmentDefinition{}
		locate        = value.SourceLocator(params.Source)
	)

	for _, definition := range params.Document.Definitions {
		switch definition := definition.(type) {
		case *ast.OperationDefinition:
			if len(operationName) == 0 {
				if operation != nil {
					return nil, graphql.ErrorsOf(
						"Must provide operation name if query contains multiple operations.",
						graphql.ErrKindValidation)
				}
				operation = definition
			} else if operationName == definition.Name.Value() {
				operation = definition
			}

		case *ast.FragmentDefinition:
			name := definition.Name.Value()
			if _, exists := fragmentMap[name]; exists {
				return nil, graphql.ErrorsOf(
					fmt.Sprintf(`There can be only one fragment named "%s".`, name),
					locate(definition.Location()), graphql.ErrKindValidation)
			}
			fragmentMap[name] = definition
		}
	}

	if operation == nil {
		if len(operationName) > 0 {
			return nil, graphql.ErrorsOf(fmt.Sprintf(`Unknown operation named "%s".`, operationName),
				graphql.ErrKindValidation)
		}
		return nil, graphql.ErrorsOf("Must provide an operation.", graphql.ErrKindValidation)
	}

	var rootType *graphql.Object
	switch operation.Type {
	case ast.OperationTypeQuery:
		rootType = params.Schema.Query()

	case ast.OperationTypeMutation:
		rootType = params.Schema.Mutation()
		if rootType == nil {
			return nil, graphql.ErrorsOf("Schema is not configured for mutations.",
				locate(operation.Location()), graphql.ErrKindValidation)
		}

	case ast.OperationTypeSubscription:
		return nil, graphql.ErrorsOf("Schema is not configured for subscriptions.",
			locate(operation.Location()), graphql.ErrKindValidation)

	default:
		return nil, graphql.ErrorsOf("Can only have query and mutation operations.",
			locate(operation.Location()), graphql.ErrKindValidation)
	}

	prepared := &PreparedOperation{
		schema:               params.Schema,
		document:             params.Document,
		source:               params.Source,
		definition:           operation,
		rootType:             rootType,
		fragmentMap:          fragmentMap,
		defaultFieldResolver: params.DefaultFieldResolver,
	}
	if prepared.defaultFieldResolver == nil {
		prepared.defaultFieldResolver = NewDefaultFieldResolver()
	}

	if errs := validateOperation(prepared); errs.HaveOccurred() {
		return nil, errs
	}

	return prepared, graphql.Errors{}
}

// Schema returns the type system definition which the operation is based on.
func (operation *PreparedOperation) Schema() *graphql.Schema {
	return operation.schema
}

// Document returns the request document.
func (operation *PreparedOperation) Document() ast.Document {
	return operation.document
}

// Definition returns the definition of the operation being prepared.
func (operation *PreparedOperation) Definition() *ast.OperationDefinition {
	return operation.definition
}

// Type returns the type of the operation.
func (operation *PreparedOperation) Type() ast.OperationType {
	return operation.definition.Type
}

// Name returns the name of the operation; Empty for anonymous operation.
func (operation *PreparedOperation) Name() string {
	return operation.definition.Name.Value()
}

// RootType returns the object type where the execution begins.
func (operation *PreparedOperation) RootType() *graphql.Object {
	return operation.rootType
}

// VariableDefinitions returns the variable definitions describing the variables taken by the
// operation.
func (operation *PreparedOperation) VariableDefinitions() []*ast.VariableDefinition {
	return operation.definition.VariableDefinitions
}

// locate converts a source location to ErrorLocation's.
func (operation *PreparedOperation) locate(location token.SourceLocation) []graphql.ErrorLocation {
	return graphql.LocationsOf(operation.source, location)
}

// ExecuteParams specifies parameter to execute a prepared operation.
type ExecuteParams struct {
	// Runner specifies executor to run the execution. If it is not provided, Execute runs the
	// execution in the calling goroutine.
	Runner concurrent.Executor

	// RootValue is an initial value corresponding to the root type being executed.
	RootValue interface{}

	// AppContext is an application-specific data that will get passed to all resolve functions.
	AppContext interface{}

	// VariableValues contains values for any Variables defined by the Operation.
	VariableValues map[string]interface{}
}

// Execute executes the operation. ctx specifies deadline and/or cancellation for the execution.
// The result is delivered through the returned channel which receives exactly one value.
func (operation *PreparedOperation) Execute(ctx context.Context, params ExecuteParams) <-chan ExecutionResult {
	result := make(chan ExecutionResult, 1)

	if params.Runner == nil {
		result <- operation.execute(ctx, &params)
		return result
	}

	_, err := params.Runner.Submit(concurrent.TaskFunc(func() (interface{}, error) {
		delivered := false
		defer func() {
			if !delivered {
				result <- ExecutionResult{
					Errors: graphql.ErrorsOf(graphql.NewError("Execution aborted", graphql.ErrKindInternal)),
				}
			}
		}()
		result <- operation.execute(ctx, &params)
		delivered = true
		return nil, nil
	}))
	if err != nil {
		result <- ExecutionResult{
			Errors: graphql.ErrorsOf(graphql.NewError("Failed to schedule the operation", err, graphql.ErrKindInternal)),
		}
	}

	return result
}

// ExecuteSync executes the operation and waits for the result.
func (operation *PreparedOperation) ExecuteSync(ctx context.Context, params ExecuteParams) ExecutionResult {
	select {
	case result := <-operation.Execute(ctx, params):
		return result
	case <-ctx.Done():
		return ExecutionResult{
			Errors: graphql.ErrorsOf(graphql.NewError("Execution canceled", ctx.Err(), graphql.ErrKindExecution)),
		}
	}
}
