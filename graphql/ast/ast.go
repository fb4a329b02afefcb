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

package ast

import (
	"math"
	"strconv"

	"github.com/botobag/relgraph/graphql/token"
)

// Node represents a node in an AST tree from parsing GraphQL language.
type Node interface {
	// Location indicates where the node begins in the source.
	Location() token.SourceLocation
}

// Name represents a name.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Names
type Name struct {
	// Token is the lexical token that contains the name; Its kind must be token.KindName for a
	// non-empty name.
	Token token.Token
}

var _ Node = Name{}

// Value returns the name in string.
func (node Name) Value() string {
	return node.Token.Value
}

// IsNil returns true if the name was not given in the source (e.g., anonymous operation).
func (node Name) IsNil() bool {
	return node.Token.Kind != token.KindName
}

// Location implements Node.
func (node Name) Location() token.SourceLocation {
	return node.Token.Location
}

//===----------------------------------------------------------------------------------------====//
// 2.2 Document
//===----------------------------------------------------------------------------------------====//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Language.Document

// Document represents a GraphQL Document.
type Document struct {
	Definitions []Definition
}

// Definition represents an executable definition in a Document.
//
// Reference: https://facebook.github.io/graphql/June2018/#ExecutableDefinition
type Definition interface {
	Node

	// GetSelectionSet specifies the sets of fields to fetch. (Prepend "Get" to avoid name collision
	// with the fields in derived class.)
	GetSelectionSet() SelectionSet

	definitionNode()
}

var (
	_ Definition = (*OperationDefinition)(nil)
	_ Definition = (*FragmentDefinition)(nil)
)

//===----------------------------------------------------------------------------------------====//
// 2.3 Operations
//===----------------------------------------------------------------------------------------====//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Language.Operations

// OperationType specifies the type of operation model.
//
// Reference: https://facebook.github.io/graphql/June2018/#OperationType
type OperationType string

// Enumeration of OperationType
const (
	OperationTypeQuery        OperationType = "query"
	OperationTypeMutation     OperationType = "mutation"
	OperationTypeSubscription OperationType = "subscription"
)

// OperationDefinition represents a GraphQL operation.
//
// Reference: https://facebook.github.io/graphql/June2018/#OperationDefinition
type OperationDefinition struct {
	Loc token.SourceLocation

	// Type of the operation; Query shorthand ("{ field }") has type OperationTypeQuery.
	Type OperationType

	// Name of the operation; May be nil for anonymous operation.
	Name Name

	VariableDefinitions []*VariableDefinition
	Directives          Directives
	SelectionSet        SelectionSet
}

// Location implements Node.
func (definition *OperationDefinition) Location() token.SourceLocation {
	return definition.Loc
}

// GetSelectionSet implements Definition.
func (definition *OperationDefinition) GetSelectionSet() SelectionSet {
	return definition.SelectionSet
}

func (*OperationDefinition) definitionNode() {}

//===----------------------------------------------------------------------------------------====//
// 2.4 Selection Sets
//===----------------------------------------------------------------------------------------====//

// SelectionSet specifies a set of fields, fragment spreads or inline fragments.
//
// Reference: https://facebook.github.io/graphql/June2018/#SelectionSet
type SelectionSet []Selection

// Selection is either Field, FragmentSpread or InlineFragment.
//
// Reference: https://facebook.github.io/graphql/June2018/#Selection
type Selection interface {
	Node

	// GetDirectives returns the directives applied to the selection.
	GetDirectives() Directives

	selectionNode()
}

var (
	_ Selection = (*Field)(nil)
	_ Selection = (*FragmentSpread)(nil)
	_ Selection = (*InlineFragment)(nil)
)

//===----------------------------------------------------------------------------------------====//
// 2.5 Fields and 2.7 Field Alias
//===----------------------------------------------------------------------------------------====//

// Field describes a discrete piece of information available to request within a selection set.
//
// Reference: https://facebook.github.io/graphql/June2018/#Field
type Field struct {
	// Alias is nil if no alias was given.
	Alias        Name
	Name         Name
	Arguments    Arguments
	Directives   Directives
	SelectionSet SelectionSet
}

// Location implements Node.
func (field *Field) Location() token.SourceLocation {
	if !field.Alias.IsNil() {
		return field.Alias.Location()
	}
	return field.Name.Location()
}

// ResponseKey returns the key in the response map for the field which is the alias if one is
// given and field name otherwise.
func (field *Field) ResponseKey() string {
	if !field.Alias.IsNil() {
		return field.Alias.Value()
	}
	return field.Name.Value()
}

// GetDirectives implements Selection.
func (field *Field) GetDirectives() Directives {
	return field.Directives
}

func (*Field) selectionNode() {}

//===----------------------------------------------------------------------------------------====//
// 2.6 Arguments
//===----------------------------------------------------------------------------------------====//

// Argument is a name-value pair given to a field or a directive.
//
// Reference: https://facebook.github.io/graphql/June2018/#Argument
type Argument struct {
	Name  Name
	Value Value
}

// Location implements Node.
func (arg *Argument) Location() token.SourceLocation {
	return arg.Name.Location()
}

// Arguments is a list of Argument.
type Arguments []*Argument

// Get finds the argument with the given name.
func (args Arguments) Get(name string) *Argument {
	for _, arg := range args {
		if arg.Name.Value() == name {
			return arg
		}
	}
	return nil
}

//===----------------------------------------------------------------------------------------====//
// 2.8 Fragments
//===----------------------------------------------------------------------------------------====//

// FragmentSpread references a fragment definition by name.
//
// Reference: https://facebook.github.io/graphql/June2018/#FragmentSpread
type FragmentSpread struct {
	// Location of the "..."
	Loc        token.SourceLocation
	Name       Name
	Directives Directives
}

// Location implements Node.
func (spread *FragmentSpread) Location() token.SourceLocation {
	return spread.Loc
}

// GetDirectives implements Selection.
func (spread *FragmentSpread) GetDirectives() Directives {
	return spread.Directives
}

func (*FragmentSpread) selectionNode() {}

// InlineFragment is a fragment defined inline within a selection set.
//
// Reference: https://facebook.github.io/graphql/June2018/#InlineFragment
type InlineFragment struct {
	Loc token.SourceLocation

	// TypeCondition is nil if the fragment applies to the enclosing type.
	TypeCondition *NamedType
	Directives    Directives
	SelectionSet  SelectionSet
}

// Location implements Node.
func (fragment *InlineFragment) Location() token.SourceLocation {
	return fragment.Loc
}

// GetDirectives implements Selection.
func (fragment *InlineFragment) GetDirectives() Directives {
	return fragment.Directives
}

func (*InlineFragment) selectionNode() {}

// FragmentDefinition defines a named fragment.
//
// Reference: https://facebook.github.io/graphql/June2018/#FragmentDefinition
type FragmentDefinition struct {
	Loc           token.SourceLocation
	Name          Name
	TypeCondition *NamedType
	Directives    Directives
	SelectionSet  SelectionSet
}

// Location implements Node.
func (definition *FragmentDefinition) Location() token.SourceLocation {
	return definition.Loc
}

// GetSelectionSet implements Definition.
func (definition *FragmentDefinition) GetSelectionSet() SelectionSet {
	return definition.SelectionSet
}

func (*FragmentDefinition) definitionNode() {}

//===----------------------------------------------------------------------------------------====//
// 2.9 Input Values
//===----------------------------------------------------------------------------------------====//

// Value represents an input value literal in the document.
//
// Reference: https://facebook.github.io/graphql/June2018/#Value
type Value interface {
	Node

	// Interface returns the Go value represented by the literal. Variables return nil; Lists and
	// objects return []interface{} and map[string]interface{} respectively.
	Interface() interface{}

	valueNode()
}

var (
	_ Value = (*Variable)(nil)
	_ Value = IntValue{}
	_ Value = FloatValue{}
	_ Value = StringValue{}
	_ Value = BooleanValue{}
	_ Value = NullValue{}
	_ Value = EnumValue{}
	_ Value = (*ListValue)(nil)
	_ Value = (*ObjectValue)(nil)
)

// Variable is a reference to a variable ("$name").
//
// Reference: https://facebook.github.io/graphql/June2018/#Variable
type Variable struct {
	// Location of "$"
	Loc  token.SourceLocation
	Name Name
}

// Location implements Node.
func (variable *Variable) Location() token.SourceLocation {
	return variable.Loc
}

// Interface implements Value.
func (*Variable) Interface() interface{} {
	return nil
}

func (*Variable) valueNode() {}

// scalarValue is embedded by the values that consist of a single token.
type scalarValue struct {
	Token token.Token
}

// Location implements Node.
func (value scalarValue) Location() token.SourceLocation {
	return value.Token.Location
}

func (scalarValue) valueNode() {}

// IntValue represents an integer literal.
type IntValue struct {
	scalarValue
}

// NewIntValue creates an IntValue from token.
func NewIntValue(tok token.Token) IntValue {
	return IntValue{scalarValue{tok}}
}

// Int64Value parses the literal as a 64-bit integer.
func (value IntValue) Int64Value() (int64, error) {
	return strconv.ParseInt(value.Token.Value, 10, 64)
}

// Interface implements Value. The value is an int64 or a float64 if the literal overflows int64.
func (value IntValue) Interface() interface{} {
	if v, err := value.Int64Value(); err == nil {
		return v
	}
	v, err := strconv.ParseFloat(value.Token.Value, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FloatValue represents a float literal.
type FloatValue struct {
	scalarValue
}

// NewFloatValue creates a FloatValue from token.
func NewFloatValue(tok token.Token) FloatValue {
	return FloatValue{scalarValue{tok}}
}

// Interface implements Value.
func (value FloatValue) Interface() interface{} {
	v, err := strconv.ParseFloat(value.Token.Value, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// StringValue represents a string or a block string literal.
type StringValue struct {
	scalarValue
}

// NewStringValue creates a StringValue from token.
func NewStringValue(tok token.Token) StringValue {
	return StringValue{scalarValue{tok}}
}

// Value returns the interpreted string.
func (value StringValue) Value() string {
	return value.Token.Value
}

// IsBlockString returns true if the literal was given in block string form.
func (value StringValue) IsBlockString() bool {
	return value.Token.Kind == token.KindBlockString
}

// Interface implements Value.
func (value StringValue) Interface() interface{} {
	return value.Token.Value
}

// BooleanValue represents "true" or "false".
type BooleanValue struct {
	scalarValue
}

// NewBooleanValue creates a BooleanValue from token.
func NewBooleanValue(tok token.Token) BooleanValue {
	return BooleanValue{scalarValue{tok}}
}

// Value returns the boolean value.
func (value BooleanValue) Value() bool {
	return value.Token.Value == "true"
}

// Interface implements Value.
func (value BooleanValue) Interface() interface{} {
	return value.Value()
}

// NullValue represents "null".
type NullValue struct {
	scalarValue
}

// NewNullValue creates a NullValue from token.
func NewNullValue(tok token.Token) NullValue {
	return NullValue{scalarValue{tok}}
}

// Interface implements Value.
func (NullValue) Interface() interface{} {
	return nil
}

// EnumValue represents an enum literal.
type EnumValue struct {
	scalarValue
}

// NewEnumValue creates an EnumValue from token.
func NewEnumValue(tok token.Token) EnumValue {
	return EnumValue{scalarValue{tok}}
}

// Value returns the enum name.
func (value EnumValue) Value() string {
	return value.Token.Value
}

// Interface implements Value.
func (value EnumValue) Interface() interface{} {
	return value.Token.Value
}

// ListValue represents "[ Value... ]".
type ListValue struct {
	Loc    token.SourceLocation
	Values []Value
}

// Location implements Node.
func (value *ListValue) Location() token.SourceLocation {
	return value.Loc
}

// Interface implements Value.
func (value *ListValue) Interface() interface{} {
	result := make([]interface{}, len(value.Values))
	for i, v := range value.Values {
		result[i] = v.Interface()
	}
	return result
}

func (*ListValue) valueNode() {}

// ObjectField is a name-value pair in an object literal.
type ObjectField struct {
	Name  Name
	Value Value
}

// ObjectValue represents "{ name: Value... }".
type ObjectValue struct {
	Loc    token.SourceLocation
	Fields []*ObjectField
}

// Location implements Node.
func (value *ObjectValue) Location() token.SourceLocation {
	return value.Loc
}

// Interface implements Value.
func (value *ObjectValue) Interface() interface{} {
	result := make(map[string]interface{}, len(value.Fields))
	for _, field := range value.Fields {
		result[field.Name.Value()] = field.Value.Interface()
	}
	return result
}

func (*ObjectValue) valueNode() {}

//===----------------------------------------------------------------------------------------====//
// 2.10 Variables
//===----------------------------------------------------------------------------------------====//

// VariableDefinition declares a variable used by an operation.
//
// Reference: https://facebook.github.io/graphql/June2018/#VariableDefinition
type VariableDefinition struct {
	Variable *Variable
	Type     Type

	// DefaultValue is nil if not given.
	DefaultValue Value
}

// Location implements Node.
func (definition *VariableDefinition) Location() token.SourceLocation {
	return definition.Variable.Location()
}

//===----------------------------------------------------------------------------------------====//
// 2.11 Type References
//===----------------------------------------------------------------------------------------====//

// Type is a reference to a type in the schema.
//
// Reference: https://facebook.github.io/graphql/June2018/#Type
type Type interface {
	Node
	typeNode()
}

var (
	_ Type = (*NamedType)(nil)
	_ Type = (*ListType)(nil)
	_ Type = (*NonNullType)(nil)
)

// NamedType references a type by name.
type NamedType struct {
	Name Name
}

// Location implements Node.
func (t *NamedType) Location() token.SourceLocation {
	return t.Name.Location()
}

func (*NamedType) typeNode() {}

// ListType is "[Type]".
type ListType struct {
	Loc      token.SourceLocation
	ItemType Type
}

// Location implements Node.
func (t *ListType) Location() token.SourceLocation {
	return t.Loc
}

func (*ListType) typeNode() {}

// NonNullType is "Type!".
type NonNullType struct {
	Type Type
}

// Location implements Node.
func (t *NonNullType) Location() token.SourceLocation {
	return t.Type.Location()
}

func (*NonNullType) typeNode() {}

//===----------------------------------------------------------------------------------------====//
// 2.12 Directives
//===----------------------------------------------------------------------------------------====//

// Directive provides a way to describe alternate runtime execution.
//
// Reference: https://facebook.github.io/graphql/June2018/#Directive
type Directive struct {
	// Location of "@"
	Loc       token.SourceLocation
	Name      Name
	Arguments Arguments
}

// Location implements Node.
func (directive *Directive) Location() token.SourceLocation {
	return directive.Loc
}

// Directives is a list of Directive.
type Directives []*Directive

// Get finds the directive with the given name.
func (directives Directives) Get(name string) *Directive {
	for _, directive := range directives {
		if directive.Name.Value() == name {
			return directive
		}
	}
	return nil
}
