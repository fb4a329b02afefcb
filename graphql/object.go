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
	"context"
	"fmt"
	"sort"
)

// FieldResolver resolves field value during execution.
type FieldResolver interface {
	// Resolve determines the value for the field from the value resolved by parent Object (given in
	// source).
	Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)

// Resolve calls f(ctx, source, info).
func (f FieldResolverFunc) Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

var _ FieldResolver = FieldResolverFunc(nil)

// Fields maps field name to its definition.
type Fields map[string]FieldConfig

// FieldConfig provides definition for creating a Field.
type FieldConfig struct {
	// Description of the field
	Description string

	// Type of the field; Must be an output type.
	Type TypeDefinition

	// Args specifies the arguments accepted by the field
	Args ArgumentConfigMap

	// Resolver for resolving field value during execution; If nil, the default field resolver
	// supplied to the executor is used.
	Resolver FieldResolver
}

// ArgumentConfigMap maps argument name to its definition.
type ArgumentConfigMap map[string]ArgumentConfig

// ArgumentConfig provides definition for creating an Argument.
type ArgumentConfig struct {
	// Description of the argument
	Description string

	// Type of the argument; Must be an input type.
	Type TypeDefinition

	// DefaultValue is used when the argument is omitted; nil means no default value.
	DefaultValue interface{}
}

// ObjectConfig provides specification to define an Object type. A *ObjectConfig is the
// TypeDefinition of the object; Fields may reference the same *ObjectConfig (directly or through
// other objects) to build recursive types.
type ObjectConfig struct {
	// Name of the defining Object
	Name string

	// Description for the Object type
	Description string

	// Fields in the object
	Fields Fields
}

var _ TypeDefinition = (*ObjectConfig)(nil)

func (config *ObjectConfig) resolveType(r *typeResolver) (Type, error) {
	return r.object(config)
}

//===----------------------------------------------------------------------------------------====//
// Object
//===----------------------------------------------------------------------------------------====//

// Object Type Definition
//
// Almost all of the GraphQL types you define will be object types. Object types have a name, but
// most importantly describe their fields.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Objects
type Object struct {
	name        string
	description string
	fields      FieldMap
}

// FieldMap maps field name to the Field.
type FieldMap map[string]*Field

// Name implements TypeWithName.
func (o *Object) Name() string {
	return o.name
}

// Description implements TypeWithName.
func (o *Object) Description() string {
	return o.description
}

// Fields returns the fields in the object.
func (o *Object) Fields() FieldMap {
	return o.fields
}

// Field returns the field with given name or nil.
func (o *Object) Field(name string) *Field {
	return o.fields[name]
}

func (o *Object) String() string {
	return o.name
}

func (*Object) graphqlType() {}

func (o *Object) resolveType(*typeResolver) (Type, error) {
	return o, nil
}

// Field is a field in an Object.
type Field struct {
	name        string
	description string
	ttype       Type
	args        []*Argument
	resolver    FieldResolver
}

// Name of the field
func (f *Field) Name() string {
	return f.name
}

// Description of the field
func (f *Field) Description() string {
	return f.description
}

// Type of the field
func (f *Field) Type() Type {
	return f.ttype
}

// Args returns the arguments sorted by name.
func (f *Field) Args() []*Argument {
	return f.args
}

// Arg finds the argument with the given name.
func (f *Field) Arg(name string) *Argument {
	for _, arg := range f.args {
		if arg.name == name {
			return arg
		}
	}
	return nil
}

// Resolver returns the field resolver which may be nil.
func (f *Field) Resolver() FieldResolver {
	return f.resolver
}

// Argument is an argument accepted by a Field.
type Argument struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
}

// Name of the argument
func (arg *Argument) Name() string {
	return arg.name
}

// Description of the argument
func (arg *Argument) Description() string {
	return arg.description
}

// Type of the argument
func (arg *Argument) Type() Type {
	return arg.ttype
}

// HasDefaultValue returns true if a default value was given.
func (arg *Argument) HasDefaultValue() bool {
	return arg.defaultValue != nil
}

// DefaultValue returns the default value.
func (arg *Argument) DefaultValue() interface{} {
	return arg.defaultValue
}

//===----------------------------------------------------------------------------------------====//
// typeResolver
//===----------------------------------------------------------------------------------------====//

// typeResolver creates types from TypeDefinition's and tracks the objects that have been created
// so each *ObjectConfig yields exactly one Object.
type typeResolver struct {
	objects map[*ObjectConfig]*Object
}

func newTypeResolver() *typeResolver {
	return &typeResolver{
		objects: map[*ObjectConfig]*Object{},
	}
}

func (r *typeResolver) resolve(typeDef TypeDefinition) (Type, error) {
	if typeDef == nil {
		return nil, NewError("Must provide a type definition.")
	}
	return typeDef.resolveType(r)
}

func (r *typeResolver) object(config *ObjectConfig) (*Object, error) {
	if object, exists := r.objects[config]; exists {
		return object, nil
	}

	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for Object.")
	}
	if len(config.Fields) == 0 {
		return nil, NewError(fmt.Sprintf("%s fields must be an object with field names as keys.", config.Name))
	}

	object := &Object{
		name:        config.Name,
		description: config.Description,
		fields:      make(FieldMap, len(config.Fields)),
	}
	// Register before building fields to allow fields to refer back to the object.
	r.objects[config] = object

	for name, fieldConfig := range config.Fields {
		field, err := r.field(config.Name, name, fieldConfig)
		if err != nil {
			return nil, err
		}
		object.fields[name] = field
	}

	return object, nil
}

func (r *typeResolver) field(objectName string, name string, config FieldConfig) (*Field, error) {
	ttype, err := r.resolve(config.Type)
	if err != nil {
		return nil, WrapErrorf(err, "%s.%s has invalid type", objectName, name)
	}

	args := make([]*Argument, 0, len(config.Args))
	for argName, argConfig := range config.Args {
		argType, err := r.resolve(argConfig.Type)
		if err != nil {
			return nil, WrapErrorf(err, "%s.%s(%s:) has invalid type", objectName, name, argName)
		}
		if !IsInputType(argType) {
			return nil, NewError(fmt.Sprintf("The type of %s.%s(%s:) must be Input Type but got: %s.",
				objectName, name, argName, argType))
		}
		args = append(args, &Argument{
			name:         argName,
			description:  argConfig.Description,
			ttype:        argType,
			defaultValue: argConfig.DefaultValue,
		})
	}
	sort.Slice(args, func(i, j int) bool {
		return args[i].name < args[j].name
	})

	return &Field{
		name:        name,
		description: config.Description,
		ttype:       ttype,
		args:        args,
		resolver:    config.Resolver,
	}, nil
}
