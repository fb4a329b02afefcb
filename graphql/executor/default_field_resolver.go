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
	"reflect"
	"strings"
	"unicode"

	"github.com/botobag/relgraph/graphql"
)

// DefaultFieldResolverOption specifies an option to configure field resolver instance created by
// NewDefaultFieldResolver.
type DefaultFieldResolverOption func(*defaultFieldResolver)

// defaultFieldResolver is used when no resolver is given to a field. It resolves the field value
// to the value of the struct field or map entry with the matching name in source, or to the result
// of calling the matching method.
type defaultFieldResolver struct {
	unresolvedAsError bool   // default: true
	scanMethods       bool   // default: true
	fieldTagName      string // default: "graphql"
}

// NewDefaultFieldResolver configures a field resolver which is used for fields without resolver.
//
// For struct source, the resolver looks for (in order) the struct field whose tag matches the
// field name, the struct field named with the field name in CamelCase and the method with that
// name. For map source, the entry keyed by the field name is used.
func NewDefaultFieldResolver(opts ...DefaultFieldResolverOption) graphql.FieldResolver {
	resolver := &defaultFieldResolver{
		unresolvedAsError: true,
		scanMethods:       true,
		fieldTagName:      "graphql",
	}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver
}

// UnresolvedAsError specifies whether error should be returned for fields that cannot be resolved.
// When disabled, such fields resolve to null.
func UnresolvedAsError(enabled bool) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.unresolvedAsError = enabled
	}
}

// ScanMethods specifies whether public methods of the source are matched. A matching method must
// take no arguments besides an optional context.Context and return the value with an optional
// error.
func ScanMethods(enabled bool) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.scanMethods = enabled
	}
}

// FieldTagName specifies the struct field tag used to declare the GraphQL field name of a struct
// field. For example,
//
//	type Book struct {
//		AuthorID store.ID `graphql:"authorId"`
//	}
//
// The feature can be disabled by FieldTagName("").
func FieldTagName(name string) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.fieldTagName = name
	}
}

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Resolve implements graphql.FieldResolver.
func (resolver *defaultFieldResolver) Resolve(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	value := reflect.ValueOf(source)
	if !value.IsValid() {
		return nil, resolver.unresolvedError(info)
	}

	if value.Kind() == reflect.Map {
		entry := value.MapIndex(reflect.ValueOf(info.Field().Name()))
		if entry.IsValid() {
			return entry.Interface(), nil
		}
		return nil, resolver.unresolvedError(info)
	}

	structValue := value
	if structValue.Kind() == reflect.Ptr {
		structValue = structValue.Elem()
	}

	if structValue.Kind() == reflect.Struct {
		if field, ok := resolver.structField(structValue, info.Field().Name()); ok {
			return field.Interface(), nil
		}
	}

	if resolver.scanMethods {
		method := value.MethodByName(upperFirst(info.Field().Name()))
		if method.IsValid() {
			return resolver.callMethod(ctx, method, info)
		}
	}

	return nil, resolver.unresolvedError(info)
}

func (resolver *defaultFieldResolver) structField(value reflect.Value, name string) (reflect.Value, bool) {
	valueType := value.Type()

	if len(resolver.fieldTagName) > 0 {
		for i := 0; i < valueType.NumField(); i++ {
			tag := strings.Split(valueType.Field(i).Tag.Get(resolver.fieldTagName), ",")[0]
			if tag == name {
				return value.Field(i), true
			}
		}
	}

	field, ok := valueType.FieldByName(upperFirst(name))
	if !ok || len(field.PkgPath) > 0 {
		return reflect.Value{}, false
	}
	return value.FieldByIndex(field.Index), true
}

func (resolver *defaultFieldResolver) callMethod(
	ctx context.Context,
	method reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	methodType := method.Type()

	var in []reflect.Value
	switch {
	case methodType.NumIn() == 0:
	case methodType.NumIn() == 1 && methodType.In(0) == contextType:
		in = []reflect.Value{reflect.ValueOf(ctx)}
	default:
		return nil, resolver.unresolvedErrorWithMessage(fmt.Sprintf(
			`default resolver found method for "%s.%s" but is unable to call it with signature %s`,
			info.ParentType().Name(), info.Field().Name(), methodType))
	}

	switch {
	case methodType.NumOut() == 1:
		return method.Call(in)[0].Interface(), nil

	case methodType.NumOut() == 2 && methodType.Out(1) == errorType:
		out := method.Call(in)
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}

	return nil, resolver.unresolvedErrorWithMessage(fmt.Sprintf(
		`default resolver found method for "%s.%s" but is unable to call it with signature %s`,
		info.ParentType().Name(), info.Field().Name(), methodType))
}

func (resolver *defaultFieldResolver) unresolvedErrorWithMessage(message string) error {
	if !resolver.unresolvedAsError {
		return nil
	}
	return graphql.NewError(message)
}

func (resolver *defaultFieldResolver) unresolvedError(info graphql.ResolveInfo) error {
	return resolver.unresolvedErrorWithMessage(fmt.Sprintf(
		`default resolver cannot resolve value for "%s.%s"`, info.ParentType().Name(), info.Field().Name()))
}

func upperFirst(name string) string {
	if len(name) == 0 {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
