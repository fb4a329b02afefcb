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
	"io"

	"github.com/botobag/relgraph/graphql"
	"github.com/json-iterator/go"
)

// ResultMap is an ordered map that stores the result of a selection set. The keys are kept in the
// order in which the fields were requested.
type ResultMap struct {
	keys   []string
	values []interface{}
}

func newResultMap(size int) *ResultMap {
	return &ResultMap{
		keys:   make([]string, 0, size),
		values: make([]interface{}, 0, size),
	}
}

func (m *ResultMap) set(key string, value interface{}) {
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// Keys returns the response keys in order.
func (m *ResultMap) Keys() []string {
	return m.keys
}

// Get returns the value for the response key. The second value is false if the key is absent.
func (m *ResultMap) Get(key string) (interface{}, bool) {
	for i, k := range m.keys {
		if k == key {
			return m.values[i], true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (m *ResultMap) Len() int {
	return len(m.keys)
}

// MarshalJSON implements json.Marshaler.
func (m *ResultMap) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)
	writeValue(stream, m)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// writeValue serializes a completed value. Completed values consist of nil, *ResultMap,
// []interface{} and the values returned by scalar result coercers.
func writeValue(stream *jsoniter.Stream, value interface{}) {
	switch value := value.(type) {
	case nil:
		stream.WriteNil()

	case *ResultMap:
		stream.WriteObjectStart()
		for i, key := range value.keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(key)
			writeValue(stream, value.values[i])
		}
		stream.WriteObjectEnd()

	case []interface{}:
		stream.WriteArrayStart()
		for i, element := range value {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, element)
		}
		stream.WriteArrayEnd()

	case string:
		stream.WriteString(value)
	case int:
		stream.WriteInt(value)
	case float64:
		stream.WriteFloat64(value)
	case bool:
		stream.WriteBool(value)

	default:
		stream.WriteVal(value)
	}
}

// ExecutionResult contains result from running an Executor.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Response-Format
type ExecutionResult struct {
	// Data is nil if an error was raised before execution begins or the error propagated to the
	// root.
	Data   *ResultMap
	Errors graphql.Errors
}

// MarshalJSONTo serializes the result as a GraphQL response to w.
func (result *ExecutionResult) MarshalJSONTo(w io.Writer) error {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(w)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	result.writeTo(stream)
	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}

// MarshalJSON implements json.Marshaler.
func (result ExecutionResult) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	result.writeTo(stream)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func (result *ExecutionResult) writeTo(stream *jsoniter.Stream) {
	stream.WriteObjectStart()

	hasErrors := result.Errors.HaveOccurred()
	if hasErrors {
		stream.WriteObjectField("errors")
		stream.WriteVal(result.Errors.Errors)
	}

	// "data" is absent if an error was raised before execution begins and null if an error during
	// execution nulled the root.
	if result.Data != nil || !hasErrors || result.executed() {
		if hasErrors {
			stream.WriteMore()
		}
		stream.WriteObjectField("data")
		if result.Data == nil {
			stream.WriteNil()
		} else {
			writeValue(stream, result.Data)
		}
	}

	stream.WriteObjectEnd()
}

// executed returns true if any of the errors was raised during execution.
func (result *ExecutionResult) executed() bool {
	for _, err := range result.Errors.Errors {
		if !err.Path.Empty() {
			return true
		}
	}
	return false
}
