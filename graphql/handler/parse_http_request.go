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

package handler

import (
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"net/url"

	"github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ParseHTTPRequestOptions provides settings to ParseHTTPRequest.
type ParseHTTPRequestOptions struct {
	// Maximum size in bytes to be read when parsing a GraphQL query from HTTP request body.
	MaxBodySize uint
}

// HTTPRequest contains result values of ParseHTTPRequest.
type HTTPRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HTTPRequestParseError is returned by ParseHTTPRequest when parsing failed.
type HTTPRequestParseError struct {
	Request *http.Request
	Options *ParseHTTPRequestOptions
	Err     error
}

// Error implements Go's error interface.
func (err *HTTPRequestParseError) Error() string {
	return err.Err.Error()
}

// Cause returns the underlying error.
func (err *HTTPRequestParseError) Cause() error {
	return err.Err
}

var errRequestBodyTooLarge = errors.New("request body is too large")

// jsonRequest mirrors HTTPRequest but accepts "variables" either as an object or as a string that
// encodes the object.
type jsonRequest struct {
	Query         string              `json:"query"`
	OperationName string              `json:"operationName"`
	Variables     jsoniter.RawMessage `json:"variables"`
}

// If the value doesn't contains value for the given key, return an empty string without error.
// If there're multiple values associated with the key, return an error. Otherwise, return the
// single value.
func getOneValue(values url.Values, key string) (string, error) {
	v := values[key]
	switch len(v) {
	case 0:
		return "", nil
	case 1:
		return v[0], nil
	default:
		return "", fmt.Errorf(`multiple values are provided to "%s", but only one expected`, key)
	}
}

func decodeVariables(data []byte) (map[string]interface{}, error) {
	var variables interface{}
	if err := jsoniter.Unmarshal(data, &variables); err != nil {
		return nil, errors.Wrap(err, "decode variables")
	}

	switch v := variables.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return v, nil
	case string:
		if len(v) == 0 {
			return nil, nil
		}
		return decodeVariables([]byte(v))
	default:
		return nil, errors.Errorf("variables must be an object, got %T", variables)
	}
}

// parseRequestFromValues parses a HTTPRequest from url.Values.
func parseRequestFromValues(values url.Values) (*HTTPRequest, error) {
	var (
		req HTTPRequest
		err error
	)

	if req.Query, err = getOneValue(values, "query"); err != nil {
		return nil, err
	}
	if req.OperationName, err = getOneValue(values, "operationName"); err != nil {
		return nil, err
	}

	variables, err := getOneValue(values, "variables")
	if err != nil {
		return nil, err
	}
	if len(variables) > 0 {
		if req.Variables, err = decodeVariables([]byte(variables)); err != nil {
			return nil, err
		}
	}

	return &req, nil
}

func parseRequestFromJSON(body []byte) (*HTTPRequest, error) {
	var req jsonRequest
	if err := jsoniter.Unmarshal(body, &req); err != nil {
		return nil, errors.Wrap(err, "decode request body")
	}

	result := &HTTPRequest{
		Query:         req.Query,
		OperationName: req.OperationName,
	}
	if len(req.Variables) > 0 {
		variables, err := decodeVariables(req.Variables)
		if err != nil {
			return nil, err
		}
		result.Variables = variables
	}
	return result, nil
}

// ParseHTTPRequest parses a GraphQL request from a http.Request object.
func ParseHTTPRequest(r *http.Request, options *ParseHTTPRequestOptions) (*HTTPRequest, error) {
	req, err := parseHTTPRequest(r, options)
	if err != nil {
		return nil, &HTTPRequestParseError{
			Request: r,
			Options: options,
			Err:     err,
		}
	}
	return req, nil
}

func parseHTTPRequest(r *http.Request, options *ParseHTTPRequestOptions) (*HTTPRequest, error) {
	switch r.Method {
	case http.MethodGet:
		// Read query variables in URL from r.Form if it has been populated.
		values := r.Form
		if values == nil {
			var err error
			if values, err = url.ParseQuery(r.URL.RawQuery); err != nil {
				return nil, err
			}
		}
		return parseRequestFromValues(values)

	case http.MethodPost:
		// Ignore error.
		contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

		// Quick path: r.Form has already been populated.
		if contentType == "application/x-www-form-urlencoded" && r.Form != nil {
			return parseRequestFromValues(r.Form)
		}

		maxBodySize := options.MaxBodySize
		body, err := ioutil.ReadAll(io.LimitReader(r.Body, int64(maxBodySize)+1))
		if err != nil {
			return nil, err
		}
		if uint(len(body)) > maxBodySize {
			return nil, errRequestBodyTooLarge
		}

		// See https://github.com/graphql/express-graphql/blob/8826952/src/parseBody.js for the
		// supported content-type.
		switch contentType {
		case "application/graphql":
			return &HTTPRequest{
				Query: string(body),
			}, nil

		case "application/x-www-form-urlencoded":
			values, err := url.ParseQuery(string(body))
			if err != nil {
				return nil, err
			}
			return parseRequestFromValues(values)

		case "", "application/json":
			return parseRequestFromJSON(body)

		default:
			// Unsupported content-type ends up with an empty query.
			return &HTTPRequest{}, nil
		}

	default:
		return nil, errors.Errorf("unsupported method %s", r.Method)
	}
}
