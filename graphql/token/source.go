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

package token

// SourceLocationInfo describes a source location for a SourceLocation with source name, line and
// column number.
type SourceLocationInfo struct {
	Name   string
	Line   uint
	Column uint
}

// Source represent a GraphQL source text.
type Source struct {
	name string
	body []byte
}

// NewSource creates a Source for the given document text. An empty name is replaced with
// "GraphQL request".
func NewSource(name string, body []byte) *Source {
	if len(name) == 0 {
		name = "GraphQL request"
	}
	return &Source{
		name: name,
		body: body,
	}
}

// NewSourceFromString is a shorthand of NewSource("", []byte(body)).
func NewSourceFromString(body string) *Source {
	return NewSource("", []byte(body))
}

// Body returns the document text.
func (source *Source) Body() []byte {
	return source.body
}

// Size returns the body size in bytes.
func (source *Source) Size() uint {
	return uint(len(source.body))
}

// Name returns the source name.
func (source *Source) Name() string {
	return source.name
}

// At returns the byte in the source at given position. Return 0 if the given position is out of
// body's range.
func (source *Source) At(pos uint) byte {
	if pos >= source.Size() {
		return 0
	}
	return source.body[pos]
}

// LocationFromPos returns a SourceLocation that represent the location for given position in the
// body.
func (source *Source) LocationFromPos(bytePos uint) SourceLocation {
	if bytePos > source.Size() {
		panic("illegal byte position value")
	}
	return SourceLocation(bytePos + 1)
}

// LocationInfoOf computes and returns a SourceLocationInfo for a given SourceLocation.
func (source *Source) LocationInfoOf(loc SourceLocation) SourceLocationInfo {
	if !loc.IsValid() {
		return SourceLocationInfo{
			Name: source.name,
		}
	}

	var (
		line     uint = 1
		column   uint = 1
		position      = uint(loc) - 1
		body          = source.body
		bodySize      = source.Size()
	)
	if position > bodySize {
		position = bodySize
	}

	for i := uint(0); i < position; i++ {
		switch body[i] {
		case '\r':
			// "\r\n" counts as one line terminator.
			if i+1 < bodySize && body[i+1] == '\n' {
				i++
				if i == position {
					line++
					column = 0
					continue
				}
			}
			line++
			column = 1

		case '\n':
			line++
			column = 1

		default:
			column++
		}
	}

	return SourceLocationInfo{
		Name:   source.name,
		Line:   line,
		Column: column,
	}
}
