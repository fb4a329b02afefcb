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

package store

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrIDOutOfSequence is returned by Table.Append when the entity's ID is not the next ID of the
	// table.
	ErrIDOutOfSequence = errors.New("store: entity ID out of sequence")

	// ErrTableExists is returned by DB.CreateTable when a table of the kind already exists.
	ErrTableExists = errors.New("store: table already exists")

	// ErrNoSuchTable is returned when a table of the requested kind does not exist.
	ErrNoSuchTable = errors.New("store: no such table")

	// ErrIndexDiverged is reported by DB.Verify when an owner index disagrees with a scan of the
	// table.
	ErrIndexDiverged = errors.New("store: owner index diverged from table")

	// ErrReferenceNotFound matches every ReferenceNotFoundError with errors.Is.
	ErrReferenceNotFound = errors.New("reference not found")
)

// ReferenceNotFoundError reports that an entity referenced by ID does not exist.
type ReferenceNotFoundError struct {
	Kind Kind
	ID   ID
}

// NewReferenceNotFoundError creates a ReferenceNotFoundError.
func NewReferenceNotFoundError(kind Kind, id ID) *ReferenceNotFoundError {
	return &ReferenceNotFoundError{
		Kind: kind,
		ID:   id,
	}
}

// Error implements Go's error interface.
func (err *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", err.Kind, err.ID)
}

// Is reports whether target is ErrReferenceNotFound.
func (err *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// IsReferenceNotFound returns true if err is a ReferenceNotFoundError.
func IsReferenceNotFound(err error) bool {
	_, ok := AsReferenceNotFound(err)
	return ok
}

// AsReferenceNotFound extracts the ReferenceNotFoundError from err. Both Unwrap chains and errors
// annotated by github.com/pkg/errors (which only expose Cause) are followed.
func AsReferenceNotFound(err error) (*ReferenceNotFoundError, bool) {
	var target *ReferenceNotFoundError
	if errors.As(err, &target) {
		return target, true
	}
	target, ok := pkgerrors.Cause(err).(*ReferenceNotFoundError)
	return target, ok
}
