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
	"strconv"

	"github.com/pkg/errors"
)

// ID identifies an entity within its kind. Valid IDs are positive.
type ID int64

// NoID is the zero ID which is never assigned to an entity.
const NoID ID = 0

// IsValid returns true if the id is positive.
func (id ID) IsValid() bool {
	return id > NoID
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID parses a decimal string into a valid ID.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return NoID, errors.Errorf("invalid ID %q", s)
	}
	id := ID(v)
	if !id.IsValid() {
		return NoID, errors.Errorf("invalid ID %q: must be positive", s)
	}
	return id, nil
}

// Kind names an entity kind (such as "Author"). Each Kind has its own Table and ID sequence.
type Kind string

func (kind Kind) String() string {
	return string(kind)
}

// Entity is a row in a Table.
type Entity interface {
	// EntityID returns the ID assigned to the entity.
	EntityID() ID
}

// OwnerRef references the owner of an entity by kind and ID.
type OwnerRef struct {
	Kind Kind
	ID   ID
}

func (ref OwnerRef) String() string {
	return ref.Kind.String() + "#" + ref.ID.String()
}

// Owned is implemented by entities that belong to one or more owners. A Comment that is written by
// a User under a Post reports both.
type Owned interface {
	Entity

	// Owners returns references to the owners. The result must not change after the entity is
	// appended to a Table.
	Owners() []OwnerRef
}

// OwnersOf returns the owners of entity or nil if entity is not Owned.
func OwnersOf(entity Entity) []OwnerRef {
	if owned, ok := entity.(Owned); ok {
		return owned.Owners()
	}
	return nil
}
