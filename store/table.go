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
	"github.com/pkg/errors"
)

// Table stores entities of one Kind in creation order.
type Table struct {
	kind Kind

	// rows[i] holds the entity with ID i+1.
	rows []Entity

	// owners maps an owner to positions in rows of the entities it owns, in creation order.
	owners map[OwnerRef][]int
}

// NewTable creates an empty Table for kind. Tables are normally created with DB.CreateTable.
func NewTable(kind Kind) *Table {
	return &Table{
		kind:   kind,
		owners: map[OwnerRef][]int{},
	}
}

// Kind returns the kind of entities stored in the table.
func (table *Table) Kind() Kind {
	return table.kind
}

// Len returns the number of entities in the table.
func (table *Table) Len() int {
	return len(table.rows)
}

// NextID returns the ID to be assigned to the next appended entity.
func (table *Table) NextID() ID {
	return ID(len(table.rows) + 1)
}

// Append adds entity to the end of the table and records it in the owner index under every owner
// it reports. entity.EntityID() must equal NextID().
func (table *Table) Append(entity Entity) error {
	if id := entity.EntityID(); id != table.NextID() {
		return errors.Wrapf(ErrIDOutOfSequence, "append %s#%s (expected %s#%s)",
			table.kind, id, table.kind, table.NextID())
	}

	pos := len(table.rows)
	table.rows = append(table.rows, entity)
	for _, owner := range OwnersOf(entity) {
		table.owners[owner] = append(table.owners[owner], pos)
	}
	return nil
}

// FindByID returns the entity with the given ID.
func (table *Table) FindByID(id ID) (Entity, bool) {
	if !id.IsValid() || int64(id) > int64(len(table.rows)) {
		return nil, false
	}
	return table.rows[id-1], true
}

// Get is like FindByID but returns a ReferenceNotFoundError if no entity has the ID.
func (table *Table) Get(id ID) (Entity, error) {
	entity, ok := table.FindByID(id)
	if !ok {
		return nil, NewReferenceNotFoundError(table.kind, id)
	}
	return entity, nil
}

// All returns a copy of the entities in creation order.
func (table *Table) All() []Entity {
	result := make([]Entity, len(table.rows))
	copy(result, table.rows)
	return result
}

// OwnedBy returns the entities owned by owner in creation order. The result is served from the owner
// index.
func (table *Table) OwnedBy(owner OwnerRef) []Entity {
	positions := table.owners[owner]
	result := make([]Entity, len(positions))
	for i, pos := range positions {
		result[i] = table.rows[pos]
	}
	return result
}

// Scan returns the entities for which match returns true in creation order. It visits every row.
func (table *Table) Scan(match func(Entity) bool) []Entity {
	var result []Entity
	for _, entity := range table.rows {
		if match(entity) {
			result = append(result, entity)
		}
	}
	return result
}

// ScanOwnedBy returns the entities owned by owner by scanning the table.
func (table *Table) ScanOwnedBy(owner OwnerRef) []Entity {
	return table.Scan(func(entity Entity) bool {
		for _, ref := range OwnersOf(entity) {
			if ref == owner {
				return true
			}
		}
		return false
	})
}

// verify cross-checks the owner index against a scan of the table.
func (table *Table) verify() error {
	expected := map[OwnerRef][]int{}
	for pos, entity := range table.rows {
		if entity.EntityID() != ID(pos+1) {
			return errors.Wrapf(ErrIDOutOfSequence, "%s at position %d has ID %s",
				table.kind, pos, entity.EntityID())
		}
		for _, owner := range OwnersOf(entity) {
			expected[owner] = append(expected[owner], pos)
		}
	}

	if len(expected) != len(table.owners) {
		return errors.Wrapf(ErrIndexDiverged, "%s: index has %d owners, scan found %d",
			table.kind, len(table.owners), len(expected))
	}
	for owner, positions := range expected {
		indexed := table.owners[owner]
		if len(indexed) != len(positions) {
			return errors.Wrapf(ErrIndexDiverged, "%s owned by %s: index has %d, scan found %d",
				table.kind, owner, len(indexed), len(positions))
		}
		for i := range positions {
			if indexed[i] != positions[i] {
				return errors.Wrapf(ErrIndexDiverged, "%s owned by %s: entry %d differs",
					table.kind, owner, i)
			}
		}
	}
	return nil
}
