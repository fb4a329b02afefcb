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
	"sync"

	"github.com/pkg/errors"
)

// DB holds the tables of an entity family together with the lock that guards them. A DB is passed
// to the family that owns it; tests create a fresh one per case.
type DB struct {
	mutex  sync.RWMutex
	tables map[Kind]*Table
	kinds  []Kind
}

// NewDB creates an empty DB.
func NewDB() *DB {
	return &DB{
		tables: map[Kind]*Table{},
	}
}

// CreateTable creates an empty table for kind.
func (db *DB) CreateTable(kind Kind) (*Table, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.tables[kind]; exists {
		return nil, errors.Wrapf(ErrTableExists, "create table %s", kind)
	}
	table := NewTable(kind)
	db.tables[kind] = table
	db.kinds = append(db.kinds, kind)
	return table, nil
}

// Table returns the table for kind or nil if it doesn't exist.
func (db *DB) Table(kind Kind) *Table {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return db.tables[kind]
}

// Kinds returns the kinds of the tables in creation order.
func (db *DB) Kinds() []Kind {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	kinds := make([]Kind, len(db.kinds))
	copy(kinds, db.kinds)
	return kinds
}

// View runs fn with the read lock held. fn must not call View or Update.
func (db *DB) View(fn func() error) error {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return fn()
}

// Update runs fn with the write lock held. fn must validate every reference before it appends, so
// that a failed update leaves the tables unchanged.
func (db *DB) Update(fn func() error) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	return fn()
}

// MustUpdate is like Update for fn that can only fail on a programming error, such as an entity
// appended out of ID sequence. It panics if fn fails.
func (db *DB) MustUpdate(fn func() error) {
	if err := db.Update(fn); err != nil {
		panic(err)
	}
}

// Counts returns the number of entities per kind.
func (db *DB) Counts() map[Kind]int {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	counts := make(map[Kind]int, len(db.tables))
	for kind, table := range db.tables {
		counts[kind] = table.Len()
	}
	return counts
}

// Verify checks that IDs are dense, that every owner index agrees with a scan of its table and that
// every owner reference resolves to an entity in the DB.
func (db *DB) Verify() error {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	for _, kind := range db.kinds {
		table := db.tables[kind]
		if err := table.verify(); err != nil {
			return err
		}
		for _, entity := range table.rows {
			for _, owner := range OwnersOf(entity) {
				ownerTable, ok := db.tables[owner.Kind]
				if !ok {
					return errors.Wrapf(ErrNoSuchTable, "%s#%s is owned by %s", kind, entity.EntityID(), owner)
				}
				if _, ok := ownerTable.FindByID(owner.ID); !ok {
					return errors.Wrapf(NewReferenceNotFoundError(owner.Kind, owner.ID),
						"%s#%s has a dangling owner", kind, entity.EntityID())
				}
			}
		}
	}
	return nil
}
