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

package library

import (
	"github.com/botobag/relgraph/store"
)

// Options configures a Library.
type Options struct {
	// UseIndex makes list fields in the GraphQL schema read the owner index instead of scanning the
	// child table.
	UseIndex bool
}

// Library is the context object of the family. All state lives in the injected store.DB.
type Library struct {
	db      *store.DB
	authors *store.Table
	books   *store.Table
	reviews *store.Table
	options Options
}

// New creates the family tables in db.
func New(db *store.DB, options Options) (*Library, error) {
	lib := &Library{
		db:      db,
		options: options,
	}

	var err error
	if lib.authors, err = db.CreateTable(KindAuthor); err != nil {
		return nil, err
	}
	if lib.books, err = db.CreateTable(KindBook); err != nil {
		return nil, err
	}
	if lib.reviews, err = db.CreateTable(KindReview); err != nil {
		return nil, err
	}

	return lib, nil
}

// DB returns the store of the family.
func (lib *Library) DB() *store.DB {
	return lib.db
}

// Options returns the options given to New.
func (lib *Library) Options() Options {
	return lib.options
}
