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

package blog

import (
	"github.com/botobag/relgraph/store"
)

// Options configures a Blog.
type Options struct {
	// UseIndex makes list fields in the GraphQL schema read the owner index instead of scanning the
	// child table.
	UseIndex bool
}

// Blog is the context object of the family. All state lives in the injected store.DB.
type Blog struct {
	db       *store.DB
	users    *store.Table
	posts    *store.Table
	comments *store.Table
	options  Options
}

// New creates the family tables in db.
func New(db *store.DB, options Options) (*Blog, error) {
	b := &Blog{
		db:      db,
		options: options,
	}

	var err error
	if b.users, err = db.CreateTable(KindUser); err != nil {
		return nil, err
	}
	if b.posts, err = db.CreateTable(KindPost); err != nil {
		return nil, err
	}
	if b.comments, err = db.CreateTable(KindComment); err != nil {
		return nil, err
	}

	return b, nil
}

// DB returns the store of the family.
func (b *Blog) DB() *store.DB {
	return b.db
}

// Options returns the options given to New.
func (b *Blog) Options() Options {
	return b.options
}
