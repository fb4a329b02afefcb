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

// Package library implements the Author → Book → Review entity family: its model, mutation handlers,
// relationship resolvers and GraphQL schema.
package library

import (
	"github.com/botobag/relgraph/store"
)

// Kinds of the library family
const (
	KindAuthor store.Kind = "Author"
	KindBook   store.Kind = "Book"
	KindReview store.Kind = "Review"
)

// Author writes books.
type Author struct {
	ID   store.ID `graphql:"id"`
	Name string   `graphql:"name"`
}

var _ store.Entity = (*Author)(nil)

// EntityID implements store.Entity.
func (author *Author) EntityID() store.ID {
	return author.ID
}

// Book is written by an Author.
type Book struct {
	ID       store.ID `graphql:"id"`
	Title    string   `graphql:"title"`
	Genre    string   `graphql:"genre"`
	AuthorID store.ID `graphql:"-"`
}

var _ store.Owned = (*Book)(nil)

// EntityID implements store.Entity.
func (book *Book) EntityID() store.ID {
	return book.ID
}

// Owners implements store.Owned.
func (book *Book) Owners() []store.OwnerRef {
	return []store.OwnerRef{{Kind: KindAuthor, ID: book.AuthorID}}
}

// Review rates a Book. Comment is optional.
type Review struct {
	ID      store.ID `graphql:"id"`
	Rating  int      `graphql:"rating"`
	Comment *string  `graphql:"comment"`
	BookID  store.ID `graphql:"-"`
}

var _ store.Owned = (*Review)(nil)

// EntityID implements store.Entity.
func (review *Review) EntityID() store.ID {
	return review.ID
}

// Owners implements store.Owned.
func (review *Review) Owners() []store.OwnerRef {
	return []store.OwnerRef{{Kind: KindBook, ID: review.BookID}}
}
