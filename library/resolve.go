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

func authorsOf(entities []store.Entity) []*Author {
	result := make([]*Author, len(entities))
	for i, entity := range entities {
		result[i] = entity.(*Author)
	}
	return result
}

func booksOf(entities []store.Entity) []*Book {
	result := make([]*Book, len(entities))
	for i, entity := range entities {
		result[i] = entity.(*Book)
	}
	return result
}

func reviewsOf(entities []store.Entity) []*Review {
	result := make([]*Review, len(entities))
	for i, entity := range entities {
		result[i] = entity.(*Review)
	}
	return result
}

// view runs fn with the read lock of the family store.
func (lib *Library) view(fn func()) {
	lib.db.View(func() error {
		fn()
		return nil
	})
}

// Authors returns all authors in creation order.
func (lib *Library) Authors() (authors []*Author) {
	lib.view(func() {
		authors = authorsOf(lib.authors.All())
	})
	return
}

// Books returns all books in creation order.
func (lib *Library) Books() (books []*Book) {
	lib.view(func() {
		books = booksOf(lib.books.All())
	})
	return
}

// Reviews returns all reviews in creation order.
func (lib *Library) Reviews() (reviews []*Review) {
	lib.view(func() {
		reviews = reviewsOf(lib.reviews.All())
	})
	return
}

// FindAuthor looks up an Author by ID.
func (lib *Library) FindAuthor(id store.ID) (author *Author, err error) {
	lib.view(func() {
		var entity store.Entity
		if entity, err = lib.authors.Get(id); err == nil {
			author = entity.(*Author)
		}
	})
	return
}

// FindBook looks up a Book by ID.
func (lib *Library) FindBook(id store.ID) (book *Book, err error) {
	lib.view(func() {
		var entity store.Entity
		if entity, err = lib.books.Get(id); err == nil {
			book = entity.(*Book)
		}
	})
	return
}

// AuthorOf returns the Author of book by resolving book.AuthorID.
func (lib *Library) AuthorOf(book *Book) (*Author, error) {
	return lib.FindAuthor(book.AuthorID)
}

// BookOf returns the Book of review by resolving review.BookID.
func (lib *Library) BookOf(review *Review) (*Book, error) {
	return lib.FindBook(review.BookID)
}

// BooksOf returns the books of the Author from the owner index.
func (lib *Library) BooksOf(authorID store.ID) (books []*Book) {
	lib.view(func() {
		books = booksOf(lib.books.OwnedBy(store.OwnerRef{Kind: KindAuthor, ID: authorID}))
	})
	return
}

// ScanBooksOf returns the books of the Author by scanning the Book table.
func (lib *Library) ScanBooksOf(authorID store.ID) (books []*Book) {
	lib.view(func() {
		books = booksOf(lib.books.Scan(func(entity store.Entity) bool {
			return entity.(*Book).AuthorID == authorID
		}))
	})
	return
}

// ReviewsOf returns the reviews of the Book from the owner index.
func (lib *Library) ReviewsOf(bookID store.ID) (reviews []*Review) {
	lib.view(func() {
		reviews = reviewsOf(lib.reviews.OwnedBy(store.OwnerRef{Kind: KindBook, ID: bookID}))
	})
	return
}

// ScanReviewsOf returns the reviews of the Book by scanning the Review table.
func (lib *Library) ScanReviewsOf(bookID store.ID) (reviews []*Review) {
	lib.view(func() {
		reviews = reviewsOf(lib.reviews.Scan(func(entity store.Entity) bool {
			return entity.(*Review).BookID == bookID
		}))
	})
	return
}

// booksOfAuthor resolves Author.books with the configured strategy.
func (lib *Library) booksOfAuthor(authorID store.ID) []*Book {
	if lib.options.UseIndex {
		return lib.BooksOf(authorID)
	}
	return lib.ScanBooksOf(authorID)
}

// reviewsOfBook resolves Book.reviews with the configured strategy.
func (lib *Library) reviewsOfBook(bookID store.ID) []*Review {
	if lib.options.UseIndex {
		return lib.ReviewsOf(bookID)
	}
	return lib.ScanReviewsOf(bookID)
}
