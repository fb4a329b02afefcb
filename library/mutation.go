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

// AddAuthor creates an Author. It always succeeds.
func (lib *Library) AddAuthor(name string) *Author {
	var author *Author
	lib.db.MustUpdate(func() error {
		author = &Author{
			ID:   lib.authors.NextID(),
			Name: name,
		}
		return lib.authors.Append(author)
	})
	return author
}

// AddBook creates a Book written by the Author with authorID. A store.ReferenceNotFoundError is
// returned if the Author doesn't exist.
func (lib *Library) AddBook(title, genre string, authorID store.ID) (*Book, error) {
	var book *Book
	err := lib.db.Update(func() error {
		if _, err := lib.authors.Get(authorID); err != nil {
			return err
		}
		book = &Book{
			ID:       lib.books.NextID(),
			Title:    title,
			Genre:    genre,
			AuthorID: authorID,
		}
		return lib.books.Append(book)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// AddReview creates a Review for the Book with bookID. Rating is stored as given. A
// store.ReferenceNotFoundError is returned if the Book doesn't exist.
func (lib *Library) AddReview(rating int, comment *string, bookID store.ID) (*Review, error) {
	var review *Review
	err := lib.db.Update(func() error {
		if _, err := lib.books.Get(bookID); err != nil {
			return err
		}
		review = &Review{
			ID:      lib.reviews.NextID(),
			Rating:  rating,
			Comment: comment,
			BookID:  bookID,
		}
		return lib.reviews.Append(review)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}
