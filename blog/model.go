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

// Package blog implements the User → Post → Comment entity family. A Comment has two owners: the
// User who wrote it and the Post it belongs to.
package blog

import (
	"github.com/botobag/relgraph/store"
)

// Kinds of the blog family
const (
	KindUser    store.Kind = "User"
	KindPost    store.Kind = "Post"
	KindComment store.Kind = "Comment"
)

// User writes posts and comments.
type User struct {
	ID    store.ID `graphql:"id"`
	Name  string   `graphql:"name"`
	Email string   `graphql:"email"`
}

var _ store.Entity = (*User)(nil)

// EntityID implements store.Entity.
func (user *User) EntityID() store.ID {
	return user.ID
}

// Post is written by a User.
type Post struct {
	ID       store.ID `graphql:"id"`
	Title    string   `graphql:"title"`
	Content  string   `graphql:"content"`
	AuthorID store.ID `graphql:"-"`
}

var _ store.Owned = (*Post)(nil)

// EntityID implements store.Entity.
func (post *Post) EntityID() store.ID {
	return post.ID
}

// Owners implements store.Owned.
func (post *Post) Owners() []store.OwnerRef {
	return []store.OwnerRef{{Kind: KindUser, ID: post.AuthorID}}
}

// Comment is written by a User on a Post.
type Comment struct {
	ID       store.ID `graphql:"id"`
	Text     string   `graphql:"text"`
	AuthorID store.ID `graphql:"-"`
	PostID   store.ID `graphql:"-"`
}

var _ store.Owned = (*Comment)(nil)

// EntityID implements store.Entity.
func (comment *Comment) EntityID() store.ID {
	return comment.ID
}

// Owners implements store.Owned.
func (comment *Comment) Owners() []store.OwnerRef {
	return []store.OwnerRef{
		{Kind: KindUser, ID: comment.AuthorID},
		{Kind: KindPost, ID: comment.PostID},
	}
}
