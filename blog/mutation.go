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

// AddUser creates a User. It always succeeds.
func (b *Blog) AddUser(name, email string) *User {
	var user *User
	b.db.MustUpdate(func() error {
		user = &User{
			ID:    b.users.NextID(),
			Name:  name,
			Email: email,
		}
		return b.users.Append(user)
	})
	return user
}

// AddPost creates a Post written by the User with authorID.
func (b *Blog) AddPost(title, content string, authorID store.ID) (*Post, error) {
	var post *Post
	err := b.db.Update(func() error {
		if _, err := b.users.Get(authorID); err != nil {
			return err
		}
		post = &Post{
			ID:       b.posts.NextID(),
			Title:    title,
			Content:  content,
			AuthorID: authorID,
		}
		return b.posts.Append(post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment creates a Comment written by the User with authorID on the Post with postID. The User is
// checked before the Post; the returned store.ReferenceNotFoundError names the first missing one.
func (b *Blog) AddComment(text string, authorID, postID store.ID) (*Comment, error) {
	var comment *Comment
	err := b.db.Update(func() error {
		if _, err := b.users.Get(authorID); err != nil {
			return err
		}
		if _, err := b.posts.Get(postID); err != nil {
			return err
		}
		comment = &Comment{
			ID:       b.comments.NextID(),
			Text:     text,
			AuthorID: authorID,
			PostID:   postID,
		}
		return b.comments.Append(comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}
