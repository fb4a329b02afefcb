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

func usersOf(entities []store.Entity) []*User {
	result := make([]*User, len(entities))
	for i, entity := range entities {
		result[i] = entity.(*User)
	}
	return result
}

func postsOf(entities []store.Entity) []*Post {
	result := make([]*Post, len(entities))
	for i, entity := range entities {
		result[i] = entity.(*Post)
	}
	return result
}

func commentsOf(entities []store.Entity) []*Comment {
	result := make([]*Comment, len(entities))
	for i, entity := range entities {
		result[i] = entity.(*Comment)
	}
	return result
}

func (b *Blog) view(fn func()) {
	b.db.View(func() error {
		fn()
		return nil
	})
}

// Users returns all users in creation order.
func (b *Blog) Users() (users []*User) {
	b.view(func() {
		users = usersOf(b.users.All())
	})
	return
}

// Posts returns all posts in creation order.
func (b *Blog) Posts() (posts []*Post) {
	b.view(func() {
		posts = postsOf(b.posts.All())
	})
	return
}

// Comments returns all comments in creation order.
func (b *Blog) Comments() (comments []*Comment) {
	b.view(func() {
		comments = commentsOf(b.comments.All())
	})
	return
}

// FindUser looks up a User by ID.
func (b *Blog) FindUser(id store.ID) (user *User, err error) {
	b.view(func() {
		var entity store.Entity
		if entity, err = b.users.Get(id); err == nil {
			user = entity.(*User)
		}
	})
	return
}

// FindPost looks up a Post by ID.
func (b *Blog) FindPost(id store.ID) (post *Post, err error) {
	b.view(func() {
		var entity store.Entity
		if entity, err = b.posts.Get(id); err == nil {
			post = entity.(*Post)
		}
	})
	return
}

// AuthorOfPost returns the User who wrote post.
func (b *Blog) AuthorOfPost(post *Post) (*User, error) {
	return b.FindUser(post.AuthorID)
}

// AuthorOfComment returns the User who wrote comment.
func (b *Blog) AuthorOfComment(comment *Comment) (*User, error) {
	return b.FindUser(comment.AuthorID)
}

// PostOf returns the Post that comment belongs to.
func (b *Blog) PostOf(comment *Comment) (*Post, error) {
	return b.FindPost(comment.PostID)
}

// PostsOf returns the posts of the User from the owner index.
func (b *Blog) PostsOf(userID store.ID) (posts []*Post) {
	b.view(func() {
		posts = postsOf(b.posts.OwnedBy(store.OwnerRef{Kind: KindUser, ID: userID}))
	})
	return
}

// ScanPostsOf returns the posts of the User by scanning the Post table.
func (b *Blog) ScanPostsOf(userID store.ID) (posts []*Post) {
	b.view(func() {
		posts = postsOf(b.posts.Scan(func(entity store.Entity) bool {
			return entity.(*Post).AuthorID == userID
		}))
	})
	return
}

// CommentsByUser returns the comments written by the User from the owner index.
func (b *Blog) CommentsByUser(userID store.ID) (comments []*Comment) {
	b.view(func() {
		comments = commentsOf(b.comments.OwnedBy(store.OwnerRef{Kind: KindUser, ID: userID}))
	})
	return
}

// ScanCommentsByUser returns the comments written by the User by scanning the Comment table.
func (b *Blog) ScanCommentsByUser(userID store.ID) (comments []*Comment) {
	b.view(func() {
		comments = commentsOf(b.comments.Scan(func(entity store.Entity) bool {
			return entity.(*Comment).AuthorID == userID
		}))
	})
	return
}

// CommentsOnPost returns the comments on the Post from the owner index.
func (b *Blog) CommentsOnPost(postID store.ID) (comments []*Comment) {
	b.view(func() {
		comments = commentsOf(b.comments.OwnedBy(store.OwnerRef{Kind: KindPost, ID: postID}))
	})
	return
}

// ScanCommentsOnPost returns the comments on the Post by scanning the Comment table.
func (b *Blog) ScanCommentsOnPost(postID store.ID) (comments []*Comment) {
	b.view(func() {
		comments = commentsOf(b.comments.Scan(func(entity store.Entity) bool {
			return entity.(*Comment).PostID == postID
		}))
	})
	return
}

func (b *Blog) postsOfUser(userID store.ID) []*Post {
	if b.options.UseIndex {
		return b.PostsOf(userID)
	}
	return b.ScanPostsOf(userID)
}

func (b *Blog) commentsOfUser(userID store.ID) []*Comment {
	if b.options.UseIndex {
		return b.CommentsByUser(userID)
	}
	return b.ScanCommentsByUser(userID)
}

func (b *Blog) commentsOfPost(postID store.ID) []*Comment {
	if b.options.UseIndex {
		return b.CommentsOnPost(postID)
	}
	return b.ScanCommentsOnPost(postID)
}
