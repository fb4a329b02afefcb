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

package blog_test

import (
	"github.com/botobag/relgraph/blog"
	"github.com/botobag/relgraph/store"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func textsOf(comments []*blog.Comment) []string {
	texts := make([]string, len(comments))
	for i, comment := range comments {
		texts[i] = comment.Text
	}
	return texts
}

var _ = Describe("Blog", func() {
	var (
		db *store.DB
		b  *blog.Blog
	)

	BeforeEach(func() {
		var err error
		db = store.NewDB()
		b, err = blog.New(db, blog.Options{})
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.Verify()).Should(Succeed())
	})

	It("creates users, posts and comments with sequential IDs", func() {
		alice := b.AddUser("Alice", "alice@example.com")
		bob := b.AddUser("Bob", "bob@example.com")
		Expect(alice.ID).Should(Equal(store.ID(1)))
		Expect(bob.ID).Should(Equal(store.ID(2)))

		post, err := b.AddPost("Hello", "World", alice.ID)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(post.ID).Should(Equal(store.ID(1)))

		comment, err := b.AddComment("Nice", bob.ID, post.ID)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(comment.ID).Should(Equal(store.ID(1)))
		Expect(comment.Owners()).Should(ConsistOf(
			store.OwnerRef{Kind: blog.KindUser, ID: bob.ID},
			store.OwnerRef{Kind: blog.KindPost, ID: post.ID},
		))
	})

	It("indexes a comment under both of its owners", func() {
		alice := b.AddUser("Alice", "a@example.com")
		bob := b.AddUser("Bob", "b@example.com")
		first, err := b.AddPost("First", "...", alice.ID)
		Expect(err).ShouldNot(HaveOccurred())
		second, err := b.AddPost("Second", "...", alice.ID)
		Expect(err).ShouldNot(HaveOccurred())

		for _, c := range []struct {
			text   string
			author store.ID
			post   store.ID
		}{
			{"c1", bob.ID, first.ID},
			{"c2", alice.ID, first.ID},
			{"c3", bob.ID, second.ID},
		} {
			_, err := b.AddComment(c.text, c.author, c.post)
			Expect(err).ShouldNot(HaveOccurred())
		}

		Expect(textsOf(b.CommentsByUser(bob.ID))).Should(Equal([]string{"c1", "c3"}))
		Expect(textsOf(b.CommentsOnPost(first.ID))).Should(Equal([]string{"c1", "c2"}))
		Expect(b.PostsOf(bob.ID)).Should(BeEmpty())
		Expect(b.PostsOf(alice.ID)).Should(HaveLen(2))

		for _, user := range b.Users() {
			Expect(b.PostsOf(user.ID)).Should(Equal(b.ScanPostsOf(user.ID)))
			Expect(b.CommentsByUser(user.ID)).Should(Equal(b.ScanCommentsByUser(user.ID)))
		}
		for _, post := range b.Posts() {
			Expect(b.CommentsOnPost(post.ID)).Should(Equal(b.ScanCommentsOnPost(post.ID)))
		}
	})

	It("resolves both owners of a comment", func() {
		alice := b.AddUser("Alice", "a@example.com")
		bob := b.AddUser("Bob", "b@example.com")
		post, err := b.AddPost("Post", "...", alice.ID)
		Expect(err).ShouldNot(HaveOccurred())
		comment, err := b.AddComment("Hi", bob.ID, post.ID)
		Expect(err).ShouldNot(HaveOccurred())

		author, err := b.AuthorOfComment(comment)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(author.Name).Should(Equal("Bob"))

		commented, err := b.PostOf(comment)
		Expect(err).ShouldNot(HaveOccurred())
		postAuthor, err := b.AuthorOfPost(commented)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(postAuthor.Name).Should(Equal("Alice"))
	})

	It("rejects a post of a missing user", func() {
		post, err := b.AddPost("X", "Y", 999)
		Expect(post).Should(BeNil())
		Expect(err).Should(MatchError("User not found: 999"))
		Expect(b.Posts()).Should(BeEmpty())
	})

	Describe("AddComment", func() {
		BeforeEach(func() {
			b.AddUser("Alice", "a@example.com")
			_, err := b.AddPost("Post", "...", 1)
			Expect(err).ShouldNot(HaveOccurred())
		})

		It("checks the user before the post", func() {
			_, err := b.AddComment("x", 5, 6)
			ref, ok := store.AsReferenceNotFound(err)
			Expect(ok).Should(BeTrue())
			Expect(ref.Kind).Should(Equal(blog.KindUser))
			Expect(ref.ID).Should(Equal(store.ID(5)))
		})

		It("reports a missing post", func() {
			_, err := b.AddComment("x", 1, 6)
			Expect(err).Should(MatchError("Post not found: 6"))
		})

		It("leaves every table unchanged on failure", func() {
			before := db.Counts()
			_, err := b.AddComment("x", 1, 2)
			Expect(err).Should(HaveOccurred())
			Expect(db.Counts()).Should(Equal(before))
			Expect(b.CommentsByUser(1)).Should(BeEmpty())
			Expect(b.ScanCommentsByUser(1)).Should(BeEmpty())
		})
	})
})
