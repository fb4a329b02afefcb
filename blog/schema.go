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
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/internal/schemautil"
)

// Schema builds the GraphQL schema that serves b.
//
//	type Query {
//	  users: [User]
//	  posts: [Post]
//	  comments: [Comment]
//	}
//
//	type Mutation {
//	  addUser(name: String!, email: String!): User
//	  addPost(title: String!, content: String!, authorId: ID!): Post
//	  addComment(text: String!, authorId: ID!, postId: ID!): Comment
//	}
func Schema(b *Blog) (*graphql.Schema, error) {
	var (
		userType    = &graphql.ObjectConfig{Name: "User"}
		postType    = &graphql.ObjectConfig{Name: "Post"}
		commentType = &graphql.ObjectConfig{Name: "Comment"}
	)

	userType.Fields = graphql.Fields{
		"id":    {Type: graphql.NonNullOf(schemautil.ID())},
		"name":  {Type: graphql.NonNullOf(graphql.String())},
		"email": {Type: graphql.NonNullOf(graphql.String())},
		"posts": {
			Type: graphql.ListOf(postType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return b.postsOfUser(source.(*User).ID), nil
			}),
		},
		"comments": {
			Type: graphql.ListOf(commentType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return b.commentsOfUser(source.(*User).ID), nil
			}),
		},
	}

	postType.Fields = graphql.Fields{
		"id":      {Type: graphql.NonNullOf(schemautil.ID())},
		"title":   {Type: graphql.NonNullOf(graphql.String())},
		"content": {Type: graphql.NonNullOf(graphql.String())},
		"author": {
			Type: graphql.NonNullOf(userType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return b.AuthorOfPost(source.(*Post))
			}),
		},
		"comments": {
			Type: graphql.ListOf(commentType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return b.commentsOfPost(source.(*Post).ID), nil
			}),
		},
	}

	commentType.Fields = graphql.Fields{
		"id":   {Type: graphql.NonNullOf(schemautil.ID())},
		"text": {Type: graphql.NonNullOf(graphql.String())},
		"author": {
			Type: graphql.NonNullOf(userType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return b.AuthorOfComment(source.(*Comment))
			}),
		},
		"post": {
			Type: graphql.NonNullOf(postType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return b.PostOf(source.(*Comment))
			}),
		},
	}

	queryType := &graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": {
				Type: graphql.ListOf(userType),
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return b.Users(), nil
				}),
			},
			"posts": {
				Type: graphql.ListOf(postType),
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return b.Posts(), nil
				}),
			},
			"comments": {
				Type: graphql.ListOf(commentType),
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return b.Comments(), nil
				}),
			},
		},
	}

	mutationType := &graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addUser": {
				Type: userType,
				Args: graphql.ArgumentConfigMap{
					"name":  {Type: graphql.NonNullOf(graphql.String())},
					"email": {Type: graphql.NonNullOf(graphql.String())},
				},
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return b.AddUser(schemautil.ArgString(info, "name"), schemautil.ArgString(info, "email")), nil
				}),
			},
			"addPost": {
				Type: postType,
				Args: graphql.ArgumentConfigMap{
					"title":    {Type: graphql.NonNullOf(graphql.String())},
					"content":  {Type: graphql.NonNullOf(graphql.String())},
					"authorId": {Type: graphql.NonNullOf(schemautil.ID())},
				},
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					authorID, err := schemautil.ArgID(info, "authorId")
					if err != nil {
						return nil, err
					}
					return b.AddPost(
						schemautil.ArgString(info, "title"),
						schemautil.ArgString(info, "content"),
						authorID)
				}),
			},
			"addComment": {
				Type: commentType,
				Args: graphql.ArgumentConfigMap{
					"text":     {Type: graphql.NonNullOf(graphql.String())},
					"authorId": {Type: graphql.NonNullOf(schemautil.ID())},
					"postId":   {Type: graphql.NonNullOf(schemautil.ID())},
				},
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					authorID, err := schemautil.ArgID(info, "authorId")
					if err != nil {
						return nil, err
					}
					postID, err := schemautil.ArgID(info, "postId")
					if err != nil {
						return nil, err
					}
					return b.AddComment(schemautil.ArgString(info, "text"), authorID, postID)
				}),
			},
		},
	}

	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
