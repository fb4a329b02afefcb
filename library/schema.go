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
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/internal/schemautil"
)

// Schema builds the GraphQL schema that serves lib.
//
//	type Query {
//	  authors: [Author]
//	  books: [Book]
//	  reviews: [Review]
//	}
//
//	type Mutation {
//	  addAuthor(name: String!): Author
//	  addBook(title: String!, genre: String!, authorId: ID!): Book
//	  addReview(rating: Int!, comment: String, bookId: ID!): Review
//	}
func Schema(lib *Library) (*graphql.Schema, error) {
	var (
		authorType = &graphql.ObjectConfig{
			Name: "Author",
		}
		bookType = &graphql.ObjectConfig{
			Name: "Book",
		}
		reviewType = &graphql.ObjectConfig{
			Name: "Review",
		}
	)

	authorType.Fields = graphql.Fields{
		"id": {
			Type: graphql.NonNullOf(schemautil.ID()),
		},
		"name": {
			Type: graphql.NonNullOf(graphql.String()),
		},
		"books": {
			Type: graphql.ListOf(bookType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return lib.booksOfAuthor(source.(*Author).ID), nil
			}),
		},
	}

	bookType.Fields = graphql.Fields{
		"id": {
			Type: graphql.NonNullOf(schemautil.ID()),
		},
		"title": {
			Type: graphql.NonNullOf(graphql.String()),
		},
		"genre": {
			Type: graphql.NonNullOf(graphql.String()),
		},
		"author": {
			Type: graphql.NonNullOf(authorType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return lib.AuthorOf(source.(*Book))
			}),
		},
		"reviews": {
			Type: graphql.ListOf(reviewType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return lib.reviewsOfBook(source.(*Book).ID), nil
			}),
		},
	}

	reviewType.Fields = graphql.Fields{
		"id": {
			Type: graphql.NonNullOf(schemautil.ID()),
		},
		"rating": {
			Type: graphql.NonNullOf(graphql.Int()),
		},
		"comment": {
			Type: graphql.String(),
		},
		"book": {
			Type: graphql.NonNullOf(bookType),
			Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return lib.BookOf(source.(*Review))
			}),
		},
	}

	queryType := &graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"authors": {
				Type: graphql.ListOf(authorType),
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return lib.Authors(), nil
				}),
			},
			"books": {
				Type: graphql.ListOf(bookType),
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return lib.Books(), nil
				}),
			},
			"reviews": {
				Type: graphql.ListOf(reviewType),
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return lib.Reviews(), nil
				}),
			},
		},
	}

	mutationType := &graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addAuthor": {
				Type: authorType,
				Args: graphql.ArgumentConfigMap{
					"name": {
						Type: graphql.NonNullOf(graphql.String()),
					},
				},
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return lib.AddAuthor(schemautil.ArgString(info, "name")), nil
				}),
			},
			"addBook": {
				Type: bookType,
				Args: graphql.ArgumentConfigMap{
					"title": {
						Type: graphql.NonNullOf(graphql.String()),
					},
					"genre": {
						Type: graphql.NonNullOf(graphql.String()),
					},
					"authorId": {
						Type: graphql.NonNullOf(schemautil.ID()),
					},
				},
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					authorID, err := schemautil.ArgID(info, "authorId")
					if err != nil {
						return nil, err
					}
					return lib.AddBook(
						schemautil.ArgString(info, "title"),
						schemautil.ArgString(info, "genre"),
						authorID)
				}),
			},
			"addReview": {
				Type: reviewType,
				Args: graphql.ArgumentConfigMap{
					"rating": {
						Type: graphql.NonNullOf(graphql.Int()),
					},
					"comment": {
						Type: graphql.String(),
					},
					"bookId": {
						Type: graphql.NonNullOf(schemautil.ID()),
					},
				},
				Resolver: schemautil.Resolver(func(source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					bookID, err := schemautil.ArgID(info, "bookId")
					if err != nil {
						return nil, err
					}
					return lib.AddReview(
						schemautil.ArgInt(info, "rating"),
						schemautil.ArgOptionalString(info, "comment"),
						bookID)
				}),
			},
		},
	}

	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
