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

package schemautil

import (
	"fmt"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/store"
)

// The helpers below read coerced argument values. Arguments are checked against the field
// definition before resolvers run, so the type assertions hold for non-null arguments.

// ArgID returns the store.ID argument. The argument must be declared with the ID scalar of this
// package; any other value is reported as an internal error instead of reaching the store.
func ArgID(info graphql.ResolveInfo, name string) (store.ID, error) {
	value := info.Args().Get(name)
	id, ok := value.(store.ID)
	if !ok || id == store.NoID {
		return store.NoID, graphql.NewError(
			fmt.Sprintf(`argument "%s" holds %T %v instead of an ID`, name, value, value),
			graphql.ErrKindInternal)
	}
	return id, nil
}

// ArgString returns the String argument.
func ArgString(info graphql.ResolveInfo, name string) string {
	s, _ := info.Args().Get(name).(string)
	return s
}

// ArgOptionalString returns the nullable String argument. nil is returned when the argument is
// omitted or null.
func ArgOptionalString(info graphql.ResolveInfo, name string) *string {
	s, ok := info.Args().Get(name).(string)
	if !ok {
		return nil
	}
	return &s
}

// ArgInt returns the Int argument.
func ArgInt(info graphql.ResolveInfo, name string) int {
	i, _ := info.Args().Get(name).(int)
	return i
}
