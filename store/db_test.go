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

package store_test

import (
	"sync"

	"github.com/botobag/relgraph/store"
	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DB", func() {
	var (
		db       *store.DB
		parents  *store.Table
		children *store.Table
	)

	BeforeEach(func() {
		var err error
		db = store.NewDB()
		parents, err = db.CreateTable(kindParent)
		Expect(err).ShouldNot(HaveOccurred())
		children, err = db.CreateTable(kindChild)
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("keeps tables in creation order", func() {
		Expect(db.Kinds()).Should(Equal([]store.Kind{kindParent, kindChild}))
		Expect(db.Table(kindParent)).Should(BeIdenticalTo(parents))
		Expect(db.Table("Unknown")).Should(BeNil())
	})

	It("refuses to create a table twice", func() {
		_, err := db.CreateTable(kindParent)
		Expect(errors.Cause(err)).Should(Equal(store.ErrTableExists))
	})

	It("counts entities per kind", func() {
		Expect(db.Update(func() error {
			return parents.Append(&parent{id: 1})
		})).Should(Succeed())
		Expect(db.Counts()).Should(Equal(map[store.Kind]int{
			kindParent: 1,
			kindChild:  0,
		}))
	})

	It("returns the error from Update", func() {
		err := db.Update(func() error {
			return children.Append(&child{id: 5})
		})
		Expect(errors.Cause(err)).Should(Equal(store.ErrIDOutOfSequence))
	})

	It("panics when MustUpdate fails", func() {
		db.MustUpdate(func() error {
			return parents.Append(&parent{id: 1})
		})
		Expect(parents.Len()).Should(Equal(1))

		Expect(func() {
			db.MustUpdate(func() error {
				return parents.Append(&parent{id: 7})
			})
		}).Should(Panic())
		Expect(parents.Len()).Should(Equal(1))
	})

	Describe("Verify", func() {
		It("accepts consistent tables", func() {
			Expect(db.Update(func() error {
				if err := parents.Append(&parent{id: 1}); err != nil {
					return err
				}
				return children.Append(&child{id: 1, owners: []store.OwnerRef{ownedBy(1)}})
			})).Should(Succeed())
			Expect(db.Verify()).Should(Succeed())
		})

		It("reports a dangling owner", func() {
			Expect(children.Append(&child{id: 1, owners: []store.OwnerRef{ownedBy(9)}})).Should(Succeed())

			err := db.Verify()
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("Child#1 has a dangling owner"))
			ref, ok := errors.Cause(err).(*store.ReferenceNotFoundError)
			Expect(ok).Should(BeTrue())
			Expect(ref.Kind).Should(Equal(kindParent))
			Expect(ref.ID).Should(Equal(store.ID(9)))
		})

		It("reports an owner of unknown kind", func() {
			Expect(children.Append(&child{
				id:     1,
				owners: []store.OwnerRef{{Kind: "Stranger", ID: 1}},
			})).Should(Succeed())
			Expect(errors.Cause(db.Verify())).Should(Equal(store.ErrNoSuchTable))
		})

		It("detects owners that change after Append", func() {
			Expect(parents.Append(&parent{id: 1})).Should(Succeed())
			Expect(parents.Append(&parent{id: 2})).Should(Succeed())
			c := &child{id: 1, owners: []store.OwnerRef{ownedBy(1)}}
			Expect(children.Append(c)).Should(Succeed())

			c.owners = []store.OwnerRef{ownedBy(2)}
			Expect(errors.Cause(db.Verify())).Should(Equal(store.ErrIndexDiverged))
		})
	})

	It("serializes concurrent updates", func() {
		const n = 50
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				Expect(db.Update(func() error {
					return parents.Append(&parent{id: parents.NextID()})
				})).Should(Succeed())
			}()
		}
		wg.Wait()

		Expect(db.Counts()[kindParent]).Should(Equal(n))
		Expect(db.Verify()).Should(Succeed())
	})
})
