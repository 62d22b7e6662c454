// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package documents_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gardener/es-paging/pkg/documents"
	"github.com/gardener/es-paging/pkg/util/elasticsearch/bulk"
)

var _ = Describe("documents", func() {

	It("should generate documents with ascending counts", func() {
		docs := documents.NewGenerator(1).Generate(100)
		Expect(docs).To(HaveLen(100))
		for i, doc := range docs {
			Expect(doc.Count).To(Equal(i))
			Expect(doc.Author).ToNot(BeEmpty())
			Expect(len(strings.Fields(doc.Text))).To(BeNumerically(">=", 2))
			Expect(len(strings.Fields(doc.Text))).To(BeNumerically("<=", 10))
			Expect(doc.Timestamp.IsZero()).To(BeFalse())
		}
	})

	It("should generate the same texts for the same seed", func() {
		a := documents.NewGenerator(42).Generate(10)
		b := documents.NewGenerator(42).Generate(10)
		for i := range a {
			Expect(a[i].Author).To(Equal(b[i].Author))
			Expect(a[i].Text).To(Equal(b[i].Text))
		}
	})

	It("should generate different texts for different seeds", func() {
		a := documents.NewGenerator(1).Generate(10)
		b := documents.NewGenerator(2).Generate(10)
		different := false
		for i := range a {
			if a[i].Author != b[i].Author || a[i].Text != b[i].Text {
				different = true
			}
		}
		Expect(different).To(BeTrue())
	})

	It("should use the count as record id", func() {
		records := documents.Records(documents.NewGenerator(1).Generate(3))
		Expect(records).To(HaveLen(3))
		Expect(records[2].ID).To(Equal("2"))
		Expect(bulk.ValidateIDs(records)).To(Succeed())
		Expect(records[0].Source).To(BeAssignableToTypeOf(documents.Document{}))
	})
})
