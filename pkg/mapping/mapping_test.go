// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package mapping_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gardener/es-paging/pkg/mapping"
	"github.com/gardener/es-paging/pkg/util"
)

var _ = Describe("mapping", func() {

	It("should return the default mapping without a file", func() {
		m, err := mapping.Load("")
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(Equal(mapping.Default()))
		Expect(m["properties"]).To(HaveKeyWithValue("count", map[string]interface{}{"type": "long"}))
	})

	DescribeTable("load mapping files",
		func(file string) {
			m, err := mapping.Load(file)
			Expect(err).ToNot(HaveOccurred())
			Expect(m).To(Equal(map[string]interface{}{
				"properties": map[string]interface{}{
					"author": map[string]interface{}{"type": "keyword"},
					"count":  map[string]interface{}{"type": "long"},
				},
			}))
		},
		Entry("json", "./testdata/mapping.json"),
		Entry("yaml", "./testdata/mapping.yaml"),
	)

	It("should fail for an empty mapping file", func() {
		_, err := mapping.Load("./testdata/empty.yaml")
		Expect(util.IsKind(err, util.KindInvalidConfiguration)).To(BeTrue())
	})

	It("should fail for a missing mapping file", func() {
		_, err := mapping.Load("./testdata/missing.json")
		Expect(err).To(HaveOccurred())
	})
})
