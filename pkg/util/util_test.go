// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package util_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gardener/es-paging/pkg/util"
)

var _ = Describe("util test", func() {

	Context("json", func() {
		It("should not escape html characters", func() {
			data, err := util.MarshalNoHTMLEscape(map[string]string{"text": "<a & b>"})
			Expect(err).ToNot(HaveOccurred())
			Expect(string(data)).To(Equal("{\"text\":\"<a & b>\"}\n"))
		})
	})

	Context("read lines", func() {
		It("should return every non-empty line without line ending", func() {
			var lines []string
			for line := range util.ReadLines([]byte("{\"a\":1}\r\n\n{\"b\":2}\n")) {
				lines = append(lines, string(line))
			}
			Expect(lines).To(Equal([]string{"{\"a\":1}", "{\"b\":2}"}))
		})

		It("should return the last line without trailing newline", func() {
			var lines []string
			for line := range util.ReadLines([]byte("x\ny")) {
				lines = append(lines, string(line))
			}
			Expect(lines).To(Equal([]string{"x", "y"}))
		})
	})

	DescribeTable("StringDefault",
		func(value, def, expected string) {
			Expect(util.StringDefault(value, def)).To(Equal(expected))
		},
		Entry("empty", "", "default", "default"),
		Entry("set", "value", "default", "value"),
	)
})
