// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package bulk_test

import (
	"encoding/json"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gardener/es-paging/pkg/util"
	"github.com/gardener/es-paging/pkg/util/elasticsearch/bulk"
)

func records(n int) []bulk.Record {
	res := make([]bulk.Record, n)
	for i := range res {
		res[i] = bulk.Record{
			ID:     strconv.Itoa(i),
			Source: map[string]interface{}{"count": i},
		}
	}
	return res
}

func flatten(batches []bulk.Batch) []bulk.Record {
	res := make([]bulk.Record, 0)
	for _, b := range batches {
		res = append(res, b.Records...)
	}
	return res
}

var _ = Describe("chunk", func() {

	It("should reconstruct the input when concatenating all batches", func() {
		input := records(10015)
		batches, err := bulk.Chunk("idx", "test", input, 1000)
		Expect(err).ToNot(HaveOccurred())
		Expect(flatten(batches)).To(Equal(input))
		for _, b := range batches {
			Expect(b.Index).To(Equal("idx"))
			Expect(b.Type).To(Equal("test"))
			Expect(b.Entries()).To(BeNumerically("<=", 1000))
		}
	})

	DescribeTable("number of batches",
		func(n, bulkSize, expected int) {
			batches, err := bulk.Chunk("idx", "test", records(n), bulkSize)
			Expect(err).ToNot(HaveOccurred())
			Expect(batches).To(HaveLen(expected))
			Expect(flatten(batches)).To(HaveLen(n))
		},
		Entry("10015 records with a bulk size of 1000", 10015, 1000, 21),
		Entry("exactly one full batch", 500, 1000, 1),
		Entry("one record more than a full batch", 501, 1000, 2),
		Entry("one record per batch", 5, 2, 5),
		Entry("odd bulk size is rounded down", 6, 5, 3),
		Entry("odd bulk size of 3 behaves like 2", 3, 3, 3),
		Entry("no records", 0, 1000, 0),
	)

	It("should return the last batch with the remaining records", func() {
		batches, err := bulk.Chunk("idx", "test", records(10015), 1000)
		Expect(err).ToNot(HaveOccurred())
		Expect(batches[0].Records).To(HaveLen(500))
		Expect(batches[20].Records).To(HaveLen(15))
		Expect(batches[20].Records[0].ID).To(Equal("10000"))
	})

	DescribeTable("invalid bulk sizes",
		func(bulkSize int) {
			_, err := bulk.Chunk("idx", "test", records(3), bulkSize)
			Expect(err).To(HaveOccurred())
			Expect(util.IsKind(err, util.KindInvalidConfiguration)).To(BeTrue())
		},
		Entry("1", 1),
		Entry("0", 0),
		Entry("negative", -4),
	)

	It("should fail for an invalid bulk size even without records", func() {
		_, err := bulk.Chunk("idx", "test", nil, 1)
		Expect(util.IsKind(err, util.KindInvalidConfiguration)).To(BeTrue())
	})
})

var _ = Describe("validate ids", func() {
	It("should accept unique ids", func() {
		Expect(bulk.ValidateIDs(records(10))).To(Succeed())
	})

	It("should reject empty ids", func() {
		err := bulk.ValidateIDs([]bulk.Record{{ID: "1"}, {ID: ""}})
		Expect(util.IsKind(err, util.KindPreconditionFailed)).To(BeTrue())
	})

	It("should reject duplicated ids", func() {
		err := bulk.ValidateIDs([]bulk.Record{{ID: "1"}, {ID: "2"}, {ID: "1"}})
		Expect(util.IsKind(err, util.KindPreconditionFailed)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(`"1"`))
	})
})

var _ = Describe("marshal", func() {
	batch := bulk.Batch{
		Index: "idx",
		Type:  "test",
		Records: []bulk.Record{
			{ID: "0", Source: map[string]interface{}{"text": "<b>a & b</b>", "count": 0}},
			{ID: "1", Source: map[string]interface{}{"text": "b", "count": 1}},
		},
	}

	It("should write a directive and a source line per record", func() {
		data, err := batch.Marshal(true)
		Expect(err).ToNot(HaveOccurred())

		lines := make([][]byte, 0)
		for line := range util.ReadLines(data) {
			lines = append(lines, line)
		}
		Expect(lines).To(HaveLen(4))

		meta := bulk.ESMetadata{}
		Expect(json.Unmarshal(lines[2], &meta)).To(Succeed())
		Expect(meta.Index).To(Equal(bulk.ESIndex{Index: "idx", Type: "test", ID: "1"}))
		Expect(string(lines[1])).To(ContainSubstring("<b>a & b</b>"))
		Expect(data[len(data)-1]).To(Equal(byte('\n')))
	})

	It("should omit the type if types are not supported", func() {
		data, err := batch.Marshal(false)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).ToNot(ContainSubstring("_type"))
		Expect(string(data)).To(ContainSubstring(`{"index":{"_index":"idx","_id":"0"}}`))
	})
})
