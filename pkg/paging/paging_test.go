// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package paging_test

import (
	"context"
	"strconv"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/gardener/es-paging/pkg/apis/config"
	"github.com/gardener/es-paging/pkg/paging"
	"github.com/gardener/es-paging/pkg/util"
	"github.com/gardener/es-paging/pkg/util/elasticsearch"
	"github.com/gardener/es-paging/pkg/util/elasticsearch/fake"
	mock_elasticsearch "github.com/gardener/es-paging/pkg/util/elasticsearch/mocks"
)

var _ = Describe("paging", func() {

	Context("ParseMethod", func() {
		DescribeTable("valid methods",
			func(in string, expected paging.Method) {
				m, err := paging.ParseMethod(in)
				Expect(err).ToNot(HaveOccurred())
				Expect(m).To(Equal(expected))
			},
			Entry("from", "from", paging.MethodFrom),
			Entry("search_after", "search_after", paging.MethodSearchAfter),
		)

		It("should reject unknown methods", func() {
			_, err := paging.ParseMethod("scroll")
			Expect(util.IsKind(err, util.KindInvalidConfiguration)).To(BeTrue())
		})
	})

	Context("BoundaryQuery", func() {
		It("should page with search_after relative to the previous document", func() {
			body := paging.BoundaryQuery(paging.MethodSearchAfter, paging.BoundaryPosition(10000))
			Expect(body).To(HaveKeyWithValue("search_after", []interface{}{9997}))
			Expect(body).ToNot(HaveKey("from"))
			Expect(body).To(HaveKeyWithValue("size", 3))
			Expect(body).To(HaveKeyWithValue("track_total_hits", true))
		})

		It("should page with from", func() {
			body := paging.BoundaryQuery(paging.MethodFrom, paging.BoundaryPosition(10000))
			Expect(body).To(HaveKeyWithValue("from", 9998))
			Expect(body).ToNot(HaveKey("search_after"))
		})
	})

	Context("QueryOverResultWindow", func() {
		var (
			ctx  context.Context
			ctrl *gomock.Controller
		)

		BeforeEach(func() {
			ctx = context.Background()
			ctrl = gomock.NewController(GinkgoT())
		})

		AfterEach(func() {
			ctrl.Finish()
		})

		It("should fail if the index has not more documents than the result window", func() {
			client := mock_elasticsearch.NewMockClient(ctrl)
			client.EXPECT().Count(gomock.Any(), "idx", gomock.Any()).Return(&elasticsearch.CountResponse{Count: 10000}, nil)
			client.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err := paging.QueryOverResultWindow(ctx, logr.Discard(), client, "idx", paging.MethodSearchAfter, 10000)
			Expect(util.IsKind(err, util.KindPreconditionFailed)).To(BeTrue())
		})

		It("should fail for an invalid method without any request", func() {
			client := mock_elasticsearch.NewMockClient(ctrl)
			_, err := paging.QueryOverResultWindow(ctx, logr.Discard(), client, "idx", paging.Method("scroll"), 10000)
			Expect(util.IsKind(err, util.KindInvalidConfiguration)).To(BeTrue())
		})

		Context("elasticsearch", func() {
			var (
				server *fake.Server
				client elasticsearch.Client
			)

			BeforeEach(func() {
				server = fake.NewServer("")
				docs := map[string]map[string]interface{}{}
				for i := 0; i < 10015; i++ {
					docs[strconv.Itoa(i)] = map[string]interface{}{"count": float64(i)}
				}
				server.AddIndex("idx", 10000, docs)

				var err error
				client, err = elasticsearch.NewClient(config.ElasticSearch{Endpoint: server.URL})
				Expect(err).ToNot(HaveOccurred())
			})

			AfterEach(func() {
				server.Close()
			})

			It("should return the documents across the boundary with search_after", func() {
				res, err := paging.QueryOverResultWindow(ctx, logr.Discard(), client, "idx", paging.MethodSearchAfter, 10000)
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Hits.Total.Value).To(Equal(int64(10015)))
				Expect(res.Hits.Hits).To(HaveLen(3))
				Expect(res.Hits.Hits[0].ID).To(Equal("9998"))
				Expect(res.Hits.Hits[1].ID).To(Equal("9999"))
				Expect(res.Hits.Hits[2].ID).To(Equal("10000"))
			})

			It("should be rejected by elasticsearch with from", func() {
				_, err := paging.QueryOverResultWindow(ctx, logr.Discard(), client, "idx", paging.MethodFrom, 10000)
				Expect(err).To(HaveOccurred())
				Expect(util.IsKind(err, util.KindTransport)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("Result window is too large"))
			})
		})
	})
})
