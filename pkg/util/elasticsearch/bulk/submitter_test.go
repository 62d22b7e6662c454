// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package bulk_test

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/gardener/es-paging/pkg/util"
	"github.com/gardener/es-paging/pkg/util/elasticsearch"
	"github.com/gardener/es-paging/pkg/util/elasticsearch/bulk"
)

var _ = Describe("submitter", func() {

	var (
		ctx     context.Context
		batches []bulk.Batch
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		batches, err = bulk.Chunk("idx", "test", records(6), 4)
		Expect(err).ToNot(HaveOccurred())
		Expect(batches).To(HaveLen(3))
	})

	It("should submit all batches in order", func() {
		submitter := bulk.NewSubmitter(logr.Discard())
		Expect(submitter.State()).To(Equal(bulk.StateIdle))
		Expect(submitter.BatchIndex()).To(Equal(-1))

		var submitted []string
		summary, err := submitter.Submit(ctx, batches, func(_ context.Context, b bulk.Batch) (*elasticsearch.BulkResponse, error) {
			Expect(submitter.State()).To(Equal(bulk.StateSubmitting))
			Expect(submitter.BatchIndex()).To(Equal(len(submitted)))
			submitted = append(submitted, b.Records[0].ID)
			return &elasticsearch.BulkResponse{Took: len(submitted)}, nil
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(submitted).To(Equal([]string{"0", "2", "4"}))

		Expect(summary.Batches).To(Equal(3))
		Expect(summary.Records).To(Equal(6))
		Expect(summary.Responses).To(HaveLen(3))
		Expect(summary.Responses[2].Took).To(Equal(3))
		Expect(submitter.State()).To(Equal(bulk.StateCompleted))
		Expect(submitter.BatchIndex()).To(Equal(2))
	})

	It("should stop at the first failing batch and return its error unchanged", func() {
		submitter := bulk.NewSubmitter(logr.Discard())
		failure := util.NewTransportError(errors.New("connection refused"), "bulk request failed")

		attempts := 0
		summary, err := submitter.Submit(ctx, batches, func(_ context.Context, _ bulk.Batch) (*elasticsearch.BulkResponse, error) {
			attempts++
			return nil, failure
		})
		Expect(err).To(BeIdenticalTo(failure))
		Expect(summary).To(BeNil())
		Expect(attempts).To(Equal(1))
		Expect(submitter.State()).To(Equal(bulk.StateFailed))
		Expect(submitter.BatchIndex()).To(Equal(0))
	})

	It("should not submit batches after a failure in the middle", func() {
		submitter := bulk.NewSubmitter(logr.Discard())

		attempts := 0
		_, err := submitter.Submit(ctx, batches, func(_ context.Context, _ bulk.Batch) (*elasticsearch.BulkResponse, error) {
			attempts++
			if attempts == 2 {
				return nil, errors.New("rejected")
			}
			return &elasticsearch.BulkResponse{}, nil
		})
		Expect(err).To(MatchError("rejected"))
		Expect(attempts).To(Equal(2))
		Expect(submitter.BatchIndex()).To(Equal(1))
	})

	It("should complete without submitting if there are no batches", func() {
		submitter := bulk.NewSubmitter(logr.Discard())
		summary, err := submitter.Submit(ctx, nil, func(_ context.Context, _ bulk.Batch) (*elasticsearch.BulkResponse, error) {
			Fail("no batch should be submitted")
			return nil, nil
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(summary.Batches).To(Equal(0))
		Expect(submitter.State()).To(Equal(bulk.StateCompleted))
	})

	It("should not be reusable", func() {
		submitter := bulk.NewSubmitter(logr.Discard())
		noop := func(_ context.Context, _ bulk.Batch) (*elasticsearch.BulkResponse, error) {
			return &elasticsearch.BulkResponse{}, nil
		}
		_, err := submitter.Submit(ctx, batches, noop)
		Expect(err).ToNot(HaveOccurred())

		_, err = submitter.Submit(ctx, batches, noop)
		Expect(util.IsKind(err, util.KindPreconditionFailed)).To(BeTrue())
	})

	It("should reject a concurrent submission", func() {
		submitter := bulk.NewSubmitter(logr.Discard())
		release := make(chan struct{})
		started := make(chan struct{})
		var once sync.Once

		done := make(chan error)
		go func() {
			defer GinkgoRecover()
			_, err := submitter.Submit(ctx, batches, func(_ context.Context, _ bulk.Batch) (*elasticsearch.BulkResponse, error) {
				once.Do(func() { close(started) })
				<-release
				return &elasticsearch.BulkResponse{}, nil
			})
			done <- err
		}()
		Eventually(started).Should(BeClosed())

		_, err := submitter.Submit(ctx, batches, func(_ context.Context, _ bulk.Batch) (*elasticsearch.BulkResponse, error) {
			Fail("the second submission must not submit batches")
			return nil, nil
		})
		Expect(util.IsKind(err, util.KindPreconditionFailed)).To(BeTrue())

		close(release)
		Eventually(done).Should(Receive(BeNil()))
		Expect(submitter.State()).To(Equal(bulk.StateCompleted))
	})

	It("should run only one of many simultaneous submissions", func() {
		submitter := bulk.NewSubmitter(logr.Discard())
		var (
			wg       sync.WaitGroup
			mut      sync.Mutex
			rejected int
			calls    int
		)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				_, err := submitter.Submit(ctx, batches, func(_ context.Context, _ bulk.Batch) (*elasticsearch.BulkResponse, error) {
					mut.Lock()
					defer mut.Unlock()
					calls++
					return &elasticsearch.BulkResponse{}, nil
				})
				if err != nil {
					Expect(util.IsKind(err, util.KindPreconditionFailed)).To(BeTrue())
					mut.Lock()
					rejected++
					mut.Unlock()
				}
			}()
		}
		wg.Wait()
		Expect(rejected).To(Equal(9))
		Expect(calls).To(Equal(len(batches)))
	})
})
