// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package util_test

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/gardener/es-paging/pkg/util"
)

var _ = Describe("error util", func() {
	It("should return nil if the error is nil ", func() {
		Expect(util.ReturnMultiError(nil)).ToNot(HaveOccurred())
	})
	It("should return nil if the multierr is nil", func() {
		var err *multierror.Error
		Expect(util.ReturnMultiError(err)).ToNot(HaveOccurred())
	})
	It("should return nil if the multierr contains 0 errors", func() {
		var err *multierror.Error
		err = multierror.Append(err, nil)
		Expect(util.ReturnMultiError(err)).ToNot(HaveOccurred())
	})
	It("should format multiple errors on one line", func() {
		var err *multierror.Error
		err = multierror.Append(err, errors.New("a"), errors.New("b"))
		Expect(util.ReturnMultiError(err)).To(MatchError("2 errors occurred - a - b"))
	})

	Context("kinds", func() {
		It("should detect the kind of a wrapped kind error", func() {
			cause := errors.New("connection refused")
			err := util.NewTransportError(cause, "unable to create index %s", "test")
			wrapped := fmt.Errorf("outer: %w", err)

			Expect(util.IsKind(wrapped, util.KindTransport)).To(BeTrue())
			Expect(util.IsKind(wrapped, util.KindPreconditionFailed)).To(BeFalse())
			Expect(errors.Is(wrapped, cause)).To(BeTrue())
			Expect(err.Error()).To(Equal("unable to create index test: connection refused"))
		})

		It("should render errors without cause as message only", func() {
			err := util.NewInvalidConfigurationError("bulk size %d is too small", 1)
			Expect(err).To(MatchError("bulk size 1 is too small"))
			Expect(util.IsKind(err, util.KindInvalidConfiguration)).To(BeTrue())
		})

		It("should not match errors that are not kind errors", func() {
			Expect(util.IsKind(errors.New("plain"), util.KindTransport)).To(BeFalse())
			Expect(util.IsKind(nil, util.KindTransport)).To(BeFalse())
		})
	})
})
