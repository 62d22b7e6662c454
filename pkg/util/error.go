// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ErrorKind classifies errors returned by the index lifecycle and ingestion operations.
type ErrorKind string

const (
	// KindTransport marks errors of a failed call to the search engine.
	KindTransport ErrorKind = "TransportError"
	// KindInvalidConfiguration marks errors caused by unusable settings like a bulk size below 2.
	KindInvalidConfiguration ErrorKind = "InvalidConfiguration"
	// KindPreconditionFailed marks errors where the index or the input is not in the required state.
	KindPreconditionFailed ErrorKind = "PreconditionFailed"
)

// KindError is an error with a kind, a human readable message and an optional cause.
type KindError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *KindError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
}

func (e *KindError) Unwrap() error {
	return e.Cause
}

// NewTransportError wraps the cause of a failed search engine call.
func NewTransportError(cause error, format string, args ...interface{}) error {
	return &KindError{
		Kind:    KindTransport,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// NewInvalidConfigurationError returns a new error of kind InvalidConfiguration.
func NewInvalidConfigurationError(format string, args ...interface{}) error {
	return &KindError{
		Kind:    KindInvalidConfiguration,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewPreconditionFailedError returns a new error of kind PreconditionFailed.
func NewPreconditionFailedError(format string, args ...interface{}) error {
	return &KindError{
		Kind:    KindPreconditionFailed,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsKind checks whether err or any error it wraps is a KindError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var kindErr *KindError
	if !errors.As(err, &kindErr) {
		return false
	}
	return kindErr.Kind == kind
}

// ReturnMultiError takes an err object and returns a multierror with a custom format.
func ReturnMultiError(err error) error {
	if err == nil || reflect.ValueOf(err).IsNil() {
		return nil
	}

	if errs, ok := err.(*multierror.Error); ok {
		errs.ErrorFormat = func(errs []error) string {
			if len(errs) == 1 {
				return fmt.Sprintf("1 error occurred: %s", errs[0].Error())
			}

			errStr := fmt.Sprintf("%d errors occurred", len(errs))
			for _, err := range errs {
				errStr = fmt.Sprintf("%s - %s", errStr, err.Error())
			}
			return errStr
		}
		return errs.ErrorOrNil()
	}
	return err
}
