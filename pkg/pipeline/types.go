// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package pipeline

// Status is the outcome of a pipeline operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is returned by every pipeline operation.
// Response holds the operation specific payload, e.g. the existence flag, the count or the search response.
type Result struct {
	Status   Status
	Message  string
	Response interface{}
}

func success(response interface{}, format string, args ...interface{}) *Result {
	return newResult(StatusSuccess, response, format, args...)
}
