// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package bulk

import (
	"context"

	"github.com/gardener/es-paging/pkg/util/elasticsearch"
)

// entriesPerRecord is the number of bulk wire entries of one record: the index directive and the source.
const entriesPerRecord = 2

// Record is a document that is written with a caller assigned id.
// The id has to be unique within one ingestion.
type Record struct {
	ID     string
	Source interface{}
}

// Batch is the internal representation of one elastic search bulk request.
type Batch struct {
	Index   string
	Type    string
	Records []Record
}

// ESMetadata is the metadata of a bulk document.
type ESMetadata struct {
	Index ESIndex `json:"index"`
}

// ESIndex is the elastic search index where the bulk data is stored.
type ESIndex struct {
	Index string `json:"_index,omitempty"`
	Type  string `json:"_type,omitempty"`
	ID    string `json:"_id,omitempty"`
}

// SubmitFunc writes one batch to the search engine.
type SubmitFunc func(ctx context.Context, batch Batch) (*elasticsearch.BulkResponse, error)

// State is the state of a Submitter.
type State string

const (
	// StateIdle is the state before the first batch is submitted.
	StateIdle State = "Idle"
	// StateSubmitting is the state while a batch is in flight.
	StateSubmitting State = "Submitting"
	// StateCompleted is the state after all batches were submitted successfully.
	StateCompleted State = "Completed"
	// StateFailed is the state after a batch failed.
	StateFailed State = "Failed"
)

// Summary aggregates the responses of all submitted batches.
type Summary struct {
	Batches int
	Records int
	// Responses contains the response of every batch in submission order.
	Responses []*elasticsearch.BulkResponse
}

// Created returns the number of records that were added as new documents.
func (s *Summary) Created() int64 {
	var created int64
	for _, res := range s.Responses {
		if res == nil {
			continue
		}
		for _, action := range res.Items {
			for _, item := range action {
				if item.Result == elasticsearch.BulkResultCreated {
					created++
				}
			}
		}
	}
	return created
}
