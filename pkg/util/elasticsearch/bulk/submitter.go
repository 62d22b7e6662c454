// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package bulk

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"github.com/gardener/es-paging/pkg/util"
	"github.com/gardener/es-paging/pkg/util/elasticsearch"
)

// Submitter submits batches strictly one after another.
// The first failing batch aborts the submission and its error is returned unchanged.
// Batches are not retried, retries are the responsibility of the SubmitFunc.
//
// A Submitter runs one submission. Create a new Submitter for every ingestion.
type Submitter struct {
	log logr.Logger

	mut        sync.Mutex
	state      State
	batchIndex int
}

// NewSubmitter creates a new idle submitter.
func NewSubmitter(log logr.Logger) *Submitter {
	return &Submitter{
		log:        log,
		state:      StateIdle,
		batchIndex: -1,
	}
}

// State returns the current state of the submitter.
func (s *Submitter) State() State {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.state
}

// BatchIndex returns the index of the batch that is in flight or that was submitted last.
// It is -1 before the first submission.
func (s *Submitter) BatchIndex() int {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.batchIndex
}

func (s *Submitter) transition(state State, batchIndex int) {
	s.mut.Lock()
	defer s.mut.Unlock()
	s.state = state
	s.batchIndex = batchIndex
}

// start claims an idle submitter for one submission.
func (s *Submitter) start() error {
	s.mut.Lock()
	defer s.mut.Unlock()
	if s.state != StateIdle {
		return util.NewPreconditionFailedError("submitter is in state %s and cannot be reused", s.state)
	}
	s.state = StateSubmitting
	return nil
}

// Submit submits all batches in order and returns a summary with the responses of all batches.
func (s *Submitter) Submit(ctx context.Context, batches []Batch, submit SubmitFunc) (*Summary, error) {
	if err := s.start(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Responses: make([]*elasticsearch.BulkResponse, 0, len(batches)),
	}
	for i, batch := range batches {
		s.transition(StateSubmitting, i)
		s.log.V(3).Info("submit batch", "batch", i+1, "of", len(batches), "records", len(batch.Records))

		res, err := submit(ctx, batch)
		if err != nil {
			s.transition(StateFailed, i)
			s.log.V(1).Info("batch failed, skipping remaining batches", "batch", i+1, "remaining", len(batches)-i-1)
			return nil, err
		}
		summary.Batches++
		summary.Records += len(batch.Records)
		summary.Responses = append(summary.Responses, res)
	}

	s.transition(StateCompleted, len(batches)-1)
	return summary, nil
}
