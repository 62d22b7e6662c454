// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/gardener/es-paging/pkg/apis/config"
	"github.com/gardener/es-paging/pkg/util"
)

// settleAfterCreate waits until a newly created index can be used.
func (p *Pipeline) settleAfterCreate(ctx context.Context, name string) error {
	if p.settle.Strategy != config.SettleStrategyPoll {
		return sleep(ctx, p.settle.AfterCreate)
	}
	return p.poll(ctx, name, func(ctx context.Context) (bool, error) {
		return p.client.IndexExists(ctx, name)
	})
}

// documentsBefore returns the number of documents of the index before an ingestion.
// It is only needed to poll for the ingested documents. A missing index has no documents.
func (p *Pipeline) documentsBefore(ctx context.Context, name string) int64 {
	if p.settle.Strategy != config.SettleStrategyPoll {
		return 0
	}
	res, err := p.client.Count(ctx, name, nil)
	if err != nil {
		p.log.V(5).Info("unable to count documents before ingestion", "index", name, "error", err.Error())
		return 0
	}
	return res.Count
}

// settleAfterIngest waits until the index contains the expected number of documents.
func (p *Pipeline) settleAfterIngest(ctx context.Context, name string, documents int64) error {
	if p.settle.Strategy != config.SettleStrategyPoll {
		return sleep(ctx, p.settle.AfterIngest)
	}
	return p.poll(ctx, name, func(ctx context.Context) (bool, error) {
		res, err := p.client.Count(ctx, name, nil)
		if err != nil {
			return false, err
		}
		return res.Count >= documents, nil
	})
}

func (p *Pipeline) poll(ctx context.Context, name string, condition func(ctx context.Context) (bool, error)) error {
	interval := p.settle.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	timeout := p.settle.PollTimeout
	if timeout <= 0 {
		timeout = config.DefaultPollTimeout
	}

	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		done, err := condition(ctx)
		if err != nil {
			// the index may not be available on all nodes yet
			p.log.V(5).Info("index not settled", "index", name, "error", err.Error())
			return false, nil
		}
		return done, nil
	})
	if err != nil {
		return util.NewPreconditionFailedError("index %s did not settle within %s", name, timeout.String())
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
