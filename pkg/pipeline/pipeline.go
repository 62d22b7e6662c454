// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/gardener/es-paging/pkg/apis/config"
	"github.com/gardener/es-paging/pkg/util/elasticsearch"
	"github.com/gardener/es-paging/pkg/util/elasticsearch/bulk"
)

const (
	numberOfShards   = 2
	numberOfReplicas = 1
)

// Pipeline sequences the index lifecycle and the bulk ingestion of documents.
type Pipeline struct {
	log      logr.Logger
	client   elasticsearch.Client
	bulkSize int
	settle   config.Settle

	versionMut sync.Mutex
	version    *elasticsearch.ServerVersion
}

// New creates a new pipeline.
// The bulk size is used for all ingestions that do not define their own bulk size.
func New(log logr.Logger, client elasticsearch.Client, bulkSize int, settle config.Settle) *Pipeline {
	if bulkSize == 0 {
		bulkSize = config.DefaultBulkSize
	}
	return &Pipeline{
		log:      log,
		client:   client,
		bulkSize: bulkSize,
		settle:   settle,
	}
}

func newResult(status Status, response interface{}, format string, args ...interface{}) *Result {
	return &Result{
		Status:   status,
		Message:  fmt.Sprintf(format, args...),
		Response: response,
	}
}

// EnsureIndexExists checks whether the index exists.
// The response of the result is a bool.
func (p *Pipeline) EnsureIndexExists(ctx context.Context, name string) (*Result, error) {
	exists, err := p.client.IndexExists(ctx, name)
	if err != nil {
		return nil, err
	}
	return success(exists, "Successfully determined if index %s exists.", name), nil
}

// CreateIndex creates the index with the given mapping and result window.
// Mappings are nested under the type name for elasticsearch versions that still support mapping types.
func (p *Pipeline) CreateIndex(ctx context.Context, name, typeName string, mapping map[string]interface{}, maxResultWindow int) (*Result, error) {
	typed, err := p.TypesSupported(ctx)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		mapping = map[string]interface{}{}
	}

	mappings := mapping
	if typed {
		mappings = map[string]interface{}{typeName: mapping}
	}
	body := map[string]interface{}{
		"settings": map[string]interface{}{
			"index": map[string]interface{}{
				"number_of_shards":   numberOfShards,
				"number_of_replicas": numberOfReplicas,
				"max_result_window":  maxResultWindow,
			},
		},
		"mappings": mappings,
	}

	res, err := p.client.CreateIndex(ctx, name, body)
	if err != nil {
		return nil, err
	}
	p.log.V(3).Info("index created", "index", name, "maxResultWindow", maxResultWindow)

	if err := p.settleAfterCreate(ctx, name); err != nil {
		return nil, err
	}
	return success(res, "Index %s created successfully.", name), nil
}

// BulkIngest writes all records to the index.
// The records are split into batches of at most bulkSize entries that are submitted one after another.
// The default bulk size of the pipeline is used if bulkSize is 0.
// The response of the result is a *bulk.Summary.
func (p *Pipeline) BulkIngest(ctx context.Context, name, typeName string, records []bulk.Record, bulkSize int) (*Result, error) {
	if bulkSize == 0 {
		bulkSize = p.bulkSize
	}
	if err := bulk.ValidateIDs(records); err != nil {
		return nil, err
	}
	batches, err := bulk.Chunk(name, typeName, records, bulkSize)
	if err != nil {
		return nil, err
	}
	typed, err := p.TypesSupported(ctx)
	if err != nil {
		return nil, err
	}

	log := p.log.WithValues("run", uuid.New().String(), "index", name)
	log.Info("start bulk ingestion", "documents", len(records), "batches", len(batches), "bulkSize", bulkSize)

	var before int64
	if len(records) != 0 {
		before = p.documentsBefore(ctx, name)
	}

	submitter := bulk.NewSubmitter(log)
	summary, err := submitter.Submit(ctx, batches, func(ctx context.Context, batch bulk.Batch) (*elasticsearch.BulkResponse, error) {
		data, err := batch.Marshal(typed)
		if err != nil {
			return nil, err
		}
		return p.client.Bulk(ctx, data)
	})
	if err != nil {
		log.V(1).Info("bulk ingestion failed", "batch", submitter.BatchIndex()+1, "error", err.Error())
		return nil, err
	}
	log.Info("finished bulk ingestion", "batches", summary.Batches)

	if len(records) != 0 {
		if err := p.settleAfterIngest(ctx, name, before+summary.Created()); err != nil {
			return nil, err
		}
	}
	return success(summary, "Successfully bulk added %d documents to index %s.", summary.Records, name), nil
}

// InitWithDocuments creates the index if it does not exist and ingests the records afterwards.
// The first failing step aborts the initialization and its error is returned.
func (p *Pipeline) InitWithDocuments(ctx context.Context, name, typeName string, mapping map[string]interface{}, records []bulk.Record, maxResultWindow, bulkSize int) (*Result, error) {
	res, err := p.EnsureIndexExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists, _ := res.Response.(bool); exists {
		p.log.Info("index already exists", "index", name)
	} else {
		if _, err := p.CreateIndex(ctx, name, typeName, mapping, maxResultWindow); err != nil {
			return nil, err
		}
	}
	return p.BulkIngest(ctx, name, typeName, records, bulkSize)
}

// DeleteIndex deletes the index.
func (p *Pipeline) DeleteIndex(ctx context.Context, name string) (*Result, error) {
	res, err := p.client.DeleteIndex(ctx, name)
	if err != nil {
		return nil, err
	}
	return success(res, "Successfully deleted index %s.", name), nil
}

// Cleanup deletes the index and only logs if the deletion fails.
func (p *Pipeline) Cleanup(ctx context.Context, name string) *Result {
	res, err := p.DeleteIndex(ctx, name)
	if err != nil {
		p.log.Error(err, "unable to cleanup index", "index", name)
		return newResult(StatusFailure, nil, "Unable to delete index %s: %s", name, err.Error())
	}
	return res
}

// Count returns the number of documents of the index as int64.
func (p *Pipeline) Count(ctx context.Context, name string) (*Result, error) {
	res, err := p.client.Count(ctx, name, elasticsearch.MatchAll())
	if err != nil {
		return nil, err
	}
	return success(res.Count, "Successfully got documents count for index %s.", name), nil
}

// Search searches the index with the given body.
// The response of the result is a *elasticsearch.SearchResponse.
func (p *Pipeline) Search(ctx context.Context, name string, body map[string]interface{}) (*Result, error) {
	res, err := p.client.Search(ctx, name, body)
	if err != nil {
		return nil, err
	}
	return success(res, "Successfully searched index %s.", name), nil
}

// TypesSupported returns whether the server still supports mapping types.
// Elasticsearch before 7.0.0 does, OpenSearch never did.
// The server version is only requested once.
func (p *Pipeline) TypesSupported(ctx context.Context) (bool, error) {
	p.versionMut.Lock()
	defer p.versionMut.Unlock()
	if p.version == nil {
		v, err := p.client.Version(ctx)
		if err != nil {
			return false, err
		}
		p.log.V(3).Info("detected server version", "version", v.String())
		p.version = v
	}
	return p.version.TypesSupported(), nil
}
