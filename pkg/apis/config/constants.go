// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// DefaultEndpoint is the endpoint of a locally running elasticsearch
const DefaultEndpoint = "http://localhost:9200"

// DefaultIndexName is the name of the index used for the paging test
const DefaultIndexName = "test-es6-paging"

// DefaultIndexType is the mapping type of the paging test index
const DefaultIndexType = "test"

// DefaultMaxResultWindow is the elasticsearch default of index.max_result_window
const DefaultMaxResultWindow = 10000

// DefaultDocuments is the number of generated documents.
// It is greater than DefaultMaxResultWindow so that the boundary query can be issued.
const DefaultDocuments = 10015

// DefaultBulkSize is the default number of bulk entries per bulk request
const DefaultBulkSize = 1000

// DefaultSettleAfterCreate is the time to wait after an index has been created
const DefaultSettleAfterCreate = 500 * time.Millisecond

// DefaultSettleAfterIngest is the time to wait until ingested documents are visible to searches
const DefaultSettleAfterIngest = 3 * time.Second

// DefaultPollInterval is the interval of the poll settle strategy
const DefaultPollInterval = 250 * time.Millisecond

// DefaultPollTimeout is the timeout of the poll settle strategy
const DefaultPollTimeout = 30 * time.Second

// Default returns a configuration with all defaults applied.
func Default() *Configuration {
	return &Configuration{
		ElasticSearch: ElasticSearch{
			Endpoint: DefaultEndpoint,
		},
		Index: Index{
			Name:            DefaultIndexName,
			Type:            DefaultIndexType,
			MaxResultWindow: DefaultMaxResultWindow,
		},
		Ingestion: Ingestion{
			Enabled:   true,
			Documents: DefaultDocuments,
			BulkSize:  DefaultBulkSize,
			Settle: Settle{
				Strategy:     SettleStrategySleep,
				AfterCreate:  DefaultSettleAfterCreate,
				AfterIngest:  DefaultSettleAfterIngest,
				PollInterval: DefaultPollInterval,
				PollTimeout:  DefaultPollTimeout,
			},
		},
		Paging: Paging{
			Method:  "search_after",
			Cleanup: true,
		},
	}
}
