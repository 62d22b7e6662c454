// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// Configuration contains the configuration values of a paging test run
type Configuration struct {
	ElasticSearch ElasticSearch `json:"elasticsearch"`
	Index         Index         `json:"index"`
	Ingestion     Ingestion     `json:"ingestion"`
	Paging        Paging        `json:"paging"`
}

// ElasticSearch holds the connection information of the elasticsearch or opensearch endpoint.
// Basic auth is only used if a username is defined.
type ElasticSearch struct {
	Endpoint string `json:"endpoint,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Index describes the index that is created, filled and deleted.
type Index struct {
	// Name of the index.
	Name string `json:"name"`
	// Type is the mapping type name. It is only sent to engines before version 7.
	Type string `json:"type"`
	// MaxResultWindow is the max_result_window setting of the created index.
	MaxResultWindow int `json:"maxResultWindow"`
	// MappingFile is an optional json or yaml file with the type mapping.
	MappingFile string `json:"mappingFile,omitempty"`
}

// Ingestion configures the bulk ingestion of the generated documents.
type Ingestion struct {
	// Enabled creates the index if necessary and ingests the documents.
	Enabled bool `json:"enabled"`
	// Documents is the number of documents to generate.
	Documents int `json:"documents"`
	// BulkSize is the max number of bulk entries per request.
	// Every document results in two entries: the index directive and the source.
	BulkSize int `json:"bulkSize"`
	Settle   Settle `json:"settle"`
}

// SettleStrategy defines how the pipeline waits for changes to become visible.
type SettleStrategy string

const (
	// SettleStrategySleep waits a fixed duration.
	SettleStrategySleep SettleStrategy = "sleep"
	// SettleStrategyPoll polls the index until the change is visible or the timeout is reached.
	SettleStrategyPoll SettleStrategy = "poll"
)

// Settle configures the wait after index creation and bulk ingestion.
type Settle struct {
	Strategy     SettleStrategy `json:"strategy"`
	AfterCreate  time.Duration  `json:"afterCreate"`
	AfterIngest  time.Duration  `json:"afterIngest"`
	PollInterval time.Duration  `json:"pollInterval"`
	PollTimeout  time.Duration  `json:"pollTimeout"`
}

// Paging configures the query over the result window boundary.
type Paging struct {
	// Method is either "from" or "search_after".
	Method string `json:"method"`
	// Cleanup deletes the index after the query.
	Cleanup bool `json:"cleanup"`
}
