// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package options holds the configuration of the es-paging commands.
// The configuration is defined by flags, environment variables and an optional config file
// where flags take precedence over environment variables and the config file.
package options

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/gardener/es-paging/pkg/apis/config"
	"github.com/gardener/es-paging/pkg/apis/config/validation"
	viperutil "github.com/gardener/es-paging/pkg/util/cmdutil/viper"
)

// Config is the configuration of the current invocation.
var Config = config.Default()

// Seed is the seed of the document generator.
var Seed int64

// Output is the output format of search hits.
var Output string

// portEnv is the environment variable of the local elasticsearch port.
const portEnv = "ES_PORT"

// Viper reads the config file and the environment into the bound flags.
var Viper = viperutil.NewViperHelper(nil, "config", "$HOME/.es-paging", ".")

// envs are the environment variables that can be used instead of the bound flags.
var envs = map[string]string{
	"ingestion.documents":   "NUMBER_OF_ES_DOCUMENTS",
	"ingestion.enabled":     "SHOULD_INDEX",
	"index.maxResultWindow": "MAX_RESULT_WINDOW",
	"paging.method":         "SEARCH_METHOD",
	"paging.cleanup":        "SHOULD_CLEANUP",
}

// AddFlags adds the connection and index flags that are shared by all commands.
func AddFlags(fs *flag.FlagSet) {
	Viper.InitFlags(fs)
	fs.StringVar(&Config.ElasticSearch.Endpoint, "endpoint", config.DefaultEndpoint, "Elasticsearch endpoint, e.g. https://example.com:9200")
	fs.StringVar(&Config.ElasticSearch.Username, "user", "", "Elasticsearch basic auth username")
	fs.StringVar(&Config.ElasticSearch.Password, "password", "", "Elasticsearch basic auth password")
	fs.StringVar(&Config.Index.Name, "index", config.DefaultIndexName, "Name of the index")
	fs.StringVar(&Config.Index.Type, "type", config.DefaultIndexType, "Mapping type of the documents. Only used for elasticsearch versions before 7")
	fs.IntVar(&Config.Index.MaxResultWindow, "max-result-window", config.DefaultMaxResultWindow, "max_result_window setting of the index")

	Viper.BindPFlagFromFlagSet(fs, "endpoint", "elasticsearch.endpoint")
	Viper.BindPFlagFromFlagSet(fs, "user", "elasticsearch.username")
	Viper.BindPFlagFromFlagSet(fs, "password", "elasticsearch.password")
	Viper.BindPFlagFromFlagSet(fs, "index", "index.name")
	Viper.BindPFlagFromFlagSet(fs, "type", "index.type")
	Viper.BindPFlagFromFlagSet(fs, "max-result-window", "index.maxResultWindow")
}

// AddIngestionFlags adds the flags of the document generation and the bulk ingestion.
func AddIngestionFlags(fs *flag.FlagSet) {
	fs.BoolVar(&Config.Ingestion.Enabled, "ingest", true, "Create the index if it does not exist and add the generated documents")
	fs.IntVar(&Config.Ingestion.Documents, "documents", config.DefaultDocuments, "Number of generated documents. Has to be greater than the max result window")
	fs.IntVar(&Config.Ingestion.BulkSize, "bulk-size", config.DefaultBulkSize, "Max number of entries per bulk request. Every document results in 2 entries")
	fs.StringVar(&Config.Index.MappingFile, "mapping-file", "", "Path to a json or yaml file with the document mapping")
	fs.Int64Var(&Seed, "seed", 1, "Seed of the document generator. 0 uses a random seed")

	fs.StringVar((*string)(&Config.Ingestion.Settle.Strategy), "settle-strategy", string(config.SettleStrategySleep), "How to wait for index changes to become visible. One of sleep or poll")
	fs.DurationVar(&Config.Ingestion.Settle.AfterCreate, "settle-after-create", config.DefaultSettleAfterCreate, "Sleep duration after the index is created")
	fs.DurationVar(&Config.Ingestion.Settle.AfterIngest, "settle-after-ingest", config.DefaultSettleAfterIngest, "Sleep duration after the documents are ingested")
	fs.DurationVar(&Config.Ingestion.Settle.PollInterval, "settle-poll-interval", config.DefaultPollInterval, "Interval of the poll settle strategy")
	fs.DurationVar(&Config.Ingestion.Settle.PollTimeout, "settle-poll-timeout", config.DefaultPollTimeout, "Timeout of the poll settle strategy")

	Viper.BindPFlagFromFlagSet(fs, "ingest", "ingestion.enabled")
	Viper.BindPFlagFromFlagSet(fs, "documents", "ingestion.documents")
	Viper.BindPFlagFromFlagSet(fs, "bulk-size", "ingestion.bulkSize")
	Viper.BindPFlagFromFlagSet(fs, "mapping-file", "index.mappingFile")
	Viper.BindPFlagFromFlagSet(fs, "settle-strategy", "ingestion.settle.strategy")
	Viper.BindPFlagFromFlagSet(fs, "settle-after-create", "ingestion.settle.afterCreate")
	Viper.BindPFlagFromFlagSet(fs, "settle-after-ingest", "ingestion.settle.afterIngest")
	Viper.BindPFlagFromFlagSet(fs, "settle-poll-interval", "ingestion.settle.pollInterval")
	Viper.BindPFlagFromFlagSet(fs, "settle-poll-timeout", "ingestion.settle.pollTimeout")
}

// AddPagingFlags adds the flags of the boundary query.
func AddPagingFlags(fs *flag.FlagSet) {
	fs.StringVar(&Config.Paging.Method, "search-method", "search_after", "Pagination method of the boundary query. One of from or search_after")
	fs.BoolVar(&Config.Paging.Cleanup, "cleanup", true, "Delete the index after the query")
	fs.StringVarP(&Output, "output", "o", "table", "Output format of the hits. One of table or json")

	Viper.BindPFlagFromFlagSet(fs, "search-method", "paging.method")
	Viper.BindPFlagFromFlagSet(fs, "cleanup", "paging.cleanup")
}

// BindEnv binds the environment variables of all configuration keys.
func BindEnv() error {
	for key, env := range envs {
		if err := Viper.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

// Complete reads the configuration from the environment and the config file and validates the result.
func Complete(fs *flag.FlagSet) error {
	if err := Viper.ReadInConfig(); err != nil {
		return err
	}

	if port, ok := os.LookupEnv(portEnv); ok && !fs.Changed("endpoint") && Config.ElasticSearch.Endpoint == config.DefaultEndpoint {
		Config.ElasticSearch.Endpoint = fmt.Sprintf("http://localhost:%s", port)
	}

	if err := validation.ValidateConfiguration(Config).ToAggregate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
