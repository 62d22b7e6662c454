// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package run

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/gardener/es-paging/cmd/es-paging/cmd/options"
	"github.com/gardener/es-paging/pkg/apis/config"
	"github.com/gardener/es-paging/pkg/documents"
	"github.com/gardener/es-paging/pkg/logger"
	"github.com/gardener/es-paging/pkg/mapping"
	"github.com/gardener/es-paging/pkg/paging"
	"github.com/gardener/es-paging/pkg/pipeline"
	"github.com/gardener/es-paging/pkg/util"
	"github.com/gardener/es-paging/pkg/util/cmdutil"
	"github.com/gardener/es-paging/pkg/util/elasticsearch"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// AddCommand adds the run subcommand to another command.
func AddCommand(cmd *cobra.Command) {
	cmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Ingests the generated documents and queries the documents at the max_result_window boundary.",
	PreRun: func(cmd *cobra.Command, args []string) {
		logger.Log.Info("Starting 'es-paging run'", "endpoint", options.Config.ElasticSearch.Endpoint,
			"index", options.Config.Index.Name, "method", options.Config.Paging.Method)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := elasticsearch.NewClient(options.Config.ElasticSearch)
		if err != nil {
			return err
		}
		if err := Run(cmd.Context(), logger.Log, cmd.OutOrStdout(), client, options.Config, options.Seed, options.Output); err != nil {
			logger.Log.Error(err, "error during execution")
			return err
		}
		return nil
	},
	PostRun: func(cmd *cobra.Command, args []string) {
		logger.Log.Info("Finished 'es-paging run'")
	},
}

func init() {
	options.AddIngestionFlags(runCmd.Flags())
	options.AddPagingFlags(runCmd.Flags())
}

// Run initializes the index with generated documents, queries the documents at the result window boundary
// and deletes the index afterwards.
// The index is cleaned up even if the ingestion or the query failed.
func Run(ctx context.Context, log logr.Logger, out io.Writer, client elasticsearch.Client, cfg *config.Configuration, seed int64, output string) error {
	method, err := paging.ParseMethod(cfg.Paging.Method)
	if err != nil {
		return err
	}
	if output != OutputTable && output != OutputJSON {
		return util.NewInvalidConfigurationError("unknown output format %q. Must be %q or %q", output, OutputTable, OutputJSON)
	}

	p := pipeline.New(log, client, cfg.Ingestion.BulkSize, cfg.Ingestion.Settle)

	res, runErr := query(ctx, log, p, client, cfg, method, seed)
	if runErr != nil {
		log.Error(runErr, "unable to query documents over the result window", "index", cfg.Index.Name)
	} else {
		fmt.Fprintf(out, "Total documents in index %s: %d\n", cfg.Index.Name, res.Hits.Total.Value)
		fmt.Fprintf(out, "The following documents are from the %d document boundary, as this is the value of max_result_window for the index.\n", cfg.Index.MaxResultWindow)
		if err := printHits(out, res.Hits.Hits, output); err != nil {
			return err
		}
	}

	if cfg.Paging.Cleanup {
		cleanup := p.Cleanup(ctx, cfg.Index.Name)
		log.Info(cleanup.Message)
	} else {
		logger.Logf(log.Info, "Not cleaning up index %s.", cfg.Index.Name)
	}
	return runErr
}

func query(ctx context.Context, log logr.Logger, p *pipeline.Pipeline, client elasticsearch.Client, cfg *config.Configuration, method paging.Method, seed int64) (*elasticsearch.SearchResponse, error) {
	if cfg.Ingestion.Enabled {
		m, err := mapping.Load(cfg.Index.MappingFile)
		if err != nil {
			return nil, err
		}
		records := documents.Records(documents.NewGenerator(seed).Generate(cfg.Ingestion.Documents))
		res, err := p.InitWithDocuments(ctx, cfg.Index.Name, cfg.Index.Type, m, records, cfg.Index.MaxResultWindow, cfg.Ingestion.BulkSize)
		if err != nil {
			return nil, err
		}
		log.Info(res.Message)
	} else {
		logger.Logf(log.Info, "Not creating or adding documents to index %s.", cfg.Index.Name)
	}

	return paging.QueryOverResultWindow(ctx, log, client, cfg.Index.Name, method, cfg.Index.MaxResultWindow)
}

func printHits(out io.Writer, hits []elasticsearch.Hit, output string) error {
	if output == OutputJSON {
		_, err := fmt.Fprintln(out, util.PrettyPrintJSON(hits))
		return err
	}

	rows := make([][]string, 0, len(hits))
	for _, hit := range hits {
		doc := documents.Document{}
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return fmt.Errorf("unable to decode document %s: %w", hit.ID, err)
		}
		rows = append(rows, []string{hit.ID, strconv.Itoa(doc.Count), doc.Author, doc.Text})
	}
	return cmdutil.PrintTable(out, []string{"ID", "Count", "Author", "Text"}, rows)
}
