// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package cleanup

import (
	"github.com/spf13/cobra"

	"github.com/gardener/es-paging/cmd/es-paging/cmd/options"
	"github.com/gardener/es-paging/pkg/logger"
	"github.com/gardener/es-paging/pkg/pipeline"
	"github.com/gardener/es-paging/pkg/util/elasticsearch"
)

// AddCommand adds the cleanup subcommand to another command.
func AddCommand(cmd *cobra.Command) {
	cmd.AddCommand(cleanupCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Deletes the index.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := elasticsearch.NewClient(options.Config.ElasticSearch)
		if err != nil {
			return err
		}
		p := pipeline.New(logger.Log, client, options.Config.Ingestion.BulkSize, options.Config.Ingestion.Settle)
		res, err := p.DeleteIndex(cmd.Context(), options.Config.Index.Name)
		if err != nil {
			logger.Log.Error(err, "unable to delete index", "index", options.Config.Index.Name)
			return err
		}
		logger.Log.Info(res.Message)
		return nil
	},
}
