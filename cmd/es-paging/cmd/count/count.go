// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package count

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gardener/es-paging/cmd/es-paging/cmd/options"
	"github.com/gardener/es-paging/pkg/logger"
	"github.com/gardener/es-paging/pkg/pipeline"
	"github.com/gardener/es-paging/pkg/util/elasticsearch"
)

// AddCommand adds the count subcommand to another command.
func AddCommand(cmd *cobra.Command) {
	cmd.AddCommand(countCmd)
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Prints the number of documents of the index.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := elasticsearch.NewClient(options.Config.ElasticSearch)
		if err != nil {
			return err
		}
		p := pipeline.New(logger.Log, client, options.Config.Ingestion.BulkSize, options.Config.Ingestion.Settle)

		exists, err := p.EnsureIndexExists(cmd.Context(), options.Config.Index.Name)
		if err != nil {
			return err
		}
		if ok, _ := exists.Response.(bool); !ok {
			return fmt.Errorf("index %s does not exist", options.Config.Index.Name)
		}

		res, err := p.Count(cmd.Context(), options.Config.Index.Name)
		if err != nil {
			return err
		}
		logger.Log.V(3).Info(res.Message)
		fmt.Fprintln(cmd.OutOrStdout(), res.Response)
		return nil
	},
}
