// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gardener/es-paging/cmd/es-paging/cmd/options"
	"github.com/gardener/es-paging/pkg/apis/config"
	"github.com/gardener/es-paging/pkg/util"
)

var usage bool

// AddCommand adds the config subcommand to another command.
func AddCommand(cmd *cobra.Command) {
	cmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the effective configuration or the description of all configuration keys.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if usage {
			fmt.Fprint(cmd.OutOrStdout(), options.Viper.Usage())
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), util.PrettyPrintStruct(redact(options.Config)))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&usage, "usage", false, "Print the description of all configuration keys instead of the values")
}

// redact returns a copy of the configuration without credentials.
func redact(cfg *config.Configuration) *config.Configuration {
	c := *cfg
	if c.ElasticSearch.Password != "" {
		c.ElasticSearch.Password = "<redacted>"
	}
	return &c
}
