// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package versioncmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gardener/es-paging/pkg/logger"
	"github.com/gardener/es-paging/pkg/version"
)

// AddCommand adds version to a command.
func AddCommand(cmd *cobra.Command) {
	cmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the es-paging version",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Log.V(3).Info("version")
		v, err := json.Marshal(version.Get())
		if err != nil {
			logger.Log.Error(err, "unable to marshal version")
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(v))
		return nil
	},
}
