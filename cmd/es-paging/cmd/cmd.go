// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gardener/es-paging/cmd/es-paging/cmd/cleanup"
	configcmd "github.com/gardener/es-paging/cmd/es-paging/cmd/config"
	"github.com/gardener/es-paging/cmd/es-paging/cmd/count"
	"github.com/gardener/es-paging/cmd/es-paging/cmd/options"
	"github.com/gardener/es-paging/cmd/es-paging/cmd/run"
	versioncmd "github.com/gardener/es-paging/cmd/es-paging/cmd/version"
	"github.com/gardener/es-paging/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "es-paging",
	Short: "Tests deep pagination of elasticsearch/opensearch at the max_result_window boundary",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		log, err := logger.NewCliLogger()
		if err != nil {
			return err
		}
		logger.SetLogger(log)

		return options.Complete(cmd.Flags())
	},
	SilenceUsage: true,
}

// Execute executes the es-paging cli commands
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Printf("%v\n", err)
		cancel()
		os.Exit(1)
	}
}

func init() {
	logger.InitFlags(rootCmd.PersistentFlags())
	options.AddFlags(rootCmd.PersistentFlags())

	run.AddCommand(rootCmd)
	cleanup.AddCommand(rootCmd)
	count.AddCommand(rootCmd)
	configcmd.AddCommand(rootCmd)
	versioncmd.AddCommand(rootCmd)

	if err := options.BindEnv(); err != nil {
		panic(err)
	}
}
