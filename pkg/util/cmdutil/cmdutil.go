// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmdutil

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// PrintTable renders the content as table with the given headers.
func PrintTable(output io.Writer, headers []string, content [][]string) error {
	table := tablewriter.NewWriter(output)

	h := make([]any, len(headers))
	for i, header := range headers {
		h[i] = header
	}
	table.Header(h...)

	if err := table.Bulk(content); err != nil {
		return err
	}
	return table.Render()
}
