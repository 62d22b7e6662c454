// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package paging queries documents across the max_result_window boundary of an index.
package paging

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/gardener/es-paging/pkg/util"
	"github.com/gardener/es-paging/pkg/util/elasticsearch"
)

// Method is the pagination method of a search.
type Method string

const (
	// MethodFrom pages with the from parameter which is limited by max_result_window.
	MethodFrom Method = "from"
	// MethodSearchAfter pages with search_after relative to the sort value of the previous page.
	MethodSearchAfter Method = "search_after"
)

// PageSize is the number of documents returned by the boundary query.
const PageSize = 3

// SortField is the document field the boundary query is sorted by.
const SortField = "count"

// Querier is the subset of the elasticsearch client used to query an index.
type Querier interface {
	Count(ctx context.Context, index string, query map[string]interface{}) (*elasticsearch.CountResponse, error)
	Search(ctx context.Context, index string, body map[string]interface{}) (*elasticsearch.SearchResponse, error)
}

// ParseMethod parses a pagination method.
func ParseMethod(method string) (Method, error) {
	switch Method(method) {
	case MethodFrom, MethodSearchAfter:
		return Method(method), nil
	default:
		return "", util.NewInvalidConfigurationError("invalid search method %q. Must be %q or %q", method, MethodFrom, MethodSearchAfter)
	}
}

// BoundaryPosition returns the position of the first document of the boundary page.
// The page starts two documents before the boundary so that it crosses max_result_window.
func BoundaryPosition(maxResultWindow int) int {
	return maxResultWindow - 2
}

// BoundaryQuery returns the search body of the page that starts at the given position.
// Documents are expected to have a unique sort value that equals their position.
// All hits are tracked as the total of elasticsearch 7 and later is capped at 10000 otherwise.
func BoundaryQuery(method Method, position int) map[string]interface{} {
	body := map[string]interface{}{
		"size": PageSize,
		"sort": []interface{}{
			map[string]interface{}{SortField: "asc"},
		},
		"query":            elasticsearch.MatchAll(),
		"track_total_hits": true,
	}
	switch method {
	case MethodSearchAfter:
		body["search_after"] = []interface{}{position - 1}
	case MethodFrom:
		body["from"] = position
	}
	return body
}

// QueryOverResultWindow searches the page that crosses the max_result_window boundary of the index.
// The index has to contain more documents than maxResultWindow.
func QueryOverResultWindow(ctx context.Context, log logr.Logger, q Querier, index string, method Method, maxResultWindow int) (*elasticsearch.SearchResponse, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	count, err := q.Count(ctx, index, elasticsearch.MatchAll())
	if err != nil {
		return nil, err
	}
	if count.Count <= int64(maxResultWindow) {
		return nil, util.NewPreconditionFailedError(
			"there must be more than %d documents in the index %s to query over the result window but there are %d documents",
			maxResultWindow, index, count.Count)
	}

	body := BoundaryQuery(method, BoundaryPosition(maxResultWindow))
	log.Info("query body", "body", util.PrettyPrintJSON(body))
	return q.Search(ctx, index, body)
}
