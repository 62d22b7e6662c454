// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package elasticsearch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// DistributionOpenSearch is the distribution reported by OpenSearch servers.
const DistributionOpenSearch = "opensearch"

// typelessVersion is the first elasticsearch version without mapping types.
var typelessVersion = semver.MustParse("7.0.0")

// ServerVersion is the version number and distribution of a search server.
// The distribution is empty for elasticsearch.
type ServerVersion struct {
	*semver.Version
	Distribution string
}

// NewServerVersion parses the version number reported by a server of the given distribution.
func NewServerVersion(number, distribution string) (*ServerVersion, error) {
	v, err := semver.NewVersion(number)
	if err != nil {
		return nil, err
	}
	return &ServerVersion{Version: v, Distribution: distribution}, nil
}

// MustParseServerVersion is like NewServerVersion but panics if the number cannot be parsed.
func MustParseServerVersion(number, distribution string) *ServerVersion {
	v, err := NewServerVersion(number, distribution)
	if err != nil {
		panic(err)
	}
	return v
}

// TypesSupported returns whether the server still supports mapping types.
// OpenSearch was forked from elasticsearch 7 and never supported them.
func (v *ServerVersion) TypesSupported() bool {
	if v.Distribution == DistributionOpenSearch {
		return false
	}
	return v.LessThan(typelessVersion)
}

func (v *ServerVersion) String() string {
	if v.Distribution == "" {
		return v.Version.String()
	}
	return v.Distribution + " " + v.Version.String()
}

// ResponseError is returned if elasticsearch answered with a non 2xx status code
type ResponseError struct {
	StatusCode int
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("returned status code %d with body %s", e.StatusCode, e.Body)
}

// InfoResponse is the response of the root endpoint of elasticsearch
type InfoResponse struct {
	Name        string `json:"name"`
	ClusterName string `json:"cluster_name"`
	Version     struct {
		Number       string `json:"number"`
		Distribution string `json:"distribution,omitempty"`
	} `json:"version"`
}

// AcknowledgedResponse is returned by index create and delete requests
type AcknowledgedResponse struct {
	Acknowledged       bool   `json:"acknowledged"`
	ShardsAcknowledged bool   `json:"shards_acknowledged,omitempty"`
	Index              string `json:"index,omitempty"`
}

// BulkResponse is the response that is returned by elastic search when doing a bulk request
type BulkResponse struct {
	Took   int                           `json:"took"`
	Errors bool                          `json:"errors"`
	Items  []map[string]BulkResponseItem `json:"items"`
}

// BulkResponseItem is response of one document from a bulk request
type BulkResponseItem struct {
	Index  string      `json:"_index"`
	Type   string      `json:"_type,omitempty"`
	ID     string      `json:"_id"`
	Status int         `json:"status"`
	Result string      `json:"result,omitempty"`
	Error  interface{} `json:"error,omitempty"`
}

// BulkResultCreated is the result of a bulk item that added a new document.
// Items that overwrite an existing document report "updated".
const BulkResultCreated = "created"

// CountResponse is the response of a count request
type CountResponse struct {
	Count int64 `json:"count"`
}

// SearchResponse is the response of a search request
type SearchResponse struct {
	Took     int  `json:"took"`
	TimedOut bool `json:"timed_out"`
	Hits     Hits `json:"hits"`
}

// Hits contains the total and the returned documents of a search
type Hits struct {
	Total Total `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Total is the number of documents matching a search.
// Elasticsearch 6 returns a plain number whereas later versions return an object with value and relation.
type Total struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation,omitempty"`
}

func (t *Total) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) != 0 && data[0] != '{' {
		var value int64
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		t.Value = value
		t.Relation = "eq"
		return nil
	}
	type total Total
	var obj total
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = Total(obj)
	return nil
}

// Hit is one document returned by a search
type Hit struct {
	Index  string          `json:"_index"`
	Type   string          `json:"_type,omitempty"`
	ID     string          `json:"_id"`
	Score  *float64        `json:"_score"`
	Source json.RawMessage `json:"_source"`
	Sort   []interface{}   `json:"sort,omitempty"`
}
