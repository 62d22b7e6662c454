// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/gardener/es-paging/pkg/apis/config"
	"github.com/gardener/es-paging/pkg/util"
)

const (
	contentTypeJSON   = "application/json"
	contentTypeNDJSON = "application/x-ndjson"
)

// Client defines an interface to interact with an elastic search instance
type Client interface {
	Request(httpMethod, path string, payload io.Reader) ([]byte, error)
	RequestWithCtx(ctx context.Context, httpMethod, path string, payload io.Reader) ([]byte, error)

	// Version returns the version and distribution of the server.
	Version(ctx context.Context) (*ServerVersion, error)
	IndexExists(ctx context.Context, index string) (bool, error)
	CreateIndex(ctx context.Context, index string, body map[string]interface{}) (*AcknowledgedResponse, error)
	// Bulk sends a newline delimited bulk request.
	// An error is returned if the request fails or if any of the bulk items failed.
	Bulk(ctx context.Context, data []byte) (*BulkResponse, error)
	Count(ctx context.Context, index string, query map[string]interface{}) (*CountResponse, error)
	Search(ctx context.Context, index string, body map[string]interface{}) (*SearchResponse, error)
	DeleteIndex(ctx context.Context, index string) (*AcknowledgedResponse, error)
}

type client struct {
	*http.Client

	endpoint string
	username string
	password string
}

var _ Client = &client{}

// NewClient creates a new elasticsearch client for the configured endpoint.
// Basic auth is only used when a username is configured.
func NewClient(cfg config.ElasticSearch) (Client, error) {
	return NewClientWithHTTPClient(cfg, http.DefaultClient)
}

// NewClientWithHTTPClient creates a new elasticsearch client that does its requests with the given http client.
func NewClientWithHTTPClient(cfg config.ElasticSearch, httpClient *http.Client) (Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, util.NewInvalidConfigurationError("invalid elasticsearch endpoint %q: %s", cfg.Endpoint, err.Error())
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, util.NewInvalidConfigurationError("elasticsearch endpoint %q has to be an absolute url", cfg.Endpoint)
	}
	u.Path = ""

	if cfg.Username == "" && cfg.Password != "" {
		return nil, util.NewInvalidConfigurationError("elasticsearch username has to be defined if a password is set")
	}

	return &client{
		Client:   httpClient,
		endpoint: u.String(),
		username: cfg.Username,
		password: cfg.Password,
	}, nil
}

func (c *client) Request(httpMethod, rawPath string, payload io.Reader) ([]byte, error) {
	return c.RequestWithCtx(context.Background(), httpMethod, rawPath, payload)
}

func (c *client) RequestWithCtx(ctx context.Context, httpMethod, rawPath string, payload io.Reader) ([]byte, error) {
	return c.request(ctx, httpMethod, rawPath, contentTypeJSON, payload)
}

func (c *client) request(ctx context.Context, httpMethod, rawPath, contentType string, payload io.Reader) ([]byte, error) {
	status, body, err := c.do(ctx, httpMethod, rawPath, contentType, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, util.NewTransportError(&ResponseError{StatusCode: status, Body: body},
			"%s %s failed", httpMethod, rawPath)
	}
	return body, nil
}

// do executes the request and returns the status code and body of every response that was received.
func (c *client) do(ctx context.Context, httpMethod, rawPath, contentType string, payload io.Reader) (int, []byte, error) {
	esURL, err := c.parseUrlNoEscape(rawPath)
	if err != nil {
		return 0, nil, util.NewTransportError(err, "unable to build url for path %s", rawPath)
	}
	req, err := http.NewRequestWithContext(ctx, httpMethod, esURL, payload)
	if err != nil {
		return 0, nil, util.NewTransportError(err, "unable to create request to %s", esURL)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	if payload != nil {
		req.Header.Add("Content-Type", contentType)
	}
	req.Header.Add("Accept", contentTypeJSON)

	res, err := c.Do(req)
	if err != nil {
		return 0, nil, util.NewTransportError(errors.Wrapf(err, "unable to do request to %s", esURL), "%s %s failed", httpMethod, rawPath)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, util.NewTransportError(errors.Wrap(err, "unable to read response body"), "%s %s failed", httpMethod, rawPath)
	}
	return res.StatusCode, body, nil
}

func (c *client) Version(ctx context.Context) (*ServerVersion, error) {
	body, err := c.RequestWithCtx(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}
	info := &InfoResponse{}
	if err := json.Unmarshal(body, info); err != nil {
		return nil, util.NewTransportError(errors.Wrap(err, "unable to unmarshal info response"), "unable to get elasticsearch version")
	}
	v, err := NewServerVersion(info.Version.Number, info.Version.Distribution)
	if err != nil {
		return nil, util.NewTransportError(err, "elasticsearch returned the unparsable version %q", info.Version.Number)
	}
	return v, nil
}

func (c *client) IndexExists(ctx context.Context, index string) (bool, error) {
	status, body, err := c.do(ctx, http.MethodHead, index, contentTypeJSON, nil)
	if err != nil {
		return false, err
	}
	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, util.NewTransportError(&ResponseError{StatusCode: status, Body: body}, "unable to determine if index %s exists", index)
	}
}

func (c *client) CreateIndex(ctx context.Context, index string, body map[string]interface{}) (*AcknowledgedResponse, error) {
	return c.acknowledgedRequest(ctx, http.MethodPut, index, body)
}

func (c *client) DeleteIndex(ctx context.Context, index string) (*AcknowledgedResponse, error) {
	return c.acknowledgedRequest(ctx, http.MethodDelete, index, nil)
}

func (c *client) acknowledgedRequest(ctx context.Context, httpMethod, index string, body map[string]interface{}) (*AcknowledgedResponse, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to marshal request body for index %s", index)
		}
		payload = bytes.NewReader(data)
	}
	resBody, err := c.RequestWithCtx(ctx, httpMethod, index, payload)
	if err != nil {
		return nil, err
	}
	res := &AcknowledgedResponse{}
	if err := json.Unmarshal(resBody, res); err != nil {
		return nil, util.NewTransportError(errors.Wrap(err, "unable to unmarshal response"), "%s %s failed", httpMethod, index)
	}
	return res, nil
}

func (c *client) Bulk(ctx context.Context, data []byte) (*BulkResponse, error) {
	body, err := c.request(ctx, http.MethodPost, "_bulk", contentTypeNDJSON, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}

	bulkRes := &BulkResponse{}
	if err := json.Unmarshal(body, bulkRes); err != nil {
		return nil, util.NewTransportError(errors.Wrap(err, "unable to unmarshal bulk response"), "bulk request failed")
	}

	if bulkRes.Errors {
		if len(bulkRes.Items) == 0 {
			return bulkRes, util.NewTransportError(errors.New("elastic search returned an error"), "bulk request failed")
		}
		var allErrors *multierror.Error
		for _, action := range bulkRes.Items {
			for _, item := range action {
				if item.Status < 200 || item.Status > 299 {
					allErrors = multierror.Append(allErrors, fmt.Errorf("document %s: %v", item.ID, item.Error))
				}
			}
		}
		return bulkRes, util.NewTransportError(util.ReturnMultiError(allErrors), "bulk request failed")
	}

	return bulkRes, nil
}

func (c *client) Count(ctx context.Context, index string, query map[string]interface{}) (*CountResponse, error) {
	if query == nil {
		query = MatchAll()
	}
	data, err := json.Marshal(map[string]interface{}{"query": query})
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal count query")
	}
	body, err := c.RequestWithCtx(ctx, http.MethodPost, path.Join(index, "_count"), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	res := &CountResponse{}
	if err := json.Unmarshal(body, res); err != nil {
		return nil, util.NewTransportError(errors.Wrap(err, "unable to unmarshal count response"), "count of index %s failed", index)
	}
	return res, nil
}

func (c *client) Search(ctx context.Context, index string, searchBody map[string]interface{}) (*SearchResponse, error) {
	data, err := json.Marshal(searchBody)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal search body")
	}
	body, err := c.RequestWithCtx(ctx, http.MethodPost, path.Join(index, "_search"), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	res := &SearchResponse{}
	if err := json.Unmarshal(body, res); err != nil {
		return nil, util.NewTransportError(errors.Wrap(err, "unable to unmarshal search response"), "search of index %s failed", index)
	}
	return res, nil
}

func (c *client) parseUrlNoEscape(rawPath string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	u.Path = path.Join(u.Path, rawPath)
	var result string
	if u.Path == "" || u.Path == "/" {
		result = u.Scheme + "://" + u.Host + "/"
	} else {
		result = u.Scheme + "://" + path.Join(u.Host, u.Path)
	}
	if u.RawQuery != "" {
		result += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		result += "#" + u.Fragment
	}
	return result, nil
}

// MatchAll returns a query that matches all documents.
func MatchAll() map[string]interface{} {
	return map[string]interface{}{"match_all": map[string]interface{}{}}
}
