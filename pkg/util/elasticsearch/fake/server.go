// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package fake implements an in-memory elasticsearch server for tests.
// It supports the subset of the index, bulk, count and search apis that is used by the paging tests:
// match_all queries sorted by one numeric source field with from/size or search_after pagination.
package fake

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/gorilla/mux"

	"github.com/gardener/es-paging/pkg/util"
)

// DefaultVersion is the elasticsearch version reported by the fake server.
const DefaultVersion = "6.8.23"

const (
	defaultMaxResultWindow = 10000
	defaultTrackTotalHits  = 10000
)

// Server is an in-memory elasticsearch reachable over http.
type Server struct {
	*httptest.Server

	mut          sync.Mutex
	version      *semver.Version
	distribution string
	indices map[string]*index

	bulkRequests   int
	bulkItems      []int
	failBulk       map[int]bool
	rejectIDs      map[string]bool
	createRequests []map[string]interface{}
}

type index struct {
	maxResultWindow int
	docs            map[string]map[string]interface{}
	order           []string
}

// NewServer starts a new fake elasticsearch server that reports the given version.
// The DefaultVersion is used if the version is empty.
func NewServer(version string) *Server {
	s := &Server{
		version:   semver.MustParse(util.StringDefault(version, DefaultVersion)),
		indices:   map[string]*index{},
		failBulk:  map[int]bool{},
		rejectIDs: map[string]bool{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.info).Methods(http.MethodGet)
	r.HandleFunc("/_bulk", s.bulk).Methods(http.MethodPost, http.MethodPut)
	r.HandleFunc("/{index}/_count", s.count).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/{index}/_search", s.search).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/{index}", s.indexExists).Methods(http.MethodHead)
	r.HandleFunc("/{index}", s.createIndex).Methods(http.MethodPut)
	r.HandleFunc("/{index}", s.deleteIndex).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// SetDistribution sets the distribution that is reported next to the version, e.g. "opensearch".
func (s *Server) SetDistribution(distribution string) {
	s.mut.Lock()
	defer s.mut.Unlock()
	s.distribution = distribution
}

// FailBulkRequest lets the n-th bulk request (starting at 1) fail with an internal server error.
func (s *Server) FailBulkRequest(n int) {
	s.mut.Lock()
	defer s.mut.Unlock()
	s.failBulk[n] = true
}

// RejectDocument lets every bulk item with the given id fail with a mapping error.
func (s *Server) RejectDocument(id string) {
	s.mut.Lock()
	defer s.mut.Unlock()
	s.rejectIDs[id] = true
}

// BulkRequests returns the number of received bulk requests.
func (s *Server) BulkRequests() int {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.bulkRequests
}

// BulkItems returns the number of items of every received bulk request in order.
func (s *Server) BulkItems() []int {
	s.mut.Lock()
	defer s.mut.Unlock()
	return append([]int{}, s.bulkItems...)
}

// CreateRequests returns the bodies of all index create requests.
func (s *Server) CreateRequests() []map[string]interface{} {
	s.mut.Lock()
	defer s.mut.Unlock()
	return append([]map[string]interface{}{}, s.createRequests...)
}

// AddIndex creates an index with the given documents without a request.
func (s *Server) AddIndex(name string, maxResultWindow int, docs map[string]map[string]interface{}) {
	s.mut.Lock()
	defer s.mut.Unlock()
	idx := newIndex(maxResultWindow)
	for id, doc := range docs {
		idx.put(id, doc)
	}
	s.indices[name] = idx
}

// Documents returns the number of documents of an index and whether the index exists.
func (s *Server) Documents(name string) (int, bool) {
	s.mut.Lock()
	defer s.mut.Unlock()
	idx, ok := s.indices[name]
	if !ok {
		return 0, false
	}
	return len(idx.docs), true
}

func newIndex(maxResultWindow int) *index {
	if maxResultWindow <= 0 {
		maxResultWindow = defaultMaxResultWindow
	}
	return &index{
		maxResultWindow: maxResultWindow,
		docs:            map[string]map[string]interface{}{},
	}
}

func (i *index) put(id string, doc map[string]interface{}) {
	if _, ok := i.docs[id]; !ok {
		i.order = append(i.order, id)
	}
	i.docs[id] = doc
}

// typeless returns whether the server rejects mapping types. s.mut has to be held.
func (s *Server) typeless() bool {
	return s.distribution == "opensearch" || s.version.Major() >= 7
}

func (s *Server) info(w http.ResponseWriter, _ *http.Request) {
	s.mut.Lock()
	version := map[string]interface{}{"number": s.version.String()}
	if s.distribution != "" {
		version["distribution"] = s.distribution
	}
	s.mut.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":         "fake",
		"cluster_name": "fake",
		"version":      version,
	})
}

func (s *Server) indexExists(w http.ResponseWriter, r *http.Request) {
	s.mut.Lock()
	defer s.mut.Unlock()
	if _, ok := s.indices[mux.Vars(r)["index"]]; !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) createIndex(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["index"]
	body := map[string]interface{}{}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "parse_exception", err.Error())
		return
	}

	s.mut.Lock()
	defer s.mut.Unlock()
	s.createRequests = append(s.createRequests, body)
	if _, ok := s.indices[name]; ok {
		writeError(w, http.StatusBadRequest, "resource_already_exists_exception", fmt.Sprintf("index [%s] already exists", name))
		return
	}
	s.indices[name] = newIndex(maxResultWindowSetting(body))
	writeJSON(w, http.StatusOK, map[string]interface{}{"acknowledged": true, "shards_acknowledged": true, "index": name})
}

func (s *Server) deleteIndex(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["index"]
	s.mut.Lock()
	defer s.mut.Unlock()
	if _, ok := s.indices[name]; !ok {
		writeError(w, http.StatusNotFound, "index_not_found_exception", fmt.Sprintf("no such index [%s]", name))
		return
	}
	delete(s.indices, name)
	writeJSON(w, http.StatusOK, map[string]interface{}{"acknowledged": true})
}

func (s *Server) bulk(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "parse_exception", err.Error())
		return
	}

	s.mut.Lock()
	defer s.mut.Unlock()
	s.bulkRequests++
	if s.failBulk[s.bulkRequests] {
		writeError(w, http.StatusInternalServerError, "internal_server_exception", "bulk request failed")
		return
	}

	var (
		items     []map[string]interface{}
		hasErrors bool
		directive map[string]map[string]interface{}
	)
	var lines [][]byte
	for line := range util.ReadLines(data) {
		lines = append(lines, line)
	}
	for _, line := range lines {
		if directive == nil {
			directive = map[string]map[string]interface{}{}
			if err := json.Unmarshal(line, &directive); err != nil {
				writeError(w, http.StatusBadRequest, "illegal_argument_exception", "malformed action/metadata line")
				return
			}
			continue
		}
		meta, ok := directive["index"]
		if !ok {
			writeError(w, http.StatusBadRequest, "illegal_argument_exception", "only the index action is supported")
			return
		}
		doc := map[string]interface{}{}
		if err := json.Unmarshal(line, &doc); err != nil {
			writeError(w, http.StatusBadRequest, "parse_exception", "malformed document")
			return
		}
		name, _ := meta["_index"].(string)
		id := fmt.Sprint(meta["_id"])
		item := map[string]interface{}{"_index": name, "_id": id}
		if typeName, ok := meta["_type"]; ok {
			if s.typeless() {
				writeError(w, http.StatusBadRequest, "illegal_argument_exception", "Action/metadata line [1] contains an unknown parameter [_type]")
				return
			}
			item["_type"] = typeName
		}

		if s.rejectIDs[id] {
			hasErrors = true
			item["status"] = http.StatusBadRequest
			item["error"] = map[string]interface{}{"type": "mapper_parsing_exception", "reason": "failed to parse"}
		} else {
			idx, ok := s.indices[name]
			if !ok {
				idx = newIndex(defaultMaxResultWindow)
				s.indices[name] = idx
			}
			if _, exists := idx.docs[id]; exists {
				item["status"] = http.StatusOK
				item["result"] = "updated"
			} else {
				item["status"] = http.StatusCreated
				item["result"] = "created"
			}
			idx.put(id, doc)
		}
		items = append(items, map[string]interface{}{"index": item})
		directive = nil
	}
	s.bulkItems = append(s.bulkItems, len(items))

	writeJSON(w, http.StatusOK, map[string]interface{}{"took": 1, "errors": hasErrors, "items": items})
}

func (s *Server) count(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["index"]
	s.mut.Lock()
	defer s.mut.Unlock()
	idx, ok := s.indices[name]
	if !ok {
		writeError(w, http.StatusNotFound, "index_not_found_exception", fmt.Sprintf("no such index [%s]", name))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(idx.docs)})
}

type searchRequest struct {
	Size        *int                     `json:"size"`
	From        int                      `json:"from"`
	Sort        []map[string]interface{} `json:"sort"`
	SearchAfter []interface{}            `json:"search_after"`
	// either a bool or the number of hits up to which the total is exact
	TrackTotalHits interface{} `json:"track_total_hits"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["index"]
	req := searchRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "parse_exception", err.Error())
		return
	}
	size := 10
	if req.Size != nil {
		size = *req.Size
	}

	s.mut.Lock()
	defer s.mut.Unlock()
	idx, ok := s.indices[name]
	if !ok {
		writeError(w, http.StatusNotFound, "index_not_found_exception", fmt.Sprintf("no such index [%s]", name))
		return
	}
	if req.From+size > idx.maxResultWindow {
		writeError(w, http.StatusBadRequest, "illegal_argument_exception",
			fmt.Sprintf("Result window is too large, from + size must be less than or equal to: [%d] but was [%d].", idx.maxResultWindow, req.From+size))
		return
	}
	if len(req.SearchAfter) != 0 && req.From > 0 {
		writeError(w, http.StatusBadRequest, "illegal_argument_exception", "`from` parameter must be set to 0 when `search_after` is used.")
		return
	}

	ids := append([]string{}, idx.order...)
	field, desc, sorted := sortSpec(req.Sort)
	if sorted {
		sort.SliceStable(ids, func(a, b int) bool {
			va, vb := numericValue(idx.docs[ids[a]][field]), numericValue(idx.docs[ids[b]][field])
			if desc {
				return va > vb
			}
			return va < vb
		})
	}

	if len(req.SearchAfter) != 0 {
		if !sorted {
			writeError(w, http.StatusBadRequest, "illegal_argument_exception", "search_after requires a sort")
			return
		}
		cursor := numericValue(req.SearchAfter[0])
		filtered := make([]string, 0, len(ids))
		for _, id := range ids {
			v := numericValue(idx.docs[id][field])
			if (!desc && v > cursor) || (desc && v < cursor) {
				filtered = append(filtered, id)
			}
		}
		ids = filtered
	}

	hits := make([]map[string]interface{}, 0, size)
	for i := req.From; i < len(ids) && len(hits) < size; i++ {
		hit := map[string]interface{}{
			"_index":  name,
			"_id":     ids[i],
			"_source": idx.docs[ids[i]],
		}
		if sorted {
			hit["_score"] = nil
			hit["sort"] = []interface{}{idx.docs[ids[i]][field]}
		} else {
			hit["_score"] = 1.0
		}
		hits = append(hits, hit)
	}

	var total interface{} = len(idx.docs)
	if s.typeless() {
		total = totalHits(len(idx.docs), req.TrackTotalHits)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"took":      1,
		"timed_out": false,
		"hits": map[string]interface{}{
			"total": total,
			"hits":  hits,
		},
	})
}

// totalHits returns the total object of typeless servers.
// The total is only exact up to 10000 documents unless the request tracks all hits.
func totalHits(docs int, track interface{}) map[string]interface{} {
	limit := defaultTrackTotalHits
	switch t := track.(type) {
	case bool:
		if t {
			limit = docs
		}
	case float64:
		limit = int(t)
	}
	if docs > limit {
		return map[string]interface{}{"value": limit, "relation": "gte"}
	}
	return map[string]interface{}{"value": docs, "relation": "eq"}
}

// sortSpec returns the first sort field and whether it is sorted descending.
func sortSpec(specs []map[string]interface{}) (field string, desc bool, ok bool) {
	if len(specs) == 0 {
		return "", false, false
	}
	for f, order := range specs[0] {
		switch o := order.(type) {
		case string:
			return f, o == "desc", true
		case map[string]interface{}:
			return f, o["order"] == "desc", true
		default:
			return f, false, true
		}
	}
	return "", false, false
}

func numericValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}

func maxResultWindowSetting(body map[string]interface{}) int {
	settings, ok := body["settings"].(map[string]interface{})
	if !ok {
		return defaultMaxResultWindow
	}
	if indexSettings, ok := settings["index"].(map[string]interface{}); ok {
		settings = indexSettings
	}
	return int(numericValue(settings["max_result_window"]))
}

func decodeBody(r *http.Request, obj interface{}) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, obj)
}

func writeError(w http.ResponseWriter, status int, errType, reason string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"type":   errType,
			"reason": reason,
		},
		"status": status,
	})
}

func writeJSON(w http.ResponseWriter, status int, obj interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(obj)
}
