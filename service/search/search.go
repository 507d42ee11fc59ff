// Package search maintains an optional Elasticsearch index over tools.
// When ELASTICSEARCH_HOST is unset the service is disabled and listing
// falls back to SQL LIKE filtering.
package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	toolEntity "toolledger.GO/model/entity/tool"
)

var (
	serviceInstance *Service
	serviceOnce     sync.Once
)

// GetService returns the singleton search Service.
func GetService() *Service {
	serviceOnce.Do(func() {
		serviceInstance = NewService()
	})
	return serviceInstance
}

type Service struct {
	client *elasticsearch.Client
	index  string
}

func NewService() *Service {
	host := os.Getenv("ELASTICSEARCH_HOST")
	prefix := os.Getenv("ELASTICSEARCH_INDEX_PREFIX")
	if prefix == "" {
		prefix = "toolledger"
	}
	index := prefix + "_tools"

	if host == "" {
		return &Service{index: index}
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		log.Printf("search: client init failed, search disabled: %v", err)
		return &Service{index: index}
	}
	return &Service{client: client, index: index}
}

// Enabled reports whether an Elasticsearch backend is configured.
func (s *Service) Enabled() bool {
	return s.client != nil
}

type toolDoc struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Quantity int64  `json:"quantity"`
}

// IndexTool upserts one tool document. Best effort: indexing failures are
// logged, never surfaced to the caller.
func (s *Service) IndexTool(t *toolEntity.Tool) {
	if !s.Enabled() || t == nil {
		return
	}
	body, err := json.Marshal(toolDoc{ID: t.ID, Name: t.Name, Location: t.Location, Quantity: t.Quantity})
	if err != nil {
		return
	}
	res, err := s.client.Index(s.index, bytes.NewReader(body),
		s.client.Index.WithDocumentID(strconv.FormatUint(uint64(t.ID), 10)))
	if err != nil {
		log.Printf("search: index tool %d: %v", t.ID, err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Printf("search: index tool %d: %s", t.ID, res.Status())
	}
}

// DeleteTool removes one tool document. Best effort.
func (s *Service) DeleteTool(id uint) {
	if !s.Enabled() {
		return
	}
	res, err := s.client.Delete(s.index, strconv.FormatUint(uint64(id), 10))
	if err != nil {
		log.Printf("search: delete tool %d: %v", id, err)
		return
	}
	res.Body.Close()
}

// SearchIDs runs a match query over name/location and returns matching tool
// IDs in relevance order plus the total hit count.
func (s *Service) SearchIDs(query string, limit, offset int) ([]uint, int64, error) {
	if !s.Enabled() {
		return nil, 0, fmt.Errorf("search disabled")
	}

	q := map[string]interface{}{
		"from": offset,
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "location"},
			},
		},
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, 0, err
	}

	res, err := s.client.Search(
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source toolDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, parsed.Hits.Total.Value, nil
}
