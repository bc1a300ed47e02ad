// Package search keeps an Elasticsearch index of job postings for full-text
// search. The database stays the source of truth; hits are ids only.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
)

const requestTimeout = 3 * time.Second

type JobIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewJobIndex(es *elasticsearch.Client, index string) *JobIndex {
	return &JobIndex{ES: es, Index: index}
}

type jobDoc struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Category     string    `json:"category"`
	Experience   string    `json:"experience"`
	Requirements string    `json:"requirements"`
	IsActive     bool      `json:"is_active"`
	EmployerID   string    `json:"employer_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// jobMapping keeps the filter fields exact and the text fields analyzed.
const jobMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "title":        {"type": "text"},
      "description":  {"type": "text"},
      "company":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "location":     {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "type":         {"type": "keyword"},
      "category":     {"type": "keyword"},
      "experience":   {"type": "keyword"},
      "requirements": {"type": "text"},
      "is_active":    {"type": "boolean"},
      "employer_id":  {"type": "keyword"},
      "created_at":   {"type": "date"}
    }
  }
}`

// Ensure creates the index with the job mapping when it is missing.
func (x *JobIndex) Ensure(ctx context.Context) (bool, error) {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return helpers.EnsureIndex(c, x.ES, x.Index, strings.NewReader(jobMapping))
}

func docFor(j *entity.Job) jobDoc {
	return jobDoc{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		Company:      j.Company,
		Location:     j.Location,
		Type:         string(j.Type),
		Category:     j.Category,
		Experience:   j.Experience,
		Requirements: j.Requirements,
		IsActive:     j.IsActive,
		EmployerID:   j.EmployerID,
		CreatedAt:    j.CreatedAt,
	}
}

func (x *JobIndex) Put(ctx context.Context, j *entity.Job) error {
	b, err := json.Marshal(docFor(j))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: j.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index job %s: %s", j.ID, res.Status())
	}
	return nil
}

func (x *JobIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// a missing document is already the desired state
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete job %s: %s", id, res.Status())
	}
	return nil
}

// Query builds the search body: multi_match over the text fields, limited
// to active postings.
func Query(q string, size int) map[string]any {
	return map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^3", "company^2", "description", "requirements"},
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"is_active": true}},
				},
			},
		},
		"_source": false,
	}
}

// Search returns matching job ids in relevance order.
func (x *JobIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	b, err := json.Marshal(Query(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
