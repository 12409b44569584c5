// Package search keeps an Elasticsearch projection of models for free-text
// lookup inside a store.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
)

const maxSearchSize = 100

// modelMapping keeps ids and enums exact so the store filter is a term match.
const modelMapping = `{
  "mappings": {
    "properties": {
      "id":                 {"type": "keyword"},
      "store_id":           {"type": "keyword"},
      "name":               {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description":        {"type": "text"},
      "prompt":             {"type": "text"},
      "status":             {"type": "keyword"},
      "gender":             {"type": "keyword"},
      "age_range":          {"type": "keyword"},
      "ethnicity":          {"type": "keyword"},
      "body_type":          {"type": "keyword"},
      "product_categories": {"type": "keyword"},
      "updated_at":         {"type": "date"}
    }
  }
}`

type modelDocument struct {
	ID                string    `json:"id"`
	StoreID           string    `json:"store_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Prompt            string    `json:"prompt,omitempty"`
	Status            string    `json:"status"`
	Gender            string    `json:"gender"`
	AgeRange          string    `json:"age_range"`
	Ethnicity         string    `json:"ethnicity"`
	BodyType          string    `json:"body_type"`
	ProductCategories []string  `json:"product_categories"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toDocument(m *model.Model) modelDocument {
	r := model.ToPersistence(m)
	doc := modelDocument{
		ID:                r.ID,
		StoreID:           r.StoreID,
		Name:              r.Name,
		Status:            r.Status,
		Gender:            r.Gender,
		AgeRange:          r.AgeRange,
		Ethnicity:         r.Ethnicity,
		BodyType:          r.BodyType,
		ProductCategories: r.ProductCategories,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.Description != nil {
		doc.Description = *r.Description
	}
	if r.Prompt != nil {
		doc.Prompt = *r.Prompt
	}
	return doc
}

// ModelIndex implements application.ModelIndexer on one index.
type ModelIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewModelIndex(es *elasticsearch.Client, index string) *ModelIndex {
	return &ModelIndex{es: es, index: index}
}

// EnsureIndex creates the index with its mapping unless it already exists.
func (x *ModelIndex) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("check index %s: %w", x.index, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(modelMapping)}.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", x.index, err)
	}
	defer res.Body.Close()
	// a concurrent worker may have created it first
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", x.index, res.String())
	}
	return nil
}

// Index upserts m. Deleted models are removed instead.
func (x *ModelIndex) Index(ctx context.Context, m *model.Model) error {
	if m.IsDeleted() {
		return x.Remove(ctx, m.ID().Value())
	}
	body, err := json.Marshal(toDocument(m))
	if err != nil {
		return err
	}
	res, err := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: m.ID().Value(),
		Body:       bytes.NewReader(body),
	}.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("index model %s: %w", m.ID().Value(), err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index model %s: %s", m.ID().Value(), res.String())
	}
	return nil
}

// Remove deletes the document; a missing document is not an error.
func (x *ModelIndex) Remove(ctx context.Context, modelID string) error {
	res, err := esapi.DeleteRequest{Index: x.index, DocumentID: modelID}.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("remove model %s: %w", modelID, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove model %s: %s", modelID, res.String())
	}
	return nil
}

func (x *ModelIndex) Search(ctx context.Context, storeID, query string, size int) ([]application.ModelHit, error) {
	body, err := searchBody(storeID, query, size)
	if err != nil {
		return nil, err
	}
	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search models: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return []application.ModelHit{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("search models: %s", res.String())
	}
	return parseHits(res.Body)
}

// searchBody matches query against the text fields inside one store. An
// empty query lists the store's models by recency.
func searchBody(storeID, query string, size int) ([]byte, error) {
	if size <= 0 || size > maxSearchSize {
		size = maxSearchSize
	}
	must := []any{map[string]any{"match_all": map[string]any{}}}
	if query != "" {
		must = []any{map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^3", "description", "prompt", "product_categories"},
				"fuzziness": "AUTO",
			},
		}}
	}
	return json.Marshal(map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": []any{map[string]any{"term": map[string]any{"store_id": storeID}}},
			},
		},
		"sort": []any{"_score", map[string]any{"updated_at": "desc"}},
	})
}

func parseHits(r io.Reader) ([]application.ModelHit, error) {
	var resp struct {
		Hits struct {
			Hits []struct {
				Score  float64       `json:"_score"`
				Source modelDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	out := make([]application.ModelHit, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		out = append(out, application.ModelHit{
			ID:      h.Source.ID,
			StoreID: h.Source.StoreID,
			Name:    h.Source.Name,
			Status:  h.Source.Status,
			Score:   h.Score,
		})
	}
	return out, nil
}

var _ application.ModelIndexer = (*ModelIndex)(nil)
