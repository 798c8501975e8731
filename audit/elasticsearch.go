// audit/elasticsearch.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
)

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":               {"type": "keyword"},
      "transactionId":    {"type": "keyword"},
      "status":           {"type": "keyword"},
      "message":          {"type": "text"},
      "ruleIds":          {"type": "keyword"},
      "triggeredRules":   {"type": "object", "enabled": false},
      "evaluatedAt":      {"type": "date_nanos"},
      "evaluatedAtNanos": {"type": "long"},
      "transaction":      {"type": "object", "enabled": false}
    }
  }
}`

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository connects to esURL and makes sure the audit
// index exists with its mapping.
func NewElasticsearchRepository(ctx context.Context, esURL, index string) (*ElasticsearchRepository, error) {
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	if err != nil {
		return nil, err
	}
	repo := &ElasticsearchRepository{esClient: esClient, index: index}
	if err := repo.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ElasticsearchRepository) ensureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{r.index}}.Do(ctx, r.esClient)
	if err != nil {
		return fmt.Errorf("check audit index: %w", err)
	}
	exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{
		Index: r.index,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, r.esClient)
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("error creating audit index: %s", res.String())
	}
	logger.Info("Created audit index", zap.String("index", r.index))
	return nil
}

// Append indexes the entry with op_type=create so an existing document is
// never overwritten.
func (r *ElasticsearchRepository) Append(ctx context.Context, entry model.AuditEntry) error {
	data, err := json.Marshal(NewDocument(entry))
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: entry.ID,
		Body:       bytes.NewReader(data),
		OpType:     "create",
		Refresh:    "true",
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing audit entry: %s", res.String())
	}
	return nil
}

func (r *ElasticsearchRepository) Page(ctx context.Context, filter model.AuditFilter, after *Cursor, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	query := map[string]any{
		"size":  limit,
		"query": map[string]any{"bool": map[string]any{"filter": searchFilters(filter)}},
		"sort": []any{
			map[string]any{"evaluatedAtNanos": "desc"},
			map[string]any{"id": "desc"},
		},
	}
	if after != nil {
		query["search_after"] = []any{after.EvaluatedAt.UnixNano(), after.ID}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching audit entries: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}

	entries := make([]model.AuditEntry, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		entries = append(entries, hit.Source.Entry())
	}
	return entries, nil
}

func (r *ElasticsearchRepository) Get(ctx context.Context, id string) (*model.AuditEntry, error) {
	res, err := esapi.GetRequest{Index: r.index, DocumentID: id}.Do(ctx, r.esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, rm_errors.ErrAuditEntryNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("error getting audit entry: %s", res.String())
	}

	var doc struct {
		Source Document `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, err
	}
	entry := doc.Source.Entry()
	return &entry, nil
}

func searchFilters(filter model.AuditFilter) []any {
	filters := []any{}
	if filter.TransactionID != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"transactionId": filter.TransactionID}})
	}
	if filter.RuleID != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"ruleIds": filter.RuleID}})
	}
	if filter.Result != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"status": string(filter.Result)}})
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		bounds := map[string]any{}
		if !filter.From.IsZero() {
			bounds["gte"] = filter.From.UnixNano()
		}
		if !filter.To.IsZero() {
			bounds["lte"] = filter.To.UnixNano()
		}
		filters = append(filters, map[string]any{"range": map[string]any{"evaluatedAtNanos": bounds}})
	}
	return filters
}
