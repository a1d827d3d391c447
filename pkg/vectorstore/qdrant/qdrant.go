package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"trustlens-be/internal/entity"
	"trustlens-be/internal/repository/contract"

	"github.com/google/uuid"
)

// Storage is a minimal REST client to Qdrant implementing the clause
// repository contract. It assumes cosine distance and creates the collection
// if missing.
type Storage struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// EnsureCollection creates the collection when it does not exist yet.
// Qdrant answers 200 for an existing collection with the same schema.
func (s *Storage) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

func (s *Storage) UpsertBulk(ctx context.Context, clauses []entity.Clause, vectors [][]float32) error {
	if len(clauses) != len(vectors) {
		return errors.New("clauses and vectors length mismatch")
	}
	if len(clauses) == 0 {
		return nil
	}

	points := make([]map[string]any, len(clauses))
	for i := range clauses {
		points[i] = map[string]any{
			"id":     uuid.NewString(),
			"vector": vectors[i],
			"payload": map[string]any{
				"clause_id":    clauses[i].ClauseId,
				"text":         clauses[i].Text,
				"section_type": clauses[i].SectionType,
				"doc_id":       clauses[i].DocId,
				"version":      clauses[i].Version,
				"doc_type":     clauses[i].DocType,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

func (s *Storage) QueryPrior(ctx context.Context, vector []float32, docId string, version int, topK int) ([]contract.ScoredClause, error) {
	if topK <= 0 {
		topK = 1
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": "doc_id", "match": map[string]any{"value": docId}},
				{"key": "version", "range": map[string]any{"lt": version}},
			},
		},
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}

	scored := make([]contract.ScoredClause, 0, len(resp.Result))
	for _, r := range resp.Result {
		clause := &entity.Clause{}
		if v, ok := r.Payload["clause_id"].(string); ok {
			clause.ClauseId = v
		}
		if v, ok := r.Payload["text"].(string); ok {
			clause.Text = v
		}
		if v, ok := r.Payload["section_type"].(string); ok {
			clause.SectionType = v
		}
		if v, ok := r.Payload["doc_id"].(string); ok {
			clause.DocId = v
		}
		if v, ok := r.Payload["version"].(float64); ok {
			clause.Version = int(v)
		}
		if v, ok := r.Payload["doc_type"].(string); ok {
			clause.DocType = v
		}
		scored = append(scored, contract.ScoredClause{Clause: clause, Similarity: r.Score})
	}
	return scored, nil
}

func (s *Storage) Count(ctx context.Context) (int64, error) {
	var resp struct {
		Result struct {
			Count int64 `json:"count"`
		} `json:"result"`
	}
	err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection), map[string]any{"exact": true}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Result.Count, nil
}

func (s *Storage) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Storage) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
