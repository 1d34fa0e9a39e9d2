package generator

import (
	"context"
	"encoding/json"
	"time"

	"detour/pkg/domain"
	"detour/services/router-svc/internal/service"
)

// JSONGenerator генератор JSON результата
type JSONGenerator struct {
	BaseGenerator
}

// NewJSONGenerator создаёт новый генератор
func NewJSONGenerator() *JSONGenerator {
	return &JSONGenerator{}
}

// Format возвращает формат генератора
func (g *JSONGenerator) Format() Format {
	return FormatJSON
}

// JSONReport структура JSON документа
type JSONReport struct {
	Metadata JSONMetadata `json:"metadata"`
	Queries  []*JSONQuery `json:"queries"`
}

type JSONMetadata struct {
	GeneratedAt string            `json:"generatedAt"`
	NetworkHash string            `json:"networkHash,omitempty"`
	Customers   []domain.VertexID `json:"customers"`
	QueryCount  int               `json:"queryCount"`
}

type JSONQuery struct {
	QueryID  string     `json:"queryId"`
	Source   int        `json:"source"`
	Target   int        `json:"target"`
	Shortest *JSONRoute `json:"shortest,omitempty"`
	Detour   *JSONRoute `json:"detour,omitempty"`
	Error    string     `json:"error,omitempty"`
}

type JSONRoute struct {
	Reachable bool              `json:"reachable"`
	Vertices  []domain.VertexID `json:"vertices,omitempty"`
	Distance  *domain.Weight    `json:"distance,omitempty"`
	CacheHit  bool              `json:"cacheHit"`
	ElapsedMs float64           `json:"elapsedMs"`
	Error     string            `json:"error,omitempty"`
}

// Generate генерирует JSON документ
func (g *JSONGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	generatedAt := data.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	customers := data.Customers.Sorted()
	if customers == nil {
		customers = []domain.VertexID{}
	}

	doc := JSONReport{
		Metadata: JSONMetadata{
			GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
			NetworkHash: data.NetworkHash,
			Customers:   customers,
			QueryCount:  len(data.Reports),
		},
		Queries: make([]*JSONQuery, 0, len(data.Reports)),
	}

	for _, r := range data.Reports {
		if r == nil {
			continue
		}
		q := &JSONQuery{
			QueryID: r.QueryID,
			Source:  r.Source,
			Target:  r.Target,
			Error:   g.ErrorText(r.Err),
		}
		if r.Shortest.Kind != "" {
			q.Shortest = g.route(r.Shortest)
		}
		if r.Detour.Kind != "" {
			q.Detour = g.route(r.Detour)
		}
		doc.Queries = append(doc.Queries, q)
	}

	return json.MarshalIndent(doc, "", "  ")
}

func (g *JSONGenerator) route(res service.Result) *JSONRoute {
	out := &JSONRoute{
		Reachable: res.Reachable(),
		CacheHit:  res.CacheHit,
		ElapsedMs: float64(res.Elapsed.Microseconds()) / 1000,
		Error:     g.ErrorText(res.Err),
	}
	if res.Reachable() {
		dist := res.Path.Distance
		out.Vertices = res.Path.Vertices
		out.Distance = &dist
	}
	return out
}
