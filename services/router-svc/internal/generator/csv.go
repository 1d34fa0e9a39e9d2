package generator

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVGenerator генератор CSV: одна строка на вид запроса
type CSVGenerator struct {
	BaseGenerator
}

// NewCSVGenerator создаёт новый генератор
func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{}
}

// Format возвращает формат генератора
func (g *CSVGenerator) Format() Format {
	return FormatCSV
}

var csvHeader = []string{"query_id", "source", "target", "kind", "reachable", "distance", "path", "cache_hit", "elapsed_ms", "error"}

// csvWriter обёртка для отслеживания ошибок
type csvWriter struct {
	w   *csv.Writer
	err error
}

func (cw *csvWriter) Write(record []string) {
	if cw.err != nil {
		return
	}
	cw.err = cw.w.Write(record)
}

func (cw *csvWriter) Flush() {
	if cw.err != nil {
		return
	}
	cw.w.Flush()
	cw.err = cw.w.Error()
}

// Generate генерирует CSV
func (g *CSVGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	var buf bytes.Buffer
	cw := &csvWriter{w: csv.NewWriter(&buf)}

	cw.Write(csvHeader)
	for _, row := range g.Rows(data) {
		res := row.Result
		distance := ""
		if res.Reachable() {
			distance = strconv.FormatInt(res.Path.Distance, 10)
		}
		cw.Write([]string{
			row.QueryID,
			strconv.Itoa(row.Source),
			strconv.Itoa(row.Target),
			row.Kind,
			strconv.FormatBool(res.Reachable()),
			distance,
			g.FormatPath(res, data.Customers, row.Source, row.Target),
			strconv.FormatBool(res.CacheHit),
			fmt.Sprintf("%.3f", float64(res.Elapsed.Microseconds())/1000),
			g.ErrorText(res.Err),
		})
	}

	cw.Flush()
	if cw.err != nil {
		return nil, fmt.Errorf("csv write error: %w", cw.err)
	}

	return buf.Bytes(), nil
}
