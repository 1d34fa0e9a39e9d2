package generator

import (
	"bytes"
	"context"
	"fmt"

	"detour/services/router-svc/internal/service"
)

// TextGenerator консольный формат:
//
//	Shortest path: 1 --> 2(C) --> 3
//	Shortest distance: 5
//
//	Minimum detour path: 1 --> 2(C) --> 3
//	Minimum detour distance: 5
type TextGenerator struct {
	BaseGenerator
}

// NewTextGenerator создаёт новый генератор
func NewTextGenerator() *TextGenerator {
	return &TextGenerator{}
}

// Format возвращает формат генератора
func (g *TextGenerator) Format() Format {
	return FormatText
}

// Generate генерирует текстовый результат
func (g *TextGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	var buf bytes.Buffer
	batch := len(data.Reports) > 1

	for i, r := range data.Reports {
		if r == nil {
			continue
		}
		if i > 0 {
			buf.WriteString("\n")
		}
		if batch {
			fmt.Fprintf(&buf, "Query %d -> %d\n", r.Source, r.Target)
		}
		if r.Err != nil {
			fmt.Fprintf(&buf, "Error: %s\n", g.ErrorText(r.Err))
			continue
		}

		g.writeResult(&buf, data, r, r.Shortest)
		buf.WriteString("\n")
		g.writeResult(&buf, data, r, r.Detour)
	}

	return buf.Bytes(), nil
}

func (g *TextGenerator) writeResult(buf *bytes.Buffer, data *ReportData, r *service.Report, res service.Result) {
	label := g.Label(res.Kind)
	fmt.Fprintf(buf, "%s path: %s\n", label, g.FormatPath(res, data.Customers, r.Source, r.Target))
	if res.Reachable() {
		fmt.Fprintf(buf, "%s distance: %d\n", label, res.Path.Distance)
	}
}
