// services/router-svc/internal/generator/excel.go
package generator

import (
	"bytes"
	"context"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	routesSheet  = "Routes"
	summarySheet = "Summary"
)

// ExcelGenerator генератор Excel книги
type ExcelGenerator struct {
	BaseGenerator
}

// NewExcelGenerator создаёт новый генератор
func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

// Format возвращает формат генератора
func (g *ExcelGenerator) Format() Format {
	return FormatXLSX
}

// Generate генерирует Excel книгу с листами Summary и Routes
func (g *ExcelGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(routesSheet); err != nil {
		return nil, err
	}
	// Удаляем дефолтный лист
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	g.writeSummary(f, data, headerStyle)
	g.writeRoutes(f, data, headerStyle)

	// Записываем в буфер
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *ExcelGenerator) writeSummary(f *excelize.File, data *ReportData, headerStyle int) {
	generatedAt := data.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	f.SetCellValue(summarySheet, "A1", "Route Report")
	f.MergeCell(summarySheet, "A1", "B1")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)

	reachable := 0
	rows := g.Rows(data)
	for _, row := range rows {
		if row.Result.Reachable() {
			reachable++
		}
	}

	items := []struct {
		name  string
		value any
	}{
		{"Generated At", g.FormatTimestamp(generatedAt)},
		{"Network Hash", data.NetworkHash},
		{"Customers", data.Customers.Len()},
		{"Queries", len(data.Reports)},
		{"Routes Found", reachable},
		{"Routes Missing", len(rows) - reachable},
	}
	for i, item := range items {
		row := i + 3
		f.SetCellValue(summarySheet, Cell("A", row), item.name)
		f.SetCellValue(summarySheet, Cell("B", row), item.value)
	}

	f.SetColWidth(summarySheet, "A", "A", 18)
	f.SetColWidth(summarySheet, "B", "B", 36)
}

func (g *ExcelGenerator) writeRoutes(f *excelize.File, data *ReportData, headerStyle int) {
	headers := []string{"Query ID", "Source", "Target", "Kind", "Reachable", "Distance", "Path", "Vertices", "Cache Hit", "Elapsed (ms)", "Error"}
	for i, h := range headers {
		f.SetCellValue(routesSheet, CellByIndex(i, 1), h)
	}
	f.SetCellStyle(routesSheet, "A1", CellByIndex(len(headers)-1, 1), headerStyle)

	for i, row := range g.Rows(data) {
		r := i + 2
		res := row.Result

		f.SetCellValue(routesSheet, Cell("A", r), row.QueryID)
		f.SetCellValue(routesSheet, Cell("B", r), row.Source)
		f.SetCellValue(routesSheet, Cell("C", r), row.Target)
		f.SetCellValue(routesSheet, Cell("D", r), row.Label)
		f.SetCellValue(routesSheet, Cell("E", r), res.Reachable())
		if res.Reachable() {
			f.SetCellValue(routesSheet, Cell("F", r), res.Path.Distance)
		}
		f.SetCellValue(routesSheet, Cell("G", r), g.FormatPath(res, data.Customers, row.Source, row.Target))
		f.SetCellValue(routesSheet, Cell("H", r), res.Path.Len())
		f.SetCellValue(routesSheet, Cell("I", r), res.CacheHit)
		f.SetCellValue(routesSheet, Cell("J", r), float64(res.Elapsed.Microseconds())/1000)
		f.SetCellValue(routesSheet, Cell("K", r), g.ErrorText(res.Err))
	}

	f.SetColWidth(routesSheet, "A", "A", 38)
	f.SetColWidth(routesSheet, "G", "G", 40)
}
