// services/router-svc/internal/generator/pdf.go
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"detour/pkg/apperror"
)

// maxPDFRows ограничивает таблицу маршрутов в PDF
const maxPDFRows = 200

// PDFGenerator генератор PDF отчёта
type PDFGenerator struct {
	BaseGenerator
}

// NewPDFGenerator создаёт новый генератор
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

// Format возвращает формат генератора
func (g *PDFGenerator) Format() Format {
	return FormatPDF
}

// Стили
var (
	primaryColor   = &props.Color{Red: 52, Green: 152, Blue: 219}  // #3498db
	headerBgColor  = &props.Color{Red: 44, Green: 62, Blue: 80}    // #2c3e50
	successColor   = &props.Color{Red: 39, Green: 174, Blue: 96}   // #27ae60
	dangerColor    = &props.Color{Red: 231, Green: 76, Blue: 60}   // #e74c3c
	lightGrayColor = &props.Color{Red: 236, Green: 240, Blue: 241} // #ecf0f1
	darkGrayColor  = &props.Color{Red: 127, Green: 140, Blue: 141} // #7f8c8d

	titleStyle = props.Text{
		Size:  22,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: headerBgColor,
	}

	h2Style = props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Color: headerBgColor,
		Top:   4,
	}

	smallStyle = props.Text{
		Size:  8,
		Color: darkGrayColor,
	}

	metricValueStyle = props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: primaryColor,
	}

	metricLabelStyle = props.Text{
		Size:  9,
		Align: align.Center,
		Color: darkGrayColor,
	}

	tableHeaderStyle = &props.Cell{
		BackgroundColor: primaryColor,
	}

	tableHeaderTextStyle = props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		Align: align.Center,
	}

	tableCellStyle = &props.Cell{
		BorderType:  border.Bottom,
		BorderColor: lightGrayColor,
	}

	tableCellTextStyle = props.Text{
		Size:  8,
		Align: align.Center,
	}
)

// Generate генерирует PDF: сводка по запросам и таблица маршрутов.
// Page streams are left uncompressed so the text stays searchable.
func (g *PDFGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithCompression(false).
		Build()

	m := maroto.New(cfg)

	g.addHeader(m, data)
	g.addSummary(m, data)
	g.addRoutes(m, data)
	g.addFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func (g *PDFGenerator) addHeader(m core.Maroto, data *ReportData) {
	generatedAt := data.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	m.AddRow(14,
		text.NewCol(12, "Route Report", titleStyle),
	)
	m.AddRow(5,
		line.NewCol(12),
	)
	m.AddRow(6,
		text.NewCol(6, fmt.Sprintf("Network: %s", data.NetworkHash), smallStyle),
		text.NewCol(6, fmt.Sprintf("Generated: %s", g.FormatTimestamp(generatedAt)),
			props.Text{Size: 8, Color: darkGrayColor, Align: align.Right}),
	)
	m.AddRow(6)
}

func (g *PDFGenerator) addSummary(m core.Maroto, data *ReportData) {
	rows := g.Rows(data)
	reachable := 0
	for _, row := range rows {
		if row.Result.Reachable() {
			reachable++
		}
	}

	g.addSection(m, "Summary")
	g.addMetricCards(m, []metricCard{
		{Label: "Queries", Value: fmt.Sprintf("%d", len(data.Reports))},
		{Label: "Customers", Value: fmt.Sprintf("%d", data.Customers.Len())},
		{Label: "Routes Found", Value: fmt.Sprintf("%d", reachable)},
		{Label: "Routes Missing", Value: fmt.Sprintf("%d", len(rows)-reachable)},
	})
}

func (g *PDFGenerator) addRoutes(m core.Maroto, data *ReportData) {
	rows := g.Rows(data)
	if len(rows) == 0 {
		return
	}

	g.addSection(m, "Routes")
	m.AddRow(8,
		text.NewCol(1, "From", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(1, "To", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(3, "Kind", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Distance", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(5, "Path", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
	)

	for i, row := range rows {
		if i >= maxPDFRows {
			m.AddRow(6,
				text.NewCol(12, fmt.Sprintf("... and %d more rows", len(rows)-maxPDFRows), smallStyle),
			)
			break
		}

		res := row.Result
		distance, path := "-", g.FormatPath(res, data.Customers, row.Source, row.Target)
		statusStyle := tableCellTextStyle
		switch {
		case res.Reachable():
			distance = fmt.Sprintf("%d", res.Path.Distance)
			statusStyle.Color = successColor
		case res.Err != nil && !apperror.IsWarning(res.Err):
			path = g.ErrorText(res.Err)
			statusStyle.Color = dangerColor
		}

		m.AddRow(6,
			text.NewCol(1, fmt.Sprintf("%d", row.Source), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(1, fmt.Sprintf("%d", row.Target), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(3, row.Label, tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, distance, statusStyle).WithStyle(tableCellStyle),
			text.NewCol(5, path, tableCellTextStyle).WithStyle(tableCellStyle),
		)
	}
}

type metricCard struct {
	Label string
	Value string
}

func (g *PDFGenerator) addMetricCards(m core.Maroto, cards []metricCard) {
	colSize := 12 / len(cards)

	var cols []core.Col
	for _, card := range cards {
		cols = append(cols,
			col.New(colSize).Add(
				text.New(card.Value, metricValueStyle),
				text.New(card.Label, metricLabelStyle),
			),
		)
	}

	m.AddRow(18, cols...)
}

func (g *PDFGenerator) addSection(m core.Maroto, title string) {
	m.AddRow(10,
		text.NewCol(12, title, h2Style),
	)
	m.AddRow(2,
		line.NewCol(12, props.Line{Color: primaryColor}),
	)
	m.AddRow(4)
}

func (g *PDFGenerator) addFooter(m core.Maroto) {
	m.AddRow(10)
	m.AddRow(2,
		line.NewCol(12, props.Line{Color: lightGrayColor}),
	)
	m.AddRow(6,
		text.NewCol(12, "Generated by router-svc",
			props.Text{Size: 8, Color: darkGrayColor, Align: align.Center}),
	)
}
