// services/router-svc/internal/generator/generator.go
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"detour/pkg/apperror"
	"detour/pkg/cache"
	"detour/pkg/domain"
	"detour/services/router-svc/internal/service"
)

// Format формат вывода результата
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ReportData данные для генерации результата
type ReportData struct {
	Reports     []*service.Report
	Customers   domain.CustomerSet
	NetworkHash string
	GeneratedAt time.Time
}

// Generator интерфейс генератора результата
type Generator interface {
	Generate(ctx context.Context, data *ReportData) ([]byte, error)
	Format() Format
}

// New возвращает генератор для формата
func New(format string) (Generator, error) {
	switch Format(strings.ToLower(format)) {
	case FormatText, "":
		return NewTextGenerator(), nil
	case FormatJSON:
		return NewJSONGenerator(), nil
	case FormatCSV:
		return NewCSVGenerator(), nil
	case FormatXLSX:
		return NewExcelGenerator(), nil
	case FormatPDF:
		return NewPDFGenerator(), nil
	default:
		return nil, apperror.NewWithField(apperror.CodeInvalidArgument,
			fmt.Sprintf("unknown output format %q", format), "format")
	}
}

// Row одна строка табличного вывода: один вид запроса одной пары
type Row struct {
	QueryID string
	Source  domain.VertexID
	Target  domain.VertexID
	Kind    string
	Label   string
	Result  service.Result
}

// BaseGenerator базовые утилиты для генераторов
type BaseGenerator struct{}

// Rows разворачивает отчёты в строки; невыполненные запросы пропускаются
func (b *BaseGenerator) Rows(data *ReportData) []Row {
	rows := make([]Row, 0, 2*len(data.Reports))
	for _, r := range data.Reports {
		if r == nil {
			continue
		}
		for _, res := range []service.Result{r.Shortest, r.Detour} {
			if res.Kind == "" {
				continue
			}
			rows = append(rows, Row{
				QueryID: r.QueryID,
				Source:  r.Source,
				Target:  r.Target,
				Kind:    res.Kind,
				Label:   b.Label(res.Kind),
				Result:  res,
			})
		}
	}
	return rows
}

// Label возвращает подпись вида запроса
func (b *BaseGenerator) Label(kind string) string {
	switch kind {
	case cache.KindShortest:
		return "Shortest"
	case cache.KindDetour:
		return "Minimum detour"
	default:
		return kind
	}
}

// FormatPath форматирует путь с пометкой клиентов "(C)"
func (b *BaseGenerator) FormatPath(res service.Result, customers domain.CustomerSet, source, target domain.VertexID) string {
	if !res.Reachable() {
		return fmt.Sprintf("No path from %d to %d", source, target)
	}
	return res.Path.Format(customers)
}

// ErrorText текст ошибки результата, пусто для найденного пути
func (b *BaseGenerator) ErrorText(err error) string {
	if err == nil {
		return ""
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return fmt.Sprintf("%s: %s", appErr.Code, appErr.Message)
	}
	return err.Error()
}

// FormatDuration форматирует длительность
func (b *BaseGenerator) FormatDuration(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	if ms < 1000 {
		return fmt.Sprintf("%.3f ms", ms)
	}
	return fmt.Sprintf("%.2f s", ms/1000)
}

// FormatTimestamp форматирует время
func (b *BaseGenerator) FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// ColName преобразует индекс колонки в буквенное обозначение (0 -> A, 25 -> Z, 26 -> AA)
func ColName(index int) string {
	result := ""
	for {
		result = string(rune('A'+index%26)) + result
		index = index/26 - 1
		if index < 0 {
			break
		}
	}
	return result
}

// Cell возвращает адрес ячейки
func Cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// CellByIndex возвращает адрес ячейки по индексам
func CellByIndex(colIndex, rowIndex int) string {
	return fmt.Sprintf("%s%d", ColName(colIndex), rowIndex)
}
