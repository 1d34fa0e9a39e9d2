package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"detour/pkg/apperror"
	"detour/pkg/cache"
	"detour/pkg/domain"
	"detour/services/router-svc/internal/service"
)

func found(kind string, dist domain.Weight, vertices ...domain.VertexID) service.Result {
	return service.Result{
		Kind:    kind,
		Path:    &domain.Path{Vertices: vertices, Distance: dist},
		Elapsed: 1500 * time.Microsecond,
	}
}

func missing(kind string, source, target domain.VertexID) service.Result {
	return service.Result{Kind: kind, Err: apperror.Unreachable(source, target)}
}

func triangleData() *ReportData {
	return &ReportData{
		Reports: []*service.Report{{
			QueryID:  "q-1",
			Source:   1,
			Target:   3,
			Shortest: found(cache.KindShortest, 5, 1, 2, 3),
			Detour:   found(cache.KindDetour, 5, 1, 2, 3),
		}},
		Customers:   domain.NewCustomerSet(2),
		NetworkHash: "abc",
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func batchData() *ReportData {
	data := triangleData()
	data.Reports = append(data.Reports,
		&service.Report{
			QueryID:  "q-2",
			Source:   1,
			Target:   4,
			Shortest: missing(cache.KindShortest, 1, 4),
			Detour:   missing(cache.KindDetour, 1, 4),
		},
		&service.Report{
			QueryID:  "q-3",
			Source:   1,
			Target:   9,
			Shortest: service.Result{Kind: cache.KindShortest, Err: apperror.OutOfRangeTarget(9, 4)},
			Err:      apperror.OutOfRangeTarget(9, 4),
		},
	)
	return data
}

func TestNew(t *testing.T) {
	tests := []struct {
		format string
		want   Format
	}{
		{"", FormatText},
		{"text", FormatText},
		{"JSON", FormatJSON},
		{"csv", FormatCSV},
		{"xlsx", FormatXLSX},
		{"PDF", FormatPDF},
	}

	for _, tt := range tests {
		g, err := New(tt.format)
		require.NoError(t, err, tt.format)
		assert.Equal(t, tt.want, g.Format())
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("docx")

	assert.True(t, apperror.Is(err, apperror.CodeInvalidArgument))
}

func TestBaseGenerator_Rows(t *testing.T) {
	bg := &BaseGenerator{}

	rows := bg.Rows(batchData())

	require.Len(t, rows, 5, "the failed query only ran the shortest search")
	assert.Equal(t, "Shortest", rows[0].Label)
	assert.Equal(t, "Minimum detour", rows[1].Label)
	assert.Equal(t, "q-3", rows[4].QueryID)
}

func TestBaseGenerator_FormatPath(t *testing.T) {
	bg := &BaseGenerator{}
	customers := domain.NewCustomerSet(2)

	assert.Equal(t, "1 --> 2(C) --> 3", bg.FormatPath(found(cache.KindShortest, 5, 1, 2, 3), customers, 1, 3))
	assert.Equal(t, "No path from 1 to 4", bg.FormatPath(missing(cache.KindShortest, 1, 4), customers, 1, 4))
}

func TestBaseGenerator_ErrorText(t *testing.T) {
	bg := &BaseGenerator{}

	assert.Empty(t, bg.ErrorText(nil))
	assert.Equal(t, "UNREACHABLE_NODE: no path from 1 to 4", bg.ErrorText(apperror.Unreachable(1, 4)))
	assert.Equal(t, "boom", bg.ErrorText(errors.New("boom")))
}

func TestColName(t *testing.T) {
	assert.Equal(t, "A", ColName(0))
	assert.Equal(t, "Z", ColName(25))
	assert.Equal(t, "AA", ColName(26))
	assert.Equal(t, "K1", CellByIndex(10, 1))
}

func TestAllGenerators_EmptyData(t *testing.T) {
	data := &ReportData{Customers: domain.NewCustomerSet()}

	for _, format := range []string{"text", "json", "csv", "xlsx", "pdf"} {
		g, err := New(format)
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), data)
		assert.NoError(t, err, format)
	}
}
