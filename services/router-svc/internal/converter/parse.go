package converter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"detour/pkg/apperror"
	"detour/pkg/domain"
)

// Query пара (source, target) из пакетного файла
type Query struct {
	Source domain.VertexID
	Target domain.VertexID
}

// Option настраивает разбор входных файлов
type Option func(*options)

type options struct {
	maxVertices int
}

// WithMaxVertices ограничивает n в заголовке списка рёбер.
// Values outside [1, domain.MaxVertices] fall back to domain.MaxVertices.
func WithMaxVertices(n int) Option {
	return func(o *options) {
		o.maxVertices = n
	}
}

func newOptions(opts []Option) options {
	o := options{maxVertices: domain.MaxVertices}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxVertices < 1 || o.maxVertices > domain.MaxVertices {
		o.maxVertices = domain.MaxVertices
	}
	return o
}

// ParseEdges читает список рёбер: первая строка n, далее строки "u v w".
// Blank lines are skipped; a missing header is MALFORMED_INPUT.
func ParseEdges(r io.Reader, opts ...Option) (int, []domain.Edge, error) {
	o := newOptions(opts)
	sc := newScanner(r)

	n, headerSeen := 0, false
	var edges []domain.Edge

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if !headerSeen {
			if len(fields) != 1 {
				return 0, nil, malformed(sc.line, "first line must hold the vertex count")
			}
			v, err := strconv.Atoi(fields[0])
			if err != nil || v < 0 {
				return 0, nil, malformed(sc.line, fmt.Sprintf("invalid vertex count %q", fields[0]))
			}
			if v > o.maxVertices {
				return 0, nil, malformed(sc.line, fmt.Sprintf("vertex count %d exceeds limit %d", v, o.maxVertices)).
					WithDetails("limit", o.maxVertices)
			}
			n, headerSeen = v, true
			continue
		}

		if len(fields) != 3 {
			return 0, nil, malformed(sc.line, fmt.Sprintf("expected \"u v w\", got %d fields", len(fields)))
		}
		nums, err := atois(fields)
		if err != nil {
			return 0, nil, malformed(sc.line, err.Error())
		}
		if nums[2] > domain.MaxWeight {
			return 0, nil, malformed(sc.line, fmt.Sprintf("weight %d exceeds limit %d", nums[2], domain.MaxWeight))
		}
		edges = append(edges, domain.Edge{U: int(nums[0]), V: int(nums[1]), W: nums[2]})
	}
	if err := sc.Err(); err != nil {
		return 0, nil, apperror.Wrap(err, apperror.CodeMalformedInput, "read edge list")
	}
	if !headerSeen {
		return 0, nil, apperror.New(apperror.CodeMalformedInput, "edge list is empty").
			WithField("edges")
	}

	return n, edges, nil
}

// ParseCustomers читает по одному идентификатору клиента в строке.
func ParseCustomers(r io.Reader) (domain.CustomerSet, error) {
	sc := newScanner(r)
	customers := domain.NewCustomerSet()

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		id, err := strconv.Atoi(line)
		if err != nil {
			return nil, malformed(sc.line, fmt.Sprintf("invalid customer id %q", line)).
				WithField("customers")
		}
		customers.Add(id)
	}
	if err := sc.Err(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeMalformedInput, "read customer list")
	}

	return customers, nil
}

// ParseQueries читает пакет запросов "s t", по одному в строке.
// Lines starting with '#' are comments.
func ParseQueries(r io.Reader) ([]Query, error) {
	sc := newScanner(r)
	var queries []Query

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, malformed(sc.line, fmt.Sprintf("expected \"s t\", got %d fields", len(fields))).
				WithField("queries")
		}
		nums, err := atois(fields)
		if err != nil {
			return nil, malformed(sc.line, err.Error()).WithField("queries")
		}
		queries = append(queries, Query{Source: int(nums[0]), Target: int(nums[1])})
	}
	if err := sc.Err(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeMalformedInput, "read queries")
	}

	return queries, nil
}

// lineScanner считает номера строк для сообщений об ошибках
type lineScanner struct {
	*bufio.Scanner
	line int
}

func newScanner(r io.Reader) *lineScanner {
	return &lineScanner{Scanner: bufio.NewScanner(r)}
}

func (s *lineScanner) Scan() bool {
	ok := s.Scanner.Scan()
	if ok {
		s.line++
	}
	return ok
}

func atois(fields []string) ([]int64, error) {
	out := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		out[i] = v
	}
	return out, nil
}

func malformed(line int, msg string) *apperror.Error {
	return apperror.New(apperror.CodeMalformedInput, fmt.Sprintf("line %d: %s", line, msg)).
		WithDetails("line", line)
}
