package converter

import (
	"os"

	"detour/pkg/apperror"
	"detour/pkg/domain"
)

// Network загруженная дорожная сеть: базовый граф, граф объездов и клиенты.
type Network struct {
	Graph     *domain.Graph
	Detour    *domain.DetourGraph
	Customers domain.CustomerSet
}

// NewNetwork строит оба графа с проверкой идентификаторов и весов.
func NewNetwork(n int, edges []domain.Edge, customers domain.CustomerSet) (*Network, error) {
	dg, err := domain.BuildDetourGraphChecked(n, edges, customers)
	if err != nil {
		return nil, err
	}
	return &Network{
		Graph:     dg.Base(),
		Detour:    dg,
		Customers: dg.Customers(),
	}, nil
}

// LoadNetwork читает файл рёбер и файл клиентов и строит сеть.
func LoadNetwork(edgesPath, customersPath string, opts ...Option) (*Network, error) {
	ef, err := open(edgesPath)
	if err != nil {
		return nil, err
	}
	defer ef.Close()

	n, edges, err := ParseEdges(ef, opts...)
	if err != nil {
		return nil, err
	}

	cf, err := open(customersPath)
	if err != nil {
		return nil, err
	}
	defer cf.Close()

	customers, err := ParseCustomers(cf)
	if err != nil {
		return nil, err
	}

	return NewNetwork(n, edges, customers)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		code := apperror.CodeMalformedInput
		if os.IsNotExist(err) {
			code = apperror.CodeNotFound
		}
		return nil, apperror.Wrap(err, code, "cannot open input file").
			WithDetails("path", path)
	}
	return f, nil
}

// LoadQueries читает пакетный файл запросов.
func LoadQueries(path string) ([]Query, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseQueries(f)
}
