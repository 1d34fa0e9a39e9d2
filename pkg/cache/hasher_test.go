package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"detour/pkg/domain"
)

func TestNetworkHash_Deterministic(t *testing.T) {
	a := domain.BuildGraph(3, []domain.Edge{{U: 1, V: 2, W: 4}, {U: 2, V: 3, W: 1}})
	b := domain.BuildGraph(3, []domain.Edge{{U: 3, V: 2, W: 1}, {U: 2, V: 1, W: 4}})

	customers := domain.NewCustomerSet(2)

	assert.Equal(t, NetworkHash(a, customers), NetworkHash(b, customers))
	assert.Len(t, NetworkHash(a, customers), 32)
}

func TestNetworkHash_Differs(t *testing.T) {
	g := domain.BuildGraph(3, []domain.Edge{{U: 1, V: 2, W: 4}})
	base := NetworkHash(g, domain.NewCustomerSet(2))

	tests := []struct {
		name string
		hash string
	}{
		{"other weight", NetworkHash(domain.BuildGraph(3, []domain.Edge{{U: 1, V: 2, W: 5}}), domain.NewCustomerSet(2))},
		{"other vertex count", NetworkHash(domain.BuildGraph(4, []domain.Edge{{U: 1, V: 2, W: 4}}), domain.NewCustomerSet(2))},
		{"other customers", NetworkHash(g, domain.NewCustomerSet(1))},
		{"no customers", NetworkHash(g, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, tt.hash)
		})
	}
}

func TestNetworkHash_NilGraph(t *testing.T) {
	assert.Equal(t, "", NetworkHash(nil, nil))
}

func TestBuildRouteKey(t *testing.T) {
	assert.Equal(t, "route:abc:detour:1:3", BuildRouteKey("abc", KindDetour, 1, 3))
}
