package domain

import (
	"fmt"

	"detour/pkg/apperror"
)

// ValidateEdges проверяет, что все рёбра лежат в [0, n] и имеют вес в [0, MaxWeight].
func ValidateEdges(n int, edges []Edge) error {
	if n < 0 {
		return apperror.New(apperror.CodeMalformedInput, "vertex count must be non-negative").
			WithField("n").
			WithDetails("n", n)
	}
	if n > MaxVertices {
		return apperror.New(apperror.CodeMalformedInput,
			fmt.Sprintf("vertex count %d exceeds limit %d", n, MaxVertices)).
			WithField("n").
			WithDetails("n", n)
	}

	for i, e := range edges {
		if e.U < 0 || e.U > n || e.V < 0 || e.V > n {
			return apperror.New(apperror.CodeMalformedInput,
				fmt.Sprintf("edge %s references a vertex outside [0, %d]", e, n)).
				WithField("edges").
				WithDetails("index", i)
		}
		if e.W < 0 {
			return apperror.New(apperror.CodeMalformedInput,
				fmt.Sprintf("edge %s has negative weight", e)).
				WithField("edges").
				WithDetails("index", i)
		}
		if e.W > MaxWeight {
			return apperror.New(apperror.CodeMalformedInput,
				fmt.Sprintf("edge %s has weight above %d", e, MaxWeight)).
				WithField("edges").
				WithDetails("index", i)
		}
	}

	return nil
}

// ValidateCustomers проверяет, что все клиенты лежат в [0, n].
func ValidateCustomers(n int, customers CustomerSet) error {
	for _, id := range customers.Sorted() {
		if id < 0 || id > n {
			return apperror.New(apperror.CodeMalformedInput,
				fmt.Sprintf("customer %d is outside [0, %d]", id, n)).
				WithField("customers").
				WithDetails("customer", id)
		}
	}
	return nil
}
