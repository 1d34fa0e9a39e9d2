package domain

import (
	"slices"
)

// CustomerSet множество вершин-клиентов.
type CustomerSet map[VertexID]struct{}

// NewCustomerSet создаёт множество из списка идентификаторов
func NewCustomerSet(ids ...VertexID) CustomerSet {
	set := make(CustomerSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Add добавляет клиента
func (s CustomerSet) Add(id VertexID) {
	s[id] = struct{}{}
}

// Contains проверяет, является ли вершина клиентом
func (s CustomerSet) Contains(id VertexID) bool {
	_, ok := s[id]
	return ok
}

// Len возвращает количество клиентов
func (s CustomerSet) Len() int {
	return len(s)
}

// Sorted returns the customer ids in ascending order.
func (s CustomerSet) Sorted() []VertexID {
	ids := make([]VertexID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clone создаёт копию множества
func (s CustomerSet) Clone() CustomerSet {
	out := make(CustomerSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
