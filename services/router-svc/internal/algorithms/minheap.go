package algorithms

import (
	"fmt"

	"detour/pkg/domain"
)

// VertexState состояние вершины в рамках одного поиска.
type VertexState uint8

const (
	// Undiscovered вершина ещё не встречалась, расстояние бесконечно
	Undiscovered VertexState = iota
	// InQueue вершина лежит в куче, слот актуален
	InQueue
	// Finalized вершина извлечена, расстояние окончательное
	Finalized
)

// String возвращает строковое представление состояния
func (s VertexState) String() string {
	switch s {
	case Undiscovered:
		return "undiscovered"
	case InQueue:
		return "in_queue"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// vertexRecord per-vertex bookkeeping. slot is meaningful only while InQueue;
// hasPred is false for the start vertex and for undiscovered vertices.
type vertexRecord struct {
	state    VertexState
	slot     int
	distance domain.Weight
	pred     int
	hasPred  bool
}

// HeapStats counts operations performed on a MinHeap.
type HeapStats struct {
	Inserts      int
	DecreaseKeys int
	Extractions  int
	MaxSize      int
}

// MinHeap is an indexed binary min-heap over dense vertex indices together
// with the per-vertex search state of one shortest-path run.
//
// The heap stores vertex indices; ordering is by the vertex's current
// distance. records[v].slot always equals the position of v in heap while v
// is InQueue, which lets DecreaseKey find a vertex in O(1).
//
// A MinHeap belongs to exactly one search and is not safe for concurrent use.
type MinHeap struct {
	heap    []int
	records []vertexRecord
	stats   HeapStats
}

// NewMinHeap allocates search state for size vertices, all Undiscovered.
func NewMinHeap(size int) *MinHeap {
	if size < 0 {
		size = 0
	}
	return &MinHeap{
		heap:    make([]int, 0, 16),
		records: make([]vertexRecord, size),
	}
}

// Size возвращает количество вершин, для которых выделено состояние
func (h *MinHeap) Size() int {
	return len(h.records)
}

// Len возвращает текущее количество элементов в куче
func (h *MinHeap) Len() int {
	return len(h.heap)
}

// Stats возвращает счётчики операций
func (h *MinHeap) Stats() HeapStats {
	return h.stats
}

// Start inserts the start vertex with distance 0 and no predecessor.
func (h *MinHeap) Start(v int) {
	h.push(v, 0, 0, false)
}

// Insert adds an undiscovered vertex with the given distance and predecessor.
// It panics if v is out of range or already discovered.
func (h *MinHeap) Insert(v int, dist domain.Weight, pred int) {
	h.push(v, dist, pred, true)
}

func (h *MinHeap) push(v int, dist domain.Weight, pred int, hasPred bool) {
	h.mustContain(v)
	rec := &h.records[v]
	if rec.state != Undiscovered {
		panic(fmt.Sprintf("minheap: insert of vertex %d in state %s", v, rec.state))
	}

	rec.state = InQueue
	rec.distance = dist
	rec.pred = pred
	rec.hasPred = hasPred
	rec.slot = len(h.heap)
	h.heap = append(h.heap, v)

	h.stats.Inserts++
	if len(h.heap) > h.stats.MaxSize {
		h.stats.MaxSize = len(h.heap)
	}

	h.up(rec.slot)
}

// DecreaseKey lowers the distance of a queued vertex and moves it toward the
// root. It panics unless v is InQueue and dist is strictly smaller.
func (h *MinHeap) DecreaseKey(v int, dist domain.Weight, pred int) {
	h.mustContain(v)
	rec := &h.records[v]
	if rec.state != InQueue {
		panic(fmt.Sprintf("minheap: decrease-key of vertex %d in state %s", v, rec.state))
	}
	if dist >= rec.distance {
		panic(fmt.Sprintf("minheap: decrease-key of vertex %d from %d to %d", v, rec.distance, dist))
	}

	rec.distance = dist
	rec.pred = pred
	rec.hasPred = true
	h.stats.DecreaseKeys++

	h.up(rec.slot)
}

// ExtractMin removes the root and marks it Finalized.
// ok is false when the heap is empty.
func (h *MinHeap) ExtractMin() (v int, dist domain.Weight, ok bool) {
	n := len(h.heap)
	if n == 0 {
		return 0, 0, false
	}

	v = h.heap[0]
	last := n - 1
	if last > 0 {
		h.heap[0] = h.heap[last]
		h.records[h.heap[0]].slot = 0
	}
	h.heap = h.heap[:last]
	if len(h.heap) > 1 {
		h.down(0)
	}

	rec := &h.records[v]
	rec.state = Finalized
	rec.slot = -1
	h.stats.Extractions++

	return v, rec.distance, true
}

// State возвращает состояние вершины
func (h *MinHeap) State(v int) VertexState {
	if v < 0 || v >= len(h.records) {
		return Undiscovered
	}
	return h.records[v].state
}

// Distance returns the best known distance; ok is false while undiscovered.
func (h *MinHeap) Distance(v int) (domain.Weight, bool) {
	if h.State(v) == Undiscovered {
		return 0, false
	}
	return h.records[v].distance, true
}

// Predecessor returns the predecessor of v; ok is false for the start vertex
// and for undiscovered vertices.
func (h *MinHeap) Predecessor(v int) (int, bool) {
	if h.State(v) == Undiscovered {
		return 0, false
	}
	rec := h.records[v]
	return rec.pred, rec.hasPred
}

// Slot returns the heap position of v; ok is false unless v is InQueue.
func (h *MinHeap) Slot(v int) (int, bool) {
	if h.State(v) != InQueue {
		return 0, false
	}
	return h.records[v].slot, true
}

func (h *MinHeap) less(i, j int) bool {
	return h.records[h.heap[i]].distance < h.records[h.heap[j]].distance
}

func (h *MinHeap) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.records[h.heap[i]].slot = i
	h.records[h.heap[j]].slot = j
}

// up поднимает элемент, пока он строго меньше родителя
func (h *MinHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

// down опускает элемент, пока один из детей строго меньше
func (h *MinHeap) down(i int) {
	n := len(h.heap)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *MinHeap) mustContain(v int) {
	if v < 0 || v >= len(h.records) {
		panic(fmt.Sprintf("minheap: vertex %d outside [0, %d)", v, len(h.records)))
	}
}
