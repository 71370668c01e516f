// Package heapq implements a binary min-heap keyed by an external
// integer id, backed by a parallel id-to-slot lookup table so that
// Contains runs in O(1) and Update finds its id's slot in O(1) before
// an O(log n) sift, alongside the usual O(log n) Push and PopMin.
//
// It is grounded on the parallel-array priority queue used by the
// libtess2 port's priorityq.go, generalized with the id->slot index
// that queue lacks (its Delete does a linear scan): here every id
// knows its own heap slot, so decrease-key never has to search.
package heapq

import "fmt"

const notInHeap = -1

// IndexedMinHeap is a 1-indexed binary min-heap. The zero value is not
// usable; construct one with New. Priorities are single-precision, as
// the driver only ever compares quadric-error costs against each
// other, never accumulates them.
type IndexedMinHeap struct {
	// heap[1..n] holds ids; heap[0] is unused so that a node's
	// children sit at 2*i and 2*i+1.
	heap []int
	// slot[id] gives the heap index currently holding id, or
	// notInHeap if id is absent. This is the id->slot map that makes
	// Contains O(1) and spares Update any search for its id.
	slot []int
	// priority[id] is the last priority pushed or set for id via
	// Update.
	priority []float32
	// seq[id] records insertion order, used to break exact priority
	// ties deterministically (earliest insertion wins).
	seq []uint64
	n   int
	next uint64
}

// New creates an empty heap with room for capacity ids without
// reallocating the lookup tables. capacity is a hint, not a limit:
// both the heap array and the lookup tables grow geometrically.
func New(capacity int) *IndexedMinHeap {
	if capacity < 0 {
		capacity = 0
	}
	return &IndexedMinHeap{
		heap:     make([]int, 1, capacity+1),
		slot:     make([]int, 0, capacity),
		priority: make([]float32, 0, capacity),
		seq:      make([]uint64, 0, capacity),
	}
}

// Len returns the number of ids currently in the heap.
func (h *IndexedMinHeap) Len() int {
	return h.n
}

func (h *IndexedMinHeap) ensureID(id int) {
	for len(h.slot) <= id {
		h.slot = append(h.slot, notInHeap)
		h.priority = append(h.priority, 0)
		h.seq = append(h.seq, 0)
	}
}

// Contains reports whether id is currently in the heap.
func (h *IndexedMinHeap) Contains(id int) bool {
	return id >= 0 && id < len(h.slot) && h.slot[id] != notInHeap
}

// Push inserts id with the given priority. Pushing an id that is
// already present is a programming error - the caller should use
// Update instead - and panics, per the "duplicate heap push is a
// programming error" contract.
func (h *IndexedMinHeap) Push(id int, priority float32) {
	if id < 0 {
		panic(fmt.Sprintf("heapq: negative id %d", id))
	}
	h.ensureID(id)
	if h.slot[id] != notInHeap {
		panic(fmt.Sprintf("heapq: duplicate push of id %d", id))
	}

	h.n++
	h.heap = append(h.heap, id)
	slotIdx := h.n
	h.slot[id] = slotIdx
	h.priority[id] = priority
	h.seq[id] = h.next
	h.next++

	h.siftUp(slotIdx)
}

// Update changes the priority of an id already in the heap and
// restores heap order. It is safe to call Update with a priority
// higher, lower or equal to the current one.
func (h *IndexedMinHeap) Update(id int, priority float32) {
	if !h.Contains(id) {
		panic(fmt.Sprintf("heapq: update of id %d not in heap", id))
	}
	old := h.priority[id]
	h.priority[id] = priority
	slotIdx := h.slot[id]
	if priority < old {
		h.siftUp(slotIdx)
	} else {
		h.siftDown(slotIdx)
	}
}

// Peek returns the id with the minimum priority without removing it.
// ok is false if the heap is empty.
func (h *IndexedMinHeap) Peek() (id int, ok bool) {
	if h.n == 0 {
		return 0, false
	}
	return h.heap[1], true
}

// PopMin removes and returns the id with the minimum priority. ok is
// false if the heap is empty. Callers must be prepared for the popped
// id to reference data that was invalidated after it was pushed; the
// heap itself does not know about that and will happily hand back a
// stale id.
func (h *IndexedMinHeap) PopMin() (id int, ok bool) {
	if h.n == 0 {
		return 0, false
	}
	min := h.heap[1]
	last := h.heap[h.n]
	h.heap[1] = last
	h.slot[last] = 1
	h.heap = h.heap[:h.n]
	h.n--
	h.slot[min] = notInHeap
	if h.n > 0 {
		h.siftDown(1)
	}
	return min, true
}

func (h *IndexedMinHeap) cmp(a, b int) bool {
	if h.priority[a] != h.priority[b] {
		return h.priority[a] < h.priority[b]
	}
	return h.seq[a] < h.seq[b]
}

func (h *IndexedMinHeap) siftUp(i int) {
	for i > 1 {
		parent := i / 2
		if !h.cmp(h.heap[i], h.heap[parent]) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *IndexedMinHeap) siftDown(i int) {
	for {
		left, right := 2*i, 2*i+1
		smallest := i
		if left <= h.n && h.cmp(h.heap[left], h.heap[smallest]) {
			smallest = left
		}
		if right <= h.n && h.cmp(h.heap[right], h.heap[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *IndexedMinHeap) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.slot[h.heap[i]] = i
	h.slot[h.heap[j]] = j
}
