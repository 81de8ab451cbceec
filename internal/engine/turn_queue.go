package engine

import (
	"container/heap"

	"tactics-server/internal/domain"
)

// TurnItem is one queue entry.
type TurnItem struct {
	Value    *domain.Unit
	Priority int // Higher goes first.
	Seq      int // Insertion order, breaks priority ties.
	Index    int // Position in the heap, maintained by Swap.
}

// TurnQueue is a max-heap on Priority with ascending Seq for ties, which
// makes popping equivalent to a stable descending sort.
type TurnQueue []*TurnItem

func (pq TurnQueue) Len() int { return len(pq) }

func (pq TurnQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority > pq[j].Priority
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq TurnQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TurnQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*TurnItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TurnQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}

// Ordered returns the items in pop order without touching the heap.
func (pq TurnQueue) Ordered() []*TurnItem {
	cp := make(TurnQueue, len(pq))
	for i, it := range pq {
		c := *it
		cp[i] = &c
	}
	out := make([]*TurnItem, 0, len(cp))
	for cp.Len() > 0 {
		out = append(out, heap.Pop(&cp).(*TurnItem))
	}
	return out
}
