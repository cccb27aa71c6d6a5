package planner

// pqItem is one entry in the priority queue: a candidate label for a
// stop. Entries are never mutated after being pushed; a stop whose
// label improves gets a fresh entry pushed instead, and the stale one
// is skipped when it's eventually popped (lazy deletion).
type pqItem struct {
	stopID  string
	arrival int
	index   int
}

// priorityQueue is a container/heap min-heap ordered by arrival time.
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].arrival < pq[j].arrival
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
