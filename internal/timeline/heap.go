package timeline

// entryHeap implements heap.Interface over *Entry, min-ordered by
// (ReadyTick, Seq). Same Push/Pop/Swap shape as the teacher's
// TurnQueue, with the priority field widened to the two-part tuple the
// spec's tie-breaking rule requires.
type entryHeap []*Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].ReadyTick != h[j].ReadyTick {
		return h[i].ReadyTick < h[j].ReadyTick
	}
	return h[i].Seq < h[j].Seq
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*Entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
