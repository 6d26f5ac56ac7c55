package domain

// CardQueue walks a fixed candidate list exactly once, front to back.
type CardQueue struct {
	items  []CandidateItem
	cursor int
}

func NewCardQueue(items []CandidateItem) *CardQueue {
	owned := make([]CandidateItem, len(items))
	copy(owned, items)
	return &CardQueue{items: owned}
}

// Current returns the card under the cursor, or false once exhausted.
func (q *CardQueue) Current() (CandidateItem, bool) {
	return q.Lookahead(0)
}

// Lookahead peeks n cards past the cursor without moving it.
func (q *CardQueue) Lookahead(n int) (CandidateItem, bool) {
	if n < 0 || n >= len(q.items)-q.cursor {
		return CandidateItem{}, false
	}
	return q.items[q.cursor+n], true
}

// Advance moves to the next card. It is a no-op on an exhausted queue.
func (q *CardQueue) Advance() {
	if q.IsExhausted() {
		return
	}
	q.cursor++
}

func (q *CardQueue) IsExhausted() bool { return q.cursor >= len(q.items) }

func (q *CardQueue) Cursor() int { return q.cursor }

func (q *CardQueue) Len() int { return len(q.items) }
