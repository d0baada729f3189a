package tsort

import "iter"

// BlockList is a doubly linked list of blocks kept in sorted order after
// every insertion. It owns every block inserted into it.
//
// Invariant: for adjacent blocks A then B, Compare(A, B) is never > 0.
type BlockList struct {
	head *Block
	tail *Block
	n    int

	cmp    *Comparator
	budget *Budget
}

// NewBlockList returns an empty list ordered by cmp. Blocks released by the
// list are returned to budget, which may be nil.
func NewBlockList(cmp *Comparator, budget *Budget) *BlockList {
	return &BlockList{cmp: cmp, budget: budget}
}

// Insert places blk in order. It scans from the head and inserts before the
// first block that sorts strictly after blk, or at the tail. Blocks with
// equal keys therefore stay in arrival order.
//
// On a comparison failure the list is unchanged and the caller still owns
// blk.
func (l *BlockList) Insert(blk *Block) error {
	at := l.head
	for at != nil {
		c, err := l.cmp.Compare(blk, at)
		if err != nil {
			return err
		}
		if c < 0 {
			break
		}
		at = at.next
	}

	if at == nil {
		l.pushBack(blk)
	} else {
		l.insertBefore(blk, at)
	}
	l.n++
	return nil
}

func (l *BlockList) pushBack(blk *Block) {
	blk.next = nil
	blk.prev = l.tail
	if l.tail == nil {
		l.head = blk
	} else {
		l.tail.next = blk
	}
	l.tail = blk
}

func (l *BlockList) insertBefore(blk, at *Block) {
	blk.next = at
	blk.prev = at.prev
	if at.prev == nil {
		l.head = blk
	} else {
		at.prev.next = blk
	}
	at.prev = blk
}

// Len returns the number of blocks.
func (l *BlockList) Len() int {
	return l.n
}

// Front returns the first block, or nil.
func (l *BlockList) Front() *Block {
	return l.head
}

// Back returns the last block, or nil.
func (l *BlockList) Back() *Block {
	return l.tail
}

// All iterates the blocks in sorted order.
func (l *BlockList) All() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for b := l.head; b != nil; b = b.next {
			if !yield(b) {
				return
			}
		}
	}
}

// Release drops every block and returns their charge to the budget.
// The list is empty afterwards and may be reused.
func (l *BlockList) Release() {
	for b := l.head; b != nil; {
		next := b.next
		releaseBlock(l.budget, b)
		b = next
	}
	l.head, l.tail, l.n = nil, nil, 0
}
