package flowtable

import (
	"github.com/google/btree"

	"FlowVigil/internal/model"
)

const btreeDegree = 16

type item struct {
	key   model.FlowKey
	entry *model.FlowEntry
}

func (a item) Less(b btree.Item) bool {
	return a.key.Compare(b.(item).key) < 0
}

// Table is the ordered flow store. It owns every FlowEntry and keeps a
// secondary index from datapath handle to entry. Table is not safe for
// concurrent use; all access is serialized through a Mutator.
type Table struct {
	tree     *btree.BTree
	byHandle map[uint32]*model.FlowEntry

	created uint64
	aged    uint64
}

// NewTable returns an empty flow table.
func NewTable() *Table {
	return &Table{
		tree:     btree.New(btreeDegree),
		byHandle: make(map[uint32]*model.FlowEntry),
	}
}

// Add inserts a new entry. An existing entry under the same key is replaced
// and its handle index entry dropped.
func (t *Table) Add(e *model.FlowEntry) {
	old := t.tree.ReplaceOrInsert(item{key: e.Key, entry: e})
	if old != nil {
		prev := old.(item).entry
		if prev.Handle != e.Handle {
			delete(t.byHandle, prev.Handle)
		}
	} else {
		t.created++
	}
	t.byHandle[e.Handle] = e
}

// Find returns the entry for key, or nil.
func (t *Table) Find(key model.FlowKey) *model.FlowEntry {
	if got := t.tree.Get(item{key: key}); got != nil {
		return got.(item).entry
	}
	return nil
}

// FindByHandle returns the entry for a datapath handle, or nil.
func (t *Table) FindByHandle(handle uint32) *model.FlowEntry {
	return t.byHandle[handle]
}

// First returns the entry with the minimum key, or nil on an empty table.
func (t *Table) First() *model.FlowEntry {
	if got := t.tree.Min(); got != nil {
		return got.(item).entry
	}
	return nil
}

// UpperBound returns the first entry with a key strictly greater than key,
// or nil when key is at or past the end of the table.
func (t *Table) UpperBound(key model.FlowKey) *model.FlowEntry {
	var found *model.FlowEntry
	t.tree.AscendGreaterOrEqual(item{key: key}, func(i btree.Item) bool {
		it := i.(item)
		if it.key.Compare(key) == 0 {
			return true
		}
		found = it.entry
		return false
	})
	return found
}

// Len returns the number of entries currently tracked.
func (t *Table) Len() int {
	return t.tree.Len()
}

// Created returns the number of flows added over the table's lifetime.
func (t *Table) Created() uint64 {
	return t.created
}

// Aged returns the number of flows removed over the table's lifetime.
func (t *Table) Aged() uint64 {
	return t.aged
}

// Link pairs two entries as opposite directions of one flow. The relation
// is symmetric for the lifetime of both entries.
func (t *Table) Link(a, b *model.FlowEntry) {
	ak, bk := a.Key, b.Key
	a.Reverse = &bk
	b.Reverse = &ak
}

// DeletePair removes the entry at key and, when hasReverse is set, its
// paired reverse entry in the same action. When hasReverse is false a still
// linked peer is kept but its back reference cleared, so no entry is ever
// left pointing at a deleted one. The return value is the number of entries
// actually removed; zero means the entry vanished before the request, which
// callers treat as a no-op.
func (t *Table) DeletePair(key model.FlowKey, hasReverse bool) int {
	e := t.Find(key)
	if e == nil {
		return 0
	}
	removed := t.remove(e)
	if e.Reverse != nil {
		if rev := t.Find(*e.Reverse); rev != nil {
			if hasReverse {
				removed += t.remove(rev)
			} else {
				rev.Reverse = nil
			}
		}
	}
	return removed
}

func (t *Table) remove(e *model.FlowEntry) int {
	if t.tree.Delete(item{key: e.Key}) == nil {
		return 0
	}
	delete(t.byHandle, e.Handle)
	t.aged++
	return 1
}
