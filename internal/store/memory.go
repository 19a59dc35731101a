package store

import (
	"fmt"
	"sync"

	"horse.fit/intel-pipeline/internal/record"
)

// Memory is the in-process record set. One mutex guards the whole set so a
// caller can treat "read the existing records, decide, persist" as a single
// logical unit via Update; concurrent submissions serialize there instead of
// racing each other through duplicate resolution.
type Memory struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*record.Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]*record.Record)}
}

// Tx is a view of the set held under the write lock. Valid only inside the
// Update callback.
type Tx struct {
	m *Memory
}

// Update runs fn with exclusive access to the record set.
func (m *Memory) Update(fn func(tx *Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&Tx{m: m})
}

// Records returns the live records in insertion order. Mutations to the
// returned pointers are visible in the store; only perform them inside the
// Update callback that produced them.
func (tx *Tx) Records() []*record.Record {
	out := make([]*record.Record, 0, len(tx.m.order))
	for _, id := range tx.m.order {
		out = append(out, tx.m.records[id])
	}
	return out
}

// Insert adds a new record. IDs are unique.
func (tx *Tx) Insert(rec *record.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record has no ID")
	}
	if _, exists := tx.m.records[rec.ID]; exists {
		return fmt.Errorf("record %s already stored", rec.ID)
	}
	tx.m.records[rec.ID] = rec
	tx.m.order = append(tx.m.order, rec.ID)
	return nil
}

// Len reports the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Get returns a deep copy of one record.
func (m *Memory) Get(id string) (*record.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Snapshot returns deep copies of every record in insertion order.
func (m *Memory) Snapshot() []*record.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*record.Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id].Clone())
	}
	return out
}
