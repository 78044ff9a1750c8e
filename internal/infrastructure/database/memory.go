package database

import (
	"context"
	"sync"
	"time"
)

// AuthorRow is one row of the in-memory authors table.
type AuthorRow struct {
	ID         int64
	Name       string
	Surname    *string
	SearchName string
	IsDeleted  bool
}

// QuoteRow is one row of the in-memory quotes table.
type QuoteRow struct {
	ID        int64
	AuthorID  int64
	Text      string
	Rating    int
	CreatedAt time.Time
}

// MemoryTables is the content of a MemoryDB. Rows keep insertion order and
// ids come from sequences that never hand out the same value twice.
type MemoryTables struct {
	Authors []AuthorRow
	Quotes  []QuoteRow

	authorSeq int64
	quoteSeq  int64
}

func (t *MemoryTables) NextAuthorID() int64 {
	t.authorSeq++
	return t.authorSeq
}

func (t *MemoryTables) NextQuoteID() int64 {
	t.quoteSeq++
	return t.quoteSeq
}

// AuthorIndex returns the slice index of author id, or -1.
func (t *MemoryTables) AuthorIndex(id int64) int {
	for i := range t.Authors {
		if t.Authors[i].ID == id {
			return i
		}
	}
	return -1
}

// QuoteIndex returns the slice index of quote id, or -1.
func (t *MemoryTables) QuoteIndex(id int64) int {
	for i := range t.Quotes {
		if t.Quotes[i].ID == id {
			return i
		}
	}
	return -1
}

// VisibleAuthor returns the author row when it exists and is not soft-deleted.
func (t *MemoryTables) VisibleAuthor(id int64) (AuthorRow, bool) {
	i := t.AuthorIndex(id)
	if i < 0 || t.Authors[i].IsDeleted {
		return AuthorRow{}, false
	}
	return t.Authors[i], true
}

func (t *MemoryTables) clone() *MemoryTables {
	cp := &MemoryTables{
		Authors:   make([]AuthorRow, len(t.Authors)),
		Quotes:    make([]QuoteRow, len(t.Quotes)),
		authorSeq: t.authorSeq,
		quoteSeq:  t.quoteSeq,
	}
	copy(cp.Authors, t.Authors)
	copy(cp.Quotes, t.Quotes)
	return cp
}

// MemoryDB is the session-lived storage backend. Reads share a lock; a write
// runs against a copy of the tables that replaces the original only when the
// write function succeeds, which gives writes rollback semantics.
type MemoryDB struct {
	mu     sync.RWMutex
	tables *MemoryTables
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{tables: &MemoryTables{}}
}

// View runs fn with read access. fn must not modify the tables.
func (m *MemoryDB) View(ctx context.Context, fn func(t *MemoryTables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(m.tables)
}

// Update runs fn against a copy of the tables and commits it if fn returns nil.
func (m *MemoryDB) Update(ctx context.Context, fn func(t *MemoryTables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	draft := m.tables.clone()
	if err := fn(draft); err != nil {
		return err
	}
	m.tables = draft
	return nil
}

func (m *MemoryDB) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryDB) Close() error {
	return nil
}
