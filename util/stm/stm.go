// Package stm provides a small transactional layer over go-memdb.
//
// Tables are declared up front through a Factory, which then produces a
// Scheduler.  Readers obtain consistent snapshots without blocking; writers
// are serialized by the underlying database.
package stm

import (
	"fmt"

	"github.com/hashicorp/go-memdb"
)

// TableRef names a table registered with a Factory.
type TableRef struct{ name string }

func (t TableRef) String() string { return t.name }

// Factory accumulates table schemas.  The zero value is ready to use.
type Factory struct {
	schema memdb.DBSchema
}

// Register a table schema under name.  The schema's Name field is
// overwritten to match.  Registering the same name twice replaces the
// earlier schema.
func (f *Factory) Register(name string, s *memdb.TableSchema) TableRef {
	if f.schema.Tables == nil {
		f.schema.Tables = make(map[string]*memdb.TableSchema)
	}

	s.Name = name
	f.schema.Tables[name] = s
	return TableRef{name: name}
}

// NewScheduler validates the accumulated schema and allocates the
// database.  The factory must not be used afterwards.
func (f *Factory) NewScheduler() (Scheduler, error) {
	db, err := memdb.NewMemDB(&f.schema)
	if err != nil {
		return Scheduler{}, fmt.Errorf("stm: %w", err)
	}

	return Scheduler{db: db}, nil
}

// Scheduler hands out transactions against a database.
type Scheduler struct {
	db *memdb.MemDB
}

// Txn starts a transaction.  Write transactions are exclusive and must be
// committed or aborted; read transactions observe a snapshot taken when
// Txn is called.
func (s Scheduler) Txn(write bool) Txn {
	return Txn{txn: s.db.Txn(write)}
}
