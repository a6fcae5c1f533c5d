package stm

import "github.com/hashicorp/go-memdb"

// Txn is a transaction against a Scheduler instance.
// This can be a read or write transaction.
type Txn struct {
	txn *memdb.Txn
}

// Abort is used to cancel this transaction.
// This is a noop for read transactions,
// already aborted or committed transactions.
func (t Txn) Abort() {
	t.txn.Abort()
}

// Commit is used to finalize this transaction.
// This is a noop for read transactions,
// already aborted or committed transactions.
func (t Txn) Commit() {
	t.txn.Commit()
}

// Insert adds or replaces an object in the given table.
//
// Objects already in the table must not be modified in place;
// insert an updated copy instead.
func (t Txn) Insert(table TableRef, v any) error {
	return t.txn.Insert(table.name, v)
}

// Delete removes a single object from the given table.
func (t Txn) Delete(table TableRef, v any) error {
	return t.txn.Delete(table.name, v)
}

// First returns the first object matching the index constraints, or nil.
//
// All reads in a transaction observe the snapshot taken when the
// transaction was created.
func (t Txn) First(table TableRef, index string, args ...any) (any, error) {
	return t.txn.First(table.name, index, args...)
}

// Get returns an iterator over every object matching the index
// constraints.  Appending "_prefix" to the index name performs a prefix
// match on indexes that support it.
func (t Txn) Get(table TableRef, index string, args ...any) (memdb.ResultIterator, error) {
	return t.txn.Get(table.name, index, args...)
}

// Defer pushes fn onto a stack that runs, in LIFO order, after a write
// transaction commits.
func (t Txn) Defer(fn func()) {
	t.txn.Defer(fn)
}
