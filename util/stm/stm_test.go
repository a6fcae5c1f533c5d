package stm_test

import (
	"testing"

	"github.com/hashicorp/go-memdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/gval/util/stm"
)

type item struct {
	ID   uint64
	Name string
}

func newTable(t *testing.T) (stm.TableRef, stm.Scheduler) {
	t.Helper()

	var f stm.Factory
	ref := f.Register("item", &memdb.TableSchema{
		Indexes: map[string]*memdb.IndexSchema{
			"id": {
				Name:    "id",
				Unique:  true,
				Indexer: &memdb.UintFieldIndex{Field: "ID"},
			},
			"name": {
				Name:    "name",
				Unique:  true,
				Indexer: &memdb.StringFieldIndex{Field: "Name"},
			},
		},
	})

	sched, err := f.NewScheduler()
	require.NoError(t, err, "schema should be valid")

	return ref, sched
}

func TestTxn(t *testing.T) {
	t.Parallel()

	ref, sched := newTable(t)
	assert.Equal(t, "item", ref.String())

	wx := sched.Txn(true)
	require.NoError(t, wx.Insert(ref, &item{ID: 1, Name: "one"}))
	require.NoError(t, wx.Insert(ref, &item{ID: 2, Name: "two"}))

	var committed bool
	wx.Defer(func() { committed = true })

	// snapshot taken before commit must not see the writes
	before := sched.Txn(false)
	wx.Commit()
	assert.True(t, committed, "deferred func should run on commit")

	v, err := before.First(ref, "id", uint64(1))
	require.NoError(t, err)
	assert.Nil(t, v, "stale snapshot should not observe later writes")

	rx := sched.Txn(false)
	v, err = rx.First(ref, "name", "two")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, uint64(2), v.(*item).ID)

	it, err := rx.Get(ref, "id")
	require.NoError(t, err)

	var n int
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestTxn_abort(t *testing.T) {
	t.Parallel()

	ref, sched := newTable(t)

	wx := sched.Txn(true)
	require.NoError(t, wx.Insert(ref, &item{ID: 1, Name: "one"}))
	wx.Abort()

	v, err := sched.Txn(false).First(ref, "id", uint64(1))
	require.NoError(t, err)
	assert.Nil(t, v, "aborted write should be discarded")

	wx = sched.Txn(true)
	require.NoError(t, wx.Insert(ref, &item{ID: 1, Name: "one"}))
	wx.Commit()

	wx = sched.Txn(true)
	require.NoError(t, wx.Delete(ref, &item{ID: 1, Name: "one"}))
	wx.Commit()

	v, err = sched.Txn(false).First(ref, "id", uint64(1))
	require.NoError(t, err)
	assert.Nil(t, v, "deleted object should be gone")
}
