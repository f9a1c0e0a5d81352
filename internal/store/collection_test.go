package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticket struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

func newMemStore() *Store { return New(newFakeTier(), newFakeTier()) }

func TestListAddAppends(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()

	ListAdd(ctx, s, "sales", ticket{ID: "a", Amount: 10})
	ListAdd(ctx, s, "sales", ticket{ID: "b", Amount: 20})

	list, ok := GetAs[[]ticket](ctx, s, "sales")
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestListRemoveByPredicate(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()
	ListAdd(ctx, s, "sales", ticket{ID: "a"})
	ListAdd(ctx, s, "sales", ticket{ID: "b"})
	ListAdd(ctx, s, "sales", ticket{ID: "c"})

	removed := ListRemove(ctx, s, "sales", func(tk ticket) bool { return tk.ID == "b" })

	assert.Equal(t, 1, removed)
	list, _ := GetAs[[]ticket](ctx, s, "sales")
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "c", list[1].ID)
}

func TestListRemoveMissingKey(t *testing.T) {
	s := newMemStore()

	removed := ListRemove(context.Background(), s, "absent", func(ticket) bool { return true })

	assert.Zero(t, removed)
}

func TestListUpdateMatching(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()
	ListAdd(ctx, s, "sales", ticket{ID: "a", Amount: 10})
	ListAdd(ctx, s, "sales", ticket{ID: "b", Amount: 20})

	updated := ListUpdate(ctx, s, "sales",
		func(tk ticket) bool { return tk.ID == "a" },
		func(tk ticket) ticket { tk.Amount = 99; return tk })

	assert.Equal(t, 1, updated)
	list, _ := GetAs[[]ticket](ctx, s, "sales")
	assert.Equal(t, 99, list[0].Amount)
	assert.Equal(t, 20, list[1].Amount)
}

func TestListClear(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()
	ListAdd(ctx, s, "sales", ticket{ID: "a"})

	ListClear[ticket](ctx, s, "sales")

	list, ok := GetAs[[]ticket](ctx, s, "sales")
	require.True(t, ok)
	assert.Empty(t, list)
}

func TestRecordMergeKeepsOtherFields(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()
	RecordMerge(ctx, s, "state", map[string]any{"vendor": "sylvie", "open": true})

	RecordMerge(ctx, s, "state", map[string]any{"open": false})

	record, ok := GetAs[map[string]any](ctx, s, "state")
	require.True(t, ok)
	assert.Equal(t, "sylvie", record["vendor"])
	assert.Equal(t, false, record["open"])
}

func TestRecordSetFieldOnAbsentRecord(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()

	RecordSetField(ctx, s, "state", "vendor", "babette")

	record, ok := GetAs[map[string]any](ctx, s, "state")
	require.True(t, ok)
	assert.Equal(t, "babette", record["vendor"])
}

func TestRecordReset(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()
	RecordMerge(ctx, s, "state", map[string]any{"vendor": "sylvie"})

	RecordReset[map[string]any](ctx, s, "state")

	record, ok := GetAs[map[string]any](ctx, s, "state")
	require.True(t, ok)
	assert.Empty(t, record)
}

func TestGetAsUndecodableValue(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()
	Put(ctx, s, "k", "a plain string")

	_, ok := GetAs[[]ticket](ctx, s, "k")

	assert.False(t, ok)
}
