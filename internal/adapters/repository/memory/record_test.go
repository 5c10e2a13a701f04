package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stategraph/stategraph/internal/core/record"
	"github.com/stategraph/stategraph/internal/core/state"
)

func newRecord(id, graphName string) *record.Record {
	now := time.Now()
	return &record.Record{
		ID:           id,
		GraphName:    graphName,
		InputData:    state.Values{"in": id},
		OutputResult: state.Values{"out": id},
		StartTime:    now,
		EndTime:      now,
		Success:      true,
		CreatedAt:    now,
	}
}

func TestRecordStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		store := NewRecordStore()
		require.NoError(t, store.Save(ctx, newRecord("r1", "g")))

		got, err := store.Get(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "g", got.GraphName)
	})

	t.Run("nil record", func(t *testing.T) {
		store := NewRecordStore()
		assert.ErrorIs(t, store.Save(ctx, nil), record.ErrNilRecord)
	})

	t.Run("missing id", func(t *testing.T) {
		store := NewRecordStore()
		assert.ErrorIs(t, store.Save(ctx, newRecord("", "g")), record.ErrInvalidRecordID)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		store := NewRecordStore()
		require.NoError(t, store.Save(ctx, newRecord("r1", "g")))
		assert.ErrorIs(t, store.Save(ctx, newRecord("r1", "g")), record.ErrDuplicateRecord)
	})
}

func TestRecordStore_Get(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	t.Run("empty id", func(t *testing.T) {
		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, record.ErrInvalidRecordID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, record.ErrRecordNotFound)
	})
}

func TestRecordStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	for i := 0; i < 5; i++ {
		graphName := "even"
		if i%2 == 1 {
			graphName = "odd"
		}
		require.NoError(t, store.Save(ctx, newRecord(fmt.Sprintf("r%d", i), graphName)))
	}

	t.Run("most recent first", func(t *testing.T) {
		all, err := store.List(ctx, record.Filter{})
		require.NoError(t, err)
		require.Len(t, all, 5)
		assert.Equal(t, "r4", all[0].ID)
		assert.Equal(t, "r0", all[4].ID)
	})

	t.Run("graph name filter", func(t *testing.T) {
		odd, err := store.List(ctx, record.Filter{GraphName: "odd"})
		require.NoError(t, err)
		require.Len(t, odd, 2)
		assert.Equal(t, "r3", odd[0].ID)
		assert.Equal(t, "r1", odd[1].ID)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := store.List(ctx, record.Filter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "r4", got[0].ID)
	})

	t.Run("empty store", func(t *testing.T) {
		empty := NewRecordStore()
		got, err := empty.List(ctx, record.Filter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
