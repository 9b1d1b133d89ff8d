package models

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, input string) HistoryEntry {
	t.Helper()
	e, err := NewHistoryEntry(ActivityExplain, input, "result of "+input, time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local))
	require.NoError(t, err)
	return e
}

func TestAccount_WithEntry_NewestFirst(t *testing.T) {
	acc := NewAccount("pw")
	acc = acc.WithEntry(entry(t, "t1"))
	acc = acc.WithEntry(entry(t, "t2"))

	require.Len(t, acc.History, 2)
	assert.Equal(t, "t2", acc.History[0].Input)
	assert.Equal(t, "t1", acc.History[1].Input)
}

func TestAccount_WithEntry_CapsAtMax(t *testing.T) {
	acc := NewAccount("pw")
	for i := 1; i <= 21; i++ {
		acc = acc.WithEntry(entry(t, fmt.Sprintf("t%d", i)))
	}

	require.Len(t, acc.History, MaxHistoryEntries)
	for i, e := range acc.History {
		assert.Equal(t, fmt.Sprintf("t%d", 21-i), e.Input)
	}
}

func TestAccount_WithEntry_DoesNotMutateReceiver(t *testing.T) {
	acc := NewAccount("pw").WithEntry(entry(t, "t1"))
	before := acc.History[0]

	_ = acc.WithEntry(entry(t, "t2"))

	require.Len(t, acc.History, 1)
	assert.Equal(t, before, acc.History[0])
}

func TestNewAccount_SerialisesEmptyHistory(t *testing.T) {
	b, err := json.Marshal(NewAccount("pw"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"password":"pw","history":[]}`, string(b))
}

func TestTable_Clone_IsIndependent(t *testing.T) {
	orig := Table{"alice": NewAccount("pw").WithEntry(entry(t, "t1"))}
	c := orig.Clone()
	require.Empty(t, cmp.Diff(orig, c))

	c["alice"].History[0].Input = "changed"
	c["bob"] = NewAccount("x")

	assert.Equal(t, "t1", orig["alice"].History[0].Input)
	_, ok := orig["bob"]
	assert.False(t, ok)
}
