package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreGet(t *testing.T) {
	store := NewSessionStore(time.Hour)

	s1 := store.Get(100)
	require.NotNil(t, s1)
	assert.Equal(t, StateIdle, s1.State)
	assert.Equal(t, 1, store.Len())

	// Same user gets the same session back.
	assert.Same(t, s1, store.Get(100))
	assert.Equal(t, 1, store.Len())

	// Different users are independent.
	s2 := store.Get(200)
	assert.NotSame(t, s1, s2)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStoreSweepEvictsIdleSessions(t *testing.T) {
	store := NewSessionStore(20 * time.Millisecond)

	store.Get(100)
	store.Get(200)
	require.Equal(t, 2, store.Len())

	time.Sleep(30 * time.Millisecond)

	// Touching one session keeps it alive through the sweep.
	store.Get(100)

	removed := store.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	// The evicted user starts over with a fresh idle session.
	s := store.Get(200)
	assert.Equal(t, StateIdle, s.State)
	assert.Nil(t, s.Draft)
}

func TestSessionStoreSweepKeepsFreshSessions(t *testing.T) {
	store := NewSessionStore(time.Hour)
	store.Get(100)

	assert.Zero(t, store.Sweep())
	assert.Equal(t, 1, store.Len())
}
