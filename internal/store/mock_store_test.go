package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStore_SaveAndGet(t *testing.T) {
	s := NewMockStore()
	ctx := context.Background()
	onto := testOntology()

	require.NoError(t, s.Save(ctx, onto))
	require.NoError(t, s.Save(ctx, onto))

	got, err := s.Get("base")
	require.NoError(t, err)
	assert.Same(t, onto, got)
	assert.Equal(t, 2, s.Saves())
	assert.Equal(t, 2*len(buildStatements(onto)), s.Statements())
}

func TestMockStore_GetMissing(t *testing.T) {
	_, err := NewMockStore().Get("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMockStore_SaveErr(t *testing.T) {
	s := NewMockStore()
	s.FailWith(errors.New("boom"))

	assert.EqualError(t, s.Save(context.Background(), testOntology()), "boom")
	assert.Equal(t, 0, s.Saves())
}

func TestMockStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, errors.Is(NewMockStore().Save(ctx, testOntology()), context.Canceled))
}

func TestMockStore_Close(t *testing.T) {
	s := NewMockStore()
	require.NoError(t, s.Close())
	assert.True(t, s.Closed())
}
