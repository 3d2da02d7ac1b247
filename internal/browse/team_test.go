package browse

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamStoreLoad(t *testing.T) {
	store := newFakeStore(fakePlayers(5)...)
	store.teamIDs = []int{4, 1}

	team := NewTeamStore(store, logrus.New())
	require.NoError(t, team.Load(context.Background()))

	assert.True(t, team.Contains(1))
	assert.True(t, team.Contains(4))
	assert.False(t, team.Contains(2))
	assert.Equal(t, []int{1, 4}, team.IDs())
	assert.Equal(t, 2, team.Size())
}

func TestTeamStoreAddIsSuccessGated(t *testing.T) {
	store := newFakeStore(fakePlayers(5)...)
	store.failInsert[2] = true

	team := NewTeamStore(store, logrus.New())
	require.NoError(t, team.Load(context.Background()))

	require.NoError(t, team.AddPlayer(context.Background(), 1))
	assert.True(t, team.Contains(1))

	err := team.AddPlayer(context.Background(), 2)
	require.Error(t, err)
	// The remote write failed, so local membership must not have changed.
	assert.False(t, team.Contains(2))
	assert.Equal(t, []int{1}, team.IDs())
}

func TestTeamStoreRemoveIsSuccessGated(t *testing.T) {
	store := newFakeStore(fakePlayers(5)...)
	store.teamIDs = []int{1, 2}
	store.failDelete[2] = true

	team := NewTeamStore(store, logrus.New())
	require.NoError(t, team.Load(context.Background()))

	require.NoError(t, team.RemovePlayer(context.Background(), 1))
	assert.False(t, team.Contains(1))

	err := team.RemovePlayer(context.Background(), 2)
	require.Error(t, err)
	assert.True(t, team.Contains(2))
	assert.Equal(t, []int{2}, team.IDs())
}
