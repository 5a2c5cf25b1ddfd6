package worker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteKeepsOrder(t *testing.T) {
	pool := NewPool(4, func(_ context.Context, s string) (string, error) {
		if s == "" {
			return "", errors.New("empty")
		}
		return strings.ToUpper(s), nil
	})

	tasks := pool.Execute(context.Background(), []string{"a", "b", "", "d", "e"})
	require.Len(t, tasks, 5)
	for i, want := range []string{"A", "B", "", "D", "E"} {
		assert.True(t, tasks[i].Done)
		assert.Equal(t, want, tasks[i].Result)
	}
	assert.Error(t, tasks[2].Err)
	assert.NoError(t, tasks[3].Err)
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(0, func(context.Context, int) (int, error) { return 1, nil })
	tasks := pool.Execute(ctx, []int{1, 2, 3})
	require.Len(t, tasks, 3)
	assert.Equal(t, 3, tasks[2].Input)
}

func TestBatch(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Batch([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1}, {2}}, Batch([]int{1, 2}, 0))
	assert.Nil(t, Batch([]int{}, 3))
}
