package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueRunsTasksInOrder(t *testing.T) {
	q := NewQueue(4)
	defer q.Close()

	var order []int
	for i := 0; i < 10; i++ {
		i := i
		q.Post(func(context.Context) { order = append(order, i) })
	}
	q.Flush()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestQueueSurvivesPanics(t *testing.T) {
	q := NewQueue(1)
	defer q.Close()

	ran := false
	q.Post(func(context.Context) { panic("boom") })
	q.Post(func(context.Context) { ran = true })
	q.Flush()

	assert.True(t, ran)
}

func TestQueuePostAfterClose(t *testing.T) {
	q := NewQueue(1)
	q.Close()

	assert.False(t, q.Post(func(context.Context) {}))
	q.Flush()
}
