// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package queue hands finished test results from executors to the reporter.
package queue

import (
	"sync"
)

// CompletionQueue is an unbounded FIFO safe for concurrent use. Items are
// dequeued in the order they were enqueued.
type CompletionQueue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []T
}

// New returns an empty CompletionQueue.
func New[T any]() *CompletionQueue[T] {
	q := &CompletionQueue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends v and wakes one waiting consumer.
func (q *CompletionQueue[T]) Enqueue(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, v)
	q.cond.Signal()
}

// Dequeue removes and returns the oldest item, blocking until one exists.
func (q *CompletionQueue[T]) Dequeue() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	return q.pop()
}

// TryDequeue is like Dequeue but returns false instead of blocking when the
// queue is empty.
func (q *CompletionQueue[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.pop(), true
}

// Len returns the number of queued items.
func (q *CompletionQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *CompletionQueue[T]) pop() T {
	v := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return v
}
