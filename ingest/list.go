// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import "sync"

// List is a newest-first list capped at max items. A max of zero or less
// means uncapped.
type List[T any] struct {
	max int
	id  func(T) int64

	mu    sync.Mutex
	items []T
	seen  map[int64]struct{}
}

func NewList[T any](max int, id func(T) int64) *List[T] {
	return &List[T]{
		max:  max,
		id:   id,
		seen: make(map[int64]struct{}),
	}
}

// Merge adds the unseen entries of a newest-first batch and returns them,
// oldest first, in the order they were prepended.
func (l *List[T]) Merge(batch []T) []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	var added []T
	for i := len(batch) - 1; i >= 0; i-- {
		item := batch[i]
		id := l.id(item)
		if _, ok := l.seen[id]; ok {
			continue
		}
		l.seen[id] = struct{}{}
		added = append(added, item)
	}
	if len(added) == 0 {
		return nil
	}

	items := make([]T, 0, len(added)+len(l.items))
	for i := len(added) - 1; i >= 0; i-- {
		items = append(items, added[i])
	}
	items = append(items, l.items...)
	if l.max > 0 && len(items) > l.max {
		items = items[:l.max]
	}
	l.items = items
	return added
}

// Items returns a copy of the list, newest first.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

func (l *List[T]) MarkSeen(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[id] = struct{}{}
}

func (l *List[T]) Seen(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[id]
	return ok
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
