// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/field"
)

// DefaultEventQueueCapacity is the default capacity of an [EventQueue].
const DefaultEventQueueCapacity = 400

// Event is a value on its way to an eventIn.
type Event struct {
	Timestamp float64
	Value     field.Value
	To        Node
	EventIn   string
}

// EventQueue is a fixed capacity ring buffer of events, delivered in
// the order they were added. When the queue is full, adding an event
// evicts and discards the oldest one, so producers never block.
type EventQueue struct {
	events []Event
	first  int
	count  int
}

// NewEventQueue returns an empty queue with the given capacity,
// or [DefaultEventQueueCapacity] if it is not positive.
func NewEventQueue(capacity int) *EventQueue {
	if capacity <= 0 {
		capacity = DefaultEventQueueCapacity
	}
	return &EventQueue{events: make([]Event, capacity)}
}

// Enqueue adds e to the end of the queue, returning whether the
// oldest event was evicted to make room.
func (q *EventQueue) Enqueue(e Event) (evicted bool) {
	if q.count == len(q.events) {
		q.events[q.first] = Event{}
		q.first = (q.first + 1) % len(q.events)
		q.count--
		evicted = true
	}
	q.events[(q.first+q.count)%len(q.events)] = e
	q.count++
	return evicted
}

// Dequeue removes and returns the oldest event.
func (q *EventQueue) Dequeue() (Event, bool) {
	if q.count == 0 {
		return Event{}, false
	}
	e := q.events[q.first]
	q.events[q.first] = Event{}
	q.first = (q.first + 1) % len(q.events)
	q.count--
	return e, true
}

// Peek returns the oldest event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if q.count == 0 {
		return Event{}, false
	}
	return q.events[q.first], true
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int { return q.count }

// Cap returns the capacity of the queue.
func (q *EventQueue) Cap() int { return len(q.events) }

// Empty returns whether the queue has no events.
func (q *EventQueue) Empty() bool { return q.count == 0 }

// Flush discards all of the queued events.
func (q *EventQueue) Flush() {
	clear(q.events)
	q.first, q.count = 0, 0
}
