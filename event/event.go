// Package event implements the time-ordered queue of internal
// simulation events the orchestrator drains: Collide/Separate events
// between a pair of hitboxes, and Reiterate/panic events belonging to
// a single hitbox. Events are ordered by (time, insertion index), with
// insertion index breaking ties FIFO so that two events scheduled for
// the same instant fire in the order they were scheduled.
package event

import (
	"container/heap"
	"math"

	"github.com/vekarion/chronocollide/hitbox"
)

// HighTime is the scheduling horizon: an event requested at or beyond
// this time is never actually queued, since it is treated as "not
// going to happen within any time frame the caller cares about".
const HighTime = 1e50

// pairIndexBase offsets indices assigned to pair events into their
// own numeric half, so a solitaire event's index can never collide
// with a pair event's index even though both are drawn from the same
// monotonic counter.
const pairIndexBase = uint64(1) << 63

// Key orders events: first by Time ascending, then by Index ascending
// as a FIFO tie-break. Each Index is issued once with one Time, so two
// Keys from the same Queue are equal exactly when their Indexes are.
type Key struct {
	Time  float64
	Index uint64
}

func (k Key) less(other Key) bool {
	if k.Time != other.Time {
		return k.Time < other.Time
	}

	return k.Index < other.Index
}

// Kind discriminates the internal event variants.
type Kind int

const (
	// Reiterate asks the owning hitbox to re-snapshot itself and
	// reschedule its own bookkeeping events.
	Reiterate Kind = iota
	// Collide fires when a tracked pair starts overlapping.
	Collide
	// Separate fires when a tracked, overlapping pair stops overlapping.
	Separate
	// PanicSmallHitbox fires if a hitbox was allowed to shrink below its
	// minimum tracked size without being updated first. Debug-only.
	PanicSmallHitbox
	// PanicDurationPassed fires if a hitbox's end time was reached
	// without the hitbox being updated first. Debug-only.
	PanicDurationPassed
)

// Event is an internal scheduled event: Reiterate/panic variants carry
// a single hitbox id in A (B is unused), Collide/Separate carry both.
type Event struct {
	Kind Kind
	A, B hitbox.HbId
}

func (e Event) isPair() bool {
	return e.Kind == Collide || e.Kind == Separate
}

// otherID returns the id on the opposite side of a pair event from
// id, and true, or zero and false for a solitaire event or an id not
// involved in this event.
func (e Event) otherID(id hitbox.HbId) (hitbox.HbId, bool) {
	switch {
	case !e.isPair():
		return 0, false
	case e.A == id:
		return e.B, true
	case e.B == id:
		return e.A, true
	default:
		return 0, false
	}
}

func (e Event) involvedIDs() []hitbox.HbId {
	if e.isPair() {
		return []hitbox.HbId{e.A, e.B}
	}

	return []hitbox.HbId{e.A}
}

// KeySet tracks which event Keys a given hitbox currently owns, so
// they can all be cancelled together when the hitbox changes.
type KeySet map[Key]struct{}

// Add records key as owned, reporting whether it was newly added.
func (s KeySet) Add(key Key) bool {
	if _, exists := s[key]; exists {
		return false
	}
	s[key] = struct{}{}

	return true
}

// Remove drops key, reporting whether it was present.
func (s KeySet) Remove(key Key) bool {
	if _, exists := s[key]; !exists {
		return false
	}
	delete(s, key)

	return true
}

// queueItem is the container/heap element: a Key paired with its
// Event, so Pop hands back everything the caller needs in one step.
// idx tracks the item's current slot in the heap slice so a later
// removal-by-key can call heap.Remove directly instead of scanning.
type queueItem struct {
	key   Key
	event Event
	idx   int
}

type itemHeap []*queueItem

func (h itemHeap) Len() int           { return len(h) }
func (h itemHeap) Less(i, j int) bool { return h[i].key.less(h[j].key) }
func (h itemHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}
func (h *itemHeap) Push(x interface{}) {
	item := x.(*queueItem)
	item.idx = len(*h)
	*h = append(*h, item)
}
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.idx = -1
	*h = old[:n-1]

	return item
}

// Queue is the ordered event store. It owns a min-heap for efficient
// peek/pop of the earliest event, plus a side map keyed by Key for the
// arbitrary-order removal ClearRelated needs (container/heap alone
// only gives efficient access to the minimum element).
type Queue struct {
	pq        itemHeap
	byKey     map[Key]*queueItem
	nextIndex uint64
}

// New builds an empty Queue.
func New() *Queue {
	return &Queue{byKey: make(map[Key]*queueItem)}
}

// KeySetLookup resolves a hitbox id to the KeySet it should register
// its scheduled event keys into; callers supply this so Queue does not
// need to know how hitbox records are stored.
type KeySetLookup func(hitbox.HbId) KeySet

// AddSolitaire schedules a single-hitbox event at time, registering
// its Key into keySet. No-ops if time is at or beyond HighTime.
func (q *Queue) AddSolitaire(time float64, ev Event, keySet KeySet) {
	key, ok := q.newKey(time, false)
	if !ok {
		return
	}
	q.insert(key, ev)
	if !keySet.Add(key) {
		panic("event: key already present in key set")
	}
}

// AddPair schedules a two-hitbox event at time, registering its Key
// into both sides' key sets. No-ops if time is at or beyond HighTime.
func (q *Queue) AddPair(time float64, ev Event, firstKeySet, secondKeySet KeySet) {
	key, ok := q.newKey(time, true)
	if !ok {
		return
	}
	q.insert(key, ev)
	if !firstKeySet.Add(key) || !secondKeySet.Add(key) {
		panic("event: key already present in key set")
	}
}

func (q *Queue) insert(key Key, ev Event) {
	item := &queueItem{key: key, event: ev}
	q.byKey[key] = item
	heap.Push(&q.pq, item)
}

func (q *Queue) newKey(time float64, forPair bool) (Key, bool) {
	if time >= HighTime {
		return Key{}, false
	}

	index := q.nextIndex
	q.nextIndex++
	if index >= pairIndexBase {
		panic("event: exhausted solitaire event index space")
	}
	if forPair {
		index += pairIndexBase
	}

	return Key{Time: time, Index: index}, true
}

// ClearRelated cancels every event owned by id's keySet: each event is
// removed from the queue, and for pair events the matching Key is
// removed from the other hitbox's key set via lookup. keySet is left
// empty.
func (q *Queue) ClearRelated(id hitbox.HbId, keySet KeySet, lookup KeySetLookup) {
	for key := range keySet {
		item, ok := q.byKey[key]
		if !ok {
			panic("event: key set references an unknown event")
		}
		q.remove(item)
		if otherID, isPair := item.event.otherID(id); isPair {
			if !lookup(otherID).Remove(key) {
				panic("event: pair peer missing reciprocal key")
			}
		}
	}
	for key := range keySet {
		delete(keySet, key)
	}
}

func (q *Queue) remove(item *queueItem) {
	delete(q.byKey, item.key)
	if item.idx < 0 || item.idx >= len(q.pq) || q.pq[item.idx] != item {
		panic("event: queue item missing from heap")
	}
	heap.Remove(&q.pq, item.idx)
}

// PeekTime returns the time of the earliest queued event, or +Inf if
// the queue is empty.
func (q *Queue) PeekTime() float64 {
	if len(q.pq) == 0 {
		return math.Inf(1)
	}

	return q.pq[0].key.Time
}

// Next pops and returns the earliest event if its time equals time,
// removing its Key from every involved hitbox's key set via lookup.
// Returns ok=false if the queue is empty or its earliest time differs.
func (q *Queue) Next(time float64, lookup KeySetLookup) (Event, bool) {
	if len(q.pq) == 0 || q.pq[0].key.Time != time {
		return Event{}, false
	}

	item := heap.Pop(&q.pq).(*queueItem)
	delete(q.byKey, item.key)
	for _, id := range item.event.involvedIDs() {
		if !lookup(id).Remove(item.key) {
			panic("event: popped event missing from a hitbox key set")
		}
	}

	return item.event, true
}
