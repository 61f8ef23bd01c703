package event_test

import (
	"math"
	"testing"

	"github.com/vekarion/chronocollide/event"
	"github.com/vekarion/chronocollide/hitbox"
)

type registry map[hitbox.HbId]event.KeySet

func newRegistry(ids ...hitbox.HbId) registry {
	r := make(registry, len(ids))
	for _, id := range ids {
		r[id] = make(event.KeySet)
	}
	return r
}

func (r registry) lookup(id hitbox.HbId) event.KeySet { return r[id] }

func TestQueueOrdersByTimeThenFIFO(t *testing.T) {
	q := event.New()
	r := newRegistry(0, 1, 2)

	q.AddSolitaire(5, event.Event{Kind: event.Reiterate, A: 0}, r[0])
	q.AddSolitaire(1, event.Event{Kind: event.Reiterate, A: 1}, r[1])
	q.AddSolitaire(1, event.Event{Kind: event.Reiterate, A: 2}, r[2])

	first, ok := q.Next(1, r.lookup)
	if !ok || first.A != 1 {
		t.Fatalf("expected id 1 first (FIFO tie-break), got %+v ok=%v", first, ok)
	}
	second, ok := q.Next(1, r.lookup)
	if !ok || second.A != 2 {
		t.Fatalf("expected id 2 second, got %+v ok=%v", second, ok)
	}
	if q.PeekTime() != 5 {
		t.Fatalf("expected remaining event at time 5, got %v", q.PeekTime())
	}
}

func TestQueueNextReturnsFalseWhenTimeDoesNotMatch(t *testing.T) {
	q := event.New()
	r := newRegistry(0)
	q.AddSolitaire(5, event.Event{Kind: event.Reiterate, A: 0}, r[0])

	if _, ok := q.Next(1, r.lookup); ok {
		t.Fatal("expected no event at time 1")
	}
	if _, ok := q.Next(5, r.lookup); !ok {
		t.Fatal("expected the event to fire at time 5")
	}
}

func TestQueueSkipsEventsAtOrBeyondHighTime(t *testing.T) {
	q := event.New()
	r := newRegistry(0)
	q.AddSolitaire(event.HighTime, event.Event{Kind: event.Reiterate, A: 0}, r[0])

	if !math.IsInf(q.PeekTime(), 1) {
		t.Fatalf("expected an event at HighTime to be dropped, peek=%v", q.PeekTime())
	}
	if len(r[0]) != 0 {
		t.Fatal("expected no key registered for a dropped event")
	}
}

func TestQueueAddPairRegistersBothSides(t *testing.T) {
	q := event.New()
	r := newRegistry(0, 1)
	q.AddPair(3, event.Event{Kind: event.Collide, A: 0, B: 1}, r[0], r[1])

	if len(r[0]) != 1 || len(r[1]) != 1 {
		t.Fatalf("expected both sides to own one key, got %d/%d", len(r[0]), len(r[1]))
	}
}

func TestQueueClearRelatedCancelsReciprocalKeys(t *testing.T) {
	q := event.New()
	r := newRegistry(0, 1)
	q.AddPair(3, event.Event{Kind: event.Collide, A: 0, B: 1}, r[0], r[1])

	q.ClearRelated(0, r[0], r.lookup)
	if len(r[0]) != 0 {
		t.Fatal("expected id 0's key set to be empty after ClearRelated")
	}
	if len(r[1]) != 0 {
		t.Fatal("expected id 1's reciprocal key to be cancelled too")
	}
	if !math.IsInf(q.PeekTime(), 1) {
		t.Fatal("expected the queue to be empty after clearing its only event")
	}
}

func TestQueueClearRelatedLeavesUnrelatedEventsAlone(t *testing.T) {
	q := event.New()
	r := newRegistry(0, 1, 2)
	q.AddPair(3, event.Event{Kind: event.Collide, A: 0, B: 1}, r[0], r[1])
	q.AddSolitaire(4, event.Event{Kind: event.Reiterate, A: 2}, r[2])

	q.ClearRelated(0, r[0], r.lookup)
	if q.PeekTime() != 4 {
		t.Fatalf("expected the unrelated solitaire event to remain, peek=%v", q.PeekTime())
	}
}

func TestQueueEmptyPeekTimeIsInfinite(t *testing.T) {
	q := event.New()
	if !math.IsInf(q.PeekTime(), 1) {
		t.Fatal("expected +Inf from an empty queue")
	}
}
