package event_test

import (
	"testing"

	"github.com/vekarion/chronocollide/event"
)

func BenchmarkQueueAddAndNext(b *testing.B) {
	q := event.New()
	r := newRegistry(0, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.AddPair(float64(i), event.Event{Kind: event.Collide, A: 0, B: 1}, r[0], r[1])
		q.Next(float64(i), r.lookup)
	}
}

func BenchmarkQueueClearRelated(b *testing.B) {
	q := event.New()
	r := newRegistry(0, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.AddPair(float64(i)+1, event.Event{Kind: event.Collide, A: 0, B: 1}, r[0], r[1])
		q.ClearRelated(0, r[0], r.lookup)
	}
}
