package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chanSink struct {
	got   chan Event
	block chan struct{}
	err   error
}

func (s *chanSink) Log(shopID uint, userID *uint, action string, entity string, entityID *uint, metadata any) error {
	if s.block != nil {
		<-s.block
	}
	s.got <- Event{ShopID: shopID, UserID: userID, Action: action, Entity: entity, EntityID: entityID, Metadata: metadata}
	return s.err
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	sink := &chanSink{got: make(chan Event, 1)}
	d := NewDispatcher(sink, zap.NewNop())

	id := uint(3)
	d.Dispatch(Event{ShopID: 1, Action: "reservation_created", Entity: "reservation", EntityID: &id})

	select {
	case ev := <-sink.got:
		assert.Equal(t, uint(1), ev.ShopID)
		assert.Equal(t, "reservation_created", ev.Action)
		require.NotNil(t, ev.EntityID)
		assert.Equal(t, id, *ev.EntityID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &chanSink{got: make(chan Event, 2), err: errors.New("db down")}
	d := NewDispatcher(sink, zap.NewNop())

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})

	for _, want := range []string{"a", "b"} {
		select {
		case ev := <-sink.got:
			assert.Equal(t, want, ev.Action)
		case <-time.After(time.Second):
			t.Fatalf("event %s not delivered", want)
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &chanSink{got: make(chan Event, 10), block: make(chan struct{})}
	d := newDispatcher(sink, zap.NewNop(), 1)

	// o worker fica preso no primeiro evento; a fila comporta mais um
	d.Dispatch(Event{Action: "first"})
	require.Eventually(t, func() bool { return len(d.queue) == 0 }, time.Second, time.Millisecond)
	d.Dispatch(Event{Action: "queued"})

	done := make(chan struct{})
	go func() {
		d.Dispatch(Event{Action: "dropped"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked with full queue")
	}

	close(sink.block)
	var got []string
	for i := 0; i < 2; i++ {
		got = append(got, (<-sink.got).Action)
	}
	assert.Equal(t, []string{"first", "queued"}, got)
	assert.Empty(t, sink.got)
}
