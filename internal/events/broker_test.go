package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func expectNone(t *testing.T, ch <-chan Event, wait time.Duration) {
	t.Helper()
	select {
	case e, ok := <-ch:
		if ok {
			t.Fatalf("unexpected event: %+v", e)
		}
	case <-time.After(wait):
	}
}

func TestBroker_DeliversToMatchingListeners(t *testing.T) {
	b := NewBroker(WithDebounce(10 * time.Millisecond))
	defer b.Close()

	ctx := context.Background()
	p1, err := b.Listen(ctx, "p1")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	p2, _ := b.Listen(ctx, "p2")
	all, _ := b.Listen(ctx, AllProjects)

	if err := b.SendEvent(Event{Type: EventLabelsChanged, ProjectID: "p1"}); err != nil {
		t.Fatalf("SendEvent failed: %v", err)
	}

	got := receive(t, p1)
	if got.Type != EventLabelsChanged || got.ProjectID != "p1" {
		t.Errorf("unexpected event: %+v", got)
	}
	if got.Timestamp.IsZero() || got.SequenceID == 0 {
		t.Errorf("timestamp and sequence should be set: %+v", got)
	}
	receive(t, all)
	expectNone(t, p2, 50*time.Millisecond)
}

func TestBroker_CoalescesBursts(t *testing.T) {
	b := NewBroker(WithDebounce(50 * time.Millisecond))
	defer b.Close()

	ch, _ := b.Listen(context.Background(), "p1")
	for i := 0; i < 10; i++ {
		if err := b.SendEvent(Event{Type: EventLabelsChanged, ProjectID: "p1"}); err != nil {
			t.Fatalf("SendEvent failed: %v", err)
		}
	}

	receive(t, ch)
	expectNone(t, ch, 120*time.Millisecond)
}

func TestBroker_SequenceIncreases(t *testing.T) {
	b := NewBroker(WithDebounce(5 * time.Millisecond))
	defer b.Close()

	ch, _ := b.Listen(context.Background(), AllProjects)
	_ = b.SendEvent(Event{Type: EventLabelsChanged, ProjectID: "a"})
	first := receive(t, ch)
	_ = b.SendEvent(Event{Type: EventLabelsChanged, ProjectID: "b"})
	second := receive(t, ch)

	if second.SequenceID <= first.SequenceID {
		t.Errorf("sequence did not increase: %d then %d", first.SequenceID, second.SequenceID)
	}
}

func TestBroker_ListenerContextCancel(t *testing.T) {
	b := NewBroker(WithDebounce(5 * time.Millisecond))
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := b.Listen(ctx, "p1")
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("listener channel not closed after cancel")
	}
}

func TestBroker_QueueFull(t *testing.T) {
	// No batcher running, so nothing drains the queue
	b := &Broker{listeners: map[int]*listener{}, eventQueue: make(chan Event, 1)}

	if err := b.SendEvent(Event{Type: EventLabelsChanged, ProjectID: "p"}); err != nil {
		t.Fatalf("first SendEvent failed: %v", err)
	}
	if err := b.SendEvent(Event{Type: EventLabelsChanged, ProjectID: "p"}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("SendEvent on full queue = %v, want ErrQueueFull", err)
	}
}

func TestBroker_CloseFlushesAndClosesListeners(t *testing.T) {
	b := NewBroker(WithDebounce(time.Hour))

	ch, _ := b.Listen(context.Background(), "p1")
	if err := b.SendEvent(Event{Type: EventLabelsChanged, ProjectID: "p1"}); err != nil {
		t.Fatalf("SendEvent failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	e, ok := <-ch
	if !ok || e.ProjectID != "p1" {
		t.Fatalf("expected flushed event before close, got %+v ok=%v", e, ok)
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected channel closed")
	}

	if err := b.SendEvent(Event{}); !errors.Is(err, ErrClosed) {
		t.Errorf("SendEvent after close = %v, want ErrClosed", err)
	}
	if _, err := b.Listen(context.Background(), "p1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Listen after close = %v, want ErrClosed", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestEvent_Matches(t *testing.T) {
	tests := []struct {
		event    string
		listener string
		want     bool
	}{
		{"p1", "p1", true},
		{"p1", "p2", false},
		{"p1", AllProjects, true},
		{AllProjects, "p2", true},
	}
	for _, tt := range tests {
		e := Event{ProjectID: tt.event}
		if got := e.Matches(tt.listener); got != tt.want {
			t.Errorf("Event{%q}.Matches(%q) = %v, want %v", tt.event, tt.listener, got, tt.want)
		}
	}
}
