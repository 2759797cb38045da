package app

import (
	"fmt"
	"testing"
)

func TestHubDeliversToAllSubscribers(t *testing.T) {
	hub := NewHub()
	a, cancelA := hub.Subscribe()
	defer cancelA()
	b, cancelB := hub.Subscribe()
	defer cancelB()

	hub.Publish(CompletionEvent{AssessmentID: "a-1"})

	for name, ch := range map[string]<-chan CompletionEvent{"a": a, "b": b} {
		select {
		case evt := <-ch:
			if evt.AssessmentID != "a-1" {
				t.Fatalf("subscriber %s got %s", name, evt.AssessmentID)
			}
		default:
			t.Fatalf("subscriber %s got nothing", name)
		}
	}
}

func TestHubDropsStaleEventsForSlowSubscribers(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	// Overfill the buffer; the oldest events are discarded, not the newest.
	for i := 0; i < 20; i++ {
		hub.Publish(CompletionEvent{AssessmentID: fmt.Sprintf("a-%d", i)})
	}

	var last CompletionEvent
	drained := 0
	for {
		select {
		case evt := <-ch:
			last = evt
			drained++
			continue
		default:
		}
		break
	}
	if drained == 0 || drained > 8 {
		t.Fatalf("drained %d events, want at most the buffer size", drained)
	}
	if last.AssessmentID != "a-19" {
		t.Fatalf("last event = %s, want the newest a-19", last.AssessmentID)
	}
}

func TestHubCancelIsIdempotent(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	cancel()
	cancel() // second cancel must not panic or double-close

	// Publishing after cancel reaches no one but must not block.
	hub.Publish(CompletionEvent{AssessmentID: "a-1"})
}
