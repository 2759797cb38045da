package app

import (
	"sync"
	"time"

	"ppif-diagnostic/internal/domain"
)

// CompletionEvent is published whenever an assessment finishes scoring.
type CompletionEvent struct {
	AssessmentID    string           `json:"assessmentId"`
	OrganizationID  string           `json:"organizationId"`
	Name            string           `json:"name"`
	OverallMaturity *float64         `json:"overallMaturity"`
	RiskLevel       domain.RiskLevel `json:"riskLevel,omitempty"`
	Recommendations int              `json:"recommendations"`
	CompletedAt     time.Time        `json:"completedAt"`
}

// Hub fans completion events out to subscribers (websocket feeds, webhook
// dispatchers). Slow subscribers lose stale events instead of blocking the
// publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[chan CompletionEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan CompletionEvent]struct{})}
}

// Subscribe registers a listener. The caller must invoke the returned cancel
// function to avoid leaks.
func (h *Hub) Subscribe() (<-chan CompletionEvent, func()) {
	ch := make(chan CompletionEvent, 8)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber, dropping the oldest
// buffered event for subscribers that have fallen behind.
func (h *Hub) Publish(evt CompletionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- evt
		}
	}
}
