package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ppif-diagnostic/internal/app"
	"ppif-diagnostic/internal/domain"
)

func TestWebSocketCompletionFeed(t *testing.T) {
	env := newTestEnv(t)

	u := "ws" + env.server.URL[len("http"):] + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Greeting arrives first.
	typ, _ := readNext(t, conn)
	if typ != "connected" {
		t.Fatalf("first message = %s, want connected", typ)
	}

	overall := 3.5
	env.hub.Publish(app.CompletionEvent{
		AssessmentID:    "a-1",
		OrganizationID:  "org-1",
		Name:            "Q1 Review",
		OverallMaturity: &overall,
		RiskLevel:       domain.RiskMedium,
		Recommendations: 4,
		CompletedAt:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	})

	typ, payload := readNext(t, conn)
	if typ != "assessment_completed" {
		t.Fatalf("message = %s, want assessment_completed", typ)
	}
	var evt app.CompletionEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if evt.AssessmentID != "a-1" || evt.RiskLevel != domain.RiskMedium {
		t.Fatalf("event = %+v", evt)
	}
	if evt.OverallMaturity == nil || *evt.OverallMaturity != 3.5 {
		t.Fatalf("overall = %v, want 3.5", evt.OverallMaturity)
	}
}

func readNext(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg.Type, msg.Payload
}
