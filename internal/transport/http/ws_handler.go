package http

import (
	"net/http"

	"go.uber.org/zap"

	"ppif-diagnostic/internal/app"
)

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// handleEvents upgrades the request to a websocket and streams assessment
// completion events until the client disconnects. The feed is one-way;
// inbound frames are drained only to detect the close.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events, cancel := s.hub.Subscribe()
	defer cancel()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(outboundMessage[string]{Type: "connected", Payload: "ok"}); err != nil {
		return
	}

	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[app.CompletionEvent]{
				Type:    "assessment_completed",
				Payload: evt,
			}); err != nil {
				s.log.Debug("ws write failed", zap.Error(err))
				return
			}
		case <-readerDone:
			return
		case <-r.Context().Done():
			return
		}
	}
}
