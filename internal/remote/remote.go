// Package remote lets an embedding driver (a spreadsheet integration, a
// test harness) steer the player over a websocket, replacing direct state
// mutation with an inbound message channel the controller subscribes to.
package remote

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Message types exchanged with a driver.
const (
	TypeUpdate = "TTS_UPDATE"
	TypeReady  = "TTS_READY"
)

// Message is a remote-control payload. Text is a pointer so a driver can
// clear the text with an explicit empty string; absent fields are ignored.
type Message struct {
	Type     string  `json:"type"`
	Text     *string `json:"text,omitempty"`
	Language string  `json:"language,omitempty"`
	AutoPlay bool    `json:"autoPlay,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server accepts driver connections and fans inbound update messages into a
// single channel.
type Server struct {
	logger *log.Logger
	msgs   chan Message
}

func NewServer(logger *log.Logger) *Server {
	return &Server{
		logger: logger,
		msgs:   make(chan Message, 16),
	}
}

// Messages is the inbound control channel the controller attaches to.
func (s *Server) Messages() <-chan Message { return s.msgs }

// ServeHTTP upgrades the connection, greets the driver with TTS_READY and
// forwards update messages until the driver disconnects. Payloads that are
// not updates are dropped, not errors.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Printf("remote: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(Message{Type: TypeReady}); err != nil {
		s.logger.Printf("remote: ready write failed: %v", err)
		return
	}
	s.logger.Printf("remote: driver connected from %s", req.RemoteAddr)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("remote: driver disconnected")
			} else {
				s.logger.Printf("remote: read error: %v", err)
			}
			return
		}

		if msg.Type != TypeUpdate {
			continue
		}

		select {
		case s.msgs <- msg:
		case <-req.Context().Done():
			return
		}
	}
}
