package devtools

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/tessel"
)

// client is one websocket subscriber. Frames that arrive while its queue
// is full are dropped; the next frame supersedes them anyway.
type client struct {
	conn *websocket.Conn
	send chan tessel.Frame
	once sync.Once
	done chan struct{}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("tessel: devtools upgrade failed", "error", err)
		return
	}
	c := &client{
		conn: conn,
		send: make(chan tessel.Frame, 8),
		done: make(chan struct{}),
	}
	// The current frame goes out first so a new client is never blank.
	c.send <- tessel.Frame{Text: ansi.Strip(s.app.Frame()), Focused: s.app.FocusedID().Peek()}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop discards client messages and notices disconnects.
func (s *Server) readLoop(c *client) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		c.close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Debug("tessel: devtools read error", "error", err)
			}
			return
		}
	}
}

func (s *Server) writeLoop(c *client) {
	for {
		select {
		case <-c.done:
			return
		case f := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			if err := c.conn.WriteJSON(f); err != nil {
				c.close()
				return
			}
		}
	}
}

// broadcast runs on the UI goroutine after every redraw and must not block.
func (s *Server) broadcast(f tessel.Frame) {
	f.Text = ansi.Strip(f.Text)
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- f:
		default:
		}
	}
}
