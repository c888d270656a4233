package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/grunberg/internal/logging"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Message types sent on /events.
const (
	MessageConnected = "connected"
	MessageEvent     = "event"
	MessageDiff      = "diff"
)

// Message is one frame of the /events stream.
type Message struct {
	Type  string            `json:"type"`
	Event *domain.Event     `json:"event,omitempty"`
	Diff  *domain.StateDiff `json:"diff,omitempty"`
	State *domain.GameState `json:"state,omitempty"`
}

// Filter narrows what a stream client receives. Empty sets let everything through.
type Filter struct {
	Kinds    map[domain.EventKind]bool
	Sections map[string]bool
}

func (f Filter) allows(m Message) bool {
	switch m.Type {
	case MessageEvent:
		return len(f.Kinds) == 0 || f.Kinds[m.Event.Kind]
	case MessageDiff:
		if len(f.Sections) == 0 {
			return true
		}
		for _, sec := range m.Diff.Sections {
			if f.Sections[sec] {
				return true
			}
		}
		return false
	}
	return true
}

type subscriber struct {
	send   chan Message
	filter Filter
}

// StreamManager fans session events and state diffs out to stream clients.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	closed      bool

	diffMu sync.Mutex
	last   *domain.GameState

	logger *slog.Logger
}

// NewStreamManager creates a manager with no subscribers. A nil logger discards.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[*subscriber]struct{}),
		logger:      logger,
	}
}

// Attach forwards every event kind of session to subscribers, each followed
// by the state diff it caused. It returns a function that detaches.
func (sm *StreamManager) Attach(session ports.GameSession) func() {
	sm.diffMu.Lock()
	sm.last = session.State()
	sm.diffMu.Unlock()

	unsubs := make([]func(), 0, len(domain.EventKinds))
	for _, kind := range domain.EventKinds {
		unsubs = append(unsubs, session.Subscribe(kind, func(e domain.Event) {
			sm.Broadcast(Message{Type: MessageEvent, Event: &e})
			sm.broadcastDiff(session.State())
		}))
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func (sm *StreamManager) broadcastDiff(current *domain.GameState) {
	sm.diffMu.Lock()
	diff := domain.Diff(sm.last, current)
	sm.last = current
	sm.diffMu.Unlock()

	if diff != nil {
		sm.Broadcast(Message{Type: MessageDiff, Diff: diff})
	}
}

// Subscribe registers a client. The returned channel is closed by cancel or Close.
func (sm *StreamManager) Subscribe(filter Filter) (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sub := &subscriber{send: make(chan Message, sendBuffer), filter: filter}
	if sm.closed {
		close(sub.send)
		return sub.send, func() {}
	}
	sm.subscribers[sub] = struct{}{}

	return sub.send, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[sub]; ok {
			delete(sm.subscribers, sub)
			close(sub.send)
		}
	}
}

// Broadcast delivers m to every matching subscriber without blocking.
func (sm *StreamManager) Broadcast(m Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for sub := range sm.subscribers {
		if !sub.filter.allows(m) {
			continue
		}
		select {
		case sub.send <- m:
		default:
			// slow client
			sm.logger.Warn("Stream: client buffer full, dropping message", "type", m.Type)
		}
	}
}

// Count returns the number of connected subscribers.
func (sm *StreamManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Close disconnects every subscriber and refuses new ones.
func (sm *StreamManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.closed = true
	for sub := range sm.subscribers {
		delete(sm.subscribers, sub)
		close(sub.send)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// parseFilter reads ?kinds=ITEM_ADDED,QUEST_STARTED&watch=inventory,quests.
func parseFilter(r *http.Request) Filter {
	f := Filter{}
	if v := r.URL.Query().Get("kinds"); v != "" {
		f.Kinds = make(map[domain.EventKind]bool)
		for _, k := range strings.Split(v, ",") {
			f.Kinds[domain.EventKind(strings.ToUpper(strings.TrimSpace(k)))] = true
		}
	}
	if v := r.URL.Query().Get("watch"); v != "" {
		f.Sections = make(map[string]bool)
		for _, sec := range strings.Split(v, ",") {
			f.Sections[strings.TrimSpace(sec)] = true
		}
	}
	return f
}

// SubscribeEvents handles the GET /events request (websocket).
// The first frame carries the current state; later frames are events and diffs.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Stream: upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ch, cancel := s.Streams.Subscribe(parseFilter(r))
	defer cancel()
	s.logger.Info("Stream: client connected", "remote", r.RemoteAddr)

	// the read side only serves control frames and disconnect detection
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(m Message) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(m) == nil
	}
	if !write(Message{Type: MessageConnected, State: s.Session.State()}) {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			s.logger.Info("Stream: client disconnected", "remote", r.RemoteAddr)
			return
		case <-r.Context().Done():
			return
		case m, ok := <-ch:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"),
					time.Now().Add(writeWait))
				return
			}
			if !write(m) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
