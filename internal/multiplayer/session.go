package multiplayer

import "sync"

// ChannelSession delivers events to one player through a buffered channel.
type ChannelSession struct {
	id       SessionID
	name     string
	events   chan SessionEvent
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a new channel-based session handle.
// eventBufferSize controls how many events can be buffered before dropping.
func NewChannelSession(id SessionID, name string, eventBufferSize int) *ChannelSession {
	if eventBufferSize < 1 {
		eventBufferSize = 16
	}
	return &ChannelSession{
		id:     id,
		name:   name,
		events: make(chan SessionEvent, eventBufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Name returns the player name.
func (s *ChannelSession) Name() string {
	return s.name
}

// Send queues evt without blocking. When the buffer is full the oldest
// event is dropped.
func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSession) Events() <-chan SessionEvent {
	return s.events
}

// Done returns a channel that closes when the session ends.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the session as done.
// Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Hub tracks the connected sessions. Safe for concurrent use.
type Hub struct {
	mu       sync.RWMutex
	sessions map[SessionID]*ChannelSession
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[SessionID]*ChannelSession),
	}
}

// Join registers s and tells everyone else.
func (h *Hub) Join(s *ChannelSession) {
	h.mu.Lock()
	h.sessions[s.ID()] = s
	h.mu.Unlock()

	h.Broadcast(s.ID(), PlayerJoinedEvent{Name: s.Name()})
}

// Leave unregisters the session, closes it and tells everyone else.
func (h *Hub) Leave(id SessionID) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return
	}
	s.Close()
	h.Broadcast(id, PlayerLeftEvent{Name: s.Name()})
}

// Broadcast sends evt to every session except from.
func (h *Hub) Broadcast(from SessionID, evt SessionEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, s := range h.sessions {
		if id != from {
			s.Send(evt)
		}
	}
}

// Get retrieves a session by ID.
func (h *Hub) Get(id SessionID) (*ChannelSession, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Count returns the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
