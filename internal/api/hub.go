package api

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/playroot/daily-arcade-go/internal/session"
	"github.com/playroot/daily-arcade-go/internal/store"
)

// hosted is one server-side session. Events from HTTP and websocket readers
// are serialized behind mu; subscribers receive a state snapshot after every
// applied event.
type hosted struct {
	mu   sync.Mutex
	sess *session.Session
	subs map[chan []byte]struct{}
}

// Hub owns the live hosted sessions. Completed sessions stay resident until
// evicted so result polling does not race the terminal event.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*hosted
	db       store.DB
	logger   *slog.Logger
}

// NewHub creates a session hub backed by db for snapshots and results.
func NewHub(db store.DB, logger *slog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*hosted),
		db:       db,
		logger:   logger,
	}
}

// Add registers a started session and persists its first snapshot.
func (h *Hub) Add(s *session.Session) {
	hs := &hosted{sess: s, subs: make(map[chan []byte]struct{})}
	id := s.ID().String()

	s.OnResult(func(res session.Result) {
		if err := h.db.SaveResult(&res); err != nil {
			h.logger.Error("save result", "session", id, "error", err)
		}
		metricSessionsCompleted.WithLabelValues(string(res.Config.Mechanic), wonLabel(res.Won)).Inc()
		metricActiveSessions.Dec()
	})

	h.mu.Lock()
	h.sessions[id] = hs
	h.mu.Unlock()

	metricActiveSessions.Inc()
	h.persist(hs)
}

// Get returns the hosted session for id, or nil.
func (h *Hub) Get(id string) *hosted {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessions[id]
}

// Remove evicts a session from memory. Its snapshot and result stay in the
// store.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	hs, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return
	}
	hs.mu.Lock()
	for ch := range hs.subs {
		close(ch)
	}
	hs.subs = make(map[chan []byte]struct{})
	hs.mu.Unlock()
}

// Apply runs fn under the session lock, then persists and broadcasts the
// updated state. fn's error passes through untouched.
func (h *Hub) Apply(hs *hosted, fn func(*session.Session) error) error {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	err := fn(hs.sess)
	if err != nil {
		return err
	}

	h.persistLocked(hs)
	h.broadcastLocked(hs)
	return nil
}

// Snapshot marshals the session state under the lock.
func (h *Hub) Snapshot(hs *hosted) ([]byte, error) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return marshalSnapshot(hs.sess)
}

// Subscribe attaches a state stream to the session. The returned channel
// closes when the subscription is cancelled or the session is evicted.
func (h *Hub) Subscribe(hs *hosted) (<-chan []byte, func()) {
	ch := make(chan []byte, 8)
	hs.mu.Lock()
	hs.subs[ch] = struct{}{}
	hs.mu.Unlock()

	cancel := func() {
		hs.mu.Lock()
		if _, ok := hs.subs[ch]; ok {
			delete(hs.subs, ch)
			close(ch)
		}
		hs.mu.Unlock()
	}
	return ch, cancel
}

// persist saves a snapshot, logging and swallowing failures: persistence
// never aborts a running session.
func (h *Hub) persist(hs *hosted) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	h.persistLocked(hs)
}

func (h *Hub) persistLocked(hs *hosted) {
	st := hs.sess.State()
	stateJSON, err := json.Marshal(st)
	if err != nil {
		h.logger.Error("marshal session state", "session", hs.sess.ID(), "error", err)
		return
	}
	rec := &store.SessionRecord{
		ID:        hs.sess.ID().String(),
		Seed:      st.Config.Seed,
		Mechanic:  string(st.Config.Mechanic),
		StateJSON: string(stateJSON),
		Completed: st.Completed,
	}
	if err := h.db.SaveSession(rec); err != nil {
		h.logger.Error("save session snapshot", "session", rec.ID, "error", err)
	}
}

func (h *Hub) broadcastLocked(hs *hosted) {
	if len(hs.subs) == 0 {
		return
	}
	payload, err := marshalSnapshot(hs.sess)
	if err != nil {
		h.logger.Error("marshal snapshot", "session", hs.sess.ID(), "error", err)
		return
	}
	for ch := range hs.subs {
		select {
		case ch <- payload:
		default:
			// Slow consumer; drop this frame rather than stall the session.
		}
	}
}

func marshalSnapshot(s *session.Session) ([]byte, error) {
	resp := SessionResponse{
		ID:    s.ID().String(),
		Seed:  s.State().Config.Seed,
		State: s.State(),
	}
	if res, ok := s.Result(); ok {
		resp.Result = &res
	}
	return json.Marshal(resp)
}

func wonLabel(won bool) string {
	if won {
		return "won"
	}
	return "lost"
}
