package inmemory

import (
	"log/slog"
	"sync"

	"github.com/streamify/server/internal/repository/session"
)

// Repo keeps live sessions keyed by session id.
type Repo[T any] struct {
	sessions map[string]T
	mu       sync.RWMutex
}

func NewRepo[T any]() *Repo[T] {
	return &Repo[T]{
		sessions: make(map[string]T),
	}
}

func (r *Repo[T]) Add(id string, s T) error {
	funcName := "session.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	slog.Debug(funcName, "session_id", id)
	if _, ok := r.sessions[id]; ok {
		slog.Info(funcName, "error", session.ErrAlreadyExists)
		return session.ErrAlreadyExists
	}

	r.sessions[id] = s

	slog.Debug(funcName, "result", "OK")
	return nil
}

func (r *Repo[T]) Get(id string) (T, error) {
	funcName := "session.inmemory.Get"
	r.mu.RLock()
	defer r.mu.RUnlock()

	slog.Debug(funcName, "session_id", id)
	s, ok := r.sessions[id]
	if !ok {
		slog.Info(funcName, "error", session.ErrNotFound)
		return s, session.ErrNotFound
	}

	slog.Debug(funcName, "result", "OK")
	return s, nil
}

// Remove deletes the session and returns it so the caller can tear it down.
func (r *Repo[T]) Remove(id string) (T, error) {
	funcName := "session.inmemory.Remove"
	r.mu.Lock()
	defer r.mu.Unlock()

	slog.Debug(funcName, "session_id", id)
	s, ok := r.sessions[id]
	if !ok {
		slog.Info(funcName, "error", session.ErrNotFound)
		return s, session.ErrNotFound
	}

	delete(r.sessions, id)

	slog.Debug(funcName, "result", "OK")
	return s, nil
}

func (r *Repo[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}

	return ids
}
