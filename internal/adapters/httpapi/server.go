// Package httpapi exposes the divination table as a JSON API over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/cliching/internal/metrics"
	"github.com/aretw0/cliching/pkg/divination"
	"github.com/aretw0/cliching/pkg/oracle"
	"github.com/aretw0/cliching/pkg/ports"
	"github.com/aretw0/cliching/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server carries the dependencies of the API handlers.
type Server struct {
	sessions *session.Manager
	corpus   *oracle.Corpus
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewHandler builds the HTTP handler for the divination API. Store access
// goes through a session manager, so concurrent requests on one session
// cannot interleave their read-modify-write cycles.
func NewHandler(store ports.SessionStore, corpus *oracle.Corpus, reg *prometheus.Registry, logger *slog.Logger) http.Handler {
	server := &Server{
		sessions: session.NewManager(store, session.WithLogger(logger)),
		corpus:   corpus,
		metrics:  metrics.New(reg),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", server.createSession)
		r.Get("/sessions/{id}", server.getSession)
		r.Post("/sessions/{id}/cast", server.recast)
		r.Post("/sessions/{id}/change", server.change)
		r.Delete("/sessions/{id}", server.deleteSession)
		r.Get("/hexagrams/{number}", server.getHexagram)
	})

	return r
}

// HexagramView is the wire representation of a hexagram, lines plus the
// resolved corpus entry.
type HexagramView struct {
	Lines            []divination.Yao `json:"lines"`
	Identity         int              `json:"identity"`
	Binary           string           `json:"binary"`
	MutablePositions []int            `json:"mutable_positions,omitempty"`
	Interpretation   oracle.Entry     `json:"interpretation"`
}

// SessionResponse is the wire representation of a session.
type SessionResponse struct {
	ID       string        `json:"id"`
	Question string        `json:"question,omitempty"`
	Original *HexagramView `json:"original,omitempty"`
	Changed  *HexagramView `json:"changed,omitempty"`
}

// ChangeResponse reports a derivation: the derived hexagram plus which
// selected positions actually changed and which were skipped as young.
type ChangeResponse struct {
	Changed  *HexagramView `json:"changed"`
	Changing []int         `json:"changing_positions"`
	Skipped  []int         `json:"skipped_positions,omitempty"`
}

type createSessionRequest struct {
	Question string `json:"question"`
}

type changeRequest struct {
	Positions []int `json:"positions"`
}

func (s *Server) view(h *divination.Hexagram) *HexagramView {
	if h == nil {
		return nil
	}

	entry, err := s.corpus.Lookup(h.Identity())
	if err != nil {
		// Unreachable: a hexagram identity is always in range.
		s.logger.Error("corpus lookup failed", "error", err)
	}

	yaos := h.Yaos()
	return &HexagramView{
		Lines:            yaos[:],
		Identity:         h.Identity(),
		Binary:           h.Binary(),
		MutablePositions: h.MutablePositions(),
		Interpretation:   entry,
	}
}

func (s *Server) sessionResponse(id string, sess *divination.Session) SessionResponse {
	return SessionResponse{
		ID:       id,
		Question: sess.Question,
		Original: s.view(sess.Original),
		Changed:  s.view(sess.Changed),
	}
}

func (s *Server) cast(w http.ResponseWriter) (*divination.Hexagram, bool) {
	seed, err := divination.NewSeed()
	if err != nil {
		// Entropy failures are fatal to the cast, never papered over.
		http.Error(w, "Entropy source unavailable", http.StatusInternalServerError)
		return nil, false
	}

	hexagram := divination.NewCaster(seed).Cast()

	number, err := oracle.KingWen(hexagram.Identity())
	if err == nil {
		s.metrics.Casts.WithLabelValues(strconv.Itoa(number)).Inc()
	}
	return hexagram, true
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	hexagram, ok := s.cast(w)
	if !ok {
		return
	}

	id := uuid.NewString()
	sess := &divination.Session{
		Question: body.Question,
		Original: hexagram,
	}

	if err := s.sessions.Create(r.Context(), id, sess); err != nil {
		s.logger.Error("save session failed", "error", err, "session_id", id)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusCreated, s.sessionResponse(id, sess))
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (string, *divination.Session, bool) {
	id := chi.URLParam(r, "id")

	sess, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, divination.ErrSessionNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
		} else {
			s.logger.Error("load session failed", "error", err, "session_id", id)
			http.Error(w, "Failed to load session", http.StatusInternalServerError)
		}
		return "", nil, false
	}

	return id, sess, true
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionResponse(id, sess))
}

func (s *Server) recast(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hexagram, ok := s.cast(w)
	if !ok {
		return
	}

	sess, err := s.sessions.Update(r.Context(), id, func(sess *divination.Session) error {
		// A fresh original always discards the derived hexagram.
		sess.Original = hexagram
		sess.Changed = nil
		return nil
	})
	if err != nil {
		s.sessionError(w, err, id)
		return
	}

	s.writeJSON(w, http.StatusOK, s.sessionResponse(id, sess))
}

func (s *Server) change(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body changeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var changed *divination.Hexagram
	var changing, skipped []int
	_, err := s.sessions.Update(r.Context(), id, func(sess *divination.Session) error {
		var err error
		changing, skipped, err = sess.Original.ChangingPositions(body.Positions)
		if err != nil {
			return err
		}

		changed, err = sess.Original.Change(changing)
		if err != nil {
			return err
		}

		sess.Changed = changed
		return nil
	})
	if err != nil {
		if errors.Is(err, divination.ErrPositionRange) {
			// Out-of-range positions are rejected, never clamped.
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.sessionError(w, err, id)
		return
	}

	s.metrics.Changes.Inc()
	s.writeJSON(w, http.StatusOK, ChangeResponse{
		Changed:  s.view(changed),
		Changing: changing,
		Skipped:  skipped,
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete session failed", "error", err, "session_id", id)
		http.Error(w, "Failed to delete session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sessionError(w http.ResponseWriter, err error, id string) {
	if errors.Is(err, divination.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	s.logger.Error("session update failed", "error", err, "session_id", id)
	http.Error(w, "Failed to update session", http.StatusInternalServerError)
}

func (s *Server) getHexagram(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		http.Error(w, "Hexagram number must be an integer", http.StatusBadRequest)
		return
	}

	if number < 1 || number > 64 {
		http.Error(w, "Hexagram number must be between 1 and 64", http.StatusNotFound)
		return
	}

	entry, _ := s.corpus.ByNumber(number)
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
