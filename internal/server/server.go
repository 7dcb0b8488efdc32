package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/config"
	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/optics"
	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/scene"
	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/typeid"
)

const maxBodySize = 1 << 20

// Server exposes the tracer over HTTP. Every request traces its own pass,
// so requests run concurrently without shared state beyond the session set.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	sessions *sessionSet
}

func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, logger: logger, sessions: newSessionSet()}
}

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recovery)
	r.Use(s.requestLogger)

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/trace", s.handleTrace).Methods("POST")
	api.HandleFunc("/ws", s.handleWebSocket).Methods("GET")
	return r
}

// Stop closes every open websocket session.
func (s *Server) Stop() {
	s.sessions.closeAll()
}

// trace decodes a scene and runs one pass. Scene files may lower the server
// limits but never raise them.
func (s *Server) trace(data []byte) (scene.Result, error) {
	sc, err := scene.ParseJSON(data)
	if err != nil {
		return scene.Result{}, err
	}
	base := s.cfg.TraceConfig(s.logger)
	tc := sc.TraceConfig(base)
	if tc.MaxIterations > base.MaxIterations {
		tc.MaxIterations = base.MaxIterations
	}
	if tc.MaxBounces > base.MaxBounces {
		tc.MaxBounces = base.MaxBounces
	}
	elements, err := sc.Build()
	if err != nil {
		return scene.Result{}, err
	}
	res := optics.Trace(elements, nil, tc)
	if res.CapReached {
		s.logger.Warn("trace stopped at iteration cap", "pass", res.PassID, "dropped", res.Dropped)
	}
	return scene.NewResult(sc.Name, res), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.sessions.len(),
	})
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	res, err := s.trace(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.Origins(),
	})
	if err != nil {
		s.logger.Error("websocket accept", "error", err)
		return
	}

	sess := newSession(s, conn, typeid.NewSessionID())
	s.sessions.add(sess)

	welcome, _ := json.Marshal(map[string]string{"sessionId": sess.ID})
	sess.Send(&Message{Type: TypeWelcome, Payload: welcome})

	ctx := r.Context()
	go sess.WritePump(ctx)
	sess.ReadPump(ctx)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Hijack passes the websocket upgrade through to the underlying writer.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error("panic in handler", "path", r.URL.Path, "panic", fmt.Sprint(v))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type sessionSet struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newSessionSet() *sessionSet {
	return &sessionSet{sessions: make(map[string]*Session)}
}

func (ss *sessionSet) add(s *Session) {
	ss.mu.Lock()
	ss.sessions[s.ID] = s
	ss.mu.Unlock()
	s.logger.Info("session opened")
}

func (ss *sessionSet) remove(s *Session) {
	ss.mu.Lock()
	_, ok := ss.sessions[s.ID]
	delete(ss.sessions, s.ID)
	ss.mu.Unlock()
	if ok {
		s.logger.Info("session closed")
	}
}

func (ss *sessionSet) len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

func (ss *sessionSet) closeAll() {
	ss.mu.RLock()
	open := make([]*Session, 0, len(ss.sessions))
	for _, s := range ss.sessions {
		open = append(open, s)
	}
	ss.mu.RUnlock()
	for _, s := range open {
		s.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}
