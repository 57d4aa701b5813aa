// Package web exposes the terminal over HTTP. Each browser gets its own
// isolated session, identified by a cookie; commands within a session
// run one at a time.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"termai/internal/ai"
	"termai/internal/config"
	"termai/internal/constants"
	"termai/internal/history"
	"termai/internal/logging"
	"termai/internal/safety"
	"termai/internal/terminal"
)

// SessionCookie is the cookie carrying the session ID
const SessionCookie = "termai_session"

// sessionTTL is how long an idle session survives before eviction
const sessionTTL = 30 * time.Minute

// webSession pairs a terminal session with a lock serializing its
// commands.
type webSession struct {
	mu       sync.Mutex
	sess     *terminal.Session
	lastUsed time.Time
}

// Server is the web terminal HTTP server.
type Server struct {
	cfg        *config.Config
	dispatcher *terminal.Dispatcher
	translator *ai.Translator
	store      history.Recorder
	logger     *logging.Logger

	mu       sync.Mutex
	sessions map[string]*webSession

	httpServer *http.Server
	started    time.Time
}

// NewServer creates a web terminal server. The translator may be nil
// when no API key is configured; /api/ai then reports AI as disabled.
func NewServer(cfg *config.Config, dispatcher *terminal.Dispatcher, translator *ai.Translator, store history.Recorder) *Server {
	s := &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		translator: translator,
		store:      store,
		logger:     logging.Default,
		sessions:   make(map[string]*webSession),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/execute", s.handleExecute)
	mux.HandleFunc("POST /api/ai", s.handleAI)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/status", s.handleStatus)

	s.httpServer = &http.Server{
		Addr:    cfg.WebAddr(),
		Handler: mux,
	}
	return s
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the listener and blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.started = time.Now()

	janitorCtx, cancelJanitor := context.WithCancel(ctx)
	defer cancelJanitor()
	go s.evictIdleSessions(janitorCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web terminal listening", logging.Fields{"addr": s.httpServer.Addr})
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// session returns the web session for the request, creating one and
// setting the cookie when the request carries none.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *webSession {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		id = c.Value
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if ws, ok := s.sessions[id]; ok {
			ws.lastUsed = time.Now()
			return ws
		}
	}

	sess, err := terminal.NewSession("")
	if err != nil {
		return nil
	}
	ws := &webSession{sess: sess, lastUsed: time.Now()}
	id = uuid.NewString()
	s.sessions[id] = ws

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debug("web session created", logging.Fields{"id": sess.ID()})
	return ws
}

// evictIdleSessions drops sessions idle past the TTL.
func (s *Server) evictIdleSessions(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-sessionTTL)
			s.mu.Lock()
			for id, ws := range s.sessions {
				if ws.lastUsed.Before(cutoff) {
					ws.sess.Close()
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

type executeRequest struct {
	Command string `json:"command"`
}

type executeResponse struct {
	Output     []string `json:"output"`
	Errors     []string `json:"errors,omitempty"`
	ExitCode   int      `json:"exit_code"`
	DurationMS int64    `json:"duration_ms"`
	CurrentDir string   `json:"current_dir"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws := s.session(w, r)
	if ws == nil {
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	ws.mu.Lock()
	result := s.dispatcher.Dispatch(r.Context(), req.Command, ws.sess)
	currentDir := ws.sess.WorkingDir()
	ws.mu.Unlock()

	if s.store != nil && req.Command != "" {
		s.store.Append(ws.sess.ID(), req.Command)
	}

	writeJSON(w, http.StatusOK, executeResponse{
		Output:     result.Stdout,
		Errors:     result.Stderr,
		ExitCode:   result.ExitCode,
		DurationMS: result.Duration.Milliseconds(),
		CurrentDir: currentDir,
	})
}

type aiRequest struct {
	Query string `json:"query"`
}

type aiResponse struct {
	Commands     []string `json:"commands"`
	Explanation  string   `json:"explanation"`
	Success      bool     `json:"success"`
	Risk         string   `json:"risk,omitempty"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// batchRisk returns the highest risk classification across a suggested
// command batch.
func batchRisk(commands []string) safety.RiskLevel {
	risk := safety.Safe
	for _, c := range commands {
		if r := safety.Classify(c); r > risk {
			risk = r
		}
	}
	return risk
}

// handleAI translates a natural language query and returns the
// suggestion as data. It never executes anything; the client must POST
// each confirmed command to /api/execute itself.
func (s *Server) handleAI(w http.ResponseWriter, r *http.Request) {
	if s.translator == nil {
		writeError(w, http.StatusServiceUnavailable, "AI is not configured")
		return
	}

	var req aiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws := s.session(w, r)
	if ws == nil {
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	ws.mu.Lock()
	tctx := ai.Context{
		WorkingDir: ws.sess.WorkingDir(),
		Entries:    listEntries(ws.sess.WorkingDir()),
		OS:         runtime.GOOS,
	}
	ws.mu.Unlock()

	suggestion, err := s.translator.Translate(r.Context(), req.Query, tctx)
	if err != nil {
		var terr *ai.TranslateError
		if errors.As(err, &terr) && terr.Kind == ai.MalformedResponse {
			writeError(w, http.StatusBadGateway, "AI returned an unusable response")
			return
		}
		writeError(w, http.StatusBadGateway, "AI provider unavailable")
		return
	}

	resp := aiResponse{
		Commands:     suggestion.Commands,
		Explanation:  suggestion.Explanation,
		Success:      suggestion.Interpreted(),
		ErrorMessage: suggestion.ErrorMessage,
	}
	if len(resp.Commands) > 0 {
		resp.Risk = batchRisk(resp.Commands).String()
	}
	writeJSON(w, http.StatusOK, resp)
}

type historyResponse struct {
	History []string `json:"history"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ws := s.session(w, r)
	if ws == nil {
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	ws.mu.Lock()
	entries := ws.sess.History()
	ws.mu.Unlock()

	if len(entries) > constants.WebHistoryLimit {
		entries = entries[len(entries)-constants.WebHistoryLimit:]
	}
	writeJSON(w, http.StatusOK, historyResponse{History: entries})
}

type statusResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Sessions      int    `json:"sessions"`
	AIEnabled     bool   `json:"ai_enabled"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sessions := len(s.sessions)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, statusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Sessions:      sessions,
		AIEnabled:     s.translator != nil && s.cfg.AIEnabled(),
	})
}

// listEntries returns the names in a directory for AI context. Failures
// produce an empty list rather than an error.
func listEntries(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
