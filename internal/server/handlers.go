package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"atlas/internal/chat"
	"atlas/internal/perception"
	"atlas/internal/persona"
	"atlas/internal/prompt"
	"atlas/internal/types"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: w.Header().Get(RequestIDHeader)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"name":           s.cfg.Name,
		"version":        s.cfg.Version,
		"llm_configured": s.chat.Configured(),
		"uptime_seconds": int(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleAreas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"areas": types.AreaStrings()})
}

type classifyRequest struct {
	Messages []types.Message `json:"messages"`
}

type classifyResponse struct {
	Area    types.Area `json:"area"`
	Matched bool       `json:"matched"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	area, ok := perception.DetectAreaFromMessages(req.Messages)
	writeJSON(w, http.StatusOK, classifyResponse{Area: area, Matched: ok})
}

type promptResponse struct {
	Area    types.Area `json:"area,omitempty"`
	Episode string     `json:"episode,omitempty"`
	Prompt  string     `json:"prompt"`
	Chars   int        `json:"chars"`
	Tokens  int        `json:"tokens"`
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	area, err := types.ParseArea(q.Get("area"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	episode := strings.TrimSpace(q.Get("episode"))

	p := s.engine.SystemPromptWithSituation(area, prompt.AreaContext{Episode: episode}, q.Get("situation"))
	writeJSON(w, http.StatusOK, promptResponse{
		Area:    area,
		Episode: episode,
		Prompt:  p,
		Chars:   len(p),
		Tokens:  prompt.EstimateTokens(p),
	})
}

func (s *Server) handlePromptStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats())
}

func (s *Server) handlePersona(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d := persona.Descriptor{Type: q.Get("type"), Name: q.Get("name")}
	if d.Type == "" || d.Name == "" {
		writeError(w, http.StatusBadRequest, "type and name are required")
		return
	}

	p, ok := s.personas.Prompt(d)
	if !ok {
		writeError(w, http.StatusNotFound, "no "+d.Type+" persona named "+d.Name)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"type":   strings.ToLower(d.Type),
		"name":   d.Name,
		"prompt": p,
		"tokens": prompt.EstimateTokens(p),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !s.chat.Configured() {
		writeError(w, http.StatusServiceUnavailable, "chat is not configured: set ANTHROPIC_API_KEY or GEMINI_API_KEY")
		return
	}

	var req chat.Request
	if !decodeBody(w, r, &req) {
		return
	}
	req.RequestID = RequestIDFromContext(r.Context())

	resp, err := s.chat.Reply(r.Context(), req)
	if err != nil {
		writeError(w, chatErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func chatErrorStatus(err error) int {
	switch {
	case errors.Is(err, chat.ErrNoUserMessage),
		errors.Is(err, chat.ErrUnknownPersona),
		errors.Is(err, types.ErrUnknownArea):
		return http.StatusBadRequest
	case errors.Is(err, perception.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	if s.usage == nil {
		writeError(w, http.StatusNotFound, "usage tracking is disabled")
		return
	}
	stats, err := s.usage.Stats(r.Context())
	if err != nil {
		logErr(r, "usage stats: %v", err)
		writeError(w, http.StatusInternalServerError, "could not read usage")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": stats,
		"links": s.chat.LinkStats(),
	})
}
