// Package chat orchestrates one conversational turn: pick the area, compose
// the system prompt, call the LLM, articulate the reply and record usage.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"atlas/internal/articulation"
	"atlas/internal/logging"
	"atlas/internal/perception"
	"atlas/internal/persona"
	"atlas/internal/prompt"
	"atlas/internal/types"
	"atlas/internal/usage"
)

var (
	// ErrNoUserMessage is returned when the transcript has no user turn.
	ErrNoUserMessage = errors.New("no user message")

	// ErrUnknownPersona is returned when a requested persona does not exist.
	ErrUnknownPersona = errors.New("unknown persona")
)

// DefaultMaxHistory is the transcript window used when none is configured.
const DefaultMaxHistory = 20

// Request is one chat turn as the caller sends it.
type Request struct {
	Messages  []types.Message     `json:"messages"`
	Area      string              `json:"area,omitempty"`
	Episode   string              `json:"episode,omitempty"`
	Persona   *persona.Descriptor `json:"persona,omitempty"`
	Situation string              `json:"situation,omitempty"`

	// RequestID correlates log lines; it is not read from the body.
	RequestID string `json:"-"`
}

// Response is the articulated reply.
type Response struct {
	Reply     string              `json:"reply"`
	Links     []articulation.Link `json:"links,omitempty"`
	Area      types.Area          `json:"area,omitempty"`
	Persona   string              `json:"persona,omitempty"`
	Provider  string              `json:"provider"`
	Model     string              `json:"model"`
	Usage     Usage               `json:"usage"`
	RequestID string              `json:"request_id,omitempty"`
}

// Usage is the token accounting for one turn.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Composed is the input the LLM will see for a request.
type Composed struct {
	System   string
	Messages []types.Message
	Area     types.Area
	Persona  string
}

// Recorder stores usage events. *usage.Tracker implements it.
type Recorder interface {
	Track(ctx context.Context, ev usage.UsageEvent) (usage.UsageEvent, error)
}

// Service answers chat turns. It is safe for concurrent use.
type Service struct {
	engine     *prompt.Engine
	personas   *persona.Builder
	llm        perception.LLMClient
	recorder   Recorder
	replies    *articulation.ReplyProcessor
	maxHistory int
}

// Options configures a Service. LLM and Recorder may be nil.
type Options struct {
	Engine     *prompt.Engine
	Personas   *persona.Builder
	LLM        perception.LLMClient
	Recorder   Recorder
	MaxHistory int
}

// NewService creates a chat service.
func NewService(opts Options) *Service {
	maxHistory := opts.MaxHistory
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Service{
		engine:     opts.Engine,
		personas:   opts.Personas,
		llm:        opts.LLM,
		recorder:   opts.Recorder,
		replies:    articulation.NewReplyProcessor(),
		maxHistory: maxHistory,
	}
}

// Configured reports whether an LLM client is available.
func (s *Service) Configured() bool {
	return s.llm != nil
}

// LinkStats returns the reply processor counters.
func (s *Service) LinkStats() articulation.ProcessorStats {
	return s.replies.Stats()
}

// Compose builds the system prompt and trimmed transcript for req without
// calling the LLM.
func (s *Service) Compose(req Request) (*Composed, error) {
	msgs := trimHistory(cleanMessages(req.Messages), s.maxHistory)
	if _, ok := types.LastUserMessage(msgs); !ok {
		return nil, ErrNoUserMessage
	}

	out := &Composed{Messages: msgs}

	if req.Area != "" {
		area, err := types.ParseArea(req.Area)
		if err != nil {
			return nil, err
		}
		out.Area = area
	} else if area, ok := perception.DetectAreaFromMessages(msgs); ok {
		out.Area = area
	}

	if req.Persona != nil && !req.Persona.IsZero() {
		system, ok := s.personas.Prompt(*req.Persona)
		if !ok {
			return nil, fmt.Errorf("%w: %s %q", ErrUnknownPersona, req.Persona.Type, req.Persona.Name)
		}
		out.System = prompt.WithSituation(system, req.Situation)
		out.Persona = strings.ToLower(req.Persona.Type) + ":" + req.Persona.Name
		return out, nil
	}

	out.System = s.engine.SystemPromptWithSituation(out.Area, prompt.AreaContext{Episode: req.Episode}, req.Situation)
	return out, nil
}

// Reply answers one chat turn.
func (s *Service) Reply(ctx context.Context, req Request) (*Response, error) {
	log := logging.WithRequestID(logging.CategoryChat, req.RequestID)
	startTime := time.Now()

	composed, err := s.Compose(req)
	if err != nil {
		log.Debug("Compose rejected request: %v", err)
		return nil, err
	}
	if s.llm == nil {
		return nil, perception.ErrNotConfigured
	}

	promptTokens := prompt.EstimateTokens(composed.System)
	log.Info("Chat turn: area=%q persona=%q messages=%d prompt_tokens~%d",
		composed.Area, composed.Persona, len(composed.Messages), promptTokens)

	completion, err := s.llm.Chat(ctx, composed.System, composed.Messages)
	if err != nil {
		log.Error("LLM call failed after %v: %v", time.Since(startTime), err)
		return nil, fmt.Errorf("llm chat: %w", err)
	}

	articulated := s.replies.Process(completion.Text)
	for _, w := range articulated.Warnings {
		log.Debug("Reply: %s", w)
	}

	resp := &Response{
		Reply:     articulated.Text,
		Links:     articulated.Links,
		Area:      composed.Area,
		Persona:   composed.Persona,
		Provider:  s.llm.Provider(),
		Model:     completion.Model,
		RequestID: req.RequestID,
		Usage: Usage{
			PromptTokens: promptTokens,
			InputTokens:  completion.InputTokens,
			OutputTokens: completion.OutputTokens,
		},
	}
	if resp.Model == "" {
		resp.Model = s.llm.Model()
	}

	if s.recorder != nil {
		_, err := s.recorder.Track(ctx, usage.UsageEvent{
			Provider:     resp.Provider,
			Model:        resp.Model,
			Area:         string(resp.Area),
			Persona:      resp.Persona,
			PromptTokens: promptTokens,
			InputTokens:  completion.InputTokens,
			OutputTokens: completion.OutputTokens,
		})
		if err != nil {
			log.Warn("Usage not recorded: %v", err)
		}
	}

	log.Info("Chat turn done in %v: links=%d out=%d", time.Since(startTime), len(resp.Links), completion.OutputTokens)
	return resp, nil
}

// cleanMessages drops turns with unknown roles or blank content.
func cleanMessages(in []types.Message) []types.Message {
	out := make([]types.Message, 0, len(in))
	for _, m := range in {
		if m.Role != types.RoleUser && m.Role != types.RoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

// trimHistory keeps the last max messages and then drops leading assistant
// turns so the transcript opens with the user.
func trimHistory(msgs []types.Message, max int) []types.Message {
	if max > 0 && len(msgs) > max {
		msgs = msgs[len(msgs)-max:]
	}
	for len(msgs) > 0 && msgs[0].Role != types.RoleUser {
		msgs = msgs[1:]
	}
	return msgs
}
