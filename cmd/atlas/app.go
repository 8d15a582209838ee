package main

import (
	"errors"
	"fmt"

	"atlas/internal/chat"
	"atlas/internal/config"
	"atlas/internal/corpus"
	"atlas/internal/logging"
	"atlas/internal/perception"
	"atlas/internal/persona"
	"atlas/internal/prompt"
	"atlas/internal/usage"
)

// app wires the services every command draws from.
type app struct {
	corpus   *corpus.Corpus
	engine   *prompt.Engine
	personas *persona.Builder
	llm      perception.LLMClient
	usage    *usage.Tracker
	chat     *chat.Service
}

type appOptions struct {
	withLLM   bool
	withUsage bool
}

func newApp(cfg *config.Config, opts appOptions) (*app, error) {
	log := logging.Get(logging.CategoryBoot)

	c, err := corpus.Load()
	if err != nil {
		return nil, err
	}
	engine, err := prompt.New(c)
	if err != nil {
		return nil, err
	}

	a := &app{
		corpus:   c,
		engine:   engine,
		personas: persona.NewBuilder(c),
	}

	if opts.withLLM {
		client, err := perception.NewClientFromConfig(cfg)
		switch {
		case errors.Is(err, perception.ErrNotConfigured):
			log.Warn("No API key for %s; chat is disabled", cfg.LLM.Provider)
		case err != nil:
			return nil, err
		default:
			a.llm = client
			log.Info("LLM client ready: %s/%s", client.Provider(), client.Model())
		}
	}

	if opts.withUsage && cfg.Usage.Enabled {
		tracker, err := usage.Open(cfg.Usage.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("usage store: %w", err)
		}
		a.usage = tracker
	}

	var recorder chat.Recorder
	if a.usage != nil {
		recorder = a.usage
	}
	a.chat = chat.NewService(chat.Options{
		Engine:     engine,
		Personas:   a.personas,
		LLM:        a.llm,
		Recorder:   recorder,
		MaxHistory: cfg.Chat.MaxHistory,
	})
	return a, nil
}

func (a *app) Close() error {
	if a.usage != nil {
		return a.usage.Close()
	}
	return nil
}
