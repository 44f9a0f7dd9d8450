package main

import (
	"context"

	"github.com/comigor/casehelper-go/internal/agent"
	"github.com/comigor/casehelper-go/internal/config"
	"github.com/comigor/casehelper-go/internal/evidence"
	"github.com/comigor/casehelper-go/internal/export"
	"github.com/comigor/casehelper-go/internal/history"
	"github.com/comigor/casehelper-go/internal/llm"
	"github.com/comigor/casehelper-go/internal/profile"
	"github.com/comigor/casehelper-go/internal/store"
	"github.com/comigor/casehelper-go/internal/timeline"
	"github.com/comigor/casehelper-go/pkg/tools"
)

// app wires one session: the three persisted entities, the assistant and the
// session-only evidence holder.
type app struct {
	cfg       *config.Config
	backend   store.Backend
	log       *history.Log
	timeline  *timeline.Tracker
	profile   *profile.Profile
	assistant *agent.Assistant
	evidence  *evidence.Holder
	layout    export.Layout
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	client, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	return newAppWith(cfg, store.Open(cfg.Storage), client), nil
}

func newAppWith(cfg *config.Config, b store.Backend, client llm.Client) *app {
	log := history.Open(b)
	return &app{
		cfg:       cfg,
		backend:   b,
		log:       log,
		timeline:  timeline.Open(b),
		profile:   profile.Open(b),
		assistant: agent.New(client, log),
		evidence:  evidence.NewHolder(cfg.Evidence),
		layout:    export.LayoutFromConfig(cfg.Export),
	}
}

func (a *app) sources() export.Sources {
	return export.Sources{Log: a.log, Timeline: a.timeline, Profile: a.profile}
}

func (a *app) tools() *tools.ToolManager {
	return tools.NewCaseToolManager(tools.Case{Assistant: a.assistant, Timeline: a.timeline, Profile: a.profile})
}

func (a *app) Close() error {
	return a.backend.Close()
}
