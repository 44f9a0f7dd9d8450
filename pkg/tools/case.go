package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/comigor/casehelper-go/internal/agent"
	"github.com/comigor/casehelper-go/internal/export"
	"github.com/comigor/casehelper-go/internal/logger"
	"github.com/comigor/casehelper-go/internal/profile"
	"github.com/comigor/casehelper-go/internal/timeline"
)

// Case bundles the entities the case tools operate on.
type Case struct {
	Assistant *agent.Assistant
	Timeline  *timeline.Tracker
	Profile   *profile.Profile
}

// NewCaseToolManager registers every case tool against c.
func NewCaseToolManager(c Case) *ToolManager {
	m := NewToolManager()
	for _, t := range []Tool{
		&AskTool{c},
		&AddTimelineEventTool{c},
		&ListTimelineTool{c},
		&UpdateProfileTool{c},
		&ShowProfileTool{c},
		&ExportTextTool{c},
	} {
		if err := m.RegisterTool(t); err != nil {
			logger.L.Warn("Tool already registered. Skipping.", "tool", t.Name())
		}
	}
	return m
}

func decodeArgs(args string, v any) error {
	if strings.TrimSpace(args) == "" {
		args = "{}"
	}
	if err := json.Unmarshal([]byte(args), v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// AskTool asks the case assistant a question.
type AskTool struct{ c Case }

func (t *AskTool) Name() string { return "ask_question" }

func (t *AskTool) Description() string {
	return "Ask the dependency case assistant a question. The question and answer are added to the conversation."
}

func (t *AskTool) Params() []Param {
	return []Param{{Name: "question", Description: "Question about the case", Required: true}}
}

func (t *AskTool) Run(ctx context.Context, args string) (string, error) {
	var a struct {
		Question string `json:"question"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return "", err
	}
	logger.L.Info("ask tool invoked", "question_len", len(a.Question))
	turn, err := t.c.Assistant.Ask(ctx, a.Question)
	if err != nil {
		return "", err
	}
	return turn.Text, nil
}

// AddTimelineEventTool appends a dated event.
type AddTimelineEventTool struct{ c Case }

func (t *AddTimelineEventTool) Name() string { return "add_timeline_event" }

func (t *AddTimelineEventTool) Description() string {
	return "Record a dated event (hearing, deadline, visit) on the case timeline."
}

func (t *AddTimelineEventTool) Params() []Param {
	return []Param{
		{Name: "date", Description: "Calendar date, YYYY-MM-DD", Required: true},
		{Name: "description", Description: "What happened or is due", Required: true},
	}
}

func (t *AddTimelineEventTool) Run(ctx context.Context, args string) (string, error) {
	var a timeline.Event
	if err := decodeArgs(args, &a); err != nil {
		return "", err
	}
	events, err := t.c.Timeline.Add(a.Date, a.Description)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Added. The timeline now has %d event(s).", len(events)), nil
}

// ListTimelineTool lists the timeline in entry order.
type ListTimelineTool struct{ c Case }

func (t *ListTimelineTool) Name() string { return "list_timeline" }

func (t *ListTimelineTool) Description() string {
	return "List the case timeline in the order events were entered."
}

func (t *ListTimelineTool) Params() []Param { return nil }

func (t *ListTimelineTool) Run(ctx context.Context, args string) (string, error) {
	events := t.c.Timeline.Snapshot()
	if len(events) == 0 {
		return "The timeline is empty.", nil
	}
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = "- " + e.Date + ": " + e.Description
	}
	return strings.Join(lines, "\n"), nil
}

// UpdateProfileTool merges fields into the case profile.
type UpdateProfileTool struct{ c Case }

func (t *UpdateProfileTool) Name() string { return "update_profile" }

func (t *UpdateProfileTool) Description() string {
	return "Update the case profile. Only the fields given are changed."
}

func (t *UpdateProfileTool) Params() []Param {
	return []Param{
		{Name: "name", Description: "Parent's name"},
		{Name: "case_number", Description: "Court case number"},
		{Name: "attorney_name", Description: "Attorney's name"},
	}
}

func (t *UpdateProfileTool) Run(ctx context.Context, args string) (string, error) {
	var a struct {
		Name         *string `json:"name"`
		CaseNumber   *string `json:"case_number"`
		AttorneyName *string `json:"attorney_name"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return "", err
	}
	if a.Name == nil && a.CaseNumber == nil && a.AttorneyName == nil {
		return "", errors.New("no profile fields given")
	}
	rec := t.c.Profile.Update(profile.Update{Name: a.Name, CaseNumber: a.CaseNumber, AttorneyName: a.AttorneyName})
	return formatProfile(rec), nil
}

// ShowProfileTool returns the case profile.
type ShowProfileTool struct{ c Case }

func (t *ShowProfileTool) Name() string        { return "show_profile" }
func (t *ShowProfileTool) Description() string { return "Show the case profile." }
func (t *ShowProfileTool) Params() []Param     { return nil }

func (t *ShowProfileTool) Run(ctx context.Context, args string) (string, error) {
	return formatProfile(t.c.Profile.Snapshot()), nil
}

func formatProfile(r profile.Record) string {
	return "Name: " + r.Name + "\nCase Number: " + r.CaseNumber + "\nAttorney: " + r.AttorneyName
}

// ExportTextTool returns the conversation as the plain-text artifact.
type ExportTextTool struct{ c Case }

func (t *ExportTextTool) Name() string { return "export_conversation_text" }

func (t *ExportTextTool) Description() string {
	return "Export the whole conversation as plain text."
}

func (t *ExportTextTool) Params() []Param { return nil }

func (t *ExportTextTool) Run(ctx context.Context, args string) (string, error) {
	return export.Text(t.c.Assistant.Log().Snapshot()), nil
}
